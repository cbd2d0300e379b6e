// Package registry stores validated automata under generated identifiers and runs them.
//
// It is the single entry point shared by the HTTP, MCP and CLI surfaces: definitions go
// through the validator on the way in, and every test goes through the runtime engine.
package registry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/automata/internal/logging"
	"github.com/aretw0/automata/internal/runtime"
	"github.com/aretw0/automata/internal/validator"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/ports"
	"github.com/google/uuid"
)

// Registry validates, stores and executes automata.
// Safe for concurrent use; all mutable state lives in the store.
type Registry struct {
	store  ports.AutomatonStore
	engine *runtime.Engine
	logger *slog.Logger
	hooks  domain.LifecycleHooks
	newID  func() string
	now    func() time.Time
}

// Option defines a functional option for configuring the Registry.
type Option func(*Registry)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithLifecycleHooks registers observability hooks. Repeated calls are merged.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(r *Registry) {
		r.hooks = r.hooks.Merge(hooks)
	}
}

// WithIDGenerator replaces the UUIDv4 generator. Intended for tests.
func WithIDGenerator(fn func() string) Option {
	return func(r *Registry) {
		if fn != nil {
			r.newID = fn
		}
	}
}

// WithClock replaces time.Now for creation timestamps.
func WithClock(now func() time.Time) Option {
	return func(r *Registry) {
		if now != nil {
			r.now = now
		}
	}
}

// New creates a registry over store. A nil engine gets the default budgets.
func New(store ports.AutomatonStore, engine *runtime.Engine, opts ...Option) *Registry {
	if engine == nil {
		engine = runtime.NewEngine()
	}
	r := &Registry{
		store:  store,
		engine: engine,
		logger: logging.NewNop(),
		newID:  uuid.NewString,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Create validates raw as an automaton of kind and stores it.
// Nothing is stored when validation fails.
func (r *Registry) Create(ctx context.Context, kind domain.Kind, raw map[string]any) (string, error) {
	return r.CreateNamed(ctx, kind, "", raw)
}

// CreateNamed is Create with a human-readable label attached to the entry.
func (r *Registry) CreateNamed(ctx context.Context, kind domain.Kind, name string, raw map[string]any) (string, error) {
	a, err := validator.Validate(kind, raw)
	if err != nil {
		r.emitCreate(ctx, "", kind, err)
		return "", err
	}

	entry := domain.Entry{
		ID:        r.newID(),
		Kind:      kind,
		Name:      name,
		CreatedAt: r.now().UTC(),
		Automaton: a,
	}
	if err := r.store.Put(ctx, entry); err != nil {
		err = fmt.Errorf("failed to store automaton %s: %w", entry.ID, err)
		r.emitCreate(ctx, "", kind, err)
		return "", err
	}

	r.logger.Info("automaton created", "id", entry.ID, "kind", kind, "name", name)
	r.emitCreate(ctx, entry.ID, kind, nil)
	return entry.ID, nil
}

// Get returns the automaton stored under id, which must be of the given kind.
func (r *Registry) Get(ctx context.Context, id string, kind domain.Kind) (domain.Automaton, error) {
	entry, err := r.Lookup(ctx, id, kind)
	if err != nil {
		return nil, err
	}
	return entry.Automaton, nil
}

// Lookup returns the full entry stored under id, which must be of the given kind.
func (r *Registry) Lookup(ctx context.Context, id string, kind domain.Kind) (domain.Entry, error) {
	entry, err := r.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Entry{}, fmt.Errorf("%w: %s", domain.ErrNotFound, id)
		}
		return domain.Entry{}, err
	}
	if entry.Kind != kind {
		return domain.Entry{}, fmt.Errorf("%w: %s is a %s, not a %s",
			domain.ErrKindMismatch, id, entry.Kind.Title(), kind.Title())
	}
	return entry, nil
}

// Test runs input against the automaton stored under id.
// A step budget overrun is reported as an error, never as a verdict.
func (r *Registry) Test(ctx context.Context, id string, kind domain.Kind, input string) (domain.Result, error) {
	entry, err := r.Lookup(ctx, id, kind)
	if err != nil {
		return domain.Result{}, err
	}

	start := r.now()
	res, err := r.engine.Run(ctx, entry.Automaton, input)
	elapsed := r.now().Sub(start)

	if r.hooks.OnRun != nil {
		r.hooks.OnRun(ctx, &domain.RunEvent{
			EventBase: domain.EventBase{Timestamp: start, Type: domain.EventRun},
			ID:        id,
			Kind:      kind,
			Result:    res,
			Duration:  elapsed,
			Err:       err,
		})
	}
	if err != nil {
		r.logger.Warn("automaton run failed", "id", id, "kind", kind, "err", err)
		return domain.Result{}, err
	}

	r.logger.Debug("automaton tested", "id", id, "kind", kind, "verdict", res.Verdict, "steps", res.Steps)
	return res, nil
}

// List returns the entries of kind, oldest first.
func (r *Registry) List(ctx context.Context, kind domain.Kind) ([]domain.Entry, error) {
	all, err := r.store.List(ctx)
	if err != nil {
		return nil, err
	}
	entries := make([]domain.Entry, 0, len(all))
	for _, e := range all {
		if e.Kind == kind {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

func (r *Registry) emitCreate(ctx context.Context, id string, kind domain.Kind, err error) {
	if err != nil {
		r.logger.Debug("automaton rejected", "kind", kind, "err", err)
	}
	if r.hooks.OnCreate == nil {
		return
	}
	r.hooks.OnCreate(ctx, &domain.CreateEvent{
		EventBase: domain.EventBase{Timestamp: r.now(), Type: domain.EventCreate},
		ID:        id,
		Kind:      kind,
		Err:       err,
	})
}
