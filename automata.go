package automata

import (
	"context"
	_ "embed"
	"log/slog"
	"strings"

	"github.com/aretw0/automata/internal/catalog"
	"github.com/aretw0/automata/internal/logging"
	"github.com/aretw0/automata/internal/runtime"
	"github.com/aretw0/automata/pkg/adapters/memory"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/ports"
	"github.com/aretw0/automata/pkg/registry"
)

// Version is the library and CLI version.
//
//go:embed VERSION
var Version string

// Service is the high-level entry point for the automata library.
// It wraps the registry and the runtime and exposes the operations every surface shares.
type Service struct {
	*registry.Registry

	store       ports.AutomatonStore
	runtimeOpts []runtime.EngineOption
	hooks       domain.LifecycleHooks
	logger      *slog.Logger
	engine      *runtime.Engine
}

var _ ports.AutomatonService = (*Service)(nil)

// Option defines a functional option for configuring the Service.
type Option func(*Service)

// WithLogger sets a custom structured logger for the registry and the engines.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithStore replaces the default in-memory store.
func WithStore(store ports.AutomatonStore) Option {
	return func(s *Service) {
		s.store = store
	}
}

// WithLifecycleHooks registers observability hooks. Repeated calls are merged.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(s *Service) {
		s.hooks = s.hooks.Merge(hooks)
	}
}

// WithMaxSteps bounds PDA and TM runs (default runtime.DefaultMaxSteps).
func WithMaxSteps(n int) Option {
	return func(s *Service) {
		s.runtimeOpts = append(s.runtimeOpts, runtime.WithMaxSteps(n))
	}
}

// WithMaxIdleSteps bounds consecutive PDA moves that read no input.
func WithMaxIdleSteps(n int) Option {
	return func(s *Service) {
		s.runtimeOpts = append(s.runtimeOpts, runtime.WithMaxIdleSteps(n))
	}
}

// WithMaxInputSize bounds the byte length of tested inputs.
func WithMaxInputSize(n int) Option {
	return func(s *Service) {
		s.runtimeOpts = append(s.runtimeOpts, runtime.WithMaxInputSize(n))
	}
}

// New initializes a Service backed by an in-memory store unless WithStore is given.
func New(opts ...Option) *Service {
	s := &Service{}
	for _, opt := range opts {
		opt(s)
	}

	// Ensure logger is initialized so nil never reaches the runtime.
	if s.logger == nil {
		s.logger = logging.NewNop()
	}
	if s.store == nil {
		s.store = memory.NewStore()
	}

	s.engine = runtime.NewEngine(append(s.runtimeOpts, runtime.WithLogger(s.logger))...)
	s.Registry = registry.New(s.store, s.engine,
		registry.WithLogger(s.logger),
		registry.WithLifecycleHooks(s.hooks),
	)
	return s
}

// MaxSteps returns the effective global step budget.
func (s *Service) MaxSteps() int { return s.engine.MaxSteps() }

// MaxIdleSteps returns the effective PDA idle budget.
func (s *Service) MaxIdleSteps() int { return s.engine.MaxIdleSteps() }

// Preload stores every description yielded by loader and returns where each one landed.
func (s *Service) Preload(ctx context.Context, loader ports.CatalogLoader) ([]catalog.Loaded, error) {
	return catalog.Preload(ctx, s.Registry, loader, s.logger)
}

// LoadDir preloads the catalog directory at dir.
func (s *Service) LoadDir(ctx context.Context, dir string) ([]catalog.Loaded, error) {
	loader, err := catalog.OpenDir(dir)
	if err != nil {
		return nil, err
	}
	return s.Preload(ctx, loader)
}

// VersionString returns Version without surrounding whitespace.
func VersionString() string { return strings.TrimSpace(Version) }
