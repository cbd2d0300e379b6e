package cli

import (
	"context"
	"log/slog"

	"github.com/aretw0/automata"
	"github.com/aretw0/automata/internal/runtime"
	"github.com/aretw0/automata/pkg/domain"
)

// NewService initializes an automata service with standard CLI conventions.
func NewService(cfg Config, logger *slog.Logger, opts ...automata.Option) *automata.Service {
	base := []automata.Option{
		automata.WithLogger(logger),
		automata.WithMaxSteps(cfg.MaxSteps),
		automata.WithMaxIdleSteps(cfg.MaxIdleSteps),
		automata.WithMaxInputSize(runtime.MaxInputSize()),
	}
	if cfg.Debug {
		base = append(base, automata.WithLifecycleHooks(createDebugHooks(logger)))
	}
	return automata.New(append(base, opts...)...)
}

func createDebugHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnCreate: func(ctx context.Context, e *domain.CreateEvent) {
			if e.Err != nil {
				logger.Debug("Create (Rejected)", "kind", e.Kind, "err", e.Err)
				return
			}
			logger.Debug("Create", "id", e.ID, "kind", e.Kind)
		},
		OnRun: func(ctx context.Context, e *domain.RunEvent) {
			if e.Err != nil {
				logger.Debug("Run (Error)", "id", e.ID, "kind", e.Kind, "duration", e.Duration, "err", e.Err)
				return
			}
			logger.Debug("Run",
				"id", e.ID,
				"kind", e.Kind,
				"verdict", e.Result.Verdict,
				"steps", e.Result.Steps,
				"duration", e.Duration,
			)
		},
	}
}
