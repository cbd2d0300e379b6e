package ports

import (
	"context"

	"github.com/aretw0/automata/pkg/domain"
)

// AutomatonService is the driving port used by the HTTP, MCP and CLI adapters.
// *registry.Registry is the production implementation.
type AutomatonService interface {
	Create(ctx context.Context, kind domain.Kind, raw map[string]any) (string, error)
	CreateNamed(ctx context.Context, kind domain.Kind, name string, raw map[string]any) (string, error)
	Test(ctx context.Context, id string, kind domain.Kind, input string) (domain.Result, error)
	Lookup(ctx context.Context, id string, kind domain.Kind) (domain.Entry, error)
	List(ctx context.Context, kind domain.Kind) ([]domain.Entry, error)
}
