package ports

import (
	"context"

	"github.com/aretw0/automata/pkg/domain"
)

// CatalogLoader reads a set of automaton descriptions from some backing source
// (a Loam directory, a single file, memory). Descriptions are returned unvalidated.
type CatalogLoader interface {
	LoadCatalog(ctx context.Context) ([]domain.Description, error)
}
