package ports

import (
	"context"

	"github.com/aretw0/automata/pkg/domain"
)

// AutomatonStore keeps validated automata for the lifetime of the process.
// Entries are written once and never updated or removed.
type AutomatonStore interface {
	// Put stores entry under entry.ID.
	// Returns domain.ErrDuplicateID if the id is already taken.
	Put(ctx context.Context, entry domain.Entry) error

	// Get retrieves the entry stored under id.
	// Returns domain.ErrNotFound if no such entry exists.
	Get(ctx context.Context, id string) (domain.Entry, error)

	// List returns every entry ordered by creation time.
	List(ctx context.Context) ([]domain.Entry, error)
}
