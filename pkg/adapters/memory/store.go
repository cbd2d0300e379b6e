package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/aretw0/automata/pkg/domain"
)

// Store implements ports.AutomatonStore in memory.
// Safe for concurrent use. Stored automata are immutable, so entries are shared, not copied.
type Store struct {
	data map[string]domain.Entry
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]domain.Entry),
	}
}

// Put stores the entry, refusing to replace an existing one.
func (s *Store) Put(ctx context.Context, entry domain.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.data[entry.ID]; ok {
		return domain.ErrDuplicateID
	}
	s.data[entry.ID] = entry
	return nil
}

// Get retrieves the entry from memory.
func (s *Store) Get(ctx context.Context, id string) (domain.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.data[id]
	if !ok {
		return domain.Entry{}, domain.ErrNotFound
	}
	return entry, nil
}

// List returns all entries, oldest first. Ties are broken by id.
func (s *Store) List(ctx context.Context) ([]domain.Entry, error) {
	s.mu.RLock()
	entries := make([]domain.Entry, 0, len(s.data))
	for _, e := range s.data {
		entries = append(entries, e)
	}
	s.mu.RUnlock()

	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].CreatedAt.Equal(entries[j].CreatedAt) {
			return entries[i].CreatedAt.Before(entries[j].CreatedAt)
		}
		return entries[i].ID < entries[j].ID
	})
	return entries, nil
}
