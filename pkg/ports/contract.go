package ports

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func contractEntry(id string, created time.Time) domain.Entry {
	dfa := &domain.DFA{
		Control: domain.Control{
			States:        domain.NewSet[domain.State]("q0"),
			InputAlphabet: domain.NewSet[domain.Symbol]("a"),
			Initial:       "q0",
			Finals:        domain.NewSet[domain.State]("q0"),
		},
		Delta: map[domain.DFAKey]domain.State{{From: "q0", Symbol: "a"}: "q0"},
	}
	return domain.Entry{ID: id, Kind: domain.KindDFA, Name: "contract", CreatedAt: created, Automaton: dfa}
}

// RunAutomatonStoreContract runs a suite of tests to verify that an AutomatonStore
// implementation adheres to the defined interface contract.
// The store must be empty when the suite starts.
func RunAutomatonStoreContract(t *testing.T, store AutomatonStore) {
	ctx := context.Background()
	prefix := "contract-" + time.Now().Format("20060102150405")
	base := time.Now().UTC()

	t.Run("Put and Get", func(t *testing.T) {
		entry := contractEntry(prefix+"-get", base)
		require.NoError(t, store.Put(ctx, entry), "Put should not return error")

		loaded, err := store.Get(ctx, entry.ID)
		require.NoError(t, err, "Get should not return error")
		assert.Equal(t, entry.ID, loaded.ID)
		assert.Equal(t, domain.KindDFA, loaded.Kind)
		assert.Equal(t, "contract", loaded.Name)
		assert.Same(t, entry.Automaton, loaded.Automaton)
	})

	t.Run("Get Non-Existent", func(t *testing.T) {
		_, err := store.Get(ctx, "non-existent-"+prefix)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("Duplicate ID", func(t *testing.T) {
		entry := contractEntry(prefix+"-dup", base)
		require.NoError(t, store.Put(ctx, entry))

		replacement := contractEntry(entry.ID, base)
		replacement.Name = "replacement"
		assert.ErrorIs(t, store.Put(ctx, replacement), domain.ErrDuplicateID)

		loaded, err := store.Get(ctx, entry.ID)
		require.NoError(t, err)
		assert.Equal(t, "contract", loaded.Name, "a refused Put must not overwrite the entry")
	})

	t.Run("List Ordered By Creation", func(t *testing.T) {
		later := contractEntry(prefix+"-later", base.Add(2*time.Hour))
		earlier := contractEntry(prefix+"-earlier", base.Add(time.Hour))
		require.NoError(t, store.Put(ctx, later))
		require.NoError(t, store.Put(ctx, earlier))

		entries, err := store.List(ctx)
		require.NoError(t, err)

		var ids []string
		for _, e := range entries {
			ids = append(ids, e.ID)
		}
		assert.Contains(t, ids, earlier.ID)
		assert.Contains(t, ids, later.ID)
		for i := 1; i < len(entries); i++ {
			assert.False(t, entries[i].CreatedAt.Before(entries[i-1].CreatedAt), "entries must be ordered by creation time")
		}
	})

	t.Run("Concurrent Put", func(t *testing.T) {
		const writers = 32
		var wg sync.WaitGroup
		errs := make(chan error, writers)
		for i := 0; i < writers; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				errs <- store.Put(ctx, contractEntry(fmt.Sprintf("%s-concurrent-%d", prefix, i), base))
			}(i)
		}
		wg.Wait()
		close(errs)
		for err := range errs {
			assert.NoError(t, err)
		}

		for i := 0; i < writers; i++ {
			_, err := store.Get(ctx, fmt.Sprintf("%s-concurrent-%d", prefix, i))
			assert.NoError(t, err)
		}
	})
}

// RunCatalogLoaderContract verifies that loader returns exactly the descriptions in want,
// matched by name.
func RunCatalogLoaderContract(t *testing.T, loader CatalogLoader, want map[string]domain.Kind) {
	t.Helper()

	t.Run("LoadCatalog", func(t *testing.T) {
		descs, err := loader.LoadCatalog(context.Background())
		require.NoError(t, err)
		require.Len(t, descs, len(want))

		for _, d := range descs {
			kind, ok := want[d.Name]
			if assert.True(t, ok, "unexpected description %q", d.Name) {
				assert.Equal(t, kind, d.Kind)
			}
			assert.NotEmpty(t, d.Definition, "description %q has no definition", d.Name)
		}
	})

	t.Run("LoadCatalog Is Repeatable", func(t *testing.T) {
		first, err := loader.LoadCatalog(context.Background())
		require.NoError(t, err)
		second, err := loader.LoadCatalog(context.Background())
		require.NoError(t, err)
		assert.ElementsMatch(t, names(first), names(second))
	})
}

func names(descs []domain.Description) []string {
	out := make([]string, len(descs))
	for i, d := range descs {
		out[i] = d.Name
	}
	return out
}
