package automata_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/aretw0/automata"
	"github.com/aretw0/automata/internal/runtime"
	"github.com/aretw0/automata/internal/testutils"
	"github.com/aretw0/automata/pkg/adapters/memory"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersion(t *testing.T) {
	assert.NotEmpty(t, automata.VersionString())
	assert.Equal(t, strings.TrimSpace(automata.Version), automata.VersionString())
}

func TestNew_Defaults(t *testing.T) {
	svc := automata.New()
	assert.Equal(t, runtime.DefaultMaxSteps, svc.MaxSteps())
	assert.Equal(t, runtime.DefaultMaxIdleSteps, svc.MaxIdleSteps())

	svc = automata.New(automata.WithMaxSteps(10), automata.WithMaxIdleSteps(3))
	assert.Equal(t, 10, svc.MaxSteps())
	assert.Equal(t, 3, svc.MaxIdleSteps())
}

func TestNew_WithStore(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc := automata.New(automata.WithStore(store))

	id, err := svc.Create(ctx, domain.KindDFA, testutils.DFADefinition())
	require.NoError(t, err)

	entry, err := store.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.KindDFA, entry.Kind)
}

func TestScenarios(t *testing.T) {
	svc := automata.New()
	ctx := context.Background()

	tests := []struct {
		kind     domain.Kind
		input    string
		accepted bool
	}{
		{domain.KindDFA, "aab", true},
		{domain.KindDFA, "ba", false},
		{domain.KindDFA, "", false},
		{domain.KindPDA, "aabb", true},
		{domain.KindPDA, "aab", false},
		{domain.KindPDA, "", false},
		{domain.KindTM, "ababaa", true},
		{domain.KindTM, "aab", true},
		{domain.KindTM, "a", false},
	}

	ids := map[domain.Kind]string{}
	for _, kind := range domain.Kinds {
		id, err := svc.Create(ctx, kind, testutils.Definition(kind))
		require.NoError(t, err)
		ids[kind] = id
	}

	for _, tt := range tests {
		t.Run(string(tt.kind)+"/"+tt.input, func(t *testing.T) {
			res, err := svc.Test(ctx, ids[tt.kind], tt.kind, tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.accepted, res.Accepted())
		})
	}
}

func TestStepLimit(t *testing.T) {
	svc := automata.New(automata.WithMaxSteps(25))
	ctx := context.Background()

	raw := testutils.TMDefinition()
	raw["transitions"] = map[string]any{
		"q0": map[string]any{"_": []any{"q0", "_", "R"}},
	}
	id, err := svc.Create(ctx, domain.KindTM, raw)
	require.NoError(t, err)

	_, err = svc.Test(ctx, id, domain.KindTM, "")
	require.ErrorIs(t, err, domain.ErrStepLimitExceeded)

	var limitErr *domain.StepLimitError
	require.ErrorAs(t, err, &limitErr)
	assert.Equal(t, 25, limitErr.Limit)
}

func TestHooksAndMaxInputSize(t *testing.T) {
	var mu sync.Mutex
	var created, runs int
	hooks := domain.LifecycleHooks{
		OnCreate: func(context.Context, *domain.CreateEvent) { mu.Lock(); created++; mu.Unlock() },
		OnRun:    func(context.Context, *domain.RunEvent) { mu.Lock(); runs++; mu.Unlock() },
	}
	svc := automata.New(automata.WithLifecycleHooks(hooks), automata.WithMaxInputSize(3))
	ctx := context.Background()

	id, err := svc.Create(ctx, domain.KindDFA, testutils.DFADefinition())
	require.NoError(t, err)

	_, err = svc.Test(ctx, id, domain.KindDFA, "ab")
	require.NoError(t, err)
	_, err = svc.Test(ctx, id, domain.KindDFA, "abab")
	assert.ErrorIs(t, err, domain.ErrInputTooLarge)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, created)
	assert.Equal(t, 2, runs)
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	content := `{"kind": "dfa", "name": "ends-in-b", "definition": {
		"states": ["q0", "q1"], "input_alphabet": ["a", "b"],
		"initial_state": "q0", "final_states": ["q1"],
		"transitions": {"q0": {"a": "q0", "b": "q1"}, "q1": {"a": "q0", "b": "q1"}}}}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ends_in_b.json"), []byte(content), 0644))

	svc := automata.New()
	ctx := context.Background()
	loaded, err := svc.LoadDir(ctx, dir)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, "ends-in-b", loaded[0].Name)

	res, err := svc.Test(ctx, loaded[0].ID, domain.KindDFA, "aab")
	require.NoError(t, err)
	assert.True(t, res.Accepted())

	_, err = svc.LoadDir(ctx, filepath.Join(dir, "missing"))
	assert.Error(t, err)
}
