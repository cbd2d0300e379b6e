package catalog_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/automata/internal/catalog"
	"github.com/aretw0/automata/internal/logging"
	"github.com/aretw0/automata/internal/runtime"
	"github.com/aretw0/automata/internal/testutils"
	"github.com/aretw0/automata/pkg/adapters/memory"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pdaYAML = `kind: pda
name: anbn
definition:
  states: [q0, q1, q2]
  input_alphabet: [a, b]
  stack_alphabet: [A, Z]
  initial_state: q0
  initial_stack_symbol: Z
  final_states: [q2]
  transitions:
    q0:
      a: {Z: [q0, [A, Z]], A: [q0, [A, A]]}
      b: {A: [q1, []]}
    q1:
      b: {A: [q1, []]}
      "": {Z: [q2, [Z]]}
`

const bareDFA = `{
  "states": [0, 1],
  "input_alphabet": ["a"],
  "initial_state": 0,
  "final_states": [1],
  "transitions": {"0": {"a": 1}, "1": {"a": 0}}
}`

func write(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestReadFile_Envelope(t *testing.T) {
	path := write(t, t.TempDir(), "pda.yaml", pdaYAML)

	desc, err := catalog.ReadFile(path, "")
	require.NoError(t, err)
	assert.Equal(t, domain.KindPDA, desc.Kind)
	assert.Equal(t, "anbn", desc.Name)
	assert.Equal(t, path, desc.Source)

	pda := testutils.MustBuild[*domain.PDA](t, desc.Kind, desc.Definition)
	res, err := runtime.NewEngine().Run(context.Background(), pda, "aabb")
	require.NoError(t, err)
	assert.True(t, res.Accepted())
}

func TestReadFile_BareDefinition(t *testing.T) {
	path := write(t, t.TempDir(), "odd.json", bareDFA)

	desc, err := catalog.ReadFile(path, domain.KindDFA)
	require.NoError(t, err)
	assert.Equal(t, domain.KindDFA, desc.Kind)
	assert.Equal(t, "odd", desc.Name)
	assert.Equal(t, "0", desc.Definition["initial_state"])

	dfa := testutils.MustBuild[*domain.DFA](t, desc.Kind, desc.Definition)
	res, err := runtime.NewEngine().Run(context.Background(), dfa, "aaa")
	require.NoError(t, err)
	assert.True(t, res.Accepted())
}

func TestReadFile_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := catalog.ReadFile(filepath.Join(dir, "missing.yaml"), domain.KindDFA)
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = catalog.ReadFile(write(t, dir, "bare.json", bareDFA), "")
	assert.ErrorIs(t, err, catalog.ErrNoKind)

	_, err = catalog.ReadFile(write(t, dir, "pda.yaml", pdaYAML), domain.KindTM)
	assert.ErrorIs(t, err, domain.ErrKindMismatch)

	_, err = catalog.ReadFile(write(t, dir, "nfa.yaml", "kind: nfa\ndefinition: {}\n"), "")
	assert.ErrorIs(t, err, domain.ErrUnknownKind)

	_, err = catalog.ReadFile(write(t, dir, "nodef.yaml", "kind: dfa\n"), "")
	assert.Error(t, err)

	_, err = catalog.ReadFile(write(t, dir, "broken.yaml", "states: [q0\n"), domain.KindDFA)
	assert.Error(t, err)

	_, err = catalog.ReadFile(write(t, dir, "empty.yaml", ""), domain.KindDFA)
	assert.Error(t, err)
}

func TestPreload(t *testing.T) {
	loader, err := memory.NewFromDescriptions(
		domain.Description{Kind: domain.KindDFA, Name: "ab", Definition: testutils.DFADefinition()},
		domain.Description{Kind: domain.KindTM, Name: "even", Definition: testutils.TMDefinition()},
	)
	require.NoError(t, err)
	reg := registry.New(memory.NewStore(), nil)
	ctx := context.Background()

	loaded, err := catalog.Preload(ctx, reg, loader, logging.NewNop())
	require.NoError(t, err)
	require.Len(t, loaded, 2)

	for _, l := range loaded {
		entry, err := reg.Lookup(ctx, l.ID, l.Kind)
		require.NoError(t, err)
		assert.Equal(t, l.Name, entry.Name)
	}
}

func TestPreload_StopsAtInvalid(t *testing.T) {
	bad := testutils.DFADefinition()
	bad["initial_state"] = "nowhere"
	loader, err := memory.NewFromDescriptions(
		domain.Description{Kind: domain.KindDFA, Name: "a-good", Definition: testutils.DFADefinition()},
		domain.Description{Kind: domain.KindDFA, Name: "b-bad", Source: "b-bad.json", Definition: bad},
	)
	require.NoError(t, err)
	reg := registry.New(memory.NewStore(), nil)

	loaded, err := catalog.Preload(context.Background(), reg, loader, logging.NewNop())
	require.ErrorIs(t, err, domain.ErrInvalidDefinition)
	assert.Contains(t, err.Error(), "b-bad.json")
	assert.Len(t, loaded, 1)
}

func TestOpenDir(t *testing.T) {
	_, err := catalog.OpenDir(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)

	file := write(t, t.TempDir(), "x.yaml", pdaYAML)
	_, err = catalog.OpenDir(file)
	assert.Error(t, err)

	dir := t.TempDir()
	write(t, dir, "anbn.yaml", pdaYAML)
	loader, err := catalog.OpenDir(dir)
	require.NoError(t, err)

	descs, err := loader.LoadCatalog(context.Background())
	require.NoError(t, err)
	require.Len(t, descs, 1)
	assert.Equal(t, "anbn", descs[0].Name)
	assert.Equal(t, domain.KindPDA, descs[0].Kind)
}
