package loam

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/automata/internal/dto"
	"github.com/aretw0/automata/internal/validator"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/ports"
	"github.com/aretw0/loam"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const dfaJSON = `{
  "kind": "dfa",
  "name": "ends-in-b",
  "definition": {
    "states": ["q0", "q1"],
    "input_alphabet": ["a", "b"],
    "initial_state": "q0",
    "final_states": ["q1"],
    "transitions": {
      "q0": {"a": "q0", "b": "q1"},
      "q1": {"a": "q0", "b": "q1"}
    }
  }
}`

const tmMarkdown = `---
kind: tm
definition:
  states: [q0, q1, q_accept]
  input_alphabet: [a, b]
  tape_alphabet: [a, b, _]
  initial_state: q0
  final_states: [q_accept]
  blank_symbol: _
  transitions:
    q0:
      a: [q1, a, R]
      b: [q0, b, R]
      _: [q_accept, _, R]
    q1:
      a: [q0, a, R]
      b: [q1, b, R]
---
Accepts strings with an even number of a.`

func seed(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}
	return dir
}

func TestLoader_Contract(t *testing.T) {
	dir := seed(t, map[string]string{
		"ends_in_b.json": dfaJSON,
		"even_a.md":      tmMarkdown,
	})

	loader, err := Open(dir)
	require.NoError(t, err)

	ports.RunCatalogLoaderContract(t, loader, map[string]domain.Kind{
		"ends-in-b": domain.KindDFA,
		"even_a":    domain.KindTM,
	})
}

func TestLoader_DescriptionsValidate(t *testing.T) {
	dir := seed(t, map[string]string{
		"ends_in_b.json": dfaJSON,
		"even_a.md":      tmMarkdown,
	})
	loader, err := Open(dir)
	require.NoError(t, err)

	descs, err := loader.LoadCatalog(context.Background())
	require.NoError(t, err)
	require.Len(t, descs, 2)

	assert.Equal(t, "ends-in-b", descs[0].Name)
	assert.Contains(t, descs[0].Source, "ends_in_b")
	assert.Equal(t, "even_a", descs[1].Name)

	for _, d := range descs {
		_, err := validator.Validate(d.Kind, d.Definition)
		assert.NoError(t, err, "description %s", d.Name)
	}
}

func TestLoader_UnknownKind(t *testing.T) {
	dir := seed(t, map[string]string{
		"nfa.json": `{"kind": "nfa", "definition": {"states": ["q0"]}}`,
	})
	loader, err := Open(dir)
	require.NoError(t, err)

	_, err = loader.LoadCatalog(context.Background())
	assert.ErrorIs(t, err, domain.ErrUnknownKind)
}

func TestLoader_MissingDefinition(t *testing.T) {
	dir := seed(t, map[string]string{
		"empty.json": `{"kind": "dfa"}`,
	})
	loader, err := Open(dir)
	require.NoError(t, err)

	_, err = loader.LoadCatalog(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing definition")
}

func TestLoader_DetectsCollisions(t *testing.T) {
	dir := seed(t, map[string]string{
		"foo.json": `{"kind": "dfa", "name": "foo", "definition": {"states": ["q0"]}}`,
		"foo.md":   "---\nkind: tm\ndefinition:\n  states: [q0]\n---\n",
	})

	repo, err := loam.Init(dir)
	require.NoError(t, err)
	loader := New(loam.NewTypedRepository[dto.Envelope](repo))

	_, err = loader.LoadCatalog(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "collision detected")
	assert.Contains(t, err.Error(), "foo")
}
