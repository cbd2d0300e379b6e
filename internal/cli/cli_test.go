package cli

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aretw0/automata/internal/logging"
	"github.com/aretw0/automata/internal/runtime"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const anbn = `kind: pda
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
  "states": ["q0", "q1"],
  "input_alphabet": ["a", "b"],
  "initial_state": "q0",
  "final_states": ["q1"],
  "transitions": {"q0": {"a": "q0", "b": "q1"}, "q1": {"a": "q0", "b": "q1"}}
}`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefaultConfig_Env(t *testing.T) {
	t.Setenv(EnvMaxSteps, "500")
	t.Setenv(EnvMaxIdleSteps, "not-a-number")

	cfg := DefaultConfig()
	assert.Equal(t, 500, cfg.MaxSteps)
	assert.Equal(t, runtime.DefaultMaxIdleSteps, cfg.MaxIdleSteps)
}

func TestEnvInt(t *testing.T) {
	t.Setenv("AUTOMATA_TEST_INT", "-3")
	assert.Equal(t, 7, EnvInt("AUTOMATA_TEST_INT", 7))
	t.Setenv("AUTOMATA_TEST_INT", "12")
	assert.Equal(t, 12, EnvInt("AUTOMATA_TEST_INT", 7))
	assert.Equal(t, 9, EnvInt("AUTOMATA_TEST_UNSET", 9))
}

func TestNewLogger(t *testing.T) {
	logger, closer, err := Config{}.NewLogger(true)
	require.NoError(t, err)
	assert.False(t, logger.Enabled(context.Background(), slog.LevelDebug))
	assert.NoError(t, closer.Close())

	logger, closer, err = Config{Debug: true}.NewLogger(true)
	require.NoError(t, err)
	assert.True(t, logger.Enabled(context.Background(), slog.LevelDebug))
	assert.NoError(t, closer.Close())

	path := filepath.Join(t.TempDir(), "automata.log")
	logger, closer, err = Config{LogFile: path}.NewLogger(true)
	require.NoError(t, err)
	logger.Info("hello", "error", "boom")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"hello"`)
	assert.Contains(t, string(data), `"err":"boom"`)
}

func TestRun(t *testing.T) {
	ctx := context.Background()
	path := writeFile(t, "anbn.yaml", anbn)

	var out bytes.Buffer
	svc := NewService(DefaultConfig(), logging.NewNop())
	err := Run(ctx, svc, FileOptions{Path: path}, []string{"ab", "aabb"}, &out, false)
	require.NoError(t, err)
	assert.Contains(t, out.String(), `"ab"`)
	assert.Contains(t, out.String(), "accepted  steps=")
	assert.NotContains(t, out.String(), "rejected")

	out.Reset()
	err = Run(ctx, svc, FileOptions{Path: path}, []string{"aabb", "aab", ""}, &out, false)
	require.ErrorIs(t, err, ErrRejected)
	assert.Contains(t, err.Error(), "2 of 3")
	assert.Contains(t, out.String(), `"aab"`)
	assert.Contains(t, out.String(), "halt=input_consumed")
}

func TestRun_BareDefinitionNeedsKind(t *testing.T) {
	ctx := context.Background()
	path := writeFile(t, "ends_in_b.json", bareDFA)
	svc := NewService(DefaultConfig(), logging.NewNop())

	var out bytes.Buffer
	err := Run(ctx, svc, FileOptions{Path: path}, []string{"ab"}, &out, false)
	assert.Error(t, err)

	err = Run(ctx, svc, FileOptions{Path: path, Kind: "dfa"}, []string{"ab"}, &out, false)
	require.NoError(t, err)

	err = Run(ctx, svc, FileOptions{Path: path, Kind: "nfa"}, []string{"ab"}, &out, false)
	assert.ErrorIs(t, err, domain.ErrUnknownKind)
}

func TestRun_StepLimit(t *testing.T) {
	ctx := context.Background()
	path := writeFile(t, "loop.yaml", `kind: tm
definition:
  states: [q0]
  input_alphabet: [a]
  tape_alphabet: [a, _]
  initial_state: q0
  final_states: []
  blank_symbol: _
  transitions:
    q0: {a: [q0, a, R], _: [q0, _, R]}
`)
	cfg := DefaultConfig()
	cfg.MaxSteps = 20
	svc := NewService(cfg, logging.NewNop())

	var out bytes.Buffer
	err := Run(ctx, svc, FileOptions{Path: path}, []string{"a"}, &out, false)
	assert.ErrorIs(t, err, domain.ErrStepLimitExceeded)
}

func TestValidate(t *testing.T) {
	ctx := context.Background()
	svc := NewService(DefaultConfig(), logging.NewNop())

	var out bytes.Buffer
	require.NoError(t, Validate(ctx, svc, FileOptions{Path: writeFile(t, "anbn.yaml", anbn)}, &out))
	assert.Equal(t, "anbn is a valid Deterministic Pushdown Automaton (3 states, 5 transitions)\n", out.String())

	bad := writeFile(t, "bad.json", `{"kind": "dfa", "definition": {"states": ["q0"], "input_alphabet": ["a"],
		"initial_state": "q1", "final_states": [], "transitions": {}}}`)
	err := Validate(ctx, svc, FileOptions{Path: bad}, &out)
	require.ErrorIs(t, err, domain.ErrInvalidDefinition)
	assert.Contains(t, err.Error(), bad)
}

func TestGraph(t *testing.T) {
	ctx := context.Background()
	svc := NewService(DefaultConfig(), logging.NewNop())
	path := writeFile(t, "ends_in_b.json", bareDFA)

	var out bytes.Buffer
	require.NoError(t, Graph(ctx, svc, FileOptions{Path: path, Kind: "dfa"}, GraphOptions{}, &out))
	assert.Contains(t, out.String(), "graph LR")

	out.Reset()
	input := "ba"
	require.NoError(t, Graph(ctx, svc, FileOptions{Path: path, Kind: "dfa"}, GraphOptions{Format: "dot", Input: &input}, &out))
	assert.Contains(t, out.String(), `"q0" [style=bold, color=red];`)

	err := Graph(ctx, svc, FileOptions{Path: path, Kind: "dfa"}, GraphOptions{Format: "png"}, &out)
	assert.Error(t, err)
}

func TestInspect(t *testing.T) {
	ctx := context.Background()
	svc := NewService(DefaultConfig(), logging.NewNop())
	passthrough := func(md string) (string, error) { return md, nil }

	var out bytes.Buffer
	require.NoError(t, Inspect(ctx, svc, FileOptions{Path: writeFile(t, "anbn.yaml", anbn)}, passthrough, &out))
	assert.Contains(t, out.String(), "# anbn (Deterministic Pushdown Automaton)")
}

func TestServe_ShutsDownOnCancel(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "anbn.yaml"), []byte(anbn), 0644))

	ctx, cancel := context.WithCancel(context.Background())
	var out bytes.Buffer
	done := make(chan error, 1)
	go func() {
		done <- Serve(ctx, DefaultConfig(), ServeOptions{Port: "0", Catalog: dir, Version: "test"}, logging.NewNop(), &out)
	}()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("server did not stop")
	}
	assert.Contains(t, out.String(), `Loaded pda "anbn"`)
}

func TestServe_BadCatalog(t *testing.T) {
	err := Serve(context.Background(), DefaultConfig(), ServeOptions{Port: "0", Catalog: filepath.Join(t.TempDir(), "missing")}, logging.NewNop(), &bytes.Buffer{})
	assert.Error(t, err)
}

func TestServeMCP_UnknownTransport(t *testing.T) {
	err := ServeMCP(context.Background(), DefaultConfig(), MCPOptions{Transport: "carrier-pigeon"}, logging.NewNop())
	assert.ErrorContains(t, err, "unknown transport")
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, IsTerminal(&bytes.Buffer{}))
}
