package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/aretw0/automata/internal/runtime"
	"github.com/aretw0/automata/internal/testutils"
	"github.com/aretw0/automata/pkg/adapters/memory"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/registry"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	reg := registry.New(memory.NewStore(), runtime.NewEngine(runtime.WithMaxSteps(50)))
	return NewServer(reg, WithVersion("test"))
}

func definitionJSON(t *testing.T, kind domain.Kind) string {
	t.Helper()
	data, err := json.Marshal(testutils.Definition(kind))
	require.NoError(t, err)
	return string(data)
}

func toolRequest(name string, args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Name = name
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, res)
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content, got %T", res.Content[0])
	return text.Text
}

func TestCreateAndTest(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	created, err := s.handleCreate(ctx, mcp.CallToolRequest{}, CreateArgs{
		Kind:       "PDA",
		Definition: definitionJSON(t, domain.KindPDA),
		Name:       "anbn",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.KindPDA, created.Kind)
	require.NotEmpty(t, created.ID)

	res, err := s.handleTest(ctx, mcp.CallToolRequest{}, TestArgs{Kind: "pda", ID: created.ID, Input: "aabb"})
	require.NoError(t, err)
	assert.True(t, res.Accepted)
	assert.Equal(t, "accepted", res.Verdict)
	assert.Equal(t, "q2", res.FinalState)
	assert.Equal(t, string(domain.HaltInputConsumed), res.Halt)
	assert.Equal(t, "aabb", res.Input)

	res, err = s.handleTest(ctx, mcp.CallToolRequest{}, TestArgs{Kind: "pda", ID: created.ID, Input: "abb"})
	require.NoError(t, err)
	assert.False(t, res.Accepted)
	assert.Equal(t, "rejected", res.Verdict)
}

func TestCreateErrors(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	_, err := s.handleCreate(ctx, mcp.CallToolRequest{}, CreateArgs{Kind: "nfa", Definition: "{}"})
	assert.ErrorIs(t, err, domain.ErrUnknownKind)

	_, err = s.handleCreate(ctx, mcp.CallToolRequest{}, CreateArgs{Kind: "dfa", Definition: "not json"})
	assert.Error(t, err)

	_, err = s.handleCreate(ctx, mcp.CallToolRequest{}, CreateArgs{Kind: "dfa", Definition: "null"})
	assert.Error(t, err)

	_, err = s.handleCreate(ctx, mcp.CallToolRequest{}, CreateArgs{Kind: "dfa", Definition: `{"states": ["q0"]}`})
	assert.ErrorIs(t, err, domain.ErrInvalidDefinition)
}

func TestTestErrors(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	created, err := s.handleCreate(ctx, mcp.CallToolRequest{}, CreateArgs{Kind: "dfa", Definition: definitionJSON(t, domain.KindDFA)})
	require.NoError(t, err)

	_, err = s.handleTest(ctx, mcp.CallToolRequest{}, TestArgs{Kind: "tm", ID: created.ID, Input: "ab"})
	assert.ErrorIs(t, err, domain.ErrKindMismatch)

	_, err = s.handleTest(ctx, mcp.CallToolRequest{}, TestArgs{Kind: "dfa", ID: "missing", Input: "ab"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStructuredHandlerReportsToolError(t *testing.T) {
	s := newTestServer(t)
	handler := mcp.NewStructuredToolHandler(s.handleTest)

	res, err := handler(context.Background(), toolRequest("test_automaton", map[string]any{
		"kind": "dfa", "id": "missing", "input": "a",
	}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestDescribe(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()
	created, err := s.handleCreate(ctx, mcp.CallToolRequest{}, CreateArgs{Kind: "tm", Definition: definitionJSON(t, domain.KindTM), Name: "even-a"})
	require.NoError(t, err)

	res, err := s.handleDescribe(ctx, toolRequest("describe_automaton", map[string]any{"kind": "tm", "id": created.ID}))
	require.NoError(t, err)
	assert.False(t, res.IsError)
	text := resultText(t, res)
	assert.Contains(t, text, "# even-a (Turing Machine)")
	assert.Contains(t, text, "```mermaid")

	res, err = s.handleDescribe(ctx, toolRequest("describe_automaton", map[string]any{"kind": "dfa", "id": created.ID}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestRenderGraph(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()
	created, err := s.handleCreate(ctx, mcp.CallToolRequest{}, CreateArgs{Kind: "dfa", Definition: definitionJSON(t, domain.KindDFA)})
	require.NoError(t, err)

	res, err := s.handleGraph(ctx, toolRequest("render_graph", map[string]any{"kind": "dfa", "id": created.ID}))
	require.NoError(t, err)
	assert.Contains(t, resultText(t, res), "graph LR")

	res, err = s.handleGraph(ctx, toolRequest("render_graph", map[string]any{
		"kind": "dfa", "id": created.ID, "format": "dot", "input": "ab",
	}))
	require.NoError(t, err)
	text := resultText(t, res)
	assert.Contains(t, text, "digraph automaton {")
	assert.Contains(t, text, "color=green")

	res, err = s.handleGraph(ctx, toolRequest("render_graph", map[string]any{"kind": "dfa", "id": created.ID, "format": "svg"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestCatalogResource(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()
	created, err := s.handleCreate(ctx, mcp.CallToolRequest{}, CreateArgs{Kind: "dfa", Definition: definitionJSON(t, domain.KindDFA), Name: "ab"})
	require.NoError(t, err)

	contents, err := s.readCatalog(ctx, mcp.ReadResourceRequest{})
	require.NoError(t, err)
	require.Len(t, contents, 1)
	text, ok := contents[0].(mcp.TextResourceContents)
	require.True(t, ok)
	assert.Equal(t, CatalogURI, text.URI)

	var catalog map[string][]CatalogItem
	require.NoError(t, json.Unmarshal([]byte(text.Text), &catalog))
	require.Len(t, catalog["dfa"], 1)
	assert.Equal(t, created.ID, catalog["dfa"][0].ID)
	assert.Equal(t, "ab", catalog["dfa"][0].Name)
	assert.Empty(t, catalog["pda"])
	assert.Empty(t, catalog["tm"])
}
