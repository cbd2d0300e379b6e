package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/automata/internal/logging"
	"github.com/aretw0/automata/internal/presentation/graph"
	"github.com/aretw0/automata/internal/presentation/tui"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/ports"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// CatalogURI is the resource listing every stored automaton.
const CatalogURI = "automata://catalog"

// CreateArgs are the arguments of the create_automaton tool.
type CreateArgs struct {
	Kind       string `json:"kind"`
	Definition string `json:"definition"`
	Name       string `json:"name,omitempty"`
}

// CreateResponse is the structured result of create_automaton.
type CreateResponse struct {
	ID   string      `json:"id" jsonschema_description:"Identifier of the stored automaton"`
	Kind domain.Kind `json:"kind" jsonschema_description:"Automaton kind"`
}

// TestArgs are the arguments of the test_automaton tool.
type TestArgs struct {
	Kind  string `json:"kind"`
	ID    string `json:"id"`
	Input string `json:"input"`
}

// TestResponse is the structured result of test_automaton.
type TestResponse struct {
	ID         string `json:"id" jsonschema_description:"Identifier of the automaton"`
	Input      string `json:"input" jsonschema_description:"The tested input string"`
	Accepted   bool   `json:"accepted" jsonschema_description:"Whether the input was accepted"`
	Verdict    string `json:"verdict" jsonschema_description:"accepted or rejected"`
	Steps      int    `json:"steps" jsonschema_description:"Transitions taken"`
	FinalState string `json:"final_state" jsonschema_description:"State the machine halted in"`
	Halt       string `json:"halt" jsonschema_description:"Reason the run stopped"`
}

// LookupArgs address a stored automaton.
type LookupArgs struct {
	Kind string `json:"kind"`
	ID   string `json:"id"`
}

// GraphArgs are the arguments of the render_graph tool.
type GraphArgs struct {
	Kind   string  `json:"kind"`
	ID     string  `json:"id"`
	Format string  `json:"format,omitempty"`
	Input  *string `json:"input,omitempty"`
}

// CatalogItem is one entry of the catalog resource.
type CatalogItem struct {
	ID        string      `json:"id"`
	Kind      domain.Kind `json:"kind"`
	Name      string      `json:"name,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
}

// Server exposes an AutomatonService as an MCP server.
type Server struct {
	service   ports.AutomatonService
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// Option configures a Server.
type Option func(*serverConfig)

type serverConfig struct {
	logger  *slog.Logger
	version string
}

// WithLogger sets the server logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *serverConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithVersion sets the version announced during MCP initialization.
func WithVersion(v string) Option {
	return func(c *serverConfig) { c.version = strings.TrimSpace(v) }
}

// NewServer creates a new MCP Server instance.
func NewServer(svc ports.AutomatonService, opts ...Option) *Server {
	cfg := serverConfig{logger: logging.NewNop(), version: "dev"}
	for _, opt := range opts {
		opt(&cfg)
	}
	s := &Server{
		service:   svc,
		logger:    cfg.logger,
		mcpServer: server.NewMCPServer("automata-mcp", cfg.version),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying mcp-go server.
func (s *Server) MCPServer() *server.MCPServer { return s.mcpServer }

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves the SSE transport on port until ctx is cancelled.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Info("shutting down MCP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func kindOption() mcp.ToolOption {
	return mcp.WithString("kind", mcp.Required(),
		mcp.Enum(string(domain.KindDFA), string(domain.KindPDA), string(domain.KindTM)),
		mcp.Description("Automaton kind: dfa, pda or tm"))
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("create_automaton",
		mcp.WithDescription("Validate an automaton definition and store it. Returns the new identifier."),
		kindOption(),
		mcp.WithString("definition", mcp.Required(), mcp.Description("JSON object with the kind-specific definition")),
		mcp.WithString("name", mcp.Description("Optional human-readable label")),
		mcp.WithOutputSchema[CreateResponse](),
	), mcp.NewStructuredToolHandler(s.handleCreate))

	s.mcpServer.AddTool(mcp.NewTool("test_automaton",
		mcp.WithDescription("Run an input string against a stored automaton and report the verdict."),
		kindOption(),
		mcp.WithString("id", mcp.Required(), mcp.Description("Automaton identifier")),
		mcp.WithString("input", mcp.Required(), mcp.Description("Input string, one symbol per character")),
		mcp.WithOutputSchema[TestResponse](),
	), mcp.NewStructuredToolHandler(s.handleTest))

	s.mcpServer.AddTool(mcp.NewTool("describe_automaton",
		mcp.WithDescription("Describe a stored automaton as markdown, including its transition table and diagram."),
		kindOption(),
		mcp.WithString("id", mcp.Required(), mcp.Description("Automaton identifier")),
	), s.handleDescribe)

	s.mcpServer.AddTool(mcp.NewTool("render_graph",
		mcp.WithDescription("Render the state diagram of a stored automaton. With input, the halting state is highlighted."),
		kindOption(),
		mcp.WithString("id", mcp.Required(), mcp.Description("Automaton identifier")),
		mcp.WithString("format", mcp.Enum(string(graph.FormatMermaid), string(graph.FormatDOT)), mcp.Description("Diagram syntax (default mermaid)")),
		mcp.WithString("input", mcp.Description("Optional input to run before rendering")),
	), s.handleGraph)
}

func (s *Server) handleCreate(ctx context.Context, request mcp.CallToolRequest, args CreateArgs) (CreateResponse, error) {
	kind, err := domain.ParseKind(args.Kind)
	if err != nil {
		return CreateResponse{}, err
	}
	var raw map[string]any
	if err := json.Unmarshal([]byte(args.Definition), &raw); err != nil {
		return CreateResponse{}, fmt.Errorf("definition is not a JSON object: %w", err)
	}
	if raw == nil {
		return CreateResponse{}, errors.New("definition is not a JSON object")
	}

	id, err := s.service.CreateNamed(ctx, kind, args.Name, raw)
	if err != nil {
		s.logger.Debug("MCP create rejected", "kind", kind, "err", err)
		return CreateResponse{}, err
	}
	return CreateResponse{ID: id, Kind: kind}, nil
}

func (s *Server) handleTest(ctx context.Context, request mcp.CallToolRequest, args TestArgs) (TestResponse, error) {
	kind, err := domain.ParseKind(args.Kind)
	if err != nil {
		return TestResponse{}, err
	}
	res, err := s.service.Test(ctx, args.ID, kind, args.Input)
	if err != nil {
		s.logger.Debug("MCP test failed", "id", args.ID, "kind", kind, "err", err)
		return TestResponse{}, err
	}
	return TestResponse{
		ID:         args.ID,
		Input:      args.Input,
		Accepted:   res.Accepted(),
		Verdict:    res.Verdict.String(),
		Steps:      res.Steps,
		FinalState: string(res.State),
		Halt:       string(res.Halt),
	}, nil
}

func (s *Server) lookup(ctx context.Context, request mcp.CallToolRequest) (domain.Entry, error) {
	var args LookupArgs
	if err := request.BindArguments(&args); err != nil {
		return domain.Entry{}, err
	}
	kind, err := domain.ParseKind(args.Kind)
	if err != nil {
		return domain.Entry{}, err
	}
	return s.service.Lookup(ctx, args.ID, kind)
}

func (s *Server) handleDescribe(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	entry, err := s.lookup(ctx, request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("describe failed: %v", err)), nil
	}
	name := entry.Name
	if name == "" {
		name = entry.ID
	}
	return mcp.NewToolResultText(tui.Describe(name, entry.Automaton)), nil
}

func (s *Server) handleGraph(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args GraphArgs
	if err := request.BindArguments(&args); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	format, err := graph.ParseFormat(args.Format)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	kind, err := domain.ParseKind(args.Kind)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	entry, err := s.service.Lookup(ctx, args.ID, kind)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("render failed: %v", err)), nil
	}

	var overlay *graph.Overlay
	if args.Input != nil {
		res, err := s.service.Test(ctx, args.ID, kind, *args.Input)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("run failed: %v", err)), nil
		}
		overlay = &graph.Overlay{State: res.State, Accepted: res.Accepted()}
	}
	return mcp.NewToolResultText(graph.Render(format, entry.Automaton, overlay)), nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(CatalogURI, "Stored automata",
		mcp.WithResourceDescription("Every automaton in the registry, grouped by kind"),
		mcp.WithMIMEType("application/json"),
	), s.readCatalog)
}

func (s *Server) readCatalog(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	catalog := make(map[domain.Kind][]CatalogItem, len(domain.Kinds))
	for _, kind := range domain.Kinds {
		entries, err := s.service.List(ctx, kind)
		if err != nil {
			return nil, fmt.Errorf("failed to list %s automata: %w", kind, err)
		}
		items := make([]CatalogItem, 0, len(entries))
		for _, e := range entries {
			items = append(items, CatalogItem{ID: e.ID, Kind: e.Kind, Name: e.Name, CreatedAt: e.CreatedAt})
		}
		catalog[kind] = items
	}
	jsonBytes, err := json.Marshal(catalog)
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      CatalogURI,
			MIMEType: "application/json",
			Text:     string(jsonBytes),
		},
	}, nil
}
