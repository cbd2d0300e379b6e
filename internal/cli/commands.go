package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/aretw0/automata"
	"github.com/aretw0/automata/internal/catalog"
	"github.com/aretw0/automata/internal/presentation/graph"
	"github.com/aretw0/automata/internal/presentation/tui"
	httpadapter "github.com/aretw0/automata/pkg/adapters/http"
	mcpadapter "github.com/aretw0/automata/pkg/adapters/mcp"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/observability"
)

// ErrRejected is returned by Run when at least one input was rejected.
var ErrRejected = errors.New("input rejected")

// FileOptions locate a description file. Kind is required for bare definitions.
type FileOptions struct {
	Path string
	Kind string
}

func (o FileOptions) read() (domain.Description, error) {
	var kind domain.Kind
	if o.Kind != "" {
		k, err := domain.ParseKind(o.Kind)
		if err != nil {
			return domain.Description{}, err
		}
		kind = k
	}
	return catalog.ReadFile(o.Path, kind)
}

// load reads the file and stores it in svc.
func load(ctx context.Context, svc *automata.Service, file FileOptions) (domain.Entry, error) {
	desc, err := file.read()
	if err != nil {
		return domain.Entry{}, err
	}
	id, err := svc.CreateNamed(ctx, desc.Kind, desc.Name, desc.Definition)
	if err != nil {
		return domain.Entry{}, fmt.Errorf("%s: %w", file.Path, err)
	}
	return svc.Lookup(ctx, id, desc.Kind)
}

// Run tests every input against the automaton in file and prints one line per input.
// It returns ErrRejected when any input was rejected, after printing all of them.
func Run(ctx context.Context, svc *automata.Service, file FileOptions, inputs []string, out io.Writer, color bool) error {
	entry, err := load(ctx, svc, file)
	if err != nil {
		return err
	}

	rejected := 0
	for _, input := range inputs {
		res, err := svc.Test(ctx, entry.ID, entry.Kind, input)
		if err != nil {
			return fmt.Errorf("input %q: %w", input, err)
		}
		verdict := res.Verdict.String()
		if color {
			verdict = tui.Verdict(res.Verdict)
		}
		fmt.Fprintf(out, "%-10s %s  steps=%d  state=%s  halt=%s\n",
			strconv.Quote(input), verdict, res.Steps, res.State, res.Halt)
		if !res.Accepted() {
			rejected++
		}
	}

	if rejected > 0 {
		return fmt.Errorf("%w: %d of %d", ErrRejected, rejected, len(inputs))
	}
	return nil
}

// Validate checks the description in file and reports a one-line summary.
func Validate(ctx context.Context, svc *automata.Service, file FileOptions, out io.Writer) error {
	entry, err := load(ctx, svc, file)
	if err != nil {
		return err
	}
	ctrl := entry.Automaton.FiniteControl()
	fmt.Fprintf(out, "%s is a valid %s (%d states, %d transitions)\n",
		entry.Name, entry.Kind.Title(), ctrl.States.Len(), transitionCount(entry.Automaton))
	return nil
}

func transitionCount(a domain.Automaton) int {
	switch m := a.(type) {
	case *domain.DFA:
		return len(m.Delta)
	case *domain.PDA:
		return len(m.Delta)
	case *domain.TM:
		return len(m.Delta)
	}
	return 0
}

// GraphOptions select the diagram syntax and an optional input whose halting state is highlighted.
type GraphOptions struct {
	Format string
	Input  *string
}

// Graph prints the state diagram of the automaton in file.
func Graph(ctx context.Context, svc *automata.Service, file FileOptions, opts GraphOptions, out io.Writer) error {
	format, err := graph.ParseFormat(opts.Format)
	if err != nil {
		return err
	}
	entry, err := load(ctx, svc, file)
	if err != nil {
		return err
	}

	var overlay *graph.Overlay
	if opts.Input != nil {
		res, err := svc.Test(ctx, entry.ID, entry.Kind, *opts.Input)
		if err != nil {
			return fmt.Errorf("input %q: %w", *opts.Input, err)
		}
		overlay = &graph.Overlay{State: res.State, Accepted: res.Accepted()}
	}
	fmt.Fprint(out, graph.Render(format, entry.Automaton, overlay))
	return nil
}

// Inspect prints a markdown description of the automaton in file through render.
func Inspect(ctx context.Context, svc *automata.Service, file FileOptions, render func(string) (string, error), out io.Writer) error {
	entry, err := load(ctx, svc, file)
	if err != nil {
		return err
	}
	md := tui.Describe(entry.Name, entry.Automaton)
	rendered, err := render(md)
	if err != nil {
		rendered = md
	}
	fmt.Fprint(out, rendered)
	return nil
}

// ServeOptions configure the HTTP server.
type ServeOptions struct {
	Port    string
	Catalog string
	Version string
}

// Serve runs the HTTP server until ctx is cancelled.
func Serve(ctx context.Context, cfg Config, opts ServeOptions, logger *slog.Logger, out io.Writer) error {
	metrics := observability.NewMetrics()
	svc := NewService(cfg, logger, automata.WithLifecycleHooks(metrics.Hooks()))

	if err := preload(ctx, svc, opts.Catalog, out); err != nil {
		return err
	}

	handler, err := httpadapter.NewHandler(svc,
		httpadapter.WithLogger(logger),
		httpadapter.WithMetrics(metrics.Handler()),
		httpadapter.WithVersion(opts.Version),
	)
	if err != nil {
		return err
	}

	printSystemMessage(out, "Serving automata API on :%s (docs at /swagger)", opts.Port)
	return httpadapter.ListenAndServe(ctx, ":"+opts.Port, handler, logger)
}

// MCPOptions configure the MCP server.
type MCPOptions struct {
	Transport string
	Port      int
	Catalog   string
	Version   string
}

// ServeMCP runs the MCP server over stdio or SSE.
// Nothing is written to stdout in stdio mode; it carries JSON-RPC.
func ServeMCP(ctx context.Context, cfg Config, opts MCPOptions, logger *slog.Logger) error {
	svc := NewService(cfg, logger)
	if err := preload(ctx, svc, opts.Catalog, io.Discard); err != nil {
		return err
	}

	srv := mcpadapter.NewServer(svc,
		mcpadapter.WithLogger(logger),
		mcpadapter.WithVersion(opts.Version),
	)

	switch opts.Transport {
	case "stdio":
		logger.Info("Starting automata MCP server (stdio)")
		return srv.ServeStdio()
	case "sse":
		logger.Info("Starting automata MCP server (SSE)", "port", opts.Port)
		return srv.ServeSSE(ctx, opts.Port)
	default:
		return fmt.Errorf("unknown transport: %s (supported: stdio, sse)", opts.Transport)
	}
}

func preload(ctx context.Context, svc *automata.Service, dir string, out io.Writer) error {
	if dir == "" {
		return nil
	}
	loaded, err := svc.LoadDir(ctx, dir)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}
	for _, l := range loaded {
		printSystemMessage(out, "Loaded %s %q as /%s/%s", l.Kind, l.Name, l.Kind, l.ID)
	}
	return nil
}
