package graph

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aretw0/automata/pkg/domain"
)

// Format selects a text graph syntax.
type Format string

const (
	FormatMermaid Format = "mermaid"
	FormatDOT     Format = "dot"
)

// ParseFormat accepts "mermaid" (the default for an empty string) and "dot".
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case "", FormatMermaid:
		return FormatMermaid, nil
	case FormatDOT:
		return FormatDOT, nil
	default:
		return "", fmt.Errorf("unsupported graph format %q (want mermaid or dot)", s)
	}
}

// Render dispatches to the generator for f.
func Render(f Format, a domain.Automaton, overlay *Overlay) string {
	if f == FormatDOT {
		return GenerateDOT(a, overlay)
	}
	return GenerateMermaid(a, overlay)
}

// GenerateDOT produces a Graphviz digraph for an automaton.
func GenerateDOT(a domain.Automaton, overlay *Overlay) string {
	ctrl := a.FiniteControl()

	var sb strings.Builder
	sb.WriteString("digraph automaton {\n")
	sb.WriteString("    rankdir=LR;\n")
	sb.WriteString("    node [shape=circle];\n")
	sb.WriteString("    __start [shape=point];\n")

	for _, s := range domain.Sorted(ctrl.States) {
		var attrs []string
		if ctrl.IsFinal(s) {
			attrs = append(attrs, "shape=doublecircle")
		}
		if overlay != nil && overlay.State == s {
			color := "red"
			if overlay.Accepted {
				color = "green"
			}
			attrs = append(attrs, "style=bold", "color="+color)
		}
		line := "    " + strconv.Quote(string(s))
		if len(attrs) > 0 {
			line += " [" + strings.Join(attrs, ", ") + "]"
		}
		sb.WriteString(line + ";\n")
	}

	sb.WriteString("    __start -> " + strconv.Quote(string(ctrl.Initial)) + ";\n")
	for _, e := range Edges(a) {
		sb.WriteString(fmt.Sprintf("    %s -> %s [label=%s];\n",
			strconv.Quote(string(e.From)), strconv.Quote(string(e.To)), strconv.Quote(e.Label())))
	}

	sb.WriteString("}\n")
	return sb.String()
}
