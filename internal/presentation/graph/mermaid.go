package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/automata/pkg/domain"
)

// Overlay contains the outcome of a run to visualize on the graph.
type Overlay struct {
	State    domain.State
	Accepted bool
}

// GenerateMermaid produces a Mermaid flowchart for an automaton.
// It applies semantic styling:
// - State: ((Circle))
// - Final state: (((Double circle)))
// - Initial state: entered from an invisible start point
// It also highlights the halting state of a run if an overlay is provided.
func GenerateMermaid(a domain.Automaton, overlay *Overlay) string {
	ctrl := a.FiniteControl()

	var sb strings.Builder
	sb.WriteString("graph LR\n")
	sb.WriteString("    __start(( )) --> " + sanitizeMermaidID(string(ctrl.Initial)) + "\n")

	for _, s := range domain.Sorted(ctrl.States) {
		opener, closer := "((", "))"
		if ctrl.IsFinal(s) {
			opener, closer = "(((", ")))"
		}
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", sanitizeMermaidID(string(s)), opener, escapeLabel(string(s)), closer))
	}

	for _, e := range Edges(a) {
		sb.WriteString(fmt.Sprintf("    %s -- \"%s\" --> %s\n",
			sanitizeMermaidID(string(e.From)), escapeLabel(e.Label()), sanitizeMermaidID(string(e.To))))
	}

	sb.WriteString("    style __start fill:#000,stroke:#000\n")

	if overlay != nil && overlay.State != "" {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		sb.WriteString("    classDef accepted fill:#c8e6c9,stroke:#2e7d32,stroke-width:4px,color:#000;\n")
		sb.WriteString("    classDef rejected fill:#ffcdd2,stroke:#c62828,stroke-width:4px,color:#000;\n")
		class := "rejected"
		if overlay.Accepted {
			class = "accepted"
		}
		sb.WriteString(fmt.Sprintf("    class %s %s;\n", sanitizeMermaidID(string(overlay.State)), class))
	}

	return sb.String()
}

func sanitizeMermaidID(id string) string {
	var b strings.Builder
	b.WriteString("s_")
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		default:
			fmt.Fprintf(&b, "_%x_", r)
		}
	}
	return b.String()
}

func escapeLabel(s string) string {
	// Mermaid labels are quoted; double quotes become the #quot; entity.
	return strings.ReplaceAll(s, "\"", "#quot;")
}
