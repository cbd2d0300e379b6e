package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/automata/internal/presentation/graph"
	"github.com/aretw0/automata/pkg/domain"
)

// Describe renders a markdown summary of an automaton: its alphabets, states and
// transition table, followed by a Mermaid diagram.
func Describe(name string, a domain.Automaton) string {
	ctrl := a.FiniteControl()

	var b strings.Builder
	title := a.Kind().Title()
	if name != "" {
		title = name + " (" + title + ")"
	}
	fmt.Fprintf(&b, "# %s\n\n", title)

	fmt.Fprintf(&b, "- **States:** %s\n", list(domain.Sorted(ctrl.States)))
	fmt.Fprintf(&b, "- **Input alphabet:** %s\n", list(domain.Sorted(ctrl.InputAlphabet)))
	switch m := a.(type) {
	case *domain.PDA:
		fmt.Fprintf(&b, "- **Stack alphabet:** %s\n", list(domain.Sorted(m.StackAlphabet)))
		fmt.Fprintf(&b, "- **Initial stack symbol:** `%s`\n", m.InitialStackSymbol)
	case *domain.TM:
		fmt.Fprintf(&b, "- **Tape alphabet:** %s\n", list(domain.Sorted(m.TapeAlphabet)))
		fmt.Fprintf(&b, "- **Blank symbol:** `%s`\n", m.Blank)
	}
	fmt.Fprintf(&b, "- **Initial state:** `%s`\n", ctrl.Initial)
	fmt.Fprintf(&b, "- **Final states:** %s\n\n", list(domain.Sorted(ctrl.Finals)))

	b.WriteString("## Transitions\n\n")
	edges := graph.Edges(a)
	if len(edges) == 0 {
		b.WriteString("_No transitions._\n\n")
	} else {
		b.WriteString("| From | Label | To |\n|---|---|---|\n")
		for _, e := range edges {
			for _, l := range e.Labels {
				fmt.Fprintf(&b, "| `%s` | %s | `%s` |\n", e.From, strings.ReplaceAll(l, "|", "\\|"), e.To)
			}
		}
		b.WriteString("\n")
	}

	b.WriteString("## Diagram\n\n```mermaid\n")
	b.WriteString(graph.GenerateMermaid(a, nil))
	b.WriteString("```\n")
	return b.String()
}

func list[T ~string](items []T) string {
	if len(items) == 0 {
		return "_none_"
	}
	parts := make([]string, len(items))
	for i, it := range items {
		parts[i] = "`" + string(it) + "`"
	}
	return strings.Join(parts, ", ")
}
