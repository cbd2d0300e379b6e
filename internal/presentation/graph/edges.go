package graph

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aretw0/automata/pkg/domain"
)

// Edge is one arrow of a state diagram. Parallel transitions between the same
// pair of states are merged into a single edge with one label per transition.
type Edge struct {
	From   domain.State
	To     domain.State
	Labels []string
}

// Label joins the transition labels of e.
func (e Edge) Label() string { return strings.Join(e.Labels, ", ") }

// Edges flattens the transition table of a into sorted, merged edges.
func Edges(a domain.Automaton) []Edge {
	type pair struct{ from, to domain.State }
	merged := map[pair][]string{}

	add := func(from, to domain.State, label string) {
		p := pair{from, to}
		merged[p] = append(merged[p], label)
	}

	switch m := a.(type) {
	case *domain.DFA:
		for k, to := range m.Delta {
			add(k.From, to, symbol(k.Symbol))
		}
	case *domain.PDA:
		for k, mv := range m.Delta {
			push := "ε"
			if len(mv.Push) > 0 {
				var b strings.Builder
				for _, s := range mv.Push {
					b.WriteString(string(s))
				}
				push = b.String()
			}
			add(k.From, mv.To, fmt.Sprintf("%s, %s/%s", symbol(k.Input), k.Top, push))
		}
	case *domain.TM:
		for k, mv := range m.Delta {
			add(k.From, mv.To, fmt.Sprintf("%s→%s, %s", k.Symbol, mv.Write, mv.Move))
		}
	}

	edges := make([]Edge, 0, len(merged))
	for p, labels := range merged {
		sort.Strings(labels)
		edges = append(edges, Edge{From: p.from, To: p.to, Labels: labels})
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].From != edges[j].From {
			return edges[i].From < edges[j].From
		}
		return edges[i].To < edges[j].To
	})
	return edges
}

func symbol(s domain.Symbol) string {
	if s == domain.Epsilon {
		return "ε"
	}
	return string(s)
}
