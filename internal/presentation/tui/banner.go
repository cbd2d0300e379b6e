package tui

import (
	"fmt"
	"io"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/muesli/termenv"
)

// PrintBanner writes the startup banner for the automata server.
func PrintBanner(w io.Writer, version string) {
	p := termenv.ColorProfile()
	// Using a subtle gradient-like color scheme (Indigo/Violet)
	lines := []termenv.Style{
		termenv.String("    _         _                        _        ").Foreground(p.Color("#818cf8")),
		termenv.String("   / \\  _   _| |_ ___  _ __ ___   __ _| |_ __ _ ").Foreground(p.Color("#a78bfa")),
		termenv.String("  / _ \\| | | | __/ _ \\| '_ ` _ \\ / _` | __/ _` |").Foreground(p.Color("#c084fc")),
		termenv.String(" / ___ \\ |_| | || (_) | | | | | | (_| | || (_| |").Foreground(p.Color("#e879f9")),
		termenv.String("/_/   \\_\\__,_|\\__\\___/|_| |_| |_|\\__,_|\\__\\__,_|").Foreground(p.Color("#f472b6")),
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, l)
	}
	fmt.Fprintln(w, termenv.String("  DFA · PDA · TM  "+version).Faint())
	fmt.Fprintln(w)
}

// Verdict colours a verdict for terminal output: green for accepted, red for rejected.
func Verdict(v domain.Verdict) string {
	p := termenv.ColorProfile()
	if v == domain.Accepted {
		return termenv.String(v.String()).Foreground(p.Color("#22c55e")).Bold().String()
	}
	return termenv.String(v.String()).Foreground(p.Color("#ef4444")).Bold().String()
}
