package main

import (
	"github.com/aretw0/automata/internal/cli"
	"github.com/spf13/cobra"
)

var graphCmd = &cobra.Command{
	Use:   "graph <file>",
	Short: "Export the state diagram",
	Long: `Outputs a Mermaid flowchart (graph LR) or a Graphviz digraph of the automaton in <file>.
With --input, the state the run halts in is highlighted.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, done, err := newService()
		if err != nil {
			return err
		}
		defer done()

		format, _ := cmd.Flags().GetString("format")
		opts := cli.GraphOptions{Format: format}
		if cmd.Flags().Changed("input") {
			input, _ := cmd.Flags().GetString("input")
			opts.Input = &input
		}
		return cli.Graph(cmd.Context(), svc, fileOptions(cmd, args[0]), opts, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().String("kind", "", "Kind of a bare definition: dfa, pda or tm")
	graphCmd.Flags().String("format", "mermaid", "Output format: mermaid or dot")
	graphCmd.Flags().String("input", "", "Highlight the halting state for this input")
}
