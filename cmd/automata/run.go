package main

import (
	"os"

	"github.com/aretw0/automata/internal/cli"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run <file> <input>...",
	Short: "Run an automaton against one or more inputs",
	Long: `Loads the definition in <file> and prints the verdict, step count, final state and
halt reason for every input. Exits non-zero if any input is rejected.`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, done, err := newService()
		if err != nil {
			return err
		}
		defer done()

		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()

		return cli.Run(ctx, svc, fileOptions(cmd, args[0]), args[1:], cmd.OutOrStdout(), cli.IsTerminal(os.Stdout))
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().String("kind", "", "Kind of a bare definition: dfa, pda or tm")
}
