package main

import (
	"github.com/aretw0/automata/internal/cli"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Check a definition for consistency",
	Long:  `Validates the definition in <file> and reports the first problem found, if any.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, done, err := newService()
		if err != nil {
			return err
		}
		defer done()

		return cli.Validate(cmd.Context(), svc, fileOptions(cmd, args[0]), cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().String("kind", "", "Kind of a bare definition: dfa, pda or tm")
}
