package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/automata"
	"github.com/aretw0/automata/internal/cli"
	"github.com/spf13/cobra"
)

var cfg = cli.DefaultConfig()

var rootCmd = &cobra.Command{
	Use:   "automata",
	Short: "Automata validates and runs finite, pushdown and Turing machines",
	Long: `Automata checks DFA, PDA and Turing machine definitions and runs them against inputs.
Definitions are JSON or YAML files, either bare or wrapped in a {kind, name, definition} envelope.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.BoolVar(&cfg.Debug, "debug", false, "Enable debug logging")
	flags.StringVar(&cfg.LogFile, "log-file", "", "Also write JSON logs to this file")
	flags.IntVar(&cfg.MaxSteps, "max-steps", cfg.MaxSteps, "Step budget per run (env "+cli.EnvMaxSteps+")")
	flags.IntVar(&cfg.MaxIdleSteps, "max-idle-steps", cfg.MaxIdleSteps, "Consecutive non-consuming PDA moves allowed (env "+cli.EnvMaxIdleSteps+")")
}

// newLogger builds the logger for a command. The returned func releases the log file.
func newLogger(quiet bool) (*slog.Logger, func(), error) {
	logger, closer, err := cfg.NewLogger(quiet)
	if err != nil {
		return nil, nil, err
	}
	return logger, func() { _ = closer.Close() }, nil
}

// newService wires a service for one-shot file commands.
func newService() (*automata.Service, func(), error) {
	logger, done, err := newLogger(true)
	if err != nil {
		return nil, nil, err
	}
	return cli.NewService(cfg, logger), done, nil
}

func fileOptions(cmd *cobra.Command, path string) cli.FileOptions {
	kind, _ := cmd.Flags().GetString("kind")
	return cli.FileOptions{Path: path, Kind: kind}
}

func version() string {
	return automata.VersionString()
}
