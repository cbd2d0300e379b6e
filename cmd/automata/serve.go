package main

import (
	"os"

	"github.com/aretw0/automata/internal/cli"
	"github.com/aretw0/automata/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Serves the automata JSON API. Definitions in --catalog are registered at startup.
The OpenAPI document is at /openapi.yaml, Swagger UI at /swagger and metrics at /metrics.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		port, _ := cmd.Flags().GetString("port")
		catalog, _ := cmd.Flags().GetString("catalog")

		logger, done, err := newLogger(false)
		if err != nil {
			return err
		}
		defer done()

		out := cmd.OutOrStdout()
		if cli.IsTerminal(os.Stdout) {
			tui.PrintBanner(out, version())
		}

		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()

		err = cli.Serve(ctx, cfg, cli.ServeOptions{Port: port, Catalog: catalog, Version: version()}, logger, out)
		if sig := ctx.Signal(); sig != nil {
			logger.Info("Server stopped", "signal", sig.String())
		}
		return err
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("port", "p", "8080", "Port to listen on")
	serveCmd.Flags().String("catalog", "", "Directory of definitions to register at startup")
}
