package commands

import (
	"fmt"

	"github.com/leapstack-labs/leaplogic/internal/server"
	"github.com/spf13/cobra"
)

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve formula analysis over HTTP",
		Long: `Start an HTTP API for formula analysis.

Endpoints:
  POST /analyze    {"formula": "..."} or {"formulas": ["...", ...]}
  GET  /operators  Accepted operator spellings
  GET  /healthz    Liveness check

The server stops gracefully on interrupt.`,
		Example: `  leaplogic serve
  leaplogic serve --addr 127.0.0.1:9000
  curl -d '{"formula": "P -> P"}' -H 'Content-Type: application/json' localhost:8080/analyze`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmdCtx := NewCommandContext(cmd)
			cfg := cmdCtx.Cfg

			srv := server.New(server.Config{
				Addr:            cfg.Serve.Addr,
				ShutdownTimeout: cfg.Serve.ShutdownTimeout,
				MaxFormulas:     cfg.Serve.MaxFormulas,
				Concurrency:     cfg.Concurrency,
				Logger:          cmdCtx.Logger,
			})
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Serving formula analysis on %s (Ctrl-C to stop)\n", cfg.Serve.Addr)
			return srv.Serve(cmd.Context())
		},
	}

	cmd.Flags().String("addr", "", "Address to listen on (default :8080)")

	return cmd
}
