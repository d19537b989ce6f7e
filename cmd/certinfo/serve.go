package main

import (
	"github.com/spf13/cobra"

	"github.com/remiblancher/certinfo/internal/api/server"
)

// Serve command flags
var (
	servePort int
	serveHost string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve certificate inspection over HTTP",
	Long: `Start an HTTP API that inspects one endpoint per request.

Endpoints:
  GET /health
  GET /ready
  GET /api/openapi.yaml
  GET /api/v1/certificates/{host}?port=443

The trust store, timeout and default port come from the config file
(--config or CERTINFO_CONFIG). Each inspection is recorded in the audit log
when one is configured.

Examples:
  # Listen on all interfaces, port 8080
  certinfo serve

  # Bind to localhost with a config file
  certinfo serve --host 127.0.0.1 --port 9090 --config certinfo.yaml`,
	Args: func(cmd *cobra.Command, args []string) error {
		if err := cobra.NoArgs(cmd, args); err != nil {
			return usageError{err}
		}
		return nil
	},
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	serveCmd.Flags().StringVar(&serveHost, "host", "", "Host to bind to (default: all interfaces)")
}

func runServe(cmd *cobra.Command, args []string) error {
	insp, err := newInspector(settings)
	if err != nil {
		return err
	}

	srv := server.New(server.ConfigFrom(settings), version, insp)
	srv.Out = cmd.OutOrStdout()
	return srv.Start(cmd.Context())
}
