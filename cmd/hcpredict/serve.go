package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/rgehrsitz/hcpredict/internal/server"
	"github.com/spf13/cobra"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the prediction HTTP API",
		Long: `Serve the prediction HTTP API.

Endpoints:
  POST /v1/predictions         predict from a JSON profile
  POST /v1/reports?format=...  render a report (html, json, yaml, csv, markdown, console)
  GET  /v1/reference           reference tables and model parameters
  GET  /healthz                health check
  GET  /metrics                Prometheus metrics
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.close()

			if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
				a.settings.Server.Addr = addr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			recommender, closeFn, err := a.recommender(ctx)
			if err != nil {
				return err
			}
			defer closeFn()

			srv, err := server.New(server.Options{
				Engine:      a.engine,
				Normalizer:  a.normalizer,
				Recommender: recommender,
				Logger:      a.logger,
				Settings:    a.settings.Server,
			})
			if err != nil {
				return err
			}
			return srv.Run(ctx)
		},
	}

	cmd.Flags().String("addr", "", "Listen address (default from settings, :8080)")
	return cmd
}
