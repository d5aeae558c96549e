package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"gdp-pipeline/internal/api"
	"gdp-pipeline/internal/api/handler"
	"gdp-pipeline/internal/logger"
	"gdp-pipeline/internal/store"
	"gdp-pipeline/pkg/router"

	"github.com/spf13/cobra"
)

var addr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the GDP document and trigger exports over HTTP",
	Long: `Starts the HTTP API:
  POST /api/v1/exports        regenerate the document in the background
  GET  /api/v1/exports[/{id}] run history (needs --history-db)
  GET  /api/v1/gdp            the generated document
  GET  /metrics               Prometheus metrics
  GET  /swagger/              API documentation`,
	RunE: serve,
}

func init() {
	serveCmd.Flags().StringVar(&addr, "addr", "", "listen address (default :8080)")
}

func serve(cmd *cobra.Command, args []string) error {
	defer logger.Sync()
	if addr != "" {
		cfg.Server.Addr = addr
	}

	if cfg.HistoryDB != "" {
		if err := store.InitDB(cfg.HistoryDB); err != nil {
			return fmt.Errorf("failed to open run history: %w", err)
		}
		defer store.Close()
	}

	handler.Configure(handler.Settings{
		Job:        cfg.Job(),
		Options:    cfg.PipelineOptions(),
		JobTimeout: cfg.Server.JobTimeout,
	})

	r := router.New()
	api.RegisterRoutes(r)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(cmd.OutOrStdout(), "🌐 Serving on %s\n", cfg.Server.Addr)
	err := r.Run(ctx, cfg.Server.Addr)
	handler.Wait()
	return err
}
