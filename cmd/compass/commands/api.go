package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/rmaia/fiicompass/internal/api"
	"github.com/rmaia/fiicompass/internal/api/handlers"
)

// apiCmd represents the api command.
var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Start the dashboard API server",
	Long: `Starts the REST API server backing the dashboard.

Endpoints:
  GET  /health                       - Health check
  GET  /api/ranking                  - Scored, ranked fund table
  GET  /api/funds                    - Universe with latest stored metrics
  GET  /api/funds/{ticker}/history   - Metric series for charts
  GET  /api/reference-rate           - Current SELIC reference rate
  POST /api/collect                  - Trigger a collection pass
  GET  /api/ws                       - Dashboard refresh events

Example:
  go run ./cmd/compass api
  go run ./cmd/compass api --port 8080`,
	RunE: runAPIServer,
}

var apiPort string

func init() {
	rootCmd.AddCommand(apiCmd)

	apiCmd.Flags().StringVar(&apiPort, "port", "", "API server port (overrides PORT)")
}

func runAPIServer(cmd *cobra.Command, args []string) error {
	d, err := buildDeps("")
	if err != nil {
		return err
	}
	defer d.close()

	if apiPort != "" {
		d.cfg.Port = apiPort
	}

	d.log.WithFields(map[string]interface{}{
		"port":   d.cfg.Port,
		"source": d.col.Source(),
		"funds":  len(d.universe),
	}).Info("Initializing API server")

	stream := handlers.NewStreamHandler(d.log)
	d.service.SetReportHook(stream.NotifyReport)

	dashboard := handlers.NewDashboardHandler(d.service, d.repo, d.log)

	router := api.NewRouter(dashboard, stream, d.log)
	server := api.New(d.cfg, d.log, router)

	go func() {
		if err := server.Start(); err != nil {
			d.log.WithError(err).Fatal("Failed to start server")
		}
	}()

	fmt.Printf("Server running on http://localhost:%s (source: %s)\n", d.cfg.Port, d.col.Source())
	fmt.Println("Press Ctrl+C to stop")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	d.log.Info("Server stopped")
	return nil
}
