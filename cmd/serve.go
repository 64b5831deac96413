package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/pixelgate/pixelgate/internal/engine"
	"github.com/pixelgate/pixelgate/internal/handlers"
	"github.com/pixelgate/pixelgate/internal/metrics"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the gateway web server",
		Long: `Starts the pixelgate gateway.

The gateway serves the upload page, accepts images on POST /process and
forwards them to the anonymisation engine, returning the processed JPEG.`,
		Example: `  # Start server on the configured port (5000 by default)
  pixelgate serve

  # Start server on a custom port against a local engine
  ENGINE_URL=http://localhost:6000/process pixelgate serve --port 3000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("port") {
				cfg.Server.Port = port
			}

			handler := handlers.New(cfg.Server, engine.New(cfg.Engine.URL, cfg.Engine.Timeout), metrics.New())

			addr := ":" + cfg.Server.Port
			server := &http.Server{
				Addr:              addr,
				Handler:           handler.Routes(),
				ReadHeaderTimeout: 10 * time.Second,
			}

			// Start server in goroutine
			serverErr := make(chan error, 1)
			go func() {
				slog.Info("pixelgate available", "addr", addr, "url", "http://localhost"+addr, "engine", cfg.Engine.URL)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					serverErr <- err
				}
			}()

			// Wait for context cancellation (Ctrl+C) or server error
			select {
			case <-cmd.Context().Done():
				slog.Info("Shutting down server...")
				// Give server 5 seconds to shut down gracefully
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := server.Shutdown(shutdownCtx); err != nil {
					slog.Error("Server shutdown failed", "err", err)
					return err
				}
				slog.Info("Server stopped")
				return nil
			case err := <-serverErr:
				return err
			}
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "5000", "Port to listen on (overrides config)")

	return cmd
}
