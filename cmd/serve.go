package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/lehigh-university-libraries/foldbook/internal/booklet"
	"github.com/lehigh-university-libraries/foldbook/internal/bookletcmd"
	"github.com/lehigh-university-libraries/foldbook/internal/handlers"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start web server for the booklet interface",
		Long: `Starts the foldbook web interface on the specified port.

The web interface lets you upload a PDF, pick the booklet format and
download the imposed sheets. Uploads are limited by FOLDBOOK_MAX_UPLOAD_MB
and the newest FOLDBOOK_MAX_JOBS jobs are kept in memory.`,
		Example: `  # Start server on default port 8888
  foldbook serve

  # Start server on custom port
  foldbook serve --port 3000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := bookletcmd.LoadConfig(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("port") {
				cfg.Port = port
			}

			handler := handlers.New(cfg, booklet.NewPDFService())

			addr := ":" + cfg.Port
			server := &http.Server{
				Addr:              addr,
				Handler:           handler.Routes(),
				ReadHeaderTimeout: 10 * time.Second,
			}

			// Start server in goroutine
			serverErr := make(chan error, 1)
			go func() {
				slog.Info("Foldbook interface available", "addr", addr, "url", "http://localhost"+addr, "max_upload_mb", cfg.MaxUploadMB)
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

	cmd.Flags().StringVarP(&port, "port", "p", "8888", "Port to listen on")

	return cmd
}
