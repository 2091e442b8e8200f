package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/lehigh-university-libraries/idcapture/internal/config"
	"github.com/lehigh-university-libraries/idcapture/internal/controller"
	"github.com/lehigh-university-libraries/idcapture/internal/handlers"
	"github.com/lehigh-university-libraries/idcapture/internal/ocr"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var port string
	var configPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the capture API server",
		Long: `Starts the idcapture HTTP API.

Each client creates a session, uploads an ID-card image, starts recognition
and then reviews and saves the extracted fields.`,
		Example: `  # Start server on default port 8888 with the mock recognizer
  idcapture serve

  # Use Gemini on a custom port
  RECOGNITION_PROVIDER=gemini idcapture serve --port 3000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if port != "" {
				cfg.Server.Port = port
			}
			setupLogger(cfg)

			recognizer, err := ocr.NewRecognizer(cfg.Recognition)
			if err != nil {
				return err
			}

			handler := handlers.New(recognizer, handlers.Config{
				MaxUploadBytes:    cfg.Server.MaxUploadBytes,
				SaveResetDelay:    cfg.Form.SaveResetDelay,
				ProcessingTimeout: cfg.Recognition.Timeout,
				Persister:         controller.LogPersister{},
			})

			addr := ":" + cfg.Server.Port
			server := &http.Server{
				Addr:              addr,
				Handler:           handler.Routes(),
				ReadHeaderTimeout: 10 * time.Second,
			}

			serverErr := make(chan error, 1)
			go func() {
				slog.Info("idcapture API available", "addr", addr, "url", "http://localhost"+addr, "provider", cfg.Recognition.Provider)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					serverErr <- err
				}
			}()

			// Wait for context cancellation (Ctrl+C) or server error
			select {
			case <-cmd.Context().Done():
				slog.Info("Shutting down server...")
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

	cmd.Flags().StringVarP(&port, "port", "p", "", "Port to listen on (default from config, 8888)")
	cmd.Flags().StringVar(&configPath, "config", "", "Path to a YAML config file")

	return cmd
}

func setupLogger(cfg *config.Config) {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()})
	slog.SetDefault(slog.New(handler))
}
