package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gcbaptista/faq-assistant/api"
	"github.com/gcbaptista/faq-assistant/internal/assistant"
)

const shutdownTimeout = 10 * time.Second

func serveCmd() *cobra.Command {
	var (
		port   string
		noSeed bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Long: `Start the FAQ assistant HTTP API.

Examples:
  faq-assistant serve
  faq-assistant serve --port 9000
  faq-assistant serve --config faq.yaml --no-seed`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(configPath)
			if err != nil {
				return err
			}
			defer a.close()

			if port != "" {
				a.cfg.Server.Port = port
			}
			return runServer(cmd.Context(), a, !noSeed)
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "", "port to listen on (overrides config)")
	cmd.Flags().BoolVar(&noSeed, "no-seed", false, "do not load the built-in corpus into an empty store")

	return cmd
}

func runServer(ctx context.Context, a *app, seedEmpty bool) error {
	if seedEmpty {
		seeded, err := a.engine.SeedIfEmpty(ctx)
		if err != nil {
			return err
		}
		if seeded {
			a.logger.Info("Empty store seeded with the built-in corpus")
		}
	}

	gin.SetMode(gin.ReleaseMode)
	router := api.NewRouter(api.Dependencies{
		Manager:   a.engine,
		Assistant: assistant.New(a.engine),
		Analytics: a.analytics,
		Seeder:    a.engine,
		Metrics:   a.metrics,
		Logger:    a.logger,
	}, a.cfg.Server.MaxBodyBytes)

	srv := &http.Server{
		Addr:              ":" + a.cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("Starting server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-errCh:
		return err
	case <-sigCtx.Done():
	}

	a.logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
