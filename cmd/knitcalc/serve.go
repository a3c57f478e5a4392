package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aretw0/knitcalc/internal/cli"
	httpAdapter "github.com/aretw0/knitcalc/pkg/adapters/http"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  `Exposes the calculator as a JSON API, with its OpenAPI contract on /openapi.yaml and Prometheus metrics on /metrics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("port") {
			cfg.Server.Port, _ = cmd.Flags().GetInt("port")
		}

		debug, _ := cmd.Flags().GetBool("debug")

		setup, err := cli.BuildEngine(cmd.Context(), cfg, logger, cli.EngineOptions{
			Debug:   debug,
			Metrics: true,
		})
		if err != nil {
			return err
		}
		defer setup.Close()

		handler, err := httpAdapter.NewHandler(setup.Engine, setup.Engine.Catalog(),
			httpAdapter.WithDefaultMode(cfg.Mode),
			httpAdapter.WithLogger(logger),
			httpAdapter.WithMetrics(setup.Metrics.Handler()),
			httpAdapter.WithRateLimit(cfg.Server.RateLimit.Requests, cfg.Server.RateLimit.Window),
		)
		if err != nil {
			return fmt.Errorf("error initializing http adapter: %w", err)
		}

		srv := &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			logger.Info("Starting knitcalc server", "addr", srv.Addr, "cache", cfg.Cache.Backend)
			serverErrors <- srv.ListenAndServe()
		}()

		// Channel to listen for interrupt or terminate signals.
		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		// Blocking main and waiting for shutdown.
		select {
		case err := <-serverErrors:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return fmt.Errorf("server error: %w", err)

		case sig := <-shutdown:
			logger.Info("Start shutdown", "signal", sig)

			// Give outstanding requests a deadline for completion.
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			// Asking listener to shut down and shed load.
			if err := srv.Shutdown(ctx); err != nil {
				logger.Error("Graceful shutdown did not complete", "timeout", 5*time.Second, "err", err)
				if err := srv.Close(); err != nil {
					return fmt.Errorf("error killing server: %w", err)
				}
			}
			logger.Info("knitcalc server stopped gracefully")
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntP("port", "p", 8080, "Port to listen on (overrides server.port)")
}
