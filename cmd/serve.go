package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"sitescan/internal/api"
	"sitescan/internal/api/handler/v1handler"
	"sitescan/internal/config"
	"sitescan/pkg/logger"
	"sitescan/pkg/metrics"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func setupServer(ctx context.Context, cfg *config.Config, deps api.Deps) func(ctx context.Context) {
	server := api.NewServer(ctx, deps, api.NewOptions(cfg))

	go func() {
		logger.Info(ctx, "starting webserver...", zap.String("addr", cfg.HTTP.Addr))
		if err := server.ListenAndServe(); err != nil {
			if !errors.Is(err, http.ErrServerClosed) {
				logger.Error(ctx, "could not start webserver", zap.Error(err))
			}
		}
	}()

	return func(ctx context.Context) {
		logger.Info(ctx, "stopping webserver...")
		if err := server.Shutdown(ctx); err != nil {
			logger.Error(ctx, "could not stop webserver", zap.Error(err))
		}
	}
}

func serveCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Starts the API server and the site scan session",
		Run: func(cmd *cobra.Command, args []string) {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			mp, err := metrics.NewMeterProvider(prometheus.DefaultRegisterer)
			if err != nil {
				logger.Fatal(ctx, "could not create meter provider", zap.Error(err))
			}

			s := getSite(ctx, cfg)
			session := newSession(ctx, cfg, s, mp, nil)

			sessionCtx, stopSession := context.WithCancel(context.Background())
			sessionDone := make(chan struct{})
			go func() {
				defer close(sessionDone)
				if err := session.Run(sessionCtx); err != nil {
					logger.Error(ctx, "site scan session stopped", zap.Error(err))
				}
			}()

			stopWebserver := setupServer(ctx, cfg, api.Deps{Deps: v1handler.Deps{
				Scanner: session,
				Options: s.options,
			}})

			// wait for interrupt
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.GracefulShutdownTimeout)
			defer cancel()

			// closes the event streams, which Shutdown does not track
			stopSession()
			<-sessionDone

			stopWebserver(shutdownCtx)

			if err := mp.Shutdown(shutdownCtx); err != nil {
				logger.Warn(ctx, "could not stop meter provider", zap.Error(err))
			}
		},
	}

	return cmd
}
