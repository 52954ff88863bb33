package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"urlnorm/internal/api"
	"urlnorm/internal/api/handler/v1handler"
	"urlnorm/internal/config"
	"urlnorm/internal/normalizer"
	"urlnorm/pkg/logger"
	"urlnorm/pkg/metrics"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// newServer builds the API server and its telemetry. The returned function
// releases the meter provider.
func newServer(cfg *config.Config) (*http.Server, func(ctx context.Context), error) {
	reg := metrics.NewRegistry()
	mp, err := api.NewMeterProvider(reg)
	if err != nil {
		return nil, nil, fmt.Errorf("could not create meter provider: %w", err)
	}
	closeMP := func(ctx context.Context) {
		if err := mp.Shutdown(ctx); err != nil {
			logger.Warn(ctx, "could not shutdown meter provider", zap.Error(err))
		}
	}

	n, err := normalizer.New(normalizer.Deps{MeterProvider: mp}, normalizer.NewOptions(cfg))
	if err != nil {
		closeMP(context.Background())

		return nil, nil, fmt.Errorf("could not create normalizer: %w", err)
	}

	server, err := api.NewServer(api.Deps{
		Deps:     v1handler.Deps{Normalizer: n},
		Registry: reg,
	}, api.NewOptions(cfg))
	if err != nil {
		closeMP(context.Background())

		return nil, nil, fmt.Errorf("could not create webserver: %w", err)
	}

	return server, closeMP, nil
}

func setupServer(ctx context.Context, cfg *config.Config) (func(ctx context.Context), error) {
	server, closeMP, err := newServer(cfg)
	if err != nil {
		return nil, err
	}

	go func() {
		logger.Info(ctx, "starting webserver...", zap.String("addr", server.Addr))
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
		closeMP(ctx)
	}, nil
}

// serveCommand constructs the 'serve' subcommand that runs the HTTP API until
// SIGINT or SIGTERM is received.
func serveCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Starts the API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			stopWebserver, err := setupServer(ctx, cfg)
			if err != nil {
				return err
			}

			// wait for interrupt
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.GracefulShutdownTimeout)
			defer cancel()

			stopWebserver(shutdownCtx)

			return nil
		},
	}

	return cmd
}
