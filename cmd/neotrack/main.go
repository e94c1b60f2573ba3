package main

import (
	"context"
	"errors"
	"net/http"
	"os"

	"golang.org/x/sync/errgroup"

	"neotrack/internal/cli"
	apphttp "neotrack/internal/http"
	applog "neotrack/internal/log"
	"neotrack/internal/middleware/ratelimit"
)

func main() {
	cfg, logger := cli.MustLoadConfig()

	ctx, cancel := cli.SignalContext(logger)
	defer cancel()

	svc, cleanup, err := cli.NewLedgerService(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize ledger", applog.FieldError, err, applog.FieldBackend, cfg.DataBackend)
		os.Exit(1)
	}
	defer func() {
		if err := cleanup(); err != nil {
			logger.Error("Failed to release resources", applog.FieldError, err)
		}
	}()

	srv := apphttp.NewServer(":"+cfg.Port, svc,
		apphttp.WithLogger(logger),
		apphttp.WithRateLimit(ratelimit.Config{RequestsPerMinute: cfg.RateLimit}))
	srv.MaxHeaderBytes = 1 << 16

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Starting neotrack server",
			"port", cfg.Port,
			applog.FieldBackend, cfg.DataBackend,
			"events_enabled", cfg.AMQPURL != "")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer shutdownCancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server error", applog.FieldError, err, "port", cfg.Port)
		os.Exit(1)
	}
	logger.Info("Server stopped gracefully")
}
