// Package cli provides common initialization utilities shared by
// cmd/neotrack, cmd/neotrack-worker and cmd/neotrack-cli.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"neotrack/internal/amqp"
	"neotrack/internal/backend"
	"neotrack/internal/config"
	"neotrack/internal/ledger"
	applog "neotrack/internal/log"
	"neotrack/internal/services"
	"neotrack/internal/taxonomy"
)

// SetupLogger builds the process logger at the given level and makes it the
// default.
func SetupLogger(level string) *applog.Logger {
	cfg := applog.DefaultConfig()
	cfg.Level = applog.ParseLevel(level)
	logger := applog.New(cfg)
	applog.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as this is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadConfig reads the environment and validates the result.
func LoadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// MustLoadConfig is LoadConfig for main packages: it loads .env, sets up
// logging and exits the process when the configuration is unusable.
func MustLoadConfig() (*config.Config, *applog.Logger) {
	LoadEnvFile()
	cfg, err := LoadConfig()
	if err != nil {
		logger := SetupLogger("info")
		logger.Error("Configuration validation failed", applog.FieldError, err)
		os.Exit(1)
	}
	return cfg, SetupLogger(cfg.LogLevel)
}

// OpenLedger creates the configured storage backend and loads the ledger
// from it. The returned cleanup releases the backend.
func OpenLedger(ctx context.Context, cfg *config.Config, logger *applog.Logger) (*ledger.Store, backend.CleanupFunc, error) {
	bcfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		return nil, nil, err
	}
	res, err := backend.NewFactory(logger).CreateBackend(ctx, bcfg)
	if err != nil {
		return nil, nil, fmt.Errorf("create %s backend: %w", bcfg.Type, err)
	}

	cleanup := res.Cleanup
	if cleanup == nil {
		cleanup = func() error { return nil }
	}

	store := ledger.Open(ctx, res.Storage,
		ledger.WithKey(cfg.StorageKey),
		ledger.WithBudgetKey(cfg.BudgetKey),
		ledger.WithLogger(logger))
	return store, cleanup, nil
}

// NewLedgerService wires storage, categories and the optional event
// publisher into a service. An unreachable broker only disables events.
func NewLedgerService(ctx context.Context, cfg *config.Config, logger *applog.Logger) (*services.LedgerService, func() error, error) {
	tax, err := taxonomy.Load(cfg.CategoriesFile)
	if err != nil {
		return nil, nil, err
	}

	store, closeStore, err := OpenLedger(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	opts := []services.Option{
		services.WithLogger(logger),
		services.WithCategories(tax),
		services.WithLimits(cfg.TrendWindow, cfg.BreakdownTop, cfg.ListLimit),
	}

	if cfg.AMQPURL != "" {
		client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.WithComponent(applog.ComponentAMQP).WarnContext(ctx,
				"AMQP unavailable, ledger events disabled", applog.FieldError, err)
		} else {
			opts = append(opts, services.WithPublisher(client))
		}
	}

	svc := services.NewLedgerService(store, opts...)
	cleanup := func() error {
		return errors.Join(svc.Close(), closeStore())
	}
	return svc, cleanup, nil
}

// SignalContext returns a context cancelled on SIGINT or SIGTERM.
func SignalContext(logger *applog.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(sigChan)
		select {
		case sig := <-sigChan:
			logger.Info("Shutdown signal received", "signal", sig.String())
			cancel()
		case <-ctx.Done():
		}
	}()
	return ctx, cancel
}
