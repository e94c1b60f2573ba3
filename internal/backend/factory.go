package backend

import (
	"context"
	"fmt"

	applog "neotrack/internal/log"
	"neotrack/internal/storage/bolt"
	"neotrack/internal/storage/file"
	"neotrack/internal/storage/memory"
	"neotrack/internal/storage/postgres"
	"neotrack/internal/storage/sqlite"
)

// DefaultFactory implements the Factory interface
type DefaultFactory struct {
	logger *applog.Logger
}

// NewFactory creates a new backend factory
func NewFactory(logger *applog.Logger) Factory {
	if logger == nil {
		logger = applog.FromContext(context.Background())
	}
	return &DefaultFactory{
		logger: logger.WithComponent(applog.ComponentBackend),
	}
}

// CreateBackend implements Factory.CreateBackend
func (f *DefaultFactory) CreateBackend(ctx context.Context, config Config) (*BackendResult, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	switch config.Type {
	case MemoryBackend:
		f.logger.Info("Initialized memory backend")
		store := memory.New()
		return &BackendResult{Storage: store, Cleanup: store.Close}, nil
	case FileBackend:
		return f.createFileBackend(config)
	case SQLiteBackend:
		return f.createSQLiteBackend(config)
	case BoltBackend:
		return f.createBoltBackend(config)
	case PostgresBackend:
		return f.createPostgresBackend(ctx, config)
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}
}

func (f *DefaultFactory) createFileBackend(config Config) (*BackendResult, error) {
	dataDir := config.DataDirectory
	if dataDir == "" {
		dataDir = "data"
	}

	store, err := file.New(dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	f.logger.Info("Initialized file backend", applog.FieldBackend, FileBackend, "data_directory", dataDir)

	return &BackendResult{Storage: store, Cleanup: store.Close}, nil
}

func (f *DefaultFactory) createSQLiteBackend(config Config) (*BackendResult, error) {
	store, err := sqlite.New(config.SQLiteDBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize SQLite storage: %w", err)
	}

	f.logger.Info("Initialized SQLite backend", applog.FieldBackend, SQLiteBackend, "db_path", config.SQLiteDBPath)

	return &BackendResult{Storage: store, Cleanup: store.Close}, nil
}

func (f *DefaultFactory) createBoltBackend(config Config) (*BackendResult, error) {
	store, err := bolt.New(config.BoltDBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize bolt storage: %w", err)
	}

	f.logger.Info("Initialized bolt backend", applog.FieldBackend, BoltBackend, "db_path", config.BoltDBPath)

	return &BackendResult{Storage: store, Cleanup: store.Close}, nil
}

func (f *DefaultFactory) createPostgresBackend(ctx context.Context, config Config) (*BackendResult, error) {
	store, err := postgres.New(ctx, config.PostgresDSN)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize postgres storage: %w", err)
	}

	f.logger.Info("Initialized postgres backend", applog.FieldBackend, PostgresBackend)

	return &BackendResult{Storage: store, Cleanup: store.Close}, nil
}
