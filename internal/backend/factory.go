package backend

import (
	"context"
	"fmt"

	"fintrack/internal/log"
	"fintrack/internal/storage"
	"fintrack/internal/storage/memory"
	"fintrack/internal/storage/sqlite"
)

// SeedFiles maps each collection key to the JSON file the memory backend
// loads it from.
var SeedFiles = map[string]string{
	storage.ExpensesKey:      "expenses.json",
	storage.SubscriptionsKey: "subscriptions.json",
	storage.BudgetKey:        "budget.json",
}

// DefaultFactory implements the Factory interface
type DefaultFactory struct {
	logger *log.Logger
}

// NewFactory creates a new backend factory
func NewFactory(logger *log.Logger) Factory {
	if logger == nil {
		logger = log.Discard()
	}
	return &DefaultFactory{
		logger: logger.WithComponent(log.ComponentBackend),
	}
}

// CreateBackend implements Factory.CreateBackend
func (f *DefaultFactory) CreateBackend(ctx context.Context, config Config) (*BackendResult, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	var (
		result *BackendResult
		err    error
	)
	switch config.Type {
	case SQLiteBackend:
		result, err = f.createSQLiteBackend(ctx, config)
	case MemoryBackend:
		result, err = f.createMemoryBackend(ctx, config)
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}
	if err != nil {
		return nil, err
	}

	if config.CacheSize > 0 {
		cached := storage.NewCachedKV(result.Store, config.CacheSize, config.CacheTTL, f.logger)
		f.logger.DebugContext(ctx, "Read cache enabled", "size", config.CacheSize, "ttl", config.CacheTTL)
		return &BackendResult{Store: cached, Cleanup: cached.Close}, nil
	}
	return result, nil
}

func (f *DefaultFactory) createSQLiteBackend(ctx context.Context, config Config) (*BackendResult, error) {
	store, err := sqlite.Open(config.SQLiteDBPath)
	if err != nil {
		f.logger.ErrorContext(ctx, "Failed to open SQLite store",
			log.NewFields().
				WithOperation(log.OpStartup).
				WithErrorType(log.ErrorTypeDatabase).
				WithError(err).
				ToSlice()...)
		return nil, fmt.Errorf("failed to initialize SQLite store: %w", err)
	}

	f.logger.DebugContext(ctx, "Initialized SQLite backend", log.FieldPath, config.SQLiteDBPath)

	return &BackendResult{
		Store:   store,
		Cleanup: store.Close,
	}, nil
}

func (f *DefaultFactory) createMemoryBackend(ctx context.Context, config Config) (*BackendResult, error) {
	dataDir := config.DataDirectory
	if dataDir == "" {
		dataDir = "data"
	}

	store := memory.NewFromFiles(dataDir, SeedFiles)

	f.logger.DebugContext(ctx, "Initialized memory backend", "data_directory", dataDir, log.FieldCount, store.Len())

	return &BackendResult{
		Store:   store,
		Cleanup: store.Close,
	}, nil
}
