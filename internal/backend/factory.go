package backend

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/simaogato/fintrack-backend/internal/adapter/repository/memory"
	"github.com/simaogato/fintrack-backend/internal/adapter/repository/noop"
	"github.com/simaogato/fintrack-backend/internal/adapter/repository/postgres"
	"github.com/simaogato/fintrack-backend/internal/adapter/repository/redis"
	"github.com/simaogato/fintrack-backend/internal/adapter/repository/resilience"
	"github.com/simaogato/fintrack-backend/internal/adapter/repository/sqlite"
	"github.com/simaogato/fintrack-backend/internal/config"
	"github.com/simaogato/fintrack-backend/internal/domain"
	"github.com/simaogato/fintrack-backend/internal/logging"
	"github.com/simaogato/fintrack-backend/internal/metrics"
)

// CleanupFunc releases the resources held by a backend
type CleanupFunc func() error

// Result contains the store and its cleanup function
type Result struct {
	Name    string
	Store   domain.KeyValueStore
	Cleanup CleanupFunc
}

// Factory creates key-value backends from configuration
type Factory struct {
	logger    *logging.Logger
	collector metrics.Collector
}

// NewFactory creates a new backend factory
func NewFactory(collector metrics.Collector, logger *logging.Logger) *Factory {
	if collector == nil {
		collector = metrics.NoOpCollector{}
	}
	return &Factory{
		logger:    logging.OrGlobal(logger).Named("backend"),
		collector: collector,
	}
}

// Create opens the backend selected by cfg.StorageBackend.
// Remote backends are guarded by a circuit breaker; every backend is
// instrumented.
func (f *Factory) Create(ctx context.Context, cfg *config.Config) (*Result, error) {
	var (
		store   domain.KeyValueStore
		cleanup CleanupFunc
		err     error
	)

	switch cfg.StorageBackend {
	case config.BackendMemory:
		store = memory.NewStore()
	case config.BackendNone:
		store = noop.NewStore()
	case config.BackendSQLite:
		store, cleanup, err = f.createSQLite(ctx, cfg)
	case config.BackendPostgres:
		store, cleanup, err = f.createPostgres(ctx, cfg)
	case config.BackendRedis:
		store, cleanup, err = f.createRedis(cfg)
	default:
		return nil, fmt.Errorf("unsupported storage backend: %s", cfg.StorageBackend)
	}
	if err != nil {
		return nil, err
	}

	if cleanup == nil {
		cleanup = func() error { return nil }
	}

	f.logger.Info("storage backend ready", zap.String("backend", cfg.StorageBackend))

	return &Result{
		Name:    cfg.StorageBackend,
		Store:   metrics.Instrument(store, cfg.StorageBackend, f.collector),
		Cleanup: cleanup,
	}, nil
}

func (f *Factory) createSQLite(ctx context.Context, cfg *config.Config) (domain.KeyValueStore, CleanupFunc, error) {
	store, err := sqlite.NewStore(ctx, cfg.SQLiteDBPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize SQLite store: %w", err)
	}
	f.logger.Info("opened SQLite database", zap.String("db_path", cfg.SQLiteDBPath))
	return store, store.Close, nil
}

func (f *Factory) createPostgres(ctx context.Context, cfg *config.Config) (domain.KeyValueStore, CleanupFunc, error) {
	db, err := postgres.NewDB(cfg.PostgresDSN)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.EnsureSchema(ctx); err != nil {
		db.Close()
		return nil, nil, err
	}

	store := resilience.NewStore(postgres.NewKeyValueRepository(db), config.BackendPostgres, f.resilienceConfig(cfg), f.collector, f.logger)
	return store, db.Close, nil
}

func (f *Factory) createRedis(cfg *config.Config) (domain.KeyValueStore, CleanupFunc, error) {
	redisCfg := redis.DefaultConfig()
	redisCfg.Addr = cfg.RedisAddr
	redisCfg.Password = cfg.RedisPassword
	redisCfg.DB = cfg.RedisDB
	redisCfg.KeyPrefix = cfg.RedisKeyPrefix

	client, err := redis.NewStore(redisCfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	store := resilience.NewStore(client, config.BackendRedis, f.resilienceConfig(cfg), f.collector, f.logger)
	return store, client.Close, nil
}

func (f *Factory) resilienceConfig(cfg *config.Config) resilience.Config {
	rc := resilience.DefaultConfig()
	rc.Timeout = cfg.StorageTimeout
	return rc
}
