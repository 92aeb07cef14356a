package db

import (
	"context"
	"fmt"

	"task_manager_api/internal/config"
	"task_manager_api/internal/repository"

	"github.com/rs/zerolog"
)

// OpenStore builds the TaskStore selected by STORE_DRIVER, wrapped with
// metrics. The Postgres schema is managed by the migrate command; SQLite is
// migrated on open.
func OpenStore(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (repository.TaskStore, error) {
	var store repository.TaskStore

	switch cfg.Store.Driver {
	case config.DriverPostgres:
		pool, err := Connect(ctx, cfg.Postgres, logger)
		if err != nil {
			return nil, err
		}
		store = repository.NewTaskRepository(pool, logger)

	case config.DriverSQLite:
		gdb, err := OpenSQLite(cfg.SQLite.Path, logger)
		if err != nil {
			return nil, err
		}
		repo := repository.NewSQLiteTaskRepository(gdb)
		if err := repo.AutoMigrate(); err != nil {
			repo.Close()
			return nil, err
		}
		store = repo

	case config.DriverRedis:
		client, err := ConnectRedis(ctx, cfg.Redis, logger)
		if err != nil {
			return nil, err
		}
		store = repository.NewRedisTaskRepository(client, "")

	case config.DriverMemory:
		logger.Warn().Msg("using in-memory task store, data is lost on exit")
		store = repository.NewMemoryTaskRepository()

	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}

	return repository.Instrument(store, cfg.Store.Driver), nil
}
