package db

import (
	"context"
	"fmt"
	"io/fs"
	"sort"

	"task_manager_api/internal/migrations"

	"github.com/jackc/pgx/v5/pgxpool"
)

// MigrationNames lists the embedded migrations in apply order.
func MigrationNames() ([]string, error) {
	names, err := fs.Glob(migrations.FS, "*.sql")
	if err != nil {
		return nil, fmt.Errorf("read migrations: %w", err)
	}
	sort.Strings(names)
	return names, nil
}

// Migrate applies every embedded migration. The scripts are idempotent, so
// running it against an up-to-date database is a no-op. applied is called
// after each file.
func Migrate(ctx context.Context, pool *pgxpool.Pool, applied func(name string)) error {
	names, err := MigrationNames()
	if err != nil {
		return err
	}

	for _, name := range names {
		b, err := migrations.FS.ReadFile(name)
		if err != nil {
			return fmt.Errorf("read file %s: %w", name, err)
		}
		if _, err := pool.Exec(ctx, string(b)); err != nil {
			return fmt.Errorf("apply %s: %w", name, err)
		}
		if applied != nil {
			applied(name)
		}
	}
	return nil
}
