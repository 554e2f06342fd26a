package pg

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var embeddedMigrations embed.FS

const embeddedMigrationsDir = "migrations"

// Migrate applies goose migrations through the pgx pool. With an empty
// MigrationsPath the embedded users table migrations are applied.
func Migrate(ctx context.Context, pool *pgxpool.Pool, cfg Config, log migrationLogger) error {
	dir, err := migrationsDir(cfg)
	if err != nil {
		return err
	}

	// goose needs database/sql; this wrapper shares the pool's connections.
	db := stdlib.OpenDBFromPool(pool)
	defer func(db *sql.DB) {
		if err := db.Close(); err != nil {
			log.ErrorContext(ctx, "Failed to close database connection", "error", err)
		}
	}(db)

	return up(ctx, db, cfg, dir, log)
}

// migrationsDir selects the migration source and validates a custom path.
func migrationsDir(cfg Config) (string, error) {
	if cfg.MigrationsPath == "" {
		goose.SetBaseFS(embeddedMigrations)
		return embeddedMigrationsDir, nil
	}

	goose.SetBaseFS(nil)
	if _, err := os.Stat(cfg.MigrationsPath); err != nil {
		if os.IsNotExist(err) {
			return "", errors.Join(ErrMigrationsDirNotFound, err)
		}
		return "", errors.Join(ErrFailedToApplyMigrations, err)
	}
	return cfg.MigrationsPath, nil
}

func up(ctx context.Context, db *sql.DB, cfg Config, dir string, log migrationLogger) error {
	// Route goose output through the application logger instead of stdout.
	goose.SetLogger(newSlogAdapter(log))
	if cfg.MigrationsTable != "" {
		goose.SetTableName(cfg.MigrationsTable)
	}

	if err := goose.SetDialect("postgres"); err != nil {
		return errors.Join(ErrFailedToApplyMigrations, err)
	}

	if err := goose.UpContext(ctx, db, dir); err != nil {
		return errors.Join(ErrFailedToApplyMigrations, err)
	}

	return nil
}

// migrateSlogAdapter bridges goose's Printf-style logging to structured logging.
type migrateSlogAdapter struct {
	log migrationLogger
}

func newSlogAdapter(log migrationLogger) goose.Logger {
	return &migrateSlogAdapter{
		log: log,
	}
}

func (a *migrateSlogAdapter) Fatalf(format string, v ...any) {
	a.log.ErrorContext(context.Background(), fmt.Sprintf(format, v...))
}

func (a *migrateSlogAdapter) Printf(format string, v ...any) {
	a.log.InfoContext(context.Background(), fmt.Sprintf(format, v...))
}
