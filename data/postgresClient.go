package data

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/KotFed0t/portfolio_tracker/config"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver
	"github.com/jmoiron/sqlx"
)

const pingTimeout = 5 * time.Second

// NewPostgresClient connects with retries, configures the pool and applies
// pending migrations. Any failure is fatal for startup.
func NewPostgresClient(cfg *config.Config) *sqlx.DB {
	db, err := connectPostgres(cfg.Postgres)
	if err != nil {
		slog.Error("can't connect to postgres", slog.String("err", err.Error()))
		panic(err)
	}

	db.SetMaxOpenConns(cfg.Postgres.MaxOpenConns)
	db.SetConnMaxLifetime(cfg.Postgres.ConnMaxLifetime)
	db.SetMaxIdleConns(cfg.Postgres.MaxIdleConns)
	db.SetConnMaxIdleTime(cfg.Postgres.ConnMaxIdleTime)

	slog.Info("postgres connected", slog.String("host", cfg.Postgres.Host), slog.String("db", cfg.Postgres.DbName))

	version, err := migratePostgres(db, cfg.Postgres.MigrationDir)
	if err != nil {
		slog.Error("postgres migration failed", slog.String("err", err.Error()))
		panic(err)
	}
	slog.Info("postgres migrated successfully", slog.Uint64("schemaVersion", uint64(version)))

	return db
}

func connectPostgres(cfg config.Postgres) (*sqlx.DB, error) {
	var lastErr error

	for attempt := 1; attempt <= cfg.ConnAttempts; attempt++ {
		ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
		db, err := sqlx.ConnectContext(ctx, "pgx", cfg.DSN())
		cancel()
		if err == nil {
			return db, nil
		}
		lastErr = err

		slog.Info(
			"postgres is not ready",
			slog.Int("attempt", attempt),
			slog.Int("attempts", cfg.ConnAttempts),
			slog.String("err", err.Error()),
		)
		time.Sleep(cfg.ConnRetryDelay)
	}

	return nil, fmt.Errorf("postgres unavailable after %d attempts: %w", cfg.ConnAttempts, lastErr)
}

func migratePostgres(db *sqlx.DB, migrationDir string) (uint, error) {
	driver, err := postgres.WithInstance(db.DB, &postgres.Config{})
	if err != nil {
		return 0, fmt.Errorf("postgres.WithInstance: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(fmt.Sprintf("file://%s", migrationDir), "postgres", driver)
	if err != nil {
		return 0, fmt.Errorf("migrate.NewWithDatabaseInstance: %w", err)
	}

	if err = m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return 0, fmt.Errorf("m.Up: %w", err)
	}

	version, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("m.Version: %w", err)
	}
	if dirty {
		return version, fmt.Errorf("schema version %d is dirty", version)
	}

	return version, nil
}
