package db

import (
	"context"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5/pgxpool"

	"newsmarketplace/migrations"
)

// DB wraps a pgxpool connection pool.
type DB struct {
	Pool *pgxpool.Pool
}

// New creates a new database connection pool.
func New(ctx context.Context, connString string) (*DB, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("failed to create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{Pool: pool}, nil
}

// RunMigrations runs all embedded SQL migrations.
func (d *DB) RunMigrations(connString string) error {
	sourceDriver, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return fmt.Errorf("failed to create migration source: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", sourceDriver, connString)
	if err != nil {
		return fmt.Errorf("failed to create migrator: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("migration failed: %w", err)
	}

	return nil
}

// Ping checks that the database is reachable.
func (d *DB) Ping(ctx context.Context) error {
	return d.Pool.Ping(ctx)
}

// Close closes the connection pool.
func (d *DB) Close() {
	d.Pool.Close()
}

// SeedDev inserts a development user and super admin. Existing rows are kept.
func (d *DB) SeedDev(ctx context.Context) error {
	if _, err := d.Pool.Exec(ctx, `
		INSERT INTO users (email, first_name, last_name)
		VALUES ('dev.user@example.com', 'Dev', 'User')
		ON CONFLICT (email) DO NOTHING
	`); err != nil {
		return fmt.Errorf("failed to seed user: %w", err)
	}

	if _, err := d.Pool.Exec(ctx, `
		INSERT INTO admins (email, name, role)
		VALUES ('dev.admin@example.com', 'Dev Admin', 'super_admin')
		ON CONFLICT (email) DO NOTHING
	`); err != nil {
		return fmt.Errorf("failed to seed admin: %w", err)
	}

	return nil
}
