package migrations

import (
	"context"
	"database/sql"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/yigit/sharesuki/internal/db"
)

// PostgresRunner applies migrations through a pgx pool.
type PostgresRunner struct {
	db *db.PostgresDB
}

// NewPostgresRunner creates a runner for Postgres.
func NewPostgresRunner(database *db.PostgresDB) *PostgresRunner {
	return &PostgresRunner{db: database}
}

func (r *PostgresRunner) EnsureVersionTable(ctx context.Context) error {
	_, err := r.db.Pool.Exec(ctx, `
	CREATE TABLE IF NOT EXISTS schema_migrations (
		version VARCHAR(255) PRIMARY KEY,
		applied_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);`)
	return err
}

func (r *PostgresRunner) IsApplied(ctx context.Context, version string) (bool, error) {
	var exists bool
	err := r.db.Pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version = $1);`, version).Scan(&exists)
	return exists, err
}

func (r *PostgresRunner) Apply(ctx context.Context, version, script string) error {
	return r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, script); err != nil {
			return err
		}
		_, err := tx.Exec(ctx,
			`INSERT INTO schema_migrations (version, applied_at) VALUES ($1, $2)`, version, time.Now())
		return err
	})
}

// SQLiteRunner applies migrations through database/sql.
type SQLiteRunner struct {
	db *db.SQLiteDB
}

// NewSQLiteRunner creates a runner for SQLite.
func NewSQLiteRunner(database *db.SQLiteDB) *SQLiteRunner {
	return &SQLiteRunner{db: database}
}

func (r *SQLiteRunner) EnsureVersionTable(ctx context.Context) error {
	_, err := r.db.DB.ExecContext(ctx, `
	CREATE TABLE IF NOT EXISTS schema_migrations (
		version TEXT PRIMARY KEY,
		applied_at TIMESTAMP NOT NULL
	);`)
	return err
}

func (r *SQLiteRunner) IsApplied(ctx context.Context, version string) (bool, error) {
	var exists bool
	err := r.db.DB.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version = ?);`, version).Scan(&exists)
	return exists, err
}

func (r *SQLiteRunner) Apply(ctx context.Context, version, script string) error {
	return r.db.WithTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, script); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO schema_migrations (version, applied_at) VALUES (?, ?)`, version, time.Now().UTC())
		return err
	})
}
