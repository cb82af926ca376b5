// Package postgres implements the repositories on top of a pgx connection
// pool. It is the canonical store: the schema created by Migrate owns every
// uniqueness and foreign-key rule the services rely on.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const defaultTimeout = 10 * time.Second

// SQLSTATE codes mapped to domain errors.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

// Config captures the settings needed to open the pool.
type Config struct {
	URL      string
	MaxConns int32
	Timeout  time.Duration
}

// Connect opens a pool, verifies it with a ping and applies migrations.
func Connect(ctx context.Context, cfg Config) (*pgxpool.Pool, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	poolCfg, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(connectCtx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(connectCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres ping: %w", err)
	}
	if err := Migrate(connectCtx, pool); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

// Migrate creates the schema and seeds the status lookup. Every statement
// is idempotent.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS admins (
			admin_id BIGSERIAL PRIMARY KEY,
			username TEXT NOT NULL,
			email TEXT NOT NULL DEFAULT '',
			password_hash TEXT NOT NULL,
			role TEXT NOT NULL CHECK (role IN ('admin', 'super_admin', 'demo')),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			CONSTRAINT admins_username_key UNIQUE (username)
		);`,
		`CREATE TABLE IF NOT EXISTS clients (
			client_id BIGSERIAL PRIMARY KEY,
			client_name TEXT NOT NULL,
			email TEXT NOT NULL,
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			CONSTRAINT clients_name_email_key UNIQUE (client_name, email)
		);`,
		`CREATE TABLE IF NOT EXISTS statuses (
			status_id INT PRIMARY KEY,
			status_name TEXT UNIQUE NOT NULL
		);`,
		`INSERT INTO statuses (status_id, status_name) VALUES
			(1, 'Pending'), (2, 'Processing'), (3, 'In Transit'), (4, 'Delivered'), (5, 'Cancelled')
			ON CONFLICT (status_id) DO NOTHING;`,
		`CREATE TABLE IF NOT EXISTS transactions (
			tracking_id TEXT PRIMARY KEY,
			client_id BIGINT NOT NULL REFERENCES clients (client_id),
			tracking_message TEXT NOT NULL,
			tracking_status_id INT NOT NULL REFERENCES statuses (status_id),
			description TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`,
		`CREATE TABLE IF NOT EXISTS transaction_history (
			history_id BIGSERIAL PRIMARY KEY,
			tracking_id TEXT NOT NULL REFERENCES transactions (tracking_id) ON DELETE CASCADE,
			client_id BIGINT NOT NULL REFERENCES clients (client_id),
			tracking_message TEXT NOT NULL,
			description TEXT,
			tracking_status_id INT NOT NULL REFERENCES statuses (status_id),
			created_at TIMESTAMPTZ NOT NULL,
			changed_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`,
		`CREATE INDEX IF NOT EXISTS transactions_client_id_idx ON transactions (client_id);`,
		`CREATE INDEX IF NOT EXISTS transaction_history_tracking_id_idx ON transaction_history (tracking_id);`,
	}
	for _, stmt := range stmts {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply migrations: %w", err)
		}
	}
	return nil
}

func pgErrorCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

func isUniqueViolation(err error) bool { return pgErrorCode(err) == codeUniqueViolation }

func isForeignKeyViolation(err error) bool { return pgErrorCode(err) == codeForeignKeyViolation }
