// Package postgres implements the hosted-store adapters on PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"kittyfit/internal/domain"

	_ "github.com/lib/pq"
)

// DB wraps a *sql.DB and implements the hosted-store repository ports.
type DB struct {
	sql *sql.DB
}

// Ensure interfaces are met.
var (
	_ domain.AccountRepository     = (*DB)(nil)
	_ domain.ProfileRepository     = (*DB)(nil)
	_ domain.WorkoutLogRepository  = (*DB)(nil)
	_ domain.WorkoutPlanRepository = (*PlanRepo)(nil)
)

// Open connects to PostgreSQL, pings, and runs migrations.
func Open(connStr string) (*DB, error) {
	s, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}
	s.SetMaxOpenConns(10)
	s.SetMaxIdleConns(5)
	s.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.PingContext(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}

	d := &DB{sql: s}
	if err := d.migrate(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}
	return d, nil
}

// Close closes the underlying database connection.
func (d *DB) Close() error {
	return d.sql.Close()
}

func (d *DB) migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS accounts (
			id TEXT PRIMARY KEY,
			email TEXT UNIQUE NOT NULL,
			password_hash TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS profiles (
			id TEXT PRIMARY KEY,
			owner_id TEXT,
			kitty_name TEXT NOT NULL,
			avatar TEXT NOT NULL,
			experience BIGINT NOT NULL DEFAULT 0,
			level BIGINT NOT NULL DEFAULT 1,
			coins BIGINT NOT NULL DEFAULT 0
		);`,
		// owner_id is the legacy secondary key some pre-migration rows carry.
		`CREATE INDEX IF NOT EXISTS idx_profiles_owner_id ON profiles(owner_id);`,
		`CREATE TABLE IF NOT EXISTS workout_logs (
			id TEXT PRIMARY KEY,
			user_id TEXT,
			workout_id TEXT NOT NULL,
			date TIMESTAMPTZ NOT NULL,
			results TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_workout_logs_user_id ON workout_logs(user_id);`,
		`CREATE INDEX IF NOT EXISTS idx_workout_logs_date ON workout_logs(date);`,
		`CREATE TABLE IF NOT EXISTS workout_plans (
			id TEXT PRIMARY KEY,
			user_id TEXT,
			name TEXT NOT NULL,
			exercises TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_workout_plans_user_id ON workout_plans(user_id);`,
		`CREATE TABLE IF NOT EXISTS remembered_signins (
			device_id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		);`,
	}

	for _, stmt := range stmts {
		if _, err := d.sql.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
