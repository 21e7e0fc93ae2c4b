package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"hydration/internal/domain"

	"github.com/lib/pq"
)

// DB wraps a *sql.DB and implements domain repository interfaces.
type DB struct {
	sql *sql.DB
}

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

// Ping reports whether the database is reachable.
func (d *DB) Ping(ctx context.Context) error {
	return d.sql.PingContext(ctx)
}

func (d *DB) migrate(ctx context.Context) error {
	stmts := []string{
		"CREATE TABLE IF NOT EXISTS users (id BIGSERIAL PRIMARY KEY, username TEXT UNIQUE NOT NULL, password_hash TEXT NOT NULL, created_at TIMESTAMPTZ NOT NULL);",
		"CREATE TABLE IF NOT EXISTS sessions (token TEXT PRIMARY KEY, user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE, user_agent TEXT NOT NULL DEFAULT '', ip TEXT NOT NULL DEFAULT '', expires_at TIMESTAMPTZ NOT NULL, created_at TIMESTAMPTZ NOT NULL);",
		"CREATE INDEX IF NOT EXISTS idx_sessions_expires_at ON sessions(expires_at);",
		`CREATE TABLE IF NOT EXISTS hydration_profiles (
			user_id BIGINT PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
			weight_kg DOUBLE PRECISION NOT NULL CHECK (weight_kg BETWEEN 30 AND 300),
			gender TEXT NOT NULL CHECK (gender IN ('male','female','other')),
			activity_level TEXT NOT NULL,
			daily_goal INTEGER NOT NULL,
			custom_goal INTEGER,
			timezone TEXT NOT NULL DEFAULT '',
			location TEXT NOT NULL DEFAULT '',
			use_geolocation BOOLEAN NOT NULL DEFAULT FALSE,
			use_weather BOOLEAN NOT NULL DEFAULT FALSE,
			updated_at TIMESTAMPTZ NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS intake_logs (
			id BIGSERIAL PRIMARY KEY,
			user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			amount_ml INTEGER NOT NULL CHECK (amount_ml > 0),
			beverage_type TEXT NOT NULL,
			hydration_percentage INTEGER NOT NULL CHECK (hydration_percentage BETWEEN 0 AND 100),
			logged_at TIMESTAMPTZ NOT NULL,
			date TEXT NOT NULL
		);`,
		"CREATE INDEX IF NOT EXISTS idx_intake_logs_user_date ON intake_logs(user_id, date);",
		"CREATE INDEX IF NOT EXISTS idx_intake_logs_user_logged_at ON intake_logs(user_id, logged_at);",
		`CREATE TABLE IF NOT EXISTS daily_summaries (
			user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			date TEXT NOT NULL,
			total_intake INTEGER NOT NULL,
			goal_amount INTEGER NOT NULL,
			goal_met BOOLEAN NOT NULL,
			streak_day INTEGER NOT NULL,
			log_count INTEGER NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL,
			PRIMARY KEY (user_id, date)
		);`,
		"CREATE INDEX IF NOT EXISTS idx_daily_summaries_goal_met ON daily_summaries(user_id, date) WHERE goal_met;",
		`CREATE TABLE IF NOT EXISTS reminders (
			user_id BIGINT PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
			interval_minutes INTEGER NOT NULL CHECK (interval_minutes BETWEEN 15 AND 480),
			start_time TEXT NOT NULL,
			end_time TEXT NOT NULL,
			is_enabled BOOLEAN NOT NULL,
			sound_id TEXT NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS user_achievements (
			user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			code TEXT NOT NULL,
			unlocked_at TIMESTAMPTZ NOT NULL,
			PRIMARY KEY (user_id, code)
		);`,
		`CREATE TABLE IF NOT EXISTS subscriptions (
			user_id BIGINT PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
			status TEXT NOT NULL,
			plan_type TEXT NOT NULL DEFAULT '',
			current_period_start TIMESTAMPTZ NOT NULL,
			current_period_end TIMESTAMPTZ NOT NULL,
			cancel_at_period_end BOOLEAN NOT NULL DEFAULT FALSE
		);`,
	}

	for _, stmt := range stmts {
		if _, err := d.sql.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	// Sessions created before client binding was tracked.
	alterStmts := []string{
		"ALTER TABLE sessions ADD COLUMN IF NOT EXISTS user_agent TEXT NOT NULL DEFAULT '';",
		"ALTER TABLE sessions ADD COLUMN IF NOT EXISTS ip TEXT NOT NULL DEFAULT '';",
	}
	for _, stmt := range alterStmts {
		if _, err := d.sql.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

// isUniqueViolation reports whether err is a PostgreSQL unique_violation.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

var (
	_ domain.UserRepository         = (*DB)(nil)
	_ domain.ProfileRepository      = (*DB)(nil)
	_ domain.IntakeRepository       = (*DB)(nil)
	_ domain.SummaryRepository      = (*DB)(nil)
	_ domain.ReminderRepository     = (*DB)(nil)
	_ domain.AchievementRepository  = (*DB)(nil)
	_ domain.SubscriptionRepository = (*DB)(nil)
	_ domain.SessionRepository      = (*SessionRepo)(nil)
)
