// Package postgres implements the domain repositories using PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	_ "github.com/lib/pq"
)

// DB wraps a *sql.DB and is shared by the repositories in this package.
type DB struct {
	sql  *sql.DB
	log  zerolog.Logger
	echo bool
}

// Open connects to PostgreSQL, pings, and runs migrations. When echo is true
// every statement is logged at debug level.
func Open(connStr string, log zerolog.Logger, echo bool) (*DB, error) {
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

	d := &DB{sql: s, log: log, echo: echo}
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

func (d *DB) trace(query string) {
	if d.echo {
		d.log.Debug().Str("query", query).Msg("sql")
	}
}

func (d *DB) exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	d.trace(query)
	return d.sql.ExecContext(ctx, query, args...)
}

func (d *DB) query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	d.trace(query)
	return d.sql.QueryContext(ctx, query, args...)
}

func (d *DB) queryRow(ctx context.Context, query string, args ...any) *sql.Row {
	d.trace(query)
	return d.sql.QueryRowContext(ctx, query, args...)
}

const difficultyCheck = "CHECK(%s IN ('beginner','intermediate','advanced','expert'))"

func (d *DB) migrate(ctx context.Context) error {
	diff := func(col string) string { return fmt.Sprintf(difficultyCheck, col) }
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id BIGSERIAL PRIMARY KEY,
			username TEXT UNIQUE NOT NULL,
			email TEXT UNIQUE NOT NULL,
			password_hash TEXT NOT NULL,
			full_name TEXT NOT NULL DEFAULT '',
			bio TEXT NOT NULL DEFAULT '',
			fitness_level TEXT NOT NULL DEFAULT 'beginner' ` + diff("fitness_level") + `,
			height_cm DOUBLE PRECISION NOT NULL DEFAULT 0,
			weight_kg DOUBLE PRECISION NOT NULL DEFAULT 0,
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			is_admin BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS workout_types (
			id BIGSERIAL PRIMARY KEY,
			name TEXT UNIQUE NOT NULL,
			target_muscle_group TEXT NOT NULL DEFAULT '',
			difficulty TEXT NOT NULL ` + diff("difficulty") + `,
			category TEXT NOT NULL DEFAULT '',
			avg_duration_min INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS exercises (
			id BIGSERIAL PRIMARY KEY,
			name TEXT UNIQUE NOT NULL,
			workout_type_id BIGINT REFERENCES workout_types(id) ON DELETE SET NULL,
			difficulty TEXT NOT NULL ` + diff("difficulty") + `,
			calories_per_minute DOUBLE PRECISION NOT NULL DEFAULT 0,
			equipment TEXT NOT NULL DEFAULT '',
			primary_muscle_group TEXT NOT NULL DEFAULT '',
			secondary_muscle_groups TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		);`,
		"CREATE INDEX IF NOT EXISTS idx_exercises_workout_type_id ON exercises(workout_type_id);",
		"CREATE INDEX IF NOT EXISTS idx_exercises_difficulty ON exercises(difficulty);",
		"CREATE INDEX IF NOT EXISTS idx_exercises_primary_muscle_group ON exercises(primary_muscle_group);",
		`CREATE TABLE IF NOT EXISTS workout_sessions (
			id BIGSERIAL PRIMARY KEY,
			user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			started_at TIMESTAMPTZ NOT NULL,
			ended_at TIMESTAMPTZ,
			perceived_exertion INTEGER NOT NULL CHECK(perceived_exertion BETWEEN 1 AND 10),
			completed BOOLEAN NOT NULL DEFAULT FALSE,
			mood TEXT NOT NULL DEFAULT '',
			calories_burned DOUBLE PRECISION NOT NULL DEFAULT 0,
			notes TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		);`,
		"CREATE INDEX IF NOT EXISTS idx_workout_sessions_user_id ON workout_sessions(user_id);",
		`CREATE TABLE IF NOT EXISTS exercise_logs (
			id BIGSERIAL PRIMARY KEY,
			session_id BIGINT NOT NULL REFERENCES workout_sessions(id) ON DELETE CASCADE,
			exercise_id BIGINT NOT NULL REFERENCES exercises(id),
			sets INTEGER NOT NULL DEFAULT 0,
			reps INTEGER NOT NULL DEFAULT 0,
			weight_kg DOUBLE PRECISION NOT NULL DEFAULT 0,
			duration_sec INTEGER NOT NULL DEFAULT 0,
			rest_sec INTEGER NOT NULL DEFAULT 0,
			form_rating INTEGER NOT NULL CHECK(form_rating BETWEEN 1 AND 5),
			difficulty TEXT NOT NULL ` + diff("difficulty") + `,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		);`,
		"CREATE INDEX IF NOT EXISTS idx_exercise_logs_session_id ON exercise_logs(session_id);",
		"CREATE INDEX IF NOT EXISTS idx_exercise_logs_exercise_id ON exercise_logs(exercise_id);",
		`CREATE TABLE IF NOT EXISTS body_measurements (
			id BIGSERIAL PRIMARY KEY,
			user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			measured_at TIMESTAMPTZ NOT NULL,
			weight_kg DOUBLE PRECISION NOT NULL DEFAULT 0,
			body_fat_pct DOUBLE PRECISION NOT NULL DEFAULT 0,
			chest_cm DOUBLE PRECISION NOT NULL DEFAULT 0,
			waist_cm DOUBLE PRECISION NOT NULL DEFAULT 0,
			hips_cm DOUBLE PRECISION NOT NULL DEFAULT 0,
			biceps_cm DOUBLE PRECISION NOT NULL DEFAULT 0,
			thigh_cm DOUBLE PRECISION NOT NULL DEFAULT 0,
			notes TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		);`,
		"CREATE INDEX IF NOT EXISTS idx_body_measurements_user_id ON body_measurements(user_id);",
		`CREATE TABLE IF NOT EXISTS fitness_goals (
			id BIGSERIAL PRIMARY KEY,
			user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			title TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			goal_type TEXT NOT NULL DEFAULT '',
			target_value DOUBLE PRECISION NOT NULL DEFAULT 0,
			current_value DOUBLE PRECISION NOT NULL DEFAULT 0,
			target_date TIMESTAMPTZ,
			achieved BOOLEAN NOT NULL DEFAULT FALSE,
			progress_pct DOUBLE PRECISION NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		);`,
		"CREATE INDEX IF NOT EXISTS idx_fitness_goals_user_id ON fitness_goals(user_id);",
	}

	for _, stmt := range stmts {
		if _, err := d.sql.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
