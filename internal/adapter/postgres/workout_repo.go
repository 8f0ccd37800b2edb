package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"fittrack/internal/domain"
)

// WorkoutSessionRepo implements domain.WorkoutSessionRepository on DB.
type WorkoutSessionRepo struct {
	db *DB
}

func NewWorkoutSessionRepo(db *DB) *WorkoutSessionRepo {
	return &WorkoutSessionRepo{db: db}
}

const sessionCols = "id, user_id, started_at, ended_at, perceived_exertion, completed, mood, calories_burned, notes, created_at, updated_at"

func scanSession(row interface{ Scan(...any) error }) (*domain.WorkoutSession, error) {
	var ws domain.WorkoutSession
	err := row.Scan(&ws.ID, &ws.UserID, &ws.StartedAt, &ws.EndedAt, &ws.PerceivedExertion,
		&ws.Completed, &ws.Mood, &ws.CaloriesBurned, &ws.Notes, &ws.CreatedAt, &ws.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ws, nil
}

func (r *WorkoutSessionRepo) Insert(ctx context.Context, ws *domain.WorkoutSession) (*domain.WorkoutSession, error) {
	return scanSession(r.db.queryRow(ctx,
		`INSERT INTO workout_sessions (user_id, started_at, ended_at, perceived_exertion, completed, mood, calories_burned, notes, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9) RETURNING `+sessionCols,
		ws.UserID, ws.StartedAt, ws.EndedAt, ws.PerceivedExertion, ws.Completed,
		ws.Mood, ws.CaloriesBurned, ws.Notes, time.Now(),
	))
}

func (r *WorkoutSessionRepo) FindByID(ctx context.Context, id int64) (*domain.WorkoutSession, error) {
	return scanSession(r.db.queryRow(ctx, "SELECT "+sessionCols+" FROM workout_sessions WHERE id = $1", id))
}

func (r *WorkoutSessionRepo) List(ctx context.Context, f domain.SessionFilter) ([]domain.WorkoutSession, error) {
	query := "SELECT " + sessionCols + " FROM workout_sessions"
	var (
		conds []string
		args  []any
	)
	if f.UserID != nil {
		args = append(args, *f.UserID)
		conds = append(conds, fmt.Sprintf("user_id = $%d", len(args)))
	}
	if f.Completed != nil {
		args = append(args, *f.Completed)
		conds = append(conds, fmt.Sprintf("completed = $%d", len(args)))
	}
	for i, c := range conds {
		if i == 0 {
			query += " WHERE " + c
		} else {
			query += " AND " + c
		}
	}
	args = append(args, f.Skip, f.Limit)
	query += fmt.Sprintf(" ORDER BY started_at DESC, id OFFSET $%d LIMIT $%d", len(args)-1, len(args))

	rows, err := r.db.query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.WorkoutSession, 0, f.Limit)
	for rows.Next() {
		ws, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *ws)
	}
	return out, rows.Err()
}

func (r *WorkoutSessionRepo) Update(ctx context.Context, ws *domain.WorkoutSession) error {
	_, err := r.db.exec(ctx,
		`UPDATE workout_sessions SET started_at=$1, ended_at=$2, perceived_exertion=$3, completed=$4,
		 mood=$5, calories_burned=$6, notes=$7, updated_at=$8 WHERE id=$9`,
		ws.StartedAt, ws.EndedAt, ws.PerceivedExertion, ws.Completed, ws.Mood,
		ws.CaloriesBurned, ws.Notes, time.Now(), ws.ID,
	)
	return err
}

// Delete removes the session; its exercise logs go with it via ON DELETE CASCADE.
func (r *WorkoutSessionRepo) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.exec(ctx, "DELETE FROM workout_sessions WHERE id = $1", id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// ExerciseLogRepo implements domain.ExerciseLogRepository on DB.
type ExerciseLogRepo struct {
	db *DB
}

func NewExerciseLogRepo(db *DB) *ExerciseLogRepo {
	return &ExerciseLogRepo{db: db}
}

const logCols = "id, session_id, exercise_id, sets, reps, weight_kg, duration_sec, rest_sec, form_rating, difficulty, created_at, updated_at"

func scanLog(row interface{ Scan(...any) error }) (*domain.ExerciseLog, error) {
	var el domain.ExerciseLog
	err := row.Scan(&el.ID, &el.SessionID, &el.ExerciseID, &el.Sets, &el.Reps, &el.WeightKG,
		&el.DurationSec, &el.RestSec, &el.FormRating, &el.Difficulty, &el.CreatedAt, &el.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &el, nil
}

func (r *ExerciseLogRepo) Insert(ctx context.Context, el *domain.ExerciseLog) (*domain.ExerciseLog, error) {
	return scanLog(r.db.queryRow(ctx,
		`INSERT INTO exercise_logs (session_id, exercise_id, sets, reps, weight_kg, duration_sec, rest_sec, form_rating, difficulty, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10) RETURNING `+logCols,
		el.SessionID, el.ExerciseID, el.Sets, el.Reps, el.WeightKG, el.DurationSec,
		el.RestSec, el.FormRating, el.Difficulty, time.Now(),
	))
}

func (r *ExerciseLogRepo) FindByID(ctx context.Context, id int64) (*domain.ExerciseLog, error) {
	return scanLog(r.db.queryRow(ctx, "SELECT "+logCols+" FROM exercise_logs WHERE id = $1", id))
}

func (r *ExerciseLogRepo) List(ctx context.Context, f domain.LogFilter) ([]domain.ExerciseLog, error) {
	// OwnerID scopes through the owning session, so the filtered query joins
	// workout_sessions.
	query := "SELECT el." + strings.ReplaceAll(logCols, ", ", ", el.") + " FROM exercise_logs el"
	var (
		conds []string
		args  []any
	)
	if f.OwnerID != nil {
		query += " JOIN workout_sessions ws ON ws.id = el.session_id"
		args = append(args, *f.OwnerID)
		conds = append(conds, fmt.Sprintf("ws.user_id = $%d", len(args)))
	}
	if f.SessionID != nil {
		args = append(args, *f.SessionID)
		conds = append(conds, fmt.Sprintf("el.session_id = $%d", len(args)))
	}
	for i, c := range conds {
		if i == 0 {
			query += " WHERE " + c
		} else {
			query += " AND " + c
		}
	}
	args = append(args, f.Skip, f.Limit)
	query += fmt.Sprintf(" ORDER BY el.id OFFSET $%d LIMIT $%d", len(args)-1, len(args))

	rows, err := r.db.query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.ExerciseLog, 0, f.Limit)
	for rows.Next() {
		el, err := scanLog(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *el)
	}
	return out, rows.Err()
}

func (r *ExerciseLogRepo) Update(ctx context.Context, el *domain.ExerciseLog) error {
	_, err := r.db.exec(ctx,
		`UPDATE exercise_logs SET sets=$1, reps=$2, weight_kg=$3, duration_sec=$4, rest_sec=$5,
		 form_rating=$6, difficulty=$7, updated_at=$8 WHERE id=$9`,
		el.Sets, el.Reps, el.WeightKG, el.DurationSec, el.RestSec, el.FormRating,
		el.Difficulty, time.Now(), el.ID,
	)
	return err
}

func (r *ExerciseLogRepo) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.exec(ctx, "DELETE FROM exercise_logs WHERE id = $1", id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *ExerciseLogRepo) CountForExercise(ctx context.Context, exerciseID int64) (int, error) {
	var n int
	err := r.db.queryRow(ctx, "SELECT COUNT(*) FROM exercise_logs WHERE exercise_id = $1", exerciseID).Scan(&n)
	return n, err
}
