package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"fittrack/internal/domain"
)

// FitnessGoalRepo implements domain.FitnessGoalRepository on DB.
type FitnessGoalRepo struct {
	db *DB
}

func NewFitnessGoalRepo(db *DB) *FitnessGoalRepo {
	return &FitnessGoalRepo{db: db}
}

const goalCols = "id, user_id, title, description, goal_type, target_value, current_value, target_date, achieved, progress_pct, created_at, updated_at"

func scanGoal(row interface{ Scan(...any) error }) (*domain.FitnessGoal, error) {
	var g domain.FitnessGoal
	err := row.Scan(&g.ID, &g.UserID, &g.Title, &g.Description, &g.GoalType, &g.TargetValue,
		&g.CurrentValue, &g.TargetDate, &g.Achieved, &g.ProgressPct, &g.CreatedAt, &g.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *FitnessGoalRepo) Insert(ctx context.Context, g *domain.FitnessGoal) (*domain.FitnessGoal, error) {
	return scanGoal(r.db.queryRow(ctx,
		`INSERT INTO fitness_goals (user_id, title, description, goal_type, target_value, current_value, target_date, achieved, progress_pct, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10) RETURNING `+goalCols,
		g.UserID, g.Title, g.Description, g.GoalType, g.TargetValue, g.CurrentValue,
		g.TargetDate, g.Achieved, g.ProgressPct, time.Now(),
	))
}

func (r *FitnessGoalRepo) FindByID(ctx context.Context, id int64) (*domain.FitnessGoal, error) {
	return scanGoal(r.db.queryRow(ctx, "SELECT "+goalCols+" FROM fitness_goals WHERE id = $1", id))
}

func (r *FitnessGoalRepo) List(ctx context.Context, f domain.GoalFilter) ([]domain.FitnessGoal, error) {
	query := "SELECT " + goalCols + " FROM fitness_goals"
	var (
		conds []string
		args  []any
	)
	if f.UserID != nil {
		args = append(args, *f.UserID)
		conds = append(conds, fmt.Sprintf("user_id = $%d", len(args)))
	}
	if f.Achieved != nil {
		args = append(args, *f.Achieved)
		conds = append(conds, fmt.Sprintf("achieved = $%d", len(args)))
	}
	for i, c := range conds {
		if i == 0 {
			query += " WHERE " + c
		} else {
			query += " AND " + c
		}
	}
	args = append(args, f.Skip, f.Limit)
	query += fmt.Sprintf(" ORDER BY id OFFSET $%d LIMIT $%d", len(args)-1, len(args))

	rows, err := r.db.query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.FitnessGoal, 0, f.Limit)
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *g)
	}
	return out, rows.Err()
}

func (r *FitnessGoalRepo) Update(ctx context.Context, g *domain.FitnessGoal) error {
	_, err := r.db.exec(ctx,
		`UPDATE fitness_goals SET title=$1, description=$2, goal_type=$3, target_value=$4,
		 current_value=$5, target_date=$6, achieved=$7, progress_pct=$8, updated_at=$9 WHERE id=$10`,
		g.Title, g.Description, g.GoalType, g.TargetValue, g.CurrentValue, g.TargetDate,
		g.Achieved, g.ProgressPct, time.Now(), g.ID,
	)
	return err
}

func (r *FitnessGoalRepo) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.exec(ctx, "DELETE FROM fitness_goals WHERE id = $1", id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}
