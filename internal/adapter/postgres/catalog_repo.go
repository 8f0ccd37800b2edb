package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"fittrack/internal/domain"
)

// WorkoutTypeRepo implements domain.WorkoutTypeRepository on DB.
type WorkoutTypeRepo struct {
	db *DB
}

func NewWorkoutTypeRepo(db *DB) *WorkoutTypeRepo {
	return &WorkoutTypeRepo{db: db}
}

const workoutTypeCols = "id, name, target_muscle_group, difficulty, category, avg_duration_min, created_at, updated_at"

func scanWorkoutType(row interface{ Scan(...any) error }) (*domain.WorkoutType, error) {
	var wt domain.WorkoutType
	err := row.Scan(&wt.ID, &wt.Name, &wt.TargetMuscleGroup, &wt.Difficulty,
		&wt.Category, &wt.AvgDurationMin, &wt.CreatedAt, &wt.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &wt, nil
}

func (r *WorkoutTypeRepo) Insert(ctx context.Context, wt *domain.WorkoutType) (*domain.WorkoutType, error) {
	return scanWorkoutType(r.db.queryRow(ctx,
		`INSERT INTO workout_types (name, target_muscle_group, difficulty, category, avg_duration_min, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $6) RETURNING `+workoutTypeCols,
		wt.Name, wt.TargetMuscleGroup, wt.Difficulty, wt.Category, wt.AvgDurationMin, time.Now(),
	))
}

func (r *WorkoutTypeRepo) FindByID(ctx context.Context, id int64) (*domain.WorkoutType, error) {
	return scanWorkoutType(r.db.queryRow(ctx, "SELECT "+workoutTypeCols+" FROM workout_types WHERE id = $1", id))
}

func (r *WorkoutTypeRepo) FindByName(ctx context.Context, name string) (*domain.WorkoutType, error) {
	return scanWorkoutType(r.db.queryRow(ctx, "SELECT "+workoutTypeCols+" FROM workout_types WHERE name = $1", name))
}

func (r *WorkoutTypeRepo) List(ctx context.Context, skip, limit int) ([]domain.WorkoutType, error) {
	rows, err := r.db.query(ctx,
		"SELECT "+workoutTypeCols+" FROM workout_types ORDER BY id OFFSET $1 LIMIT $2", skip, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.WorkoutType, 0, limit)
	for rows.Next() {
		wt, err := scanWorkoutType(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *wt)
	}
	return out, rows.Err()
}

func (r *WorkoutTypeRepo) Update(ctx context.Context, wt *domain.WorkoutType) error {
	_, err := r.db.exec(ctx,
		`UPDATE workout_types SET name=$1, target_muscle_group=$2, difficulty=$3, category=$4,
		 avg_duration_min=$5, updated_at=$6 WHERE id=$7`,
		wt.Name, wt.TargetMuscleGroup, wt.Difficulty, wt.Category, wt.AvgDurationMin, time.Now(), wt.ID,
	)
	return err
}

// Delete removes the workout type; exercises referencing it keep existing
// with workout_type_id set NULL by the foreign key.
func (r *WorkoutTypeRepo) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.exec(ctx, "DELETE FROM workout_types WHERE id = $1", id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// ExerciseRepo implements domain.ExerciseRepository on DB.
type ExerciseRepo struct {
	db *DB
}

func NewExerciseRepo(db *DB) *ExerciseRepo {
	return &ExerciseRepo{db: db}
}

const exerciseCols = "id, name, workout_type_id, difficulty, calories_per_minute, equipment, primary_muscle_group, secondary_muscle_groups, description, created_at, updated_at"

func scanExercise(row interface{ Scan(...any) error }) (*domain.Exercise, error) {
	var e domain.Exercise
	err := row.Scan(&e.ID, &e.Name, &e.WorkoutTypeID, &e.Difficulty, &e.CaloriesPerMinute,
		&e.Equipment, &e.PrimaryMuscleGroup, &e.SecondaryMuscleGroups, &e.Description,
		&e.CreatedAt, &e.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *ExerciseRepo) Insert(ctx context.Context, e *domain.Exercise) (*domain.Exercise, error) {
	return scanExercise(r.db.queryRow(ctx,
		`INSERT INTO exercises (name, workout_type_id, difficulty, calories_per_minute, equipment, primary_muscle_group, secondary_muscle_groups, description, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9) RETURNING `+exerciseCols,
		e.Name, e.WorkoutTypeID, e.Difficulty, e.CaloriesPerMinute, e.Equipment,
		e.PrimaryMuscleGroup, e.SecondaryMuscleGroups, e.Description, time.Now(),
	))
}

func (r *ExerciseRepo) FindByID(ctx context.Context, id int64) (*domain.Exercise, error) {
	return scanExercise(r.db.queryRow(ctx, "SELECT "+exerciseCols+" FROM exercises WHERE id = $1", id))
}

func (r *ExerciseRepo) FindByName(ctx context.Context, name string) (*domain.Exercise, error) {
	return scanExercise(r.db.queryRow(ctx, "SELECT "+exerciseCols+" FROM exercises WHERE name = $1", name))
}

func (r *ExerciseRepo) List(ctx context.Context, f domain.ExerciseFilter) ([]domain.Exercise, error) {
	query := "SELECT " + exerciseCols + " FROM exercises"
	var (
		conds []string
		args  []any
	)
	if f.WorkoutTypeID != nil {
		args = append(args, *f.WorkoutTypeID)
		conds = append(conds, fmt.Sprintf("workout_type_id = $%d", len(args)))
	}
	if f.Difficulty != nil {
		args = append(args, *f.Difficulty)
		conds = append(conds, fmt.Sprintf("difficulty = $%d", len(args)))
	}
	if f.PrimaryMuscleGroup != nil {
		args = append(args, *f.PrimaryMuscleGroup)
		conds = append(conds, fmt.Sprintf("primary_muscle_group = $%d", len(args)))
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

	out := make([]domain.Exercise, 0, f.Limit)
	for rows.Next() {
		e, err := scanExercise(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *e)
	}
	return out, rows.Err()
}

func (r *ExerciseRepo) Update(ctx context.Context, e *domain.Exercise) error {
	_, err := r.db.exec(ctx,
		`UPDATE exercises SET name=$1, workout_type_id=$2, difficulty=$3, calories_per_minute=$4,
		 equipment=$5, primary_muscle_group=$6, secondary_muscle_groups=$7, description=$8, updated_at=$9
		 WHERE id=$10`,
		e.Name, e.WorkoutTypeID, e.Difficulty, e.CaloriesPerMinute, e.Equipment,
		e.PrimaryMuscleGroup, e.SecondaryMuscleGroups, e.Description, time.Now(), e.ID,
	)
	return err
}

func (r *ExerciseRepo) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.exec(ctx, "DELETE FROM exercises WHERE id = $1", id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}
