package domain

import (
	"context"
	"time"
)

// WorkoutType is an admin-managed catalog entry describing a class of workout.
type WorkoutType struct {
	ID                int64      `json:"id"`
	Name              string     `json:"name"`
	TargetMuscleGroup string     `json:"targetMuscleGroup"`
	Difficulty        Difficulty `json:"difficulty"`
	Category          string     `json:"category"`
	AvgDurationMin    int        `json:"avgDurationMin"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
}

// Exercise is an admin-managed catalog entry, optionally linked to a workout type.
type Exercise struct {
	ID                   int64      `json:"id"`
	Name                 string     `json:"name"`
	WorkoutTypeID        *int64     `json:"workoutTypeId"`
	Difficulty           Difficulty `json:"difficulty"`
	CaloriesPerMinute    float64    `json:"caloriesPerMinute"`
	Equipment            string     `json:"equipment"`
	PrimaryMuscleGroup   string     `json:"primaryMuscleGroup"`
	SecondaryMuscleGroups string    `json:"secondaryMuscleGroups"`
	Description          string     `json:"description"`
	CreatedAt            time.Time  `json:"createdAt"`
	UpdatedAt            time.Time  `json:"updatedAt"`
}

// ExerciseFilter narrows exercise listings by indexed columns.
type ExerciseFilter struct {
	WorkoutTypeID      *int64
	Difficulty         *Difficulty
	PrimaryMuscleGroup *string
	Skip               int
	Limit              int
}

// WorkoutTypeRepository defines the port for workout type persistence.
type WorkoutTypeRepository interface {
	Insert(ctx context.Context, wt *WorkoutType) (*WorkoutType, error)
	FindByID(ctx context.Context, id int64) (*WorkoutType, error)
	FindByName(ctx context.Context, name string) (*WorkoutType, error)
	List(ctx context.Context, skip, limit int) ([]WorkoutType, error)
	Update(ctx context.Context, wt *WorkoutType) error
	// Delete removes the workout type; linked exercises keep existing with a
	// cleared workout type reference.
	Delete(ctx context.Context, id int64) (bool, error)
}

// ExerciseRepository defines the port for exercise persistence.
type ExerciseRepository interface {
	Insert(ctx context.Context, e *Exercise) (*Exercise, error)
	FindByID(ctx context.Context, id int64) (*Exercise, error)
	FindByName(ctx context.Context, name string) (*Exercise, error)
	List(ctx context.Context, f ExerciseFilter) ([]Exercise, error)
	Update(ctx context.Context, e *Exercise) error
	Delete(ctx context.Context, id int64) (bool, error)
}
