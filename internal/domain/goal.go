package domain

import (
	"context"
	"time"
)

// FitnessGoal is a target owned by one user, tracking achievement and progress.
type FitnessGoal struct {
	ID           int64      `json:"id"`
	UserID       int64      `json:"userId"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	GoalType     string     `json:"goalType"`
	TargetValue  float64    `json:"targetValue"`
	CurrentValue float64    `json:"currentValue"`
	TargetDate   *time.Time `json:"targetDate"`
	Achieved     bool       `json:"achieved"`
	ProgressPct  float64    `json:"progressPct"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// GoalFilter narrows fitness goal listings.
type GoalFilter struct {
	UserID   *int64
	Achieved *bool
	Skip     int
	Limit    int
}

// FitnessGoalRepository defines the port for fitness goal persistence.
type FitnessGoalRepository interface {
	Insert(ctx context.Context, g *FitnessGoal) (*FitnessGoal, error)
	FindByID(ctx context.Context, id int64) (*FitnessGoal, error)
	List(ctx context.Context, f GoalFilter) ([]FitnessGoal, error)
	Update(ctx context.Context, g *FitnessGoal) error
	Delete(ctx context.Context, id int64) (bool, error)
}
