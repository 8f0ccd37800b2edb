package app

import (
	"context"
	"time"

	"fittrack/internal/domain"
)

// GoalService manages per-user fitness goals.
type GoalService struct {
	goals domain.FitnessGoalRepository
}

// NewGoalService creates a GoalService backed by the given repository.
func NewGoalService(goals domain.FitnessGoalRepository) *GoalService {
	return &GoalService{goals: goals}
}

// GoalInput is the payload accepted by Create.
type GoalInput struct {
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	GoalType     string     `json:"goalType"`
	TargetValue  float64    `json:"targetValue"`
	CurrentValue float64    `json:"currentValue"`
	TargetDate   *time.Time `json:"targetDate"`
}

// GoalUpdate carries partial-update fields; nil means keep. TargetDate is
// Optional so an explicit null removes the deadline.
type GoalUpdate struct {
	Title        *string             `json:"title"`
	Description  *string             `json:"description"`
	GoalType     *string             `json:"goalType"`
	TargetValue  *float64            `json:"targetValue"`
	CurrentValue *float64            `json:"currentValue"`
	TargetDate   Optional[time.Time] `json:"targetDate"`
	Achieved     *bool               `json:"achieved"`
	ProgressPct  *float64            `json:"progressPct"`
}

// Create validates and stores a new goal owned by userID.
func (s *GoalService) Create(ctx context.Context, userID int64, in GoalInput) (*domain.FitnessGoal, error) {
	if in.Title == "" {
		return nil, domain.Invalid("title is required")
	}
	g := &domain.FitnessGoal{
		UserID:       userID,
		Title:        in.Title,
		Description:  in.Description,
		GoalType:     in.GoalType,
		TargetValue:  in.TargetValue,
		CurrentValue: in.CurrentValue,
		TargetDate:   in.TargetDate,
	}
	g.ProgressPct = progress(g.CurrentValue, g.TargetValue)
	return s.goals.Insert(ctx, g)
}

// Get returns one goal.
func (s *GoalService) Get(ctx context.Context, id int64) (*domain.FitnessGoal, error) {
	g, err := s.goals.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, domain.ErrNotFound
	}
	return g, nil
}

// List returns goals matching the filter.
func (s *GoalService) List(ctx context.Context, f domain.GoalFilter) ([]domain.FitnessGoal, error) {
	return s.goals.List(ctx, f)
}

// Update applies present fields, preserving the rest. Progress is recomputed
// when current or target value change unless the payload pins it explicitly.
func (s *GoalService) Update(ctx context.Context, id int64, in GoalUpdate) (*domain.FitnessGoal, error) {
	g, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Title != nil {
		if *in.Title == "" {
			return nil, domain.Invalid("title is required")
		}
		g.Title = *in.Title
	}
	if in.Description != nil {
		g.Description = *in.Description
	}
	if in.GoalType != nil {
		g.GoalType = *in.GoalType
	}
	recompute := false
	if in.TargetValue != nil {
		g.TargetValue = *in.TargetValue
		recompute = true
	}
	if in.CurrentValue != nil {
		g.CurrentValue = *in.CurrentValue
		recompute = true
	}
	if in.TargetDate.Set {
		g.TargetDate = in.TargetDate.Ptr()
	}
	if recompute {
		g.ProgressPct = progress(g.CurrentValue, g.TargetValue)
	}
	if in.ProgressPct != nil {
		if *in.ProgressPct < 0 || *in.ProgressPct > 100 {
			return nil, domain.Invalid("progress percentage out of range")
		}
		g.ProgressPct = *in.ProgressPct
	}
	if in.Achieved != nil {
		g.Achieved = *in.Achieved
	}
	if err := s.goals.Update(ctx, g); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// Delete removes a goal.
func (s *GoalService) Delete(ctx context.Context, id int64) error {
	deleted, err := s.goals.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.ErrNotFound
	}
	return nil
}

func progress(current, target float64) float64 {
	if target <= 0 {
		return 0
	}
	p := current / target * 100
	if p > 100 {
		return 100
	}
	if p < 0 {
		return 0
	}
	return p
}
