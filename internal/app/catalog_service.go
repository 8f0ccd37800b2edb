package app

import (
	"context"

	"fittrack/internal/domain"
)

// CatalogService manages the shared workout type and exercise catalog.
// Writes are admin-only; the capability check happens in the HTTP layer.
type CatalogService struct {
	types     domain.WorkoutTypeRepository
	exercises domain.ExerciseRepository
	logs      domain.ExerciseLogRepository
}

// NewCatalogService creates a CatalogService backed by the given repositories.
func NewCatalogService(types domain.WorkoutTypeRepository, exercises domain.ExerciseRepository, logs domain.ExerciseLogRepository) *CatalogService {
	return &CatalogService{types: types, exercises: exercises, logs: logs}
}

// WorkoutTypeInput is the payload accepted by CreateWorkoutType.
type WorkoutTypeInput struct {
	Name              string            `json:"name"`
	TargetMuscleGroup string            `json:"targetMuscleGroup"`
	Difficulty        domain.Difficulty `json:"difficulty"`
	Category          string            `json:"category"`
	AvgDurationMin    int               `json:"avgDurationMin"`
}

// WorkoutTypeUpdate carries partial-update fields; nil means keep.
type WorkoutTypeUpdate struct {
	Name              *string            `json:"name"`
	TargetMuscleGroup *string            `json:"targetMuscleGroup"`
	Difficulty        *domain.Difficulty `json:"difficulty"`
	Category          *string            `json:"category"`
	AvgDurationMin    *int               `json:"avgDurationMin"`
}

// ExerciseInput is the payload accepted by CreateExercise.
type ExerciseInput struct {
	Name                  string            `json:"name"`
	WorkoutTypeID         *int64            `json:"workoutTypeId"`
	Difficulty            domain.Difficulty `json:"difficulty"`
	CaloriesPerMinute     float64           `json:"caloriesPerMinute"`
	Equipment             string            `json:"equipment"`
	PrimaryMuscleGroup    string            `json:"primaryMuscleGroup"`
	SecondaryMuscleGroups string            `json:"secondaryMuscleGroups"`
	Description           string            `json:"description"`
}

// ExerciseUpdate carries partial-update fields. WorkoutTypeID is Optional so
// an explicit null clears the link while absence keeps it.
type ExerciseUpdate struct {
	Name                  *string            `json:"name"`
	WorkoutTypeID         Optional[int64]    `json:"workoutTypeId"`
	Difficulty            *domain.Difficulty `json:"difficulty"`
	CaloriesPerMinute     *float64           `json:"caloriesPerMinute"`
	Equipment             *string            `json:"equipment"`
	PrimaryMuscleGroup    *string            `json:"primaryMuscleGroup"`
	SecondaryMuscleGroups *string            `json:"secondaryMuscleGroups"`
	Description           *string            `json:"description"`
}

// CreateWorkoutType validates and stores a new catalog workout type.
func (s *CatalogService) CreateWorkoutType(ctx context.Context, in WorkoutTypeInput) (*domain.WorkoutType, error) {
	if in.Name == "" {
		return nil, domain.Invalid("name is required")
	}
	if !in.Difficulty.Valid() {
		return nil, domain.Invalid("unknown difficulty %q", in.Difficulty)
	}
	if existing, err := s.types.FindByName(ctx, in.Name); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, domain.Duplicate("workout type name")
	}
	return s.types.Insert(ctx, &domain.WorkoutType{
		Name:              in.Name,
		TargetMuscleGroup: in.TargetMuscleGroup,
		Difficulty:        in.Difficulty,
		Category:          in.Category,
		AvgDurationMin:    in.AvgDurationMin,
	})
}

// GetWorkoutType returns one catalog workout type.
func (s *CatalogService) GetWorkoutType(ctx context.Context, id int64) (*domain.WorkoutType, error) {
	wt, err := s.types.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if wt == nil {
		return nil, domain.ErrNotFound
	}
	return wt, nil
}

// ListWorkoutTypes returns catalog workout types with pagination.
func (s *CatalogService) ListWorkoutTypes(ctx context.Context, skip, limit int) ([]domain.WorkoutType, error) {
	return s.types.List(ctx, skip, limit)
}

// UpdateWorkoutType applies present fields, preserving the rest.
func (s *CatalogService) UpdateWorkoutType(ctx context.Context, id int64, in WorkoutTypeUpdate) (*domain.WorkoutType, error) {
	wt, err := s.GetWorkoutType(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil && *in.Name != wt.Name {
		if *in.Name == "" {
			return nil, domain.Invalid("name is required")
		}
		if existing, err := s.types.FindByName(ctx, *in.Name); err != nil {
			return nil, err
		} else if existing != nil {
			return nil, domain.Duplicate("workout type name")
		}
		wt.Name = *in.Name
	}
	if in.TargetMuscleGroup != nil {
		wt.TargetMuscleGroup = *in.TargetMuscleGroup
	}
	if in.Difficulty != nil {
		if !in.Difficulty.Valid() {
			return nil, domain.Invalid("unknown difficulty %q", *in.Difficulty)
		}
		wt.Difficulty = *in.Difficulty
	}
	if in.Category != nil {
		wt.Category = *in.Category
	}
	if in.AvgDurationMin != nil {
		wt.AvgDurationMin = *in.AvgDurationMin
	}
	if err := s.types.Update(ctx, wt); err != nil {
		return nil, err
	}
	return s.GetWorkoutType(ctx, id)
}

// DeleteWorkoutType removes a workout type; linked exercises lose the link
// but keep existing.
func (s *CatalogService) DeleteWorkoutType(ctx context.Context, id int64) error {
	deleted, err := s.types.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.ErrNotFound
	}
	return nil
}

// CreateExercise validates and stores a new catalog exercise.
func (s *CatalogService) CreateExercise(ctx context.Context, in ExerciseInput) (*domain.Exercise, error) {
	if in.Name == "" {
		return nil, domain.Invalid("name is required")
	}
	if !in.Difficulty.Valid() {
		return nil, domain.Invalid("unknown difficulty %q", in.Difficulty)
	}
	if in.WorkoutTypeID != nil {
		if _, err := s.GetWorkoutType(ctx, *in.WorkoutTypeID); err != nil {
			if err == domain.ErrNotFound {
				return nil, domain.Invalid("workout type %d does not exist", *in.WorkoutTypeID)
			}
			return nil, err
		}
	}
	if existing, err := s.exercises.FindByName(ctx, in.Name); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, domain.Duplicate("exercise name")
	}
	return s.exercises.Insert(ctx, &domain.Exercise{
		Name:                  in.Name,
		WorkoutTypeID:         in.WorkoutTypeID,
		Difficulty:            in.Difficulty,
		CaloriesPerMinute:     in.CaloriesPerMinute,
		Equipment:             in.Equipment,
		PrimaryMuscleGroup:    in.PrimaryMuscleGroup,
		SecondaryMuscleGroups: in.SecondaryMuscleGroups,
		Description:           in.Description,
	})
}

// GetExercise returns one catalog exercise.
func (s *CatalogService) GetExercise(ctx context.Context, id int64) (*domain.Exercise, error) {
	e, err := s.exercises.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, domain.ErrNotFound
	}
	return e, nil
}

// ListExercises returns exercises matching the filter.
func (s *CatalogService) ListExercises(ctx context.Context, f domain.ExerciseFilter) ([]domain.Exercise, error) {
	if f.Difficulty != nil && !f.Difficulty.Valid() {
		return nil, domain.Invalid("unknown difficulty %q", *f.Difficulty)
	}
	return s.exercises.List(ctx, f)
}

// UpdateExercise applies present fields, preserving the rest.
func (s *CatalogService) UpdateExercise(ctx context.Context, id int64, in ExerciseUpdate) (*domain.Exercise, error) {
	e, err := s.GetExercise(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil && *in.Name != e.Name {
		if *in.Name == "" {
			return nil, domain.Invalid("name is required")
		}
		if existing, err := s.exercises.FindByName(ctx, *in.Name); err != nil {
			return nil, err
		} else if existing != nil {
			return nil, domain.Duplicate("exercise name")
		}
		e.Name = *in.Name
	}
	if in.WorkoutTypeID.Set {
		if !in.WorkoutTypeID.Null {
			if _, err := s.GetWorkoutType(ctx, in.WorkoutTypeID.Value); err != nil {
				if err == domain.ErrNotFound {
					return nil, domain.Invalid("workout type %d does not exist", in.WorkoutTypeID.Value)
				}
				return nil, err
			}
		}
		e.WorkoutTypeID = in.WorkoutTypeID.Ptr()
	}
	if in.Difficulty != nil {
		if !in.Difficulty.Valid() {
			return nil, domain.Invalid("unknown difficulty %q", *in.Difficulty)
		}
		e.Difficulty = *in.Difficulty
	}
	if in.CaloriesPerMinute != nil {
		e.CaloriesPerMinute = *in.CaloriesPerMinute
	}
	if in.Equipment != nil {
		e.Equipment = *in.Equipment
	}
	if in.PrimaryMuscleGroup != nil {
		e.PrimaryMuscleGroup = *in.PrimaryMuscleGroup
	}
	if in.SecondaryMuscleGroups != nil {
		e.SecondaryMuscleGroups = *in.SecondaryMuscleGroups
	}
	if in.Description != nil {
		e.Description = *in.Description
	}
	if err := s.exercises.Update(ctx, e); err != nil {
		return nil, err
	}
	return s.GetExercise(ctx, id)
}

// DeleteExercise removes an exercise unless logs still reference it.
func (s *CatalogService) DeleteExercise(ctx context.Context, id int64) error {
	if _, err := s.GetExercise(ctx, id); err != nil {
		return err
	}
	n, err := s.logs.CountForExercise(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return domain.Invalid("exercise is referenced by %d logs", n)
	}
	deleted, err := s.exercises.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.ErrNotFound
	}
	return nil
}
