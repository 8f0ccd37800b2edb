package memory

import (
	"context"
	"time"

	"fittrack/internal/domain"
)

// WorkoutTypeRepo implements domain.WorkoutTypeRepository on the shared store.
type WorkoutTypeRepo struct {
	db *DB
}

func NewWorkoutTypeRepo(db *DB) *WorkoutTypeRepo {
	return &WorkoutTypeRepo{db: db}
}

func (r *WorkoutTypeRepo) Insert(ctx context.Context, wt *domain.WorkoutType) (*domain.WorkoutType, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	r.db.workoutTypeIDCounter++
	now := time.Now()

	stored := *wt
	stored.ID = r.db.workoutTypeIDCounter
	stored.CreatedAt = now
	stored.UpdatedAt = now
	r.db.workoutTypes[stored.ID] = &stored

	ret := stored
	return &ret, nil
}

func (r *WorkoutTypeRepo) FindByID(ctx context.Context, id int64) (*domain.WorkoutType, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	wt, ok := r.db.workoutTypes[id]
	if !ok {
		return nil, nil
	}
	ret := *wt
	return &ret, nil
}

func (r *WorkoutTypeRepo) FindByName(ctx context.Context, name string) (*domain.WorkoutType, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for _, wt := range r.db.workoutTypes {
		if wt.Name == name {
			ret := *wt
			return &ret, nil
		}
	}
	return nil, nil
}

func (r *WorkoutTypeRepo) List(ctx context.Context, skip, limit int) ([]domain.WorkoutType, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	out := make([]domain.WorkoutType, 0, len(r.db.workoutTypes))
	for _, id := range sortedIDs(r.db.workoutTypes) {
		out = append(out, *r.db.workoutTypes[id])
	}
	return window(out, skip, limit), nil
}

func (r *WorkoutTypeRepo) Update(ctx context.Context, wt *domain.WorkoutType) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	stored, ok := r.db.workoutTypes[wt.ID]
	if !ok {
		return domain.ErrNotFound
	}
	updated := *wt
	updated.CreatedAt = stored.CreatedAt
	updated.UpdatedAt = time.Now()
	r.db.workoutTypes[wt.ID] = &updated
	return nil
}

// Delete removes the workout type and clears the reference on any exercise
// that pointed at it.
func (r *WorkoutTypeRepo) Delete(ctx context.Context, id int64) (bool, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.workoutTypes[id]; !ok {
		return false, nil
	}
	delete(r.db.workoutTypes, id)

	for _, e := range r.db.exercises {
		if e.WorkoutTypeID != nil && *e.WorkoutTypeID == id {
			e.WorkoutTypeID = nil
		}
	}
	return true, nil
}

// ExerciseRepo implements domain.ExerciseRepository on the shared store.
type ExerciseRepo struct {
	db *DB
}

func NewExerciseRepo(db *DB) *ExerciseRepo {
	return &ExerciseRepo{db: db}
}

func (r *ExerciseRepo) Insert(ctx context.Context, e *domain.Exercise) (*domain.Exercise, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	r.db.exerciseIDCounter++
	now := time.Now()

	stored := *e
	stored.ID = r.db.exerciseIDCounter
	stored.CreatedAt = now
	stored.UpdatedAt = now
	r.db.exercises[stored.ID] = &stored

	ret := stored
	return &ret, nil
}

func (r *ExerciseRepo) FindByID(ctx context.Context, id int64) (*domain.Exercise, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	e, ok := r.db.exercises[id]
	if !ok {
		return nil, nil
	}
	ret := *e
	return &ret, nil
}

func (r *ExerciseRepo) FindByName(ctx context.Context, name string) (*domain.Exercise, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for _, e := range r.db.exercises {
		if e.Name == name {
			ret := *e
			return &ret, nil
		}
	}
	return nil, nil
}

func (r *ExerciseRepo) List(ctx context.Context, f domain.ExerciseFilter) ([]domain.Exercise, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	out := make([]domain.Exercise, 0, len(r.db.exercises))
	for _, id := range sortedIDs(r.db.exercises) {
		e := r.db.exercises[id]
		if f.WorkoutTypeID != nil && (e.WorkoutTypeID == nil || *e.WorkoutTypeID != *f.WorkoutTypeID) {
			continue
		}
		if f.Difficulty != nil && e.Difficulty != *f.Difficulty {
			continue
		}
		if f.PrimaryMuscleGroup != nil && e.PrimaryMuscleGroup != *f.PrimaryMuscleGroup {
			continue
		}
		out = append(out, *e)
	}
	return window(out, f.Skip, f.Limit), nil
}

func (r *ExerciseRepo) Update(ctx context.Context, e *domain.Exercise) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	stored, ok := r.db.exercises[e.ID]
	if !ok {
		return domain.ErrNotFound
	}
	updated := *e
	updated.CreatedAt = stored.CreatedAt
	updated.UpdatedAt = time.Now()
	r.db.exercises[e.ID] = &updated
	return nil
}

func (r *ExerciseRepo) Delete(ctx context.Context, id int64) (bool, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.exercises[id]; !ok {
		return false, nil
	}
	delete(r.db.exercises, id)
	return true, nil
}
