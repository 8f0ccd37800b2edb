package memory

import (
	"context"
	"time"

	"fittrack/internal/domain"
)

// FitnessGoalRepo implements domain.FitnessGoalRepository on the shared store.
type FitnessGoalRepo struct {
	db *DB
}

func NewFitnessGoalRepo(db *DB) *FitnessGoalRepo {
	return &FitnessGoalRepo{db: db}
}

func (r *FitnessGoalRepo) Insert(ctx context.Context, g *domain.FitnessGoal) (*domain.FitnessGoal, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	r.db.goalIDCounter++
	now := time.Now()

	stored := *g
	stored.ID = r.db.goalIDCounter
	stored.CreatedAt = now
	stored.UpdatedAt = now
	r.db.goals[stored.ID] = &stored

	ret := stored
	return &ret, nil
}

func (r *FitnessGoalRepo) FindByID(ctx context.Context, id int64) (*domain.FitnessGoal, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	g, ok := r.db.goals[id]
	if !ok {
		return nil, nil
	}
	ret := *g
	return &ret, nil
}

func (r *FitnessGoalRepo) List(ctx context.Context, f domain.GoalFilter) ([]domain.FitnessGoal, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	out := make([]domain.FitnessGoal, 0, len(r.db.goals))
	for _, id := range sortedIDs(r.db.goals) {
		g := r.db.goals[id]
		if f.UserID != nil && g.UserID != *f.UserID {
			continue
		}
		if f.Achieved != nil && g.Achieved != *f.Achieved {
			continue
		}
		out = append(out, *g)
	}
	return window(out, f.Skip, f.Limit), nil
}

func (r *FitnessGoalRepo) Update(ctx context.Context, g *domain.FitnessGoal) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	stored, ok := r.db.goals[g.ID]
	if !ok {
		return domain.ErrNotFound
	}
	updated := *g
	updated.CreatedAt = stored.CreatedAt
	updated.UpdatedAt = time.Now()
	r.db.goals[g.ID] = &updated
	return nil
}

func (r *FitnessGoalRepo) Delete(ctx context.Context, id int64) (bool, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.goals[id]; !ok {
		return false, nil
	}
	delete(r.db.goals, id)
	return true, nil
}
