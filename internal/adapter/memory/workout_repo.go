package memory

import (
	"context"
	"sort"
	"time"

	"fittrack/internal/domain"
)

// WorkoutSessionRepo implements domain.WorkoutSessionRepository on the shared store.
type WorkoutSessionRepo struct {
	db *DB
}

func NewWorkoutSessionRepo(db *DB) *WorkoutSessionRepo {
	return &WorkoutSessionRepo{db: db}
}

func (r *WorkoutSessionRepo) Insert(ctx context.Context, ws *domain.WorkoutSession) (*domain.WorkoutSession, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	r.db.sessionIDCounter++
	now := time.Now()

	stored := *ws
	stored.ID = r.db.sessionIDCounter
	stored.CreatedAt = now
	stored.UpdatedAt = now
	r.db.sessions[stored.ID] = &stored

	ret := stored
	return &ret, nil
}

func (r *WorkoutSessionRepo) FindByID(ctx context.Context, id int64) (*domain.WorkoutSession, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	ws, ok := r.db.sessions[id]
	if !ok {
		return nil, nil
	}
	ret := *ws
	return &ret, nil
}

func (r *WorkoutSessionRepo) List(ctx context.Context, f domain.SessionFilter) ([]domain.WorkoutSession, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	out := make([]domain.WorkoutSession, 0, len(r.db.sessions))
	for _, id := range sortedIDs(r.db.sessions) {
		ws := r.db.sessions[id]
		if f.UserID != nil && ws.UserID != *f.UserID {
			continue
		}
		if f.Completed != nil && ws.Completed != *f.Completed {
			continue
		}
		out = append(out, *ws)
	}
	// Most recent first, matching the SQL adapter's ordering.
	sort.SliceStable(out, func(i, j int) bool { return out[i].StartedAt.After(out[j].StartedAt) })
	return window(out, f.Skip, f.Limit), nil
}

func (r *WorkoutSessionRepo) Update(ctx context.Context, ws *domain.WorkoutSession) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	stored, ok := r.db.sessions[ws.ID]
	if !ok {
		return domain.ErrNotFound
	}
	updated := *ws
	updated.CreatedAt = stored.CreatedAt
	updated.UpdatedAt = time.Now()
	r.db.sessions[ws.ID] = &updated
	return nil
}

// Delete removes the session and its exercise logs.
func (r *WorkoutSessionRepo) Delete(ctx context.Context, id int64) (bool, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.sessions[id]; !ok {
		return false, nil
	}
	delete(r.db.sessions, id)

	for lid, l := range r.db.logs {
		if l.SessionID == id {
			delete(r.db.logs, lid)
		}
	}
	return true, nil
}

// ExerciseLogRepo implements domain.ExerciseLogRepository on the shared store.
type ExerciseLogRepo struct {
	db *DB
}

func NewExerciseLogRepo(db *DB) *ExerciseLogRepo {
	return &ExerciseLogRepo{db: db}
}

func (r *ExerciseLogRepo) Insert(ctx context.Context, el *domain.ExerciseLog) (*domain.ExerciseLog, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	r.db.logIDCounter++
	now := time.Now()

	stored := *el
	stored.ID = r.db.logIDCounter
	stored.CreatedAt = now
	stored.UpdatedAt = now
	r.db.logs[stored.ID] = &stored

	ret := stored
	return &ret, nil
}

func (r *ExerciseLogRepo) FindByID(ctx context.Context, id int64) (*domain.ExerciseLog, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	el, ok := r.db.logs[id]
	if !ok {
		return nil, nil
	}
	ret := *el
	return &ret, nil
}

func (r *ExerciseLogRepo) List(ctx context.Context, f domain.LogFilter) ([]domain.ExerciseLog, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	out := make([]domain.ExerciseLog, 0, len(r.db.logs))
	for _, id := range sortedIDs(r.db.logs) {
		el := r.db.logs[id]
		if f.SessionID != nil && el.SessionID != *f.SessionID {
			continue
		}
		if f.OwnerID != nil {
			ws, ok := r.db.sessions[el.SessionID]
			if !ok || ws.UserID != *f.OwnerID {
				continue
			}
		}
		out = append(out, *el)
	}
	return window(out, f.Skip, f.Limit), nil
}

func (r *ExerciseLogRepo) Update(ctx context.Context, el *domain.ExerciseLog) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	stored, ok := r.db.logs[el.ID]
	if !ok {
		return domain.ErrNotFound
	}
	updated := *el
	updated.CreatedAt = stored.CreatedAt
	updated.UpdatedAt = time.Now()
	r.db.logs[el.ID] = &updated
	return nil
}

func (r *ExerciseLogRepo) Delete(ctx context.Context, id int64) (bool, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.logs[id]; !ok {
		return false, nil
	}
	delete(r.db.logs, id)
	return true, nil
}

func (r *ExerciseLogRepo) CountForExercise(ctx context.Context, exerciseID int64) (int, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	n := 0
	for _, l := range r.db.logs {
		if l.ExerciseID == exerciseID {
			n++
		}
	}
	return n, nil
}
