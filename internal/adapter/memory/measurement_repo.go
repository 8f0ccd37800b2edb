package memory

import (
	"context"
	"sort"
	"time"

	"fittrack/internal/domain"
)

// BodyMeasurementRepo implements domain.BodyMeasurementRepository on the shared store.
type BodyMeasurementRepo struct {
	db *DB
}

func NewBodyMeasurementRepo(db *DB) *BodyMeasurementRepo {
	return &BodyMeasurementRepo{db: db}
}

func (r *BodyMeasurementRepo) Insert(ctx context.Context, bm *domain.BodyMeasurement) (*domain.BodyMeasurement, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	r.db.measurementIDCounter++
	now := time.Now()

	stored := *bm
	stored.ID = r.db.measurementIDCounter
	stored.CreatedAt = now
	stored.UpdatedAt = now
	r.db.measurements[stored.ID] = &stored

	ret := stored
	return &ret, nil
}

func (r *BodyMeasurementRepo) FindByID(ctx context.Context, id int64) (*domain.BodyMeasurement, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	bm, ok := r.db.measurements[id]
	if !ok {
		return nil, nil
	}
	ret := *bm
	return &ret, nil
}

func (r *BodyMeasurementRepo) List(ctx context.Context, f domain.MeasurementFilter) ([]domain.BodyMeasurement, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	out := make([]domain.BodyMeasurement, 0, len(r.db.measurements))
	for _, id := range sortedIDs(r.db.measurements) {
		bm := r.db.measurements[id]
		if f.UserID != nil && bm.UserID != *f.UserID {
			continue
		}
		out = append(out, *bm)
	}
	// Most recent first, matching the SQL adapter's ordering.
	sort.SliceStable(out, func(i, j int) bool { return out[i].MeasuredAt.After(out[j].MeasuredAt) })
	return window(out, f.Skip, f.Limit), nil
}

func (r *BodyMeasurementRepo) Update(ctx context.Context, bm *domain.BodyMeasurement) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	stored, ok := r.db.measurements[bm.ID]
	if !ok {
		return domain.ErrNotFound
	}
	updated := *bm
	updated.CreatedAt = stored.CreatedAt
	updated.UpdatedAt = time.Now()
	r.db.measurements[bm.ID] = &updated
	return nil
}

func (r *BodyMeasurementRepo) Delete(ctx context.Context, id int64) (bool, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.measurements[id]; !ok {
		return false, nil
	}
	delete(r.db.measurements, id)
	return true, nil
}
