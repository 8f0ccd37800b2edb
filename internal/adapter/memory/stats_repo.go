package memory

import (
	"context"
	"sort"
	"time"

	"fittrack/internal/domain"
)

// StatsRepo implements domain.StatsRepository by scanning the shared store.
type StatsRepo struct {
	db *DB
}

func NewStatsRepo(db *DB) *StatsRepo {
	return &StatsRepo{db: db}
}

func (r *StatsRepo) PersonalRecords(ctx context.Context, userID int64) ([]domain.PersonalRecord, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	byExercise := make(map[int64]*domain.PersonalRecord)
	for _, l := range r.db.logs {
		ws, ok := r.db.sessions[l.SessionID]
		if !ok || ws.UserID != userID {
			continue
		}
		pr, ok := byExercise[l.ExerciseID]
		if !ok {
			name := ""
			if e, ok := r.db.exercises[l.ExerciseID]; ok {
				name = e.Name
			}
			pr = &domain.PersonalRecord{ExerciseID: l.ExerciseID, ExerciseName: name}
			byExercise[l.ExerciseID] = pr
		}
		pr.Entries++
		if l.WeightKG > pr.MaxWeightKG {
			pr.MaxWeightKG = l.WeightKG
		}
	}

	out := make([]domain.PersonalRecord, 0, len(byExercise))
	for _, pr := range byExercise {
		out = append(out, *pr)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].MaxWeightKG > out[j].MaxWeightKG })
	return out, nil
}

func (r *StatsRepo) ActivityForLocalDay(ctx context.Context, userID int64, localDay string) (domain.DayActivity, error) {
	dayStart, err := time.ParseInLocation("2006-01-02", localDay, time.Local)
	if err != nil {
		return domain.DayActivity{}, err
	}
	dayEnd := dayStart.Add(24 * time.Hour)

	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	var da domain.DayActivity
	for _, ws := range r.db.sessions {
		if ws.UserID != userID || ws.StartedAt.Before(dayStart) || !ws.StartedAt.Before(dayEnd) {
			continue
		}
		da.Sessions++
		da.CaloriesBurned += ws.CaloriesBurned

		for _, l := range r.db.logs {
			if l.SessionID == ws.ID {
				da.TotalVolumeKG += float64(l.Sets) * float64(l.Reps) * l.WeightKG
			}
		}
	}
	return da, nil
}
