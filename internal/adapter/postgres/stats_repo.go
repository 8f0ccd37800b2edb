package postgres

import (
	"context"
	"time"

	"fittrack/internal/domain"
)

// StatsRepo implements domain.StatsRepository with aggregate queries over
// workout sessions and exercise logs.
type StatsRepo struct {
	db *DB
}

func NewStatsRepo(db *DB) *StatsRepo {
	return &StatsRepo{db: db}
}

// PersonalRecords returns, per exercise the user has logged, the heaviest
// weight and the number of log entries.
func (r *StatsRepo) PersonalRecords(ctx context.Context, userID int64) ([]domain.PersonalRecord, error) {
	rows, err := r.db.query(ctx,
		`SELECT e.id, e.name, MAX(el.weight_kg), COUNT(el.id)
		 FROM exercise_logs el
		 JOIN workout_sessions ws ON ws.id = el.session_id
		 JOIN exercises e ON e.id = el.exercise_id
		 WHERE ws.user_id = $1
		 GROUP BY e.id, e.name
		 ORDER BY MAX(el.weight_kg) DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.PersonalRecord, 0, 16)
	for rows.Next() {
		var pr domain.PersonalRecord
		if err := rows.Scan(&pr.ExerciseID, &pr.ExerciseName, &pr.MaxWeightKG, &pr.Entries); err != nil {
			return nil, err
		}
		out = append(out, pr)
	}
	return out, rows.Err()
}

// ActivityForLocalDay aggregates the user's sessions that started within the
// given local calendar day: session count, calories burned, and total lifted
// volume (sets * reps * weight).
func (r *StatsRepo) ActivityForLocalDay(ctx context.Context, userID int64, localDay string) (domain.DayActivity, error) {
	dayStart, err := time.ParseInLocation("2006-01-02", localDay, time.Local)
	if err != nil {
		return domain.DayActivity{}, err
	}
	dayEnd := dayStart.Add(24 * time.Hour)

	// Sessions and logs are aggregated separately so calories are not
	// duplicated across a session's log rows.
	var da domain.DayActivity
	err = r.db.queryRow(ctx,
		`SELECT COUNT(*), COALESCE(SUM(calories_burned), 0)
		 FROM workout_sessions
		 WHERE user_id = $1 AND started_at >= $2 AND started_at < $3`,
		userID, dayStart.UTC(), dayEnd.UTC(),
	).Scan(&da.Sessions, &da.CaloriesBurned)
	if err != nil {
		return domain.DayActivity{}, err
	}

	err = r.db.queryRow(ctx,
		`SELECT COALESCE(SUM(el.sets * el.reps * el.weight_kg), 0)
		 FROM exercise_logs el
		 JOIN workout_sessions ws ON ws.id = el.session_id
		 WHERE ws.user_id = $1 AND ws.started_at >= $2 AND ws.started_at < $3`,
		userID, dayStart.UTC(), dayEnd.UTC(),
	).Scan(&da.TotalVolumeKG)
	if err != nil {
		return domain.DayActivity{}, err
	}
	return da, nil
}
