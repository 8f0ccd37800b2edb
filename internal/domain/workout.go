package domain

import (
	"context"
	"time"
)

// WorkoutSession is one workout instance owned by exactly one user.
type WorkoutSession struct {
	ID                int64      `json:"id"`
	UserID            int64      `json:"userId"`
	StartedAt         time.Time  `json:"startedAt"`
	EndedAt           *time.Time `json:"endedAt"`
	PerceivedExertion int        `json:"perceivedExertion"`
	Completed         bool       `json:"completed"`
	Mood              string     `json:"mood"`
	CaloriesBurned    float64    `json:"caloriesBurned"`
	Notes             string     `json:"notes"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
}

// ExerciseLog is one set/entry within a workout session, referencing an exercise.
type ExerciseLog struct {
	ID          int64      `json:"id"`
	SessionID   int64      `json:"sessionId"`
	ExerciseID  int64      `json:"exerciseId"`
	Sets        int        `json:"sets"`
	Reps        int        `json:"reps"`
	WeightKG    float64    `json:"weightKg"`
	DurationSec int        `json:"durationSec"`
	RestSec     int        `json:"restSec"`
	FormRating  int        `json:"formRating"`
	Difficulty  Difficulty `json:"difficulty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// SessionFilter narrows workout session listings.
type SessionFilter struct {
	UserID    *int64
	Completed *bool
	Skip      int
	Limit     int
}

// LogFilter narrows exercise log listings. OwnerID scopes through the
// owning session's user.
type LogFilter struct {
	SessionID *int64
	OwnerID   *int64
	Skip      int
	Limit     int
}

// PersonalRecord is the heaviest logged weight for one exercise.
type PersonalRecord struct {
	ExerciseID   int64   `json:"exerciseId"`
	ExerciseName string  `json:"exerciseName"`
	MaxWeightKG  float64 `json:"maxWeightKg"`
	Entries      int     `json:"entries"`
}

// DayActivity aggregates a user's training for one local calendar day.
type DayActivity struct {
	Sessions       int     `json:"sessions"`
	TotalVolumeKG  float64 `json:"totalVolumeKg"`
	CaloriesBurned float64 `json:"caloriesBurned"`
}

// WorkoutSessionRepository defines the port for workout session persistence.
type WorkoutSessionRepository interface {
	Insert(ctx context.Context, ws *WorkoutSession) (*WorkoutSession, error)
	FindByID(ctx context.Context, id int64) (*WorkoutSession, error)
	List(ctx context.Context, f SessionFilter) ([]WorkoutSession, error)
	Update(ctx context.Context, ws *WorkoutSession) error
	// Delete removes the session and, by cascade, its exercise logs.
	Delete(ctx context.Context, id int64) (bool, error)
}

// ExerciseLogRepository defines the port for exercise log persistence.
type ExerciseLogRepository interface {
	Insert(ctx context.Context, el *ExerciseLog) (*ExerciseLog, error)
	FindByID(ctx context.Context, id int64) (*ExerciseLog, error)
	List(ctx context.Context, f LogFilter) ([]ExerciseLog, error)
	Update(ctx context.Context, el *ExerciseLog) error
	Delete(ctx context.Context, id int64) (bool, error)
	CountForExercise(ctx context.Context, exerciseID int64) (int, error)
}

// StatsRepository defines the port for aggregate training queries.
type StatsRepository interface {
	PersonalRecords(ctx context.Context, userID int64) ([]PersonalRecord, error)
	// ActivityForLocalDay aggregates the sessions whose started_at falls
	// within the local calendar day ("2006-01-02").
	ActivityForLocalDay(ctx context.Context, userID int64, localDay string) (DayActivity, error)
}
