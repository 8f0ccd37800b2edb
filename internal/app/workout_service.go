package app

import (
	"context"
	"time"

	"fittrack/internal/domain"
)

// WorkoutService manages workout sessions and the exercise logs inside them.
type WorkoutService struct {
	sessions  domain.WorkoutSessionRepository
	logs      domain.ExerciseLogRepository
	exercises domain.ExerciseRepository
}

// NewWorkoutService creates a WorkoutService backed by the given repositories.
func NewWorkoutService(sessions domain.WorkoutSessionRepository, logs domain.ExerciseLogRepository, exercises domain.ExerciseRepository) *WorkoutService {
	return &WorkoutService{sessions: sessions, logs: logs, exercises: exercises}
}

// SessionInput is the payload accepted by CreateSession. A zero StartedAt
// defaults to now.
type SessionInput struct {
	StartedAt         time.Time  `json:"startedAt"`
	EndedAt           *time.Time `json:"endedAt"`
	PerceivedExertion int        `json:"perceivedExertion"`
	Completed         bool       `json:"completed"`
	Mood              string     `json:"mood"`
	CaloriesBurned    float64    `json:"caloriesBurned"`
	Notes             string     `json:"notes"`
}

// SessionUpdate carries partial-update fields; nil means keep. EndedAt is
// Optional so an explicit null reopens the session.
type SessionUpdate struct {
	StartedAt         *time.Time          `json:"startedAt"`
	EndedAt           Optional[time.Time] `json:"endedAt"`
	PerceivedExertion *int                `json:"perceivedExertion"`
	Completed         *bool               `json:"completed"`
	Mood              *string             `json:"mood"`
	CaloriesBurned    *float64            `json:"caloriesBurned"`
	Notes             *string             `json:"notes"`
}

// LogInput is the payload accepted by CreateLog.
type LogInput struct {
	SessionID   int64             `json:"sessionId"`
	ExerciseID  int64             `json:"exerciseId"`
	Sets        int               `json:"sets"`
	Reps        int               `json:"reps"`
	WeightKG    float64           `json:"weightKg"`
	DurationSec int               `json:"durationSec"`
	RestSec     int               `json:"restSec"`
	FormRating  int               `json:"formRating"`
	Difficulty  domain.Difficulty `json:"difficulty"`
}

// LogUpdate carries partial-update fields; nil means keep.
type LogUpdate struct {
	Sets        *int               `json:"sets"`
	Reps        *int               `json:"reps"`
	WeightKG    *float64           `json:"weightKg"`
	DurationSec *int               `json:"durationSec"`
	RestSec     *int               `json:"restSec"`
	FormRating  *int               `json:"formRating"`
	Difficulty  *domain.Difficulty `json:"difficulty"`
}

func validExertion(v int) bool { return v >= 1 && v <= 10 }
func validForm(v int) bool     { return v >= 1 && v <= 5 }

// CreateSession validates and stores a new workout session owned by userID.
func (s *WorkoutService) CreateSession(ctx context.Context, userID int64, in SessionInput) (*domain.WorkoutSession, error) {
	if !validExertion(in.PerceivedExertion) {
		return nil, domain.Invalid("perceived exertion must be between 1 and 10")
	}
	started := in.StartedAt
	if started.IsZero() {
		started = time.Now()
	}
	return s.sessions.Insert(ctx, &domain.WorkoutSession{
		UserID:            userID,
		StartedAt:         started,
		EndedAt:           in.EndedAt,
		PerceivedExertion: in.PerceivedExertion,
		Completed:         in.Completed,
		Mood:              in.Mood,
		CaloriesBurned:    in.CaloriesBurned,
		Notes:             in.Notes,
	})
}

// GetSession returns one workout session.
func (s *WorkoutService) GetSession(ctx context.Context, id int64) (*domain.WorkoutSession, error) {
	ws, err := s.sessions.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ws == nil {
		return nil, domain.ErrNotFound
	}
	return ws, nil
}

// ListSessions returns workout sessions matching the filter.
func (s *WorkoutService) ListSessions(ctx context.Context, f domain.SessionFilter) ([]domain.WorkoutSession, error) {
	return s.sessions.List(ctx, f)
}

// UpdateSession applies present fields, preserving the rest.
func (s *WorkoutService) UpdateSession(ctx context.Context, id int64, in SessionUpdate) (*domain.WorkoutSession, error) {
	ws, err := s.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.StartedAt != nil {
		ws.StartedAt = *in.StartedAt
	}
	if in.EndedAt.Set {
		ws.EndedAt = in.EndedAt.Ptr()
	}
	if in.PerceivedExertion != nil {
		if !validExertion(*in.PerceivedExertion) {
			return nil, domain.Invalid("perceived exertion must be between 1 and 10")
		}
		ws.PerceivedExertion = *in.PerceivedExertion
	}
	if in.Completed != nil {
		ws.Completed = *in.Completed
	}
	if in.Mood != nil {
		ws.Mood = *in.Mood
	}
	if in.CaloriesBurned != nil {
		ws.CaloriesBurned = *in.CaloriesBurned
	}
	if in.Notes != nil {
		ws.Notes = *in.Notes
	}
	if err := s.sessions.Update(ctx, ws); err != nil {
		return nil, err
	}
	return s.GetSession(ctx, id)
}

// DeleteSession removes a session and, by cascade, its exercise logs.
func (s *WorkoutService) DeleteSession(ctx context.Context, id int64) error {
	deleted, err := s.sessions.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.ErrNotFound
	}
	return nil
}

// SessionOwner resolves the owning user of a session, for authorization.
func (s *WorkoutService) SessionOwner(ctx context.Context, sessionID int64) (int64, error) {
	ws, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return 0, err
	}
	return ws.UserID, nil
}

// CreateLog validates referential integrity and stores a new exercise log.
func (s *WorkoutService) CreateLog(ctx context.Context, in LogInput) (*domain.ExerciseLog, error) {
	if !validForm(in.FormRating) {
		return nil, domain.Invalid("form rating must be between 1 and 5")
	}
	if !in.Difficulty.Valid() {
		return nil, domain.Invalid("unknown difficulty %q", in.Difficulty)
	}
	if _, err := s.GetSession(ctx, in.SessionID); err != nil {
		if err == domain.ErrNotFound {
			return nil, domain.Invalid("session %d does not exist", in.SessionID)
		}
		return nil, err
	}
	if e, err := s.exercises.FindByID(ctx, in.ExerciseID); err != nil {
		return nil, err
	} else if e == nil {
		return nil, domain.Invalid("exercise %d does not exist", in.ExerciseID)
	}
	return s.logs.Insert(ctx, &domain.ExerciseLog{
		SessionID:   in.SessionID,
		ExerciseID:  in.ExerciseID,
		Sets:        in.Sets,
		Reps:        in.Reps,
		WeightKG:    in.WeightKG,
		DurationSec: in.DurationSec,
		RestSec:     in.RestSec,
		FormRating:  in.FormRating,
		Difficulty:  in.Difficulty,
	})
}

// GetLog returns one exercise log.
func (s *WorkoutService) GetLog(ctx context.Context, id int64) (*domain.ExerciseLog, error) {
	el, err := s.logs.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if el == nil {
		return nil, domain.ErrNotFound
	}
	return el, nil
}

// ListLogs returns exercise logs matching the filter.
func (s *WorkoutService) ListLogs(ctx context.Context, f domain.LogFilter) ([]domain.ExerciseLog, error) {
	return s.logs.List(ctx, f)
}

// UpdateLog applies present fields, preserving the rest.
func (s *WorkoutService) UpdateLog(ctx context.Context, id int64, in LogUpdate) (*domain.ExerciseLog, error) {
	el, err := s.GetLog(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Sets != nil {
		el.Sets = *in.Sets
	}
	if in.Reps != nil {
		el.Reps = *in.Reps
	}
	if in.WeightKG != nil {
		el.WeightKG = *in.WeightKG
	}
	if in.DurationSec != nil {
		el.DurationSec = *in.DurationSec
	}
	if in.RestSec != nil {
		el.RestSec = *in.RestSec
	}
	if in.FormRating != nil {
		if !validForm(*in.FormRating) {
			return nil, domain.Invalid("form rating must be between 1 and 5")
		}
		el.FormRating = *in.FormRating
	}
	if in.Difficulty != nil {
		if !in.Difficulty.Valid() {
			return nil, domain.Invalid("unknown difficulty %q", *in.Difficulty)
		}
		el.Difficulty = *in.Difficulty
	}
	if err := s.logs.Update(ctx, el); err != nil {
		return nil, err
	}
	return s.GetLog(ctx, id)
}

// DeleteLog removes an exercise log.
func (s *WorkoutService) DeleteLog(ctx context.Context, id int64) error {
	deleted, err := s.logs.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.ErrNotFound
	}
	return nil
}

// LogOwner resolves the owning user of a log through its session.
func (s *WorkoutService) LogOwner(ctx context.Context, logID int64) (int64, error) {
	el, err := s.GetLog(ctx, logID)
	if err != nil {
		return 0, err
	}
	return s.SessionOwner(ctx, el.SessionID)
}
