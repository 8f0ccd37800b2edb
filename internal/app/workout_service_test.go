package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"fittrack/internal/adapter/memory"
	"fittrack/internal/app"
	"fittrack/internal/domain"
)

type workoutFixture struct {
	workouts *app.WorkoutService
	catalog  *app.CatalogService
}

func newWorkoutFixture() workoutFixture {
	db := memory.New()
	exercises := memory.NewExerciseRepo(db)
	logs := memory.NewExerciseLogRepo(db)
	return workoutFixture{
		workouts: app.NewWorkoutService(memory.NewWorkoutSessionRepo(db), logs, exercises),
		catalog:  app.NewCatalogService(memory.NewWorkoutTypeRepo(db), exercises, logs),
	}
}

func TestCreateSession(t *testing.T) {
	f := newWorkoutFixture()

	ws, err := f.workouts.CreateSession(context.Background(), 1, app.SessionInput{
		PerceivedExertion: 7, Mood: "good",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ws.UserID != 1 {
		t.Fatalf("owner not set: %+v", ws)
	}
	if ws.StartedAt.IsZero() {
		t.Fatal("zero StartedAt must default to now")
	}

	for _, exertion := range []int{0, 11, -3} {
		if _, err := f.workouts.CreateSession(context.Background(), 1, app.SessionInput{
			PerceivedExertion: exertion,
		}); !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("exertion %d: expected validation error, got %v", exertion, err)
		}
	}
}

func TestUpdateSession_ExplicitNullReopens(t *testing.T) {
	f := newWorkoutFixture()
	ctx := context.Background()

	ended := time.Now()
	ws, err := f.workouts.CreateSession(ctx, 1, app.SessionInput{
		PerceivedExertion: 5, EndedAt: &ended,
	})
	if err != nil {
		t.Fatal(err)
	}

	// Unrelated update keeps the end time.
	mood := "tired"
	got, err := f.workouts.UpdateSession(ctx, ws.ID, app.SessionUpdate{Mood: &mood})
	if err != nil {
		t.Fatal(err)
	}
	if got.EndedAt == nil {
		t.Fatal("end time lost on unrelated update")
	}

	// Explicit null reopens the session.
	got, err = f.workouts.UpdateSession(ctx, ws.ID, app.SessionUpdate{
		EndedAt: app.Optional[time.Time]{Set: true, Null: true},
	})
	if err != nil {
		t.Fatal(err)
	}
	if got.EndedAt != nil {
		t.Fatalf("session not reopened: %+v", got)
	}
}

func TestCreateLog_ReferentialIntegrity(t *testing.T) {
	f := newWorkoutFixture()
	ctx := context.Background()

	e, err := f.catalog.CreateExercise(ctx, app.ExerciseInput{Name: "Squat", Difficulty: domain.Advanced})
	if err != nil {
		t.Fatal(err)
	}
	ws, err := f.workouts.CreateSession(ctx, 1, app.SessionInput{PerceivedExertion: 6})
	if err != nil {
		t.Fatal(err)
	}

	valid := app.LogInput{
		SessionID: ws.ID, ExerciseID: e.ID, Sets: 5, Reps: 5, WeightKG: 120,
		FormRating: 4, Difficulty: domain.Advanced,
	}
	if _, err := f.workouts.CreateLog(ctx, valid); err != nil {
		t.Fatalf("valid log rejected: %v", err)
	}

	missingSession := valid
	missingSession.SessionID = 99
	if _, err := f.workouts.CreateLog(ctx, missingSession); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("missing session: got %v", err)
	}

	missingExercise := valid
	missingExercise.ExerciseID = 99
	if _, err := f.workouts.CreateLog(ctx, missingExercise); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("missing exercise: got %v", err)
	}

	badForm := valid
	badForm.FormRating = 6
	if _, err := f.workouts.CreateLog(ctx, badForm); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("bad form rating: got %v", err)
	}
}

func TestDeleteSession_CascadesLogs(t *testing.T) {
	f := newWorkoutFixture()
	ctx := context.Background()

	e, err := f.catalog.CreateExercise(ctx, app.ExerciseInput{Name: "Squat", Difficulty: domain.Advanced})
	if err != nil {
		t.Fatal(err)
	}
	ws, err := f.workouts.CreateSession(ctx, 1, app.SessionInput{PerceivedExertion: 6})
	if err != nil {
		t.Fatal(err)
	}
	el, err := f.workouts.CreateLog(ctx, app.LogInput{
		SessionID: ws.ID, ExerciseID: e.ID, Sets: 3, Reps: 8, WeightKG: 80,
		FormRating: 3, Difficulty: domain.Intermediate,
	})
	if err != nil {
		t.Fatal(err)
	}

	if err := f.workouts.DeleteSession(ctx, ws.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := f.workouts.GetLog(ctx, el.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("log survived session delete: %v", err)
	}
}

func TestLogOwner(t *testing.T) {
	f := newWorkoutFixture()
	ctx := context.Background()

	e, err := f.catalog.CreateExercise(ctx, app.ExerciseInput{Name: "Row", Difficulty: domain.Beginner})
	if err != nil {
		t.Fatal(err)
	}
	ws, err := f.workouts.CreateSession(ctx, 42, app.SessionInput{PerceivedExertion: 4})
	if err != nil {
		t.Fatal(err)
	}
	el, err := f.workouts.CreateLog(ctx, app.LogInput{
		SessionID: ws.ID, ExerciseID: e.ID, Sets: 3, Reps: 10,
		FormRating: 3, Difficulty: domain.Beginner,
	})
	if err != nil {
		t.Fatal(err)
	}

	owner, err := f.workouts.LogOwner(ctx, el.ID)
	if err != nil {
		t.Fatal(err)
	}
	if owner != 42 {
		t.Fatalf("expected owner 42, got %d", owner)
	}
}

func TestListSessions_Filter(t *testing.T) {
	f := newWorkoutFixture()
	ctx := context.Background()

	done := time.Now()
	if _, err := f.workouts.CreateSession(ctx, 1, app.SessionInput{PerceivedExertion: 5, Completed: true, EndedAt: &done}); err != nil {
		t.Fatal(err)
	}
	if _, err := f.workouts.CreateSession(ctx, 1, app.SessionInput{PerceivedExertion: 5}); err != nil {
		t.Fatal(err)
	}
	if _, err := f.workouts.CreateSession(ctx, 2, app.SessionInput{PerceivedExertion: 5}); err != nil {
		t.Fatal(err)
	}

	uid := int64(1)
	completed := true
	got, err := f.workouts.ListSessions(ctx, domain.SessionFilter{UserID: &uid, Completed: &completed, Limit: 100})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || !got[0].Completed || got[0].UserID != 1 {
		t.Fatalf("unexpected sessions: %+v", got)
	}
}
