package app_test

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"fittrack/internal/adapter/memory"
	"fittrack/internal/app"
	"fittrack/internal/domain"
)

type statsFixture struct {
	stats    *app.StatsService
	workouts *app.WorkoutService
	catalog  *app.CatalogService
}

func newStatsFixture() statsFixture {
	db := memory.New()
	exercises := memory.NewExerciseRepo(db)
	logs := memory.NewExerciseLogRepo(db)
	return statsFixture{
		stats:    app.NewStatsService(memory.NewStatsRepo(db)),
		workouts: app.NewWorkoutService(memory.NewWorkoutSessionRepo(db), logs, exercises),
		catalog:  app.NewCatalogService(memory.NewWorkoutTypeRepo(db), exercises, logs),
	}
}

func (f statsFixture) logSet(t *testing.T, userID int64, exercise string, weight float64, when time.Time, calories float64) {
	t.Helper()
	ctx := context.Background()

	var e *domain.Exercise
	existing, err := f.catalog.ListExercises(ctx, domain.ExerciseFilter{Limit: 100})
	if err != nil {
		t.Fatal(err)
	}
	for i := range existing {
		if existing[i].Name == exercise {
			e = &existing[i]
		}
	}
	if e == nil {
		if e, err = f.catalog.CreateExercise(ctx, app.ExerciseInput{Name: exercise, Difficulty: domain.Intermediate}); err != nil {
			t.Fatal(err)
		}
	}

	ws, err := f.workouts.CreateSession(ctx, userID, app.SessionInput{
		StartedAt: when, PerceivedExertion: 6, CaloriesBurned: calories,
	})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.workouts.CreateLog(ctx, app.LogInput{
		SessionID: ws.ID, ExerciseID: e.ID, Sets: 1, Reps: 1, WeightKG: weight,
		FormRating: 3, Difficulty: domain.Intermediate,
	}); err != nil {
		t.Fatal(err)
	}
}

func TestPersonalRecords(t *testing.T) {
	f := newStatsFixture()
	now := time.Now()

	f.logSet(t, 1, "Squat", 100, now, 300)
	f.logSet(t, 1, "Squat", 120, now, 300)
	f.logSet(t, 2, "Squat", 150, now, 300) // someone else's lift

	records, err := f.stats.PersonalRecords(context.Background(), 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 {
		t.Fatalf("expected one record, got %d", len(records))
	}
	if records[0].MaxWeightKG != 120 || records[0].Entries != 2 {
		t.Fatalf("unexpected record: %+v", records[0])
	}
	if records[0].ExerciseName != "Squat" {
		t.Fatalf("exercise name missing: %+v", records[0])
	}
}

func TestWeekly(t *testing.T) {
	f := newStatsFixture()
	now := time.Now()

	f.logSet(t, 1, "Squat", 100, now, 250)
	f.logSet(t, 1, "Squat", 100, now.AddDate(0, 0, -2), 200)
	f.logSet(t, 1, "Squat", 100, now.AddDate(0, 0, -30), 999) // outside the window

	points, err := f.stats.Weekly(context.Background(), 1, "kg")
	if err != nil {
		t.Fatal(err)
	}
	if len(points) != 7 {
		t.Fatalf("expected 7 points, got %d", len(points))
	}
	if points[6].Day != now.Format("2006-01-02") {
		t.Fatalf("last point should be today, got %s", points[6].Day)
	}

	var total float64
	active := 0
	for _, p := range points {
		total += p.CaloriesBurned
		if p.Sessions > 0 {
			active++
		}
	}
	if active != 2 {
		t.Fatalf("expected 2 active days, got %d", active)
	}
	if total != 450 {
		t.Fatalf("expected 450 calories inside the window, got %v", total)
	}
}

func TestWeekly_CountsWholeBoundaryDays(t *testing.T) {
	f := newStatsFixture()
	now := time.Now().In(time.Local)

	// Early morning on the oldest day of the window and late evening today:
	// both fall on days inside the window regardless of the current
	// time-of-day, so both must be counted.
	y, m, d := now.AddDate(0, 0, -6).Date()
	oldest := time.Date(y, m, d, 1, 0, 0, 0, time.Local)
	y, m, d = now.Date()
	tonight := time.Date(y, m, d, 23, 0, 0, 0, time.Local)

	f.logSet(t, 1, "Deadlift", 140, oldest, 300)
	f.logSet(t, 1, "Deadlift", 140, tonight, 200)

	points, err := f.stats.Weekly(context.Background(), 1, "kg")
	if err != nil {
		t.Fatal(err)
	}
	if points[0].Day != oldest.Format("2006-01-02") {
		t.Fatalf("first point should be the oldest day, got %s", points[0].Day)
	}
	if points[0].Sessions != 1 || points[0].CaloriesBurned != 300 {
		t.Fatalf("oldest day's session was dropped: %+v", points[0])
	}
	if points[6].Sessions != 1 || points[6].CaloriesBurned != 200 {
		t.Fatalf("today's session was dropped: %+v", points[6])
	}
}

func TestWeekly_UnitConversion(t *testing.T) {
	f := newStatsFixture()
	now := time.Now()
	f.logSet(t, 1, "Squat", 100, now, 100)

	kg, err := f.stats.Weekly(context.Background(), 1, "kg")
	if err != nil {
		t.Fatal(err)
	}
	lb, err := f.stats.Weekly(context.Background(), 1, "lb")
	if err != nil {
		t.Fatal(err)
	}
	kgVol := kg[6].TotalVolume
	lbVol := lb[6].TotalVolume
	if kgVol == 0 {
		t.Fatal("expected volume today")
	}
	if math.Abs(lbVol-kgVol*2.2046226218) > 1e-6 {
		t.Fatalf("conversion mismatch: kg=%v lb=%v", kgVol, lbVol)
	}

	if _, err := f.stats.Weekly(context.Background(), 1, "stones"); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("bad unit: got %v", err)
	}
}
