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

func newGoalService() *app.GoalService {
	return app.NewGoalService(memory.NewFitnessGoalRepo(memory.New()))
}

func TestGoalCreate_ComputesProgress(t *testing.T) {
	svc := newGoalService()
	ctx := context.Background()

	g, err := svc.Create(ctx, 1, app.GoalInput{
		Title: "Squat 140", GoalType: "strength", TargetValue: 140, CurrentValue: 105,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.ProgressPct != 75 {
		t.Fatalf("expected 75%%, got %v", g.ProgressPct)
	}

	// Values past the target clamp at 100.
	g, err = svc.Create(ctx, 1, app.GoalInput{
		Title: "Run 5k", TargetValue: 5, CurrentValue: 8,
	})
	if err != nil {
		t.Fatal(err)
	}
	if g.ProgressPct != 100 {
		t.Fatalf("expected clamp at 100, got %v", g.ProgressPct)
	}

	// No target means no meaningful progress.
	g, err = svc.Create(ctx, 1, app.GoalInput{Title: "Stretch daily"})
	if err != nil {
		t.Fatal(err)
	}
	if g.ProgressPct != 0 {
		t.Fatalf("expected 0 without target, got %v", g.ProgressPct)
	}

	if _, err := svc.Create(ctx, 1, app.GoalInput{}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("missing title: got %v", err)
	}
}

func TestGoalUpdate_RecomputesUnlessPinned(t *testing.T) {
	svc := newGoalService()
	ctx := context.Background()

	g, err := svc.Create(ctx, 1, app.GoalInput{Title: "Squat 140", TargetValue: 140, CurrentValue: 70})
	if err != nil {
		t.Fatal(err)
	}

	current := 105.0
	got, err := svc.Update(ctx, g.ID, app.GoalUpdate{CurrentValue: &current})
	if err != nil {
		t.Fatal(err)
	}
	if got.ProgressPct != 75 {
		t.Fatalf("expected recomputed 75%%, got %v", got.ProgressPct)
	}

	// Explicit progress wins over the recomputation.
	pinned := 40.0
	current = 140
	got, err = svc.Update(ctx, g.ID, app.GoalUpdate{CurrentValue: &current, ProgressPct: &pinned})
	if err != nil {
		t.Fatal(err)
	}
	if got.ProgressPct != 40 {
		t.Fatalf("expected pinned 40%%, got %v", got.ProgressPct)
	}

	out := 140.0
	if _, err := svc.Update(ctx, g.ID, app.GoalUpdate{ProgressPct: &out}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("out-of-range progress: got %v", err)
	}
}

func TestGoalUpdate_ExplicitNullClearsDeadline(t *testing.T) {
	svc := newGoalService()
	ctx := context.Background()

	deadline := time.Now().AddDate(0, 3, 0)
	g, err := svc.Create(ctx, 1, app.GoalInput{Title: "Squat 140", TargetDate: &deadline})
	if err != nil {
		t.Fatal(err)
	}

	achieved := true
	got, err := svc.Update(ctx, g.ID, app.GoalUpdate{Achieved: &achieved})
	if err != nil {
		t.Fatal(err)
	}
	if got.TargetDate == nil {
		t.Fatal("deadline lost on unrelated update")
	}

	got, err = svc.Update(ctx, g.ID, app.GoalUpdate{
		TargetDate: app.Optional[time.Time]{Set: true, Null: true},
	})
	if err != nil {
		t.Fatal(err)
	}
	if got.TargetDate != nil {
		t.Fatalf("deadline not cleared: %+v", got)
	}
}
