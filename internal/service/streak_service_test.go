package service

import (
	"context"
	"testing"
	"time"

	"gymsphere/fitness-app/internal/domain"
)

var streakTestNow = time.Date(2025, 3, 10, 20, 0, 0, 0, time.UTC)

// dayEntry builds an entry offset days from today (negative = past).
func dayEntry(offset int, exerciseDay, exerciseDone, dietDone bool) domain.DailyEntry {
	return domain.DailyEntry{
		Date:                domain.DateOnly(streakTestNow).AddDate(0, 0, offset),
		IsExerciseDay:       exerciseDay,
		IsExerciseCompleted: exerciseDone,
		IsDietCompleted:     dietDone,
	}
}

func newStreakFixture(t *testing.T, entries []domain.DailyEntry) (StreakService, *stubUserRepo, *domain.User) {
	t.Helper()
	return newStreakFixtureEnding(t, entries, domain.DateOnly(streakTestNow).AddDate(0, 0, 29))
}

// newStreakFixtureEnding seeds a plan with an explicit end date, for
// exercising plans that have already run out.
func newStreakFixtureEnding(t *testing.T, entries []domain.DailyEntry, end time.Time) (StreakService, *stubUserRepo, *domain.User) {
	t.Helper()

	owner := &domain.User{Name: "Sam", Email: "sam@example.com"}
	userRepo := newStubUserRepo(owner)
	entryRepo := &stubEntryRepo{}
	planRepo := newStubPlanRepo(entryRepo)

	if len(entries) > 0 {
		plan := &domain.Plan{
			OwnerID:   owner.ID,
			StartDate: entries[0].Date,
			EndDate:   end,
		}
		if _, err := planRepo.CreateWithEntries(context.Background(), plan, entries); err != nil {
			t.Fatalf("seeding plan failed: %v", err)
		}
	}

	svc := NewStreakService(planRepo, entryRepo, userRepo, fixedClock{streakTestNow})
	return svc, userRepo, owner
}

func TestComputeStreaksAllComplete(t *testing.T) {
	svc, _, owner := newStreakFixture(t, []domain.DailyEntry{
		dayEntry(-2, true, true, true),
		dayEntry(-1, true, true, true),
		dayEntry(0, true, true, true),
	})

	got, err := svc.ComputeStreaks(context.Background(), owner.ID)
	if err != nil {
		t.Fatalf("ComputeStreaks failed: %v", err)
	}
	if got.Workout != 3 || got.Diet != 3 {
		t.Errorf("streaks = %+v, want {3 3}", got)
	}
}

func TestComputeStreaksTodayPendingSkipsNotBreaks(t *testing.T) {
	svc, _, owner := newStreakFixture(t, []domain.DailyEntry{
		dayEntry(-2, true, true, true),
		dayEntry(-1, true, true, true),
		dayEntry(0, true, false, false), // Today not yet checked in
	})

	got, err := svc.ComputeStreaks(context.Background(), owner.ID)
	if err != nil {
		t.Fatalf("ComputeStreaks failed: %v", err)
	}
	if got.Workout != 2 || got.Diet != 2 {
		t.Errorf("streaks = %+v, want {2 2}: pending today must not break the run", got)
	}
}

func TestComputeStreaksIndependentDimensions(t *testing.T) {
	// Yesterday's workout was missed but the diet held; the diet streak
	// keeps running while the workout streak restarts at today.
	svc, _, owner := newStreakFixture(t, []domain.DailyEntry{
		dayEntry(-2, true, true, true),
		dayEntry(-1, true, false, true),
		dayEntry(0, true, true, true),
	})

	got, err := svc.ComputeStreaks(context.Background(), owner.ID)
	if err != nil {
		t.Fatalf("ComputeStreaks failed: %v", err)
	}
	if got.Workout != 1 {
		t.Errorf("workout streak = %d, want 1", got.Workout)
	}
	if got.Diet != 3 {
		t.Errorf("diet streak = %d, want 3", got.Diet)
	}
}

func TestComputeStreaksRestDayNeutralForWorkout(t *testing.T) {
	svc, _, owner := newStreakFixture(t, []domain.DailyEntry{
		dayEntry(-2, true, true, true),
		dayEntry(-1, false, false, true), // Rest day, diet done
		dayEntry(0, true, true, true),
	})

	got, err := svc.ComputeStreaks(context.Background(), owner.ID)
	if err != nil {
		t.Fatalf("ComputeStreaks failed: %v", err)
	}
	if got.Workout != 3 || got.Diet != 3 {
		t.Errorf("streaks = %+v, want {3 3}: rest days pass the workout streak through", got)
	}
}

func TestComputeStreaksRestDayStillNeedsDiet(t *testing.T) {
	svc, _, owner := newStreakFixture(t, []domain.DailyEntry{
		dayEntry(-2, true, true, true),
		dayEntry(-1, false, false, false), // Rest day, diet skipped
		dayEntry(0, true, true, true),
	})

	got, err := svc.ComputeStreaks(context.Background(), owner.ID)
	if err != nil {
		t.Fatalf("ComputeStreaks failed: %v", err)
	}
	if got.Workout != 3 {
		t.Errorf("workout streak = %d, want 3", got.Workout)
	}
	if got.Diet != 1 {
		t.Errorf("diet streak = %d, want 1", got.Diet)
	}
}

func TestComputeStreaksDateGapBreaksBoth(t *testing.T) {
	// No entry for yesterday at all: the walk must stop rather than
	// bridging the hole.
	svc, _, owner := newStreakFixture(t, []domain.DailyEntry{
		dayEntry(-3, true, true, true),
		dayEntry(-2, true, true, true),
		dayEntry(0, true, true, true),
	})

	got, err := svc.ComputeStreaks(context.Background(), owner.ID)
	if err != nil {
		t.Fatalf("ComputeStreaks failed: %v", err)
	}
	if got.Workout != 1 || got.Diet != 1 {
		t.Errorf("streaks = %+v, want {1 1}: a date gap breaks both runs", got)
	}
}

func TestComputeStreaksSurviveExpiredPlan(t *testing.T) {
	// The plan ran out yesterday with every day completed. The streak
	// belongs to the history, not the schedule: it must carry over
	// instead of resetting the morning after the plan's last day.
	svc, _, owner := newStreakFixtureEnding(t, []domain.DailyEntry{
		dayEntry(-3, true, true, true),
		dayEntry(-2, false, false, true), // Rest day
		dayEntry(-1, true, true, true),
	}, domain.DateOnly(streakTestNow).AddDate(0, 0, -1))

	got, err := svc.ComputeStreaks(context.Background(), owner.ID)
	if err != nil {
		t.Fatalf("ComputeStreaks failed: %v", err)
	}
	if got.Workout != 3 || got.Diet != 3 {
		t.Errorf("streaks = %+v, want {3 3}: an expired plan keeps its streak", got)
	}
}

func TestComputeStreaksExpiredPlanFinalDayJudgedStrictly(t *testing.T) {
	// The pending-today leniency does not extend to an expired plan's
	// final day: a workout skipped on the last day stays a miss.
	svc, _, owner := newStreakFixtureEnding(t, []domain.DailyEntry{
		dayEntry(-3, true, true, true),
		dayEntry(-2, true, true, true),
		dayEntry(-1, true, false, true),
	}, domain.DateOnly(streakTestNow).AddDate(0, 0, -1))

	got, err := svc.ComputeStreaks(context.Background(), owner.ID)
	if err != nil {
		t.Fatalf("ComputeStreaks failed: %v", err)
	}
	if got.Workout != 0 {
		t.Errorf("workout streak = %d, want 0", got.Workout)
	}
	if got.Diet != 3 {
		t.Errorf("diet streak = %d, want 3", got.Diet)
	}
}

func TestComputeStreaksNoPlan(t *testing.T) {
	svc, _, owner := newStreakFixture(t, nil)

	got, err := svc.ComputeStreaks(context.Background(), owner.ID)
	if err != nil {
		t.Fatalf("ComputeStreaks failed: %v", err)
	}
	if got.Workout != 0 || got.Diet != 0 {
		t.Errorf("streaks = %+v, want zero without a plan", got)
	}
}

func TestComputeStreaksPersistsOnlyOnChange(t *testing.T) {
	svc, userRepo, owner := newStreakFixture(t, []domain.DailyEntry{
		dayEntry(-1, true, true, true),
		dayEntry(0, true, true, true),
	})

	if _, err := svc.ComputeStreaks(context.Background(), owner.ID); err != nil {
		t.Fatalf("ComputeStreaks failed: %v", err)
	}
	if userRepo.streakUpdates != 1 {
		t.Fatalf("streak updates = %d, want 1 after first computation", userRepo.streakUpdates)
	}

	// Recomputing identical state writes nothing.
	if _, err := svc.ComputeStreaks(context.Background(), owner.ID); err != nil {
		t.Fatalf("ComputeStreaks failed: %v", err)
	}
	if userRepo.streakUpdates != 1 {
		t.Errorf("streak updates = %d, want still 1 with unchanged streaks", userRepo.streakUpdates)
	}

	stored, _ := userRepo.GetByID(context.Background(), owner.ID)
	if stored.WorkoutStreak != 2 || stored.DietStreak != 2 {
		t.Errorf("persisted streaks = %d/%d, want 2/2", stored.WorkoutStreak, stored.DietStreak)
	}
}
