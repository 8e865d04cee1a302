package service

import (
	"context"
	"errors"
	"time"

	"gymsphere/fitness-app/internal/domain"
	"gymsphere/fitness-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Streaks holds the two independent streak counters.
type Streaks struct {
	Workout int `json:"workout"`
	Diet    int `json:"diet"`
}

// StreakService recomputes streaks from entry history on demand. The
// computation is pure given entry state, so concurrent recomputation
// converges; the result is persisted onto the user record only when it
// differs from the stored values.
type StreakService interface {
	ComputeStreaks(ctx context.Context, ownerID primitive.ObjectID) (Streaks, error)
}

type streakService struct {
	planRepo  repository.PlanRepository
	entryRepo repository.EntryRepository
	userRepo  repository.UserRepository
	clock     Clock
}

// NewStreakService creates a new instance of streakService.
func NewStreakService(
	planRepo repository.PlanRepository,
	entryRepo repository.EntryRepository,
	userRepo repository.UserRepository,
	clock Clock,
) StreakService {
	return &streakService{
		planRepo:  planRepo,
		entryRepo: entryRepo,
		userRepo:  userRepo,
		clock:     clock,
	}
}

// workoutSuccess reports whether the entry counts toward the workout
// streak: a completed exercise day, or any rest day.
func workoutSuccess(e *domain.DailyEntry) bool {
	return !e.IsExerciseDay || e.IsExerciseCompleted
}

func (s *streakService) ComputeStreaks(ctx context.Context, ownerID primitive.ObjectID) (Streaks, error) {
	plan, err := s.planRepo.GetLatestByOwner(ctx, ownerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return Streaks{}, nil
		}
		return Streaks{}, err
	}

	today := domain.DateOnly(s.clock.Now())
	entries, err := s.entryRepo.GetByPlanUpTo(ctx, plan.ID, today)
	if err != nil {
		return Streaks{}, err
	}
	if len(entries) == 0 {
		return Streaks{}, nil
	}

	streaks := walkStreaks(entries, today, domain.DateOnly(plan.EndDate))

	// Persist only on change; the walk itself is read-only.
	user, err := s.userRepo.GetByID(ctx, ownerID)
	if err != nil {
		return Streaks{}, err
	}
	if user.WorkoutStreak != streaks.Workout || user.DietStreak != streaks.Diet {
		if err := s.userRepo.UpdateStreaks(ctx, ownerID, streaks.Workout, streaks.Diet); err != nil {
			return Streaks{}, err
		}
	}
	return streaks, nil
}

// walkStreaks walks the entries (sorted by date descending) backward
// from today and accumulates both streaks independently.
//
// Today is special-cased: an exercise day that is still pending does not
// break the workout streak, it just does not count yet; likewise a
// pending diet does not break the diet streak. Every earlier day is
// judged strictly.
//
// The walk also verifies calendar continuity: a missing date in the
// backward sequence breaks both streaks rather than silently passing,
// because a gap means entry data was lost. Days after the plan's end
// date are different: they carry no obligations, so an expired plan
// keeps its streak and the walk anchors at the final entry instead of
// today.
func walkStreaks(entries []domain.DailyEntry, today, planEnd time.Time) Streaks {
	var st Streaks

	idx := 0
	expected := today
	if planEnd.Before(today) {
		expected = entries[0].Date
	}

	if entries[0].Date.Equal(today) {
		first := &entries[0]
		if workoutSuccess(first) {
			st.Workout++
		}
		if first.IsDietCompleted {
			st.Diet++
		}
		idx = 1
		expected = today.AddDate(0, 0, -1)
	}

	workoutBroken := false
	dietBroken := false
	for i := idx; i < len(entries); i++ {
		e := &entries[i]
		if !e.Date.Equal(expected) {
			// Gap in the date sequence: treat as a break for both.
			break
		}

		if !workoutBroken {
			if workoutSuccess(e) {
				st.Workout++
			} else {
				workoutBroken = true
			}
		}
		if !dietBroken {
			if e.IsDietCompleted {
				st.Diet++
			} else {
				dietBroken = true
			}
		}
		if workoutBroken && dietBroken {
			break
		}
		expected = expected.AddDate(0, 0, -1)
	}

	return st
}
