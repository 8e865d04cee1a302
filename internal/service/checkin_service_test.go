package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"gymsphere/fitness-app/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var checkInTestNow = time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)

func newCheckInFixture(t *testing.T, isExerciseDay bool) (CheckInService, *stubEntryRepo, *stubCheckInRepo, domain.DailyEntry) {
	t.Helper()

	entry := domain.DailyEntry{
		ID:            primitive.NewObjectID(),
		PlanID:        primitive.NewObjectID(),
		OwnerID:       primitive.NewObjectID(),
		Date:          domain.DateOnly(checkInTestNow),
		IsExerciseDay: isExerciseDay,
	}
	entryRepo := &stubEntryRepo{entries: []domain.DailyEntry{entry}}
	checkInRepo := &stubCheckInRepo{}
	svc := NewCheckInService(entryRepo, checkInRepo, fixedClock{checkInTestNow})
	return svc, entryRepo, checkInRepo, entry
}

func TestRecordCheckInExercise(t *testing.T) {
	svc, entryRepo, checkInRepo, entry := newCheckInFixture(t, true)

	got, err := svc.RecordCheckIn(context.Background(), entry.OwnerID, entry.ID, domain.CheckInExercise, "felt great")
	if err != nil {
		t.Fatalf("RecordCheckIn failed: %v", err)
	}

	if !got.IsExerciseCompleted {
		t.Error("returned entry not marked exercise-completed")
	}
	if got.ExerciseCompletedAt == nil || !got.ExerciseCompletedAt.Equal(checkInTestNow) {
		t.Errorf("ExerciseCompletedAt = %v, want %v", got.ExerciseCompletedAt, checkInTestNow)
	}
	if got.IsDietCompleted {
		t.Error("diet flag flipped by an exercise check-in")
	}

	stored, _ := entryRepo.GetByID(context.Background(), entry.ID)
	if !stored.IsExerciseCompleted {
		t.Error("stored entry not marked exercise-completed")
	}

	log, _ := checkInRepo.GetByEntryID(context.Background(), entry.ID)
	if len(log) != 1 || log[0].Kind != domain.CheckInExercise || log[0].Note != "felt great" {
		t.Errorf("check-in log = %+v, want one exercise check-in", log)
	}
}

func TestRecordCheckInIdempotentFlag(t *testing.T) {
	svc, entryRepo, checkInRepo, entry := newCheckInFixture(t, true)

	if _, err := svc.RecordCheckIn(context.Background(), entry.OwnerID, entry.ID, domain.CheckInDiet, ""); err != nil {
		t.Fatalf("first check-in failed: %v", err)
	}
	if _, err := svc.RecordCheckIn(context.Background(), entry.OwnerID, entry.ID, domain.CheckInDiet, ""); err != nil {
		t.Fatalf("repeated check-in failed: %v", err)
	}

	stored, _ := entryRepo.GetByID(context.Background(), entry.ID)
	if !stored.IsDietCompleted {
		t.Error("entry not marked diet-completed")
	}

	// The flag converges, the audit log keeps both events.
	log, _ := checkInRepo.GetByEntryID(context.Background(), entry.ID)
	if len(log) != 2 {
		t.Errorf("check-in log length = %d, want 2", len(log))
	}
}

func TestRecordCheckInRejectsForeignOwner(t *testing.T) {
	svc, entryRepo, _, entry := newCheckInFixture(t, true)

	_, err := svc.RecordCheckIn(context.Background(), primitive.NewObjectID(), entry.ID, domain.CheckInExercise, "")
	if !errors.Is(err, ErrEntryNotOwned) {
		t.Fatalf("err = %v, want ErrEntryNotOwned", err)
	}

	stored, _ := entryRepo.GetByID(context.Background(), entry.ID)
	if stored.IsExerciseCompleted {
		t.Error("rejected check-in still mutated the entry")
	}
}

func TestRecordCheckInRejectsRestDayExercise(t *testing.T) {
	svc, _, _, entry := newCheckInFixture(t, false)

	_, err := svc.RecordCheckIn(context.Background(), entry.OwnerID, entry.ID, domain.CheckInExercise, "")
	if !errors.Is(err, ErrRestDayCheckIn) {
		t.Errorf("err = %v, want ErrRestDayCheckIn", err)
	}

	// Diet check-ins are fine on rest days.
	if _, err := svc.RecordCheckIn(context.Background(), entry.OwnerID, entry.ID, domain.CheckInDiet, ""); err != nil {
		t.Errorf("rest-day diet check-in failed: %v", err)
	}
}

func TestRecordCheckInUnknownEntry(t *testing.T) {
	svc, _, _, entry := newCheckInFixture(t, true)

	_, err := svc.RecordCheckIn(context.Background(), entry.OwnerID, primitive.NewObjectID(), domain.CheckInDiet, "")
	if !errors.Is(err, ErrEntryNotFound) {
		t.Errorf("err = %v, want ErrEntryNotFound", err)
	}
}

func TestRecordCheckInInvalidKind(t *testing.T) {
	svc, _, _, entry := newCheckInFixture(t, true)

	_, err := svc.RecordCheckIn(context.Background(), entry.OwnerID, entry.ID, domain.CheckInKind("sleep"), "")
	if !errors.Is(err, ErrInvalidCheckInKind) {
		t.Errorf("err = %v, want ErrInvalidCheckInKind", err)
	}
}
