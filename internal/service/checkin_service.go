package service

import (
	"context"
	"errors"

	"gymsphere/fitness-app/internal/domain"
	"gymsphere/fitness-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrEntryNotFound      = errors.New("daily entry not found")
	ErrEntryNotOwned      = errors.New("entry does not belong to this owner")
	ErrInvalidCheckInKind = errors.New("check-in kind must be exercise or diet")
	ErrRestDayCheckIn     = errors.New("cannot record an exercise check-in on a rest day")
)

// CheckInService drives the per-entry completion lifecycle. Each
// dimension (exercise, diet) moves pending -> completed exactly once;
// there is no reversal path. A repeated check-in of the same kind is
// accepted and only re-stamps the completion time.
type CheckInService interface {
	RecordCheckIn(ctx context.Context, ownerID, entryID primitive.ObjectID, kind domain.CheckInKind, note string) (*domain.DailyEntry, error)
}

type checkInService struct {
	entryRepo   repository.EntryRepository
	checkInRepo repository.CheckInRepository
	clock       Clock
}

// NewCheckInService creates a new instance of checkInService.
func NewCheckInService(entryRepo repository.EntryRepository, checkInRepo repository.CheckInRepository, clock Clock) CheckInService {
	return &checkInService{
		entryRepo:   entryRepo,
		checkInRepo: checkInRepo,
		clock:       clock,
	}
}

func (s *checkInService) RecordCheckIn(ctx context.Context, ownerID, entryID primitive.ObjectID, kind domain.CheckInKind, note string) (*domain.DailyEntry, error) {
	if !kind.Valid() {
		return nil, ErrInvalidCheckInKind
	}

	entry, err := s.entryRepo.GetByID(ctx, entryID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrEntryNotFound
		}
		return nil, err
	}

	// Owner guard: the check-in must come from the entry's plan owner.
	if entry.OwnerID != ownerID {
		return nil, ErrEntryNotOwned
	}

	// Rest days have no exercise to complete.
	if kind == domain.CheckInExercise && !entry.IsExerciseDay {
		return nil, ErrRestDayCheckIn
	}

	now := s.clock.Now().UTC()
	if err := s.entryRepo.SetCompletion(ctx, entry.ID, kind, now); err != nil {
		return nil, err
	}

	// The check-in log is the audit trail behind the completion flags;
	// it is appended even when the flag was already set.
	checkIn := &domain.CheckIn{
		OwnerID:   ownerID,
		EntryID:   entry.ID,
		Kind:      kind,
		Note:      note,
		Timestamp: now,
	}
	if _, err := s.checkInRepo.Create(ctx, checkIn); err != nil {
		return nil, err
	}

	switch kind {
	case domain.CheckInExercise:
		entry.IsExerciseCompleted = true
		entry.ExerciseCompletedAt = &now
	case domain.CheckInDiet:
		entry.IsDietCompleted = true
		entry.DietCompletedAt = &now
	}
	return entry, nil
}
