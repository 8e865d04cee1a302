package repository

import (
	"context"
	"time"

	"gymsphere/fitness-app/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for the repository layer.
var (
	ErrNotFound     = RepositoryError("not found")
	ErrDuplicateKey = RepositoryError("duplicate key")
	ErrUpdateFailed = RepositoryError("update failed")
)

// RepositoryError helps distinguish repository errors.
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with user data.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	UpdateProfile(ctx context.Context, user *domain.User) error
	// UpdateStreaks overwrites the stored streak counters for the user.
	UpdateStreaks(ctx context.Context, id primitive.ObjectID, workout, diet int) error
}

// PlanRepository defines the interface for interacting with plan data.
type PlanRepository interface {
	// CreateWithEntries persists the plan and all of its daily entries
	// atomically. A reader must never observe a plan with fewer entries
	// than it was generated with.
	CreateWithEntries(ctx context.Context, plan *domain.Plan, entries []domain.DailyEntry) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Plan, error)
	// GetLatestByOwner returns the owner's most recently created plan
	// (the "active" plan), or ErrNotFound if the owner has none.
	GetLatestByOwner(ctx context.Context, ownerID primitive.ObjectID) (*domain.Plan, error)
	// GetCoveringDate returns the newest plan whose [StartDate, EndDate]
	// range contains the given date.
	GetCoveringDate(ctx context.Context, ownerID primitive.ObjectID, date time.Time) (*domain.Plan, error)
}

// EntryRepository defines the interface for interacting with daily entries.
type EntryRepository interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.DailyEntry, error)
	GetByPlanAndDate(ctx context.Context, planID primitive.ObjectID, date time.Time) (*domain.DailyEntry, error)
	// GetByPlanUpTo returns entries with date <= the given date, newest first.
	GetByPlanUpTo(ctx context.Context, planID primitive.ObjectID, date time.Time) ([]domain.DailyEntry, error)
	// GetByPlan returns all entries of the plan in date order.
	GetByPlan(ctx context.Context, planID primitive.ObjectID) ([]domain.DailyEntry, error)
	// SetCompletion flips the completion flag of the given kind and stamps
	// its completion time. Re-setting an already-completed entry is allowed
	// (last writer wins on the timestamp).
	SetCompletion(ctx context.Context, id primitive.ObjectID, kind domain.CheckInKind, at time.Time) error
}

// CheckInRepository defines the interface for the append-only check-in log.
type CheckInRepository interface {
	Create(ctx context.Context, checkIn *domain.CheckIn) (primitive.ObjectID, error)
	GetByEntryID(ctx context.Context, entryID primitive.ObjectID) ([]domain.CheckIn, error)
}

// NotificationRepository defines the interface for notification storage.
type NotificationRepository interface {
	// Create inserts the notification. Returns ErrDuplicateKey if a
	// notification with the same dedupe key already exists.
	Create(ctx context.Context, n *domain.Notification) (primitive.ObjectID, error)
	HasUnreadWithTitle(ctx context.Context, ownerID primitive.ObjectID, title string) (bool, error)
	HasWithTitleSince(ctx context.Context, ownerID primitive.ObjectID, title string, since time.Time) (bool, error)
	// ListByOwner returns up to limit notifications, unread first, newest first.
	ListByOwner(ctx context.Context, ownerID primitive.ObjectID, limit int64) ([]domain.Notification, error)
	MarkRead(ctx context.Context, ownerID, id primitive.ObjectID) error
	MarkAllRead(ctx context.Context, ownerID primitive.ObjectID) error
}

// ContentFilter narrows a content catalog query.
type ContentFilter struct {
	Tag            string   // Match exercises carrying this tag
	ExcludeTags    []string // Skip exercises carrying any of these tags
	BodyweightOnly bool     // Restrict to bodyweight-compatible items
}

// ExerciseRepository is the content provider: a read-only catalog of
// exercises queried by tag and equipment constraints.
type ExerciseRepository interface {
	Query(ctx context.Context, filter ContentFilter) ([]domain.Exercise, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Exercise, error)
}

// ProductRepository defines the interface for the store catalog.
type ProductRepository interface {
	// SearchByName returns the first product whose name loosely matches
	// the given term, or ErrNotFound.
	SearchByName(ctx context.Context, term string) (*domain.Product, error)
}

// ProgressRepository defines the interface for weight progress logs.
type ProgressRepository interface {
	Create(ctx context.Context, entry *domain.ProgressLog) (primitive.ObjectID, error)
	ListByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]domain.ProgressLog, error)
}
