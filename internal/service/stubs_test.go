package service

// In-memory repository stubs shared by the service tests.

import (
	"context"
	"errors"
	"sort"
	"time"

	"gymsphere/fitness-app/internal/domain"
	"gymsphere/fitness-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fixedClock returns a constant instant.
type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

// --- users ---

type stubUserRepo struct {
	users         map[primitive.ObjectID]*domain.User
	streakUpdates int
}

func newStubUserRepo(users ...*domain.User) *stubUserRepo {
	r := &stubUserRepo{users: make(map[primitive.ObjectID]*domain.User)}
	for _, u := range users {
		if u.ID == primitive.NilObjectID {
			u.ID = primitive.NewObjectID()
		}
		r.users[u.ID] = u
	}
	return r
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (primitive.ObjectID, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return primitive.NilObjectID, repository.ErrDuplicateKey
		}
	}
	user.ID = primitive.NewObjectID()
	user.CreatedAt = time.Now().UTC()
	r.users[user.ID] = user
	return user.ID, nil
}

func (r *stubUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *stubUserRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (r *stubUserRepo) UpdateProfile(_ context.Context, user *domain.User) error {
	stored, ok := r.users[user.ID]
	if !ok {
		return repository.ErrNotFound
	}
	copied := *user
	copied.WorkoutStreak = stored.WorkoutStreak
	copied.DietStreak = stored.DietStreak
	r.users[user.ID] = &copied
	return nil
}

func (r *stubUserRepo) UpdateStreaks(_ context.Context, id primitive.ObjectID, workout, diet int) error {
	u, ok := r.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.WorkoutStreak = workout
	u.DietStreak = diet
	r.streakUpdates++
	return nil
}

// --- entries ---

type stubEntryRepo struct {
	entries []domain.DailyEntry
}

func (r *stubEntryRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.DailyEntry, error) {
	for i := range r.entries {
		if r.entries[i].ID == id {
			copied := r.entries[i]
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *stubEntryRepo) GetByPlanAndDate(_ context.Context, planID primitive.ObjectID, date time.Time) (*domain.DailyEntry, error) {
	day := domain.DateOnly(date)
	for i := range r.entries {
		if r.entries[i].PlanID == planID && r.entries[i].Date.Equal(day) {
			copied := r.entries[i]
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *stubEntryRepo) GetByPlanUpTo(_ context.Context, planID primitive.ObjectID, date time.Time) ([]domain.DailyEntry, error) {
	day := domain.DateOnly(date)
	var out []domain.DailyEntry
	for _, e := range r.entries {
		if e.PlanID == planID && !e.Date.After(day) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (r *stubEntryRepo) GetByPlan(_ context.Context, planID primitive.ObjectID) ([]domain.DailyEntry, error) {
	var out []domain.DailyEntry
	for _, e := range r.entries {
		if e.PlanID == planID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (r *stubEntryRepo) SetCompletion(_ context.Context, id primitive.ObjectID, kind domain.CheckInKind, at time.Time) error {
	for i := range r.entries {
		if r.entries[i].ID != id {
			continue
		}
		stamp := at
		switch kind {
		case domain.CheckInExercise:
			r.entries[i].IsExerciseCompleted = true
			r.entries[i].ExerciseCompletedAt = &stamp
		case domain.CheckInDiet:
			r.entries[i].IsDietCompleted = true
			r.entries[i].DietCompletedAt = &stamp
		default:
			return errors.New("unknown check-in kind")
		}
		return nil
	}
	return repository.ErrNotFound
}

// --- plans ---

type stubPlanRepo struct {
	plans     []*domain.Plan
	entryRepo *stubEntryRepo
	createdAt time.Time
}

func newStubPlanRepo(entryRepo *stubEntryRepo) *stubPlanRepo {
	return &stubPlanRepo{
		entryRepo: entryRepo,
		createdAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (r *stubPlanRepo) CreateWithEntries(_ context.Context, plan *domain.Plan, entries []domain.DailyEntry) (primitive.ObjectID, error) {
	if plan.OwnerID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("plan requires an ownerId")
	}
	if len(entries) == 0 {
		return primitive.NilObjectID, errors.New("plan requires daily entries")
	}

	plan.ID = primitive.NewObjectID()
	// Strictly increasing creation times so "latest" is unambiguous.
	r.createdAt = r.createdAt.Add(time.Second)
	plan.CreatedAt = r.createdAt

	for i := range entries {
		entries[i].ID = primitive.NewObjectID()
		entries[i].PlanID = plan.ID
		entries[i].OwnerID = plan.OwnerID
	}

	r.plans = append(r.plans, plan)
	r.entryRepo.entries = append(r.entryRepo.entries, entries...)
	return plan.ID, nil
}

func (r *stubPlanRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Plan, error) {
	for _, p := range r.plans {
		if p.ID == id {
			copied := *p
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *stubPlanRepo) GetLatestByOwner(_ context.Context, ownerID primitive.ObjectID) (*domain.Plan, error) {
	var latest *domain.Plan
	for _, p := range r.plans {
		if p.OwnerID != ownerID {
			continue
		}
		if latest == nil || p.CreatedAt.After(latest.CreatedAt) {
			latest = p
		}
	}
	if latest == nil {
		return nil, repository.ErrNotFound
	}
	copied := *latest
	return &copied, nil
}

func (r *stubPlanRepo) GetCoveringDate(_ context.Context, ownerID primitive.ObjectID, date time.Time) (*domain.Plan, error) {
	day := domain.DateOnly(date)
	var newest *domain.Plan
	for _, p := range r.plans {
		if p.OwnerID != ownerID || day.Before(p.StartDate) || day.After(p.EndDate) {
			continue
		}
		if newest == nil || p.CreatedAt.After(newest.CreatedAt) {
			newest = p
		}
	}
	if newest == nil {
		return nil, repository.ErrNotFound
	}
	copied := *newest
	return &copied, nil
}

// --- check-ins ---

type stubCheckInRepo struct {
	checkIns []domain.CheckIn
}

func (r *stubCheckInRepo) Create(_ context.Context, checkIn *domain.CheckIn) (primitive.ObjectID, error) {
	checkIn.ID = primitive.NewObjectID()
	r.checkIns = append(r.checkIns, *checkIn)
	return checkIn.ID, nil
}

func (r *stubCheckInRepo) GetByEntryID(_ context.Context, entryID primitive.ObjectID) ([]domain.CheckIn, error) {
	var out []domain.CheckIn
	for _, c := range r.checkIns {
		if c.EntryID == entryID {
			out = append(out, c)
		}
	}
	return out, nil
}

// --- notifications ---

type stubNotificationRepo struct {
	notifications []domain.Notification
}

func (r *stubNotificationRepo) Create(_ context.Context, n *domain.Notification) (primitive.ObjectID, error) {
	if n.DedupeKey == "" {
		n.DedupeKey = domain.DedupeKeyFor(n.OwnerID, n.Title, n.CreatedAt)
	}
	for _, existing := range r.notifications {
		if existing.DedupeKey == n.DedupeKey {
			return primitive.NilObjectID, repository.ErrDuplicateKey
		}
	}
	n.ID = primitive.NewObjectID()
	r.notifications = append(r.notifications, *n)
	return n.ID, nil
}

func (r *stubNotificationRepo) HasUnreadWithTitle(_ context.Context, ownerID primitive.ObjectID, title string) (bool, error) {
	for _, n := range r.notifications {
		if n.OwnerID == ownerID && n.Title == title && !n.IsRead {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubNotificationRepo) HasWithTitleSince(_ context.Context, ownerID primitive.ObjectID, title string, since time.Time) (bool, error) {
	for _, n := range r.notifications {
		if n.OwnerID == ownerID && n.Title == title && !n.CreatedAt.Before(since) {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubNotificationRepo) ListByOwner(_ context.Context, ownerID primitive.ObjectID, limit int64) ([]domain.Notification, error) {
	var out []domain.Notification
	for _, n := range r.notifications {
		if n.OwnerID == ownerID {
			out = append(out, n)
		}
	}
	if limit > 0 && int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *stubNotificationRepo) MarkRead(_ context.Context, ownerID, id primitive.ObjectID) error {
	for i := range r.notifications {
		if r.notifications[i].ID == id && r.notifications[i].OwnerID == ownerID {
			r.notifications[i].IsRead = true
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *stubNotificationRepo) MarkAllRead(_ context.Context, ownerID primitive.ObjectID) error {
	for i := range r.notifications {
		if r.notifications[i].OwnerID == ownerID {
			r.notifications[i].IsRead = true
		}
	}
	return nil
}

func (r *stubNotificationRepo) byTitle(title string) []domain.Notification {
	var out []domain.Notification
	for _, n := range r.notifications {
		if n.Title == title {
			out = append(out, n)
		}
	}
	return out
}

// --- progress ---

type stubProgressRepo struct {
	logs []domain.ProgressLog
}

func (r *stubProgressRepo) Create(_ context.Context, entry *domain.ProgressLog) (primitive.ObjectID, error) {
	entry.ID = primitive.NewObjectID()
	r.logs = append(r.logs, *entry)
	return entry.ID, nil
}

func (r *stubProgressRepo) ListByOwner(_ context.Context, ownerID primitive.ObjectID) ([]domain.ProgressLog, error) {
	var out []domain.ProgressLog
	for _, l := range r.logs {
		if l.OwnerID == ownerID {
			out = append(out, l)
		}
	}
	return out, nil
}
