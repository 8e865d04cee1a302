package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"gymsphere/fitness-app/internal/domain"
	"gymsphere/fitness-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Fixed notification titles. De-duplication is keyed on these, so they
// must stay stable.
const (
	titleTomorrowPlan  = "Tomorrow's Plan Ready"
	titleCoachUpdate   = "Coach Update"
	titleMissedWorkout = "Missed Workout"
	titleWeeklySummary = "Weekly Summary"
)

// Evening triggers (next-day preview, weekly summary) fire from this hour.
const eveningHour = 18

// Coach message pools by streak tier.
var (
	coachMessagesHot = []string{
		"Unstoppable! %d day streak. You're building a new version of yourself.",
		"Consistency is your superpower. Keep this streak alive!",
		"You are crushing it. Remember why you started.",
	}
	coachMessagesWarm = []string{
		"Great momentum! Keep pushing.",
		"You're doing great. Stay focused today.",
		"Another day, another opportunity to improve.",
	}
	coachMessagesCold = []string{
		"The hardest part is showing up. You got this!",
		"Small steps every day lead to big results.",
		"Don't give up. Consistency beats intensity.",
		"Let's make today count!",
	}
)

// NotificationService evaluates the time-gated notification triggers and
// serves the owner's notification feed.
type NotificationService interface {
	// EvaluateTriggers inspects plan/streak state against the given wall
	// clock and creates whichever notifications are due. Each kind fires
	// at most once per eligible period; failures to persist one kind are
	// logged and do not abort the others. Returns the ids of the
	// notifications actually created.
	EvaluateTriggers(ctx context.Context, ownerID primitive.ObjectID, now time.Time) ([]primitive.ObjectID, error)

	List(ctx context.Context, ownerID primitive.ObjectID) ([]domain.Notification, error)
	MarkRead(ctx context.Context, ownerID, id primitive.ObjectID) error
	MarkAllRead(ctx context.Context, ownerID primitive.ObjectID) error
}

type notificationService struct {
	notifRepo repository.NotificationRepository
	planRepo  repository.PlanRepository
	entryRepo repository.EntryRepository
	streaks   StreakService
	rand      RandomSource
}

// NewNotificationService creates a new instance of notificationService.
func NewNotificationService(
	notifRepo repository.NotificationRepository,
	planRepo repository.PlanRepository,
	entryRepo repository.EntryRepository,
	streaks StreakService,
	rand RandomSource,
) NotificationService {
	return &notificationService{
		notifRepo: notifRepo,
		planRepo:  planRepo,
		entryRepo: entryRepo,
		streaks:   streaks,
		rand:      rand,
	}
}

func (s *notificationService) EvaluateTriggers(ctx context.Context, ownerID primitive.ObjectID, now time.Time) ([]primitive.ObjectID, error) {
	now = now.UTC()

	// Streaks feed the coach and summary messages; recomputing here also
	// keeps the persisted counters fresh on every dashboard visit.
	streaks, err := s.streaks.ComputeStreaks(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	var created []primitive.ObjectID

	if now.Hour() >= eveningHour {
		if id, ok := s.tomorrowPreview(ctx, ownerID, now); ok {
			created = append(created, id)
		}
	}

	if id, ok := s.morningMotivation(ctx, ownerID, now, streaks.Workout); ok {
		created = append(created, id)
	}

	if id, ok := s.missedWorkoutAlert(ctx, ownerID, now); ok {
		created = append(created, id)
	}

	if now.Weekday() == time.Sunday && now.Hour() >= eveningHour {
		if id, ok := s.weeklySummary(ctx, ownerID, now, streaks); ok {
			created = append(created, id)
		}
	}

	return created, nil
}

// tomorrowPreview announces tomorrow's entry after the evening threshold.
// Suppressed while an unread preview is still pending, and at most once
// per previewed date via the dedupe key.
func (s *notificationService) tomorrowPreview(ctx context.Context, ownerID primitive.ObjectID, now time.Time) (primitive.ObjectID, bool) {
	tomorrow := domain.DateOnly(now).AddDate(0, 0, 1)

	plan, err := s.planRepo.GetCoveringDate(ctx, ownerID, tomorrow)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			log.Printf("ERROR: tomorrow preview: plan lookup: %v", err)
		}
		return primitive.NilObjectID, false
	}

	entry, err := s.entryRepo.GetByPlanAndDate(ctx, plan.ID, tomorrow)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			log.Printf("ERROR: tomorrow preview: entry lookup: %v", err)
		}
		return primitive.NilObjectID, false
	}

	exists, err := s.notifRepo.HasUnreadWithTitle(ctx, ownerID, titleTomorrowPlan)
	if err != nil {
		log.Printf("ERROR: tomorrow preview: dedupe check: %v", err)
		return primitive.NilObjectID, false
	}
	if exists {
		return primitive.NilObjectID, false
	}

	var msg string
	if entry.IsExerciseDay {
		names := make([]string, 0, 2)
		for _, ex := range entry.Exercises {
			names = append(names, ex.Name)
			if len(names) == 2 {
				break
			}
		}
		msg = fmt.Sprintf("Tomorrow's Workout: %s + more. Get ready!", strings.Join(names, ", "))
	} else {
		msg = "Tomorrow is a Rest Day. Focus on recovery and nutrition."
	}

	return s.create(ctx, &domain.Notification{
		OwnerID:   ownerID,
		Kind:      domain.NotificationPlan,
		Title:     titleTomorrowPlan,
		Message:   msg,
		Payload:   map[string]interface{}{"date": tomorrow.Format("2006-01-02")},
		DedupeKey: domain.DedupeKeyFor(ownerID, titleTomorrowPlan, tomorrow),
		CreatedAt: now,
	})
}

// morningMotivation delivers one coach message per calendar day.
func (s *notificationService) morningMotivation(ctx context.Context, ownerID primitive.ObjectID, now time.Time, workoutStreak int) (primitive.ObjectID, bool) {
	midnight := domain.DateOnly(now)
	exists, err := s.notifRepo.HasWithTitleSince(ctx, ownerID, titleCoachUpdate, midnight)
	if err != nil {
		log.Printf("ERROR: morning motivation: dedupe check: %v", err)
		return primitive.NilObjectID, false
	}
	if exists {
		return primitive.NilObjectID, false
	}

	return s.create(ctx, &domain.Notification{
		OwnerID:   ownerID,
		Kind:      domain.NotificationMotivation,
		Title:     titleCoachUpdate,
		Message:   s.coachMessage(workoutStreak),
		CreatedAt: now,
	})
}

// coachMessage picks a motivational line from the tier matching the
// current workout streak.
func (s *notificationService) coachMessage(streak int) string {
	switch {
	case streak > 5:
		msg := coachMessagesHot[s.rand.Intn(len(coachMessagesHot))]
		if strings.Contains(msg, "%d") {
			return fmt.Sprintf(msg, streak)
		}
		return msg
	case streak > 2:
		return coachMessagesWarm[s.rand.Intn(len(coachMessagesWarm))]
	default:
		return coachMessagesCold[s.rand.Intn(len(coachMessagesCold))]
	}
}

// missedWorkoutAlert fires when yesterday was an uncompleted exercise
// day, at most once per missed date.
func (s *notificationService) missedWorkoutAlert(ctx context.Context, ownerID primitive.ObjectID, now time.Time) (primitive.ObjectID, bool) {
	yesterday := domain.DateOnly(now).AddDate(0, 0, -1)

	plan, err := s.planRepo.GetCoveringDate(ctx, ownerID, yesterday)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			log.Printf("ERROR: missed workout: plan lookup: %v", err)
		}
		return primitive.NilObjectID, false
	}

	entry, err := s.entryRepo.GetByPlanAndDate(ctx, plan.ID, yesterday)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			log.Printf("ERROR: missed workout: entry lookup: %v", err)
		}
		return primitive.NilObjectID, false
	}

	if !entry.IsExerciseDay || entry.IsExerciseCompleted {
		return primitive.NilObjectID, false
	}

	return s.create(ctx, &domain.Notification{
		OwnerID:   ownerID,
		Kind:      domain.NotificationAlert,
		Title:     titleMissedWorkout,
		Message:   "You missed yesterday's workout. Don't let it break your momentum! Get back on track today.",
		DedupeKey: domain.DedupeKeyFor(ownerID, titleMissedWorkout, yesterday),
		CreatedAt: now,
	})
}

// weeklySummary composes the Sunday-evening recap from streak figures.
func (s *notificationService) weeklySummary(ctx context.Context, ownerID primitive.ObjectID, now time.Time, streaks Streaks) (primitive.ObjectID, bool) {
	msg := fmt.Sprintf(
		"This week you kept a %d day workout streak and a %d day diet streak. A new week starts tomorrow - plan your sessions now.",
		streaks.Workout, streaks.Diet,
	)

	return s.create(ctx, &domain.Notification{
		OwnerID:   ownerID,
		Kind:      domain.NotificationSystem,
		Title:     titleWeeklySummary,
		Message:   msg,
		CreatedAt: now,
	})
}

// create persists a notification. Duplicates (dedupe key collisions) and
// store failures are both non-fatal: the former means another evaluation
// won the race, the latter is logged and swallowed so the remaining
// trigger kinds still run.
func (s *notificationService) create(ctx context.Context, n *domain.Notification) (primitive.ObjectID, bool) {
	id, err := s.notifRepo.Create(ctx, n)
	if err != nil {
		if !errors.Is(err, repository.ErrDuplicateKey) {
			log.Printf("ERROR: failed to create notification %q: %v", n.Title, err)
		}
		return primitive.NilObjectID, false
	}
	return id, true
}

func (s *notificationService) List(ctx context.Context, ownerID primitive.ObjectID) ([]domain.Notification, error) {
	return s.notifRepo.ListByOwner(ctx, ownerID, 20)
}

func (s *notificationService) MarkRead(ctx context.Context, ownerID, id primitive.ObjectID) error {
	return s.notifRepo.MarkRead(ctx, ownerID, id)
}

func (s *notificationService) MarkAllRead(ctx context.Context, ownerID primitive.ObjectID) error {
	return s.notifRepo.MarkAllRead(ctx, ownerID)
}
