package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gymsphere/fitness-app/internal/domain"
	"gymsphere/fitness-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrPlanNotFound   = errors.New("plan not found")
	ErrNoActivePlan   = errors.New("no active plan for owner")
	ErrNoEntryForDate = errors.New("no entry for the requested date")
	ErrPlanNotOwned   = errors.New("plan does not belong to this owner")
	ErrOwnerNotFound  = errors.New("owner not found")
	ErrPlanGeneration = errors.New("failed to generate plan")
)

const (
	defaultGoal         = "maintain"
	defaultFitnessLevel = "beginner"
	defaultPreference   = "nonveg"
	defaultFrequency    = 5
	planTypeWorkoutDiet = "workout+diet"

	// Upper bound on exercises scheduled for one day.
	maxDailyExercises = 5
)

// dayTypeRotation drives the muscle-group focus of consecutive training
// days. Pull/back and leg days reuse the muscle-gain candidate pool.
var dayTypeRotation = []string{"muscle_gain", "back", "legs", "abs", "fat_loss"}

// mealVariations rotates per day so no meal repeats verbatim within a week.
var mealVariations = []string{" (Option A)", " (Option B)", " (Spicy)", " (Herbal)"}

// CalendarDay is the per-day view of a plan for calendar rendering.
type CalendarDay struct {
	Date                time.Time `json:"date"`
	IsExerciseDay       bool      `json:"isExerciseDay"`
	IsExerciseCompleted bool      `json:"isExerciseCompleted"`
	IsDietCompleted     bool      `json:"isDietCompleted"`
	Status              string    `json:"status"` // completed | missed | today | future
}

// PlanService generates and reads 30-day plans.
type PlanService interface {
	// GeneratePlan creates and persists a new 30-day plan. goal and
	// fitnessLevel override the owner's profile when non-empty; startDate
	// is "YYYY-MM-DD" and falls back to today when absent or unparsable.
	// Calling twice creates two plans; only the newest is active.
	GeneratePlan(ctx context.Context, ownerID primitive.ObjectID, goal, fitnessLevel, startDate string) (*domain.Plan, error)
	// GetTodayEntry returns today's entry on the plan covering today.
	GetTodayEntry(ctx context.Context, ownerID primitive.ObjectID) (*domain.DailyEntry, error)
	// GetCalendar returns the day-by-day status of the owner's latest plan.
	GetCalendar(ctx context.Context, ownerID primitive.ObjectID) ([]CalendarDay, error)
	// GetPlanEquipment lists the distinct equipment the plan's routines need.
	GetPlanEquipment(ctx context.Context, ownerID, planID primitive.ObjectID) ([]string, error)
}

type planService struct {
	planRepo  repository.PlanRepository
	entryRepo repository.EntryRepository
	userRepo  repository.UserRepository
	selector  *ContentSelector
	clock     Clock
}

// NewPlanService creates a new instance of planService.
func NewPlanService(
	planRepo repository.PlanRepository,
	entryRepo repository.EntryRepository,
	userRepo repository.UserRepository,
	selector *ContentSelector,
	clock Clock,
) PlanService {
	return &planService{
		planRepo:  planRepo,
		entryRepo: entryRepo,
		userRepo:  userRepo,
		selector:  selector,
		clock:     clock,
	}
}

// isRestDay reports whether the day at this offset is a rest day.
// Every third day rests: offsets 2, 5, 8, ... 29.
func isRestDay(offset int) bool {
	return (offset+1)%3 == 0
}

func (s *planService) GeneratePlan(ctx context.Context, ownerID primitive.ObjectID, goal, fitnessLevel, startDate string) (*domain.Plan, error) {
	user, err := s.userRepo.GetByID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrOwnerNotFound
		}
		return nil, err
	}

	if goal == "" {
		goal = user.Goal
	}
	if goal == "" {
		goal = defaultGoal
	}
	if fitnessLevel == "" {
		fitnessLevel = user.FitnessLevel
	}
	if fitnessLevel == "" {
		fitnessLevel = defaultFitnessLevel
	}

	start := domain.DateOnly(s.clock.Now())
	if startDate != "" {
		if parsed, parseErr := time.Parse("2006-01-02", startDate); parseErr == nil {
			start = domain.DateOnly(parsed)
		}
		// Unparsable dates fall back to today rather than failing.
	}

	// Macro targets are computed once for the whole horizon.
	diet := RecommendDiet(user.WeightKg, goal)

	plan := &domain.Plan{
		OwnerID:          ownerID,
		PlanType:         planTypeWorkoutDiet,
		Goal:             goal,
		Preference:       defaultPreference,
		StartDate:        start,
		EndDate:          start.AddDate(0, 0, domain.PlanHorizonDays-1),
		FrequencyPerWeek: defaultFrequency,
		FitnessLevel:     fitnessLevel,
		Metadata:         map[string]interface{}{"total_days": domain.PlanHorizonDays},
	}

	// One routine per day-type pool; daily variety comes from a circular
	// shift of the shared routine rather than re-sampling the catalog on
	// every day.
	routineCache := make(map[string][]domain.RoutineItem)

	entries := make([]domain.DailyEntry, 0, domain.PlanHorizonDays)
	for offset := 0; offset < domain.PlanHorizonDays; offset++ {
		date := start.AddDate(0, 0, offset)
		rest := isRestDay(offset)

		var exercises []domain.RoutineItem
		if !rest {
			exercises, err = s.exercisesForDay(ctx, routineCache, fitnessLevel, offset)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrPlanGeneration, err)
			}
		}

		entries = append(entries, domain.DailyEntry{
			Date:          date,
			IsExerciseDay: !rest,
			Exercises:     exercises,
			Diet:          mealsForDay(diet, plan.Preference, goal, offset),
		})
	}

	if _, err := s.planRepo.CreateWithEntries(ctx, plan, entries); err != nil {
		return nil, err
	}
	return plan, nil
}

// exercisesForDay derives the day's exercise subset from the rotation's
// routine for this offset, shifted circularly for variety.
func (s *planService) exercisesForDay(ctx context.Context, cache map[string][]domain.RoutineItem, fitnessLevel string, offset int) ([]domain.RoutineItem, error) {
	dayType := dayTypeRotation[offset%len(dayTypeRotation)]
	pseudoGoal := dayType
	if pseudoGoal == "back" || pseudoGoal == "legs" {
		pseudoGoal = "muscle_gain"
	}

	routine, ok := cache[pseudoGoal]
	if !ok {
		var err error
		routine, err = s.selector.BuildRoutine(ctx, pseudoGoal, fitnessLevel, EquipmentAllowed)
		if err != nil {
			return nil, err
		}
		cache[pseudoGoal] = routine
	}
	if len(routine) == 0 {
		return nil, nil
	}

	shift := offset % len(routine)
	shifted := make([]domain.RoutineItem, 0, len(routine))
	shifted = append(shifted, routine[shift:]...)
	shifted = append(shifted, routine[:shift]...)

	if len(shifted) > maxDailyExercises {
		shifted = shifted[:maxDailyExercises]
	}
	return shifted, nil
}

// mealsForDay builds the diet payload for one day: the shared macro
// target plus preference-aware meal assignments with a rotating suffix.
func mealsForDay(diet DietTarget, preference, goal string, offset int) domain.DietPayload {
	nonVeg := preference == "nonveg" || preference == "mixed"
	variation := mealVariations[offset%len(mealVariations)]

	breakfast := "Greek yogurt parfait with berries & granola"
	if nonVeg && goal == "muscle_gain" {
		breakfast = "Omelette with spinach & turkey bacon, oatmeal"
	}
	lunch := "Lentil soup, brown rice, avocado salad"
	if nonVeg {
		lunch = "Grilled chicken breast, quinoa, roasted veggies"
	}
	dinner := "Tofu stir-fry with mixed vegetables"
	if nonVeg {
		dinner = "Baked salmon/fish, sweet potato, steamed broccoli"
	}
	snacks := "Protein shake, almonds, apple"

	return domain.DietPayload{
		Calories: diet.Calories,
		ProteinG: diet.ProteinG,
		CarbsG:   diet.CarbsG,
		FatsG:    diet.FatsG,
		Meals: domain.DayMeals{
			Breakfast: breakfast + variation,
			Lunch:     lunch + variation,
			Dinner:    dinner + variation,
			Snacks:    snacks + variation,
		},
		Note: fmt.Sprintf("Focus on hitting ~%dg protein today.", diet.ProteinG),
	}
}

func (s *planService) GetTodayEntry(ctx context.Context, ownerID primitive.ObjectID) (*domain.DailyEntry, error) {
	today := domain.DateOnly(s.clock.Now())

	plan, err := s.planRepo.GetCoveringDate(ctx, ownerID, today)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNoActivePlan
		}
		return nil, err
	}

	entry, err := s.entryRepo.GetByPlanAndDate(ctx, plan.ID, today)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNoEntryForDate
		}
		return nil, err
	}
	return entry, nil
}

func (s *planService) GetCalendar(ctx context.Context, ownerID primitive.ObjectID) ([]CalendarDay, error) {
	plan, err := s.planRepo.GetLatestByOwner(ctx, ownerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return []CalendarDay{}, nil
		}
		return nil, err
	}

	entries, err := s.entryRepo.GetByPlan(ctx, plan.ID)
	if err != nil {
		return nil, err
	}

	today := domain.DateOnly(s.clock.Now())
	days := make([]CalendarDay, 0, len(entries))
	for _, e := range entries {
		done := (e.IsExerciseDay && e.IsExerciseCompleted && e.IsDietCompleted) ||
			(!e.IsExerciseDay && e.IsDietCompleted)

		status := "future"
		switch {
		case e.Date.Before(today):
			if done {
				status = "completed"
			} else {
				status = "missed"
			}
		case e.Date.Equal(today):
			if done {
				status = "completed"
			} else {
				status = "today"
			}
		}

		days = append(days, CalendarDay{
			Date:                e.Date,
			IsExerciseDay:       e.IsExerciseDay,
			IsExerciseCompleted: e.IsExerciseCompleted,
			IsDietCompleted:     e.IsDietCompleted,
			Status:              status,
		})
	}
	return days, nil
}

func (s *planService) GetPlanEquipment(ctx context.Context, ownerID, planID primitive.ObjectID) ([]string, error) {
	plan, err := s.planRepo.GetByID(ctx, planID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	if plan.OwnerID != ownerID {
		return nil, ErrPlanNotOwned
	}

	entries, err := s.entryRepo.GetByPlan(ctx, plan.ID)
	if err != nil {
		return nil, err
	}

	var all []domain.RoutineItem
	for _, e := range entries {
		all = append(all, e.Exercises...)
	}
	return EquipmentForRoutine(all), nil
}
