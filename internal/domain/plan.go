package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PlanHorizonDays is the fixed length of every generated plan.
// EndDate is always StartDate + PlanHorizonDays - 1 (inclusive range).
const PlanHorizonDays = 30

// Plan represents a generated 30-day workout and diet schedule for one owner.
// A plan is immutable once generated; a newer plan for the same owner
// supersedes it (selection is by CreatedAt, newest wins).
type Plan struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OwnerID    primitive.ObjectID `bson:"ownerId" json:"ownerId"`
	PlanType   string             `bson:"planType" json:"planType"` // e.g. "workout+diet"
	Goal       string             `bson:"goal" json:"goal"`
	Preference string             `bson:"preference,omitempty" json:"preference,omitempty"` // veg | nonveg | mixed

	StartDate time.Time `bson:"startDate" json:"startDate"` // UTC midnight
	EndDate   time.Time `bson:"endDate" json:"endDate"`     // Inclusive, UTC midnight

	FrequencyPerWeek int                    `bson:"frequencyPerWeek" json:"frequencyPerWeek"`
	FitnessLevel     string                 `bson:"fitnessLevel" json:"fitnessLevel"`
	Metadata         map[string]interface{} `bson:"metadata,omitempty" json:"metadata,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

// RoutineItem is one selected exercise within a daily routine, with the
// sets/reps scheme assigned at generation time.
type RoutineItem struct {
	ExerciseID  primitive.ObjectID `bson:"exerciseId" json:"exerciseId"`
	Name        string             `bson:"name" json:"name"`
	Phase       string             `bson:"phase" json:"phase"` // Warm-up | Main Workout | Finisher | Cool-down
	Sets        int                `bson:"sets" json:"sets"`
	Reps        string             `bson:"reps" json:"reps"` // e.g. "8-10", "60 sec", "Failure"
	MuscleGroup string             `bson:"muscleGroup,omitempty" json:"muscleGroup,omitempty"`
	Equipment   string             `bson:"equipment,omitempty" json:"equipment,omitempty"`
	Difficulty  string             `bson:"difficulty,omitempty" json:"difficulty,omitempty"`
	MediaKey    string             `bson:"mediaKey,omitempty" json:"mediaKey,omitempty"` // Object key of the demo animation, if any
}

// DayMeals holds the meal assignments for one day.
type DayMeals struct {
	Breakfast string `bson:"breakfast" json:"breakfast"`
	Lunch     string `bson:"lunch" json:"lunch"`
	Dinner    string `bson:"dinner" json:"dinner"`
	Snacks    string `bson:"snacks" json:"snacks"`
}

// DietPayload is the calorie/macro target plus meal assignments for one day.
// Present on every entry, rest days included.
type DietPayload struct {
	Calories int      `bson:"calories" json:"calories"`
	ProteinG int      `bson:"proteinG" json:"proteinG"`
	CarbsG   int      `bson:"carbsG" json:"carbsG"`
	FatsG    int      `bson:"fatsG" json:"fatsG"`
	Meals    DayMeals `bson:"meals" json:"meals"`
	Note     string   `bson:"note,omitempty" json:"note,omitempty"`
}

// DailyEntry is one calendar day's scheduled content and completion state
// within a Plan. Entries for a plan cover [StartDate, EndDate] with no
// gaps and no duplicate dates.
type DailyEntry struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PlanID  primitive.ObjectID `bson:"planId" json:"planId"`
	OwnerID primitive.ObjectID `bson:"ownerId" json:"ownerId"` // Denormalized from the plan for ownership checks

	Date          time.Time     `bson:"date" json:"date"` // UTC midnight
	IsExerciseDay bool          `bson:"isExerciseDay" json:"isExerciseDay"`
	Exercises     []RoutineItem `bson:"exercises" json:"exercises"` // Empty on rest days
	Diet          DietPayload   `bson:"diet" json:"diet"`

	IsExerciseCompleted bool       `bson:"isExerciseCompleted" json:"isExerciseCompleted"`
	ExerciseCompletedAt *time.Time `bson:"exerciseCompletedAt,omitempty" json:"exerciseCompletedAt,omitempty"`
	IsDietCompleted     bool       `bson:"isDietCompleted" json:"isDietCompleted"`
	DietCompletedAt     *time.Time `bson:"dietCompletedAt,omitempty" json:"dietCompletedAt,omitempty"`
}

// DateOnly truncates t to its calendar date at UTC midnight. All plan and
// entry dates are stored in this form so equality checks are exact.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
