package service

import (
	"context"
	"strings"
	"testing"

	"gymsphere/fitness-app/internal/domain"
	"gymsphere/fitness-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// stubCatalog is an in-memory ExerciseRepository.
type stubCatalog struct {
	exercises []domain.Exercise
}

func (s *stubCatalog) Query(_ context.Context, filter repository.ContentFilter) ([]domain.Exercise, error) {
	var out []domain.Exercise
	for _, ex := range s.exercises {
		if filter.Tag != "" && !ex.HasTag(filter.Tag) {
			continue
		}
		excluded := false
		for _, t := range filter.ExcludeTags {
			if ex.HasTag(t) {
				excluded = true
				break
			}
		}
		if excluded {
			continue
		}
		if filter.BodyweightOnly && !strings.Contains(ex.Equipment, "Bodyweight") {
			continue
		}
		out = append(out, ex)
	}
	return out, nil
}

func (s *stubCatalog) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Exercise, error) {
	for i := range s.exercises {
		if s.exercises[i].ID == id {
			return &s.exercises[i], nil
		}
	}
	return nil, repository.ErrNotFound
}

// firstRand always picks the first remaining element, making sampling
// deterministic.
type firstRand struct{}

func (firstRand) Intn(int) int { return 0 }

func catalogExercise(name, muscleGroup, equipment string, tags ...string) domain.Exercise {
	return domain.Exercise{
		ID:          primitive.NewObjectID(),
		Name:        name,
		MuscleGroup: muscleGroup,
		Equipment:   equipment,
		Tags:        tags,
	}
}

func newTestCatalog() *stubCatalog {
	return &stubCatalog{exercises: []domain.Exercise{
		catalogExercise("Arm Circles", "Full Body", "Bodyweight", "warmup"),
		catalogExercise("Jumping Jacks", "Full Body", "Bodyweight", "warmup"),
		catalogExercise("Hip Openers", "Legs", "Bodyweight", "mobility"),

		catalogExercise("Push-ups", "Chest", "Bodyweight", "strength"),
		catalogExercise("Pull-ups", "Back", "Bodyweight, Pull-up Bar", "strength"),
		catalogExercise("Squats", "Legs", "Bodyweight", "strength"),
		catalogExercise("Dumbbell Press", "Chest", "Dumbbells", "strength"),
		catalogExercise("Bent-over Row", "Back", "Dumbbells", "strength"),
		catalogExercise("Lunges", "Legs", "Bodyweight"),
		catalogExercise("Shoulder Press", "Shoulders", "Dumbbells", "strength"),
		catalogExercise("Bicep Curls", "Arms", "Dumbbells"),
		catalogExercise("Plank", "Abs", "Bodyweight", "abs"),
		catalogExercise("Glute Bridge", "Legs", "Bodyweight"),
		catalogExercise("Deadlift", "Back", "Barbell", "strength"),
		catalogExercise("Leg Press", "Legs", "Machine", "strength"),

		catalogExercise("Burpees", "Full Body", "Bodyweight", "hiit"),
		catalogExercise("Hamstring Stretch", "Legs", "Bodyweight", "stretch"),
		catalogExercise("Child's Pose", "Lower Back", "Bodyweight", "stretch"),
	}}
}

func phaseCounts(routine []domain.RoutineItem) map[string]int {
	counts := make(map[string]int)
	for _, item := range routine {
		counts[item.Phase]++
	}
	return counts
}

func TestBuildRoutinePhaseCounts(t *testing.T) {
	selector := NewContentSelector(newTestCatalog(), firstRand{})

	tests := []struct {
		level string
		main  int
	}{
		{"beginner", 6},
		{"intermediate", 8},
		{"advanced", 11},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			routine, err := selector.BuildRoutine(context.Background(), "muscle_gain", tt.level, EquipmentAllowed)
			if err != nil {
				t.Fatalf("BuildRoutine failed: %v", err)
			}

			counts := phaseCounts(routine)
			if counts[PhaseWarmUp] != 2 {
				t.Errorf("warm-up count = %d, want 2", counts[PhaseWarmUp])
			}
			if counts[PhaseMain] != tt.main {
				t.Errorf("main count = %d, want %d", counts[PhaseMain], tt.main)
			}
			if counts[PhaseFinisher] != 1 {
				t.Errorf("finisher count = %d, want 1", counts[PhaseFinisher])
			}
			if counts[PhaseCoolDown] != 1 {
				t.Errorf("cool-down count = %d, want 1", counts[PhaseCoolDown])
			}
		})
	}
}

func TestBuildRoutineSetsAndReps(t *testing.T) {
	selector := NewContentSelector(newTestCatalog(), firstRand{})

	routine, err := selector.BuildRoutine(context.Background(), "muscle_gain", "beginner", EquipmentAllowed)
	if err != nil {
		t.Fatalf("BuildRoutine failed: %v", err)
	}

	for _, item := range routine {
		switch item.Phase {
		case PhaseWarmUp:
			if item.Sets != 1 || item.Reps != "60 sec" {
				t.Errorf("%s warm-up scheme = %dx%q, want 1x\"60 sec\"", item.Name, item.Sets, item.Reps)
			}
		case PhaseMain:
			if item.Sets != 4 && item.Sets != 3 {
				t.Errorf("%s main scheme = %dx%q", item.Name, item.Sets, item.Reps)
			}
			if item.Sets == 4 && item.Reps != "8-10" {
				t.Errorf("%s strength scheme = %dx%q, want 4x\"8-10\"", item.Name, item.Sets, item.Reps)
			}
			if item.Sets == 3 && item.Reps != "12-15" {
				t.Errorf("%s accessory scheme = %dx%q, want 3x\"12-15\"", item.Name, item.Sets, item.Reps)
			}
		case PhaseFinisher:
			if item.Sets != 2 || item.Reps != "Failure" {
				t.Errorf("%s finisher scheme = %dx%q, want 2x\"Failure\"", item.Name, item.Sets, item.Reps)
			}
		case PhaseCoolDown:
			if item.Sets != 1 || item.Reps != "60 sec hold" {
				t.Errorf("%s cool-down scheme = %dx%q, want 1x\"60 sec hold\"", item.Name, item.Sets, item.Reps)
			}
		}
	}
}

func TestBuildRoutineBodyweightOnly(t *testing.T) {
	selector := NewContentSelector(newTestCatalog(), firstRand{})

	routine, err := selector.BuildRoutine(context.Background(), "fat_loss", "beginner", EquipmentBodyweightOnly)
	if err != nil {
		t.Fatalf("BuildRoutine failed: %v", err)
	}
	if len(routine) == 0 {
		t.Fatal("expected a non-empty routine from bodyweight candidates")
	}
	for _, item := range routine {
		if !strings.Contains(item.Equipment, "Bodyweight") {
			t.Errorf("%s requires equipment %q in a bodyweight-only routine", item.Name, item.Equipment)
		}
	}
}

func TestBuildRoutineWarmupFallsBackToMobility(t *testing.T) {
	catalog := &stubCatalog{exercises: []domain.Exercise{
		catalogExercise("Hip Openers", "Legs", "Bodyweight", "mobility"),
		catalogExercise("Push-ups", "Chest", "Bodyweight", "strength"),
	}}
	selector := NewContentSelector(catalog, firstRand{})

	routine, err := selector.BuildRoutine(context.Background(), "muscle_gain", "beginner", EquipmentBodyweightOnly)
	if err != nil {
		t.Fatalf("BuildRoutine failed: %v", err)
	}

	found := false
	for _, item := range routine {
		if item.Phase == PhaseWarmUp && item.Name == "Hip Openers" {
			found = true
		}
	}
	if !found {
		t.Error("expected the mobility exercise to fill the warm-up phase")
	}
}

func TestBuildRoutineEmptyCatalog(t *testing.T) {
	selector := NewContentSelector(&stubCatalog{}, firstRand{})

	routine, err := selector.BuildRoutine(context.Background(), "fat_loss", "beginner", EquipmentAllowed)
	if err != nil {
		t.Fatalf("BuildRoutine on empty catalog failed: %v", err)
	}
	if len(routine) != 0 {
		t.Errorf("expected empty routine, got %d items", len(routine))
	}
}

func TestBuildRoutineDeterministicWithSameSource(t *testing.T) {
	a, err := NewContentSelector(newTestCatalog(), firstRand{}).
		BuildRoutine(context.Background(), "muscle_gain", "intermediate", EquipmentAllowed)
	if err != nil {
		t.Fatalf("BuildRoutine failed: %v", err)
	}
	b, err := NewContentSelector(newTestCatalog(), firstRand{}).
		BuildRoutine(context.Background(), "muscle_gain", "intermediate", EquipmentAllowed)
	if err != nil {
		t.Fatalf("BuildRoutine failed: %v", err)
	}

	if len(a) != len(b) {
		t.Fatalf("routine lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].Name != b[i].Name || a[i].Phase != b[i].Phase {
			t.Errorf("item %d differs: %s/%s vs %s/%s", i, a[i].Name, a[i].Phase, b[i].Name, b[i].Phase)
		}
	}
}

func TestEquipmentForRoutine(t *testing.T) {
	items := []domain.RoutineItem{
		{Name: "Push-ups", Equipment: "Bodyweight"},
		{Name: "Dumbbell Press", Equipment: "Dumbbells, Bench"},
		{Name: "Bent-over Row", Equipment: "dumbbells"}, // Case duplicate
		{Name: "Deadlift", Equipment: "Barbell"},
		{Name: "Stretch", Equipment: ""},
	}

	got := EquipmentForRoutine(items)
	want := []string{"Barbell", "Bench", "Dumbbells"}

	if len(got) != len(want) {
		t.Fatalf("EquipmentForRoutine = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("EquipmentForRoutine[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
