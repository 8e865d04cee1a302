package service

import (
	"context"
	"sort"
	"strings"

	"gymsphere/fitness-app/internal/domain"
	"gymsphere/fitness-app/internal/repository"
)

// Equipment modes accepted by the content selector.
const (
	EquipmentBodyweightOnly = "bodyweight_only"
	EquipmentAllowed        = "with_equipment"
)

// Routine phases.
const (
	PhaseWarmUp   = "Warm-up"
	PhaseMain     = "Main Workout"
	PhaseFinisher = "Finisher"
	PhaseCoolDown = "Cool-down"
)

const (
	warmUpCount   = 2
	finisherCount = 1
	coolDownCount = 1
	// Slots reserved for the non-main phases when sizing the main block.
	reservedSlots = 4
)

// ContentSelector builds workout routines from the content catalog.
// Randomness comes from the injected source so routines are reproducible
// under test.
type ContentSelector struct {
	catalog repository.ExerciseRepository
	rand    RandomSource
}

// NewContentSelector creates a ContentSelector.
func NewContentSelector(catalog repository.ExerciseRepository, rand RandomSource) *ContentSelector {
	return &ContentSelector{catalog: catalog, rand: rand}
}

// primaryMusclesFor maps a goal tag to the muscle groups the main block
// should favor.
func primaryMusclesFor(goal string) []string {
	switch {
	case strings.Contains(goal, "fat_loss"):
		return []string{"Full Body", "Legs", "Chest", "Back"}
	case strings.Contains(goal, "muscle_gain"):
		return []string{"Chest", "Back", "Legs", "Shoulders", "Arms"}
	case strings.Contains(goal, "core"):
		return []string{"Abs", "Core", "Lower Back"}
	}
	return []string{"Full Body"}
}

// mainBlockCount returns the main-block size for a fitness level: the
// routine target (10/12/15) minus the reserved warm-up/finisher/cool-down
// slots.
func mainBlockCount(fitnessLevel string) int {
	target := 10
	switch fitnessLevel {
	case "intermediate":
		target = 12
	case "advanced":
		target = 15
	}
	return target - reservedSlots
}

// BuildRoutine selects an ordered 10-15 item workout routine in four
// phases. An empty catalog never fails the call; phases that find no
// candidates are simply skipped, yielding a shorter routine.
func (s *ContentSelector) BuildRoutine(ctx context.Context, goal, fitnessLevel, equipment string) ([]domain.RoutineItem, error) {
	if goal == "" {
		goal = "general_fitness"
	}
	goal = strings.ToLower(goal)
	bodyweightOnly := equipment != EquipmentAllowed
	primaryMuscles := primaryMusclesFor(goal)

	var routine []domain.RoutineItem

	// Phase 1: warm-up. Mobility work is the fallback pool.
	warmUps, err := s.queryWithFallback(ctx, "warmup", "mobility", bodyweightOnly)
	if err != nil {
		return nil, err
	}
	for _, ex := range s.sample(warmUps, warmUpCount) {
		routine = append(routine, makeRoutineItem(ex, PhaseWarmUp))
	}

	// Phase 2: main block, narrowed to the goal's muscle groups with a
	// fallback to the full candidate set if too few remain.
	mainCount := mainBlockCount(fitnessLevel)
	allMain, err := s.catalog.Query(ctx, repository.ContentFilter{
		ExcludeTags:    []string{"warmup", "cooldown", "stretch"},
		BodyweightOnly: bodyweightOnly,
	})
	if err != nil {
		return nil, err
	}
	relevant := filterByMuscles(allMain, primaryMuscles)
	if len(relevant) < mainCount {
		relevant = allMain
	}
	for _, ex := range s.sample(relevant, mainCount) {
		routine = append(routine, makeRoutineItem(ex, PhaseMain))
	}

	// Phase 3: finisher. Interval work first, core as the secondary tag.
	finishers, err := s.queryWithFallback(ctx, "hiit", "abs", bodyweightOnly)
	if err != nil {
		return nil, err
	}
	for _, ex := range s.sample(finishers, finisherCount) {
		routine = append(routine, makeRoutineItem(ex, PhaseFinisher))
	}

	// Phase 4: cool-down.
	coolDowns, err := s.catalog.Query(ctx, repository.ContentFilter{Tag: "stretch", BodyweightOnly: bodyweightOnly})
	if err != nil {
		return nil, err
	}
	for _, ex := range s.sample(coolDowns, coolDownCount) {
		routine = append(routine, makeRoutineItem(ex, PhaseCoolDown))
	}

	return routine, nil
}

func (s *ContentSelector) queryWithFallback(ctx context.Context, tag, fallbackTag string, bodyweightOnly bool) ([]domain.Exercise, error) {
	candidates, err := s.catalog.Query(ctx, repository.ContentFilter{Tag: tag, BodyweightOnly: bodyweightOnly})
	if err != nil {
		return nil, err
	}
	if len(candidates) > 0 {
		return candidates, nil
	}
	return s.catalog.Query(ctx, repository.ContentFilter{Tag: fallbackTag, BodyweightOnly: bodyweightOnly})
}

// sample picks up to n items uniformly at random without replacement,
// preserving no particular order.
func (s *ContentSelector) sample(candidates []domain.Exercise, n int) []domain.Exercise {
	if len(candidates) == 0 {
		return nil
	}
	if n > len(candidates) {
		n = len(candidates)
	}
	pool := make([]domain.Exercise, len(candidates))
	copy(pool, candidates)
	for i := 0; i < n; i++ {
		j := i + s.rand.Intn(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:n]
}

func filterByMuscles(exercises []domain.Exercise, muscles []string) []domain.Exercise {
	var out []domain.Exercise
	for _, ex := range exercises {
		group := strings.ToLower(ex.MuscleGroup)
		for _, m := range muscles {
			if strings.Contains(group, strings.ToLower(m)) {
				out = append(out, ex)
				break
			}
		}
	}
	return out
}

// makeRoutineItem assigns the deterministic sets/reps scheme for the
// phase and item tags.
func makeRoutineItem(ex domain.Exercise, phase string) domain.RoutineItem {
	sets, reps := 3, "10-12"
	switch phase {
	case PhaseWarmUp:
		sets, reps = 1, "60 sec"
	case PhaseMain:
		if ex.HasTag("strength") {
			sets, reps = 4, "8-10"
		} else {
			sets, reps = 3, "12-15"
		}
	case PhaseFinisher:
		sets, reps = 2, "Failure"
	case PhaseCoolDown:
		sets, reps = 1, "60 sec hold"
	}

	return domain.RoutineItem{
		ExerciseID:  ex.ID,
		Name:        ex.Name,
		Phase:       phase,
		Sets:        sets,
		Reps:        reps,
		MuscleGroup: ex.MuscleGroup,
		Equipment:   ex.Equipment,
		Difficulty:  ex.Difficulty,
		MediaKey:    ex.MediaKey,
	}
}

// EquipmentForRoutine extracts the distinct non-bodyweight equipment
// names across the routine. Comma-separated lists are split, names are
// trimmed, and duplicates are collapsed case-insensitively. The result
// is sorted for stable output.
func EquipmentForRoutine(items []domain.RoutineItem) []string {
	seen := make(map[string]string)
	for _, item := range items {
		eq := item.Equipment
		if eq == "" || strings.Contains(eq, "Bodyweight") || strings.Contains(eq, "None") {
			continue
		}
		for _, part := range strings.Split(eq, ",") {
			clean := strings.TrimSpace(part)
			if clean == "" {
				continue
			}
			key := strings.ToLower(clean)
			if _, ok := seen[key]; !ok {
				seen[key] = clean
			}
		}
	}

	out := make([]string, 0, len(seen))
	for _, name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
