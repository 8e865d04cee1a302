package service

import (
	"fmt"
	"math"
	"strings"
)

// Macro estimation constants. These are simplified, named multipliers,
// not statistically fit values; the contract is determinism given the
// same inputs, not biological accuracy.
const (
	// Basal rate proxy: kcal per kg bodyweight.
	bmrPerKg = 22.0
	// Assumed moderate activity multiplier.
	activityMultiplier = 1.55

	// Calorie offsets per goal category.
	fatLossDeficit = 400.0
	gainSurplus    = 300.0
	recompDeficit  = 100.0

	// Protein grams per kg bodyweight.
	proteinPerKgGain    = 2.0
	proteinPerKgDefault = 1.8

	// Fat grams per kg bodyweight.
	fatPerKgGain    = 1.0
	fatPerKgLoss    = 0.7
	fatPerKgDefault = 0.8

	// Fallback when weight is missing or invalid.
	defaultWeightKg = 70.0

	// Weekly weight-change rates (kg/week) for the days-to-target estimate.
	ratePerWeekLoss    = 0.55
	ratePerWeekGain    = 0.3
	ratePerWeekRecomp  = 0.2
	ratePerWeekDefault = 0.4
)

// DietTarget is the daily calorie/macro recommendation produced by the
// macro estimator.
type DietTarget struct {
	Calories int    `json:"calories"`
	ProteinG int    `json:"proteinG"`
	CarbsG   int    `json:"carbsG"`
	FatsG    int    `json:"fatsG"`
	Summary  string `json:"summary"`
}

func isLossGoal(goal string) bool {
	switch goal {
	case "fat_loss", "lose", "weight_loss":
		return true
	}
	return false
}

func isGainGoal(goal string) bool {
	switch goal {
	case "muscle_gain", "gain", "bulk":
		return true
	}
	return false
}

func isRecompGoal(goal string) bool {
	switch goal {
	case "recomposition", "recomp":
		return true
	}
	return false
}

// RecommendDiet turns body metrics and a goal tag into a daily
// calorie/macro target. It never fails: a missing or non-positive weight
// degrades to defaultWeightKg, and an unknown goal gets maintenance
// calories with balanced macros.
func RecommendDiet(weightKg float64, goal string) DietTarget {
	if weightKg <= 0 {
		weightKg = defaultWeightKg
	}
	goal = strings.ToLower(goal)

	maintenance := weightKg * bmrPerKg * activityMultiplier

	calories := maintenance
	switch {
	case isLossGoal(goal):
		calories = maintenance - fatLossDeficit
	case isGainGoal(goal):
		calories = maintenance + gainSurplus
	case isRecompGoal(goal):
		calories = maintenance - recompDeficit
	}

	proteinG := weightKg * proteinPerKgDefault
	if isGainGoal(goal) {
		proteinG = weightKg * proteinPerKgGain
	}

	fatsG := weightKg * fatPerKgDefault
	switch {
	case isGainGoal(goal):
		fatsG = weightKg * fatPerKgGain
	case isLossGoal(goal):
		fatsG = weightKg * fatPerKgLoss
	}

	// Carbohydrates take whatever energy remains, floored at zero.
	remaining := calories - proteinG*4 - fatsG*9
	carbsG := math.Max(0, remaining/4)

	goalDisplay := "Balance"
	if goal != "" {
		goalDisplay = titleCase(strings.ReplaceAll(goal, "_", " "))
	}
	focus := "balanced macros"
	switch {
	case isGainGoal(goal):
		focus = "high protein and carbs"
	case isLossGoal(goal):
		focus = "protein and controlled carbs"
	}
	summary := fmt.Sprintf(
		"Daily target: %d kcal to support %s. Macros: %dg protein, %dg carbs, %dg fats. Focus on %s.",
		int(math.Round(calories)), goalDisplay,
		int(math.Round(proteinG)), int(math.Round(carbsG)), int(math.Round(fatsG)),
		focus,
	)

	return DietTarget{
		Calories: int(math.Round(calories)),
		ProteinG: int(math.Round(proteinG)),
		CarbsG:   int(math.Round(carbsG)),
		FatsG:    int(math.Round(fatsG)),
		Summary:  summary,
	}
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// EstimateTransformationDays estimates how many days the owner needs to
// move from weight to target at a fixed per-goal weekly rate. Returns 0
// when either weight is absent or the difference is below 0.1 kg;
// otherwise at least 7 days.
func EstimateTransformationDays(weightKg, targetKg float64, goal string) int {
	if weightKg <= 0 || targetKg <= 0 {
		return 0
	}

	kgToChange := math.Abs(targetKg - weightKg)
	if kgToChange < 0.1 {
		return 0
	}

	goal = strings.ToLower(goal)
	rate := ratePerWeekDefault
	switch {
	case isLossGoal(goal):
		rate = ratePerWeekLoss
	case isGainGoal(goal):
		rate = ratePerWeekGain
	case isRecompGoal(goal):
		rate = ratePerWeekRecomp
	}

	days := int(math.Ceil(kgToChange / rate * 7))
	if days < 7 {
		days = 7
	}
	return days
}
