package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents an application user: the owner of plans, check-ins,
// progress logs and notifications.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`    // Should be unique
	PasswordHash string             `bson:"passwordHash" json:"-"` // Never expose this via JSON

	// Onboarding profile. All optional until the user completes onboarding.
	Age            int      `bson:"age,omitempty" json:"age,omitempty"`
	HeightCm       float64  `bson:"heightCm,omitempty" json:"heightCm,omitempty"`
	WeightKg       float64  `bson:"weightKg,omitempty" json:"weightKg,omitempty"`
	TargetWeightKg *float64 `bson:"targetWeightKg,omitempty" json:"targetWeightKg,omitempty"`
	Goal           string   `bson:"goal,omitempty" json:"goal,omitempty"`                 // e.g. "fat_loss", "muscle_gain"
	FitnessLevel   string   `bson:"fitnessLevel,omitempty" json:"fitnessLevel,omitempty"` // beginner | intermediate | advanced
	ActivityLevel  string   `bson:"activityLevel,omitempty" json:"activityLevel,omitempty"`
	FreqPerWeek    int      `bson:"freqPerWeek,omitempty" json:"freqPerWeek,omitempty"`
	EstimateDays   int      `bson:"estimateDays,omitempty" json:"estimateDays,omitempty"` // Estimated days to reach target weight

	// Streak counters. Recomputed from daily entry history, never
	// incremented in place.
	WorkoutStreak int `bson:"workoutStreak" json:"workoutStreak"`
	DietStreak    int `bson:"dietStreak" json:"dietStreak"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
