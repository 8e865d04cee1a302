package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Exercise is a single exercise definition in the content catalog.
// The catalog is read-only from the engine's perspective; entries are
// seeded by administrators.
type Exercise struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	MuscleGroup string             `bson:"muscleGroup,omitempty" json:"muscleGroup,omitempty"` // e.g. "Chest", "Legs", "Full Body"
	Difficulty  string             `bson:"difficulty,omitempty" json:"difficulty,omitempty"`   // Beginner | Intermediate | Advanced
	Equipment   string             `bson:"equipment,omitempty" json:"equipment,omitempty"`     // Comma-separated, "Bodyweight" when none
	Description string             `bson:"description,omitempty" json:"description,omitempty"`

	Tags []string `bson:"tags,omitempty" json:"tags,omitempty"` // e.g. "warmup", "strength", "hiit", "stretch"

	// MediaKey is the object-storage key of the demonstration animation,
	// resolved to a presigned URL on demand.
	MediaKey     string `bson:"mediaKey,omitempty" json:"mediaKey,omitempty"`
	ThumbnailURL string `bson:"thumbnailUrl,omitempty" json:"thumbnailUrl,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// HasTag reports whether the exercise carries the given tag.
func (e *Exercise) HasTag(tag string) bool {
	for _, t := range e.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
