package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CheckInKind distinguishes what the owner is marking as done.
type CheckInKind string

const (
	CheckInExercise CheckInKind = "exercise"
	CheckInDiet     CheckInKind = "diet"
)

// Valid reports whether k is a recognised check-in kind.
func (k CheckInKind) Valid() bool {
	return k == CheckInExercise || k == CheckInDiet
}

// CheckIn is an immutable audit record of an owner marking a daily entry's
// exercise or diet as completed. Append-only; never updated or deleted.
type CheckIn struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OwnerID primitive.ObjectID `bson:"ownerId" json:"ownerId"`
	EntryID primitive.ObjectID `bson:"entryId" json:"entryId"`
	Kind    CheckInKind        `bson:"kind" json:"kind"`
	Note    string             `bson:"note,omitempty" json:"note,omitempty"`

	Timestamp time.Time `bson:"timestamp" json:"timestamp"`
}
