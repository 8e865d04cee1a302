package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProgressLog is one weight measurement logged by an owner.
type ProgressLog struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OwnerID  primitive.ObjectID `bson:"ownerId" json:"ownerId"`
	WeightKg float64            `bson:"weightKg" json:"weightKg"`
	LoggedAt time.Time          `bson:"loggedAt" json:"loggedAt"`
}
