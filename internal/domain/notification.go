package domain

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NotificationKind tags the category of a notification.
type NotificationKind string

const (
	NotificationPlan       NotificationKind = "plan"
	NotificationMotivation NotificationKind = "motivation"
	NotificationAlert      NotificationKind = "alert"
	NotificationSystem     NotificationKind = "system"
	NotificationShopping   NotificationKind = "shopping"
)

// Notification is a message created by the trigger engine (or system
// events) for one owner. Immutable except for the read flag.
type Notification struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OwnerID primitive.ObjectID `bson:"ownerId" json:"ownerId"`
	Kind    NotificationKind   `bson:"kind" json:"kind"`
	Title   string             `bson:"title" json:"title"`
	Message string             `bson:"message" json:"message"`

	Payload map[string]interface{} `bson:"payload,omitempty" json:"payload,omitempty"`

	// DedupeKey enforces at-most-once per (owner, title, calendar day)
	// through a unique index, so concurrent trigger evaluation cannot
	// double-fire a daily notification kind.
	DedupeKey string `bson:"dedupeKey" json:"-"`

	IsRead    bool      `bson:"isRead" json:"isRead"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

// DedupeKeyFor builds the uniqueness key for a notification of the given
// title created on the calendar day containing ts.
func DedupeKeyFor(ownerID primitive.ObjectID, title string, ts time.Time) string {
	return fmt.Sprintf("%s|%s|%s", ownerID.Hex(), title, ts.UTC().Format("2006-01-02"))
}
