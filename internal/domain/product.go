package domain

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product is a store item surfaced by the shopping recommender.
type Product struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name     string             `bson:"name" json:"name"`
	Price    float64            `bson:"price" json:"price"`
	Category string             `bson:"category,omitempty" json:"category,omitempty"`

	ImageURL      string  `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	EquipmentType string  `bson:"equipmentType,omitempty" json:"equipmentType,omitempty"` // e.g. dumbbell, mat, band
	AffiliateURL  string  `bson:"affiliateUrl,omitempty" json:"affiliateUrl,omitempty"`
	Rating        float64 `bson:"rating,omitempty" json:"rating,omitempty"`
	Source        string  `bson:"source,omitempty" json:"source,omitempty"` // local | amazon | flipkart
}
