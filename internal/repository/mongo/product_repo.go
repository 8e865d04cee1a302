package mongo

import (
	"context"
	"errors"
	"regexp"

	"gymsphere/fitness-app/internal/domain"
	"gymsphere/fitness-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const productCollectionName = "products"

// mongoProductRepository implements repository.ProductRepository.
type mongoProductRepository struct {
	collection *mongo.Collection
}

// NewMongoProductRepository creates a new Product repository.
func NewMongoProductRepository(db *mongo.Database) repository.ProductRepository {
	return &mongoProductRepository{
		collection: db.Collection(productCollectionName),
	}
}

// SearchByName returns the first product whose name contains the term,
// case-insensitively.
func (r *mongoProductRepository) SearchByName(ctx context.Context, term string) (*domain.Product, error) {
	var product domain.Product
	filter := bson.M{
		"name": bson.M{"$regex": regexp.QuoteMeta(term), "$options": "i"},
	}
	findOptions := options.FindOne().SetSort(bson.D{{Key: "name", Value: 1}})

	err := r.collection.FindOne(ctx, filter, findOptions).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}
