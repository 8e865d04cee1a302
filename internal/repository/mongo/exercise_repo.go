package mongo

import (
	"context"
	"errors"

	"gymsphere/fitness-app/internal/domain"
	"gymsphere/fitness-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const exerciseCollectionName = "exercises"

// mongoExerciseRepository implements repository.ExerciseRepository: the
// read-only content catalog backing the content selector.
type mongoExerciseRepository struct {
	collection *mongo.Collection
}

// NewMongoExerciseRepository creates a new Exercise repository.
func NewMongoExerciseRepository(db *mongo.Database) repository.ExerciseRepository {
	return &mongoExerciseRepository{
		collection: db.Collection(exerciseCollectionName),
	}
}

// Query returns catalog exercises matching the filter, in name order so
// results are stable for a given catalog state.
func (r *mongoExerciseRepository) Query(ctx context.Context, filter repository.ContentFilter) ([]domain.Exercise, error) {
	var conds []bson.M
	if filter.Tag != "" {
		conds = append(conds, bson.M{"tags": filter.Tag})
	}
	if len(filter.ExcludeTags) > 0 {
		conds = append(conds, bson.M{"tags": bson.M{"$nin": filter.ExcludeTags}})
	}
	if filter.BodyweightOnly {
		conds = append(conds, bson.M{"equipment": bson.M{"$regex": "Bodyweight", "$options": "i"}})
	}
	query := bson.M{}
	if len(conds) > 0 {
		query["$and"] = conds
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})

	cursor, err := r.collection.Find(ctx, query, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var exercises []domain.Exercise
	if err = cursor.All(ctx, &exercises); err != nil {
		return nil, err
	}
	return exercises, nil
}

// GetByID retrieves a single catalog exercise.
func (r *mongoExerciseRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Exercise, error) {
	var exercise domain.Exercise
	filter := bson.M{"_id": id}
	err := r.collection.FindOne(ctx, filter).Decode(&exercise)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &exercise, nil
}

// EnsureExerciseIndexes creates necessary indexes. Call during startup.
func EnsureExerciseIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "tags", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "muscleGroup", Value: 1}},
			Options: options.Index(),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
