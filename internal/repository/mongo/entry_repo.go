package mongo

import (
	"context"
	"errors"
	"time"

	"gymsphere/fitness-app/internal/domain"
	"gymsphere/fitness-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const entryCollectionName = "daily_entries"

// mongoEntryRepository implements repository.EntryRepository.
type mongoEntryRepository struct {
	collection *mongo.Collection
}

// NewMongoEntryRepository creates a new DailyEntry repository.
func NewMongoEntryRepository(db *mongo.Database) repository.EntryRepository {
	return &mongoEntryRepository{
		collection: db.Collection(entryCollectionName),
	}
}

// GetByID retrieves a single daily entry by its ID.
func (r *mongoEntryRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.DailyEntry, error) {
	var entry domain.DailyEntry
	filter := bson.M{"_id": id}
	err := r.collection.FindOne(ctx, filter).Decode(&entry)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &entry, nil
}

// GetByPlanAndDate retrieves the entry of the plan for one calendar date.
func (r *mongoEntryRepository) GetByPlanAndDate(ctx context.Context, planID primitive.ObjectID, date time.Time) (*domain.DailyEntry, error) {
	var entry domain.DailyEntry
	filter := bson.M{
		"planId": planID,
		"date":   domain.DateOnly(date),
	}
	err := r.collection.FindOne(ctx, filter).Decode(&entry)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &entry, nil
}

// GetByPlanUpTo returns all entries with date <= the given date, newest
// first. This is the shape the streak walk consumes.
func (r *mongoEntryRepository) GetByPlanUpTo(ctx context.Context, planID primitive.ObjectID, date time.Time) ([]domain.DailyEntry, error) {
	var entries []domain.DailyEntry
	filter := bson.M{
		"planId": planID,
		"date":   bson.M{"$lte": domain.DateOnly(date)},
	}
	findOptions := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// GetByPlan returns all entries of the plan in calendar order.
func (r *mongoEntryRepository) GetByPlan(ctx context.Context, planID primitive.ObjectID) ([]domain.DailyEntry, error) {
	var entries []domain.DailyEntry
	filter := bson.M{"planId": planID}
	findOptions := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// SetCompletion flips the completion flag of the given kind and stamps
// the completion time.
func (r *mongoEntryRepository) SetCompletion(ctx context.Context, id primitive.ObjectID, kind domain.CheckInKind, at time.Time) error {
	var set bson.M
	switch kind {
	case domain.CheckInExercise:
		set = bson.M{"isExerciseCompleted": true, "exerciseCompletedAt": at.UTC()}
	case domain.CheckInDiet:
		set = bson.M{"isDietCompleted": true, "dietCompletedAt": at.UTC()}
	default:
		return errors.New("unknown check-in kind")
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureEntryIndexes creates necessary indexes. Call during startup.
func EnsureEntryIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			// One entry per plan per date
			Keys:    bson.D{{Key: "planId", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "ownerId", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index(),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
