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

const checkInCollectionName = "checkins"

// mongoCheckInRepository implements repository.CheckInRepository.
// The collection is append-only; there are no update or delete paths.
type mongoCheckInRepository struct {
	collection *mongo.Collection
}

// NewMongoCheckInRepository creates a new CheckIn repository.
func NewMongoCheckInRepository(db *mongo.Database) repository.CheckInRepository {
	return &mongoCheckInRepository{
		collection: db.Collection(checkInCollectionName),
	}
}

// Create appends a check-in record.
func (r *mongoCheckInRepository) Create(ctx context.Context, checkIn *domain.CheckIn) (primitive.ObjectID, error) {
	if checkIn.OwnerID == primitive.NilObjectID || checkIn.EntryID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("check-in requires ownerId and entryId")
	}
	if !checkIn.Kind.Valid() {
		return primitive.NilObjectID, errors.New("check-in requires a valid kind")
	}

	checkIn.ID = primitive.NewObjectID()
	if checkIn.Timestamp.IsZero() {
		checkIn.Timestamp = time.Now().UTC()
	}

	result, err := r.collection.InsertOne(ctx, checkIn)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted check-in ID")
	}
	return insertedID, nil
}

// GetByEntryID returns the check-in history of one entry, oldest first.
func (r *mongoCheckInRepository) GetByEntryID(ctx context.Context, entryID primitive.ObjectID) ([]domain.CheckIn, error) {
	var checkIns []domain.CheckIn
	filter := bson.M{"entryId": entryID}
	findOptions := options.Find().SetSort(bson.D{{Key: "timestamp", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &checkIns); err != nil {
		return nil, err
	}
	return checkIns, nil
}

// EnsureCheckInIndexes creates necessary indexes. Call during startup.
func EnsureCheckInIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "entryId", Value: 1}, {Key: "timestamp", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "ownerId", Value: 1}},
			Options: options.Index(),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
