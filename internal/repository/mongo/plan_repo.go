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

const planCollectionName = "plans"

// mongoPlanRepository implements repository.PlanRepository.
type mongoPlanRepository struct {
	db         *mongo.Database
	collection *mongo.Collection
}

// NewMongoPlanRepository creates a new Plan repository.
// The database handle is retained because plan creation spans two
// collections inside one transaction.
func NewMongoPlanRepository(db *mongo.Database) repository.PlanRepository {
	return &mongoPlanRepository{
		db:         db,
		collection: db.Collection(planCollectionName),
	}
}

// CreateWithEntries inserts the plan and all of its daily entries in a
// single transaction. Readers never observe a partially populated plan.
func (r *mongoPlanRepository) CreateWithEntries(ctx context.Context, plan *domain.Plan, entries []domain.DailyEntry) (primitive.ObjectID, error) {
	if plan.OwnerID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("plan requires an ownerId")
	}
	if len(entries) == 0 {
		return primitive.NilObjectID, errors.New("plan requires daily entries")
	}

	plan.ID = primitive.NewObjectID()
	plan.CreatedAt = time.Now().UTC()

	for i := range entries {
		entries[i].ID = primitive.NewObjectID()
		entries[i].PlanID = plan.ID
		entries[i].OwnerID = plan.OwnerID
	}

	session, err := r.db.Client().StartSession()
	if err != nil {
		return primitive.NilObjectID, err
	}
	defer session.EndSession(ctx)

	entryColl := r.db.Collection(entryCollectionName)
	docs := make([]interface{}, len(entries))
	for i := range entries {
		docs[i] = entries[i]
	}

	_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
		if _, err := r.collection.InsertOne(sessCtx, plan); err != nil {
			return nil, err
		}
		if _, err := entryColl.InsertMany(sessCtx, docs); err != nil {
			return nil, err
		}
		return nil, nil
	})
	if err != nil {
		return primitive.NilObjectID, err
	}

	return plan.ID, nil
}

// GetByID retrieves a single plan by its ID.
func (r *mongoPlanRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Plan, error) {
	var plan domain.Plan
	filter := bson.M{"_id": id}
	err := r.collection.FindOne(ctx, filter).Decode(&plan)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &plan, nil
}

// GetLatestByOwner returns the owner's most recently created plan.
// Ties on createdAt are broken by _id descending, which is insertion
// ordered for ObjectIDs.
func (r *mongoPlanRepository) GetLatestByOwner(ctx context.Context, ownerID primitive.ObjectID) (*domain.Plan, error) {
	var plan domain.Plan
	filter := bson.M{"ownerId": ownerID}
	findOptions := options.FindOne().SetSort(bson.D{
		{Key: "createdAt", Value: -1},
		{Key: "_id", Value: -1},
	})

	err := r.collection.FindOne(ctx, filter, findOptions).Decode(&plan)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &plan, nil
}

// GetCoveringDate returns the newest plan whose date range contains date.
func (r *mongoPlanRepository) GetCoveringDate(ctx context.Context, ownerID primitive.ObjectID, date time.Time) (*domain.Plan, error) {
	var plan domain.Plan
	day := domain.DateOnly(date)
	filter := bson.M{
		"ownerId":   ownerID,
		"startDate": bson.M{"$lte": day},
		"endDate":   bson.M{"$gte": day},
	}
	findOptions := options.FindOne().SetSort(bson.D{
		{Key: "createdAt", Value: -1},
		{Key: "_id", Value: -1},
	})

	err := r.collection.FindOne(ctx, filter, findOptions).Decode(&plan)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &plan, nil
}

// EnsurePlanIndexes creates necessary indexes. Call during startup.
func EnsurePlanIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			// Main query pattern: latest plan per owner
			Keys:    bson.D{{Key: "ownerId", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index(),
		},
		{
			// Covering-date lookups for notification triggers
			Keys:    bson.D{{Key: "ownerId", Value: 1}, {Key: "startDate", Value: 1}, {Key: "endDate", Value: 1}},
			Options: options.Index(),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
