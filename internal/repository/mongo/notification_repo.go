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

const notificationCollectionName = "notifications"

// mongoNotificationRepository implements repository.NotificationRepository.
type mongoNotificationRepository struct {
	collection *mongo.Collection
}

// NewMongoNotificationRepository creates a new Notification repository.
func NewMongoNotificationRepository(db *mongo.Database) repository.NotificationRepository {
	return &mongoNotificationRepository{
		collection: db.Collection(notificationCollectionName),
	}
}

// Create inserts a notification. The unique index on dedupeKey turns the
// trigger engine's check-then-create into an insert-with-uniqueness:
// a concurrent duplicate surfaces as ErrDuplicateKey instead of a second
// notification.
func (r *mongoNotificationRepository) Create(ctx context.Context, n *domain.Notification) (primitive.ObjectID, error) {
	if n.OwnerID == primitive.NilObjectID || n.Title == "" {
		return primitive.NilObjectID, errors.New("notification requires ownerId and title")
	}

	n.ID = primitive.NewObjectID()
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}
	if n.DedupeKey == "" {
		n.DedupeKey = domain.DedupeKeyFor(n.OwnerID, n.Title, n.CreatedAt)
	}

	result, err := r.collection.InsertOne(ctx, n)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, repository.ErrDuplicateKey
		}
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted notification ID")
	}
	return insertedID, nil
}

// HasUnreadWithTitle reports whether an unread notification with the exact
// title exists for the owner.
func (r *mongoNotificationRepository) HasUnreadWithTitle(ctx context.Context, ownerID primitive.ObjectID, title string) (bool, error) {
	filter := bson.M{
		"ownerId": ownerID,
		"title":   title,
		"isRead":  false,
	}
	count, err := r.collection.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// HasWithTitleSince reports whether any notification with the exact title
// was created at or after the given instant.
func (r *mongoNotificationRepository) HasWithTitleSince(ctx context.Context, ownerID primitive.ObjectID, title string, since time.Time) (bool, error) {
	filter := bson.M{
		"ownerId":   ownerID,
		"title":     title,
		"createdAt": bson.M{"$gte": since.UTC()},
	}
	count, err := r.collection.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListByOwner returns up to limit notifications, unread first, newest first.
func (r *mongoNotificationRepository) ListByOwner(ctx context.Context, ownerID primitive.ObjectID, limit int64) ([]domain.Notification, error) {
	var notifications []domain.Notification
	filter := bson.M{"ownerId": ownerID}
	findOptions := options.Find().
		SetSort(bson.D{{Key: "isRead", Value: 1}, {Key: "createdAt", Value: -1}}).
		SetLimit(limit)

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}

// MarkRead flips the read flag of one notification owned by the owner.
func (r *mongoNotificationRepository) MarkRead(ctx context.Context, ownerID, id primitive.ObjectID) error {
	filter := bson.M{"_id": id, "ownerId": ownerID}
	update := bson.M{"$set": bson.M{"isRead": true}}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// MarkAllRead flips the read flag on every unread notification of the owner.
func (r *mongoNotificationRepository) MarkAllRead(ctx context.Context, ownerID primitive.ObjectID) error {
	filter := bson.M{"ownerId": ownerID, "isRead": false}
	update := bson.M{"$set": bson.M{"isRead": true}}
	_, err := r.collection.UpdateMany(ctx, filter, update)
	return err
}

// EnsureNotificationIndexes creates necessary indexes. Call during startup.
func EnsureNotificationIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			// At-most-once per (owner, title, calendar day)
			Keys:    bson.D{{Key: "dedupeKey", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "ownerId", Value: 1}, {Key: "isRead", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index(),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
