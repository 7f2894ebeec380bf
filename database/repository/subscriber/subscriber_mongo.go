package subscriberRepo

import (
	"context"
	"fmt"
	"time"

	"churchapp/database"
	"churchapp/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoSubscriberRepo implements SubscriberRepository using MongoDB.
type MongoSubscriberRepo struct {
	coll *mongo.Collection
}

// NewMongoSubscriberRepo creates a new instance of SubscriberRepository using MongoDB.
func NewMongoSubscriberRepo() SubscriberRepository {
	coll := database.MongoClient.Database(database.DatabaseName).Collection("subscribers")
	repo := &MongoSubscriberRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoSubscriberRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "uuid", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "pushEnabled", Value: 1}, {Key: "pushTime", Value: 1}}},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// GetByUUID retrieves a subscriber by its device uuid.
func (r *MongoSubscriberRepo) GetByUUID(uuid string) (*models.Subscriber, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var sub models.Subscriber
	err := r.coll.FindOne(ctx, bson.M{"uuid": uuid}).Decode(&sub)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch subscriber %s: %w", uuid, err)
	}
	return &sub, nil
}

// List returns all subscriber settings.
func (r *MongoSubscriberRepo) List() ([]models.Subscriber, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list subscribers: %w", err)
	}
	defer cursor.Close(ctx)

	var subs []models.Subscriber
	if err := cursor.All(ctx, &subs); err != nil {
		return nil, fmt.Errorf("failed to decode subscribers: %w", err)
	}
	return subs, nil
}

// FindDue returns all subscribers with push enabled whose configured push time
// equals the given "HH:mm" string.
func (r *MongoSubscriberRepo) FindDue(pushTime string) ([]models.Subscriber, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"pushEnabled": true, "pushTime": pushTime}
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to query due subscribers for %s: %w", pushTime, err)
	}
	defer cursor.Close(ctx)

	var subs []models.Subscriber
	if err := cursor.All(ctx, &subs); err != nil {
		return nil, fmt.Errorf("failed to decode due subscribers: %w", err)
	}
	return subs, nil
}

// Upsert writes a subscriber setting keyed by uuid.
func (r *MongoSubscriberRepo) Upsert(sub *models.Subscriber) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	sub.UpdatedAt = time.Now()
	filter := bson.M{"uuid": sub.UUID}
	opts := options.Replace().SetUpsert(true)
	if _, err := r.coll.ReplaceOne(ctx, filter, sub, opts); err != nil {
		return fmt.Errorf("failed to upsert subscriber %s: %w", sub.UUID, err)
	}
	return nil
}

// ClearToken removes the FCM token field from a subscriber document. Used when
// the provider reports the token as permanently invalid.
func (r *MongoSubscriberRepo) ClearToken(uuid string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	update := bson.M{
		"$unset": bson.M{"fcmToken": ""},
		"$set":   bson.M{"updatedAt": time.Now()},
	}
	result, err := r.coll.UpdateOne(ctx, bson.M{"uuid": uuid}, update)
	if err != nil {
		return fmt.Errorf("failed to clear token for subscriber %s: %w", uuid, err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a subscriber setting.
func (r *MongoSubscriberRepo) Delete(uuid string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"uuid": uuid})
	if err != nil {
		return fmt.Errorf("failed to delete subscriber %s: %w", uuid, err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
