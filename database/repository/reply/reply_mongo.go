package replyRepo

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

// MongoReplyRepo implements ReplyRepository using MongoDB.
type MongoReplyRepo struct {
	coll *mongo.Collection
}

// NewMongoReplyRepo creates a new instance of ReplyRepository using MongoDB.
func NewMongoReplyRepo() ReplyRepository {
	coll := database.MongoClient.Database(database.DatabaseName).Collection("replies")
	repo := &MongoReplyRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoReplyRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "kind", Value: 1}, {Key: "contentId", Value: 1}, {Key: "registeredAt", Value: 1}}},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create stores a new member comment.
func (r *MongoReplyRepo) Create(reply *models.Reply) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, reply); err != nil {
		return fmt.Errorf("failed to insert reply for %s/%s: %w", reply.Kind, reply.ContentID, err)
	}
	return nil
}

// ListThreads groups one kind's comments by content id with a count and the
// newest comment time, ordered newest thread first.
func (r *MongoReplyRepo) ListThreads(kind string) ([]models.ReplyThread, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"kind": kind}}},
		{{Key: "$group", Value: bson.M{
			"_id":      "$contentId",
			"count":    bson.M{"$sum": 1},
			"latestAt": bson.M{"$max": "$registeredAt"},
		}}},
		{{Key: "$sort", Value: bson.M{"latestAt": -1}}},
	}
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to group %s replies: %w", kind, err)
	}
	defer cursor.Close(ctx)

	var threads []models.ReplyThread
	if err := cursor.All(ctx, &threads); err != nil {
		return nil, fmt.Errorf("failed to decode %s reply threads: %w", kind, err)
	}
	return threads, nil
}

// ListByContent returns one content item's comments, oldest first.
func (r *MongoReplyRepo) ListByContent(kind, contentID string) ([]models.Reply, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"kind": kind, "contentId": contentID}
	opts := options.Find().SetSort(bson.D{{Key: "registeredAt", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list replies for %s/%s: %w", kind, contentID, err)
	}
	defer cursor.Close(ctx)

	var replies []models.Reply
	if err := cursor.All(ctx, &replies); err != nil {
		return nil, fmt.Errorf("failed to decode replies for %s/%s: %w", kind, contentID, err)
	}
	return replies, nil
}

// Delete hard-deletes one comment.
func (r *MongoReplyRepo) Delete(kind, id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"kind": kind, "id": id})
	if err != nil {
		return fmt.Errorf("failed to delete reply %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
