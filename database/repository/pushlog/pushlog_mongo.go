package pushlogRepo

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

// MongoPushLogRepo implements PushLogRepository using MongoDB.
type MongoPushLogRepo struct {
	coll *mongo.Collection
}

// NewMongoPushLogRepo creates a new instance of PushLogRepository using MongoDB.
func NewMongoPushLogRepo() PushLogRepository {
	coll := database.MongoClient.Database(database.DatabaseName).Collection("push_logs")
	repo := &MongoPushLogRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoPushLogRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "date", Value: 1}, {Key: "uuid", Value: 1}}, Options: options.Index().SetUnique(true)},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// WriteBatch commits all outcome records of one dispatch run as a single bulk
// write. Records are upserted on (date, uuid), so re-running a dispatch for
// the same day overwrites instead of duplicating.
func (r *MongoPushLogRepo) WriteBatch(logs []models.DeliveryLog) error {
	if len(logs) == 0 {
		return nil
	}
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	writes := make([]mongo.WriteModel, 0, len(logs))
	for i := range logs {
		filter := bson.M{"date": logs[i].Date, "uuid": logs[i].UUID}
		writes = append(writes, mongo.NewReplaceOneModel().
			SetFilter(filter).
			SetReplacement(logs[i]).
			SetUpsert(true))
	}

	if _, err := r.coll.BulkWrite(ctx, writes); err != nil {
		return fmt.Errorf("failed to write delivery log batch: %w", err)
	}
	return nil
}

// ListByDate returns all delivery logs recorded under a date key.
func (r *MongoPushLogRepo) ListByDate(date string) ([]models.DeliveryLog, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"date": date})
	if err != nil {
		return nil, fmt.Errorf("failed to list delivery logs for %s: %w", date, err)
	}
	defer cursor.Close(ctx)

	var logs []models.DeliveryLog
	if err := cursor.All(ctx, &logs); err != nil {
		return nil, fmt.Errorf("failed to decode delivery logs for %s: %w", date, err)
	}
	return logs, nil
}

// PurgeBefore deletes every delivery log whose date key sorts before the
// cutoff. The yyyyMMdd format sorts correctly as a string, so a plain $lt
// comparison is date order.
func (r *MongoPushLogRepo) PurgeBefore(cutoff string) (int64, error) {
	ctx, cancel := newContext(30 * time.Second)
	defer cancel()

	result, err := r.coll.DeleteMany(ctx, bson.M{"date": bson.M{"$lt": cutoff}})
	if err != nil {
		return 0, fmt.Errorf("failed to purge delivery logs before %s: %w", cutoff, err)
	}
	return result.DeletedCount, nil
}
