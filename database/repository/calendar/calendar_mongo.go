package calendarRepo

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

// MongoCalendarRepo implements CalendarRepository using MongoDB.
type MongoCalendarRepo struct {
	coll *mongo.Collection
}

// NewMongoCalendarRepo creates a new instance of CalendarRepository using MongoDB.
func NewMongoCalendarRepo() CalendarRepository {
	coll := database.MongoClient.Database(database.DatabaseName).Collection("calendar")
	repo := &MongoCalendarRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoCalendarRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "date", Value: 1}}},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new calendar entry.
func (r *MongoCalendarRepo) Create(entry *models.CalendarEntry) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	entry.CreatedAt = now
	entry.UpdatedAt = now
	if _, err := r.coll.InsertOne(ctx, entry); err != nil {
		return fmt.Errorf("failed to create calendar entry: %w", err)
	}
	return nil
}

// Update modifies an existing calendar entry.
func (r *MongoCalendarRepo) Update(entry *models.CalendarEntry) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	entry.UpdatedAt = time.Now()
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": entry.ID}, bson.M{"$set": entry})
	if err != nil {
		return fmt.Errorf("failed to update calendar entry %s: %w", entry.ID, err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a calendar entry by its ID.
func (r *MongoCalendarRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete calendar entry %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// GetByID retrieves a calendar entry by its ID.
func (r *MongoCalendarRepo) GetByID(id string) (*models.CalendarEntry, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var entry models.CalendarEntry
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&entry)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch calendar entry %s: %w", id, err)
	}
	return &entry, nil
}

// ListByMonth returns entries whose date falls inside the "2006-01" month
// prefix, ordered by date then start time.
func (r *MongoCalendarRepo) ListByMonth(yearMonth string) ([]models.CalendarEntry, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"date": bson.M{"$regex": "^" + yearMonth}}
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "startTime", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list calendar entries for %s: %w", yearMonth, err)
	}
	defer cursor.Close(ctx)

	var entries []models.CalendarEntry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode calendar entries for %s: %w", yearMonth, err)
	}
	return entries, nil
}
