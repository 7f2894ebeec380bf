package contentRepo

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

// MongoContentRepo implements ContentRepository using MongoDB.
type MongoContentRepo struct {
	coll       *mongo.Collection
	detailColl *mongo.Collection
	markerColl *mongo.Collection
}

// NewMongoContentRepo creates a new instance of ContentRepository using MongoDB.
func NewMongoContentRepo() ContentRepository {
	db := database.MongoClient.Database(database.DatabaseName)
	repo := &MongoContentRepo{
		coll:       db.Collection("contents"),
		detailColl: db.Collection("content_details"),
		markerColl: db.Collection("view_markers"),
	}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

// newContext creates a context with the given timeout.
func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// ensureIndexes creates indexes for fields frequently used in queries.
func (r *MongoContentRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	contentIdx := []mongo.IndexModel{
		{Keys: bson.D{{Key: "kind", Value: 1}, {Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "kind", Value: 1}, {Key: "createdAt", Value: -1}}},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, contentIdx); err != nil {
		return fmt.Errorf("failed to create content indexes: %w", err)
	}

	detailIdx := []mongo.IndexModel{
		{Keys: bson.D{{Key: "contentId", Value: 1}, {Key: "pictureId", Value: 1}}, Options: options.Index().SetUnique(true)},
	}
	if _, err := r.detailColl.Indexes().CreateMany(ctx, detailIdx); err != nil {
		return fmt.Errorf("failed to create detail indexes: %w", err)
	}

	markerIdx := []mongo.IndexModel{
		{Keys: bson.D{{Key: "kind", Value: 1}, {Key: "contentId", Value: 1}}},
	}
	if _, err := r.markerColl.Indexes().CreateMany(ctx, markerIdx); err != nil {
		return fmt.Errorf("failed to create marker indexes: %w", err)
	}
	return nil
}

// Create inserts a new content document together with its detail sidecars.
func (r *MongoContentRepo) Create(content *models.Content, details []models.ContentDetail) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	content.CreatedAt = now
	content.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, content); err != nil {
		return fmt.Errorf("failed to create content: %w", err)
	}

	for i := range details {
		details[i].ContentID = content.ID
		details[i].UpdatedAt = now
	}
	if len(details) > 0 {
		docs := make([]interface{}, len(details))
		for i := range details {
			docs[i] = details[i]
		}
		if _, err := r.detailColl.InsertMany(ctx, docs); err != nil {
			return fmt.Errorf("failed to create content details: %w", err)
		}
	}
	return nil
}

// Update modifies an existing content document.
func (r *MongoContentRepo) Update(content *models.Content) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	content.UpdatedAt = time.Now()
	filter := bson.M{"kind": content.Kind, "id": content.ID}
	// The views field is owned by the marker sync transaction; editing a
	// content item must not overwrite a concurrent increment.
	update := bson.M{"$set": bson.M{
		"title":     content.Title,
		"author":    content.Author,
		"active":    content.Active,
		"updatedAt": content.UpdatedAt,
	}}

	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update content %s/%s: %w", content.Kind, content.ID, err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a content document by its ID, along with its details.
func (r *MongoContentRepo) Delete(kind, id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"kind": kind, "id": id})
	if err != nil {
		return fmt.Errorf("failed to delete content %s/%s: %w", kind, id, err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	if _, err := r.detailColl.DeleteMany(ctx, bson.M{"contentId": id}); err != nil {
		return fmt.Errorf("failed to delete details for content %s: %w", id, err)
	}
	return nil
}

// GetByID retrieves a content document by kind and ID.
func (r *MongoContentRepo) GetByID(kind, id string) (*models.Content, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var content models.Content
	err := r.coll.FindOne(ctx, bson.M{"kind": kind, "id": id}).Decode(&content)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch content %s/%s: %w", kind, id, err)
	}
	return &content, nil
}

// List returns all content documents of a kind, newest first.
func (r *MongoContentRepo) List(kind string) ([]models.Content, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"kind": kind}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s contents: %w", kind, err)
	}
	defer cursor.Close(ctx)

	var contents []models.Content
	if err := cursor.All(ctx, &contents); err != nil {
		return nil, fmt.Errorf("failed to decode %s contents: %w", kind, err)
	}
	return contents, nil
}

// GetDetails returns the detail sidecars of a content item, ordered by picture id.
func (r *MongoContentRepo) GetDetails(contentID string) ([]models.ContentDetail, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "pictureId", Value: 1}})
	cursor, err := r.detailColl.Find(ctx, bson.M{"contentId": contentID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch details for content %s: %w", contentID, err)
	}
	defer cursor.Close(ctx)

	var details []models.ContentDetail
	if err := cursor.All(ctx, &details); err != nil {
		return nil, fmt.Errorf("failed to decode details for content %s: %w", contentID, err)
	}
	return details, nil
}

// UpsertDetail writes a detail sidecar, replacing any existing document with
// the same (contentId, pictureId) key.
func (r *MongoContentRepo) UpsertDetail(detail *models.ContentDetail) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	detail.UpdatedAt = time.Now()
	filter := bson.M{"contentId": detail.ContentID, "pictureId": detail.PictureID}
	opts := options.Replace().SetUpsert(true)
	if _, err := r.detailColl.ReplaceOne(ctx, filter, detail, opts); err != nil {
		return fmt.Errorf("failed to upsert detail %s/%s: %w", detail.ContentID, detail.PictureID, err)
	}
	return nil
}

// SetDetailThumbURL sets the thumb URL on one detail document, creating the
// document if it does not exist yet (merge semantics: other fields are kept).
func (r *MongoContentRepo) SetDetailThumbURL(contentID, pictureID, url string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"contentId": contentID, "pictureId": pictureID}
	update := bson.M{"$set": bson.M{"thumbUrl": url, "updatedAt": time.Now()}}
	opts := options.Update().SetUpsert(true)
	if _, err := r.detailColl.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("failed to set detail thumb for %s/%s: %w", contentID, pictureID, err)
	}
	return nil
}

// SetThumbURL sets the representative thumb URL on the parent content document.
func (r *MongoContentRepo) SetThumbURL(kind, id, url string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"kind": kind, "id": id}
	update := bson.M{"$set": bson.M{"thumbUrl": url, "updatedAt": time.Now()}}
	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to set thumb for %s/%s: %w", kind, id, err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
