package contentRepo

import (
	"context"
	"fmt"
	"time"

	"churchapp/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// InsertViewMarker appends a view-marker document. Markers are never updated
// or deleted by this code.
func (r *MongoContentRepo) InsertViewMarker(marker *models.ViewMarker) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	marker.CreatedAt = time.Now()
	if _, err := r.markerColl.InsertOne(ctx, marker); err != nil {
		return fmt.Errorf("failed to insert view marker for %s/%s: %w", marker.Kind, marker.ContentID, err)
	}
	return nil
}

// IncrementViews bumps the view counter of a content item by one inside a
// read-modify-write transaction, so concurrent marker creations for the same
// item never lose an update. A missing parent is a logged no-op.
func (r *MongoContentRepo) IncrementViews(ctx context.Context, kind, id string) error {
	client := r.coll.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	txnFn := func(sc mongo.SessionContext) error {
		var content models.Content
		err := r.coll.FindOne(sc, bson.M{"kind": kind, "id": id}).Decode(&content)
		if err != nil {
			if err == mongo.ErrNoDocuments {
				zap.L().Warn("view sync: content not found, skipping",
					zap.String("kind", kind), zap.String("contentId", id))
				return nil
			}
			return fmt.Errorf("read content failed: %w", err)
		}

		update := bson.M{"$set": bson.M{"views": content.Views + 1}}
		if _, err := r.coll.UpdateOne(sc, bson.M{"kind": kind, "id": id}, update); err != nil {
			return fmt.Errorf("write views failed: %w", err)
		}
		return nil
	}

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		return fmt.Errorf("view increment transaction failed: %w", err)
	}

	return nil
}
