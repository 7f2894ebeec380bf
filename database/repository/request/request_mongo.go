package requestRepo

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

// MongoRequestRepo implements RequestRepository using MongoDB.
type MongoRequestRepo struct {
	coll        *mongo.Collection
	accountColl *mongo.Collection
}

// NewMongoRequestRepo creates a new instance of RequestRepository using MongoDB.
func NewMongoRequestRepo() RequestRepository {
	db := database.MongoClient.Database(database.DatabaseName)
	repo := &MongoRequestRepo{
		coll:        db.Collection("account_requests"),
		accountColl: db.Collection("accounts"),
	}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoRequestRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	requestIdx := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, requestIdx); err != nil {
		return fmt.Errorf("failed to create request indexes: %w", err)
	}

	accountIdx := []mongo.IndexModel{
		{Keys: bson.D{{Key: "loginId", Value: 1}}, Options: options.Index().SetUnique(true)},
	}
	if _, err := r.accountColl.Indexes().CreateMany(ctx, accountIdx); err != nil {
		return fmt.Errorf("failed to create account indexes: %w", err)
	}
	return nil
}

// List returns all account requests, newest first.
func (r *MongoRequestRepo) List() ([]models.AccountRequest, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "registeredAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list account requests: %w", err)
	}
	defer cursor.Close(ctx)

	var requests []models.AccountRequest
	if err := cursor.All(ctx, &requests); err != nil {
		return nil, fmt.Errorf("failed to decode account requests: %w", err)
	}
	return requests, nil
}

// GetByID retrieves one account request.
func (r *MongoRequestRepo) GetByID(id string) (*models.AccountRequest, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var req models.AccountRequest
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&req)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch account request %s: %w", id, err)
	}
	return &req, nil
}

// Approve flips the approve flag false -> true. The filter includes
// approve:false so a second approval matches nothing and fails.
func (r *MongoRequestRepo) Approve(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": id, "approve": false}
	update := bson.M{"$set": bson.M{"approve": true}}
	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to approve account request %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		// Distinguish missing from already-approved.
		if _, getErr := r.GetByID(id); getErr != nil {
			return getErr
		}
		return ErrAlreadyApproved
	}
	return nil
}

// Delete removes (rejects) an account request.
func (r *MongoRequestRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete account request %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// CreateAccount inserts a login account created from an approved request.
func (r *MongoRequestRepo) CreateAccount(account *models.Account) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	account.CreatedAt = time.Now()
	if _, err := r.accountColl.InsertOne(ctx, account); err != nil {
		return fmt.Errorf("failed to create account for %s: %w", account.LoginID, err)
	}
	return nil
}

// GetAccountByLoginID retrieves an account by its login id.
func (r *MongoRequestRepo) GetAccountByLoginID(loginID string) (*models.Account, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var account models.Account
	err := r.accountColl.FindOne(ctx, bson.M{"loginId": loginID}).Decode(&account)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch account %s: %w", loginID, err)
	}
	return &account, nil
}
