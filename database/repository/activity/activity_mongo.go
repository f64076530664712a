package activityRepo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"receivault/database"
	"receivault/database/repository"
	"receivault/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoActivityRepo implements ActivityRepository using MongoDB.
type MongoActivityRepo struct {
	coll *mongo.Collection
}

// NewMongoActivityRepo creates a new instance of ActivityRepository using MongoDB.
func NewMongoActivityRepo() ActivityRepository {
	coll := database.MongoClient.Database(database.DatabaseName).Collection("activity")
	repo := &MongoActivityRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoActivityRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "signature", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "vault_pda", Value: 1}}},
		{Keys: bson.D{{Key: "wallet", Value: 1}}},
		{Keys: bson.D{{Key: "slot", Value: -1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Record inserts an event. A duplicate signature is not an error: the
// indexer re-scans ranges and will see the same transaction twice.
func (r *MongoActivityRepo) Record(event *models.ActivityEvent) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	event.CreatedAt = time.Now()
	if _, err := r.coll.InsertOne(ctx, event); err != nil {
		if mongo.IsDuplicateKeyError(err) || strings.Contains(err.Error(), "E11000") {
			return nil
		}
		return fmt.Errorf("failed to record activity %s: %w", event.Signature, err)
	}
	return nil
}

// List retrieves a page of events, newest first.
func (r *MongoActivityRepo) List(vaultPDA, wallet string, cursor string, limit int) ([]models.ActivityEvent, string, int64, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	filter := bson.M{}
	if vaultPDA != "" {
		filter["vault_pda"] = vaultPDA
	}
	if wallet != "" {
		filter["wallet"] = wallet
	}

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, "", 0, fmt.Errorf("failed to count activity: %w", err)
	}

	after, err := repository.DecodeCursor(cursor)
	if err != nil {
		return nil, "", 0, err
	}
	if !after.IsZero() {
		filter["_id"] = bson.M{"$lt": after}
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: -1}}).
		SetLimit(int64(limit))

	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, "", 0, fmt.Errorf("failed to list activity: %w", err)
	}
	defer cur.Close(ctx)

	var events []models.ActivityEvent
	var lastID primitive.ObjectID
	for cur.Next(ctx) {
		var row struct {
			ID                   primitive.ObjectID `bson:"_id"`
			models.ActivityEvent `bson:",inline"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, "", 0, fmt.Errorf("failed to decode activity event: %w", err)
		}
		events = append(events, row.ActivityEvent)
		lastID = row.ID
	}
	if err := cur.Err(); err != nil {
		return nil, "", 0, fmt.Errorf("cursor error: %w", err)
	}

	next := ""
	if len(events) == limit && !lastID.IsZero() {
		next = repository.EncodeCursor(lastID)
	}
	return events, next, total, nil
}
