package positionRepo

import (
	"context"
	"fmt"
	"time"

	"receivault/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoPositionRepo implements PositionRepository using MongoDB.
type MongoPositionRepo struct {
	coll *mongo.Collection
}

// NewMongoPositionRepo creates a new instance of PositionRepository using MongoDB.
func NewMongoPositionRepo() PositionRepository {
	coll := database.MongoClient.Database(database.DatabaseName).Collection("positions")
	repo := &MongoPositionRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoPositionRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "pda", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "owner", Value: 1}}},
		{Keys: bson.D{{Key: "vault_pda", Value: 1}}},
		{Keys: bson.D{{Key: "owner", Value: 1}, {Key: "vault_pda", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}
