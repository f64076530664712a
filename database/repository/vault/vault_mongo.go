package vaultRepo

import (
	"context"
	"fmt"
	"time"

	"receivault/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoVaultRepo implements VaultRepository using MongoDB.
type MongoVaultRepo struct {
	coll *mongo.Collection
}

// NewMongoVaultRepo creates a new instance of VaultRepository using MongoDB.
func NewMongoVaultRepo() VaultRepository {
	coll := database.MongoClient.Database(database.DatabaseName).Collection("vaults")
	repo := &MongoVaultRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

// newContext creates a context with the given timeout.
func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// ensureIndexes creates indexes for fields that are frequently used in queries.
func (r *MongoVaultRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "pda", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "funding_deadline", Value: 1}}},
		{Keys: bson.D{{Key: "matures_at", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}
