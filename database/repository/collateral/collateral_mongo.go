package collateralRepo

import (
	"context"
	"fmt"
	"time"

	"receivault/database"
	"receivault/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoCollateralRepo implements CollateralRepository using MongoDB.
type MongoCollateralRepo struct {
	coll *mongo.Collection
}

// NewMongoCollateralRepo creates a new instance of CollateralRepository using MongoDB.
func NewMongoCollateralRepo() CollateralRepository {
	coll := database.MongoClient.Database(database.DatabaseName).Collection("collateral")
	repo := &MongoCollateralRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoCollateralRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "vault_pda", Value: 1}}},
		{Keys: bson.D{{Key: "due_date", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// ListByVault retrieves all receivable entries backing a vault.
func (r *MongoCollateralRepo) ListByVault(vaultPDA string) ([]models.CollateralEntry, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "due_date", Value: 1}})
	cur, err := r.coll.Find(ctx, bson.M{"vault_pda": vaultPDA}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list collateral for vault %s: %w", vaultPDA, err)
	}
	defer cur.Close(ctx)

	var entries []models.CollateralEntry
	for cur.Next(ctx) {
		var e models.CollateralEntry
		if err := cur.Decode(&e); err != nil {
			return nil, fmt.Errorf("failed to decode collateral entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// Upsert writes a receivable entry keyed by its ID.
func (r *MongoCollateralRepo) Upsert(entry *models.CollateralEntry) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	entry.UpdatedAt = now
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = now
	}

	filter := bson.M{"id": entry.ID}
	update := bson.M{"$set": entry}
	opts := options.Update().SetUpsert(true)
	if _, err := r.coll.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("failed to upsert collateral entry %s: %w", entry.ID, err)
	}
	return nil
}

// Delete removes a receivable entry by ID.
func (r *MongoCollateralRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete collateral entry %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("collateral entry %s not found", id)
	}
	return nil
}
