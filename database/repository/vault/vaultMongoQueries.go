// File: database/repository/vault/vaultMongoQueries.go
package vaultRepo

import (
	"fmt"
	"time"

	"receivault/database/repository"
	"receivault/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetByPDA retrieves a vault by its program derived address.
func (r *MongoVaultRepo) GetByPDA(pda string) (*models.Vault, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var vault models.Vault
	if err := r.coll.FindOne(ctx, bson.M{"pda": pda}).Decode(&vault); err != nil {
		return nil, fmt.Errorf("failed to fetch vault %s: %w", pda, err)
	}
	return &vault, nil
}

// List retrieves a page of vaults, optionally filtered by status, newest first.
func (r *MongoVaultRepo) List(status models.VaultStatus, cursor string, limit int) ([]models.Vault, string, int64, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, "", 0, fmt.Errorf("failed to count vaults: %w", err)
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
		return nil, "", 0, fmt.Errorf("failed to list vaults: %w", err)
	}
	defer cur.Close(ctx)

	var vaults []models.Vault
	var lastID primitive.ObjectID
	for cur.Next(ctx) {
		var row struct {
			ID           primitive.ObjectID `bson:"_id"`
			models.Vault `bson:",inline"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, "", 0, fmt.Errorf("failed to decode vault: %w", err)
		}
		vaults = append(vaults, row.Vault)
		lastID = row.ID
	}
	if err := cur.Err(); err != nil {
		return nil, "", 0, fmt.Errorf("cursor error: %w", err)
	}

	next := ""
	if len(vaults) == limit && !lastID.IsZero() {
		next = repository.EncodeCursor(lastID)
	}
	return vaults, next, total, nil
}

// ListAll retrieves every vault without pagination.
func (r *MongoVaultRepo) ListAll() ([]models.Vault, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	cur, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve vaults: %w", err)
	}
	defer cur.Close(ctx)

	var vaults []models.Vault
	for cur.Next(ctx) {
		var v models.Vault
		if err := cur.Decode(&v); err != nil {
			return nil, fmt.Errorf("failed to decode vault: %w", err)
		}
		vaults = append(vaults, v)
	}
	return vaults, nil
}
