// File: database/repository/position/positionMongoQueries.go
package positionRepo

import (
	"fmt"
	"time"

	"receivault/database/repository"
	"receivault/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetByPDA retrieves a position by its program derived address.
func (r *MongoPositionRepo) GetByPDA(pda string) (*models.Position, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var position models.Position
	if err := r.coll.FindOne(ctx, bson.M{"pda": pda}).Decode(&position); err != nil {
		return nil, fmt.Errorf("failed to fetch position %s: %w", pda, err)
	}
	return &position, nil
}

// ListByOwner retrieves a page of positions for a wallet, newest first.
func (r *MongoPositionRepo) ListByOwner(owner string, cursor string, limit int) ([]models.Position, string, int64, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	filter := bson.M{"owner": owner}

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, "", 0, fmt.Errorf("failed to count positions: %w", err)
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
		return nil, "", 0, fmt.Errorf("failed to list positions for %s: %w", owner, err)
	}
	defer cur.Close(ctx)

	var positions []models.Position
	var lastID primitive.ObjectID
	for cur.Next(ctx) {
		var row struct {
			ID              primitive.ObjectID `bson:"_id"`
			models.Position `bson:",inline"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, "", 0, fmt.Errorf("failed to decode position: %w", err)
		}
		positions = append(positions, row.Position)
		lastID = row.ID
	}
	if err := cur.Err(); err != nil {
		return nil, "", 0, fmt.Errorf("cursor error: %w", err)
	}

	next := ""
	if len(positions) == limit && !lastID.IsZero() {
		next = repository.EncodeCursor(lastID)
	}
	return positions, next, total, nil
}

// ListByVault retrieves all positions against a vault.
func (r *MongoPositionRepo) ListByVault(vaultPDA string) ([]models.Position, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	cur, err := r.coll.Find(ctx, bson.M{"vault_pda": vaultPDA})
	if err != nil {
		return nil, fmt.Errorf("failed to list positions for vault %s: %w", vaultPDA, err)
	}
	defer cur.Close(ctx)

	var positions []models.Position
	for cur.Next(ctx) {
		var p models.Position
		if err := cur.Decode(&p); err != nil {
			return nil, fmt.Errorf("failed to decode position: %w", err)
		}
		positions = append(positions, p)
	}
	return positions, nil
}
