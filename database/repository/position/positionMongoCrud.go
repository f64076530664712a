// File: database/repository/position/positionMongoCrud.go
package positionRepo

import (
	"fmt"
	"time"

	"receivault/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// UpsertByPDA writes reconciled chain state for a position.
func (r *MongoPositionRepo) UpsertByPDA(position *models.Position) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	position.UpdatedAt = time.Now()

	filter := bson.M{"pda": position.PDA}
	update := bson.M{"$set": position}

	opts := options.Update().SetUpsert(true)
	if _, err := r.coll.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("failed to upsert position %s: %w", position.PDA, err)
	}
	return nil
}

// Delete removes a position record by PDA.
func (r *MongoPositionRepo) Delete(pda string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"pda": pda})
	if err != nil {
		return fmt.Errorf("failed to delete position %s: %w", pda, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("position %s not found", pda)
	}
	return nil
}
