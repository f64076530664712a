// File: database/repository/vault/vaultMongoCrud.go
package vaultRepo

import (
	"fmt"
	"time"

	"receivault/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// UpsertByPDA writes reconciled chain state for a vault, inserting on first sight.
func (r *MongoVaultRepo) UpsertByPDA(vault *models.Vault) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	vault.UpdatedAt = now
	if vault.CreatedAt.IsZero() {
		vault.CreatedAt = now
	}

	// created_at must not appear in both $set and $setOnInsert.
	setDoc, err := toBsonM(vault)
	if err != nil {
		return err
	}
	delete(setDoc, "created_at")

	filter := bson.M{"pda": vault.PDA}
	update := bson.M{
		"$set":         setDoc,
		"$setOnInsert": bson.M{"created_at": vault.CreatedAt},
	}

	opts := options.Update().SetUpsert(true)
	if _, err := r.coll.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("failed to upsert vault %s: %w", vault.PDA, err)
	}
	return nil
}

// Delete removes a vault record by PDA.
func (r *MongoVaultRepo) Delete(pda string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"pda": pda})
	if err != nil {
		return fmt.Errorf("failed to delete vault %s: %w", pda, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("vault %s not found", pda)
	}
	return nil
}

func toBsonM(v any) (bson.M, error) {
	raw, err := bson.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal document: %w", err)
	}
	var doc bson.M
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal document: %w", err)
	}
	return doc, nil
}
