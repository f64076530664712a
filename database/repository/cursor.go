// File: database/repository/cursor.go
package repository

import (
	"encoding/base64"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// List endpoints paginate with an opaque cursor over the Mongo _id.
// Documents are returned newest-first; the cursor names the last _id the
// caller has seen and the next page filters _id strictly below it.

// EncodeCursor turns an ObjectID into an opaque page cursor.
func EncodeCursor(id primitive.ObjectID) string {
	return base64.RawURLEncoding.EncodeToString([]byte(id.Hex()))
}

// DecodeCursor parses an opaque page cursor back into an ObjectID.
// An empty cursor means "first page" and returns the zero ObjectID.
func DecodeCursor(cursor string) (primitive.ObjectID, error) {
	if cursor == "" {
		return primitive.NilObjectID, nil
	}
	raw, err := base64.RawURLEncoding.DecodeString(cursor)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("malformed cursor: %w", err)
	}
	id, err := primitive.ObjectIDFromHex(string(raw))
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("malformed cursor: %w", err)
	}
	return id, nil
}
