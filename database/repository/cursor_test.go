package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCursorRoundTrip(t *testing.T) {
	id := primitive.NewObjectID()
	cursor := EncodeCursor(id)
	assert.NotEmpty(t, cursor)

	decoded, err := DecodeCursor(cursor)
	require.NoError(t, err)
	assert.Equal(t, id, decoded)
}

func TestDecodeCursorEmptyMeansFirstPage(t *testing.T) {
	decoded, err := DecodeCursor("")
	require.NoError(t, err)
	assert.Equal(t, primitive.NilObjectID, decoded)
}

func TestDecodeCursorMalformed(t *testing.T) {
	_, err := DecodeCursor("%%%not-base64%%%")
	assert.Error(t, err)

	// Valid base64 but not an ObjectID hex.
	_, err = DecodeCursor("bm90LWFuLWlk")
	assert.Error(t, err)
}
