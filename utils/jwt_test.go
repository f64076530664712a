package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenSubjectRoundTrip(t *testing.T) {
	token, err := GenerateToken("admin@receivault.io", "admin@receivault.io", AuthCacheTTL)
	require.NoError(t, err)

	sub, err := ExtractIDFromToken(token)
	require.NoError(t, err)
	assert.Equal(t, "admin@receivault.io", sub)
}

func TestExtractIDRejectsTamperedToken(t *testing.T) {
	token, err := GenerateToken("admin@receivault.io", "admin@receivault.io", time.Hour)
	require.NoError(t, err)

	_, err = ExtractIDFromToken(token + "x")
	assert.Error(t, err)
}

func TestHashTokenIsStable(t *testing.T) {
	assert.Equal(t, HashToken("abc"), HashToken("abc"))
	assert.NotEqual(t, HashToken("abc"), HashToken("abd"))
	assert.Len(t, HashToken("abc"), 64)
}
