package vault

import (
	"testing"

	"receivault/models"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	// Allowed paths through the lifecycle.
	assert.True(t, CanTransition(models.VaultStatusFunding, models.VaultStatusActive))
	assert.True(t, CanTransition(models.VaultStatusFunding, models.VaultStatusCanceled))
	assert.True(t, CanTransition(models.VaultStatusActive, models.VaultStatusMatured))
	assert.True(t, CanTransition(models.VaultStatusMatured, models.VaultStatusClosed))
	assert.True(t, CanTransition(models.VaultStatusCanceled, models.VaultStatusClosed))

	// Everything else is rejected.
	assert.False(t, CanTransition(models.VaultStatusFunding, models.VaultStatusMatured))
	assert.False(t, CanTransition(models.VaultStatusActive, models.VaultStatusFunding))
	assert.False(t, CanTransition(models.VaultStatusActive, models.VaultStatusClosed))
	assert.False(t, CanTransition(models.VaultStatusMatured, models.VaultStatusActive))
	assert.False(t, CanTransition(models.VaultStatusClosed, models.VaultStatusFunding))
	assert.False(t, CanTransition(models.VaultStatusClosed, models.VaultStatusClosed))
}
