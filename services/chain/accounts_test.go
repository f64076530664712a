package chain

import (
	"crypto/sha256"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountDiscriminators(t *testing.T) {
	want := sha256.Sum256([]byte("account:Vault"))
	assert.Equal(t, want[:8], VaultDiscriminator[:])

	assert.NotEqual(t, VaultDiscriminator, PositionDiscriminator)
}

func TestDecodeRejectsWrongDiscriminator(t *testing.T) {
	data := make([]byte, 64)
	copy(data, PositionDiscriminator[:])

	_, err := DecodeVaultAccount(data)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a vault account")

	_, err = DecodePositionAccount([]byte{0x01})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "too short")
}

func TestStatusFromChain(t *testing.T) {
	assert.Equal(t, "Funding", string(statusFromChain(0)))
	assert.Equal(t, "Active", string(statusFromChain(1)))
	assert.Equal(t, "Matured", string(statusFromChain(2)))
	assert.Equal(t, "Canceled", string(statusFromChain(3)))
	assert.Equal(t, "Closed", string(statusFromChain(4)))
	assert.Equal(t, "unknown(9)", string(statusFromChain(9)))
}
