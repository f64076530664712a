package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVaultStatusValid(t *testing.T) {
	assert.True(t, VaultStatusFunding.Valid())
	assert.True(t, VaultStatusClosed.Valid())
	assert.False(t, VaultStatus("").Valid())
	assert.False(t, VaultStatus("funding").Valid(), "status values are case sensitive")
}

func TestFundingProgress(t *testing.T) {
	v := &Vault{FundingTarget: 1_000_000, TotalDeposited: 620_000}
	assert.InDelta(t, 0.62, v.FundingProgress(), 1e-9)

	v.TotalDeposited = 1_500_000
	assert.Equal(t, 1.0, v.FundingProgress(), "progress clamps at 1")

	v = &Vault{FundingTarget: 0, TotalDeposited: 10}
	assert.Equal(t, 0.0, v.FundingProgress(), "zero target reports zero")
}

func TestClaimableBaseUnits(t *testing.T) {
	v := &Vault{Status: VaultStatusMatured, PayoutRatioBps: 10450}
	p := &Position{Deposited: 1_000_000}
	assert.Equal(t, uint64(1_045_000), p.ClaimableBaseUnits(v))

	// Small deposits still accrue; the multiply happens before the divide.
	p = &Position{Deposited: 3}
	assert.Equal(t, uint64(3), p.ClaimableBaseUnits(v))

	// Nothing is claimable before maturity or after a claim.
	p = &Position{Deposited: 1_000_000}
	active := &Vault{Status: VaultStatusActive, PayoutRatioBps: 10450}
	assert.Equal(t, uint64(0), p.ClaimableBaseUnits(active))

	p.Claimed = true
	assert.Equal(t, uint64(0), p.ClaimableBaseUnits(v))

	// Large deposits must not overflow the intermediate product.
	huge := &Position{Deposited: 10_000_000_000_000_000}
	assert.Equal(t, uint64(10_450_000_000_000_000), huge.ClaimableBaseUnits(v))
}
