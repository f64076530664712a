package models

import (
	"math/big"
	"time"
)

// Position represents a wallet's deposit record against a specific vault.
type Position struct {
	PDA         string    `bson:"pda" json:"pda"`                   // Position account address (program derived)
	VaultPDA    string    `bson:"vault_pda" json:"vaultPda"`        // Vault this position belongs to
	Owner       string    `bson:"owner" json:"owner"`               // Depositor wallet
	Deposited   uint64    `bson:"deposited" json:"deposited"`       // Base units deposited
	ShareUnits  uint64    `bson:"share_units" json:"shareUnits"`    // Vault share tokens held
	Claimed     bool      `bson:"claimed" json:"claimed"`           // Whether the payout was claimed
	ClaimedAt   time.Time `bson:"claimed_at,omitempty" json:"claimedAt,omitempty"`
	DepositedAt time.Time `bson:"deposited_at" json:"depositedAt"`
	Slot        uint64    `bson:"slot" json:"slot"` // Slot of the reconciled account state
	UpdatedAt   time.Time `bson:"updated_at" json:"updatedAt"`
}

// PayoutBaseUnits is the amount the position pays out at claim time:
// deposited scaled by the vault's payout ratio.
func (p *Position) PayoutBaseUnits(v *Vault) uint64 {
	// payout = deposited * ratio / 10000, in base units. Widened to
	// avoid overflow for large deposits.
	out := new(big.Int).SetUint64(p.Deposited)
	out.Mul(out, big.NewInt(int64(v.PayoutRatioBps)))
	out.Div(out, big.NewInt(10000))
	return out.Uint64()
}

// ClaimableBaseUnits computes the payout still owed to this position.
// Zero before maturity and after a claim.
func (p *Position) ClaimableBaseUnits(v *Vault) uint64 {
	if p.Claimed || v.Status != VaultStatusMatured {
		return 0
	}
	return p.PayoutBaseUnits(v)
}

// PortfolioSummary aggregates a wallet's positions for the portfolio view.
type PortfolioSummary struct {
	Wallet         string `json:"wallet"`
	PositionCount  int    `json:"positionCount"`
	TotalDeposited uint64 `json:"totalDeposited"`
	TotalClaimable uint64 `json:"totalClaimable"`
	TotalClaimed   uint64 `json:"totalClaimed"`
}
