package models

import "time"

// VaultStatus is the lifecycle state of a vault, mirroring the on-chain enum.
type VaultStatus string

const (
	VaultStatusFunding  VaultStatus = "Funding"
	VaultStatusActive   VaultStatus = "Active"
	VaultStatusMatured  VaultStatus = "Matured"
	VaultStatusCanceled VaultStatus = "Canceled"
	VaultStatusClosed   VaultStatus = "Closed"
)

// Valid reports whether s is a known lifecycle state.
func (s VaultStatus) Valid() bool {
	switch s {
	case VaultStatusFunding, VaultStatusActive, VaultStatusMatured, VaultStatusCanceled, VaultStatusClosed:
		return true
	}
	return false
}

// Vault represents a tokenized receivables-financing pool as served by the API.
// Integer amounts are token base units; decimals come from the vault's mint.
type Vault struct {
	PDA             string      `bson:"pda" json:"pda"`                             // Vault account address (program derived)
	Name            string      `bson:"name" json:"name"`                           // Display name, e.g. "Q3 Logistics Receivables"
	Originator      string      `bson:"originator" json:"originator"`               // Receivables originator
	Authority       string      `bson:"authority" json:"authority"`                 // Admin wallet controlling lifecycle transitions
	TokenMint       string      `bson:"token_mint" json:"tokenMint"`                // Deposit token mint (USDC)
	TokenDecimals   uint8       `bson:"token_decimals" json:"tokenDecimals"`        // Mint decimals, used for display conversion
	Status          VaultStatus `bson:"status" json:"status"`                       // Funding | Active | Matured | Canceled | Closed
	FundingTarget   uint64      `bson:"funding_target" json:"fundingTarget"`        // Base units required to activate
	TotalDeposited  uint64      `bson:"total_deposited" json:"totalDeposited"`      // Base units raised so far
	DepositorCount  uint32      `bson:"depositor_count" json:"depositorCount"`      // Open positions against this vault
	AprBps          uint16      `bson:"apr_bps" json:"aprBps"`                      // Advertised APR in basis points
	PayoutRatioBps  uint16      `bson:"payout_ratio_bps" json:"payoutRatioBps"`     // Realized payout per deposited unit, set at maturity
	TenorDays       uint16      `bson:"tenor_days" json:"tenorDays"`                // Days from activation to maturity
	FundingDeadline time.Time   `bson:"funding_deadline" json:"fundingDeadline"`    // Past this, an unfunded vault cancels
	MaturesAt       time.Time   `bson:"matures_at,omitempty" json:"maturesAt"`      // Set when the vault activates
	Slot            uint64      `bson:"slot" json:"slot"`                           // Slot of the reconciled account state
	CreatedAt       time.Time   `bson:"created_at" json:"createdAt"`
	UpdatedAt       time.Time   `bson:"updated_at" json:"updatedAt"`
}

// FundingProgress returns raised/target as a ratio in [0,1]; a zero
// target reports 0 rather than dividing by zero.
func (v *Vault) FundingProgress() float64 {
	if v.FundingTarget == 0 {
		return 0
	}
	p := float64(v.TotalDeposited) / float64(v.FundingTarget)
	if p > 1 {
		p = 1
	}
	return p
}
