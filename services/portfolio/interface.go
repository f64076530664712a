package portfolio

import (
	"context"

	"receivault/models"
)

// PositionView is a position joined with the vault fields the portfolio
// page renders alongside it.
type PositionView struct {
	models.Position
	VaultName   string             `json:"vaultName"`
	VaultStatus models.VaultStatus `json:"vaultStatus"`
	Claimable   uint64             `json:"claimable"`
}

// PortfolioService exposes per-wallet position reads and the
// wallet-facing mutations (deposit, claim).
type PortfolioService interface {
	// Positions returns a page of the wallet's positions with vault context.
	Positions(ctx context.Context, wallet string, cursor string, limit int) (*models.Page[PositionView], error)
	// Summary aggregates the wallet's positions.
	Summary(ctx context.Context, wallet string) (*models.PortfolioSummary, error)

	// Deposit builds an unsigned deposit transaction for the wallet to sign.
	Deposit(ctx context.Context, wallet, vaultPDA string, amount uint64) (*models.UnsignedTx, error)
	// Claim builds an unsigned claim transaction for the wallet to sign.
	Claim(ctx context.Context, wallet, vaultPDA string) (*models.UnsignedTx, error)

	// SubmitSigned broadcasts a signed deposit/claim transaction, records
	// activity and schedules cache invalidation.
	SubmitSigned(ctx context.Context, vaultPDA string, kind models.ActivityKind, amount uint64, signedTx string) (*models.TxReceipt, error)
}
