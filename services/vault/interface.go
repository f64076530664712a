package vault

import (
	"context"

	"receivault/models"
)

// VaultService exposes vault listing and lifecycle administration.
type VaultService interface {
	// List returns a page of vaults, optionally filtered by status.
	List(ctx context.Context, status models.VaultStatus, cursor string, limit int) (*models.Page[models.Vault], error)
	// Get returns one vault by PDA.
	Get(ctx context.Context, pda string) (*models.Vault, error)

	// Initialize builds an unsigned initialize transaction for the
	// authority wallet and returns it with the derived vault PDA.
	Initialize(ctx context.Context, req InitializeRequest) (*models.UnsignedTx, string, error)
	// FinalizeFunding builds an unsigned finalizeFunding transaction.
	FinalizeFunding(ctx context.Context, pda string) (*models.UnsignedTx, error)
	// MatureVault builds an unsigned matureVault transaction.
	MatureVault(ctx context.Context, pda string, payoutRatioBps uint16) (*models.UnsignedTx, error)
	// CloseVault builds an unsigned closeVault transaction.
	CloseVault(ctx context.Context, pda string) (*models.UnsignedTx, error)

	// SubmitSigned broadcasts a signed lifecycle transaction, records
	// the activity event and schedules cache invalidation.
	SubmitSigned(ctx context.Context, pda string, kind models.ActivityKind, signedTx string) (*models.TxReceipt, error)
}

// InitializeRequest is the admin input for creating a vault.
type InitializeRequest struct {
	Authority       string `json:"authority" binding:"required"`
	Name            string `json:"name" binding:"required"`
	Originator      string `json:"originator" binding:"required"`
	FundingTarget   uint64 `json:"fundingTarget" binding:"required"`
	AprBps          uint16 `json:"aprBps" binding:"required"`
	TenorDays       uint16 `json:"tenorDays" binding:"required"`
	FundingDeadline string `json:"fundingDeadline" binding:"required"` // RFC 3339
}
