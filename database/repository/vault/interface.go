package vaultRepo

import (
	"receivault/models"
)

// VaultRepository defines methods for vault data access.
type VaultRepository interface {
	// GetByPDA retrieves a vault by its program derived address.
	GetByPDA(pda string) (*models.Vault, error)
	// List retrieves a page of vaults, optionally filtered by status,
	// newest first. Returns the page items, the next cursor (empty when
	// exhausted) and the total count for the filter.
	List(status models.VaultStatus, cursor string, limit int) ([]models.Vault, string, int64, error)
	// ListAll retrieves every vault without pagination (admin/export use).
	ListAll() ([]models.Vault, error)
	// UpsertByPDA writes reconciled chain state for a vault, inserting
	// on first sight.
	UpsertByPDA(vault *models.Vault) error
	// Delete removes a vault record by PDA (closed vaults pruned by admin).
	Delete(pda string) error
}
