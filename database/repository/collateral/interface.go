package collateralRepo

import (
	"receivault/models"
)

// CollateralRepository defines methods for collateral (receivable) data access.
type CollateralRepository interface {
	// ListByVault retrieves all receivable entries backing a vault.
	ListByVault(vaultPDA string) ([]models.CollateralEntry, error)
	// Upsert writes a receivable entry keyed by its ID.
	Upsert(entry *models.CollateralEntry) error
	// Delete removes a receivable entry by ID.
	Delete(id string) error
}
