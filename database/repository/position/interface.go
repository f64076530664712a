package positionRepo

import (
	"receivault/models"
)

// PositionRepository defines methods for position data access.
type PositionRepository interface {
	// GetByPDA retrieves a position by its program derived address.
	GetByPDA(pda string) (*models.Position, error)
	// ListByOwner retrieves a page of positions for a wallet, newest first.
	ListByOwner(owner string, cursor string, limit int) ([]models.Position, string, int64, error)
	// ListByVault retrieves all positions against a vault.
	ListByVault(vaultPDA string) ([]models.Position, error)
	// UpsertByPDA writes reconciled chain state for a position.
	UpsertByPDA(position *models.Position) error
	// Delete removes a position record by PDA.
	Delete(pda string) error
}
