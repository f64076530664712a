package transparency

import (
	"context"

	"receivault/models"
)

// TransparencyService builds the collateral report for a vault.
type TransparencyService interface {
	// Report returns the receivable entries backing a vault together
	// with the weighted-average summary figures.
	Report(ctx context.Context, vaultPDA string) (*models.TransparencyReport, error)
	// UpsertEntry writes one receivable entry (admin reporting).
	UpsertEntry(ctx context.Context, entry *models.CollateralEntry) error
	// DeleteEntry removes one receivable entry (admin reporting).
	DeleteEntry(ctx context.Context, id string) error
}
