package sync

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"receivault/models"
	"receivault/services/chain"
)

type pruneVaultRepo struct {
	vaults  []models.Vault
	deleted []string
}

func (r *pruneVaultRepo) GetByPDA(pda string) (*models.Vault, error) {
	for i := range r.vaults {
		if r.vaults[i].PDA == pda {
			return &r.vaults[i], nil
		}
	}
	return nil, fmt.Errorf("vault %s not found", pda)
}

func (r *pruneVaultRepo) List(models.VaultStatus, string, int) ([]models.Vault, string, int64, error) {
	return nil, "", 0, nil
}

func (r *pruneVaultRepo) ListAll() ([]models.Vault, error) { return r.vaults, nil }

func (r *pruneVaultRepo) UpsertByPDA(*models.Vault) error { return nil }

func (r *pruneVaultRepo) Delete(pda string) error {
	r.deleted = append(r.deleted, pda)
	return nil
}

type prunePositionRepo struct {
	positions []models.Position
	deleted   []string
}

func (r *prunePositionRepo) GetByPDA(pda string) (*models.Position, error) {
	return nil, fmt.Errorf("position %s not found", pda)
}

func (r *prunePositionRepo) ListByOwner(string, string, int) ([]models.Position, string, int64, error) {
	return nil, "", 0, nil
}

func (r *prunePositionRepo) ListByVault(vaultPDA string) ([]models.Position, error) {
	var out []models.Position
	for _, p := range r.positions {
		if p.VaultPDA == vaultPDA {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *prunePositionRepo) UpsertByPDA(*models.Position) error { return nil }

func (r *prunePositionRepo) Delete(pda string) error {
	r.deleted = append(r.deleted, pda)
	return nil
}

func TestPruneMissingDropsVanishedVaults(t *testing.T) {
	vaults := &pruneVaultRepo{vaults: []models.Vault{
		{PDA: "vault-live"},
		{PDA: "vault-closed"},
	}}
	positions := &prunePositionRepo{positions: []models.Position{
		{PDA: "pos-live", VaultPDA: "vault-live"},
		{PDA: "pos-closed-1", VaultPDA: "vault-closed"},
		{PDA: "pos-closed-2", VaultPDA: "vault-closed"},
	}}

	ix := &Indexer{
		Reconciler:   chain.NewReconciler(nil),
		VaultRepo:    vaults,
		PositionRepo: positions,
		Logger:       zap.NewNop(),
	}
	ix.pruneMissing(context.Background(), map[string]struct{}{
		"vault-live": {},
	})

	assert.Equal(t, []string{"vault-closed"}, vaults.deleted)
	assert.ElementsMatch(t, []string{"pos-closed-1", "pos-closed-2"}, positions.deleted)
}

func TestPruneMissingKeepsLiveVaults(t *testing.T) {
	vaults := &pruneVaultRepo{vaults: []models.Vault{{PDA: "vault-live"}}}
	positions := &prunePositionRepo{}

	ix := &Indexer{
		Reconciler:   chain.NewReconciler(nil),
		VaultRepo:    vaults,
		PositionRepo: positions,
		Logger:       zap.NewNop(),
	}
	ix.pruneMissing(context.Background(), map[string]struct{}{
		"vault-live": {},
	})

	assert.Empty(t, vaults.deleted)
	assert.Empty(t, positions.deleted)
}
