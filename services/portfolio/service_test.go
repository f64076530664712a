package portfolio

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"receivault/models"
)

type stubVaultRepo struct {
	vaults map[string]*models.Vault
}

func (s *stubVaultRepo) GetByPDA(pda string) (*models.Vault, error) {
	v, ok := s.vaults[pda]
	if !ok {
		return nil, fmt.Errorf("vault %s not found", pda)
	}
	return v, nil
}

func (s *stubVaultRepo) List(models.VaultStatus, string, int) ([]models.Vault, string, int64, error) {
	return nil, "", 0, nil
}

func (s *stubVaultRepo) ListAll() ([]models.Vault, error) { return nil, nil }

func (s *stubVaultRepo) UpsertByPDA(*models.Vault) error { return nil }

func (s *stubVaultRepo) Delete(string) error { return nil }

type stubPositionRepo struct {
	positions []models.Position
}

func (s *stubPositionRepo) GetByPDA(pda string) (*models.Position, error) {
	for i := range s.positions {
		if s.positions[i].PDA == pda {
			return &s.positions[i], nil
		}
	}
	return nil, fmt.Errorf("position %s not found", pda)
}

func (s *stubPositionRepo) ListByOwner(owner string, _ string, _ int) ([]models.Position, string, int64, error) {
	var out []models.Position
	for _, p := range s.positions {
		if p.Owner == owner {
			out = append(out, p)
		}
	}
	return out, "", int64(len(out)), nil
}

func (s *stubPositionRepo) ListByVault(vaultPDA string) ([]models.Position, error) {
	var out []models.Position
	for _, p := range s.positions {
		if p.VaultPDA == vaultPDA {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *stubPositionRepo) UpsertByPDA(*models.Position) error { return nil }

func (s *stubPositionRepo) Delete(string) error { return nil }

func TestSummaryClaimedUsesPayoutRatio(t *testing.T) {
	vaults := &stubVaultRepo{vaults: map[string]*models.Vault{
		"vault-matured": {
			PDA:            "vault-matured",
			Status:         models.VaultStatusMatured,
			PayoutRatioBps: 10450,
		},
	}}
	positions := &stubPositionRepo{positions: []models.Position{
		{
			PDA:       "pos-claimed",
			VaultPDA:  "vault-matured",
			Owner:     "wallet-1",
			Deposited: 1_000_000,
			Claimed:   true,
		},
		{
			PDA:       "pos-open",
			VaultPDA:  "vault-matured",
			Owner:     "wallet-1",
			Deposited: 2_000_000,
		},
	}}

	svc := &DefaultPortfolioService{Repo: positions, VaultRepo: vaults}
	summary, err := svc.Summary(context.Background(), "wallet-1")
	require.NoError(t, err)

	assert.Equal(t, 2, summary.PositionCount)
	assert.Equal(t, uint64(3_000_000), summary.TotalDeposited)
	// The claimed position received deposited * 104.5%, not its deposit.
	assert.Equal(t, uint64(1_045_000), summary.TotalClaimed)
	assert.Equal(t, uint64(2_090_000), summary.TotalClaimable)
}

func TestSummaryClaimedFallsBackToDeposit(t *testing.T) {
	// A claimed position whose vault record is gone still counts for at
	// least its deposit.
	positions := &stubPositionRepo{positions: []models.Position{
		{
			PDA:       "pos-orphan",
			VaultPDA:  "vault-pruned",
			Owner:     "wallet-2",
			Deposited: 500_000,
			Claimed:   true,
		},
	}}

	svc := &DefaultPortfolioService{Repo: positions, VaultRepo: &stubVaultRepo{vaults: map[string]*models.Vault{}}}
	summary, err := svc.Summary(context.Background(), "wallet-2")
	require.NoError(t, err)

	assert.Equal(t, uint64(500_000), summary.TotalClaimed)
	assert.Zero(t, summary.TotalClaimable)
}
