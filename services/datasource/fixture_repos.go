package datasource

import (
	"fmt"

	"receivault/models"
)

// FixtureVaultRepo implements vaultRepo.VaultRepository over the demo
// data set.
type FixtureVaultRepo struct {
	store *fixtureStore
}

func NewFixtureVaultRepo() *FixtureVaultRepo {
	return &FixtureVaultRepo{store: getStore()}
}

func (r *FixtureVaultRepo) GetByPDA(pda string) (*models.Vault, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	for i := range r.store.vaults {
		if r.store.vaults[i].PDA == pda {
			v := r.store.vaults[i]
			return &v, nil
		}
	}
	return nil, fmt.Errorf("vault not found")
}

func (r *FixtureVaultRepo) List(status models.VaultStatus, cursor string, limit int) ([]models.Vault, string, int64, error) {
	offset, err := decodeOffset(cursor)
	if err != nil {
		return nil, "", 0, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	filtered := make([]models.Vault, 0, len(r.store.vaults))
	for _, v := range r.store.vaults {
		if status == "" || v.Status == status {
			filtered = append(filtered, v)
		}
	}
	total := int64(len(filtered))
	if offset >= len(filtered) {
		return []models.Vault{}, "", total, nil
	}
	end, next := paginate(len(filtered), offset, limit)
	return filtered[offset:end], next, total, nil
}

func (r *FixtureVaultRepo) ListAll() ([]models.Vault, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	out := make([]models.Vault, len(r.store.vaults))
	copy(out, r.store.vaults)
	return out, nil
}

func (r *FixtureVaultRepo) UpsertByPDA(vault *models.Vault) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for i := range r.store.vaults {
		if r.store.vaults[i].PDA == vault.PDA {
			r.store.vaults[i] = *vault
			return nil
		}
	}
	r.store.vaults = append([]models.Vault{*vault}, r.store.vaults...)
	return nil
}

func (r *FixtureVaultRepo) Delete(pda string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for i := range r.store.vaults {
		if r.store.vaults[i].PDA == pda {
			r.store.vaults = append(r.store.vaults[:i], r.store.vaults[i+1:]...)
			return nil
		}
	}
	return nil
}

// FixturePositionRepo implements positionRepo.PositionRepository over
// the demo data set.
type FixturePositionRepo struct {
	store *fixtureStore
}

func NewFixturePositionRepo() *FixturePositionRepo {
	return &FixturePositionRepo{store: getStore()}
}

func (r *FixturePositionRepo) GetByPDA(pda string) (*models.Position, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	for i := range r.store.positions {
		if r.store.positions[i].PDA == pda {
			p := r.store.positions[i]
			return &p, nil
		}
	}
	return nil, fmt.Errorf("position not found")
}

func (r *FixturePositionRepo) ListByOwner(owner string, cursor string, limit int) ([]models.Position, string, int64, error) {
	offset, err := decodeOffset(cursor)
	if err != nil {
		return nil, "", 0, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	filtered := make([]models.Position, 0, 8)
	for _, p := range r.store.positions {
		if p.Owner == owner {
			filtered = append(filtered, p)
		}
	}
	total := int64(len(filtered))
	if offset >= len(filtered) {
		return []models.Position{}, "", total, nil
	}
	end, next := paginate(len(filtered), offset, limit)
	return filtered[offset:end], next, total, nil
}

func (r *FixturePositionRepo) ListByVault(vaultPDA string) ([]models.Position, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	out := make([]models.Position, 0, 8)
	for _, p := range r.store.positions {
		if p.VaultPDA == vaultPDA {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *FixturePositionRepo) UpsertByPDA(position *models.Position) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for i := range r.store.positions {
		if r.store.positions[i].PDA == position.PDA {
			r.store.positions[i] = *position
			return nil
		}
	}
	r.store.positions = append([]models.Position{*position}, r.store.positions...)
	return nil
}

func (r *FixturePositionRepo) Delete(pda string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for i := range r.store.positions {
		if r.store.positions[i].PDA == pda {
			r.store.positions = append(r.store.positions[:i], r.store.positions[i+1:]...)
			return nil
		}
	}
	return nil
}

// FixtureActivityRepo implements activityRepo.ActivityRepository over
// the demo data set.
type FixtureActivityRepo struct {
	store *fixtureStore
}

func NewFixtureActivityRepo() *FixtureActivityRepo {
	return &FixtureActivityRepo{store: getStore()}
}

func (r *FixtureActivityRepo) Record(event *models.ActivityEvent) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, e := range r.store.activity {
		if e.Signature == event.Signature {
			return nil
		}
	}
	r.store.activity = append([]models.ActivityEvent{*event}, r.store.activity...)
	return nil
}

func (r *FixtureActivityRepo) List(vaultPDA, wallet string, cursor string, limit int) ([]models.ActivityEvent, string, int64, error) {
	offset, err := decodeOffset(cursor)
	if err != nil {
		return nil, "", 0, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	filtered := make([]models.ActivityEvent, 0, len(r.store.activity))
	for _, e := range r.store.activity {
		if vaultPDA != "" && e.VaultPDA != vaultPDA {
			continue
		}
		if wallet != "" && e.Wallet != wallet {
			continue
		}
		filtered = append(filtered, e)
	}
	total := int64(len(filtered))
	if offset >= len(filtered) {
		return []models.ActivityEvent{}, "", total, nil
	}
	end, next := paginate(len(filtered), offset, limit)
	return filtered[offset:end], next, total, nil
}

// FixtureCollateralRepo implements collateralRepo.CollateralRepository
// over the demo data set.
type FixtureCollateralRepo struct {
	store *fixtureStore
}

func NewFixtureCollateralRepo() *FixtureCollateralRepo {
	return &FixtureCollateralRepo{store: getStore()}
}

func (r *FixtureCollateralRepo) ListByVault(vaultPDA string) ([]models.CollateralEntry, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	out := make([]models.CollateralEntry, 0, 4)
	for _, e := range r.store.collateral {
		if e.VaultPDA == vaultPDA {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *FixtureCollateralRepo) Upsert(entry *models.CollateralEntry) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for i := range r.store.collateral {
		if r.store.collateral[i].ID == entry.ID {
			r.store.collateral[i] = *entry
			return nil
		}
	}
	r.store.collateral = append(r.store.collateral, *entry)
	return nil
}

func (r *FixtureCollateralRepo) Delete(id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for i := range r.store.collateral {
		if r.store.collateral[i].ID == id {
			r.store.collateral = append(r.store.collateral[:i], r.store.collateral[i+1:]...)
			return nil
		}
	}
	return nil
}
