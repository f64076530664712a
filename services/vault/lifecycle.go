// File: services/vault/lifecycle.go
package vault

import (
	"fmt"

	"receivault/models"
)

// allowedTransitions mirrors the on-chain state machine. The program is
// the source of truth; validating here just fails bad admin requests
// before a transaction is built.
var allowedTransitions = map[models.VaultStatus][]models.VaultStatus{
	models.VaultStatusFunding: {models.VaultStatusActive, models.VaultStatusCanceled},
	models.VaultStatusActive:  {models.VaultStatusMatured},
	models.VaultStatusMatured: {models.VaultStatusClosed},
	// Canceled vaults can be closed once all deposits are refunded.
	models.VaultStatusCanceled: {models.VaultStatusClosed},
}

// CanTransition reports whether a vault may move from one lifecycle
// state to another.
func CanTransition(from, to models.VaultStatus) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func (s *DefaultVaultService) requireTransition(pda string, to models.VaultStatus) (*models.Vault, error) {
	v, err := s.Repo.GetByPDA(pda)
	if err != nil {
		return nil, fmt.Errorf("vault %s not found: %w", pda, err)
	}
	if !CanTransition(v.Status, to) {
		return nil, NewLifecycleError(fmt.Sprintf("vault %s is %s and cannot move to %s", pda, v.Status, to))
	}
	return v, nil
}
