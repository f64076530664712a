package vault

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	activityRepo "receivault/database/repository/activity"
	vaultRepo "receivault/database/repository/vault"
	"receivault/models"
	"receivault/services/chain"
	"receivault/services/datasource"
	"receivault/utils"

	"github.com/gagliardetto/solana-go"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// Invalidator schedules the post-mutation cache invalidation ladder for
// a vault's cached responses.
type Invalidator interface {
	ScheduleInvalidation(vaultPDA string) error
}

// DefaultVaultService implements VaultService over the Mongo store and
// the chain client.
type DefaultVaultService struct {
	Repo          vaultRepo.VaultRepository
	ActivityRepo  activityRepo.ActivityRepository
	Chain         *chain.Client
	Cache         *redis.Client
	Invalidator   Invalidator
	TokenMint     string
	TokenDecimals uint8
}

func (s *DefaultVaultService) listCacheKey(status models.VaultStatus, cursor string, limit int) string {
	return fmt.Sprintf("%slist:%s:%s:%d", utils.VaultCachePrefix, status, cursor, limit)
}

// List returns a page of vaults, read through the Redis cache.
func (s *DefaultVaultService) List(ctx context.Context, status models.VaultStatus, cursor string, limit int) (*models.Page[models.Vault], error) {
	key := s.listCacheKey(status, cursor, limit)
	if s.Cache != nil {
		if raw, err := s.Cache.Get(ctx, key).Result(); err == nil {
			var page models.Page[models.Vault]
			if err := json.Unmarshal([]byte(raw), &page); err == nil {
				return &page, nil
			}
		}
	}

	vaults, next, total, err := s.Repo.List(status, cursor, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list vaults: %w", err)
	}
	page := &models.Page[models.Vault]{
		Items:      vaults,
		NextCursor: next,
		Total:      total,
		Source:     datasource.Label(),
	}

	if s.Cache != nil {
		if raw, err := json.Marshal(page); err == nil {
			s.Cache.Set(ctx, key, raw, utils.ReadCacheTTL)
		}
	}
	return page, nil
}

// Get returns one vault by PDA.
func (s *DefaultVaultService) Get(ctx context.Context, pda string) (*models.Vault, error) {
	v, err := s.Repo.GetByPDA(pda)
	if err != nil {
		return nil, fmt.Errorf("failed to get vault: %w", err)
	}
	return v, nil
}

// Initialize builds an unsigned initialize transaction for the authority
// wallet and returns it with the derived vault PDA.
func (s *DefaultVaultService) Initialize(ctx context.Context, req InitializeRequest) (*models.UnsignedTx, string, error) {
	authority, err := solana.PublicKeyFromBase58(req.Authority)
	if err != nil {
		return nil, "", fmt.Errorf("invalid authority wallet: %w", err)
	}
	mint, err := solana.PublicKeyFromBase58(s.TokenMint)
	if err != nil {
		return nil, "", fmt.Errorf("invalid token mint configured: %w", err)
	}
	deadline, err := time.Parse(time.RFC3339, req.FundingDeadline)
	if err != nil {
		return nil, "", fmt.Errorf("invalid funding deadline: %w", err)
	}
	if !deadline.After(time.Now()) {
		return nil, "", NewLifecycleError("funding deadline must be in the future")
	}

	tx, vaultPDA, err := s.Chain.BuildInitialize(ctx, chain.InitializeParams{
		Authority:       authority,
		TokenMint:       mint,
		Name:            req.Name,
		Originator:      req.Originator,
		FundingTarget:   req.FundingTarget,
		AprBps:          req.AprBps,
		TenorDays:       req.TenorDays,
		FundingDeadline: deadline,
	})
	if err != nil {
		return nil, "", fmt.Errorf("failed to build initialize tx: %w", err)
	}

	unsigned, err := toUnsigned(tx)
	if err != nil {
		return nil, "", err
	}
	return unsigned, vaultPDA.String(), nil
}

// FinalizeFunding builds an unsigned finalizeFunding transaction. The
// program decides between activation and cancellation; we only check
// that the vault is still funding.
func (s *DefaultVaultService) FinalizeFunding(ctx context.Context, pda string) (*models.UnsignedTx, error) {
	v, err := s.requireTransition(pda, models.VaultStatusActive)
	if err != nil {
		return nil, err
	}
	vaultKey, authority, err := vaultKeys(v)
	if err != nil {
		return nil, err
	}
	tx, err := s.Chain.BuildFinalizeFunding(ctx, vaultKey, authority)
	if err != nil {
		return nil, fmt.Errorf("failed to build finalizeFunding tx: %w", err)
	}
	return toUnsigned(tx)
}

// MatureVault builds an unsigned matureVault transaction recording the
// realized payout ratio.
func (s *DefaultVaultService) MatureVault(ctx context.Context, pda string, payoutRatioBps uint16) (*models.UnsignedTx, error) {
	v, err := s.requireTransition(pda, models.VaultStatusMatured)
	if err != nil {
		return nil, err
	}
	vaultKey, authority, err := vaultKeys(v)
	if err != nil {
		return nil, err
	}
	tx, err := s.Chain.BuildMatureVault(ctx, vaultKey, authority, payoutRatioBps)
	if err != nil {
		return nil, fmt.Errorf("failed to build matureVault tx: %w", err)
	}
	return toUnsigned(tx)
}

// CloseVault builds an unsigned closeVault transaction.
func (s *DefaultVaultService) CloseVault(ctx context.Context, pda string) (*models.UnsignedTx, error) {
	v, err := s.requireTransition(pda, models.VaultStatusClosed)
	if err != nil {
		return nil, err
	}
	vaultKey, authority, err := vaultKeys(v)
	if err != nil {
		return nil, err
	}
	tx, err := s.Chain.BuildCloseVault(ctx, vaultKey, authority)
	if err != nil {
		return nil, fmt.Errorf("failed to build closeVault tx: %w", err)
	}
	return toUnsigned(tx)
}

// SubmitSigned broadcasts a signed lifecycle transaction, records the
// activity event and schedules the cache invalidation ladder.
func (s *DefaultVaultService) SubmitSigned(ctx context.Context, pda string, kind models.ActivityKind, signedTx string) (*models.TxReceipt, error) {
	tx, err := chain.DecodeSignedTx(signedTx)
	if err != nil {
		return nil, err
	}

	sig, slot, confirmed, err := s.Chain.SubmitAndConfirm(ctx, tx)
	if err != nil {
		txErr := chain.ClassifyTxError(err)
		return &models.TxReceipt{
			Signature: sig.String(),
			Confirmed: false,
			Message:   txErr.Message,
		}, txErr
	}

	wallet := ""
	if len(tx.Message.AccountKeys) > 0 {
		wallet = tx.Message.AccountKeys[0].String()
	}
	event := &models.ActivityEvent{
		Signature: sig.String(),
		VaultPDA:  pda,
		Wallet:    wallet,
		Kind:      kind,
		Slot:      slot,
		BlockTime: time.Now().UTC(),
	}
	if err := s.ActivityRepo.Record(event); err != nil {
		utils.GetLogger().Warn("failed to record activity", zap.Error(err), zap.String("signature", sig.String()))
	}

	if s.Invalidator != nil {
		if err := s.Invalidator.ScheduleInvalidation(pda); err != nil {
			utils.GetLogger().Warn("failed to schedule invalidation", zap.Error(err), zap.String("vault", pda))
		}
	}

	return &models.TxReceipt{
		Signature: sig.String(),
		Confirmed: confirmed,
		Slot:      slot,
	}, nil
}

func vaultKeys(v *models.Vault) (vaultKey, authority solana.PublicKey, err error) {
	vaultKey, err = solana.PublicKeyFromBase58(v.PDA)
	if err != nil {
		return solana.PublicKey{}, solana.PublicKey{}, fmt.Errorf("invalid vault pda %s: %w", v.PDA, err)
	}
	authority, err = solana.PublicKeyFromBase58(v.Authority)
	if err != nil {
		return solana.PublicKey{}, solana.PublicKey{}, fmt.Errorf("invalid authority %s: %w", v.Authority, err)
	}
	return vaultKey, authority, nil
}

func toUnsigned(tx *solana.Transaction) (*models.UnsignedTx, error) {
	encoded, err := chain.EncodeTx(tx)
	if err != nil {
		return nil, err
	}
	return &models.UnsignedTx{
		TxBase64:        encoded,
		RecentBlockhash: tx.Message.RecentBlockhash.String(),
	}, nil
}
