package portfolio

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	activityRepo "receivault/database/repository/activity"
	positionRepo "receivault/database/repository/position"
	vaultRepo "receivault/database/repository/vault"
	"receivault/models"
	"receivault/services/chain"
	"receivault/services/datasource"
	"receivault/utils"

	"github.com/gagliardetto/solana-go"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// Invalidator schedules the post-mutation cache invalidation ladder.
type Invalidator interface {
	ScheduleInvalidation(vaultPDA string) error
}

// DefaultPortfolioService implements PortfolioService.
type DefaultPortfolioService struct {
	Repo         positionRepo.PositionRepository
	VaultRepo    vaultRepo.VaultRepository
	ActivityRepo activityRepo.ActivityRepository
	Chain        *chain.Client
	Cache        *redis.Client
	Invalidator  Invalidator
}

func positionsCacheKey(wallet, cursor string, limit int) string {
	return fmt.Sprintf("%s%s:%s:%d", utils.PositionCachePrefix, wallet, cursor, limit)
}

// Positions returns a page of the wallet's positions with vault context.
func (s *DefaultPortfolioService) Positions(ctx context.Context, wallet string, cursor string, limit int) (*models.Page[PositionView], error) {
	key := positionsCacheKey(wallet, cursor, limit)
	if s.Cache != nil {
		if raw, err := s.Cache.Get(ctx, key).Result(); err == nil {
			var page models.Page[PositionView]
			if err := json.Unmarshal([]byte(raw), &page); err == nil {
				return &page, nil
			}
		}
	}

	positions, next, total, err := s.Repo.ListByOwner(wallet, cursor, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list positions: %w", err)
	}

	views := make([]PositionView, 0, len(positions))
	for _, p := range positions {
		view := PositionView{Position: p}
		if v, err := s.VaultRepo.GetByPDA(p.VaultPDA); err == nil {
			view.VaultName = v.Name
			view.VaultStatus = v.Status
			view.Claimable = p.ClaimableBaseUnits(v)
		}
		views = append(views, view)
	}

	page := &models.Page[PositionView]{
		Items:      views,
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

// Summary aggregates the wallet's positions across all vaults.
func (s *DefaultPortfolioService) Summary(ctx context.Context, wallet string) (*models.PortfolioSummary, error) {
	// Positions per wallet are few; pull them all in one page.
	positions, _, _, err := s.Repo.ListByOwner(wallet, "", 500)
	if err != nil {
		return nil, fmt.Errorf("failed to list positions: %w", err)
	}

	summary := &models.PortfolioSummary{Wallet: wallet, PositionCount: len(positions)}
	for _, p := range positions {
		summary.TotalDeposited += p.Deposited
		if p.Claimed {
			// What the wallet actually received is the deposit scaled by
			// the vault's payout ratio, not the deposit itself.
			paid := p.Deposited
			if v, err := s.VaultRepo.GetByPDA(p.VaultPDA); err == nil {
				paid = p.PayoutBaseUnits(v)
			}
			summary.TotalClaimed += paid
			continue
		}
		if v, err := s.VaultRepo.GetByPDA(p.VaultPDA); err == nil {
			summary.TotalClaimable += p.ClaimableBaseUnits(v)
		}
	}
	return summary, nil
}

// Deposit builds an unsigned deposit transaction. Deposits are only
// valid while the vault is funding.
func (s *DefaultPortfolioService) Deposit(ctx context.Context, wallet, vaultPDA string, amount uint64) (*models.UnsignedTx, error) {
	if amount == 0 {
		return nil, fmt.Errorf("deposit amount must be positive")
	}
	v, err := s.VaultRepo.GetByPDA(vaultPDA)
	if err != nil {
		return nil, fmt.Errorf("vault %s not found: %w", vaultPDA, err)
	}
	if v.Status != models.VaultStatusFunding {
		return nil, fmt.Errorf("vault %s is %s and not accepting deposits", vaultPDA, v.Status)
	}

	owner, err := solana.PublicKeyFromBase58(wallet)
	if err != nil {
		return nil, fmt.Errorf("invalid wallet: %w", err)
	}
	vaultKey, err := solana.PublicKeyFromBase58(vaultPDA)
	if err != nil {
		return nil, fmt.Errorf("invalid vault pda: %w", err)
	}
	mint, err := solana.PublicKeyFromBase58(v.TokenMint)
	if err != nil {
		return nil, fmt.Errorf("invalid token mint on vault %s: %w", vaultPDA, err)
	}

	tx, err := s.Chain.BuildDeposit(ctx, vaultKey, owner, mint, amount)
	if err != nil {
		return nil, fmt.Errorf("failed to build deposit tx: %w", err)
	}
	return toUnsigned(tx)
}

// Claim builds an unsigned claim transaction. Claims are only valid
// against a matured vault with an unclaimed position.
func (s *DefaultPortfolioService) Claim(ctx context.Context, wallet, vaultPDA string) (*models.UnsignedTx, error) {
	v, err := s.VaultRepo.GetByPDA(vaultPDA)
	if err != nil {
		return nil, fmt.Errorf("vault %s not found: %w", vaultPDA, err)
	}
	if v.Status != models.VaultStatusMatured {
		return nil, fmt.Errorf("vault %s is %s; payouts are only claimable after maturity", vaultPDA, v.Status)
	}

	owner, err := solana.PublicKeyFromBase58(wallet)
	if err != nil {
		return nil, fmt.Errorf("invalid wallet: %w", err)
	}
	vaultKey, err := solana.PublicKeyFromBase58(vaultPDA)
	if err != nil {
		return nil, fmt.Errorf("invalid vault pda: %w", err)
	}
	mint, err := solana.PublicKeyFromBase58(v.TokenMint)
	if err != nil {
		return nil, fmt.Errorf("invalid token mint on vault %s: %w", vaultPDA, err)
	}

	positionPDA, _, err := chain.DerivePositionPDA(s.Chain.ProgramID(), vaultKey, owner)
	if err != nil {
		return nil, err
	}
	p, err := s.Repo.GetByPDA(positionPDA.String())
	if err != nil {
		return nil, fmt.Errorf("no position found for wallet %s in vault %s: %w", wallet, vaultPDA, err)
	}
	if p.Claimed {
		return nil, fmt.Errorf("position already claimed")
	}

	tx, err := s.Chain.BuildClaim(ctx, vaultKey, owner, mint)
	if err != nil {
		return nil, fmt.Errorf("failed to build claim tx: %w", err)
	}
	return toUnsigned(tx)
}

// SubmitSigned broadcasts a signed deposit/claim transaction, records
// the activity event and schedules the cache invalidation ladder.
func (s *DefaultPortfolioService) SubmitSigned(ctx context.Context, vaultPDA string, kind models.ActivityKind, amount uint64, signedTx string) (*models.TxReceipt, error) {
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
		VaultPDA:  vaultPDA,
		Wallet:    wallet,
		Kind:      kind,
		Amount:    amount,
		Slot:      slot,
		BlockTime: time.Now().UTC(),
	}
	if err := s.ActivityRepo.Record(event); err != nil {
		utils.GetLogger().Warn("failed to record activity", zap.Error(err), zap.String("signature", sig.String()))
	}

	if s.Invalidator != nil {
		if err := s.Invalidator.ScheduleInvalidation(vaultPDA); err != nil {
			utils.GetLogger().Warn("failed to schedule invalidation", zap.Error(err), zap.String("vault", vaultPDA))
		}
	}

	return &models.TxReceipt{
		Signature: sig.String(),
		Confirmed: confirmed,
		Slot:      slot,
	}, nil
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
