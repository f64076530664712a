// Package sync keeps the Mongo read models aligned with on-chain state.
// A periodic indexer scans the program's accounts at confirmed
// commitment, re-reads changed accounts at finalized commitment through
// the reconciler, and upserts the decoded state. Mutation endpoints
// additionally enqueue a delayed cache-invalidation ladder so readers
// see fresh state shortly after their transaction lands.
package sync

import (
	"context"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	positionRepo "receivault/database/repository/position"
	vaultRepo "receivault/database/repository/vault"
	"receivault/services/chain"
	"receivault/utils"
)

// Indexer mirrors program accounts into Mongo.
type Indexer struct {
	Chain        *chain.Client
	Reconciler   *chain.Reconciler
	VaultRepo    vaultRepo.VaultRepository
	PositionRepo positionRepo.PositionRepository
	Cache        *redis.Client
	// TokenDecimals is stamped onto vault models; the platform settles
	// in a single configured mint.
	TokenDecimals uint8
	Logger        *zap.Logger

	passes uint64
}

// prunePassInterval spaces the prune scan out over regular passes;
// closed accounts are rare relative to state changes.
const prunePassInterval = 10

// Run executes sync passes until the context is canceled.
func (ix *Indexer) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	// First pass immediately so a fresh process serves data without
	// waiting out the interval.
	ix.pass(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			ix.pass(ctx)
		}
	}
}

func (ix *Indexer) pass(ctx context.Context) {
	start := time.Now()
	vaults, positions := ix.syncVaults(ctx), ix.syncPositions(ctx)
	ix.passes++
	if ix.passes%prunePassInterval == 0 {
		ix.PruneClosed(ctx)
	}
	ix.Logger.Debug("sync pass complete",
		zap.Int("vaultsChanged", vaults),
		zap.Int("positionsChanged", positions),
		zap.Duration("elapsed", time.Since(start)),
	)
}

func (ix *Indexer) syncVaults(ctx context.Context) int {
	accounts, err := ix.Chain.ScanProgramAccounts(ctx, chain.VaultDiscriminator, rpc.CommitmentConfirmed)
	if err != nil {
		ix.Logger.Warn("vault scan failed", zap.Error(err))
		return 0
	}

	changed := 0
	for _, acc := range accounts {
		key := acc.Pubkey
		applied, err := ix.Reconciler.Reconcile(ctx, key, func(data []byte, slot uint64) error {
			decoded, err := chain.DecodeVaultAccount(data)
			if err != nil {
				return err
			}
			v := decoded.ToModel(key, ix.TokenDecimals, slot)
			if err := ix.VaultRepo.UpsertByPDA(v); err != nil {
				return err
			}
			ix.dropVaultCaches(ctx, v.PDA)
			return nil
		})
		if err != nil {
			ix.Logger.Warn("vault reconcile failed", zap.Error(err), zap.String("vault", key.String()))
			continue
		}
		if applied {
			changed++
		}
	}
	return changed
}

func (ix *Indexer) syncPositions(ctx context.Context) int {
	accounts, err := ix.Chain.ScanProgramAccounts(ctx, chain.PositionDiscriminator, rpc.CommitmentConfirmed)
	if err != nil {
		ix.Logger.Warn("position scan failed", zap.Error(err))
		return 0
	}

	changed := 0
	for _, acc := range accounts {
		key := acc.Pubkey
		applied, err := ix.Reconciler.Reconcile(ctx, key, func(data []byte, slot uint64) error {
			decoded, err := chain.DecodePositionAccount(data)
			if err != nil {
				return err
			}
			p := decoded.ToModel(key, slot)
			if err := ix.PositionRepo.UpsertByPDA(p); err != nil {
				return err
			}
			ix.dropPositionCaches(ctx, p.Owner, p.VaultPDA)
			return nil
		})
		if err != nil {
			ix.Logger.Warn("position reconcile failed", zap.Error(err), zap.String("position", key.String()))
			continue
		}
		if applied {
			changed++
		}
	}
	return changed
}

// dropVaultCaches removes cached responses that include vault state.
// List keys vary by status/cursor/limit, so the whole prefix goes.
func (ix *Indexer) dropVaultCaches(ctx context.Context, vaultPDA string) {
	if ix.Cache == nil {
		return
	}
	DropCachesByPrefix(ctx, ix.Cache, utils.VaultCachePrefix)
	ix.Cache.Del(ctx, utils.TransparencyCachePrefix+vaultPDA)
}

func (ix *Indexer) dropPositionCaches(ctx context.Context, owner, vaultPDA string) {
	if ix.Cache == nil {
		return
	}
	DropCachesByPrefix(ctx, ix.Cache, utils.PositionCachePrefix+owner)
	DropCachesByPrefix(ctx, ix.Cache, utils.ActivityCachePrefix)
}

// DropCachesByPrefix scans and deletes every key under a prefix. Used by
// both the indexer and the invalidation worker; key cardinality is small
// (a handful of cursors per prefix) so SCAN cost is negligible.
func DropCachesByPrefix(ctx context.Context, client *redis.Client, prefix string) {
	iter := client.Scan(ctx, 0, prefix+"*", 100).Iterator()
	keys := make([]string, 0, 16)
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		utils.GetLogger().Warn("cache scan failed", zap.Error(err), zap.String("prefix", prefix))
		return
	}
	if len(keys) > 0 {
		client.Del(ctx, keys...)
	}
}

// PruneClosed removes records for accounts the program has closed on
// chain: anything in Mongo that no longer appears in a confirmed scan.
func (ix *Indexer) PruneClosed(ctx context.Context) {
	accounts, err := ix.Chain.ScanProgramAccounts(ctx, chain.VaultDiscriminator, rpc.CommitmentFinalized)
	if err != nil {
		ix.Logger.Warn("prune scan failed", zap.Error(err))
		return
	}
	live := make(map[string]struct{}, len(accounts))
	for _, acc := range accounts {
		live[acc.Pubkey.String()] = struct{}{}
	}
	ix.pruneMissing(ctx, live)
}

// pruneMissing drops every stored vault (and its positions) whose PDA is
// absent from the live account set.
func (ix *Indexer) pruneMissing(ctx context.Context, live map[string]struct{}) {
	vaults, err := ix.VaultRepo.ListAll()
	if err != nil {
		ix.Logger.Warn("prune list failed", zap.Error(err))
		return
	}
	for _, v := range vaults {
		if _, ok := live[v.PDA]; ok {
			continue
		}
		// The program only closes vault accounts after the Closed state,
		// so the record is safe to drop along with its positions.
		positions, err := ix.PositionRepo.ListByVault(v.PDA)
		if err == nil {
			for _, p := range positions {
				if err := ix.PositionRepo.Delete(p.PDA); err != nil {
					ix.Logger.Warn("prune position failed", zap.Error(err), zap.String("position", p.PDA))
				}
				if key, err := solana.PublicKeyFromBase58(p.PDA); err == nil {
					ix.Reconciler.Forget(key)
				}
			}
		}
		if err := ix.VaultRepo.Delete(v.PDA); err != nil {
			ix.Logger.Warn("prune vault failed", zap.Error(err), zap.String("vault", v.PDA))
			continue
		}
		if key, err := solana.PublicKeyFromBase58(v.PDA); err == nil {
			ix.Reconciler.Forget(key)
		}
		ix.dropVaultCaches(ctx, v.PDA)
		ix.Logger.Info("pruned closed vault", zap.String("vault", v.PDA))
	}
}
