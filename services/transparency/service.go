package transparency

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	collateralRepo "receivault/database/repository/collateral"
	"receivault/models"
	"receivault/utils"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// DefaultTransparencyService implements TransparencyService.
type DefaultTransparencyService struct {
	Repo  collateralRepo.CollateralRepository
	Cache *redis.Client
}

// Report returns the receivable entries backing a vault together with
// face-value-weighted averages of advance rate and days to due.
func (s *DefaultTransparencyService) Report(ctx context.Context, vaultPDA string) (*models.TransparencyReport, error) {
	key := utils.TransparencyCachePrefix + vaultPDA
	if s.Cache != nil {
		if raw, err := s.Cache.Get(ctx, key).Result(); err == nil {
			var report models.TransparencyReport
			if err := json.Unmarshal([]byte(raw), &report); err == nil {
				return &report, nil
			}
		}
	}

	entries, err := s.Repo.ListByVault(vaultPDA)
	if err != nil {
		return nil, fmt.Errorf("failed to load collateral for vault %s: %w", vaultPDA, err)
	}

	report := Summarize(vaultPDA, entries, time.Now())

	if s.Cache != nil {
		if raw, err := json.Marshal(report); err == nil {
			s.Cache.Set(ctx, key, raw, utils.ReadCacheTTL)
		}
	}
	return report, nil
}

// Summarize computes the weighted-average figures for a set of
// receivables. Weights are face values; an empty set yields zeros.
func Summarize(vaultPDA string, entries []models.CollateralEntry, now time.Time) *models.TransparencyReport {
	report := &models.TransparencyReport{
		VaultPDA:    vaultPDA,
		Entries:     entries,
		GeneratedAt: now,
	}

	var totalFace uint64
	var weightedAdvance uint64
	var weightedDays uint64
	for _, e := range entries {
		totalFace += e.FaceValue
		weightedAdvance += e.FaceValue * uint64(e.AdvanceRateBps)
		weightedDays += e.FaceValue * uint64(utils.DaysUntilFrom(now, e.DueDate))
	}
	report.TotalFaceValue = totalFace
	if totalFace > 0 {
		report.WeightedAdvanceBps = uint16(weightedAdvance / totalFace)
		report.WeightedDaysToDue = int(weightedDays / totalFace)
	}
	return report
}

// UpsertEntry writes one receivable entry and drops the cached report.
// Entries without an ID get one assigned.
func (s *DefaultTransparencyService) UpsertEntry(ctx context.Context, entry *models.CollateralEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if err := s.Repo.Upsert(entry); err != nil {
		return err
	}
	if s.Cache != nil {
		s.Cache.Del(ctx, utils.TransparencyCachePrefix+entry.VaultPDA)
	}
	return nil
}

// DeleteEntry removes one receivable entry. The cached report expires
// via TTL; entries carry their vault so callers needing an immediate
// refresh delete through UpsertEntry's vault instead.
func (s *DefaultTransparencyService) DeleteEntry(ctx context.Context, id string) error {
	return s.Repo.Delete(id)
}
