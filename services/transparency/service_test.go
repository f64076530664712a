package transparency

import (
	"testing"
	"time"

	"receivault/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarizeEmpty(t *testing.T) {
	report := Summarize("vault-1", nil, time.Now())
	require.NotNil(t, report)
	assert.Equal(t, "vault-1", report.VaultPDA)
	assert.Zero(t, report.TotalFaceValue)
	assert.Zero(t, report.WeightedAdvanceBps)
	assert.Zero(t, report.WeightedDaysToDue)
}

func TestSummarizeWeightsByFaceValue(t *testing.T) {
	now := time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)
	entries := []models.CollateralEntry{
		{FaceValue: 300_000, AdvanceRateBps: 8000, DueDate: now.AddDate(0, 0, 30)},
		{FaceValue: 100_000, AdvanceRateBps: 9000, DueDate: now.AddDate(0, 0, 60)},
	}

	report := Summarize("vault-1", entries, now)
	assert.Equal(t, uint64(400_000), report.TotalFaceValue)
	// (300k*8000 + 100k*9000) / 400k = 8250
	assert.Equal(t, uint16(8250), report.WeightedAdvanceBps)
	// (300k*30 + 100k*60) / 400k = 37.5, truncated
	assert.Equal(t, 37, report.WeightedDaysToDue)
	assert.Equal(t, entries, report.Entries)
}

func TestSummarizeClampsPastDueDates(t *testing.T) {
	now := time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)
	entries := []models.CollateralEntry{
		{FaceValue: 100_000, AdvanceRateBps: 8500, DueDate: now.AddDate(0, 0, -10)},
	}

	report := Summarize("vault-1", entries, now)
	assert.Equal(t, 0, report.WeightedDaysToDue, "overdue receivables contribute zero days")
	assert.Equal(t, uint16(8500), report.WeightedAdvanceBps)
}
