package utils

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatBaseUnits(t *testing.T) {
	assert.Equal(t, "1.5", FormatBaseUnits(1_500_000, 6))
	assert.Equal(t, "0.000001", FormatBaseUnits(1, 6))
	assert.Equal(t, "0", FormatBaseUnits(0, 6))
	assert.Equal(t, "250000", FormatBaseUnits(250_000_000_000, 6))
	assert.Equal(t, "42", FormatBaseUnits(42, 0))
}

func TestFormatPercentBps(t *testing.T) {
	assert.Equal(t, "12.50%", FormatPercentBps(1250))
	assert.Equal(t, "0.00%", FormatPercentBps(0))
	assert.Equal(t, "100.00%", FormatPercentBps(10000))
	assert.Equal(t, "104.50%", FormatPercentBps(10450))
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "62.00%", FormatPercent(0.62))
	assert.Equal(t, "0.00%", FormatPercent(0))
	assert.Equal(t, "0.00%", FormatPercent(math.NaN()))
	assert.Equal(t, "0.00%", FormatPercent(math.Inf(1)))
	// Out-of-range ratios are not clamped.
	assert.Equal(t, "150.00%", FormatPercent(1.5))
}

func TestFormatCompact(t *testing.T) {
	assert.Equal(t, "1.2K", FormatCompact(1234))
	assert.Equal(t, "5.6M", FormatCompact(5_600_000))
	assert.Equal(t, "7.8B", FormatCompact(7_800_000_000))
	assert.Equal(t, "2T", FormatCompact(2_000_000_000_000))
	assert.Equal(t, "999", FormatCompact(999))
	assert.Equal(t, "0", FormatCompact(0))
	assert.Equal(t, "-1.2K", FormatCompact(-1234))
	assert.Equal(t, "0", FormatCompact(math.NaN()))
}

func TestDaysUntilFrom(t *testing.T) {
	now := time.Date(2026, time.June, 1, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, 0, DaysUntilFrom(now, now))
	assert.Equal(t, 0, DaysUntilFrom(now, now.Add(-time.Hour)), "past timestamps clamp to zero")
	assert.Equal(t, 0, DaysUntilFrom(now, now.Add(12*time.Hour)), "partial days round down")
	assert.Equal(t, 1, DaysUntilFrom(now, now.Add(24*time.Hour)))
	assert.Equal(t, 30, DaysUntilFrom(now, now.AddDate(0, 0, 30)))
}
