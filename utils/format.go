// File: utils/format.go
package utils

import (
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// FormatBaseUnits renders an integer token amount in base units as a
// decimal string, e.g. 1_500_000 with 6 decimals -> "1.5".
func FormatBaseUnits(amount uint64, decimals uint8) string {
	d := decimal.NewFromBigInt(decimal.NewFromUint64(amount).BigInt(), -int32(decimals))
	return d.String()
}

// BaseUnitsToDecimal converts an integer base-unit amount to an exact decimal.
func BaseUnitsToDecimal(amount uint64, decimals uint8) decimal.Decimal {
	return decimal.NewFromBigInt(decimal.NewFromUint64(amount).BigInt(), -int32(decimals))
}

// FormatPercentBps renders basis points as a percentage string, e.g. 1250 -> "12.50%".
func FormatPercentBps(bps int64) string {
	return decimal.NewFromInt(bps).Div(decimal.NewFromInt(100)).StringFixed(2) + "%"
}

// FormatPercent renders a ratio (0..1) as a percentage with two decimals.
// Inputs outside the range are formatted as-is rather than clamped.
func FormatPercent(ratio float64) string {
	if math.IsNaN(ratio) || math.IsInf(ratio, 0) {
		return "0.00%"
	}
	return fmt.Sprintf("%.2f%%", ratio*100)
}

// FormatCompact renders a number in compact form: 1234 -> "1.2K",
// 5_600_000 -> "5.6M", 7_800_000_000 -> "7.8B". Values below 1000 keep
// up to two decimals. Negative values keep their sign.
func FormatCompact(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "0"
	}
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	switch {
	case v >= 1e12:
		return sign + trimTrailingZero(fmt.Sprintf("%.1f", v/1e12)) + "T"
	case v >= 1e9:
		return sign + trimTrailingZero(fmt.Sprintf("%.1f", v/1e9)) + "B"
	case v >= 1e6:
		return sign + trimTrailingZero(fmt.Sprintf("%.1f", v/1e6)) + "M"
	case v >= 1e3:
		return sign + trimTrailingZero(fmt.Sprintf("%.1f", v/1e3)) + "K"
	default:
		return sign + trimTrailingZero(fmt.Sprintf("%.2f", v))
	}
}

func trimTrailingZero(s string) string {
	for len(s) > 0 && s[len(s)-1] == '0' {
		s = s[:len(s)-1]
	}
	if len(s) > 0 && s[len(s)-1] == '.' {
		s = s[:len(s)-1]
	}
	return s
}

// DaysUntil returns the number of whole days from now until t, clamped
// at zero for past timestamps.
func DaysUntil(t time.Time) int {
	return DaysUntilFrom(time.Now(), t)
}

// DaysUntilFrom is DaysUntil with an explicit reference time.
func DaysUntilFrom(now, t time.Time) int {
	d := t.Sub(now)
	if d <= 0 {
		return 0
	}
	return int(d.Hours() / 24)
}
