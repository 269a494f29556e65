package services

import (
	"math"
	"strconv"
	"strings"
	"time"

	"vypiska/internal/core"
)

// InvestmentBank sums the spare change a round-up savings account would
// collect over one month. Each expense is rounded up to a multiple of limit
// with the floor((a + limit - 1) / limit) step; amounts already past the
// multiple (fractional kopecks under it) contribute nothing, the difference
// is clamped at zero. A malformed month string or non-positive limit yields
// 0.0 rather than an error.
func InvestmentBank(month string, txs []core.Transaction, limit int) float64 {
	year, m, ok := parseMonth(month)
	if !ok || limit <= 0 {
		return 0
	}

	total := 0.0
	for _, t := range txs {
		if !t.OperationDate.InMonth(year, m) {
			continue
		}
		amount, err := t.Amount.Float64()
		if err != nil {
			continue
		}
		if amount >= 0 {
			continue
		}
		abs := -amount
		rounded := math.Floor((abs+float64(limit)-1)/float64(limit)) * float64(limit)
		if diff := rounded - abs; diff > 0 {
			total += diff
		}
	}
	return total
}

// parseMonth splits a "YYYY-MM" string into its parts.
func parseMonth(s string) (int, time.Month, bool) {
	parts := strings.Split(s, "-")
	if len(parts) != 2 {
		return 0, 0, false
	}
	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, false
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, false
	}
	return year, time.Month(month), true
}
