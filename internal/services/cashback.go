// Package services holds the per-record analysis services: cashback category
// ranking, the investment round-up accumulator, and the search predicates.
// Every function is a pure fold over the transaction slice; rows with
// unparseable dates or amounts are skipped, never counted as zero.
package services

import (
	"time"

	"vypiska/internal/core"
)

// CashbackRate is the bank's flat cashback on expenses. Hard-coded business
// constant; a configurable tier table would replace it if the bank ever
// offered one.
const CashbackRate = 0.01

// ProfitableCashbackCategories accumulates earned cashback per category for
// the given month. Only expenses participate; rows without a category land
// in the fallback bucket. The result is an empty, non-nil map when nothing
// matches.
func ProfitableCashbackCategories(txs []core.Transaction, year int, month time.Month) map[string]float64 {
	acc := make(map[string]float64)
	for _, t := range txs {
		if !t.OperationDate.InMonth(year, month) {
			continue
		}
		amount, err := t.Amount.Float64()
		if err != nil {
			continue
		}
		if amount >= 0 {
			continue
		}
		acc[t.CategoryOrOther()] += -amount * CashbackRate
	}
	return acc
}
