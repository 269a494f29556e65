// Package views assembles the two composite page payloads: the home page
// (greeting, per-card totals, top transactions, quotes) and the events page
// (expense/income breakdowns over a calendar window, quotes). Quote data is
// passed in already fetched; composition itself never performs I/O.
package views

import (
	"math"
	"sort"
	"time"

	"vypiska/internal/core"
	"vypiska/internal/quotes"
	"vypiska/internal/services"
)

const (
	// topCategoryLimit bounds the events page category breakdown; anything
	// beyond it is collapsed into the remainder bucket.
	topCategoryLimit = 7
	// topTransactionLimit bounds the home page top-transaction list.
	topTransactionLimit = 5
)

// Display fallbacks for rows with blank fields.
const (
	noDateLabel        = "Нет даты"
	noCategoryLabel    = "Не указана"
	noDescriptionLabel = "Нет описания"
)

type (
	// CardSummary is one card's spending within the window.
	CardSummary struct {
		LastDigits string  `json:"last_digits"`
		TotalSpent float64 `json:"total_spent"`
		Cashback   float64 `json:"cashback"`
	}

	// TopTransaction is one of the largest transactions by magnitude.
	TopTransaction struct {
		Date        string  `json:"date"`
		Amount      float64 `json:"amount"`
		Category    string  `json:"category"`
		Description string  `json:"description"`
	}

	// HomePage is the main dashboard payload.
	HomePage struct {
		Greeting        string              `json:"greeting"`
		Cards           []CardSummary       `json:"cards"`
		TopTransactions []TopTransaction    `json:"top_transactions"`
		CurrencyRates   []quotes.Rate       `json:"currency_rates"`
		StockPrices     []quotes.StockPrice `json:"stock_prices"`
	}

	// CategoryAmount is one category row in a ranked breakdown.
	CategoryAmount struct {
		Category string  `json:"category"`
		Amount   float64 `json:"amount"`
	}

	// ExpenseSummary covers the expense side of the events page. Total is
	// rounded to whole currency units, category rows to two decimals.
	ExpenseSummary struct {
		Total          float64          `json:"total"`
		MainCategories []CategoryAmount `json:"main_categories"`
		CashTransfers  []CategoryAmount `json:"cash_transfers"`
	}

	// IncomeSummary covers the income side of the events page.
	IncomeSummary struct {
		Total          float64          `json:"total"`
		MainCategories []CategoryAmount `json:"main_categories"`
	}

	// EventsPage is the time-windowed events payload.
	EventsPage struct {
		Expenses      ExpenseSummary      `json:"expenses"`
		Income        IncomeSummary       `json:"income"`
		ExchangeRates []quotes.Rate       `json:"exchange_rates"`
		StockPrices   []quotes.StockPrice `json:"stock_prices"`
	}
)

// Greeting picks the salutation for an hour of the day.
func Greeting(hour int) string {
	switch {
	case hour >= 5 && hour < 12:
		return "Доброе утро"
	case hour >= 12 && hour < 17:
		return "Добрый день"
	case hour >= 17 && hour < 23:
		return "Добрый вечер"
	default:
		return "Доброй ночи"
	}
}

// BuildHomePage composes the dashboard for the month containing ref.
func BuildHomePage(txs []core.Transaction, ref time.Time, rates []quotes.Rate, prices []quotes.StockPrice) HomePage {
	window := core.ComputeWindow(ref, core.PeriodMonth)
	filtered := core.FilterByWindow(txs, window)

	return HomePage{
		Greeting:        Greeting(ref.Hour()),
		Cards:           cardSummaries(filtered),
		TopTransactions: topTransactions(filtered),
		CurrencyRates:   rates,
		StockPrices:     prices,
	}
}

// BuildEventsPage composes the events summary for the named period anchored
// at ref.
func BuildEventsPage(txs []core.Transaction, ref time.Time, period core.Period, rates []quotes.Rate, prices []quotes.StockPrice) EventsPage {
	window := core.ComputeWindow(ref, period)
	filtered := core.FilterByWindow(txs, window)

	var (
		expenseTotal float64
		incomeTotal  float64
		expenseByCat = make(map[string]float64)
		incomeByCat  = make(map[string]float64)
	)
	for _, t := range filtered {
		amount, err := t.Amount.Float64()
		if err != nil {
			continue
		}
		switch {
		case amount < 0:
			expenseTotal += -amount
			expenseByCat[t.CategoryOrOther()] += -amount
		case amount > 0:
			incomeTotal += amount
			incomeByCat[t.CategoryOrOther()] += amount
		}
	}

	ranked := rankCategories(expenseByCat)
	main := make([]CategoryAmount, 0, topCategoryLimit+1)
	for i, row := range ranked {
		if i == topCategoryLimit {
			break
		}
		main = append(main, CategoryAmount{Category: row.Category, Amount: round2(row.Amount)})
	}
	if len(ranked) > topCategoryLimit {
		// Strict > 0: floating point noise summing to a tiny negative
		// remainder must not produce a bucket.
		remainder := 0.0
		for _, row := range ranked[topCategoryLimit:] {
			remainder += row.Amount
		}
		if remainder > 0 {
			main = append(main, CategoryAmount{Category: core.CategoryRemainder, Amount: round2(remainder)})
		}
	}

	var cashTransfers []CategoryAmount
	for _, row := range ranked {
		if row.Category == core.CategoryCash || row.Category == core.CategoryTransfers {
			cashTransfers = append(cashTransfers, CategoryAmount{Category: row.Category, Amount: round2(row.Amount)})
		}
	}

	income := rankCategories(incomeByCat)
	for i := range income {
		income[i].Amount = round2(income[i].Amount)
	}

	return EventsPage{
		Expenses: ExpenseSummary{
			Total:          math.Round(expenseTotal),
			MainCategories: main,
			CashTransfers:  cashTransfers,
		},
		Income: IncomeSummary{
			Total:          math.Round(incomeTotal),
			MainCategories: income,
		},
		ExchangeRates: rates,
		StockPrices:   prices,
	}
}

// cardSummaries groups expenses per card in first-seen order, with the flat
// cashback applied to each total.
func cardSummaries(txs []core.Transaction) []CardSummary {
	totals := make(map[string]float64)
	var order []string
	for _, t := range txs {
		if t.CardNumber == "" {
			continue
		}
		if _, seen := totals[t.CardNumber]; !seen {
			order = append(order, t.CardNumber)
			totals[t.CardNumber] = 0
		}
		amount, err := t.Amount.Float64()
		if err != nil || amount >= 0 {
			continue
		}
		totals[t.CardNumber] += -amount
	}

	cards := make([]CardSummary, 0, len(order))
	for _, card := range order {
		spent := totals[card]
		digits := card
		if len(digits) > 4 {
			digits = digits[len(digits)-4:]
		}
		cards = append(cards, CardSummary{
			LastDigits: digits,
			TotalSpent: round2(spent),
			Cashback:   round2(spent * services.CashbackRate),
		})
	}
	return cards
}

// topTransactions picks the largest rows by absolute amount. Rows whose
// amount cannot be normalized are not candidates.
func topTransactions(txs []core.Transaction) []TopTransaction {
	type scored struct {
		tx  core.Transaction
		abs float64
		amt float64
	}
	var candidates []scored
	for _, t := range txs {
		amount, err := t.Amount.Float64()
		if err != nil {
			continue
		}
		candidates = append(candidates, scored{tx: t, abs: math.Abs(amount), amt: amount})
	}
	sort.SliceStable(candidates, func(i, j int) bool { return candidates[i].abs > candidates[j].abs })

	if len(candidates) > topTransactionLimit {
		candidates = candidates[:topTransactionLimit]
	}

	top := make([]TopTransaction, 0, len(candidates))
	for _, c := range candidates {
		date := noDateLabel
		if ts, err := c.tx.OperationDate.Time(); err == nil {
			date = ts.Format("02.01.2006")
		}
		category := c.tx.Category
		if category == "" {
			category = noCategoryLabel
		}
		description := c.tx.Description
		if description == "" {
			description = noDescriptionLabel
		}
		top = append(top, TopTransaction{
			Date:        date,
			Amount:      c.amt,
			Category:    category,
			Description: description,
		})
	}
	return top
}

// rankCategories sorts a category sum map descending by amount, ties broken
// alphabetically for determinism.
func rankCategories(sums map[string]float64) []CategoryAmount {
	out := make([]CategoryAmount, 0, len(sums))
	for cat, amount := range sums {
		out = append(out, CategoryAmount{Category: cat, Amount: amount})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Amount != out[j].Amount {
			return out[i].Amount > out[j].Amount
		}
		return out[i].Category < out[j].Category
	})
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
