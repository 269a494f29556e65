package core

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// StatusOK marks a settled row in the bank export. Only OK rows are valid
// analysis input; upstream loaders filter on it, core functions merely
// tolerate anything else.
const StatusOK = "OK"

// Category constants used by services and page composition. The analyzed
// export is a Russian bank ledger, so category values are Russian strings.
const (
	CategoryOther     = "Другое"    // fallback bucket for rows without a category
	CategoryRemainder = "Остальное" // collapsed remainder beyond the top categories
	CategoryTransfers = "Переводы"
	CategoryCash      = "Наличные"
)

var (
	ErrUnparseableAmount = errors.New("unparseable amount")
	ErrUnparseableDate   = errors.New("unparseable date")
)

// dateLayouts are tried in order; the first successful parse wins. The
// layouts are structurally distinct, so order only matters for determinism.
var dateLayouts = []string{
	"2006-01-02 15:04:05",
	"02.01.2006 15:04:05",
	"2006-01-02",
}

type (
	// Amount is a raw monetary value exactly as a ledger export carries it:
	// a native float, an exact decimal, an integer, or a string in machine
	// ("-1500.00") or Russian ("1 234,56") format. The zero value means the
	// field was absent. Normalization happens once, in Float64.
	Amount struct{ raw any }

	// Date is a raw operation/payment timestamp: a native time.Time or a
	// string in one of the export's three formats. The zero value means the
	// field was absent.
	Date struct{ raw any }

	// Transaction is one row of the bank-card ledger. Sign convention:
	// negative amount is an expense, positive is income.
	Transaction struct {
		OperationDate Date   `json:"operation_date"`
		PaymentDate   Date   `json:"payment_date"`
		Amount        Amount `json:"amount"`
		PaymentAmount Amount `json:"payment_amount"`
		Category      string `json:"category"`
		Description   string `json:"description"`
		CardNumber    string `json:"card_number"`
		Status        string `json:"status"`
	}
)

func AmountFloat(v float64) Amount           { return Amount{raw: v} }
func AmountDecimal(d decimal.Decimal) Amount { return Amount{raw: d} }

// AmountString wraps a textual amount without validating it. Malformed
// strings surface later as ErrUnparseableAmount.
func AmountString(s string) Amount { return Amount{raw: s} }

// IsMissing reports whether the field was absent in the source row.
func (a Amount) IsMissing() bool { return a.raw == nil }

// Float64 normalizes the raw value. String inputs get spaces stripped and
// the decimal comma substituted before parsing. Callers must treat an error
// as "skip this record", never as a zero amount.
func (a Amount) Float64() (float64, error) {
	switch v := a.raw.(type) {
	case nil:
		return 0, ErrUnparseableAmount
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case decimal.Decimal:
		return v.InexactFloat64(), nil
	case string:
		s := strings.ReplaceAll(v, " ", "")
		s = strings.ReplaceAll(s, ",", ".")
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, ErrUnparseableAmount
		}
		return f, nil
	default:
		return 0, ErrUnparseableAmount
	}
}

func DateTime(t time.Time) Date { return Date{raw: t} }

// DateString wraps a textual timestamp without validating it.
func DateString(s string) Date { return Date{raw: s} }

// IsMissing reports whether the field was absent in the source row.
func (d Date) IsMissing() bool { return d.raw == nil }

// Time normalizes the raw value, trying the export's layouts in order.
func (d Date) Time() (time.Time, error) {
	switch v := d.raw.(type) {
	case time.Time:
		if v.IsZero() {
			return time.Time{}, ErrUnparseableDate
		}
		return v, nil
	case string:
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, v); err == nil {
				return t, nil
			}
		}
		return time.Time{}, ErrUnparseableDate
	default:
		return time.Time{}, ErrUnparseableDate
	}
}

// InMonth reports whether the date parses and falls in the given month.
func (d Date) InMonth(year int, month time.Month) bool {
	t, err := d.Time()
	if err != nil {
		return false
	}
	return t.Year() == year && t.Month() == month
}

// CategoryOrOther returns the row's category, substituting the fallback
// bucket when the export left it blank.
func (t Transaction) CategoryOrOther() string {
	if t.Category == "" {
		return CategoryOther
	}
	return t.Category
}
