// Package ingest parses the bank's semicolon-separated statement export
// into storable records. Amounts are validated with exact decimals before
// anything reaches the database; rows whose amount cannot be read are
// skipped and counted, never stored as zero.
package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"vypiska/internal/core"
	"vypiska/internal/storage"
)

// Statement column headers as the export names them.
const (
	colOperationDate = "Дата операции"
	colPaymentDate   = "Дата платежа"
	colCardNumber    = "Номер карты"
	colStatus        = "Статус"
	colAmount        = "Сумма операции"
	colPaymentAmount = "Сумма платежа"
	colCategory      = "Категория"
	colDescription   = "Описание"
)

// normalizedDateLayout is how validated dates are stored.
const normalizedDateLayout = "2006-01-02 15:04:05"

// dateOnlyEuropeanLayout covers the payment date column, which the export
// writes without a time component. The analysis layer never sees this
// layout; the importer canonicalizes it away.
const dateOnlyEuropeanLayout = "02.01.2006"

var ErrMissingHeader = errors.New("statement has no header row")

// Result is the outcome of parsing one statement file.
type Result struct {
	Records []storage.TransactionRecord
	Skipped int
}

// ParseStatement reads a statement export. The header row decides column
// positions, so column order does not matter; the amount column is the only
// one that must exist.
func ParseStatement(r io.Reader) (Result, error) {
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return Result{}, ErrMissingHeader
	}
	if err != nil {
		return Result{}, fmt.Errorf("read header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}
	if _, ok := cols[colAmount]; !ok {
		return Result{}, fmt.Errorf("statement header lacks %q column", colAmount)
	}

	var result Result
	line := 1
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			slog.Warn("Skipping malformed statement line", "line", line, "error", err)
			result.Skipped++
			continue
		}

		rec, ok := parseRow(cols, row)
		if !ok {
			slog.Warn("Skipping statement line with unreadable amount", "line", line)
			result.Skipped++
			continue
		}
		result.Records = append(result.Records, rec)
	}

	return result, nil
}

func parseRow(cols map[string]int, row []string) (storage.TransactionRecord, bool) {
	amount, ok := normalizeAmount(field(cols, row, colAmount))
	if !ok {
		return storage.TransactionRecord{}, false
	}

	// Payment amount is optional; when present but unreadable, keep the raw
	// text and let analysis skip it later.
	paymentAmount := field(cols, row, colPaymentAmount)
	if normalized, ok := normalizeAmount(paymentAmount); ok {
		paymentAmount = normalized
	}

	return storage.TransactionRecord{
		OperationDate: normalizeDate(field(cols, row, colOperationDate)),
		PaymentDate:   normalizeDate(field(cols, row, colPaymentDate)),
		Amount:        amount,
		PaymentAmount: paymentAmount,
		Category:      strings.TrimSpace(field(cols, row, colCategory)),
		Description:   strings.TrimSpace(field(cols, row, colDescription)),
		CardNumber:    strings.TrimSpace(field(cols, row, colCardNumber)),
		Status:        strings.TrimSpace(field(cols, row, colStatus)),
	}, true
}

// normalizeAmount validates a textual amount with an exact decimal and
// returns its canonical form. Handles the export's space thousands
// separators and decimal commas.
func normalizeAmount(raw string) (string, bool) {
	s := strings.ReplaceAll(strings.TrimSpace(raw), " ", "")
	s = strings.ReplaceAll(s, ",", ".")
	if s == "" {
		return "", false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return "", false
	}
	return d.String(), true
}

// normalizeDate canonicalizes a timestamp when it matches one of the known
// export layouts; otherwise the raw text is stored as-is and the analysis
// layer treats it as unparseable.
func normalizeDate(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	if t, err := core.DateString(s).Time(); err == nil {
		return t.Format(normalizedDateLayout)
	}
	if t, err := time.Parse(dateOnlyEuropeanLayout, s); err == nil {
		return t.Format(normalizedDateLayout)
	}
	return s
}

func field(cols map[string]int, row []string, name string) string {
	i, ok := cols[name]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}
