// Package reports implements the trailing-quarter spending reports: per
// category by month, average by weekday, and average by workday class. All
// reports look back a fixed 90 days from the anchor instant and skip rows
// whose date or amount cannot be normalized.
package reports

import (
	"math"
	"sort"
	"time"

	"vypiska/internal/core"
)

// Day-type class labels.
const (
	DayTypeWork = "Рабочий"
	DayTypeRest = "Выходной"
)

// weekdayNames maps time.Weekday to the export's locale, Monday first.
var weekdayNames = map[time.Weekday]string{
	time.Monday:    "Понедельник",
	time.Tuesday:   "Вторник",
	time.Wednesday: "Среда",
	time.Thursday:  "Четверг",
	time.Friday:    "Пятница",
	time.Saturday:  "Суббота",
	time.Sunday:    "Воскресенье",
}

// weekdayOrder fixes row order for SpendingByWeekday.
var weekdayOrder = []time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
	time.Friday, time.Saturday, time.Sunday,
}

type (
	// MonthlyAmount is one row of the by-category report: total absolute
	// spend in one calendar month ("2006-01").
	MonthlyAmount struct {
		Month  string  `json:"month"`
		Amount float64 `json:"amount"`
	}

	// WeekdayAverage is one row of the by-weekday report.
	WeekdayAverage struct {
		Weekday string  `json:"weekday"`
		Average float64 `json:"average"`
	}

	// DayTypeAverage is one row of the workday/rest-day report.
	DayTypeAverage struct {
		DayType string  `json:"day_type"`
		Average float64 `json:"average"`
	}
)

// SpendingByCategory sums the absolute amounts of the given category per
// calendar month over the trailing quarter, rows ascending by month. A zero
// anchor means now. No matching rows means a nil result, never zero-filled
// placeholder rows.
func SpendingByCategory(txs []core.Transaction, category string, anchor time.Time) []MonthlyAmount {
	if anchor.IsZero() {
		anchor = time.Now()
	}
	window := core.TrailingQuarter(anchor)

	sums := make(map[string]float64)
	for _, t := range txs {
		ts, err := t.OperationDate.Time()
		if err != nil || !window.Contains(ts) {
			continue
		}
		if t.Category != category {
			continue
		}
		amount, err := t.Amount.Float64()
		if err != nil {
			continue
		}
		sums[ts.Format("2006-01")] += math.Abs(amount)
	}
	if len(sums) == 0 {
		return nil
	}

	months := make([]string, 0, len(sums))
	for m := range sums {
		months = append(months, m)
	}
	sort.Strings(months)

	rows := make([]MonthlyAmount, 0, len(months))
	for _, m := range months {
		rows = append(rows, MonthlyAmount{Month: m, Amount: sums[m]})
	}
	return rows
}

// SpendingByWeekday averages absolute amounts per weekday over the trailing
// quarter. At most seven rows, Monday first; weekdays absent from the window
// produce no row.
func SpendingByWeekday(txs []core.Transaction, anchor time.Time) []WeekdayAverage {
	if anchor.IsZero() {
		anchor = time.Now()
	}
	window := core.TrailingQuarter(anchor)

	sums := make(map[time.Weekday]float64)
	counts := make(map[time.Weekday]int)
	for _, t := range txs {
		ts, err := t.OperationDate.Time()
		if err != nil || !window.Contains(ts) {
			continue
		}
		amount, err := t.Amount.Float64()
		if err != nil {
			continue
		}
		sums[ts.Weekday()] += math.Abs(amount)
		counts[ts.Weekday()]++
	}
	if len(counts) == 0 {
		return nil
	}

	rows := make([]WeekdayAverage, 0, len(counts))
	for _, wd := range weekdayOrder {
		if n := counts[wd]; n > 0 {
			rows = append(rows, WeekdayAverage{
				Weekday: weekdayNames[wd],
				Average: sums[wd] / float64(n),
			})
		}
	}
	return rows
}

// SpendingByWorkday averages absolute amounts per day-type class (Mon-Fri
// against Sat-Sun) over the trailing quarter. At most two rows, workdays
// first.
func SpendingByWorkday(txs []core.Transaction, anchor time.Time) []DayTypeAverage {
	if anchor.IsZero() {
		anchor = time.Now()
	}
	window := core.TrailingQuarter(anchor)

	sums := make(map[string]float64)
	counts := make(map[string]int)
	for _, t := range txs {
		ts, err := t.OperationDate.Time()
		if err != nil || !window.Contains(ts) {
			continue
		}
		amount, err := t.Amount.Float64()
		if err != nil {
			continue
		}
		class := DayTypeWork
		if wd := ts.Weekday(); wd == time.Saturday || wd == time.Sunday {
			class = DayTypeRest
		}
		sums[class] += math.Abs(amount)
		counts[class]++
	}
	if len(counts) == 0 {
		return nil
	}

	rows := make([]DayTypeAverage, 0, 2)
	for _, class := range []string{DayTypeWork, DayTypeRest} {
		if n := counts[class]; n > 0 {
			rows = append(rows, DayTypeAverage{DayType: class, Average: sums[class] / float64(n)})
		}
	}
	return rows
}
