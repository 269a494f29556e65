package core

import "time"

// Period selects a calendar window anchored at a reference instant. The
// letter values match the query parameters of the original report API.
type Period string

const (
	PeriodWeek  Period = "W"
	PeriodMonth Period = "M"
	PeriodYear  Period = "Y"
	PeriodAll   Period = "ALL"
)

// trailingQuarterDays is the fixed lookback of the report functions,
// independent of calendar month boundaries.
const trailingQuarterDays = 90

// allTimeFloor bounds the ALL period from below.
var allTimeFloor = time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC)

// Window is an inclusive [Start, End] datetime range, Start <= End.
type Window struct {
	Start time.Time
	End   time.Time
}

// ComputeWindow returns the inclusive bounds for the named period anchored
// at ref. The end is always ref itself. In the non-week branches the start
// keeps ref's time of day rather than snapping to midnight, so filtering
// stays hour-granular. An unrecognized period silently falls back to MONTH.
func ComputeWindow(ref time.Time, period Period) Window {
	switch period {
	case PeriodWeek:
		// Most recent Monday at or before ref, same time of day.
		offset := (int(ref.Weekday()) + 6) % 7
		return Window{Start: ref.AddDate(0, 0, -offset), End: ref}
	case PeriodYear:
		start := time.Date(ref.Year(), time.January, 1,
			ref.Hour(), ref.Minute(), ref.Second(), ref.Nanosecond(), ref.Location())
		return Window{Start: start, End: ref}
	case PeriodAll:
		return Window{Start: allTimeFloor.In(ref.Location()), End: ref}
	default: // PeriodMonth and anything unrecognized
		start := time.Date(ref.Year(), ref.Month(), 1,
			ref.Hour(), ref.Minute(), ref.Second(), ref.Nanosecond(), ref.Location())
		return Window{Start: start, End: ref}
	}
}

// TrailingQuarter returns the fixed 90-day lookback ending at anchor.
func TrailingQuarter(anchor time.Time) Window {
	return Window{Start: anchor.AddDate(0, 0, -trailingQuarterDays), End: anchor}
}

// Contains reports whether t lies within the window, bounds inclusive.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// FilterByWindow keeps rows whose operation date parses and lies within the
// window. Rows with a missing or unparseable date are dropped. A collection
// where no row carries a date value at all has no temporal dimension and is
// returned unchanged.
func FilterByWindow(txs []Transaction, w Window) []Transaction {
	dated := false
	for _, t := range txs {
		if !t.OperationDate.IsMissing() {
			dated = true
			break
		}
	}
	if !dated {
		return txs
	}

	var out []Transaction
	for _, t := range txs {
		ts, err := t.OperationDate.Time()
		if err != nil {
			continue
		}
		if w.Contains(ts) {
			out = append(out, t)
		}
	}
	return out
}
