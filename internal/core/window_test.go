package core

import (
	"testing"
	"time"
)

func TestComputeWindow(t *testing.T) {
	// A Friday afternoon.
	ref := time.Date(2021, 12, 31, 14, 30, 0, 0, time.UTC)

	tests := []struct {
		name      string
		period    Period
		wantStart time.Time
	}{
		{
			name:      "week starts at the most recent monday",
			period:    PeriodWeek,
			wantStart: time.Date(2021, 12, 27, 14, 30, 0, 0, time.UTC),
		},
		{
			name:      "month starts on the first",
			period:    PeriodMonth,
			wantStart: time.Date(2021, 12, 1, 14, 30, 0, 0, time.UTC),
		},
		{
			name:      "year starts on january first",
			period:    PeriodYear,
			wantStart: time.Date(2021, 1, 1, 14, 30, 0, 0, time.UTC),
		},
		{
			name:      "all time starts at the floor",
			period:    PeriodAll,
			wantStart: time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "unrecognized falls back to month",
			period:    Period("QUARTER"),
			wantStart: time.Date(2021, 12, 1, 14, 30, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := ComputeWindow(ref, tt.period)
			if !w.Start.Equal(tt.wantStart) {
				t.Errorf("Start = %v, want %v", w.Start, tt.wantStart)
			}
			if !w.End.Equal(ref) {
				t.Errorf("End = %v, want %v", w.End, ref)
			}
		})
	}
}

func TestComputeWindow_WeekOnMonday(t *testing.T) {
	// When the reference is already a Monday the week window collapses to
	// a single instant.
	ref := time.Date(2021, 12, 27, 9, 0, 0, 0, time.UTC)
	w := ComputeWindow(ref, PeriodWeek)
	if !w.Start.Equal(ref) || !w.End.Equal(ref) {
		t.Errorf("ComputeWindow() = [%v, %v], want collapsed at %v", w.Start, w.End, ref)
	}
}

func TestTrailingQuarter(t *testing.T) {
	anchor := time.Date(2023, 11, 25, 12, 0, 0, 0, time.UTC)
	w := TrailingQuarter(anchor)
	wantStart := time.Date(2023, 8, 27, 12, 0, 0, 0, time.UTC)
	if !w.Start.Equal(wantStart) {
		t.Errorf("Start = %v, want %v", w.Start, wantStart)
	}
	if !w.End.Equal(anchor) {
		t.Errorf("End = %v, want %v", w.End, anchor)
	}
}

func TestWindow_Contains(t *testing.T) {
	w := Window{
		Start: time.Date(2021, 12, 1, 14, 30, 0, 0, time.UTC),
		End:   time.Date(2021, 12, 31, 14, 30, 0, 0, time.UTC),
	}

	tests := []struct {
		name string
		t    time.Time
		want bool
	}{
		{"inside", time.Date(2021, 12, 15, 0, 0, 0, 0, time.UTC), true},
		{"at start", w.Start, true},
		{"at end", w.End, true},
		{"before start", w.Start.Add(-time.Second), false},
		{"after end", w.End.Add(time.Second), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := w.Contains(tt.t); got != tt.want {
				t.Errorf("Contains(%v) = %v, want %v", tt.t, got, tt.want)
			}
		})
	}
}

func TestFilterByWindow(t *testing.T) {
	w := Window{
		Start: time.Date(2021, 12, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2021, 12, 31, 23, 59, 59, 0, time.UTC),
	}

	txs := []Transaction{
		{OperationDate: DateString("2021-12-15 10:00:00"), Description: "inside"},
		{OperationDate: DateString("2021-11-30 23:59:59"), Description: "before"},
		{OperationDate: DateString("2022-01-01 00:00:00"), Description: "after"},
		{OperationDate: DateString("мусор"), Description: "unparseable"},
		{Description: "undated"},
	}

	got := FilterByWindow(txs, w)
	if len(got) != 1 {
		t.Fatalf("FilterByWindow() returned %d rows, want 1", len(got))
	}
	if got[0].Description != "inside" {
		t.Errorf("kept %q, want %q", got[0].Description, "inside")
	}
}

func TestFilterByWindow_UndatedCollection(t *testing.T) {
	// A collection with no date values at all has no temporal dimension
	// and passes through untouched.
	w := Window{
		Start: time.Date(2021, 12, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2021, 12, 31, 0, 0, 0, 0, time.UTC),
	}
	txs := []Transaction{
		{Description: "first"},
		{Description: "second"},
	}

	got := FilterByWindow(txs, w)
	if len(got) != len(txs) {
		t.Fatalf("FilterByWindow() returned %d rows, want %d", len(got), len(txs))
	}
}
