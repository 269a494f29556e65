package reports

import (
	"math"
	"testing"
	"time"

	"vypiska/internal/core"
)

var reportAnchor = time.Date(2023, 11, 25, 12, 0, 0, 0, time.UTC)

// quarterFixture places spending at fixed offsets from the anchor: two food
// purchases within the anchor month, one in a previous month still inside
// the 90-day lookback, and one just outside it.
func quarterFixture() []core.Transaction {
	day := func(offset int) core.Date {
		return core.DateTime(reportAnchor.AddDate(0, 0, -offset))
	}
	return []core.Transaction{
		{OperationDate: day(10), Amount: core.AmountFloat(-500), Category: "Еда"},
		{OperationDate: day(20), Amount: core.AmountFloat(-300), Category: "Еда"},
		{OperationDate: day(40), Amount: core.AmountFloat(-1000), Category: "Развлечения"},
		{OperationDate: day(70), Amount: core.AmountFloat(-200), Category: "Еда"},
		{OperationDate: day(100), Amount: core.AmountFloat(-999), Category: "Еда"},
	}
}

func TestSpendingByCategory(t *testing.T) {
	rows := SpendingByCategory(quarterFixture(), "Еда", reportAnchor)

	want := []MonthlyAmount{
		{Month: "2023-09", Amount: 200},
		{Month: "2023-11", Amount: 800},
	}
	if len(rows) != len(want) {
		t.Fatalf("SpendingByCategory() returned %d rows, want %d: %+v", len(rows), len(want), rows)
	}
	for i, row := range rows {
		if row.Month != want[i].Month {
			t.Errorf("row %d month = %q, want %q", i, row.Month, want[i].Month)
		}
		if math.Abs(row.Amount-want[i].Amount) > 1e-9 {
			t.Errorf("row %d amount = %v, want %v", i, row.Amount, want[i].Amount)
		}
	}

	var total float64
	for _, row := range rows {
		total += row.Amount
	}
	if math.Abs(total-1000) > 1e-9 {
		t.Errorf("total = %v, want 1000", total)
	}
}

func TestSpendingByCategory_NoMatches(t *testing.T) {
	if rows := SpendingByCategory(quarterFixture(), "Аптеки", reportAnchor); rows != nil {
		t.Errorf("SpendingByCategory() = %+v, want nil", rows)
	}
	if rows := SpendingByCategory(nil, "Еда", reportAnchor); rows != nil {
		t.Errorf("SpendingByCategory(nil) = %+v, want nil", rows)
	}
}

func TestSpendingByCategory_SkipsBadRows(t *testing.T) {
	txs := []core.Transaction{
		{OperationDate: core.DateString("2023-11-15 10:00:00"), Amount: core.AmountFloat(-100), Category: "Еда"},
		{OperationDate: core.DateString("вчера"), Amount: core.AmountFloat(-999), Category: "Еда"},
		{OperationDate: core.DateString("2023-11-16 10:00:00"), Amount: core.AmountString("много"), Category: "Еда"},
	}

	rows := SpendingByCategory(txs, "Еда", reportAnchor)
	if len(rows) != 1 {
		t.Fatalf("SpendingByCategory() returned %d rows, want 1", len(rows))
	}
	if math.Abs(rows[0].Amount-100) > 1e-9 {
		t.Errorf("amount = %v, want 100", rows[0].Amount)
	}
}

func TestSpendingByWeekday(t *testing.T) {
	txs := []core.Transaction{
		{OperationDate: core.DateString("2023-11-06 10:00:00"), Amount: core.AmountFloat(-100)}, // Monday
		{OperationDate: core.DateString("2023-11-13 10:00:00"), Amount: core.AmountFloat(-300)}, // Monday
		{OperationDate: core.DateString("2023-11-11 10:00:00"), Amount: core.AmountFloat(-50)},  // Saturday
	}

	rows := SpendingByWeekday(txs, reportAnchor)
	want := []WeekdayAverage{
		{Weekday: "Понедельник", Average: 200},
		{Weekday: "Суббота", Average: 50},
	}
	if len(rows) != len(want) {
		t.Fatalf("SpendingByWeekday() returned %d rows, want %d: %+v", len(rows), len(want), rows)
	}
	for i, row := range rows {
		if row.Weekday != want[i].Weekday {
			t.Errorf("row %d weekday = %q, want %q", i, row.Weekday, want[i].Weekday)
		}
		if math.Abs(row.Average-want[i].Average) > 1e-9 {
			t.Errorf("row %d average = %v, want %v", i, row.Average, want[i].Average)
		}
	}
}

func TestSpendingByWeekday_Empty(t *testing.T) {
	if rows := SpendingByWeekday(nil, reportAnchor); rows != nil {
		t.Errorf("SpendingByWeekday(nil) = %+v, want nil", rows)
	}
}

func TestSpendingByWorkday(t *testing.T) {
	txs := []core.Transaction{
		{OperationDate: core.DateString("2023-11-06 10:00:00"), Amount: core.AmountFloat(-100)}, // Monday
		{OperationDate: core.DateString("2023-11-07 10:00:00"), Amount: core.AmountFloat(-200)}, // Tuesday
		{OperationDate: core.DateString("2023-11-11 10:00:00"), Amount: core.AmountFloat(-60)},  // Saturday
		{OperationDate: core.DateString("2023-11-12 10:00:00"), Amount: core.AmountFloat(-40)},  // Sunday
	}

	rows := SpendingByWorkday(txs, reportAnchor)
	want := []DayTypeAverage{
		{DayType: DayTypeWork, Average: 150},
		{DayType: DayTypeRest, Average: 50},
	}
	if len(rows) != len(want) {
		t.Fatalf("SpendingByWorkday() returned %d rows, want %d: %+v", len(rows), len(want), rows)
	}
	for i, row := range rows {
		if row.DayType != want[i].DayType {
			t.Errorf("row %d day type = %q, want %q", i, row.DayType, want[i].DayType)
		}
		if math.Abs(row.Average-want[i].Average) > 1e-9 {
			t.Errorf("row %d average = %v, want %v", i, row.Average, want[i].Average)
		}
	}
}

func TestSpendingByWorkday_WorkdaysOnly(t *testing.T) {
	txs := []core.Transaction{
		{OperationDate: core.DateString("2023-11-08 10:00:00"), Amount: core.AmountFloat(-90)}, // Wednesday
	}

	rows := SpendingByWorkday(txs, reportAnchor)
	if len(rows) != 1 {
		t.Fatalf("SpendingByWorkday() returned %d rows, want 1", len(rows))
	}
	if rows[0].DayType != DayTypeWork {
		t.Errorf("day type = %q, want %q", rows[0].DayType, DayTypeWork)
	}
}
