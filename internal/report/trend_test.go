package report

import (
	"testing"
	"time"

	"github.com/frostline-ops/frostline-ops/internal/ledger"
)

func TestDailyTrendBucketsByUTCDay(t *testing.T) {
	asOf := time.Date(2025, 3, 10, 18, 30, 0, 0, time.UTC)
	day := func(offset int, hour int) time.Time {
		return time.Date(2025, 3, 10+offset, hour, 0, 0, 0, time.UTC)
	}

	sales := []ledger.Sale{
		{ID: "sal-1", CreatedAt: day(0, 9), QuantityBlocks: 10, TotalAmount: 250000},
		{ID: "sal-2", CreatedAt: day(-2, 14), QuantityBlocks: 5, TotalAmount: 125000},
		{ID: "sal-3", CreatedAt: day(-10, 10), QuantityBlocks: 99, TotalAmount: 999999}, // outside window
	}
	expenses := []ledger.Expense{
		{ID: "exp-1", CreatedAt: day(0, 11), Amount: 30000},
	}
	fuelLogs := []ledger.FuelLog{
		{ID: "ful-1", CreatedAt: day(-2, 8), TotalCost: 200000},
	}

	points := DailyTrend(sales, expenses, fuelLogs, 7, asOf)
	if len(points) != 7 {
		t.Fatalf("points = %d, want 7", len(points))
	}
	if points[0].Date != "2025-03-04" || points[6].Date != "2025-03-10" {
		t.Fatalf("window = %s .. %s", points[0].Date, points[6].Date)
	}

	last := points[6]
	if last.Revenue != 250000 || last.BlocksSold != 10 || last.Cost != 30000 {
		t.Fatalf("asOf day = %+v", last)
	}
	if last.Profit != 220000 {
		t.Fatalf("asOf day profit = %v, want 220000", last.Profit)
	}

	mid := points[4] // 2025-03-08
	if mid.Revenue != 125000 || mid.Cost != 200000 || mid.Profit != -75000 {
		t.Fatalf("mid day = %+v", mid)
	}

	for _, p := range points {
		if p.Revenue == 999999 {
			t.Fatalf("sale outside window leaked into %s", p.Date)
		}
	}
}

func TestDailyTrendEmptyLedgerStillFillsWindow(t *testing.T) {
	asOf := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	points := DailyTrend(nil, nil, nil, 7, asOf)

	if len(points) != 7 {
		t.Fatalf("points = %d, want 7", len(points))
	}
	for _, p := range points {
		if p.Revenue != 0 || p.Cost != 0 || p.BlocksSold != 0 || p.Profit != 0 {
			t.Fatalf("empty ledger bucket not zero: %+v", p)
		}
	}
}

func TestDailyTrendInvalidWindow(t *testing.T) {
	if points := DailyTrend(nil, nil, nil, 0, time.Now()); points != nil {
		t.Fatalf("window 0 = %v, want nil", points)
	}
}
