package report

import (
	"testing"

	"github.com/frostline-ops/frostline-ops/internal/ledger"
)

func sampleSnapshot() ledger.Snapshot {
	return ledger.Snapshot{
		Customers: []ledger.Customer{
			{ID: "cus-1", Name: "Deng", TotalCreditDue: 125000},
			{ID: "cus-2", Name: "Ayen"},
		},
		Sales: []ledger.Sale{
			{ID: "sal-1", CustomerID: "cus-1", QuantityBlocks: 10, UnitPrice: 25000, TotalAmount: 250000, PaymentStatus: ledger.PaymentCash},
			{ID: "sal-2", CustomerID: "cus-1", QuantityBlocks: 5, UnitPrice: 25000, TotalAmount: 125000, PaymentStatus: ledger.PaymentCredit},
		},
		Expenses: []ledger.Expense{
			{ID: "exp-1", Category: ledger.CategorySalary, Amount: 60000},
			{ID: "exp-2", Category: ledger.CategoryFood, Amount: 15000},
		},
		FuelLogs: []ledger.FuelLog{
			{ID: "ful-1", LitersAdded: 50, CostPerLiter: 4000, GeneratorHoursRun: 12, TotalCost: 200000},
		},
	}
}

func TestBuildSummary(t *testing.T) {
	summary := BuildSummary(sampleSnapshot())

	if summary.TotalRevenue != 375000 {
		t.Fatalf("total revenue = %v, want 375000", summary.TotalRevenue)
	}
	if summary.CashRevenue != 250000 {
		t.Fatalf("cash revenue = %v, want 250000", summary.CashRevenue)
	}
	if summary.CreditRevenue != 125000 {
		t.Fatalf("credit revenue = %v, want 125000", summary.CreditRevenue)
	}
	// cash 250000 - expenses 75000 - fuel 200000
	if summary.NetLiquidity != -25000 {
		t.Fatalf("net liquidity = %v, want -25000", summary.NetLiquidity)
	}
	if summary.BlocksSold != 15 {
		t.Fatalf("blocks sold = %d, want 15", summary.BlocksSold)
	}
	// (75000 + 200000) / 15
	want := 275000.0 / 15
	if summary.CostPerBlock != want {
		t.Fatalf("cost per block = %v, want %v", summary.CostPerBlock, want)
	}
	if summary.NetProfit != 100000 {
		t.Fatalf("net profit = %v, want 100000", summary.NetProfit)
	}
	// Computed through variables so rounding happens step by step,
	// exactly as the derivation does.
	profit, revenue := 100000.0, 375000.0
	wantMargin := profit / revenue * 100
	if summary.ProfitMargin != wantMargin {
		t.Fatalf("profit margin = %v, want %v", summary.ProfitMargin, wantMargin)
	}
	if summary.LitersAdded != 50 || summary.GeneratorHours != 12 {
		t.Fatalf("fuel figures = %v liters, %v hours", summary.LitersAdded, summary.GeneratorHours)
	}
	if summary.OutstandingBalance != 125000 {
		t.Fatalf("outstanding = %v, want 125000", summary.OutstandingBalance)
	}
}

func TestBuildSummaryEmptyLedger(t *testing.T) {
	summary := BuildSummary(ledger.Snapshot{})

	if summary.CostPerBlock != 0 {
		t.Fatalf("cost per block on empty ledger = %v, want 0", summary.CostPerBlock)
	}
	if summary.ProfitMargin != 0 {
		t.Fatalf("profit margin on empty ledger = %v, want 0", summary.ProfitMargin)
	}
	if summary.TotalRevenue != 0 || summary.NetLiquidity != 0 {
		t.Fatalf("empty ledger should produce zero figures: %+v", summary)
	}
}

func TestSplitByPayment(t *testing.T) {
	split := SplitByPayment(sampleSnapshot().Sales)

	if split.CashAmount != 250000 || split.CreditAmount != 125000 {
		t.Fatalf("split = %+v", split)
	}
	cash, total := 250000.0, 375000.0
	want := cash / total * 100
	if split.CashShare != want {
		t.Fatalf("cash share = %v, want %v", split.CashShare, want)
	}
}

func TestSplitByPaymentNoRevenue(t *testing.T) {
	split := SplitByPayment(nil)
	if split.CashShare != 0 {
		t.Fatalf("cash share with no sales = %v, want 0", split.CashShare)
	}
}
