package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/frostline-ops/frostline-ops/internal/ledger"
	"github.com/frostline-ops/frostline-ops/internal/report"
)

func TestWriteSummaryCSV(t *testing.T) {
	var buf bytes.Buffer
	summary := report.Summary{
		TotalRevenue: 375000,
		CashRevenue:  250000,
		NetLiquidity: -25000,
		BlocksSold:   15,
	}
	if err := WriteSummaryCSV(&buf, summary, report.NewAmountFormatter("SSP")); err != nil {
		t.Fatalf("write summary: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	if records[0][0] != "Metric" {
		t.Fatalf("header = %v", records[0])
	}
	if records[1][0] != "Total Revenue" || records[1][1] != "375000.00" {
		t.Fatalf("revenue row = %v", records[1])
	}
	if records[1][2] != "375,000 SSP" {
		t.Fatalf("revenue display = %q", records[1][2])
	}
}

func TestWriteTrendCSV(t *testing.T) {
	var buf bytes.Buffer
	points := []report.TrendPoint{
		{Date: "2025-03-09", Revenue: 125000, Cost: 200000, BlocksSold: 5, Profit: -75000},
		{Date: "2025-03-10", Revenue: 250000, Cost: 30000, BlocksSold: 10, Profit: 220000},
	}
	if err := WriteTrendCSV(&buf, points); err != nil {
		t.Fatalf("write trend: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("rows = %d, want 3", len(records))
	}
	if records[2][0] != "2025-03-10" || records[2][4] != "220000.00" {
		t.Fatalf("last row = %v", records[2])
	}
}

func TestWriteDebtorsCSVIncludesTotal(t *testing.T) {
	var buf bytes.Buffer
	rep := report.DebtorReport{
		OutstandingBalance: 575000,
		Debtors: []ledger.Customer{
			{ID: "cus-1", Name: "Bol", PhoneNumber: "+211-900-001", TotalCreditDue: 450000},
			{ID: "cus-2", Name: "Deng", PhoneNumber: "+211-900-002", TotalCreditDue: 125000},
		},
	}
	if err := WriteDebtorsCSV(&buf, rep); err != nil {
		t.Fatalf("write debtors: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "Bol,+211-900-001,450000.00") {
		t.Fatalf("missing debtor row in:\n%s", out)
	}
	if !strings.Contains(out, "TOTAL,,575000.00") {
		t.Fatalf("missing total row in:\n%s", out)
	}
}
