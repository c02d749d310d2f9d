package report

import (
	"testing"

	"github.com/frostline-ops/frostline-ops/internal/ledger"
)

func TestDebtorsSortedLargestFirst(t *testing.T) {
	customers := []ledger.Customer{
		{ID: "cus-1", Name: "Deng", TotalCreditDue: 125000},
		{ID: "cus-2", Name: "Ayen", TotalCreditDue: 0},
		{ID: "cus-3", Name: "Bol", TotalCreditDue: 450000},
		{ID: "cus-4", Name: "Nyandeng", TotalCreditDue: 125000},
	}

	debtors := Debtors(customers)
	if len(debtors) != 3 {
		t.Fatalf("debtors = %d, want 3", len(debtors))
	}
	if debtors[0].ID != "cus-3" {
		t.Fatalf("largest debtor = %s, want cus-3", debtors[0].ID)
	}
	// Equal balances keep insertion order.
	if debtors[1].ID != "cus-1" || debtors[2].ID != "cus-4" {
		t.Fatalf("tie order = %s, %s", debtors[1].ID, debtors[2].ID)
	}

	if got := OutstandingBalance(customers); got != 700000 {
		t.Fatalf("outstanding = %v, want 700000", got)
	}
}

func TestDebtorsEmpty(t *testing.T) {
	if debtors := Debtors(nil); len(debtors) != 0 {
		t.Fatalf("debtors = %v, want empty", debtors)
	}
	if got := OutstandingBalance(nil); got != 0 {
		t.Fatalf("outstanding = %v, want 0", got)
	}
}
