package report

import (
	"testing"

	"github.com/frostline-ops/frostline-ops/internal/ledger"
)

func TestCostByCategoryIsComplete(t *testing.T) {
	sums := CostByCategory([]ledger.Expense{
		{Category: ledger.CategorySalary, Amount: 60000},
		{Category: ledger.CategorySalary, Amount: 40000},
	})

	if len(sums) != len(ledger.Categories) {
		t.Fatalf("categories = %d, want %d", len(sums), len(ledger.Categories))
	}
	if sums[ledger.CategorySalary] != 100000 {
		t.Fatalf("salary = %v, want 100000", sums[ledger.CategorySalary])
	}
	if v, ok := sums[ledger.CategoryMaintenance]; !ok || v != 0 {
		t.Fatalf("maintenance should be present with 0, got %v ok=%v", v, ok)
	}
}

func TestCostDistributionFuelFirstZerosOmitted(t *testing.T) {
	slices := CostDistribution(
		[]ledger.Expense{
			{Category: ledger.CategoryFood, Amount: 15000},
			{Category: ledger.CategorySalary, Amount: 60000},
		},
		[]ledger.FuelLog{{TotalCost: 200000}},
	)

	if len(slices) != 3 {
		t.Fatalf("slices = %d, want 3", len(slices))
	}
	if slices[0].Label != "Generator Fuel" || slices[0].Amount != 200000 {
		t.Fatalf("first slice = %+v", slices[0])
	}
	for _, s := range slices {
		if s.Amount == 0 {
			t.Fatalf("zero slice leaked: %+v", s)
		}
	}
}

func TestCostDistributionNoFuel(t *testing.T) {
	slices := CostDistribution([]ledger.Expense{{Category: ledger.CategoryFood, Amount: 100}}, nil)
	if len(slices) != 1 || slices[0].Label != "Food" {
		t.Fatalf("slices = %+v", slices)
	}
}
