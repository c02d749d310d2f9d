package report

import (
	"github.com/frostline-ops/frostline-ops/internal/ledger"
)

// CostSlice is one labelled piece of the cost distribution.
type CostSlice struct {
	Label  string  `json:"label"`
	Amount float64 `json:"amount"`
}

// CostByCategory groups expenses by category. The mapping is complete:
// categories without expenses are present with a 0 sum, which is
// distinguishable from "category absent".
func CostByCategory(expenses []ledger.Expense) map[ledger.ExpenseCategory]float64 {
	sums := make(map[ledger.ExpenseCategory]float64, len(ledger.Categories))
	for _, c := range ledger.Categories {
		sums[c] = 0
	}
	for _, e := range expenses {
		sums[e.Category] += e.Amount
	}
	return sums
}

// CostDistribution builds the display slices: generator fuel first,
// then the expense categories with their display labels. Zero slices
// are omitted for display.
func CostDistribution(expenses []ledger.Expense, fuelLogs []ledger.FuelLog) []CostSlice {
	var slices []CostSlice
	if fuel := TotalFuelCost(fuelLogs); fuel > 0 {
		slices = append(slices, CostSlice{Label: "Generator Fuel", Amount: fuel})
	}
	sums := CostByCategory(expenses)
	for _, c := range ledger.Categories {
		if sums[c] > 0 {
			slices = append(slices, CostSlice{Label: ledger.CategoryLabels[c], Amount: sums[c]})
		}
	}
	return slices
}
