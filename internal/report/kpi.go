// Package report derives the dashboard and analytics figures from
// ledger snapshots. Every function here is pure: same input
// collections, same output, no mutation.
package report

import (
	"github.com/frostline-ops/frostline-ops/internal/ledger"
)

// Summary contains the key figures surfaced on the dashboard.
type Summary struct {
	TotalRevenue       float64 `json:"total_revenue"`
	CashRevenue        float64 `json:"cash_revenue"`
	CreditRevenue      float64 `json:"credit_revenue"`
	TotalExpenses      float64 `json:"total_expenses"`
	TotalFuelCost      float64 `json:"total_fuel_cost"`
	NetLiquidity       float64 `json:"net_liquidity"`
	BlocksSold         int     `json:"blocks_sold"`
	CostPerBlock       float64 `json:"cost_per_block"`
	NetProfit          float64 `json:"net_profit"`
	ProfitMargin       float64 `json:"profit_margin"`
	LitersAdded        float64 `json:"liters_added"`
	GeneratorHours     float64 `json:"generator_hours"`
	OutstandingBalance float64 `json:"outstanding_balance"`
}

// PaymentSplit is the cash/credit channel breakdown.
type PaymentSplit struct {
	CashAmount   float64 `json:"cash_amount"`
	CreditAmount float64 `json:"credit_amount"`
	CashShare    float64 `json:"cash_share"`
}

// TotalRevenue sums total_amount over all sales.
func TotalRevenue(sales []ledger.Sale) float64 {
	var sum float64
	for _, s := range sales {
		sum += s.TotalAmount
	}
	return sum
}

// CashRevenue sums total_amount over cash sales only.
func CashRevenue(sales []ledger.Sale) float64 {
	var sum float64
	for _, s := range sales {
		if s.PaymentStatus == ledger.PaymentCash {
			sum += s.TotalAmount
		}
	}
	return sum
}

// TotalExpenses sums expense amounts.
func TotalExpenses(expenses []ledger.Expense) float64 {
	var sum float64
	for _, e := range expenses {
		sum += e.Amount
	}
	return sum
}

// TotalFuelCost sums fuel log total_cost.
func TotalFuelCost(fuelLogs []ledger.FuelLog) float64 {
	var sum float64
	for _, f := range fuelLogs {
		sum += f.TotalCost
	}
	return sum
}

// NetLiquidity is cash revenue minus expenses and fuel cost. Credit
// revenue is excluded: it is unrealized cash.
func NetLiquidity(sales []ledger.Sale, expenses []ledger.Expense, fuelLogs []ledger.FuelLog) float64 {
	return CashRevenue(sales) - TotalExpenses(expenses) - TotalFuelCost(fuelLogs)
}

// BlocksSold sums quantity_blocks over all sales.
func BlocksSold(sales []ledger.Sale) int {
	var sum int
	for _, s := range sales {
		sum += s.QuantityBlocks
	}
	return sum
}

// CostPerBlock divides production cost (expenses + fuel) by blocks
// sold. Zero blocks yields 0, never a division error.
func CostPerBlock(sales []ledger.Sale, expenses []ledger.Expense, fuelLogs []ledger.FuelLog) float64 {
	blocks := BlocksSold(sales)
	if blocks == 0 {
		return 0
	}
	return (TotalExpenses(expenses) + TotalFuelCost(fuelLogs)) / float64(blocks)
}

// NetProfit is revenue minus all costs, regardless of payment channel.
func NetProfit(sales []ledger.Sale, expenses []ledger.Expense, fuelLogs []ledger.FuelLog) float64 {
	return TotalRevenue(sales) - (TotalExpenses(expenses) + TotalFuelCost(fuelLogs))
}

// ProfitMargin is net profit as a percentage of revenue. Zero revenue
// yields 0.
func ProfitMargin(sales []ledger.Sale, expenses []ledger.Expense, fuelLogs []ledger.FuelLog) float64 {
	revenue := TotalRevenue(sales)
	if revenue == 0 {
		return 0
	}
	return NetProfit(sales, expenses, fuelLogs) / revenue * 100
}

// SplitByPayment breaks revenue into cash and credit channels.
// CashShare is 0 when there is no revenue.
func SplitByPayment(sales []ledger.Sale) PaymentSplit {
	total := TotalRevenue(sales)
	cash := CashRevenue(sales)
	split := PaymentSplit{
		CashAmount:   cash,
		CreditAmount: total - cash,
	}
	if total > 0 {
		split.CashShare = cash / total * 100
	}
	return split
}

// BuildSummary composes the dashboard summary from one snapshot.
func BuildSummary(snap ledger.Snapshot) Summary {
	var liters, hours float64
	for _, f := range snap.FuelLogs {
		liters += f.LitersAdded
		hours += f.GeneratorHoursRun
	}
	total := TotalRevenue(snap.Sales)
	cash := CashRevenue(snap.Sales)
	return Summary{
		TotalRevenue:       total,
		CashRevenue:        cash,
		CreditRevenue:      total - cash,
		TotalExpenses:      TotalExpenses(snap.Expenses),
		TotalFuelCost:      TotalFuelCost(snap.FuelLogs),
		NetLiquidity:       NetLiquidity(snap.Sales, snap.Expenses, snap.FuelLogs),
		BlocksSold:         BlocksSold(snap.Sales),
		CostPerBlock:       CostPerBlock(snap.Sales, snap.Expenses, snap.FuelLogs),
		NetProfit:          NetProfit(snap.Sales, snap.Expenses, snap.FuelLogs),
		ProfitMargin:       ProfitMargin(snap.Sales, snap.Expenses, snap.FuelLogs),
		LitersAdded:        liters,
		GeneratorHours:     hours,
		OutstandingBalance: OutstandingBalance(snap.Customers),
	}
}
