// Package export serialises report figures to CSV.
package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/frostline-ops/frostline-ops/internal/report"
)

// WriteSummaryCSV serialises the dashboard summary to CSV.
func WriteSummaryCSV(w io.Writer, summary report.Summary, formatter *report.AmountFormatter) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	if err := writer.Write([]string{"Metric", "Value", "Display"}); err != nil {
		return err
	}
	records := [][]string{
		{"Total Revenue", formatFloat(summary.TotalRevenue), formatter.Format(summary.TotalRevenue)},
		{"Cash Revenue", formatFloat(summary.CashRevenue), formatter.Format(summary.CashRevenue)},
		{"Credit Revenue", formatFloat(summary.CreditRevenue), formatter.Format(summary.CreditRevenue)},
		{"Total Expenses", formatFloat(summary.TotalExpenses), formatter.Format(summary.TotalExpenses)},
		{"Fuel Cost", formatFloat(summary.TotalFuelCost), formatter.Format(summary.TotalFuelCost)},
		{"Net Liquidity", formatFloat(summary.NetLiquidity), formatter.Format(summary.NetLiquidity)},
		{"Blocks Sold", strconv.Itoa(summary.BlocksSold), strconv.Itoa(summary.BlocksSold)},
		{"Cost Per Block", formatFloat(summary.CostPerBlock), formatter.Format(summary.CostPerBlock)},
		{"Net Profit", formatFloat(summary.NetProfit), formatter.Format(summary.NetProfit)},
		{"Profit Margin %", formatFloat(summary.ProfitMargin), formatFloat(summary.ProfitMargin)},
		{"Outstanding Balance", formatFloat(summary.OutstandingBalance), formatter.Format(summary.OutstandingBalance)},
	}
	for _, record := range records {
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteTrendCSV emits the trailing daily trend as CSV.
func WriteTrendCSV(w io.Writer, points []report.TrendPoint) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()
	if err := writer.Write([]string{"Date", "Revenue", "Cost", "Blocks Sold", "Profit"}); err != nil {
		return err
	}
	for _, point := range points {
		if err := writer.Write([]string{
			point.Date,
			formatFloat(point.Revenue),
			formatFloat(point.Cost),
			strconv.Itoa(point.BlocksSold),
			formatFloat(point.Profit),
		}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteDebtorsCSV prints the debtor ledger to CSV.
func WriteDebtorsCSV(w io.Writer, rep report.DebtorReport) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()
	if err := writer.Write([]string{"Customer", "Phone", "Outstanding"}); err != nil {
		return err
	}
	for _, debtor := range rep.Debtors {
		if err := writer.Write([]string{
			debtor.Name,
			debtor.PhoneNumber,
			formatFloat(debtor.TotalCreditDue),
		}); err != nil {
			return err
		}
	}
	if err := writer.Write([]string{"TOTAL", "", formatFloat(rep.OutstandingBalance)}); err != nil {
		return err
	}
	writer.Flush()
	return writer.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
