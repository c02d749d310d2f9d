package report

import (
	"time"

	"github.com/frostline-ops/frostline-ops/internal/ledger"
)

// TrendPoint is one calendar-day bucket of the trailing trend.
type TrendPoint struct {
	Date       string  `json:"date"`
	Revenue    float64 `json:"revenue"`
	Cost       float64 `json:"cost"`
	BlocksSold int     `json:"blocks_sold"`
	Profit     float64 `json:"profit"`
}

const trendDateLayout = "2006-01-02"

// DailyTrend buckets sales, expenses and fuel logs into windowDays
// trailing UTC calendar-day buckets ending on the asOf day. The result
// always has exactly windowDays entries; days with no records carry
// all-zero figures so charts get a fixed-length series.
func DailyTrend(sales []ledger.Sale, expenses []ledger.Expense, fuelLogs []ledger.FuelLog, windowDays int, asOf time.Time) []TrendPoint {
	if windowDays <= 0 {
		return nil
	}

	end := asOf.UTC().Truncate(24 * time.Hour)
	index := make(map[string]int, windowDays)
	points := make([]TrendPoint, windowDays)
	for i := 0; i < windowDays; i++ {
		day := end.AddDate(0, 0, i-windowDays+1)
		key := day.Format(trendDateLayout)
		index[key] = i
		points[i] = TrendPoint{Date: key}
	}

	for _, s := range sales {
		if i, ok := index[s.CreatedAt.UTC().Format(trendDateLayout)]; ok {
			points[i].Revenue += s.TotalAmount
			points[i].BlocksSold += s.QuantityBlocks
		}
	}
	for _, e := range expenses {
		if i, ok := index[e.CreatedAt.UTC().Format(trendDateLayout)]; ok {
			points[i].Cost += e.Amount
		}
	}
	for _, f := range fuelLogs {
		if i, ok := index[f.CreatedAt.UTC().Format(trendDateLayout)]; ok {
			points[i].Cost += f.TotalCost
		}
	}

	for i := range points {
		points[i].Profit = points[i].Revenue - points[i].Cost
	}
	return points
}
