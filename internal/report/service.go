package report

import (
	"context"
	"strconv"
	"time"

	"github.com/frostline-ops/frostline-ops/internal/ledger"
)

// Snapshots supplies a consistent view of all ledger collections.
// Implemented by *ledger.Store and by archive-backed loaders in the
// worker.
type Snapshots interface {
	SnapshotAll() ledger.Snapshot
}

// ServiceConfig tunes report behaviour.
type ServiceConfig struct {
	// TrendWindowDays is the default trailing window for DailyTrend.
	TrendWindowDays int
	// Now overrides the clock, for tests.
	Now func() time.Time
}

// Service coordinates derivation execution with the cache layer.
type Service struct {
	source     Snapshots
	cache      *Cache
	windowDays int
	now        func() time.Time
}

// NewService wires a snapshot source with a Cache helper.
func NewService(source Snapshots, cache *Cache, cfg ServiceConfig) *Service {
	windowDays := cfg.TrendWindowDays
	if windowDays <= 0 {
		windowDays = 7
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Service{source: source, cache: cache, windowDays: windowDays, now: now}
}

// TrendWindowDays reports the configured default window.
func (s *Service) TrendWindowDays() int { return s.windowDays }

// GetSummary resolves the dashboard summary using cache-aware lookups.
func (s *Service) GetSummary(ctx context.Context) (Summary, error) {
	loader := func(ctx context.Context) (interface{}, error) {
		return BuildSummary(s.source.SnapshotAll()), nil
	}
	key, err := s.cache.BuildKey(ctx, "reports", "summary")
	if err != nil {
		return Summary{}, err
	}
	var summary Summary
	if err := s.cache.FetchJSON(ctx, key, &summary, loader); err != nil {
		return Summary{}, err
	}
	return summary, nil
}

// GetPaymentSplit resolves the cash/credit channel breakdown.
func (s *Service) GetPaymentSplit(ctx context.Context) (PaymentSplit, error) {
	loader := func(ctx context.Context) (interface{}, error) {
		return SplitByPayment(s.source.SnapshotAll().Sales), nil
	}
	key, err := s.cache.BuildKey(ctx, "reports", "payment_split")
	if err != nil {
		return PaymentSplit{}, err
	}
	var split PaymentSplit
	if err := s.cache.FetchJSON(ctx, key, &split, loader); err != nil {
		return PaymentSplit{}, err
	}
	return split, nil
}

// GetTrend resolves the trailing daily trend. Days <= 0 falls back to
// the configured window.
func (s *Service) GetTrend(ctx context.Context, days int) ([]TrendPoint, error) {
	if days <= 0 {
		days = s.windowDays
	}
	asOf := s.now().UTC()
	loader := func(ctx context.Context) (interface{}, error) {
		snap := s.source.SnapshotAll()
		return DailyTrend(snap.Sales, snap.Expenses, snap.FuelLogs, days, asOf), nil
	}
	// The asOf day participates in the key so a cached window never
	// leaks across midnight.
	key, err := s.cache.BuildKey(ctx, "reports", "trend", strconv.Itoa(days), asOf.Format(trendDateLayout))
	if err != nil {
		return nil, err
	}
	var points []TrendPoint
	if err := s.cache.FetchJSON(ctx, key, &points, loader); err != nil {
		return nil, err
	}
	return points, nil
}

// GetCostBreakdown resolves the per-category sums and display slices.
func (s *Service) GetCostBreakdown(ctx context.Context) (CostBreakdown, error) {
	loader := func(ctx context.Context) (interface{}, error) {
		snap := s.source.SnapshotAll()
		return CostBreakdown{
			ByCategory:   CostByCategory(snap.Expenses),
			Distribution: CostDistribution(snap.Expenses, snap.FuelLogs),
		}, nil
	}
	key, err := s.cache.BuildKey(ctx, "reports", "costs")
	if err != nil {
		return CostBreakdown{}, err
	}
	var breakdown CostBreakdown
	if err := s.cache.FetchJSON(ctx, key, &breakdown, loader); err != nil {
		return CostBreakdown{}, err
	}
	return breakdown, nil
}

// GetDebtors returns the outstanding balance and the debtor ranking.
// Cheap enough to skip the cache.
func (s *Service) GetDebtors(ctx context.Context) DebtorReport {
	customers := s.source.SnapshotAll().Customers
	return DebtorReport{
		OutstandingBalance: OutstandingBalance(customers),
		Debtors:            Debtors(customers),
	}
}

// GetActivity returns the merged activity feed, newest first.
func (s *Service) GetActivity(ctx context.Context, limit int) []ActivityEntry {
	snap := s.source.SnapshotAll()
	return ActivityFeed(snap.Sales, snap.Expenses, snap.FuelLogs, limit)
}

// Warmup primes the cached summary and trend, for the background
// worker.
func (s *Service) Warmup(ctx context.Context) error {
	if _, err := s.GetSummary(ctx); err != nil {
		return err
	}
	if _, err := s.GetTrend(ctx, s.windowDays); err != nil {
		return err
	}
	_, err := s.GetPaymentSplit(ctx)
	return err
}

// CostBreakdown pairs the complete category mapping with the display
// slices.
type CostBreakdown struct {
	ByCategory   map[ledger.ExpenseCategory]float64 `json:"by_category"`
	Distribution []CostSlice                        `json:"distribution"`
}

// DebtorReport pairs the aggregate balance with the ranked debtors.
type DebtorReport struct {
	OutstandingBalance float64           `json:"outstanding_balance"`
	Debtors            []ledger.Customer `json:"debtors"`
}

