package report

import (
	"fmt"
	"sort"
	"time"

	"github.com/frostline-ops/frostline-ops/internal/ledger"
)

// ActivityKind tags an activity feed entry.
type ActivityKind string

const (
	ActivitySale    ActivityKind = "SALE"
	ActivityExpense ActivityKind = "EXPENSE"
	ActivityFuel    ActivityKind = "FUEL"
)

// ActivityEntry is one row of the master ledger feed.
type ActivityEntry struct {
	ID         string       `json:"id"`
	Kind       ActivityKind `json:"kind"`
	Label      string       `json:"label"`
	Detail     string       `json:"detail"`
	Amount     float64      `json:"amount"`
	OccurredAt string       `json:"occurred_at"`
}

// ActivityFeed merges sales, expenses and fuel logs into one feed,
// newest first, ties broken by insertion order. Limit <= 0 returns the
// whole feed.
func ActivityFeed(sales []ledger.Sale, expenses []ledger.Expense, fuelLogs []ledger.FuelLog, limit int) []ActivityEntry {
	type stamped struct {
		entry ActivityEntry
		at    int64
	}
	merged := make([]stamped, 0, len(sales)+len(expenses)+len(fuelLogs))

	for _, s := range sales {
		merged = append(merged, stamped{
			at: s.CreatedAt.UnixNano(),
			entry: ActivityEntry{
				ID:         s.ID,
				Kind:       ActivitySale,
				Label:      "Ice Sale",
				Detail:     fmt.Sprintf("%d blocks", s.QuantityBlocks),
				Amount:     s.TotalAmount,
				OccurredAt: s.CreatedAt.UTC().Format(time.RFC3339),
			},
		})
	}
	for _, e := range expenses {
		merged = append(merged, stamped{
			at: e.CreatedAt.UnixNano(),
			entry: ActivityEntry{
				ID:         e.ID,
				Kind:       ActivityExpense,
				Label:      ledger.CategoryLabels[e.Category],
				Detail:     e.Description,
				Amount:     e.Amount,
				OccurredAt: e.CreatedAt.UTC().Format(time.RFC3339),
			},
		})
	}
	for _, f := range fuelLogs {
		merged = append(merged, stamped{
			at: f.CreatedAt.UnixNano(),
			entry: ActivityEntry{
				ID:         f.ID,
				Kind:       ActivityFuel,
				Label:      "Generator Refuel",
				Detail:     fmt.Sprintf("%.0f liters", f.LitersAdded),
				Amount:     f.TotalCost,
				OccurredAt: f.CreatedAt.UTC().Format(time.RFC3339),
			},
		})
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].at > merged[j].at
	})

	if limit > 0 && limit < len(merged) {
		merged = merged[:limit]
	}
	entries := make([]ActivityEntry, len(merged))
	for i, m := range merged {
		entries[i] = m.entry
	}
	return entries
}
