package report

import (
	"sort"

	"github.com/frostline-ops/frostline-ops/internal/ledger"
)

// OutstandingBalance sums total_credit_due across all customers.
func OutstandingBalance(customers []ledger.Customer) float64 {
	var sum float64
	for _, c := range customers {
		sum += c.TotalCreditDue
	}
	return sum
}

// Debtors returns the customers with a positive balance, largest
// first. Ties keep insertion order.
func Debtors(customers []ledger.Customer) []ledger.Customer {
	var debtors []ledger.Customer
	for _, c := range customers {
		if c.TotalCreditDue > 0 {
			debtors = append(debtors, c)
		}
	}
	sort.SliceStable(debtors, func(i, j int) bool {
		return debtors[i].TotalCreditDue > debtors[j].TotalCreditDue
	})
	return debtors
}
