package ledger

import (
	"fmt"
	"sync"

	"github.com/frostline-ops/frostline-ops/internal/platform/httpx"
)

// Store is the in-memory system of record. Collections are append-only;
// the only mutation besides appends is the credit-balance increase
// applied when a credit sale commits. A single mutex serializes writers
// so concurrent credit postings to the same customer cannot race.
//
// A Store is an injected handle, never package state, so sessions and
// tests run isolated instances.
type Store struct {
	mu sync.Mutex

	customers   []Customer
	customerIdx map[string]int

	sales          []Sale
	expenses       []Expense
	fuelLogs       []FuelLog
	productionLogs []ProductionLog
}

// NewStore builds an empty Store.
func NewStore() *Store {
	return &Store{customerIdx: make(map[string]int)}
}

// Restore replaces the store state with an archive snapshot.
func (s *Store) Restore(snap Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.customers = append([]Customer(nil), snap.Customers...)
	s.customerIdx = make(map[string]int, len(s.customers))
	for i, c := range s.customers {
		s.customerIdx[c.ID] = i
	}
	s.sales = append([]Sale(nil), snap.Sales...)
	s.expenses = append([]Expense(nil), snap.Expenses...)
	s.fuelLogs = append([]FuelLog(nil), snap.FuelLogs...)
	s.productionLogs = append([]ProductionLog(nil), snap.ProductionLogs...)
}

// AddCustomer appends a customer to the ledger.
func (s *Store) AddCustomer(c Customer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.customerIdx[c.ID]; exists {
		return fmt.Errorf("%w: customer %s", httpx.ErrDuplicate, c.ID)
	}
	s.customers = append(s.customers, c)
	s.customerIdx[c.ID] = len(s.customers) - 1
	return nil
}

// GetCustomer returns the customer with the given id.
func (s *Store) GetCustomer(id string) (Customer, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.customerIdx[id]
	if !ok {
		return Customer{}, false
	}
	return s.customers[i], true
}

// CommitSale appends a sale, and for credit sales increases the
// buyer's outstanding balance in the same critical section. Both
// happen or neither: an unresolvable customer leaves the ledger
// untouched.
func (s *Store) CommitSale(sale Sale) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.customerIdx[sale.CustomerID]
	if !ok {
		return fmt.Errorf("%w: customer %s", httpx.ErrNotFound, sale.CustomerID)
	}
	if sale.PaymentStatus == PaymentCredit {
		s.customers[i].TotalCreditDue += sale.TotalAmount
	}
	s.sales = append(s.sales, sale)
	return nil
}

// AppendExpense appends an expense entry.
func (s *Store) AppendExpense(e Expense) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expenses = append(s.expenses, e)
}

// AppendFuelLog appends a fuel log entry.
func (s *Store) AppendFuelLog(f FuelLog) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fuelLogs = append(s.fuelLogs, f)
}

// AppendProduction appends a production log entry.
func (s *Store) AppendProduction(p ProductionLog) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.productionLogs = append(s.productionLogs, p)
}

// ListCustomers returns an insertion-ordered snapshot copy.
func (s *Store) ListCustomers() []Customer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Customer(nil), s.customers...)
}

// ListSales returns an insertion-ordered snapshot copy.
func (s *Store) ListSales() []Sale {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Sale(nil), s.sales...)
}

// ListExpenses returns an insertion-ordered snapshot copy.
func (s *Store) ListExpenses() []Expense {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Expense(nil), s.expenses...)
}

// ListFuelLogs returns an insertion-ordered snapshot copy.
func (s *Store) ListFuelLogs() []FuelLog {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]FuelLog(nil), s.fuelLogs...)
}

// ListProductionLogs returns an insertion-ordered snapshot copy.
func (s *Store) ListProductionLogs() []ProductionLog {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]ProductionLog(nil), s.productionLogs...)
}

// SnapshotAll captures every collection in one locked pass, so report
// derivations see a consistent view.
func (s *Store) SnapshotAll() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		Customers:      append([]Customer(nil), s.customers...),
		Sales:          append([]Sale(nil), s.sales...),
		Expenses:       append([]Expense(nil), s.expenses...),
		FuelLogs:       append([]FuelLog(nil), s.fuelLogs...),
		ProductionLogs: append([]ProductionLog(nil), s.productionLogs...),
	}
}
