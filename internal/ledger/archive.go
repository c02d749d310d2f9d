package ledger

import "context"

// Archiver is the optional persistence boundary: one append per write,
// one load returning the initial snapshot of all five collections.
// Derived totals and credit balances must be recomputed on load, never
// trusted from storage.
type Archiver interface {
	Load(ctx context.Context) (Snapshot, error)
	AppendCustomer(ctx context.Context, c Customer) error
	AppendSale(ctx context.Context, s Sale) error
	AppendExpense(ctx context.Context, e Expense) error
	AppendFuelLog(ctx context.Context, f FuelLog) error
	AppendProduction(ctx context.Context, p ProductionLog) error
}
