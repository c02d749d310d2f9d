package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/frostline-ops/frostline-ops/internal/platform/db"
	"github.com/frostline-ops/frostline-ops/internal/platform/httpx"
)

// Repository provides the PostgreSQL backed archive. Rows are only ever
// inserted; a bigserial seq column preserves insertion order across
// restarts.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const uniqueViolation = "23505"

// AppendCustomer inserts a customer row.
func (r *Repository) AppendCustomer(ctx context.Context, c Customer) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO customers (id, name, phone_number) VALUES ($1, $2, $3)`,
		c.ID, c.Name, c.PhoneNumber,
	)
	return mapPgError("customer", err)
}

// AppendSale inserts a sale row.
func (r *Repository) AppendSale(ctx context.Context, s Sale) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO sales (id, created_at, customer_id, quantity_blocks, unit_price, total_amount, payment_status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		s.ID, s.CreatedAt, s.CustomerID, s.QuantityBlocks, s.UnitPrice, s.TotalAmount, string(s.PaymentStatus),
	)
	return mapPgError("sale", err)
}

// AppendExpense inserts an expense row.
func (r *Repository) AppendExpense(ctx context.Context, e Expense) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO expenses (id, created_at, category, description, amount, currency)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		e.ID, e.CreatedAt, string(e.Category), e.Description, e.Amount, e.Currency,
	)
	return mapPgError("expense", err)
}

// AppendFuelLog inserts a fuel log row.
func (r *Repository) AppendFuelLog(ctx context.Context, f FuelLog) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO fuel_logs (id, created_at, liters_added, cost_per_liter, generator_hours_run, total_cost)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		f.ID, f.CreatedAt, f.LitersAdded, f.CostPerLiter, f.GeneratorHoursRun, f.TotalCost,
	)
	return mapPgError("fuel log", err)
}

// AppendProduction inserts a production log row.
func (r *Repository) AppendProduction(ctx context.Context, p ProductionLog) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO production_logs (id, created_at, quantity_produced, shift, notes)
		 VALUES ($1, $2, $3, $4, $5)`,
		p.ID, p.CreatedAt, p.QuantityProduced, string(p.Shift), p.Notes,
	)
	return mapPgError("production log", err)
}

// Load reads all five collections in insertion order, inside one
// repeatable-read transaction so the snapshot is consistent across
// tables. Derived values are recomputed here: sale and fuel totals
// from their factors, and every customer balance from the credit
// sales that reference it. Stored totals are never trusted.
func (r *Repository) Load(ctx context.Context) (Snapshot, error) {
	var snap Snapshot
	err := db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		loaded, err := loadSnapshot(ctx, tx)
		if err != nil {
			return err
		}
		snap = loaded
		return nil
	})
	if err != nil {
		return Snapshot{}, err
	}

	// Rebuild balances from credit sales.
	balances := make(map[string]float64, len(snap.Customers))
	for _, s := range snap.Sales {
		if s.PaymentStatus == PaymentCredit {
			balances[s.CustomerID] += s.TotalAmount
		}
	}
	for i := range snap.Customers {
		snap.Customers[i].TotalCreditDue = balances[snap.Customers[i].ID]
	}

	return snap, nil
}

func loadSnapshot(ctx context.Context, tx pgx.Tx) (Snapshot, error) {
	var snap Snapshot

	rows, err := tx.Query(ctx,
		`SELECT id, name, phone_number FROM customers ORDER BY seq`)
	if err != nil {
		return Snapshot{}, fmt.Errorf("ledger: load customers: %w", err)
	}
	for rows.Next() {
		var c Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.PhoneNumber); err != nil {
			rows.Close()
			return Snapshot{}, fmt.Errorf("ledger: scan customer: %w", err)
		}
		snap.Customers = append(snap.Customers, c)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return Snapshot{}, fmt.Errorf("ledger: load customers: %w", err)
	}

	rows, err = tx.Query(ctx,
		`SELECT id, created_at, customer_id, quantity_blocks, unit_price, payment_status FROM sales ORDER BY seq`)
	if err != nil {
		return Snapshot{}, fmt.Errorf("ledger: load sales: %w", err)
	}
	for rows.Next() {
		var s Sale
		var status string
		if err := rows.Scan(&s.ID, &s.CreatedAt, &s.CustomerID, &s.QuantityBlocks, &s.UnitPrice, &status); err != nil {
			rows.Close()
			return Snapshot{}, fmt.Errorf("ledger: scan sale: %w", err)
		}
		s.PaymentStatus = PaymentStatus(status)
		s.TotalAmount = float64(s.QuantityBlocks) * s.UnitPrice
		snap.Sales = append(snap.Sales, s)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return Snapshot{}, fmt.Errorf("ledger: load sales: %w", err)
	}

	rows, err = tx.Query(ctx,
		`SELECT id, created_at, category, description, amount, currency FROM expenses ORDER BY seq`)
	if err != nil {
		return Snapshot{}, fmt.Errorf("ledger: load expenses: %w", err)
	}
	for rows.Next() {
		var e Expense
		var category string
		if err := rows.Scan(&e.ID, &e.CreatedAt, &category, &e.Description, &e.Amount, &e.Currency); err != nil {
			rows.Close()
			return Snapshot{}, fmt.Errorf("ledger: scan expense: %w", err)
		}
		e.Category = ExpenseCategory(category)
		snap.Expenses = append(snap.Expenses, e)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return Snapshot{}, fmt.Errorf("ledger: load expenses: %w", err)
	}

	rows, err = tx.Query(ctx,
		`SELECT id, created_at, liters_added, cost_per_liter, generator_hours_run FROM fuel_logs ORDER BY seq`)
	if err != nil {
		return Snapshot{}, fmt.Errorf("ledger: load fuel logs: %w", err)
	}
	for rows.Next() {
		var f FuelLog
		if err := rows.Scan(&f.ID, &f.CreatedAt, &f.LitersAdded, &f.CostPerLiter, &f.GeneratorHoursRun); err != nil {
			rows.Close()
			return Snapshot{}, fmt.Errorf("ledger: scan fuel log: %w", err)
		}
		f.TotalCost = f.LitersAdded * f.CostPerLiter
		snap.FuelLogs = append(snap.FuelLogs, f)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return Snapshot{}, fmt.Errorf("ledger: load fuel logs: %w", err)
	}

	rows, err = tx.Query(ctx,
		`SELECT id, created_at, quantity_produced, shift, notes FROM production_logs ORDER BY seq`)
	if err != nil {
		return Snapshot{}, fmt.Errorf("ledger: load production logs: %w", err)
	}
	for rows.Next() {
		var p ProductionLog
		var shift string
		if err := rows.Scan(&p.ID, &p.CreatedAt, &p.QuantityProduced, &shift, &p.Notes); err != nil {
			rows.Close()
			return Snapshot{}, fmt.Errorf("ledger: scan production log: %w", err)
		}
		p.Shift = Shift(shift)
		snap.ProductionLogs = append(snap.ProductionLogs, p)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return Snapshot{}, fmt.Errorf("ledger: load production logs: %w", err)
	}

	return snap, nil
}

func mapPgError(kind string, err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return fmt.Errorf("%w: %s", httpx.ErrDuplicate, kind)
	}
	return fmt.Errorf("ledger: append %s: %w", kind, err)
}
