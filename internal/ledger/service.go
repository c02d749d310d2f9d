package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/frostline-ops/frostline-ops/internal/observability"
	"github.com/frostline-ops/frostline-ops/internal/platform/httpx"
)

// Invalidator is notified after every successful write so cached
// report figures get rebuilt.
type Invalidator interface {
	Bump(ctx context.Context) error
}

// ServiceConfig tunes service behaviour.
type ServiceConfig struct {
	// Currency stamps expenses recorded without an explicit currency.
	Currency string
	// Now overrides the clock, for tests.
	Now func() time.Time
}

// Service implements the record-entry operations: input validation,
// id generation, timestamping, derived totals and the credit-sale
// ledger rule, with optional archive append and cache invalidation.
type Service struct {
	logger   *slog.Logger
	store    *Store
	archive  Archiver
	cache    Invalidator
	metrics  *observability.Metrics
	validate *validator.Validate
	currency string
	now      func() time.Time
}

// NewService constructs a ledger service. Archive, cache and metrics
// may be nil.
func NewService(logger *slog.Logger, store *Store, archive Archiver, cache Invalidator, metrics *observability.Metrics, cfg ServiceConfig) *Service {
	currency := cfg.Currency
	if currency == "" {
		currency = "SSP"
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Service{
		logger:   logger,
		store:    store,
		archive:  archive,
		cache:    cache,
		metrics:  metrics,
		validate: validator.New(),
		currency: currency,
		now:      now,
	}
}

// RecordSale validates and commits a sale. Credit sales increase the
// buyer's outstanding balance as part of the same commit.
func (s *Service) RecordSale(ctx context.Context, req RecordSaleRequest) (*Sale, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %s", httpx.ErrValidation, validationDetail(err))
	}
	if _, ok := s.store.GetCustomer(req.CustomerID); !ok {
		return nil, fmt.Errorf("%w: customer %s", httpx.ErrNotFound, req.CustomerID)
	}

	sale := Sale{
		ID:             newID("sal"),
		CreatedAt:      s.now().UTC(),
		CustomerID:     req.CustomerID,
		QuantityBlocks: req.QuantityBlocks,
		UnitPrice:      req.UnitPrice,
		TotalAmount:    float64(req.QuantityBlocks) * req.UnitPrice,
		PaymentStatus:  req.PaymentStatus,
	}
	if err := s.store.CommitSale(sale); err != nil {
		return nil, err
	}

	s.archiveAppend(ctx, "sale", func() error { return s.archive.AppendSale(ctx, sale) })
	s.bump(ctx)
	return &sale, nil
}

// RecordExpense validates and appends an expense entry.
func (s *Service) RecordExpense(ctx context.Context, req RecordExpenseRequest) (*Expense, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %s", httpx.ErrValidation, validationDetail(err))
	}

	currency := req.Currency
	if currency == "" {
		currency = s.currency
	}
	expense := Expense{
		ID:          newID("exp"),
		CreatedAt:   s.now().UTC(),
		Category:    req.Category,
		Description: req.Description,
		Amount:      req.Amount,
		Currency:    currency,
	}
	s.store.AppendExpense(expense)

	s.archiveAppend(ctx, "expense", func() error { return s.archive.AppendExpense(ctx, expense) })
	s.bump(ctx)
	return &expense, nil
}

// RecordFuelLog validates and appends a generator refuel entry.
func (s *Service) RecordFuelLog(ctx context.Context, req RecordFuelLogRequest) (*FuelLog, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %s", httpx.ErrValidation, validationDetail(err))
	}

	log := FuelLog{
		ID:                newID("ful"),
		CreatedAt:         s.now().UTC(),
		LitersAdded:       req.LitersAdded,
		CostPerLiter:      req.CostPerLiter,
		GeneratorHoursRun: req.GeneratorHoursRun,
		TotalCost:         req.LitersAdded * req.CostPerLiter,
	}
	s.store.AppendFuelLog(log)

	s.archiveAppend(ctx, "fuel_log", func() error { return s.archive.AppendFuelLog(ctx, log) })
	s.bump(ctx)
	return &log, nil
}

// RecordProduction validates and appends a production run entry.
func (s *Service) RecordProduction(ctx context.Context, req RecordProductionRequest) (*ProductionLog, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %s", httpx.ErrValidation, validationDetail(err))
	}

	run := ProductionLog{
		ID:               newID("prd"),
		CreatedAt:        s.now().UTC(),
		QuantityProduced: req.QuantityProduced,
		Shift:            req.Shift,
		Notes:            req.Notes,
	}
	s.store.AppendProduction(run)

	s.archiveAppend(ctx, "production_log", func() error { return s.archive.AppendProduction(ctx, run) })
	s.bump(ctx)
	return &run, nil
}

// CreateCustomer adds a customer to the ledger with a zero balance.
func (s *Service) CreateCustomer(ctx context.Context, req CreateCustomerRequest) (*Customer, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %s", httpx.ErrValidation, validationDetail(err))
	}

	customer := Customer{
		ID:          newID("cus"),
		Name:        req.Name,
		PhoneNumber: req.PhoneNumber,
	}
	if err := s.store.AddCustomer(customer); err != nil {
		return nil, err
	}

	s.archiveAppend(ctx, "customer", func() error { return s.archive.AppendCustomer(ctx, customer) })
	s.bump(ctx)
	return &customer, nil
}

// GetCustomer returns a single customer.
func (s *Service) GetCustomer(ctx context.Context, id string) (*Customer, error) {
	c, ok := s.store.GetCustomer(id)
	if !ok {
		return nil, fmt.Errorf("%w: customer %s", httpx.ErrNotFound, id)
	}
	return &c, nil
}

// ListSales returns the recorded sales in insertion order.
func (s *Service) ListSales(ctx context.Context) []Sale { return s.store.ListSales() }

// ListExpenses returns the recorded expenses in insertion order.
func (s *Service) ListExpenses(ctx context.Context) []Expense { return s.store.ListExpenses() }

// ListFuelLogs returns the recorded fuel logs in insertion order.
func (s *Service) ListFuelLogs(ctx context.Context) []FuelLog { return s.store.ListFuelLogs() }

// ListProductionLogs returns the recorded production runs in insertion order.
func (s *Service) ListProductionLogs(ctx context.Context) []ProductionLog {
	return s.store.ListProductionLogs()
}

// ListCustomers returns the ledger customers in insertion order.
func (s *Service) ListCustomers(ctx context.Context) []Customer { return s.store.ListCustomers() }

// archiveAppend writes an entity through to the archive. The archive is
// write-behind: the in-memory commit is already durable for the session
// and load() rebuilds every derived value, so a failed append is logged
// and counted, not rolled back.
func (s *Service) archiveAppend(ctx context.Context, kind string, fn func() error) {
	if s.archive == nil {
		return
	}
	if err := fn(); err != nil {
		if s.logger != nil {
			s.logger.Warn("archive append failed", slog.String("entity", kind), slog.Any("error", err))
		}
		s.metrics.ArchiveFailure()
	}
}

func (s *Service) bump(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Bump(ctx); err != nil && s.logger != nil {
		s.logger.Warn("report cache bump failed", slog.Any("error", err))
	}
}

func newID(prefix string) string {
	return prefix + "-" + uuid.NewString()
}

func validationDetail(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		f := verrs[0]
		return fmt.Sprintf("field %s failed on %s", f.Field(), f.Tag())
	}
	return err.Error()
}
