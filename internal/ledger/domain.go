// Package ledger holds the operations ledger: the authoritative entity
// store for sales, expenses, fuel logs, production runs and customer
// credit balances.
package ledger

import (
	"time"
)

// PaymentStatus enumerates how a sale was settled.
type PaymentStatus string

const (
	PaymentCash   PaymentStatus = "CASH"
	PaymentCredit PaymentStatus = "CREDIT"
)

// ExpenseCategory enumerates operational expense categories.
type ExpenseCategory string

const (
	CategoryFuel        ExpenseCategory = "FUEL"
	CategoryFood        ExpenseCategory = "FOOD"
	CategorySalary      ExpenseCategory = "SALARY"
	CategoryMaintenance ExpenseCategory = "MAINTENANCE"
)

// Categories lists every expense category in display order.
var Categories = []ExpenseCategory{CategoryFuel, CategoryFood, CategorySalary, CategoryMaintenance}

// CategoryLabels maps stored category values to display labels,
// decoupled from the storage representation.
var CategoryLabels = map[ExpenseCategory]string{
	CategoryFuel:        "Fuel",
	CategoryFood:        "Food",
	CategorySalary:      "Salary",
	CategoryMaintenance: "Maintenance",
}

// Shift enumerates the production time-blocks.
type Shift string

const (
	ShiftMorning   Shift = "Morning"
	ShiftAfternoon Shift = "Afternoon"
	ShiftNight     Shift = "Night"
)

// Customer model. The balance only ever grows; the ledger is pure
// accrual with no settlement operation.
type Customer struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	PhoneNumber    string  `json:"phone_number"`
	TotalCreditDue float64 `json:"total_credit_due"`
}

// Sale model. Immutable once recorded; TotalAmount is fixed at
// creation as QuantityBlocks * UnitPrice.
type Sale struct {
	ID             string        `json:"id"`
	CreatedAt      time.Time     `json:"created_at"`
	CustomerID     string        `json:"customer_id"`
	QuantityBlocks int           `json:"quantity_blocks"`
	UnitPrice      float64       `json:"unit_price"`
	TotalAmount    float64       `json:"total_amount"`
	PaymentStatus  PaymentStatus `json:"payment_status"`
}

// Expense model. Immutable once recorded.
type Expense struct {
	ID          string          `json:"id"`
	CreatedAt   time.Time       `json:"created_at"`
	Category    ExpenseCategory `json:"category"`
	Description string          `json:"description"`
	Amount      float64         `json:"amount"`
	Currency    string          `json:"currency"`
}

// FuelLog model. TotalCost is fixed at creation as
// LitersAdded * CostPerLiter.
type FuelLog struct {
	ID                string    `json:"id"`
	CreatedAt         time.Time `json:"created_at"`
	LitersAdded       float64   `json:"liters_added"`
	CostPerLiter      float64   `json:"cost_per_liter"`
	GeneratorHoursRun float64   `json:"generator_hours_run"`
	TotalCost         float64   `json:"total_cost"`
}

// ProductionLog model.
type ProductionLog struct {
	ID               string    `json:"id"`
	CreatedAt        time.Time `json:"created_at"`
	QuantityProduced int       `json:"quantity_produced"`
	Shift            Shift     `json:"shift"`
	Notes            *string   `json:"notes,omitempty"`
}

// RecordSaleRequest captures the caller-supplied fields of a sale entry.
type RecordSaleRequest struct {
	CustomerID     string        `json:"customer_id" validate:"required"`
	QuantityBlocks int           `json:"quantity_blocks" validate:"required,gt=0"`
	UnitPrice      float64       `json:"unit_price" validate:"required,gt=0"`
	PaymentStatus  PaymentStatus `json:"payment_status" validate:"required,oneof=CASH CREDIT"`
}

// RecordExpenseRequest captures an expense entry. Currency falls back
// to the configured ledger currency when omitted.
type RecordExpenseRequest struct {
	Category    ExpenseCategory `json:"category" validate:"required,oneof=FUEL FOOD SALARY MAINTENANCE"`
	Description string          `json:"description" validate:"required,max=500"`
	Amount      float64         `json:"amount" validate:"required,gt=0"`
	Currency    string          `json:"currency" validate:"omitempty,max=10"`
}

// RecordFuelLogRequest captures a generator refuel entry.
type RecordFuelLogRequest struct {
	LitersAdded       float64 `json:"liters_added" validate:"required,gt=0"`
	CostPerLiter      float64 `json:"cost_per_liter" validate:"required,gt=0"`
	GeneratorHoursRun float64 `json:"generator_hours_run" validate:"gte=0"`
}

// RecordProductionRequest captures a production run entry.
type RecordProductionRequest struct {
	QuantityProduced int     `json:"quantity_produced" validate:"required,gt=0"`
	Shift            Shift   `json:"shift" validate:"required,oneof=Morning Afternoon Night"`
	Notes            *string `json:"notes,omitempty" validate:"omitempty,max=500"`
}

// CreateCustomerRequest captures a new ledger customer.
type CreateCustomerRequest struct {
	Name        string `json:"name" validate:"required,max=200"`
	PhoneNumber string `json:"phone_number" validate:"required,max=50"`
}

// Snapshot carries the full state of all five collections, in
// insertion order. Used for archive load/restore.
type Snapshot struct {
	Customers      []Customer
	Sales          []Sale
	Expenses       []Expense
	FuelLogs       []FuelLog
	ProductionLogs []ProductionLog
}
