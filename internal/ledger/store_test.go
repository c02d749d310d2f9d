package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frostline-ops/frostline-ops/internal/platform/httpx"
)

func testCustomer(id, name string) Customer {
	return Customer{ID: id, Name: name, PhoneNumber: "+211-900-000"}
}

func TestStoreAddCustomerRejectsDuplicateID(t *testing.T) {
	store := NewStore()
	require.NoError(t, store.AddCustomer(testCustomer("cus-1", "Deng")))

	err := store.AddCustomer(testCustomer("cus-1", "Deng again"))
	require.ErrorIs(t, err, httpx.ErrDuplicate)
	assert.Len(t, store.ListCustomers(), 1)
}

func TestStoreCommitSaleCreditPostsBalance(t *testing.T) {
	store := NewStore()
	require.NoError(t, store.AddCustomer(testCustomer("cus-1", "Deng")))

	require.NoError(t, store.CommitSale(Sale{
		ID:             "sal-1",
		CreatedAt:      time.Now().UTC(),
		CustomerID:     "cus-1",
		QuantityBlocks: 5,
		UnitPrice:      25000,
		TotalAmount:    125000,
		PaymentStatus:  PaymentCredit,
	}))

	c, ok := store.GetCustomer("cus-1")
	require.True(t, ok)
	assert.Equal(t, 125000.0, c.TotalCreditDue)
	assert.Len(t, store.ListSales(), 1)
}

func TestStoreCommitSaleCashLeavesBalanceUntouched(t *testing.T) {
	store := NewStore()
	require.NoError(t, store.AddCustomer(testCustomer("cus-1", "Deng")))

	require.NoError(t, store.CommitSale(Sale{
		ID:            "sal-1",
		CustomerID:    "cus-1",
		TotalAmount:   250000,
		PaymentStatus: PaymentCash,
	}))

	c, _ := store.GetCustomer("cus-1")
	assert.Zero(t, c.TotalCreditDue)
}

func TestStoreCommitSaleUnknownCustomerLeavesLedgerUntouched(t *testing.T) {
	store := NewStore()

	err := store.CommitSale(Sale{ID: "sal-1", CustomerID: "cus-missing", TotalAmount: 100, PaymentStatus: PaymentCredit})
	require.ErrorIs(t, err, httpx.ErrNotFound)
	assert.Empty(t, store.ListSales())
}

func TestStoreSnapshotAllReturnsCopies(t *testing.T) {
	store := NewStore()
	require.NoError(t, store.AddCustomer(testCustomer("cus-1", "Deng")))
	store.AppendExpense(Expense{ID: "exp-1", Category: CategoryFood, Amount: 5000})

	snap := store.SnapshotAll()
	snap.Customers[0].TotalCreditDue = 999999
	snap.Expenses[0].Amount = 1

	c, _ := store.GetCustomer("cus-1")
	assert.Zero(t, c.TotalCreditDue)
	assert.Equal(t, 5000.0, store.ListExpenses()[0].Amount)
}

func TestStoreRestoreReplacesState(t *testing.T) {
	store := NewStore()
	require.NoError(t, store.AddCustomer(testCustomer("cus-old", "Old")))

	store.Restore(Snapshot{
		Customers: []Customer{{ID: "cus-1", Name: "Deng", TotalCreditDue: 450000}},
		Sales:     []Sale{{ID: "sal-1", CustomerID: "cus-1", TotalAmount: 450000, PaymentStatus: PaymentCredit}},
	})

	_, ok := store.GetCustomer("cus-old")
	assert.False(t, ok)

	c, ok := store.GetCustomer("cus-1")
	require.True(t, ok)
	assert.Equal(t, 450000.0, c.TotalCreditDue)
	assert.Len(t, store.ListSales(), 1)
}
