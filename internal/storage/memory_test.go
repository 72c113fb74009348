package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tablepay/internal/models"
)

func TestInsertSplitRejectsDuplicateTransaction(t *testing.T) {
	store := NewInMemoryStore()

	first := &models.PaymentSplit{
		ID:                   "split-1",
		PaymentID:            "pay-1",
		Amount:               50,
		Status:               models.SplitCompleted,
		GatewayTransactionID: "TXN-AAA",
		CreatedAt:            time.Now(),
	}
	require.NoError(t, store.InsertSplit(first))

	replay := &models.PaymentSplit{
		ID:                   "split-2",
		PaymentID:            "pay-1",
		Amount:               50,
		Status:               models.SplitCompleted,
		GatewayTransactionID: "TXN-AAA",
		CreatedAt:            time.Now(),
	}
	assert.ErrorIs(t, store.InsertSplit(replay), ErrDuplicateSplit)

	// Same transaction id under a different payment is fine.
	other := &models.PaymentSplit{
		ID:                   "split-3",
		PaymentID:            "pay-2",
		Amount:               50,
		GatewayTransactionID: "TXN-AAA",
		CreatedAt:            time.Now(),
	}
	assert.NoError(t, store.InsertSplit(other))

	splits, err := store.ListSplitsByPaymentID("pay-1")
	require.NoError(t, err)
	assert.Len(t, splits, 1)
}

func TestSettlePaymentFlipsAllThreeRecords(t *testing.T) {
	store := NewInMemoryStore()
	store.AddTable(&models.Table{ID: "table-1", Status: models.TableOccupied})
	store.SaveOrder(&models.Order{
		ID:            "order-1",
		TableID:       "table-1",
		Status:        models.OrderConfirmed,
		PaymentStatus: models.PaymentStatusPending,
	})
	store.SavePayment(&models.Payment{
		ID:      "pay-1",
		OrderID: "order-1",
		Status:  models.StatePending,
	})

	paidAt := time.Now()
	require.NoError(t, store.SettlePayment("pay-1", "order-1", "table-1", paidAt))

	payment, _ := store.GetPayment("pay-1")
	assert.Equal(t, models.StateCompleted, payment.Status)
	require.NotNil(t, payment.PaidAt)

	order, _ := store.GetOrder("order-1")
	assert.Equal(t, models.OrderCompleted, order.Status)
	assert.Equal(t, models.PaymentStatusCompleted, order.PaymentStatus)

	table := mustTable(t, store, "table-1")
	assert.Equal(t, models.TableAvailable, table.Status)
}

func TestSettlePaymentIsIdempotent(t *testing.T) {
	store := NewInMemoryStore()
	store.SavePayment(&models.Payment{ID: "pay-1", OrderID: "order-1", Status: models.StatePending})

	first := time.Now()
	require.NoError(t, store.SettlePayment("pay-1", "order-1", "table-1", first))

	payment, _ := store.GetPayment("pay-1")
	firstPaidAt := *payment.PaidAt

	// A second settlement does not move the paid timestamp.
	require.NoError(t, store.SettlePayment("pay-1", "order-1", "table-1", first.Add(time.Hour)))
	payment, _ = store.GetPayment("pay-1")
	assert.Equal(t, firstPaidAt, *payment.PaidAt)
}

func TestUpdatePaymentStatusKeepsPaidAt(t *testing.T) {
	store := NewInMemoryStore()
	store.SavePayment(&models.Payment{ID: "pay-1", OrderID: "order-1", Status: models.StatePending})

	paidAt := time.Now()
	require.NoError(t, store.SettlePayment("pay-1", "order-1", "table-1", paidAt))

	require.NoError(t, store.UpdatePaymentStatus("pay-1", models.StateFailed, "TXN-LATE"))

	payment, _ := store.GetPayment("pay-1")
	require.NotNil(t, payment.PaidAt)
	assert.Equal(t, "TXN-LATE", payment.GatewayTransactionID)
}

func TestGetActiveOrderForTablePicksLatestPayable(t *testing.T) {
	store := NewInMemoryStore()

	base := time.Now()
	store.SaveOrder(&models.Order{
		ID: "order-old", TableID: "table-1",
		Status: models.OrderConfirmed, PaymentStatus: models.PaymentStatusPending,
		CreatedAt: base.Add(-time.Hour),
	})
	store.SaveOrder(&models.Order{
		ID: "order-new", TableID: "table-1",
		Status: models.OrderPreparing, PaymentStatus: models.PaymentStatusPending,
		CreatedAt: base,
	})
	store.SaveOrder(&models.Order{
		ID: "order-paid", TableID: "table-1",
		Status: models.OrderCompleted, PaymentStatus: models.PaymentStatusCompleted,
		CreatedAt: base.Add(time.Hour),
	})

	order, err := store.GetActiveOrderForTable("table-1")
	require.NoError(t, err)
	assert.Equal(t, "order-new", order.ID)
}

func TestGetActiveOrderForTableNoneFound(t *testing.T) {
	store := NewInMemoryStore()

	store.SaveOrder(&models.Order{
		ID: "order-cancelled", TableID: "table-1",
		Status: models.OrderCancelled, PaymentStatus: models.PaymentStatusPending,
	})

	_, err := store.GetActiveOrderForTable("table-1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetPendingPaymentSkipsSettledOnes(t *testing.T) {
	store := NewInMemoryStore()

	base := time.Now()
	store.SavePayment(&models.Payment{ID: "pay-done", OrderID: "order-1", Status: models.StateCompleted, CreatedAt: base})
	store.SavePayment(&models.Payment{ID: "pay-open", OrderID: "order-1", Status: models.StatePending, CreatedAt: base.Add(-time.Minute)})

	pending, err := store.GetPendingPaymentByOrderID("order-1")
	require.NoError(t, err)
	assert.Equal(t, "pay-open", pending.ID)

	latest, err := store.GetLatestPaymentByOrderID("order-1")
	require.NoError(t, err)
	assert.Equal(t, "pay-done", latest.ID)
}

func mustTable(t *testing.T, store *InMemoryStore, id string) *models.Table {
	t.Helper()
	tables, err := store.ListTables("")
	require.NoError(t, err)
	for _, table := range tables {
		if table.ID == id {
			return table
		}
	}
	t.Fatalf("table %s not found", id)
	return nil
}
