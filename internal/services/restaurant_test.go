package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tablepay/internal/logger"
	"tablepay/internal/models"
	"tablepay/internal/storage"
)

func seedVenue(store *storage.InMemoryStore) {
	store.AddRestaurant(&models.Restaurant{
		ID:         "rest-001",
		Name:       "Al Nakheel Restaurant",
		Email:      "merchant@example.com",
		Currency:   "SAR",
		VATPercent: 15,
		CreatedAt:  time.Now(),
	})
	store.AddTable(&models.Table{
		ID: "table-001", RestaurantID: "rest-001", TableNumber: 1,
		QRCode: "QR-T1", Status: models.TableOccupied,
	})
	store.AddTable(&models.Table{
		ID: "table-002", RestaurantID: "rest-001", TableNumber: 2,
		QRCode: "QR-T2", Status: models.TableAvailable,
	})

	store.AddMenuCategory(&models.MenuCategory{ID: "cat-1", RestaurantID: "rest-001", Name: "Mains", DisplayOrder: 1})
	store.AddMenuCategory(&models.MenuCategory{ID: "cat-2", RestaurantID: "rest-001", Name: "Desserts", DisplayOrder: 2})
	store.AddMenuCategory(&models.MenuCategory{ID: "cat-empty", RestaurantID: "rest-001", Name: "Specials", DisplayOrder: 3})

	store.AddMenuItem(&models.MenuItem{ID: "item-1", RestaurantID: "rest-001", CategoryID: "cat-1", Name: "Lamb Kabsa", Price: 65, Available: true})
	store.AddMenuItem(&models.MenuItem{ID: "item-2", RestaurantID: "rest-001", CategoryID: "cat-2", Name: "Kunafa", Price: 28, Available: true})
	store.AddMenuItem(&models.MenuItem{ID: "item-3", RestaurantID: "rest-001", CategoryID: "cat-2", Name: "Basbousa", Price: 22, Available: false})
}

func newRestaurantService(t *testing.T) (*RestaurantService, *storage.InMemoryStore) {
	t.Helper()
	store := storage.NewInMemoryStore()
	seedVenue(store)
	return NewRestaurantService(store, logger.NewLogger()), store
}

func TestMenuByQRCodeGroupsAndFilters(t *testing.T) {
	svc, _ := newRestaurantService(t)

	menu, err := svc.MenuByQRCode(context.Background(), "QR-T1")
	require.NoError(t, err)

	assert.Equal(t, "Al Nakheel Restaurant", menu.Restaurant.Name)
	assert.Equal(t, 1, menu.Table.TableNumber)
	assert.Equal(t, "SAR", menu.Currency)

	// Empty categories and unavailable items are dropped.
	require.Len(t, menu.Categories, 2)
	assert.Equal(t, "Mains", menu.Categories[0].Name)
	assert.Equal(t, "Desserts", menu.Categories[1].Name)
	require.Len(t, menu.Categories[1].Items, 1)
	assert.Equal(t, "Kunafa", menu.Categories[1].Items[0].Name)
}

func TestMenuByQRCodeUnknownTable(t *testing.T) {
	svc, _ := newRestaurantService(t)

	_, err := svc.MenuByQRCode(context.Background(), "QR-BOGUS")
	assert.ErrorIs(t, err, ErrTableNotFound)
}

func TestTableSessionByQRCode(t *testing.T) {
	svc, store := newRestaurantService(t)

	store.SaveOrder(&models.Order{
		ID: "order-1", RestaurantID: "rest-001", TableID: "table-001",
		Subtotal: 185, VATAmount: 27.75, TotalAmount: 212.75,
		Status: models.OrderConfirmed, PaymentStatus: models.PaymentStatusPending,
		CreatedAt: time.Now(),
	})
	store.AddOrderItem(&models.OrderItem{
		ID: "oitem-1", OrderID: "order-1", MenuItemID: "item-1",
		Quantity: 1, UnitPrice: 65, TotalPrice: 65,
	})

	session, err := svc.TableSessionByQRCode(context.Background(), "QR-T1")
	require.NoError(t, err)

	assert.Equal(t, "rest-001", session.Restaurant.ID)
	assert.Equal(t, "table-001", session.Table.ID)
	require.NotNil(t, session.Order)
	assert.Equal(t, "order-1", session.Order.ID)
	require.Len(t, session.Order.Items, 1)
}

func TestTableSessionNoActiveOrder(t *testing.T) {
	svc, _ := newRestaurantService(t)

	_, err := svc.TableSessionByQRCode(context.Background(), "QR-T2")
	assert.ErrorIs(t, err, ErrNoActiveOrder)
}

func TestMerchantRestaurantByEmailAndFallback(t *testing.T) {
	svc, _ := newRestaurantService(t)

	byEmail, err := svc.MerchantRestaurant(context.Background(), "merchant@example.com")
	require.NoError(t, err)
	assert.Equal(t, "rest-001", byEmail.ID)

	// Unknown email falls back to the first configured restaurant.
	fallback, err := svc.MerchantRestaurant(context.Background(), "other@example.com")
	require.NoError(t, err)
	assert.Equal(t, "rest-001", fallback.ID)
}

func TestMerchantTablesSortedByNumber(t *testing.T) {
	svc, _ := newRestaurantService(t)

	tables, err := svc.MerchantTables(context.Background(), "merchant@example.com")
	require.NoError(t, err)
	require.Len(t, tables, 2)
	assert.Equal(t, 1, tables[0].TableNumber)
	assert.Equal(t, 2, tables[1].TableNumber)
}

func TestMerchantOrdersFilteredByStatus(t *testing.T) {
	svc, store := newRestaurantService(t)

	base := time.Now()
	store.SaveOrder(&models.Order{
		ID: "order-1", RestaurantID: "rest-001", TableID: "table-001",
		Status: models.OrderConfirmed, PaymentStatus: models.PaymentStatusPending,
		CreatedAt: base,
	})
	store.SaveOrder(&models.Order{
		ID: "order-2", RestaurantID: "rest-001", TableID: "table-002",
		Status: models.OrderCompleted, PaymentStatus: models.PaymentStatusCompleted,
		CreatedAt: base.Add(time.Minute),
	})

	all, err := svc.MerchantOrders(context.Background(), "merchant@example.com", "")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "order-2", all[0].ID) // newest first

	completed, err := svc.MerchantOrders(context.Background(), "merchant@example.com", models.OrderCompleted)
	require.NoError(t, err)
	require.Len(t, completed, 1)
	assert.Equal(t, "order-2", completed[0].ID)
}
