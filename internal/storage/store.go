package storage

import (
	"errors"
	"time"

	"tablepay/internal/models"
)

var (
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateSplit reports a replayed gateway transaction id for a
	// payment; callers treat it as an idempotent no-op.
	ErrDuplicateSplit = errors.New("split already recorded for transaction")
)

type Store interface {
	// Restaurants and tables
	GetRestaurant(id string) (*models.Restaurant, error)
	GetFirstRestaurant() (*models.Restaurant, error)
	GetRestaurantByEmail(email string) (*models.Restaurant, error)
	ListTables(restaurantID string) ([]*models.Table, error)
	GetTableByQRCode(qrCode string) (*models.Table, error)
	UpdateTableStatus(tableID string, status models.TableStatus) error

	// Menu
	ListMenuCategories(restaurantID string) ([]*models.MenuCategory, error)
	ListMenuItems(restaurantID string) ([]*models.MenuItem, error)

	// Orders
	SaveOrder(order *models.Order) error
	GetOrder(orderID string) (*models.Order, error)
	GetActiveOrderForTable(tableID string) (*models.Order, error)
	ListOrders(restaurantID string, status models.OrderStatus) ([]*models.Order, error)
	ListOrderItems(orderID string) ([]*models.OrderItem, error)
	UpdateOrderTotals(orderID string, tipAmount, totalAmount float64) error

	// Payments
	SavePayment(payment *models.Payment) error
	GetPayment(id string) (*models.Payment, error)
	GetLatestPaymentByOrderID(orderID string) (*models.Payment, error)
	GetPendingPaymentByOrderID(orderID string) (*models.Payment, error)
	UpdatePaymentStatus(paymentID string, status models.PaymentState, transactionID string) error

	// Splits
	InsertSplit(split *models.PaymentSplit) error
	ListSplitsByPaymentID(paymentID string) ([]*models.PaymentSplit, error)

	// SettlePayment flips payment, order and table to their settled states
	// in one transaction so a crash cannot leave them disagreeing.
	SettlePayment(paymentID, orderID, tableID string, paidAt time.Time) error
}
