package models

import (
	"time"

	"github.com/uptrace/bun"
)

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderConfirmed OrderStatus = "confirmed"
	OrderPreparing OrderStatus = "preparing"
	OrderReady     OrderStatus = "ready"
	OrderCompleted OrderStatus = "completed"
	OrderCancelled OrderStatus = "cancelled"
)

type OrderPaymentStatus string

const (
	PaymentStatusPending   OrderPaymentStatus = "pending"
	PaymentStatusPartial   OrderPaymentStatus = "partial"
	PaymentStatusCompleted OrderPaymentStatus = "completed"
	PaymentStatusRefunded  OrderPaymentStatus = "refunded"
)

type Order struct {
	bun.BaseModel `bun:"table:orders"`

	ID            string             `json:"id" bun:"id,pk"`
	RestaurantID  string             `json:"restaurant_id" bun:"restaurant_id"`
	TableID       string             `json:"table_id" bun:"table_id"`
	OrderNumber   string             `json:"order_number" bun:"order_number"`
	Subtotal      float64            `json:"subtotal" bun:"subtotal"`
	VATAmount     float64            `json:"vat_amount" bun:"vat_amount"`
	TipAmount     float64            `json:"tip_amount" bun:"tip_amount"`
	TotalAmount   float64            `json:"total_amount" bun:"total_amount"`
	Status        OrderStatus        `json:"status" bun:"status"`
	PaymentStatus OrderPaymentStatus `json:"payment_status" bun:"payment_status"`
	CreatedAt     time.Time          `json:"created_at" bun:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at" bun:"updated_at"`

	Items []*OrderItem `json:"items,omitempty" bun:"-"`
}

type OrderItem struct {
	bun.BaseModel `bun:"table:order_items"`

	ID         string    `json:"id" bun:"id,pk"`
	OrderID    string    `json:"order_id" bun:"order_id"`
	MenuItemID string    `json:"menu_item_id" bun:"menu_item_id"`
	Quantity   int       `json:"quantity" bun:"quantity"`
	UnitPrice  float64   `json:"unit_price" bun:"unit_price"`
	TotalPrice float64   `json:"total_price" bun:"total_price"`
	Notes      string    `json:"notes,omitempty" bun:"notes"`
	CreatedAt  time.Time `json:"created_at" bun:"created_at"`

	MenuItem *MenuItem `json:"menu_item,omitempty" bun:"-"`
}

// OrderEvent is the payload consumed from the dining side when a table's
// order is confirmed and becomes payable.
type OrderEvent struct {
	Type      string    `json:"type"`
	Order     *Order    `json:"order"`
	Timestamp time.Time `json:"timestamp"`
}
