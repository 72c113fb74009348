package models

import (
	"time"

	"github.com/uptrace/bun"
)

type PaymentState string

const (
	StatePending    PaymentState = "pending"
	StateProcessing PaymentState = "processing"
	StateCompleted  PaymentState = "completed"
	StateFailed     PaymentState = "failed"
	StateRefunded   PaymentState = "refunded"
)

type SplitState string

const (
	SplitPending   SplitState = "pending"
	SplitCompleted SplitState = "completed"
	SplitFailed    SplitState = "failed"
)

// Payment is the aggregate amount owed for one order's checkout. It is
// satisfied by one or more PaymentSplits and flips to completed only when
// the completed splits cover its amount.
type Payment struct {
	bun.BaseModel `bun:"table:payments"`

	ID                   string       `json:"id" bun:"id,pk"`
	OrderID              string       `json:"order_id" bun:"order_id"`
	Amount               float64      `json:"amount" bun:"amount"`
	PaymentMethod        string       `json:"payment_method" bun:"payment_method"`
	NumPeople            int          `json:"num_people" bun:"num_people"`
	TipPercent           float64      `json:"tip_percent" bun:"tip_percent"`
	GatewayTransactionID string       `json:"gateway_transaction_id" bun:"gateway_transaction_id"`
	Status               PaymentState `json:"status" bun:"status"`
	PaidAt               *time.Time   `json:"paid_at,omitempty" bun:"paid_at"`
	CreatedAt            time.Time    `json:"created_at" bun:"created_at"`
	UpdatedAt            time.Time    `json:"updated_at" bun:"updated_at"`

	Splits []*PaymentSplit `json:"splits,omitempty" bun:"-"`
}

// PaymentSplit is one person's share of a Payment. Rows are immutable once
// written; insertion order gives the "split 2 of 3" numbering.
type PaymentSplit struct {
	bun.BaseModel `bun:"table:payment_splits"`

	ID                   string     `json:"id" bun:"id,pk"`
	PaymentID            string     `json:"payment_id" bun:"payment_id"`
	Amount               float64    `json:"amount" bun:"amount"`
	Status               SplitState `json:"status" bun:"status"`
	GatewayTransactionID string     `json:"gateway_transaction_id" bun:"gateway_transaction_id"`
	CreatedAt            time.Time  `json:"created_at" bun:"created_at"`
}

type CreateLinkRequest struct {
	OrderID    string  `json:"orderId" binding:"required"`
	Amount     float64 `json:"amount"`
	TipPercent float64 `json:"tipPercent"`
	NumPeople  int     `json:"numPeople" binding:"required"`
}

type CreateLinkResponse struct {
	PaymentID      string  `json:"paymentId"`
	PaymentLink    string  `json:"paymentLink"`
	Amount         float64 `json:"amount"`
	ExistingSplits int     `json:"existingSplits"`
	TotalSplits    int     `json:"totalSplits"`
	TipPercent     float64 `json:"tipPercent"`
	TransactionID  string  `json:"transactionId"`
}

type CompleteSplitRequest struct {
	PaymentID            string  `json:"paymentId" binding:"required"`
	GatewayTransactionID string  `json:"gatewayTransactionId"`
	Amount               float64 `json:"amount"`
}

type CompleteSplitResponse struct {
	Message         string  `json:"message"`
	IsFullyPaid     bool    `json:"isFullyPaid"`
	TotalPaid       float64 `json:"totalPaid"`
	RemainingAmount float64 `json:"remainingAmount"`
}

// WebhookRequest is the inbound notification shape of the gateway. Replays
// carry the same transaction id and must not double-apply.
type WebhookRequest struct {
	PaymentID     string  `json:"paymentId" binding:"required"`
	TransactionID string  `json:"transactionId" binding:"required"`
	Status        string  `json:"status" binding:"required"`
	Amount        float64 `json:"amount"`
}

type PaymentEvent struct {
	Type      string    `json:"type"`
	PaymentID string    `json:"payment_id"`
	Payment   *Payment  `json:"payment"`
	Timestamp time.Time `json:"timestamp"`
}
