package models

import (
	"time"

	"github.com/uptrace/bun"
)

type TableStatus string

const (
	TableAvailable TableStatus = "available"
	TableOccupied  TableStatus = "occupied"
	TableReserved  TableStatus = "reserved"
	TableCleaning  TableStatus = "cleaning"
)

type Restaurant struct {
	bun.BaseModel `bun:"table:restaurants"`

	ID         string    `json:"id" bun:"id,pk"`
	Name       string    `json:"name" bun:"name"`
	Address    string    `json:"address" bun:"address"`
	Phone      string    `json:"phone" bun:"phone"`
	Email      string    `json:"email" bun:"email"`
	Currency   string    `json:"currency" bun:"currency"`
	VATPercent float64   `json:"vat_percent" bun:"vat_percent"`
	CreatedAt  time.Time `json:"created_at" bun:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" bun:"updated_at"`
}

type Table struct {
	bun.BaseModel `bun:"table:tables"`

	ID           string      `json:"id" bun:"id,pk"`
	RestaurantID string      `json:"restaurant_id" bun:"restaurant_id"`
	TableNumber  int         `json:"table_number" bun:"table_number"`
	Capacity     int         `json:"capacity" bun:"capacity"`
	QRCode       string      `json:"qr_code" bun:"qr_code"`
	Status       TableStatus `json:"status" bun:"status"`
	CreatedAt    time.Time   `json:"created_at" bun:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at" bun:"updated_at"`
}
