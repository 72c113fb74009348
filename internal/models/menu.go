package models

import (
	"time"

	"github.com/uptrace/bun"
)

type MenuCategory struct {
	bun.BaseModel `bun:"table:menu_categories"`

	ID           string    `json:"id" bun:"id,pk"`
	RestaurantID string    `json:"restaurant_id" bun:"restaurant_id"`
	Name         string    `json:"name" bun:"name"`
	DisplayOrder int       `json:"display_order" bun:"display_order"`
	CreatedAt    time.Time `json:"created_at" bun:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" bun:"updated_at"`
}

type MenuItem struct {
	bun.BaseModel `bun:"table:menu_items"`

	ID           string    `json:"id" bun:"id,pk"`
	RestaurantID string    `json:"restaurant_id" bun:"restaurant_id"`
	CategoryID   string    `json:"category_id" bun:"category_id"`
	Name         string    `json:"name" bun:"name"`
	Description  string    `json:"description" bun:"description"`
	Price        float64   `json:"price" bun:"price"`
	Available    bool      `json:"available" bun:"available"`
	CreatedAt    time.Time `json:"created_at" bun:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" bun:"updated_at"`
}

// MenuCategoryView is a category with its items attached, as served to the
// customer menu page after scanning a table QR code.
type MenuCategoryView struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	DisplayOrder int        `json:"display_order"`
	Items        []MenuItem `json:"items"`
}

type MenuResponse struct {
	Restaurant RestaurantSummary  `json:"restaurant"`
	Table      TableSummary       `json:"table"`
	Currency   string             `json:"currency"`
	Categories []MenuCategoryView `json:"categories"`
}

type RestaurantSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type TableSummary struct {
	ID          string `json:"id"`
	TableNumber int    `json:"table_number"`
	QRCode      string `json:"qr_code"`
}
