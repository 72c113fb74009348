package services

import (
	"context"
	"errors"
	"fmt"

	"tablepay/internal/logger"
	"tablepay/internal/models"
	"tablepay/internal/storage"
)

var (
	ErrTableNotFound      = errors.New("table not found")
	ErrRestaurantNotFound = errors.New("restaurant not found")
	ErrNoActiveOrder      = errors.New("no active order for table")
)

// TableSession is everything the pay-at-table page needs after a QR scan.
type TableSession struct {
	Restaurant *models.Restaurant `json:"restaurant"`
	Table      *models.Table      `json:"table"`
	Order      *models.Order      `json:"order"`
}

// RestaurantService serves the customer-facing QR lookups and the merchant
// dashboard reads.
type RestaurantService struct {
	store storage.Store
	log   *logger.Logger
}

func NewRestaurantService(store storage.Store, log *logger.Logger) *RestaurantService {
	return &RestaurantService{store: store, log: log}
}

// MenuByQRCode resolves a table QR code to the restaurant's menu grouped by
// category. Categories with no available items are omitted.
func (s *RestaurantService) MenuByQRCode(ctx context.Context, qrCode string) (*models.MenuResponse, error) {
	table, err := s.store.GetTableByQRCode(qrCode)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrTableNotFound
		}
		return nil, fmt.Errorf("failed to look up table: %w", err)
	}

	restaurant, err := s.store.GetRestaurant(table.RestaurantID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrRestaurantNotFound
		}
		return nil, fmt.Errorf("failed to load restaurant: %w", err)
	}

	categories, err := s.store.ListMenuCategories(restaurant.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	items, err := s.store.ListMenuItems(restaurant.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list menu items: %w", err)
	}

	itemsByCategory := make(map[string][]models.MenuItem)
	for _, item := range items {
		if !item.Available {
			continue
		}
		itemsByCategory[item.CategoryID] = append(itemsByCategory[item.CategoryID], *item)
	}

	views := make([]models.MenuCategoryView, 0, len(categories))
	for _, cat := range categories {
		catItems := itemsByCategory[cat.ID]
		if len(catItems) == 0 {
			continue
		}
		views = append(views, models.MenuCategoryView{
			ID:           cat.ID,
			Name:         cat.Name,
			DisplayOrder: cat.DisplayOrder,
			Items:        catItems,
		})
	}

	s.log.LogProcess("MENU", fmt.Sprintf("Served menu for table %d, %d categories", table.TableNumber, len(views)))

	return &models.MenuResponse{
		Restaurant: models.RestaurantSummary{ID: restaurant.ID, Name: restaurant.Name},
		Table:      models.TableSummary{ID: table.ID, TableNumber: table.TableNumber, QRCode: table.QRCode},
		Currency:   restaurant.Currency,
		Categories: views,
	}, nil
}

// TableSessionByQRCode resolves a QR code to the table's current bill: the
// restaurant, the table, and the active order with its items.
func (s *RestaurantService) TableSessionByQRCode(ctx context.Context, qrCode string) (*TableSession, error) {
	table, err := s.store.GetTableByQRCode(qrCode)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrTableNotFound
		}
		return nil, fmt.Errorf("failed to look up table: %w", err)
	}

	restaurant, err := s.store.GetRestaurant(table.RestaurantID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrRestaurantNotFound
		}
		return nil, fmt.Errorf("failed to load restaurant: %w", err)
	}

	order, err := s.store.GetActiveOrderForTable(table.ID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNoActiveOrder
		}
		return nil, fmt.Errorf("failed to load active order: %w", err)
	}

	items, err := s.store.ListOrderItems(order.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list order items: %w", err)
	}
	order.Items = items

	return &TableSession{Restaurant: restaurant, Table: table, Order: order}, nil
}

// MerchantRestaurant returns the restaurant behind a merchant account,
// falling back to the first configured restaurant for the single-venue
// deployment.
func (s *RestaurantService) MerchantRestaurant(ctx context.Context, email string) (*models.Restaurant, error) {
	if email != "" {
		restaurant, err := s.store.GetRestaurantByEmail(email)
		if err == nil {
			return restaurant, nil
		}
		if !errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("failed to load restaurant: %w", err)
		}
	}

	restaurant, err := s.store.GetFirstRestaurant()
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrRestaurantNotFound
		}
		return nil, fmt.Errorf("failed to load restaurant: %w", err)
	}
	return restaurant, nil
}

// MerchantTables lists the restaurant's tables for the dashboard floor view.
func (s *RestaurantService) MerchantTables(ctx context.Context, email string) ([]*models.Table, error) {
	restaurant, err := s.MerchantRestaurant(ctx, email)
	if err != nil {
		return nil, err
	}
	return s.store.ListTables(restaurant.ID)
}

// MerchantOrders lists the restaurant's orders, newest first, with items
// attached. An empty status returns all orders.
func (s *RestaurantService) MerchantOrders(ctx context.Context, email string, status models.OrderStatus) ([]*models.Order, error) {
	restaurant, err := s.MerchantRestaurant(ctx, email)
	if err != nil {
		return nil, err
	}

	orders, err := s.store.ListOrders(restaurant.ID, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	for _, order := range orders {
		items, err := s.store.ListOrderItems(order.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to list order items: %w", err)
		}
		order.Items = items
	}
	return orders, nil
}
