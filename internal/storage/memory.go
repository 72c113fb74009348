package storage

import (
	"sort"
	"sync"
	"time"

	"tablepay/internal/models"
)

// InMemoryStore mirrors MySQLStore semantics for tests and mock-mode runs,
// including the (payment_id, gateway_transaction_id) uniqueness guard.
type InMemoryStore struct {
	mu          sync.RWMutex
	restaurants map[string]*models.Restaurant
	tables      map[string]*models.Table
	categories  map[string]*models.MenuCategory
	menuItems   map[string]*models.MenuItem
	orders      map[string]*models.Order
	orderItems  map[string]*models.OrderItem
	payments    map[string]*models.Payment
	splits      map[string]*models.PaymentSplit
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		restaurants: make(map[string]*models.Restaurant),
		tables:      make(map[string]*models.Table),
		categories:  make(map[string]*models.MenuCategory),
		menuItems:   make(map[string]*models.MenuItem),
		orders:      make(map[string]*models.Order),
		orderItems:  make(map[string]*models.OrderItem),
		payments:    make(map[string]*models.Payment),
		splits:      make(map[string]*models.PaymentSplit),
	}
}

// Seed helpers for tests.

func (s *InMemoryStore) AddRestaurant(r *models.Restaurant) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.restaurants[r.ID] = r
}

func (s *InMemoryStore) AddTable(t *models.Table) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tables[t.ID] = t
}

func (s *InMemoryStore) AddMenuCategory(c *models.MenuCategory) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories[c.ID] = c
}

func (s *InMemoryStore) AddMenuItem(m *models.MenuItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.menuItems[m.ID] = m
}

func (s *InMemoryStore) AddOrderItem(it *models.OrderItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orderItems[it.ID] = it
}

func (s *InMemoryStore) GetRestaurant(id string) (*models.Restaurant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.restaurants[id]
	if !ok {
		return nil, ErrNotFound
	}
	return r, nil
}

func (s *InMemoryStore) GetFirstRestaurant() (*models.Restaurant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var first *models.Restaurant
	for _, r := range s.restaurants {
		if first == nil || r.CreatedAt.Before(first.CreatedAt) {
			first = r
		}
	}
	if first == nil {
		return nil, ErrNotFound
	}
	return first, nil
}

func (s *InMemoryStore) GetRestaurantByEmail(email string) (*models.Restaurant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.restaurants {
		if r.Email == email {
			return r, nil
		}
	}
	return nil, ErrNotFound
}

func (s *InMemoryStore) ListTables(restaurantID string) ([]*models.Table, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var tables []*models.Table
	for _, t := range s.tables {
		if t.RestaurantID == restaurantID {
			tables = append(tables, t)
		}
	}
	sort.Slice(tables, func(i, j int) bool { return tables[i].TableNumber < tables[j].TableNumber })
	return tables, nil
}

func (s *InMemoryStore) GetTableByQRCode(qrCode string) (*models.Table, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.tables {
		if t.QRCode == qrCode {
			return t, nil
		}
	}
	return nil, ErrNotFound
}

func (s *InMemoryStore) UpdateTableStatus(tableID string, status models.TableStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tables[tableID]
	if !ok {
		return ErrNotFound
	}
	t.Status = status
	return nil
}

func (s *InMemoryStore) ListMenuCategories(restaurantID string) ([]*models.MenuCategory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var categories []*models.MenuCategory
	for _, c := range s.categories {
		if c.RestaurantID == restaurantID {
			categories = append(categories, c)
		}
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].DisplayOrder < categories[j].DisplayOrder })
	return categories, nil
}

func (s *InMemoryStore) ListMenuItems(restaurantID string) ([]*models.MenuItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var items []*models.MenuItem
	for _, m := range s.menuItems {
		if m.RestaurantID == restaurantID {
			items = append(items, m)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	return items, nil
}

func (s *InMemoryStore) SaveOrder(order *models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders[order.ID] = order
	return nil
}

func (s *InMemoryStore) GetOrder(orderID string) (*models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.orders[orderID]
	if !ok {
		return nil, ErrNotFound
	}
	return o, nil
}

func (s *InMemoryStore) GetActiveOrderForTable(tableID string) (*models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var latest *models.Order
	for _, o := range s.orders {
		if o.TableID != tableID || o.PaymentStatus != models.PaymentStatusPending {
			continue
		}
		switch o.Status {
		case models.OrderConfirmed, models.OrderPreparing, models.OrderReady:
		default:
			continue
		}
		if latest == nil || o.CreatedAt.After(latest.CreatedAt) {
			latest = o
		}
	}
	if latest == nil {
		return nil, ErrNotFound
	}
	return latest, nil
}

func (s *InMemoryStore) ListOrders(restaurantID string, status models.OrderStatus) ([]*models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var orders []*models.Order
	for _, o := range s.orders {
		if o.RestaurantID != restaurantID {
			continue
		}
		if status != "" && o.Status != status {
			continue
		}
		orders = append(orders, o)
	}
	sort.Slice(orders, func(i, j int) bool { return orders[i].CreatedAt.After(orders[j].CreatedAt) })
	return orders, nil
}

func (s *InMemoryStore) ListOrderItems(orderID string) ([]*models.OrderItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var items []*models.OrderItem
	for _, it := range s.orderItems {
		if it.OrderID == orderID {
			items = append(items, it)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].CreatedAt.Before(items[j].CreatedAt) })
	return items, nil
}

func (s *InMemoryStore) UpdateOrderTotals(orderID string, tipAmount, totalAmount float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[orderID]
	if !ok {
		return ErrNotFound
	}
	o.TipAmount = tipAmount
	o.TotalAmount = totalAmount
	return nil
}

func (s *InMemoryStore) SavePayment(payment *models.Payment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.payments[payment.ID] = payment
	return nil
}

func (s *InMemoryStore) GetPayment(id string) (*models.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.payments[id]
	if !ok {
		return nil, ErrNotFound
	}
	return p, nil
}

func (s *InMemoryStore) GetLatestPaymentByOrderID(orderID string) (*models.Payment, error) {
	return s.findPayment(orderID, "")
}

func (s *InMemoryStore) GetPendingPaymentByOrderID(orderID string) (*models.Payment, error) {
	return s.findPayment(orderID, models.StatePending)
}

func (s *InMemoryStore) findPayment(orderID string, state models.PaymentState) (*models.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var latest *models.Payment
	for _, p := range s.payments {
		if p.OrderID != orderID {
			continue
		}
		if state != "" && p.Status != state {
			continue
		}
		if latest == nil || p.CreatedAt.After(latest.CreatedAt) {
			latest = p
		}
	}
	if latest == nil {
		return nil, ErrNotFound
	}
	return latest, nil
}

func (s *InMemoryStore) UpdatePaymentStatus(paymentID string, status models.PaymentState, transactionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.payments[paymentID]
	if !ok {
		return ErrNotFound
	}
	p.Status = status
	if transactionID != "" {
		p.GatewayTransactionID = transactionID
	}
	return nil
}

func (s *InMemoryStore) InsertSplit(sp *models.PaymentSplit) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.splits {
		if existing.PaymentID == sp.PaymentID && existing.GatewayTransactionID == sp.GatewayTransactionID {
			return ErrDuplicateSplit
		}
	}
	s.splits[sp.ID] = sp
	return nil
}

func (s *InMemoryStore) ListSplitsByPaymentID(paymentID string) ([]*models.PaymentSplit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var splits []*models.PaymentSplit
	for _, sp := range s.splits {
		if sp.PaymentID == paymentID {
			splits = append(splits, sp)
		}
	}
	sort.Slice(splits, func(i, j int) bool { return splits[i].CreatedAt.Before(splits[j].CreatedAt) })
	return splits, nil
}

func (s *InMemoryStore) SettlePayment(paymentID, orderID, tableID string, paidAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.payments[paymentID]
	if !ok {
		return ErrNotFound
	}
	if p.Status != models.StateCompleted {
		p.Status = models.StateCompleted
		p.PaidAt = &paidAt
	}

	if o, ok := s.orders[orderID]; ok {
		o.Status = models.OrderCompleted
		o.PaymentStatus = models.PaymentStatusCompleted
	}

	if t, ok := s.tables[tableID]; ok {
		t.Status = models.TableAvailable
	}

	return nil
}
