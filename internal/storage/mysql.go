package storage

import (
	"database/sql"
	"fmt"
	"time"

	"tablepay/internal/config"
	"tablepay/internal/logger"
	"tablepay/internal/models"

	"github.com/go-sql-driver/mysql"
)

type MySQLStore struct {
	db  *sql.DB
	log *logger.Logger
}

func NewMySQLStore(cfg config.DatabaseConfig, log *logger.Logger) (*MySQLStore, error) {
	log.LogDatabase("CONNECT", "mysql", fmt.Sprintf("Connecting to MySQL at %s:%s", cfg.Host, cfg.Port))

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		cfg.Username, cfg.Password, cfg.Host, cfg.Port, cfg.Database)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		log.Error("DATABASE", "Failed to open MySQL connection: "+err.Error())
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.MaxLifetime)

	if err := db.Ping(); err != nil {
		log.Error("DATABASE", "Failed to ping MySQL: "+err.Error())
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := &MySQLStore{
		db:  db,
		log: log,
	}

	if err := store.initTables(); err != nil {
		log.Error("DATABASE", "Failed to initialize tables: "+err.Error())
		return nil, fmt.Errorf("failed to initialize tables: %w", err)
	}

	log.LogDatabase("SUCCESS", "mysql", "MySQL connection established and tables initialized")
	return store, nil
}

func (s *MySQLStore) initTables() error {
	s.log.LogDatabase("MIGRATE", "mysql", "Creating tables if not exists")

	queries := []string{
		`CREATE TABLE IF NOT EXISTS restaurants (
			id VARCHAR(36) PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			address VARCHAR(255),
			phone VARCHAR(32),
			email VARCHAR(255),
			currency VARCHAR(8) NOT NULL DEFAULT 'SAR',
			vat_percent DECIMAL(5,2) NOT NULL DEFAULT 15.00,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
			INDEX idx_email (email)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

		`CREATE TABLE IF NOT EXISTS tables (
			id VARCHAR(36) PRIMARY KEY,
			restaurant_id VARCHAR(36) NOT NULL,
			table_number INT NOT NULL,
			capacity INT NOT NULL DEFAULT 4,
			qr_code VARCHAR(64) NOT NULL,
			status VARCHAR(16) NOT NULL DEFAULT 'available',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
			UNIQUE KEY uq_qr_code (qr_code),
			INDEX idx_restaurant (restaurant_id)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

		`CREATE TABLE IF NOT EXISTS menu_categories (
			id VARCHAR(36) PRIMARY KEY,
			restaurant_id VARCHAR(36) NOT NULL,
			name VARCHAR(255) NOT NULL,
			display_order INT NOT NULL DEFAULT 0,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
			INDEX idx_restaurant (restaurant_id)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

		`CREATE TABLE IF NOT EXISTS menu_items (
			id VARCHAR(36) PRIMARY KEY,
			restaurant_id VARCHAR(36) NOT NULL,
			category_id VARCHAR(36),
			name VARCHAR(255) NOT NULL,
			description TEXT,
			price DECIMAL(10,2) NOT NULL,
			available TINYINT(1) NOT NULL DEFAULT 1,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
			INDEX idx_restaurant (restaurant_id),
			INDEX idx_category (category_id)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

		`CREATE TABLE IF NOT EXISTS orders (
			id VARCHAR(36) PRIMARY KEY,
			restaurant_id VARCHAR(36) NOT NULL,
			table_id VARCHAR(36) NOT NULL,
			order_number VARCHAR(32) NOT NULL,
			subtotal DECIMAL(10,2) NOT NULL DEFAULT 0,
			vat_amount DECIMAL(10,2) NOT NULL DEFAULT 0,
			tip_amount DECIMAL(10,2) NOT NULL DEFAULT 0,
			total_amount DECIMAL(10,2) NOT NULL DEFAULT 0,
			status VARCHAR(16) NOT NULL DEFAULT 'pending',
			payment_status VARCHAR(16) NOT NULL DEFAULT 'pending',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
			INDEX idx_table (table_id),
			INDEX idx_restaurant_status (restaurant_id, status)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

		`CREATE TABLE IF NOT EXISTS order_items (
			id VARCHAR(36) PRIMARY KEY,
			order_id VARCHAR(36) NOT NULL,
			menu_item_id VARCHAR(36) NOT NULL,
			quantity INT NOT NULL,
			unit_price DECIMAL(10,2) NOT NULL,
			total_price DECIMAL(10,2) NOT NULL,
			notes TEXT,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			INDEX idx_order (order_id)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

		`CREATE TABLE IF NOT EXISTS payments (
			id VARCHAR(36) PRIMARY KEY,
			order_id VARCHAR(36) NOT NULL,
			amount DECIMAL(10,2) NOT NULL,
			payment_method VARCHAR(16) NOT NULL DEFAULT 'card',
			num_people INT NOT NULL DEFAULT 1,
			tip_percent DECIMAL(5,2) NOT NULL DEFAULT 0,
			gateway_transaction_id VARCHAR(64),
			status VARCHAR(16) NOT NULL,
			paid_at TIMESTAMP NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
			INDEX idx_order_status (order_id, status),
			INDEX idx_created (created_at)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

		`CREATE TABLE IF NOT EXISTS payment_splits (
			id VARCHAR(36) PRIMARY KEY,
			payment_id VARCHAR(36) NOT NULL,
			amount DECIMAL(10,2) NOT NULL,
			status VARCHAR(16) NOT NULL,
			gateway_transaction_id VARCHAR(64) NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			UNIQUE KEY uq_payment_txn (payment_id, gateway_transaction_id),
			INDEX idx_payment (payment_id)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,
	}

	for _, query := range queries {
		if _, err := s.db.Exec(query); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}

	s.log.LogDatabase("SUCCESS", "mysql", "All tables ready")
	return nil
}

func (s *MySQLStore) GetRestaurant(id string) (*models.Restaurant, error) {
	return s.scanRestaurant(s.db.QueryRow(
		`SELECT id, name, address, phone, email, currency, vat_percent, created_at, updated_at
		 FROM restaurants WHERE id = ?`, id))
}

func (s *MySQLStore) GetFirstRestaurant() (*models.Restaurant, error) {
	return s.scanRestaurant(s.db.QueryRow(
		`SELECT id, name, address, phone, email, currency, vat_percent, created_at, updated_at
		 FROM restaurants ORDER BY created_at LIMIT 1`))
}

func (s *MySQLStore) GetRestaurantByEmail(email string) (*models.Restaurant, error) {
	return s.scanRestaurant(s.db.QueryRow(
		`SELECT id, name, address, phone, email, currency, vat_percent, created_at, updated_at
		 FROM restaurants WHERE email = ?`, email))
}

func (s *MySQLStore) scanRestaurant(row *sql.Row) (*models.Restaurant, error) {
	r := &models.Restaurant{}
	err := row.Scan(&r.ID, &r.Name, &r.Address, &r.Phone, &r.Email, &r.Currency, &r.VATPercent, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get restaurant: %w", err)
	}
	return r, nil
}

func (s *MySQLStore) ListTables(restaurantID string) ([]*models.Table, error) {
	rows, err := s.db.Query(
		`SELECT id, restaurant_id, table_number, capacity, qr_code, status, created_at, updated_at
		 FROM tables WHERE restaurant_id = ? ORDER BY table_number`, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}
	defer rows.Close()

	var tables []*models.Table
	for rows.Next() {
		t := &models.Table{}
		if err := rows.Scan(&t.ID, &t.RestaurantID, &t.TableNumber, &t.Capacity, &t.QRCode, &t.Status, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan table: %w", err)
		}
		tables = append(tables, t)
	}
	return tables, rows.Err()
}

func (s *MySQLStore) GetTableByQRCode(qrCode string) (*models.Table, error) {
	t := &models.Table{}
	err := s.db.QueryRow(
		`SELECT id, restaurant_id, table_number, capacity, qr_code, status, created_at, updated_at
		 FROM tables WHERE qr_code = ?`, qrCode).
		Scan(&t.ID, &t.RestaurantID, &t.TableNumber, &t.Capacity, &t.QRCode, &t.Status, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get table: %w", err)
	}
	return t, nil
}

func (s *MySQLStore) UpdateTableStatus(tableID string, status models.TableStatus) error {
	s.log.LogDatabase("UPDATE", "tables", fmt.Sprintf("Setting table %s status to %s", tableID, status))
	_, err := s.db.Exec(`UPDATE tables SET status = ? WHERE id = ?`, status, tableID)
	if err != nil {
		return fmt.Errorf("failed to update table status: %w", err)
	}
	return nil
}

func (s *MySQLStore) ListMenuCategories(restaurantID string) ([]*models.MenuCategory, error) {
	rows, err := s.db.Query(
		`SELECT id, restaurant_id, name, display_order, created_at, updated_at
		 FROM menu_categories WHERE restaurant_id = ? ORDER BY display_order`, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list menu categories: %w", err)
	}
	defer rows.Close()

	var categories []*models.MenuCategory
	for rows.Next() {
		c := &models.MenuCategory{}
		if err := rows.Scan(&c.ID, &c.RestaurantID, &c.Name, &c.DisplayOrder, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan menu category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (s *MySQLStore) ListMenuItems(restaurantID string) ([]*models.MenuItem, error) {
	rows, err := s.db.Query(
		`SELECT id, restaurant_id, COALESCE(category_id, ''), name, COALESCE(description, ''), price, available, created_at, updated_at
		 FROM menu_items WHERE restaurant_id = ? ORDER BY name`, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list menu items: %w", err)
	}
	defer rows.Close()

	var items []*models.MenuItem
	for rows.Next() {
		m := &models.MenuItem{}
		if err := rows.Scan(&m.ID, &m.RestaurantID, &m.CategoryID, &m.Name, &m.Description, &m.Price, &m.Available, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan menu item: %w", err)
		}
		items = append(items, m)
	}
	return items, rows.Err()
}

func (s *MySQLStore) SaveOrder(order *models.Order) error {
	s.log.LogDatabase("INSERT", "orders", fmt.Sprintf("Saving order %s", order.ID))

	_, err := s.db.Exec(
		`INSERT INTO orders (id, restaurant_id, table_id, order_number, subtotal, vat_amount, tip_amount, total_amount, status, payment_status, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		order.ID, order.RestaurantID, order.TableID, order.OrderNumber,
		order.Subtotal, order.VATAmount, order.TipAmount, order.TotalAmount,
		order.Status, order.PaymentStatus, order.CreatedAt)
	if err != nil {
		s.log.Error("DATABASE", fmt.Sprintf("Failed to save order %s: %s", order.ID, err.Error()))
		return fmt.Errorf("failed to save order: %w", err)
	}
	return nil
}

const orderColumns = `id, restaurant_id, table_id, order_number, subtotal, vat_amount, tip_amount, total_amount, status, payment_status, created_at, updated_at`

func (s *MySQLStore) scanOrder(row *sql.Row) (*models.Order, error) {
	o := &models.Order{}
	err := row.Scan(&o.ID, &o.RestaurantID, &o.TableID, &o.OrderNumber,
		&o.Subtotal, &o.VATAmount, &o.TipAmount, &o.TotalAmount,
		&o.Status, &o.PaymentStatus, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return o, nil
}

func (s *MySQLStore) GetOrder(orderID string) (*models.Order, error) {
	return s.scanOrder(s.db.QueryRow(
		`SELECT `+orderColumns+` FROM orders WHERE id = ?`, orderID))
}

func (s *MySQLStore) GetActiveOrderForTable(tableID string) (*models.Order, error) {
	return s.scanOrder(s.db.QueryRow(
		`SELECT `+orderColumns+` FROM orders
		 WHERE table_id = ? AND status IN ('confirmed', 'preparing', 'ready') AND payment_status = 'pending'
		 ORDER BY created_at DESC LIMIT 1`, tableID))
}

func (s *MySQLStore) ListOrders(restaurantID string, status models.OrderStatus) ([]*models.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE restaurant_id = ?`
	args := []interface{}{restaurantID}
	if status != "" {
		query += ` AND status = ?`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	var orders []*models.Order
	for rows.Next() {
		o := &models.Order{}
		if err := rows.Scan(&o.ID, &o.RestaurantID, &o.TableID, &o.OrderNumber,
			&o.Subtotal, &o.VATAmount, &o.TipAmount, &o.TotalAmount,
			&o.Status, &o.PaymentStatus, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func (s *MySQLStore) ListOrderItems(orderID string) ([]*models.OrderItem, error) {
	rows, err := s.db.Query(
		`SELECT id, order_id, menu_item_id, quantity, unit_price, total_price, COALESCE(notes, ''), created_at
		 FROM order_items WHERE order_id = ? ORDER BY created_at`, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to list order items: %w", err)
	}
	defer rows.Close()

	var items []*models.OrderItem
	for rows.Next() {
		it := &models.OrderItem{}
		if err := rows.Scan(&it.ID, &it.OrderID, &it.MenuItemID, &it.Quantity, &it.UnitPrice, &it.TotalPrice, &it.Notes, &it.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (s *MySQLStore) UpdateOrderTotals(orderID string, tipAmount, totalAmount float64) error {
	s.log.LogDatabase("UPDATE", "orders", fmt.Sprintf("Updating totals for order %s", orderID))
	_, err := s.db.Exec(
		`UPDATE orders SET tip_amount = ?, total_amount = ? WHERE id = ?`,
		tipAmount, totalAmount, orderID)
	if err != nil {
		return fmt.Errorf("failed to update order totals: %w", err)
	}
	return nil
}

func (s *MySQLStore) SavePayment(payment *models.Payment) error {
	s.log.LogDatabase("INSERT", "payments", fmt.Sprintf("Saving payment %s", payment.ID))

	_, err := s.db.Exec(
		`INSERT INTO payments (id, order_id, amount, payment_method, num_people, tip_percent, gateway_transaction_id, status, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		payment.ID, payment.OrderID, payment.Amount, payment.PaymentMethod,
		payment.NumPeople, payment.TipPercent, payment.GatewayTransactionID,
		payment.Status, payment.CreatedAt)
	if err != nil {
		s.log.Error("DATABASE", fmt.Sprintf("Failed to save payment %s: %s", payment.ID, err.Error()))
		return fmt.Errorf("failed to save payment: %w", err)
	}
	return nil
}

const paymentColumns = `id, order_id, amount, payment_method, num_people, tip_percent, COALESCE(gateway_transaction_id, ''), status, paid_at, created_at, updated_at`

func (s *MySQLStore) scanPayment(row *sql.Row) (*models.Payment, error) {
	p := &models.Payment{}
	err := row.Scan(&p.ID, &p.OrderID, &p.Amount, &p.PaymentMethod,
		&p.NumPeople, &p.TipPercent, &p.GatewayTransactionID,
		&p.Status, &p.PaidAt, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}
	return p, nil
}

func (s *MySQLStore) GetPayment(id string) (*models.Payment, error) {
	return s.scanPayment(s.db.QueryRow(
		`SELECT `+paymentColumns+` FROM payments WHERE id = ?`, id))
}

func (s *MySQLStore) GetLatestPaymentByOrderID(orderID string) (*models.Payment, error) {
	return s.scanPayment(s.db.QueryRow(
		`SELECT `+paymentColumns+` FROM payments WHERE order_id = ?
		 ORDER BY created_at DESC LIMIT 1`, orderID))
}

func (s *MySQLStore) GetPendingPaymentByOrderID(orderID string) (*models.Payment, error) {
	return s.scanPayment(s.db.QueryRow(
		`SELECT `+paymentColumns+` FROM payments WHERE order_id = ? AND status = 'pending'
		 ORDER BY created_at DESC LIMIT 1`, orderID))
}

func (s *MySQLStore) UpdatePaymentStatus(paymentID string, status models.PaymentState, transactionID string) error {
	s.log.LogDatabase("UPDATE", "payments", fmt.Sprintf("Updating payment %s status to %s", paymentID, status))

	// paid_at belongs to SettlePayment; a status transition never touches it.
	query := `UPDATE payments SET status = ?`
	args := []interface{}{status}
	if transactionID != "" {
		query += `, gateway_transaction_id = ?`
		args = append(args, transactionID)
	}
	query += ` WHERE id = ?`
	args = append(args, paymentID)

	_, err := s.db.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("failed to update payment status: %w", err)
	}
	return nil
}

func (s *MySQLStore) InsertSplit(sp *models.PaymentSplit) error {
	s.log.LogDatabase("INSERT", "payment_splits", fmt.Sprintf("Recording split %s for payment %s", sp.ID, sp.PaymentID))

	_, err := s.db.Exec(
		`INSERT INTO payment_splits (id, payment_id, amount, status, gateway_transaction_id, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		sp.ID, sp.PaymentID, sp.Amount, sp.Status, sp.GatewayTransactionID, sp.CreatedAt)
	if err != nil {
		if mysqlErr, ok := err.(*mysql.MySQLError); ok && mysqlErr.Number == 1062 {
			return ErrDuplicateSplit
		}
		s.log.Error("DATABASE", fmt.Sprintf("Failed to insert split %s: %s", sp.ID, err.Error()))
		return fmt.Errorf("failed to insert split: %w", err)
	}
	return nil
}

func (s *MySQLStore) ListSplitsByPaymentID(paymentID string) ([]*models.PaymentSplit, error) {
	rows, err := s.db.Query(
		`SELECT id, payment_id, amount, status, gateway_transaction_id, created_at
		 FROM payment_splits WHERE payment_id = ? ORDER BY created_at`, paymentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list splits: %w", err)
	}
	defer rows.Close()

	var splits []*models.PaymentSplit
	for rows.Next() {
		sp := &models.PaymentSplit{}
		if err := rows.Scan(&sp.ID, &sp.PaymentID, &sp.Amount, &sp.Status, &sp.GatewayTransactionID, &sp.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan split: %w", err)
		}
		splits = append(splits, sp)
	}
	return splits, rows.Err()
}

func (s *MySQLStore) SettlePayment(paymentID, orderID, tableID string, paidAt time.Time) error {
	s.log.LogDatabase("SETTLE", "payments", fmt.Sprintf("Settling payment %s (order %s, table %s)", paymentID, orderID, tableID))

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin settlement transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		`UPDATE payments SET status = 'completed', paid_at = ? WHERE id = ? AND status <> 'completed'`,
		paidAt, paymentID); err != nil {
		return fmt.Errorf("failed to settle payment: %w", err)
	}

	if _, err := tx.Exec(
		`UPDATE orders SET status = 'completed', payment_status = 'completed' WHERE id = ?`,
		orderID); err != nil {
		return fmt.Errorf("failed to settle order: %w", err)
	}

	if tableID != "" {
		if _, err := tx.Exec(
			`UPDATE tables SET status = 'available' WHERE id = ?`,
			tableID); err != nil {
			return fmt.Errorf("failed to release table: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit settlement: %w", err)
	}

	s.log.LogDatabase("SUCCESS", "payments", fmt.Sprintf("Payment %s settled", paymentID))
	return nil
}

func (s *MySQLStore) Close() error {
	s.log.LogDatabase("CLOSE", "mysql", "Closing MySQL connection")
	return s.db.Close()
}

func (s *MySQLStore) HealthCheck() error {
	return s.db.Ping()
}
