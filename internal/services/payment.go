package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tablepay/internal/config"
	"tablepay/internal/logger"
	"tablepay/internal/models"
	"tablepay/internal/split"
	"tablepay/internal/storage"
	"tablepay/internal/utils"
)

var (
	ErrOrderNotFound        = errors.New("order not found")
	ErrPaymentNotFound      = errors.New("payment not found")
	ErrInvalidSplitCount    = errors.New("number of people must be at least 1")
	ErrSettlementInProgress = errors.New("payment settlement already in progress")
)

// Completed splits within this margin of the payment amount settle the bill;
// it absorbs float drift from dividing the total, not real shortfalls.
const settleTolerance = 0.005

// Publisher pushes payment lifecycle events to the event bus.
type Publisher interface {
	PublishPaymentEvent(event *models.PaymentEvent) error
}

// SettlementLocker serializes settlement per payment so the completion
// endpoint and the gateway webhook cannot both apply the final transition.
type SettlementLocker interface {
	AcquireSettlement(ctx context.Context, paymentID string) (bool, error)
	ReleaseSettlement(ctx context.Context, paymentID string) error
}

type PaymentService struct {
	store    storage.Store
	producer Publisher
	log      *logger.Logger
	locker   SettlementLocker
	gateway  config.GatewayConfig
}

func NewPaymentService(store storage.Store, producer Publisher, log *logger.Logger, locker SettlementLocker, gateway config.GatewayConfig) *PaymentService {
	return &PaymentService{
		store:    store,
		producer: producer,
		log:      log,
		locker:   locker,
		gateway:  gateway,
	}
}

// CreatePaymentLink creates the pending payment for an order, or resumes the
// existing one, and returns the gateway link for the next split. Repeated
// calls with a different tip overwrite the order's tip and total rather than
// accumulating them.
func (s *PaymentService) CreatePaymentLink(ctx context.Context, req *models.CreateLinkRequest) (*models.CreateLinkResponse, error) {
	s.log.LogPayment("LINK", req.OrderID, fmt.Sprintf("Creating payment link, %d people, %.0f%% tip", req.NumPeople, req.TipPercent))

	if req.NumPeople < 1 {
		return nil, ErrInvalidSplitCount
	}

	order, err := s.store.GetOrder(req.OrderID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to load order: %w", err)
	}

	currency := s.gateway.DefaultCurrency
	if restaurant, err := s.store.GetRestaurant(order.RestaurantID); err == nil {
		currency = restaurant.Currency
	}

	tipAmount := split.TipAmount(order.Subtotal, req.TipPercent)
	totalWithTip := order.Subtotal + order.VATAmount + tipAmount

	if err := s.store.UpdateOrderTotals(order.ID, tipAmount, totalWithTip); err != nil {
		return nil, fmt.Errorf("failed to update order totals: %w", err)
	}

	payment, err := s.store.GetPendingPaymentByOrderID(order.ID)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up pending payment: %w", err)
	}

	if payment != nil {
		s.log.LogPayment("RESUME", payment.ID, fmt.Sprintf("Reusing pending payment for order %s", order.ID))
	} else {
		payment = &models.Payment{
			ID:                   utils.GenerateUUID(),
			OrderID:              order.ID,
			Amount:               totalWithTip,
			PaymentMethod:        "card",
			NumPeople:            req.NumPeople,
			TipPercent:           req.TipPercent,
			GatewayTransactionID: utils.GenerateTransactionID(),
			Status:               models.StatePending,
			CreatedAt:            time.Now(),
		}
		if err := s.store.SavePayment(payment); err != nil {
			return nil, fmt.Errorf("failed to create payment: %w", err)
		}
		s.log.LogPayment("CREATE", payment.ID, fmt.Sprintf("Payment created for order %s, amount %.2f", order.ID, totalWithTip))
	}

	splits, err := s.store.ListSplitsByPaymentID(payment.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list splits: %w", err)
	}

	amountPerPerson := totalWithTip / float64(req.NumPeople)
	paymentLink := fmt.Sprintf("%s?paymentId=%s&amount=%.2f&currency=%s&merchantId=%s&orderId=%s",
		s.gateway.BaseURL, payment.ID, amountPerPerson, currency, s.gateway.MerchantID, order.OrderNumber)

	return &models.CreateLinkResponse{
		PaymentID:      payment.ID,
		PaymentLink:    paymentLink,
		Amount:         amountPerPerson,
		ExistingSplits: len(splits),
		TotalSplits:    req.NumPeople,
		TipPercent:     req.TipPercent,
		TransactionID:  payment.GatewayTransactionID,
	}, nil
}

// CompleteSplit records one completed split and settles the payment, order
// and table once completed splits cover the amount due. A replayed gateway
// transaction id is a no-op: progress is recomputed but nothing is inserted
// twice.
func (s *PaymentService) CompleteSplit(ctx context.Context, req *models.CompleteSplitRequest) (*models.CompleteSplitResponse, error) {
	s.log.LogPayment("COMPLETE", req.PaymentID, "Recording payment split")

	payment, err := s.store.GetPayment(req.PaymentID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, fmt.Errorf("failed to load payment: %w", err)
	}

	// Completed is terminal. A duplicate completion or replayed webhook
	// after settlement reports progress without settling or publishing again.
	if payment.Status == models.StateCompleted {
		s.log.LogPayment("REPLAY", payment.ID, "Payment already settled, ignoring duplicate completion")
		totalPaid, err := s.totalCompleted(payment.ID)
		if err != nil {
			return nil, err
		}
		return &models.CompleteSplitResponse{
			Message:         "Payment already completed",
			IsFullyPaid:     true,
			TotalPaid:       totalPaid,
			RemainingAmount: payment.Amount - totalPaid,
		}, nil
	}

	order, err := s.store.GetOrder(payment.OrderID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to load order: %w", err)
	}

	acquired, err := s.locker.AcquireSettlement(ctx, payment.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire settlement lock: %w", err)
	}
	if !acquired {
		s.log.LogPayment("BUSY", payment.ID, "Settlement already in progress")
		return nil, ErrSettlementInProgress
	}
	defer s.locker.ReleaseSettlement(ctx, payment.ID)

	transactionID := req.GatewayTransactionID
	if transactionID == "" {
		transactionID = utils.GenerateTransactionID()
	}

	amount := req.Amount
	if amount <= 0 {
		// A non-split payment is a single split covering the whole bill.
		amount = payment.Amount
	}

	newSplit := &models.PaymentSplit{
		ID:                   utils.GenerateUUID(),
		PaymentID:            payment.ID,
		Amount:               amount,
		Status:               models.SplitCompleted,
		GatewayTransactionID: transactionID,
		CreatedAt:            time.Now(),
	}

	if err := s.store.InsertSplit(newSplit); err != nil {
		if errors.Is(err, storage.ErrDuplicateSplit) {
			s.log.LogPayment("REPLAY", payment.ID, fmt.Sprintf("Transaction %s already recorded", transactionID))
		} else {
			return nil, fmt.Errorf("failed to record split: %w", err)
		}
	}

	splits, err := s.store.ListSplitsByPaymentID(payment.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list splits: %w", err)
	}

	var totalPaid float64
	for _, sp := range splits {
		if sp.Status == models.SplitCompleted {
			totalPaid += sp.Amount
		}
	}

	isFullyPaid := totalPaid >= payment.Amount-settleTolerance
	s.log.LogPayment("PROGRESS", payment.ID, fmt.Sprintf("Paid %.2f of %.2f (%d splits)", totalPaid, payment.Amount, len(splits)))

	message := "Payment split recorded"
	if isFullyPaid {
		if err := s.store.SettlePayment(payment.ID, order.ID, order.TableID, time.Now()); err != nil {
			return nil, fmt.Errorf("failed to settle payment: %w", err)
		}
		message = "Payment completed successfully"
		s.log.LogPayment("SETTLED", payment.ID, fmt.Sprintf("Order %s completed, table %s released", order.ID, order.TableID))
		s.publishEvent("payment.completed", payment)
	} else {
		s.publishEvent("payment.split.recorded", payment)
	}

	return &models.CompleteSplitResponse{
		Message:         message,
		IsFullyPaid:     isFullyPaid,
		TotalPaid:       totalPaid,
		RemainingAmount: payment.Amount - totalPaid,
	}, nil
}

func (s *PaymentService) totalCompleted(paymentID string) (float64, error) {
	splits, err := s.store.ListSplitsByPaymentID(paymentID)
	if err != nil {
		return 0, fmt.Errorf("failed to list splits: %w", err)
	}
	var total float64
	for _, sp := range splits {
		if sp.Status == models.SplitCompleted {
			total += sp.Amount
		}
	}
	return total, nil
}

// HandleWebhook applies an inbound gateway notification. A successful charge
// goes through the same split reconciliation as the completion endpoint, so
// webhook and client-driven completion for the same transaction cannot
// double-apply.
func (s *PaymentService) HandleWebhook(ctx context.Context, req *models.WebhookRequest) (*models.CompleteSplitResponse, error) {
	s.log.LogPayment("WEBHOOK", req.PaymentID, fmt.Sprintf("Gateway status %q for transaction %s", req.Status, req.TransactionID))

	payment, err := s.store.GetPayment(req.PaymentID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, fmt.Errorf("failed to load payment: %w", err)
	}

	// A settled payment never leaves completed. Late or out-of-order
	// gateway notifications for it are acknowledged and dropped.
	if payment.Status == models.StateCompleted && req.Status != "success" {
		s.log.LogPayment("STALE", payment.ID, fmt.Sprintf("Ignoring %q notification for settled payment", req.Status))
		totalPaid, err := s.totalCompleted(payment.ID)
		if err != nil {
			return nil, err
		}
		return &models.CompleteSplitResponse{
			Message:         "Payment already completed",
			IsFullyPaid:     true,
			TotalPaid:       totalPaid,
			RemainingAmount: payment.Amount - totalPaid,
		}, nil
	}

	switch req.Status {
	case "success":
		return s.CompleteSplit(ctx, &models.CompleteSplitRequest{
			PaymentID:            req.PaymentID,
			GatewayTransactionID: req.TransactionID,
			Amount:               req.Amount,
		})
	case "failed":
		if err := s.store.UpdatePaymentStatus(payment.ID, models.StateFailed, req.TransactionID); err != nil {
			return nil, fmt.Errorf("failed to mark payment failed: %w", err)
		}
		s.publishEvent("payment.failed", payment)
		return &models.CompleteSplitResponse{Message: "Payment marked as failed"}, nil
	default:
		if err := s.store.UpdatePaymentStatus(payment.ID, models.StateProcessing, req.TransactionID); err != nil {
			return nil, fmt.Errorf("failed to mark payment processing: %w", err)
		}
		return &models.CompleteSplitResponse{Message: "Payment marked as processing"}, nil
	}
}

// CheckPayment returns the latest payment for an order with its splits
// attached, or nil when the order has no payment yet.
func (s *PaymentService) CheckPayment(ctx context.Context, orderID string) (*models.Payment, error) {
	payment, err := s.store.GetLatestPaymentByOrderID(orderID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to check payment: %w", err)
	}

	splits, err := s.store.ListSplitsByPaymentID(payment.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list splits: %w", err)
	}
	payment.Splits = splits

	return payment, nil
}

// ListSplits returns a payment's splits in insertion order.
func (s *PaymentService) ListSplits(ctx context.Context, paymentID string) ([]*models.PaymentSplit, error) {
	if _, err := s.store.GetPayment(paymentID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, fmt.Errorf("failed to load payment: %w", err)
	}
	return s.store.ListSplitsByPaymentID(paymentID)
}

// ProcessOrderEvent registers an order announced on the event bus so it can
// be paid at the table. Orders already known are skipped.
func (s *PaymentService) ProcessOrderEvent(order *models.Order) error {
	s.log.LogKafka("ORDER_RECEIVED", "order.confirmed", fmt.Sprintf("Processing order %s with status %s", order.ID, order.Status))

	if existing, err := s.store.GetOrder(order.ID); err == nil && existing != nil {
		s.log.Warn("KAFKA", fmt.Sprintf("Order %s already registered, skipping", order.ID))
		return nil
	}

	if order.OrderNumber == "" {
		order.OrderNumber = utils.GenerateOrderNumber(time.Now())
	}
	if order.Status == "" {
		order.Status = models.OrderConfirmed
	}
	if order.PaymentStatus == "" {
		order.PaymentStatus = models.PaymentStatusPending
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now()
	}

	if err := s.store.SaveOrder(order); err != nil {
		s.log.Error("DATABASE", fmt.Sprintf("Failed to register order %s: %v", order.ID, err))
		return fmt.Errorf("failed to save order: %w", err)
	}

	s.log.LogDatabase("SAVE", "orders", fmt.Sprintf("Order %s registered for table %s", order.ID, order.TableID))
	return nil
}

func (s *PaymentService) publishEvent(eventType string, payment *models.Payment) {
	event := &models.PaymentEvent{
		Type:      eventType,
		PaymentID: payment.ID,
		Payment:   payment,
		Timestamp: time.Now(),
	}

	if err := s.producer.PublishPaymentEvent(event); err != nil {
		// Settlement already happened; event delivery is best effort.
		s.log.Error("KAFKA", fmt.Sprintf("Failed to publish %s for payment %s: %v", eventType, payment.ID, err))
	}
}
