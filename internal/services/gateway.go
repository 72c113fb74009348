package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tablepay/internal/gateway"
	"tablepay/internal/logger"
	"tablepay/internal/models"
	"tablepay/internal/utils"
)

var ErrUnsupportedPaymentMethod = errors.New("unsupported payment method")

// defaultTestCard is charged when a process request carries no card details.
// Matches the hosted checkout flow where the page collects the card itself.
var defaultTestCard = &models.GatewayCardDetails{
	CardNumber:  "4111111111111111",
	CardHolder:  "Test Customer",
	ExpiryMonth: "12",
	ExpiryYear:  "28",
	CVV:         "123",
}

// GatewayService drives the acquirer for card and wallet charges and feeds
// successful charges into split reconciliation.
type GatewayService struct {
	gw       *gateway.Gateway
	payments *PaymentService
	log      *logger.Logger
}

func NewGatewayService(gw *gateway.Gateway, payments *PaymentService, log *logger.Logger) *GatewayService {
	return &GatewayService{
		gw:       gw,
		payments: payments,
		log:      log,
	}
}

// ProcessPayment runs the initiate-then-charge flow for one split. Requests
// that already carry a transaction id were charged on the hosted page, so
// they skip the gateway and go straight to reconciliation.
func (s *GatewayService) ProcessPayment(ctx context.Context, req *models.ProcessPaymentRequest) (*models.GatewayPaymentResponse, error) {
	if req.TransactionID != "" {
		s.log.LogPayment("HOSTED", req.PaymentID, fmt.Sprintf("Transaction %s charged externally", req.TransactionID))
		resp := &models.GatewayPaymentResponse{
			Success:         true,
			TransactionID:   req.TransactionID,
			OrderID:         req.OrderID,
			ResponseCode:    gateway.CodeApproved,
			ResponseMessage: "Payment completed via hosted page",
			Amount:          req.Amount,
			Currency:        req.Currency,
			Status:          "completed",
			Timestamp:       time.Now().UTC().Format(time.RFC3339),
		}
		s.recordSplit(ctx, req.PaymentID, resp)
		return resp, nil
	}

	intent, err := s.gw.InitiatePayment(ctx, &models.GatewayPaymentRequest{
		OrderID:  req.OrderID,
		Amount:   req.Amount,
		Currency: req.Currency,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initiate payment: %w", err)
	}

	var resp *models.GatewayPaymentResponse
	switch req.PaymentMethod {
	case "wallet":
		resp, err = s.gw.ProcessWalletPayment(ctx, intent.PaymentIntentID, req.WalletType, req.Wallet, req.Amount)
	case "", "card":
		card := req.Card
		if card == nil {
			card = defaultTestCard
		}
		resp, err = s.gw.ProcessCardPayment(ctx, intent.PaymentIntentID, card, req.Amount)
	default:
		return nil, ErrUnsupportedPaymentMethod
	}
	if err != nil {
		return nil, fmt.Errorf("failed to process payment: %w", err)
	}

	resp.OrderID = req.OrderID
	if resp.Success {
		s.recordSplit(ctx, req.PaymentID, resp)
	}
	return resp, nil
}

// ValidateCard checks card details without charging them.
func (s *GatewayService) ValidateCard(req *models.CardValidationRequest) *models.CardValidationResponse {
	return s.gw.ValidateCard(req.Card)
}

// CheckStatus looks up a transaction at the gateway.
func (s *GatewayService) CheckStatus(ctx context.Context, transactionID string) (*models.GatewayPaymentResponse, error) {
	return s.gw.CheckStatus(ctx, transactionID)
}

func (s *GatewayService) recordSplit(ctx context.Context, paymentID string, resp *models.GatewayPaymentResponse) {
	if paymentID == "" {
		return
	}

	transactionID := resp.TransactionID
	if transactionID == "" {
		transactionID = utils.GenerateTransactionID()
	}

	_, err := s.payments.CompleteSplit(ctx, &models.CompleteSplitRequest{
		PaymentID:            paymentID,
		GatewayTransactionID: transactionID,
		Amount:               resp.Amount,
	})
	if err != nil {
		// The charge succeeded at the gateway; reconciliation can be
		// retried through the completion endpoint or the webhook.
		s.log.Error("PAYMENT", fmt.Sprintf("Failed to record split for payment %s: %v", paymentID, err))
	}
}
