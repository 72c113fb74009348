// Package gateway simulates the Geidea card/wallet processor. The service
// talks to it through the same request/response shapes a real integration
// would use, so swapping in the live gateway is contained to this package.
package gateway

import (
	"context"
	"math/rand"
	"regexp"
	"strconv"
	"strings"
	"time"

	"tablepay/internal/logger"
	"tablepay/internal/models"
	"tablepay/internal/utils"
)

const (
	CodeApproved          = "000"
	CodeInsufficientFunds = "005"
	CodeInvalidCard       = "051"
	CodeInvalidWallet     = "052"
)

var (
	cardNumberPattern = regexp.MustCompile(`^\d{16}$`)
	cvvPattern        = regexp.MustCompile(`^\d{3,4}$`)
	phonePattern      = regexp.MustCompile(`^\+?[0-9]{10,15}$`)
)

type Config struct {
	Currency          string
	CardFailureRate   float64
	WalletFailureRate float64
	Latency           time.Duration
}

// Gateway is the mocked processor. The random source and clock are
// injectable so tests can force both the decline and the approval branch.
type Gateway struct {
	cfg Config
	rng *rand.Rand
	now func() time.Time
	log *logger.Logger
}

func New(cfg Config, log *logger.Logger) *Gateway {
	return &Gateway{
		cfg: cfg,
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
		now: time.Now,
		log: log,
	}
}

// NewDeterministic pins the random source and clock; used by tests.
func NewDeterministic(cfg Config, src rand.Source, now func() time.Time, log *logger.Logger) *Gateway {
	return &Gateway{
		cfg: cfg,
		rng: rand.New(src),
		now: now,
		log: log,
	}
}

// InitiatePayment opens a payment intent. The mock always succeeds.
func (g *Gateway) InitiatePayment(ctx context.Context, req *models.GatewayPaymentRequest) (*models.GatewayPaymentResponse, error) {
	if err := g.simulateLatency(ctx); err != nil {
		return nil, err
	}

	currency := req.Currency
	if currency == "" {
		currency = g.cfg.Currency
	}

	resp := &models.GatewayPaymentResponse{
		Success:         true,
		TransactionID:   utils.GenerateTransactionID(),
		OrderID:         req.OrderID,
		PaymentIntentID: utils.GeneratePaymentIntentID(),
		ResponseCode:    CodeApproved,
		ResponseMessage: "Payment initiated successfully",
		Amount:          req.Amount,
		Currency:        currency,
		Status:          "pending",
		Timestamp:       g.now().UTC().Format(time.RFC3339),
	}

	g.log.LogPayment("INITIATE", resp.PaymentIntentID, "Payment intent created for order "+req.OrderID)
	return resp, nil
}

// ProcessCardPayment validates the card, then approves or declines the
// charge against the configured failure rate.
func (g *Gateway) ProcessCardPayment(ctx context.Context, paymentIntentID string, card *models.GatewayCardDetails, amount float64) (*models.GatewayPaymentResponse, error) {
	if err := g.simulateLatency(ctx); err != nil {
		return nil, err
	}

	if !g.validateCard(card) {
		g.log.LogPayment("DECLINE", paymentIntentID, "Card validation failed")
		return g.failure(paymentIntentID, amount, CodeInvalidCard, "Invalid card details"), nil
	}

	if g.rng.Float64() < g.cfg.CardFailureRate {
		g.log.LogPayment("DECLINE", paymentIntentID, "Simulated issuer decline")
		return g.failure(paymentIntentID, amount, CodeInsufficientFunds, "Insufficient funds"), nil
	}

	g.log.LogPayment("APPROVE", paymentIntentID, "Card charge approved")
	return g.success(paymentIntentID, amount, "Payment completed successfully"), nil
}

// ProcessWalletPayment charges a digital wallet (STC Pay, Alipay, Tamara).
func (g *Gateway) ProcessWalletPayment(ctx context.Context, paymentIntentID, walletType string, wallet *models.GatewayWalletDetails, amount float64) (*models.GatewayPaymentResponse, error) {
	if err := g.simulateLatency(ctx); err != nil {
		return nil, err
	}

	label := strings.ToUpper(walletType)

	if wallet != nil && wallet.PhoneNumber != "" {
		normalized := strings.ReplaceAll(wallet.PhoneNumber, " ", "")
		if !phonePattern.MatchString(normalized) {
			g.log.LogPayment("DECLINE", paymentIntentID, "Invalid wallet phone number")
			return g.failure(paymentIntentID, amount, CodeInvalidWallet, "Invalid phone number"), nil
		}
	}

	if g.rng.Float64() < g.cfg.WalletFailureRate {
		g.log.LogPayment("DECLINE", paymentIntentID, label+" wallet declined")
		return g.failure(paymentIntentID, amount, CodeInsufficientFunds, label+" payment declined"), nil
	}

	g.log.LogPayment("APPROVE", paymentIntentID, label+" wallet charge approved")
	return g.success(paymentIntentID, amount, label+" payment completed successfully"), nil
}

// CheckStatus reports the state of a settled transaction.
func (g *Gateway) CheckStatus(ctx context.Context, transactionID string) (*models.GatewayPaymentResponse, error) {
	if err := g.simulateLatency(ctx); err != nil {
		return nil, err
	}

	return &models.GatewayPaymentResponse{
		Success:         true,
		TransactionID:   transactionID,
		ResponseCode:    CodeApproved,
		ResponseMessage: "Payment status retrieved",
		Currency:        g.cfg.Currency,
		Status:          "completed",
		Timestamp:       g.now().UTC().Format(time.RFC3339),
	}, nil
}

// ValidateCard exposes the validation rules without creating a charge.
func (g *Gateway) ValidateCard(card *models.GatewayCardDetails) *models.CardValidationResponse {
	if !g.validateCard(card) {
		return &models.CardValidationResponse{
			Valid:   false,
			Message: "Invalid card details",
		}
	}

	number := strings.ReplaceAll(card.CardNumber, " ", "")
	return &models.CardValidationResponse{
		Valid:   true,
		Message: "Card is valid",
		Last4:   number[len(number)-4:],
	}
}

func (g *Gateway) validateCard(card *models.GatewayCardDetails) bool {
	if card == nil {
		return false
	}

	number := strings.ReplaceAll(card.CardNumber, " ", "")
	if !cardNumberPattern.MatchString(number) {
		return false
	}

	month, err := strconv.Atoi(card.ExpiryMonth)
	if err != nil || month < 1 || month > 12 {
		return false
	}

	year, err := strconv.Atoi(card.ExpiryYear)
	if err != nil {
		return false
	}
	// Two-digit years are relative to the 2000s, matching what the pay page
	// collects.
	if year < 100 {
		year += 2000
	}

	now := g.now()
	if year < now.Year() {
		return false
	}
	if year == now.Year() && month < int(now.Month()) {
		return false
	}

	return cvvPattern.MatchString(card.CVV)
}

func (g *Gateway) success(paymentIntentID string, amount float64, message string) *models.GatewayPaymentResponse {
	return &models.GatewayPaymentResponse{
		Success:         true,
		TransactionID:   utils.GenerateTransactionID(),
		PaymentIntentID: paymentIntentID,
		ResponseCode:    CodeApproved,
		ResponseMessage: message,
		Amount:          amount,
		Currency:        g.cfg.Currency,
		Status:          "completed",
		Timestamp:       g.now().UTC().Format(time.RFC3339),
	}
}

func (g *Gateway) failure(paymentIntentID string, amount float64, code, message string) *models.GatewayPaymentResponse {
	return &models.GatewayPaymentResponse{
		Success:         false,
		TransactionID:   utils.GenerateTransactionID(),
		PaymentIntentID: paymentIntentID,
		ResponseCode:    code,
		ResponseMessage: message,
		Amount:          amount,
		Currency:        g.cfg.Currency,
		Status:          "failed",
		Timestamp:       g.now().UTC().Format(time.RFC3339),
	}
}

func (g *Gateway) simulateLatency(ctx context.Context) error {
	if g.cfg.Latency <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(g.cfg.Latency):
		return nil
	}
}
