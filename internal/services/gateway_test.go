package services

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tablepay/internal/gateway"
	"tablepay/internal/logger"
	"tablepay/internal/models"
	"tablepay/internal/storage"
)

func newGatewayService(t *testing.T, cardFailureRate float64) (*GatewayService, *PaymentService, *storage.InMemoryStore) {
	t.Helper()

	svc, store, _, _ := newTestService(t)

	now := func() time.Time { return time.Date(2025, time.September, 1, 12, 0, 0, 0, time.UTC) }
	gw := gateway.NewDeterministic(gateway.Config{
		Currency:        "SAR",
		CardFailureRate: cardFailureRate,
	}, rand.NewSource(1), now, logger.NewLogger())

	return NewGatewayService(gw, svc, logger.NewLogger()), svc, store
}

func TestProcessPaymentChargesAndRecordsSplit(t *testing.T) {
	gwSvc, paySvc, store := newGatewayService(t, 0)
	order := seedOrder(store)

	link, err := paySvc.CreatePaymentLink(context.Background(), &models.CreateLinkRequest{OrderID: order.ID, NumPeople: 1})
	require.NoError(t, err)

	resp, err := gwSvc.ProcessPayment(context.Background(), &models.ProcessPaymentRequest{
		PaymentID:     link.PaymentID,
		OrderID:       order.ID,
		Amount:        212.75,
		PaymentMethod: "card",
		Card: &models.GatewayCardDetails{
			CardNumber:  "4111111111111111",
			CardHolder:  "Test Customer",
			ExpiryMonth: "12",
			ExpiryYear:  "28",
			CVV:         "123",
		},
	})
	require.NoError(t, err)
	require.True(t, resp.Success)

	payment, err := store.GetPayment(link.PaymentID)
	require.NoError(t, err)
	assert.Equal(t, models.StateCompleted, payment.Status)
}

func TestProcessPaymentDeclineRecordsNothing(t *testing.T) {
	gwSvc, paySvc, store := newGatewayService(t, 1.0)
	order := seedOrder(store)

	link, err := paySvc.CreatePaymentLink(context.Background(), &models.CreateLinkRequest{OrderID: order.ID, NumPeople: 1})
	require.NoError(t, err)

	resp, err := gwSvc.ProcessPayment(context.Background(), &models.ProcessPaymentRequest{
		PaymentID:     link.PaymentID,
		OrderID:       order.ID,
		Amount:        212.75,
		PaymentMethod: "card",
		Card: &models.GatewayCardDetails{
			CardNumber:  "4111111111111111",
			ExpiryMonth: "12",
			ExpiryYear:  "28",
			CVV:         "123",
		},
	})
	require.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Equal(t, gateway.CodeInsufficientFunds, resp.ResponseCode)

	payment, err := store.GetPayment(link.PaymentID)
	require.NoError(t, err)
	assert.Equal(t, models.StatePending, payment.Status)

	splits, err := paySvc.ListSplits(context.Background(), link.PaymentID)
	require.NoError(t, err)
	assert.Empty(t, splits)
}

func TestProcessPaymentHostedShortCircuit(t *testing.T) {
	gwSvc, paySvc, store := newGatewayService(t, 1.0)
	order := seedOrder(store)

	link, err := paySvc.CreatePaymentLink(context.Background(), &models.CreateLinkRequest{OrderID: order.ID, NumPeople: 1})
	require.NoError(t, err)

	// An external transaction id means the hosted page already charged it,
	// even with the gateway configured to decline everything.
	resp, err := gwSvc.ProcessPayment(context.Background(), &models.ProcessPaymentRequest{
		PaymentID:     link.PaymentID,
		OrderID:       order.ID,
		Amount:        212.75,
		TransactionID: "TXN-HOSTED-1",
	})
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, "TXN-HOSTED-1", resp.TransactionID)

	payment, err := store.GetPayment(link.PaymentID)
	require.NoError(t, err)
	assert.Equal(t, models.StateCompleted, payment.Status)
}

func TestProcessPaymentUnsupportedMethod(t *testing.T) {
	gwSvc, _, store := newGatewayService(t, 0)
	order := seedOrder(store)

	_, err := gwSvc.ProcessPayment(context.Background(), &models.ProcessPaymentRequest{
		OrderID:       order.ID,
		Amount:        10,
		PaymentMethod: "cheque",
	})
	assert.ErrorIs(t, err, ErrUnsupportedPaymentMethod)
}

func TestGatewayServiceValidateCard(t *testing.T) {
	gwSvc, _, _ := newGatewayService(t, 0)

	resp := gwSvc.ValidateCard(&models.CardValidationRequest{
		Card: &models.GatewayCardDetails{
			CardNumber:  "4111111111111111",
			ExpiryMonth: "12",
			ExpiryYear:  "28",
			CVV:         "123",
		},
	})
	assert.True(t, resp.Valid)
	assert.Equal(t, "1111", resp.Last4)
}
