package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tablepay/internal/auth"
	"tablepay/internal/config"
	"tablepay/internal/kafka"
	"tablepay/internal/logger"
	"tablepay/internal/middleware"
	"tablepay/internal/models"
	"tablepay/internal/services"
	"tablepay/internal/storage"
	"tablepay/internal/utils"
)

type noopLocker struct{}

func (noopLocker) AcquireSettlement(ctx context.Context, paymentID string) (bool, error) {
	return true, nil
}
func (noopLocker) ReleaseSettlement(ctx context.Context, paymentID string) error { return nil }

type fixture struct {
	router *gin.Engine
	store  *storage.InMemoryStore
	tokens *auth.TokenService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := logger.NewLogger()
	store := storage.NewInMemoryStore()

	producer, err := kafka.NewProducer(nil, true, log)
	require.NoError(t, err)

	gwCfg := config.GatewayConfig{
		BaseURL:         "https://payment.geidea.com/pay",
		MerchantID:      "alnakheel",
		DefaultCurrency: "SAR",
	}
	authCfg := config.AuthConfig{
		JWTSecret:        "test-secret-at-least-32-characters-long",
		TokenTTL:         time.Hour,
		MerchantEmail:    "merchant@example.com",
		MerchantPassword: "s3cret!",
		MerchantName:     "Demo Merchant",
	}

	tokens := auth.NewTokenService(authCfg)
	paymentService := services.NewPaymentService(store, producer, log, noopLocker{}, gwCfg)
	restaurantService := services.NewRestaurantService(store, log)

	paymentHandler := NewPaymentHandler(paymentService)
	restaurantHandler := NewRestaurantHandler(restaurantService)
	authHandler := NewAuthHandler(tokens)

	router := gin.New()
	v1 := router.Group("/api/v1")
	v1.GET("/menu/:qrCode", restaurantHandler.Menu)
	v1.GET("/tables/:qrCode", restaurantHandler.TableSession)
	payments := v1.Group("/payments")
	payments.POST("/create-link", paymentHandler.CreateLink)
	payments.POST("/complete", paymentHandler.CompleteSplit)
	payments.GET("/check", paymentHandler.CheckPayment)
	payments.GET("/:id/splits", paymentHandler.ListSplits)
	payments.POST("/webhook", paymentHandler.Webhook)
	v1.POST("/auth/login", authHandler.Login)
	v1.POST("/auth/verify", authHandler.Verify)
	merchant := v1.Group("/merchant")
	merchant.Use(middleware.RequireAuth(tokens, log))
	merchant.GET("/tables", restaurantHandler.MerchantTables)

	return &fixture{router: router, store: store, tokens: tokens}
}

func (f *fixture) seed() {
	f.store.AddRestaurant(&models.Restaurant{
		ID: "rest-001", Name: "Al Nakheel Restaurant", Email: "merchant@example.com",
		Currency: "SAR", VATPercent: 15, CreatedAt: time.Now(),
	})
	f.store.AddTable(&models.Table{
		ID: "table-001", RestaurantID: "rest-001", TableNumber: 1,
		QRCode: "QR-T1", Status: models.TableOccupied,
	})
	f.store.SaveOrder(&models.Order{
		ID: "order-001", RestaurantID: "rest-001", TableID: "table-001",
		OrderNumber: "ORD-20250901-000001",
		Subtotal:    185.00, VATAmount: 27.75, TotalAmount: 212.75,
		Status: models.OrderConfirmed, PaymentStatus: models.PaymentStatusPending,
		CreatedAt: time.Now(),
	})
}

func (f *fixture) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) utils.APIResponse {
	t.Helper()
	var resp utils.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestCreateLinkEndpoint(t *testing.T) {
	f := newFixture(t)
	f.seed()

	w := f.do(t, http.MethodPost, "/api/v1/payments/create-link", gin.H{
		"orderId":   "order-001",
		"numPeople": 2,
	})
	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeEnvelope(t, w)
	assert.True(t, resp.Success)

	data := resp.Data.(map[string]interface{})
	assert.NotEmpty(t, data["paymentId"])
	assert.InDelta(t, 106.375, data["amount"].(float64), 0.001)
	assert.Contains(t, data["paymentLink"].(string), "merchantId=alnakheel")
}

func TestCreateLinkUnknownOrderReturns404(t *testing.T) {
	f := newFixture(t)
	f.seed()

	w := f.do(t, http.MethodPost, "/api/v1/payments/create-link", gin.H{
		"orderId":   "missing",
		"numPeople": 2,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.False(t, decodeEnvelope(t, w).Success)
}

func TestCreateLinkMissingBodyReturns400(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodPost, "/api/v1/payments/create-link", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCompleteAndCheckFlow(t *testing.T) {
	f := newFixture(t)
	f.seed()

	w := f.do(t, http.MethodPost, "/api/v1/payments/create-link", gin.H{
		"orderId":   "order-001",
		"numPeople": 2,
	})
	require.Equal(t, http.StatusOK, w.Code)
	paymentID := decodeEnvelope(t, w).Data.(map[string]interface{})["paymentId"].(string)

	w = f.do(t, http.MethodPost, "/api/v1/payments/complete", gin.H{
		"paymentId":            paymentID,
		"gatewayTransactionId": "TXN-AAA",
		"amount":               106.375,
	})
	require.Equal(t, http.StatusOK, w.Code)
	data := decodeEnvelope(t, w).Data.(map[string]interface{})
	assert.False(t, data["isFullyPaid"].(bool))

	w = f.do(t, http.MethodPost, "/api/v1/payments/complete", gin.H{
		"paymentId":            paymentID,
		"gatewayTransactionId": "TXN-BBB",
		"amount":               106.375,
	})
	require.Equal(t, http.StatusOK, w.Code)
	data = decodeEnvelope(t, w).Data.(map[string]interface{})
	assert.True(t, data["isFullyPaid"].(bool))

	w = f.do(t, http.MethodGet, "/api/v1/payments/check?orderId=order-001", nil)
	require.Equal(t, http.StatusOK, w.Code)
	payment := decodeEnvelope(t, w).Data.(map[string]interface{})
	assert.Equal(t, "completed", payment["status"])

	w = f.do(t, http.MethodGet, fmt.Sprintf("/api/v1/payments/%s/splits", paymentID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	splits := decodeEnvelope(t, w).Data.([]interface{})
	assert.Len(t, splits, 2)
}

func TestCheckWithoutPaymentReturnsNullData(t *testing.T) {
	f := newFixture(t)
	f.seed()

	w := f.do(t, http.MethodGet, "/api/v1/payments/check?orderId=order-001", nil)
	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeEnvelope(t, w)
	assert.True(t, resp.Success)
	assert.Nil(t, resp.Data)
}

func TestWebhookEndpoint(t *testing.T) {
	f := newFixture(t)
	f.seed()

	w := f.do(t, http.MethodPost, "/api/v1/payments/create-link", gin.H{
		"orderId":   "order-001",
		"numPeople": 1,
	})
	require.Equal(t, http.StatusOK, w.Code)
	paymentID := decodeEnvelope(t, w).Data.(map[string]interface{})["paymentId"].(string)

	w = f.do(t, http.MethodPost, "/api/v1/payments/webhook", gin.H{
		"paymentId":     paymentID,
		"transactionId": "TXN-GW",
		"status":        "success",
		"amount":        212.75,
	})
	require.Equal(t, http.StatusOK, w.Code)
	data := decodeEnvelope(t, w).Data.(map[string]interface{})
	assert.True(t, data["isFullyPaid"].(bool))
}

func TestMenuAndTableSessionEndpoints(t *testing.T) {
	f := newFixture(t)
	f.seed()
	f.store.AddMenuCategory(&models.MenuCategory{ID: "cat-1", RestaurantID: "rest-001", Name: "Mains", DisplayOrder: 1})
	f.store.AddMenuItem(&models.MenuItem{ID: "item-1", RestaurantID: "rest-001", CategoryID: "cat-1", Name: "Lamb Kabsa", Price: 65, Available: true})

	w := f.do(t, http.MethodGet, "/api/v1/menu/QR-T1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	menu := decodeEnvelope(t, w).Data.(map[string]interface{})
	assert.Equal(t, "SAR", menu["currency"])

	w = f.do(t, http.MethodGet, "/api/v1/tables/QR-T1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	session := decodeEnvelope(t, w).Data.(map[string]interface{})
	order := session["order"].(map[string]interface{})
	assert.Equal(t, "order-001", order["id"])

	w = f.do(t, http.MethodGet, "/api/v1/menu/QR-UNKNOWN", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestLoginAndProtectedRoute(t *testing.T) {
	f := newFixture(t)
	f.seed()

	// No token is rejected.
	w := f.do(t, http.MethodGet, "/api/v1/merchant/tables", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = f.do(t, http.MethodPost, "/api/v1/auth/login", gin.H{
		"email":    "merchant@example.com",
		"password": "s3cret!",
	})
	require.Equal(t, http.StatusOK, w.Code)
	login := decodeEnvelope(t, w).Data.(map[string]interface{})
	token := login["token"].(string)
	require.NotEmpty(t, token)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/merchant/tables", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	w = f.do(t, http.MethodPost, "/api/v1/auth/login", gin.H{
		"email":    "merchant@example.com",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
