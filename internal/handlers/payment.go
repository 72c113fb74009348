package handlers

import (
	"errors"
	"net/http"

	"tablepay/internal/models"
	"tablepay/internal/services"
	"tablepay/internal/utils"

	"github.com/gin-gonic/gin"
)

type PaymentHandler struct {
	paymentService *services.PaymentService
}

func NewPaymentHandler(paymentService *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
	}
}

func (h *PaymentHandler) CreateLink(c *gin.Context) {
	var req models.CreateLinkRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Invalid request payload", err.Error()))
		return
	}

	resp, err := h.paymentService.CreatePaymentLink(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrOrderNotFound):
			c.JSON(http.StatusNotFound, utils.ErrorResponse("Order not found", err.Error()))
		case errors.Is(err, services.ErrInvalidSplitCount):
			c.JSON(http.StatusBadRequest, utils.ErrorResponse("Invalid split count", err.Error()))
		default:
			c.JSON(http.StatusInternalServerError, utils.ErrorResponse("Failed to create payment link", err.Error()))
		}
		return
	}

	c.JSON(http.StatusOK, utils.SuccessResponse("Payment link created", resp))
}

func (h *PaymentHandler) CompleteSplit(c *gin.Context) {
	var req models.CompleteSplitRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Invalid request payload", err.Error()))
		return
	}

	resp, err := h.paymentService.CompleteSplit(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPaymentNotFound):
			c.JSON(http.StatusNotFound, utils.ErrorResponse("Payment not found", err.Error()))
		case errors.Is(err, services.ErrOrderNotFound):
			c.JSON(http.StatusNotFound, utils.ErrorResponse("Order not found", err.Error()))
		case errors.Is(err, services.ErrSettlementInProgress):
			c.JSON(http.StatusConflict, utils.ErrorResponse("Settlement in progress, retry shortly", err.Error()))
		default:
			c.JSON(http.StatusInternalServerError, utils.ErrorResponse("Failed to complete payment", err.Error()))
		}
		return
	}

	c.JSON(http.StatusOK, utils.SuccessResponse(resp.Message, resp))
}

// CheckPayment reports the payment state for an order. An order with no
// payment yet is a successful response with a nil payment, not an error.
func (h *PaymentHandler) CheckPayment(c *gin.Context) {
	orderID := c.Query("orderId")
	if orderID == "" {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("orderId query parameter is required", ""))
		return
	}

	payment, err := h.paymentService.CheckPayment(c.Request.Context(), orderID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse("Failed to check payment", err.Error()))
		return
	}

	if payment == nil {
		c.JSON(http.StatusOK, utils.SuccessResponse("No payment for order", nil))
		return
	}

	c.JSON(http.StatusOK, utils.SuccessResponse("Payment retrieved", payment))
}

func (h *PaymentHandler) ListSplits(c *gin.Context) {
	paymentID := c.Param("id")
	if paymentID == "" {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Payment ID is required", ""))
		return
	}

	splits, err := h.paymentService.ListSplits(c.Request.Context(), paymentID)
	if err != nil {
		if errors.Is(err, services.ErrPaymentNotFound) {
			c.JSON(http.StatusNotFound, utils.ErrorResponse("Payment not found", err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse("Failed to list splits", err.Error()))
		return
	}

	c.JSON(http.StatusOK, utils.SuccessResponse("Splits retrieved", splits))
}

func (h *PaymentHandler) Webhook(c *gin.Context) {
	var req models.WebhookRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Invalid webhook payload", err.Error()))
		return
	}

	resp, err := h.paymentService.HandleWebhook(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPaymentNotFound):
			c.JSON(http.StatusNotFound, utils.ErrorResponse("Payment not found", err.Error()))
		case errors.Is(err, services.ErrSettlementInProgress):
			c.JSON(http.StatusConflict, utils.ErrorResponse("Settlement in progress, retry shortly", err.Error()))
		default:
			c.JSON(http.StatusInternalServerError, utils.ErrorResponse("Failed to process webhook", err.Error()))
		}
		return
	}

	c.JSON(http.StatusOK, utils.SuccessResponse(resp.Message, resp))
}
