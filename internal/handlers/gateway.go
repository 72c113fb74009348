package handlers

import (
	"errors"
	"net/http"

	"tablepay/internal/models"
	"tablepay/internal/services"
	"tablepay/internal/utils"

	"github.com/gin-gonic/gin"
)

type GatewayHandler struct {
	gatewayService *services.GatewayService
}

func NewGatewayHandler(gatewayService *services.GatewayService) *GatewayHandler {
	return &GatewayHandler{
		gatewayService: gatewayService,
	}
}

// ProcessPayment charges one split through the gateway. A declined card is a
// successful HTTP response carrying the gateway's decline code, not an error.
func (h *GatewayHandler) ProcessPayment(c *gin.Context) {
	var req models.ProcessPaymentRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Invalid request payload", err.Error()))
		return
	}

	resp, err := h.gatewayService.ProcessPayment(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, services.ErrUnsupportedPaymentMethod) {
			c.JSON(http.StatusBadRequest, utils.ErrorResponse("Unsupported payment method", err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse("Payment processing failed", err.Error()))
		return
	}

	if resp.Success {
		c.JSON(http.StatusOK, utils.SuccessResponse("Payment processed", resp))
	} else {
		c.JSON(http.StatusOK, utils.SuccessResponse("Payment declined", resp))
	}
}

func (h *GatewayHandler) ValidateCard(c *gin.Context) {
	var req models.CardValidationRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Invalid request payload", err.Error()))
		return
	}

	resp := h.gatewayService.ValidateCard(&req)
	c.JSON(http.StatusOK, utils.SuccessResponse("Card validated", resp))
}

func (h *GatewayHandler) CheckStatus(c *gin.Context) {
	transactionID := c.Param("transactionId")
	if transactionID == "" {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Transaction ID is required", ""))
		return
	}

	resp, err := h.gatewayService.CheckStatus(c.Request.Context(), transactionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse("Failed to check transaction status", err.Error()))
		return
	}

	c.JSON(http.StatusOK, utils.SuccessResponse("Transaction status retrieved", resp))
}
