package handlers

import (
	"errors"
	"net/http"

	"tablepay/internal/models"
	"tablepay/internal/services"
	"tablepay/internal/utils"

	"github.com/gin-gonic/gin"
)

type RestaurantHandler struct {
	restaurantService *services.RestaurantService
}

func NewRestaurantHandler(restaurantService *services.RestaurantService) *RestaurantHandler {
	return &RestaurantHandler{
		restaurantService: restaurantService,
	}
}

// Menu serves the customer menu for a scanned table QR code.
func (h *RestaurantHandler) Menu(c *gin.Context) {
	qrCode := c.Param("qrCode")

	menu, err := h.restaurantService.MenuByQRCode(c.Request.Context(), qrCode)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTableNotFound):
			c.JSON(http.StatusNotFound, utils.ErrorResponse("Table not found", err.Error()))
		case errors.Is(err, services.ErrRestaurantNotFound):
			c.JSON(http.StatusNotFound, utils.ErrorResponse("Restaurant not found", err.Error()))
		default:
			c.JSON(http.StatusInternalServerError, utils.ErrorResponse("Failed to load menu", err.Error()))
		}
		return
	}

	c.JSON(http.StatusOK, utils.SuccessResponse("Menu retrieved", menu))
}

// TableSession serves the table's current bill for the pay-at-table page.
func (h *RestaurantHandler) TableSession(c *gin.Context) {
	qrCode := c.Param("qrCode")

	session, err := h.restaurantService.TableSessionByQRCode(c.Request.Context(), qrCode)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTableNotFound):
			c.JSON(http.StatusNotFound, utils.ErrorResponse("Table not found", err.Error()))
		case errors.Is(err, services.ErrRestaurantNotFound):
			c.JSON(http.StatusNotFound, utils.ErrorResponse("Restaurant not found", err.Error()))
		case errors.Is(err, services.ErrNoActiveOrder):
			c.JSON(http.StatusNotFound, utils.ErrorResponse("No active order for this table", err.Error()))
		default:
			c.JSON(http.StatusInternalServerError, utils.ErrorResponse("Failed to load table session", err.Error()))
		}
		return
	}

	c.JSON(http.StatusOK, utils.SuccessResponse("Table session retrieved", session))
}

func (h *RestaurantHandler) MerchantRestaurant(c *gin.Context) {
	restaurant, err := h.restaurantService.MerchantRestaurant(c.Request.Context(), merchantEmail(c))
	if err != nil {
		if errors.Is(err, services.ErrRestaurantNotFound) {
			c.JSON(http.StatusNotFound, utils.ErrorResponse("Restaurant not found", err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse("Failed to load restaurant", err.Error()))
		return
	}

	c.JSON(http.StatusOK, utils.SuccessResponse("Restaurant retrieved", restaurant))
}

func (h *RestaurantHandler) MerchantTables(c *gin.Context) {
	tables, err := h.restaurantService.MerchantTables(c.Request.Context(), merchantEmail(c))
	if err != nil {
		if errors.Is(err, services.ErrRestaurantNotFound) {
			c.JSON(http.StatusNotFound, utils.ErrorResponse("Restaurant not found", err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse("Failed to list tables", err.Error()))
		return
	}

	c.JSON(http.StatusOK, utils.SuccessResponse("Tables retrieved", tables))
}

func (h *RestaurantHandler) MerchantOrders(c *gin.Context) {
	status := models.OrderStatus(c.Query("status"))

	orders, err := h.restaurantService.MerchantOrders(c.Request.Context(), merchantEmail(c), status)
	if err != nil {
		if errors.Is(err, services.ErrRestaurantNotFound) {
			c.JSON(http.StatusNotFound, utils.ErrorResponse("Restaurant not found", err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse("Failed to list orders", err.Error()))
		return
	}

	c.JSON(http.StatusOK, utils.SuccessResponse("Orders retrieved", orders))
}

func merchantEmail(c *gin.Context) string {
	if v, ok := c.Get("user"); ok {
		if user, ok := v.(*models.AuthUser); ok {
			return user.Email
		}
	}
	return ""
}
