package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/orderdesk/order-gateway/internal/core/domain"
	"github.com/orderdesk/order-gateway/internal/core/ports"
)

// OrderHandler translates order routes into OrderService calls. No business
// logic lives here.
type OrderHandler struct {
	orders ports.OrderService
}

func NewOrderHandler(orders ports.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

type createOrderRequest struct {
	UserID string `json:"user_id" validate:"required"`
	Item   string `json:"item" validate:"required"`
	Amount int    `json:"amount" validate:"required,gt=0"`
}

// Create forwards an order creation upstream and returns the created
// OrderStatus.
//
// POST /orders (protected)
func (h *OrderHandler) Create(c echo.Context) error {
	var req createOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	status, err := h.orders.Create(c.Request().Context(), domain.OrderCreate{
		UserID: req.UserID,
		Item:   req.Item,
		Amount: req.Amount,
	})
	if err != nil {
		return passthroughOr(c, err)
	}

	return c.JSON(http.StatusOK, status)
}

// Get returns the order status, served from cache when possible.
//
// GET /orders/:id (protected)
func (h *OrderHandler) Get(c echo.Context) error {
	status, err := h.orders.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return passthroughOr(c, err)
	}
	return c.JSON(http.StatusOK, status)
}

// passthroughOr relays a non-2xx upstream response byte-for-byte with its
// original status; everything else goes to the central error handler.
func passthroughOr(c echo.Context, err error) error {
	var ue *domain.UpstreamStatusError
	if errors.As(err, &ue) {
		contentType := ue.ContentType
		if contentType == "" {
			contentType = echo.MIMEApplicationJSON
		}
		return c.Blob(ue.StatusCode, contentType, ue.Body)
	}
	return err
}
