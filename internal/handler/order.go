package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cache2k25/registration-backend/internal/payment"
)

// OrderHandler creates payment orders for the checkout widget.
type OrderHandler struct {
	Orders payment.OrderCreator
}

// NewOrderHandler constructs an OrderHandler.
func NewOrderHandler(orders payment.OrderCreator) *OrderHandler {
	if orders == nil {
		panic("nil order creator passed to NewOrderHandler")
	}
	return &OrderHandler{Orders: orders}
}

type createOrderReq struct {
	Amount  int    `json:"amount"`  // whole rupees
	Receipt string `json:"receipt"` // client-chosen receipt reference
}

// Create handles POST /order.  The response mirrors the provider's order
// shape: paise amount, INR currency and a "created" status.  Failures are
// retry-safe; nothing has been charged at this point.
func (h *OrderHandler) Create(c echo.Context) error {
	var req createOrderReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	order, err := h.Orders.CreateOrder(c.Request().Context(), req.Amount, req.Receipt)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create order"})
	}
	return c.JSON(http.StatusOK, order)
}
