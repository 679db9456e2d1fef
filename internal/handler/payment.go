package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cache2k25/registration-backend/internal/payment"
)

// PaymentHandler verifies checkout callbacks.
type PaymentHandler struct {
	Verifier payment.Verifier
}

// NewPaymentHandler constructs a PaymentHandler.
func NewPaymentHandler(v payment.Verifier) *PaymentHandler {
	if v == nil {
		panic("nil verifier passed to NewPaymentHandler")
	}
	return &PaymentHandler{Verifier: v}
}

type verifyReq struct {
	PaymentID string `json:"paymentId"`
	OrderID   string `json:"orderId"`
	Signature string `json:"signature"`
}

// Verify handles POST /payments/verify.  The signature is checked against
// the shared provider secret; a mismatch is a 400.  Note the asymmetry: a
// failed verification does not mean no money moved, which is why the
// verifier logs these for reconciliation.
func (h *PaymentHandler) Verify(c echo.Context) error {
	var req verifyReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	if err := h.Verifier.Verify(req.OrderID, req.PaymentID, req.Signature); err != nil {
		if errors.Is(err, payment.ErrVerification) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "payment verification failed"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "payment verification failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success":   true,
		"paymentId": req.PaymentID,
	})
}
