package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cache2k25/registration-backend/internal/catalog"
	"github.com/cache2k25/registration-backend/internal/payment"
	"github.com/cache2k25/registration-backend/internal/registration"
	"github.com/cache2k25/registration-backend/internal/service"
)

// RegistrationHandler exposes the write path (register after payment) and
// the admin read paths over the ledger.
type RegistrationHandler struct {
	Svc *service.RegistrationService
}

// NewRegistrationHandler constructs a RegistrationHandler.
func NewRegistrationHandler(svc *service.RegistrationService) *RegistrationHandler {
	if svc == nil {
		panic("nil service passed to NewRegistrationHandler")
	}
	return &RegistrationHandler{Svc: svc}
}

// Register handles POST /registrations: the submission plus the checkout
// callback fields.  Persistence happens only after the payment signature
// verifies.  A ledger failure after verification is answered with a
// distinct code so support staff know money moved without a row.
func (h *RegistrationHandler) Register(c echo.Context) error {
	var req service.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	id, err := h.Svc.Register(c.Request().Context(), req)
	if err != nil {
		var ve *registration.ValidationError
		switch {
		case errors.As(err, &ve):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": ve.Error(), "causes": ve.Causes})
		case errors.Is(err, catalog.ErrEventNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		case errors.Is(err, payment.ErrVerification):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "payment verification failed"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{
				"error": "failed to save registration",
				"code":  "LEDGER_WRITE_FAILED",
			})
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success":        true,
		"registrationId": id,
		"message":        "Registration saved successfully",
	})
}

// List handles GET /registrations (admin): every confirmed registration.
func (h *RegistrationHandler) List(c echo.Context) error {
	regs, err := h.Svc.ListAll(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch registrations"})
	}
	return c.JSON(http.StatusOK, regs)
}

// ListByEvent handles GET /registrations/:eventId (admin).
func (h *RegistrationHandler) ListByEvent(c echo.Context) error {
	regs, err := h.Svc.ListByEvent(c.Request().Context(), c.Param("eventId"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch event registrations"})
	}
	return c.JSON(http.StatusOK, regs)
}
