package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cache2k25/registration-backend/internal/catalog"
)

// EventHandler serves the read-only event catalog.
type EventHandler struct {
	Catalog *catalog.Catalog
}

// NewEventHandler constructs an EventHandler.
func NewEventHandler(c *catalog.Catalog) *EventHandler {
	if c == nil {
		panic("nil catalog passed to NewEventHandler")
	}
	return &EventHandler{Catalog: c}
}

// List handles GET /events and returns the full catalog.
func (h *EventHandler) List(c echo.Context) error {
	return c.JSON(http.StatusOK, h.Catalog.All())
}

// Get handles GET /events/:id.  Unknown IDs are a 404, never a default
// event.
func (h *EventHandler) Get(c echo.Context) error {
	event, err := h.Catalog.Lookup(c.Param("id"))
	if err != nil {
		if errors.Is(err, catalog.ErrEventNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "catalog lookup failed"})
	}
	return c.JSON(http.StatusOK, event)
}
