// Package router defines how HTTP routes are registered for the API.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/cache2k25/registration-backend/internal/handler"
	"github.com/cache2k25/registration-backend/internal/middleware"
)

// Handlers bundles everything the router needs to wire.
type Handlers struct {
	Events       *handler.EventHandler
	Orders       *handler.OrderHandler
	Payments     *handler.PaymentHandler
	Registration *handler.RegistrationHandler
	Export       *handler.ExportHandler
	Auth         *handler.AuthHandler
}

// RegisterRoutes registers the public pipeline routes: health, catalog
// browsing, order creation, payment verification and the registration
// write path.
func RegisterRoutes(e *echo.Echo, h Handlers) {
	e.GET("/health", handler.Health)

	e.GET("/events", h.Events.List)
	e.GET("/events/:id", h.Events.Get)

	e.POST("/order", h.Orders.Create)
	e.POST("/payments/verify", h.Payments.Verify)
	e.POST("/registrations", h.Registration.Register)

	e.POST("/admin/login", h.Auth.Login)
}

// RegisterAdmin registers the protected read surface.  Listings and the
// spreadsheet export expose attendee contact data, so they sit behind the
// admin JWT.
func RegisterAdmin(e *echo.Echo, h Handlers, jwtSecret string) {
	g := e.Group("")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.GET("/registrations", h.Registration.List)
	g.GET("/registrations/:eventId", h.Registration.ListByEvent)
	g.GET("/export", h.Export.Export)
}
