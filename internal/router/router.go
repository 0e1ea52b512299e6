package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/iliyamo/restaurant-table-booking/internal/handler" // import the handlers that implement business logic
)

// RegisterRoutes wires every endpoint of the booking service.  The rate
// limiter guards the submission endpoint only; the response cache applies to
// the read-only slot picker and shop info endpoints.  Either middleware may
// be a pass-through when Redis is unavailable.
func RegisterRoutes(e *echo.Echo, h *handler.BookingHandler, rateLimit, cache echo.MiddlewareFunc) {
	// Health check for load balancers and monitoring.
	e.GET("/healthz", handler.Health)

	v1 := e.Group("/v1")
	// Submit a booking.  Validation errors echo the original input back.
	v1.POST("/bookings", h.Create, rateLimit)
	// Look up recent bookings by phone number.
	v1.GET("/bookings", h.Lookup)
	// Selectable time slots for the picker; cacheable.
	v1.GET("/slots", h.Slots, cache)
	// Shop identity, opening hours and cutoff state; cacheable.
	v1.GET("/shop", h.ShopInfo, cache)
}
