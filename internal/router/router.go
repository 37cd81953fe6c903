package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/seatmap/internal/handler"
	"github.com/iliyamo/seatmap/internal/middleware"
)

// RegisterRoutes registers routes that carry no application state.
// Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	// Load balancers and monitoring poll /healthz.
	e.GET("/healthz", handler.Health)
}

// RegisterSeatAPI registers the public seat inventory endpoint.  The given
// middlewares (cache, rate limiter) run in order before the handler.
func RegisterSeatAPI(e *echo.Echo, h *handler.SeatAPIHandler, mw ...echo.MiddlewareFunc) {
	e.GET("/api/seats/:vehicle_type/:vehicle_id", h.GetSeats, mw...)
}

// RegisterWidgets registers the widget hosting API.  Creating a widget is
// open; every other operation needs the widget handle issued on creation.
// limiter may be nil.
func RegisterWidgets(e *echo.Echo, h *handler.WidgetHandler, secret string, limiter echo.MiddlewareFunc) {
	var open []echo.MiddlewareFunc
	if limiter != nil {
		open = append(open, limiter)
	}
	e.POST("/v1/widgets", h.Create, open...)

	g := e.Group("/v1/widgets")
	// The token check runs first so the limiter can key on the widget id.
	g.Use(middleware.WidgetToken(secret))
	if limiter != nil {
		g.Use(limiter)
	}
	g.POST("/toggle/:seat_id", h.Toggle)
	g.GET("/selection", h.Selection)
	g.GET("/html", h.Render)
	g.POST("/reload", h.Reload)
	g.DELETE("", h.Delete)
}
