package api

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// DefaultBodyLimit caps request bodies.
const DefaultBodyLimit = "32M"

// RegisterRoutes registers every route on e.
func RegisterRoutes(e *echo.Echo, h *Handler) {
	g := e.Group("/api")
	g.GET("/health", h.HandleHealth)
	g.GET("/schema", h.HandleSchema)
	g.POST("/harmonize", h.HandleHarmonize)
}

// NewServer builds an echo instance with middleware, error handling and
// routes installed.
func NewServer(h *Handler) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = ErrorHandler

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.BodyLimit(DefaultBodyLimit))

	RegisterRoutes(e, h)

	return e
}
