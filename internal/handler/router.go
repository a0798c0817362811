package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/dharmasatrya/flightfinder/pkg/logger"
)

// NewRouter wires middleware and routes. metrics may be nil.
func NewRouter(search *SearchHandler, metrics http.Handler, log logger.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = ErrorHandler(log)

	e.Use(middleware.RequestID())
	e.Use(RequestLogger(log))
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	api := e.Group("/api/v1")
	api.GET("/flights/search", search.Search)

	e.GET("/health", HealthHandler)
	if metrics != nil {
		e.GET("/metrics", echo.WrapHandler(metrics))
	}

	return e
}
