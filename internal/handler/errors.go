package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/dharmasatrya/flightfinder/internal/models"
	"github.com/dharmasatrya/flightfinder/pkg/logger"
)

// ErrorHandler renders every unhandled error as {success:false,message}.
// Errors other than echo's own HTTP errors become a generic 500.
func ErrorHandler(log logger.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		message := "Server error"

		var he *echo.HTTPError
		if errors.As(err, &he) {
			code = he.Code
			if m, ok := he.Message.(string); ok {
				message = m
			} else {
				message = http.StatusText(code)
			}
		} else {
			log.Error("Request failed",
				"method", c.Request().Method,
				"path", c.Path(),
				"requestId", c.Response().Header().Get(echo.HeaderXRequestID),
				"error", err,
			)
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(code)
		} else {
			writeErr = c.JSON(code, models.ErrorResponse{Success: false, Message: message})
		}
		if writeErr != nil {
			log.Error("Failed to write error response", "error", writeErr)
		}
	}
}

// RequestLogger logs one structured line per request.
func RequestLogger(log logger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			log.Info("HTTP request",
				"method", c.Request().Method,
				"uri", c.Request().RequestURI,
				"status", c.Response().Status,
				"latencyMs", time.Since(start).Milliseconds(),
				"requestId", c.Response().Header().Get(echo.HeaderXRequestID),
				"remoteIp", c.RealIP(),
			)
			return nil
		}
	}
}
