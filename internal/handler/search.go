package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/dharmasatrya/flightfinder/internal/models"
	"github.com/dharmasatrya/flightfinder/pkg/logger"
)

// Searcher runs a normalized flight search.
type Searcher interface {
	Search(ctx context.Context, q models.SearchQuery) (models.SearchResponse, error)
}

type SearchHandler struct {
	searcher Searcher
	log      logger.Logger
}

func NewSearchHandler(s Searcher, log logger.Logger) *SearchHandler {
	return &SearchHandler{
		searcher: s,
		log:      log,
	}
}

// Search handles GET /api/v1/flights/search.
func (h *SearchHandler) Search(c echo.Context) error {
	startTime := time.Now()

	q, err := models.ParseSearchQuery(c.QueryParams())
	if err != nil {
		if models.IsClientError(err) {
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Success: false,
				Message: err.Error(),
			})
		}
		return err
	}

	resp, err := h.searcher.Search(c.Request().Context(), q)
	if err != nil {
		return err
	}

	h.log.Info("Flight search",
		"mode", q.Mode().String(),
		"total", resp.Pagination.Total,
		"page", resp.Pagination.Page,
		"elapsedMs", time.Since(startTime).Milliseconds(),
	)
	return c.JSON(http.StatusOK, resp)
}

func HealthHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}
