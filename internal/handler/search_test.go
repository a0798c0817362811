package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dharmasatrya/flightfinder/internal/models"
	"github.com/dharmasatrya/flightfinder/internal/search"
	"github.com/dharmasatrya/flightfinder/pkg/logger"
)

type fakeSearcher struct {
	resp  models.SearchResponse
	err   error
	calls int
	last  models.SearchQuery
}

func (s *fakeSearcher) Search(ctx context.Context, q models.SearchQuery) (models.SearchResponse, error) {
	s.calls++
	s.last = q
	return s.resp, s.err
}

func newTestServer(s Searcher) http.Handler {
	log := logger.NewNopLogger()
	return NewRouter(NewSearchHandler(s, log), promhttp.HandlerFor(prometheus.NewRegistry(), promhttp.HandlerOpts{}), log)
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestSearch_Success(t *testing.T) {
	s := &fakeSearcher{resp: models.SearchResponse{
		Success:    true,
		Flights:    []models.FlightOffer{{ID: "a", Price: 2500}},
		Pagination: models.Pagination{Page: 1, Limit: 10, Total: 1, Pages: 1},
	}}
	rec := get(t, newTestServer(s), "/api/v1/flights/search?from=DEL&to=BOM&departureDate=2025-06-01&passengers=2")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if s.last.Passengers != 2 || s.last.From != "DEL" {
		t.Errorf("query not normalized before search: %+v", s.last)
	}

	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["success"] != true {
		t.Error("expected success true")
	}
	if _, ok := body["returnFlights"]; ok {
		t.Error("one-way responses should not carry returnFlights")
	}
	pagination := body["pagination"].(map[string]interface{})
	if pagination["total"] != float64(1) || pagination["pages"] != float64(1) {
		t.Errorf("unexpected pagination %v", pagination)
	}
}

func TestSearch_ValidationErrorNeverSearches(t *testing.T) {
	s := &fakeSearcher{}
	rec := get(t, newTestServer(s), "/api/v1/flights/search?from=DEL&to=BOM")

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if s.calls != 0 {
		t.Error("search must not run for an invalid request")
	}

	var body models.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Success || body.Message != string(models.ErrMissingDepartureDate) {
		t.Errorf("unexpected error body %+v", body)
	}
}

func TestSearch_MalformedSegments(t *testing.T) {
	s := &fakeSearcher{}
	rec := get(t, newTestServer(s), `/api/v1/flights/search?segments=%5B%7B%22from`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "invalid segments") {
		t.Errorf("unexpected body %s", rec.Body.String())
	}
}

func TestSearch_FallbackFailureIsGenericServerError(t *testing.T) {
	s := &fakeSearcher{err: &search.FallbackError{Err: errors.New("mongo: no reachable servers")}}
	rec := get(t, newTestServer(s), "/api/v1/flights/search?from=DEL&to=BOM&departureDate=2025-06-01")

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	var body models.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Success || body.Message != "Server error" {
		t.Errorf("internal details must not leak, got %+v", body)
	}
}

func TestNotFoundUsesErrorShape(t *testing.T) {
	rec := get(t, newTestServer(&fakeSearcher{}), "/api/v1/nowhere")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"success":false`) {
		t.Errorf("unexpected body %s", rec.Body.String())
	}
}

func TestHealthAndMetrics(t *testing.T) {
	h := newTestServer(&fakeSearcher{})

	if rec := get(t, h, "/health"); rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "ok") {
		t.Errorf("unexpected health response %d %s", rec.Code, rec.Body.String())
	}
	if rec := get(t, h, "/metrics"); rec.Code != http.StatusOK {
		t.Errorf("expected metrics endpoint, got %d", rec.Code)
	}
}
