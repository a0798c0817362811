package search

import (
	"context"

	"github.com/dharmasatrya/flightfinder/internal/filter"
	"github.com/dharmasatrya/flightfinder/internal/metrics"
	"github.com/dharmasatrya/flightfinder/internal/models"
	"github.com/dharmasatrya/flightfinder/internal/store"
)

// FallbackError means the local flight store could not answer either.
type FallbackError struct {
	Err error
}

func (e *FallbackError) Error() string {
	return "local flight search failed: " + e.Err.Error()
}

func (e *FallbackError) Unwrap() error {
	return e.Err
}

// searchLocal serves the query from the local store. Route, date, seat
// and price predicates and the sort run in the store; time-of-day windows
// are applied here.
func (s *Service) searchLocal(ctx context.Context, q models.SearchQuery) (models.SearchResponse, error) {
	s.metrics.Fallbacks.Inc()

	records, err := s.store.FindOutbound(ctx, q)
	if err != nil {
		s.metrics.FallbackErrors.Inc()
		return models.SearchResponse{}, &FallbackError{Err: err}
	}

	outbound := filter.ApplyTimeWindows(toOffers(records), q.Filters)
	resp := models.SearchResponse{
		Success:    true,
		Flights:    filter.Slice(outbound, q.Page, q.Limit),
		Pagination: filter.NewPagination(len(outbound), q.Page, q.Limit),
	}

	if q.IsRoundTrip() {
		returnRecords, err := s.store.FindReturn(ctx, q)
		if err != nil {
			s.metrics.FallbackErrors.Inc()
			return models.SearchResponse{}, &FallbackError{Err: err}
		}
		resp.ReturnFlights = filter.Slice(toOffers(returnRecords), q.Page, q.Limit)
	}

	s.metrics.Searches.WithLabelValues(q.Mode().String(), metrics.SourceLocal).Inc()
	s.log.Info("Search served from local flights",
		"matched", len(outbound),
		"roundTrip", q.IsRoundTrip(),
	)
	return resp, nil
}

func toOffers(records []store.LocalFlightRecord) []models.FlightOffer {
	offers := make([]models.FlightOffer, len(records))
	for i, r := range records {
		offers[i] = r.ToOffer()
	}
	return offers
}
