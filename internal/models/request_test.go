package models

import (
	"errors"
	"net/url"
	"testing"
)

func TestParseSearchQuery_SingleTrip(t *testing.T) {
	params := url.Values{
		"from":          {"del"},
		"to":            {" BOM "},
		"departureDate": {"2025-06-01"},
		"passengers":    {"2"},
		"travelClass":   {"Premium_Economy"},
		"sort":          {"duration"},
		"order":         {"DESC"},
		"page":          {"3"},
		"limit":         {"5"},
	}

	q, err := ParseSearchQuery(params)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Mode() != ModeSingleTrip {
		t.Errorf("expected single trip, got %s", q.Mode())
	}
	if q.From != "DEL" || q.To != "BOM" {
		t.Errorf("expected DEL->BOM, got %s->%s", q.From, q.To)
	}
	if q.Passengers != 2 {
		t.Errorf("expected 2 passengers, got %d", q.Passengers)
	}
	if q.TravelClass != "PREMIUM_ECONOMY" {
		t.Errorf("expected PREMIUM_ECONOMY, got %q", q.TravelClass)
	}
	if q.Sort != SortDuration || q.Order != OrderDesc {
		t.Errorf("expected duration desc, got %s %s", q.Sort, q.Order)
	}
	if q.Page != 3 || q.Limit != 5 {
		t.Errorf("expected page 3 limit 5, got %d %d", q.Page, q.Limit)
	}
	if q.IsRoundTrip() {
		t.Error("expected one-way trip")
	}
}

func TestParseSearchQuery_MissingDepartureDate(t *testing.T) {
	_, err := ParseSearchQuery(url.Values{"from": {"DEL"}, "to": {"BOM"}})
	if !errors.Is(err, ErrMissingDepartureDate) {
		t.Fatalf("expected ErrMissingDepartureDate, got %v", err)
	}
	if !IsClientError(err) {
		t.Error("expected a client error")
	}
}

func TestParseSearchQuery_MissingRoute(t *testing.T) {
	if _, err := ParseSearchQuery(url.Values{"to": {"BOM"}, "departureDate": {"2025-06-01"}}); !errors.Is(err, ErrMissingOrigin) {
		t.Errorf("expected ErrMissingOrigin, got %v", err)
	}
	if _, err := ParseSearchQuery(url.Values{"from": {"DEL"}, "departureDate": {"2025-06-01"}}); !errors.Is(err, ErrMissingDestination) {
		t.Errorf("expected ErrMissingDestination, got %v", err)
	}
}

func TestParseSearchQuery_Defaults(t *testing.T) {
	q, err := ParseSearchQuery(url.Values{
		"from":          {"DEL"},
		"to":            {"BOM"},
		"departureDate": {"2025-06-01"},
		"passengers":    {"many"},
		"travelClass":   {"cattle"},
		"sort":          {"stars"},
		"order":         {"desc"},
		"limit":         {"1000"},
		"page":          {"-2"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Passengers != 1 {
		t.Errorf("expected passengers to default to 1, got %d", q.Passengers)
	}
	if q.TravelClass != "" {
		t.Errorf("expected unknown class to be dropped, got %q", q.TravelClass)
	}
	if q.Sort != SortPrice || q.Order != OrderAsc {
		t.Errorf("expected price asc fallback, got %s %s", q.Sort, q.Order)
	}
	if q.Limit != MaxLimit {
		t.Errorf("expected limit capped at %d, got %d", MaxLimit, q.Limit)
	}
	if q.Page != DefaultPage {
		t.Errorf("expected default page, got %d", q.Page)
	}
}

func TestParseSearchQuery_Filters(t *testing.T) {
	q, err := ParseSearchQuery(url.Values{
		"from":              {"DEL"},
		"to":                {"BOM"},
		"departureDate":     {"2025-06-01"},
		"airline":           {"indigo"},
		"minPrice":          {"3000"},
		"maxPrice":          {"abc"},
		"maxStops":          {"0"},
		"refundable":        {"false"},
		"departureTimeFrom": {"22:00"},
		"departureTimeTo":   {"4:00"},
		"arrivalTimeFrom":   {"late"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	f := q.Filters
	if f.Airline == nil || *f.Airline != "indigo" {
		t.Error("expected airline filter")
	}
	if f.MinPrice == nil || *f.MinPrice != 3000 {
		t.Error("expected minPrice 3000")
	}
	if f.MaxPrice != nil {
		t.Error("expected non-numeric maxPrice to be ignored")
	}
	if f.MaxStops == nil || *f.MaxStops != 0 {
		t.Error("expected maxStops 0")
	}
	if f.Refundable != nil {
		t.Error("expected refundable=false to leave the filter off")
	}
	if f.DepartureTimeTo == nil || *f.DepartureTimeTo != "04:00" {
		t.Errorf("expected zero-padded 04:00, got %v", f.DepartureTimeTo)
	}
	if f.ArrivalTimeFrom != nil {
		t.Error("expected malformed time to be ignored")
	}
}

func TestParseSearchQuery_RoundTrip(t *testing.T) {
	q, err := ParseSearchQuery(url.Values{
		"from":          {"DEL"},
		"to":            {"BOM"},
		"departureDate": {"2025-06-01"},
		"returnDate":    {"2025-06-08"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !q.IsRoundTrip() {
		t.Error("expected round trip")
	}

	_, err = ParseSearchQuery(url.Values{
		"from":          {"DEL"},
		"to":            {"BOM"},
		"departureDate": {"2025-06-08"},
		"returnDate":    {"2025-06-01"},
	})
	if !errors.Is(err, ErrReturnBeforeDeparture) {
		t.Errorf("expected ErrReturnBeforeDeparture, got %v", err)
	}
}

func TestParseSearchQuery_MultiCity(t *testing.T) {
	q, err := ParseSearchQuery(url.Values{
		"segments":    {`[{"from":"del","to":"bom","departureDate":"2025-06-01"},{"from":"BOM","to":"GOI","departureDate":"2025-06-04"}]`},
		"travelClass": {"business"},
		"adults":      {"3"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Mode() != ModeMultiCity {
		t.Fatalf("expected multi city, got %s", q.Mode())
	}
	if len(q.Segments) != 2 || q.Segments[0].From != "DEL" {
		t.Errorf("unexpected segments: %+v", q.Segments)
	}
	if q.Passengers != 3 {
		t.Errorf("expected adults alias to set passengers, got %d", q.Passengers)
	}
	if q.IsRoundTrip() {
		t.Error("multi city queries are never round trips")
	}
}

func TestParseSearchQuery_SegmentErrors(t *testing.T) {
	_, err := ParseSearchQuery(url.Values{"segments": {`[{"from":`}})
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected ParseError, got %v", err)
	}
	if !IsClientError(err) {
		t.Error("parse errors are client errors")
	}

	if _, err := ParseSearchQuery(url.Values{"segments": {`[]`}}); !errors.Is(err, ErrEmptySegments) {
		t.Errorf("expected ErrEmptySegments, got %v", err)
	}
	if _, err := ParseSearchQuery(url.Values{"segments": {`[{"from":"DEL"}]`}}); !errors.Is(err, ErrIncompleteSegment) {
		t.Errorf("expected ErrIncompleteSegment, got %v", err)
	}

	_, err = ParseSearchQuery(url.Values{
		"segments": {`[{"from":"DEL","to":"BOM","departureDate":"2025-06-01"}]`},
		"from":     {"DEL"},
	})
	if !errors.Is(err, ErrSegmentsWithRoute) {
		t.Errorf("expected ErrSegmentsWithRoute, got %v", err)
	}
}
