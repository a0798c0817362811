package models

import (
	"encoding/json"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	DateLayout      = "2006-01-02"
	TimeOfDayLayout = "15:04"

	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

type TripMode int

const (
	ModeSingleTrip TripMode = iota
	ModeMultiCity
)

func (m TripMode) String() string {
	if m == ModeMultiCity {
		return "multi_city"
	}
	return "single_trip"
}

const (
	SortPrice     = "price"
	SortDuration  = "duration"
	SortDeparture = "departure"
	SortArrival   = "arrival"

	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// travelClasses maps the client vocabulary to the provider vocabulary.
var travelClasses = map[string]string{
	"economy":         "ECONOMY",
	"premium_economy": "PREMIUM_ECONOMY",
	"business":        "BUSINESS",
	"first":           "FIRST",
}

// Segment is one leg of a multi-city search.
type Segment struct {
	From          string `json:"from"`
	To            string `json:"to"`
	DepartureDate string `json:"departureDate"`
}

// SearchFilters are optional; a nil field means the filter is off.
type SearchFilters struct {
	Airline           *string
	MinPrice          *float64
	MaxPrice          *float64
	MaxStops          *int
	Refundable        *bool
	DepartureTimeFrom *string
	DepartureTimeTo   *string
	ArrivalTimeFrom   *string
	ArrivalTimeTo     *string
}

type SearchQuery struct {
	From          string
	To            string
	DepartureDate string
	ReturnDate    *string
	Segments      []Segment
	Passengers    int
	TravelClass   string
	Filters       SearchFilters
	Sort          string
	Order         string
	Page          int
	Limit         int
}

func (q SearchQuery) Mode() TripMode {
	if len(q.Segments) > 0 {
		return ModeMultiCity
	}
	return ModeSingleTrip
}

func (q SearchQuery) IsRoundTrip() bool {
	return q.Mode() == ModeSingleTrip && q.ReturnDate != nil && *q.ReturnDate != ""
}

// Origin returns the first departure airport of the query in either mode.
func (q SearchQuery) Origin() (from, to, date string) {
	if len(q.Segments) > 0 {
		s := q.Segments[0]
		return s.From, s.To, s.DepartureDate
	}
	return q.From, q.To, q.DepartureDate
}

// ParseSearchQuery normalizes raw query parameters into a SearchQuery.
func ParseSearchQuery(params url.Values) (SearchQuery, error) {
	q := SearchQuery{
		Passengers: parsePassengers(params),
		Page:       parsePositive(params.Get("page"), DefaultPage),
		Limit:      parsePositive(params.Get("limit"), DefaultLimit),
	}
	if q.Limit > MaxLimit {
		q.Limit = MaxLimit
	}

	if raw := strings.TrimSpace(params.Get("segments")); raw != "" {
		segments, err := parseSegments(raw)
		if err != nil {
			return SearchQuery{}, err
		}
		if params.Get("from") != "" || params.Get("to") != "" {
			return SearchQuery{}, ErrSegmentsWithRoute
		}
		q.Segments = segments
	} else {
		q.From = normalizeCode(params.Get("from"))
		q.To = normalizeCode(params.Get("to"))
		q.DepartureDate = strings.TrimSpace(params.Get("departureDate"))

		if q.From == "" {
			return SearchQuery{}, ErrMissingOrigin
		}
		if q.To == "" {
			return SearchQuery{}, ErrMissingDestination
		}
		if q.DepartureDate == "" {
			return SearchQuery{}, ErrMissingDepartureDate
		}
		departure, err := time.Parse(DateLayout, q.DepartureDate)
		if err != nil {
			return SearchQuery{}, ErrInvalidDate
		}

		if rd := strings.TrimSpace(params.Get("returnDate")); rd != "" {
			ret, err := time.Parse(DateLayout, rd)
			if err != nil {
				return SearchQuery{}, ErrInvalidDate
			}
			if ret.Before(departure) {
				return SearchQuery{}, ErrReturnBeforeDeparture
			}
			q.ReturnDate = &rd
		}
	}

	q.TravelClass = travelClasses[strings.ToLower(strings.TrimSpace(params.Get("travelClass")))]
	q.Filters = parseFilters(params)
	q.Sort, q.Order = parseSort(params.Get("sort"), params.Get("order"))

	return q, nil
}

func parseSegments(raw string) ([]Segment, error) {
	var segments []Segment
	if err := json.Unmarshal([]byte(raw), &segments); err != nil {
		return nil, &ParseError{Field: "segments", Err: err}
	}
	if len(segments) == 0 {
		return nil, ErrEmptySegments
	}
	for i := range segments {
		s := &segments[i]
		s.From = normalizeCode(s.From)
		s.To = normalizeCode(s.To)
		s.DepartureDate = strings.TrimSpace(s.DepartureDate)
		if s.From == "" || s.To == "" || s.DepartureDate == "" {
			return nil, ErrIncompleteSegment
		}
		if _, err := time.Parse(DateLayout, s.DepartureDate); err != nil {
			return nil, ErrInvalidDate
		}
	}
	return segments, nil
}

func parsePassengers(params url.Values) int {
	raw := params.Get("passengers")
	if raw == "" {
		raw = params.Get("adults")
	}
	return parsePositive(raw, 1)
}

func parsePositive(raw string, defaultValue int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return defaultValue
	}
	return n
}

func parseFilters(params url.Values) SearchFilters {
	var f SearchFilters

	if airline := strings.TrimSpace(params.Get("airline")); airline != "" {
		f.Airline = &airline
	}
	f.MinPrice = parseFloat(params.Get("minPrice"))
	f.MaxPrice = parseFloat(params.Get("maxPrice"))

	if n, err := strconv.Atoi(strings.TrimSpace(params.Get("maxStops"))); err == nil && n >= 0 {
		f.MaxStops = &n
	}

	switch strings.ToLower(strings.TrimSpace(params.Get("refundable"))) {
	case "true", "1":
		refundable := true
		f.Refundable = &refundable
	}

	f.DepartureTimeFrom = parseTimeOfDay(params.Get("departureTimeFrom"))
	f.DepartureTimeTo = parseTimeOfDay(params.Get("departureTimeTo"))
	f.ArrivalTimeFrom = parseTimeOfDay(params.Get("arrivalTimeFrom"))
	f.ArrivalTimeTo = parseTimeOfDay(params.Get("arrivalTimeTo"))

	return f
}

func parseFloat(raw string) *float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return nil
	}
	return &v
}

// parseTimeOfDay returns the value as zero-padded HH:MM, or nil when it is not a clock time.
func parseTimeOfDay(raw string) *string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	t, err := time.Parse(TimeOfDayLayout, raw)
	if err != nil {
		return nil
	}
	s := t.Format(TimeOfDayLayout)
	return &s
}

// Unknown sort keys fall back to price ascending.
func parseSort(sortBy, order string) (string, string) {
	sortBy = strings.ToLower(strings.TrimSpace(sortBy))
	switch sortBy {
	case SortPrice, SortDuration, SortDeparture, SortArrival:
	default:
		return SortPrice, OrderAsc
	}
	if strings.ToLower(strings.TrimSpace(order)) == OrderDesc {
		return sortBy, OrderDesc
	}
	return sortBy, OrderAsc
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
