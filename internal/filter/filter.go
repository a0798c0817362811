package filter

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/dharmasatrya/flightfinder/internal/clock"
	"github.com/dharmasatrya/flightfinder/internal/models"
)

// Apply filters offers and sorts the survivors. The input slice is not modified.
func Apply(offers []models.FlightOffer, filters models.SearchFilters, sortBy, order string) []models.FlightOffer {
	filtered := make([]models.FlightOffer, 0, len(offers))
	for _, o := range offers {
		if matchesFilters(o, filters) {
			filtered = append(filtered, o)
		}
	}

	return applySort(filtered, sortBy, order)
}

// ApplyTimeWindows keeps only the offers inside the departure and arrival
// windows. It is the part of Apply the local store cannot express.
func ApplyTimeWindows(offers []models.FlightOffer, filters models.SearchFilters) []models.FlightOffer {
	result := make([]models.FlightOffer, 0, len(offers))
	for _, o := range offers {
		if matchesTimeWindows(o, filters) {
			result = append(result, o)
		}
	}
	return result
}

func matchesFilters(o models.FlightOffer, f models.SearchFilters) bool {
	if f.Airline != nil {
		needle := strings.ToLower(*f.Airline)
		if !strings.Contains(strings.ToLower(o.Airline), needle) &&
			!strings.Contains(strings.ToLower(o.AirlineCode), needle) {
			return false
		}
	}

	if f.MinPrice != nil && float64(o.Price) < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && float64(o.Price) > *f.MaxPrice {
		return false
	}

	if f.MaxStops != nil && o.Stops > *f.MaxStops {
		return false
	}

	if f.Refundable != nil && *f.Refundable && !o.Refundable {
		return false
	}

	return matchesTimeWindows(o, f)
}

// Both ends of a window must be set for it to apply.
func matchesTimeWindows(o models.FlightOffer, f models.SearchFilters) bool {
	if f.DepartureTimeFrom != nil && f.DepartureTimeTo != nil {
		if !inWindow(o.DepartureTime, *f.DepartureTimeFrom, *f.DepartureTimeTo) {
			return false
		}
	}
	if f.ArrivalTimeFrom != nil && f.ArrivalTimeTo != nil {
		if !inWindow(o.ArrivalTime, *f.ArrivalTimeFrom, *f.ArrivalTimeTo) {
			return false
		}
	}
	return true
}

func inWindow(ts, from, to string) bool {
	hhmm, ok := clock.TimeOfDay(ts)
	if !ok {
		return false
	}
	return clock.InWindow(hhmm, from, to)
}

func applySort(offers []models.FlightOffer, sortBy, order string) []models.FlightOffer {
	if len(offers) < 2 {
		return offers
	}

	ascending := strings.ToLower(order) != models.OrderDesc

	switch strings.ToLower(sortBy) {
	case models.SortPrice:
		sort.SliceStable(offers, func(i, j int) bool {
			if ascending {
				return offers[i].Price < offers[j].Price
			}
			return offers[i].Price > offers[j].Price
		})

	case models.SortDuration:
		sort.SliceStable(offers, func(i, j int) bool {
			di, dj := durationOf(offers[i]), durationOf(offers[j])
			if ascending {
				return di < dj
			}
			return di > dj
		})

	case models.SortDeparture:
		sort.SliceStable(offers, func(i, j int) bool {
			ti, tj := epoch(offers[i].DepartureTime), epoch(offers[j].DepartureTime)
			if ascending {
				return ti.Before(tj)
			}
			return ti.After(tj)
		})

	case models.SortArrival:
		sort.SliceStable(offers, func(i, j int) bool {
			ti, tj := epoch(offers[i].ArrivalTime), epoch(offers[j].ArrivalTime)
			if ascending {
				return ti.Before(tj)
			}
			return ti.After(tj)
		})

	default:
		// Default to price ascending
		sort.SliceStable(offers, func(i, j int) bool {
			return offers[i].Price < offers[j].Price
		})
	}

	return offers
}

func durationOf(o models.FlightOffer) int {
	if o.DurationMinutes > 0 {
		return o.DurationMinutes
	}
	return ParseDurationMinutes(o.Duration)
}

// Unparseable timestamps sort as the zero time.
func epoch(ts string) time.Time {
	t, err := clock.ParseTimestamp(ts)
	if err != nil {
		return time.Time{}
	}
	return t
}

var (
	hoursPattern   = regexp.MustCompile(`(\d+)\s*h`)
	minutesPattern = regexp.MustCompile(`(\d+)\s*m`)
)

// ParseDurationMinutes reads a "2h 20m" style duration. A missing hour or
// minute part counts as zero, so "3h" is 180 and "45m" is 45.
func ParseDurationMinutes(s string) int {
	s = strings.ToLower(s)
	return captureInt(hoursPattern, s)*60 + captureInt(minutesPattern, s)
}

func captureInt(re *regexp.Regexp, s string) int {
	m := re.FindStringSubmatch(s)
	if m == nil {
		return 0
	}
	n, _ := strconv.Atoi(m[1])
	return n
}
