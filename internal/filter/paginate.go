package filter

import (
	"github.com/dharmasatrya/flightfinder/internal/models"
)

// PageBounds returns the [start, end) slice bounds of a 1-indexed page, clamped to total.
func PageBounds(total, page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = models.DefaultLimit
	}
	// Past the last page; also keeps (page-1)*limit from overflowing.
	if page-1 > total/limit {
		return total, total
	}
	start := (page - 1) * limit
	end := start + limit
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}
	return start, end
}

// NewPagination describes the page of a list with total entries.
func NewPagination(total, page, limit int) models.Pagination {
	pages := 0
	if limit > 0 {
		pages = (total + limit - 1) / limit
	}
	return models.Pagination{
		Page:  page,
		Limit: limit,
		Total: total,
		Pages: pages,
	}
}

// Slice cuts one page out of offers.
func Slice(offers []models.FlightOffer, page, limit int) []models.FlightOffer {
	start, end := PageBounds(len(offers), page, limit)
	return offers[start:end]
}

// SplitRoundTrip separates outbound legs from their nested return legs.
// Outbound offers come back with ReturnFlight cleared and the return legs
// keep the order of their outbound pair.
func SplitRoundTrip(offers []models.FlightOffer) ([]models.FlightOffer, []models.FlightOffer) {
	outbound := make([]models.FlightOffer, 0, len(offers))
	returns := make([]models.FlightOffer, 0, len(offers))
	for _, o := range offers {
		if o.ReturnFlight != nil {
			returns = append(returns, *o.ReturnFlight)
			o.ReturnFlight = nil
		}
		outbound = append(outbound, o)
	}
	return outbound, returns
}

// BuildPage assembles the response body for a filtered and sorted list.
// For round trips both lists are cut with the page bounds of the combined list.
func BuildPage(offers []models.FlightOffer, roundTrip bool, page, limit int) models.SearchResponse {
	if offers == nil {
		offers = []models.FlightOffer{}
	}
	resp := models.SearchResponse{
		Success:    true,
		Pagination: NewPagination(len(offers), page, limit),
	}

	if !roundTrip {
		resp.Flights = Slice(offers, page, limit)
		return resp
	}

	outbound, returns := SplitRoundTrip(offers)
	start, end := PageBounds(len(offers), page, limit)
	resp.Flights = outbound[start:end]
	resp.ReturnFlights = sliceBounds(returns, start, end)
	return resp
}

func sliceBounds(offers []models.FlightOffer, start, end int) []models.FlightOffer {
	if start > len(offers) {
		start = len(offers)
	}
	if end > len(offers) {
		end = len(offers)
	}
	return offers[start:end]
}
