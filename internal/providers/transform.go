package providers

import (
	"math"
	"regexp"
	"strconv"

	"github.com/dharmasatrya/flightfinder/internal/clock"
	"github.com/dharmasatrya/flightfinder/internal/models"
	"github.com/dharmasatrya/flightfinder/pkg/currency"
)

// TransformOffers maps raw offers to FlightOffers, keeping provider order.
// With roundTrip set, the second itinerary of an offer becomes its
// ReturnFlight; otherwise extra itineraries are listed as Legs.
func TransformOffers(set *OfferSet, roundTrip bool) []models.FlightOffer {
	if set == nil {
		return []models.FlightOffer{}
	}

	result := make([]models.FlightOffer, 0, len(set.Offers))
	for _, o := range set.Offers {
		if len(o.Itineraries) == 0 || len(o.Itineraries[0].Segments) == 0 {
			continue
		}

		flight := buildFlight(o, 0, set.Dictionaries)

		switch {
		case roundTrip && len(o.Itineraries) > 1 && len(o.Itineraries[1].Segments) > 0:
			ret := buildFlight(o, 1, set.Dictionaries)
			flight.ReturnFlight = &ret
		case len(o.Itineraries) > 1:
			for i := range o.Itineraries {
				if len(o.Itineraries[i].Segments) == 0 {
					continue
				}
				flight.Legs = append(flight.Legs, buildFlight(o, i, set.Dictionaries))
			}
		}

		result = append(result, flight)
	}
	return result
}

// buildFlight summarizes one itinerary. The price is the fare of the whole offer.
func buildFlight(o Offer, itinerary int, dicts Dictionaries) models.FlightOffer {
	it := o.Itineraries[itinerary]
	first := it.Segments[0]
	last := it.Segments[len(it.Segments)-1]

	airlineCode := first.CarrierCode
	if itinerary == 0 && len(o.ValidatingAirlineCodes) > 0 {
		airlineCode = o.ValidatingAirlineCodes[0]
	}
	airline, ok := dicts.Lookup("carriers", airlineCode)
	if !ok {
		airline = airlineCode
	}

	aircraft, ok := dicts.Lookup("aircraft", first.Aircraft.Code)
	if !ok {
		aircraft = first.Aircraft.Code
	}

	stops := len(it.Segments) - 1
	for _, s := range it.Segments {
		stops += s.NumberOfStops
	}

	minutes, ok := ParseISODuration(it.Duration)
	if !ok {
		minutes = elapsedMinutes(first.Departure.At, last.Arrival.At)
	}

	price := offerPrice(o.Price)

	return models.FlightOffer{
		ID:              o.ID,
		Price:           price,
		Currency:        o.Price.Currency,
		FormattedPrice:  currency.Format(price, o.Price.Currency),
		Airline:         airline,
		AirlineCode:     airlineCode,
		FlightNumber:    first.CarrierCode + first.Number,
		DepartureTime:   first.Departure.At,
		ArrivalTime:     last.Arrival.At,
		Duration:        clock.FormatDuration(minutes),
		DurationMinutes: minutes,
		Stops:           stops,
		Refundable:      o.PricingOptions.RefundableFare,
		From:            first.Departure.IataCode,
		To:              last.Arrival.IataCode,
		TravelClass:     cabinOf(o),
		Aircraft:        aircraft,
	}
}

func offerPrice(p OfferPrice) int64 {
	raw := p.GrandTotal
	if raw == "" {
		raw = p.Total
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < 0 {
		return 0
	}
	return int64(math.Round(v))
}

func cabinOf(o Offer) string {
	if len(o.TravelerPricings) == 0 || len(o.TravelerPricings[0].FareDetailsBySegment) == 0 {
		return ""
	}
	return o.TravelerPricings[0].FareDetailsBySegment[0].Cabin
}

func elapsedMinutes(from, to string) int {
	dep, err := clock.ParseTimestamp(from)
	if err != nil {
		return 0
	}
	arr, err := clock.ParseTimestamp(to)
	if err != nil || arr.Before(dep) {
		return 0
	}
	return int(arr.Sub(dep).Minutes())
}

var isoDurationPattern = regexp.MustCompile(`^P(?:(\d+)D)?(?:T(?:(\d+)H)?(?:(\d+)M)?)?$`)

// ParseISODuration converts "PT2H20M" or "P1DT3H" to minutes.
func ParseISODuration(s string) (int, bool) {
	m := isoDurationPattern.FindStringSubmatch(s)
	if m == nil || s == "P" || s == "PT" {
		return 0, false
	}
	days, _ := strconv.Atoi(m[1])
	hours, _ := strconv.Atoi(m[2])
	minutes, _ := strconv.Atoi(m[3])
	return days*24*60 + hours*60 + minutes, true
}
