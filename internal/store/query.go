package store

import (
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/dharmasatrya/flightfinder/internal/clock"
	"github.com/dharmasatrya/flightfinder/internal/models"
)

// OutboundFilter is the local equivalent of a provider search. Everything
// except the time-of-day windows is pushed into the query.
func OutboundFilter(q models.SearchQuery) (bson.M, error) {
	from, to, date := q.Origin()
	filter, err := routeFilter(from, to, date, q.Passengers)
	if err != nil {
		return nil, err
	}

	f := q.Filters
	if f.Airline != nil {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(*f.Airline), Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"airline": pattern},
			bson.M{"airlineCode": pattern},
		}
	}

	price := bson.M{}
	if f.MinPrice != nil {
		price["$gte"] = *f.MinPrice
	}
	if f.MaxPrice != nil {
		price["$lte"] = *f.MaxPrice
	}
	if len(price) > 0 {
		filter["price"] = price
	}

	if f.MaxStops != nil {
		filter["stops"] = bson.M{"$lte": *f.MaxStops}
	}
	if q.TravelClass != "" {
		filter["travelClass"] = q.TravelClass
	}
	if f.Refundable != nil && *f.Refundable {
		filter["refundable"] = true
	}

	return filter, nil
}

// ReturnFilter swaps the route and only keeps the route, date and seat predicates.
func ReturnFilter(q models.SearchQuery) (bson.M, error) {
	if q.ReturnDate == nil {
		return nil, nil
	}
	return routeFilter(q.To, q.From, *q.ReturnDate, q.Passengers)
}

func routeFilter(from, to, date string, passengers int) (bson.M, error) {
	start, end, err := clock.DayRange(date)
	if err != nil {
		return nil, err
	}
	if passengers < 1 {
		passengers = 1
	}

	return bson.M{
		"from":           exactFold(from),
		"to":             exactFold(to),
		"isActive":       true,
		"seatsAvailable": bson.M{"$gte": passengers},
		"departureTime":  bson.M{"$gte": start, "$lt": end},
	}, nil
}

func exactFold(s string) primitive.Regex {
	return primitive.Regex{Pattern: "^" + regexp.QuoteMeta(s) + "$", Options: "i"}
}

var sortFields = map[string]string{
	models.SortPrice:     "price",
	models.SortDuration:  "durationMinutes",
	models.SortDeparture: "departureTime",
	models.SortArrival:   "arrivalTime",
}

// SortSpec maps a search sort key to a Mongo sort document. Unknown keys sort by price ascending.
func SortSpec(sortBy, order string) bson.D {
	field, ok := sortFields[sortBy]
	if !ok {
		return bson.D{{Key: "price", Value: 1}, {Key: "_id", Value: 1}}
	}
	direction := 1
	if order == models.OrderDesc {
		direction = -1
	}
	return bson.D{{Key: field, Value: direction}, {Key: "_id", Value: 1}}
}
