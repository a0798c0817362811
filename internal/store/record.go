package store

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/dharmasatrya/flightfinder/internal/clock"
	"github.com/dharmasatrya/flightfinder/internal/models"
	"github.com/dharmasatrya/flightfinder/pkg/currency"
)

// LocalFlightRecord is a flight kept in the local collection and served
// when the provider is unavailable. Times are stored as UTC wall-clock time.
type LocalFlightRecord struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"`
	From            string             `bson:"from"`
	To              string             `bson:"to"`
	Airline         string             `bson:"airline"`
	AirlineCode     string             `bson:"airlineCode"`
	FlightNumber    string             `bson:"flightNumber"`
	DepartureTime   time.Time          `bson:"departureTime"`
	ArrivalTime     time.Time          `bson:"arrivalTime"`
	Duration        string             `bson:"duration"`
	DurationMinutes int                `bson:"durationMinutes"`
	Stops           int                `bson:"stops"`
	Price           int64              `bson:"price"`
	Currency        string             `bson:"currency"`
	TravelClass     string             `bson:"travelClass"`
	Refundable      bool               `bson:"refundable"`
	IsActive        bool               `bson:"isActive"`
	SeatsAvailable  int                `bson:"seatsAvailable"`
	CreatedAt       time.Time          `bson:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt"`
}

func (r LocalFlightRecord) ToOffer() models.FlightOffer {
	duration := r.Duration
	if duration == "" {
		duration = clock.FormatDuration(r.DurationMinutes)
	}

	return models.FlightOffer{
		ID:              r.ID.Hex(),
		Price:           r.Price,
		Currency:        r.Currency,
		FormattedPrice:  currency.Format(r.Price, r.Currency),
		Airline:         r.Airline,
		AirlineCode:     r.AirlineCode,
		FlightNumber:    r.FlightNumber,
		DepartureTime:   clock.FormatTimestamp(r.DepartureTime.UTC()),
		ArrivalTime:     clock.FormatTimestamp(r.ArrivalTime.UTC()),
		Duration:        duration,
		DurationMinutes: r.DurationMinutes,
		Stops:           r.Stops,
		Refundable:      r.Refundable,
		From:            r.From,
		To:              r.To,
		TravelClass:     r.TravelClass,
	}
}
