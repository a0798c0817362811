package models

// FlightOffer is the uniform flight shape returned to clients, whether it
// came from the provider or from the local flight store.
type FlightOffer struct {
	ID              string        `json:"id"`
	Price           int64         `json:"price"`
	Currency        string        `json:"currency,omitempty"`
	FormattedPrice  string        `json:"formattedPrice,omitempty"`
	Airline         string        `json:"airline"`
	AirlineCode     string        `json:"airlineCode"`
	FlightNumber    string        `json:"flightNumber,omitempty"`
	DepartureTime   string        `json:"departureTime"`
	ArrivalTime     string        `json:"arrivalTime"`
	Duration        string        `json:"duration"`
	DurationMinutes int           `json:"durationMinutes,omitempty"`
	Stops           int           `json:"stops"`
	Refundable      bool          `json:"refundable"`
	From            string        `json:"from"`
	To              string        `json:"to"`
	TravelClass     string        `json:"travelClass,omitempty"`
	Aircraft        string        `json:"aircraft,omitempty"`
	Legs            []FlightOffer `json:"legs,omitempty"`
	ReturnFlight    *FlightOffer  `json:"returnFlight,omitempty"`
}

// IsRoundTrip reports whether the offer carries a paired return leg.
func (f FlightOffer) IsRoundTrip() bool {
	return f.ReturnFlight != nil
}
