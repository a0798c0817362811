package store

import (
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dharmasatrya/flightfinder/internal/clock"
)

type fixtureFile struct {
	Flights []fixtureFlight `yaml:"flights"`
}

type fixtureFlight struct {
	From           string `yaml:"from"`
	To             string `yaml:"to"`
	Airline        string `yaml:"airline"`
	AirlineCode    string `yaml:"airlineCode"`
	FlightNumber   string `yaml:"flightNumber"`
	DepartureTime  string `yaml:"departureTime"`
	ArrivalTime    string `yaml:"arrivalTime"`
	Stops          int    `yaml:"stops"`
	Price          int64  `yaml:"price"`
	Currency       string `yaml:"currency"`
	TravelClass    string `yaml:"travelClass"`
	Refundable     bool   `yaml:"refundable"`
	Inactive       bool   `yaml:"inactive"`
	SeatsAvailable int    `yaml:"seatsAvailable"`
}

// LoadFixtures reads seed flights from YAML. Times are wall-clock
// "2006-01-02T15:04:05" strings; the duration is derived from them.
func LoadFixtures(r io.Reader) ([]LocalFlightRecord, error) {
	var file fixtureFile
	if err := yaml.NewDecoder(r).Decode(&file); err != nil {
		return nil, fmt.Errorf("decode fixtures: %w", err)
	}

	records := make([]LocalFlightRecord, 0, len(file.Flights))
	for i, f := range file.Flights {
		dep, err := clock.ParseTimestamp(f.DepartureTime)
		if err != nil {
			return nil, fmt.Errorf("flight %d: departureTime: %w", i, err)
		}
		arr, err := clock.ParseTimestamp(f.ArrivalTime)
		if err != nil {
			return nil, fmt.Errorf("flight %d: arrivalTime: %w", i, err)
		}
		if !arr.After(dep) {
			return nil, fmt.Errorf("flight %d: arrival must be after departure", i)
		}
		if f.Price < 0 || f.Stops < 0 {
			return nil, fmt.Errorf("flight %d: price and stops must not be negative", i)
		}

		minutes := int(arr.Sub(dep).Minutes())
		records = append(records, LocalFlightRecord{
			From:            strings.ToUpper(f.From),
			To:              strings.ToUpper(f.To),
			Airline:         f.Airline,
			AirlineCode:     strings.ToUpper(f.AirlineCode),
			FlightNumber:    f.FlightNumber,
			DepartureTime:   dep.UTC(),
			ArrivalTime:     arr.UTC(),
			Duration:        clock.FormatDuration(minutes),
			DurationMinutes: minutes,
			Stops:           f.Stops,
			Price:           f.Price,
			Currency:        f.Currency,
			TravelClass:     strings.ToUpper(f.TravelClass),
			Refundable:      f.Refundable,
			IsActive:        !f.Inactive,
			SeatsAvailable:  f.SeatsAvailable,
		})
	}
	return records, nil
}
