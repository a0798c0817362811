package providers

import "encoding/json"

// OfferSet is the raw result of one provider search.
type OfferSet struct {
	Offers       []Offer      `json:"data"`
	Dictionaries Dictionaries `json:"dictionaries"`
}

// Dictionaries are the provider lookup tables (carriers, aircraft, ...).
// Their schema belongs to the provider, so entries are kept undecoded.
type Dictionaries map[string]map[string]json.RawMessage

// Lookup returns the string stored under code in the named dictionary.
func (d Dictionaries) Lookup(dictionary, code string) (string, bool) {
	raw, ok := d[dictionary][code]
	if !ok {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

type Offer struct {
	ID                     string            `json:"id"`
	OneWay                 bool              `json:"oneWay"`
	Itineraries            []Itinerary       `json:"itineraries"`
	Price                  OfferPrice        `json:"price"`
	PricingOptions         PricingOptions    `json:"pricingOptions"`
	ValidatingAirlineCodes []string          `json:"validatingAirlineCodes"`
	TravelerPricings       []TravelerPricing `json:"travelerPricings"`
}

type Itinerary struct {
	Duration string    `json:"duration"`
	Segments []Segment `json:"segments"`
}

type Segment struct {
	Departure     Endpoint `json:"departure"`
	Arrival       Endpoint `json:"arrival"`
	CarrierCode   string   `json:"carrierCode"`
	Number        string   `json:"number"`
	Aircraft      Aircraft `json:"aircraft"`
	Duration      string   `json:"duration"`
	NumberOfStops int      `json:"numberOfStops"`
}

type Endpoint struct {
	IataCode string `json:"iataCode"`
	Terminal string `json:"terminal,omitempty"`
	At       string `json:"at"`
}

type Aircraft struct {
	Code string `json:"code"`
}

type OfferPrice struct {
	Currency   string `json:"currency"`
	Total      string `json:"total"`
	GrandTotal string `json:"grandTotal"`
}

type PricingOptions struct {
	RefundableFare          bool `json:"refundableFare"`
	IncludedCheckedBagsOnly bool `json:"includedCheckedBagsOnly"`
}

type TravelerPricing struct {
	TravelerID           string              `json:"travelerId"`
	FareDetailsBySegment []FareDetailSegment `json:"fareDetailsBySegment"`
}

type FareDetailSegment struct {
	SegmentID string `json:"segmentId"`
	Cabin     string `json:"cabin"`
}
