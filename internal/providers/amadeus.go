package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/dharmasatrya/flightfinder/internal/models"
)

const (
	amadeusTokenPath  = "/v1/security/oauth2/token"
	amadeusOffersPath = "/v2/shopping/flight-offers"

	// DefaultMaxOffers is the provider-side result cap per search.
	DefaultMaxOffers = 50
)

type AmadeusConfig struct {
	BaseURL      string
	ClientID     string
	ClientSecret string
	Currency     string
	Timeout      time.Duration
	MaxOffers    int
}

// AmadeusProvider searches the Amadeus Self-Service flight offers API.
// The embedded HTTP client fetches and refreshes the access token itself.
type AmadeusProvider struct {
	baseURL   string
	client    *http.Client
	currency  string
	maxOffers int
}

func NewAmadeusProvider(cfg AmadeusConfig) *AmadeusProvider {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.MaxOffers <= 0 {
		cfg.MaxOffers = DefaultMaxOffers
	}

	cc := clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     baseURL + amadeusTokenPath,
		AuthStyle:    oauth2.AuthStyleInParams,
	}

	tokenCtx := context.WithValue(context.Background(), oauth2.HTTPClient, &http.Client{Timeout: cfg.Timeout})
	client := cc.Client(tokenCtx)
	client.Timeout = cfg.Timeout

	return &AmadeusProvider{
		baseURL:   baseURL,
		client:    client,
		currency:  cfg.Currency,
		maxOffers: cfg.MaxOffers,
	}
}

func (p *AmadeusProvider) Name() string {
	return "amadeus"
}

func (p *AmadeusProvider) SearchOffers(ctx context.Context, q models.SearchQuery) (*OfferSet, error) {
	var (
		req *http.Request
		err error
	)
	if q.Mode() == models.ModeMultiCity {
		req, err = p.multiCityRequest(ctx, q)
	} else {
		req, err = p.singleTripRequest(ctx, q)
	}
	if err != nil {
		return nil, NewProviderError(p.Name(), err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, NewProviderError(p.Name(), err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, NewProviderError(p.Name(), err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &ProviderError{
			Provider:   p.Name(),
			StatusCode: resp.StatusCode,
			Err:        decodeAmadeusError(body),
		}
	}

	var set OfferSet
	if err := json.Unmarshal(body, &set); err != nil {
		return nil, NewProviderError(p.Name(), fmt.Errorf("decode offers: %w", err))
	}
	return &set, nil
}

func (p *AmadeusProvider) singleTripRequest(ctx context.Context, q models.SearchQuery) (*http.Request, error) {
	params := url.Values{}
	params.Set("originLocationCode", q.From)
	params.Set("destinationLocationCode", q.To)
	params.Set("departureDate", q.DepartureDate)
	if q.IsRoundTrip() {
		params.Set("returnDate", *q.ReturnDate)
	}
	params.Set("adults", strconv.Itoa(q.Passengers))
	if q.TravelClass != "" {
		params.Set("travelClass", q.TravelClass)
	}
	if q.Filters.MaxStops != nil && *q.Filters.MaxStops == 0 {
		params.Set("nonStop", "true")
	}
	if p.currency != "" {
		params.Set("currencyCode", p.currency)
	}
	params.Set("max", strconv.Itoa(p.maxOffers))

	return http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+amadeusOffersPath+"?"+params.Encode(), nil)
}

type multiCityBody struct {
	CurrencyCode       string              `json:"currencyCode,omitempty"`
	OriginDestinations []originDestination `json:"originDestinations"`
	Travelers          []traveler          `json:"travelers"`
	Sources            []string            `json:"sources"`
	SearchCriteria     searchCriteria      `json:"searchCriteria"`
}

type originDestination struct {
	ID                      string        `json:"id"`
	OriginLocationCode      string        `json:"originLocationCode"`
	DestinationLocationCode string        `json:"destinationLocationCode"`
	DepartureDateTimeRange  dateTimeRange `json:"departureDateTimeRange"`
}

type dateTimeRange struct {
	Date string `json:"date"`
}

type traveler struct {
	ID           string `json:"id"`
	TravelerType string `json:"travelerType"`
}

type searchCriteria struct {
	MaxFlightOffers int            `json:"maxFlightOffers"`
	FlightFilters   *flightFilters `json:"flightFilters,omitempty"`
}

type flightFilters struct {
	CabinRestrictions []cabinRestriction `json:"cabinRestrictions"`
}

type cabinRestriction struct {
	Cabin                string   `json:"cabin"`
	Coverage             string   `json:"coverage"`
	OriginDestinationIDs []string `json:"originDestinationIds"`
}

func buildMultiCityBody(q models.SearchQuery, currency string, maxOffers int) multiCityBody {
	body := multiCityBody{
		CurrencyCode: currency,
		Sources:      []string{"GDS"},
		SearchCriteria: searchCriteria{
			MaxFlightOffers: maxOffers,
		},
	}

	ids := make([]string, len(q.Segments))
	for i, s := range q.Segments {
		ids[i] = strconv.Itoa(i + 1)
		body.OriginDestinations = append(body.OriginDestinations, originDestination{
			ID:                      ids[i],
			OriginLocationCode:      s.From,
			DestinationLocationCode: s.To,
			DepartureDateTimeRange:  dateTimeRange{Date: s.DepartureDate},
		})
	}

	for i := 0; i < q.Passengers; i++ {
		body.Travelers = append(body.Travelers, traveler{
			ID:           strconv.Itoa(i + 1),
			TravelerType: "ADULT",
		})
	}

	if q.TravelClass != "" {
		body.SearchCriteria.FlightFilters = &flightFilters{
			CabinRestrictions: []cabinRestriction{{
				Cabin:                q.TravelClass,
				Coverage:             "MOST_SEGMENTS",
				OriginDestinationIDs: ids,
			}},
		}
	}

	return body
}

func (p *AmadeusProvider) multiCityRequest(ctx context.Context, q models.SearchQuery) (*http.Request, error) {
	payload, err := json.Marshal(buildMultiCityBody(q, p.currency, p.maxOffers))
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+amadeusOffersPath, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

type amadeusErrorBody struct {
	Errors []struct {
		Code   int    `json:"code"`
		Title  string `json:"title"`
		Detail string `json:"detail"`
	} `json:"errors"`
}

func decodeAmadeusError(body []byte) error {
	var eb amadeusErrorBody
	if err := json.Unmarshal(body, &eb); err != nil || len(eb.Errors) == 0 {
		return errors.New("unexpected response from provider")
	}
	e := eb.Errors[0]
	if e.Detail != "" {
		return fmt.Errorf("%s: %s", e.Title, e.Detail)
	}
	return errors.New(e.Title)
}
