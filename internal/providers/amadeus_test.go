package providers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dharmasatrya/flightfinder/internal/models"
)

type fakeAmadeus struct {
	tokenCalls  int32
	searchCalls int32
	lastQuery   map[string]string
	lastBody    multiCityBody
	status      int
	body        string
}

func (f *fakeAmadeus) handler(t *testing.T) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(amadeusTokenPath, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&f.tokenCalls, 1)
		if err := r.ParseForm(); err != nil {
			t.Errorf("parse token form: %v", err)
		}
		if r.PostForm.Get("grant_type") != "client_credentials" || r.PostForm.Get("client_id") != "id" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"tok","token_type":"Bearer","expires_in":1799}`))
	})
	mux.HandleFunc(amadeusOffersPath, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&f.searchCalls, 1)
		if r.Header.Get("Authorization") != "Bearer tok" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		f.lastQuery = map[string]string{}
		for k := range r.URL.Query() {
			f.lastQuery[k] = r.URL.Query().Get(k)
		}
		if r.Method == http.MethodPost {
			if err := json.NewDecoder(r.Body).Decode(&f.lastBody); err != nil {
				t.Errorf("decode multi-city body: %v", err)
			}
		}
		status := f.status
		if status == 0 {
			status = http.StatusOK
		}
		w.WriteHeader(status)
		w.Write([]byte(f.body))
	})
	return mux
}

func newTestProvider(t *testing.T, fake *fakeAmadeus) *AmadeusProvider {
	t.Helper()
	srv := httptest.NewServer(fake.handler(t))
	t.Cleanup(srv.Close)

	return NewAmadeusProvider(AmadeusConfig{
		BaseURL:      srv.URL,
		ClientID:     "id",
		ClientSecret: "secret",
		Currency:     "INR",
		Timeout:      2 * time.Second,
	})
}

func TestAmadeusProvider_SingleTrip(t *testing.T) {
	fake := &fakeAmadeus{body: sampleResponse}
	p := newTestProvider(t, fake)

	ret := "2025-06-08"
	zero := 0
	q := models.SearchQuery{
		From:          "DEL",
		To:            "BOM",
		DepartureDate: "2025-06-01",
		ReturnDate:    &ret,
		Passengers:    2,
		TravelClass:   "BUSINESS",
		Filters:       models.SearchFilters{MaxStops: &zero},
	}

	set, err := p.SearchOffers(context.Background(), q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(set.Offers) != 2 {
		t.Errorf("expected 2 raw offers, got %d", len(set.Offers))
	}
	if name, ok := set.Dictionaries.Lookup("carriers", "AI"); !ok || name != "AIR INDIA" {
		t.Errorf("expected carrier dictionary, got %q", name)
	}

	want := map[string]string{
		"originLocationCode":      "DEL",
		"destinationLocationCode": "BOM",
		"departureDate":           "2025-06-01",
		"returnDate":              "2025-06-08",
		"adults":                  "2",
		"travelClass":             "BUSINESS",
		"nonStop":                 "true",
		"currencyCode":            "INR",
		"max":                     "50",
	}
	for k, v := range want {
		if fake.lastQuery[k] != v {
			t.Errorf("query %s = %q, want %q", k, fake.lastQuery[k], v)
		}
	}
	if atomic.LoadInt32(&fake.searchCalls) != 1 {
		t.Errorf("expected exactly one search call, got %d", fake.searchCalls)
	}
}

func TestAmadeusProvider_MultiCity(t *testing.T) {
	fake := &fakeAmadeus{body: `{"data":[],"dictionaries":{}}`}
	p := newTestProvider(t, fake)

	q := models.SearchQuery{
		Segments: []models.Segment{
			{From: "DEL", To: "BOM", DepartureDate: "2025-06-01"},
			{From: "BOM", To: "GOI", DepartureDate: "2025-06-04"},
		},
		Passengers:  2,
		TravelClass: "FIRST",
	}

	if _, err := p.SearchOffers(context.Background(), q); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	body := fake.lastBody
	if len(body.OriginDestinations) != 2 || body.OriginDestinations[1].OriginLocationCode != "BOM" {
		t.Errorf("unexpected origin destinations %+v", body.OriginDestinations)
	}
	if len(body.Travelers) != 2 || body.Travelers[0].TravelerType != "ADULT" {
		t.Errorf("unexpected travelers %+v", body.Travelers)
	}
	if body.SearchCriteria.MaxFlightOffers != DefaultMaxOffers {
		t.Errorf("expected max offers %d, got %d", DefaultMaxOffers, body.SearchCriteria.MaxFlightOffers)
	}
	if body.SearchCriteria.FlightFilters == nil || body.SearchCriteria.FlightFilters.CabinRestrictions[0].Cabin != "FIRST" {
		t.Error("expected a cabin restriction for FIRST")
	}
}

func TestAmadeusProvider_ErrorStatus(t *testing.T) {
	fake := &fakeAmadeus{
		status: http.StatusTooManyRequests,
		body:   `{"errors":[{"code":38194,"title":"Too many requests"}]}`,
	}
	p := newTestProvider(t, fake)

	_, err := p.SearchOffers(context.Background(), models.SearchQuery{From: "DEL", To: "BOM", DepartureDate: "2025-06-01", Passengers: 1})

	var pe *ProviderError
	if !errors.As(err, &pe) {
		t.Fatalf("expected ProviderError, got %v", err)
	}
	if pe.StatusCode != http.StatusTooManyRequests {
		t.Errorf("expected status 429, got %d", pe.StatusCode)
	}
	if atomic.LoadInt32(&fake.searchCalls) != 1 {
		t.Errorf("provider errors must not be retried, got %d calls", fake.searchCalls)
	}
}

func TestAmadeusProvider_MalformedBody(t *testing.T) {
	fake := &fakeAmadeus{body: `{"data": "nope"`}
	p := newTestProvider(t, fake)

	_, err := p.SearchOffers(context.Background(), models.SearchQuery{From: "DEL", To: "BOM", DepartureDate: "2025-06-01", Passengers: 1})
	var pe *ProviderError
	if !errors.As(err, &pe) {
		t.Fatalf("expected ProviderError, got %v", err)
	}
}

func TestAmadeusProvider_AuthFailure(t *testing.T) {
	fake := &fakeAmadeus{body: sampleResponse}
	srv := httptest.NewServer(fake.handler(t))
	defer srv.Close()

	p := NewAmadeusProvider(AmadeusConfig{BaseURL: srv.URL, ClientID: "wrong", ClientSecret: "x"})
	_, err := p.SearchOffers(context.Background(), models.SearchQuery{From: "DEL", To: "BOM", DepartureDate: "2025-06-01", Passengers: 1})

	var pe *ProviderError
	if !errors.As(err, &pe) {
		t.Fatalf("expected ProviderError, got %v", err)
	}
	if atomic.LoadInt32(&fake.searchCalls) != 0 {
		t.Error("search should not be attempted without a token")
	}
}
