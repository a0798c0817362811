package providers

import (
	"context"
	"strconv"

	"github.com/dharmasatrya/flightfinder/internal/models"
)

// Provider is an external flight-offer search API. Implementations make
// exactly one outbound search call per invocation and never retry.
type Provider interface {
	Name() string
	SearchOffers(ctx context.Context, q models.SearchQuery) (*OfferSet, error)
}

type ProviderError struct {
	Provider   string
	StatusCode int
	Err        error
}

func (e *ProviderError) Error() string {
	if e.StatusCode != 0 {
		return e.Provider + ": status " + strconv.Itoa(e.StatusCode) + ": " + e.Err.Error()
	}
	return e.Provider + ": " + e.Err.Error()
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

func NewProviderError(provider string, err error) *ProviderError {
	return &ProviderError{
		Provider: provider,
		Err:      err,
	}
}
