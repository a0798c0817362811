package search

import (
	"context"
	"time"

	"github.com/dharmasatrya/flightfinder/internal/cache"
	"github.com/dharmasatrya/flightfinder/internal/filter"
	"github.com/dharmasatrya/flightfinder/internal/metrics"
	"github.com/dharmasatrya/flightfinder/internal/models"
	"github.com/dharmasatrya/flightfinder/internal/providers"
	"github.com/dharmasatrya/flightfinder/internal/ratelimit"
	"github.com/dharmasatrya/flightfinder/internal/store"
	"github.com/dharmasatrya/flightfinder/pkg/logger"
)

const defaultLimiterWait = 2 * time.Second

type Config struct {
	RateLimiter *ratelimit.ProviderLimiter
	// LimiterWait bounds how long a search queues for a provider slot
	// before it is served from the local store instead.
	LimiterWait time.Duration
}

// Service runs a flight search against the provider and falls back to the
// local flight store when the provider call fails.
type Service struct {
	provider providers.Provider
	store    store.FlightStore
	cache    cache.Cache
	config   Config
	metrics  *metrics.Metrics
	log      logger.Logger
}

func NewService(p providers.Provider, s store.FlightStore, c cache.Cache, cfg Config, m *metrics.Metrics, log logger.Logger) *Service {
	if c == nil {
		c = cache.NewNoOpCache()
	}
	if cfg.LimiterWait <= 0 {
		cfg.LimiterWait = defaultLimiterWait
	}
	return &Service{
		provider: p,
		store:    s,
		cache:    c,
		config:   cfg,
		metrics:  m,
		log:      log,
	}
}

// Search answers a normalized query. Provider failures never surface; only
// a failing fallback does, as a *FallbackError.
func (s *Service) Search(ctx context.Context, q models.SearchQuery) (models.SearchResponse, error) {
	// A client hanging up does not abort an in-flight search.
	ctx = context.WithoutCancel(ctx)

	offers, source, err := s.searchProvider(ctx, q)
	if err != nil {
		s.metrics.ProviderErrors.WithLabelValues(s.provider.Name()).Inc()
		s.log.Warn("Provider search failed, using local flights",
			"provider", s.provider.Name(),
			"mode", q.Mode().String(),
			"error", err,
		)
		return s.searchLocal(ctx, q)
	}

	filtered := filter.Apply(offers, q.Filters, q.Sort, q.Order)
	resp := filter.BuildPage(filtered, q.IsRoundTrip(), q.Page, q.Limit)

	s.metrics.Searches.WithLabelValues(q.Mode().String(), source).Inc()
	s.log.Debug("Search completed",
		"source", source,
		"offers", len(offers),
		"matched", len(filtered),
	)
	return resp, nil
}

func (s *Service) searchProvider(ctx context.Context, q models.SearchQuery) ([]models.FlightOffer, string, error) {
	if cached, found := s.cache.Get(ctx, q); found {
		return cached, metrics.SourceCache, nil
	}

	if s.config.RateLimiter != nil {
		waitCtx, cancel := context.WithTimeout(ctx, s.config.LimiterWait)
		err := s.config.RateLimiter.Wait(waitCtx, s.provider.Name())
		cancel()
		if err != nil {
			return nil, "", providers.NewProviderError(s.provider.Name(), err)
		}
	}

	start := time.Now()
	set, err := s.provider.SearchOffers(ctx, q)
	s.metrics.ProviderLatency.Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, "", err
	}

	offers := providers.TransformOffers(set, q.IsRoundTrip())
	if err := s.cache.Set(ctx, q, offers); err != nil {
		s.log.Warn("Failed to cache provider offers", "error", err)
	}
	return offers, metrics.SourceProvider, nil
}
