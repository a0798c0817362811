package app

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/dharmasatrya/flightfinder/internal/cache"
	"github.com/dharmasatrya/flightfinder/internal/config"
	"github.com/dharmasatrya/flightfinder/internal/metrics"
	"github.com/dharmasatrya/flightfinder/internal/providers"
	"github.com/dharmasatrya/flightfinder/internal/ratelimit"
	"github.com/dharmasatrya/flightfinder/internal/search"
	"github.com/dharmasatrya/flightfinder/internal/store"
	"github.com/dharmasatrya/flightfinder/pkg/logger"
)

const metricsNamespace = "flightfinder"

// App holds the long-lived dependencies shared by the server and the CLI.
type App struct {
	Config  *config.Config
	Store   *store.MongoFlightStore
	Cache   cache.Cache
	Metrics *metrics.Metrics
	Service *search.Service

	mongoClient *mongo.Client
	log         logger.Logger
}

// New connects to MongoDB and, when enabled, Redis, then assembles the
// search service.
func New(ctx context.Context, cfg *config.Config, reg prometheus.Registerer, log logger.Logger) (*App, error) {
	client, err := store.NewMongoClient(ctx, cfg.MongoURI, cfg.MongoUser, cfg.MongoPassword)
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	log.Info("Connected to MongoDB", "database", cfg.MongoDB)

	flightStore := store.NewMongoFlightStore(client.Database(cfg.MongoDB))
	if err := flightStore.EnsureIndexes(ctx); err != nil {
		log.Warn("Failed to ensure flight indexes", "error", err)
	}

	var flightCache cache.Cache
	if cfg.CacheEnabled {
		redisCache, err := cache.NewRedisCache(cache.RedisConfig{
			Host:     cfg.RedisHost,
			Port:     cfg.RedisPort,
			Password: cfg.RedisPassword,
			TTL:      cfg.RedisTTL,
		})
		if err != nil {
			client.Disconnect(context.Background())
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		flightCache = redisCache
		log.Info("Redis cache enabled", "addr", cfg.RedisHost+":"+cfg.RedisPort, "ttl", cfg.RedisTTL.String())
	} else {
		flightCache = cache.NewNoOpCache()
		log.Info("Cache disabled")
	}

	provider := providers.NewAmadeusProvider(providers.AmadeusConfig{
		BaseURL:      cfg.AmadeusBaseURL,
		ClientID:     cfg.AmadeusClientID,
		ClientSecret: cfg.AmadeusClientSecret,
		Currency:     cfg.AmadeusCurrency,
		Timeout:      cfg.AmadeusTimeout,
	})

	m := metrics.NewMetrics(reg, metricsNamespace)
	svc := search.NewService(provider, flightStore, flightCache, search.Config{
		RateLimiter: newLimiter(cfg, provider.Name()),
	}, m, log)

	return &App{
		Config:      cfg,
		Store:       flightStore,
		Cache:       flightCache,
		Metrics:     m,
		Service:     svc,
		mongoClient: client,
		log:         log,
	}, nil
}

// Close releases the cache and the MongoDB connection.
func (a *App) Close(ctx context.Context) {
	if err := a.Cache.Close(); err != nil {
		a.log.Warn("Failed to close cache", "error", err)
	}
	if err := a.mongoClient.Disconnect(ctx); err != nil {
		a.log.Warn("Failed to disconnect MongoDB", "error", err)
	}
}

// newLimiter applies the configured quota to the named provider; any other
// provider falls back to the package defaults.
func newLimiter(cfg *config.Config, provider string) *ratelimit.ProviderLimiter {
	limiter := ratelimit.NewProviderLimiter(ratelimit.DefaultConfig())
	limiter.SetProviderLimit(provider, cfg.ProviderRPS, cfg.ProviderBurst)
	return limiter
}
