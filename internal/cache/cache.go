package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dharmasatrya/flightfinder/internal/models"
)

// Cache stores transformed provider offers per normalized search. Only
// successful provider results are cached; fallback results never are.
type Cache interface {
	Get(ctx context.Context, q models.SearchQuery) ([]models.FlightOffer, bool)
	Set(ctx context.Context, q models.SearchQuery, offers []models.FlightOffer) error
	Close() error
}

type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	TTL      time.Duration
}

func NewRedisCache(cfg RedisConfig) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Host + ":" + cfg.Port,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}

	return NewRedisCacheWithClient(client, cfg.TTL), nil
}

func NewRedisCacheWithClient(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *RedisCache) Get(ctx context.Context, q models.SearchQuery) ([]models.FlightOffer, bool) {
	data, err := c.client.Get(ctx, Key(q)).Bytes()
	if err != nil {
		return nil, false
	}

	var offers []models.FlightOffer
	if err := json.Unmarshal(data, &offers); err != nil {
		return nil, false
	}

	return offers, true
}

func (c *RedisCache) Set(ctx context.Context, q models.SearchQuery, offers []models.FlightOffer) error {
	data, err := json.Marshal(offers)
	if err != nil {
		return err
	}

	return c.client.Set(ctx, Key(q), data, c.ttl).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

type NoOpCache struct{}

func NewNoOpCache() *NoOpCache {
	return &NoOpCache{}
}

func (c *NoOpCache) Get(ctx context.Context, q models.SearchQuery) ([]models.FlightOffer, bool) {
	return nil, false
}

func (c *NoOpCache) Set(ctx context.Context, q models.SearchQuery, offers []models.FlightOffer) error {
	return nil
}

func (c *NoOpCache) Close() error {
	return nil
}

// Key covers exactly the fields sent to the provider. Post-filters, sort
// and pagination are applied after the cache and are left out.
func Key(q models.SearchQuery) string {
	keyData := struct {
		From          string
		To            string
		DepartureDate string
		ReturnDate    string
		Segments      []models.Segment
		Passengers    int
		TravelClass   string
		NonStop       bool
	}{
		From:          q.From,
		To:            q.To,
		DepartureDate: q.DepartureDate,
		Segments:      q.Segments,
		Passengers:    q.Passengers,
		TravelClass:   q.TravelClass,
		NonStop:       q.Filters.MaxStops != nil && *q.Filters.MaxStops == 0,
	}

	if q.ReturnDate != nil {
		keyData.ReturnDate = *q.ReturnDate
	}

	data, _ := json.Marshal(keyData)
	hash := sha256.Sum256(data)
	return "flights:" + hex.EncodeToString(hash[:])
}
