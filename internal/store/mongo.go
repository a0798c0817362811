package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dharmasatrya/flightfinder/internal/models"
)

const flightsCollection = "flights"

// FlightStore is the local flight source used by the fallback search.
type FlightStore interface {
	FindOutbound(ctx context.Context, q models.SearchQuery) ([]LocalFlightRecord, error)
	FindReturn(ctx context.Context, q models.SearchQuery) ([]LocalFlightRecord, error)
}

// NewMongoClient connects and pings the server.
func NewMongoClient(ctx context.Context, uri, username, password string) (*mongo.Client, error) {
	clientOptions := options.Client().ApplyURI(uri)

	if username != "" && password != "" {
		clientOptions.SetAuth(options.Credential{
			Username: username,
			Password: password,
		})
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, err
	}

	if err := client.Ping(ctx, nil); err != nil {
		client.Disconnect(context.Background())
		return nil, err
	}

	return client, nil
}

type MongoFlightStore struct {
	collection *mongo.Collection
}

func NewMongoFlightStore(db *mongo.Database) *MongoFlightStore {
	return &MongoFlightStore{
		collection: db.Collection(flightsCollection),
	}
}

// EnsureIndexes creates the indexes backing the route/date lookup.
func (s *MongoFlightStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "from", Value: 1},
				{Key: "to", Value: 1},
				{Key: "departureTime", Value: 1},
			},
		},
		{
			Keys: bson.D{
				{Key: "isActive", Value: 1},
				{Key: "price", Value: 1},
			},
		},
	})
	return err
}

func (s *MongoFlightStore) FindOutbound(ctx context.Context, q models.SearchQuery) ([]LocalFlightRecord, error) {
	filter, err := OutboundFilter(q)
	if err != nil {
		return nil, err
	}
	return s.find(ctx, filter, SortSpec(q.Sort, q.Order))
}

func (s *MongoFlightStore) FindReturn(ctx context.Context, q models.SearchQuery) ([]LocalFlightRecord, error) {
	filter, err := ReturnFilter(q)
	if err != nil || filter == nil {
		return nil, err
	}
	return s.find(ctx, filter, SortSpec(q.Sort, q.Order))
}

func (s *MongoFlightStore) find(ctx context.Context, filter bson.M, sort bson.D) ([]LocalFlightRecord, error) {
	cursor, err := s.collection.Find(ctx, filter, options.Find().SetSort(sort))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	records := make([]LocalFlightRecord, 0)
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// InsertMany stores new records, stamping their timestamps.
func (s *MongoFlightStore) InsertMany(ctx context.Context, records []LocalFlightRecord) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	now := time.Now().UTC()
	docs := make([]interface{}, len(records))
	for i := range records {
		records[i].CreatedAt = now
		records[i].UpdatedAt = now
		docs[i] = records[i]
	}

	result, err := s.collection.InsertMany(ctx, docs)
	if err != nil {
		return 0, err
	}
	return len(result.InsertedIDs), nil
}

// DeleteAll empties the collection.
func (s *MongoFlightStore) DeleteAll(ctx context.Context) (int64, error) {
	result, err := s.collection.DeleteMany(ctx, bson.M{})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}
