package source

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sony/gobreaker"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/vkleiv/energy-data-pipeline/internal/record"
)

// MongoConfig carries the ready-to-use connection parameters. Credentials
// are embedded in the URI by the configuration layer; this adapter never
// assembles them itself.
type MongoConfig struct {
	URI        string
	Database   string
	Collection string

	ConnectTimeout time.Duration
}

// Mongo fetches raw production records from the document store. The
// underlying client is a process-wide handle created lazily on first use and
// reused by every subsequent fetch; Close tears it down at shutdown.
type Mongo struct {
	cfg MongoConfig

	once       sync.Once
	client     *mongo.Client
	connectErr error

	circuit *gobreaker.CircuitBreaker
}

// NewMongo creates the adapter without connecting.
func NewMongo(cfg MongoConfig) *Mongo {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "mongo-records",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	if cfg.ConnectTimeout <= 0 {
		cfg.ConnectTimeout = 10 * time.Second
	}

	return &Mongo{
		cfg:     cfg,
		circuit: cb,
	}
}

// connect establishes the shared client exactly once. A failed first attempt
// is sticky for the process lifetime; callers see ErrSourceUnavailable.
func (m *Mongo) connect(ctx context.Context) (*mongo.Client, error) {
	m.once.Do(func() {
		connectCtx, cancel := context.WithTimeout(ctx, m.cfg.ConnectTimeout)
		defer cancel()

		client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(m.cfg.URI))
		if err != nil {
			m.connectErr = err
			return
		}
		if err := client.Ping(connectCtx, nil); err != nil {
			m.connectErr = err
			return
		}
		m.client = client
	})

	if m.connectErr != nil {
		return nil, m.connectErr
	}
	return m.client, nil
}

// Fetch returns every document in the collection as an ordered raw record,
// excluding the internal identifier field. The query runs through a circuit
// breaker so a dead backend fails fast instead of hanging every caller.
func (m *Mongo) Fetch(ctx context.Context) ([]record.Raw, error) {
	result, err := m.circuit.Execute(func() (interface{}, error) {
		return m.fetchAll(ctx)
	})
	if err != nil {
		if errors.Is(err, ErrEmptyResult) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	return result.([]record.Raw), nil
}

func (m *Mongo) fetchAll(ctx context.Context) ([]record.Raw, error) {
	client, err := m.connect(ctx)
	if err != nil {
		return nil, err
	}

	coll := client.Database(m.cfg.Database).Collection(m.cfg.Collection)

	opts := options.Find().SetProjection(bson.D{{Key: "_id", Value: 0}})
	cursor, err := coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []record.Raw
	for cursor.Next(ctx) {
		var doc bson.D
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		records = append(records, fromDocument(doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}

	if len(records) == 0 {
		return nil, ErrEmptyResult
	}
	return records, nil
}

// Close releases the shared client. Safe to call when no connection was
// ever established.
func (m *Mongo) Close(ctx context.Context) error {
	if m.client == nil {
		return nil
	}
	return m.client.Disconnect(ctx)
}

// fromDocument maps a BSON document into the tagged value model, preserving
// field order.
func fromDocument(doc bson.D) record.Raw {
	raw := make(record.Raw, 0, len(doc))
	for _, e := range doc {
		raw = append(raw, record.Field{Name: e.Key, Value: fromBSONValue(e.Value)})
	}
	return raw
}

func fromBSONValue(v interface{}) record.Value {
	switch val := v.(type) {
	case string:
		return record.String(val)
	case float64:
		return record.Number(val)
	case int:
		return record.Number(float64(val))
	case int32:
		return record.Number(float64(val))
	case int64:
		return record.Number(float64(val))
	case bool:
		return record.Bool(val)
	case primitive.DateTime:
		return record.Time(val.Time().UTC())
	case primitive.A:
		items := make([]record.Value, 0, len(val))
		for _, item := range val {
			items = append(items, fromBSONValue(item))
		}
		return record.Collection(items)
	case bson.D:
		// Embedded documents are outside the scalar contract too; model
		// them as a collection of their values so the validator drops them.
		items := make([]record.Value, 0, len(val))
		for _, e := range val {
			items = append(items, fromBSONValue(e.Value))
		}
		return record.Collection(items)
	case nil:
		return record.String("")
	default:
		return record.String(fmt.Sprintf("%v", val))
	}
}
