package audit

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/yeremiapane/ambatoeat-api/events"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const service = "ambatoeat-api"

// Entry is one line of a reservation's history.
type Entry struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Service   string             `bson:"service" json:"service"`
	Action    string             `bson:"action" json:"action"`
	EntityID  string             `bson:"entity_id" json:"entityId"`
	ActorID   uint               `bson:"actor_id" json:"actorId"`
	Data      bson.M             `bson:"data" json:"data"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
}

// Reader is what the history endpoint needs.
type Reader interface {
	History(ctx context.Context, reservationID uint, limit int64) ([]Entry, error)
}

type MongoStore struct {
	client     *mongo.Client
	collection *mongo.Collection
}

func NewMongoStore(ctx context.Context, uri, database, collection string) (*MongoStore, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	coll := client.Database(database).Collection(collection)
	_, err = coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "entity_id", Value: 1}, {Key: "created_at", Value: -1}},
	})
	if err != nil {
		client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo index: %w", err)
	}

	return &MongoStore{client: client, collection: coll}, nil
}

// Publish records reservation events. Table-only events are skipped.
func (m *MongoStore) Publish(ctx context.Context, e events.Event) error {
	if e.ReservationID == 0 {
		return nil
	}

	data, err := toDocument(e.Data)
	if err != nil {
		return err
	}

	_, err = m.collection.InsertOne(ctx, Entry{
		Service:   service,
		Action:    e.Name,
		EntityID:  strconv.FormatUint(uint64(e.ReservationID), 10),
		ActorID:   e.ActorID,
		Data:      data,
		CreatedAt: e.OccurredAt,
	})
	if err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}

func (m *MongoStore) History(ctx context.Context, reservationID uint, limit int64) ([]Entry, error) {
	filter := bson.M{"entity_id": strconv.FormatUint(uint64(reservationID), 10)}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}).SetLimit(limit)

	cursor, err := m.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find audit entries: %w", err)
	}
	defer cursor.Close(ctx)

	entries := []Entry{}
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("decode audit entries: %w", err)
	}
	return entries, nil
}

func (m *MongoStore) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

// toDocument turns the event payload into a bson.M via its bson encoding.
func toDocument(v interface{}) (bson.M, error) {
	if v == nil {
		return bson.M{}, nil
	}
	raw, err := bson.Marshal(wrap{Value: v})
	if err != nil {
		return nil, fmt.Errorf("encode audit data: %w", err)
	}
	var out struct {
		Value bson.M `bson:"value"`
	}
	if err := bson.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode audit data: %w", err)
	}
	return out.Value, nil
}

type wrap struct {
	Value interface{} `bson:"value"`
}
