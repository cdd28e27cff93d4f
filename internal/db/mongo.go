package db

import (
	"context"
	"fmt"
	"time"

	"github.com/ukydev/transport-sim/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ConnectMongo connects to MongoDB at uri and verifies the connection.
func ConnectMongo(ctx context.Context, uri string) (*mongo.Client, error) {
	if uri == "" {
		return nil, fmt.Errorf("mongo uri is empty")
	}
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo.Connect error: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo.Ping error: %w", err)
	}
	return client, nil
}

// MongoCollection wraps a MongoDB collection for event operations.
type MongoCollection struct {
	Collection *mongo.Collection
}

// InsertEvent inserts an event record into the collection.
func (c *MongoCollection) InsertEvent(ctx context.Context, event models.Event) error {
	if c.Collection == nil {
		return fmt.Errorf("mongo collection is nil")
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_, err := c.Collection.InsertOne(ctx, event)
	return err
}

// mongoEventCursor wraps a MongoDB cursor for event queries.
type mongoEventCursor struct {
	cursor *mongo.Cursor
}

// All retrieves all results from the cursor.
func (m *mongoEventCursor) All(ctx context.Context, out interface{}) error {
	return m.cursor.All(ctx, out)
}

func (m *mongoEventCursor) Close(ctx context.Context) error {
	return m.cursor.Close(ctx)
}

// FindEvents queries event records from the collection.
func (c *MongoCollection) FindEvents(ctx context.Context, filter interface{}, opts ...*options.FindOptions) (EventCursor, error) {
	if c.Collection == nil {
		return nil, fmt.Errorf("mongo collection is nil")
	}
	cursor, err := c.Collection.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	return &mongoEventCursor{cursor: cursor}, nil
}

// DeleteAll deletes all event records from the collection.
func (c *MongoCollection) DeleteAll(ctx context.Context) error {
	if c.Collection == nil {
		return fmt.Errorf("mongo collection is nil")
	}
	_, err := c.Collection.DeleteMany(ctx, bson.M{})
	return err
}
