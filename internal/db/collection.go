package db

import (
	"context"

	"github.com/ukydev/transport-sim/internal/models"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EventCollection defines the interface for simulation event operations.
type EventCollection interface {
	InsertEvent(ctx context.Context, event models.Event) error
	FindEvents(ctx context.Context, filter interface{}, opts ...*options.FindOptions) (EventCursor, error)
	DeleteAll(ctx context.Context) error
}

// EventCursor defines the interface for event cursor operations.
type EventCursor interface {
	All(ctx context.Context, out interface{}) error
	Close(ctx context.Context) error
}
