package db

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/ukydev/transport-sim/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const defaultJournalTimeout = 5 * time.Second

// Journal records every observed event in an EventCollection. Write
// failures are logged and never reach the simulation.
type Journal struct {
	Collection EventCollection
	Timeout    time.Duration
}

// Observe inserts e with a bounded context.
func (j *Journal) Observe(e models.Event) {
	timeout := j.Timeout
	if timeout <= 0 {
		timeout = defaultJournalTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := j.Collection.InsertEvent(ctx, e); err != nil {
		log.WithError(err).WithFields(log.Fields{
			"mission_id": e.MissionID,
			"vehicle_id": e.VehicleID,
		}).Warn("Failed to journal event")
	}
}

// ReadJournal returns recorded events oldest first. An empty missionID
// returns events for every mission; a limit of zero or less means no limit.
func ReadJournal(ctx context.Context, coll EventCollection, missionID string, limit int64) ([]models.Event, error) {
	filter := bson.M{}
	if missionID != "" {
		filter["mission_id"] = missionID
	}
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: 1}, {Key: "_id", Value: 1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cursor, err := coll.FindEvents(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find events: %w", err)
	}
	defer cursor.Close(ctx)

	var events []models.Event
	if err := cursor.All(ctx, &events); err != nil {
		return nil, fmt.Errorf("decode events: %w", err)
	}
	return events, nil
}
