package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Event is a single line of simulation output. Vehicles, missions and the
// environment describe everything they do through events.
type Event struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Timestamp time.Time          `bson:"timestamp" json:"timestamp"`
	VehicleID string             `bson:"vehicle_id,omitempty" json:"vehicle_id,omitempty"`
	MissionID string             `bson:"mission_id,omitempty" json:"mission_id,omitempty"`
	Message   string             `bson:"message" json:"message"`
}

// Observer receives events as they are emitted.
type Observer interface {
	Observe(e Event)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(e Event)

func (f ObserverFunc) Observe(e Event) { f(e) }

// Discard drops every event.
var Discard Observer = ObserverFunc(func(Event) {})

type multiObserver []Observer

func (m multiObserver) Observe(e Event) {
	for _, o := range m {
		o.Observe(e)
	}
}

// MultiObserver fans each event out to all non-nil observers in order.
func MultiObserver(observers ...Observer) Observer {
	m := make(multiObserver, 0, len(observers))
	for _, o := range observers {
		if o != nil {
			m = append(m, o)
		}
	}
	if len(m) == 1 {
		return m[0]
	}
	return m
}

func emit(o Observer, vehicleID, missionID, msg string) {
	if o == nil {
		return
	}
	o.Observe(Event{
		Timestamp: time.Now(),
		VehicleID: vehicleID,
		MissionID: missionID,
		Message:   msg,
	})
}
