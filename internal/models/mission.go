package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// MissionKind classifies a mission by the domain it travels through.
type MissionKind string

const (
	MissionLand  MissionKind = "land"
	MissionAir   MissionKind = "air"
	MissionWater MissionKind = "water"
)

// MissionKinds lists the kinds in menu order.
var MissionKinds = []MissionKind{MissionLand, MissionAir, MissionWater}

// IsValidMissionKind checks if a mission kind is valid
func IsValidMissionKind(kind MissionKind) bool {
	switch kind {
	case MissionLand, MissionAir, MissionWater:
		return true
	default:
		return false
	}
}

// RequiredCapability returns the capability a vehicle needs for this kind of
// mission. Unknown kinds require nothing that any vehicle has.
func (k MissionKind) RequiredCapability() Capability {
	switch k {
	case MissionLand:
		return Rolling
	case MissionAir:
		return Flying
	case MissionWater:
		return Swimming
	default:
		return 0
	}
}

// MissionStatus is the lifecycle state of a mission.
type MissionStatus string

const (
	MissionPending   MissionStatus = "pending"
	MissionCompleted MissionStatus = "completed"
)

// Mission is a delivery from Origin to Destination carried out by a vehicle
// borrowed from the environment's registry.
type Mission struct {
	ID          uuid.UUID     `json:"id"`
	Origin      string        `json:"origin"`
	Destination string        `json:"destination"`
	Kind        MissionKind   `json:"kind"`
	Vehicle     *Vehicle      `json:"vehicle"`
	Status      MissionStatus `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
	CompletedAt *time.Time    `json:"completed_at,omitempty"`
}

// NewMission creates a pending mission. Compatibility between kind and
// vehicle is the caller's responsibility.
func NewMission(origin, destination string, kind MissionKind, vehicle *Vehicle) *Mission {
	return &Mission{
		ID:          uuid.New(),
		Origin:      origin,
		Destination: destination,
		Kind:        kind,
		Vehicle:     vehicle,
		Status:      MissionPending,
		CreatedAt:   time.Now(),
	}
}

// Start announces the route and sets the assigned vehicle moving.
func (m *Mission) Start(o Observer) {
	m.say(o, fmt.Sprintf("Mission started from %s to %s", m.Origin, m.Destination))
	if m.Vehicle != nil {
		m.Vehicle.moveFor(o, m.ID.String())
	}
}

// Complete marks the mission completed. Completing twice repeats the
// announcement but keeps the first completion time.
func (m *Mission) Complete(o Observer) {
	m.say(o, fmt.Sprintf("Mission completed at %s", m.Destination))
	if m.Status == MissionCompleted {
		return
	}
	now := time.Now()
	m.Status = MissionCompleted
	m.CompletedAt = &now
}

// Completed reports whether the mission has been completed.
func (m *Mission) Completed() bool {
	return m.Status == MissionCompleted
}

func (m *Mission) say(o Observer, msg string) {
	vehicleID := ""
	if m.Vehicle != nil {
		vehicleID = m.Vehicle.ID
	}
	emit(o, vehicleID, m.ID.String(), msg)
}
