// Package sim owns the vehicle and mission registries and runs simulation
// cycles over them.
package sim

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/ukydev/transport-sim/internal/models"
)

// Environment holds the registered vehicles and missions in insertion order.
// It is not safe for concurrent use.
type Environment struct {
	vehicles  []*models.Vehicle
	missions  []*models.Mission
	observer  models.Observer
	obstacles *ObstacleGenerator
}

// NewEnvironment creates an empty environment. A nil observer discards
// events and a nil generator uses a time-seeded random source.
func NewEnvironment(observer models.Observer, obstacles *ObstacleGenerator) *Environment {
	if observer == nil {
		observer = models.Discard
	}
	if obstacles == nil {
		obstacles = NewObstacleGenerator(nil)
	}
	return &Environment{observer: observer, obstacles: obstacles}
}

// RegisterVehicle creates a vehicle of the given kind and adds it to the
// registry. The registry is left unchanged on error.
func (e *Environment) RegisterVehicle(kind models.VehicleKind, id string) (*models.Vehicle, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%w: vehicle id is empty", ErrInvalidSelection)
	}
	if _, err := e.FindVehicle(id); err == nil {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateID, id)
	}
	v, err := models.NewVehicle(kind, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSelection, err)
	}
	e.vehicles = append(e.vehicles, v)

	log.WithFields(log.Fields{
		"vehicle_id": id,
		"kind":       kind,
	}).Debug("Registered vehicle")
	return v, nil
}

// Vehicles returns the registered vehicles in registration order.
func (e *Environment) Vehicles() []*models.Vehicle {
	out := make([]*models.Vehicle, len(e.vehicles))
	copy(out, e.vehicles)
	return out
}

// FindVehicle looks a vehicle up by id.
func (e *Environment) FindVehicle(id string) (*models.Vehicle, error) {
	for _, v := range e.vehicles {
		if v.ID == id {
			return v, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrVehicleNotFound, id)
}

// CreateMission assigns a registered vehicle to a new pending mission after
// checking that the vehicle has the capability the mission kind requires.
func (e *Environment) CreateMission(origin, destination string, kind models.MissionKind, vehicleID string) (*models.Mission, error) {
	v, err := e.FindVehicle(vehicleID)
	if err != nil {
		return nil, err
	}
	if !models.IsValidMissionKind(kind) {
		return nil, fmt.Errorf("%w: unknown mission kind %q", ErrInvalidSelection, kind)
	}
	if !v.Supports(kind) {
		return nil, fmt.Errorf("%w: %s %q cannot run %s missions", ErrIncompatibleVehicle, v.Kind, v.ID, kind)
	}
	m := models.NewMission(origin, destination, kind, v)
	e.missions = append(e.missions, m)

	log.WithFields(log.Fields{
		"mission_id":  m.ID.String(),
		"vehicle_id":  v.ID,
		"kind":        kind,
		"origin":      origin,
		"destination": destination,
	}).Debug("Created mission")
	return m, nil
}

// Missions returns every mission in registration order.
func (e *Environment) Missions() []*models.Mission {
	out := make([]*models.Mission, len(e.missions))
	copy(out, e.missions)
	return out
}

// ActiveMissions returns the missions that have not been completed.
func (e *Environment) ActiveMissions() []*models.Mission {
	var out []*models.Mission
	for _, m := range e.missions {
		if !m.Completed() {
			out = append(out, m)
		}
	}
	return out
}

// SimulateCycle runs the given mission, or every active mission when m is
// nil, and returns how many missions were simulated.
func (e *Environment) SimulateCycle(m *models.Mission) int {
	start := time.Now()
	if m != nil {
		e.say(m.ID.String(), "\n--- MISSION SIMULATION START ---")
		e.simulate(m)
		e.say(m.ID.String(), "--- MISSION SIMULATION END ---\n")
		e.logCycle(1, start)
		return 1
	}

	// Snapshot first so the batch only covers missions pending at call time.
	pending := e.ActiveMissions()
	e.say("", "\n--- SIMULATION CYCLE START ---")
	for _, p := range pending {
		e.simulate(p)
	}
	e.say("", "--- CYCLE END ---\n")
	e.logCycle(len(pending), start)
	return len(pending)
}

func (e *Environment) simulate(m *models.Mission) {
	id := m.ID.String()
	e.say(id, "Mission details:")
	e.say(id, fmt.Sprintf("Origin: %s, Destination: %s", m.Origin, m.Destination))
	if m.Vehicle != nil {
		e.say(id, "Assigned vehicle: "+string(m.Vehicle.Kind))
		e.say(id, "Load capacity: "+strconv.FormatFloat(m.Vehicle.Capacity, 'f', 1, 64))
	}
	header, obstacle := e.obstacles.ForMission(m)
	if header != "" {
		e.say(id, header)
		e.say(id, "- "+obstacle)
	}
	m.Start(e.observer)
	m.Complete(e.observer)
}

func (e *Environment) say(missionID, msg string) {
	e.observer.Observe(models.Event{
		Timestamp: time.Now(),
		MissionID: missionID,
		Message:   msg,
	})
}

func (e *Environment) logCycle(n int, start time.Time) {
	log.WithFields(log.Fields{
		"simulated": n,
		"elapsed":   time.Since(start),
	}).Debug("Simulation cycle finished")
}
