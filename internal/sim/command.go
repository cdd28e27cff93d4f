package sim

import (
	"fmt"

	"github.com/ukydev/transport-sim/internal/models"
)

// Op identifies a command. The values match the console menu numbers.
type Op int

const (
	OpRegisterVehicle Op = iota + 1
	OpListVehicles
	OpCreateMission
	OpListActiveMissions
	OpSimulate
	OpShowVehicle
	OpExit
)

// Command is a single user action against an Environment.
type Command struct {
	Op          Op
	VehicleKind models.VehicleKind
	VehicleID   string
	Origin      string
	Destination string
	MissionKind models.MissionKind
	// MissionIndex is a 1-based position in ActiveMissions. Zero simulates
	// every active mission.
	MissionIndex int
}

// Result carries whatever a command produced.
type Result struct {
	Vehicle   *models.Vehicle
	Vehicles  []*models.Vehicle
	Mission   *models.Mission
	Missions  []*models.Mission
	Simulated int
	Exit      bool
}

// Dispatch executes cmd. Every command either completes fully or returns an
// error without changing the environment.
func (e *Environment) Dispatch(cmd Command) (Result, error) {
	switch cmd.Op {
	case OpRegisterVehicle:
		v, err := e.RegisterVehicle(cmd.VehicleKind, cmd.VehicleID)
		return Result{Vehicle: v}, err
	case OpListVehicles:
		return Result{Vehicles: e.Vehicles()}, nil
	case OpCreateMission:
		m, err := e.CreateMission(cmd.Origin, cmd.Destination, cmd.MissionKind, cmd.VehicleID)
		return Result{Mission: m}, err
	case OpListActiveMissions:
		return Result{Missions: e.ActiveMissions()}, nil
	case OpSimulate:
		return e.dispatchSimulate(cmd.MissionIndex)
	case OpShowVehicle:
		v, err := e.FindVehicle(cmd.VehicleID)
		return Result{Vehicle: v}, err
	case OpExit:
		return Result{Exit: true}, nil
	default:
		return Result{}, fmt.Errorf("%w: unknown command %d", ErrInvalidSelection, cmd.Op)
	}
}

func (e *Environment) dispatchSimulate(index int) (Result, error) {
	if index == 0 {
		return Result{Simulated: e.SimulateCycle(nil)}, nil
	}
	active := e.ActiveMissions()
	if index < 1 || index > len(active) {
		return Result{}, fmt.Errorf("%w: mission %d of %d active", ErrInvalidSelection, index, len(active))
	}
	m := active[index-1]
	return Result{Mission: m, Simulated: e.SimulateCycle(m)}, nil
}
