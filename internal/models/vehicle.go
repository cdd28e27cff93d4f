package models

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownVehicleKind    = errors.New("unknown vehicle kind")
	ErrCapabilityUnsupported = errors.New("capability not supported")
)

// VehicleKind is one of the fixed vehicle variants.
type VehicleKind string

const (
	KindCar        VehicleKind = "Car"
	KindDrone      VehicleKind = "Drone"
	KindAmphibious VehicleKind = "Amphibious"
	KindSubmarine  VehicleKind = "Submarine"
)

// VehicleKinds lists the variants in menu order.
var VehicleKinds = []VehicleKind{KindCar, KindDrone, KindAmphibious, KindSubmarine}

// kindProfile holds everything that differs between variants. A behavior
// string is empty when the variant lacks the matching capability.
type kindProfile struct {
	capabilities Capability
	capacity     float64
	location     string

	move, load, unload string

	drive, fly, navigate string
	recharge, refuel     string
}

var profiles = map[VehicleKind]kindProfile{
	KindCar: {
		capabilities: Rolling | Fuel,
		capacity:     1000.0,
		location:     "Main Warehouse",
		move:         "Car moving along the road.",
		load:         "Car loading cargo.",
		unload:       "Car unloading at the delivery point.",
		drive:        "Car in manual driving mode.",
		refuel:       "Car refuelling with petrol.",
	},
	KindDrone: {
		capabilities: Flying | Electric,
		capacity:     5.0,
		location:     "Drone Base",
		move:         "Drone travelling through the air.",
		load:         "Drone loading a light package.",
		unload:       "Drone unloading with its cable winch.",
		fly:          "Drone climbing to 100 metres.",
		recharge:     "Lithium-ion battery recharging.",
	},
	KindAmphibious: {
		capabilities: Rolling | Swimming,
		capacity:     500.0,
		location:     "Loading Dock",
		move:         "Amphibious switching between land and water.",
		load:         "Amphibious loading sealed cargo.",
		unload:       "Amphibious lowering its hydraulic ramp.",
		drive:        "Amphibious in 4x4 mode.",
		navigate:     "Amphibious navigating at 5 knots.",
	},
	KindSubmarine: {
		capabilities: Swimming,
		capacity:     2000.0,
		location:     "Submarine Base",
		move:         "Submarine diving to 200 metres.",
		load:         "Submarine loading underwater equipment.",
		unload:       "Submarine releasing cargo with its crane.",
		navigate:     "Submarine using sonar to navigate.",
	},
}

// IsValidVehicleKind checks if a kind is one of the known variants.
func IsValidVehicleKind(kind VehicleKind) bool {
	_, ok := profiles[kind]
	return ok
}

// Vehicle represents an autonomous transport vehicle.
type Vehicle struct {
	ID       string      `json:"id"`
	Kind     VehicleKind `json:"kind"`
	Capacity float64     `json:"capacity"`
	Location string      `json:"location"`
}

// NewVehicle creates a vehicle of the given kind with that kind's default
// capacity and location.
func NewVehicle(kind VehicleKind, id string) (*Vehicle, error) {
	p, ok := profiles[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownVehicleKind, kind)
	}
	return &Vehicle{
		ID:       id,
		Kind:     kind,
		Capacity: p.capacity,
		Location: p.location,
	}, nil
}

// Capabilities returns the capability set of the vehicle's kind.
func (v *Vehicle) Capabilities() Capability {
	return profiles[v.Kind].capabilities
}

// Supports reports whether the vehicle can carry out missions of the given kind.
func (v *Vehicle) Supports(kind MissionKind) bool {
	return v.Capabilities().Has(kind.RequiredCapability())
}

func (v *Vehicle) Move(o Observer)   { v.moveFor(o, "") }
func (v *Vehicle) Load(o Observer)   { v.say(o, profiles[v.Kind].load) }
func (v *Vehicle) Unload(o Observer) { v.say(o, profiles[v.Kind].unload) }

func (v *Vehicle) Drive(o Observer) error {
	return v.perform(o, Rolling, "drive", profiles[v.Kind].drive)
}

func (v *Vehicle) Fly(o Observer) error {
	return v.perform(o, Flying, "fly", profiles[v.Kind].fly)
}

func (v *Vehicle) Navigate(o Observer) error {
	return v.perform(o, Swimming, "navigate", profiles[v.Kind].navigate)
}

func (v *Vehicle) RechargeBattery(o Observer) error {
	return v.perform(o, Electric, "recharge battery", profiles[v.Kind].recharge)
}

func (v *Vehicle) Refuel(o Observer) error {
	return v.perform(o, Fuel, "refuel", profiles[v.Kind].refuel)
}

func (v *Vehicle) perform(o Observer, need Capability, action, msg string) error {
	if !v.Capabilities().Has(need) {
		return fmt.Errorf("%w: %s %q cannot %s", ErrCapabilityUnsupported, v.Kind, v.ID, action)
	}
	v.say(o, msg)
	return nil
}

// moveFor emits the move line tagged with the mission it belongs to.
func (v *Vehicle) moveFor(o Observer, missionID string) {
	emit(o, v.ID, missionID, profiles[v.Kind].move)
}

func (v *Vehicle) say(o Observer, msg string) {
	emit(o, v.ID, "", msg)
}
