package sim

import "errors"

var (
	ErrDuplicateID         = errors.New("vehicle id already in use")
	ErrVehicleNotFound     = errors.New("vehicle not found")
	ErrIncompatibleVehicle = errors.New("vehicle not compatible with mission kind")
	ErrInvalidSelection    = errors.New("invalid selection")
)
