package models

import "strings"

// Capability is a set of behavioral roles a vehicle kind can play.
type Capability uint8

const (
	Rolling Capability = 1 << iota
	Flying
	Swimming
	Electric
	Fuel
)

var capabilityNames = []struct {
	c    Capability
	name string
}{
	{Rolling, "rolling"},
	{Flying, "flying"},
	{Swimming, "swimming"},
	{Electric, "electric"},
	{Fuel, "fuel"},
}

// Has reports whether every capability in other is present in c.
func (c Capability) Has(other Capability) bool {
	return other != 0 && c&other == other
}

func (c Capability) String() string {
	var names []string
	for _, n := range capabilityNames {
		if c&n.c != 0 {
			names = append(names, n.name)
		}
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, ", ")
}
