package types

import (
	"fmt"
	"strings"
)

// Quantity names a dumpable per-cell array
type Quantity uint8

const (
	Ex Quantity = iota
	Ey
	Ez
	Hx
	Hy
	Hz
	PermittivityInv
	PermeabilityInv
	NumQuantities
)

var quantityNames = [NumQuantities]string{
	"ex", "ey", "ez", "hx", "hy", "hz", "permittivity_inv", "permeability_inv",
}

var quantityDescriptions = [NumQuantities]string{
	"Electric field X component",
	"Electric field Y component",
	"Electric field Z component",
	"Magnetic field X component",
	"Magnetic field Y component",
	"Magnetic field Z component",
	"Inverse permittivity",
	"Inverse permeability",
}

func (q Quantity) String() string {
	if q >= NumQuantities {
		return fmt.Sprintf("quantity(%d)", q)
	}
	return quantityNames[q]
}

func (q Quantity) Description() string {
	if q >= NumQuantities {
		return "unknown quantity"
	}
	return quantityDescriptions[q]
}

func ParseQuantity(s string) (q Quantity, err error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for n, name := range quantityNames {
		if name == s {
			return Quantity(n), nil
		}
	}
	err = fmt.Errorf("unknown quantity %q, valid names are %v", s, quantityNames)
	return NumQuantities, err
}
