package scene

import (
	"fmt"

	"github.com/df07/go-ao-raytracer/pkg/log"
)

var logger = log.New("scene")

// AccelerationKind selects the spatial index used by an ObjectGroup
type AccelerationKind int

const (
	AccelerationNone AccelerationKind = iota // Linear scan over every object
	AccelerationBVH                          // Bounding volume hierarchy
)

// AxisSelection chooses the split axis when building a BVH
type AxisSelection int

const (
	AxisLargestExtent AxisSelection = iota
	AxisAlternating
	AxisRandom
)

var accelerationNames = map[string]AccelerationKind{
	"none": AccelerationNone,
	"bvh":  AccelerationBVH,
}

var axisNames = map[string]AxisSelection{
	"largest extent": AxisLargestExtent,
	"alternating":    AxisAlternating,
	"random":         AxisRandom,
}

func (k AccelerationKind) String() string {
	for name, kind := range accelerationNames {
		if kind == k {
			return name
		}
	}
	return fmt.Sprintf("AccelerationKind(%d)", int(k))
}

func (a AxisSelection) String() string {
	for name, axis := range axisNames {
		if axis == a {
			return name
		}
	}
	return fmt.Sprintf("AxisSelection(%d)", int(a))
}

// ParseAccelerationKind maps a configuration name to an AccelerationKind
func ParseAccelerationKind(name string) (AccelerationKind, error) {
	kind, ok := accelerationNames[name]
	if !ok {
		return 0, fmt.Errorf("unknown acceleration structure kind %q", name)
	}
	return kind, nil
}

// ParseAxisSelection maps a configuration name to an AxisSelection
func ParseAxisSelection(name string) (AxisSelection, error) {
	axis, ok := axisNames[name]
	if !ok {
		return 0, fmt.Errorf("unknown axis selection %q", name)
	}
	return axis, nil
}

// AccelerationConfig is passed to NewObjectGroup to pick how nearest-hit
// queries are answered. Every kind returns the same hits.
type AccelerationConfig struct {
	Kind          AccelerationKind
	AxisSelection AxisSelection
	Seed          uint64 // Drives AxisRandom
}

// DefaultAccelerationConfig returns a linear scan with largest-extent splitting
func DefaultAccelerationConfig() AccelerationConfig {
	return AccelerationConfig{
		Kind:          AccelerationNone,
		AxisSelection: AxisLargestExtent,
		Seed:          DefaultSeed,
	}
}

// LogWarnings reports configurations that work but build poor hierarchies
func (c AccelerationConfig) LogWarnings() {
	if c.Kind == AccelerationBVH && c.AxisSelection != AxisLargestExtent {
		logger.Warningf("BVH with %q axis selection builds slower hierarchies than %q",
			c.AxisSelection, AxisLargestExtent)
	}
}
