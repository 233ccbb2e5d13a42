package scene

import (
	"github.com/df07/go-ao-raytracer/pkg/geometry"
)

// Defaults applied when a scene omits the value
const (
	DefaultSeed           uint64 = 1
	DefaultNumSamples            = 64
	DefaultRecursionLimit        = 64
)

// IntegratorConfig selects the radiance estimator and its sampling budget
type IntegratorConfig struct {
	Kind           string // e.g. "ambient occlusion"
	NumSamples     int    // Samples per pixel
	RecursionLimit int    // Maximum bounces; estimators may ignore it
}

// Scene contains all the elements needed for rendering
type Scene struct {
	Camera     *geometry.Camera
	Objects    *ObjectGroup
	Integrator IntegratorConfig
	Seed       uint64
}
