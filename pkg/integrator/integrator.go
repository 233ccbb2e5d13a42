package integrator

import (
	"errors"
	"fmt"

	"github.com/df07/go-ao-raytracer/pkg/core"
	"github.com/df07/go-ao-raytracer/pkg/scene"
)

// Integrator kinds accepted in scene files
const (
	KindAmbientOcclusion = "ambient occlusion"
	KindPathTracing      = "path tracing"
)

// ErrUnknownKind is returned by New for an unrecognised integrator kind
var ErrUnknownKind = errors.New("integrator: unknown kind")

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// RayColor estimates the color arriving along ray. All randomness is
	// drawn from sampler, which belongs to a single camera ray.
	RayColor(ray core.Ray, objects *scene.ObjectGroup, sampler core.Sampler) core.Vec3
}

// New returns the integrator named by config.Kind
func New(config scene.IntegratorConfig) (Integrator, error) {
	switch config.Kind {
	case KindAmbientOcclusion:
		return NewAmbientOcclusionIntegrator(), nil
	case KindPathTracing:
		return NewPathTracingIntegrator(config.RecursionLimit), nil
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownKind, config.Kind)
	}
}
