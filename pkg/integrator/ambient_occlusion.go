package integrator

import (
	"github.com/df07/go-ao-raytracer/pkg/core"
	"github.com/df07/go-ao-raytracer/pkg/scene"
)

// AmbientOcclusionIntegrator returns white where one scattered ray escapes to
// the open sky and black where it is blocked. It performs exactly one bounce
// and ignores any recursion limit.
type AmbientOcclusionIntegrator struct{}

// NewAmbientOcclusionIntegrator creates a new ambient occlusion integrator
func NewAmbientOcclusionIntegrator() *AmbientOcclusionIntegrator {
	return &AmbientOcclusionIntegrator{}
}

// RayColor implements Integrator
func (ao *AmbientOcclusionIntegrator) RayColor(ray core.Ray, objects *scene.ObjectGroup, sampler core.Sampler) core.Vec3 {
	hit := objects.Intersect(ray)
	if !hit.Hit() {
		return core.Black
	}

	scatter := objects.Object(hit.Handle).Scatter(ray, hit.Info, sampler)
	if !scatter.DidScatter {
		return core.Black
	}

	if objects.Intersect(scatter.Scattered).Hit() {
		return core.Black
	}
	return core.White
}
