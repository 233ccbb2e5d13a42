package material

import (
	"github.com/df07/go-ao-raytracer/pkg/core"
	"github.com/df07/go-ao-raytracer/pkg/geometry"
)

// Material decides how light leaves a surface
type Material interface {
	// Scatter samples one outgoing ray for a hit. The texture is the one paired
	// with the material on the hit object.
	Scatter(rayIn core.Ray, hit geometry.IntersectionInfo, texture Texture, sampler core.Sampler) ScatterResult
}

// ScatterResult contains the result of material scattering
type ScatterResult struct {
	DidScatter bool
	Scattered  core.Ray  // The scattered ray, starting at the hit point
	PDF        float64   // Density of the scattered direction
	Light      core.Vec3 // Color carried back along the incoming ray
}
