package material

import (
	"github.com/df07/go-ao-raytracer/pkg/core"
	"github.com/df07/go-ao-raytracer/pkg/geometry"
)

// Lambertian represents a perfectly diffuse material
type Lambertian struct{}

// NewLambertian creates a new lambertian material
func NewLambertian() *Lambertian {
	return &Lambertian{}
}

// Scatter implements the Material interface for lambertian scattering.
// A lambertian surface never absorbs, so DidScatter is always true.
func (l *Lambertian) Scatter(rayIn core.Ray, hit geometry.IntersectionInfo, texture Texture, sampler core.Sampler) ScatterResult {
	// Cosine-weighted direction in the frame whose +z is the surface normal
	sample := core.SampleCosineHemisphere(sampler.Get2D())
	direction := core.NewBasisFromW(hit.Normal).ToWorld(sample.Point)

	return ScatterResult{
		DidScatter: true,
		Scattered:  core.NewRay(hit.Point, direction),
		PDF:        sample.PDF,
		Light:      texture.ValueAt(rayIn, hit.UV),
	}
}
