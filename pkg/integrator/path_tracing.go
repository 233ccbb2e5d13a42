package integrator

import (
	"math"

	"github.com/df07/go-ao-raytracer/pkg/core"
	"github.com/df07/go-ao-raytracer/pkg/scene"
)

// russianRouletteMinBounces is the number of bounces taken before paths may be terminated early
const russianRouletteMinBounces = 5

// PathTracingIntegrator implements unidirectional path tracing under a uniform sky
type PathTracingIntegrator struct {
	MaxDepth   int       // Rays traced per path, including the camera ray
	Background core.Vec3 // Radiance of every escaping ray
}

// NewPathTracingIntegrator creates a new path tracing integrator with a white sky
func NewPathTracingIntegrator(maxDepth int) *PathTracingIntegrator {
	return &PathTracingIntegrator{
		MaxDepth:   maxDepth,
		Background: core.White,
	}
}

// RayColor implements Integrator
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, objects *scene.ObjectGroup, sampler core.Sampler) core.Vec3 {
	return pt.rayColor(ray, objects, sampler, pt.MaxDepth, core.White)
}

func (pt *PathTracingIntegrator) rayColor(ray core.Ray, objects *scene.ObjectGroup, sampler core.Sampler, depth int, throughput core.Vec3) core.Vec3 {
	// If we've exceeded the ray bounce limit, no more light is gathered
	if depth <= 0 {
		return core.Black
	}

	shouldTerminate, rrCompensation := pt.applyRussianRoulette(depth, throughput, sampler)
	if shouldTerminate {
		return core.Black
	}

	hit := objects.Intersect(ray)
	if !hit.Hit() {
		return pt.Background.Multiply(rrCompensation)
	}

	scatter := objects.Object(hit.Handle).Scatter(ray, hit.Info, sampler)
	if !scatter.DidScatter || scatter.PDF <= 0 {
		return core.Black
	}

	cosine := scatter.Scattered.Direction.Normalize().Dot(hit.Info.Normal.Normalize())
	if cosine <= 0 {
		return core.Black
	}

	// Monte Carlo estimator: (BRDF * incomingLight * cosine) / PDF
	// For lambertian: BRDF = albedo/π, PDF = cosθ/π, so this reduces to albedo * incomingLight
	brdf := scatter.Light.Multiply(1 / math.Pi)
	weight := brdf.Multiply(cosine / scatter.PDF)

	incoming := pt.rayColor(scatter.Scattered, objects, sampler, depth-1, throughput.MultiplyVec(weight))
	return weight.MultiplyVec(incoming).Multiply(rrCompensation)
}

// applyRussianRoulette determines if a path should be terminated and returns the compensation factor
func (pt *PathTracingIntegrator) applyRussianRoulette(depth int, throughput core.Vec3, sampler core.Sampler) (bool, float64) {
	if pt.MaxDepth-depth < russianRouletteMinBounces {
		return false, 1.0
	}

	// Conservative bounds keep the compensation between 1.05x and 2x
	luminance := 0.299*throughput.X + 0.587*throughput.Y + 0.114*throughput.Z
	survivalProb := math.Min(0.95, math.Max(0.5, luminance))

	if sampler.Get1D() > survivalProb {
		return true, 0.0
	}
	return false, 1.0 / survivalProb
}
