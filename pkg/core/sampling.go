package core

import (
	"math"
	"math/rand/v2"
)

// SampleResult is a point drawn from a unit domain together with its density
type SampleResult struct {
	Point Vec3
	PDF   float64
}

// Sampler provides uniform random numbers in [0, 1) for sampling routines.
// Can be swapped out for deterministic testing.
type Sampler interface {
	Get1D() float64
	Get2D() Vec2
}

// RandomSampler wraps a seedable PCG generator
type RandomSampler struct {
	random *rand.Rand
}

// NewRandomSampler creates a sampler from a random generator
func NewRandomSampler(random *rand.Rand) *RandomSampler {
	return &RandomSampler{random: random}
}

// Get1D returns a random float64 in [0, 1)
func (r *RandomSampler) Get1D() float64 {
	return r.random.Float64()
}

// Get2D returns two random float64 values in [0, 1)
func (r *RandomSampler) Get2D() Vec2 {
	return NewVec2(r.random.Float64(), r.random.Float64())
}

// NewRandom creates a deterministic PCG generator from a seed
func NewRandom(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, splitmix64(seed)))
}

// TraceSeed derives the seed for one camera ray from the render seed and the
// (pixel, sample) pair it belongs to. The result depends only on its inputs,
// so any traversal order or worker count yields the same stream per trace.
func TraceSeed(seed uint64, pixelIndex, sampleIndex int) uint64 {
	h := splitmix64(seed)
	h = splitmix64(h ^ uint64(pixelIndex))
	return splitmix64(h ^ uint64(sampleIndex)<<32)
}

// NewTraceSampler returns the sampler for a single camera ray
func NewTraceSampler(seed uint64, pixelIndex, sampleIndex int) *RandomSampler {
	return NewRandomSampler(NewRandom(TraceSeed(seed, pixelIndex, sampleIndex)))
}

func splitmix64(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}

// SampleUnitDisc draws a uniform point in the unit disc (z = 0).
// Density is 1/π with respect to area.
func SampleUnitDisc(u Vec2) SampleResult {
	r := math.Sqrt(u.X)
	phi := 2 * math.Pi * u.Y
	return SampleResult{
		Point: NewVec3(r*math.Cos(phi), r*math.Sin(phi), 0),
		PDF:   1 / math.Pi,
	}
}

// SampleUniformHemisphere draws a direction uniformly over the +z hemisphere.
// Density is 1/(2π) with respect to solid angle.
func SampleUniformHemisphere(u Vec2) SampleResult {
	cosTheta := u.X
	return SampleResult{
		Point: hemispherePoint(cosTheta, u.Y),
		PDF:   1 / (2 * math.Pi),
	}
}

// SampleCosineHemisphere draws a cosine-weighted direction over the +z hemisphere.
// Density is cos(θ)/π with respect to solid angle.
func SampleCosineHemisphere(u Vec2) SampleResult {
	cosTheta := math.Sqrt(u.X)
	return SampleResult{
		Point: hemispherePoint(cosTheta, u.Y),
		PDF:   cosTheta / math.Pi,
	}
}

func hemispherePoint(cosTheta, u2 float64) Vec3 {
	sinTheta := math.Sqrt(math.Max(0, 1-cosTheta*cosTheta))
	phi := 2 * math.Pi * u2
	return NewVec3(math.Cos(phi)*sinTheta, math.Sin(phi)*sinTheta, cosTheta)
}
