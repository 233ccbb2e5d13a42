package core

import "math"

// Ray is a half-line with a valid parametric range [MinT, MaxT)
type Ray struct {
	Origin    Vec3
	Direction Vec3
	MinT      float64
	MaxT      float64
}

// NewRay creates a ray whose range starts just past the origin and is unbounded above
func NewRay(origin, direction Vec3) Ray {
	return Ray{
		Origin:    origin,
		Direction: direction,
		MinT:      Epsilon,
		MaxT:      math.Inf(1),
	}
}

// At returns the point at parameter t along the ray
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Multiply(t))
}

// InRange reports whether t lies within [MinT, MaxT)
func (r Ray) InRange(t float64) bool {
	return t >= r.MinT && t < r.MaxT
}

// WithMaxT returns a copy of the ray with its upper bound replaced
func (r Ray) WithMaxT(maxT float64) Ray {
	r.MaxT = maxT
	return r
}
