package geometry

import (
	"math"

	"github.com/df07/go-ao-raytracer/pkg/core"
	"github.com/df07/go-ao-raytracer/pkg/transform"
)

// Sphere is a sphere in local space placed in the world by a transform
type Sphere struct {
	Center    core.Vec3 // Local-space center
	Radius    float64
	Transform transform.Transform
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64, tr transform.Transform) *Sphere {
	return &Sphere{
		Center:    center,
		Radius:    radius,
		Transform: tr,
	}
}

// Intersect tests if a ray intersects with the sphere
func (s *Sphere) Intersect(ray core.Ray) IntersectionInfo {
	local := s.Transform.RayToLocal(ray)

	// Quadratic equation coefficients: at² + bt + c = 0
	oc := local.Origin.Subtract(s.Center)
	a := local.Direction.Dot(local.Direction)
	b := 2 * local.Direction.Dot(oc)
	c := oc.Dot(oc) - s.Radius*s.Radius

	// discriminant/4a is r² minus the squared distance from the center to the
	// ray's line, so the grazing tolerance does not depend on the ray's scale
	discriminant := b*b - 4*a*c
	if core.IsZero(discriminant / (4 * a * s.Radius * s.Radius)) {
		discriminant = 0
	}
	if discriminant < 0 {
		return NoIntersection()
	}

	// Try the closer root first, then the farther one for rays starting inside
	sqrtD := math.Sqrt(discriminant)
	t := (-b - sqrtD) / (2 * a)
	if !local.InRange(t) {
		t = (-b + sqrtD) / (2 * a)
		if !local.InRange(t) {
			return NoIntersection()
		}
	}

	// Re-project onto the exact surface to remove drift
	outward := local.At(t).Subtract(s.Center).Normalize()
	localPoint := s.Center.Add(outward.Multiply(s.Radius))

	hit := IntersectionInfo{
		Hit:   true,
		Point: s.Transform.PointToGlobal(localPoint),
		T:     t,
		UV:    sphereUV(outward),
	}
	hit.SetFaceNormal(ray, s.Transform.NormalToGlobal(outward))
	return hit
}

// sphereUV maps a unit direction to (φ/2π, θ/π), θ measured from local +z
func sphereUV(d core.Vec3) core.Vec2 {
	phi := math.Atan2(d.Y, d.X)
	if phi < 0 {
		phi += 2 * math.Pi
	}
	theta := math.Acos(max(-1, min(1, d.Z)))
	return core.NewVec2(phi/(2*math.Pi), theta/math.Pi)
}

// BoundingBox returns the world-space bounding box of the transformed sphere
func (s *Sphere) BoundingBox() core.AABB {
	radius := core.NewVec3(s.Radius, s.Radius, s.Radius)
	return s.Transform.BoundsToGlobal(core.NewAABB(
		s.Center.Subtract(radius),
		s.Center.Add(radius),
	))
}
