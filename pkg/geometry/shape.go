package geometry

import (
	"math"

	"github.com/df07/go-ao-raytracer/pkg/core"
)

// IntersectionInfo describes where a ray met a surface, in world space
type IntersectionInfo struct {
	Hit       bool
	Point     core.Vec3 // Point of intersection
	T         float64   // Parameter t along the ray; +Inf when there is no hit
	Normal    core.Vec3 // Surface normal facing the incoming ray, not necessarily unit length
	FrontFace bool      // Whether the ray hit the outward-facing side
	UV        core.Vec2 // Texture coordinates
}

// NoIntersection returns the miss result
func NoIntersection() IntersectionInfo {
	return IntersectionInfo{T: math.Inf(1)}
}

// SetFaceNormal sets the normal vector and determines front/back face
func (h *IntersectionInfo) SetFaceNormal(ray core.Ray, outwardNormal core.Vec3) {
	h.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if h.FrontFace {
		h.Normal = outwardNormal
	} else {
		h.Normal = outwardNormal.Negate()
	}
}

// Shape is a transformed primitive that can be intersected with world-space rays
type Shape interface {
	Intersect(ray core.Ray) IntersectionInfo
	BoundingBox() core.AABB
}
