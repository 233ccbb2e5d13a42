package geometry

import (
	"github.com/df07/go-ao-raytracer/pkg/core"
	"github.com/df07/go-ao-raytracer/pkg/transform"
)

// Quad is a rectangle spanning (0,0,0) to (Width,Height,0) in local space
type Quad struct {
	Width     float64
	Height    float64
	Transform transform.Transform
}

// NewQuad creates a new quad
func NewQuad(width, height float64, tr transform.Transform) *Quad {
	return &Quad{
		Width:     width,
		Height:    height,
		Transform: tr,
	}
}

// Intersect tests if a ray intersects with the quad
func (q *Quad) Intersect(ray core.Ray) IntersectionInfo {
	local := q.Transform.RayToLocal(ray)

	// Parallel to the z=0 plane: no intersection. The test uses the unit
	// direction so that scaling the quad does not change which rays count.
	if core.IsZero(local.Direction.Z / local.Direction.Length()) {
		return NoIntersection()
	}

	t := -local.Origin.Z / local.Direction.Z
	if !local.InRange(t) {
		return NoIntersection()
	}

	p := local.At(t)
	p.Z = 0
	if p.X < 0 || p.X > q.Width || p.Y < 0 || p.Y > q.Height {
		return NoIntersection()
	}

	hit := IntersectionInfo{
		Hit:   true,
		Point: q.Transform.PointToGlobal(p),
		T:     t,
		UV:    core.NewVec2(p.X/q.Width, p.Y/q.Height),
	}
	hit.SetFaceNormal(ray, q.Transform.NormalToGlobal(core.NewVec3(0, 0, 1)))
	return hit
}

// BoundingBox returns the world-space bounding box, padded so it never has zero thickness
func (q *Quad) BoundingBox() core.AABB {
	return q.Transform.BoundsToGlobal(core.NewAABB(
		core.NewVec3(0, 0, -core.Epsilon),
		core.NewVec3(q.Width, q.Height, core.Epsilon),
	))
}
