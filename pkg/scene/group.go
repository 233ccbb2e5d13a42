package scene

import (
	"github.com/df07/go-ao-raytracer/pkg/core"
)

// ObjectGroup owns an ordered arena of objects and answers nearest-hit queries
type ObjectGroup struct {
	objects []Object
	config  AccelerationConfig
	bvh     *BVH // nil for a linear scan
}

// NewObjectGroup builds a group over objects. The slice is copied, so the
// caller may reuse it.
func NewObjectGroup(objects []Object, config AccelerationConfig) *ObjectGroup {
	config.LogWarnings()

	g := &ObjectGroup{
		objects: append([]Object(nil), objects...),
		config:  config,
	}
	if config.Kind == AccelerationBVH {
		g.bvh = NewBVH(g.objects, config)
	}
	return g
}

// Len returns the number of objects
func (g *ObjectGroup) Len() int {
	return len(g.objects)
}

// Object returns the object for a handle
func (g *ObjectGroup) Object(h Handle) *Object {
	return &g.objects[h]
}

// Acceleration returns the configuration the group was built with
func (g *ObjectGroup) Acceleration() AccelerationConfig {
	return g.config
}

// BVH returns the hierarchy, or nil when the group scans linearly
func (g *ObjectGroup) BVH() *BVH {
	return g.bvh
}

// Intersect returns the closest hit within the ray's range. On equal
// distances the object with the lower handle wins.
func (g *ObjectGroup) Intersect(ray core.Ray) Intersection {
	if g.bvh != nil {
		return g.bvh.Intersect(ray)
	}
	return g.intersectLinear(ray)
}

func (g *ObjectGroup) intersectLinear(ray core.Ray) Intersection {
	closest := noIntersection()

	// Each hit shrinks the range, so a later object must be strictly closer
	for i := range g.objects {
		info := g.objects[i].Shape.Intersect(ray)
		if info.Hit {
			closest = Intersection{Handle: Handle(i), Info: info}
			ray.MaxT = info.T
		}
	}

	return closest
}
