package scene

import (
	"github.com/df07/go-ao-raytracer/pkg/core"
	"github.com/df07/go-ao-raytracer/pkg/geometry"
	"github.com/df07/go-ao-raytracer/pkg/material"
)

// Handle identifies an Object inside its ObjectGroup
type Handle int

// NoHandle marks an intersection that found no object
const NoHandle Handle = -1

// Object couples a shape with its surface description.
// Objects are read-only once their group is built.
type Object struct {
	Shape    geometry.Shape
	Texture  material.Texture
	Material material.Material
}

// Scatter asks the object's material for one outgoing ray at hit
func (o *Object) Scatter(rayIn core.Ray, hit geometry.IntersectionInfo, sampler core.Sampler) material.ScatterResult {
	return o.Material.Scatter(rayIn, hit, o.Texture, sampler)
}

// Intersection is the result of a nearest-hit query on an ObjectGroup
type Intersection struct {
	Handle Handle
	Info   geometry.IntersectionInfo
}

// Hit reports whether any object was found
func (i Intersection) Hit() bool {
	return i.Handle != NoHandle
}

func noIntersection() Intersection {
	return Intersection{Handle: NoHandle, Info: geometry.NoIntersection()}
}
