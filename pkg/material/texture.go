package material

import (
	"github.com/df07/go-ao-raytracer/pkg/core"
)

// Texture provides spatially-varying colors for materials
type Texture interface {
	// ValueAt returns the color seen by the incoming ray at the given texture coordinates
	ValueAt(rayIn core.Ray, uv core.Vec2) core.Vec3
}

// ConstantTexture is a single uniform color
type ConstantTexture struct {
	Color core.Vec3
}

// NewConstantTexture creates a new constant texture
func NewConstantTexture(color core.Vec3) *ConstantTexture {
	return &ConstantTexture{Color: color}
}

// ValueAt returns the constant color regardless of ray or coordinates
func (c *ConstantTexture) ValueAt(rayIn core.Ray, uv core.Vec2) core.Vec3 {
	return c.Color
}
