package geometry

import (
	"math"

	"github.com/df07/go-ao-raytracer/pkg/core"
	"github.com/df07/go-ao-raytracer/pkg/transform"
)

// CameraConfig contains the parameters of a thin-lens camera
type CameraConfig struct {
	Width, Height  int                 // Image resolution in pixels
	Transform      transform.Transform // Camera-to-world
	VFov           float64             // Vertical field of view in degrees
	FocusDistance  float64             // Distance to the plane of perfect focus
	ApertureRadius float64             // Lens radius; 0 gives a pinhole camera
}

// Camera generates world-space rays for image-plane positions
type Camera struct {
	config          CameraConfig
	viewportWidth   float64
	viewportHeight  float64
	lowerLeftCorner core.Vec3 // On the local image plane z = -1
}

// NewCamera creates a camera from the given configuration
func NewCamera(config CameraConfig) *Camera {
	viewportHeight := 2 * math.Tan(config.VFov*math.Pi/180/2)
	viewportWidth := viewportHeight * float64(config.Width) / float64(config.Height)

	return &Camera{
		config:          config,
		viewportWidth:   viewportWidth,
		viewportHeight:  viewportHeight,
		lowerLeftCorner: core.NewVec3(-viewportWidth/2, -viewportHeight/2, -1),
	}
}

// Resolution returns the image size in pixels
func (c *Camera) Resolution() (width, height int) {
	return c.config.Width, c.config.Height
}

// GetRay returns the ray for a real-valued pixel position, with (0,0) at the
// bottom-left of the image. The lens sample is drawn from sampler.
func (c *Camera) GetRay(px, py float64, sampler core.Sampler) core.Ray {
	s := px / float64(c.config.Width)
	t := py / float64(c.config.Height)

	planePoint := c.lowerLeftCorner.Add(core.NewVec3(s*c.viewportWidth, t*c.viewportHeight, 0))

	// Where the unperturbed ray through this pixel crosses the focal plane.
	// Scaling works because the image plane sits at z = -1.
	focalPoint := planePoint.Multiply(c.config.FocusDistance)

	lens := core.SampleUnitDisc(sampler.Get2D()).Point.Multiply(c.config.ApertureRadius)

	local := core.NewRay(lens, focalPoint.Subtract(lens))
	return c.config.Transform.RayToGlobal(local)
}
