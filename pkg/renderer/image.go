package renderer

import (
	"errors"
	"fmt"

	"github.com/df07/go-ao-raytracer/pkg/core"
)

// ErrDimensionMismatch is returned when images of different sizes are combined
var ErrDimensionMismatch = errors.New("renderer: image dimensions do not match")

// Image is a grid of linear RGB pixels. Pixel (0,0) is the bottom-left corner
// and y grows upward, matching the camera's image plane.
type Image struct {
	Width, Height int
	Pixels        []core.Vec3 // Row-major, bottom row first
}

// NewImage creates a black image
func NewImage(width, height int) *Image {
	return &Image{
		Width:  width,
		Height: height,
		Pixels: make([]core.Vec3, width*height),
	}
}

// At returns the color of pixel (x, y)
func (img *Image) At(x, y int) core.Vec3 {
	return img.Pixels[y*img.Width+x]
}

// Set stores the color of pixel (x, y)
func (img *Image) Set(x, y int, c core.Vec3) {
	img.Pixels[y*img.Width+x] = c
}

// ImageBuffer accumulates whole-image samples and averages them at the end
type ImageBuffer struct {
	accum *Image
	count int
}

// NewImageBuffer creates an empty buffer for images of the given size
func NewImageBuffer(width, height int) *ImageBuffer {
	return &ImageBuffer{accum: NewImage(width, height)}
}

// AddSample adds every pixel of sample into the buffer and counts one sample
func (b *ImageBuffer) AddSample(sample *Image) error {
	if sample.Width != b.accum.Width || sample.Height != b.accum.Height {
		return fmt.Errorf("%w: buffer %dx%d, sample %dx%d", ErrDimensionMismatch,
			b.accum.Width, b.accum.Height, sample.Width, sample.Height)
	}

	for i, c := range sample.Pixels {
		b.accum.Pixels[i] = b.accum.Pixels[i].Add(c)
	}
	b.count++
	return nil
}

// Count returns the number of samples added so far
func (b *ImageBuffer) Count() int {
	return b.count
}

// Average returns a new image holding the mean of all samples.
// An empty buffer averages to black.
func (b *ImageBuffer) Average() *Image {
	avg := NewImage(b.accum.Width, b.accum.Height)
	if b.count == 0 {
		return avg
	}

	n := float64(b.count)
	for i, c := range b.accum.Pixels {
		avg.Pixels[i] = core.NewVec3(c.X/n, c.Y/n, c.Z/n)
	}
	return avg
}
