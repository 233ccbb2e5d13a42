package renderer

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/mrjoshuak/go-openexr/exr"

	"github.com/df07/go-ao-raytracer/pkg/core"
)

// ErrUnsupportedFormat is returned when an output extension has no writer
var ErrUnsupportedFormat = errors.New("renderer: unsupported image format")

// Save writes the image to path, choosing the format from its extension.
// Supported formats are .png (gamma corrected, 8 bit) and .exr (linear float).
func (img *Image) Save(path string) error {
	if err := CheckOutputFormat(path); err != nil {
		return err
	}

	if strings.ToLower(filepath.Ext(path)) == ".png" {
		return img.savePNG(path)
	}
	if err := exr.EncodeFile(path, img.ToEXR()); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// CheckOutputFormat reports whether Save can write path, so callers can
// reject a bad output name before spending time on a render
func CheckOutputFormat(path string) error {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".png", ".exr":
		return nil
	default:
		return fmt.Errorf("%w %q", ErrUnsupportedFormat, ext)
	}
}

func (img *Image) savePNG(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	if err := png.Encode(file, img.ToRGBA()); err != nil {
		return fmt.Errorf("failed to encode png: %w", err)
	}
	return file.Close()
}

// ToRGBA converts to a top-down 8-bit image with gamma 2 applied
func (img *Image) ToRGBA() *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, img.Width, img.Height))
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			out.SetRGBA(x, img.Height-1-y, vec3ToColor(img.At(x, y)))
		}
	}
	return out
}

// ToEXR converts to a top-down linear float image with opaque alpha
func (img *Image) ToEXR() *exr.RGBAImage {
	out := exr.NewRGBAImage(image.Rect(0, 0, img.Width, img.Height))
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			c := img.At(x, y)
			out.SetRGBA(x, img.Height-1-y, float32(c.X), float32(c.Y), float32(c.Z), 1)
		}
	}
	return out
}

func vec3ToColor(colorVec core.Vec3) color.RGBA {
	// Apply gamma correction (gamma = 2.0)
	colorVec = colorVec.GammaCorrect(2.0)

	// Clamp to valid color range
	colorVec = colorVec.Clamp(0.0, 1.0)

	return color.RGBA{
		R: uint8(255 * colorVec.X),
		G: uint8(255 * colorVec.Y),
		B: uint8(255 * colorVec.Z),
		A: 255,
	}
}
