package renderer

import (
	"context"
	"errors"
	"fmt"
	"image"
	"runtime"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/df07/go-ao-raytracer/pkg/core"
	"github.com/df07/go-ao-raytracer/pkg/integrator"
	"github.com/df07/go-ao-raytracer/pkg/scene"
)

// ErrInvalidResolution is returned for scenes whose camera has no pixels
var ErrInvalidResolution = errors.New("renderer: resolution must be positive")

var tracer = otel.Tracer("github.com/df07/go-ao-raytracer/pkg/renderer")

// Config contains rendering configuration
type Config struct {
	NumWorkers int // Number of parallel workers (0 = use CPU count, 1 = serial)
	TileSize   int // Size of each square tile in pixels
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		NumWorkers: 0,
		TileSize:   32,
	}
}

// Raytracer renders a scene by averaging whole-image samples
type Raytracer struct {
	scene         *scene.Scene
	integrator    integrator.Integrator
	width, height int
	numWorkers    int
	tiles         []Tile
	logger        core.Logger
}

// NewRaytracer prepares a scene for rendering
func NewRaytracer(sc *scene.Scene, config Config, logger core.Logger) (*Raytracer, error) {
	width, height := sc.Camera.Resolution()
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrInvalidResolution, width, height)
	}

	integratorInst, err := integrator.New(sc.Integrator)
	if err != nil {
		return nil, err
	}

	numWorkers := config.NumWorkers
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	tileSize := config.TileSize
	if tileSize <= 0 {
		tileSize = DefaultConfig().TileSize
	}
	if logger == nil {
		logger = core.NopLogger{}
	}

	return &Raytracer{
		scene:      sc,
		integrator: integratorInst,
		width:      width,
		height:     height,
		numWorkers: numWorkers,
		tiles:      NewTileGrid(width, height, tileSize),
		logger:     logger,
	}, nil
}

// TracePixel estimates the color of pixel (x, y) for one sample. The random
// stream depends only on the scene seed, the pixel and the sample index.
func (rt *Raytracer) TracePixel(x, y, sampleIndex int) core.Vec3 {
	sampler := core.NewTraceSampler(rt.scene.Seed, y*rt.width+x, sampleIndex)
	ray := rt.scene.Camera.GetRay(float64(x)+0.5, float64(y)+0.5, sampler)
	return rt.integrator.RayColor(ray, rt.scene.Objects, sampler)
}

// RenderSample renders sample number sampleIndex of every pixel
func (rt *Raytracer) RenderSample(ctx context.Context, sampleIndex int) (*Image, error) {
	img := NewImage(rt.width, rt.height)

	if rt.numWorkers == 1 {
		whole := Tile{Bounds: image.Rect(0, 0, rt.width, rt.height)}
		return img, rt.renderBounds(ctx, whole, img, sampleIndex)
	}

	return img, rt.renderTiles(ctx, rt.tiles, img, sampleIndex)
}

// Render accumulates the configured number of samples and returns their
// average. A cancelled context aborts the render and no image is returned.
func (rt *Raytracer) Render(ctx context.Context) (*Image, RenderStats, error) {
	numSamples := rt.scene.Integrator.NumSamples

	ctx, span := tracer.Start(ctx, "Render", trace.WithAttributes(
		attribute.Int("width", rt.width),
		attribute.Int("height", rt.height),
		attribute.Int("samples", numSamples),
		attribute.Int("workers", rt.numWorkers),
	))
	defer span.End()

	stats := RenderStats{
		Width:      rt.width,
		Height:     rt.height,
		Samples:    numSamples,
		Workers:    rt.numWorkers,
		Integrator: rt.scene.Integrator.Kind,
	}

	rt.logger.Printf("Rendering %dx%d, %d samples per pixel (using %d workers)...\n",
		rt.width, rt.height, numSamples, rt.numWorkers)

	buffer := NewImageBuffer(rt.width, rt.height)
	start := time.Now()

	for s := 0; s < numSamples; s++ {
		passStart := time.Now()

		img, err := rt.RenderSample(ctx, s)
		if err != nil {
			span.RecordError(err)
			rt.logger.Printf("Rendering cancelled during sample %d: %v\n", s+1, err)
			return nil, stats, err
		}
		if err := buffer.AddSample(img); err != nil {
			return nil, stats, err
		}

		passTime := time.Since(passStart)
		stats.PassTimes = append(stats.PassTimes, passTime)
		rt.logger.Printf("Sample %d/%d completed in %v\n", s+1, numSamples, passTime)
	}

	stats.Duration = time.Since(start)
	stats.CameraRays = rt.width * rt.height * numSamples
	return buffer.Average(), stats, nil
}
