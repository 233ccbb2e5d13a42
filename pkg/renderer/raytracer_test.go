package renderer

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/df07/go-ao-raytracer/pkg/core"
	"github.com/df07/go-ao-raytracer/pkg/geometry"
	"github.com/df07/go-ao-raytracer/pkg/integrator"
	"github.com/df07/go-ao-raytracer/pkg/material"
	"github.com/df07/go-ao-raytracer/pkg/scene"
	"github.com/df07/go-ao-raytracer/pkg/transform"
)

// sphereScene places one white diffuse sphere on the camera's forward axis.
// The camera sits at the origin looking down -z.
func sphereScene(width, height, samples int, vfov float64) *scene.Scene {
	objects := []scene.Object{{
		Shape:    geometry.NewSphere(core.NewVec3(0, 0, -3), 1, transform.Identity()),
		Texture:  material.NewConstantTexture(core.White),
		Material: material.NewLambertian(),
	}}

	return &scene.Scene{
		Camera: geometry.NewCamera(geometry.CameraConfig{
			Width:          width,
			Height:         height,
			Transform:      transform.Identity(),
			VFov:           vfov,
			FocusDistance:  3,
			ApertureRadius: 0,
		}),
		Objects: scene.NewObjectGroup(objects, scene.DefaultAccelerationConfig()),
		Integrator: scene.IntegratorConfig{
			Kind:           integrator.KindAmbientOcclusion,
			NumSamples:     samples,
			RecursionLimit: scene.DefaultRecursionLimit,
		},
		Seed: scene.DefaultSeed,
	}
}

func TestNewRaytracer_Errors(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*scene.Scene)
		wantErr error
	}{
		{
			name: "zero width",
			modify: func(s *scene.Scene) {
				s.Camera = geometry.NewCamera(geometry.CameraConfig{Width: 0, Height: 4, Transform: transform.Identity(), VFov: 40, FocusDistance: 1})
			},
			wantErr: ErrInvalidResolution,
		},
		{
			name:    "unknown integrator",
			modify:  func(s *scene.Scene) { s.Integrator.Kind = "photon mapping" },
			wantErr: integrator.ErrUnknownKind,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc := sphereScene(4, 4, 1, 40)
			tt.modify(sc)
			_, err := NewRaytracer(sc, DefaultConfig(), nil)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestRaytracer_SphereHitsAreWhiteAndMissesBlack(t *testing.T) {
	// At 60 degrees the sphere covers the centre but not the corners
	rt, err := NewRaytracer(sphereScene(16, 16, 4, 60), DefaultConfig(), nil)
	if err != nil {
		t.Fatalf("NewRaytracer: %v", err)
	}

	img, stats, err := rt.Render(context.Background())
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	tests := []struct {
		name string
		x, y int
		want core.Vec3
	}{
		{"centre", 8, 8, core.White},
		{"bottom left", 0, 0, core.Black},
		{"top right", 15, 15, core.Black},
	}
	for _, tt := range tests {
		if got := img.At(tt.x, tt.y); got != tt.want {
			t.Errorf("%s pixel (%d,%d) = %v, want %v", tt.name, tt.x, tt.y, got, tt.want)
		}
	}

	if stats.CameraRays != 16*16*4 {
		t.Errorf("CameraRays = %d, want %d", stats.CameraRays, 16*16*4)
	}
	if len(stats.PassTimes) != 4 {
		t.Errorf("recorded %d passes, want 4", len(stats.PassTimes))
	}
}

func TestRaytracer_FrameFilledBySphereIsWhite(t *testing.T) {
	// A narrow field of view puts the sphere in every pixel
	rt, err := NewRaytracer(sphereScene(8, 6, 2, 10), DefaultConfig(), nil)
	if err != nil {
		t.Fatalf("NewRaytracer: %v", err)
	}

	img, _, err := rt.Render(context.Background())
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if diff := cmp.Diff(filledImage(8, 6, core.White), img); diff != "" {
		t.Errorf("expected an all-white image (-want +got):\n%s", diff)
	}
}

func TestRaytracer_SerialMatchesParallel(t *testing.T) {
	render := func(workers, tileSize int) *Image {
		t.Helper()
		rt, err := NewRaytracer(sphereScene(23, 17, 3, 60), Config{NumWorkers: workers, TileSize: tileSize}, nil)
		if err != nil {
			t.Fatalf("NewRaytracer: %v", err)
		}
		img, _, err := rt.Render(context.Background())
		if err != nil {
			t.Fatalf("Render: %v", err)
		}
		return img
	}

	serial := render(1, 32)
	for _, cfg := range []struct{ workers, tileSize int }{{2, 4}, {4, 5}, {8, 32}} {
		if diff := cmp.Diff(serial, render(cfg.workers, cfg.tileSize)); diff != "" {
			t.Errorf("workers=%d tile=%d differs from serial render (-serial +parallel):\n%s",
				cfg.workers, cfg.tileSize, diff)
		}
	}
}

func TestRaytracer_SameSeedReproducesSample(t *testing.T) {
	render := func(seed uint64) *Image {
		sc := sphereScene(16, 16, 1, 60)
		sc.Seed = seed
		rt, err := NewRaytracer(sc, Config{NumWorkers: 1}, nil)
		if err != nil {
			t.Fatalf("NewRaytracer: %v", err)
		}
		img, err := rt.RenderSample(context.Background(), 0)
		if err != nil {
			t.Fatalf("RenderSample: %v", err)
		}
		return img
	}

	if diff := cmp.Diff(render(7), render(7)); diff != "" {
		t.Errorf("same seed should reproduce the image:\n%s", diff)
	}
}

func TestRaytracer_Cancelled(t *testing.T) {
	for _, workers := range []int{1, 4} {
		rt, err := NewRaytracer(sphereScene(32, 32, 8, 60), Config{NumWorkers: workers, TileSize: 8}, nil)
		if err != nil {
			t.Fatalf("NewRaytracer: %v", err)
		}

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		img, _, err := rt.Render(ctx)
		if !errors.Is(err, context.Canceled) {
			t.Errorf("workers=%d: expected context.Canceled, got %v", workers, err)
		}
		if img != nil {
			t.Errorf("workers=%d: cancelled render returned an image", workers)
		}
	}
}

type recordingLogger struct {
	lines []string
}

func (l *recordingLogger) Printf(format string, args ...interface{}) {
	l.lines = append(l.lines, format)
}

func TestRaytracer_LogsEachSample(t *testing.T) {
	logger := &recordingLogger{}
	rt, err := NewRaytracer(sphereScene(4, 4, 3, 60), DefaultConfig(), logger)
	if err != nil {
		t.Fatalf("NewRaytracer: %v", err)
	}
	if _, _, err := rt.Render(context.Background()); err != nil {
		t.Fatalf("Render: %v", err)
	}

	// One header line then one line per sample
	if len(logger.lines) != 4 {
		t.Errorf("got %d log lines, want 4: %q", len(logger.lines), logger.lines)
	}
}

func TestRenderStats_WriteTable(t *testing.T) {
	stats := RenderStats{
		Width:      320,
		Height:     240,
		Samples:    16,
		Workers:    4,
		Integrator: integrator.KindAmbientOcclusion,
		CameraRays: 320 * 240 * 16,
		Duration:   2 * time.Second,
		PassTimes:  []time.Duration{100 * time.Millisecond, 300 * time.Millisecond},
	}

	var buf bytes.Buffer
	stats.WriteTable(&buf)
	out := buf.String()

	for _, want := range []string{"320x240", "ambient occlusion", "1228800", "614400", "300ms", "2s"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
	if got := stats.RaysPerSecond(); got != 614400 {
		t.Errorf("RaysPerSecond() = %v, want 614400", got)
	}
}
