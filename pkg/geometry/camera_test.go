package geometry

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/df07/go-ao-raytracer/pkg/core"
	"github.com/df07/go-ao-raytracer/pkg/transform"
)

func newTestCamera(aperture float64, tr transform.Transform) *Camera {
	return NewCamera(CameraConfig{
		Width:          200,
		Height:         100,
		Transform:      tr,
		VFov:           90,
		FocusDistance:  4,
		ApertureRadius: aperture,
	})
}

func TestCamera_CenterRay(t *testing.T) {
	camera := newTestCamera(0, transform.Identity())
	ray := camera.GetRay(100, 50, core.NewRandomSampler(core.NewRandom(1)))

	if diff := cmp.Diff(core.NewVec3(0, 0, -4), ray.Direction, cmpopts.EquateApprox(0, 1e-12)); diff != "" {
		t.Errorf("center ray direction mismatch (-want +got):\n%s", diff)
	}
	if ray.Origin != (core.Vec3{}) {
		t.Errorf("Expected pinhole origin at zero, got %v", ray.Origin)
	}
	if ray.MinT != core.Epsilon || !math.IsInf(ray.MaxT, 1) {
		t.Errorf("Expected default ray range, got [%v,%v)", ray.MinT, ray.MaxT)
	}
}

func TestCamera_ViewportCorners(t *testing.T) {
	// vfov 90 gives viewport height 2, width 4 for a 2:1 image
	camera := newTestCamera(0, transform.Identity())
	sampler := core.NewRandomSampler(core.NewRandom(1))

	tests := []struct {
		name     string
		px, py   float64
		expected core.Vec3
	}{
		{"bottom left", 0, 0, core.NewVec3(-2, -1, -1)},
		{"top right", 200, 100, core.NewVec3(2, 1, -1)},
		{"bottom right", 200, 0, core.NewVec3(2, -1, -1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := camera.GetRay(tt.px, tt.py, sampler)
			if diff := cmp.Diff(tt.expected.Multiply(4), ray.Direction, cmpopts.EquateApprox(0, 1e-12)); diff != "" {
				t.Errorf("direction mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCamera_ZeroApertureIsDeterministic(t *testing.T) {
	camera := newTestCamera(0, transform.Identity())

	reference := camera.GetRay(37.5, 12.5, core.NewRandomSampler(core.NewRandom(1)))
	for seed := uint64(2); seed < 50; seed++ {
		ray := camera.GetRay(37.5, 12.5, core.NewRandomSampler(core.NewRandom(seed)))
		if ray.Direction != reference.Direction || ray.Origin != reference.Origin {
			t.Fatalf("seed %d: ray %+v differs from %+v", seed, ray, reference)
		}
	}
}

func TestCamera_LensRaysConvergeOnFocalPlane(t *testing.T) {
	tr, err := transform.Viewer(core.NewVec3(1, 2, 3), core.NewVec3(0, 0, -10), core.NewVec3(0, 1, 0))
	if err != nil {
		t.Fatal(err)
	}
	pinhole := newTestCamera(0, tr)
	lens := newTestCamera(0.5, tr)

	sampler := core.NewRandomSampler(core.NewRandom(3))
	reference := pinhole.GetRay(60, 30, sampler)
	focus := reference.At(1)

	spread := 0.0
	for i := 0; i < 32; i++ {
		ray := lens.GetRay(60, 30, sampler)
		if d := ray.At(1).Subtract(focus).Length(); d > 1e-9 {
			t.Fatalf("lens ray misses focal point by %g", d)
		}
		spread = math.Max(spread, ray.Origin.Subtract(reference.Origin).Length())
		if spread > 0.5+1e-9 {
			t.Fatalf("lens origin %g from center exceeds aperture", spread)
		}
	}
	if spread == 0 {
		t.Error("Expected lens sampling to move the ray origin")
	}
}
