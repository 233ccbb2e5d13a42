package loaders

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/df07/go-ao-raytracer/pkg/core"
	"github.com/df07/go-ao-raytracer/pkg/integrator"
	"github.com/df07/go-ao-raytracer/pkg/scene"
)

const validScene = `{
  "camera": {
    "resolution": [40, 30],
    "focal distance": 5,
    "vertical fov": 40,
    "aperture radius": 0.05,
    "transform": {"viewer": {"look_from": [0, 0, 5], "look_at": [0, 0, 0], "up_direction": [0, 1, 0]}}
  },
  "integrator": {"kind": "ambient occlusion", "number of samples": 8},
  "materials": [{"name": "matte", "kind": "lambertian"}],
  "textures": [
    {"name": "white", "kind": "constant", "rgb color": [1, 1, 1]},
    {"name": "red", "kind": "constant", "rgb color": [0.8, 0.1, 0.1]}
  ],
  "objects": [
    {"shape": {"kind": "sphere", "center": [0, 0, 0], "radius": 1}, "texture": "red", "material": "matte"},
    {"shape": {"kind": "quad", "width": 10, "height": 10,
               "transform": {"simple sequence": {"translation": [-5, -5, 0], "rotation": {"axis": [1, 0, 0], "angle": -90}}}},
     "texture": "white", "material": "matte"}
  ]
}`

func TestParseScene_Valid(t *testing.T) {
	s, err := ParseScene([]byte(validScene))
	if err != nil {
		t.Fatalf("ParseScene: %v", err)
	}

	width, height := s.Camera.Resolution()
	if width != 40 || height != 30 {
		t.Errorf("resolution = %dx%d, want 40x30", width, height)
	}

	wantIntegrator := scene.IntegratorConfig{
		Kind:           integrator.KindAmbientOcclusion,
		NumSamples:     8,
		RecursionLimit: scene.DefaultRecursionLimit,
	}
	if diff := cmp.Diff(wantIntegrator, s.Integrator); diff != "" {
		t.Errorf("integrator config (-want +got):\n%s", diff)
	}
	if s.Seed != scene.DefaultSeed {
		t.Errorf("Seed = %d, want default %d", s.Seed, scene.DefaultSeed)
	}
	if s.Objects.Len() != 2 {
		t.Fatalf("got %d objects, want 2", s.Objects.Len())
	}
	if got := s.Objects.Acceleration().Kind; got != scene.AccelerationNone {
		t.Errorf("acceleration = %v, want none", got)
	}

	// The quad is laid flat on y=0, so a downward ray beside the sphere hits it
	hit := s.Objects.Intersect(core.NewRay(core.NewVec3(3, 5, 0), core.NewVec3(0, -1, 0)))
	if !hit.Hit() || hit.Handle != 1 {
		t.Fatalf("expected to hit the quad, got %+v", hit)
	}
	if diff := cmp.Diff(core.NewVec3(3, 0, 0), hit.Info.Point, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Errorf("quad hit point (-want +got):\n%s", diff)
	}

	obj := s.Objects.Object(0)
	if got := obj.Texture.ValueAt(core.Ray{}, core.Vec2{}); got != core.NewVec3(0.8, 0.1, 0.1) {
		t.Errorf("sphere texture = %v, want red", got)
	}
}

func TestParseScene_OptionalSettings(t *testing.T) {
	doc := strings.Replace(validScene, `"integrator": {"kind": "ambient occlusion", "number of samples": 8},`,
		`"integrator": {"kind": "path tracing", "ray recursion limit": 3},
		 "seed": 42,
		 "acceleration structure": {"kind": "bvh", "axis selection": "alternating"},`, 1)

	s, err := ParseScene([]byte(doc))
	if err != nil {
		t.Fatalf("ParseScene: %v", err)
	}

	want := scene.IntegratorConfig{Kind: integrator.KindPathTracing, NumSamples: scene.DefaultNumSamples, RecursionLimit: 3}
	if diff := cmp.Diff(want, s.Integrator); diff != "" {
		t.Errorf("integrator config (-want +got):\n%s", diff)
	}
	if s.Seed != 42 {
		t.Errorf("Seed = %d, want 42", s.Seed)
	}

	wantAccel := scene.AccelerationConfig{Kind: scene.AccelerationBVH, AxisSelection: scene.AxisAlternating, Seed: 42}
	if diff := cmp.Diff(wantAccel, s.Objects.Acceleration()); diff != "" {
		t.Errorf("acceleration config (-want +got):\n%s", diff)
	}
	if s.Objects.BVH() == nil {
		t.Error("expected a BVH to be built")
	}
}

func TestParseScene_Errors(t *testing.T) {
	tests := []struct {
		name    string
		old     string // replaced in validScene
		new     string
		wantMsg string
	}{
		{"malformed json", `"camera": {`, `"camera": {{`, "malformed scene json"},
		{"missing camera field", `"vertical fov": 40,`, ``, `"vertical fov"`},
		{"zero resolution", `[40, 30]`, `[0, 30]`, "resolution must be positive"},
		{"unknown integrator", `"ambient occlusion"`, `"photon mapping"`, `invalid integrator kind "photon mapping"`},
		{"negative samples", `"number of samples": 8`, `"number of samples": -1`, "number of samples"},
		{"unknown material kind", `"kind": "lambertian"`, `"kind": "metal"`, `unknown material kind "metal"`},
		{"unknown texture kind", `"kind": "constant", "rgb color": [1, 1, 1]`, `"kind": "checker"`, `unknown texture kind "checker"`},
		{"texture without color", `"rgb color": [1, 1, 1]`, `"colour": [1, 1, 1]`, `"rgb color"`},
		{"duplicate texture", `"name": "red"`, `"name": "white"`, `duplicate name "white"`},
		{"dangling texture", `"texture": "red"`, `"texture": "blue"`, `no texture named "blue"`},
		{"dangling material", `"texture": "red", "material": "matte"`, `"texture": "red", "material": "glossy"`, `no material named "glossy"`},
		{"unknown shape", `"kind": "sphere"`, `"kind": "torus"`, `unknown shape kind "torus"`},
		{"negative radius", `"radius": 1`, `"radius": -1`, "radius must be positive"},
		{"unknown transform", `{"simple sequence":`, `{"affine":`, `unknown transform kind "affine"`},
		{"unknown sequence step", `"translation": [-5, -5, 0]`, `"shear": [1, 0, 0]`, `unknown simple transform "shear"`},
		{"degenerate scale", `"translation": [-5, -5, 0]`, `"scale": [1, 0, 1]`, "invalid simple sequence"},
		{"viewer missing up", `, "up_direction": [0, 1, 0]`, ``, "up_direction"},
		{"bad acceleration", `"number of samples": 8}`, `"number of samples": 8}, "acceleration structure": {"kind": "kd-tree"}`, "kd-tree"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := strings.Replace(validScene, tt.old, tt.new, 1)
			if doc == validScene {
				t.Fatalf("test case did not modify the scene: %q not found", tt.old)
			}

			_, err := ParseScene([]byte(doc))
			var parseErr *ParseError
			if !errors.As(err, &parseErr) {
				t.Fatalf("expected *ParseError, got %T: %v", err, err)
			}
			if !strings.Contains(parseErr.Error(), tt.wantMsg) {
				t.Errorf("error %q does not mention %q", parseErr.Error(), tt.wantMsg)
			}
		})
	}
}

func TestParseScene_MissingSections(t *testing.T) {
	for _, section := range []string{"camera", "integrator", "materials", "textures", "objects"} {
		t.Run(section, func(t *testing.T) {
			var doc map[string]json.RawMessage
			if err := json.Unmarshal([]byte(validScene), &doc); err != nil {
				t.Fatalf("Unmarshal: %v", err)
			}
			delete(doc, section)
			data, err := json.Marshal(doc)
			if err != nil {
				t.Fatalf("Marshal: %v", err)
			}

			_, err = ParseScene(data)
			var parseErr *ParseError
			if !errors.As(err, &parseErr) {
				t.Fatalf("expected *ParseError, got %v", err)
			}
			if want := `missing required field "` + section + `"`; parseErr.Msg != want {
				t.Errorf("Msg = %q, want %q", parseErr.Msg, want)
			}
		})
	}
}

func TestParseError_CarriesFragment(t *testing.T) {
	doc := strings.Replace(validScene, `"texture": "red"`, `"texture": "blue"`, 1)
	_, err := ParseScene([]byte(doc))

	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected *ParseError, got %v", err)
	}
	if !strings.Contains(parseErr.JSON, `"texture":"blue"`) {
		t.Errorf("fragment should be the compacted object, got %s", parseErr.JSON)
	}
}

func TestLoadScene(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.json")
	if err := os.WriteFile(path, []byte(validScene), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	s, err := LoadScene(path)
	if err != nil {
		t.Fatalf("LoadScene: %v", err)
	}
	if s.Objects.Len() != 2 {
		t.Errorf("got %d objects, want 2", s.Objects.Len())
	}

	if _, err := LoadScene(filepath.Join(t.TempDir(), "missing.json")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected os.ErrNotExist for a missing file, got %v", err)
	}
}
