package loaders

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/df07/go-ao-raytracer/pkg/geometry"
	"github.com/df07/go-ao-raytracer/pkg/integrator"
	"github.com/df07/go-ao-raytracer/pkg/log"
	"github.com/df07/go-ao-raytracer/pkg/material"
	"github.com/df07/go-ao-raytracer/pkg/scene"
)

var logger = log.New("loaders")

type sceneJSON struct {
	Camera       json.RawMessage `json:"camera"`
	Integrator   json.RawMessage `json:"integrator"`
	Materials    json.RawMessage `json:"materials"`
	Textures     json.RawMessage `json:"textures"`
	Objects      json.RawMessage `json:"objects"`
	Seed         *uint64         `json:"seed"`
	Acceleration json.RawMessage `json:"acceleration structure"`
}

type cameraJSON struct {
	Resolution     *[2]int         `json:"resolution"`
	FocalDistance  *float64        `json:"focal distance"`
	VerticalFOV    *float64        `json:"vertical fov"`
	ApertureRadius *float64        `json:"aperture radius"`
	Transform      json.RawMessage `json:"transform"`
}

type integratorJSON struct {
	Kind           *string `json:"kind"`
	NumSamples     *int    `json:"number of samples"`
	RecursionLimit *int    `json:"ray recursion limit"`
}

type accelerationJSON struct {
	Kind          *string `json:"kind"`
	AxisSelection *string `json:"axis selection"`
}

type namedJSON struct {
	Name     *string   `json:"name"`
	Kind     *string   `json:"kind"`
	RGBColor *vec3JSON `json:"rgb color"`
}

type objectJSON struct {
	Shape    json.RawMessage `json:"shape"`
	Texture  *string         `json:"texture"`
	Material *string         `json:"material"`
}

type shapeJSON struct {
	Kind      *string         `json:"kind"`
	Center    *vec3JSON       `json:"center"`
	Radius    *float64        `json:"radius"`
	Width     *float64        `json:"width"`
	Height    *float64        `json:"height"`
	Transform json.RawMessage `json:"transform"`
}

// LoadScene reads and parses a JSON scene file
func LoadScene(filename string) (*scene.Scene, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene file: %w", err)
	}

	s, err := ParseScene(data)
	if err != nil {
		return nil, err
	}
	logger.Infof("loaded %s: %d objects, %s integrator", filename, s.Objects.Len(), s.Integrator.Kind)
	return s, nil
}

// ParseScene builds a scene from JSON. Every failure is a *ParseError.
func ParseScene(data []byte) (*scene.Scene, error) {
	var doc sceneJSON
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &ParseError{Msg: fmt.Sprintf("malformed scene json: %v", err)}
	}

	for _, required := range []struct {
		name string
		raw  json.RawMessage
	}{
		{"camera", doc.Camera},
		{"integrator", doc.Integrator},
		{"materials", doc.Materials},
		{"textures", doc.Textures},
		{"objects", doc.Objects},
	} {
		if isNull(required.raw) {
			return nil, &ParseError{Msg: fmt.Sprintf("missing required field %q", required.name)}
		}
	}

	seed := scene.DefaultSeed
	if doc.Seed != nil {
		seed = *doc.Seed
	}

	camera, err := parseCamera(doc.Camera)
	if err != nil {
		return nil, err
	}

	integratorConfig, err := parseIntegrator(doc.Integrator)
	if err != nil {
		return nil, err
	}

	accel, err := parseAcceleration(doc.Acceleration, seed)
	if err != nil {
		return nil, err
	}

	textures, err := parseTextures(doc.Textures)
	if err != nil {
		return nil, err
	}

	materials, err := parseMaterials(doc.Materials)
	if err != nil {
		return nil, err
	}

	objects, err := parseObjects(doc.Objects, textures, materials)
	if err != nil {
		return nil, err
	}

	return &scene.Scene{
		Camera:     camera,
		Objects:    scene.NewObjectGroup(objects, accel),
		Integrator: integratorConfig,
		Seed:       seed,
	}, nil
}

func parseCamera(raw json.RawMessage) (*geometry.Camera, error) {
	var c cameraJSON
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, newParseError(raw, "could not parse camera: %v", err)
	}

	switch {
	case c.Resolution == nil:
		return nil, newParseError(raw, "camera is missing %q", "resolution")
	case c.FocalDistance == nil:
		return nil, newParseError(raw, "camera is missing %q", "focal distance")
	case c.VerticalFOV == nil:
		return nil, newParseError(raw, "camera is missing %q", "vertical fov")
	case c.ApertureRadius == nil:
		return nil, newParseError(raw, "camera is missing %q", "aperture radius")
	}

	if c.Resolution[0] <= 0 || c.Resolution[1] <= 0 {
		return nil, newParseError(raw, "camera resolution must be positive")
	}
	if *c.VerticalFOV <= 0 || *c.VerticalFOV >= 180 {
		return nil, newParseError(raw, "vertical fov must be between 0 and 180 degrees")
	}
	if *c.FocalDistance <= 0 || *c.ApertureRadius < 0 {
		return nil, newParseError(raw, "focal distance must be positive and aperture radius non-negative")
	}

	tr, err := parseTransform(c.Transform)
	if err != nil {
		return nil, err
	}

	return geometry.NewCamera(geometry.CameraConfig{
		Width:          c.Resolution[0],
		Height:         c.Resolution[1],
		Transform:      tr,
		VFov:           *c.VerticalFOV,
		FocusDistance:  *c.FocalDistance,
		ApertureRadius: *c.ApertureRadius,
	}), nil
}

func parseIntegrator(raw json.RawMessage) (scene.IntegratorConfig, error) {
	var in integratorJSON
	if err := json.Unmarshal(raw, &in); err != nil {
		return scene.IntegratorConfig{}, newParseError(raw, "could not parse integrator: %v", err)
	}
	if in.Kind == nil {
		return scene.IntegratorConfig{}, newParseError(raw, "integrator is missing %q", "kind")
	}

	config := scene.IntegratorConfig{
		Kind:           *in.Kind,
		NumSamples:     scene.DefaultNumSamples,
		RecursionLimit: scene.DefaultRecursionLimit,
	}
	if in.NumSamples != nil {
		if *in.NumSamples <= 0 {
			return scene.IntegratorConfig{}, newParseError(raw, "number of samples must be positive")
		}
		config.NumSamples = *in.NumSamples
	}
	if in.RecursionLimit != nil {
		if *in.RecursionLimit < 0 {
			return scene.IntegratorConfig{}, newParseError(raw, "ray recursion limit must not be negative")
		}
		config.RecursionLimit = *in.RecursionLimit
	}

	if _, err := integrator.New(config); err != nil {
		return scene.IntegratorConfig{}, newParseError(raw, "invalid integrator kind %q", config.Kind)
	}
	return config, nil
}

func parseAcceleration(raw json.RawMessage, seed uint64) (scene.AccelerationConfig, error) {
	config := scene.DefaultAccelerationConfig()
	config.Seed = seed
	if isNull(raw) {
		return config, nil
	}

	var a accelerationJSON
	if err := json.Unmarshal(raw, &a); err != nil {
		return config, newParseError(raw, "could not parse acceleration structure: %v", err)
	}
	if a.Kind != nil {
		kind, err := scene.ParseAccelerationKind(*a.Kind)
		if err != nil {
			return config, newParseError(raw, "%v", err)
		}
		config.Kind = kind
	}
	if a.AxisSelection != nil {
		axis, err := scene.ParseAxisSelection(*a.AxisSelection)
		if err != nil {
			return config, newParseError(raw, "%v", err)
		}
		config.AxisSelection = axis
	}
	return config, nil
}

// parseNamedList decodes a list of {"name", "kind", ...} entries and rejects
// entries without a name or with a repeated one
func parseNamedList(raw json.RawMessage, listName string) ([]namedJSON, []json.RawMessage, error) {
	var elements []json.RawMessage
	if err := json.Unmarshal(raw, &elements); err != nil {
		return nil, nil, newParseError(raw, "%s must be an array", listName)
	}

	entries := make([]namedJSON, len(elements))
	seen := make(map[string]bool, len(elements))
	for i, element := range elements {
		if err := json.Unmarshal(element, &entries[i]); err != nil {
			return nil, nil, newParseError(element, "could not parse entry in %s: %v", listName, err)
		}
		switch {
		case entries[i].Name == nil:
			return nil, nil, newParseError(element, "entry in %s is missing %q", listName, "name")
		case entries[i].Kind == nil:
			return nil, nil, newParseError(element, "entry in %s is missing %q", listName, "kind")
		case seen[*entries[i].Name]:
			return nil, nil, newParseError(element, "duplicate name %q in %s", *entries[i].Name, listName)
		}
		seen[*entries[i].Name] = true
	}
	return entries, elements, nil
}

func parseTextures(raw json.RawMessage) (map[string]material.Texture, error) {
	entries, elements, err := parseNamedList(raw, "textures")
	if err != nil {
		return nil, err
	}

	textures := make(map[string]material.Texture, len(entries))
	for i, entry := range entries {
		switch *entry.Kind {
		case "constant":
			if entry.RGBColor == nil {
				return nil, newParseError(elements[i], "constant texture is missing %q", "rgb color")
			}
			textures[*entry.Name] = material.NewConstantTexture(entry.RGBColor.toVec3())
		default:
			return nil, newParseError(elements[i], "unknown texture kind %q", *entry.Kind)
		}
	}
	return textures, nil
}

func parseMaterials(raw json.RawMessage) (map[string]material.Material, error) {
	entries, elements, err := parseNamedList(raw, "materials")
	if err != nil {
		return nil, err
	}

	materials := make(map[string]material.Material, len(entries))
	for i, entry := range entries {
		switch *entry.Kind {
		case "lambertian":
			materials[*entry.Name] = material.NewLambertian()
		default:
			return nil, newParseError(elements[i], "unknown material kind %q", *entry.Kind)
		}
	}
	return materials, nil
}

func parseObjects(raw json.RawMessage, textures map[string]material.Texture, materials map[string]material.Material) ([]scene.Object, error) {
	var elements []json.RawMessage
	if err := json.Unmarshal(raw, &elements); err != nil {
		return nil, newParseError(raw, "objects must be an array")
	}

	objects := make([]scene.Object, 0, len(elements))
	for _, element := range elements {
		var o objectJSON
		if err := json.Unmarshal(element, &o); err != nil {
			return nil, newParseError(element, "could not parse object: %v", err)
		}
		if isNull(o.Shape) || o.Texture == nil || o.Material == nil {
			return nil, newParseError(element, "object needs shape, texture and material")
		}

		shape, err := parseShape(o.Shape)
		if err != nil {
			return nil, err
		}
		texture, ok := textures[*o.Texture]
		if !ok {
			return nil, newParseError(element, "no texture named %q", *o.Texture)
		}
		mat, ok := materials[*o.Material]
		if !ok {
			return nil, newParseError(element, "no material named %q", *o.Material)
		}

		objects = append(objects, scene.Object{
			Shape:    shape,
			Texture:  texture,
			Material: mat,
		})
	}
	return objects, nil
}

func parseShape(raw json.RawMessage) (geometry.Shape, error) {
	var s shapeJSON
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, newParseError(raw, "could not parse shape: %v", err)
	}
	if s.Kind == nil {
		return nil, newParseError(raw, "shape is missing %q", "kind")
	}

	switch *s.Kind {
	case "sphere":
		if s.Center == nil || s.Radius == nil {
			return nil, newParseError(raw, "sphere needs center and radius")
		}
		if *s.Radius <= 0 {
			return nil, newParseError(raw, "sphere radius must be positive")
		}
		tr, err := parseTransform(s.Transform)
		if err != nil {
			return nil, err
		}
		return geometry.NewSphere(s.Center.toVec3(), *s.Radius, tr), nil

	case "quad":
		if s.Width == nil || s.Height == nil {
			return nil, newParseError(raw, "quad needs width and height")
		}
		if *s.Width <= 0 || *s.Height <= 0 {
			return nil, newParseError(raw, "quad width and height must be positive")
		}
		tr, err := parseTransform(s.Transform)
		if err != nil {
			return nil, err
		}
		return geometry.NewQuad(*s.Width, *s.Height, tr), nil

	default:
		return nil, newParseError(raw, "unknown shape kind %q", *s.Kind)
	}
}
