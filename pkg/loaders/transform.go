package loaders

import (
	"bytes"
	"encoding/json"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/df07/go-ao-raytracer/pkg/core"
	"github.com/df07/go-ao-raytracer/pkg/transform"
)

type vec3JSON [3]float64

func (v vec3JSON) toVec3() core.Vec3 {
	return core.NewVec3(v[0], v[1], v[2])
}

type viewerJSON struct {
	LookFrom    *vec3JSON `json:"look_from"`
	LookAt      *vec3JSON `json:"look_at"`
	UpDirection *vec3JSON `json:"up_direction"`
}

type rotationJSON struct {
	Axis  *vec3JSON `json:"axis"`
	Angle *float64  `json:"angle"`
}

func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// singleMember returns the key and value of a one-member object
func singleMember(m map[string]json.RawMessage) (string, json.RawMessage) {
	for key, value := range m {
		return key, value
	}
	return "", nil
}

// parseTransform reads a transform that is either missing (identity),
// {"viewer": {...}} or {"simple sequence": ...}
func parseTransform(raw json.RawMessage) (transform.Transform, error) {
	if isNull(raw) {
		return transform.Identity(), nil
	}

	var wrapper map[string]json.RawMessage
	if err := json.Unmarshal(raw, &wrapper); err != nil {
		return transform.Transform{}, newParseError(raw, "transform must be an object")
	}
	if len(wrapper) != 1 {
		return transform.Transform{}, newParseError(raw, "transform must have exactly one key, got %d", len(wrapper))
	}

	kind, body := singleMember(wrapper)
	switch kind {
	case "viewer":
		return parseViewer(body)
	case "simple sequence":
		return parseSequence(body)
	default:
		return transform.Transform{}, newParseError(raw, "unknown transform kind %q", kind)
	}
}

func parseViewer(raw json.RawMessage) (transform.Transform, error) {
	var v viewerJSON
	if err := json.Unmarshal(raw, &v); err != nil {
		return transform.Transform{}, newParseError(raw, "could not parse viewer transform: %v", err)
	}
	if v.LookFrom == nil || v.LookAt == nil || v.UpDirection == nil {
		return transform.Transform{}, newParseError(raw, "viewer transform needs look_from, look_at and up_direction")
	}

	t, err := transform.Viewer(v.LookFrom.toVec3(), v.LookAt.toVec3(), v.UpDirection.toVec3())
	if err != nil {
		return transform.Transform{}, newParseError(raw, "invalid viewer transform: %v", err)
	}
	return t, nil
}

// parseSequence accepts either an object whose members are applied in the
// order written, or an array of single-member objects
func parseSequence(raw json.RawMessage) (transform.Transform, error) {
	var steps []mgl64.Mat4
	var err error

	switch trimmed := bytes.TrimSpace(raw); {
	case len(trimmed) > 0 && trimmed[0] == '{':
		steps, err = parseSequenceObject(raw)
	case len(trimmed) > 0 && trimmed[0] == '[':
		steps, err = parseSequenceArray(raw)
	default:
		return transform.Transform{}, newParseError(raw, "simple sequence must be an object or an array")
	}
	if err != nil {
		return transform.Transform{}, err
	}

	t, err := transform.FromSequence(steps...)
	if err != nil {
		return transform.Transform{}, newParseError(raw, "invalid simple sequence: %v", err)
	}
	return t, nil
}

func parseSequenceObject(raw json.RawMessage) ([]mgl64.Mat4, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	if _, err := dec.Token(); err != nil {
		return nil, newParseError(raw, "could not parse simple sequence: %v", err)
	}

	var steps []mgl64.Mat4
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, newParseError(raw, "could not parse simple sequence: %v", err)
		}
		key, _ := tok.(string)

		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, newParseError(raw, "could not parse simple sequence member %q: %v", key, err)
		}

		step, err := parseSequenceStep(key, value)
		if err != nil {
			return nil, err
		}
		steps = append(steps, step)
	}
	return steps, nil
}

func parseSequenceArray(raw json.RawMessage) ([]mgl64.Mat4, error) {
	var elements []map[string]json.RawMessage
	if err := json.Unmarshal(raw, &elements); err != nil {
		return nil, newParseError(raw, "simple sequence array must hold objects: %v", err)
	}

	steps := make([]mgl64.Mat4, 0, len(elements))
	for i, element := range elements {
		if len(element) != 1 {
			return nil, newParseError(raw, "simple sequence step %d must have exactly one key", i)
		}
		step, err := parseSequenceStep(singleMember(element))
		if err != nil {
			return nil, err
		}
		steps = append(steps, step)
	}
	return steps, nil
}

func parseSequenceStep(key string, raw json.RawMessage) (mgl64.Mat4, error) {
	switch key {
	case "rotation":
		var r rotationJSON
		if err := json.Unmarshal(raw, &r); err != nil || r.Axis == nil || r.Angle == nil {
			return mgl64.Mat4{}, newParseError(raw, "could not parse rotation, need axis and angle")
		}
		axis := r.Axis.toVec3()
		if axis.LengthSquared() == 0 {
			return mgl64.Mat4{}, newParseError(raw, "rotation axis must be non-zero")
		}
		return transform.Rotation(axis, *r.Angle), nil

	case "translation":
		var v vec3JSON
		if err := json.Unmarshal(raw, &v); err != nil {
			return mgl64.Mat4{}, newParseError(raw, "could not parse translation: %v", err)
		}
		return transform.Translation(v.toVec3()), nil

	case "scale":
		var v vec3JSON
		if err := json.Unmarshal(raw, &v); err != nil {
			return mgl64.Mat4{}, newParseError(raw, "could not parse scale: %v", err)
		}
		return transform.Scale(v.toVec3()), nil

	default:
		return mgl64.Mat4{}, newParseError(raw, "unknown simple transform %q", key)
	}
}
