package loaders

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ParseError reports a scene file that could not be turned into a scene.
// JSON holds the compacted fragment that was being parsed, if any.
type ParseError struct {
	Msg  string
	JSON string
}

func (e *ParseError) Error() string {
	if e.JSON == "" {
		return "scene parse error: " + e.Msg
	}
	return fmt.Sprintf("scene parse error: %s in %s", e.Msg, e.JSON)
}

func newParseError(raw json.RawMessage, format string, args ...interface{}) *ParseError {
	fragment := string(raw)
	var compacted bytes.Buffer
	if err := json.Compact(&compacted, raw); err == nil {
		fragment = compacted.String()
	}

	// Keep messages readable when a whole object list is at fault
	const maxFragment = 200
	if len(fragment) > maxFragment {
		fragment = fragment[:maxFragment] + "..."
	}

	return &ParseError{
		Msg:  fmt.Sprintf(format, args...),
		JSON: fragment,
	}
}
