// Package suggest talks to the chat-completion model behind the quiz and
// DIY endpoints and turns its free-text answers into typed values.
package suggest

import (
	"errors"
	"regexp"
	"strings"
)

// ErrExtractionFailed means no JSON array could be located in the model text.
var ErrExtractionFailed = errors.New("no JSON array in model output")

// ParseError is returned when model output cannot be turned into values.
// Err, when set, is the underlying cause (ErrExtractionFailed, for one).
type ParseError struct {
	Raw    string
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	return "cannot parse model output: " + e.Reason
}

func (e *ParseError) Unwrap() error { return e.Err }

var arrayOfObjects = regexp.MustCompile(`\[\s*\{[\s\S]*\}\s*\]`)

// Extract returns the first region of text that looks like a JSON array of
// objects. When that fails but the text mentions an object, the span from
// the first '[' to the last ']' is tried instead.
func Extract(text string) (string, bool) {
	if m := arrayOfObjects.FindString(text); m != "" {
		return m, true
	}
	if !strings.Contains(text, "{") {
		return "", false
	}
	start := strings.Index(text, "[")
	end := strings.LastIndex(text, "]")
	if start == -1 || end <= start {
		return "", false
	}
	return text[start : end+1], true
}
