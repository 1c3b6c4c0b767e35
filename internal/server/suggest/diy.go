package suggest

import (
	"math"
	"strconv"

	"github.com/tidwall/gjson"
)

const (
	minScore = 1
	maxScore = 10
)

// Suggestion is one DIY project. A suggestion carrying Error is the
// diagnostic placeholder used when the model output could not be read.
type Suggestion struct {
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	Usability   *int   `json:"usability,omitempty"`
	EcoFriendly *int   `json:"ecoFriendly,omitempty"`
	Fun         *int   `json:"fun,omitempty"`
	Error       string `json:"error,omitempty"`
	Raw         string `json:"raw,omitempty"`
}

// ParseSuggestions reads a suggestion array out of model text. Scores that
// are present are clamped to 1..10; missing, non-numeric or non-finite
// ones stay nil.
func ParseSuggestions(text string) ([]Suggestion, error) {
	elems, err := extractObjects(text)
	if err != nil {
		return nil, err
	}

	out := make([]Suggestion, 0, len(elems))
	for _, el := range elems {
		out = append(out, Suggestion{
			Name:        el.Get("name").String(),
			Description: el.Get("description").String(),
			Usability:   score(el.Get("usability")),
			EcoFriendly: score(el.Get("ecoFriendly")),
			Fun:         score(el.Get("fun")),
		})
	}
	return out, nil
}

func score(r gjson.Result) *int {
	var v float64
	switch r.Type {
	case gjson.Number:
		v = r.Float()
	case gjson.String:
		f, err := strconv.ParseFloat(r.Str, 64)
		if err != nil {
			return nil
		}
		v = f
	default:
		return nil
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	n := int(min(max(v, minScore), maxScore))
	return &n
}
