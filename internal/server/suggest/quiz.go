package suggest

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/ecohack/internal/common"
	"github.com/tidwall/gjson"
)

const (
	optionsPerQuestion = 4
	fillerOption       = "None of the above"
)

type Question struct {
	ID          string   `json:"id"`
	Question    string   `json:"question"`
	Options     []string `json:"options"`
	AnswerIndex int      `json:"answerIndex"`
}

// ParseQuiz extracts a question array from model text and normalizes every
// element to exactly four options and a usable answer index.
func ParseQuiz(text string) ([]Question, error) {
	elems, err := extractObjects(text)
	if err != nil {
		return nil, err
	}

	out := make([]Question, 0, len(elems))
	for idx, el := range elems {
		q, err := normalizeQuestion(idx, el)
		if err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, nil
}

// extractObjects locates the JSON array in text and returns its elements,
// all of which must be objects.
func extractObjects(text string) ([]gjson.Result, error) {
	region, ok := Extract(text)
	if !ok {
		return nil, ErrExtractionFailed
	}
	if !gjson.Valid(region) {
		return nil, &ParseError{Raw: text, Reason: "invalid JSON"}
	}
	arr := gjson.Parse(region)
	if !arr.IsArray() {
		return nil, &ParseError{Raw: text, Reason: "not an array"}
	}
	elems := arr.Array()
	for i, el := range elems {
		if !el.IsObject() {
			return nil, &ParseError{Raw: text, Reason: fmt.Sprintf("element %d is not an object", i)}
		}
	}
	return elems, nil
}

func normalizeQuestion(idx int, el gjson.Result) (Question, error) {
	q := Question{
		ID:       el.Get("id").String(),
		Question: el.Get("question").String(),
	}
	if q.ID == "" {
		suffix, err := common.MakeRandHexString(2)
		if err != nil {
			return Question{}, err
		}
		q.ID = fmt.Sprintf("q%d_%s", idx, suffix)
	}

	correct := el.Get("correct").String()
	if opts := el.Get("options"); opts.IsArray() {
		q.Options = stringsOf(opts.Array())
	} else {
		incorrect := stringsOf(el.Get("incorrect").Array())
		q.Options = append(incorrect[:min(3, len(incorrect))], correct)
	}
	if len(q.Options) > optionsPerQuestion {
		q.Options = q.Options[:optionsPerQuestion]
	}
	for len(q.Options) < optionsPerQuestion {
		q.Options = append(q.Options, fillerOption)
	}

	q.AnswerIndex = -1
	if ai := el.Get("answerIndex"); ai.Type == gjson.Number {
		q.AnswerIndex = int(ai.Int())
	}
	if q.AnswerIndex < 0 || q.AnswerIndex >= len(q.Options) {
		q.AnswerIndex = indexOfOption(q.Options, correct)
	}
	return q, nil
}

func indexOfOption(options []string, correct string) int {
	want := strings.TrimSpace(correct)
	if want == "" {
		return 0
	}
	for i, o := range options {
		if strings.TrimSpace(o) == want {
			return i
		}
	}
	return 0
}

func stringsOf(rs []gjson.Result) []string {
	out := make([]string, 0, len(rs))
	for _, r := range rs {
		out = append(out, r.String())
	}
	return out
}
