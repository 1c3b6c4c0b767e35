package suggest

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/ecohack/internal/common"
	"github.com/dmitrijs2005/ecohack/internal/logging"
)

const (
	DefaultQuizCount = 5
	MinQuizCount     = 3
	MaxQuizCount     = 20
)

const quizPrompt = "Generate %d multiple-choice questions about recycling, waste sorting, and eco-friendly habits. " +
	"For each question provide a JSON object with keys: id (short unique), question (string), options (array of 4 strings), answerIndex (0-3). " +
	"Ensure questions vary in difficulty and cover different topics; do not repeat questions or answers. Output a JSON array."

const diyPrompt = `I have these items: %s.

Suggest 3-5 DIY eco-friendly projects I can make from these items.
For each suggestion, provide:
1. Project name
2. Description (1-2 sentences)
3. Usability score (1-10): how practical/useful is it?
4. Eco-friendly score (1-10): how environmentally friendly?
5. Fun score (1-10): how enjoyable/interesting?

Format as JSON array with fields: name, description, usability, ecoFriendly, fun`

// DIYResult carries the parsed suggestions and the model text they came from.
type DIYResult struct {
	Suggestions []Suggestion
	Raw         string
}

// Generator builds prompts, calls the model and parses the answers.
type Generator struct {
	llm    Completer
	logger logging.Logger
}

func NewGenerator(llm Completer, logger logging.Logger) *Generator {
	return &Generator{llm: llm, logger: logger.With("module", "suggest")}
}

// Model is the model name requests are sent to.
func (g *Generator) Model() string { return g.llm.Model() }

// ClampQuizCount maps a requested count (0 = unset) into [MinQuizCount, MaxQuizCount].
func ClampQuizCount(n int) int {
	if n == 0 {
		n = DefaultQuizCount
	}
	return min(max(n, MinQuizCount), MaxQuizCount)
}

// Quiz asks for count questions. Upstream failures come back as
// *UpstreamError, unreadable answers as *ParseError; when no array was found
// at all the ParseError wraps ErrExtractionFailed.
func (g *Generator) Quiz(ctx context.Context, count int) ([]Question, error) {
	n := ClampQuizCount(count)
	text, err := g.llm.Complete(ctx, CompletionRequest{
		Prompt:      fmt.Sprintf(quizPrompt, n),
		Temperature: 0.8,
		MaxTokens:   1200,
	})
	if err != nil {
		return nil, err
	}

	questions, err := ParseQuiz(text)
	if err != nil {
		g.logger.Warn(ctx, "quiz parse failed", "error", err, "raw_len", len(text))
		var pe *ParseError
		if !errors.As(err, &pe) {
			err = &ParseError{Raw: text, Reason: err.Error(), Err: err}
		}
		return nil, err
	}
	return questions, nil
}

// DIY asks for project ideas built from items. Unreadable answers are not
// an error: they yield a single diagnostic suggestion holding the raw text.
func (g *Generator) DIY(ctx context.Context, items string) (*DIYResult, error) {
	items = strings.TrimSpace(items)
	if items == "" {
		return nil, fmt.Errorf("%w: please provide items", common.ErrorInvalidArgument)
	}

	text, err := g.llm.Complete(ctx, CompletionRequest{
		Prompt:      fmt.Sprintf(diyPrompt, items),
		Temperature: 0.7,
		MaxTokens:   1024,
	})
	if err != nil {
		return nil, err
	}

	suggestions, err := ParseSuggestions(text)
	switch {
	case errors.Is(err, ErrExtractionFailed):
		suggestions = []Suggestion{{Error: "Could not parse suggestions", Raw: text}}
	case err != nil:
		g.logger.Warn(ctx, "diy parse failed", "error", err)
		suggestions = []Suggestion{{Error: "JSON parse error", Raw: text}}
	}
	return &DIYResult{Suggestions: suggestions, Raw: text}, nil
}
