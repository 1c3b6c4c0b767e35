package suggest

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/dmitrijs2005/ecohack/internal/common"
	"github.com/dmitrijs2005/ecohack/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCompleter struct {
	text string
	err  error
	last CompletionRequest
}

func (f *fakeCompleter) Complete(_ context.Context, req CompletionRequest) (string, error) {
	f.last = req
	return f.text, f.err
}

func (f *fakeCompleter) Model() string { return "fake" }

func TestClampQuizCount(t *testing.T) {
	for in, want := range map[int]int{0: 5, 1: 3, 3: 3, 7: 7, 20: 20, 99: 20, -4: 3} {
		assert.Equal(t, want, ClampQuizCount(in), "in=%d", in)
	}
}

func TestGenerator_Quiz(t *testing.T) {
	f := &fakeCompleter{text: `[{"id":"a","question":"q","options":["1","2","3","4"],"answerIndex":2}]`}
	g := NewGenerator(f, logging.Nop())

	qs, err := g.Quiz(context.Background(), 50)
	require.NoError(t, err)
	require.Len(t, qs, 1)
	assert.Contains(t, f.last.Prompt, "Generate 20 multiple-choice")
	assert.Equal(t, 0.8, f.last.Temperature)
	assert.Equal(t, int64(1200), f.last.MaxTokens)
}

func TestGenerator_Quiz_Unreadable(t *testing.T) {
	g := NewGenerator(&fakeCompleter{text: "no quiz today"}, logging.Nop())

	_, err := g.Quiz(context.Background(), 0)
	var pe *ParseError
	require.True(t, errors.As(err, &pe), "got %v", err)
	assert.Equal(t, "no quiz today", pe.Raw)
	assert.ErrorIs(t, err, ErrExtractionFailed)
}

func TestGenerator_Quiz_MalformedArrayIsNotExtractionFailure(t *testing.T) {
	g := NewGenerator(&fakeCompleter{text: `[{"id":"a", "question": }]`}, logging.Nop())

	_, err := g.Quiz(context.Background(), 0)
	var pe *ParseError
	require.True(t, errors.As(err, &pe), "got %v", err)
	assert.NotErrorIs(t, err, ErrExtractionFailed)
}

func TestGenerator_Quiz_UpstreamErrorPassesThrough(t *testing.T) {
	ue := &UpstreamError{StatusCode: 429}
	g := NewGenerator(&fakeCompleter{err: ue}, logging.Nop())

	_, err := g.Quiz(context.Background(), 5)
	assert.ErrorIs(t, err, ue)
}

func TestGenerator_DIY(t *testing.T) {
	f := &fakeCompleter{text: `[{"name":"Planter","description":"d","usability":5,"ecoFriendly":6,"fun":7}]`}
	g := NewGenerator(f, logging.Nop())

	res, err := g.DIY(context.Background(), "  bottles, cans ")
	require.NoError(t, err)
	require.Len(t, res.Suggestions, 1)
	assert.Equal(t, "Planter", res.Suggestions[0].Name)
	assert.Equal(t, f.text, res.Raw)
	assert.True(t, strings.HasPrefix(f.last.Prompt, "I have these items: bottles, cans."))
	assert.Equal(t, 0.7, f.last.Temperature)
	assert.Equal(t, int64(1024), f.last.MaxTokens)
}

func TestGenerator_DIY_Degrades(t *testing.T) {
	for text, msg := range map[string]string{
		"no json here":      "Could not parse suggestions",
		`[{"name": "x",}]`: "JSON parse error",
	} {
		g := NewGenerator(&fakeCompleter{text: text}, logging.Nop())
		res, err := g.DIY(context.Background(), "bottles")
		require.NoError(t, err)
		require.Len(t, res.Suggestions, 1)
		assert.Equal(t, msg, res.Suggestions[0].Error)
		assert.Equal(t, text, res.Suggestions[0].Raw)
	}
}

func TestGenerator_DIY_RequiresItems(t *testing.T) {
	g := NewGenerator(&fakeCompleter{}, logging.Nop())
	_, err := g.DIY(context.Background(), "   ")
	assert.ErrorIs(t, err, common.ErrorInvalidArgument)
}
