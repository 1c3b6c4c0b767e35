package suggest

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/ecohack/internal/server/config"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/tidwall/gjson"
)

// CodeModelDecommissioned is the upstream error code for retired models.
const CodeModelDecommissioned = "model_decommissioned"

// ErrUpstreamNotConfigured is returned when no API key was configured.
var ErrUpstreamNotConfigured = errors.New("llm api key not configured")

// UpstreamError is a non-2xx answer from the completion endpoint.
type UpstreamError struct {
	StatusCode int
	Code       string
	Message    string
	Model      string
	// Body is the raw JSON error object, if any.
	Body string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("llm api error: status %d code %q: %s", e.StatusCode, e.Code, e.Message)
}

// Decommissioned reports whether the configured model has been retired.
func (e *UpstreamError) Decommissioned() bool {
	return e.Code == CodeModelDecommissioned
}

type CompletionRequest struct {
	Prompt      string
	Temperature float64
	MaxTokens   int64
}

// Completer runs a single chat completion and returns the text of the
// first choice.
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
	Model() string
}

// Client is a Completer backed by an OpenAI-compatible API.
type Client struct {
	api        openai.Client
	model      string
	configured bool
}

// NewClient builds a client from cfg. Extra options (an HTTP client in
// tests, for instance) are applied last.
func NewClient(cfg *config.Config, opts ...option.RequestOption) *Client {
	base := []option.RequestOption{
		option.WithAPIKey(cfg.LLMAPIKey),
		option.WithBaseURL(cfg.LLMBaseURL),
		option.WithMaxRetries(0),
		option.WithRequestTimeout(cfg.LLMTimeout),
	}
	return &Client{
		api:        openai.NewClient(append(base, opts...)...),
		model:      cfg.LLMModel,
		configured: cfg.LLMAPIKey != "",
	}
}

func (c *Client) Model() string { return c.model }

func (c *Client) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	if !c.configured {
		return "", ErrUpstreamNotConfigured
	}

	resp, err := c.api.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(c.model),
		Messages:    []openai.ChatCompletionMessageParamUnion{openai.UserMessage(req.Prompt)},
		Temperature: openai.Float(req.Temperature),
		MaxTokens:   openai.Int(req.MaxTokens),
	})
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			return "", c.upstreamError(apiErr)
		}
		return "", fmt.Errorf("llm request failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}

func (c *Client) upstreamError(apiErr *openai.Error) *UpstreamError {
	raw := apiErr.RawJSON()
	code := apiErr.Code
	if code == "" {
		code = gjson.Get(raw, "code").String()
	}
	if code == "" {
		code = gjson.Get(raw, "error.code").String()
	}
	msg := apiErr.Message
	if msg == "" {
		msg = gjson.Get(raw, "error.message").String()
	}
	return &UpstreamError{
		StatusCode: apiErr.StatusCode,
		Code:       code,
		Message:    msg,
		Model:      c.model,
		Body:       raw,
	}
}
