package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

const defaultTimeout = 15 * time.Second

// Client talks to the language-understanding provider through its
// OpenAI-compatible endpoint. Every call is bounded by the configured
// timeout; callers treat a timeout like any other provider failure.
type Client struct {
	api     openai.Client
	model   string
	timeout time.Duration
}

func NewClient(apiKey, baseURL, model string, timeout time.Duration) *Client {
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if strings.TrimSpace(baseURL) != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		api:     openai.NewClient(opts...),
		model:   model,
		timeout: timeout,
	}
}

// Complete sends a single-turn prompt and returns the raw completion text.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.api.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		Temperature:         openai.Float(0.7),
		TopP:                openai.Float(1),
		MaxCompletionTokens: openai.Int(2048),
	})
	if err != nil {
		return "", fmt.Errorf("completion request: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("completion returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

// IsUnavailable reports whether err marks the provider as down for a while
// (bad credentials or a missing model) rather than a one-off hiccup.
func IsUnavailable(err error) bool {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case 401, 403, 404:
			return true
		}
	}
	return false
}
