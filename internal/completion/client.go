// Package completion sends the assistant's single chat-completion request.
package completion

import (
	"context"
	"errors"
	"fmt"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gpt-4"

// ErrNoChoices is returned when the API answers without any choice.
var ErrNoChoices = errors.New("completion returned no choices")

// Options configures a Client.
type Options struct {
	APIKey  string
	BaseURL string // empty selects the SDK default
	Model   string
}

// Client wraps the OpenAI SDK client. It is created once per process and is
// safe for concurrent use.
type Client struct {
	api   openai.Client
	model string
}

// NewClient builds a client that never retries failed calls.
func NewClient(opts Options) *Client {
	reqOpts := []option.RequestOption{
		option.WithAPIKey(opts.APIKey),
		option.WithMaxRetries(0),
	}
	if opts.BaseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(opts.BaseURL))
	}

	model := opts.Model
	if model == "" {
		model = DefaultModel
	}

	return &Client{
		api:   openai.NewClient(reqOpts...),
		model: model,
	}
}

// Model returns the model identifier sent with every request.
func (c *Client) Model() string {
	return c.model
}

// Complete sends exactly two messages, the system instruction and the user
// text, and returns the first choice's content verbatim.
func (c *Client) Complete(ctx context.Context, system, user string) (string, error) {
	resp, err := c.api.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(user),
		},
	})
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			return "", fmt.Errorf("chat completion (status %d): %w", apiErr.StatusCode, err)
		}
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrNoChoices
	}
	return resp.Choices[0].Message.Content, nil
}
