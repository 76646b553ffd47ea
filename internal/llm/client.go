package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// Client talks to a local OpenAI-compatible model endpoint (Ollama, LM
// Studio). The endpoint is an opaque collaborator: a prompt goes in,
// generated text comes out.
type Client struct {
	api   *openai.Client
	model string
}

// Options configures the client. APIKey may be any non-empty string for
// local servers that ignore auth.
type Options struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
}

func New(opts Options) *Client {
	if opts.Timeout == 0 {
		opts.Timeout = 120 * time.Second
	}
	cfg := openai.DefaultConfig(opts.APIKey)
	if opts.BaseURL != "" {
		cfg.BaseURL = opts.BaseURL
	}
	cfg.HTTPClient = &http.Client{Timeout: opts.Timeout}
	return &Client{
		api:   openai.NewClientWithConfig(cfg),
		model: opts.Model,
	}
}

// Model returns the configured model name.
func (c *Client) Model() string { return c.model }

// SetModel switches the model used for subsequent calls.
func (c *Client) SetModel(name string) { c.model = name }

// Generate runs one chat completion and returns the generated text. The
// prompt is sent with the user role; llama-family models reject a system
// role, so templates are folded into the user message as the caller built it.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("model returned no choices")
	}
	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", errors.New("model returned empty text")
	}
	return text, nil
}

// Models lists the model names the endpoint serves. Used by the UI picker
// and as a best-effort connectivity preflight.
func (c *Client) Models(ctx context.Context) ([]string, error) {
	list, err := c.api.ListModels(ctx)
	if err != nil {
		return nil, fmt.Errorf("list models: %w", err)
	}
	names := make([]string, 0, len(list.Models))
	for _, m := range list.Models {
		names = append(names, m.ID)
	}
	return names, nil
}
