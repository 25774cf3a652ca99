// Package claude implements the question backend on the Anthropic Messages API.
package claude

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/spigell/talentscout/internal/ai"
)

const (
	// Provider is the configuration name of this backend.
	Provider         = "anthropic"
	defaultModel     = "claude-3-5-haiku-latest"
	defaultMaxTokens = 800
)

// Client implements ai.Backend.
type Client struct {
	client anthropic.Client
	model  anthropic.Model
}

var _ ai.Backend = (*Client)(nil)

// New creates a client. baseURL may be empty to use the public endpoint.
func New(apiKey, baseURL, model string) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("anthropic api key is required")
	}

	if model = strings.TrimSpace(model); model == "" {
		model = defaultModel
	}

	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	if baseURL = strings.TrimSpace(baseURL); baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}

	return &Client{
		client: anthropic.NewClient(opts...),
		model:  anthropic.Model(model),
	}, nil
}

// Complete sends the prompt with the system persona as the top-level system parameter.
func (c *Client) Complete(ctx context.Context, req ai.Request) (string, error) {
	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}

	params := anthropic.MessageNewParams{
		Model:       c.model,
		MaxTokens:   int64(maxTokens),
		Temperature: anthropic.Float(req.Temperature),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.Prompt)),
		},
	}
	if system := strings.TrimSpace(req.System); system != "" {
		params.System = []anthropic.TextBlockParam{{Text: system}}
	}

	resp, err := c.client.Messages.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("anthropic messages: %w", err)
	}

	if resp == nil || len(resp.Content) == 0 {
		return "", errors.New("anthropic returned empty content")
	}

	var parts []string
	for i := range resp.Content {
		block := &resp.Content[i]
		if block.Type != "text" {
			continue
		}
		if text := strings.TrimSpace(block.Text); text != "" {
			parts = append(parts, text)
		}
	}

	if len(parts) == 0 {
		return "", errors.New("anthropic returned no text blocks")
	}

	return strings.Join(parts, "\n"), nil
}

// Provider returns the backend name.
func (c *Client) Provider() string {
	return Provider
}

// Model returns the configured model name.
func (c *Client) Model() string {
	return string(c.model)
}
