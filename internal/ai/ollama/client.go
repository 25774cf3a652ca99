// Package ollama implements the question backend on a local Ollama server.
package ollama

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/ollama/ollama/api"

	"github.com/spigell/talentscout/internal/ai"
)

const (
	// Provider is the configuration name of this backend.
	Provider       = "ollama"
	defaultHostURL = "http://localhost:11434"
	defaultModel   = "llama3.2"
)

// Client implements ai.Backend.
type Client struct {
	client *api.Client
	model  string
}

var _ ai.Backend = (*Client)(nil)

// New creates a client for the server at hostURL. No credentials are needed.
func New(hostURL, model string, httpClient *http.Client) (*Client, error) {
	if hostURL = strings.TrimSpace(hostURL); hostURL == "" {
		hostURL = defaultHostURL
	}

	parsed, err := url.Parse(hostURL)
	if err != nil {
		return nil, fmt.Errorf("parse ollama host %q: %w", hostURL, err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("ollama host %q must be an absolute url", hostURL)
	}

	if model = strings.TrimSpace(model); model == "" {
		model = defaultModel
	}

	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Client{client: api.NewClient(parsed, httpClient), model: model}, nil
}

// Complete runs a non-streaming chat request.
func (c *Client) Complete(ctx context.Context, req ai.Request) (string, error) {
	stream := false
	options := map[string]any{
		"temperature": req.Temperature,
	}
	if req.MaxTokens > 0 {
		options["num_predict"] = req.MaxTokens
	}

	chatReq := &api.ChatRequest{
		Model: c.model,
		Messages: []api.Message{
			{Role: "system", Content: req.System},
			{Role: "user", Content: req.Prompt},
		},
		Stream:  &stream,
		Options: options,
	}

	var builder strings.Builder
	err := c.client.Chat(ctx, chatReq, func(resp api.ChatResponse) error {
		builder.WriteString(resp.Message.Content)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("ollama chat: %w", err)
	}

	content := strings.TrimSpace(builder.String())
	if content == "" {
		return "", errors.New("ollama returned empty content")
	}

	return content, nil
}

// Provider returns the backend name.
func (c *Client) Provider() string {
	return Provider
}

// Model returns the configured model name.
func (c *Client) Model() string {
	return c.model
}
