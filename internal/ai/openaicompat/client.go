// Package openaicompat talks to OpenAI-compatible chat completion endpoints,
// including the Hugging Face inference router.
package openaicompat

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/spigell/talentscout/internal/ai"
)

const (
	// Provider is the configuration name for the OpenAI API.
	Provider = "openai"
	// ProviderHuggingFace is the configuration name for the Hugging Face router.
	ProviderHuggingFace = "huggingface"

	HuggingFaceBaseURL      = "https://router.huggingface.co/v1/"
	defaultModel            = "gpt-4o-mini"
	defaultHuggingFaceModel = "google/gemma-2-2b-it"
)

// Client implements ai.Backend on the chat completions API.
type Client struct {
	client   openai.Client
	provider string
	model    string
}

var _ ai.Backend = (*Client)(nil)

// Config selects the endpoint and model.
type Config struct {
	// Provider is either Provider or ProviderHuggingFace and picks the defaults.
	Provider string
	APIKey   string
	BaseURL  string
	Model    string
}

// New builds a client. Retries are disabled: one best-effort call per request.
func New(cfg Config) (*Client, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, errors.New("openai api key is required")
	}

	provider := strings.ToLower(strings.TrimSpace(cfg.Provider))
	if provider == "" {
		provider = Provider
	}

	baseURL := strings.TrimSpace(cfg.BaseURL)
	model := strings.TrimSpace(cfg.Model)

	switch provider {
	case ProviderHuggingFace:
		if baseURL == "" {
			baseURL = HuggingFaceBaseURL
		}
		if model == "" {
			model = defaultHuggingFaceModel
		}
	case Provider:
		if model == "" {
			model = defaultModel
		}
	default:
		return nil, fmt.Errorf("unsupported openai-compatible provider: %s", cfg.Provider)
	}

	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}

	return &Client{
		client:   openai.NewClient(opts...),
		provider: provider,
		model:    model,
	}, nil
}

// Complete sends a system and a user message and returns the first choice.
func (c *Client) Complete(ctx context.Context, req ai.Request) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(req.System),
			openai.UserMessage(req.Prompt),
		},
		Temperature: openai.Float(req.Temperature),
	}
	if req.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(req.MaxTokens))
	}

	resp, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("%s chat completion: %w", c.provider, err)
	}

	if resp == nil || len(resp.Choices) == 0 {
		return "", fmt.Errorf("%s returned no choices", c.provider)
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return "", fmt.Errorf("%s returned empty content", c.provider)
	}

	return content, nil
}

// Provider returns the configured provider name.
func (c *Client) Provider() string {
	return c.provider
}

// Model returns the configured model name.
func (c *Client) Model() string {
	return c.model
}
