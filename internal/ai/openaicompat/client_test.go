package openaicompat

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spigell/talentscout/internal/ai"
)

type chatRequest struct {
	Model       string  `json:"model"`
	MaxTokens   int     `json:"max_tokens"`
	Temperature float64 `json:"temperature"`
	Messages    []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

func newServer(t *testing.T, status int, body string, calls *atomic.Int32, got *chatRequest) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.True(t, strings.HasSuffix(r.URL.Path, "/chat/completions"), "unexpected path %s", r.URL.Path)
		assert.Equal(t, "Bearer hf_test", r.Header.Get("Authorization"))
		if got != nil {
			assert.NoError(t, json.NewDecoder(r.Body).Decode(got))
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	return srv
}

func TestClientComplete(t *testing.T) {
	var calls atomic.Int32
	var got chatRequest
	srv := newServer(t, http.StatusOK, `{
		"id": "chatcmpl-1",
		"object": "chat.completion",
		"created": 1700000000,
		"model": "google/gemma-2-2b-it",
		"choices": [{
			"index": 0,
			"finish_reason": "stop",
			"message": {"role": "assistant", "content": "  1. What is JSX?\n2. What is a hook?  "}
		}]
	}`, &calls, &got)

	client, err := New(Config{Provider: "HuggingFace", APIKey: "hf_test", BaseURL: srv.URL + "/v1/"})
	require.NoError(t, err)

	out, err := client.Complete(context.Background(), ai.Request{
		System:      "persona",
		Prompt:      "questions please",
		MaxTokens:   800,
		Temperature: 0.3,
	})
	require.NoError(t, err)

	assert.Equal(t, "1. What is JSX?\n2. What is a hook?", out)
	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, "google/gemma-2-2b-it", got.Model)
	assert.Equal(t, 800, got.MaxTokens)
	assert.InDelta(t, 0.3, got.Temperature, 1e-9)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "system", got.Messages[0].Role)
	assert.Equal(t, "persona", got.Messages[0].Content)
	assert.Equal(t, "user", got.Messages[1].Role)
	assert.Equal(t, "questions please", got.Messages[1].Content)
}

func TestClientDoesNotRetryServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := newServer(t, http.StatusServiceUnavailable, `{"error": {"message": "model is loading"}}`, &calls, nil)

	client, err := New(Config{Provider: ProviderHuggingFace, APIKey: "hf_test", BaseURL: srv.URL + "/v1/"})
	require.NoError(t, err)

	_, err = client.Complete(context.Background(), ai.Request{System: "s", Prompt: "p"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "huggingface chat completion")
	assert.Equal(t, int32(1), calls.Load())
}

func TestClientEmptyChoices(t *testing.T) {
	var calls atomic.Int32
	srv := newServer(t, http.StatusOK, `{"id": "x", "object": "chat.completion", "created": 1, "model": "m", "choices": []}`, &calls, nil)

	client, err := New(Config{APIKey: "hf_test", BaseURL: srv.URL + "/v1/", Model: "m"})
	require.NoError(t, err)

	_, err = client.Complete(context.Background(), ai.Request{Prompt: "p"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no choices")
}

func TestNew(t *testing.T) {
	_, err := New(Config{Provider: Provider})
	require.Error(t, err)

	_, err = New(Config{Provider: "mistral", APIKey: "k"})
	require.Error(t, err)

	hf, err := New(Config{Provider: ProviderHuggingFace, APIKey: "k"})
	require.NoError(t, err)
	assert.Equal(t, "huggingface", hf.Provider())
	assert.Equal(t, defaultHuggingFaceModel, hf.Model())

	oa, err := New(Config{APIKey: "k", Model: " gpt-4.1 "})
	require.NoError(t, err)
	assert.Equal(t, "openai", oa.Provider())
	assert.Equal(t, "gpt-4.1", oa.Model())
}
