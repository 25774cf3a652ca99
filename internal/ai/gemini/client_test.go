package gemini

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/spigell/talentscout/internal/ai"
)

type fakeChatCreator struct {
	mu    sync.Mutex
	calls []chatCallRecord
	queue map[string][]fakeChatResponse
}

type chatCallRecord struct {
	model  string
	config *genai.GenerateContentConfig
	chat   *fakeChat
}

type fakeChatResponse struct {
	resp *genai.GenerateContentResponse
	err  error
}

type fakeChat struct {
	mu       sync.Mutex
	response fakeChatResponse
	messages []string
}

func (f *fakeChat) SendMessage(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, part := range parts {
		f.messages = append(f.messages, part.Text)
	}
	return f.response.resp, f.response.err
}

func newFakeChatCreator() *fakeChatCreator {
	return &fakeChatCreator{queue: make(map[string][]fakeChatResponse)}
}

func (f *fakeChatCreator) enqueue(model string, resp *genai.GenerateContentResponse, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queue[model] = append(f.queue[model], fakeChatResponse{resp: resp, err: err})
}

func (f *fakeChatCreator) Create(ctx context.Context, model string, config *genai.GenerateContentConfig, history []*genai.Content) (chatSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	responses := f.queue[model]
	if len(responses) == 0 {
		return nil, errors.New("unexpected call")
	}
	res := responses[0]
	f.queue[model] = responses[1:]
	chat := &fakeChat{response: res}
	f.calls = append(f.calls, chatCallRecord{model: model, config: config, chat: chat})
	return chat, nil
}

func textResponse(parts ...string) *genai.GenerateContentResponse {
	content := &genai.Content{}
	for _, p := range parts {
		content.Parts = append(content.Parts, &genai.Part{Text: p})
	}
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: content}},
	}
}

func TestGeneratorComplete(t *testing.T) {
	chats := newFakeChatCreator()
	chats.enqueue("gemini-pro", textResponse("1. What is a channel?", "  ", "2. What is a map?"), nil)

	g := &Generator{chats: chats, model: "gemini-pro", logger: zap.NewNop()}

	output, err := g.Complete(context.Background(), ai.Request{
		System:      "system",
		Prompt:      "message",
		MaxTokens:   800,
		Temperature: 0.3,
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if output != "1. What is a channel?\n2. What is a map?" {
		t.Fatalf("unexpected output: %q", output)
	}

	if len(chats.calls) != 1 {
		t.Fatalf("expected 1 call, got %d", len(chats.calls))
	}

	call := chats.calls[0]
	if call.config == nil || call.config.SystemInstruction == nil {
		t.Fatalf("expected system instruction to be set")
	}
	if got := call.config.SystemInstruction.Parts[0].Text; got != "system" {
		t.Fatalf("unexpected system instruction: %q", got)
	}
	if call.config.MaxOutputTokens != 800 {
		t.Fatalf("unexpected max output tokens: %d", call.config.MaxOutputTokens)
	}
	if call.config.Temperature == nil || *call.config.Temperature != float32(0.3) {
		t.Fatalf("unexpected temperature: %v", call.config.Temperature)
	}
	if len(call.chat.messages) != 1 || call.chat.messages[0] != "message" {
		t.Fatalf("unexpected chat message: %+v", call.chat.messages)
	}
}

func TestGeneratorDoesNotRetry(t *testing.T) {
	chats := newFakeChatCreator()
	tempErr := genai.APIError{Code: http.StatusInternalServerError, Status: "INTERNAL"}
	chats.enqueue("gemini-pro", nil, tempErr)
	chats.enqueue("gemini-pro", textResponse("never returned"), nil)

	g := &Generator{chats: chats, model: "gemini-pro", logger: zap.NewNop()}

	_, err := g.Complete(context.Background(), ai.Request{System: "sys", Prompt: "msg"})
	if err == nil {
		t.Fatal("expected error from failed call")
	}

	var apiErr genai.APIError
	if !errors.As(err, &apiErr) || apiErr.Code != http.StatusInternalServerError {
		t.Fatalf("expected wrapped api error, got %v", err)
	}

	if len(chats.calls) != 1 {
		t.Fatalf("expected single call, got %d", len(chats.calls))
	}
}

func TestGeneratorEmptyResponse(t *testing.T) {
	chats := newFakeChatCreator()
	chats.enqueue("gemini-pro", &genai.GenerateContentResponse{}, nil)

	g := &Generator{chats: chats, model: "gemini-pro", logger: zap.NewNop()}

	if _, err := g.Complete(context.Background(), ai.Request{Prompt: "msg"}); err == nil {
		t.Fatal("expected error for empty response")
	}

	if chats.calls[0].config.SystemInstruction != nil {
		t.Fatalf("expected no system instruction for blank system prompt")
	}
}

func TestGeneratorRejectsEmptyPrompt(t *testing.T) {
	g := &Generator{chats: newFakeChatCreator(), model: "gemini-pro", logger: zap.NewNop()}

	if _, err := g.Complete(context.Background(), ai.Request{Prompt: "  "}); err == nil {
		t.Fatal("expected error for empty prompt")
	}
}

func TestNewGeneratorRequiresKey(t *testing.T) {
	if _, err := NewGenerator(context.Background(), " ", "", nil); err == nil {
		t.Fatal("expected error without api key")
	}
}

func TestGeneratorMetadata(t *testing.T) {
	g := &Generator{model: "gemini-pro"}
	if g.Provider() != "gemini" || g.Model() != "gemini-pro" {
		t.Fatalf("unexpected metadata: %s/%s", g.Provider(), g.Model())
	}

	var nilGen *Generator
	if nilGen.Model() != "" {
		t.Fatalf("expected empty model for nil generator")
	}
}
