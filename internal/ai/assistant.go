package ai

import (
	"context"
	"errors"
	"strings"
)

// ErrUnavailable is returned by backends that cannot serve requests at all,
// for example when no provider has been configured.
var ErrUnavailable = errors.New("question generator unavailable")

// UnavailableMessage is what the candidate sees when the backend call fails.
const UnavailableMessage = "Sorry, the assistant is temporarily unavailable right now. Please try again in a moment."

// FallbackQuestions is used whenever the backend gives nothing usable.
const FallbackQuestions = `1. Describe a recent project where you used the technologies you listed. What was your role?
2. How do you debug a problem in production that you cannot reproduce locally?
3. Explain how you would structure tests for a new feature in your main language.
4. What trade-offs do you consider when choosing a database for a new service?
5. How do you keep your dependencies and tooling up to date and secure?`

// Request is a single role-tagged completion request.
type Request struct {
	System      string
	Prompt      string
	MaxTokens   int
	Temperature float64
}

// Backend is a text generation service.
type Backend interface {
	Complete(ctx context.Context, req Request) (string, error)
	Provider() string
	Model() string
}

// IsUnavailable reports whether text carries the unavailability marker.
func IsUnavailable(text string) bool {
	return strings.Contains(strings.ToLower(text), "temporarily unavailable")
}
