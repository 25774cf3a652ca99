package intake

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidators(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		validate func(string) bool
		input    string
		want     bool
	}{
		{"name", NonEmpty, "Jane Doe", true},
		{"name blank", NonEmpty, " \t\n", false},
		{"email", ValidEmail, "jane@example.com", true},
		{"email padded", ValidEmail, "  jane.doe-1@mail.example.co.uk ", true},
		{"email no at", ValidEmail, "not-an-email", false},
		{"email two ats", ValidEmail, "jane@@example.com", false},
		{"email no tld", ValidEmail, "jane@example", false},
		{"email empty", ValidEmail, "", false},
		{"phone", ValidPhone, "+1 (555) 123-4567", true},
		{"phone short", ValidPhone, "12345", false},
		{"phone letters", ValidPhone, "555-CALL-NOW", false},
		{"phone too long", ValidPhone, "123456789012345678901", false},
		{"phone spaces only", ValidPhone, "         ", false},
		{"experience fraction", ValidExperience, "4.5", true},
		{"experience zero", ValidExperience, "0", true},
		{"experience upper bound", ValidExperience, "50", true},
		{"experience too high", ValidExperience, "200", false},
		{"experience negative", ValidExperience, "-1", false},
		{"experience words", ValidExperience, "five", false},
		{"experience nan", ValidExperience, "NaN", false},
		{"experience inf", ValidExperience, "Inf", false},
		{"experience empty", ValidExperience, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.validate(tt.input), "input %q", tt.input)
		})
	}
}

func TestResolveQuestions(t *testing.T) {
	t.Parallel()

	questions, degraded := ResolveQuestions("  1. What is a goroutine?\n2. What is a channel?  ")
	assert.False(t, degraded)
	assert.Equal(t, "1. What is a goroutine?\n2. What is a channel?", questions)

	for _, answer := range []string{"", "   ", "1. Why?", "Sorry, the assistant is temporarily unavailable right now."} {
		questions, degraded := ResolveQuestions(answer)
		assert.True(t, degraded, "answer %q", answer)
		assert.Contains(t, questions, "1. ")
	}
}

func TestStepOrder(t *testing.T) {
	t.Parallel()

	steps := Steps()
	assert.Equal(t, []Step{StepName, StepEmail, StepPhone, StepExperience, StepPosition, StepLocation, StepTechStack}, steps)

	for i, step := range steps {
		assert.True(t, step.IsField())
		assert.Equal(t, i, step.Position())
		assert.Greater(t, step.Next().Position(), step.Position())
	}

	assert.Equal(t, StepAnswering, StepTechStack.Next())
	assert.Equal(t, StepAnswering, StepAnswering.Next())
	assert.False(t, StepAnswering.IsField())
	assert.Equal(t, -1, Step("salary").Position())

	steps[0] = StepAnswering
	assert.Equal(t, StepName, Steps()[0], "Steps must return a copy")
}

func TestParseExitMatch(t *testing.T) {
	t.Parallel()

	for input, want := range map[string]ExitMatch{"": ExitContains, "contains": ExitContains, " EXACT ": ExitExact} {
		got, err := ParseExitMatch(input)
		assert.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ParseExitMatch("prefix")
	assert.Error(t, err)
}
