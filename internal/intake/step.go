package intake

import "slices"

// Step is a position in the intake sequence.
type Step string

const (
	StepName       Step = "name"
	StepEmail      Step = "email"
	StepPhone      Step = "phone"
	StepExperience Step = "experience"
	StepPosition   Step = "position"
	StepLocation   Step = "location"
	StepTechStack  Step = "tech_stack"
	// StepAnswering is terminal. The session stays here until exit.
	StepAnswering Step = "answering_questions"
)

var fieldOrder = []Step{
	StepName,
	StepEmail,
	StepPhone,
	StepExperience,
	StepPosition,
	StepLocation,
	StepTechStack,
}

// Steps returns the collected fields in collection order.
func Steps() []Step {
	return slices.Clone(fieldOrder)
}

// IsField reports whether s collects a candidate field.
func (s Step) IsField() bool {
	return slices.Contains(fieldOrder, s)
}

// Next returns the step that follows s. StepAnswering is its own successor.
func (s Step) Next() Step {
	i := slices.Index(fieldOrder, s)
	if i < 0 || i == len(fieldOrder)-1 {
		return StepAnswering
	}
	return fieldOrder[i+1]
}

// Position returns the index of s in the full sequence including StepAnswering,
// or -1 for unknown steps.
func (s Step) Position() int {
	if s == StepAnswering {
		return len(fieldOrder)
	}
	return slices.Index(fieldOrder, s)
}

func (s Step) String() string {
	return string(s)
}
