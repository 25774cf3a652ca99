package intake

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/mitchellh/mapstructure"
)

// Role tags a transcript entry.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one transcript entry.
type Message struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}

// Fields holds validated values keyed by step, in collection order.
type Fields struct {
	order  []Step
	values map[Step]string
}

func newFields() *Fields {
	return &Fields{values: make(map[Step]string)}
}

// Get returns the value stored for step.
func (f *Fields) Get(step Step) (string, bool) {
	v, ok := f.values[step]
	return v, ok
}

// Has reports whether step has a stored value.
func (f *Fields) Has(step Step) bool {
	_, ok := f.values[step]
	return ok
}

// Len returns the number of stored fields.
func (f *Fields) Len() int {
	return len(f.order)
}

// Keys returns the stored steps in collection order.
func (f *Fields) Keys() []Step {
	keys := make([]Step, len(f.order))
	copy(keys, f.order)
	return keys
}

// Map returns a copy of the stored values keyed by field name.
func (f *Fields) Map() map[string]string {
	m := make(map[string]string, len(f.values))
	for k, v := range f.values {
		m[string(k)] = v
	}
	return m
}

func (f *Fields) set(step Step, value string) {
	if _, ok := f.values[step]; !ok {
		f.order = append(f.order, step)
	}
	f.values[step] = value
}

func (f *Fields) reset() {
	f.order = nil
	f.values = make(map[Step]string)
}

// Candidate is the typed view of a completed intake.
type Candidate struct {
	Name       string `mapstructure:"name" json:"name"`
	Email      string `mapstructure:"email" json:"email"`
	Phone      string `mapstructure:"phone" json:"phone"`
	Experience string `mapstructure:"experience" json:"experience"`
	Position   string `mapstructure:"position" json:"position"`
	Location   string `mapstructure:"location" json:"location"`
	TechStack  string `mapstructure:"tech_stack" json:"tech_stack"`
}

// Session is the state of one conversation. It is owned by a single
// caller and must not be shared between goroutines.
type Session struct {
	ID         string
	Transcript []Message
	Fields     *Fields
	Current    Step
	// Ended is set by an exit keyword. No further transitions happen afterwards.
	Ended bool
}

// NewSession returns a session positioned at StepName with the greeting in its transcript.
func NewSession() *Session {
	return &Session{
		ID:         uuid.NewString(),
		Transcript: []Message{{Role: RoleAssistant, Text: greeting}},
		Fields:     newFields(),
		Current:    StepName,
	}
}

// LastReply returns the most recent assistant message.
func (s *Session) LastReply() string {
	for i := len(s.Transcript) - 1; i >= 0; i-- {
		if s.Transcript[i].Role == RoleAssistant {
			return s.Transcript[i].Text
		}
	}
	return ""
}

// Candidate decodes the fields collected so far. Missing fields are left empty.
func (s *Session) Candidate() (*Candidate, error) {
	var c Candidate
	if err := mapstructure.Decode(s.Fields.Map(), &c); err != nil {
		return nil, fmt.Errorf("decode candidate: %w", err)
	}
	return &c, nil
}

func (s *Session) appendTurn(input, reply string) {
	s.Transcript = append(s.Transcript,
		Message{Role: RoleUser, Text: input},
		Message{Role: RoleAssistant, Text: reply},
	)
}

func (s *Session) restart() {
	s.Fields.reset()
	s.Current = StepName
}
