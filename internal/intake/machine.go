// Package intake implements the step-wise candidate intake conversation.
package intake

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/talentscout/internal/ai"
	"github.com/spigell/talentscout/internal/logger"
)

// Outcome classifies what a turn did to the session.
type Outcome string

const (
	OutcomeAccepted     Outcome = "accepted"
	OutcomeRejected     Outcome = "rejected"
	OutcomeRestarted    Outcome = "restarted"
	OutcomeExited       Outcome = "exited"
	OutcomeAcknowledged Outcome = "acknowledged"
	// OutcomeIgnored is returned for input received after the session ended.
	OutcomeIgnored Outcome = "ignored"
)

// Reply is the result of one turn.
type Reply struct {
	Text    string
	Outcome Outcome
	// Step is the step the input was processed in.
	Step Step
	// Degraded is set when fallback questions replaced the generator output.
	Degraded bool
}

// ExitMatch selects how exit keywords are matched against input.
type ExitMatch string

const (
	// ExitContains ends the session when the input contains a keyword anywhere.
	ExitContains ExitMatch = "contains"
	// ExitExact ends the session only when the whole input is a keyword.
	ExitExact ExitMatch = "exact"
)

// ParseExitMatch validates a configured match mode. Empty means ExitContains.
func ParseExitMatch(s string) (ExitMatch, error) {
	switch m := ExitMatch(strings.ToLower(strings.TrimSpace(s))); m {
	case "", ExitContains:
		return ExitContains, nil
	case ExitExact:
		return ExitExact, nil
	default:
		return "", fmt.Errorf("unknown exit match mode %q (want %q or %q)", s, ExitContains, ExitExact)
	}
}

// DefaultExitWords end the session when typed in any step.
var DefaultExitWords = []string{"exit", "quit", "bye", "stop", "done"}

const restartWord = "restart"

// QuestionGenerator produces interview questions for a tech stack. It must not fail;
// problems are reported through the returned text.
type QuestionGenerator interface {
	Generate(ctx context.Context, persona, techStack string) string
}

// Config tunes interrupt handling and the persona sent to the generator.
type Config struct {
	ExitWords []string
	ExitMatch ExitMatch
	Persona   string
}

type rule struct {
	validate func(string) bool
	retry    string
	accept   func(ctx context.Context, value string) (reply string, degraded bool)
}

// Machine advances sessions one turn at a time. It holds no per-session
// state and may be shared by many sessions.
type Machine struct {
	rules     map[Step]rule
	generator QuestionGenerator
	exitWords []string
	exitMatch ExitMatch
	persona   string
	logger    *zap.Logger
}

// NewMachine builds a machine that calls generator once the tech stack is accepted.
func NewMachine(generator QuestionGenerator, cfg Config, log *zap.Logger) *Machine {
	if log == nil {
		log = zap.NewNop()
	}

	exitWords := normalizeWords(cfg.ExitWords)
	if len(exitWords) == 0 {
		exitWords = slices.Clone(DefaultExitWords)
	}

	exitMatch := cfg.ExitMatch
	if exitMatch == "" {
		exitMatch = ExitContains
	}

	persona := strings.TrimSpace(cfg.Persona)
	if persona == "" {
		persona = ai.SystemPersona
	}

	m := &Machine{
		generator: generator,
		exitWords: exitWords,
		exitMatch: exitMatch,
		persona:   persona,
		logger:    log,
	}

	m.rules = map[Step]rule{
		StepName:       {validate: NonEmpty, retry: retryName, accept: ask(askEmail)},
		StepEmail:      {validate: ValidEmail, retry: retryEmail, accept: ask(askPhone)},
		StepPhone:      {validate: ValidPhone, retry: retryPhone, accept: ask(askExperience)},
		StepExperience: {validate: ValidExperience, retry: retryExperience, accept: ask(askPosition)},
		StepPosition:   {validate: NonEmpty, retry: retryPosition, accept: ask(askLocation)},
		StepLocation:   {validate: NonEmpty, retry: retryLocation, accept: ask(askTechStack)},
		StepTechStack:  {validate: NonEmpty, retry: retryTechStack, accept: m.generateQuestions},
	}

	return m
}

func ask(next string) func(context.Context, string) (string, bool) {
	return func(context.Context, string) (string, bool) {
		return next, false
	}
}

// Advance processes one user input. Exit keywords win over restart, and
// restart wins over field validation.
func (m *Machine) Advance(ctx context.Context, s *Session, input string) Reply {
	if s.Ended {
		return Reply{Text: farewell, Outcome: OutcomeIgnored, Step: s.Current}
	}

	reply := m.dispatch(ctx, s, input)
	s.appendTurn(input, reply.Text)

	m.logger.Debug("turn processed",
		zap.String(logger.FieldSession, s.ID),
		zap.String(logger.FieldStep, reply.Step.String()),
		zap.String("outcome", string(reply.Outcome)),
		zap.String("next_step", s.Current.String()),
	)

	return reply
}

func (m *Machine) dispatch(ctx context.Context, s *Session, input string) Reply {
	step := s.Current

	if m.isExit(input) {
		s.Ended = true
		return Reply{Text: farewell, Outcome: OutcomeExited, Step: step}
	}

	if isRestart(input) {
		s.restart()
		return Reply{Text: restarted, Outcome: OutcomeRestarted, Step: step}
	}

	if step == StepAnswering {
		return Reply{Text: acknowledged, Outcome: OutcomeAcknowledged, Step: step}
	}

	r, ok := m.rules[step]
	if !ok {
		m.logger.Error("session in unknown step, restarting",
			zap.String(logger.FieldSession, s.ID),
			zap.String(logger.FieldStep, step.String()),
		)
		s.restart()
		return Reply{Text: restarted, Outcome: OutcomeRestarted, Step: step}
	}

	value := strings.TrimSpace(input)
	if !r.validate(value) {
		return Reply{Text: r.retry, Outcome: OutcomeRejected, Step: step}
	}

	s.Fields.set(step, value)
	s.Current = step.Next()

	text, degraded := r.accept(ctx, value)
	if s.Current == StepAnswering {
		m.logCompleted(s, degraded)
	}

	return Reply{Text: text, Outcome: OutcomeAccepted, Step: step, Degraded: degraded}
}

func (m *Machine) generateQuestions(ctx context.Context, techStack string) (string, bool) {
	answer := ""
	if m.generator != nil {
		answer = m.generator.Generate(ctx, m.persona, techStack)
	}

	questions, degraded := ResolveQuestions(answer)
	return questionsReply(questions), degraded
}

func (m *Machine) logCompleted(s *Session, degraded bool) {
	candidate, err := s.Candidate()
	if err != nil {
		m.logger.Warn("decoding candidate", zap.String(logger.FieldSession, s.ID), zap.Error(err))
		return
	}

	m.logger.Info("intake completed",
		zap.String(logger.FieldSession, s.ID),
		zap.String("position", candidate.Position),
		zap.String("experience", candidate.Experience),
		zap.Int("fields", s.Fields.Len()),
		zap.Bool("fallback_questions", degraded),
	)
}

func (m *Machine) isExit(input string) bool {
	lowered := strings.ToLower(input)
	if m.exitMatch == ExitExact {
		return slices.Contains(m.exitWords, strings.TrimSpace(lowered))
	}

	for _, word := range m.exitWords {
		if strings.Contains(lowered, word) {
			return true
		}
	}
	return false
}

func isRestart(input string) bool {
	return strings.ToLower(strings.TrimSpace(input)) == restartWord
}

func normalizeWords(words []string) []string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w != "" && !slices.Contains(out, w) {
			out = append(out, w)
		}
	}
	return out
}
