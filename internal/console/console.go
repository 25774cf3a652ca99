// Package console runs an intake session in the terminal.
package console

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/manifoldco/promptui"
	"go.uber.org/zap"

	"github.com/spigell/talentscout/internal/intake"
	"github.com/spigell/talentscout/internal/logger"
	"github.com/spigell/talentscout/internal/metrics"
)

// Session results reported to metrics.
const (
	ResultExited      = "exited"
	ResultInterrupted = "interrupted"
)

const assistantLabel = "TalentScout"

// Prompter reads one line of user input.
type Prompter interface {
	Prompt(ctx context.Context) (string, error)
}

// PromptUI reads input with a promptui line prompt.
type PromptUI struct {
	Label  string
	Stdin  io.ReadCloser
	Stdout io.WriteCloser
}

// Prompt implements Prompter. Ctrl-C and Ctrl-D surface as promptui.ErrInterrupt and promptui.ErrEOF.
func (p PromptUI) Prompt(_ context.Context) (string, error) {
	label := p.Label
	if label == "" {
		label = "You"
	}

	prompt := promptui.Prompt{
		Label:  label,
		Stdin:  p.Stdin,
		Stdout: p.Stdout,
	}
	return prompt.Run()
}

// Chat drives a single session between the machine and a terminal.
type Chat struct {
	machine  *intake.Machine
	prompter Prompter
	out      io.Writer
	recorder metrics.Recorder
	logger   *zap.Logger
}

// New creates a Chat. out receives the assistant side of the transcript.
func New(machine *intake.Machine, prompter Prompter, out io.Writer, recorder metrics.Recorder, log *zap.Logger) *Chat {
	if recorder == nil {
		recorder = metrics.Nop{}
	}
	if log == nil {
		log = zap.NewNop()
	}

	return &Chat{
		machine:  machine,
		prompter: prompter,
		out:      out,
		recorder: recorder,
		logger:   log,
	}
}

// Run prints the greeting and processes turns until the candidate exits,
// the input is closed or ctx is cancelled. Closing the input is not an error.
func (c *Chat) Run(ctx context.Context, session *intake.Session) error {
	log := logger.WithSession(c.logger, session.ID)
	log.Info("session started")

	if err := c.say(session.LastReply()); err != nil {
		return err
	}

	for !session.Ended {
		if err := ctx.Err(); err != nil {
			c.recorder.ObserveSession(ResultInterrupted)
			return err
		}

		input, err := c.prompter.Prompt(ctx)
		if err != nil {
			if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) || errors.Is(err, io.EOF) {
				log.Info("session interrupted", zap.String(logger.FieldStep, session.Current.String()))
				c.recorder.ObserveSession(ResultInterrupted)
				return nil
			}
			return fmt.Errorf("reading input: %w", err)
		}

		reply := c.machine.Advance(ctx, session, input)
		c.recorder.ObserveTurn(reply.Step.String(), string(reply.Outcome))

		if err := c.say(reply.Text); err != nil {
			return err
		}
	}

	log.Info("session finished", zap.Int("fields", session.Fields.Len()))
	c.recorder.ObserveSession(ResultExited)

	return nil
}

func (c *Chat) say(text string) error {
	if _, err := fmt.Fprintf(c.out, "%s: %s\n\n", assistantLabel, text); err != nil {
		return fmt.Errorf("writing reply: %w", err)
	}
	return nil
}
