package ai

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/spigell/talentscout/internal/logger"
	"github.com/spigell/talentscout/internal/metrics"
	"github.com/spigell/talentscout/internal/utils"
)

const (
	defaultMaxTokens    = 800
	defaultTemperature  = 0.3
	defaultMaxLogLength = 200
	errorHintLength     = 100
)

// QuestionerConfig tunes the single backend call made per session.
type QuestionerConfig struct {
	MaxTokens   int
	Temperature float64
	// Timeout bounds the backend call. Zero leaves it to the backend.
	Timeout      time.Duration
	MaxLogLength int
}

// Questioner turns a tech stack into interview questions. It never fails:
// backend errors become UnavailableMessage.
type Questioner struct {
	backend  Backend
	cfg      QuestionerConfig
	recorder metrics.Recorder
	logger   *zap.Logger
}

// NewQuestioner wraps backend. A nil backend is allowed and always yields UnavailableMessage.
func NewQuestioner(backend Backend, cfg QuestionerConfig, recorder metrics.Recorder, log *zap.Logger) *Questioner {
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = defaultMaxTokens
	}
	if cfg.Temperature < 0 {
		cfg.Temperature = defaultTemperature
	}
	if cfg.MaxLogLength <= 0 {
		cfg.MaxLogLength = defaultMaxLogLength
	}
	if recorder == nil {
		recorder = metrics.Nop{}
	}

	provider, model := "", ""
	if backend != nil {
		provider, model = backend.Provider(), backend.Model()
	}

	return &Questioner{
		backend:  backend,
		cfg:      cfg,
		recorder: recorder,
		logger:   logger.WithCommonFields(log, provider, model),
	}
}

// Generate asks the backend for questions about techStack using persona as the system message.
func (q *Questioner) Generate(ctx context.Context, persona, techStack string) string {
	started := time.Now()

	answer, err := q.complete(ctx, persona, techStack)
	if err != nil {
		q.recorder.ObserveQuestions(q.provider(), metrics.StatusDegraded, time.Since(started))
		q.logger.Warn("question generation failed",
			zap.String("hint", utils.TruncateForLog(err.Error(), errorHintLength)),
			zap.Duration("elapsed", time.Since(started)),
		)
		return UnavailableMessage
	}

	q.recorder.ObserveQuestions(q.provider(), metrics.StatusOK, time.Since(started))
	q.logger.Debug("question generation response",
		zap.Int("response_length", utf8.RuneCountInString(answer)),
		zap.String("response_preview", utils.TruncateForLog(utils.OneLine(answer), q.cfg.MaxLogLength)),
		zap.Duration("elapsed", time.Since(started)),
	)

	return answer
}

func (q *Questioner) complete(ctx context.Context, persona, techStack string) (string, error) {
	if q.backend == nil {
		return "", ErrUnavailable
	}

	if q.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, q.cfg.Timeout)
		defer cancel()
	}

	req := Request{
		System:      strings.TrimSpace(persona),
		Prompt:      TechQuestionPrompt(techStack),
		MaxTokens:   q.cfg.MaxTokens,
		Temperature: q.cfg.Temperature,
	}

	q.logger.Debug("question generation request",
		zap.Int("prompt_length", utf8.RuneCountInString(req.Prompt)),
		zap.String("prompt_preview", utils.TruncateForLog(utils.OneLine(req.Prompt), q.cfg.MaxLogLength)),
	)

	answer, err := q.backend.Complete(ctx, req)
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(answer), nil
}

func (q *Questioner) provider() string {
	if q.backend == nil {
		return ""
	}
	return q.backend.Provider()
}
