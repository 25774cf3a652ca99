package cmd

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/talentscout/internal/ai"
	"github.com/spigell/talentscout/internal/ai/claude"
	"github.com/spigell/talentscout/internal/ai/gemini"
	"github.com/spigell/talentscout/internal/ai/ollama"
	"github.com/spigell/talentscout/internal/ai/openaicompat"
	"github.com/spigell/talentscout/internal/intake"
	"github.com/spigell/talentscout/internal/metrics"
	"github.com/spigell/talentscout/internal/secrets"
)

// apiKeyEnv lists the conventional variable for each provider's credential.
var apiKeyEnv = map[string]string{
	gemini.Provider:                  "GEMINI_API_KEY",
	openaicompat.ProviderHuggingFace: "HF_TOKEN",
	openaicompat.Provider:            "OPENAI_API_KEY",
	claude.Provider:                  "ANTHROPIC_API_KEY",
}

func newBackend(ctx context.Context, cfg *AIConfig, logger *zap.Logger) (ai.Backend, error) {
	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))

	if provider == ollama.Provider {
		client, err := ollama.New(cfg.BaseURL, cfg.Model, nil)
		if err != nil {
			return nil, err
		}
		return client, nil
	}

	env, ok := apiKeyEnv[provider]
	if !ok {
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name:  provider + " api key",
		Value: cfg.APIKey,
		Env:   env,
		File:  cfg.APIKeyFile,
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set ai.api-key-file, %s or TALENTSCOUT_AI_API_KEY)", err, env)
	}

	switch provider {
	case gemini.Provider:
		generator, err := gemini.NewGenerator(ctx, apiKey, cfg.Model, logger)
		if err != nil {
			return nil, err
		}
		return generator, nil
	case claude.Provider:
		client, err := claude.New(apiKey, cfg.BaseURL, cfg.Model)
		if err != nil {
			return nil, err
		}
		return client, nil
	default:
		client, err := openaicompat.New(openaicompat.Config{
			Provider: provider,
			APIKey:   apiKey,
			BaseURL:  cfg.BaseURL,
			Model:    cfg.Model,
		})
		if err != nil {
			return nil, err
		}
		return client, nil
	}
}

// newMachine builds the intake machine. A backend that cannot be created is
// not fatal: the conversation still completes with the fallback questions.
func newMachine(ctx context.Context, config *Config, recorder metrics.Recorder, logger *zap.Logger) (*intake.Machine, error) {
	exitMatch, err := intake.ParseExitMatch(config.Intake.ExitMatch)
	if err != nil {
		return nil, err
	}

	backend, err := newBackend(ctx, config.AI, logger)
	if err != nil {
		logger.Warn("question backend disabled, fallback questions will be used", zap.Error(err))
	}

	questioner := ai.NewQuestioner(backend, ai.QuestionerConfig{
		MaxTokens:    config.AI.MaxTokens,
		Temperature:  config.AI.Temperature,
		Timeout:      config.AI.Timeout,
		MaxLogLength: config.AI.MaxLogLength,
	}, recorder, logger)

	return intake.NewMachine(questioner, intake.Config{
		ExitWords: config.Intake.ExitWords,
		ExitMatch: exitMatch,
		Persona:   config.Intake.Persona,
	}, logger), nil
}
