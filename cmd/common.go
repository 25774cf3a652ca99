package cmd

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/talentscout/internal/logger"
)

// setup builds the logger and reads the configuration. Failures are fatal.
func setup() (*zap.Logger, *Config) {
	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the talentscout", zap.String("version", version))

	// secrets must not reach the debug output
	redacted := *config.AI
	if redacted.APIKey != "" {
		redacted.APIKey = "***"
	}
	pretty, _ := json.MarshalIndent(struct {
		AI     AIConfig
		Intake *IntakeConfig
		Serve  *ServeConfig
	}{redacted, config.Intake, config.Serve}, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	return logger, config
}
