package cmd

import (
	"errors"
	"io/fs"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app       = "talentscout"
	envPrefix = "TALENTSCOUT"
)

type Config struct {
	AI     *AIConfig     `mapstructure:"ai"`
	Intake *IntakeConfig `mapstructure:"intake"`
	Serve  *ServeConfig  `mapstructure:"serve"`
}

type AIConfig struct {
	Provider     string        `mapstructure:"provider"`
	Model        string        `mapstructure:"model"`
	BaseURL      string        `mapstructure:"base-url"`
	APIKey       string        `mapstructure:"api-key"`
	APIKeyFile   string        `mapstructure:"api-key-file"`
	MaxTokens    int           `mapstructure:"max-tokens"`
	Temperature  float64       `mapstructure:"temperature"`
	Timeout      time.Duration `mapstructure:"timeout"`
	MaxLogLength int           `mapstructure:"max-log-length"`
}

type IntakeConfig struct {
	ExitWords []string `mapstructure:"exit-words"`
	ExitMatch string   `mapstructure:"exit-match"`
	Persona   string   `mapstructure:"persona"`
}

type ServeConfig struct {
	Listen  string `mapstructure:"listen"`
	Metrics bool   `mapstructure:"metrics"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "talentscout is a hiring assistant that screens candidates in a chat",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is talentscout.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")
	rootCmd.PersistentFlags().String("provider", "", "question backend: gemini, huggingface, openai, anthropic or ollama")
	rootCmd.PersistentFlags().String("model", "", "model name for the question backend")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
	viper.BindPFlag("ai.provider", rootCmd.PersistentFlags().Lookup("provider"))
	viper.BindPFlag("ai.model", rootCmd.PersistentFlags().Lookup("model"))

	setDefaults(viper.GetViper())
}

func setDefaults(v *viper.Viper) {
	// Every key needs a default so that TALENTSCOUT_* variables reach Unmarshal.
	v.SetDefault("ai.provider", "huggingface")
	v.SetDefault("ai.model", "")
	v.SetDefault("ai.base-url", "")
	v.SetDefault("ai.api-key", "")
	v.SetDefault("ai.api-key-file", "")
	v.SetDefault("ai.max-tokens", 800)
	v.SetDefault("ai.temperature", 0.3)
	v.SetDefault("ai.timeout", 60*time.Second)
	v.SetDefault("ai.max-log-length", 200)
	v.SetDefault("intake.exit-words", []string{})
	v.SetDefault("intake.exit-match", "contains")
	v.SetDefault("intake.persona", "")
	v.SetDefault("serve.listen", ":8080")
	v.SetDefault("serve.metrics", true)
}

func initConfig() {
	// .env is optional, real environment variables win.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("loading .env: %v", err)
	}

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		// The config file is optional unless it was requested explicitly.
		if cfgFile != "" || !errors.As(err, &notFound) {
			log.Fatal(err)
		}
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	if config.AI == nil {
		config.AI = &AIConfig{}
	}
	if config.Intake == nil {
		config.Intake = &IntakeConfig{}
	}
	if config.Serve == nil {
		config.Serve = &ServeConfig{}
	}

	return config, nil
}
