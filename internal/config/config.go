package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/bdougie/videoanalyzer/internal/inference/gemini"
)

const (
	EnvPrefix    = "VIDEOANALYZER"
	DefaultModel = "gemini-3-pro-preview"
)

var ErrMissingVideoPath = errors.New("video path is required")

type Config struct {
	APIKey      string `mapstructure:"api_key"`
	Model       string `mapstructure:"model"`
	Prompt      string `mapstructure:"prompt"`
	PromptFile  string `mapstructure:"prompt_file"`
	BaseURL     string `mapstructure:"base_url"`
	Workers     int    `mapstructure:"workers"`
	LogLevel    string `mapstructure:"log_level"`
	Environment string `mapstructure:"environment"`
}

// NewViper returns a viper instance with defaults and environment bindings.
// Flags are bound on top of it by the command line layer.
func NewViper() *viper.Viper {
	v := viper.New()

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(`-`, `_`, `.`, `_`))
	v.AutomaticEnv()

	v.SetDefault("model", DefaultModel)
	v.SetDefault("prompt", "")
	v.SetDefault("workers", 4)
	v.SetDefault("log_level", "info")
	v.SetDefault("environment", "dev")

	// External API credentials do NOT use the prefix
	_ = v.BindEnv("api_key", "GEMINI_API_KEY")

	return v
}

// Load reads the env file and config file (when given) into v and returns the
// resolved configuration. It fails with gemini.ErrMissingAPIKey when no api key
// can be found.
func Load(v *viper.Viper) (*Config, error) {
	if envFile := v.GetString("env_file"); envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("failed to load env file '%s': %w", envFile, err)
		}
	}

	if configFile := v.GetString("config_file"); configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.PromptFile != "" {
		data, err := os.ReadFile(cfg.PromptFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read prompt file '%s': %w", cfg.PromptFile, err)
		}
		cfg.Prompt = string(data)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.APIKey) == "" {
		return fmt.Errorf("%w: export GEMINI_API_KEY or set api_key in the config file", gemini.ErrMissingAPIKey)
	}
	if c.Model == "" {
		c.Model = DefaultModel
	}
	return nil
}
