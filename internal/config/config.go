package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"cognitive_screen/internal/markers"
	"cognitive_screen/internal/summary"
)

const envPrefix = "COGSCREEN"

type Summary struct {
	Model     string `mapstructure:"model" yaml:"model"`
	BaseURL   string `mapstructure:"base_url" yaml:"base_url"`
	APIKey    string `mapstructure:"api_key" yaml:"api_key"`
	MaxTokens int    `mapstructure:"max_tokens" yaml:"max_tokens"`
}

type Config struct {
	LogLevel            string             `mapstructure:"log_level" yaml:"log_level"`
	Workers             int                `mapstructure:"workers" yaml:"workers"`
	CrossSessionTimeout time.Duration      `mapstructure:"cross_session_timeout" yaml:"cross_session_timeout"`
	Workspace           string             `mapstructure:"workspace" yaml:"workspace"`
	DB                  string             `mapstructure:"db" yaml:"db"`
	Thresholds          markers.Thresholds `mapstructure:"thresholds" yaml:"thresholds"`
	Summary             Summary            `mapstructure:"summary" yaml:"summary"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "info")
	v.SetDefault("workers", 0)
	v.SetDefault("cross_session_timeout", "30s")
	v.SetDefault("workspace", "")
	v.SetDefault("db", "")

	th := markers.DefaultThresholds()
	v.SetDefault("thresholds.ttr_low", th.TTRLow)
	v.SetDefault("thresholds.filler_rate_high", th.FillerRateHigh)
	v.SetDefault("thresholds.pause_rate_high", th.PauseRateHigh)
	v.SetDefault("thresholds.pronoun_ratio_high", th.PronounRatioHigh)
	v.SetDefault("thresholds.generic_pronoun_high", th.GenericPronounHigh)
	v.SetDefault("thresholds.repetition_similarity", th.RepetitionSimilarity)
	v.SetDefault("thresholds.hedge_rate_high", th.HedgeRateHigh)

	v.SetDefault("summary.model", summary.DefaultModel)
	v.SetDefault("summary.base_url", "")
	v.SetDefault("summary.api_key", "")
	v.SetDefault("summary.max_tokens", summary.DefaultMaxTokens)
}

// Load reads defaults, then the YAML file at path, then COGSCREEN_* variables.
// With an empty path it looks for config/<CONFIG_ENV>/config.yaml and carries
// on with defaults when none exists.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("summary.api_key", envPrefix+"_SUMMARY_API_KEY", "OPENAI_API_KEY"); err != nil {
		return nil, fmt.Errorf("bind api key env: %w", err)
	}

	if path == "" {
		path = guessPath()
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Thresholds.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if cfg.CrossSessionTimeout < 0 {
		return nil, errors.New("invalid config: cross_session_timeout must not be negative")
	}
	return &cfg, nil
}

func guessPath() string {
	env := os.Getenv("CONFIG_ENV")
	if env == "" {
		env = "dev"
	}
	p := filepath.Join("config", env, "config.yaml")
	if _, err := os.Stat(p); err != nil {
		return ""
	}
	return p
}
