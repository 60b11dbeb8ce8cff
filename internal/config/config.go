// Package config reads harmonizer settings from the environment and an
// optional .env file.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"lead-harmonizer/internal/classify"
)

// Classifier modes.
const (
	ModeAuto   = "auto"
	ModeOpenAI = "openai"
	ModeRules  = "rules"
)

type Config struct {
	Classifier    string
	Workers       int
	MinConfidence float64
	RulesFile     string
	Addr          string
	OpenAI        OpenAIConfig
}

type OpenAIConfig struct {
	APIKey    string
	Model     string
	BaseURL   string
	Timeout   time.Duration
	RateLimit float64
	Burst     int
}

// Load reads .env, if present, then the environment. Unparsable numbers
// fall back to their defaults.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Classifier:    getEnv("HARMONIZER_CLASSIFIER", ModeAuto),
		Workers:       getInt("HARMONIZER_WORKERS", 1),
		MinConfidence: getFloat("HARMONIZER_MIN_CONFIDENCE", classify.DefaultMinConfidence),
		RulesFile:     getEnv("HARMONIZER_RULES_FILE", ""),
		Addr:          getEnv("HARMONIZER_ADDR", ":8080"),
		OpenAI: OpenAIConfig{
			APIKey:    getEnv("OPENAI_API_KEY", ""),
			Model:     getEnv("OPENAI_MODEL", classify.DefaultModel),
			BaseURL:   getEnv("OPENAI_BASE_URL", ""),
			Timeout:   getDuration("HARMONIZER_TIMEOUT", classify.DefaultTimeout),
			RateLimit: getFloat("HARMONIZER_RATE_LIMIT", classify.DefaultRatePerSecond),
			Burst:     getInt("HARMONIZER_RATE_BURST", classify.DefaultBurst),
		},
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch c.Classifier {
	case ModeAuto, ModeOpenAI, ModeRules:
	default:
		return fmt.Errorf("unknown classifier mode %q (want %s, %s or %s)", c.Classifier, ModeAuto, ModeOpenAI, ModeRules)
	}

	if c.Workers < 1 {
		return fmt.Errorf("workers must be positive, got %d", c.Workers)
	}

	if c.MinConfidence < 0 || c.MinConfidence > 1 {
		return fmt.Errorf("min confidence must be within [0,1], got %g", c.MinConfidence)
	}

	if c.Classifier == ModeOpenAI && c.OpenAI.APIKey == "" {
		return fmt.Errorf("classifier mode %q requires OPENAI_API_KEY", ModeOpenAI)
	}

	return nil
}

// Mode resolves ModeAuto to ModeOpenAI when an API key is set and to
// ModeRules otherwise.
func (c *Config) Mode() string {
	if c.Classifier != ModeAuto {
		return c.Classifier
	}

	if c.OpenAI.APIKey != "" {
		return ModeOpenAI
	}

	return ModeRules
}

// ClassifierConfig returns the classification policy settings.
func (c *Config) ClassifierConfig() classify.Config {
	cfg := classify.DefaultConfig()
	cfg.MinConfidence = c.MinConfidence

	return cfg
}

// OpenAIClientConfig returns the settings for classify.NewOpenAI.
func (c *Config) OpenAIClientConfig() classify.OpenAIConfig {
	return classify.OpenAIConfig{
		APIKey:        c.OpenAI.APIKey,
		Model:         c.OpenAI.Model,
		BaseURL:       c.OpenAI.BaseURL,
		Timeout:       c.OpenAI.Timeout,
		RatePerSecond: c.OpenAI.RateLimit,
		Burst:         c.OpenAI.Burst,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	if n, err := strconv.Atoi(getEnv(key, "")); err == nil {
		return n
	}
	return defaultValue
}

func getFloat(key string, defaultValue float64) float64 {
	if f, err := strconv.ParseFloat(getEnv(key, ""), 64); err == nil {
		return f
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if d, err := time.ParseDuration(getEnv(key, "")); err == nil {
		return d
	}
	return defaultValue
}
