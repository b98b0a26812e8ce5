// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package config handles application configuration loading from environment
// variables, optionally layered on a YAML file. It provides a centralized
// Config struct used across the application.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// FileEnv names the environment variable that points at an optional YAML
// config file. Environment variables always win over file values.
const FileEnv = "WORLDPULSE_CONFIG"

// Config holds all application configuration values.
type Config struct {
	// Server settings
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	Env      string `yaml:"env"` // "development", "production", "testing"
	LogLevel string `yaml:"log_level"`

	// Public site identity
	SiteName string `yaml:"site_name"`
	SiteURL  string `yaml:"site_url"`

	// Valkey (Redis-compatible page cache). Disabled when ValkeyHost is empty.
	ValkeyHost     string `yaml:"valkey_host"`
	ValkeyPort     string `yaml:"valkey_port"`
	ValkeyPassword string `yaml:"valkey_password"`

	// AI provider settings
	AIProvider string `yaml:"ai_provider"` // "gemini", "genai", "openai", "claude", "mistral"

	OpenAIKey        string `yaml:"openai_api_key"`
	OpenAIModel      string `yaml:"openai_model"`
	OpenAIModelImage string `yaml:"openai_model_image"`
	OpenAIBaseURL    string `yaml:"openai_base_url"`

	GeminiKey        string `yaml:"gemini_api_key"`
	GeminiModel      string `yaml:"gemini_model"`
	GeminiModelImage string `yaml:"gemini_model_image"`
	GeminiTrendModel string `yaml:"gemini_trend_model"`
	GeminiBaseURL    string `yaml:"gemini_base_url"`

	ClaudeKey     string `yaml:"claude_api_key"`
	ClaudeModel   string `yaml:"claude_model"`
	ClaudeBaseURL string `yaml:"claude_base_url"`

	MistralKey     string `yaml:"mistral_api_key"`
	MistralModel   string `yaml:"mistral_model"`
	MistralBaseURL string `yaml:"mistral_base_url"`

	// S3-compatible object storage for cover images. Optional.
	S3Endpoint  string `yaml:"s3_endpoint"`
	S3Region    string `yaml:"s3_region"`
	S3AccessKey string `yaml:"s3_access_key"`
	S3SecretKey string `yaml:"s3_secret_key"`
	S3Bucket    string `yaml:"s3_bucket"`
	S3PublicURL string `yaml:"s3_public_url"`

	// Background work
	TrendInterval     time.Duration `yaml:"trend_interval"`
	GenerationTimeout time.Duration `yaml:"generation_timeout"`
	// RateLimitGenerate is the per-IP budget for POST /admin/generate, per minute.
	RateLimitGenerate int `yaml:"rate_limit_generate"`
}

func defaults() *Config {
	return &Config{
		Host:     "0.0.0.0",
		Port:     "8080",
		Env:      "development",
		LogLevel: "info",

		SiteName: "WorldPulse",
		SiteURL:  "http://localhost:8080",

		ValkeyPort: "6379",

		AIProvider: "gemini",

		OpenAIModel:   "gpt-4o",
		OpenAIBaseURL: "https://api.openai.com/v1",

		GeminiModel:      "gemini-3-pro-preview",
		GeminiModelImage: "gemini-2.5-flash-image",
		GeminiTrendModel: "gemini-3-flash-preview",
		GeminiBaseURL:    "https://generativelanguage.googleapis.com",

		ClaudeModel:   "claude-sonnet-4-6",
		ClaudeBaseURL: "https://api.anthropic.com",

		MistralModel:   "mistral-large-latest",
		MistralBaseURL: "https://api.mistral.ai/v1",

		S3Region: "auto",

		TrendInterval:     30 * time.Minute,
		GenerationTimeout: 3 * time.Minute,
		RateLimitGenerate: 6,
	}
}

// Load builds the configuration from defaults, the optional YAML file named
// by WORLDPULSE_CONFIG, and environment variables, in that order of
// precedence (lowest first). Returns an error if critical values are missing
// in production mode.
func Load() (*Config, error) {
	cfg := defaults()

	if path := os.Getenv(FileEnv); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	c.Host = envOrDefault("APP_HOST", c.Host)
	c.Port = envOrDefault("APP_PORT", c.Port)
	c.Env = envOrDefault("APP_ENV", c.Env)
	c.LogLevel = envOrDefault("LOG_LEVEL", c.LogLevel)

	c.SiteName = envOrDefault("SITE_NAME", c.SiteName)
	c.SiteURL = strings.TrimRight(envOrDefault("SITE_URL", c.SiteURL), "/")

	c.ValkeyHost = envOrDefault("VALKEY_HOST", c.ValkeyHost)
	c.ValkeyPort = envOrDefault("VALKEY_PORT", c.ValkeyPort)
	c.ValkeyPassword = envOrDefault("VALKEY_PASSWORD", c.ValkeyPassword)

	c.AIProvider = strings.ToLower(envOrDefault("AI_PROVIDER", c.AIProvider))

	c.OpenAIKey = envOrDefault("OPENAI_API_KEY", c.OpenAIKey)
	c.OpenAIModel = envOrDefault("OPENAI_MODEL", c.OpenAIModel)
	c.OpenAIModelImage = envOrDefault("OPENAI_MODEL_IMAGE", c.OpenAIModelImage)
	c.OpenAIBaseURL = envOrDefault("OPENAI_BASE_URL", c.OpenAIBaseURL)

	c.GeminiKey = envOrDefault("GEMINI_API_KEY", c.GeminiKey)
	c.GeminiModel = envOrDefault("GEMINI_MODEL", c.GeminiModel)
	c.GeminiModelImage = envOrDefault("GEMINI_MODEL_IMAGE", c.GeminiModelImage)
	c.GeminiTrendModel = envOrDefault("GEMINI_TREND_MODEL", c.GeminiTrendModel)
	c.GeminiBaseURL = envOrDefault("GEMINI_BASE_URL", c.GeminiBaseURL)

	c.ClaudeKey = envOrDefault("CLAUDE_API_KEY", c.ClaudeKey)
	c.ClaudeModel = envOrDefault("CLAUDE_MODEL", c.ClaudeModel)
	c.ClaudeBaseURL = envOrDefault("CLAUDE_BASE_URL", c.ClaudeBaseURL)

	c.MistralKey = envOrDefault("MISTRAL_API_KEY", c.MistralKey)
	c.MistralModel = envOrDefault("MISTRAL_MODEL", c.MistralModel)
	c.MistralBaseURL = envOrDefault("MISTRAL_BASE_URL", c.MistralBaseURL)

	c.S3Endpoint = envOrDefault("S3_ENDPOINT", c.S3Endpoint)
	c.S3Region = envOrDefault("S3_REGION", c.S3Region)
	c.S3AccessKey = envOrDefault("S3_ACCESS_KEY", c.S3AccessKey)
	c.S3SecretKey = envOrDefault("S3_SECRET_KEY", c.S3SecretKey)
	c.S3Bucket = envOrDefault("S3_BUCKET", c.S3Bucket)
	c.S3PublicURL = envOrDefault("S3_PUBLIC_URL", c.S3PublicURL)

	var err error
	if c.TrendInterval, err = envDuration("TREND_INTERVAL", c.TrendInterval); err != nil {
		return err
	}
	if c.GenerationTimeout, err = envDuration("GENERATION_TIMEOUT", c.GenerationTimeout); err != nil {
		return err
	}
	if v := os.Getenv("RATE_LIMIT_GENERATE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return fmt.Errorf("RATE_LIMIT_GENERATE must be a positive integer, got %q", v)
		}
		c.RateLimitGenerate = n
	}
	return nil
}

func (c *Config) validate() error {
	switch c.AIProvider {
	case "gemini", "genai", "openai", "claude", "mistral":
	default:
		return fmt.Errorf("AI_PROVIDER %q is not supported", c.AIProvider)
	}
	if c.TrendInterval <= 0 {
		return fmt.Errorf("TREND_INTERVAL must be positive")
	}
	if c.GenerationTimeout <= 0 {
		return fmt.Errorf("GENERATION_TIMEOUT must be positive")
	}

	if c.Env == "production" && c.ActiveKey() == "" {
		return fmt.Errorf("%s must be set in production", c.ActiveKeyEnv())
	}
	return nil
}

// ActiveKey returns the API key of the active AI provider.
func (c *Config) ActiveKey() string {
	switch c.AIProvider {
	case "openai":
		return c.OpenAIKey
	case "claude":
		return c.ClaudeKey
	case "mistral":
		return c.MistralKey
	default:
		return c.GeminiKey
	}
}

// ActiveKeyEnv names the environment variable holding ActiveKey.
func (c *Config) ActiveKeyEnv() string {
	switch c.AIProvider {
	case "openai":
		return "OPENAI_API_KEY"
	case "claude":
		return "CLAUDE_API_KEY"
	case "mistral":
		return "MISTRAL_API_KEY"
	default:
		return "GEMINI_API_KEY"
	}
}

// ActiveModel returns the draft model name of the active provider.
func (c *Config) ActiveModel() string {
	switch c.AIProvider {
	case "openai":
		return c.OpenAIModel
	case "claude":
		return c.ClaudeModel
	case "mistral":
		return c.MistralModel
	default:
		return c.GeminiModel
	}
}

// TrendModel returns the model override for trend fetches. Only the Gemini
// providers have a dedicated fast model; others use their default.
func (c *Config) TrendModel() string {
	if c.AIProvider == "gemini" || c.AIProvider == "genai" {
		return c.GeminiTrendModel
	}
	return ""
}

// Addr returns the server listen address (host:port).
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// IsDev returns true if the application is running in development mode.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// CacheEnabled reports whether a Valkey page cache is configured.
func (c *Config) CacheEnabled() bool {
	return c.ValkeyHost != ""
}

// envOrDefault reads an environment variable, returning a fallback if unset or empty.
func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}
