package llm

import (
	"log/slog"
	"time"
)

// Default OpenRouter settings.
const (
	// DefaultBaseURL is the OpenRouter chat-completions endpoint root.
	DefaultBaseURL = "https://openrouter.ai/api/v1"

	// DefaultReferer identifies the app to OpenRouter.
	DefaultReferer = "http://github.com/debug-duck/go-duck"

	// ComfortModel is a creative model for empathetic phrases.
	ComfortModel = "deepseek/deepseek-chat"

	// CodingModel is used for debugging help.
	CodingModel = "anthropic/claude-3.5-sonnet"
)

// Config holds provider configuration.
type Config struct {
	// Connection
	BaseURL string
	APIKey  string
	Referer string

	// Model is the default when a request does not set one.
	Model string

	// Request defaults
	MaxTokens   int
	Temperature float64

	// Timeout bounds a single request.
	Timeout time.Duration

	// Observability
	Logger *slog.Logger
}

// Option is a functional option for configuring providers.
type Option func(*Config)

// WithBaseURL sets the API base URL.
func WithBaseURL(url string) Option {
	return func(c *Config) { c.BaseURL = url }
}

// WithAPIKey sets the API key.
func WithAPIKey(key string) Option {
	return func(c *Config) { c.APIKey = key }
}

// WithReferer sets the HTTP-Referer identification header.
func WithReferer(url string) Option {
	return func(c *Config) { c.Referer = url }
}

// WithModel sets the default model.
func WithModel(model string) Option {
	return func(c *Config) { c.Model = model }
}

// WithMaxTokens sets the default max tokens.
func WithMaxTokens(n int) Option {
	return func(c *Config) { c.MaxTokens = n }
}

// WithTemperature sets the default temperature.
func WithTemperature(t float64) Option {
	return func(c *Config) { c.Temperature = t }
}

// WithTimeout sets the request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Config) { c.Timeout = d }
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Config) { c.Logger = l }
}

// DefaultConfig returns sensible defaults for OpenRouter.
func DefaultConfig() *Config {
	return &Config{
		BaseURL:     DefaultBaseURL,
		Referer:     DefaultReferer,
		Model:       CodingModel,
		MaxTokens:   150,
		Temperature: 0.3,
		Timeout:     30 * time.Second,
		Logger:      slog.Default(),
	}
}

// Apply applies functional options to the config.
func (c *Config) Apply(opts ...Option) {
	for _, opt := range opts {
		opt(c)
	}
}

// Validate checks that required configuration is present.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return ErrNoAPIKey
	}
	return nil
}
