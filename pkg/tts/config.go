package tts

import (
	"log/slog"
	"time"
)

// Config holds TTS provider configuration.
// Use functional options (WithXxx) to set these values.
type Config struct {
	// Piper binary and voice model paths.
	Executable string
	VoiceModel string

	// Player is the playback command; audio is piped into its stdin.
	Player     string
	PlayerArgs []string

	// Timeout bounds a single Speak call, including playback.
	Timeout time.Duration

	// Observability
	Logger *slog.Logger
}

// Option is a functional option for configuring TTS providers.
type Option func(*Config)

// WithExecutable sets the path to the Piper binary.
func WithExecutable(path string) Option {
	return func(c *Config) { c.Executable = path }
}

// WithVoiceModel sets the path to the Piper voice model.
func WithVoiceModel(path string) Option {
	return func(c *Config) { c.VoiceModel = path }
}

// WithPlayer sets the playback command and its arguments.
func WithPlayer(cmd string, args ...string) Option {
	return func(c *Config) {
		c.Player = cmd
		c.PlayerArgs = args
	}
}

// WithTimeout bounds a single Speak call.
func WithTimeout(d time.Duration) Option {
	return func(c *Config) { c.Timeout = d }
}

// WithLogger sets the structured logger for the provider.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) { c.Logger = logger }
}

// DefaultConfig returns sensible defaults for a Pi with Piper installed
// alongside the binary.
func DefaultConfig() *Config {
	return &Config{
		Executable: "./piper/piper",
		VoiceModel: "./piper/en_US-lessac-medium.onnx",
		Player:     "aplay",
		// Piper emits 16-bit mono WAV on stdout; aplay can sniff the header.
		PlayerArgs: nil,
		// Long answers from the LLM take a while to play back.
		Timeout: 30 * time.Second,
		Logger:  slog.Default(),
	}
}

// Apply applies functional options to the config.
func (c *Config) Apply(opts ...Option) {
	for _, opt := range opts {
		opt(c)
	}
}
