// Package config provides environment-based configuration for go-duck commands.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Defaults for the two processes.
const (
	DefaultSentryAddr = ":5000"
	DefaultLaptopAddr = ":5001"

	DefaultButtonPin      = 17
	DefaultDebounce       = time.Second
	DefaultFrustThreshold = 100
	DefaultDecayStep      = 2
	DefaultFrameSkip      = 2
	DefaultConfidence     = 0.5
	DefaultSampleInterval = 100 * time.Millisecond

	DefaultCascadePath  = "./models/haarcascade_frontalface_default.xml"
	DefaultEmotionModel = "./models/emotion.onnx"
)

// Env returns the value of an environment variable, or the default if unset.
func Env(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// EnvInt returns an integer environment variable, or the default if unset
// or unparseable.
func EnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

// EnvFloat returns a float environment variable, or the default if unset
// or unparseable.
func EnvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

// EnvDuration returns a duration environment variable ("1s", "250ms"), or the
// default if unset or unparseable. A bare number is read as seconds.
func EnvDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if f, err := strconv.ParseFloat(v, 64); err == nil {
		return time.Duration(f * float64(time.Second))
	}
	return def
}

// EnvRequired returns an environment variable or exits with a usage message.
func EnvRequired(key, usage string) string {
	v := os.Getenv(key)
	if v == "" {
		fmt.Fprintf(os.Stderr, "Error: %s environment variable is required\n", key)
		fmt.Fprintf(os.Stderr, "Usage: %s\n", usage)
		os.Exit(1)
	}
	return v
}

// SentryAddr returns the listen address for the sentry server.
func SentryAddr() string {
	return Env("SENTRY_ADDR", DefaultSentryAddr)
}

// LaptopAddr returns the listen address for the laptop server.
func LaptopAddr() string {
	return Env("LAPTOP_ADDR", DefaultLaptopAddr)
}

// SentryURL returns the base URL the laptop uses to reach the Pi.
func SentryURL() string {
	return Env("SENTRY_URL", "http://localhost:5000")
}

// LaptopURL returns the base URL the Pi uses to reach the laptop.
func LaptopURL() string {
	return Env("LAPTOP_URL", "http://localhost:5001")
}

// OpenRouterKey returns the OpenRouter API key, or "" when unset.
func OpenRouterKey() string {
	return os.Getenv("OPENROUTER_API_KEY")
}

// LogLevel returns the configured log level.
func LogLevel() string {
	return Env("LOG_LEVEL", "info")
}

// CascadePath returns the Haar cascade XML path for face detection.
func CascadePath() string {
	return Env("FACE_CASCADE_PATH", DefaultCascadePath)
}

// EmotionModelPath returns the path of the expression ONNX model.
func EmotionModelPath() string {
	return Env("EMOTION_MODEL_PATH", DefaultEmotionModel)
}

// ORTLibPath returns the onnxruntime shared library path, or ""
// when the library is on the default search path.
func ORTLibPath() string {
	return os.Getenv("ONNXRUNTIME_LIB_PATH")
}

// FrustrationThreshold returns the counter value at which the
// frustration detector fires.
func FrustrationThreshold() int {
	return EnvInt("FER_FRUSTRATION_THRESHOLD", DefaultFrustThreshold)
}

// DecayStep returns how much the frustration counter decays on a
// calm frame.
func DecayStep() int {
	return EnvInt("FER_DECAY_STEP", DefaultDecayStep)
}

// FrameSkip returns the frame-skip factor of the camera monitor.
func FrameSkip() int {
	return EnvInt("FER_FRAME_SKIP", DefaultFrameSkip)
}

// ConfidenceThreshold returns the minimum classification confidence.
func ConfidenceThreshold() float64 {
	return EnvFloat("FER_CONFIDENCE_THRESHOLD", DefaultConfidence)
}

// SampleInterval returns the camera sampling cadence.
func SampleInterval() time.Duration {
	return EnvDuration("FER_SAMPLE_INTERVAL", DefaultSampleInterval)
}

// ButtonPin returns the GPIO pin of the help button.
func ButtonPin() int {
	return EnvInt("BUTTON_GPIO_PIN", DefaultButtonPin)
}

// ButtonDebounce returns the debounce window of the help button.
func ButtonDebounce() time.Duration {
	return EnvDuration("BUTTON_DEBOUNCE_TIME", DefaultDebounce)
}

// PiperExecutable returns the piper binary path, or "" to use the
// speech package's default.
func PiperExecutable() string {
	return os.Getenv("PIPER_EXECUTABLE_PATH")
}

// PiperVoiceModel returns the piper voice model path, or "" to use
// the speech package's default.
func PiperVoiceModel() string {
	return os.Getenv("PIPER_VOICE_MODEL")
}
