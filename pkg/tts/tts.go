// Package tts provides a unified interface for text-to-speech providers.
//
// The duck speaks through the Pi's speaker, so providers synthesize and play
// in one step. The default backend is Piper, a local neural TTS binary, piped
// into aplay. All providers implement the Provider interface, enabling
// fallback chains and mock-based testing without audio hardware.
//
// Example usage:
//
//	provider, _ := tts.NewPiper(
//	    tts.WithExecutable("./piper/piper"),
//	    tts.WithVoiceModel("./piper/en_US-lessac-medium.onnx"),
//	)
//	defer provider.Close()
//
//	err := provider.Speak(ctx, "Hello! I am the Debug Duck.")
package tts

import "context"

// Provider defines the TTS provider interface.
type Provider interface {
	// Speak synthesizes the text and plays it through the speaker,
	// blocking until playback finishes or ctx is cancelled.
	Speak(ctx context.Context, text string) error

	// Health checks that the provider can synthesize speech.
	Health(ctx context.Context) error

	// Close releases any resources held by the provider.
	Close() error
}
