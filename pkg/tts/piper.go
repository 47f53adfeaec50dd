package tts

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"
)

// Piper implements Provider by piping text through the Piper TTS binary into
// a playback command (aplay by default). Speak calls are serialized: the duck
// has one speaker, and overlapping phrases are worse than queued ones.
type Piper struct {
	config *Config
	logger *slog.Logger

	mu sync.Mutex
}

// NewPiper creates a Piper provider. It fails fast when the binary or the
// voice model is missing so a misconfigured Pi is caught at startup, not on
// the first empathy trigger.
func NewPiper(opts ...Option) (*Piper, error) {
	cfg := DefaultConfig()
	cfg.Apply(opts...)

	if _, err := os.Stat(cfg.Executable); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrExecutableNotFound, cfg.Executable)
	}
	if _, err := os.Stat(cfg.VoiceModel); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrVoiceModelNotFound, cfg.VoiceModel)
	}

	return &Piper{
		config: cfg,
		logger: cfg.Logger.With("component", "tts.piper"),
	}, nil
}

// Speak synthesizes text and plays it, blocking until playback completes.
func (p *Piper) Speak(ctx context.Context, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return WrapError("piper", ErrEmptyText)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.config.Timeout)
		defer cancel()
	}

	start := time.Now()
	p.logger.Info("speaking", "chars", len(text))

	synth := exec.CommandContext(ctx, p.config.Executable,
		"--model", p.config.VoiceModel,
		"--output_file", "-",
	)
	synth.Stdin = strings.NewReader(text)

	play := exec.CommandContext(ctx, p.config.Player, p.config.PlayerArgs...)

	audio, err := synth.StdoutPipe()
	if err != nil {
		return WrapError("piper", fmt.Errorf("stdout pipe: %w", err))
	}
	play.Stdin = audio

	if err := synth.Start(); err != nil {
		return WrapError("piper", fmt.Errorf("start piper: %w", err))
	}
	if err := play.Start(); err != nil {
		synth.Process.Kill()
		synth.Wait()
		return WrapError("piper", fmt.Errorf("start player: %w", err))
	}

	synthErr := synth.Wait()
	playErr := play.Wait()

	if ctx.Err() != nil {
		return WrapError("piper", ctx.Err())
	}
	if synthErr != nil {
		return WrapError("piper", fmt.Errorf("piper: %w", synthErr))
	}
	if playErr != nil {
		return WrapError("piper", fmt.Errorf("%s: %w", p.config.Player, playErr))
	}

	p.logger.Debug("speech complete", "elapsed", time.Since(start))
	return nil
}

// Health verifies the binary and voice model are still present.
func (p *Piper) Health(ctx context.Context) error {
	if _, err := os.Stat(p.config.Executable); err != nil {
		return WrapError("piper", ErrExecutableNotFound)
	}
	if _, err := os.Stat(p.config.VoiceModel); err != nil {
		return WrapError("piper", ErrVoiceModelNotFound)
	}
	return nil
}

// Close implements Provider. Piper holds no persistent resources.
func (p *Piper) Close() error {
	return nil
}

// Verify Piper implements Provider at compile time.
var _ Provider = (*Piper)(nil)
