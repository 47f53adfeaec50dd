package tts_test

import (
	"context"
	"errors"
	"testing"

	"github.com/debug-duck/go-duck/pkg/tts"
)

func TestMockProvider(t *testing.T) {
	mock := tts.NewMock()
	ctx := context.Background()

	t.Run("Speak succeeds", func(t *testing.T) {
		if err := mock.Speak(ctx, "Hello world"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if mock.LastText() != "Hello world" {
			t.Errorf("LastText: got %q", mock.LastText())
		}
	})

	t.Run("Health returns nil", func(t *testing.T) {
		if err := mock.Health(ctx); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("Calls are tracked", func(t *testing.T) {
		if mock.CallCount("Speak") != 1 {
			t.Errorf("expected 1 Speak call, got %d", mock.CallCount("Speak"))
		}
		if mock.CallCount("Health") != 1 {
			t.Errorf("expected 1 Health call, got %d", mock.CallCount("Health"))
		}
	})

	t.Run("Reset clears calls", func(t *testing.T) {
		mock.Reset()
		if len(mock.Calls()) != 0 {
			t.Errorf("expected no calls after reset, got %d", len(mock.Calls()))
		}
	})
}

func TestChain_FallsBack(t *testing.T) {
	ctx := context.Background()
	failing := tts.WithError(errors.New("speaker unplugged"))
	working := tts.NewMock()

	chain, err := tts.NewChain(failing, working)
	if err != nil {
		t.Fatalf("NewChain: %v", err)
	}

	if err := chain.Speak(ctx, "testing fallback"); err != nil {
		t.Fatalf("chain should succeed via fallback: %v", err)
	}
	if working.CallCount("Speak") != 1 {
		t.Errorf("fallback provider not invoked")
	}
}

func TestChain_AllFail(t *testing.T) {
	ctx := context.Background()
	chain, err := tts.NewChain(
		tts.WithError(errors.New("first failed")),
		tts.WithError(errors.New("second failed")),
	)
	if err != nil {
		t.Fatalf("NewChain: %v", err)
	}

	err = chain.Speak(ctx, "doomed")
	if err == nil {
		t.Fatal("expected error when all providers fail")
	}

	var chainErr *tts.ChainError
	if !errors.As(err, &chainErr) {
		t.Fatalf("expected ChainError, got %T", err)
	}
	if len(chainErr.Errors) != 2 {
		t.Errorf("expected 2 errors, got %d", len(chainErr.Errors))
	}
}

func TestChain_RequiresProviders(t *testing.T) {
	if _, err := tts.NewChain(); !errors.Is(err, tts.ErrProviderUnavailable) {
		t.Errorf("got %v, want ErrProviderUnavailable", err)
	}
}

func TestChain_HealthPassesWithOneHealthy(t *testing.T) {
	ctx := context.Background()
	chain, _ := tts.NewChain(
		tts.WithError(errors.New("down")),
		tts.NewMock(),
	)
	if err := chain.Health(ctx); err != nil {
		t.Errorf("health should pass with one healthy provider: %v", err)
	}
}

func TestPiper_MissingExecutable(t *testing.T) {
	_, err := tts.NewPiper(
		tts.WithExecutable("/nonexistent/piper"),
		tts.WithVoiceModel("/nonexistent/model.onnx"),
	)
	if !errors.Is(err, tts.ErrExecutableNotFound) {
		t.Errorf("got %v, want ErrExecutableNotFound", err)
	}
}
