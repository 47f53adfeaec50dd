package sentry_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/debug-duck/go-duck/pkg/duck"
	"github.com/debug-duck/go-duck/pkg/llm"
	"github.com/debug-duck/go-duck/pkg/sentry"
	"github.com/debug-duck/go-duck/pkg/tts"
)

type stubComfort struct {
	phrase string
}

func (s *stubComfort) ComfortingPhrase(ctx context.Context) string { return s.phrase }

func newTestServer(t *testing.T, speaker tts.Provider) *sentry.Server {
	t.Helper()
	if speaker == nil {
		speaker = tts.NewMock()
	}
	return sentry.NewServer(sentry.Config{
		Addr:    ":0",
		Speaker: speaker,
		Comfort: &stubComfort{phrase: "You've got this!"},
		Face:    duck.NewFace(),
	})
}

func postJSON(t *testing.T, app interface {
	Test(*http.Request, ...int) (*http.Response, error)
}, path string, body any) *http.Response {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var out map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return out
}

func TestSpeak(t *testing.T) {
	mock := tts.NewMock()
	s := newTestServer(t, mock)

	resp := postJSON(t, s.App(), "/speak", sentry.SpeakRequest{Text: "hello there"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	body := decodeBody(t, resp)
	if body["status"] != "success" {
		t.Errorf("status field = %v", body["status"])
	}
	if got := mock.LastText(); got != "hello there" {
		t.Errorf("spoken text = %q, want %q", got, "hello there")
	}
}

func TestSpeak_EmptyText(t *testing.T) {
	mock := tts.NewMock()
	s := newTestServer(t, mock)

	for _, text := range []string{"", "   "} {
		resp := postJSON(t, s.App(), "/speak", sentry.SpeakRequest{Text: text})
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("text %q: status = %d, want 400", text, resp.StatusCode)
		}
		resp.Body.Close()
	}
	if n := mock.CallCount("Speak"); n != 0 {
		t.Errorf("TTS called %d times for empty text", n)
	}
}

func TestSpeak_TTSFailure(t *testing.T) {
	mock := tts.WithError(errors.New("aplay missing"))
	s := newTestServer(t, mock)

	resp := postJSON(t, s.App(), "/speak", sentry.SpeakRequest{Text: "hello"})
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", resp.StatusCode)
	}
}

func TestTriggerEmpathy(t *testing.T) {
	mock := tts.NewMock()
	s := newTestServer(t, mock)

	req := httptest.NewRequest(http.MethodGet, "/trigger-empathy", nil)
	resp, err := s.App().Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	if body["phrase"] != "You've got this!" {
		t.Errorf("phrase = %v", body["phrase"])
	}
	if got := mock.LastText(); got != "You've got this!" {
		t.Errorf("spoken text = %q", got)
	}
}

func TestTriggerEmpathy_SpeechFailureStillReturnsPhrase(t *testing.T) {
	mock := tts.WithError(errors.New("piper crashed"))
	s := newTestServer(t, mock)

	req := httptest.NewRequest(http.MethodGet, "/trigger-empathy", nil)
	resp, err := s.App().Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}

	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	if body["phrase"] != "You've got this!" {
		t.Errorf("phrase = %v, want generated phrase in error response", body["phrase"])
	}
}

func TestEmotion(t *testing.T) {
	s := newTestServer(t, nil)

	resp := postJSON(t, s.App(), "/emotion", sentry.EmotionRequest{Emotion: "happy"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	if body["emotion"] != "happy" {
		t.Errorf("emotion = %v, want happy", body["emotion"])
	}
}

func TestEmotion_Unknown(t *testing.T) {
	s := newTestServer(t, nil)

	resp := postJSON(t, s.App(), "/emotion", sentry.EmotionRequest{Emotion: "ecstatic"})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestStatus(t *testing.T) {
	s := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/status", nil)
	resp, err := s.App().Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	if body["status"] != "running" {
		t.Errorf("status field = %v", body["status"])
	}
	if body["expression"] != "neutral" {
		t.Errorf("expression = %v, want neutral", body["expression"])
	}
	monitor, ok := body["monitor"].(map[string]any)
	if !ok {
		t.Fatalf("monitor field missing: %v", body)
	}
	if monitor["running"] != false {
		t.Errorf("monitor.running = %v, want false without a camera", monitor["running"])
	}
	if body["llm"] != "fallback-only" {
		t.Errorf("llm = %v, want fallback-only without a health check", body["llm"])
	}
}

func TestStatus_LLMHealth(t *testing.T) {
	tests := []struct {
		name    string
		comfort sentry.PhraseGenerator
		want    string
	}{
		{"reachable", llm.NewRouter(llm.NewMock(), nil), "ok"},
		{"no key", llm.NewRouter(nil, nil), "fallback-only"},
		{"backend down", llm.NewRouter(llm.NewMock().WithError(errors.New("502")), nil), "unavailable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := sentry.NewServer(sentry.Config{
				Addr:    ":0",
				Speaker: tts.NewMock(),
				Comfort: tt.comfort,
				Face:    duck.NewFace(),
			})

			req := httptest.NewRequest(http.MethodGet, "/status", nil)
			resp, err := s.App().Test(req, -1)
			if err != nil {
				t.Fatalf("app.Test() error = %v", err)
			}
			body := decodeBody(t, resp)
			if body["llm"] != tt.want {
				t.Errorf("llm = %v, want %q", body["llm"], tt.want)
			}
		})
	}
}

func TestRequestID_Propagated(t *testing.T) {
	s := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/status", nil)
	req.Header.Set("X-Request-ID", "fixed-id")
	resp, err := s.App().Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	defer resp.Body.Close()

	if got := resp.Header.Get("X-Request-ID"); got != "fixed-id" {
		t.Errorf("X-Request-ID = %q, want fixed-id", got)
	}
}
