package laptop

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/debug-duck/go-duck/internal/httpc"
)

// Duck is the laptop's view of the Pi: something that can voice text
// and report whether it is reachable.
type Duck interface {
	Speak(ctx context.Context, text string) error
	Health(ctx context.Context) error
}

// PiClient talks to the sentry server on the Pi.
type PiClient struct {
	baseURL string
	http    *http.Client
}

// NewPiClient creates a client for the sentry at baseURL, e.g.
// "http://duckpi.local:5000".
func NewPiClient(baseURL string, timeout time.Duration) *PiClient {
	return &PiClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    httpc.NewClient(timeout),
	}
}

// Speak asks the duck to voice the given text.
func (c *PiClient) Speak(ctx context.Context, text string) error {
	payload, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return fmt.Errorf("laptop: marshal speak request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/speak", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("laptop: build speak request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("laptop: duck unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("laptop: duck speak failed: status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return nil
}

// Health checks the sentry's /status endpoint.
func (c *PiClient) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/status", nil)
	if err != nil {
		return fmt.Errorf("laptop: build status request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("laptop: duck unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("laptop: duck status %d", resp.StatusCode)
	}
	return nil
}

var _ Duck = (*PiClient)(nil)
