package fer

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/debug-duck/go-duck/pkg/emotion"
)

// FrustrationFunc is invoked when the frustration counter fires.
type FrustrationFunc func(ctx context.Context, ev *emotion.Event)

// LabelFunc receives every observed label, for driving the avatar.
type LabelFunc func(label emotion.Label)

// MonitorConfig holds the monitor setup.
type MonitorConfig struct {
	Sampler       Sampler
	Detector      *emotion.Detector
	Interval      time.Duration
	FrameSkip     int
	OnFrustration FrustrationFunc
	OnLabel       LabelFunc
	Logger        *slog.Logger
}

// Monitor drives the sampling loop: every Interval it reads the
// camera, and every FrameSkip-th frame it classifies the expression
// and feeds the label to the frustration detector. The detector is
// only ever touched from the Run goroutine; status reads go through
// the mutex-guarded snapshot.
type Monitor struct {
	sampler       Sampler
	detector      *emotion.Detector
	interval      time.Duration
	frameSkip     int
	onFrustration FrustrationFunc
	onLabel       LabelFunc
	logger        *slog.Logger

	mu      sync.Mutex
	last    emotion.Label
	count   int
	fired   int
	running bool
}

// NewMonitor validates the config and creates a Monitor.
func NewMonitor(cfg MonitorConfig) (*Monitor, error) {
	if cfg.Sampler == nil {
		return nil, fmt.Errorf("fer: sampler is required")
	}
	if cfg.Detector == nil {
		return nil, fmt.Errorf("fer: detector is required")
	}
	if cfg.Interval <= 0 {
		return nil, fmt.Errorf("fer: interval must be positive, got %v", cfg.Interval)
	}
	if cfg.FrameSkip < 1 {
		cfg.FrameSkip = 1
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	return &Monitor{
		sampler:       cfg.Sampler,
		detector:      cfg.Detector,
		interval:      cfg.Interval,
		frameSkip:     cfg.FrameSkip,
		onFrustration: cfg.OnFrustration,
		onLabel:       cfg.OnLabel,
		logger:        cfg.Logger.With("component", "fer.monitor"),
	}, nil
}

// Run samples until the context is canceled. It returns the context
// error on cancellation; sampling failures are logged and skipped.
func (m *Monitor) Run(ctx context.Context) error {
	m.setRunning(true)
	defer m.setRunning(false)

	m.logger.Info("emotion monitor started",
		"interval", m.interval,
		"frame_skip", m.frameSkip,
		"threshold", m.detector.Threshold(),
	)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	tick := 0
	for {
		select {
		case <-ctx.Done():
			m.logger.Info("emotion monitor stopped")
			return ctx.Err()
		case <-ticker.C:
		}

		tick++
		if tick%m.frameSkip != 0 {
			continue
		}

		label, err := m.sampler.Sample()
		if err != nil {
			m.logger.Warn("sample failed", "error", err)
			continue
		}

		m.observe(ctx, label)
	}
}

func (m *Monitor) observe(ctx context.Context, label emotion.Label) {
	ev, err := m.detector.Observe(label)
	if err != nil {
		m.logger.Warn("observation rejected", "label", label, "error", err)
		return
	}

	m.mu.Lock()
	m.last = label
	m.count = m.detector.Count()
	m.fired = m.detector.Fired()
	m.mu.Unlock()

	if m.onLabel != nil {
		m.onLabel(label)
	}

	if ev != nil {
		m.logger.Info("frustration threshold reached",
			"label", ev.Label,
			"observations", ev.Observations,
		)
		if m.onFrustration != nil {
			m.onFrustration(ctx, ev)
		}
	}
}

// Last returns the most recently observed label.
func (m *Monitor) Last() emotion.Label {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.last
}

// Status snapshots the frustration state for reporting.
func (m *Monitor) Status() (count, threshold, fired int, running bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.count, m.detector.Threshold(), m.fired, m.running
}

func (m *Monitor) setRunning(v bool) {
	m.mu.Lock()
	m.running = v
	m.mu.Unlock()
}
