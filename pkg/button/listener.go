package button

import (
	"fmt"
	"log/slog"

	"github.com/warthog618/go-gpiocdev"
)

const defaultChip = "gpiochip0"

// PressFunc is invoked once per debounced button press.
type PressFunc func()

// Listener watches a GPIO pin for rising edges and invokes the press
// callback through the debouncer.
type Listener struct {
	line     *gpiocdev.Line
	debounce *Debouncer
	onPress  PressFunc
	logger   *slog.Logger
}

// Config holds the listener setup.
type Config struct {
	Chip     string
	Pin      int
	Debounce *Debouncer
	OnPress  PressFunc
	Logger   *slog.Logger
}

// NewListener requests the GPIO line and starts delivering debounced
// press events to the callback. Call Close to release the line.
func NewListener(cfg Config) (*Listener, error) {
	if cfg.Chip == "" {
		cfg.Chip = defaultChip
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.OnPress == nil {
		return nil, fmt.Errorf("button: press callback is required")
	}
	if cfg.Debounce == nil {
		return nil, fmt.Errorf("button: debouncer is required")
	}

	l := &Listener{
		debounce: cfg.Debounce,
		onPress:  cfg.OnPress,
		logger:   cfg.Logger.With("component", "button", "pin", cfg.Pin),
	}

	line, err := gpiocdev.RequestLine(cfg.Chip, cfg.Pin,
		gpiocdev.AsInput,
		gpiocdev.WithPullDown,
		gpiocdev.WithRisingEdge,
		gpiocdev.WithEventHandler(l.handleEvent),
	)
	if err != nil {
		return nil, fmt.Errorf("button: request line %d on %s: %w", cfg.Pin, cfg.Chip, err)
	}
	l.line = line

	l.logger.Info("button listener started")
	return l, nil
}

func (l *Listener) handleEvent(evt gpiocdev.LineEvent) {
	if evt.Type != gpiocdev.LineEventRisingEdge {
		return
	}
	if !l.debounce.Allow() {
		l.logger.Debug("press ignored by debounce")
		return
	}
	l.logger.Info("button pressed")
	l.onPress()
}

// Close releases the GPIO line.
func (l *Listener) Close() error {
	return l.line.Close()
}
