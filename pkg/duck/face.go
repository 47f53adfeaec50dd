package duck

import (
	"log/slog"
	"sync"
	"time"
)

// ChangeFunc is notified whenever the face changes expression.
type ChangeFunc func(Expression)

// Face is the duck's displayed expression with support for temporary
// expressions that revert after a delay. Safe for concurrent use.
type Face struct {
	mu       sync.Mutex
	current  Expression
	revert   *time.Timer
	onChange ChangeFunc
	logger   *slog.Logger
}

// NewFace creates a face showing the neutral expression.
func NewFace() *Face {
	return &Face{
		current: ExpressionNeutral,
		logger:  slog.Default().With("component", "duck.face"),
	}
}

// OnChange registers the change callback. Must be set before the face is
// shared across goroutines.
func (f *Face) OnChange(fn ChangeFunc) {
	f.onChange = fn
}

// Current returns the currently displayed expression.
func (f *Face) Current() Expression {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.current
}

// Set changes the displayed expression. Unknown expressions fall back to
// neutral. Any pending revert is cancelled.
func (f *Face) Set(e Expression) {
	if !e.Valid() {
		f.logger.Warn("unknown expression, falling back to neutral", "expression", string(e))
		e = ExpressionNeutral
	}

	f.mu.Lock()
	f.cancelRevertLocked()
	changed := f.current != e
	f.current = e
	f.mu.Unlock()

	if changed {
		f.logger.Info("expression changed", "expression", e.String())
		f.notify(e)
	}
}

// SetFor shows an expression for the given duration, then reverts to the
// given resting expression. A later Set or SetFor cancels the pending revert.
func (f *Face) SetFor(e Expression, d time.Duration, rest Expression) {
	f.Set(e)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.cancelRevertLocked()
	f.revert = time.AfterFunc(d, func() {
		f.Set(rest)
	})
}

func (f *Face) cancelRevertLocked() {
	if f.revert != nil {
		f.revert.Stop()
		f.revert = nil
	}
}

func (f *Face) notify(e Expression) {
	if f.onChange != nil {
		f.onChange(e)
	}
}
