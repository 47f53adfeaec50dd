// Package button handles the physical help button on the duck: a
// momentary switch on a GPIO pin, debounced so one press triggers
// exactly one action.
package button

import (
	"sync"
	"time"
)

// Debouncer suppresses repeat triggers inside a fixed window. It is
// safe for use from the GPIO event goroutine.
type Debouncer struct {
	mu       sync.Mutex
	interval time.Duration
	last     time.Time
	now      func() time.Time
}

// NewDebouncer creates a debouncer with the given minimum interval
// between accepted triggers.
func NewDebouncer(interval time.Duration) *Debouncer {
	return &Debouncer{interval: interval, now: time.Now}
}

// Allow reports whether a trigger at this moment should be acted on.
// The first call always passes.
func (d *Debouncer) Allow() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	now := d.now()
	if !d.last.IsZero() && now.Sub(d.last) < d.interval {
		return false
	}
	d.last = now
	return true
}
