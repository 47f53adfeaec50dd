package emotion

import (
	"fmt"
	"time"
)

// Event is a discrete frustration signal: enough sustained negative affect
// accumulated to cross the detector's threshold.
type Event struct {
	// Label is the observation that crossed the threshold.
	Label Label

	// Observations is the total number of Observe calls so far,
	// including the firing one.
	Observations int

	// At is when the firing observation was processed.
	At time.Time
}

// Detector accumulates frustration across observations and fires when the
// counter reaches the threshold.
//
// Counter rules per observation:
//   - absent label: no change (uncertainty is neutral, not calm)
//   - label in the frustration set: +1
//   - any other label: -decayStep, clamped at zero
//
// When the counter reaches the threshold it resets to zero within the same
// Observe call and an Event is returned, so two fires are always separated by
// at least threshold frustrated observations.
//
// Detector is not safe for concurrent use; the owning monitor loop must be
// the only writer.
type Detector struct {
	set       Set
	threshold int
	decayStep int

	count        int
	observations int
	fired        int
}

// New creates a Detector. The threshold is the count needed to fire and
// decayStep is subtracted per calm observation; both must be positive.
func New(set Set, threshold, decayStep int) (*Detector, error) {
	if threshold <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidThreshold, threshold)
	}
	if decayStep <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDecay, decayStep)
	}
	if set.Len() == 0 {
		return nil, ErrEmptySet
	}
	return &Detector{
		set:       set,
		threshold: threshold,
		decayStep: decayStep,
	}, nil
}

// Observe feeds one frame's classification into the detector. It returns a
// non-nil Event when this observation crossed the threshold. Labels outside
// the recognized set return ErrInvalidLabel and leave the counter untouched.
func (d *Detector) Observe(label Label) (*Event, error) {
	if !label.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidLabel, string(label))
	}

	d.observations++

	switch {
	case label == LabelNone:
		// no face or low confidence: neither calm nor frustrated
	case d.set.Contains(label):
		d.count++
	default:
		d.count -= d.decayStep
		if d.count < 0 {
			d.count = 0
		}
	}

	if d.count >= d.threshold {
		d.count = 0
		d.fired++
		return &Event{
			Label:        label,
			Observations: d.observations,
			At:           time.Now(),
		}, nil
	}

	return nil, nil
}

// Count returns the current frustration count, always in [0, threshold).
func (d *Detector) Count() int {
	return d.count
}

// Threshold returns the configured firing threshold.
func (d *Detector) Threshold() int {
	return d.threshold
}

// Fired returns how many events the detector has emitted.
func (d *Detector) Fired() int {
	return d.fired
}

// Reset clears the counter without firing. Used when monitoring restarts.
func (d *Detector) Reset() {
	d.count = 0
}
