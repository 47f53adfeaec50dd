// Package emotion turns a noisy stream of per-frame emotion classifications
// into discrete frustration events.
//
// The Detector is a pure counter with asymmetric increment/decay and a
// reset-after-fire rule. It has no timing component: only the arrival order of
// observations matters. Sampling cadence, camera handling, and everything
// I/O-bound live in pkg/fer; the comfort action taken when an event fires is
// the caller's job.
package emotion

// Label is a single-frame emotion classification.
// The zero value LabelNone means no face was found or classifier confidence
// was below threshold.
type Label string

// The recognized emotion labels, matching the FER model's output classes.
const (
	LabelNone     Label = ""
	LabelAngry    Label = "angry"
	LabelDisgust  Label = "disgust"
	LabelFear     Label = "fear"
	LabelHappy    Label = "happy"
	LabelNeutral  Label = "neutral"
	LabelSad      Label = "sad"
	LabelSurprise Label = "surprise"
)

// Labels lists the model's output classes in index order.
var Labels = []Label{
	LabelAngry,
	LabelDisgust,
	LabelFear,
	LabelHappy,
	LabelNeutral,
	LabelSad,
	LabelSurprise,
}

// Valid reports whether l is a recognized label. LabelNone is valid.
func (l Label) Valid() bool {
	if l == LabelNone {
		return true
	}
	for _, known := range Labels {
		if l == known {
			return true
		}
	}
	return false
}

// String returns the label name, or "none" for the absent label.
func (l Label) String() string {
	if l == LabelNone {
		return "none"
	}
	return string(l)
}

// Set is an immutable subset of labels treated as frustration.
type Set struct {
	members map[Label]struct{}
}

// NewSet builds a frustration set from the given labels.
func NewSet(labels ...Label) Set {
	m := make(map[Label]struct{}, len(labels))
	for _, l := range labels {
		m[l] = struct{}{}
	}
	return Set{members: m}
}

// DefaultFrustrationSet returns the emotions treated as frustration by default.
func DefaultFrustrationSet() Set {
	return NewSet(LabelAngry, LabelDisgust, LabelSad)
}

// Contains reports whether the set includes l.
func (s Set) Contains(l Label) bool {
	_, ok := s.members[l]
	return ok
}

// Len returns the number of labels in the set.
func (s Set) Len() int {
	return len(s.members)
}
