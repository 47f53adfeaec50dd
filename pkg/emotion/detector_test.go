package emotion

import (
	"errors"
	"testing"
)

func mustDetector(t *testing.T, threshold, decay int) *Detector {
	t.Helper()
	d, err := New(DefaultFrustrationSet(), threshold, decay)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return d
}

// feed runs a sequence of observations and returns the indexes that fired.
func feed(t *testing.T, d *Detector, labels []Label) []int {
	t.Helper()
	var fired []int
	for i, l := range labels {
		ev, err := d.Observe(l)
		if err != nil {
			t.Fatalf("Observe(%q) at %d: %v", l, i, err)
		}
		if ev != nil {
			fired = append(fired, i)
		}
	}
	return fired
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name      string
		set       Set
		threshold int
		decay     int
		wantErr   error
	}{
		{"valid", DefaultFrustrationSet(), 3, 2, nil},
		{"zero threshold", DefaultFrustrationSet(), 0, 2, ErrInvalidThreshold},
		{"negative threshold", DefaultFrustrationSet(), -1, 2, ErrInvalidThreshold},
		{"zero decay", DefaultFrustrationSet(), 3, 0, ErrInvalidDecay},
		{"negative decay", DefaultFrustrationSet(), 3, -2, ErrInvalidDecay},
		{"empty set", NewSet(), 3, 2, ErrEmptySet},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(tc.set, tc.threshold, tc.decay)
			if tc.wantErr == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("got %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestObserve_FiresExactlyAtThreshold(t *testing.T) {
	d := mustDetector(t, 5, 2)

	for i := 0; i < 4; i++ {
		ev, err := d.Observe(LabelAngry)
		if err != nil {
			t.Fatalf("Observe: %v", err)
		}
		if ev != nil {
			t.Fatalf("fired early at observation %d", i+1)
		}
	}

	ev, err := d.Observe(LabelAngry)
	if err != nil {
		t.Fatalf("Observe: %v", err)
	}
	if ev == nil {
		t.Fatal("expected fire on threshold-th observation")
	}
	if ev.Label != LabelAngry {
		t.Errorf("event label: got %q, want %q", ev.Label, LabelAngry)
	}
	if ev.Observations != 5 {
		t.Errorf("event observations: got %d, want 5", ev.Observations)
	}
	if d.Count() != 0 {
		t.Errorf("count after fire: got %d, want 0", d.Count())
	}
}

func TestObserve_DecayClampsAtZero(t *testing.T) {
	d := mustDetector(t, 3, 2)

	for i := 0; i < 10; i++ {
		ev, err := d.Observe(LabelHappy)
		if err != nil {
			t.Fatalf("Observe: %v", err)
		}
		if ev != nil {
			t.Fatal("calm observations must never fire")
		}
		if d.Count() != 0 {
			t.Fatalf("count went negative or nonzero: %d", d.Count())
		}
	}
}

func TestObserve_AbsenceIsNeutral(t *testing.T) {
	// Interleaving None must not delay firing relative to the same
	// sequence with the Nones removed.
	withNones := []Label{LabelAngry, LabelNone, LabelAngry, LabelNone, LabelNone, LabelAngry}
	without := []Label{LabelAngry, LabelAngry, LabelAngry}

	d1 := mustDetector(t, 3, 2)
	d2 := mustDetector(t, 3, 2)

	fired1 := feed(t, d1, withNones)
	fired2 := feed(t, d2, without)

	if len(fired1) != 1 || len(fired2) != 1 {
		t.Fatalf("expected exactly one fire each, got %d and %d", len(fired1), len(fired2))
	}
	if fired1[0] != 5 {
		t.Errorf("with Nones: fired at index %d, want 5 (the third angry frame)", fired1[0])
	}
	if d1.Fired() != d2.Fired() {
		t.Errorf("fire counts diverged: %d vs %d", d1.Fired(), d2.Fired())
	}
}

func TestObserve_ResetAfterFire(t *testing.T) {
	d := mustDetector(t, 3, 2)

	feed(t, d, []Label{LabelAngry, LabelAngry, LabelAngry})
	if d.Fired() != 1 {
		t.Fatalf("expected one fire, got %d", d.Fired())
	}

	// The next threshold-1 frustrated observations must not fire.
	fired := feed(t, d, []Label{LabelSad, LabelDisgust})
	if len(fired) != 0 {
		t.Errorf("fired again before re-accumulating threshold: %v", fired)
	}
	if d.Count() != 2 {
		t.Errorf("count: got %d, want 2", d.Count())
	}
}

func TestObserve_WorkedExample(t *testing.T) {
	// threshold=3, decay=2: [angry angry sad happy angry angry]
	// counts 1, 2, 3->fire+reset, max(0,0-2)=0, 1, 2. One fire total.
	d := mustDetector(t, 3, 2)

	seq := []Label{LabelAngry, LabelAngry, LabelSad, LabelHappy, LabelAngry, LabelAngry}
	wantCounts := []int{1, 2, 0, 0, 1, 2}

	for i, l := range seq {
		ev, err := d.Observe(l)
		if err != nil {
			t.Fatalf("Observe(%q): %v", l, err)
		}
		if got := d.Count(); got != wantCounts[i] {
			t.Errorf("after %q (index %d): count %d, want %d", l, i, got, wantCounts[i])
		}
		if (ev != nil) != (i == 2) {
			t.Errorf("fire at index %d: got %v", i, ev != nil)
		}
	}

	if d.Fired() != 1 {
		t.Errorf("total fires: got %d, want 1", d.Fired())
	}
}

func TestObserve_WorkedExampleWithAbsence(t *testing.T) {
	// threshold=3: [angry None angry angry] -> 1, 1, 2, 3->fire.
	d := mustDetector(t, 3, 2)

	fired := feed(t, d, []Label{LabelAngry, LabelNone, LabelAngry, LabelAngry})
	if len(fired) != 1 || fired[0] != 3 {
		t.Errorf("fired at %v, want [3]", fired)
	}
}

func TestObserve_PartialDecay(t *testing.T) {
	// At decay=2 one calm frame erases two frustrated frames.
	d := mustDetector(t, 10, 2)

	feed(t, d, []Label{LabelAngry, LabelAngry, LabelAngry})
	if d.Count() != 3 {
		t.Fatalf("count: got %d, want 3", d.Count())
	}
	feed(t, d, []Label{LabelNeutral})
	if d.Count() != 1 {
		t.Errorf("count after one calm frame: got %d, want 1", d.Count())
	}
}

func TestObserve_InvalidLabel(t *testing.T) {
	d := mustDetector(t, 3, 2)

	feed(t, d, []Label{LabelAngry})

	_, err := d.Observe(Label("bored"))
	if !errors.Is(err, ErrInvalidLabel) {
		t.Fatalf("got %v, want ErrInvalidLabel", err)
	}
	if d.Count() != 1 {
		t.Errorf("invalid label mutated the counter: %d", d.Count())
	}
}

func TestReset(t *testing.T) {
	d := mustDetector(t, 5, 2)
	feed(t, d, []Label{LabelAngry, LabelAngry})
	d.Reset()
	if d.Count() != 0 {
		t.Errorf("count after Reset: got %d, want 0", d.Count())
	}
	if d.Fired() != 0 {
		t.Errorf("Reset must not count as a fire")
	}
}

func TestLabel_Valid(t *testing.T) {
	for _, l := range Labels {
		if !l.Valid() {
			t.Errorf("%q should be valid", l)
		}
	}
	if !LabelNone.Valid() {
		t.Error("LabelNone should be valid")
	}
	if Label("grumpy").Valid() {
		t.Error("unknown label should be invalid")
	}
}

func TestSet_Contains(t *testing.T) {
	s := DefaultFrustrationSet()
	for _, l := range []Label{LabelAngry, LabelDisgust, LabelSad} {
		if !s.Contains(l) {
			t.Errorf("default set should contain %q", l)
		}
	}
	for _, l := range []Label{LabelHappy, LabelNeutral, LabelFear, LabelSurprise, LabelNone} {
		if s.Contains(l) {
			t.Errorf("default set should not contain %q", l)
		}
	}
}
