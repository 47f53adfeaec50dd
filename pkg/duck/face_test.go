package duck

import (
	"sync"
	"testing"
	"time"
)

func TestFace_Defaults(t *testing.T) {
	f := NewFace()
	if f.Current() != ExpressionNeutral {
		t.Errorf("new face: got %q, want neutral", f.Current())
	}
}

func TestFace_Set(t *testing.T) {
	f := NewFace()
	f.Set(ExpressionConcerned)
	if f.Current() != ExpressionConcerned {
		t.Errorf("got %q, want concerned", f.Current())
	}
}

func TestFace_UnknownFallsBackToNeutral(t *testing.T) {
	f := NewFace()
	f.Set(ExpressionHappy)
	f.Set(Expression("sleepy"))
	if f.Current() != ExpressionNeutral {
		t.Errorf("got %q, want neutral", f.Current())
	}
}

func TestFace_OnChange(t *testing.T) {
	f := NewFace()

	var mu sync.Mutex
	var seen []Expression
	f.OnChange(func(e Expression) {
		mu.Lock()
		seen = append(seen, e)
		mu.Unlock()
	})

	f.Set(ExpressionListening)
	f.Set(ExpressionListening) // no-op, no notification
	f.Set(ExpressionNeutral)

	mu.Lock()
	defer mu.Unlock()
	if len(seen) != 2 {
		t.Fatalf("got %d notifications, want 2: %v", len(seen), seen)
	}
	if seen[0] != ExpressionListening || seen[1] != ExpressionNeutral {
		t.Errorf("unexpected sequence: %v", seen)
	}
}

func TestFace_SetForReverts(t *testing.T) {
	f := NewFace()
	f.SetFor(ExpressionConcerned, 20*time.Millisecond, ExpressionNeutral)

	if f.Current() != ExpressionConcerned {
		t.Fatalf("got %q, want concerned", f.Current())
	}

	deadline := time.After(time.Second)
	for f.Current() != ExpressionNeutral {
		select {
		case <-deadline:
			t.Fatal("face never reverted to neutral")
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestFace_SetCancelsPendingRevert(t *testing.T) {
	f := NewFace()
	f.SetFor(ExpressionConcerned, 20*time.Millisecond, ExpressionNeutral)
	f.Set(ExpressionListening)

	time.Sleep(50 * time.Millisecond)
	if f.Current() != ExpressionListening {
		t.Errorf("revert fired after being cancelled: %q", f.Current())
	}
}

func TestExpression_Valid(t *testing.T) {
	for _, e := range Expressions {
		if !e.Valid() {
			t.Errorf("%q should be valid", e)
		}
	}
	if Expression("angry").Valid() {
		t.Error("unknown expression should be invalid")
	}
}
