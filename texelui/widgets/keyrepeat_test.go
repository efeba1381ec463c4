package widgets

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
)

func TestKeyRepeaterSchedule(t *testing.T) {
	r := NewKeyRepeater(0, 0)
	t0 := time.Unix(100, 0)
	if !r.Press(tcell.KeyDelete, t0) {
		t.Fatalf("first press should act")
	}
	if r.Press(tcell.KeyDelete, t0.Add(10*time.Millisecond)) {
		t.Fatalf("auto-repeat of a tracked key should not act")
	}
	// A stalled frame catches up on every interval that elapsed.
	if n := r.Update(tcell.KeyDelete, t0.Add(time.Second)); n != 14 {
		t.Fatalf("expected 14 repeats after one second, got %d", n)
	}
	if n := r.Update(tcell.KeyDelete, t0.Add(time.Second+5*time.Millisecond)); n != 0 {
		t.Fatalf("expected no repeat within the interval, got %d", n)
	}
	if n := r.Update(tcell.KeyNUL, t0.Add(2*time.Second)); n != 0 || r.Held() != tcell.KeyNUL {
		t.Fatalf("release should reset, got n=%d held=%v", n, r.Held())
	}
}

func TestKeyRepeaterSwitchResets(t *testing.T) {
	r := NewKeyRepeater(450*time.Millisecond, 40*time.Millisecond)
	t0 := time.Unix(100, 0)
	r.Press(tcell.KeyBackspace, t0)
	if n := r.Update(tcell.KeyDelete, t0.Add(time.Second)); n != 0 {
		t.Fatalf("a different held key should not repeat the tracked one, got %d", n)
	}
	if !r.Press(tcell.KeyBackspace, t0.Add(time.Second)) {
		t.Fatalf("after a reset the next press acts again")
	}
}

func TestKeyRepeaterResumesAfterTerminalDelay(t *testing.T) {
	r := NewKeyRepeater(450*time.Millisecond, 40*time.Millisecond)
	t0 := time.Unix(100, 0)
	r.Press(tcell.KeyBackspace, t0)
	r.Update(tcell.KeyBackspace, t0.Add(16*time.Millisecond))
	// The terminal goes quiet until its own auto-repeat starts.
	if n := r.Update(tcell.KeyNUL, t0.Add(200*time.Millisecond)); n != 0 {
		t.Fatalf("no repeats while the key is not reported, got %d", n)
	}
	if r.Held() != tcell.KeyBackspace {
		t.Fatalf("a short silence must keep the sequence")
	}
	if r.Press(tcell.KeyBackspace, t0.Add(500*time.Millisecond)) {
		t.Fatalf("the first auto-repeat must not count as a new press")
	}
	if n := r.Update(tcell.KeyBackspace, t0.Add(500*time.Millisecond)); n != 2 {
		t.Fatalf("expected the 450ms and 490ms repeats, got %d", n)
	}
}

func TestKeyRepeaterSecondTapStartsOver(t *testing.T) {
	r := NewKeyRepeater(450*time.Millisecond, 40*time.Millisecond)
	t0 := time.Unix(100, 0)
	r.Press(tcell.KeyDelete, t0)
	r.Update(tcell.KeyNUL, t0.Add(150*time.Millisecond))
	if !r.Press(tcell.KeyDelete, t0.Add(300*time.Millisecond)) {
		t.Fatalf("a second tap before the delay should act")
	}
	if n := r.Update(tcell.KeyDelete, t0.Add(500*time.Millisecond)); n != 0 {
		t.Fatalf("the delay restarts from the second tap, got %d", n)
	}
}

func TestKeyRepeaterGapEndsSequence(t *testing.T) {
	r := NewKeyRepeater(450*time.Millisecond, 40*time.Millisecond)
	r.Gap = 200 * time.Millisecond
	t0 := time.Unix(100, 0)
	r.Press(tcell.KeyDelete, t0)
	r.Update(tcell.KeyNUL, t0.Add(250*time.Millisecond))
	if r.Held() != tcell.KeyNUL {
		t.Fatalf("silence past the gap should reset")
	}
	if !r.Press(tcell.KeyDelete, t0.Add(500*time.Millisecond)) {
		t.Fatalf("after the gap the next event is a new press")
	}
}
