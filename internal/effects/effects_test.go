package effects

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
)

func linear(t float32) float32 { return t }

func TestTimelineAnimatesWithFrameClock(t *testing.T) {
	t0 := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	tl := NewTimeline(0)

	if v := tl.AnimateToWithOptions("k", 1, AnimateOptions{Duration: time.Second, Easing: linear}, t0); v != 0 {
		t.Fatalf("fresh key should start at the initial value, got %v", v)
	}
	if v := tl.Get("k", t0.Add(250*time.Millisecond)); v != 0.25 {
		t.Fatalf("expected 0.25 at a quarter, got %v", v)
	}
	if !tl.IsAnimating("k", t0.Add(500*time.Millisecond)) {
		t.Fatalf("expected animation in progress")
	}
	if v := tl.Get("k", t0.Add(2*time.Second)); v != 1 {
		t.Fatalf("expected target after duration, got %v", v)
	}
	if tl.IsAnimating("k", t0.Add(2*time.Second)) {
		t.Fatalf("no animation should be active after the duration")
	}

	// Retargeting starts from the current value.
	tl.AnimateToWithOptions("k", 0, AnimateOptions{Duration: time.Second, Easing: linear}, t0.Add(2*time.Second))
	if v := tl.Get("k", t0.Add(2500*time.Millisecond)); v != 0.5 {
		t.Fatalf("expected 0.5 halfway back, got %v", v)
	}
	tl.Update(t0.Add(5 * time.Second))
	if tl.Len() != 0 {
		t.Fatalf("settled keys should be dropped, have %d", tl.Len())
	}
}

func TestFlashHoldsThenFades(t *testing.T) {
	t0 := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	f := NewFlash(100*time.Millisecond, 400*time.Millisecond)
	f.Trigger(7, t0)

	if v := f.Intensity(7, t0.Add(50*time.Millisecond)); v != 1 {
		t.Fatalf("expected full intensity during hold, got %v", v)
	}
	if v := f.Intensity(7, t0.Add(100*time.Millisecond)); v != 1 {
		t.Fatalf("fade should start from 1, got %v", v)
	}
	if v := f.Intensity(7, t0.Add(300*time.Millisecond)); v != 0.875 {
		t.Fatalf("expected cubic ease-in at half the fade, got %v", v)
	}
	if f.Active(7, t0.Add(600*time.Millisecond)) {
		t.Fatalf("flash should be over")
	}
	if f.Intensity(8, t0) != 0 {
		t.Fatalf("untriggered key should be dark")
	}
	f.Update(t0.Add(600 * time.Millisecond))
	if f.Len() != 0 {
		t.Fatalf("finished flashes should be dropped")
	}
}

func TestBlend(t *testing.T) {
	black := tcell.NewRGBColor(0, 0, 0)
	white := tcell.NewRGBColor(255, 255, 255)
	if Blend(black, white, 0) != black || Blend(black, white, 1) != white {
		t.Fatalf("blend endpoints should be exact")
	}
	mid := Blend(black, white, 0.5)
	r, g, b := mid.RGB()
	if r <= 0 || r >= 255 || absDiff(r, g) > 2 || absDiff(g, b) > 2 {
		t.Fatalf("expected a grey between black and white, got %d,%d,%d", r, g, b)
	}
	if Blend(tcell.ColorDefault, white, 0.25) != tcell.ColorDefault {
		t.Fatalf("default color should hold until halfway")
	}
	if Blend(tcell.ColorDefault, white, 0.75) != white {
		t.Fatalf("default color should snap after halfway")
	}
}

func TestTintStyle(t *testing.T) {
	base := tcell.StyleDefault.Foreground(tcell.NewRGBColor(10, 20, 30)).Background(tcell.NewRGBColor(0, 0, 0))
	if TintStyle(base, tcell.ColorWhite, 0) != base {
		t.Fatalf("zero intensity should leave the style alone")
	}
	fg, bg, _ := TintStyle(base, tcell.NewRGBColor(255, 255, 255), 1).Decompose()
	if fg != tcell.NewRGBColor(255, 255, 255) || bg != tcell.NewRGBColor(255, 255, 255) {
		t.Fatalf("full intensity should replace both colors, got %v/%v", fg, bg)
	}
}

func absDiff(a, b int32) int32 {
	if a > b {
		return a - b
	}
	return b - a
}
