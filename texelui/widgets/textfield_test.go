package widgets_test

import (
	"errors"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/framegrace/texeltime/texelui/core"
	"github.com/framegrace/texeltime/texelui/widgets"
	"github.com/gdamore/tcell/v2"
)

func typeText(tf *widgets.TextField, s string) {
	for _, r := range s {
		tf.HandleKey(core.KeyPress{Key: tcell.KeyRune, Rune: r})
	}
}

func TestTextFieldCapacityReservesOneSlot(t *testing.T) {
	tf := widgets.NewTextField(0, 0, 20, 1, 4)
	typeText(tf, "abcd")
	if tf.Text() != "abc" {
		t.Fatalf("expected 3 runes to fit, got %q", tf.Text())
	}
	if tf.Insert('z') {
		t.Fatalf("insert into a full field should fail")
	}
	tf.SetText("wxyz")
	if tf.Text() != "wxy" || tf.Cursor() != 3 {
		t.Fatalf("SetText should truncate and move cursor to end: %q %d", tf.Text(), tf.Cursor())
	}
}

func TestTextFieldEditsAtCursor(t *testing.T) {
	tf := widgets.NewTextField(0, 0, 20, 1, 32)
	typeText(tf, "ac")
	tf.HandleKey(core.KeyPress{Key: tcell.KeyLeft})
	typeText(tf, "b")
	if tf.Text() != "abc" || tf.Cursor() != 2 {
		t.Fatalf("expected insertion at cursor, got %q cursor %d", tf.Text(), tf.Cursor())
	}
	tf.HandleKey(core.KeyPress{Key: tcell.KeyHome})
	if tf.Backspace() {
		t.Fatalf("backspace at start should be a no-op")
	}
	tf.HandleKey(core.KeyPress{Key: tcell.KeyEnd})
	if tf.DeleteForward() {
		t.Fatalf("delete at end should be a no-op")
	}
	tf.HandleKey(core.KeyPress{Key: tcell.KeyRune, Rune: '\x01'})
	if tf.Text() != "abc" {
		t.Fatalf("control rune inserted: %q", tf.Text())
	}
	if tf.HandleKey(core.KeyPress{Key: tcell.KeyEnter}) {
		t.Fatalf("Enter must fall through to the caller")
	}
}

func TestTextFieldClickPlacement(t *testing.T) {
	tf := widgets.NewTextField(0, 0, 20, 1, 32)
	tf.SetText("hello")
	tests := []struct {
		x, want int
	}{
		{0, 0}, // padding, left of the text origin
		{1, 0},
		{4, 3},
		{6, 5},
		{19, 5},
	}
	for _, tt := range tests {
		tf.HandleClick(tt.x, 0)
		if tf.Cursor() != tt.want {
			t.Errorf("click at %d: cursor %d, want %d", tt.x, tf.Cursor(), tt.want)
		}
	}

	tf.SetText("日本語")
	tf.PlaceCursor(3, 0)
	if tf.Cursor() != 1 {
		t.Fatalf("wide runes: expected cursor 1 for relX 3, got %d", tf.Cursor())
	}
	tf.PlaceCursor(4, 0)
	if tf.Cursor() != 2 {
		t.Fatalf("wide runes: expected cursor 2 for relX 4, got %d", tf.Cursor())
	}
}

func TestTextFieldClickPlacementIsMonotonic(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	alphabet := []rune("ab iW日本語éx")
	for round := 0; round < 100; round++ {
		var sb strings.Builder
		for i := rng.Intn(40); i > 0; i-- {
			sb.WriteRune(alphabet[rng.Intn(len(alphabet))])
		}
		tf := widgets.NewTextField(0, 0, 120, 1, 64)
		tf.SetText(sb.String())
		prev := -1
		for relX := -3; relX < 100; relX++ {
			tf.PlaceCursor(relX, 0)
			c := tf.Cursor()
			if c < prev || c < 0 || c > tf.Len() {
				t.Fatalf("round %d: cursor %d after %d at relX %d (len %d)", round, c, prev, relX, tf.Len())
			}
			prev = c
		}
		if prev != tf.Len() {
			t.Fatalf("round %d: far right click should reach the end, got %d of %d", round, prev, tf.Len())
		}
	}
}

func TestTextFieldWrapPlacement(t *testing.T) {
	tf := widgets.NewTextField(0, 0, 6, 3, 32)
	tf.Wrap = true
	tf.SetText("abcdefghij")
	tf.PlaceCursor(2, 1)
	if tf.Cursor() != 6 {
		t.Fatalf("expected cursor 6 on second visual line, got %d", tf.Cursor())
	}
	tf.PlaceCursor(10, 2)
	if tf.Cursor() != 10 {
		t.Fatalf("expected end of text on last line, got %d", tf.Cursor())
	}
	tf.PlaceCursor(1, 9)
	if tf.Cursor() != 9 {
		t.Fatalf("rows past the text should clamp to the last line, got %d", tf.Cursor())
	}
	tf.HandleKey(core.KeyPress{Key: tcell.KeyUp})
	if tf.Cursor() != 5 {
		t.Fatalf("Up should keep the column, got %d", tf.Cursor())
	}
}

func TestTextFieldPasteTruncates(t *testing.T) {
	tf := widgets.NewTextField(0, 0, 20, 1, 6)
	tf.SetText("ab")
	if n := tf.Paste("xy\nzzz"); n != 3 {
		t.Fatalf("expected 3 runes inserted, got %d", n)
	}
	if tf.Text() != "abxyz" {
		t.Fatalf("unexpected text %q", tf.Text())
	}
}

func TestTextFieldCtrlVUsesClipboardThenLastPaste(t *testing.T) {
	tf := widgets.NewTextField(0, 0, 20, 1, 32)
	tf.ReadClipboard = func() (string, error) { return "sys", nil }
	tf.HandleKey(core.KeyPress{Key: tcell.KeyCtrlV})
	if tf.Text() != "sys" {
		t.Fatalf("expected system clipboard text, got %q", tf.Text())
	}

	tf.SetText("")
	tf.HandlePaste("bracketed")
	tf.SetText("")
	tf.ReadClipboard = func() (string, error) { return "", errors.New("no clipboard") }
	tf.HandleKey(core.KeyPress{Key: tcell.KeyCtrlV})
	if tf.Text() != "bracketed" {
		t.Fatalf("expected fallback to last bracketed paste, got %q", tf.Text())
	}
}

func TestTextFieldHeldBackspaceRepeats(t *testing.T) {
	tf := widgets.NewTextField(0, 0, 40, 1, 64)
	tf.SetText("abcdefghijklmnopqrstuvwxyz")
	t0 := time.Unix(5000, 0)
	tick := func(held tcell.Key, d time.Duration) {
		tf.Tick(&core.Input{Now: t0.Add(d), Held: held})
	}

	tf.HandleKey(core.KeyPress{Key: tcell.KeyBackspace2, When: t0})
	tick(tcell.KeyBackspace, 0)
	if tf.Len() != 25 {
		t.Fatalf("expected one immediate deletion, len %d", tf.Len())
	}
	// Terminal auto-repeat events for a tracked key do not act directly.
	tf.HandleKey(core.KeyPress{Key: tcell.KeyBackspace, When: t0.Add(300 * time.Millisecond)})
	tick(tcell.KeyBackspace, 300*time.Millisecond)
	if tf.Len() != 25 {
		t.Fatalf("no repeat expected before the delay, len %d", tf.Len())
	}
	tick(tcell.KeyBackspace, 450*time.Millisecond)
	tick(tcell.KeyBackspace, 490*time.Millisecond)
	tick(tcell.KeyBackspace, 500*time.Millisecond)
	if tf.Len() != 23 {
		t.Fatalf("expected two repeats by 490ms, len %d", tf.Len())
	}

	// Silence longer than the repeat gap ends the sequence.
	tick(tcell.KeyNUL, 600*time.Millisecond)
	tick(tcell.KeyNUL, time.Second)
	tf.HandleKey(core.KeyPress{Key: tcell.KeyBackspace, When: t0.Add(1100 * time.Millisecond)})
	if tf.Len() != 22 {
		t.Fatalf("a new press after release should act immediately, len %d", tf.Len())
	}
}

func TestTextFieldSwitchingKeysRestartsRepeat(t *testing.T) {
	tf := widgets.NewTextField(0, 0, 40, 1, 64)
	tf.SetText("0123456789")
	tf.SetCursor(5)
	t0 := time.Unix(5000, 0)

	tf.HandleKey(core.KeyPress{Key: tcell.KeyBackspace, When: t0})
	tf.Tick(&core.Input{Now: t0.Add(460 * time.Millisecond), Held: tcell.KeyBackspace})
	if tf.Text() != "01256789" {
		t.Fatalf("expected two backspaces, got %q", tf.Text())
	}
	at := t0.Add(470 * time.Millisecond)
	tf.HandleKey(core.KeyPress{Key: tcell.KeyDelete, When: at})
	tf.Tick(&core.Input{Now: at.Add(100 * time.Millisecond), Held: tcell.KeyDelete})
	if tf.Text() != "0126789" {
		t.Fatalf("switching to Delete should act once and wait for the delay, got %q", tf.Text())
	}
}

func TestTextFieldDrawsTextAndCaret(t *testing.T) {
	ui := core.NewUIManager()
	ui.Resize(12, 2)
	tf := widgets.NewTextField(0, 0, 10, 1, 32)
	ui.AddWidget(tf)
	tf.SetText("hi")
	ui.Focus(tf)
	tf.Tick(&core.Input{Now: time.Unix(0, 0)})

	buf := ui.Render()
	if buf[0][1].Ch != 'h' || buf[0][2].Ch != 'i' {
		t.Fatalf("expected text after one cell of padding, got %q%q", buf[0][1].Ch, buf[0][2].Ch)
	}
	fg, _, _ := buf[0][3].Style.Decompose()
	_, bg, _ := tf.Style.Decompose()
	if fg != bg {
		t.Fatalf("expected reversed caret cell at the cursor")
	}
}
