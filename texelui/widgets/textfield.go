// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texelui/widgets/textfield.go
// Summary: Bounded single-line or wrapped text input with click placement.
// Notes: Capacity counts a reserved slot, so at most Capacity-1 runes are held.

package widgets

import (
	"time"
	"unicode"

	"github.com/framegrace/texeltime/texelui/core"
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// BlinkPeriod is the caret on/off half period.
const BlinkPeriod = 500 * time.Millisecond

// TextField is a bounded text input. In Wrap mode the text flows over the
// rows of the field; otherwise it scrolls horizontally.
type TextField struct {
	core.BaseWidget
	Capacity int
	Wrap     bool
	PadX     int
	Style    tcell.Style

	// Measure returns the display width of a string. It must be monotonic
	// in the prefix length; click placement relies on that.
	Measure func(string) int

	// ReadClipboard supplies Ctrl+V text. When it is nil or fails, the last
	// bracketed paste is used instead.
	ReadClipboard func() (string, error)

	// OnChange is called after every edit.
	OnChange func(text string)

	Repeat *KeyRepeater

	text   []rune
	cursor int
	offX   int // first visible rune (single-line)
	offY   int // first visible visual line (wrap)
	clip   string
	now    time.Time
	blink0 time.Time
}

func NewTextField(x, y, w, h, capacity int) *TextField {
	tf := &TextField{
		Capacity: capacity,
		PadX:     1,
		Style:    tcell.StyleDefault.Background(tcell.ColorNavy).Foreground(tcell.ColorWhite),
		Measure:  runewidth.StringWidth,
		Repeat:   NewKeyRepeater(DefaultRepeatDelay, DefaultRepeatInterval),
	}
	tf.SetPosition(x, y)
	tf.Resize(w, h)
	tf.SetFocusable(true)
	return tf
}

// MaxLen is the number of runes the field accepts.
func (t *TextField) MaxLen() int {
	if t.Capacity <= 1 {
		return 0
	}
	return t.Capacity - 1
}

func (t *TextField) Text() string { return string(t.text) }
func (t *TextField) Len() int     { return len(t.text) }
func (t *TextField) Cursor() int  { return t.cursor }

// SetText replaces the content, dropping non-printable runes and anything
// past MaxLen, and moves the cursor to the end.
func (t *TextField) SetText(s string) {
	t.text = t.text[:0]
	for _, r := range s {
		if len(t.text) >= t.MaxLen() {
			break
		}
		if printable(r) {
			t.text = append(t.text, r)
		}
	}
	t.cursor = len(t.text)
	t.offX, t.offY = 0, 0
	t.ensureVisible()
}

// SetCursor moves the cursor, clamped to [0, Len].
func (t *TextField) SetCursor(i int) {
	t.cursor = clamp(i, 0, len(t.text))
	t.ensureVisible()
}

func (t *TextField) Focus() {
	t.BaseWidget.Focus()
	t.Repeat.Reset()
	t.blink0 = t.now
}

func (t *TextField) Blur() {
	t.BaseWidget.Blur()
	t.Repeat.Reset()
}

// Insert adds r at the cursor. It fails when r is not printable or the
// field is full.
func (t *TextField) Insert(r rune) bool {
	if !printable(r) || len(t.text) >= t.MaxLen() {
		return false
	}
	t.text = append(t.text, 0)
	copy(t.text[t.cursor+1:], t.text[t.cursor:])
	t.text[t.cursor] = r
	t.cursor++
	t.changed()
	return true
}

// Paste inserts the printable runes of s at the cursor, truncated to the
// remaining capacity, and returns how many were inserted.
func (t *TextField) Paste(s string) int {
	n := 0
	for _, r := range s {
		if !printable(r) {
			continue
		}
		if len(t.text) >= t.MaxLen() {
			break
		}
		t.text = append(t.text, 0)
		copy(t.text[t.cursor+1:], t.text[t.cursor:])
		t.text[t.cursor] = r
		t.cursor++
		n++
	}
	if n > 0 {
		t.changed()
	}
	return n
}

// Backspace removes the rune before the cursor.
func (t *TextField) Backspace() bool {
	if t.cursor == 0 {
		return false
	}
	t.text = append(t.text[:t.cursor-1], t.text[t.cursor:]...)
	t.cursor--
	t.changed()
	return true
}

// DeleteForward removes the rune under the cursor.
func (t *TextField) DeleteForward() bool {
	if t.cursor >= len(t.text) {
		return false
	}
	t.text = append(t.text[:t.cursor], t.text[t.cursor+1:]...)
	t.changed()
	return true
}

// PlaceCursor puts the cursor nearest to a click at (relX, row) relative to
// the text origin: the longest prefix whose width does not exceed relX.
func (t *TextField) PlaceCursor(relX, row int) {
	if !t.Wrap {
		if relX < 0 {
			t.cursor = 0
		} else {
			t.cursor = t.searchPrefix(0, len(t.text), relX+t.Measure(string(t.text[:t.offX])))
		}
		t.ensureVisible()
		return
	}
	lines := t.lines()
	li := clamp(t.offY+row, 0, len(lines)-1)
	ln := lines[li]
	if relX < 0 {
		t.cursor = ln.start
	} else {
		t.cursor = t.searchPrefix(ln.start, ln.end, relX)
	}
	t.ensureVisible()
}

// searchPrefix returns the largest k in [lo, hi] with width(text[lo:k]) <= target.
func (t *TextField) searchPrefix(lo, hi, target int) int {
	a, b := lo, hi
	for a < b {
		mid := (a + b + 1) / 2
		if t.Measure(string(t.text[lo:mid])) <= target {
			a = mid
		} else {
			b = mid - 1
		}
	}
	return a
}

// HandleClick implements core.MouseAware.
func (t *TextField) HandleClick(x, y int) bool {
	t.PlaceCursor(x-t.textOriginX(), y-t.Rect.Y)
	t.blink0 = t.now
	return true
}

// HandlePaste implements core.PasteAware.
func (t *TextField) HandlePaste(text string) bool {
	t.clip = text
	t.Paste(text)
	return true
}

// Tick implements core.FrameAware: it advances the caret clock and applies
// repeated deletions while Backspace or Delete stays held.
func (t *TextField) Tick(in *core.Input) {
	t.now = in.Now
	if t.blink0.IsZero() {
		t.blink0 = in.Now
	}
	key := t.Repeat.Held()
	for n := t.Repeat.Update(in.Held, in.Now); n > 0; n-- {
		t.applyRepeat(key)
	}
}

func (t *TextField) applyRepeat(key tcell.Key) {
	switch key {
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		t.Backspace()
	case tcell.KeyDelete:
		t.DeleteForward()
	}
}

// CaretVisible reports whether the blinking caret is in its on phase.
func (t *TextField) CaretVisible() bool {
	if !t.IsFocused() {
		return false
	}
	return (t.now.Sub(t.blink0)/BlinkPeriod)%2 == 0
}

func (t *TextField) changed() {
	t.blink0 = t.now
	t.ensureVisible()
	if t.OnChange != nil {
		t.OnChange(string(t.text))
	}
}

func (t *TextField) textOriginX() int { return t.Rect.X + t.PadX }

func (t *TextField) contentWidth() int {
	w := t.Rect.W - 2*t.PadX
	if w < 1 {
		w = 1
	}
	return w
}

type visualLine struct{ start, end int }

// lines splits the text into visual lines no wider than the content width.
func (t *TextField) lines() []visualLine {
	if !t.Wrap {
		return []visualLine{{0, len(t.text)}}
	}
	cw := t.contentWidth()
	var out []visualLine
	start := 0
	for i := range t.text {
		if i > start && t.Measure(string(t.text[start:i+1])) > cw {
			out = append(out, visualLine{start, i})
			start = i
		}
	}
	return append(out, visualLine{start, len(t.text)})
}

// caretLine returns the visual line holding the cursor.
func caretLine(lines []visualLine, cursor int) int {
	li := 0
	for i, ln := range lines {
		if ln.start <= cursor {
			li = i
		}
	}
	return li
}

func (t *TextField) ensureVisible() {
	t.cursor = clamp(t.cursor, 0, len(t.text))
	if t.Wrap {
		li := caretLine(t.lines(), t.cursor)
		if li < t.offY {
			t.offY = li
		}
		if h := max(t.Rect.H, 1); li >= t.offY+h {
			t.offY = li - h + 1
		}
		return
	}
	t.offX = clamp(t.offX, 0, t.cursor)
	cw := t.contentWidth()
	for t.offX < t.cursor && t.Measure(string(t.text[t.offX:t.cursor])) >= cw {
		t.offX++
	}
}

func (t *TextField) Draw(p *core.Painter) {
	style := t.EffectiveStyle(t.Style)
	p.Fill(t.Rect, ' ', style)
	x0 := t.textOriginX()
	cw := t.contentWidth()

	caretX, caretY := -1, -1
	if t.Wrap {
		lines := t.lines()
		li := caretLine(lines, t.cursor)
		for row := 0; row < t.Rect.H; row++ {
			idx := t.offY + row
			if idx >= len(lines) {
				break
			}
			ln := lines[idx]
			p.DrawText(x0, t.Rect.Y+row, string(t.text[ln.start:ln.end]), style, cw)
			if idx == li {
				caretX = x0 + t.Measure(string(t.text[ln.start:t.cursor]))
				caretY = t.Rect.Y + row
			}
		}
	} else {
		p.DrawText(x0, t.Rect.Y, string(t.text[t.offX:]), style, cw)
		caretX = x0 + t.Measure(string(t.text[t.offX:t.cursor]))
		caretY = t.Rect.Y
	}

	if caretY >= 0 && t.CaretVisible() {
		ch := ' '
		if t.cursor < len(t.text) {
			ch = t.text[t.cursor]
		}
		fg, bg, _ := style.Decompose()
		p.SetCell(caretX, caretY, ch, tcell.StyleDefault.Background(fg).Foreground(bg))
	}
}

func printable(r rune) bool {
	return r >= 0x20 && unicode.IsPrint(r)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
