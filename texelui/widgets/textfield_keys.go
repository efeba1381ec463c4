// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package widgets

import (
	"github.com/framegrace/texeltime/texelui/core"
	"github.com/gdamore/tcell/v2"
)

// HandleKey implements editing and cursor movement. Enter, Esc and Tab are
// left to the caller.
func (t *TextField) HandleKey(k core.KeyPress) bool {
	when := k.When
	if when.IsZero() {
		when = t.now
	}

	if k.Key == tcell.KeyCtrlV || (k.Key == tcell.KeyRune && k.Mod&tcell.ModCtrl != 0 && (k.Rune == 'v' || k.Rune == 'V')) {
		t.Paste(t.clipboardText())
		return true
	}

	switch k.Key {
	case tcell.KeyBackspace, tcell.KeyBackspace2, tcell.KeyDelete:
		key := k.Key
		if key == tcell.KeyBackspace2 {
			key = tcell.KeyBackspace
		}
		if t.Repeat.Press(key, when) {
			t.applyRepeat(key)
		}
		return true
	case tcell.KeyLeft:
		t.SetCursor(t.cursor - 1)
	case tcell.KeyRight:
		t.SetCursor(t.cursor + 1)
	case tcell.KeyHome:
		t.SetCursor(0)
	case tcell.KeyEnd:
		t.SetCursor(len(t.text))
	case tcell.KeyUp, tcell.KeyDown:
		if !t.Wrap {
			return false
		}
		t.moveLine(k.Key == tcell.KeyDown)
	case tcell.KeyRune:
		if k.Mod&(tcell.ModCtrl|tcell.ModAlt) != 0 {
			return false
		}
		t.Insert(k.Rune)
	default:
		return false
	}
	t.blink0 = t.now
	return true
}

// moveLine keeps the caret column while stepping one visual line.
func (t *TextField) moveLine(down bool) {
	lines := t.lines()
	li := caretLine(lines, t.cursor)
	col := t.Measure(string(t.text[lines[li].start:t.cursor]))
	if down {
		li++
	} else {
		li--
	}
	if li < 0 || li >= len(lines) {
		return
	}
	t.cursor = t.searchPrefix(lines[li].start, lines[li].end, col)
	t.ensureVisible()
}

func (t *TextField) clipboardText() string {
	if t.ReadClipboard != nil {
		if s, err := t.ReadClipboard(); err == nil && s != "" {
			return s
		}
	}
	return t.clip
}
