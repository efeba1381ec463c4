// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texelui/core/input.go
// Summary: Per-frame input snapshots built from the tcell event stream.
// Notes: Terminals report key presses, not key state. A key counts as held
//   while its auto-repeat events keep arriving within HeldRelease.

package core

import (
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
)

// DefaultHeldRelease must stay below the terminal's initial auto-repeat
// delay, otherwise a single tap would look held long enough to repeat.
const DefaultHeldRelease = 100 * time.Millisecond

const (
	pointerButtons = tcell.Button1 | tcell.Button2 | tcell.Button3
	wheelButtons   = tcell.WheelUp | tcell.WheelDown | tcell.WheelLeft | tcell.WheelRight
)

// KeyPress is one key event, detached from tcell's event type.
type KeyPress struct {
	Key  tcell.Key
	Rune rune
	Mod  tcell.ModMask
	When time.Time
}

// KeyFromEvent converts a tcell key event, folding Backspace2 into Backspace.
func KeyFromEvent(ev *tcell.EventKey) KeyPress {
	return KeyPress{Key: normalizeKey(ev.Key()), Rune: ev.Rune(), Mod: ev.Modifiers(), When: ev.When()}
}

// IsRune reports whether k is the plain rune r.
func (k KeyPress) IsRune(r rune) bool {
	return k.Key == tcell.KeyRune && k.Rune == r && k.Mod&(tcell.ModCtrl|tcell.ModAlt) == 0
}

func normalizeKey(k tcell.Key) tcell.Key {
	if k == tcell.KeyBackspace2 {
		return tcell.KeyBackspace
	}
	return k
}

// Input is everything that happened since the previous frame.
type Input struct {
	Now time.Time

	// Pointer position in cells and its motion since the previous frame.
	X, Y   int
	DX, DY int

	// Buttons is the held button state at the end of the frame. Pressed and
	// Released record edges seen during the frame, so a click shorter than a
	// frame shows up in both.
	Buttons  tcell.ButtonMask
	Pressed  tcell.ButtonMask
	Released tcell.ButtonMask

	// Wheel is the net number of wheel ticks, positive away from the user.
	Wheel int

	Keys []KeyPress

	// Held is the key whose auto-repeat is still arriving, or KeyNUL.
	Held tcell.Key

	Paste string

	Width, Height int
	Resized       bool
}

func (in *Input) Down(b tcell.ButtonMask) bool         { return in.Buttons&b != 0 }
func (in *Input) JustPressed(b tcell.ButtonMask) bool  { return in.Pressed&b != 0 }
func (in *Input) JustReleased(b tcell.ButtonMask) bool { return in.Released&b != 0 }

// InputSampler accumulates events between frames.
type InputSampler struct {
	HeldRelease time.Duration

	x, y         int
	lastX, lastY int
	buttons      tcell.ButtonMask
	pressed      tcell.ButtonMask
	released     tcell.ButtonMask
	wheel        int
	keys         []KeyPress

	lastKey   tcell.Key
	lastKeyAt time.Time

	inPaste bool
	pasteSB strings.Builder
	pasted  string

	w, h    int
	resized bool
}

func NewInputSampler(heldRelease time.Duration) *InputSampler {
	if heldRelease <= 0 {
		heldRelease = DefaultHeldRelease
	}
	return &InputSampler{HeldRelease: heldRelease}
}

// Feed records ev using the time tcell stamped on it.
func (s *InputSampler) Feed(ev tcell.Event) {
	s.FeedAt(ev, ev.When())
}

// FeedAt records ev as if it happened at at.
func (s *InputSampler) FeedAt(ev tcell.Event, at time.Time) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if s.inPaste {
			switch ev.Key() {
			case tcell.KeyRune:
				s.pasteSB.WriteRune(ev.Rune())
			case tcell.KeyEnter, tcell.KeyLF:
				s.pasteSB.WriteByte('\n')
			case tcell.KeyTab:
				s.pasteSB.WriteByte('\t')
			}
			return
		}
		k := KeyFromEvent(ev)
		k.When = at
		s.keys = append(s.keys, k)
		s.lastKey = k.Key
		s.lastKeyAt = at
	case *tcell.EventMouse:
		s.x, s.y = ev.Position()
		btn := ev.Buttons()
		if btn&tcell.WheelUp != 0 {
			s.wheel++
		}
		if btn&tcell.WheelDown != 0 {
			s.wheel--
		}
		if btn&wheelButtons != 0 {
			// Wheel reports carry no button state.
			return
		}
		b := btn & pointerButtons
		s.pressed |= b &^ s.buttons
		s.released |= s.buttons &^ b
		s.buttons = b
	case *tcell.EventPaste:
		if ev.Start() {
			s.inPaste = true
			s.pasteSB.Reset()
		} else if ev.End() {
			s.inPaste = false
			s.pasted += s.pasteSB.String()
			s.pasteSB.Reset()
		}
	case *tcell.EventResize:
		s.w, s.h = ev.Size()
		s.resized = true
	}
}

// SetSize seeds the surface size before the first resize event.
func (s *InputSampler) SetSize(w, h int) { s.w, s.h = w, h }

// Frame returns the snapshot for the frame ending at now and starts a new one.
func (s *InputSampler) Frame(now time.Time) Input {
	in := Input{
		Now:      now,
		X:        s.x,
		Y:        s.y,
		DX:       s.x - s.lastX,
		DY:       s.y - s.lastY,
		Buttons:  s.buttons,
		Pressed:  s.pressed,
		Released: s.released,
		Wheel:    s.wheel,
		Keys:     s.keys,
		Paste:    s.pasted,
		Width:    s.w,
		Height:   s.h,
		Resized:  s.resized,
	}
	if s.lastKey != tcell.KeyNUL && now.Sub(s.lastKeyAt) < s.HeldRelease {
		in.Held = s.lastKey
	}
	s.lastX, s.lastY = s.x, s.y
	s.pressed, s.released = 0, 0
	s.wheel = 0
	s.keys = nil
	s.pasted = ""
	s.resized = false
	return in
}
