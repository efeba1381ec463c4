// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package core

import "github.com/gdamore/tcell/v2"

// Widget is the minimal contract for drawable UI elements.
type Widget interface {
	SetPosition(x, y int)
	Position() (int, int)
	Resize(w, h int)
	Size() (int, int)
	Draw(p *Painter)
	Focusable() bool
	Focus()
	Blur()
	IsFocused() bool
	HandleKey(k KeyPress) bool
	HitTest(x, y int) bool
}

// BaseWidget provides common fields/behaviour for widgets.
type BaseWidget struct {
	Rect      Rect
	focused   bool
	focusable bool
}

func (b *BaseWidget) SetPosition(x, y int) { b.Rect.X, b.Rect.Y = x, y }
func (b *BaseWidget) Position() (int, int) { return b.Rect.X, b.Rect.Y }
func (b *BaseWidget) Resize(w, h int) {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	b.Rect.W, b.Rect.H = w, h
}
func (b *BaseWidget) Size() (int, int)    { return b.Rect.W, b.Rect.H }
func (b *BaseWidget) Focusable() bool     { return b.focusable }
func (b *BaseWidget) SetFocusable(f bool) { b.focusable = f }
func (b *BaseWidget) Focus() {
	if b.focusable {
		b.focused = true
	}
}
func (b *BaseWidget) Blur()                     { b.focused = false }
func (b *BaseWidget) IsFocused() bool           { return b.focused }
func (b *BaseWidget) HitTest(x, y int) bool     { return b.Rect.Contains(x, y) }
func (b *BaseWidget) HandleKey(k KeyPress) bool { return false }

// EffectiveStyle returns style, bold while the widget has focus.
func (b *BaseWidget) EffectiveStyle(style tcell.Style) tcell.Style {
	if b.focused {
		return style.Bold(true)
	}
	return style
}

// MouseAware widgets receive the primary-button press that focused them.
type MouseAware interface {
	HandleClick(x, y int) bool
}

// PasteAware widgets accept bracketed paste text while focused.
type PasteAware interface {
	HandlePaste(text string) bool
}

// FrameAware widgets are ticked once per frame while focused, after key
// handling. Used for time-driven behaviour such as key repeat.
type FrameAware interface {
	Tick(in *Input)
}

// ChildContainer allows recursive operations over widget trees.
type ChildContainer interface {
	VisitChildren(func(Widget))
}
