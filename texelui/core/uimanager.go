// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package core

import (
	"github.com/gdamore/tcell/v2"
)

// UIManager owns a flat list of widgets, tracks the single focused widget
// and composes widgets into a buffer. It is driven from the frame loop and
// is not safe for concurrent use.
type UIManager struct {
	W, H    int
	widgets []Widget // z-ordered: later entries draw on top
	bgStyle tcell.Style
	focused Widget
	buf     [][]Cell
}

// UpdateResult tells the caller what the UI did not consume.
type UpdateResult struct {
	// PointerHit is true when a primary press landed on a widget.
	PointerHit bool
	// Keys holds key presses no widget handled, in arrival order.
	Keys []KeyPress
}

func NewUIManager() *UIManager {
	return &UIManager{
		bgStyle: tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite),
	}
}

// SetBackground sets the style used to clear the buffer in Render.
func (u *UIManager) SetBackground(style tcell.Style) { u.bgStyle = style }

func (u *UIManager) Resize(w, h int) {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	u.W, u.H = w, h
	u.buf = nil
}

func (u *UIManager) AddWidget(w Widget) {
	u.widgets = append(u.widgets, w)
}

// Focused returns the focused widget or nil.
func (u *UIManager) Focused() Widget { return u.focused }

// Focus moves focus to w; nil or non-focusable widgets are ignored.
func (u *UIManager) Focus(w Widget) {
	if w == nil || !w.Focusable() {
		return
	}
	if u.focused == w {
		return
	}
	if u.focused != nil {
		u.focused.Blur()
	}
	u.focused = w
	u.focused.Focus()
}

// Blur drops focus entirely.
func (u *UIManager) Blur() {
	if u.focused != nil {
		u.focused.Blur()
		u.focused = nil
	}
}

// Update routes one frame of input: a primary press focuses the widget under
// the pointer (or blurs when it hits nothing), paste and keys go to the
// focused widget, and frame-aware widgets are ticked.
func (u *UIManager) Update(in *Input) UpdateResult {
	var res UpdateResult
	if in.JustPressed(tcell.Button1) {
		res.PointerHit = u.HandleClick(in.X, in.Y)
	}
	if in.Paste != "" {
		u.HandlePaste(in.Paste)
	}
	for _, k := range in.Keys {
		if !u.HandleKey(k) {
			res.Keys = append(res.Keys, k)
		}
	}
	if fa, ok := u.focused.(FrameAware); ok {
		fa.Tick(in)
	}
	return res
}

// HandleClick focuses the topmost focusable widget at (x, y) and forwards
// the click to it. Clicking empty space blurs.
func (u *UIManager) HandleClick(x, y int) bool {
	w := u.topmostAt(x, y)
	if w == nil || !w.Focusable() {
		u.Blur()
		return w != nil
	}
	u.Focus(w)
	if mw, ok := w.(MouseAware); ok {
		mw.HandleClick(x, y)
	}
	return true
}

// HandlePaste forwards text to the focused widget.
func (u *UIManager) HandlePaste(text string) bool {
	if pa, ok := u.focused.(PasteAware); ok {
		return pa.HandlePaste(text)
	}
	return false
}

// HandleKey offers k to the focused widget, then applies Tab/Shift-Tab
// cycling and Esc blurring.
func (u *UIManager) HandleKey(k KeyPress) bool {
	if u.focused == nil {
		return false
	}
	if u.focused.HandleKey(k) {
		return true
	}
	switch k.Key {
	case tcell.KeyTab:
		u.cycleFocus(k.Mod&tcell.ModShift == 0)
		return true
	case tcell.KeyBacktab:
		u.cycleFocus(false)
		return true
	case tcell.KeyEsc:
		u.Blur()
		return true
	}
	return false
}

// CycleFocus moves focus to the next (or previous) focusable widget.
func (u *UIManager) CycleFocus(forward bool) bool { return u.cycleFocus(forward) }

func (u *UIManager) cycleFocus(forward bool) bool {
	var order []Widget
	for _, w := range u.widgets {
		collectFocusable(w, &order)
	}
	n := len(order)
	if n == 0 {
		return false
	}
	cur := -1
	for i, w := range order {
		if w == u.focused {
			cur = i
			break
		}
	}
	var next int
	switch {
	case cur < 0 && forward:
		next = 0
	case cur < 0:
		next = n - 1
	case forward:
		next = (cur + 1) % n
	default:
		next = (cur - 1 + n) % n
	}
	u.Focus(order[next])
	return true
}

func collectFocusable(w Widget, out *[]Widget) {
	if w.Focusable() {
		*out = append(*out, w)
	}
	if cc, ok := w.(ChildContainer); ok {
		cc.VisitChildren(func(child Widget) { collectFocusable(child, out) })
	}
}

func (u *UIManager) topmostAt(x, y int) Widget {
	for i := len(u.widgets) - 1; i >= 0; i-- {
		if w := deepHit(u.widgets[i], x, y); w != nil {
			return w
		}
	}
	return nil
}

func deepHit(w Widget, x, y int) Widget {
	if cc, ok := w.(ChildContainer); ok {
		var res Widget
		cc.VisitChildren(func(child Widget) {
			if res != nil {
				return
			}
			res = deepHit(child, x, y)
		})
		if res != nil {
			return res
		}
	}
	if w.HitTest(x, y) {
		return w
	}
	return nil
}

// Draw paints every widget, bottom to top.
func (u *UIManager) Draw(p *Painter) {
	for _, w := range u.widgets {
		w.Draw(p)
	}
}

// Render composes a full frame into the manager's own buffer.
func (u *UIManager) Render() [][]Cell {
	if u.buf == nil || len(u.buf) != u.H || (u.H > 0 && len(u.buf[0]) != u.W) {
		u.buf = NewBuffer(u.W, u.H, u.bgStyle)
	}
	full := Rect{W: u.W, H: u.H}
	p := NewPainter(u.buf, full)
	p.Fill(full, ' ', u.bgStyle)
	u.Draw(p)
	return u.buf
}
