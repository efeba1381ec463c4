// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: apps/texeltime/render.go
// Summary: Draws the form, ruler, bars, tooltip and status line into a cell buffer.

package texeltime

import (
	"fmt"
	"math"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/framegrace/texeltime/internal/effects"
	"github.com/framegrace/texeltime/texelui/core"
	"github.com/framegrace/texeltime/timeline"
)

const helpText = "Enter create/apply · Del delete · drag move/resize · right-drag pan · wheel/+/- zoom · z zoom mode · t today · ^S save · ^Q quit"

// Render draws the whole surface for the current state.
func (a *App) Render() [][]core.Cell {
	for _, f := range a.fields() {
		f.Style = a.fieldStyle(f.IsFocused())
	}
	buf := a.ui.Render()
	s := &a.state
	if s.Width <= 0 || s.Height <= 0 {
		return buf
	}
	p := core.NewPainter(buf, core.Rect{W: s.Width, H: s.Height})
	a.drawLabels(p)
	a.drawRuler(p)
	lanes := core.Rect{X: 0, Y: lanesTop, W: s.Width, H: s.Height - 1 - lanesTop}
	if lanes.H > 0 {
		a.drawBars(p.WithClip(lanes))
	}
	a.drawTooltip(p)
	a.drawStatus(p)
	return buf
}

func (a *App) base() tcell.Style {
	return tcell.StyleDefault.Background(a.palette.Background).Foreground(a.palette.Foreground)
}

func (a *App) fieldStyle(focused bool) tcell.Style {
	bg := a.palette.FieldBg
	if focused {
		bg = a.palette.FieldFocus
	}
	return tcell.StyleDefault.Background(bg).Foreground(a.palette.FieldFg)
}

func (a *App) drawLabels(p *core.Painter) {
	style := a.base().Foreground(a.palette.LabelFg)
	label := func(w interface{ Position() (int, int) }, text string) {
		x, y := w.Position()
		p.DrawText(x-labelWidth, y, text, style, labelWidth-1)
	}
	label(a.Name, "Name")
	label(a.Start, "Start")
	label(a.End, "End")
	label(a.Description, "Desc")
}

func (a *App) drawRuler(p *core.Painter) {
	s := &a.state
	base := a.base().Foreground(a.palette.Ruler)
	for x := 0; x < s.Width; x++ {
		p.SetCell(x, rulerRow, '─', base)
	}

	from, to := s.View.VisibleRange(s.Width)
	unit := chooseTickUnit(s.View.Scale())
	labelStyle := a.base().Foreground(a.palette.Muted)
	lastEnd := math.MinInt
	for _, t := range unit.ticks(from, to) {
		x, ok := a.column(s.View.ToPixel(t))
		if !ok {
			continue
		}
		p.SetCell(x, rulerRow, '┬', base)
		text := unit.Label(t)
		if x <= lastEnd {
			continue
		}
		lastEnd = x + p.DrawText(x, rulerLabelRow, text, labelStyle, s.Width-x)
	}

	if x, ok := a.column(s.View.ToPixel(s.Now)); ok {
		p.SetCell(x, rulerRow, '▼', base.Foreground(a.palette.Selection))
	}
}

func (a *App) drawBars(p *core.Painter) {
	s := &a.state
	byID := make(map[timeline.EventID]timeline.Event, s.Store.Len())
	for _, e := range s.Store.Events() {
		byID[e.ID] = e
	}
	drag, dragging := s.Ctrl.Drag()
	selected := s.Ctrl.Selected()

	for _, bar := range s.Bars {
		e, ok := byID[bar.ID]
		if !ok {
			continue
		}
		y := int(math.Floor(bar.Y))
		x0, x1 := a.span(bar)
		if x1 <= x0 {
			continue
		}

		bg := effects.FromColorful(e.Color)
		style := tcell.StyleDefault.Background(bg).Foreground(a.palette.BarTextFg)
		switch {
		case dragging && drag.Target == e.ID:
			style = style.Background(a.palette.DragOutline)
		case e.ID == selected:
			style = style.Background(a.palette.Selection).Bold(true)
		case e.ID == s.Hovered:
			style = effects.TintStyle(style, a.palette.Foreground, 0.15)
		}
		if k := a.flash.Intensity(e.ID, s.Now); k > 0 {
			style = effects.TintStyle(style, a.palette.Foreground, 0.6*k)
		}

		for x := x0; x < x1; x++ {
			p.SetCell(x, y, ' ', style)
		}
		if e.ID == selected && x1-x0 > 2 {
			p.SetCell(x0, y, '▐', style)
			p.SetCell(x1-1, y, '▌', style)
		}

		// Text starts at the visible part of the bar.
		tx0 := max(x0, 0) + 1
		avail := x1 - tx0 - 1
		if avail <= 0 {
			continue
		}
		dur := formatDuration(e)
		name := e.Name
		nameW := runewidth.StringWidth(name)
		durW := runewidth.StringWidth(dur)
		if nameW+durW+1 <= avail {
			p.DrawText(x1-1-durW, y, dur, style, durW)
		}
		p.DrawText(tx0, y, name, style, avail)
	}
}

func (a *App) drawTooltip(p *core.Painter) {
	s := &a.state
	if !s.HasTooltip {
		return
	}
	text := " " + strings.Join(strings.Fields(s.Tooltip.Text), " ") + " "
	maxW := max(s.Width-2, 1)
	w := min(runewidth.StringWidth(text), maxW)
	x := int(math.Floor(s.Tooltip.X)) + 1
	y := int(math.Floor(s.Tooltip.Y))
	if x+w > s.Width {
		x = max(s.Width-w, 0)
	}
	if y >= s.Height-1 {
		y = s.PointerY - 1
	}
	style := tcell.StyleDefault.Background(a.palette.TooltipBg).Foreground(a.palette.TooltipFg)
	p.Fill(core.Rect{X: x, Y: y, W: w, H: 1}, ' ', style)
	p.DrawText(x, y, text, style, w)
}

func (a *App) drawStatus(p *core.Painter) {
	s := &a.state
	y := s.Height - 1
	base := a.base()
	p.Fill(core.Rect{Y: y, W: s.Width, H: 1}, ' ', base)

	right := a.statusRight()
	rightW := runewidth.StringWidth(right)
	leftW := max(s.Width-rightW-1, 0)

	k := a.StatusIntensity()
	switch {
	case leftW == 0:
	case s.Status != "" && k > 0:
		fg := a.palette.StatusFg
		if s.StatusIsError {
			fg = a.palette.ErrorFg
		}
		fg = effects.Blend(a.palette.Background, fg, k)
		p.DrawText(0, y, s.Status, base.Foreground(fg), leftW)
	default:
		p.DrawText(0, y, helpText, base.Foreground(a.palette.Muted), leftW)
	}
	if rightW < s.Width {
		p.DrawText(s.Width-rightW, y, right, base.Foreground(a.palette.StatusFg), rightW)
	}
}

func (a *App) statusRight() string {
	s := &a.state
	var parts []string
	if s.ZoomMode {
		parts = append(parts, "ZOOM")
	}
	if e, ok := s.Store.Get(s.Ctrl.Selected()); ok {
		parts = append(parts, "edit: "+e.Name)
	} else {
		parts = append(parts, "new event")
	}
	dirty := ""
	if s.Dirty {
		dirty = "*"
	}
	parts = append(parts, fmt.Sprintf("%d%s events", s.Store.Len(), dirty))
	parts = append(parts, formatScale(s.View.Scale()))
	return strings.Join(parts, " · ")
}

// column maps a pixel to the cell whose center it covers.
func (a *App) column(px float64) (int, bool) {
	if math.IsNaN(px) || px < 0 || px >= float64(a.state.Width) {
		return 0, false
	}
	return int(px), true
}

// span returns the half-open cell range whose centers fall inside bar.
func (a *App) span(bar timeline.Bar) (int, int) {
	lim := float64(a.state.Width + 1)
	x0 := math.Ceil(clampf(bar.X-0.5, -1, lim))
	x1 := math.Ceil(clampf(bar.X+bar.W-0.5, -1, lim))
	return max(int(x0), 0), min(int(x1), a.state.Width)
}

func clampf(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Max(lo, math.Min(hi, v))
}

// formatDuration renders an event length in the largest unit that is at least one.
func formatDuration(e timeline.Event) string {
	secs := e.DurationSeconds()
	switch {
	case secs >= timeline.SecondsPerYear:
		return fmt.Sprintf("%.2fy", timeline.Years(secs))
	case secs >= secDay:
		return fmt.Sprintf("%.1fd", secs/secDay)
	default:
		return fmt.Sprintf("%.1fh", secs/secHour)
	}
}

func formatScale(pxPerYear float64) string {
	switch {
	case pxPerYear >= 365.25*24:
		return fmt.Sprintf("%.1f cells/h", pxPerYear/(365.25*24))
	case pxPerYear >= 365.25:
		return fmt.Sprintf("%.1f cells/d", pxPerYear/365.25)
	default:
		return fmt.Sprintf("%.0f cells/y", pxPerYear)
	}
}
