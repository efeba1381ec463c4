// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: timeline/geometry.go
// Summary: Lane-to-rectangle mapping and bar hit testing.

package timeline

import "math"

// DragMode selects what a drag edits.
type DragMode int

const (
	DragMove DragMode = iota
	DragResizeLeft
	DragResizeRight
)

func (m DragMode) String() string {
	switch m {
	case DragResizeLeft:
		return "resize-left"
	case DragResizeRight:
		return "resize-right"
	default:
		return "move"
	}
}

// Geometry places lanes vertically. Units are the host's pixels (terminal cells).
type Geometry struct {
	Top         float64 // y of lane 0
	BarHeight   float64
	LaneGap     float64
	MinBarWidth float64
	EdgeGrab    float64 // edge-grab threshold in pixels
}

// DefaultGeometry suits a terminal host: one row per bar, no gap.
func DefaultGeometry(top float64) Geometry {
	return Geometry{Top: top, BarHeight: 1, LaneGap: 0, MinBarWidth: 1, EdgeGrab: 1}
}

// LaneY returns the top of lane.
func (g Geometry) LaneY(lane int) float64 {
	return g.Top + float64(lane)*(g.BarHeight+g.LaneGap)
}

// Bar is an event's on-screen rectangle for the current frame.
type Bar struct {
	ID   EventID
	Lane int
	X, Y float64
	W, H float64
}

// Contains reports whether (x, y) is inside the half-open rectangle.
func (b Bar) Contains(x, y float64) bool {
	return x >= b.X && x < b.X+b.W && y >= b.Y && y < b.Y+b.H
}

// Bars computes rectangles for every packed event, in store order.
func (g Geometry) Bars(events []Event, layout Layout, vp *Viewport) []Bar {
	bars := make([]Bar, 0, len(layout.Lanes))
	for _, e := range events {
		lane, ok := layout.Lane(e.ID)
		if !ok {
			continue
		}
		x0 := vp.ToPixel(e.Start)
		w := vp.ToPixel(e.End) - x0
		bars = append(bars, Bar{
			ID:   e.ID,
			Lane: lane,
			X:    x0,
			Y:    g.LaneY(lane),
			W:    math.Max(w, g.MinBarWidth),
			H:    g.BarHeight,
		})
	}
	return bars
}

// HitTest returns the bar under (x, y). Later bars win since they are drawn on top.
func HitTest(bars []Bar, x, y float64) (Bar, bool) {
	for i := len(bars) - 1; i >= 0; i-- {
		if bars[i].Contains(x, y) {
			return bars[i], true
		}
	}
	return Bar{}, false
}

// Mode picks the drag mode for a press at x inside bar. Bars too narrow to
// have distinct edges are always moved.
func (g Geometry) Mode(bar Bar, x float64) DragMode {
	if bar.W <= 2*g.EdgeGrab {
		return DragMove
	}
	off := x - bar.X
	switch {
	case off < g.EdgeGrab:
		return DragResizeLeft
	case off > bar.W-g.EdgeGrab:
		return DragResizeRight
	default:
		return DragMove
	}
}
