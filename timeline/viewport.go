// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: timeline/viewport.go
// Summary: Time<->pixel mapping with pan and anchor-preserving zoom.

package timeline

import (
	"math"
	"time"
)

// Scale bounds and steps used when no configuration overrides them.
const (
	DefaultPixelsPerYear = 700.0
	DefaultMinScale      = 20.0
	DefaultMaxScale      = 2_000_000.0
	DefaultWheelZoomIn   = 1.25
	DefaultWheelZoomOut  = 0.8
	DefaultDragZoomBase  = 2.0
	DefaultDragZoomSens  = 0.05

	// minPanDelta filters pointer jitter; smaller deltas leave ViewStart alone.
	minPanDelta = 1e-9
)

// Viewport maps calendar instants to horizontal pixels.
type Viewport struct {
	ViewStart     time.Time
	PixelsPerYear float64
	MinScale      float64
	MaxScale      float64
	// LeftMargin is the pixel at which ViewStart is drawn.
	LeftMargin float64

	WheelZoomIn  float64
	WheelZoomOut float64
	DragZoomBase float64
	DragZoomSens float64
}

// NewViewport returns a viewport starting at start with default scale settings.
func NewViewport(start time.Time, leftMargin float64) *Viewport {
	return &Viewport{
		ViewStart:     start,
		PixelsPerYear: DefaultPixelsPerYear,
		MinScale:      DefaultMinScale,
		MaxScale:      DefaultMaxScale,
		LeftMargin:    leftMargin,
		WheelZoomIn:   DefaultWheelZoomIn,
		WheelZoomOut:  DefaultWheelZoomOut,
		DragZoomBase:  DefaultDragZoomBase,
		DragZoomSens:  DefaultDragZoomSens,
	}
}

// Scale returns PixelsPerYear clamped to [MinScale, MaxScale]. It is what every
// conversion divides by, so a bad field value can never reach a division.
func (v *Viewport) Scale() float64 {
	s := v.PixelsPerYear
	lo, hi := v.MinScale, v.MaxScale
	if lo <= 0 {
		lo = DefaultMinScale
	}
	if hi < lo {
		hi = lo
	}
	if math.IsNaN(s) || s < lo {
		return lo
	}
	if s > hi {
		return hi
	}
	return s
}

// ToPixel returns the horizontal pixel of t.
func (v *Viewport) ToPixel(t time.Time) float64 {
	return v.LeftMargin + Seconds(v.ViewStart, t)*v.Scale()/SecondsPerYear
}

// ToInstant returns the instant drawn at pixel px.
func (v *Viewport) ToInstant(px float64) time.Time {
	return AddSeconds(v.ViewStart, (px-v.LeftMargin)*SecondsPerYear/v.Scale())
}

// SecondsPerPixel is the time span covered by one pixel at the current scale.
func (v *Viewport) SecondsPerPixel() float64 {
	return SecondsPerYear / v.Scale()
}

// Pan shifts the view so content follows a pointer moved by dx pixels.
func (v *Viewport) Pan(dx float64) {
	if math.Abs(dx) < minPanDelta || math.IsNaN(dx) {
		return
	}
	v.ViewStart = AddSeconds(v.ViewStart, -dx*v.SecondsPerPixel())
}

// Zoom multiplies the scale by factor keeping the instant under px fixed.
func (v *Viewport) Zoom(factor, px float64) {
	if factor <= 0 || math.IsNaN(factor) || math.IsInf(factor, 0) {
		return
	}
	anchor := v.ToInstant(px)
	v.PixelsPerYear = v.Scale() * factor
	v.PixelsPerYear = v.Scale() // clamp
	v.ViewStart = AddSeconds(anchor, -(px-v.LeftMargin)*v.SecondsPerPixel())
}

// ZoomWheel applies ticks discrete wheel steps at px. Positive ticks zoom in.
func (v *Viewport) ZoomWheel(ticks int, px float64) {
	step := v.WheelZoomIn
	if ticks < 0 {
		step = v.WheelZoomOut
		ticks = -ticks
	}
	if step <= 0 || ticks == 0 {
		return
	}
	v.Zoom(math.Pow(step, float64(ticks)), px)
}

// ZoomContinuous zooms by base^(delta*sensitivity), used by drag-to-zoom.
// Positive delta zooms in.
func (v *Viewport) ZoomContinuous(delta, px float64) {
	if math.Abs(delta) < minPanDelta {
		return
	}
	base := v.DragZoomBase
	if base <= 1 {
		base = DefaultDragZoomBase
	}
	v.Zoom(math.Pow(base, delta*v.DragZoomSens), px)
}

// VisibleRange returns the instants at pixel 0 and at width.
func (v *Viewport) VisibleRange(width int) (time.Time, time.Time) {
	return v.ToInstant(0), v.ToInstant(float64(width))
}

// CenterOn scrolls so that t is drawn at px without changing the scale.
func (v *Viewport) CenterOn(t time.Time, px float64) {
	v.ViewStart = AddSeconds(t, -(px-v.LeftMargin)*v.SecondsPerPixel())
}
