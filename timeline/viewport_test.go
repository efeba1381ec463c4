// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package timeline

import (
	"math"
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func TestViewportPixelRoundTrip(t *testing.T) {
	vp := NewViewport(date(2000, 1, 1), 10)
	for _, px := range []float64{-250, 0, 10, 123.5, 1000, 1e5} {
		got := vp.ToPixel(vp.ToInstant(px))
		if math.Abs(got-px) > 1e-6 {
			t.Fatalf("round trip of %v gave %v", px, got)
		}
	}
}

func TestViewportToPixelOfViewStartIsMargin(t *testing.T) {
	vp := NewViewport(date(1990, 6, 15), 12)
	if got := vp.ToPixel(vp.ViewStart); got != 12 {
		t.Fatalf("expected view start at margin 12, got %v", got)
	}
	oneYear := AddSeconds(vp.ViewStart, SecondsPerYear)
	if got := vp.ToPixel(oneYear); math.Abs(got-(12+DefaultPixelsPerYear)) > 1e-9 {
		t.Fatalf("expected one year at %v, got %v", 12+DefaultPixelsPerYear, got)
	}
}

func TestViewportZoomPreservesAnchor(t *testing.T) {
	vp := NewViewport(date(2005, 1, 1), 8)
	const px = 400.0
	anchor := vp.ToInstant(px)
	for step := 0; step < 10; step++ {
		vp.Zoom(1.25, px)
		if drift := math.Abs(vp.ToPixel(anchor) - px); drift >= 1 {
			t.Fatalf("step %d: anchor drifted %v pixels", step, drift)
		}
		if drift := math.Abs(Seconds(anchor, vp.ToInstant(px))); drift >= vp.SecondsPerPixel() {
			t.Fatalf("step %d: anchor drifted %v seconds", step, drift)
		}
	}
	want := DefaultPixelsPerYear * math.Pow(1.25, 10)
	if math.Abs(vp.PixelsPerYear-want) > 1e-6*want {
		t.Fatalf("expected scale %v, got %v", want, vp.PixelsPerYear)
	}
}

func TestViewportZoomOutPreservesAnchor(t *testing.T) {
	vp := NewViewport(date(1970, 1, 1), 0)
	vp.PixelsPerYear = 50000
	anchor := vp.ToInstant(77)
	for i := 0; i < 20; i++ {
		vp.ZoomWheel(-1, 77)
		if drift := math.Abs(vp.ToPixel(anchor) - 77); drift >= 1 {
			t.Fatalf("zoom out %d: anchor drifted %v pixels", i, drift)
		}
	}
}

func TestViewportZoomClamps(t *testing.T) {
	vp := NewViewport(date(2010, 1, 1), 0)
	anchor := vp.ToInstant(300)

	vp.Zoom(1e12, 300)
	if vp.PixelsPerYear != DefaultMaxScale {
		t.Fatalf("expected max scale, got %v", vp.PixelsPerYear)
	}
	if drift := math.Abs(vp.ToPixel(anchor) - 300); drift >= 1 {
		t.Fatalf("clamped zoom moved anchor by %v pixels", drift)
	}

	vp.Zoom(1e-12, 300)
	if vp.PixelsPerYear != DefaultMinScale {
		t.Fatalf("expected min scale, got %v", vp.PixelsPerYear)
	}
}

func TestViewportZoomIgnoresBadFactors(t *testing.T) {
	vp := NewViewport(date(2010, 1, 1), 0)
	start := vp.ViewStart
	for _, f := range []float64{0, -2, math.NaN(), math.Inf(1)} {
		vp.Zoom(f, 100)
	}
	if vp.PixelsPerYear != DefaultPixelsPerYear || !vp.ViewStart.Equal(start) {
		t.Fatalf("bad factors changed the viewport: %v %v", vp.PixelsPerYear, vp.ViewStart)
	}
}

func TestViewportScaleClampedBeforeDivision(t *testing.T) {
	vp := NewViewport(date(2010, 1, 1), 0)
	vp.PixelsPerYear = 0
	if got := vp.Scale(); got != DefaultMinScale {
		t.Fatalf("expected min scale for zero, got %v", got)
	}
	if math.IsInf(vp.SecondsPerPixel(), 0) {
		t.Fatalf("seconds per pixel must stay finite")
	}
}

func TestViewportPanLinearity(t *testing.T) {
	vp := NewViewport(date(1999, 12, 31), 5)
	orig := vp.ViewStart
	for _, dx := range []float64{1, 37.5, -120, 4096} {
		vp.Pan(dx)
		vp.Pan(-dx)
		if d := math.Abs(Seconds(orig, vp.ViewStart)); d > 1e-6 {
			t.Fatalf("pan %v and back drifted %v seconds", dx, d)
		}
	}
	if vp.PixelsPerYear != DefaultPixelsPerYear {
		t.Fatalf("pan changed scale to %v", vp.PixelsPerYear)
	}
}

func TestViewportPanMovesContentWithPointer(t *testing.T) {
	vp := NewViewport(date(2000, 1, 1), 0)
	target := date(2003, 1, 1)
	before := vp.ToPixel(target)
	vp.Pan(25)
	if got := vp.ToPixel(target); math.Abs(got-(before+25)) > 1e-6 {
		t.Fatalf("expected content at %v after pan, got %v", before+25, got)
	}
}

func TestViewportPanIgnoresTinyDelta(t *testing.T) {
	vp := NewViewport(date(2000, 1, 1), 0)
	orig := vp.ViewStart
	vp.Pan(1e-12)
	vp.Pan(0)
	if !vp.ViewStart.Equal(orig) {
		t.Fatalf("tiny pan moved view start")
	}
}

func TestViewportWheelSteps(t *testing.T) {
	vp := NewViewport(date(2000, 1, 1), 0)
	vp.ZoomWheel(1, 0)
	if math.Abs(vp.PixelsPerYear-DefaultPixelsPerYear*1.25) > 1e-9 {
		t.Fatalf("wheel in: got %v", vp.PixelsPerYear)
	}
	vp.ZoomWheel(-1, 0)
	if math.Abs(vp.PixelsPerYear-DefaultPixelsPerYear) > 1e-9 {
		t.Fatalf("wheel out: got %v", vp.PixelsPerYear)
	}
}

func TestViewportContinuousZoom(t *testing.T) {
	vp := NewViewport(date(2000, 1, 1), 0)
	anchor := vp.ToInstant(60)
	vp.ZoomContinuous(20, 60)
	want := DefaultPixelsPerYear * math.Pow(DefaultDragZoomBase, 20*DefaultDragZoomSens)
	if math.Abs(vp.PixelsPerYear-want) > 1e-9*want {
		t.Fatalf("expected %v, got %v", want, vp.PixelsPerYear)
	}
	if drift := math.Abs(vp.ToPixel(anchor) - 60); drift >= 1 {
		t.Fatalf("continuous zoom drifted %v pixels", drift)
	}
	vp.ZoomContinuous(-20, 60)
	if math.Abs(vp.PixelsPerYear-DefaultPixelsPerYear) > 1e-6 {
		t.Fatalf("expected zoom to invert, got %v", vp.PixelsPerYear)
	}
}

func TestViewportFarInstants(t *testing.T) {
	// Spans beyond time.Duration's ~292 year limit must still map linearly.
	vp := NewViewport(date(1200, 1, 1), 0)
	vp.PixelsPerYear = DefaultMinScale
	far := date(2600, 1, 1)
	px := vp.ToPixel(far)
	years := Years(Seconds(vp.ViewStart, far))
	if math.Abs(px-years*DefaultMinScale) > 1e-6 {
		t.Fatalf("expected %v, got %v", years*DefaultMinScale, px)
	}
	if back := vp.ToInstant(px); math.Abs(Seconds(far, back)) > 1e-3 {
		t.Fatalf("far instant did not round trip: %v", back)
	}
}
