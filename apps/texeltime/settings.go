// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: apps/texeltime/settings.go
// Summary: Typed view of the texeltime app config.

package texeltime

import (
	"time"

	"github.com/framegrace/texeltime/config"
	"github.com/framegrace/texeltime/texelui/core"
	"github.com/framegrace/texeltime/texelui/widgets"
	"github.com/framegrace/texeltime/timeline"
)

// Settings holds every tunable the app reads from its config.
type Settings struct {
	DataFile     string
	Backend      string
	HistoryYears float64
	SaveOnExit   bool

	PixelsPerYear float64
	MinScale      float64
	MaxScale      float64
	LeftMargin    int
	RememberScale bool
	WheelZoomIn   float64
	WheelZoomOut  float64
	DragZoomBase  float64
	DragZoomSens  float64

	EdgeGrab    float64
	MinDuration time.Duration
	MaxLanes    int

	RepeatDelay    time.Duration
	RepeatInterval time.Duration
	RepeatGap      time.Duration
	HeldRelease    time.Duration

	FPS int
}

// cellPixels converts the engine's pixel defaults to terminal cells.
const cellPixels = 8

// DefaultSettings mirrors the embedded app config.
func DefaultSettings() Settings {
	return Settings{
		HistoryYears:   20,
		SaveOnExit:     true,
		PixelsPerYear:  timeline.DefaultPixelsPerYear / cellPixels,
		MinScale:       timeline.DefaultMinScale / cellPixels,
		MaxScale:       timeline.DefaultMaxScale / cellPixels,
		LeftMargin:     2,
		RememberScale:  true,
		WheelZoomIn:    timeline.DefaultWheelZoomIn,
		WheelZoomOut:   timeline.DefaultWheelZoomOut,
		DragZoomBase:   timeline.DefaultDragZoomBase,
		DragZoomSens:   timeline.DefaultDragZoomSens,
		EdgeGrab:       1,
		MinDuration:    time.Duration(timeline.DefaultMinDuration) * time.Second,
		MaxLanes:       timeline.DefaultMaxLanes,
		RepeatDelay:    widgets.DefaultRepeatDelay,
		RepeatInterval: widgets.DefaultRepeatInterval,
		RepeatGap:      widgets.DefaultRepeatGap,
		HeldRelease:    core.DefaultHeldRelease,
		FPS:            60,
	}
}

// SettingsFromConfig reads cfg, keeping defaults for missing or invalid values.
func SettingsFromConfig(cfg config.Config) Settings {
	s := DefaultSettings()
	if cfg == nil {
		return s
	}
	s.DataFile = cfg.GetString("texeltime", "data_file", s.DataFile)
	s.Backend = cfg.GetString("texeltime", "backend", s.Backend)
	s.HistoryYears = positive(cfg.GetFloat("texeltime", "history_years", s.HistoryYears), s.HistoryYears)
	s.SaveOnExit = cfg.GetBool("texeltime", "save_on_exit", s.SaveOnExit)

	const vp = "texeltime.viewport"
	s.PixelsPerYear = positive(cfg.GetFloat(vp, "pixels_per_year", s.PixelsPerYear), s.PixelsPerYear)
	s.MinScale = positive(cfg.GetFloat(vp, "min_scale", s.MinScale), s.MinScale)
	s.MaxScale = positive(cfg.GetFloat(vp, "max_scale", s.MaxScale), s.MaxScale)
	if s.MaxScale < s.MinScale {
		d := DefaultSettings()
		s.MinScale, s.MaxScale = d.MinScale, d.MaxScale
	}
	if m := cfg.GetInt(vp, "left_margin", s.LeftMargin); m >= 0 {
		s.LeftMargin = m
	}
	s.RememberScale = cfg.GetBool(vp, "remember_scale", s.RememberScale)
	s.WheelZoomIn = positive(cfg.GetFloat(vp, "wheel_zoom_in", s.WheelZoomIn), s.WheelZoomIn)
	s.WheelZoomOut = positive(cfg.GetFloat(vp, "wheel_zoom_out", s.WheelZoomOut), s.WheelZoomOut)
	s.DragZoomBase = positive(cfg.GetFloat(vp, "drag_zoom_base", s.DragZoomBase), s.DragZoomBase)
	s.DragZoomSens = positive(cfg.GetFloat(vp, "drag_zoom_sensitivity", s.DragZoomSens), s.DragZoomSens)

	const in = "texeltime.interaction"
	s.EdgeGrab = positive(cfg.GetFloat(in, "edge_grab", s.EdgeGrab), s.EdgeGrab)
	if h := cfg.GetFloat(in, "min_duration_hours", -1); h > 0 {
		s.MinDuration = time.Duration(h * float64(time.Hour))
	}
	if n := cfg.GetInt(in, "max_lanes", s.MaxLanes); n > 0 {
		s.MaxLanes = n
	}

	const tf = "texeltime.textfield"
	s.RepeatDelay = millis(cfg.GetInt(tf, "repeat_delay_ms", -1), s.RepeatDelay)
	s.RepeatInterval = millis(cfg.GetInt(tf, "repeat_interval_ms", -1), s.RepeatInterval)
	s.RepeatGap = millis(cfg.GetInt(tf, "repeat_gap_ms", -1), s.RepeatGap)
	s.HeldRelease = millis(cfg.GetInt(tf, "held_release_ms", -1), s.HeldRelease)

	if fps := cfg.GetInt("texeltime.host", "fps", s.FPS); fps > 0 && fps <= 240 {
		s.FPS = fps
	}
	return s
}

// FrameInterval is the host tick period.
func (s Settings) FrameInterval() time.Duration {
	if s.FPS <= 0 {
		return time.Second / 60
	}
	return time.Second / time.Duration(s.FPS)
}

func positive(v, fallback float64) float64 {
	if v > 0 {
		return v
	}
	return fallback
}

func millis(ms int, fallback time.Duration) time.Duration {
	if ms > 0 {
		return time.Duration(ms) * time.Millisecond
	}
	return fallback
}
