// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/effects/flash.go
// Summary: Keyed flashes that start at full intensity and fade out.
// Usage: The timeline app flashes freshly created bars and fades status messages.

package effects

import "time"

// Flash tracks one fading intensity per key.
type Flash struct {
	Duration time.Duration
	Hold     time.Duration // time spent at full intensity before fading
	timeline *Timeline
	started  map[any]time.Time
}

// NewFlash returns a flash that holds for hold and then fades over duration.
func NewFlash(hold, duration time.Duration) *Flash {
	if duration < 0 {
		duration = 0
	}
	if hold < 0 {
		hold = 0
	}
	return &Flash{
		Duration: duration,
		Hold:     hold,
		timeline: NewTimeline(0),
		started:  make(map[any]time.Time),
	}
}

// Trigger restarts the flash for key at now.
func (f *Flash) Trigger(key any, now time.Time) {
	f.timeline.Set(key, 1, now)
	f.started[key] = now
}

// Intensity returns the flash strength of key at now, in [0,1].
func (f *Flash) Intensity(key any, now time.Time) float32 {
	start, ok := f.started[key]
	if !ok {
		return 0
	}
	if now.Sub(start) < f.Hold {
		return 1
	}
	if !f.timeline.IsAnimating(key, now) && f.timeline.Get(key, now) == 1 {
		f.timeline.AnimateToWithOptions(key, 0, AnimateOptions{
			Duration: f.Duration,
			Easing:   EaseInCubic,
		}, start.Add(f.Hold))
	}
	return f.timeline.Get(key, now)
}

// Active reports whether key still has a visible flash at now.
func (f *Flash) Active(key any, now time.Time) bool {
	return f.Intensity(key, now) > 0
}

// Update drops finished flashes.
func (f *Flash) Update(now time.Time) {
	for key, start := range f.started {
		if now.Sub(start) >= f.Hold+f.Duration {
			delete(f.started, key)
			f.timeline.Reset(key)
		}
	}
}

// Len returns the number of flashes still tracked.
func (f *Flash) Len() int { return len(f.started) }
