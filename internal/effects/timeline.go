// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/effects/timeline.go
// Summary: Per-key animation timeline driven by frame time.
// Notes: Owned by the frame goroutine; callers pass the frame's clock so
// animations are reproducible in tests.

package effects

import (
	"time"
)

// EasingFunc maps progress [0,1] to an eased value [0,1].
type EasingFunc func(progress float32) float32

var (
	// EaseSmoothstep accelerates at start and decelerates at end.
	EaseSmoothstep EasingFunc = func(t float32) float32 {
		return t * t * (3.0 - 2.0*t)
	}

	// EaseInCubic - slow start
	EaseInCubic EasingFunc = func(t float32) float32 {
		return t * t * t
	}
)

// AnimateOptions configures a transition.
type AnimateOptions struct {
	Duration time.Duration // 0 jumps to the target
	Easing   EasingFunc    // nil uses the timeline default
}

type keyState struct {
	current   float32
	start     float32
	target    float32
	startTime time.Time
	duration  time.Duration
	easing    EasingFunc
}

// Timeline holds one animated value per key.
type Timeline struct {
	states         map[any]*keyState
	defaultEasing  EasingFunc
	defaultInitial float32
}

// NewTimeline creates a timeline whose unknown keys read as defaultInitial.
func NewTimeline(defaultInitial float32) *Timeline {
	return &Timeline{
		states:         make(map[any]*keyState),
		defaultEasing:  EaseSmoothstep,
		defaultInitial: defaultInitial,
	}
}

// AnimateTo starts an animation of key towards target and returns the value at now.
func (tl *Timeline) AnimateTo(key any, target float32, duration time.Duration, now time.Time) float32 {
	return tl.AnimateToWithOptions(key, target, AnimateOptions{Duration: duration}, now)
}

// AnimateToWithOptions starts an animation with a custom easing function.
// A running animation is restarted from its current value.
func (tl *Timeline) AnimateToWithOptions(key any, target float32, opts AnimateOptions, now time.Time) float32 {
	state := tl.states[key]
	if state == nil {
		state = &keyState{current: tl.defaultInitial}
		tl.states[key] = state
	} else {
		state.current = tl.computeValue(state, now)
	}
	state.start = state.current
	state.target = target
	state.startTime = now
	state.duration = opts.Duration
	state.easing = opts.Easing

	if opts.Duration <= 0 || state.current == target {
		state.current = target
		state.duration = 0
	}
	return state.current
}

// Set jumps key to value with no animation.
func (tl *Timeline) Set(key any, value float32, now time.Time) {
	tl.AnimateTo(key, value, 0, now)
}

// Get returns the value of key at now.
func (tl *Timeline) Get(key any, now time.Time) float32 {
	state := tl.states[key]
	if state == nil {
		return tl.defaultInitial
	}
	state.current = tl.computeValue(state, now)
	return state.current
}

// IsAnimating reports whether key is still moving at now.
func (tl *Timeline) IsAnimating(key any, now time.Time) bool {
	state := tl.states[key]
	if state == nil || state.duration <= 0 {
		return false
	}
	return now.Sub(state.startTime) < state.duration && state.current != state.target
}

// Update advances every key to now and drops keys that settled on the default.
func (tl *Timeline) Update(now time.Time) {
	for key, state := range tl.states {
		state.current = tl.computeValue(state, now)
		if state.current == tl.defaultInitial && now.Sub(state.startTime) >= state.duration {
			delete(tl.states, key)
		}
	}
}

// Reset forgets key.
func (tl *Timeline) Reset(key any) {
	delete(tl.states, key)
}

// Len returns the number of tracked keys.
func (tl *Timeline) Len() int { return len(tl.states) }

func (tl *Timeline) computeValue(state *keyState, now time.Time) float32 {
	if state.duration <= 0 {
		return state.target
	}
	if now.Before(state.startTime) {
		return state.start
	}
	elapsed := now.Sub(state.startTime)
	if elapsed >= state.duration {
		return state.target
	}

	progress := float32(elapsed) / float32(state.duration)
	easing := state.easing
	if easing == nil {
		easing = tl.defaultEasing
	}
	return state.start + (state.target-state.start)*easing(progress)
}
