// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package widgets

import (
	"time"

	"github.com/gdamore/tcell/v2"
)

const (
	DefaultRepeatDelay    = 450 * time.Millisecond
	DefaultRepeatInterval = 40 * time.Millisecond
	// DefaultRepeatGap must exceed the terminal's initial auto-repeat delay.
	DefaultRepeatGap = 600 * time.Millisecond
)

// KeyRepeater turns a held key into discrete actions: one on the press,
// then one per Interval once Delay has elapsed. Switching to another key
// restarts the sequence, and so does a silence longer than Gap.
//
// Terminals report no key releases, and the first auto-repeat arrives only
// after their own initial delay. While the key is not reported as held the
// schedule is kept but paused, so the first auto-repeat inside Gap resumes
// it instead of counting as a new press. A paused key pressed again before
// Delay has elapsed is a second tap and starts over.
type KeyRepeater struct {
	Delay    time.Duration
	Interval time.Duration
	Gap      time.Duration

	key    tcell.Key
	next   time.Time
	last   time.Time
	paused bool
}

func NewKeyRepeater(delay, interval time.Duration) *KeyRepeater {
	if delay <= 0 {
		delay = DefaultRepeatDelay
	}
	if interval <= 0 {
		interval = DefaultRepeatInterval
	}
	return &KeyRepeater{Delay: delay, Interval: interval, Gap: DefaultRepeatGap}
}

// Press registers a key event and reports whether it is a fresh press that
// should act immediately. Events for the key already being tracked are
// terminal auto-repeats; Update paces those instead.
func (r *KeyRepeater) Press(key tcell.Key, now time.Time) bool {
	resume := key == r.key && now.Sub(r.last) < r.gap()
	if resume && !(r.paused && now.Before(r.next)) {
		r.last = now
		r.paused = false
		return false
	}
	r.key = key
	r.next = now.Add(r.Delay)
	r.last = now
	r.paused = false
	return true
}

// Update reports how many repeated actions are due at now, given the key
// currently held (KeyNUL when none).
func (r *KeyRepeater) Update(held tcell.Key, now time.Time) int {
	if r.key == tcell.KeyNUL {
		return 0
	}
	if held == tcell.KeyNUL {
		if now.Sub(r.last) >= r.gap() {
			r.Reset()
		} else {
			r.paused = true
		}
		return 0
	}
	if held != r.key {
		r.Reset()
		return 0
	}
	r.paused = false
	if r.Interval <= 0 {
		r.Interval = DefaultRepeatInterval
	}
	n := 0
	for !now.Before(r.next) {
		n++
		r.next = r.next.Add(r.Interval)
	}
	return n
}

// Held returns the tracked key, or KeyNUL.
func (r *KeyRepeater) Held() tcell.Key { return r.key }

// Reset forgets the tracked key.
func (r *KeyRepeater) Reset() {
	r.key = tcell.KeyNUL
	r.next = time.Time{}
	r.last = time.Time{}
	r.paused = false
}

func (r *KeyRepeater) gap() time.Duration {
	if r.Gap <= 0 {
		return DefaultRepeatGap
	}
	return r.Gap
}
