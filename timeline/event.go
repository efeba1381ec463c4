// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: timeline/event.go
// Summary: Life event record and display color helpers.

package timeline

import (
	"time"
	"unicode/utf8"

	"github.com/lucasb-eyer/go-colorful"
)

// Field limits, in runes.
const (
	MaxNameLen        = 63
	MaxDescriptionLen = 255
)

// EventID identifies an event for its whole lifetime. IDs are never reused.
type EventID uint64

// NoEvent is the zero id; no stored event has it.
const NoEvent EventID = 0

// Event is a named time range. End is always strictly after Start.
type Event struct {
	ID          EventID
	Name        string
	Start       time.Time
	End         time.Time
	Description string
	Color       colorful.Color
}

// DurationSeconds is derived from Start/End on every call.
func (e Event) DurationSeconds() float64 {
	return Seconds(e.Start, e.End)
}

// DurationYears is the duration in Julian years.
func (e Event) DurationYears() float64 {
	return Years(e.DurationSeconds())
}

// Overlaps reports whether the half-open ranges [Start, End) intersect.
func (e Event) Overlaps(o Event) bool {
	return e.Start.Before(o.End) && o.Start.Before(e.End)
}

// RandInterface is the subset of *rand.Rand used for color generation.
type RandInterface = colorful.RandInterface

// RandomColor returns a pseudo-random, reasonably saturated color.
func RandomColor(rng RandInterface) colorful.Color {
	if rng == nil {
		return colorful.HappyColor()
	}
	return colorful.HappyColorWithRand(rng)
}

// ParseColor decodes "#rrggbb"; ok is false for anything else.
func ParseColor(s string) (colorful.Color, bool) {
	c, err := colorful.Hex(s)
	if err != nil {
		return colorful.Color{}, false
	}
	return c, true
}

func truncateRunes(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	r := []rune(s)
	return string(r[:max])
}
