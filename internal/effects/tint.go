// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/effects/tint.go
// Summary: Color blending helpers for fades and flashes.

package effects

import (
	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// Blend mixes from towards to by t in [0,1], interpolating in Lab space.
// Colors without an RGB value (the terminal default) snap at the halfway point.
func Blend(from, to tcell.Color, t float32) tcell.Color {
	switch {
	case t <= 0:
		return from
	case t >= 1:
		return to
	}
	a, okA := toColorful(from)
	b, okB := toColorful(to)
	if !okA || !okB {
		if t < 0.5 {
			return from
		}
		return to
	}
	return fromColorful(a.BlendLab(b, float64(t)).Clamped())
}

// TintStyle blends both the foreground and background of style towards tint.
func TintStyle(style tcell.Style, tint tcell.Color, intensity float32) tcell.Style {
	if intensity <= 0 {
		return style
	}
	fg, bg, _ := style.Decompose()
	return style.Foreground(Blend(fg, tint, intensity)).Background(Blend(bg, tint, intensity))
}

// FromColorful converts a go-colorful color to a tcell true color.
func FromColorful(c colorful.Color) tcell.Color {
	return fromColorful(c.Clamped())
}

func toColorful(c tcell.Color) (colorful.Color, bool) {
	if c == tcell.ColorDefault || !c.Valid() {
		return colorful.Color{}, false
	}
	r, g, b := c.RGB()
	if r < 0 {
		return colorful.Color{}, false
	}
	return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}, true
}

func fromColorful(c colorful.Color) tcell.Color {
	r, g, b := c.RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}
