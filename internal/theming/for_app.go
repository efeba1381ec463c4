// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/theming/for_app.go
// Summary: Resolves the color palette for an app from the system theme and app overrides.

package theming

import (
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texeltime/config"
)

// Palette is the resolved set of colors the timeline renderer draws with.
type Palette struct {
	Background  tcell.Color
	Foreground  tcell.Color
	Muted       tcell.Color
	Ruler       tcell.Color
	Selection   tcell.Color
	FieldBg     tcell.Color
	FieldFg     tcell.Color
	FieldFocus  tcell.Color
	TooltipBg   tcell.Color
	TooltipFg   tcell.Color
	StatusFg    tcell.Color
	ErrorFg     tcell.Color
	LabelFg     tcell.Color
	BarTextFg   tcell.Color
	DragOutline tcell.Color
}

// Default is used for keys missing from both the theme and the overrides.
var Default = Palette{
	Background:  tcell.GetColor("#1e1e2e"),
	Foreground:  tcell.GetColor("#cdd6f4"),
	Muted:       tcell.GetColor("#7f849c"),
	Ruler:       tcell.GetColor("#9399b2"),
	Selection:   tcell.GetColor("#f9e2af"),
	FieldBg:     tcell.GetColor("#313244"),
	FieldFg:     tcell.GetColor("#cdd6f4"),
	FieldFocus:  tcell.GetColor("#45475a"),
	TooltipBg:   tcell.GetColor("#585b70"),
	TooltipFg:   tcell.GetColor("#f5e0dc"),
	StatusFg:    tcell.GetColor("#a6adc8"),
	ErrorFg:     tcell.GetColor("#f38ba8"),
	LabelFg:     tcell.GetColor("#89b4fa"),
	BarTextFg:   tcell.GetColor("#11111b"),
	DragOutline: tcell.GetColor("#fab387"),
}

// ForApp returns the system theme merged with any per-app overrides.
func ForApp(app string) Palette {
	base := config.System().Section("theme")
	return Resolve(base, overridesForApp(app))
}

func overridesForApp(app string) config.Section {
	if app == "" {
		return nil
	}
	cfg := config.App(app)
	if cfg == nil {
		return nil
	}
	return cfg.Section("theme_overrides")
}

// Resolve builds a palette from a theme section. Keys in overrides win.
// Unknown or malformed colors keep the Default value.
func Resolve(base, overrides config.Section) Palette {
	p := Default
	fields := map[string]*tcell.Color{
		"background":   &p.Background,
		"foreground":   &p.Foreground,
		"muted":        &p.Muted,
		"ruler":        &p.Ruler,
		"selection":    &p.Selection,
		"field_bg":     &p.FieldBg,
		"field_fg":     &p.FieldFg,
		"field_focus":  &p.FieldFocus,
		"tooltip_bg":   &p.TooltipBg,
		"tooltip_fg":   &p.TooltipFg,
		"status_fg":    &p.StatusFg,
		"error_fg":     &p.ErrorFg,
		"label_fg":     &p.LabelFg,
		"bar_text_fg":  &p.BarTextFg,
		"drag_outline": &p.DragOutline,
	}
	for _, src := range []config.Section{base, overrides} {
		for key, raw := range src {
			dst, ok := fields[key]
			if !ok {
				continue
			}
			if c, ok := parseColor(raw); ok {
				*dst = c
			}
		}
	}
	return p
}

func parseColor(raw interface{}) (tcell.Color, bool) {
	s, ok := raw.(string)
	if !ok {
		return tcell.ColorDefault, false
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return tcell.ColorDefault, false
	}
	c := tcell.GetColor(s)
	if c == tcell.ColorDefault && !strings.EqualFold(s, "default") {
		return tcell.ColorDefault, false
	}
	return c, true
}
