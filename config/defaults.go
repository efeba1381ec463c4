// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/defaults.go
// Summary: Default values for system and app configuration files.

package config

func applySystemDefaults(cfg Config) {
	if cfg == nil {
		return
	}
	cfg.RegisterDefaults("", Section{
		"defaultApp":  "texeltime",
		"activeTheme": "mocha",
	})
	cfg.RegisterDefaults("theme", Section{
		"background":   "#1e1e2e",
		"foreground":   "#cdd6f4",
		"muted":        "#7f849c",
		"ruler":        "#9399b2",
		"selection":    "#f9e2af",
		"field_bg":     "#313244",
		"field_fg":     "#cdd6f4",
		"field_focus":  "#45475a",
		"tooltip_bg":   "#585b70",
		"tooltip_fg":   "#f5e0dc",
		"status_fg":    "#a6adc8",
		"error_fg":     "#f38ba8",
		"label_fg":     "#89b4fa",
		"bar_text_fg":  "#11111b",
		"drag_outline": "#fab387",
	})
}

func applyAppDefaults(app string, cfg Config) {
	if cfg == nil {
		return
	}
	switch app {
	case "texeltime":
		cfg.RegisterDefaults("texeltime", Section{
			"data_file":     "",
			"backend":       "",
			"history_years": 20.0,
			"save_on_exit":  true,
		})
		cfg.RegisterDefaults("texeltime.viewport", Section{
			"pixels_per_year":       87.5,
			"min_scale":             2.5,
			"max_scale":             250000.0,
			"left_margin":           2,
			"wheel_zoom_in":         1.25,
			"wheel_zoom_out":        0.8,
			"drag_zoom_base":        2.0,
			"drag_zoom_sensitivity": 0.05,
			"remember_scale":        true,
		})
		cfg.RegisterDefaults("texeltime.interaction", Section{
			"edge_grab":          1.0,
			"min_duration_hours": 24.0,
			"max_lanes":          32,
		})
		cfg.RegisterDefaults("texeltime.textfield", Section{
			"repeat_delay_ms":    450,
			"repeat_interval_ms": 40,
			"repeat_gap_ms":      600,
			"held_release_ms":    100,
		})
		cfg.RegisterDefaults("texeltime.host", Section{
			"fps": 60,
		})
	}
}
