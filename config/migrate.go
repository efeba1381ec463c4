// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/migrate.go
// Summary: Legacy data file adoption for first-run app configs.

package config

import (
	"log"
	"os"
	"path/filepath"
)

// migrateAppFromLegacy points a fresh texeltime config at a records file
// left in the working directory by older builds, so existing data keeps
// loading instead of silently starting empty.
func migrateAppFromLegacy(app string, cfg Config) (bool, error) {
	if cfg == nil || app != "texeltime" {
		return false, nil
	}
	info, err := os.Stat(legacyDataName)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	if info.IsDir() {
		return false, nil
	}
	abs, err := filepath.Abs(legacyDataName)
	if err != nil {
		return false, err
	}
	if def := defaultAppConfig(app); def != nil {
		for k, v := range def {
			cfg[k] = v
		}
	}
	section := cfg.Section("texeltime")
	if section == nil {
		section = make(Section)
		cfg["texeltime"] = section
	}
	section["data_file"] = abs
	log.Printf("Config: Adopted legacy data file %s", abs)
	return true, nil
}
