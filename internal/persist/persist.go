// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/persist/persist.go
// Summary: Backend selection for saving and loading the event list.

package persist

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/framegrace/texeltime/timeline"
)

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Backend stores the ordered event list. Instants are kept at minute
// precision; anything finer is lost on a save/load cycle.
type Backend interface {
	Load() ([]timeline.Record, error)
	Save(records []timeline.Record) error
	Path() string
	Close() error
}

// Open returns the backend for path. An empty kind picks SQLite for .db and
// .sqlite files and the JSON records file otherwise.
func Open(path, kind string) (Backend, error) {
	if path == "" {
		return nil, fmt.Errorf("persist: empty path")
	}
	if kind == "" {
		kind = KindFor(path)
	}
	switch kind {
	case BackendFile:
		return NewFileStore(path), nil
	case BackendSQLite:
		return OpenSQLite(path)
	default:
		return nil, fmt.Errorf("persist: unknown backend %q", kind)
	}
}

// KindFor infers the backend from the file extension.
func KindFor(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return BackendSQLite
	default:
		return BackendFile
	}
}
