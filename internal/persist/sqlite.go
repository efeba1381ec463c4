// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/persist/sqlite.go
// Summary: SQLite backend holding the ordered event list in one table.

package persist

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/framegrace/texeltime/timeline"

	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS events (
    position    INTEGER PRIMARY KEY,
    name        TEXT NOT NULL,
    start_at    TEXT NOT NULL,
    end_at      TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    color       TEXT NOT NULL DEFAULT ''
);
`

// SQLiteStore keeps events in a SQLite database. Instants are stored as
// "YYYY-MM-DD HH:MM" text, the same as the records file.
type SQLiteStore struct {
	path string
	db   *sql.DB
}

// OpenSQLite opens (or creates) the database at path.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}
	dsn := path + "?_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	return &SQLiteStore{path: path, db: db}, nil
}

func (s *SQLiteStore) Path() string { return s.path }
func (s *SQLiteStore) Close() error { return s.db.Close() }

// Load returns the rows in position order, skipping unusable ones.
func (s *SQLiteStore) Load() ([]timeline.Record, error) {
	rows, err := s.db.Query("SELECT name, start_at, end_at, description, color FROM events ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	var out []timeline.Record
	skipped := 0
	for rows.Next() {
		var fr fileRecord
		if err := rows.Scan(&fr.Name, &fr.Start, &fr.End, &fr.Description, &fr.Color); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		if rec, ok := fr.record(); ok {
			out = append(out, rec)
		} else {
			skipped++
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if skipped > 0 {
		log.Printf("[PERSIST] Skipped %d unreadable rows in %s", skipped, s.path)
	}
	return out, nil
}

// Save replaces the table content in a single transaction.
func (s *SQLiteStore) Save(records []timeline.Record) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM events"); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to clear events: %w", err)
	}
	stmt, err := tx.Prepare("INSERT INTO events (position, name, start_at, end_at, description, color) VALUES (?, ?, ?, ?, ?, ?)")
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for i, r := range records {
		_, err := stmt.Exec(i, r.Name,
			timeline.FormatInstantFull(r.Start), timeline.FormatInstantFull(r.End),
			r.Description, r.Color)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to insert event %d: %w", i, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	log.Printf("[PERSIST] Saved %d events to %s", len(records), s.path)
	return nil
}
