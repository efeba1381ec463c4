// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/persist/file.go
// Summary: JSON array file with one event object per line.
// Notes: The file is valid JSON as a whole and can also be read line by line,
//   which keeps hand edits and older files without description/color working.

package persist

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/framegrace/texeltime/timeline"
)

type fileRecord struct {
	Name        string `json:"name"`
	Start       string `json:"start"`
	End         string `json:"end"`
	Description string `json:"description"`
	Color       string `json:"color"`
}

// FileStore reads and writes the records file at path.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore { return &FileStore{path: path} }

func (f *FileStore) Path() string { return f.path }
func (f *FileStore) Close() error { return nil }

// Load reads the file. A missing file yields no records and no error.
func (f *FileStore) Load() ([]timeline.Record, error) {
	file, err := os.Open(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", f.path, err)
	}
	defer file.Close()

	records, skipped, err := Decode(file)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", f.path, err)
	}
	if skipped > 0 {
		log.Printf("[PERSIST] Skipped %d unreadable records in %s", skipped, f.path)
	}
	return records, nil
}

// Save writes records to a temporary file and renames it over path.
func (f *FileStore) Save(records []timeline.Record) error {
	if dir := filepath.Dir(f.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	tmpPath := f.path + ".tmp"
	file, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}

	w := bufio.NewWriter(file)
	if err := Encode(w, records); err != nil {
		file.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write records: %w", err)
	}
	if err := w.Flush(); err != nil {
		file.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to flush records: %w", err)
	}
	if err := file.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, f.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to rename records file: %w", err)
	}
	log.Printf("[PERSIST] Saved %d events to %s", len(records), f.path)
	return nil
}

// Encode writes records as a JSON array, one object per line.
func Encode(w io.Writer, records []timeline.Record) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	if _, err := io.WriteString(w, "[\n"); err != nil {
		return err
	}
	for i, r := range records {
		buf.Reset()
		err := enc.Encode(fileRecord{
			Name:        r.Name,
			Start:       timeline.FormatInstantFull(r.Start),
			End:         timeline.FormatInstantFull(r.End),
			Description: r.Description,
			Color:       r.Color,
		})
		if err != nil {
			return err
		}
		line := bytes.TrimRight(buf.Bytes(), "\n")
		sep := ",\n"
		if i == len(records)-1 {
			sep = "\n"
		}
		if _, err := fmt.Fprintf(w, "  %s%s", line, sep); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "]\n")
	return err
}

// Decode reads records line by line. Lines that do not decode, carry an
// unparsable instant or an empty range are counted in skipped. If no line
// decodes, the whole input is tried as a single JSON array so that files
// reformatted by other tools still load.
func Decode(r io.Reader) (records []timeline.Record, skipped int, err error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, 0, err
	}

	var decoded int
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || line == "[" || line == "]" {
			continue
		}
		line = strings.TrimSuffix(line, ",")
		var fr fileRecord
		if err := json.Unmarshal([]byte(line), &fr); err != nil {
			skipped++
			continue
		}
		decoded++
		if rec, ok := fr.record(); ok {
			records = append(records, rec)
		} else {
			skipped++
		}
	}
	if err := sc.Err(); err != nil {
		return nil, 0, err
	}

	if decoded == 0 && skipped > 0 {
		var all []fileRecord
		if json.Unmarshal(data, &all) == nil {
			records, skipped = nil, 0
			for _, fr := range all {
				if rec, ok := fr.record(); ok {
					records = append(records, rec)
				} else {
					skipped++
				}
			}
		}
	}
	return records, skipped, nil
}

func (fr fileRecord) record() (timeline.Record, bool) {
	start, ok := timeline.ParseInstant(fr.Start)
	if !ok {
		return timeline.Record{}, false
	}
	end, ok := timeline.ParseInstant(fr.End)
	if !ok || !end.After(start) {
		return timeline.Record{}, false
	}
	return timeline.Record{
		Name:        fr.Name,
		Start:       start,
		End:         end,
		Description: fr.Description,
		Color:       fr.Color,
	}, true
}
