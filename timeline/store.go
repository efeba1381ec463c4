// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: timeline/store.go
// Summary: Bounded, insertion-ordered event store with stable ids.
// Notes: Slots shift on delete; ids never do. Callers hold ids, not slots.

package timeline

import (
	"errors"
	"fmt"
	"time"
)

// MaxEvents is the default store capacity.
const MaxEvents = 1000

var (
	// ErrStoreFull is returned by Insert once the capacity is reached.
	ErrStoreFull = errors.New("timeline: event store is full")
	// ErrInvalidRange is returned when End does not come after Start.
	ErrInvalidRange = errors.New("timeline: end must be after start")
	// ErrNotFound is returned for ids that were never issued or were deleted.
	ErrNotFound = errors.New("timeline: event not found")
)

// Record is an event without identity, as read from or written to storage.
type Record struct {
	Name        string
	Start       time.Time
	End         time.Time
	Description string
	Color       string // "#rrggbb" or empty
}

// Store owns every event. It is not safe for concurrent use; the frame loop is
// its only writer.
type Store struct {
	events   []Event
	capacity int
	nextID   EventID
}

// NewStore returns an empty store bounded to capacity events (MaxEvents if <= 0).
func NewStore(capacity int) *Store {
	if capacity <= 0 {
		capacity = MaxEvents
	}
	return &Store{capacity: capacity, nextID: 1}
}

// Len returns the number of events.
func (s *Store) Len() int { return len(s.events) }

// Cap returns the maximum number of events.
func (s *Store) Cap() int { return s.capacity }

// At returns the event in slot i. It panics on an out-of-range slot, like a slice.
func (s *Store) At(i int) Event { return s.events[i] }

// Events returns the events in insertion order. The slice is a copy.
func (s *Store) Events() []Event {
	out := make([]Event, len(s.events))
	copy(out, s.events)
	return out
}

// Insert appends an event and returns its new id. The id field of e is ignored.
func (s *Store) Insert(e Event) (EventID, error) {
	if len(s.events) >= s.capacity {
		return NoEvent, ErrStoreFull
	}
	if !e.End.After(e.Start) {
		return NoEvent, ErrInvalidRange
	}
	e.ID = s.nextID
	s.nextID++
	e.Name = truncateRunes(e.Name, MaxNameLen)
	e.Description = truncateRunes(e.Description, MaxDescriptionLen)
	s.events = append(s.events, e)
	return e.ID, nil
}

// Index returns the slot of id, or -1.
func (s *Store) Index(id EventID) int {
	if id == NoEvent {
		return -1
	}
	for i := range s.events {
		if s.events[i].ID == id {
			return i
		}
	}
	return -1
}

// Get returns the event with the given id.
func (s *Store) Get(id EventID) (Event, bool) {
	i := s.Index(id)
	if i < 0 {
		return Event{}, false
	}
	return s.events[i], true
}

// Contains reports whether id refers to a live event.
func (s *Store) Contains(id EventID) bool { return s.Index(id) >= 0 }

// Delete removes the event and shifts later slots down by one.
func (s *Store) Delete(id EventID) error {
	i := s.Index(id)
	if i < 0 {
		return fmt.Errorf("delete %d: %w", id, ErrNotFound)
	}
	s.events = append(s.events[:i], s.events[i+1:]...)
	return nil
}

// SetTimes replaces both instants at once so the range is validated as a pair.
func (s *Store) SetTimes(id EventID, start, end time.Time) error {
	i := s.Index(id)
	if i < 0 {
		return fmt.Errorf("set times %d: %w", id, ErrNotFound)
	}
	if !end.After(start) {
		return ErrInvalidRange
	}
	s.events[i].Start = start
	s.events[i].End = end
	return nil
}

// SetName replaces the name, truncated to MaxNameLen runes.
func (s *Store) SetName(id EventID, name string) error {
	i := s.Index(id)
	if i < 0 {
		return fmt.Errorf("set name %d: %w", id, ErrNotFound)
	}
	s.events[i].Name = truncateRunes(name, MaxNameLen)
	return nil
}

// SetDescription replaces the description, truncated to MaxDescriptionLen runes.
func (s *Store) SetDescription(id EventID, desc string) error {
	i := s.Index(id)
	if i < 0 {
		return fmt.Errorf("set description %d: %w", id, ErrNotFound)
	}
	s.events[i].Description = truncateRunes(desc, MaxDescriptionLen)
	return nil
}

// Records returns the store content in persistence form.
func (s *Store) Records() []Record {
	out := make([]Record, 0, len(s.events))
	for _, e := range s.events {
		out = append(out, Record{
			Name:        e.Name,
			Start:       e.Start,
			End:         e.End,
			Description: e.Description,
			Color:       e.Color.Hex(),
		})
	}
	return out
}

// Load replaces the store content with records. Invalid ranges are skipped and
// counted; records past capacity are dropped and counted too. Records without a
// usable color get one from rng.
func (s *Store) Load(records []Record, rng RandInterface) (skipped int) {
	s.events = s.events[:0]
	for _, r := range records {
		c, ok := ParseColor(r.Color)
		if !ok {
			c = RandomColor(rng)
		}
		_, err := s.Insert(Event{
			Name:        r.Name,
			Start:       r.Start,
			End:         r.End,
			Description: r.Description,
			Color:       c,
		})
		if err != nil {
			skipped++
		}
	}
	return skipped
}
