// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package timeline

import (
	"errors"
	"math"
	"math/rand"
	"strings"
	"testing"
)

func TestStoreInsertAssignsMonotonicIDs(t *testing.T) {
	s := NewStore(0)
	a, err := s.Insert(Event{Name: "a", Start: date(2000, 1, 1), End: date(2001, 1, 1)})
	if err != nil {
		t.Fatalf("insert a: %v", err)
	}
	b, err := s.Insert(Event{Name: "b", Start: date(2000, 1, 1), End: date(2001, 1, 1)})
	if err != nil {
		t.Fatalf("insert b: %v", err)
	}
	if a == NoEvent || b <= a {
		t.Fatalf("expected increasing ids, got %d then %d", a, b)
	}
	if s.Cap() != MaxEvents {
		t.Fatalf("expected default capacity %d, got %d", MaxEvents, s.Cap())
	}
}

func TestStoreRejectsInvalidRange(t *testing.T) {
	s := NewStore(4)
	_, err := s.Insert(Event{Start: date(2001, 1, 1), End: date(2001, 1, 1)})
	if !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}
	if s.Len() != 0 {
		t.Fatalf("rejected insert mutated the store")
	}
}

func TestStoreFull(t *testing.T) {
	s := NewStore(2)
	for i := 0; i < 2; i++ {
		if _, err := s.Insert(Event{Start: date(2000, 1, 1), End: date(2000, 2, 1)}); err != nil {
			t.Fatalf("insert %d: %v", i, err)
		}
	}
	if _, err := s.Insert(Event{Start: date(2000, 1, 1), End: date(2000, 2, 1)}); !errors.Is(err, ErrStoreFull) {
		t.Fatalf("expected ErrStoreFull, got %v", err)
	}
	if s.Len() != 2 {
		t.Fatalf("expected 2 events, got %d", s.Len())
	}
}

func TestStoreDeleteShiftsSlotsNotIDs(t *testing.T) {
	s := NewStore(0)
	var ids []EventID
	for _, name := range []string{"a", "b", "c"} {
		id, _ := s.Insert(Event{Name: name, Start: date(2000, 1, 1), End: date(2001, 1, 1)})
		ids = append(ids, id)
	}
	if err := s.Delete(ids[0]); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if s.Index(ids[2]) != 1 {
		t.Fatalf("expected c to shift to slot 1, got %d", s.Index(ids[2]))
	}
	if e, ok := s.Get(ids[2]); !ok || e.Name != "c" {
		t.Fatalf("id of c no longer resolves: %+v %v", e, ok)
	}
	if s.Contains(ids[0]) {
		t.Fatalf("deleted id still resolves")
	}
	if err := s.Delete(ids[0]); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestStoreTruncatesBoundedFields(t *testing.T) {
	s := NewStore(0)
	id, _ := s.Insert(Event{
		Name:        strings.Repeat("n", 200),
		Description: strings.Repeat("d", 1000),
		Start:       date(2000, 1, 1),
		End:         date(2001, 1, 1),
	})
	e, _ := s.Get(id)
	if len([]rune(e.Name)) != MaxNameLen || len([]rune(e.Description)) != MaxDescriptionLen {
		t.Fatalf("fields not truncated: %d %d", len(e.Name), len(e.Description))
	}
	_ = s.SetName(id, strings.Repeat("é", 100))
	e, _ = s.Get(id)
	if len([]rune(e.Name)) != MaxNameLen {
		t.Fatalf("SetName not truncated by runes: %d", len([]rune(e.Name)))
	}
}

func TestStoreSetTimesValidatesPair(t *testing.T) {
	s := NewStore(0)
	id, _ := s.Insert(Event{Start: date(2000, 1, 1), End: date(2001, 1, 1)})
	if err := s.SetTimes(id, date(2002, 1, 1), date(2001, 1, 1)); !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}
	e, _ := s.Get(id)
	if !e.Start.Equal(date(2000, 1, 1)) {
		t.Fatalf("failed SetTimes changed start to %v", e.Start)
	}
	if err := s.SetTimes(id, date(1999, 1, 1), date(2001, 1, 1)); err != nil {
		t.Fatalf("SetTimes: %v", err)
	}
	e, _ = s.Get(id)
	if math.Abs(e.DurationYears()-Years(Seconds(date(1999, 1, 1), date(2001, 1, 1)))) > 1e-12 {
		t.Fatalf("duration not derived from the new range: %v", e.DurationYears())
	}
}

func TestStoreRecordsLoadRoundTrip(t *testing.T) {
	s := NewStore(0)
	rng := rand.New(rand.NewSource(1))
	for i, name := range []string{"Job", `quote "x"`, "back\\slash"} {
		_, err := s.Insert(Event{
			Name:        name,
			Start:       date(2000+i, 1, 1),
			End:         date(2002+i, 3, 1),
			Description: "desc " + name,
			Color:       RandomColor(rng),
		})
		if err != nil {
			t.Fatalf("insert: %v", err)
		}
	}
	records := s.Records()

	loaded := NewStore(0)
	if skipped := loaded.Load(records, rng); skipped != 0 {
		t.Fatalf("unexpected skipped records: %d", skipped)
	}
	got := loaded.Records()
	if len(got) != len(records) {
		t.Fatalf("expected %d records, got %d", len(records), len(got))
	}
	for i := range records {
		if got[i] != records[i] {
			t.Fatalf("record %d differs: %+v vs %+v", i, got[i], records[i])
		}
	}
}

func TestStoreLoadSkipsInvalid(t *testing.T) {
	s := NewStore(0)
	skipped := s.Load([]Record{
		{Name: "ok", Start: date(2000, 1, 1), End: date(2001, 1, 1)},
		{Name: "inverted", Start: date(2001, 1, 1), End: date(2000, 1, 1)},
		{Name: "empty", Start: date(2001, 1, 1), End: date(2001, 1, 1)},
	}, rand.New(rand.NewSource(3)))
	if skipped != 2 || s.Len() != 1 {
		t.Fatalf("expected 1 loaded and 2 skipped, got %d and %d", s.Len(), skipped)
	}
	if s.At(0).Color.Hex() == "#000000" {
		t.Fatalf("missing color should be replaced by a random one")
	}
}
