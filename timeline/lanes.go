// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: timeline/lanes.go
// Summary: Greedy lane packing for overlapping events.
// Notes: Packing is recomputed from scratch every frame. Event counts are
// bounded by the store capacity, so O(n·lanes) per frame is cheap and there
// is no incremental state to keep in sync with store edits.
// The greedy first-fit pass is deterministic but not lane-optimal for every
// input order; ties on Start keep insertion order.

package timeline

import (
	"sort"
	"time"
)

// DefaultMaxLanes caps the number of lanes opened by PackLanes.
const DefaultMaxLanes = 32

// Layout is the per-frame lane assignment.
type Layout struct {
	Lanes map[EventID]int
	Count int
}

// Lane returns the lane of id and whether id was packed this frame.
func (l Layout) Lane(id EventID) (int, bool) {
	lane, ok := l.Lanes[id]
	return lane, ok
}

// PackLanes assigns a lane to every event accepted by visible (all events when
// visible is nil). Two events sharing a lane never overlap, unless maxLanes is
// exhausted, in which case the overflow is stacked on the last lane.
func PackLanes(events []Event, maxLanes int, visible func(Event) bool) Layout {
	if maxLanes <= 0 {
		maxLanes = DefaultMaxLanes
	}
	order := make([]int, 0, len(events))
	for i, e := range events {
		if visible == nil || visible(e) {
			order = append(order, i)
		}
	}
	sort.SliceStable(order, func(a, b int) bool {
		return events[order[a]].Start.Before(events[order[b]].Start)
	})

	layout := Layout{Lanes: make(map[EventID]int, len(order))}
	var freeUntil []time.Time
	for _, idx := range order {
		e := events[idx]
		lane := -1
		for l, free := range freeUntil {
			if !free.After(e.Start) {
				lane = l
				break
			}
		}
		if lane < 0 {
			if len(freeUntil) < maxLanes {
				freeUntil = append(freeUntil, time.Time{})
			}
			lane = len(freeUntil) - 1
		}
		// Overflow onto the last lane must not shorten the reservation.
		if e.End.After(freeUntil[lane]) {
			freeUntil[lane] = e.End
		}
		layout.Lanes[e.ID] = lane
	}
	layout.Count = len(freeUntil)
	return layout
}

// VisibleIn returns a predicate accepting events that intersect [from, to].
func VisibleIn(from, to time.Time) func(Event) bool {
	return func(e Event) bool {
		return e.End.After(from) && e.Start.Before(to)
	}
}
