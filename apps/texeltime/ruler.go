// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: apps/texeltime/ruler.go
// Summary: Calendar-aligned tick selection for the time ruler.

package texeltime

import (
	"time"

	"github.com/framegrace/texeltime/timeline"
)

type tickKind int

const (
	tickMinute tickKind = iota
	tickHour
	tickDay
	tickMonth
	tickYear
)

// tickUnit is a calendar step. Layout doubles as the label width.
type tickUnit struct {
	kind   tickKind
	step   int
	approx float64 // seconds
	layout string
}

const (
	secMinute = 60.0
	secHour   = 3600.0
	secDay    = 86400.0
	secMonth  = timeline.SecondsPerYear / 12
	secYear   = timeline.SecondsPerYear
)

// tickUnits runs from finest to coarsest.
var tickUnits = []tickUnit{
	{tickMinute, 5, 5 * secMinute, "15:04"},
	{tickMinute, 15, 15 * secMinute, "15:04"},
	{tickMinute, 30, 30 * secMinute, "15:04"},
	{tickHour, 1, secHour, "15:04"},
	{tickHour, 3, 3 * secHour, "15:04"},
	{tickHour, 6, 6 * secHour, "15:04"},
	{tickHour, 12, 12 * secHour, "15:04"},
	{tickDay, 1, secDay, "01-02"},
	{tickDay, 2, 2 * secDay, "01-02"},
	{tickDay, 5, 5 * secDay, "01-02"},
	{tickDay, 10, 10 * secDay, "01-02"},
	{tickMonth, 1, secMonth, "2006-01"},
	{tickMonth, 3, 3 * secMonth, "2006-01"},
	{tickMonth, 6, 6 * secMonth, "2006-01"},
	{tickYear, 1, secYear, "2006"},
	{tickYear, 2, 2 * secYear, "2006"},
	{tickYear, 5, 5 * secYear, "2006"},
	{tickYear, 10, 10 * secYear, "2006"},
	{tickYear, 20, 20 * secYear, "2006"},
	{tickYear, 50, 50 * secYear, "2006"},
	{tickYear, 100, 100 * secYear, "2006"},
	{tickYear, 200, 200 * secYear, "2006"},
	{tickYear, 500, 500 * secYear, "2006"},
	{tickYear, 1000, 1000 * secYear, "2006"},
}

// labelGap is the minimum number of blank cells between two tick labels.
const labelGap = 3

// chooseTickUnit returns the finest unit whose labels do not collide at scale
// pixels per year.
func chooseTickUnit(scale float64) tickUnit {
	for _, u := range tickUnits {
		if u.approx*scale/timeline.SecondsPerYear >= float64(len(u.layout)+labelGap) {
			return u
		}
	}
	return tickUnits[len(tickUnits)-1]
}

// Label formats t, marking midnight on hour and minute rulers with the date.
func (u tickUnit) Label(t time.Time) string {
	if u.kind <= tickHour && t.Hour() == 0 && t.Minute() == 0 {
		return t.Format("01-02")
	}
	return t.Format(u.layout)
}

func (u tickUnit) floor(t time.Time) time.Time {
	loc := t.Location()
	y, m, d := t.Date()
	switch u.kind {
	case tickYear:
		return time.Date(floorTo(y, u.step), 1, 1, 0, 0, 0, 0, loc)
	case tickMonth:
		return time.Date(y, time.Month(floorTo(int(m)-1, u.step)+1), 1, 0, 0, 0, 0, loc)
	case tickDay:
		return time.Date(y, m, floorTo(d-1, u.step)+1, 0, 0, 0, 0, loc)
	case tickHour:
		return time.Date(y, m, d, floorTo(t.Hour(), u.step), 0, 0, 0, loc)
	default:
		return time.Date(y, m, d, t.Hour(), floorTo(t.Minute(), u.step), 0, 0, loc)
	}
}

func (u tickUnit) next(t time.Time) time.Time {
	loc := t.Location()
	y, m, d := t.Date()
	var n time.Time
	switch u.kind {
	case tickYear:
		n = time.Date(y+u.step, 1, 1, 0, 0, 0, 0, loc)
	case tickMonth:
		n = time.Date(y, m+time.Month(u.step), 1, 0, 0, 0, 0, loc)
	case tickDay:
		// Day ticks restart on the 1st; a tick too close to month end is skipped.
		nd := d + u.step
		if u.step > 1 && nd+u.step/2 > daysIn(y, m)+1 {
			n = time.Date(y, m+1, 1, 0, 0, 0, 0, loc)
		} else {
			n = time.Date(y, m, nd, 0, 0, 0, 0, loc)
		}
	case tickHour:
		n = time.Date(y, m, d, t.Hour()+u.step, 0, 0, 0, loc)
	default:
		n = time.Date(y, m, d, t.Hour(), t.Minute()+u.step, 0, 0, loc)
	}
	if !n.After(t) {
		n = timeline.AddSeconds(t, u.approx)
	}
	return n
}

// maxTicks bounds a single ruler pass.
const maxTicks = 2000

// ticks returns the tick instants of u within [from, to].
func (u tickUnit) ticks(from, to time.Time) []time.Time {
	var out []time.Time
	for t := u.floor(from); !t.After(to) && len(out) < maxTicks; t = u.next(t) {
		if !t.Before(from) {
			out = append(out, t)
		}
	}
	return out
}

func floorTo(v, n int) int {
	if n <= 1 {
		return v
	}
	if v < 0 {
		return -((-v + n - 1) / n) * n
	}
	return v / n * n
}

func daysIn(y int, m time.Month) int {
	return time.Date(y, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
