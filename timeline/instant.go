// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: timeline/instant.go
// Summary: Instant arithmetic in float seconds plus date parsing/formatting.
// Notes: time.Duration saturates at ~292 years, so spans are kept as seconds.

package timeline

import (
	"math"
	"strings"
	"time"
)

// SecondsPerYear is the Julian year used for every scale conversion.
const SecondsPerYear = 365.25 * 86400

// Layouts accepted by ParseInstant, most specific first.
const (
	LayoutDateTime = "2006-01-02 15:04"
	LayoutDate     = "2006-01-02"
)

// Seconds returns b-a in seconds without going through time.Duration.
func Seconds(a, b time.Time) float64 {
	return float64(b.Unix()-a.Unix()) + float64(b.Nanosecond()-a.Nanosecond())/1e9
}

// AddSeconds returns t shifted by s seconds. Sub-nanosecond remainders are rounded.
func AddSeconds(t time.Time, s float64) time.Time {
	if s == 0 || math.IsNaN(s) {
		return t
	}
	whole, frac := math.Modf(s)
	nanos := int64(math.Round(frac * 1e9))
	return time.Unix(t.Unix()+int64(whole), int64(t.Nanosecond())+nanos).In(t.Location())
}

// Years converts a span in seconds to fractional Julian years.
func Years(seconds float64) float64 {
	return seconds / SecondsPerYear
}

// ParseInstant parses "YYYY-MM-DD HH:MM" or "YYYY-MM-DD" in local time.
func ParseInstant(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{LayoutDateTime, LayoutDate} {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatInstant renders t to the nearest minute as a date, adding the time of
// day only when it is not midnight.
func FormatInstant(t time.Time) string {
	t = roundMinute(t)
	if t.Hour() == 0 && t.Minute() == 0 {
		return t.Format(LayoutDate)
	}
	return t.Format(LayoutDateTime)
}

// FormatInstantFull always includes the time of day; used by persistence.
func FormatInstantFull(t time.Time) string {
	return roundMinute(t).Format(LayoutDateTime)
}

// roundMinute rounds on the local wall clock. time.Round works on absolute
// time, which drifts for zones with sub-minute offsets (historical LMT).
func roundMinute(t time.Time) time.Time {
	t = t.In(time.Local).Add(30 * time.Second)
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), 0, 0, time.Local)
}

// StartOfDay returns local midnight of the day containing t.
func StartOfDay(t time.Time) time.Time {
	t = t.In(time.Local)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local)
}
