// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package timeline

import (
	"testing"
	"time"
)

func TestParseInstant(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
		ok   bool
	}{
		{"2020-01-01", date(2020, 1, 1), true},
		{" 2020-01-01 ", date(2020, 1, 1), true},
		{"2020-01-01 13:45", time.Date(2020, 1, 1, 13, 45, 0, 0, time.Local), true},
		{"2020-13-01", time.Time{}, false},
		{"01/02/2020", time.Time{}, false},
		{"", time.Time{}, false},
	}
	for _, tt := range tests {
		got, ok := ParseInstant(tt.in)
		if ok != tt.ok || (ok && !got.Equal(tt.want)) {
			t.Errorf("ParseInstant(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestFormatInstant(t *testing.T) {
	if got := FormatInstant(date(2021, 7, 4)); got != "2021-07-04" {
		t.Fatalf("midnight: got %q", got)
	}
	if got := FormatInstant(time.Date(2021, 7, 4, 8, 5, 0, 0, time.Local)); got != "2021-07-04 08:05" {
		t.Fatalf("with time: got %q", got)
	}
	almost := date(2024, 1, 1).Add(-200 * time.Millisecond)
	if got := FormatInstant(almost); got != "2024-01-01" {
		t.Fatalf("expected rounding to the minute, got %q", got)
	}
	if got := FormatInstantFull(date(2021, 7, 4)); got != "2021-07-04 00:00" {
		t.Fatalf("full: got %q", got)
	}
}

func TestAddSecondsInvertsSeconds(t *testing.T) {
	base := time.Date(1987, 3, 14, 6, 30, 0, 123, time.Local)
	for _, s := range []float64{0, 1.5, -1.5, 86400.25, -3.2e9, 7.7e10} {
		got := Seconds(base, AddSeconds(base, s))
		if diff := got - s; diff > 1e-6 || diff < -1e-6 {
			t.Fatalf("AddSeconds(%v) round trip gave %v", s, got)
		}
	}
}

func TestStartOfDay(t *testing.T) {
	got := StartOfDay(time.Date(2022, 2, 28, 23, 59, 59, 0, time.Local))
	if !got.Equal(date(2022, 2, 28)) {
		t.Fatalf("got %v", got)
	}
}
