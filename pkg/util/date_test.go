package util

import (
	"testing"
	"time"
)

func TestParseTimestampRFC3339(t *testing.T) {
	s := "2024-10-10T10:10:10Z"
	got, ok := ParseTimestamp(s, nil)
	if !ok {
		t.Fatalf("expected ok")
	}
	if got.UTC().Format(time.RFC3339) != s {
		t.Fatalf("unexpected time %v", got)
	}
}

func TestParseTimestampKeepsOffset(t *testing.T) {
	got, ok := ParseTimestamp("2024-01-02T00:30:00+02:00", nil)
	if !ok {
		t.Fatalf("expected ok")
	}
	if got.Hour() != 0 || got.Day() != 2 {
		t.Fatalf("expected wall clock 2024-01-02 00:30, got %v", got)
	}
}

func TestParseTimestampWallClockLayouts(t *testing.T) {
	want := time.Date(2024, 1, 2, 13, 45, 0, 0, time.UTC)
	for _, s := range []string{
		"2024-01-02 13:45:00",
		"2024-01-02T13:45:00",
		"2024-01-02T13:45",
		"2024-01-02 13:45",
		"2024/01/02 13:45",
	} {
		got, ok := ParseTimestamp(s, nil)
		if !ok {
			t.Fatalf("%q: expected ok", s)
		}
		if !got.Equal(want) {
			t.Fatalf("%q: got %v want %v", s, got, want)
		}
	}
}

func TestParseTimestampDateOnlyInLocation(t *testing.T) {
	loc := time.FixedZone("X", 3*3600)
	got, ok := ParseTimestamp("2024-03-01", loc)
	if !ok {
		t.Fatalf("expected ok")
	}
	if got.Location() != loc || got.Hour() != 0 {
		t.Fatalf("unexpected %v", got)
	}
}

func TestParseTimestampRejectsGarbage(t *testing.T) {
	for _, s := range []string{"", "yesterday", "12.5", "2024-13-40"} {
		if _, ok := ParseTimestamp(s, nil); ok {
			t.Fatalf("%q: expected failure", s)
		}
	}
}

func TestCivilDate(t *testing.T) {
	loc := time.FixedZone("X", -5*3600)
	got := CivilDate(time.Date(2024, 1, 2, 23, 0, 0, 0, loc))
	want := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestParseIntDefault(t *testing.T) {
	if ParseIntDefault("", 7) != 7 || ParseIntDefault("x", 7) != 7 || ParseIntDefault("11", 7) != 11 {
		t.Fatalf("unexpected ParseIntDefault behaviour")
	}
}

func TestIsNumeric(t *testing.T) {
	for in, want := range map[string]bool{"12.5": true, " -3 ": true, "1e3": true, "Usage": false, "": false} {
		if got := IsNumeric(in); got != want {
			t.Fatalf("IsNumeric(%q) = %v, want %v", in, got, want)
		}
	}
}
