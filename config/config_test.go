package config

import (
	"testing"
	"time"
)

func TestParseRSVPByDate(t *testing.T) {
	got, err := parseRSVPByDate("2026-10-01")
	if err != nil {
		t.Fatalf("parseRSVPByDate failed: %v", err)
	}
	want := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	if got == nil || !got.Equal(want) {
		t.Errorf("parsed = %v, want %v", got, want)
	}
}

func TestParseRSVPByDateEmpty(t *testing.T) {
	got, err := parseRSVPByDate("")
	if err != nil {
		t.Fatalf("empty value should not error: %v", err)
	}
	if got != nil {
		t.Errorf("empty value should mean no deadline, got %v", got)
	}
}

func TestParseRSVPByDateInvalid(t *testing.T) {
	for _, bad := range []string{"10/01/2026", "2026-13-40", "soon"} {
		if _, err := parseRSVPByDate(bad); err == nil {
			t.Errorf("parseRSVPByDate(%q) should fail", bad)
		}
	}
}
