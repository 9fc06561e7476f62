package feed

import (
	"testing"
	"time"
)

func TestParseDateRFC822(t *testing.T) {
	got := ParseDate("Mon, 01 Jan 2024 12:00:00 GMT")
	if got == nil {
		t.Fatal("Expected a parsed date")
	}
	want := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("Expected %v, got: %v", want, got)
	}
}

func TestParseDateRFC3339(t *testing.T) {
	got := ParseDate("2024-06-15T08:30:00-05:00")
	if got == nil {
		t.Fatal("Expected a parsed date")
	}
	want := time.Date(2024, 6, 15, 13, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("Expected %v, got: %v", want, got)
	}
}

func TestParseDateTolerant(t *testing.T) {
	// Unparseable dates are "no date", never an error.
	for _, value := range []string{"", "  ", "not a date", "yesterday-ish"} {
		if got := ParseDate(value); got != nil {
			t.Errorf("Expected nil for %q, got: %v", value, got)
		}
	}
}
