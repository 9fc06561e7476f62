package feed

import "testing"

func TestHash32Deterministic(t *testing.T) {
	a := Hash32("A", "http://x", "2024-01-01T12:00:00Z")
	b := Hash32("A", "http://x", "2024-01-01T12:00:00Z")
	if a != b {
		t.Errorf("Expected identical hashes, got %s and %s", a, b)
	}
	if len(a) != 8 {
		t.Errorf("Expected 8 hex digits, got: %q", a)
	}
}

func TestHash32SensitiveToInput(t *testing.T) {
	base := Hash32("A", "http://x", "")
	if Hash32("B", "http://x", "") == base {
		t.Error("Expected title change to change the hash")
	}
	if Hash32("A", "http://y", "") == base {
		t.Error("Expected link change to change the hash")
	}
}

func TestHash32EmptyInput(t *testing.T) {
	if got := Hash32(); got != "00001505" {
		t.Errorf("Expected the djb2 seed for empty input, got: %s", got)
	}
}
