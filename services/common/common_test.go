package common

import "testing"

func TestFormatDelta(t *testing.T) {
	tests := []struct {
		delta    int
		expected string
	}{
		{delta: 3, expected: "+ 3"},
		{delta: 0, expected: "+ 0"},
		{delta: -5, expected: "- 5"},
	}

	for _, tt := range tests {
		got := FormatDelta(tt.delta)
		if got != tt.expected {
			t.Errorf("FormatDelta(%d): expected %q, got %q", tt.delta, tt.expected, got)
		}
	}
}

func TestContains(t *testing.T) {
	ids := []string{"a", "b"}
	if !Contains(ids, "a") {
		t.Error("expected slice to contain element")
	}
	if Contains(ids, "c") {
		t.Error("expected slice not to contain element")
	}
	if Contains([]int{}, 1) {
		t.Error("expected empty slice to contain nothing")
	}
}
