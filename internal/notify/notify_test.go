package notify

import (
	"testing"
)

func TestNewNotifier(t *testing.T) {
	n := NewNotifier(true, nil)
	if n == nil {
		t.Fatal("NewNotifier returned nil")
	}
	if !n.IsEnabled() {
		t.Error("Expected notifier to be enabled")
	}

	n2 := NewNotifier(false, nil)
	if n2.IsEnabled() {
		t.Error("Expected notifier to be disabled")
	}
}

func TestSetEnabled(t *testing.T) {
	n := NewNotifier(true, nil)
	n.SetEnabled(false)
	if n.IsEnabled() {
		t.Error("Expected notifier to be disabled after SetEnabled(false)")
	}

	// Disabled notifier must be silent and must not panic, even with
	// no notification backend available in the test environment
	n.MigrationComplete(3, 1024, "00:42")
	n.MigrationFailed("some error")
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		input    string
		maxLen   int
		expected string
	}{
		{"short", 10, "short"},
		{"exactly10c", 10, "exactly10c"},
		{"this is a long string", 10, "this is..."},
		{"", 10, ""},
		{"abc", 3, "abc"},
		{"abcd", 3, "..."},
	}

	for _, tt := range tests {
		result := truncate(tt.input, tt.maxLen)
		if result != tt.expected {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.input, tt.maxLen, result, tt.expected)
		}
	}
}
