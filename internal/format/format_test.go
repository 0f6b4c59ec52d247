package format

import (
	"testing"
	"time"
)

func TestBytes(t *testing.T) {
	tests := []struct {
		in       int64
		expected string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{1024, "1.0 KB"},
		{1536, "1.5 KB"},
		{50, "50 B"},
		{200 * 1024 * 1024, "200.0 MB"},
		{3 * 1024 * 1024 * 1024, "3.0 GB"},
	}

	for _, tt := range tests {
		if got := Bytes(tt.in); got != tt.expected {
			t.Errorf("Bytes(%d): expected %q, got %q", tt.in, tt.expected, got)
		}
	}
}

func TestSpeed(t *testing.T) {
	tests := []struct {
		in       float64
		expected string
	}{
		{100, "100.0 B/s"},
		{2048, "2.0 KB/s"},
		{5 * 1024 * 1024, "5.00 MB/s"},
	}

	for _, tt := range tests {
		if got := Speed(tt.in); got != tt.expected {
			t.Errorf("Speed(%f): expected %q, got %q", tt.in, tt.expected, got)
		}
	}
}

func TestClock(t *testing.T) {
	tests := []struct {
		in       time.Duration
		expected string
	}{
		{0, "00:00"},
		{-5 * time.Second, "00:00"},
		{42 * time.Second, "00:42"},
		{95 * time.Second, "01:35"},
		{90 * time.Minute, "90:00"},
	}

	for _, tt := range tests {
		if got := Clock(tt.in); got != tt.expected {
			t.Errorf("Clock(%v): expected %q, got %q", tt.in, tt.expected, got)
		}
	}
}

func TestPluralize(t *testing.T) {
	if got := Pluralize("file", 1); got != "file" {
		t.Errorf("expected 'file', got %q", got)
	}
	if got := Pluralize("file", 2); got != "files" {
		t.Errorf("expected 'files', got %q", got)
	}
	if got := Pluralize("mod", 0); got != "mods" {
		t.Errorf("expected 'mods', got %q", got)
	}
}
