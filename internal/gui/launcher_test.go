package gui

import (
	"runtime"
	"strings"
	"testing"
)

func TestRunRequiresDisplay(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("display detection only applies to linux")
	}

	t.Setenv("DISPLAY", "")
	t.Setenv("WAYLAND_DISPLAY", "")

	err := Run(nil)
	if err == nil {
		t.Fatal("expected error without a display")
	}
	if !strings.Contains(err.Error(), "display") {
		t.Errorf("error = %v, want display guidance", err)
	}
}
