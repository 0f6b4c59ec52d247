package diskspace

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestGetAvailableSpace(t *testing.T) {
	dir := t.TempDir()
	available := GetAvailableSpace(filepath.Join(dir, "newfile.bin"))
	if available <= 0 {
		t.Errorf("expected positive available space for temp dir, got %d", available)
	}
}

func TestCheckAvailableSpace_Sufficient(t *testing.T) {
	dir := t.TempDir()
	// One byte with any sane margin should always fit
	if err := CheckAvailableSpace(filepath.Join(dir, "f"), 1, 1.1); err != nil {
		t.Errorf("expected sufficient space, got %v", err)
	}
}

func TestCheckAvailableSpace_Insufficient(t *testing.T) {
	dir := t.TempDir()
	available := GetAvailableSpace(filepath.Join(dir, "f"))
	if available == 0 {
		t.Skip("cannot query filesystem space")
	}

	err := CheckAvailableSpace(filepath.Join(dir, "f"), available*2, 1.0)
	if err == nil {
		t.Fatal("expected InsufficientSpaceError")
	}

	spaceErr, ok := err.(*InsufficientSpaceError)
	if !ok {
		t.Fatalf("expected *InsufficientSpaceError, got %T", err)
	}
	if !strings.Contains(spaceErr.Error(), "insufficient disk space") {
		t.Errorf("unexpected error text: %s", spaceErr.Error())
	}
}
