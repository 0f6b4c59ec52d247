// Package diskspace provides utilities for checking available disk space
// before large file operations.
package diskspace

import (
	"fmt"

	"github.com/modshift/modshift/internal/format"
)

// InsufficientSpaceError indicates that there is not enough disk space available.
type InsufficientSpaceError struct {
	Path           string
	RequiredBytes  int64
	AvailableBytes int64
}

func (e *InsufficientSpaceError) Error() string {
	return fmt.Sprintf("insufficient disk space for %s: need %s, have %s available",
		e.Path, format.Bytes(e.RequiredBytes), format.Bytes(e.AvailableBytes))
}

// CheckAvailableSpace checks if there is sufficient disk space available
// on the filesystem containing targetPath. safetyMargin is a multiplier
// applied to requiredBytes (e.g. 1.1 for a 10% buffer).
//
// Returns an InsufficientSpaceError if there is not enough space. If the
// filesystem cannot be queried (network mounts, virtual filesystems) the
// check passes so the operation can proceed and fail naturally.
func CheckAvailableSpace(targetPath string, requiredBytes int64, safetyMargin float64) error {
	availableBytes := GetAvailableSpace(targetPath)
	if availableBytes == 0 {
		return nil
	}

	requiredWithMargin := int64(float64(requiredBytes) * safetyMargin)

	if availableBytes < requiredWithMargin {
		return &InsufficientSpaceError{
			Path:           targetPath,
			RequiredBytes:  requiredWithMargin,
			AvailableBytes: availableBytes,
		}
	}

	return nil
}
