// Package constants holds application-wide tuning values.
package constants

import (
	"time"
)

// Application identity
const (
	// AppName - display name used in window titles and notifications
	AppName = "ModShift"

	// AppID - Fyne application identifier
	AppID = "io.modshift.app"
)

// Loading dialog behavior
const (
	// TickerInterval - how often the dialog recomputes elapsed time and
	// throughput while the worker runs (twice per second)
	TickerInterval = 500 * time.Millisecond

	// CloseDelay - how long the completed dialog stays on screen before
	// it closes itself
	CloseDelay = 500 * time.Millisecond

	// RecentOperationCap - maximum entries kept in the recent-operations
	// list; the oldest entry is evicted first
	RecentOperationCap = 5

	// MinOperationTextLen - operation descriptions must be longer than
	// this to qualify for the recent-operations list
	MinOperationTextLen = 5
)

// Event bus sizing
const (
	// EventBusDefaultBuffer - default per-subscriber channel buffer.
	// Large enough that a chatty worker never blocks on the UI thread.
	EventBusDefaultBuffer = 1000

	// EventBusMaxBuffer - hard cap on per-subscriber channel buffers
	EventBusMaxBuffer = 10000
)

// Migration engine
const (
	// CopyBufferSize - buffer size for file copies (1 MB)
	CopyBufferSize = 1 * 1024 * 1024

	// DiskSpaceSafetyMargin - multiplier applied to the required bytes
	// when checking destination free space before a migration
	DiskSpaceSafetyMargin = 1.1
)
