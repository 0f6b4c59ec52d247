// Package notify provides cross-platform desktop notifications.
// It uses github.com/gen2brain/beeep for cross-platform notification support.
package notify

import (
	"fmt"
	"sync"

	"github.com/gen2brain/beeep"

	"github.com/modshift/modshift/internal/constants"
	"github.com/modshift/modshift/internal/format"
	"github.com/modshift/modshift/internal/logging"
)

// Notifier handles desktop notifications.
type Notifier struct {
	logger  *logging.Logger
	enabled bool
	mu      sync.RWMutex
}

// NewNotifier creates a new notifier. A nil logger disables failure logging.
func NewNotifier(enabled bool, logger *logging.Logger) *Notifier {
	return &Notifier{
		logger:  logger,
		enabled: enabled,
	}
}

// SetEnabled enables or disables notifications.
func (n *Notifier) SetEnabled(enabled bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.enabled = enabled
}

// IsEnabled returns whether notifications are enabled.
func (n *Notifier) IsEnabled() bool {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.enabled
}

// MigrationComplete sends a notification for a finished migration.
func (n *Notifier) MigrationComplete(mods int64, bytes int64, elapsed string) {
	if !n.IsEnabled() {
		return
	}

	title := constants.AppName
	message := fmt.Sprintf("Migrated %d %s (%s) in %s.",
		mods, format.Pluralize("mod", mods), format.Bytes(bytes), elapsed)

	if err := n.send(title, message); err != nil {
		n.warn(err, "Failed to send migration complete notification")
	}
}

// MigrationFailed sends a notification for a failed migration.
func (n *Notifier) MigrationFailed(errorMsg string) {
	if !n.IsEnabled() {
		return
	}

	title := constants.AppName + " - Migration Failed"
	message := truncate(errorMsg, 100)

	if err := n.send(title, message); err != nil {
		n.warn(err, "Failed to send migration failed notification")
	}
}

// send is the internal method that actually sends the notification.
func (n *Notifier) send(title, message string) error {
	// beeep.Notify is cross-platform:
	// - Windows: Uses toast notifications
	// - macOS: Uses NSUserNotificationCenter
	// - Linux: Uses D-Bus notifications
	return beeep.Notify(title, message, "")
}

func (n *Notifier) warn(err error, msg string) {
	if n.logger != nil {
		n.logger.Warn().Err(err).Msg(msg)
	}
}

// truncate shortens a string to maxLen, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
