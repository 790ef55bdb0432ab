// Package notify sends tool notifications to the desktop.
// It uses github.com/gen2brain/beeep for cross-platform notification support.
package notify

import (
	"fmt"
	"unicode/utf8"

	"github.com/gen2brain/beeep"

	"github.com/dbtoolbox/dbtoolbox/internal/guard"
	"github.com/dbtoolbox/dbtoolbox/internal/logging"
)

// AppName prefixes every notification title.
const AppName = "DB Toolbox"

const maxMessageLen = 200

// Notifier is a guard.Notifier that raises desktop notifications.
type Notifier struct {
	logger  *logging.Logger
	enabled bool

	notify func(title, message string) error
	alert  func(title, message string) error
}

// NewNotifier creates a notifier. A disabled notifier drops everything.
func NewNotifier(enabled bool, logger *logging.Logger) *Notifier {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Notifier{
		logger:  logger.Component("notify"),
		enabled: enabled,
		notify: func(title, message string) error {
			return beeep.Notify(title, message, "")
		},
		alert: func(title, message string) error {
			return beeep.Alert(title, message, "")
		},
	}
}

// Notify implements guard.Notifier. Error severity uses beeep.Alert, which
// is more prominent on some platforms, and falls back to a regular
// notification.
func (n *Notifier) Notify(note guard.Notification) {
	if !n.enabled {
		return
	}

	title := fmt.Sprintf("%s: %s", AppName, note.Title)
	message := truncate(note.Message, maxMessageLen)

	if note.Severity == guard.SeverityError {
		if err := n.alert(title, message); err == nil {
			return
		}
	}
	if err := n.notify(title, message); err != nil {
		n.logger.Warn().Err(err).Str("title", note.Title).Msg("Failed to send notification")
	}
}

// truncate shortens s to at most maxLen bytes, adding "..." if truncated.
// The cut never splits a rune.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	cut := maxLen - 3
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
