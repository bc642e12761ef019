// Package notification provides desktop notification utilities.
package notification

import (
	"fmt"

	"github.com/gen2brain/beeep"
	"github.com/xvierd/startpage/internal/config"
	"github.com/xvierd/startpage/internal/domain"
	"github.com/xvierd/startpage/internal/ports"
)

type sendFunc func(title, message string) error

// Notifier handles desktop notifications.
type Notifier struct {
	cfg    *config.NotificationConfig
	notify sendFunc
	alert  sendFunc
}

// New creates a new notifier with the given configuration.
func New(cfg *config.NotificationConfig) *Notifier {
	return &Notifier{
		cfg:    cfg,
		notify: func(title, message string) error { return beeep.Notify(title, message, "") },
		alert:  func(title, message string) error { return beeep.Alert(title, message, "") },
	}
}

// Notify displays a desktop notification if enabled. With sound on it
// raises an alert instead.
func (n *Notifier) Notify(title, message string) error {
	if !n.IsEnabled() {
		return nil
	}
	if n.cfg.Sound {
		return n.alert(title, message)
	}
	return n.notify(title, message)
}

// NotifyTimerDone announces the end of a work or break countdown.
func (n *Notifier) NotifyTimerDone(notice domain.Notice) error {
	var title, message string
	switch notice.Mode {
	case domain.ModeWork:
		title = "🍅 " + notice.Message
		message = "Work session complete. Time for a break."
	default:
		title = "☕ " + notice.Message
		message = "Break is over. Ready to focus?"
	}
	if err := n.Notify(title, message); err != nil {
		return fmt.Errorf("notify %s done: %w", notice.Mode, err)
	}
	return nil
}

// IsEnabled returns true if notifications are enabled.
func (n *Notifier) IsEnabled() bool {
	return n.cfg != nil && n.cfg.Enabled
}

var _ ports.Notifier = (*Notifier)(nil)
