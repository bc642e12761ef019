package ports

import (
	"time"

	"github.com/xvierd/startpage/internal/domain"
)

// CancelFunc stops a scheduled task. Calling it more than once is harmless.
type CancelFunc func()

// Scheduler runs callbacks in the future.
// This is a driven port (implemented by adapters/clock and test doubles).
type Scheduler interface {
	// Every invokes fn once per interval until cancelled.
	Every(interval time.Duration, fn func()) CancelFunc

	// After invokes fn once after delay unless cancelled first.
	After(delay time.Duration, fn func()) CancelFunc
}

// Notifier delivers timer completion notices outside the UI.
// Delivery is best-effort.
type Notifier interface {
	// NotifyTimerDone announces that the countdown of a mode has ended.
	NotifyTimerDone(notice domain.Notice) error
}
