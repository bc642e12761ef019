package domain

import (
	"fmt"
	"time"
)

// TimerMode is the phase of the work/break cycle.
type TimerMode string

const (
	ModeWork  TimerMode = "work"
	ModeBreak TimerMode = "break"
)

// Other returns the mode the cycle flips to.
func (m TimerMode) Other() TimerMode {
	if m == ModeWork {
		return ModeBreak
	}
	return ModeWork
}

// Label returns a human-readable label for the mode.
func (m TimerMode) Label() string {
	switch m {
	case ModeWork:
		return "Work"
	case ModeBreak:
		return "Break"
	default:
		return "Unknown"
	}
}

// TimerConfig holds the full durations of each mode.
type TimerConfig struct {
	WorkDuration  time.Duration
	BreakDuration time.Duration
	NoticeWindow  time.Duration
}

// DefaultTimerConfig returns the classic 25/5 cycle with a 3 second notice.
func DefaultTimerConfig() TimerConfig {
	return TimerConfig{
		WorkDuration:  25 * time.Minute,
		BreakDuration: 5 * time.Minute,
		NoticeWindow:  3 * time.Second,
	}
}

// FullSeconds returns the full length of mode in whole seconds.
func (c TimerConfig) FullSeconds(mode TimerMode) int {
	if mode == ModeBreak {
		return int(c.BreakDuration / time.Second)
	}
	return int(c.WorkDuration / time.Second)
}

// TimerState is the observable state of the countdown.
type TimerState struct {
	Mode      TimerMode
	Remaining int
	Running   bool
}

// TimeLeft returns the remaining time as a duration.
func (s TimerState) TimeLeft() time.Duration {
	return time.Duration(s.Remaining) * time.Second
}

// Notice is the transient message raised when a countdown completes.
type Notice struct {
	Mode    TimerMode
	Message string
}

// NewNotice builds the completion notice for the mode that just ended.
func NewNotice(ended TimerMode) Notice {
	return Notice{Mode: ended, Message: fmt.Sprintf("%s Time Over!", ended.Label())}
}

// FormatClock formats whole seconds as MM:SS.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
