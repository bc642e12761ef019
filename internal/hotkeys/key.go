// Package hotkeys translates raw key events into desk commands. It listens on
// a process-wide key bus, independent of which region has focus.
package hotkeys

import (
	"strings"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
)

// KeyEvent is a key-down with its modifier flags.
type KeyEvent struct {
	Code  string
	Ctrl  bool
	Alt   bool
	Shift bool
}

// String renders the event in Bubble Tea notation, e.g. "ctrl+k", "alt+t",
// "esc" or "T".
func (e KeyEvent) String() string {
	s := e.Code
	if e.Shift {
		if utf8.RuneCountInString(s) == 1 {
			s = strings.ToUpper(s)
		} else {
			s = "shift+" + s
		}
	}
	if e.Ctrl {
		s = "ctrl+" + s
	}
	if e.Alt {
		s = "alt+" + s
	}
	return s
}

// ParseKey reads a Bubble Tea key string back into an event.
func ParseKey(s string) KeyEvent {
	var ev KeyEvent
	for {
		switch {
		case strings.HasPrefix(s, "alt+") && len(s) > len("alt+"):
			ev.Alt = true
			s = s[len("alt+"):]
		case strings.HasPrefix(s, "ctrl+") && len(s) > len("ctrl+"):
			ev.Ctrl = true
			s = s[len("ctrl+"):]
		case strings.HasPrefix(s, "shift+") && len(s) > len("shift+"):
			ev.Shift = true
			s = s[len("shift+"):]
		default:
			if utf8.RuneCountInString(s) == 1 && strings.ToLower(s) != s {
				ev.Shift = true
				s = strings.ToLower(s)
			}
			ev.Code = s
			return ev
		}
	}
}

// FromKeyMsg converts a Bubble Tea key message.
func FromKeyMsg(msg tea.KeyMsg) KeyEvent {
	return ParseKey(msg.String())
}
