package hotkeys

import (
	"github.com/charmbracelet/bubbles/key"
)

// Command is an abstract desk action produced by a hotkey.
type Command int

const (
	CmdNone Command = iota
	CmdFocusSearch
	CmdToggleToolbar
	CmdEscape
	CmdCycleTheme
	CmdToggleMusic
	CmdToggleHelp
)

func (c Command) String() string {
	switch c {
	case CmdFocusSearch:
		return "focus-search"
	case CmdToggleToolbar:
		return "toggle-toolbar"
	case CmdEscape:
		return "escape"
	case CmdCycleTheme:
		return "cycle-theme"
	case CmdToggleMusic:
		return "toggle-music"
	case CmdToggleHelp:
		return "toggle-help"
	default:
		return "none"
	}
}

// Keymap holds the global bindings.
type Keymap struct {
	FocusSearch   key.Binding
	ToggleToolbar key.Binding
	Escape        key.Binding
	CycleTheme    key.Binding
	ToggleMusic   key.Binding
	ToggleHelp    key.Binding
}

// DefaultKeymap returns the built-in bindings.
func DefaultKeymap() Keymap {
	return Keymap{
		FocusSearch: key.NewBinding(
			key.WithKeys("ctrl+k"),
			key.WithHelp("ctrl+k", "search"),
		),
		ToggleToolbar: key.NewBinding(
			key.WithKeys("ctrl+b"),
			key.WithHelp("ctrl+b", "toolbar"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("alt+t"),
			key.WithHelp("alt+t", "theme"),
		),
		ToggleMusic: key.NewBinding(
			key.WithKeys("alt+m"),
			key.WithHelp("alt+m", "music"),
		),
		ToggleHelp: key.NewBinding(
			key.WithKeys("alt+h"),
			key.WithHelp("alt+h", "help"),
		),
	}
}

type entry struct {
	binding key.Binding
	cmd     Command
}

// ordered returns the bindings in matching priority.
func (k Keymap) ordered() []entry {
	return []entry{
		{k.FocusSearch, CmdFocusSearch},
		{k.ToggleToolbar, CmdToggleToolbar},
		{k.Escape, CmdEscape},
		{k.CycleTheme, CmdCycleTheme},
		{k.ToggleMusic, CmdToggleMusic},
		{k.ToggleHelp, CmdToggleHelp},
	}
}

// Lookup returns the command bound to ev. The first binding in priority
// order wins.
func (k Keymap) Lookup(ev KeyEvent) (Command, bool) {
	for _, e := range k.ordered() {
		if key.Matches(ev, e.binding) {
			return e.cmd, true
		}
	}
	return CmdNone, false
}

// ShortHelp implements help.KeyMap.
func (k Keymap) ShortHelp() []key.Binding {
	return []key.Binding{k.FocusSearch, k.ToggleToolbar, k.Escape, k.ToggleHelp}
}

// FullHelp implements help.KeyMap.
func (k Keymap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.FocusSearch, k.ToggleToolbar, k.Escape},
		{k.CycleTheme, k.ToggleMusic, k.ToggleHelp},
	}
}
