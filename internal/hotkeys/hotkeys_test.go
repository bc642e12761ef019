package hotkeys

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyEvent_String(t *testing.T) {
	tests := []struct {
		ev   KeyEvent
		want string
	}{
		{KeyEvent{Code: "k", Ctrl: true}, "ctrl+k"},
		{KeyEvent{Code: "t", Alt: true}, "alt+t"},
		{KeyEvent{Code: "esc"}, "esc"},
		{KeyEvent{Code: "t", Shift: true}, "T"},
		{KeyEvent{Code: "tab", Shift: true}, "shift+tab"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.ev.String())
			assert.Equal(t, tt.ev, ParseKey(tt.want))
		})
	}
}

func TestFromKeyMsg(t *testing.T) {
	ev := FromKeyMsg(tea.KeyMsg{Type: tea.KeyCtrlB})
	assert.Equal(t, KeyEvent{Code: "b", Ctrl: true}, ev)

	ev = FromKeyMsg(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("m"), Alt: true})
	assert.Equal(t, KeyEvent{Code: "m", Alt: true}, ev)

	ev = FromKeyMsg(tea.KeyMsg{Type: tea.KeyEscape})
	assert.Equal(t, "esc", ev.String())
}

func TestKeymap_Lookup(t *testing.T) {
	km := DefaultKeymap()

	tests := []struct {
		key  string
		want Command
		ok   bool
	}{
		{"ctrl+k", CmdFocusSearch, true},
		{"ctrl+b", CmdToggleToolbar, true},
		{"esc", CmdEscape, true},
		{"alt+t", CmdCycleTheme, true},
		{"alt+m", CmdToggleMusic, true},
		{"alt+h", CmdToggleHelp, true},
		{"t", CmdNone, false},
		{"ctrl+t", CmdNone, false},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			cmd, ok := km.Lookup(ParseKey(tt.key))
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, cmd)
		})
	}
}

func TestKeymap_PriorityOrder(t *testing.T) {
	km := DefaultKeymap()
	km.CycleTheme.SetKeys("esc")

	cmd, ok := km.Lookup(ParseKey("esc"))
	require.True(t, ok)
	assert.Equal(t, CmdEscape, cmd, "escape is bound earlier than theme cycling")
}

func TestDispatcher_SuppressesBoundKeys(t *testing.T) {
	bus := NewBus()
	var got []Command
	detach := NewDispatcher(DefaultKeymap(), func(c Command) { got = append(got, c) }).Attach(bus)
	defer detach()

	assert.True(t, bus.Publish(ParseKey("ctrl+k")))
	assert.False(t, bus.Publish(ParseKey("a")))
	assert.Equal(t, []Command{CmdFocusSearch}, got)
}

func TestDispatcher_DetachLeavesNoEffect(t *testing.T) {
	bus := NewBus()
	var calls int
	detach := NewDispatcher(DefaultKeymap(), func(Command) { calls++ }).Attach(bus)

	bus.Publish(ParseKey("esc"))
	detach()
	detach()

	for _, k := range []string{"ctrl+k", "ctrl+b", "esc", "alt+t", "alt+m", "alt+h"} {
		assert.False(t, bus.Publish(ParseKey(k)))
	}
	assert.Equal(t, 1, calls)
	assert.Equal(t, 0, bus.Len())
}

func TestBus_HandlerUnsubscribedDuringPublish(t *testing.T) {
	bus := NewBus()
	var second int
	var unsubSecond func()
	bus.Subscribe(func(KeyEvent) bool {
		unsubSecond()
		return false
	})
	unsubSecond = bus.Subscribe(func(KeyEvent) bool {
		second++
		return false
	})

	bus.Publish(ParseKey("x"))
	assert.Equal(t, 0, second)
}

func TestCommand_String(t *testing.T) {
	assert.Equal(t, "toggle-toolbar", CmdToggleToolbar.String())
	assert.Equal(t, "none", Command(99).String())
}
