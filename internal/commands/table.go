// Package commands holds the command table that turns free search text into
// implicit commands, and the pure lookup that consults it.
package commands

import (
	"fmt"
	"strings"

	"github.com/xvierd/startpage/internal/domain"
)

// Special is an action that is more than opening a single panel.
type Special string

const (
	SpecialNone        Special = ""
	SpecialOpenMusic   Special = "open-music"
	SpecialOpenLexicon Special = "open-lexicon"
	SpecialStartTimer  Special = "start-timer"
	SpecialCycleTheme  Special = "cycle-theme"
)

var specials = []Special{SpecialOpenMusic, SpecialOpenLexicon, SpecialStartTimer, SpecialCycleTheme}

// Action is what a matched trigger asks the desk to do: open Panel, or run
// Special when it is set.
type Action struct {
	Panel   domain.PanelID
	Special Special
}

// Open returns an action that opens id.
func Open(id domain.PanelID) Action {
	return Action{Panel: id}
}

// Do returns a special action.
func Do(s Special) Action {
	return Action{Special: s}
}

// IsSpecial reports whether the action is a special action.
func (a Action) IsSpecial() bool {
	return a.Special != SpecialNone
}

// String renders the action as it appears in config files.
func (a Action) String() string {
	if a.IsSpecial() {
		return string(a.Special)
	}
	return a.Panel.String()
}

// ParseAction resolves a config target: a special action name or a panel name.
func ParseAction(target string) (Action, error) {
	t := strings.ToLower(strings.TrimSpace(target))
	for _, s := range specials {
		if string(s) == t {
			return Do(s), nil
		}
	}
	id, err := domain.ParsePanelID(t)
	if err != nil {
		return Action{}, err
	}
	return Open(id), nil
}

// Entry maps a lowercase trigger substring to an action.
type Entry struct {
	Trigger string
	Action  Action
}

// Table is an immutable, ordered list of entries.
type Table struct {
	entries []Entry
}

// NewTable validates entries and builds a table. Triggers must be non-empty,
// lowercase and pairwise distinct; actions must name a declared panel or a
// known special.
func NewTable(entries []Entry) (*Table, error) {
	seen := make(map[string]bool, len(entries))
	for i, e := range entries {
		if e.Trigger == "" {
			return nil, fmt.Errorf("%w: entry %d has an empty trigger", domain.ErrInvalidCommand, i)
		}
		if e.Trigger != strings.ToLower(e.Trigger) {
			return nil, fmt.Errorf("%w: trigger %q is not lowercase", domain.ErrInvalidCommand, e.Trigger)
		}
		if seen[e.Trigger] {
			return nil, fmt.Errorf("%w: duplicate trigger %q", domain.ErrInvalidCommand, e.Trigger)
		}
		seen[e.Trigger] = true

		if e.Action.IsSpecial() {
			if !isKnownSpecial(e.Action.Special) {
				return nil, fmt.Errorf("%w: trigger %q has unknown action %q", domain.ErrInvalidCommand, e.Trigger, e.Action.Special)
			}
		} else if !e.Action.Panel.Valid() || e.Action.Panel == domain.PanelToolbar {
			return nil, fmt.Errorf("%w: trigger %q targets %s", domain.ErrInvalidCommand, e.Trigger, e.Action.Panel)
		}
	}

	copied := make([]Entry, len(entries))
	copy(copied, entries)
	return &Table{entries: copied}, nil
}

// MustTable is like NewTable but panics on a malformed table.
func MustTable(entries []Entry) *Table {
	t, err := NewTable(entries)
	if err != nil {
		panic(err)
	}
	return t
}

func isKnownSpecial(s Special) bool {
	for _, k := range specials {
		if k == s {
			return true
		}
	}
	return false
}

// Entries returns a copy of the entries in table order.
func (t *Table) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Interpret returns the action of the first entry, in table order, whose
// trigger is a substring of the lowercased text. First match wins even when a
// later trigger is longer.
func (t *Table) Interpret(text string) (Action, bool) {
	if text == "" {
		return Action{}, false
	}
	lower := strings.ToLower(text)
	for _, e := range t.entries {
		if strings.Contains(lower, e.Trigger) {
			return e.Action, true
		}
	}
	return Action{}, false
}

// Shadowed returns the triggers that cannot fire when typed one key at a
// time: a shorter prefix of the trigger already matches some entry, or the
// whole trigger resolves to a different action.
func (t *Table) Shadowed() []string {
	var out []string
	for _, e := range t.entries {
		if t.shadowed(e) {
			out = append(out, e.Trigger)
		}
	}
	return out
}

func (t *Table) shadowed(e Entry) bool {
	for i := range e.Trigger {
		if i == 0 {
			continue
		}
		if _, ok := t.Interpret(e.Trigger[:i]); ok {
			return true
		}
	}
	action, _ := t.Interpret(e.Trigger)
	return action != e.Action
}

// TriggersFor returns the triggers that lead to a.
func (t *Table) TriggersFor(a Action) []string {
	var out []string
	for _, e := range t.entries {
		if e.Action == a {
			out = append(out, e.Trigger)
		}
	}
	return out
}

// DefaultEntries is the built-in table.
func DefaultEntries() []Entry {
	return []Entry{
		{"clock", Open(domain.PanelClock)},
		{"time", Open(domain.PanelClock)},
		{"utc", Open(domain.PanelClock)},
		{"price", Open(domain.PanelPrices)},
		{"pomodoro", Open(domain.PanelPomodoro)},
		{"focus", Do(SpecialStartTimer)},
		{"music", Do(SpecialOpenMusic)},
		{"lexicon", Do(SpecialOpenLexicon)},
		{"dict", Do(SpecialOpenLexicon)},
		{"wallet", Open(domain.PanelWallets)},
		{"social", Open(domain.PanelSocial)},
		{"docs", Open(domain.PanelDocs)},
		{"gov", Open(domain.PanelGov)},
		{"lens", Open(domain.PanelLens)},
		{"gameb", Open(domain.PanelGameB)},
		{"ipfs", Open(domain.PanelIpfs)},
		{"defi", Open(domain.PanelDefi)},
		{"refi", Open(domain.PanelRefi)},
		{"network", Open(domain.PanelNetworks)},
		{"modalvate", Open(domain.PanelModalvate)},
		{"theme", Do(SpecialCycleTheme)},
	}
}

// Default returns the built-in table.
func Default() *Table {
	return MustTable(DefaultEntries())
}
