package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/xvierd/startpage/internal/domain"
	"github.com/xvierd/startpage/internal/panels"
	"github.com/xvierd/startpage/internal/ports"
)

// The regions below are called by the focus router while the desk holds
// its lock. They only touch their own fields and never call back into the
// desk.

// searchRegion wraps the search field.
type searchRegion struct {
	input textinput.Model
	// last is the text most recently handed to the desk.
	last string
}

func newSearchRegion() *searchRegion {
	ti := textinput.New()
	ti.Placeholder = "Search links or type a command (clock, price, focus...)"
	ti.Prompt = "› "
	ti.CharLimit = 120
	return &searchRegion{input: ti}
}

func (r *searchRegion) Len() int { return 1 }

func (r *searchRegion) FocusFirst() { r.input.Focus() }

func (r *searchRegion) Blur() { r.input.Blur() }

// clear empties the field after a command fired.
func (r *searchRegion) clear() {
	r.input.SetValue("")
	r.last = ""
}

// gridColumns is the number of link cells per row.
const gridColumns = 3

// gridRegion is the link grid. Its items are refreshed by the model after
// every desk call.
type gridRegion struct {
	items   []domain.Link
	cursor  int
	focused bool
}

func (r *gridRegion) Len() int { return len(r.items) }

func (r *gridRegion) FocusFirst() {
	r.cursor = 0
	r.focused = true
}

func (r *gridRegion) Blur() { r.focused = false }

func (r *gridRegion) setItems(items []domain.Link) {
	r.items = items
	if r.cursor >= len(items) {
		r.cursor = 0
	}
}

func (r *gridRegion) selected() (domain.Link, bool) {
	if r.cursor < 0 || r.cursor >= len(r.items) {
		return domain.Link{}, false
	}
	return r.items[r.cursor], true
}

// up moves one row up and reports false when already on the first row.
func (r *gridRegion) up() bool {
	if r.cursor < gridColumns {
		return false
	}
	r.cursor -= gridColumns
	return true
}

// down moves one row down and reports false when already on the last row.
func (r *gridRegion) down() bool {
	lastRow := (len(r.items) - 1) / gridColumns
	if r.cursor/gridColumns >= lastRow {
		return false
	}
	r.cursor += gridColumns
	if r.cursor >= len(r.items) {
		r.cursor = len(r.items) - 1
	}
	return true
}

func (r *gridRegion) left() {
	if r.cursor > 0 {
		r.cursor--
	}
}

func (r *gridRegion) right() {
	if r.cursor < len(r.items)-1 {
		r.cursor++
	}
}

// toolbarRegion is the row of panel buttons shown while the toolbar is open.
type toolbarRegion struct {
	visible bool
	cursor  int
	focused bool
}

func (r *toolbarRegion) Len() int {
	if !r.visible {
		return 0
	}
	return len(panels.ToolbarPanels)
}

func (r *toolbarRegion) FocusFirst() {
	r.cursor = 0
	r.focused = true
}

func (r *toolbarRegion) Blur() { r.focused = false }

func (r *toolbarRegion) left() {
	if r.cursor > 0 {
		r.cursor--
	}
}

func (r *toolbarRegion) right() {
	if r.cursor < len(panels.ToolbarPanels)-1 {
		r.cursor++
	}
}

func (r *toolbarRegion) selected() domain.PanelID {
	return panels.ToolbarPanels[r.cursor]
}

var (
	_ ports.FocusRegion = (*searchRegion)(nil)
	_ ports.FocusRegion = (*gridRegion)(nil)
	_ ports.FocusRegion = (*toolbarRegion)(nil)
)
