// Package panels keeps the open/closed flag of every overlay surface in one
// keyed container, together with the theme and the escape order.
package panels

import (
	"github.com/xvierd/startpage/internal/domain"
)

// EscapeOrder is the order in which Escape closes surfaces. The toolbar is
// always last.
var EscapeOrder = []domain.PanelID{
	domain.PanelPrices,
	domain.PanelClock,
	domain.PanelPomodoro,
	domain.PanelDocs,
	domain.PanelSocial,
	domain.PanelWallets,
	domain.PanelMusic,
	domain.PanelLexicon,
	domain.PanelHelp,
	domain.PanelModalvate,
	domain.PanelGov,
	domain.PanelLens,
	domain.PanelGameB,
	domain.PanelIpfs,
	domain.PanelDefi,
	domain.PanelRefi,
	domain.PanelNetworks,
	domain.PanelToolbar,
}

// ToolbarPanels are the panels reachable from toolbar buttons, left to right.
var ToolbarPanels = []domain.PanelID{
	domain.PanelClock,
	domain.PanelPrices,
	domain.PanelPomodoro,
	domain.PanelMusic,
	domain.PanelLexicon,
	domain.PanelWallets,
	domain.PanelSocial,
	domain.PanelDocs,
	domain.PanelHelp,
}

// EscapeRank returns the position of id in EscapeOrder, or -1.
func EscapeRank(id domain.PanelID) int {
	for i, p := range EscapeOrder {
		if p == id {
			return i
		}
	}
	return -1
}

// Registry is the panel state container. Open, Close and Toggle are its only
// mutators and each touches exactly one flag. It is not safe for concurrent
// use; the desk service serializes access.
type Registry struct {
	open  map[domain.PanelID]bool
	stack []domain.PanelID
	theme domain.Theme
}

// NewRegistry returns a registry with every panel closed.
func NewRegistry(theme domain.Theme) *Registry {
	if theme == "" {
		theme = domain.DefaultTheme
	}
	open := make(map[domain.PanelID]bool, len(domain.AllPanels()))
	for _, id := range domain.AllPanels() {
		open[id] = false
	}
	return &Registry{open: open, theme: theme}
}

// Open marks id open.
func (r *Registry) Open(id domain.PanelID) {
	id.MustValid()
	if r.open[id] {
		return
	}
	r.open[id] = true
	r.stack = append(r.stack, id)
}

// Close marks id closed.
func (r *Registry) Close(id domain.PanelID) {
	id.MustValid()
	if !r.open[id] {
		return
	}
	r.open[id] = false
	r.removeFromStack(id)
}

// Toggle flips id.
func (r *Registry) Toggle(id domain.PanelID) {
	id.MustValid()
	if r.open[id] {
		r.Close(id)
		return
	}
	r.Open(id)
}

// IsOpen reports whether id is open.
func (r *Registry) IsOpen(id domain.PanelID) bool {
	id.MustValid()
	return r.open[id]
}

// OpenPanels returns the open surfaces in declaration order.
func (r *Registry) OpenPanels() []domain.PanelID {
	var out []domain.PanelID
	for _, id := range domain.AllPanels() {
		if r.open[id] {
			out = append(out, id)
		}
	}
	return out
}

// Stack returns open panels, toolbar excluded, oldest first.
func (r *Registry) Stack() []domain.PanelID {
	out := make([]domain.PanelID, 0, len(r.stack))
	for _, id := range r.stack {
		if id != domain.PanelToolbar {
			out = append(out, id)
		}
	}
	return out
}

// Top returns the most recently opened panel that is still open, toolbar
// excluded.
func (r *Registry) Top() (domain.PanelID, bool) {
	for i := len(r.stack) - 1; i >= 0; i-- {
		if r.stack[i] != domain.PanelToolbar {
			return r.stack[i], true
		}
	}
	return 0, false
}

// Theme returns the current theme.
func (r *Registry) Theme() domain.Theme {
	return r.theme
}

// CycleTheme advances the theme and returns the new value.
func (r *Registry) CycleTheme() domain.Theme {
	r.theme = r.theme.Next()
	return r.theme
}

// Escape closes the first open surface in EscapeOrder and returns it. With
// nothing open it does nothing and reports false.
func (r *Registry) Escape() (domain.PanelID, bool) {
	for _, id := range EscapeOrder {
		if r.open[id] {
			r.Close(id)
			return id, true
		}
	}
	return 0, false
}

func (r *Registry) removeFromStack(id domain.PanelID) {
	for i, p := range r.stack {
		if p == id {
			r.stack = append(r.stack[:i], r.stack[i+1:]...)
			return
		}
	}
}
