// Package focus tracks which region of the start page receives keyboard
// input and moves real input focus between regions.
package focus

import (
	"github.com/xvierd/startpage/internal/domain"
	"github.com/xvierd/startpage/internal/ports"
)

// Regions are the focusable areas supplied by the UI layer. A nil region
// behaves as an empty one.
type Regions struct {
	Search  ports.FocusRegion
	Grid    ports.FocusRegion
	Toolbar ports.FocusRegion
}

// order is the downward traversal order used when the grid is exhausted.
var order = []domain.FocusTarget{domain.FocusSearch, domain.FocusGrid, domain.FocusToolbar}

// Router owns the focus target. It is not safe for concurrent use.
type Router struct {
	regions Regions
	current domain.FocusTarget
}

// NewRouter returns a router with nothing focused.
func NewRouter(regions Regions) *Router {
	return &Router{regions: regions}
}

// SetRegions replaces the regions, keeping the current target.
func (r *Router) SetRegions(regions Regions) {
	r.regions = regions
}

// Current returns the focused region.
func (r *Router) Current() domain.FocusTarget {
	return r.current
}

// MoveToSearch focuses the search field. It always succeeds.
func (r *Router) MoveToSearch() {
	r.move(domain.FocusSearch)
}

// MoveToGrid focuses the first grid item. With an empty grid it leaves the
// focus where it is and reports false.
func (r *Router) MoveToGrid() bool {
	if size(r.region(domain.FocusGrid)) == 0 {
		return false
	}
	r.move(domain.FocusGrid)
	return true
}

// MoveToToolbar focuses the first toolbar button.
func (r *Router) MoveToToolbar() {
	r.move(domain.FocusToolbar)
}

// Release returns focus to the search field when target holds it, such as
// when the toolbar it lived in closes.
func (r *Router) Release(target domain.FocusTarget) {
	if r.current == target {
		r.MoveToSearch()
	}
}

// GridExhaustedUp is called by the grid when upward navigation leaves its
// first row.
func (r *Router) GridExhaustedUp() {
	r.MoveToSearch()
}

// GridExhaustedDown is called by the grid when downward navigation leaves its
// last row. Focus moves to the next region after the grid that has items,
// wrapping around to the search field.
func (r *Router) GridExhaustedDown() {
	start := 0
	for i, t := range order {
		if t == domain.FocusGrid {
			start = i
		}
	}
	for step := 1; step < len(order); step++ {
		next := order[(start+step)%len(order)]
		if next == domain.FocusSearch || size(r.region(next)) > 0 {
			r.move(next)
			return
		}
	}
}

func (r *Router) move(target domain.FocusTarget) {
	if prev := r.region(r.current); prev != nil && r.current != target {
		prev.Blur()
	}
	if dest := r.region(target); dest != nil {
		dest.FocusFirst()
	}
	r.current = target
}

func (r *Router) region(t domain.FocusTarget) ports.FocusRegion {
	switch t {
	case domain.FocusSearch:
		return r.regions.Search
	case domain.FocusGrid:
		return r.regions.Grid
	case domain.FocusToolbar:
		return r.regions.Toolbar
	default:
		return nil
	}
}

func size(region ports.FocusRegion) int {
	if region == nil {
		return 0
	}
	return region.Len()
}

// FuncRegion adapts a length function into a region without native focus,
// for headless use.
type FuncRegion func() int

// Len implements ports.FocusRegion.
func (f FuncRegion) Len() int { return f() }

// FocusFirst implements ports.FocusRegion.
func (FuncRegion) FocusFirst() {}

// Blur implements ports.FocusRegion.
func (FuncRegion) Blur() {}
