package focus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/xvierd/startpage/internal/domain"
)

type fakeRegion struct {
	items   int
	focused bool
	blurs   int
}

func (f *fakeRegion) Len() int    { return f.items }
func (f *fakeRegion) FocusFirst() { f.focused = true }
func (f *fakeRegion) Blur()       { f.focused = false; f.blurs++ }

func setup(gridItems, toolbarItems int) (*Router, *fakeRegion, *fakeRegion, *fakeRegion) {
	search := &fakeRegion{items: 1}
	grid := &fakeRegion{items: gridItems}
	toolbar := &fakeRegion{items: toolbarItems}
	return NewRouter(Regions{Search: search, Grid: grid, Toolbar: toolbar}), search, grid, toolbar
}

func TestRouter_MoveToSearch(t *testing.T) {
	r, search, _, _ := setup(3, 0)

	r.MoveToSearch()
	assert.Equal(t, domain.FocusSearch, r.Current())
	assert.True(t, search.focused)
}

func TestRouter_MoveToGrid(t *testing.T) {
	r, search, grid, _ := setup(3, 0)
	r.MoveToSearch()

	assert.True(t, r.MoveToGrid())
	assert.Equal(t, domain.FocusGrid, r.Current())
	assert.True(t, grid.focused)
	assert.False(t, search.focused)
}

func TestRouter_MoveToGridEmptyIsNoop(t *testing.T) {
	r, search, grid, _ := setup(0, 0)
	r.MoveToSearch()

	assert.False(t, r.MoveToGrid())
	assert.Equal(t, domain.FocusSearch, r.Current())
	assert.True(t, search.focused)
	assert.False(t, grid.focused)
}

func TestRouter_MoveToGridFromNone(t *testing.T) {
	r := NewRouter(Regions{})

	assert.False(t, r.MoveToGrid())
	assert.Equal(t, domain.FocusNone, r.Current())
}

func TestRouter_GridExhaustedUp(t *testing.T) {
	r, search, _, _ := setup(2, 0)
	r.MoveToGrid()

	r.GridExhaustedUp()
	assert.Equal(t, domain.FocusSearch, r.Current())
	assert.True(t, search.focused)
}

func TestRouter_GridExhaustedDown(t *testing.T) {
	tests := []struct {
		name     string
		toolbar  int
		expected domain.FocusTarget
	}{
		{"toolbar visible", 4, domain.FocusToolbar},
		{"toolbar hidden", 0, domain.FocusSearch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _, grid, _ := setup(2, tt.toolbar)
			r.MoveToGrid()

			r.GridExhaustedDown()
			assert.Equal(t, tt.expected, r.Current())
			assert.False(t, grid.focused)
		})
	}
}

func TestRouter_Release(t *testing.T) {
	r, _, _, toolbar := setup(2, 3)
	r.MoveToToolbar()
	assert.True(t, toolbar.focused)

	r.Release(domain.FocusGrid)
	assert.Equal(t, domain.FocusToolbar, r.Current())

	r.Release(domain.FocusToolbar)
	assert.Equal(t, domain.FocusSearch, r.Current())
	assert.False(t, toolbar.focused)
}

func TestFuncRegion(t *testing.T) {
	n := 0
	r := NewRouter(Regions{Grid: FuncRegion(func() int { return n })})

	assert.False(t, r.MoveToGrid())
	n = 5
	assert.True(t, r.MoveToGrid())
}
