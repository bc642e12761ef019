package domain

// FocusTarget is the region that receives keyboard input outside of
// panel-local handling.
type FocusTarget int

const (
	FocusNone FocusTarget = iota
	FocusSearch
	FocusGrid
	FocusToolbar
)

// String returns a short name for the target.
func (f FocusTarget) String() string {
	switch f {
	case FocusSearch:
		return "search"
	case FocusGrid:
		return "grid"
	case FocusToolbar:
		return "toolbar"
	default:
		return "none"
	}
}
