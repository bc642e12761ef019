package ports

// FocusRegion is a keyboard-focusable area of the UI layer.
// This is a driven port (implemented by the TUI adapter).
type FocusRegion interface {
	// Len returns the number of focusable elements currently in the region.
	Len() int

	// FocusFirst moves native input focus to the region's first element.
	FocusFirst()

	// Blur drops native input focus from the region.
	Blur()
}
