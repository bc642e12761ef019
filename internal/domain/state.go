package domain

// DeskState is a read-only snapshot of the interaction state.
type DeskState struct {
	Theme      Theme
	Focus      FocusTarget
	OpenPanels []PanelID
	Top        *PanelID
	Timer      TimerState
	Notice     *Notice
	Search     string
}

// IsOpen reports whether id appears among the open panels.
func (s DeskState) IsOpen(id PanelID) bool {
	for _, open := range s.OpenPanels {
		if open == id {
			return true
		}
	}
	return false
}

// PanelProps is what a panel body receives from the desk.
type PanelProps struct {
	IsOpen  bool
	OnClose func()
	Theme   Theme
}
