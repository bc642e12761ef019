package ports

import (
	"context"

	"github.com/xvierd/startpage/internal/domain"
)

// MCPHandler defines the interface for MCP server operations.
// This is a driving port (called by the application layer).
type MCPHandler interface {
	// Start begins serving MCP requests.
	Start(ctx context.Context) error

	// Stop gracefully shuts down the server.
	Stop() error

	// IsRunning returns true if the server is active.
	IsRunning() bool
}

// DeskController exposes the interaction core to the MCP server.
// This is a driven port (implemented by the services layer).
type DeskController interface {
	// State returns a snapshot of panels, focus, theme and timer.
	State() domain.DeskState

	// OpenPanel, ClosePanel and TogglePanel change a single panel flag.
	OpenPanel(id domain.PanelID)
	ClosePanel(id domain.PanelID)
	TogglePanel(id domain.PanelID)

	// Escape closes the highest priority open surface, if any.
	Escape() (domain.PanelID, bool)

	// CycleTheme advances to the next theme.
	CycleTheme() domain.Theme

	// Search feeds text to the command interpreter and reports whether a
	// command fired.
	Search(text string) bool

	// StartTimer, PauseTimer, ResetTimer and SwitchTimerMode drive the countdown.
	StartTimer()
	PauseTimer()
	ResetTimer()
	SwitchTimerMode()

	// FilterLinks returns catalog links matching the query.
	FilterLinks(query string) []domain.Link
}
