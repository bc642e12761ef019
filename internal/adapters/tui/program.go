package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/xvierd/startpage/internal/hotkeys"
	"github.com/xvierd/startpage/internal/services"
)

// Run starts the start page and blocks until the user quits or ctx is
// cancelled.
func Run(ctx context.Context, desk *services.DeskService, opts Options) error {
	bus := hotkeys.NewBus()
	model := NewModel(desk, bus, opts)
	defer model.Close()

	program := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	if _, err := program.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}
