package services

import (
	"sync"

	"github.com/xvierd/startpage/internal/commands"
	"github.com/xvierd/startpage/internal/domain"
	"github.com/xvierd/startpage/internal/focus"
	"github.com/xvierd/startpage/internal/hotkeys"
	"github.com/xvierd/startpage/internal/logging"
	"github.com/xvierd/startpage/internal/panels"
	"github.com/xvierd/startpage/internal/ports"
	"github.com/xvierd/startpage/internal/timer"
)

// DeskService is the interaction core of the start page. It owns the panel
// registry, the focus router and the search text, and drives the timer
// engine. Views read it through State and never mutate its parts directly.
type DeskService struct {
	mu       sync.Mutex
	registry *panels.Registry
	router   *focus.Router
	table    *commands.Table
	timer    *timer.Engine
	catalog  *CatalogService
	search   string
}

// NewDeskService wires the core. With no regions set the router works
// headless: the grid size follows the catalog and the toolbar size follows
// its visibility.
func NewDeskService(table *commands.Table, engine *timer.Engine, catalog *CatalogService, theme domain.Theme) *DeskService {
	if table == nil {
		table = commands.Default()
	}
	s := &DeskService{
		registry: panels.NewRegistry(theme),
		table:    table,
		timer:    engine,
		catalog:  catalog,
	}
	s.router = focus.NewRouter(s.headlessRegions())
	s.router.MoveToSearch()
	return s
}

func (s *DeskService) headlessRegions() focus.Regions {
	return focus.Regions{
		Search: focus.FuncRegion(func() int { return 1 }),
		Grid: focus.FuncRegion(func() int {
			if s.catalog == nil {
				return 0
			}
			return len(s.catalog.GridItems(s.search))
		}),
		Toolbar: focus.FuncRegion(func() int {
			if !s.registry.IsOpen(domain.PanelToolbar) {
				return 0
			}
			return len(panels.ToolbarPanels)
		}),
	}
}

// SetRegions hands the router the UI's focusable regions.
func (s *DeskService) SetRegions(regions focus.Regions) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.router.SetRegions(regions)
}

// Table returns the command table in use.
func (s *DeskService) Table() *commands.Table {
	return s.table
}

// Catalog returns the catalog service.
func (s *DeskService) Catalog() *CatalogService {
	return s.catalog
}

// Timer exposes the timer engine. Only the Pomodoro panel drives it.
func (s *DeskService) Timer() *timer.Engine {
	return s.timer
}

// Execute applies a hotkey command.
func (s *DeskService) Execute(cmd hotkeys.Command) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch cmd {
	case hotkeys.CmdFocusSearch:
		s.router.MoveToSearch()
	case hotkeys.CmdToggleToolbar:
		s.registry.Toggle(domain.PanelToolbar)
		if s.registry.IsOpen(domain.PanelToolbar) {
			s.router.MoveToToolbar()
		} else {
			s.router.MoveToSearch()
		}
	case hotkeys.CmdEscape:
		s.escapeLocked()
	case hotkeys.CmdCycleTheme:
		s.registry.CycleTheme()
	case hotkeys.CmdToggleMusic:
		s.registry.Toggle(domain.PanelMusic)
	case hotkeys.CmdToggleHelp:
		s.registry.Toggle(domain.PanelHelp)
	}
	logging.L().Debug("hotkey", "command", cmd, "focus", s.router.Current())
}

// SearchChanged records the live search text and runs the command it
// contains, if any. When a command fires the search text is cleared and
// SearchChanged reports true.
func (s *DeskService) SearchChanged(text string) (cleared bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.search = text
	action, ok := s.table.Interpret(text)
	if !ok {
		return false
	}
	s.applyLocked(action)
	s.search = ""
	logging.L().Debug("search command", "text", text, "action", action)
	return true
}

// Search implements ports.DeskController.
func (s *DeskService) Search(text string) bool {
	return s.SearchChanged(text)
}

func (s *DeskService) applyLocked(a commands.Action) {
	if !a.IsSpecial() {
		s.registry.Open(a.Panel)
		return
	}
	switch a.Special {
	case commands.SpecialOpenMusic:
		s.registry.Open(domain.PanelMusic)
	case commands.SpecialOpenLexicon:
		s.registry.Open(domain.PanelLexicon)
	case commands.SpecialStartTimer:
		s.registry.Open(domain.PanelPomodoro)
		if s.timer != nil {
			s.timer.Start()
		}
	case commands.SpecialCycleTheme:
		s.registry.CycleTheme()
	}
}

// State returns a snapshot of the desk.
func (s *DeskService) State() domain.DeskState {
	s.mu.Lock()
	state := domain.DeskState{
		Theme:      s.registry.Theme(),
		Focus:      s.router.Current(),
		OpenPanels: s.registry.OpenPanels(),
		Search:     s.search,
	}
	if top, ok := s.registry.Top(); ok {
		state.Top = &top
	}
	s.mu.Unlock()

	if s.timer != nil {
		snap := s.timer.Snapshot()
		state.Timer = snap.TimerState
		state.Notice = snap.Notice
	}
	return state
}

// IsOpen reports whether a panel is open.
func (s *DeskService) IsOpen(id domain.PanelID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.registry.IsOpen(id)
}

// Top returns the most recently opened panel still open.
func (s *DeskService) Top() (domain.PanelID, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.registry.Top()
}

// Stack returns the open panels, oldest first, toolbar excluded.
func (s *DeskService) Stack() []domain.PanelID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.registry.Stack()
}

// OpenPanel implements ports.DeskController.
func (s *DeskService) OpenPanel(id domain.PanelID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.registry.Open(id)
}

// ClosePanel implements ports.DeskController.
func (s *DeskService) ClosePanel(id domain.PanelID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closeLocked(id)
}

// TogglePanel implements ports.DeskController.
func (s *DeskService) TogglePanel(id domain.PanelID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.registry.IsOpen(id) {
		s.closeLocked(id)
		return
	}
	s.registry.Open(id)
}

func (s *DeskService) closeLocked(id domain.PanelID) {
	s.registry.Close(id)
	if id == domain.PanelToolbar {
		s.router.Release(domain.FocusToolbar)
	}
}

// Escape implements ports.DeskController. It closes one surface per call.
func (s *DeskService) Escape() (domain.PanelID, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.escapeLocked()
}

func (s *DeskService) escapeLocked() (domain.PanelID, bool) {
	closed, ok := s.registry.Escape()
	if ok && closed == domain.PanelToolbar {
		s.router.Release(domain.FocusToolbar)
	}
	return closed, ok
}

// CycleTheme implements ports.DeskController.
func (s *DeskService) CycleTheme() domain.Theme {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.registry.CycleTheme()
}

// PanelProps returns what the body of panel id receives.
func (s *DeskService) PanelProps(id domain.PanelID) domain.PanelProps {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.PanelProps{
		IsOpen:  s.registry.IsOpen(id),
		OnClose: func() { s.ClosePanel(id) },
		Theme:   s.registry.Theme(),
	}
}

// Focus returns the focused region.
func (s *DeskService) Focus() domain.FocusTarget {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.router.Current()
}

// FocusSearch moves focus to the search field.
func (s *DeskService) FocusSearch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.router.MoveToSearch()
}

// FocusGrid moves focus into the grid; it reports false for an empty grid.
func (s *DeskService) FocusGrid() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.router.MoveToGrid()
}

// GridExhaustedUp is the grid's callback for leaving its first row.
func (s *DeskService) GridExhaustedUp() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.router.GridExhaustedUp()
}

// GridExhaustedDown is the grid's callback for leaving its last row.
func (s *DeskService) GridExhaustedDown() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.router.GridExhaustedDown()
}

// GridItems returns the links the grid shows for the current search text.
func (s *DeskService) GridItems() []domain.Link {
	s.mu.Lock()
	search := s.search
	s.mu.Unlock()
	if s.catalog == nil {
		return nil
	}
	return s.catalog.GridItems(search)
}

// FilterLinks implements ports.DeskController.
func (s *DeskService) FilterLinks(query string) []domain.Link {
	if s.catalog == nil {
		return nil
	}
	return s.catalog.Filter(query)
}

// StartTimer implements ports.DeskController.
func (s *DeskService) StartTimer() {
	if s.timer != nil {
		s.timer.Start()
	}
}

// PauseTimer implements ports.DeskController.
func (s *DeskService) PauseTimer() {
	if s.timer != nil {
		s.timer.Pause()
	}
}

// ResetTimer implements ports.DeskController.
func (s *DeskService) ResetTimer() {
	if s.timer != nil {
		s.timer.Reset()
	}
}

// SwitchTimerMode implements ports.DeskController.
func (s *DeskService) SwitchTimerMode() {
	if s.timer != nil {
		s.timer.SwitchMode()
	}
}

var _ ports.DeskController = (*DeskService)(nil)
