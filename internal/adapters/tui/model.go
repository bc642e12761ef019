// Package tui provides the terminal user interface implementation
// using the Bubbletea framework.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/xvierd/startpage/internal/config"
	"github.com/xvierd/startpage/internal/domain"
	"github.com/xvierd/startpage/internal/focus"
	"github.com/xvierd/startpage/internal/hotkeys"
	"github.com/xvierd/startpage/internal/logging"
	"github.com/xvierd/startpage/internal/panels"
	"github.com/xvierd/startpage/internal/services"
	"github.com/xvierd/startpage/internal/timer"
)

// tickMsg is sent every second to refresh the clock panel.
type tickMsg time.Time

// timerMsg carries a timer snapshot from the engine.
type timerMsg timer.Snapshot

// flashDuration is how long a status message stays in the footer.
const flashDuration = 2 * time.Second

// Options configures a Model.
type Options struct {
	Themes config.ThemeConfig
	Keymap hotkeys.Keymap
	// Copy writes text to the system clipboard.
	Copy func(string) error
	// Now returns the current time for the clock panel.
	Now func() time.Time
}

// DefaultOptions returns the built-in themes, keymap and clipboard.
func DefaultOptions() Options {
	return Options{
		Themes: config.DefaultThemeConfig(),
		Keymap: hotkeys.DefaultKeymap(),
		Copy:   clipboard.WriteAll,
		Now:    time.Now,
	}
}

// Model represents the TUI state.
type Model struct {
	desk    *services.DeskService
	bus     *hotkeys.Bus
	keymap  hotkeys.Keymap
	help    help.Model
	themes  config.ThemeConfig
	styles  styles
	theme   domain.Theme
	copy    func(string) error
	now     func() time.Time
	search  *searchRegion
	grid    *gridRegion
	toolbar *toolbarRegion
	timerCh chan timer.Snapshot
	width   int
	height  int

	flash      string
	flashUntil time.Time

	detach      func()
	unsubscribe func()
}

// NewModel creates a new TUI model bound to desk. It attaches the hotkey
// dispatcher to bus and subscribes to the timer; Close undoes both.
func NewModel(desk *services.DeskService, bus *hotkeys.Bus, opts Options) Model {
	defaults := DefaultOptions()
	if opts.Copy == nil {
		opts.Copy = defaults.Copy
	}
	if opts.Now == nil {
		opts.Now = defaults.Now
	}
	if len(opts.Keymap.Escape.Keys()) == 0 {
		opts.Keymap = defaults.Keymap
	}

	m := Model{
		desk:    desk,
		bus:     bus,
		keymap:  opts.Keymap,
		help:    help.New(),
		themes:  opts.Themes,
		copy:    opts.Copy,
		now:     opts.Now,
		search:  newSearchRegion(),
		grid:    &gridRegion{},
		toolbar: &toolbarRegion{},
		timerCh: make(chan timer.Snapshot, 1),
	}

	desk.SetRegions(focus.Regions{Search: m.search, Grid: m.grid, Toolbar: m.toolbar})
	m.sync()
	desk.FocusSearch()

	m.detach = hotkeys.NewDispatcher(m.keymap, desk.Execute).Attach(bus)
	ch := m.timerCh
	m.unsubscribe = desk.Timer().Subscribe(func(s timer.Snapshot) { pushLatest(ch, s) })
	return m
}

// pushLatest hands s to the UI without blocking the engine. An undelivered
// older snapshot is replaced.
func pushLatest(ch chan timer.Snapshot, s timer.Snapshot) {
	for {
		select {
		case ch <- s:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}

func waitForTimer(ch <-chan timer.Snapshot) tea.Cmd {
	return func() tea.Msg {
		s, ok := <-ch
		if !ok {
			return nil
		}
		return timerMsg(s)
	}
}

// tickCmd creates a command that sends a tick message.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Close detaches the model from the key bus and the timer.
func (m Model) Close() {
	if m.detach != nil {
		m.detach()
	}
	if m.unsubscribe != nil {
		m.unsubscribe()
	}
}

// Init initializes the TUI.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, tickCmd(), waitForTimer(m.timerCh))
}

// sync refreshes the region data and styles the desk does not own.
func (m *Model) sync() {
	m.grid.setItems(m.desk.GridItems())
	m.toolbar.visible = m.desk.IsOpen(domain.PanelToolbar)
	theme := m.desk.State().Theme
	if theme != m.theme || m.styles.palette == (config.PaletteConfig{}) {
		m.theme = theme
		m.styles = newStyles(resolvePalette(m.themes, theme))
	}
}

func (m *Model) setFlash(s string) {
	m.flash = s
	m.flashUntil = m.now().Add(flashDuration)
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		cmd := m.handleKey(msg)
		m.sync()
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case tickMsg:
		if m.flash != "" && m.now().After(m.flashUntil) {
			m.flash = ""
		}
		return m, tickCmd()

	case timerMsg:
		return m, waitForTimer(m.timerCh)
	}
	return m, nil
}

// handleKey routes a key: global hotkeys first, then the top panel's own
// keys, then the focused region.
func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	ev := hotkeys.FromKeyMsg(msg)
	if m.bus.Publish(ev) {
		logging.L().Debug("hotkey suppressed", "key", ev)
		return nil
	}
	if m.handlePanelKey(ev) {
		return nil
	}

	switch m.desk.Focus() {
	case domain.FocusGrid:
		return m.updateGrid(msg)
	case domain.FocusToolbar:
		return m.updateToolbar(msg)
	default:
		return m.updateSearch(msg)
	}
}

// handlePanelKey offers ev to the top panel.
func (m *Model) handlePanelKey(ev hotkeys.KeyEvent) bool {
	top, ok := m.desk.Top()
	if !ok || !ev.Alt || ev.Ctrl {
		return false
	}

	switch top {
	case domain.PanelPomodoro:
		engine := m.desk.Timer()
		switch ev.Code {
		case "s":
			engine.Toggle()
		case "r":
			engine.Reset()
		case "n":
			engine.SwitchMode()
		default:
			return false
		}
		return true
	case domain.PanelClock, domain.PanelHelp:
		return false
	}

	if len(ev.Code) == 1 && ev.Code[0] >= '1' && ev.Code[0] <= '9' {
		links := m.desk.Catalog().ByCategory(top.String())
		i := int(ev.Code[0] - '1')
		if i < len(links) {
			m.copyLink(links[i])
		}
		return true
	}
	if ev.Code == "w" {
		m.desk.PanelProps(top).OnClose()
		return true
	}
	return false
}

func (m *Model) copyLink(l domain.Link) {
	if err := m.copy(l.URL); err != nil {
		logging.L().Warn("clipboard write failed", "url", l.URL, "err", err)
		m.setFlash("Could not copy " + l.URL)
		return
	}
	m.setFlash("Copied " + l.URL)
}

func (m *Model) updateSearch(msg tea.KeyMsg) tea.Cmd {
	if msg.Alt {
		return nil
	}
	if msg.Type == tea.KeyDown {
		m.sync()
		m.desk.FocusGrid()
		return nil
	}

	var cmd tea.Cmd
	m.search.input, cmd = m.search.input.Update(msg)
	text := m.search.input.Value()
	if text == m.search.last {
		return cmd
	}
	m.search.last = text
	if m.desk.SearchChanged(text) {
		m.search.clear()
	}
	return cmd
}

func (m *Model) updateGrid(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyUp:
		if !m.grid.up() {
			m.desk.GridExhaustedUp()
		}
	case tea.KeyDown:
		if !m.grid.down() {
			m.desk.GridExhaustedDown()
		}
	case tea.KeyLeft:
		m.grid.left()
	case tea.KeyRight:
		m.grid.right()
	case tea.KeyEnter:
		if l, ok := m.grid.selected(); ok {
			m.copyLink(l)
		}
	case tea.KeyRunes, tea.KeySpace, tea.KeyBackspace:
		m.desk.FocusSearch()
		return m.updateSearch(msg)
	}
	return nil
}

func (m *Model) updateToolbar(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyLeft:
		m.toolbar.left()
	case tea.KeyRight:
		m.toolbar.right()
	case tea.KeyEnter, tea.KeySpace:
		m.desk.TogglePanel(m.toolbar.selected())
	case tea.KeyUp:
		m.sync()
		if !m.desk.FocusGrid() {
			m.desk.FocusSearch()
		}
	case tea.KeyDown:
		m.desk.FocusSearch()
	case tea.KeyRunes, tea.KeyBackspace:
		m.desk.FocusSearch()
		return m.updateSearch(msg)
	}
	return nil
}

// View renders the TUI.
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}
	st := m.styles
	state := m.desk.State()

	var sections []string

	header := st.title.Render("startpage")
	header += "  " + st.muted.Render(string(state.Theme))
	if state.Timer.Running {
		header += "  " + st.accent.Render("⏱ "+domain.FormatClock(state.Timer.Remaining))
	}
	sections = append(sections, header, "")

	searchWidth := m.width - 6
	if searchWidth > 80 {
		searchWidth = 80
	}
	sections = append(sections, st.search.Width(searchWidth).Render(m.search.input.View()))
	sections = append(sections, "", m.viewGrid(state))

	if m.toolbar.visible {
		sections = append(sections, "", m.viewToolbar(state))
	}

	if top := state.Top; top != nil {
		sections = append(sections, "", m.viewPanel(*top, state))
		if others := otherOpen(state, *top); len(others) > 0 {
			sections = append(sections, st.muted.Render("also open: "+strings.Join(others, ", ")))
		}
	}

	sections = append(sections, "")
	if m.flash != "" {
		sections = append(sections, st.accent.Render(m.flash))
	}
	sections = append(sections, m.help.ShortHelpView(m.keymap.ShortHelp()))

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Top, content)
}

func otherOpen(state domain.DeskState, top domain.PanelID) []string {
	var names []string
	for _, id := range state.OpenPanels {
		if id != top && id != domain.PanelToolbar {
			names = append(names, id.Title())
		}
	}
	return names
}

func (m Model) viewGrid(state domain.DeskState) string {
	st := m.styles
	if len(m.grid.items) == 0 {
		if state.Search != "" {
			return st.muted.Render(fmt.Sprintf("No links match %q", state.Search))
		}
		return st.muted.Render("No shortcuts yet")
	}

	cellWidth := (m.width - 8) / gridColumns
	if cellWidth > 28 {
		cellWidth = 28
	}
	if cellWidth < 12 {
		cellWidth = 12
	}

	var rows []string
	var row []string
	for i, l := range m.grid.items {
		label := l.Name
		if state.Search != "" && l.Category != "" {
			label += " · " + l.Category
		}
		if len([]rune(label)) > cellWidth-2 {
			label = string([]rune(label)[:cellWidth-3]) + "…"
		}
		cell := lipgloss.NewStyle().Width(cellWidth)
		if m.grid.focused && i == m.grid.cursor {
			row = append(row, cell.Render(st.cursor.Render(" "+label+" ")))
		} else {
			row = append(row, cell.Render(st.text.Render(" "+label)))
		}
		if len(row) == gridColumns {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}

	if l, ok := m.grid.selected(); ok && m.grid.focused {
		detail := l.URL
		if l.Description != "" {
			detail = l.Description + " · " + l.URL
		}
		rows = append(rows, "", st.muted.Render(detail+"  (enter to copy)"))
	}
	return strings.Join(rows, "\n")
}

func (m Model) viewToolbar(state domain.DeskState) string {
	st := m.styles
	buttons := make([]string, 0, len(panels.ToolbarPanels))
	for i, id := range panels.ToolbarPanels {
		label := id.Title()
		switch {
		case m.toolbar.focused && i == m.toolbar.cursor:
			buttons = append(buttons, st.cursor.Padding(0, 1).Render(label))
		case state.IsOpen(id):
			buttons = append(buttons, st.active.Render(label))
		default:
			buttons = append(buttons, st.button.Render(label))
		}
	}
	return st.panel.Render(lipgloss.JoinHorizontal(lipgloss.Top, buttons...))
}
