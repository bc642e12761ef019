package tui

import (
	"fmt"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
	"github.com/xvierd/startpage/internal/commands"
	"github.com/xvierd/startpage/internal/domain"
)

// worldClocks are the zones listed by the clock panel.
var worldClocks = []struct {
	label string
	zone  string
}{
	{"UTC", "UTC"},
	{"San Francisco", "America/Los_Angeles"},
	{"New York", "America/New_York"},
	{"London", "Europe/London"},
	{"Berlin", "Europe/Berlin"},
	{"Singapore", "Asia/Singapore"},
	{"Tokyo", "Asia/Tokyo"},
	{"Sydney", "Australia/Sydney"},
}

// panelWidth is the content width of an open panel.
func (m Model) panelWidth() int {
	w := m.width - 8
	if w > 72 {
		w = 72
	}
	if w < 20 {
		w = 20
	}
	return w
}

// viewPanel renders the body of panel id inside its frame.
func (m Model) viewPanel(id domain.PanelID, state domain.DeskState) string {
	props := m.desk.PanelProps(id)
	if !props.IsOpen {
		return ""
	}
	st := m.styles

	var body string
	switch id {
	case domain.PanelClock:
		body = m.viewClock()
	case domain.PanelPomodoro:
		body = m.viewPomodoro(state)
	case domain.PanelHelp:
		body = m.viewHelp()
	default:
		body = m.viewLinks(id)
	}

	title := st.title.Render(id.Title())
	closeHint := st.muted.Render("esc close")
	header := lipgloss.JoinHorizontal(lipgloss.Top, title, "  ", closeHint)
	return st.panel.Width(m.panelWidth()).Render(header + "\n\n" + body)
}

func (m Model) viewClock() string {
	st := m.styles
	now := m.now()

	var lines []string
	for _, c := range worldClocks {
		loc, err := time.LoadLocation(c.zone)
		if err != nil {
			continue
		}
		t := now.In(loc)
		lines = append(lines, fmt.Sprintf("%s  %s",
			st.text.Render(fmt.Sprintf("%-14s", c.label)),
			st.accent.Render(t.Format("15:04:05 Mon"))))
	}
	return strings.Join(lines, "\n")
}

func (m Model) viewPomodoro(state domain.DeskState) string {
	st := m.styles
	var sections []string

	if state.Notice != nil {
		sections = append(sections, st.notice.Render(state.Notice.Message), "")
	}

	mode := st.muted.Render(state.Timer.Mode.Label() + " session")
	sections = append(sections, mode)
	sections = append(sections, renderBigClock(domain.FormatClock(state.Timer.Remaining), st.accent, m.panelWidth()))

	full := m.desk.Timer().Config().FullSeconds(state.Timer.Mode)
	ratio := 0.0
	if full > 0 {
		ratio = 1 - float64(state.Timer.Remaining)/float64(full)
	}
	bar := progress.New(progress.WithSolidFill(st.palette.Accent), progress.WithoutPercentage())
	bar.Width = m.panelWidth() - 4
	sections = append(sections, "", bar.ViewAs(ratio))

	play := "alt+s start"
	if state.Timer.Running {
		play = "alt+s pause"
	}
	next := "Switch to Break"
	if state.Timer.Mode == domain.ModeBreak {
		next = "Switch to Work"
	}
	sections = append(sections, "", st.muted.Render(fmt.Sprintf("%s · alt+r reset · alt+n %s", play, next)))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) viewHelp() string {
	st := m.styles
	h := m.help
	h.ShowAll = true

	var sections []string
	sections = append(sections, h.View(m.keymap), "")
	sections = append(sections, st.title.Render("Search commands"))
	for _, e := range m.desk.Table().Entries() {
		sections = append(sections, fmt.Sprintf("%s  %s",
			st.accent.Render(fmt.Sprintf("%-10s", e.Trigger)),
			st.muted.Render(actionLabel(e.Action))))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func actionLabel(a commands.Action) string {
	if !a.IsSpecial() {
		return "open " + a.Panel.Title()
	}
	return a.String()
}

func (m Model) viewLinks(id domain.PanelID) string {
	st := m.styles
	links := m.desk.Catalog().ByCategory(id.String())
	if len(links) == 0 {
		return st.muted.Render("No links in this panel yet. Add one with `startpage catalog add --category " + id.String() + "`.")
	}

	var lines []string
	for i, l := range links {
		n := ""
		if i < 9 {
			n = fmt.Sprintf("alt+%d", i+1)
		}
		line := fmt.Sprintf("%s %s  %s", st.muted.Render(fmt.Sprintf("%-5s", n)), st.text.Render(l.Name), st.muted.Render(l.URL))
		if l.Description != "" {
			line += "\n      " + st.muted.Render(l.Description)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
