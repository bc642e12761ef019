package tui

import (
	"reflect"

	"github.com/charmbracelet/lipgloss"
	"github.com/xvierd/startpage/internal/config"
	"github.com/xvierd/startpage/internal/domain"
)

// resolvePalette returns the palette of theme t with any empty color filled
// from the built-in palette of the same theme.
func resolvePalette(themes config.ThemeConfig, t domain.Theme) config.PaletteConfig {
	resolved := themes.Palette(t)
	defaults := config.DefaultThemeConfig().Palette(t)
	rv := reflect.ValueOf(&resolved).Elem()
	dv := reflect.ValueOf(defaults)
	for i := 0; i < rv.NumField(); i++ {
		f := rv.Field(i)
		if f.Kind() == reflect.String && f.String() == "" {
			f.SetString(dv.Field(i).String())
		}
	}
	return resolved
}

// styles are the lipgloss styles of one theme.
type styles struct {
	palette config.PaletteConfig
	title   lipgloss.Style
	accent  lipgloss.Style
	muted   lipgloss.Style
	text    lipgloss.Style
	cursor  lipgloss.Style
	button  lipgloss.Style
	active  lipgloss.Style
	panel   lipgloss.Style
	search  lipgloss.Style
	notice  lipgloss.Style
}

func newStyles(p config.PaletteConfig) styles {
	accent := lipgloss.Color(p.Accent)
	muted := lipgloss.Color(p.Muted)
	text := lipgloss.Color(p.Text)
	border := lipgloss.Color(p.Border)

	return styles{
		palette: p,
		title:   lipgloss.NewStyle().Bold(true).Foreground(accent),
		accent:  lipgloss.NewStyle().Foreground(accent),
		muted:   lipgloss.NewStyle().Foreground(muted),
		text:    lipgloss.NewStyle().Foreground(text),
		cursor: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(accent),
		button: lipgloss.NewStyle().Foreground(text).Padding(0, 1),
		active: lipgloss.NewStyle().Bold(true).Foreground(accent).Padding(0, 1),
		panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Padding(0, 1),
		search: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(border).
			Padding(0, 1),
		notice: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(accent).
			Padding(0, 1),
	}
}
