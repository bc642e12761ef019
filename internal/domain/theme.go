package domain

import "fmt"

// Theme selects the palette every view renders with.
type Theme string

const (
	ThemePurple Theme = "purple"
	ThemeGreen  Theme = "green"
	ThemeTeal   Theme = "teal"
)

// DefaultTheme is the theme the start page opens with.
const DefaultTheme = ThemePurple

// Themes lists the themes in cycle order.
var Themes = []Theme{ThemePurple, ThemeGreen, ThemeTeal}

// Next returns the theme after t in cycle order. Unknown themes restart the cycle.
func (t Theme) Next() Theme {
	for i, th := range Themes {
		if th == t {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

// ValidateTheme checks that s names a known theme.
func ValidateTheme(s string) (Theme, error) {
	t := Theme(s)
	for _, valid := range Themes {
		if t == valid {
			return t, nil
		}
	}
	return "", fmt.Errorf("invalid theme %q: must be one of purple, green, teal", s)
}
