package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// glyphs holds a five-row block rendering of each countdown character, rows
// separated by '|'.
var glyphs = map[rune]string{
	'0': "███|█ █|█ █|█ █|███",
	'1': " █ |██ | █ | █ |███",
	'2': "███|  █|███|█  |███",
	'3': "███|  █|███|  █|███",
	'4': "█ █|█ █|███|  █|  █",
	'5': "███|█  |███|  █|███",
	'6': "███|█  |███|█ █|███",
	'7': "███|  █| █ | █ | █ ",
	'8': "███|█ █|███|█ █|███",
	'9': "███|█ █|███|  █|███",
	':': " |█| |█| ",
}

// bigClockMinWidth is the narrowest panel that gets block digits.
const bigClockMinWidth = 30

// renderBigClock renders an MM:SS string in block digits, or as one bold
// line when the panel is narrower than bigClockMinWidth.
func renderBigClock(clock string, style lipgloss.Style, width int) string {
	if width < bigClockMinWidth {
		return style.Bold(true).Render(clock)
	}

	var rows [5][]string
	for _, ch := range clock {
		glyph, ok := glyphs[ch]
		if !ok {
			continue
		}
		for i, row := range strings.Split(glyph, "|") {
			rows[i] = append(rows[i], row)
		}
	}

	lines := make([]string, len(rows))
	for i, parts := range rows {
		lines[i] = style.Bold(true).Render(strings.Join(parts, " "))
	}
	return strings.Join(lines, "\n")
}
