package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// BgStyle paints every cell of a bar segment, spaces included. Styled
// segments end in an ANSI reset, so unstyled gaps between them would show
// the terminal background.
type BgStyle struct {
	bg    lipgloss.Color
	fill  lipgloss.Style
	space string
}

// NewBgStyle returns a BgStyle for bgColor.
func NewBgStyle(bgColor string) BgStyle {
	bg := lipgloss.Color(bgColor)
	fill := lipgloss.NewStyle().Background(bg)
	return BgStyle{bg: bg, fill: fill, space: fill.Render(" ")}
}

// Render styles text word by word on the background, joining with painted
// spaces.
func (b BgStyle) Render(text string, style lipgloss.Style) string {
	if text == "" {
		return ""
	}
	style = style.Background(b.bg)
	words := strings.Split(text, " ")
	for i, w := range words {
		if w != "" {
			words[i] = style.Render(w)
		}
	}
	return strings.Join(words, b.space)
}

// Space is one painted space.
func (b BgStyle) Space() string { return b.space }

// Spaces is n painted spaces.
func (b BgStyle) Spaces(n int) string { return b.fill.Render(strings.Repeat(" ", n)) }

// Sep paints a literal separator.
func (b BgStyle) Sep(sep string) string { return b.fill.Render(sep) }

// Join joins parts with an already-rendered separator.
func (b BgStyle) Join(parts []string, sep string) string { return strings.Join(parts, sep) }

// Color is the background color.
func (b BgStyle) Color() lipgloss.Color { return b.bg }
