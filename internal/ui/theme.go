package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/dnsdeck/internal/notify"
)

// Theme is a named palette.
type Theme struct {
	Name string

	Background string
	Surface    string
	SurfaceAlt string
	FocusBg    string

	SelectionBg   string
	SelectionText string

	Border      string
	BorderFocus string

	Text    string
	Muted   string
	Faint   string
	Accent  string
	Success string
	Warning string
	Danger  string

	// AlertColors holds badge backgrounds keyed by alert kind.
	AlertColors map[notify.Kind]string
}

// Styles holds the lipgloss styles derived from a Theme.
type Styles struct {
	Text        lipgloss.Style
	MutedText   lipgloss.Style
	FaintText   lipgloss.Style
	AccentText  lipgloss.Style
	SuccessText lipgloss.Style
	WarningText lipgloss.Style
	DangerText  lipgloss.Style

	Header   lipgloss.Style
	Footer   lipgloss.Style
	Logo     lipgloss.Style
	Selected lipgloss.Style

	alertColors map[notify.Kind]string
	badgeText   string
	fallback    string
}

// Styles builds the style set for t.
func (t Theme) Styles() Styles {
	fg := func(c string) lipgloss.Style { return lipgloss.NewStyle().Foreground(lipgloss.Color(c)) }
	bar := lipgloss.NewStyle().Background(lipgloss.Color(t.Surface)).Padding(0, 1)

	return Styles{
		Text:        fg(t.Text),
		MutedText:   fg(t.Muted),
		FaintText:   fg(t.Faint),
		AccentText:  fg(t.Accent),
		SuccessText: fg(t.Success).Bold(true),
		WarningText: fg(t.Warning),
		DangerText:  fg(t.Danger).Bold(true),

		Header:   bar.Foreground(lipgloss.Color(t.Text)),
		Footer:   bar.Foreground(lipgloss.Color(t.Muted)),
		Logo:     fg(t.Warning).Bold(true),
		Selected: fg(t.SelectionText).Background(lipgloss.Color(t.SelectionBg)),

		alertColors: t.AlertColors,
		badgeText:   t.Background,
		fallback:    t.Muted,
	}
}

// AlertStyle returns the badge style for an alert kind.
func (s Styles) AlertStyle(kind notify.Kind) lipgloss.Style {
	color, ok := s.alertColors[kind]
	if !ok {
		color = s.fallback
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(s.badgeText)).
		Background(lipgloss.Color(color)).
		Padding(0, 1)
}

// WithBackground returns a copy whose text styles paint bgColor explicitly,
// so nested renders do not punch holes in bars.
func (s Styles) WithBackground(bgColor string) Styles {
	bg := lipgloss.Color(bgColor)
	out := s
	for _, st := range []*lipgloss.Style{
		&out.Text, &out.MutedText, &out.FaintText, &out.AccentText,
		&out.SuccessText, &out.WarningText, &out.DangerText,
		&out.Header, &out.Footer, &out.Logo,
	} {
		*st = st.Background(bg)
	}
	return out
}

// themeList is the cycle order for the theme key.
var themeList = []Theme{
	palette("Nightfox", "#131a24", "#192330", "#212e3f", "#29394f", "#2b3b51", "#39506d",
		"#cdcecf", "#738091", "#71839b", "#719cd6", "#81b29a", "#dbc074", "#c94f6d"),
	palette("Kanagawa", "#16161D", "#1F1F28", "#2A2A37", "#2A2A37", "#2D4F67", "#54546D",
		"#DCD7BA", "#C8C093", "#727169", "#7E9CD8", "#98BB6C", "#E6C384", "#E46876"),
	palette("Slate", "#020617", "#0f172a", "#1e293b", "#283548", "#0284c7", "#334155",
		"#f1f5f9", "#94a3b8", "#64748b", "#38bdf8", "#22c55e", "#f59e0b", "#ef4444"),
}

func palette(name, background, surface, surfaceAlt, focus, selection, border,
	text, muted, faint, accent, success, warning, danger string) Theme {
	return Theme{
		Name:          name,
		Background:    background,
		Surface:       surface,
		SurfaceAlt:    surfaceAlt,
		FocusBg:       focus,
		SelectionBg:   selection,
		SelectionText: text,
		Border:        border,
		BorderFocus:   accent,
		Text:          text,
		Muted:         muted,
		Faint:         faint,
		Accent:        accent,
		Success:       success,
		Warning:       warning,
		Danger:        danger,
		AlertColors: map[notify.Kind]string{
			notify.KindSuccess: success,
			notify.KindFailure: danger,
		},
	}
}

// GetTheme returns the named theme, or the first theme when name is unknown.
func GetTheme(name string) Theme {
	for _, t := range themeList {
		if t.Name == name {
			return t
		}
	}
	return themeList[0]
}

// NextTheme returns the theme after current in the cycle.
func NextTheme(current string) string {
	for i, t := range themeList {
		if t.Name == current {
			return themeList[(i+1)%len(themeList)].Name
		}
	}
	return themeList[0].Name
}

// ThemeNames lists the themes in cycle order.
func ThemeNames() []string {
	names := make([]string, len(themeList))
	for i, t := range themeList {
		names[i] = t.Name
	}
	return names
}
