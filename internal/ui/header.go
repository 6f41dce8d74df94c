package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/dnsdeck/internal/notify"
	"github.com/five82/dnsdeck/internal/resolvex"
	"github.com/five82/dnsdeck/internal/syncer"
)

const logoText = "dnsdeck"

// renderHeader renders the status line with aggregates and sync health.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	sep := bg.Spaces(2)

	parts := []string{bg.Render(logoText, styles.Logo)}

	if !m.snapshot.HasData {
		parts = append(parts, m.connectingParts(styles, bg)...)
	} else {
		snap := m.snapshot
		parts = append(parts,
			bg.Render("Values", styles.FaintText)+bg.Space()+
				bg.Render(fmt.Sprintf("%d/%d", snap.UniqueValues, snap.TotalValues), styles.AccentText),
			bg.Render("Domains", styles.FaintText)+bg.Space()+
				bg.Render(fmt.Sprintf("%d", snap.Domains), styles.AccentText),
			bg.Render("Resolved", styles.FaintText)+bg.Space()+
				bg.Render(fmt.Sprintf("%d/%d", snap.Resolved, snap.RecordCount), styles.AccentText),
		)
		if snap.IsOffline() {
			parts = append(parts, bg.Render("OFFLINE", styles.DangerText))
		} else if snap.LastError != nil {
			parts = append(parts, bg.Render("Sync failed", styles.WarningText))
		}
		if !snap.LastUpdated.IsZero() {
			parts = append(parts, bg.Render(snap.LastUpdated.Format("15:04:05"), styles.MutedText))
		}
	}

	if m.phase == syncer.PhaseFetching {
		parts = append(parts, bg.Render("Syncing", styles.AccentText))
	}

	if m.inFlight > 0 {
		parts = append(parts,
			bg.Render(m.spinner.View(), styles.SuccessText)+bg.Space()+
				bg.Render(fmt.Sprintf("%d in flight", m.inFlight), styles.MutedText))
	}

	return styles.Header.Width(m.width).Render(bg.Join(parts, sep))
}

// connectingParts describes why no data is shown yet.
func (m Model) connectingParts(styles Styles, bg BgStyle) []string {
	api := m.apiURL
	if api == "" {
		api = "API"
	}
	if m.snapshot.LastError == nil {
		return []string{bg.Render("Connecting to "+api+"...", styles.WarningText.Bold(true))}
	}
	parts := []string{
		bg.Render(classifyError(m.snapshot.LastError), styles.DangerText),
		bg.Render("Retrying...", styles.WarningText.Bold(true)),
	}
	if m.logPath != "" {
		parts = append(parts,
			bg.Render("logs", styles.FaintText)+bg.Space()+
				bg.Render(truncateMiddle(m.logPath, 50), styles.MutedText))
	}
	return parts
}

// classifyError gives a short label for a sync failure.
func classifyError(err error) string {
	switch {
	case resolvex.IsTransportError(err):
		return "API unreachable"
	case resolvex.IsServerError(err):
		return "API error"
	default:
		return "Sync error"
	}
}

// renderCommandBar renders the key hints, or the filter input while editing.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	if m.filtering {
		return styles.Footer.Width(m.width).Render(m.filterInput.View())
	}

	type cmd struct{ key, desc string }
	commands := []cmd{
		{"r", "Refresh"},
		{"a", "Add"},
		{"e", "Rename"},
		{"d", "Delete"},
		{"/", "Filter"},
		{"j/k", "Navigate"},
		{"T", "Theme"},
		{"?", "More"},
		{"q", "Quit"},
	}

	colon := bg.Sep(":")
	sep := bg.Spaces(2)

	segments := make([]string, 0, len(commands)+1)
	for _, c := range commands {
		segments = append(segments,
			bg.Render(c.key, styles.AccentText)+colon+bg.Render(c.desc, styles.MutedText))
	}
	if filter := m.predicate.String(); filter != "" {
		segments = append(segments, bg.Render("/"+truncate(filter, 18), styles.AccentText))
	}

	return styles.Footer.Width(m.width).Render(strings.Join(segments, sep))
}

// renderAlerts renders one line per live alert, oldest first.
func (m Model) renderAlerts() []string {
	if len(m.alerts) == 0 {
		return nil
	}
	styles := m.theme.Styles()
	lines := make([]string, 0, len(m.alerts))
	for _, a := range m.alerts {
		badge := styles.AlertStyle(a.Kind).Render(alertLabel(a.Kind))
		room := max(m.width-lipgloss.Width(badge)-1, 1)
		text := truncate(strings.ReplaceAll(a.Text(), "\n", " "), room)
		line := badge + " " + alertTextStyle(styles, a.Kind).Render(text)
		lines = append(lines, lipgloss.NewStyle().Width(m.width).Render(line))
	}
	return lines
}

func alertLabel(kind notify.Kind) string {
	if kind == notify.KindSuccess {
		return "OK"
	}
	return "ERROR"
}

func alertTextStyle(styles Styles, kind notify.Kind) lipgloss.Style {
	if kind == notify.KindSuccess {
		return styles.Text
	}
	return styles.DangerText
}
