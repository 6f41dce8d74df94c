package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/dnsdeck/internal/resolvex"
	"github.com/five82/dnsdeck/internal/view"
)

// Fixed column widths.
const (
	colCountWidth  = 9
	colExpireWidth = 19
	colGap         = 2
)

// visibleRecords returns the snapshot records matching the current filter.
func (m Model) visibleRecords() []resolvex.Record {
	return m.predicate.Apply(m.snapshot.Records)
}

// clampSelection keeps the cursor and scroll offset inside the filtered list.
func (m *Model) clampSelection() {
	count := len(m.visibleRecords())
	if count == 0 {
		m.selectedRow = 0
		m.offset = 0
		return
	}
	if m.selectedRow >= count {
		m.selectedRow = count - 1
	}
	if m.selectedRow < 0 {
		m.selectedRow = 0
	}
	m.ensureVisible()
}

// selectDomain moves the cursor to domain if it is visible, otherwise clamps.
func (m *Model) selectDomain(domain string) {
	if domain != "" {
		for i, r := range m.visibleRecords() {
			if r.Domain == domain {
				m.selectedRow = i
				m.ensureVisible()
				return
			}
		}
	}
	m.clampSelection()
}

// tableRows is the number of record rows that fit in the records box.
func (m Model) tableRows() int {
	rows := m.height - 2 - len(m.alerts) - 3 // header, cmdbar, toasts, borders, column header
	return max(rows, 1)
}

func (m *Model) ensureVisible() {
	rows := m.tableRows()
	if m.selectedRow < m.offset {
		m.offset = m.selectedRow
	}
	if m.selectedRow >= m.offset+rows {
		m.offset = m.selectedRow - rows + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

// handleTableKey processes navigation keys for the records table.
func (m *Model) handleTableKey(msg tea.KeyMsg) {
	count := len(m.visibleRecords())
	if count == 0 {
		return
	}
	half := max(m.tableRows()/2, 1)

	switch {
	case key.Matches(msg, m.keys.Down):
		if m.selectedRow < count-1 {
			m.selectedRow++
		}
	case key.Matches(msg, m.keys.Up):
		if m.selectedRow > 0 {
			m.selectedRow--
		}
	case key.Matches(msg, m.keys.Top):
		m.selectedRow = 0
	case key.Matches(msg, m.keys.Bottom):
		m.selectedRow = count - 1
	case key.Matches(msg, m.keys.HalfPageDown):
		m.selectedRow = min(m.selectedRow+half, count-1)
	case key.Matches(msg, m.keys.HalfPageUp):
		m.selectedRow = max(m.selectedRow-half, 0)
	default:
		return
	}
	m.ensureVisible()
}

// renderRecords renders the records box filling height rows.
func (m Model) renderRecords(height int) string {
	styles := m.theme.Styles()
	height = max(height, 3)

	if !m.snapshot.HasData {
		msg := "Waiting for first sync..."
		if m.snapshot.LastError != nil {
			msg = "No data yet"
		}
		return lipgloss.Place(m.width, height, lipgloss.Center, lipgloss.Center, styles.MutedText.Render(msg))
	}

	records := m.visibleRecords()
	title := m.recordsTitle(len(records))
	content := m.renderTable(records, m.width-2, height-2)
	return m.renderTitledBox(title, content, m.width, height, true)
}

func (m Model) recordsTitle(shown int) string {
	total := len(m.snapshot.Records)
	if filter := m.predicate.String(); filter != "" {
		return fmt.Sprintf("Records %d/%d matching %q", shown, total, filter)
	}
	return fmt.Sprintf("Records %d", total)
}

// renderTable renders the column header and the visible window of rows.
func (m Model) renderTable(records []resolvex.Record, width, rows int) string {
	styles := m.theme.Styles().WithBackground(m.theme.FocusBg)
	if len(records) == 0 {
		return styles.MutedText.Render("No matching domains")
	}

	compact := width < LayoutCompactWidth
	nameWidth, valuesWidth := m.columnWidths(width, compact)

	header := m.formatRow("Domain", "Uniq/All", "Addresses", "Expires", nameWidth, valuesWidth, compact)
	lines := []string{styles.FaintText.Bold(true).Width(width).Render(header)}

	end := min(m.offset+max(rows-1, 0), len(records))
	for i := m.offset; i < end; i++ {
		r := records[i]
		row := m.formatRow(
			view.DisplayName(r.Domain),
			fmt.Sprintf("%d/%d", m.snapshot.UniqueFor(r), r.ValueCount()),
			view.FormatValues(r.Record),
			view.FormatExpire(r.Expire),
			nameWidth, valuesWidth, compact,
		)
		style := styles.Text
		if i == m.selectedRow {
			style = styles.Selected.Background(lipgloss.Color(m.theme.SelectionBg))
		}
		lines = append(lines, style.Width(width).Render(row))
	}
	return strings.Join(lines, "\n")
}

func (m Model) columnWidths(width int, compact bool) (nameWidth, valuesWidth int) {
	fixed := colCountWidth + colGap
	if !compact {
		fixed += colExpireWidth + colGap
	}
	rest := max(width-fixed, 10)
	if compact {
		return rest, 0
	}
	nameWidth = rest * 45 / 100
	valuesWidth = rest - nameWidth - colGap
	return nameWidth, max(valuesWidth, 0)
}

func (m Model) formatRow(name, count, values, expire string, nameWidth, valuesWidth int, compact bool) string {
	gap := strings.Repeat(" ", colGap)
	parts := []string{
		padRight(truncate(name, nameWidth), nameWidth),
		padRight(count, colCountWidth),
	}
	if !compact {
		parts = append(parts,
			padRight(truncate(values, valuesWidth), valuesWidth),
			padRight(expire, colExpireWidth))
	}
	return strings.Join(parts, gap)
}

// renderTitledBox draws a bordered box with the title embedded in the top border.
func (m Model) renderTitledBox(title, content string, width, height int, focused bool) string {
	var borderColorStr, bgColorStr string
	if focused {
		borderColorStr = m.theme.BorderFocus
		bgColorStr = m.theme.FocusBg
	} else {
		borderColorStr = m.theme.Border
		bgColorStr = m.theme.SurfaceAlt
	}
	bg := NewBgStyle(bgColorStr)
	borderStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(borderColorStr))
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.Text))

	innerWidth := width - 2
	title = truncate(title, max(innerWidth-4, 1))
	titleLen := lipgloss.Width(title)
	leftPad := max((innerWidth-titleLen-2)/2, 0)
	rightPad := max(innerWidth-titleLen-2-leftPad, 0)

	topBorder := bg.Render("┌", borderStyle) +
		bg.Render(strings.Repeat("─", leftPad), borderStyle) +
		bg.Render(" "+title+" ", titleStyle) +
		bg.Render(strings.Repeat("─", rightPad), borderStyle) +
		bg.Render("┐", borderStyle)

	bottomBorder := bg.Render("└", borderStyle) +
		bg.Render(strings.Repeat("─", max(innerWidth, 0)), borderStyle) +
		bg.Render("┘", borderStyle)

	contentStyle := lipgloss.NewStyle().Width(innerWidth).Background(bg.Color())

	contentLines := strings.Split(content, "\n")
	boxHeight := height - 2

	paddedLines := make([]string, 0, boxHeight)
	for i := 0; i < boxHeight; i++ {
		var line string
		if i < len(contentLines) {
			line = contentLines[i]
		}
		paddedLines = append(paddedLines,
			bg.Render("│", borderStyle)+
				contentStyle.Render(line)+
				bg.Render("│", borderStyle))
	}

	return topBorder + "\n" + strings.Join(paddedLines, "\n") + "\n" + bottomBorder
}
