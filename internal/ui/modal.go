package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Modal is the interface for modal dialogs.
// The Update method returns the updated modal, a command, and a bool indicating if the modal should close.
type Modal interface {
	Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool)
	View(theme Theme, width, height int) string
}

// confirmModal asks a yes/no question and reports the answer on reply.
type confirmModal struct {
	prompt string
	reply  chan<- bool
}

func newConfirmModal(prompt string, reply chan<- bool) *confirmModal {
	return &confirmModal{prompt: prompt, reply: reply}
}

func (c *confirmModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil, false
	}
	switch {
	case key.Matches(kmsg, keys.Yes):
		c.answer(true)
		return c, nil, true
	case key.Matches(kmsg, keys.No), kmsg.String() == "ctrl+c":
		c.answer(false)
		return c, nil, true
	}
	return c, nil, false
}

// answer delivers at most one reply. The channel is buffered by the bridge.
func (c *confirmModal) answer(yes bool) {
	if c.reply == nil {
		return
	}
	c.reply <- yes
	c.reply = nil
}

func (c *confirmModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()
	body := styles.Text.Bold(true).Render(c.prompt) + "\n\n" +
		styles.WarningText.Render("y") + styles.MutedText.Render(" yes   ") +
		styles.WarningText.Render("n") + styles.MutedText.Render(" no")
	return placeModal(theme, width, height, body, theme.Danger)
}

// promptKind tells the model what to do with a submitted prompt.
type promptKind int

const (
	promptAdd promptKind = iota
	promptEdit
)

// promptModal collects one line of text.
type promptModal struct {
	kind   promptKind
	title  string
	target string // domain being renamed
	input  textinput.Model
	value  string
	done   bool
}

func newPromptModal(kind promptKind, title, initial, target string) *promptModal {
	in := textinput.New()
	in.Placeholder = "example.com"
	in.CharLimit = 253
	in.SetValue(initial)
	in.CursorEnd()
	in.Focus()
	return &promptModal{kind: kind, title: title, target: target, input: in}
}

func (p *promptModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(kmsg, keys.Confirm):
			p.value = strings.TrimSpace(p.input.Value())
			p.done = true
			return p, nil, true
		case key.Matches(kmsg, keys.Escape), kmsg.String() == "ctrl+c":
			return p, nil, true
		}
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd, false
}

// Submitted returns the entered value and whether the prompt was accepted.
func (p *promptModal) Submitted() (string, bool) {
	return p.value, p.done
}

func (p *promptModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()
	p.input.Width = min(48, max(10, width-16))
	p.input.PromptStyle = styles.AccentText
	p.input.TextStyle = styles.Text
	body := styles.Text.Bold(true).Render(p.title) + "\n\n" +
		p.input.View() + "\n\n" +
		styles.WarningText.Render("enter") + styles.MutedText.Render(" save   ") +
		styles.WarningText.Render("esc") + styles.MutedText.Render(" cancel")
	return placeModal(theme, width, height, body, theme.Accent)
}

// placeModal centers a bordered box over the screen.
func placeModal(theme Theme, width, height int, body, border string) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(border)).
		Padding(1, 2).
		Render(body)
	return lipgloss.Place(
		width,
		height,
		lipgloss.Center,
		lipgloss.Center,
		box,
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(theme.Background)),
	)
}
