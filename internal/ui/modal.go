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
	Update(msg tea.KeyMsg, keys keyMap) (Modal, tea.Cmd, bool)
	View(styles Styles) string
}

type severity int

const (
	severityInfo severity = iota
	severityWarning
)

// messageModal shows a title and body until any key is pressed.
type messageModal struct {
	severity severity
	title    string
	body     string
}

func warningModal(title, body string) Modal {
	return messageModal{severity: severityWarning, title: title, body: body}
}

func infoModal(title, body string) Modal {
	return messageModal{severity: severityInfo, title: title, body: body}
}

func (m messageModal) Update(tea.KeyMsg, keyMap) (Modal, tea.Cmd, bool) {
	return m, nil, true
}

func (m messageModal) View(styles Styles) string {
	titleStyle := styles.InfoText.Bold(true)
	if m.severity == severityWarning {
		titleStyle = styles.WarningText.Bold(true)
	}
	body := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(m.title),
		"",
		styles.Text.Render(m.body),
		"",
		styles.FaintText.Render("press any key"),
	)
	return styles.Modal.Render(body)
}

// confirmModal asks a yes/no question and runs onYes when confirmed.
type confirmModal struct {
	title string
	body  string
	onYes tea.Cmd
}

func (m confirmModal) Update(msg tea.KeyMsg, keys keyMap) (Modal, tea.Cmd, bool) {
	switch {
	case key.Matches(msg, keys.Confirm):
		return m, m.onYes, true
	case key.Matches(msg, keys.Deny):
		return m, nil, true
	}
	return m, nil, false
}

func (m confirmModal) View(styles Styles) string {
	body := lipgloss.JoinVertical(lipgloss.Left,
		styles.WarningText.Bold(true).Render(m.title),
		"",
		styles.Text.Render(m.body),
		"",
		styles.MutedText.Render("y confirm · n cancel"),
	)
	return styles.Modal.Render(body)
}

// promptModal reads one line of text.
type promptModal struct {
	title  string
	hint   string
	input  textinput.Model
	submit func(string) tea.Msg
}

func newPromptModal(title, hint, value string, submit func(string) tea.Msg) promptModal {
	in := textinput.New()
	in.Prompt = "> "
	in.CharLimit = 256
	in.Width = 40
	in.SetValue(value)
	in.CursorEnd()
	in.Focus()
	return promptModal{title: title, hint: hint, input: in, submit: submit}
}

func (m promptModal) Update(msg tea.KeyMsg, keys keyMap) (Modal, tea.Cmd, bool) {
	switch {
	case msg.Type == tea.KeyEnter:
		value := strings.TrimSpace(m.input.Value())
		submit := m.submit
		return m, func() tea.Msg { return submit(value) }, true
	case key.Matches(msg, keys.Escape):
		return m, nil, true
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd, false
}

func (m promptModal) View(styles Styles) string {
	parts := []string{
		styles.AccentText.Bold(true).Render(m.title),
		"",
		m.input.View(),
	}
	if m.hint != "" {
		parts = append(parts, "", styles.FaintText.Render(m.hint))
	}
	return styles.Modal.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

// editorModal edits one table row.
type editorModal struct {
	row  int
	id   string
	form form
}

// editorSubmitMsg carries edited values for the row that held id.
type editorSubmitMsg struct {
	row    int
	id     string
	values []string
}

func (m editorModal) Update(msg tea.KeyMsg, keys keyMap) (Modal, tea.Cmd, bool) {
	if key.Matches(msg, keys.Escape) {
		return m, nil, true
	}
	var (
		cmd  tea.Cmd
		done bool
	)
	m.form, cmd, done = m.form.Update(msg, keys)
	if done {
		submitted := editorSubmitMsg{row: m.row, id: m.id, values: m.form.Values()}
		return m, func() tea.Msg { return submitted }, true
	}
	return m, cmd, false
}

func (m editorModal) View(styles Styles) string {
	body := lipgloss.JoinVertical(lipgloss.Left,
		styles.AccentText.Bold(true).Render("Edit employee "+m.id),
		"",
		m.form.View(styles),
		"",
		styles.FaintText.Render("tab next · enter on last field or ctrl+s save · esc cancel"),
	)
	return styles.Modal.Render(body)
}
