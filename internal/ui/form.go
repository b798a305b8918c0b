package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// form is a vertical list of labelled text inputs. It backs both the add
// view and the row editor.
type form struct {
	labels []string
	inputs []textinput.Model
	focus  int
}

func newForm(labels []string, values []string) form {
	f := form{labels: labels, inputs: make([]textinput.Model, len(labels))}
	for i, label := range labels {
		in := textinput.New()
		in.Placeholder = label
		in.Prompt = ""
		in.CharLimit = 256
		in.Width = 40
		if i < len(values) {
			in.SetValue(values[i])
		}
		f.inputs[i] = in
	}
	if len(f.inputs) > 0 {
		f.inputs[0].Focus()
	}
	return f
}

// Values returns the current input values in label order.
func (f form) Values() []string {
	out := make([]string, len(f.inputs))
	for i, in := range f.inputs {
		out[i] = in.Value()
	}
	return out
}

// Reset clears every input and focuses the first.
func (f *form) Reset() {
	for i := range f.inputs {
		f.inputs[i].SetValue("")
	}
	f.setFocus(0)
}

func (f *form) setFocus(i int) {
	if len(f.inputs) == 0 {
		return
	}
	i = (i%len(f.inputs) + len(f.inputs)) % len(f.inputs)
	f.inputs[f.focus].Blur()
	f.focus = i
	f.inputs[f.focus].Focus()
}

// Update handles navigation and typing. submitted reports that the user
// finished the form: enter on the last field, or ctrl+s anywhere.
func (f form) Update(msg tea.KeyMsg, keys keyMap) (form, tea.Cmd, bool) {
	switch {
	case key.Matches(msg, keys.Submit):
		return f, nil, true
	case msg.Type == tea.KeyEnter:
		if f.focus == len(f.inputs)-1 {
			return f, nil, true
		}
		f.setFocus(f.focus + 1)
		return f, nil, false
	case key.Matches(msg, keys.NextField):
		f.setFocus(f.focus + 1)
		return f, nil, false
	case key.Matches(msg, keys.PrevField):
		f.setFocus(f.focus - 1)
		return f, nil, false
	}

	if len(f.inputs) == 0 {
		return f, nil, false
	}
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return f, cmd, false
}

func (f form) View(styles Styles) string {
	width := 0
	for _, label := range f.labels {
		width = max(width, lipgloss.Width(label))
	}

	var b strings.Builder
	for i, label := range f.labels {
		labelStyle := styles.MutedText
		if i == f.focus {
			labelStyle = styles.FocusedLabel
		}
		b.WriteString(labelStyle.Width(width + 2).Render(label))
		b.WriteString(f.inputs[i].View())
		if i < len(f.labels)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}
