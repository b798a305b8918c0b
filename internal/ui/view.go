package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// header, column titles, footer
const chromeHeight = 3

const maxColumnWidth = 28

func (m Model) visibleRows() int {
	return max(1, m.height-chromeHeight)
}

func (m Model) renderMain() string {
	var body string
	switch m.currentView {
	case ViewForm:
		body = m.renderForm()
	case ViewLogs:
		body = m.logViewport.View()
	default:
		body = m.renderTable()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		body,
		m.renderFooter(),
	)
}

func (m Model) renderHeader() string {
	styles := m.theme.Styles()

	snap := m.snapshot
	if snap.Target == "" {
		snap.Target = m.endpoint.Address()
	}
	status := styles.WarningText.Render(snap.Status())
	switch {
	case snap.Checked && snap.Connected:
		status = styles.SuccessText.Render(snap.Status())
	case snap.Checked:
		status = styles.DangerText.Render(snap.Status())
	}

	left := styles.AccentText.Bold(true).Render("Roster") + "  " + status
	right := styles.MutedText.Render(fmt.Sprintf("%s schema", m.endpoint.Schema.Name()))
	if m.filter != "" {
		right = styles.InfoText.Render("filter: "+m.filter) + "  " + right
	}

	gap := max(1, m.width-lipgloss.Width(left)-lipgloss.Width(right)-2)
	return styles.Header.Width(m.width).Render(left + strings.Repeat(" ", gap) + right)
}

func (m Model) renderFooter() string {
	styles := m.theme.Styles()
	var hints string
	switch m.currentView {
	case ViewForm:
		hints = "tab next field · enter on last field or ctrl+s add · esc back"
	case ViewLogs:
		hints = "j/k scroll · g/G top/bottom · esc back"
	default:
		hints = "a add · e edit · space mark · d delete · r refresh · s server · ? help · q quit"
	}
	if m.status != "" {
		hints = m.status + "  │  " + hints
	}
	return styles.Footer.Width(m.width).Render(hints)
}

func (m Model) renderForm() string {
	styles := m.theme.Styles()
	title := styles.AccentText.Bold(true).Render("Add employee")
	return lipgloss.NewStyle().Padding(1, 2).Render(
		lipgloss.JoinVertical(lipgloss.Left, title, "", m.addForm.View(styles)),
	)
}

// columnWidths sizes each column to its widest cell, capped.
func columnWidths(titles []string, rows [][]string) []int {
	widths := make([]int, len(titles))
	for i, title := range titles {
		widths[i] = lipgloss.Width(title)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) {
				widths[i] = max(widths[i], lipgloss.Width(cell))
			}
		}
	}
	for i := range widths {
		widths[i] = min(widths[i], maxColumnWidth)
	}
	return widths
}

func renderCells(cells []string, widths []int) string {
	parts := make([]string, len(widths))
	for i, w := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		parts[i] = lipgloss.NewStyle().Width(w).MaxWidth(w).Render(cell)
	}
	return strings.Join(parts, "  ")
}

func (m Model) renderTable() string {
	styles := m.theme.Styles()
	schema := m.endpoint.Schema
	titles := schema.Columns()

	recs := m.table.Rows()
	rows := make([][]string, len(recs))
	for i, rec := range recs {
		rows[i] = schema.Row(rec)
	}
	widths := columnWidths(titles, rows)

	var b strings.Builder
	b.WriteString("  ")
	b.WriteString(styles.ColumnHeader.Render(renderCells(titles, widths)))

	if len(rows) == 0 {
		b.WriteString("\n")
		b.WriteString(styles.FaintText.Render("  No employees. Press a to add one or r to refresh."))
		return m.padBody(b.String())
	}

	visible := m.visibleRows()
	offset := 0
	if cursor := m.table.Cursor(); cursor >= visible {
		offset = cursor - visible + 1
	}
	end := min(len(rows), offset+visible)

	for i := offset; i < end; i++ {
		b.WriteString("\n")
		mark := "  "
		if m.table.Marked(i) {
			mark = styles.Marked.Render("* ")
		}
		line := renderCells(rows[i], widths)
		if i == m.table.Cursor() {
			line = styles.Selected.Render(line)
		} else {
			line = styles.Text.Render(line)
		}
		b.WriteString(mark + line)
	}
	return m.padBody(b.String())
}

// padBody fills the body area so the footer sits on the last line.
func (m Model) padBody(body string) string {
	lines := strings.Count(body, "\n") + 1
	want := m.height - 2
	if lines < want {
		body += strings.Repeat("\n", want-lines)
	}
	return body
}

// overlay centers content on the screen.
func (m Model) overlay(content string) string {
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}
