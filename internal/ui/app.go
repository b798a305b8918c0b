package ui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"github.com/five82/roster/internal/api"
	"github.com/five82/roster/internal/employee"
	"github.com/five82/roster/internal/prefs"
	"github.com/five82/roster/internal/records"
	"github.com/five82/roster/internal/state"
)

// View represents the current active view.
type View int

const (
	ViewTable View = iota
	ViewForm
	ViewLogs
)

const logTailLines = 400

// Retargeter moves connectivity polling to a new endpoint.
type Retargeter interface {
	Retarget(ep api.Endpoint)
}

// Options configures the UI.
type Options struct {
	Context  context.Context
	Service  api.Service
	Endpoint api.Endpoint
	Store    *state.Store
	Poller   Retargeter
	PollTick time.Duration
	Settings prefs.Settings
	LogFile  string
	Now      func() time.Time
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx      context.Context
	service  api.Service
	endpoint api.Endpoint
	store    *state.Store
	poller   Retargeter
	pollTick time.Duration
	logFile  string
	now      func() time.Time
	keys     keyMap

	// UI state
	theme       Theme
	darkMode    bool
	settings    prefs.Settings
	currentView View
	width       int
	height      int
	ready       bool
	showHelp    bool
	modal       Modal
	status      string

	// Data state
	snapshot state.Snapshot
	table    *records.Table
	filter   string

	addForm     form
	logViewport viewport.Model
	logLines    []string
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	pollTick := opts.PollTick
	if pollTick <= 0 {
		pollTick = time.Second
	}

	now := opts.Now
	if now == nil {
		now = time.Now
	}

	dark := true
	if opts.Settings.DarkMode != nil {
		dark = *opts.Settings.DarkMode
	}

	schema := opts.Endpoint.Schema
	if schema == nil {
		schema = employee.Structured
		opts.Endpoint.Schema = schema
	}

	m := Model{
		ctx:         ctx,
		service:     opts.Service,
		endpoint:    opts.Endpoint,
		store:       opts.Store,
		poller:      opts.Poller,
		pollTick:    pollTick,
		logFile:     opts.LogFile,
		now:         now,
		keys:        DefaultKeyMap(),
		theme:       ThemeFor(dark),
		darkMode:    dark,
		settings:    opts.Settings,
		currentView: ViewTable,
		table:       records.New(),
		addForm:     newForm(employee.FormColumns(schema), nil),
		logViewport: viewport.New(0, 0),
	}
	if size := opts.Settings.WindowSize; size != nil {
		m.width, m.height = size[0], size[1]
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tickCmd(m.pollTick),
		m.refreshCmd(),
	}
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	return tea.Batch(cmds...)
}

// Settings returns the values to persist when the program exits.
func (m Model) Settings() prefs.Settings {
	s := m.settings
	s.DarkMode = prefs.Bool(m.darkMode)
	if addr := m.endpoint.Address(); addr != "" {
		s.ServerURL = prefs.String(addr)
	}
	return s
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.settings.WindowSize = prefs.Size(msg.Width, msg.Height)
		m.resizeLogViewport()
		return m, nil

	case tickMsg:
		return m.handleTick()

	case snapshotMsg:
		m.snapshot = state.Snapshot(msg)
		return m, nil

	case fetchedMsg:
		return m.handleFetched(msg)

	case createdMsg:
		return m.handleCreated(msg)

	case updatedMsg:
		return m.handleUpdated(msg)

	case deletedMsg:
		return m.handleDeleted(msg)

	case editorSubmitMsg:
		return m.handleEditorSubmit(msg)

	case serverSubmitMsg:
		return m.handleServerSubmit(string(msg))

	case filterSubmitMsg:
		m.filter = string(msg)
		return m, m.refreshCmd()

	case logTailMsg:
		m.handleLogTail(msg)
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.showHelp {
		return m.overlay(m.renderHelp())
	}

	if m.modal != nil {
		return m.overlay(m.modal.View(m.theme.Styles()))
	}

	return m.renderMain()
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	if m.modal != nil {
		modal, cmd, done := m.modal.Update(msg, m.keys)
		if done {
			m.modal = nil
		} else {
			m.modal = modal
		}
		return m, cmd
	}

	switch m.currentView {
	case ViewForm:
		return m.handleFormKey(msg)
	case ViewLogs:
		return m.handleLogsKey(msg)
	}
	return m.handleTableKey(msg)
}

func (m Model) handleTableKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.DarkMode):
		m.darkMode = !m.darkMode
		m.theme = ThemeFor(m.darkMode)
		return m, nil

	case key.Matches(msg, m.keys.AddForm):
		m.currentView = ViewForm
		return m, nil

	case key.Matches(msg, m.keys.Logs):
		m.currentView = ViewLogs
		return m, logTailCmd(m.logFile, logTailLines)

	case key.Matches(msg, m.keys.Refresh):
		return m, m.refreshCmd()

	case key.Matches(msg, m.keys.Filter):
		if m.endpoint.Schema.Name() != employee.SchemaStructured {
			m.modal = infoModal("Filter unavailable", "Filtering by employee id needs the structured schema.")
			return m, nil
		}
		m.modal = newPromptModal("Filter by employee id", "leave empty to show everyone", m.filter, func(v string) tea.Msg {
			return filterSubmitMsg(v)
		})
		return m, nil

	case key.Matches(msg, m.keys.Server):
		m.modal = newPromptModal("Server address", "host:port or URL", m.endpoint.Address(), func(v string) tea.Msg {
			return serverSubmitMsg(v)
		})
		return m, nil

	case key.Matches(msg, m.keys.Edit):
		return m.openEditor()

	case key.Matches(msg, m.keys.Mark):
		m.table.ToggleMark(m.table.Cursor())
		m.table.MoveCursor(1)
		return m, nil

	case key.Matches(msg, m.keys.Delete):
		return m.confirmDelete()

	case key.Matches(msg, m.keys.Up):
		m.table.MoveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		m.table.MoveCursor(1)
	case key.Matches(msg, m.keys.Top):
		m.table.SetCursor(0)
	case key.Matches(msg, m.keys.Bottom):
		m.table.SetCursor(m.table.Len() - 1)
	case key.Matches(msg, m.keys.PageUp):
		m.table.MoveCursor(-m.visibleRows())
	case key.Matches(msg, m.keys.PageDown):
		m.table.MoveCursor(m.visibleRows())
	}
	return m, nil
}

func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Escape) {
		m.currentView = ViewTable
		return m, nil
	}

	var (
		cmd  tea.Cmd
		done bool
	)
	m.addForm, cmd, done = m.addForm.Update(msg, m.keys)
	if !done {
		return m, cmd
	}

	rec, err := employee.FromForm(m.endpoint.Schema, employee.NewID(m.now()), m.addForm.Values())
	if err != nil {
		m.modal = warningModal("Invalid input", err.Error())
		return m, nil
	}

	// Optimistic: the row stays even if the create fails.
	m.table.Append(rec)
	m.addForm.Reset()
	m.status = fmt.Sprintf("Added %s", displayName(rec))
	return m, createCmd(m.ctx, m.service, m.endpoint, rec)
}

func (m Model) handleLogsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape), key.Matches(msg, m.keys.Logs):
		m.currentView = ViewTable
		return m, nil
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil
	case key.Matches(msg, m.keys.Top):
		m.logViewport.GotoTop()
		return m, nil
	case key.Matches(msg, m.keys.Bottom):
		m.logViewport.GotoBottom()
		return m, nil
	}
	var cmd tea.Cmd
	m.logViewport, cmd = m.logViewport.Update(msg)
	return m, cmd
}

func (m Model) handleTick() (tea.Model, tea.Cmd) {
	cmds := []tea.Cmd{tickCmd(m.pollTick)}
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	if m.currentView == ViewLogs {
		cmds = append(cmds, logTailCmd(m.logFile, logTailLines))
	}
	return m, tea.Batch(cmds...)
}

func (m Model) refreshCmd() tea.Cmd {
	if m.service == nil {
		return nil
	}
	return fetchCmd(m.ctx, m.service, m.endpoint, api.Filter{EmployeeID: m.filter})
}

func (m Model) handleFetched(msg fetchedMsg) (tea.Model, tea.Cmd) {
	if msg.target != m.endpoint.Address() || msg.filter != m.filter {
		return m, nil
	}
	if msg.err != nil {
		log.Warn().Str("op", "list").Str("target", msg.target).Err(msg.err).Msg("fetch failed")
		m.status = "Fetch failed: " + msg.err.Error()
		return m, nil
	}
	m.table.Replace(msg.recs)
	m.status = fmt.Sprintf("Loaded %d employees", len(msg.recs))
	return m, nil
}

func (m Model) handleCreated(msg createdMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		log.Warn().Str("op", "create").Err(msg.err).Msg("create failed")
		return m, nil
	}
	log.Info().Str("op", "create").Str("id", msg.rec.ID).Msg("employee created")
	if row := m.table.IndexOf(msg.rec.ID); row >= 0 {
		_ = m.table.Set(row, msg.rec)
	}
	return m, nil
}

func (m Model) openEditor() (tea.Model, tea.Cmd) {
	row := m.table.Cursor()
	rec, ok := m.table.Row(row)
	if !ok {
		m.modal = warningModal("No selection", "Select a row to edit.")
		return m, nil
	}
	schema := m.endpoint.Schema
	m.modal = editorModal{
		row:  row,
		id:   rec.ID,
		form: newForm(employee.FormColumns(schema), schema.Row(rec)[1:]),
	}
	return m, nil
}

func (m Model) handleEditorSubmit(msg editorSubmitMsg) (tea.Model, tea.Cmd) {
	values := append([]string{msg.id}, msg.values...)
	rec, err := m.endpoint.Schema.FromRow(values)
	if err != nil {
		m.modal = warningModal("Invalid input", err.Error())
		return m, nil
	}
	return m, updateCmd(m.ctx, m.service, m.endpoint, msg.row, rec)
}

func (m Model) handleUpdated(msg updatedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		log.Warn().Str("op", "update").Str("id", msg.rec.ID).Err(msg.err).Msg("update failed")
		m.modal = warningModal("Update failed", describeError(msg.err))
		return m, nil
	}

	row := msg.row
	if rec, ok := m.table.Row(row); !ok || rec.ID != msg.rec.ID {
		row = m.table.IndexOf(msg.rec.ID)
	}
	if row >= 0 {
		_ = m.table.Set(row, msg.rec)
	}
	m.modal = infoModal("Updated", fmt.Sprintf("Employee %s was updated.", msg.rec.ID))
	return m, nil
}

func (m Model) confirmDelete() (tea.Model, tea.Cmd) {
	targets := m.table.Targets(m.table.Selected())
	if len(targets) == 0 {
		m.modal = warningModal("No selection", "Select a row to delete.")
		return m, nil
	}

	noun := "record"
	if len(targets) > 1 {
		noun = "records"
	}
	m.modal = confirmModal{
		title: "Delete",
		body:  fmt.Sprintf("Delete %d %s?", len(targets), noun),
		onYes: deleteCmd(m.ctx, m.service, m.endpoint, targets),
	}
	return m, nil
}

func (m Model) handleDeleted(msg deletedMsg) (tea.Model, tea.Cmd) {
	removed := m.table.Apply(msg.outcomes)
	m.table.ClearMarks()
	m.status = fmt.Sprintf("Deleted %d of %d", removed, len(msg.outcomes))

	failed := records.Failed(msg.outcomes)
	if len(failed) == 0 {
		return m, nil
	}
	body := ""
	for i, o := range failed {
		if i > 0 {
			body += "\n"
		}
		body += fmt.Sprintf("Row %d (%s): %s", o.Row+1, o.ID, describeError(o.Err))
	}
	m.modal = warningModal("Delete failed", body)
	return m, nil
}

func (m Model) handleServerSubmit(value string) (tea.Model, tea.Cmd) {
	if value == "" {
		value = api.DefaultAddress
	}
	ep, err := api.NewEndpoint(value, m.endpoint.Schema)
	if err != nil {
		m.modal = warningModal("Invalid server address", err.Error())
		return m, nil
	}

	m.endpoint = ep
	m.settings.ServerURL = prefs.String(ep.Address())
	log.Info().Str("target", ep.Address()).Msg("server changed")

	cmds := []tea.Cmd{m.refreshCmd()}
	if m.poller != nil {
		m.poller.Retarget(ep)
	}
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) handleLogTail(msg logTailMsg) {
	if msg.err != nil {
		m.logLines = []string{"failed to read log: " + msg.err.Error()}
	} else {
		m.logLines = msg.lines
	}
	atBottom := m.logViewport.AtBottom() || m.logViewport.TotalLineCount() == 0
	m.logViewport.SetContent(m.theme.Palette().Render(m.logLines))
	if atBottom {
		m.logViewport.GotoBottom()
	}
}

func (m *Model) resizeLogViewport() {
	m.logViewport.Width = m.width
	m.logViewport.Height = max(1, m.height-2)
}

// describeError renders a client error for a modal.
func describeError(err error) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Kind {
		case api.KindUnreachable:
			return "server unreachable: " + err.Error()
		case api.KindRejected:
			return "server rejected the request: " + err.Error()
		case api.KindMalformed:
			return "unexpected response: " + err.Error()
		}
	}
	return err.Error()
}

func displayName(rec employee.Record) string {
	if name := rec.Name.Full(); name != "" {
		return name
	}
	return rec.ID
}

// Run starts the Bubble Tea program and returns the settings to persist.
func Run(opts Options) (prefs.Settings, error) {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	final, err := p.Run()
	if fm, ok := final.(Model); ok {
		m = fm
	}
	if errors.Is(err, tea.ErrProgramKilled) && m.ctx.Err() != nil {
		err = nil
	}
	return m.Settings(), err
}
