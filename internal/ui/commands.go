package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/roster/internal/api"
	"github.com/five82/roster/internal/employee"
	"github.com/five82/roster/internal/logtail"
	"github.com/five82/roster/internal/records"
	"github.com/five82/roster/internal/state"
)

// Messages

type tickMsg time.Time

type snapshotMsg state.Snapshot

// fetchedMsg carries a list result for the endpoint and filter it was
// requested with.
type fetchedMsg struct {
	target string
	filter string
	recs   []employee.Record
	err    error
}

type createdMsg struct {
	rec employee.Record
	err error
}

type updatedMsg struct {
	row int
	rec employee.Record
	err error
}

type deletedMsg struct {
	outcomes []records.Outcome
}

type serverSubmitMsg string

type filterSubmitMsg string

type logTailMsg struct {
	lines []string
	err   error
}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchSnapshotCmd(store *state.Store) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(store.Snapshot())
	}
}

func fetchCmd(ctx context.Context, svc api.Service, ep api.Endpoint, filter api.Filter) tea.Cmd {
	return func() tea.Msg {
		recs, err := svc.List(ctx, ep, filter)
		return fetchedMsg{target: ep.Address(), filter: filter.EmployeeID, recs: recs, err: err}
	}
}

func createCmd(ctx context.Context, svc api.Service, ep api.Endpoint, rec employee.Record) tea.Cmd {
	return func() tea.Msg {
		created, err := svc.Create(ctx, ep, rec)
		return createdMsg{rec: created, err: err}
	}
}

func updateCmd(ctx context.Context, svc api.Service, ep api.Endpoint, row int, rec employee.Record) tea.Cmd {
	return func() tea.Msg {
		updated, err := svc.Update(ctx, ep, rec)
		if err != nil || updated.ID == "" {
			updated = rec
		}
		return updatedMsg{row: row, rec: updated, err: err}
	}
}

func deleteCmd(ctx context.Context, svc api.Service, ep api.Endpoint, targets []records.Target) tea.Cmd {
	return func() tea.Msg {
		return deletedMsg{outcomes: records.DeleteBatch(ctx, svc, ep, targets)}
	}
}

func logTailCmd(path string, maxLines int) tea.Cmd {
	return func() tea.Msg {
		lines, err := logtail.Read(path, maxLines)
		return logTailMsg{lines: lines, err: err}
	}
}
