// Package records holds the rows shown in the employee table and the
// selection state over them.
package records

import (
	"errors"
	"fmt"
	"sort"

	"github.com/five82/roster/internal/employee"
)

// ErrRowRange is returned for a row index outside the table.
var ErrRowRange = errors.New("row out of range")

// Table is the ordered list of visible records plus a cursor and a set of
// marked rows. It is not safe for concurrent use; the UI owns it.
type Table struct {
	rows   []employee.Record
	cursor int
	marked map[int]struct{}
}

// New returns an empty table.
func New() *Table {
	return &Table{marked: make(map[int]struct{})}
}

// Len reports the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Rows returns a copy of the rows in display order.
func (t *Table) Rows() []employee.Record {
	out := make([]employee.Record, len(t.rows))
	copy(out, t.rows)
	return out
}

// Row returns the record at row.
func (t *Table) Row(row int) (employee.Record, bool) {
	if row < 0 || row >= len(t.rows) {
		return employee.Record{}, false
	}
	return t.rows[row], true
}

// Replace clears the table and repopulates it from recs. Marks are cleared
// and the cursor is clamped.
func (t *Table) Replace(recs []employee.Record) {
	t.rows = append(t.rows[:0:0], recs...)
	t.marked = make(map[int]struct{})
	t.clampCursor()
}

// Append adds rec as the last row.
func (t *Table) Append(rec employee.Record) {
	t.rows = append(t.rows, rec)
}

// Set replaces the record at row.
func (t *Table) Set(row int, rec employee.Record) error {
	if row < 0 || row >= len(t.rows) {
		return fmt.Errorf("set row %d: %w", row, ErrRowRange)
	}
	t.rows[row] = rec
	return nil
}

// Remove deletes row, shifting later rows and their marks up by one.
func (t *Table) Remove(row int) error {
	if row < 0 || row >= len(t.rows) {
		return fmt.Errorf("remove row %d: %w", row, ErrRowRange)
	}
	t.rows = append(t.rows[:row], t.rows[row+1:]...)

	shifted := make(map[int]struct{}, len(t.marked))
	for r := range t.marked {
		switch {
		case r < row:
			shifted[r] = struct{}{}
		case r > row:
			shifted[r-1] = struct{}{}
		}
	}
	t.marked = shifted
	t.clampCursor()
	return nil
}

// IndexOf returns the first row holding id, or -1.
func (t *Table) IndexOf(id string) int {
	for i, rec := range t.rows {
		if rec.ID == id {
			return i
		}
	}
	return -1
}

// Cursor returns the focused row.
func (t *Table) Cursor() int {
	return t.cursor
}

// SetCursor moves focus to row, clamped to the table.
func (t *Table) SetCursor(row int) {
	t.cursor = row
	t.clampCursor()
}

// MoveCursor moves focus by delta rows.
func (t *Table) MoveCursor(delta int) {
	t.SetCursor(t.cursor + delta)
}

// ToggleMark flips the mark on row.
func (t *Table) ToggleMark(row int) {
	if row < 0 || row >= len(t.rows) {
		return
	}
	if _, ok := t.marked[row]; ok {
		delete(t.marked, row)
		return
	}
	t.marked[row] = struct{}{}
}

// Marked reports whether row is marked.
func (t *Table) Marked(row int) bool {
	_, ok := t.marked[row]
	return ok
}

// ClearMarks unmarks every row.
func (t *Table) ClearMarks() {
	t.marked = make(map[int]struct{})
}

// Selected returns the marked rows in ascending order, or the cursor row
// when nothing is marked. An empty table has no selection.
func (t *Table) Selected() []int {
	if len(t.rows) == 0 {
		return nil
	}
	if len(t.marked) == 0 {
		return []int{t.cursor}
	}
	rows := make([]int, 0, len(t.marked))
	for r := range t.marked {
		rows = append(rows, r)
	}
	sort.Ints(rows)
	return rows
}

// Targets pairs each row with the ID it holds now, for use with DeleteBatch.
// Rows outside the table are dropped.
func (t *Table) Targets(rows []int) []Target {
	targets := make([]Target, 0, len(rows))
	for _, row := range DeleteOrder(rows) {
		if rec, ok := t.Row(row); ok {
			targets = append(targets, Target{Row: row, ID: rec.ID})
		}
	}
	return targets
}

// Apply removes every acknowledged row from outcomes. Rows are removed in
// descending order so earlier indices stay valid. A row that no longer holds
// its original ID is located by ID instead. It returns the number removed.
func (t *Table) Apply(outcomes []Outcome) int {
	acked := make([]Outcome, 0, len(outcomes))
	for _, o := range outcomes {
		if o.Err == nil {
			acked = append(acked, o)
		}
	}
	sort.SliceStable(acked, func(i, j int) bool { return acked[i].Row > acked[j].Row })

	removed := 0
	for _, o := range acked {
		row := o.Row
		if rec, ok := t.Row(row); !ok || rec.ID != o.ID {
			row = t.IndexOf(o.ID)
		}
		if row < 0 {
			continue
		}
		if err := t.Remove(row); err == nil {
			removed++
		}
	}
	return removed
}

func (t *Table) clampCursor() {
	if t.cursor >= len(t.rows) {
		t.cursor = len(t.rows) - 1
	}
	if t.cursor < 0 {
		t.cursor = 0
	}
}

// DeleteOrder returns the distinct non-negative rows sorted descending, the
// order in which removing them leaves the remaining indices valid.
func DeleteOrder(rows []int) []int {
	seen := make(map[int]struct{}, len(rows))
	out := make([]int, 0, len(rows))
	for _, r := range rows {
		if r < 0 {
			continue
		}
		if _, dup := seen[r]; dup {
			continue
		}
		seen[r] = struct{}{}
		out = append(out, r)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(out)))
	return out
}
