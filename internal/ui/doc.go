// Package ui implements the roster terminal interface with Bubble Tea.
//
// # Views
//
//   - Table: the employee list with a cursor and marked rows (default)
//   - Form: the add-employee form
//   - Logs: the tail of the application log
//
// Overlays sit above any view: the row editor, the server address and filter
// prompts, confirm/warning/info modals and the help screen. While an overlay
// is open it receives every key.
//
// # Remote Calls
//
// Nothing in Update blocks on the network. Each request is a tea.Cmd that
// returns a message (fetchedMsg, createdMsg, updatedMsg, deletedMsg) handled
// on the next Update. Commands capture the Endpoint current when they were
// issued; a list result for a different address than the current one is
// discarded.
//
// Connectivity is not probed here. The app package runs a poller that writes
// to a state.Store, and the UI copies a snapshot on every tick for the header.
//
// # Outcomes
//
//   - Create appends the row before the request is sent. A failure is logged.
//   - Update changes the row only after the server accepts it. A failure shows
//     a warning and leaves the row as it was.
//   - Delete asks for confirmation, sends one request per row in descending
//     row order and removes each row on its own acknowledgment.
//
// # Settings
//
// Run returns the settings to persist: the last terminal size, the dark mode
// flag, the server address and the window position it was started with.
package ui
