// Package state provides thread-safe connection state for the roster application.
//
// # Overview
//
// The poller goroutine probes the employee service and records each result
// here; the UI reads snapshots on its own tick. Neither side blocks the other
// for longer than a struct copy.
//
//	Producer (poller):             Consumer (UI):
//	┌────────────────┐            ┌─────────────────┐
//	│ store.Begin()  │            │                 │
//	│ client.Probe() │            │                 │
//	│      ↓         │            │                 │
//	│ store.Update() │───────────→│ store.Snapshot()│
//	│      ↓         │  (mutex)   │      ↓          │
//	│  repeat...     │            │  render header  │
//	└────────────────┘            └─────────────────┘
//
// # Targets
//
// Every result is keyed by the address that was probed. Begin switches the
// store to a new address and clears the previous result; an Update for any
// other address is dropped, so a slow probe of the old server cannot mark the
// new one as connected.
//
// # Update Semantics
//
//	store.Update(target, nil)
//	→ Connected = true, ConsecutiveFailures = 0, LastError = nil
//
//	store.Update(target, err)
//	→ Connected = false, ConsecutiveFailures++, LastError = err
//
// Snapshot returns a copy; LastError is re-wrapped so callers never share the
// poller's error value.
//
// The zero Store is ready to use.
package state
