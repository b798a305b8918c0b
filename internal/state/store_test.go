package state

import (
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestStore_ZeroValue(t *testing.T) {
	var s Store
	snap := s.Snapshot()
	if snap.Checked || snap.Connected || snap.LastError != nil {
		t.Fatalf("zero snapshot = %#v, want unchecked", snap)
	}
}

func TestStore_UpdateSuccessAndFailure(t *testing.T) {
	var s Store
	s.Begin("127.0.0.1:8000")
	if got := s.Snapshot().Status(); !strings.HasPrefix(got, "Connecting to 127.0.0.1:8000") {
		t.Fatalf("Status = %q, want connecting", got)
	}

	before := time.Now()
	s.Update("127.0.0.1:8000", nil)
	snap := s.Snapshot()
	if !snap.Checked || !snap.Connected || snap.ConsecutiveFailures != 0 {
		t.Fatalf("snapshot = %#v, want connected", snap)
	}
	if snap.CheckedAt.Before(before) {
		t.Fatalf("CheckedAt = %v, want >= %v", snap.CheckedAt, before)
	}
	if snap.Status() != "Connected to 127.0.0.1:8000" {
		t.Fatalf("Status = %q", snap.Status())
	}

	origErr := errors.New("connection refused")
	s.Update("127.0.0.1:8000", origErr)
	s.Update("127.0.0.1:8000", origErr)
	snap = s.Snapshot()
	if snap.Connected || snap.ConsecutiveFailures != 2 {
		t.Fatalf("snapshot = %#v, want two failures", snap)
	}
	if snap.LastError == nil || snap.LastError.Error() != "connection refused" {
		t.Fatalf("LastError = %v, want connection refused", snap.LastError)
	}
	if reflect.ValueOf(snap.LastError).Pointer() == reflect.ValueOf(origErr).Pointer() {
		t.Fatalf("Snapshot should clone error instance")
	}
	if snap.Status() != "Failed to connect to 127.0.0.1:8000" {
		t.Fatalf("Status = %q", snap.Status())
	}

	s.Update("127.0.0.1:8000", nil)
	if snap := s.Snapshot(); !snap.Connected || snap.ConsecutiveFailures != 0 {
		t.Fatalf("success should reset failures, got %#v", snap)
	}
}

func TestStore_RetargetDropsStaleResults(t *testing.T) {
	var s Store
	s.Begin("old:1")
	s.Update("old:1", nil)

	s.Begin("new:2")
	snap := s.Snapshot()
	if snap.Checked || snap.Target != "new:2" {
		t.Fatalf("snapshot after retarget = %#v, want unchecked new:2", snap)
	}

	s.Update("old:1", errors.New("late"))
	if snap := s.Snapshot(); snap.Checked || snap.LastError != nil {
		t.Fatalf("stale result applied: %#v", snap)
	}

	s.Begin("new:2")
	s.Update("new:2", nil)
	if !s.Snapshot().Connected {
		t.Fatalf("result for current target was dropped")
	}
}
