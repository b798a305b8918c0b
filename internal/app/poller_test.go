package app

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/five82/roster/internal/api"
	"github.com/five82/roster/internal/state"
)

type fakeProber struct {
	mu    sync.Mutex
	calls []string
	fail  map[string]bool
	seen  chan string
}

func newFakeProber() *fakeProber {
	return &fakeProber{fail: map[string]bool{}, seen: make(chan string, 16)}
}

func (f *fakeProber) Probe(_ context.Context, ep api.Endpoint) error {
	addr := ep.Address()
	f.mu.Lock()
	f.calls = append(f.calls, addr)
	fail := f.fail[addr]
	f.mu.Unlock()
	select {
	case f.seen <- addr:
	default:
	}
	if fail {
		return &api.Error{Op: "probe", Kind: api.KindUnreachable, Err: errors.New("connection refused")}
	}
	return nil
}

func mustEndpoint(t *testing.T, addr string) api.Endpoint {
	t.Helper()
	ep, err := api.NewEndpoint(addr, nil)
	if err != nil {
		t.Fatalf("NewEndpoint(%q): %v", addr, err)
	}
	return ep
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("condition not met before deadline")
}

func TestPoller_ProbesImmediately(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store := &state.Store{}
	prober := newFakeProber()
	StartPoller(ctx, store, prober, mustEndpoint(t, "127.0.0.1:8000"), time.Hour)

	if snap := store.Snapshot(); snap.Target != "127.0.0.1:8000" {
		t.Fatalf("Target = %q before first probe, want 127.0.0.1:8000", snap.Target)
	}
	waitFor(t, func() bool { return store.Snapshot().Connected })
}

func TestPoller_RecordsFailures(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store := &state.Store{}
	prober := newFakeProber()
	prober.fail["10.0.0.9:1"] = true
	StartPoller(ctx, store, prober, mustEndpoint(t, "10.0.0.9:1"), 10*time.Millisecond)

	waitFor(t, func() bool { return store.Snapshot().ConsecutiveFailures >= 2 })
	snap := store.Snapshot()
	if snap.Connected || !errors.Is(snap.LastError, api.ErrUnreachable) {
		t.Fatalf("snapshot = %#v, want unreachable failure", snap)
	}
	if snap.Status() != "Failed to connect to 10.0.0.9:1" {
		t.Fatalf("Status = %q", snap.Status())
	}
}

func TestPoller_RetargetProbesNewEndpoint(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store := &state.Store{}
	prober := newFakeProber()
	prober.fail["old:1"] = true
	p := StartPoller(ctx, store, prober, mustEndpoint(t, "old:1"), time.Hour)

	if got := <-prober.seen; got != "old:1" {
		t.Fatalf("first probe = %q, want old:1", got)
	}

	p.Retarget(mustEndpoint(t, "new:2"))
	if got := <-prober.seen; got != "new:2" {
		t.Fatalf("probe after retarget = %q, want new:2", got)
	}
	waitFor(t, func() bool {
		snap := store.Snapshot()
		return snap.Target == "new:2" && snap.Connected
	})
}

func TestPoller_RetargetLatestWins(t *testing.T) {
	store := &state.Store{}
	p := &Poller{store: store, retarget: make(chan api.Endpoint, 1)}

	p.Retarget(mustEndpoint(t, "a:1"))
	p.Retarget(mustEndpoint(t, "b:2"))

	got := <-p.retarget
	if got.Address() != "b:2" {
		t.Fatalf("pending retarget = %q, want b:2", got.Address())
	}
	if store.Snapshot().Target != "b:2" {
		t.Fatalf("store target = %q, want b:2", store.Snapshot().Target)
	}
}

func TestPoller_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	store := &state.Store{}
	prober := newFakeProber()
	StartPoller(ctx, store, prober, mustEndpoint(t, "127.0.0.1:8000"), 5*time.Millisecond)

	<-prober.seen
	cancel()
	time.Sleep(20 * time.Millisecond)
	for len(prober.seen) > 0 {
		<-prober.seen
	}
	time.Sleep(30 * time.Millisecond)
	if n := len(prober.seen); n != 0 {
		t.Fatalf("poller probed %d times after cancel", n)
	}
}
