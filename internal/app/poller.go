package app

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/five82/roster/internal/api"
	"github.com/five82/roster/internal/state"
)

const defaultPollInterval = 10 * time.Second

// Prober checks whether the service behind an endpoint answers.
type Prober interface {
	Probe(ctx context.Context, ep api.Endpoint) error
}

// Poller probes the current endpoint on a fixed cadence and records results
// in a state.Store. Probes run one at a time on the poller goroutine.
type Poller struct {
	store    *state.Store
	prober   Prober
	interval time.Duration
	retarget chan api.Endpoint
}

// StartPoller launches a background goroutine that probes ep immediately and
// then every interval until ctx is cancelled. It returns immediately.
func StartPoller(ctx context.Context, store *state.Store, prober Prober, ep api.Endpoint, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	p := &Poller{
		store:    store,
		prober:   prober,
		interval: interval,
		retarget: make(chan api.Endpoint, 1),
	}
	store.Begin(ep.Address())

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		current := ep
		for {
			p.probe(ctx, current)
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			case next := <-p.retarget:
				current = next
				ticker.Reset(interval)
			}
		}
	}()
	return p
}

// Retarget switches the poller to ep and triggers an immediate probe. When a
// previous retarget has not been picked up yet, the newer endpoint replaces it.
func (p *Poller) Retarget(ep api.Endpoint) {
	p.store.Begin(ep.Address())
	for {
		select {
		case p.retarget <- ep:
			return
		default:
		}
		select {
		case <-p.retarget:
		default:
		}
	}
}

func (p *Poller) probe(ctx context.Context, ep api.Endpoint) {
	target := ep.Address()
	err := p.prober.Probe(ctx, ep)
	if ctx.Err() != nil {
		return
	}
	if err != nil {
		log.Warn().Str("target", target).Err(err).Msg("connection check failed")
	} else {
		log.Debug().Str("target", target).Msg("connection check ok")
	}
	p.store.Update(target, err)
}
