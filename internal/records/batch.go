package records

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/five82/roster/internal/api"
)

// Deleter removes one record by ID.
type Deleter interface {
	Delete(ctx context.Context, ep api.Endpoint, id string) (api.Ack, error)
}

// Target is a row scheduled for deletion and the ID it held when scheduled.
type Target struct {
	Row int
	ID  string
}

// Outcome is the result of deleting one Target.
type Outcome struct {
	Target
	Ack api.Ack
	Err error
}

// DeleteBatch issues one independent delete per target in the order given
// (Targets already sorts rows descending). A failure does not stop the
// remaining deletes. Cancelling ctx fails the deletes not yet sent.
func DeleteBatch(ctx context.Context, d Deleter, ep api.Endpoint, targets []Target) []Outcome {
	outcomes := make([]Outcome, 0, len(targets))
	for _, target := range targets {
		if err := ctx.Err(); err != nil {
			outcomes = append(outcomes, Outcome{Target: target, Err: &api.Error{Op: "delete", Kind: api.KindUnreachable, Err: err}})
			continue
		}
		ack, err := d.Delete(ctx, ep, target.ID)
		if err != nil {
			log.Warn().Str("op", "delete").Str("id", target.ID).Int("row", target.Row).Err(err).Msg("delete failed")
		}
		outcomes = append(outcomes, Outcome{Target: target, Ack: ack, Err: err})
	}
	return outcomes
}

// Failed returns the outcomes that carry an error.
func Failed(outcomes []Outcome) []Outcome {
	var failed []Outcome
	for _, o := range outcomes {
		if o.Err != nil {
			failed = append(failed, o)
		}
	}
	return failed
}
