package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/employee-wizard-go/internal/domain/draft"
	"github.com/jonboulle/clockwork"
)

// DraftPurgeInterval is how often stale drafts are looked for.
const DraftPurgeInterval = time.Hour

// DraftJobs contains draft-related cron jobs
type DraftJobs struct {
	purger draft.Purger
	ttl    time.Duration
	clock  clockwork.Clock
}

// NewDraftJobs drops drafts untouched for longer than ttl.
func NewDraftJobs(purger draft.Purger, ttl time.Duration, clock clockwork.Clock) *DraftJobs {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &DraftJobs{purger: purger, ttl: ttl, clock: clock}
}

// RegisterJobs registers all draft-related cron jobs
func (j *DraftJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("purge_stale_drafts", DraftPurgeInterval, j.PurgeStaleDrafts)
}

func (j *DraftJobs) PurgeStaleDrafts(ctx context.Context) error {
	cutoff := j.clock.Now().Add(-j.ttl)
	purged, err := j.purger.PurgeOlderThan(ctx, cutoff)
	if err != nil {
		return err
	}
	if purged > 0 {
		slog.Info("Purged stale drafts", "count", purged, "cutoff", cutoff)
	}
	return nil
}
