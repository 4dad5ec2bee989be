package cron

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePurger struct {
	mu      sync.Mutex
	cutoffs []time.Time
	err     error
}

func (p *fakePurger) PurgeOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cutoffs = append(p.cutoffs, cutoff)
	return 2, p.err
}

func TestDraftJobs_PurgeUsesTTL(t *testing.T) {
	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	purger := &fakePurger{}
	jobs := NewDraftJobs(purger, 7*24*time.Hour, clockwork.NewFakeClockAt(now))

	require.NoError(t, jobs.PurgeStaleDrafts(context.Background()))

	require.Len(t, purger.cutoffs, 1)
	assert.Equal(t, now.Add(-7*24*time.Hour), purger.cutoffs[0])
}

func TestDraftJobs_PurgeError(t *testing.T) {
	purger := &fakePurger{err: errors.New("connection refused")}
	jobs := NewDraftJobs(purger, time.Hour, clockwork.NewFakeClock())

	assert.Error(t, jobs.PurgeStaleDrafts(context.Background()))
}

func TestScheduler_RunsOnStartAndEveryInterval(t *testing.T) {
	clock := clockwork.NewFakeClock()
	scheduler := NewScheduler(clock)

	var runs atomic.Int32
	scheduler.AddJob("count", time.Minute, func(context.Context) error {
		runs.Add(1)
		return nil
	})
	scheduler.Start()
	defer scheduler.Stop()

	assert.Eventually(t, func() bool { return runs.Load() == 1 }, time.Second, 5*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, clock.BlockUntilContext(ctx, 1))
	clock.Advance(time.Minute)

	assert.Eventually(t, func() bool { return runs.Load() == 2 }, time.Second, 5*time.Millisecond)
}

func TestScheduler_RunOnce(t *testing.T) {
	scheduler := NewScheduler(nil)
	purger := &fakePurger{}
	NewDraftJobs(purger, time.Hour, nil).RegisterJobs(scheduler)

	scheduler.RunOnce(context.Background())

	assert.Len(t, purger.cutoffs, 1)
}
