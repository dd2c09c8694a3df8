package cron

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduler_RunsImmediatelyAndStops(t *testing.T) {
	s := NewScheduler(nil)
	var runs atomic.Int32
	s.AddJob("counter", time.Hour, func(ctx context.Context) error {
		runs.Add(1)
		return nil
	})

	s.Start(context.Background())
	require.Eventually(t, func() bool { return runs.Load() == 1 }, time.Second, 5*time.Millisecond)
	s.Stop()

	assert.Equal(t, int32(1), runs.Load())
}

func TestScheduler_StopsWithParentContext(t *testing.T) {
	s := NewScheduler(nil)
	var runs atomic.Int32
	s.AddJob("fast", 5*time.Millisecond, func(ctx context.Context) error {
		runs.Add(1)
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	s.Start(ctx)
	require.Eventually(t, func() bool { return runs.Load() >= 3 }, time.Second, time.Millisecond)
	cancel()
	s.Stop()

	stopped := runs.Load()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, stopped, runs.Load())
}

func TestScheduler_RunOnceContinuesAfterFailure(t *testing.T) {
	s := NewScheduler(nil)
	var second bool
	s.AddJob("fails", time.Hour, func(ctx context.Context) error { return errors.New("boom") })
	s.AddJob("succeeds", time.Hour, func(ctx context.Context) error {
		second = true
		return nil
	})

	s.RunOnce(context.Background())

	assert.True(t, second)
}

type fakeRelay struct {
	batches []int
	err     error
	calls   int
}

func (f *fakeRelay) ProcessPending(ctx context.Context) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	if f.calls >= len(f.batches) {
		f.calls++
		return 0, nil
	}
	n := f.batches[f.calls]
	f.calls++
	return n, nil
}

func TestOutboxJobs_PublishPending(t *testing.T) {
	t.Run("drains while batches are full", func(t *testing.T) {
		relay := &fakeRelay{batches: []int{10, 10, 3}}
		require.NoError(t, NewOutboxJobs(relay, 10).PublishPending(context.Background()))
		assert.Equal(t, 3, relay.calls)
	})

	t.Run("stops after a short batch", func(t *testing.T) {
		relay := &fakeRelay{batches: []int{0}}
		require.NoError(t, NewOutboxJobs(relay, 10).PublishPending(context.Background()))
		assert.Equal(t, 1, relay.calls)
	})

	t.Run("bounded per tick", func(t *testing.T) {
		full := make([]int, 50)
		for i := range full {
			full[i] = 5
		}
		relay := &fakeRelay{batches: full}
		require.NoError(t, NewOutboxJobs(relay, 5).PublishPending(context.Background()))
		assert.Equal(t, maxBatchesPerTick, relay.calls)
	})

	t.Run("list failure is returned", func(t *testing.T) {
		relay := &fakeRelay{err: errors.New("db down")}
		assert.EqualError(t, NewOutboxJobs(relay, 5).PublishPending(context.Background()), "db down")
	})
}
