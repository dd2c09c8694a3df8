package cron

import (
	"context"
	"time"
)

// OutboxPublisher is satisfied by *outbox.Relay.
type OutboxPublisher interface {
	ProcessPending(ctx context.Context) (int, error)
}

// maxBatchesPerTick bounds how long a single tick can drain a backlog.
const maxBatchesPerTick = 20

type OutboxJobs struct {
	relay     OutboxPublisher
	batchSize int
}

func NewOutboxJobs(relay OutboxPublisher, batchSize int) *OutboxJobs {
	return &OutboxJobs{relay: relay, batchSize: batchSize}
}

func (j *OutboxJobs) RegisterJobs(scheduler *Scheduler, interval time.Duration) {
	scheduler.AddJob("publish_outbox_events", interval, j.PublishPending)
}

// PublishPending keeps draining while batches come back full.
func (j *OutboxJobs) PublishPending(ctx context.Context) error {
	for i := 0; i < maxBatchesPerTick; i++ {
		n, err := j.relay.ProcessPending(ctx)
		if err != nil {
			return err
		}
		if n < j.batchSize || ctx.Err() != nil {
			return nil
		}
	}
	return nil
}
