package outbox

import (
	"context"
	"log/slog"

	kafkago "github.com/segmentio/kafka-go"
)

// MessageWriter is satisfied by *kafka.Writer.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
}

type Relay struct {
	repo        Repository
	writer      MessageWriter
	topicPrefix string
	batchSize   int
	logger      *slog.Logger
}

func NewRelay(repo Repository, writer MessageWriter, topicPrefix string, batchSize int, logger *slog.Logger) *Relay {
	if batchSize <= 0 {
		batchSize = 50
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Relay{
		repo:        repo,
		writer:      writer,
		topicPrefix: topicPrefix,
		batchSize:   batchSize,
		logger:      logger.With(slog.String("component", "outbox.relay")),
	}
}

// ProcessPending publishes one batch. A failed publish marks that event failed and
// moves on; only a failure to list the batch is returned.
func (r *Relay) ProcessPending(ctx context.Context) (int, error) {
	events, err := r.repo.ListPending(ctx, r.batchSize)
	if err != nil {
		return 0, err
	}
	if len(events) == 0 {
		return 0, nil
	}

	r.logger.Info("processing pending outbox events", slog.Int("count", len(events)))

	sent := 0
	for _, event := range events {
		if err := r.publish(ctx, event); err != nil {
			r.logger.Error("publish outbox event failed",
				slog.String("outbox_id", event.ID),
				slog.String("event_type", event.EventType),
				slog.String("error", err.Error()),
			)
			if markErr := r.repo.MarkFailed(ctx, event.ID, err.Error()); markErr != nil {
				r.logger.Error("mark outbox failed failed", slog.String("outbox_id", event.ID), slog.String("error", markErr.Error()))
			}
			continue
		}

		if err := r.repo.MarkSent(ctx, event.ID); err != nil {
			r.logger.Error("mark outbox sent failed", slog.String("outbox_id", event.ID), slog.String("error", err.Error()))
			continue
		}
		sent++
	}

	return sent, nil
}

func (r *Relay) topic(event Event) string {
	if r.topicPrefix == "" {
		return event.Topic
	}
	return r.topicPrefix + "." + event.Topic
}

func (r *Relay) publish(ctx context.Context, event Event) error {
	msg := kafkago.Message{
		Topic: r.topic(event),
		Key:   []byte(event.AggregateID),
		Value: event.Payload,
		Headers: []kafkago.Header{
			{Key: "event_type", Value: []byte(event.EventType)},
			{Key: "aggregate_type", Value: []byte(event.AggregateType)},
		},
	}
	return r.writer.WriteMessages(ctx, msg)
}
