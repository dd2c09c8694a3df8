package outbox

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	StatusPending = "pending"
	StatusSent    = "sent"
	StatusFailed  = "failed"
)

// Event is a domain event persisted in the same transaction as the change it
// describes and published to Kafka later by the Relay.
type Event struct {
	ID            string
	AggregateType string
	AggregateID   string
	EventType     string
	Topic         string
	Payload       []byte
	Status        string
	RetryCount    int
	NextRetryAt   time.Time
	CreatedAt     time.Time
}

// Writer is the part of the store business services need. Create must be
// called with a transaction context.
type Writer interface {
	Create(ctx context.Context, event Event) error
}

type Repository interface {
	Writer
	// ListPending returns pending and failed events whose retry time has passed, oldest first.
	ListPending(ctx context.Context, limit int) ([]Event, error)
	MarkSent(ctx context.Context, id string) error
	// MarkFailed bumps the retry count and pushes next_retry_at out by a linear backoff.
	MarkFailed(ctx context.Context, id string, reason string) error
}

// NewEvent builds a pending event with a JSON payload. The topic is the aggregate type;
// the relay prefixes it.
func NewEvent(aggregateType, aggregateID, eventType string, payload any) (Event, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return Event{}, fmt.Errorf("marshal %s payload: %w", eventType, err)
	}
	return Event{
		ID:            uuid.NewString(),
		AggregateType: aggregateType,
		AggregateID:   aggregateID,
		EventType:     eventType,
		Topic:         aggregateType,
		Payload:       body,
		Status:        StatusPending,
	}, nil
}

func Validate(event Event) error {
	if event.ID == "" {
		return errors.New("outbox id is required")
	}
	if event.Topic == "" {
		return errors.New("outbox topic is required")
	}
	if len(event.Payload) == 0 {
		return errors.New("outbox payload is required")
	}
	switch event.Status {
	case StatusPending, StatusSent, StatusFailed:
		return nil
	default:
		return fmt.Errorf("invalid outbox status: %s", event.Status)
	}
}
