package outbox

import (
	"time"

	kafkago "github.com/segmentio/kafka-go"
)

// NewKafkaWriter leaves Topic unset; the relay addresses every message itself.
func NewKafkaWriter(brokers []string) *kafkago.Writer {
	return &kafkago.Writer{
		Addr:                   kafkago.TCP(brokers...),
		Balancer:               &kafkago.Hash{},
		RequiredAcks:           kafkago.RequireAll,
		AllowAutoTopicCreation: true,
		BatchTimeout:           50 * time.Millisecond,
	}
}
