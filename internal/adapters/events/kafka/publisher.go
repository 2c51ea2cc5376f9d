package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"

	"github.com/nabung-ai/tabungan_backend/internal/core/domain"
	portssvc "github.com/nabung-ai/tabungan_backend/internal/core/ports/services"
)

// Publisher emits TransactionCompleted events to a Kafka topic. Messages are
// keyed by user identifier so one user's events stay ordered.
type Publisher struct {
	writer *kafka.Writer
}

func NewPublisher(brokers []string, topic string) *Publisher {
	return &Publisher{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    topic,
			Balancer: &kafka.LeastBytes{},
		},
	}
}

// Ensure Publisher implements the event publisher port
var _ portssvc.TransactionEventPublisher = (*Publisher)(nil)

func (p *Publisher) PublishTransactionCompleted(ctx context.Context, event domain.TransactionCompleted) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal transaction event: %w", err)
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.UserID),
		Value: data,
	})
}

// Close flushes and closes the underlying writer.
func (p *Publisher) Close() error {
	return p.writer.Close()
}
