package noop

import (
	"context"

	"github.com/nabung-ai/tabungan_backend/internal/core/domain"
	portssvc "github.com/nabung-ai/tabungan_backend/internal/core/ports/services"
)

// Publisher discards all events. Used when no broker is configured.
type Publisher struct{}

func NewPublisher() *Publisher {
	return &Publisher{}
}

// Ensure Publisher implements the event publisher port
var _ portssvc.TransactionEventPublisher = (*Publisher)(nil)

func (p *Publisher) PublishTransactionCompleted(ctx context.Context, event domain.TransactionCompleted) error {
	return nil
}
