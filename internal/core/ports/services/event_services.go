package services

import (
	"context"

	"github.com/nabung-ai/tabungan_backend/internal/core/domain"
)

// TransactionEventPublisher publishes committed ledger mutations to interested
// consumers. Publishing is best-effort: a failure is logged by the caller and
// never fails the originating request.
type TransactionEventPublisher interface {
	PublishTransactionCompleted(ctx context.Context, event domain.TransactionCompleted) error
}
