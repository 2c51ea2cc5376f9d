package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionCompleted is emitted after a ledger mutation commits. Consumers
// (reporting, fraud review) get the committed record, not the raw verdict.
type TransactionCompleted struct {
	RecordID   string            `json:"record_id"`
	UserID     string            `json:"user_id"`
	Amount     decimal.Decimal   `json:"amount"`
	Status     TransactionStatus `json:"status"`
	Balance    decimal.Decimal   `json:"balance"`
	OccurredAt time.Time         `json:"occurred_at"`
}
