package repositories

import (
	"context"

	"github.com/nabung-ai/tabungan_backend/internal/core/domain"
)

// LedgerReader defines read operations for ledger data.
type LedgerReader interface {
	// FindLedgerByID retrieves the ledger for a user identifier.
	// Returns apperrors.ErrNotFound when no ledger exists for the identifier.
	FindLedgerByID(ctx context.Context, userID string) (*domain.Ledger, error)
}

// LedgerWriter defines write operations for ledger data. Implementations must
// serialize ApplyDelta/ClearHistory per user identifier so concurrent
// read-modify-write cycles cannot lose updates; calls for different
// identifiers must not block one another.
type LedgerWriter interface {
	// EnsureLedger returns the existing ledger for the identifier or creates
	// and persists a fresh zero-balance one. Idempotent.
	EnsureLedger(ctx context.Context, userID string) (*domain.Ledger, error)

	// ApplyDelta atomically adds delta to the balance and appends record to
	// the history. It refuses a delta that would drive the balance below zero
	// with apperrors.ErrInsufficientFunds, and fails with apperrors.ErrNotFound
	// when the ledger is absent. Returns the ledger after the mutation.
	ApplyDelta(ctx context.Context, userID string, delta int64, record domain.TransactionRecord) (*domain.Ledger, error)

	// ClearHistory replaces the history with an empty sequence, leaving the
	// balance untouched. Fails with apperrors.ErrNotFound when absent.
	ClearHistory(ctx context.Context, userID string) (*domain.Ledger, error)
}

// LedgerRepositoryFacade combines all ledger repository interfaces.
type LedgerRepositoryFacade interface {
	LedgerReader
	LedgerWriter
}
