package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/nabung-ai/tabungan_backend/internal/apperrors"
	"github.com/nabung-ai/tabungan_backend/internal/core/domain"
	portsrepo "github.com/nabung-ai/tabungan_backend/internal/core/ports/repositories"
)

// ledgerState pairs a ledger with its own mutex so that read-modify-write
// cycles serialize per user identifier without blocking other users.
type ledgerState struct {
	mu     sync.Mutex
	ledger domain.Ledger
}

// LedgerRepository is an in-memory implementation of the ledger store.
// It backs tests and API-key-only deployments without a database.
type LedgerRepository struct {
	mu      sync.RWMutex // guards the map itself, not individual ledgers
	ledgers map[string]*ledgerState
}

// NewLedgerRepository creates an empty in-memory ledger store.
func NewLedgerRepository() *LedgerRepository {
	return &LedgerRepository{
		ledgers: make(map[string]*ledgerState),
	}
}

// Ensure LedgerRepository implements the repository facade
var _ portsrepo.LedgerRepositoryFacade = (*LedgerRepository)(nil)

func (r *LedgerRepository) EnsureLedger(ctx context.Context, userID string) (*domain.Ledger, error) {
	r.mu.Lock()
	state, ok := r.ledgers[userID]
	if !ok {
		state = &ledgerState{
			ledger: domain.Ledger{
				UserID:  userID,
				Balance: 0,
				History: []domain.TransactionRecord{},
			},
		}
		r.ledgers[userID] = state
	}
	r.mu.Unlock()

	state.mu.Lock()
	defer state.mu.Unlock()
	return copyLedger(&state.ledger), nil
}

func (r *LedgerRepository) FindLedgerByID(ctx context.Context, userID string) (*domain.Ledger, error) {
	state, err := r.state(userID)
	if err != nil {
		return nil, err
	}

	state.mu.Lock()
	defer state.mu.Unlock()
	return copyLedger(&state.ledger), nil
}

func (r *LedgerRepository) ApplyDelta(ctx context.Context, userID string, delta int64, record domain.TransactionRecord) (*domain.Ledger, error) {
	state, err := r.state(userID)
	if err != nil {
		return nil, err
	}

	state.mu.Lock()
	defer state.mu.Unlock()

	if state.ledger.Balance+delta < 0 {
		return nil, fmt.Errorf("delta %d would overdraw balance %d: %w", delta, state.ledger.Balance, apperrors.ErrInsufficientFunds)
	}

	state.ledger.Balance += delta
	state.ledger.History = append(state.ledger.History, record)
	return copyLedger(&state.ledger), nil
}

func (r *LedgerRepository) ClearHistory(ctx context.Context, userID string) (*domain.Ledger, error) {
	state, err := r.state(userID)
	if err != nil {
		return nil, err
	}

	state.mu.Lock()
	defer state.mu.Unlock()

	state.ledger.History = []domain.TransactionRecord{}
	return copyLedger(&state.ledger), nil
}

func (r *LedgerRepository) state(userID string) (*ledgerState, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	state, ok := r.ledgers[userID]
	if !ok {
		return nil, fmt.Errorf("no ledger for user %q: %w", userID, apperrors.ErrNotFound)
	}
	return state, nil
}

// copyLedger returns a deep copy so callers can never mutate stored state.
func copyLedger(ledger *domain.Ledger) *domain.Ledger {
	history := make([]domain.TransactionRecord, len(ledger.History))
	copy(history, ledger.History)
	return &domain.Ledger{
		UserID:  ledger.UserID,
		Balance: ledger.Balance,
		History: history,
	}
}
