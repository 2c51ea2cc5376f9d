package pgsql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nabung-ai/tabungan_backend/internal/apperrors"
	"github.com/nabung-ai/tabungan_backend/internal/core/domain"
	portsrepo "github.com/nabung-ai/tabungan_backend/internal/core/ports/repositories"
)

// LedgerRepository is the PostgreSQL-backed ledger store. Each user's record
// is one row; the history lives in a JSONB array. Row-level locks serialize
// mutations per user identifier.
type LedgerRepository struct {
	db *pgxpool.Pool
}

func NewLedgerRepository(db *pgxpool.Pool) *LedgerRepository {
	return &LedgerRepository{db: db}
}

// Ensure LedgerRepository implements the repository facade
var _ portsrepo.LedgerRepositoryFacade = (*LedgerRepository)(nil)

func (r *LedgerRepository) EnsureLedger(ctx context.Context, userID string) (*domain.Ledger, error) {
	query := `
        INSERT INTO ledgers (user_id, balance, history, created_at, last_updated_at)
        VALUES ($1, 0, '[]'::jsonb, now(), now())
        ON CONFLICT (user_id) DO NOTHING;
    `
	if _, err := r.db.Exec(ctx, query, userID); err != nil {
		return nil, fmt.Errorf("failed to ensure ledger: %w", err)
	}
	return r.FindLedgerByID(ctx, userID)
}

func (r *LedgerRepository) FindLedgerByID(ctx context.Context, userID string) (*domain.Ledger, error) {
	query := `
        SELECT user_id, balance, history
        FROM ledgers
        WHERE user_id = $1;
    `
	return scanLedger(r.db.QueryRow(ctx, query, userID))
}

func (r *LedgerRepository) ApplyDelta(ctx context.Context, userID string, delta int64, record domain.TransactionRecord) (*domain.Ledger, error) {
	recordJSON, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal transaction record: %w", err)
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	// Lock the row so concurrent deltas for the same user serialize.
	var balance int64
	err = tx.QueryRow(ctx, `SELECT balance FROM ledgers WHERE user_id = $1 FOR UPDATE;`, userID).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("no ledger for user %q: %w", userID, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to lock ledger row: %w", err)
	}

	if balance+delta < 0 {
		return nil, fmt.Errorf("delta %d would overdraw balance %d: %w", delta, balance, apperrors.ErrInsufficientFunds)
	}

	updateQuery := `
        UPDATE ledgers
        SET balance = balance + $2,
            history = history || $3::jsonb,
            last_updated_at = now()
        WHERE user_id = $1;
    `
	if _, err := tx.Exec(ctx, updateQuery, userID, delta, recordJSON); err != nil {
		return nil, fmt.Errorf("failed to apply delta: %w", err)
	}

	ledger, err := scanLedger(tx.QueryRow(ctx, `SELECT user_id, balance, history FROM ledgers WHERE user_id = $1;`, userID))
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit delta: %w", err)
	}
	return ledger, nil
}

func (r *LedgerRepository) ClearHistory(ctx context.Context, userID string) (*domain.Ledger, error) {
	query := `
        UPDATE ledgers
        SET history = '[]'::jsonb,
            last_updated_at = now()
        WHERE user_id = $1
        RETURNING user_id, balance, history;
    `
	ledger, err := scanLedger(r.db.QueryRow(ctx, query, userID))
	if err != nil {
		return nil, err
	}
	return ledger, nil
}

// scanLedger reads one ledger row, decoding the JSONB history column.
func scanLedger(row pgx.Row) (*domain.Ledger, error) {
	var ledger domain.Ledger
	var historyJSON []byte
	if err := row.Scan(&ledger.UserID, &ledger.Balance, &historyJSON); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("ledger row: %w", apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to scan ledger row: %w", err)
	}
	if err := json.Unmarshal(historyJSON, &ledger.History); err != nil {
		return nil, fmt.Errorf("failed to decode ledger history: %w", err)
	}
	if ledger.History == nil {
		ledger.History = []domain.TransactionRecord{}
	}
	return &ledger, nil
}
