package services

import (
	"context"

	"github.com/nabung-ai/tabungan_backend/internal/core/domain"
	"github.com/nabung-ai/tabungan_backend/internal/dto"
)

// TransactionReaderSvc defines read operations over user ledgers.
type TransactionReaderSvc interface {
	// GetLedger returns the ledger for a user identifier, creating a fresh
	// zero-balance one if none exists yet.
	GetLedger(ctx context.Context, userID string) (*domain.Ledger, error)
}

// TransactionWriterSvc defines the ledger-mutating transaction flows.
type TransactionWriterSvc interface {
	// Withdraw debits the balance after a strict sufficient-funds check and
	// records a WITHDRAW entry. amount must be positive.
	Withdraw(ctx context.Context, userID string, amount int64) (*domain.Ledger, error)

	// ClearHistory truncates the user's history, leaving the balance as-is.
	ClearHistory(ctx context.Context, userID string) (*domain.Ledger, error)

	// SubmitDeposit runs the full deposit pipeline: payload checks, oracle
	// call, verdict interpretation and the acceptance decision. Every attempt
	// that reaches the decision stage appends exactly one history record,
	// accepted or rejected.
	SubmitDeposit(ctx context.Context, userID string, amount int64, image string) (*dto.DepositResult, error)
}

// TransactionSvcFacade combines all transaction service interfaces.
type TransactionSvcFacade interface {
	TransactionReaderSvc
	TransactionWriterSvc
}
