package dto

import "github.com/nabung-ai/tabungan_backend/internal/core/domain"

// LedgerResponse is the full per-user ledger record returned by the
// retrieval endpoint.
type LedgerResponse struct {
	ID      string                      `json:"id"`
	Balance int64                       `json:"balance"`
	History []TransactionRecordResponse `json:"history"`
}

// ToLedgerResponse converts a domain.Ledger to its API form.
func ToLedgerResponse(ledger *domain.Ledger) LedgerResponse {
	return LedgerResponse{
		ID:      ledger.UserID,
		Balance: ledger.Balance,
		History: ToTransactionRecordResponses(ledger.History),
	}
}
