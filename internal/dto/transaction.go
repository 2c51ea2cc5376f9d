package dto

import (
	"time"

	"github.com/nabung-ai/tabungan_backend/internal/core/domain"
)

// TransactionRequest is the single submission shape for the transaction
// gateway. Amount and Image are conditionally required depending on Type;
// the handler and service enforce that, binding only checks the common shape.
type TransactionRequest struct {
	Type   string `json:"type" binding:"required,oneof=deposit withdraw clear"`
	UserID string `json:"userId" binding:"required"`
	Amount int64  `json:"amount"`
	Image  string `json:"image"` // data-URI or raw base64, deposits only
}

// TransactionRecordResponse mirrors domain.TransactionRecord for API output.
type TransactionRecordResponse struct {
	RecordID   string                   `json:"recordID"`
	Amount     int64                    `json:"amount"`
	Status     domain.TransactionStatus `json:"status"`
	Confidence *int                     `json:"confidence,omitempty"`
	Reason     string                   `json:"reason,omitempty"`
	Date       time.Time                `json:"date"`
}

// WithdrawResponse is returned for committed withdraw flows.
type WithdrawResponse struct {
	Total   int64                       `json:"total"`
	History []TransactionRecordResponse `json:"history"`
}

// ClearResponse is returned after a history clear.
type ClearResponse struct {
	Balance int64                       `json:"balance"`
	History []TransactionRecordResponse `json:"history"`
}

// DepositResponse merges the oracle verdict with the post-commit ledger view.
// Analysis and Validation are absent when the oracle output was unparseable;
// FinalDecision is always present (synthesized for malformed output) so
// callers can uniformly show an outcome.
type DepositResponse struct {
	Analysis      *domain.VerdictAnalysis     `json:"analysis,omitempty"`
	Validation    *domain.VerdictValidation   `json:"validation,omitempty"`
	FinalDecision domain.VerdictDecision      `json:"final_decision"`
	Total         int64                       `json:"total"`
	History       []TransactionRecordResponse `json:"history"`
}

// DepositResult is the service-level outcome of one deposit attempt.
// Verdict is nil when the oracle output could not be parsed; Record is the
// history entry that was committed for the attempt.
type DepositResult struct {
	Verdict *domain.Verdict
	Record  domain.TransactionRecord
	Ledger  *domain.Ledger
}

// ToTransactionRecordResponse converts a domain record to its API form.
func ToTransactionRecordResponse(rec domain.TransactionRecord) TransactionRecordResponse {
	return TransactionRecordResponse{
		RecordID:   rec.RecordID,
		Amount:     rec.Amount,
		Status:     rec.Status,
		Confidence: rec.Confidence,
		Reason:     rec.Reason,
		Date:       rec.Date,
	}
}

// ToTransactionRecordResponses converts a history slice.
func ToTransactionRecordResponses(history []domain.TransactionRecord) []TransactionRecordResponse {
	res := make([]TransactionRecordResponse, len(history))
	for i, rec := range history {
		res[i] = ToTransactionRecordResponse(rec)
	}
	return res
}

// ToWithdrawResponse builds the withdraw response from the post-commit ledger.
func ToWithdrawResponse(ledger *domain.Ledger) WithdrawResponse {
	return WithdrawResponse{
		Total:   ledger.Balance,
		History: ToTransactionRecordResponses(ledger.History),
	}
}

// ToClearResponse builds the clear response from the post-clear ledger.
func ToClearResponse(ledger *domain.Ledger) ClearResponse {
	return ClearResponse{
		Balance: ledger.Balance,
		History: ToTransactionRecordResponses(ledger.History),
	}
}

// ToDepositResponse builds the deposit response, synthesizing the final
// decision from the committed record when no verdict was parseable.
func ToDepositResponse(result *DepositResult) DepositResponse {
	resp := DepositResponse{
		Total:   result.Ledger.Balance,
		History: ToTransactionRecordResponses(result.Ledger.History),
	}
	if result.Verdict != nil {
		analysis := result.Verdict.Analysis
		validation := result.Verdict.Validation
		resp.Analysis = &analysis
		resp.Validation = &validation
		resp.FinalDecision = result.Verdict.FinalDecision
		return resp
	}
	resp.FinalDecision = domain.VerdictDecision{
		Status: string(result.Record.Status),
		Reason: result.Record.Reason,
	}
	return resp
}
