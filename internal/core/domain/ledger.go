package domain

import "time"

// TransactionStatus classifies a single ledger history record.
type TransactionStatus string

const (
	StatusAccepted               TransactionStatus = "ACCEPTED"
	StatusRejectedNotMoney       TransactionStatus = "REJECTED_NOT_MONEY"
	StatusRejectedUnclearImage   TransactionStatus = "REJECTED_UNCLEAR_IMAGE"
	StatusRejectedAmountMismatch TransactionStatus = "REJECTED_AMOUNT_MISMATCH"
	StatusRejected               TransactionStatus = "REJECTED"
	StatusWithdraw               TransactionStatus = "WITHDRAW"
)

// IsRejection reports whether the status records a refused deposit attempt.
func (s TransactionStatus) IsRejection() bool {
	switch s {
	case StatusRejected, StatusRejectedNotMoney, StatusRejectedUnclearImage, StatusRejectedAmountMismatch:
		return true
	}
	return false
}

// NormalizeVerdictStatus maps a status string reported by the oracle onto the
// known verdict statuses. ACCEPTED and the rejection statuses pass through so
// the record keeps what the oracle reported, even when the credit is refused
// for other reasons. Anything unknown or empty collapses to the generic
// REJECTED, the oracle is never trusted to invent statuses.
func NormalizeVerdictStatus(raw string) TransactionStatus {
	s := TransactionStatus(raw)
	if s == StatusAccepted || s.IsRejection() {
		return s
	}
	return StatusRejected
}

// TransactionRecord is a single immutable entry in a user's ledger history.
// Amount is the signed delta applied to the balance: positive for a credited
// deposit, negative for a withdrawal, zero for an attempt that was not
// credited (the status alone can read ACCEPTED when the confidence floor
// refused the credit).
type TransactionRecord struct {
	RecordID   string            `json:"recordID"`
	Amount     int64             `json:"amount"`
	Status     TransactionStatus `json:"status"`
	Confidence *int              `json:"confidence,omitempty"` // only for AI-adjudicated records
	Reason     string            `json:"reason,omitempty"`     // only for rejections/acceptances with an oracle reason
	Date       time.Time         `json:"date"`
}

// Ledger is the per-user record of balance plus ordered transaction history.
// Balance is denominated in whole rupiah (smallest unit, no decimals for IDR)
// and never goes below zero once a transaction commits.
type Ledger struct {
	UserID  string              `json:"id"`
	Balance int64               `json:"balance"`
	History []TransactionRecord `json:"history"`
}
