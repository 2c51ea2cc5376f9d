package services

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nabung-ai/tabungan_backend/internal/apperrors"
	"github.com/nabung-ai/tabungan_backend/internal/core/domain"
	portsrepo "github.com/nabung-ai/tabungan_backend/internal/core/ports/repositories"
	portssvc "github.com/nabung-ai/tabungan_backend/internal/core/ports/services"
	"github.com/nabung-ai/tabungan_backend/internal/dto"
	"github.com/nabung-ai/tabungan_backend/internal/utils"
)

const (
	// acceptanceConfidenceFloor is the system's own gate on top of the
	// oracle's verdict. A deposit is credited only when the oracle says
	// ACCEPTED and reports at least this confidence; the oracle's status
	// alone is never enough.
	acceptanceConfidenceFloor = 85

	// defaultMaxImagePayload caps the encoded image size checked before any
	// oracle call is attempted.
	defaultMaxImagePayload = 3_500_000

	// defaultOracleTimeout bounds a single oracle call.
	defaultOracleTimeout = 30 * time.Second

	// malformedVerdictReason is recorded when the oracle output was unparseable.
	malformedVerdictReason = "AI output unparseable"

	// rejectionFallbackReason is recorded when the oracle rejected a deposit
	// without giving a reason. Kept in Indonesian, it is user-facing copy.
	rejectionFallbackReason = "Ditolak oleh AI"
)

// dataURIPrefix matches the header the browser prepends to base64 image data.
var dataURIPrefix = regexp.MustCompile(`^data:image/\w+;base64,`)

// transactionServiceImpl implements the TransactionSvcFacade interface.
type transactionServiceImpl struct {
	BaseService
	ledgerRepo      portsrepo.LedgerRepositoryFacade
	oracle          portssvc.MoneyOracle
	publisher       portssvc.TransactionEventPublisher
	oracleTimeout   time.Duration
	maxImagePayload int
}

// TransactionServiceOption is a functional option for configuring the
// transaction service.
type TransactionServiceOption func(*transactionServiceImpl)

// WithTransactionEventPublisher adds an event publisher dependency.
func WithTransactionEventPublisher(publisher portssvc.TransactionEventPublisher) TransactionServiceOption {
	return func(s *transactionServiceImpl) {
		s.publisher = publisher
	}
}

// WithOracleTimeout overrides the per-call oracle timeout.
func WithOracleTimeout(timeout time.Duration) TransactionServiceOption {
	return func(s *transactionServiceImpl) {
		if timeout > 0 {
			s.oracleTimeout = timeout
		}
	}
}

// WithMaxImagePayload overrides the encoded image size cap.
func WithMaxImagePayload(maxChars int) TransactionServiceOption {
	return func(s *transactionServiceImpl) {
		if maxChars > 0 {
			s.maxImagePayload = maxChars
		}
	}
}

// NewTransactionService creates the transaction service with the provided options.
func NewTransactionService(ledgerRepo portsrepo.LedgerRepositoryFacade, oracle portssvc.MoneyOracle, options ...TransactionServiceOption) portssvc.TransactionSvcFacade {
	svc := &transactionServiceImpl{
		ledgerRepo:      ledgerRepo,
		oracle:          oracle,
		oracleTimeout:   defaultOracleTimeout,
		maxImagePayload: defaultMaxImagePayload,
	}

	for _, option := range options {
		option(svc)
	}

	return svc
}

// Ensure transactionServiceImpl implements the TransactionSvcFacade interface
var _ portssvc.TransactionSvcFacade = (*transactionServiceImpl)(nil)

func (s *transactionServiceImpl) GetLedger(ctx context.Context, userID string) (*domain.Ledger, error) {
	if userID == "" {
		return nil, fmt.Errorf("user identifier is required: %w", apperrors.ErrValidation)
	}

	ledger, err := s.ledgerRepo.EnsureLedger(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to ensure ledger", slog.String("user_id", userID))
		return nil, err
	}
	return ledger, nil
}

func (s *transactionServiceImpl) Withdraw(ctx context.Context, userID string, amount int64) (*domain.Ledger, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("withdrawal amount must be positive: %w", apperrors.ErrValidation)
	}

	ledger, err := s.ledgerRepo.EnsureLedger(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to ensure ledger for withdrawal", slog.String("user_id", userID))
		return nil, err
	}

	// Strict check before mutation; the store re-checks under its own lock so
	// racing withdrawals cannot drive the balance negative.
	if ledger.Balance < amount {
		return nil, fmt.Errorf("balance %d is less than withdrawal of %d: %w", ledger.Balance, amount, apperrors.ErrInsufficientFunds)
	}

	record := domain.TransactionRecord{
		RecordID: uuid.NewString(),
		Amount:   -amount,
		Status:   domain.StatusWithdraw,
		Date:     time.Now().UTC(),
	}

	updated, err := s.ledgerRepo.ApplyDelta(ctx, userID, -amount, record)
	if err != nil {
		if errors.Is(err, apperrors.ErrInsufficientFunds) {
			return nil, err
		}
		s.LogError(ctx, err, "Failed to commit withdrawal", slog.String("user_id", userID))
		return nil, err
	}

	s.LogInfo(ctx, "Withdrawal committed",
		slog.String("user_id", userID),
		slog.String("amount", utils.FormatRupiah(amount)),
		slog.Int64("balance", updated.Balance))
	s.publishCompleted(ctx, userID, record, updated.Balance)
	return updated, nil
}

func (s *transactionServiceImpl) ClearHistory(ctx context.Context, userID string) (*domain.Ledger, error) {
	if _, err := s.ledgerRepo.EnsureLedger(ctx, userID); err != nil {
		s.LogError(ctx, err, "Failed to ensure ledger for clear", slog.String("user_id", userID))
		return nil, err
	}

	cleared, err := s.ledgerRepo.ClearHistory(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to clear history", slog.String("user_id", userID))
		return nil, err
	}

	s.LogInfo(ctx, "History cleared", slog.String("user_id", userID), slog.Int64("balance", cleared.Balance))
	return cleared, nil
}

func (s *transactionServiceImpl) SubmitDeposit(ctx context.Context, userID string, amount int64, image string) (*dto.DepositResult, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("deposit amount must be positive: %w", apperrors.ErrValidation)
	}
	if image == "" {
		return nil, fmt.Errorf("deposit image is required: %w", apperrors.ErrValidation)
	}

	encoded := dataURIPrefix.ReplaceAllString(image, "")

	// Reject oversized payloads before spending an oracle call on them.
	if len(encoded) > s.maxImagePayload {
		return nil, fmt.Errorf("encoded image is %d chars, cap is %d: %w", len(encoded), s.maxImagePayload, apperrors.ErrPayloadTooLarge)
	}

	imageBytes, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("image is not valid base64: %w", apperrors.ErrValidation)
	}

	if _, err := s.ledgerRepo.EnsureLedger(ctx, userID); err != nil {
		s.LogError(ctx, err, "Failed to ensure ledger for deposit", slog.String("user_id", userID))
		return nil, err
	}

	oracleCtx, cancel := context.WithTimeout(ctx, s.oracleTimeout)
	defer cancel()

	rawText, err := s.oracle.AnalyzeDeposit(oracleCtx, amount, imageBytes)
	if err != nil {
		s.LogError(ctx, err, "Oracle call failed", slog.String("user_id", userID))
		return nil, fmt.Errorf("%w: %v", apperrors.ErrOracleUnavailable, err)
	}

	verdict, verdictErr := InterpretVerdict(rawText)
	if verdictErr != nil {
		// Not fatal: an unparseable verdict becomes a recorded rejection so
		// the attempt stays auditable and the user gets a coherent response.
		s.LogWarn(ctx, "Oracle verdict unparseable, recording rejection",
			slog.String("user_id", userID),
			slog.String("raw_output", rawText))
	}

	record, delta := s.decideDeposit(verdict, verdictErr, amount)

	updated, err := s.ledgerRepo.ApplyDelta(ctx, userID, delta, record)
	if err != nil {
		// The decision is already made at this point; a failed commit must
		// surface as a server fault, not be swallowed.
		s.LogError(ctx, err, "Failed to commit deposit record",
			slog.String("user_id", userID),
			slog.String("status", string(record.Status)))
		return nil, err
	}

	s.LogInfo(ctx, "Deposit adjudicated",
		slog.String("user_id", userID),
		slog.String("status", string(record.Status)),
		slog.String("claimed", utils.FormatRupiah(amount)),
		slog.Int64("balance", updated.Balance))
	s.publishCompleted(ctx, userID, record, updated.Balance)

	return &dto.DepositResult{
		Verdict: verdict,
		Record:  record,
		Ledger:  updated,
	}, nil
}

// decideDeposit applies the acceptance policy to an interpreted verdict and
// produces the history record plus the balance delta to commit. Every deposit
// attempt yields exactly one record, rejected attempts included.
func (s *transactionServiceImpl) decideDeposit(verdict *domain.Verdict, verdictErr error, claimed int64) (domain.TransactionRecord, int64) {
	record := domain.TransactionRecord{
		RecordID: uuid.NewString(),
		Date:     time.Now().UTC(),
	}

	if verdictErr != nil {
		confidence := 0
		record.Amount = 0
		record.Status = domain.StatusRejected
		record.Confidence = &confidence
		record.Reason = malformedVerdictReason
		return record, 0
	}

	confidence := verdict.Analysis.ConfidenceLevel
	record.Confidence = &confidence

	if verdict.FinalDecision.Status == string(domain.StatusAccepted) && confidence >= acceptanceConfidenceFloor {
		record.Amount = claimed
		record.Status = domain.StatusAccepted
		record.Reason = verdict.FinalDecision.Reason
		return record, claimed
	}

	record.Amount = 0
	record.Status = domain.NormalizeVerdictStatus(verdict.FinalDecision.Status)
	record.Reason = verdict.FinalDecision.Reason
	if record.Reason == "" {
		record.Reason = rejectionFallbackReason
	}
	return record, 0
}

// publishCompleted emits a TransactionCompleted event. Best-effort: failures
// are logged and never fail the originating request.
func (s *transactionServiceImpl) publishCompleted(ctx context.Context, userID string, record domain.TransactionRecord, balance int64) {
	if s.publisher == nil {
		return
	}

	event := domain.TransactionCompleted{
		RecordID:   record.RecordID,
		UserID:     userID,
		Amount:     decimal.NewFromInt(record.Amount),
		Status:     record.Status,
		Balance:    decimal.NewFromInt(balance),
		OccurredAt: record.Date,
	}

	if err := s.publisher.PublishTransactionCompleted(ctx, event); err != nil {
		s.LogError(ctx, err, "Failed to publish transaction event",
			slog.String("user_id", userID),
			slog.String("record_id", record.RecordID))
	}
}
