package handlers_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/nabung-ai/tabungan_backend/internal/apperrors"
	"github.com/nabung-ai/tabungan_backend/internal/core/domain"
	portssvc "github.com/nabung-ai/tabungan_backend/internal/core/ports/services"
	"github.com/nabung-ai/tabungan_backend/internal/dto"
	"github.com/nabung-ai/tabungan_backend/internal/handlers"
	"github.com/nabung-ai/tabungan_backend/internal/platform/config"
)

// --- Mock TransactionService ---
type MockTransactionService struct {
	mock.Mock
}

func (m *MockTransactionService) GetLedger(ctx context.Context, userID string) (*domain.Ledger, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Ledger), args.Error(1)
}

func (m *MockTransactionService) Withdraw(ctx context.Context, userID string, amount int64) (*domain.Ledger, error) {
	args := m.Called(ctx, userID, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Ledger), args.Error(1)
}

func (m *MockTransactionService) ClearHistory(ctx context.Context, userID string) (*domain.Ledger, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Ledger), args.Error(1)
}

func (m *MockTransactionService) SubmitDeposit(ctx context.Context, userID string, amount int64, image string) (*dto.DepositResult, error) {
	args := m.Called(ctx, userID, amount, image)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.DepositResult), args.Error(1)
}

// --- Test Suite ---
type TransactionHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockService *MockTransactionService
}

func (suite *TransactionHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.mockService = new(MockTransactionService)

	cfg := &config.Config{
		Port:         "8080",
		IsProduction: true, // no swagger routes in tests
		RateLimit:    "1000-S",
	}

	suite.router = gin.New()
	err := handlers.RegisterRoutes(suite.router, cfg, &portssvc.ServiceContainer{
		Transaction: suite.mockService,
	})
	suite.Require().NoError(err)
}

func (suite *TransactionHandlerTestSuite) postTransaction(path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *TransactionHandlerTestSuite) TestSubmitTransaction_WithdrawSuccess() {
	ledger := &domain.Ledger{
		UserID:  "budi",
		Balance: 60000,
		History: []domain.TransactionRecord{{RecordID: "r1", Amount: -40000, Status: domain.StatusWithdraw}},
	}
	suite.mockService.On("Withdraw", mock.Anything, "budi", int64(40000)).Return(ledger, nil).Once()

	w := suite.postTransaction("/api/v1/transactions", `{"type":"withdraw","userId":"budi","amount":40000}`)

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.WithdrawResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(int64(60000), resp.Total)
	suite.Len(resp.History, 1)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *TransactionHandlerTestSuite) TestSubmitTransaction_WithdrawInsufficientFunds() {
	suite.mockService.On("Withdraw", mock.Anything, "budi", int64(40000)).
		Return(nil, fmt.Errorf("balance too low: %w", apperrors.ErrInsufficientFunds)).Once()

	w := suite.postTransaction("/api/v1/transactions", `{"type":"withdraw","userId":"budi","amount":40000}`)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(w.Body.String(), "Insufficient balance")
}

func (suite *TransactionHandlerTestSuite) TestSubmitTransaction_UnknownType() {
	w := suite.postTransaction("/api/v1/transactions", `{"type":"gamble","userId":"budi","amount":40000}`)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(w.Body.String(), "Unknown transaction type")
	suite.mockService.AssertNotCalled(suite.T(), "Withdraw", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionHandlerTestSuite) TestSubmitTransaction_MissingUserID() {
	w := suite.postTransaction("/api/v1/transactions", `{"type":"clear"}`)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *TransactionHandlerTestSuite) TestSubmitTransaction_ClearSuccess() {
	cleared := &domain.Ledger{UserID: "budi", Balance: 75000, History: []domain.TransactionRecord{}}
	suite.mockService.On("ClearHistory", mock.Anything, "budi").Return(cleared, nil).Once()

	w := suite.postTransaction("/api/v1/transactions", `{"type":"clear","userId":"budi"}`)

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.ClearResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(int64(75000), resp.Balance)
	suite.Empty(resp.History)
}

func (suite *TransactionHandlerTestSuite) TestSubmitTransaction_DepositMissingImage() {
	w := suite.postTransaction("/api/v1/transactions", `{"type":"deposit","userId":"budi","amount":50000}`)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(w.Body.String(), "Image and amount are required")
	suite.mockService.AssertNotCalled(suite.T(), "SubmitDeposit", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionHandlerTestSuite) TestSubmitTransaction_DepositAccepted() {
	confidence := 92
	result := &dto.DepositResult{
		Verdict: &domain.Verdict{
			Analysis:      domain.VerdictAnalysis{ObjectDetectedAsMoney: true, Currency: "IDR", ImageClear: true, DetectedNominal: 50000, ConfidenceLevel: 92},
			Validation:    domain.VerdictValidation{InputNominal: 50000, MatchExact: true},
			FinalDecision: domain.VerdictDecision{Status: "ACCEPTED", Reason: "Uang asli dan nominal cocok"},
		},
		Record: domain.TransactionRecord{RecordID: "r1", Amount: 50000, Status: domain.StatusAccepted, Confidence: &confidence},
		Ledger: &domain.Ledger{
			UserID:  "budi",
			Balance: 50000,
			History: []domain.TransactionRecord{{RecordID: "r1", Amount: 50000, Status: domain.StatusAccepted, Confidence: &confidence}},
		},
	}
	suite.mockService.On("SubmitDeposit", mock.Anything, "budi", int64(50000), "aW1n").Return(result, nil).Once()

	w := suite.postTransaction("/api/v1/transactions", `{"type":"deposit","userId":"budi","amount":50000,"image":"aW1n"}`)

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.DepositResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().NotNil(resp.Analysis)
	suite.Equal("ACCEPTED", resp.FinalDecision.Status)
	suite.Equal(int64(50000), resp.Total)
}

func (suite *TransactionHandlerTestSuite) TestSubmitTransaction_DepositMalformedVerdictStillResponds() {
	confidence := 0
	result := &dto.DepositResult{
		Verdict: nil,
		Record:  domain.TransactionRecord{RecordID: "r1", Amount: 0, Status: domain.StatusRejected, Confidence: &confidence, Reason: "AI output unparseable"},
		Ledger:  &domain.Ledger{UserID: "budi", Balance: 0, History: []domain.TransactionRecord{{RecordID: "r1", Status: domain.StatusRejected}}},
	}
	suite.mockService.On("SubmitDeposit", mock.Anything, "budi", int64(50000), "aW1n").Return(result, nil).Once()

	w := suite.postTransaction("/api/v1/transactions", `{"type":"deposit","userId":"budi","amount":50000,"image":"aW1n"}`)

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.DepositResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Nil(resp.Analysis)
	suite.Equal("REJECTED", resp.FinalDecision.Status)
	suite.Equal("AI output unparseable", resp.FinalDecision.Reason)
}

func (suite *TransactionHandlerTestSuite) TestSubmitTransaction_DepositPayloadTooLarge() {
	suite.mockService.On("SubmitDeposit", mock.Anything, "budi", int64(50000), "aW1n").
		Return(nil, fmt.Errorf("encoded image too big: %w", apperrors.ErrPayloadTooLarge)).Once()

	w := suite.postTransaction("/api/v1/transactions", `{"type":"deposit","userId":"budi","amount":50000,"image":"aW1n"}`)

	suite.Equal(http.StatusRequestEntityTooLarge, w.Code)
	suite.Contains(w.Body.String(), "Image too large")
}

func (suite *TransactionHandlerTestSuite) TestSubmitTransaction_DepositOracleUnavailable() {
	suite.mockService.On("SubmitDeposit", mock.Anything, "budi", int64(50000), "aW1n").
		Return(nil, fmt.Errorf("%w: connection reset", apperrors.ErrOracleUnavailable)).Once()

	w := suite.postTransaction("/api/v1/transactions", `{"type":"deposit","userId":"budi","amount":50000,"image":"aW1n"}`)

	suite.Equal(http.StatusBadGateway, w.Code)
	suite.Contains(w.Body.String(), "AI validator unavailable")
}

func (suite *TransactionHandlerTestSuite) TestGetLedger_Success() {
	ledger := &domain.Ledger{UserID: "budi", Balance: 123000, History: []domain.TransactionRecord{}}
	suite.mockService.On("GetLedger", mock.Anything, "budi").Return(ledger, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/ledgers/budi", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.LedgerResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("budi", resp.ID)
	suite.Equal(int64(123000), resp.Balance)
}

func (suite *TransactionHandlerTestSuite) TestLegacyCheck_PostDispatches() {
	cleared := &domain.Ledger{UserID: "budi", Balance: 1000, History: []domain.TransactionRecord{}}
	suite.mockService.On("ClearHistory", mock.Anything, "budi").Return(cleared, nil).Once()

	w := suite.postTransaction("/api/check", `{"type":"clear","userId":"budi"}`)

	suite.Equal(http.StatusOK, w.Code)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *TransactionHandlerTestSuite) TestLegacyCheck_GetRequiresUserID() {
	req := httptest.NewRequest(http.MethodGet, "/api/check", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(w.Body.String(), "userId is required")
}

func (suite *TransactionHandlerTestSuite) TestLegacyCheck_GetFetchesLedger() {
	ledger := &domain.Ledger{UserID: "budi", Balance: 5000, History: []domain.TransactionRecord{}}
	suite.mockService.On("GetLedger", mock.Anything, "budi").Return(ledger, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/check?userId=budi", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
}

func TestTransactionHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(TransactionHandlerTestSuite))
}
