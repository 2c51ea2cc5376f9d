package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/nabung-ai/tabungan_backend/internal/apperrors"
	portssvc "github.com/nabung-ai/tabungan_backend/internal/core/ports/services"
	"github.com/nabung-ai/tabungan_backend/internal/dto"
	"github.com/nabung-ai/tabungan_backend/internal/middleware"
)

// transactionHandler handles HTTP requests for the transaction gateway.
type transactionHandler struct {
	transactionService portssvc.TransactionSvcFacade
}

// newTransactionHandler creates a new transactionHandler.
func newTransactionHandler(ts portssvc.TransactionSvcFacade) *transactionHandler {
	return &transactionHandler{
		transactionService: ts,
	}
}

// registerTransactionRoutes registers the transaction submission route.
func registerTransactionRoutes(rg *gin.RouterGroup, transactionService portssvc.TransactionSvcFacade) {
	h := newTransactionHandler(transactionService)
	rg.POST("/transactions", h.submitTransaction)
}

// submitTransaction godoc
// @Summary Submit a transaction
// @Description Dispatches a deposit, withdraw or clear request for a user ledger. Deposits carry a base64 currency photo that is adjudicated by the AI validator before any balance change.
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   transaction body dto.TransactionRequest true "Transaction details"
// @Success 200 {object} dto.DepositResponse
// @Failure 400 {object} map[string]string "Invalid input, unknown type or insufficient funds"
// @Failure 413 {object} map[string]string "Image payload too large"
// @Failure 502 {object} map[string]string "AI validator unavailable"
// @Failure 500 {object} map[string]string "Failed to process transaction"
// @Router /transactions [post]
func (h *transactionHandler) submitTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) && hasTypeFieldError(validationErrs) {
			logger.Warn("Unknown transaction type in request", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown transaction type"})
			return
		}
		logger.Warn("Failed to bind JSON for transaction", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	logger = logger.With(slog.String("user_id", req.UserID), slog.String("transaction_type", req.Type))
	logger.Info("Received transaction request")

	switch req.Type {
	case "withdraw":
		h.handleWithdraw(c, logger, req)
	case "clear":
		h.handleClear(c, logger, req)
	case "deposit":
		h.handleDeposit(c, logger, req)
	default:
		// Binding's oneof already refuses other values; kept as the routing contract.
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown transaction type"})
	}
}

func (h *transactionHandler) handleWithdraw(c *gin.Context, logger *slog.Logger, req dto.TransactionRequest) {
	ledger, err := h.transactionService.Withdraw(c.Request.Context(), req.UserID, req.Amount)
	if err != nil {
		h.respondTransactionError(c, logger, err, "withdraw")
		return
	}

	logger.Info("Withdrawal successful", slog.Int64("balance", ledger.Balance))
	c.JSON(http.StatusOK, dto.ToWithdrawResponse(ledger))
}

func (h *transactionHandler) handleClear(c *gin.Context, logger *slog.Logger, req dto.TransactionRequest) {
	ledger, err := h.transactionService.ClearHistory(c.Request.Context(), req.UserID)
	if err != nil {
		h.respondTransactionError(c, logger, err, "clear history")
		return
	}

	logger.Info("History cleared")
	c.JSON(http.StatusOK, dto.ToClearResponse(ledger))
}

func (h *transactionHandler) handleDeposit(c *gin.Context, logger *slog.Logger, req dto.TransactionRequest) {
	if req.Image == "" || req.Amount == 0 {
		logger.Warn("Deposit missing image or amount")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Image and amount are required for deposits"})
		return
	}

	result, err := h.transactionService.SubmitDeposit(c.Request.Context(), req.UserID, req.Amount, req.Image)
	if err != nil {
		h.respondTransactionError(c, logger, err, "process deposit")
		return
	}

	logger.Info("Deposit processed", slog.String("status", string(result.Record.Status)))
	c.JSON(http.StatusOK, dto.ToDepositResponse(result))
}

// respondTransactionError maps service errors onto the response contract.
// Everything that fires before a ledger mutation is a 4xx; oracle transport
// failures surface as 502 with detail for diagnostics.
func (h *transactionHandler) respondTransactionError(c *gin.Context, logger *slog.Logger, err error, action string) {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation error", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrInsufficientFunds):
		logger.Warn("Insufficient funds", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Insufficient balance"})
	case errors.Is(err, apperrors.ErrPayloadTooLarge):
		logger.Warn("Image payload too large", slog.String("error", err.Error()))
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "Image too large. Use a smaller resolution."})
	case errors.Is(err, apperrors.ErrOracleUnavailable):
		logger.Error("Oracle unavailable", slog.String("error", err.Error()))
		c.JSON(http.StatusBadGateway, gin.H{"error": "AI validator unavailable", "detail": err.Error()})
	default:
		logger.Error("Failed to "+action, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to " + action})
	}
}

// hasTypeFieldError reports whether binding failed on the Type field, so the
// unknown-type case gets its dedicated message instead of a generic one.
func hasTypeFieldError(errs validator.ValidationErrors) bool {
	for _, fe := range errs {
		if fe.Field() == "Type" {
			return true
		}
	}
	return false
}
