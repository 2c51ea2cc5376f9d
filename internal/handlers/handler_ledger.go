package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nabung-ai/tabungan_backend/internal/apperrors"
	portssvc "github.com/nabung-ai/tabungan_backend/internal/core/ports/services"
	"github.com/nabung-ai/tabungan_backend/internal/dto"
	"github.com/nabung-ai/tabungan_backend/internal/middleware"
)

// ledgerHandler handles HTTP requests for ledger retrieval.
type ledgerHandler struct {
	transactionService portssvc.TransactionReaderSvc
}

// newLedgerHandler creates a new ledgerHandler.
func newLedgerHandler(ts portssvc.TransactionReaderSvc) *ledgerHandler {
	return &ledgerHandler{
		transactionService: ts,
	}
}

// registerLedgerRoutes registers routes related to ledger retrieval.
func registerLedgerRoutes(rg *gin.RouterGroup, transactionService portssvc.TransactionReaderSvc) {
	h := newLedgerHandler(transactionService)
	rg.GET("/ledgers/:userID", h.getLedger)
}

// getLedger godoc
// @Summary Get a user ledger
// @Description Returns the balance and transaction history for a user identifier, creating a fresh zero-balance ledger if none exists yet.
// @Tags ledgers
// @Produce  json
// @Param   userID path string true "User identifier"
// @Success 200 {object} dto.LedgerResponse
// @Failure 500 {object} map[string]string "Failed to retrieve ledger"
// @Router /ledgers/{userID} [get]
func (h *ledgerHandler) getLedger(c *gin.Context) {
	h.respondLedger(c, c.Param("userID"))
}

// getLedgerLegacy serves the shipped frontend's GET /api/check?userId= call.
func (h *ledgerHandler) getLedgerLegacy(c *gin.Context) {
	userID := c.Query("userId")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId is required"})
		return
	}
	h.respondLedger(c, userID)
}

func (h *ledgerHandler) respondLedger(c *gin.Context, userID string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("user_id", userID))

	ledger, err := h.transactionService.GetLedger(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Invalid ledger request", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to get ledger from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve ledger"})
		return
	}

	logger.Debug("Ledger retrieved")
	c.JSON(http.StatusOK, dto.ToLedgerResponse(ledger))
}
