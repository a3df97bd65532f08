package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/obrasoft/obra-backoffice/internal/apperrors"
	portssvc "github.com/obrasoft/obra-backoffice/internal/core/ports/services"
	"github.com/obrasoft/obra-backoffice/internal/dto"
	"github.com/obrasoft/obra-backoffice/internal/middleware"
)

// settlementHandler handles HTTP requests for the atomic payment operation.
type settlementHandler struct {
	settlementService portssvc.SettlementSvcFacade
}

// newSettlementHandler creates a new settlementHandler.
func newSettlementHandler(ss portssvc.SettlementSvcFacade) *settlementHandler {
	return &settlementHandler{
		settlementService: ss,
	}
}

// registerSettlementRoutes registers routes related to settlements.
func registerSettlementRoutes(rg *gin.RouterGroup, settlementService portssvc.SettlementSvcFacade) {
	h := newSettlementHandler(settlementService)

	settlements := rg.Group("/settlements")
	{
		settlements.POST("", h.settle)
		settlements.POST("/:payableID/revert", h.revert)
	}
}

// settle godoc
// @Summary Settle an approved payable
// @Description Pays an APPROVED payable from an account: debits the balance, appends the ledger transaction, stamps the payable PAID and mirrors a project expense where applicable, atomically
// @Tags settlements
// @Accept  json
// @Produce  json
// @Param   settlement body dto.SettleRequest true "Settlement details"
// @Success 200 {object} dto.SettlementResponse
// @Failure 400 {object} map[string]string "Invalid input or currency mismatch"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Actor may not settle"
// @Failure 404 {object} map[string]string "Payable or account not found"
// @Failure 409 {object} map[string]string "Payable is not APPROVED or lost a concurrent race"
// @Failure 422 {object} map[string]string "Insufficient funds"
// @Failure 500 {object} map[string]string "Failed to settle payable"
// @Security BearerAuth
// @Router /settlements [post]
func (h *settlementHandler) settle(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.SettleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for Settle", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	cap, ok := middleware.GetCapabilityFromContext(c.Request.Context())
	if !ok {
		logger.Error("Capability not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	resp, err := h.settlementService.Settle(c.Request.Context(), req, cap)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrForbidden):
			logger.Warn("Actor lacks settle capability")
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrInsufficientFunds):
			logger.Warn("Settlement refused, insufficient funds", slog.String("error", err.Error()))
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrCurrencyMismatch), errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Settlement refused", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrInvalidStateTransition), errors.Is(err, apperrors.ErrConflict):
			logger.Warn("Settlement conflict", slog.String("error", err.Error()))
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to settle payable", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to settle payable"})
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}

// revert godoc
// @Summary Revert a settlement
// @Description Undoes a settlement while the payable is PAID: re-credits the account, removes the settling transaction and mirrored expense, and returns the payable to APPROVED, atomically
// @Tags settlements
// @Produce  json
// @Param   payableID path string true "Payable ID"
// @Success 200 {object} dto.PayableResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Actor may not settle"
// @Failure 404 {object} map[string]string "Payable not found"
// @Failure 409 {object} map[string]string "Payable is not PAID"
// @Failure 500 {object} map[string]string "Failed to revert settlement"
// @Security BearerAuth
// @Router /settlements/{payableID}/revert [post]
func (h *settlementHandler) revert(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	payableID := c.Param("payableID")

	cap, ok := middleware.GetCapabilityFromContext(c.Request.Context())
	if !ok {
		logger.Error("Capability not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	payable, err := h.settlementService.Revert(c.Request.Context(), payableID, cap)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Payable not found"})
		case errors.Is(err, apperrors.ErrForbidden):
			logger.Warn("Actor lacks settle capability")
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrInvalidStateTransition), errors.Is(err, apperrors.ErrConflict):
			logger.Warn("Reversal conflict", slog.String("error", err.Error()))
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to revert settlement", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to revert settlement"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToPayableResponse(payable))
}
