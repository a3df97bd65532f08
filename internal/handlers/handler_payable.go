package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/obrasoft/obra-backoffice/internal/apperrors"
	"github.com/obrasoft/obra-backoffice/internal/core/domain"
	portssvc "github.com/obrasoft/obra-backoffice/internal/core/ports/services"
	"github.com/obrasoft/obra-backoffice/internal/dto"
	"github.com/obrasoft/obra-backoffice/internal/middleware"
)

// payableHandler handles HTTP requests related to payable documents.
type payableHandler struct {
	payableService portssvc.PayableSvcFacade
}

// newPayableHandler creates a new payableHandler.
func newPayableHandler(ps portssvc.PayableSvcFacade) *payableHandler {
	return &payableHandler{
		payableService: ps,
	}
}

// registerPayableRoutes registers routes related to payable documents.
func registerPayableRoutes(rg *gin.RouterGroup, payableService portssvc.PayableSvcFacade) {
	h := newPayableHandler(payableService)

	payables := rg.Group("/payables")
	{
		payables.POST("", h.submitPayable)
		payables.GET("/:id", h.getPayable)
		payables.POST("/:id/approve", h.approvePayable)
		payables.POST("/:id/reject", h.rejectPayable)
		payables.POST("/:id/revert-approval", h.revertToPending)
	}
}

// submitPayable godoc
// @Summary Submit a payable document
// @Description Creates a new payable document (advance, certification, fund request or salary) in PENDING
// @Tags payables
// @Accept  json
// @Produce  json
// @Param   payable body dto.SubmitPayableRequest true "Payable details"
// @Success 201 {object} dto.PayableResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to submit payable"
// @Security BearerAuth
// @Router /payables [post]
func (h *payableHandler) submitPayable(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.SubmitPayableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SubmitPayable", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	cap, ok := middleware.GetCapabilityFromContext(c.Request.Context())
	if !ok {
		logger.Error("Capability not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	payable, err := h.payableService.SubmitPayable(c.Request.Context(), req, cap.ActorID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error submitting payable", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to submit payable", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit payable"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToPayableResponse(payable))
}

// getPayable godoc
// @Summary Get a payable by ID
// @Description Retrieves one payable document with its settlement reference when paid
// @Tags payables
// @Produce  json
// @Param   id path string true "Payable ID"
// @Success 200 {object} dto.PayableResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Payable not found"
// @Failure 500 {object} map[string]string "Failed to retrieve payable"
// @Security BearerAuth
// @Router /payables/{id} [get]
func (h *payableHandler) getPayable(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	payableID := c.Param("id")

	payable, err := h.payableService.GetPayableByID(c.Request.Context(), payableID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Payable not found"})
		} else {
			logger.Error("Failed to get payable", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve payable"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToPayableResponse(payable))
}

// transition runs one approval-state change and writes the HTTP response.
func (h *payableHandler) transition(c *gin.Context, action string, run func(ctx *gin.Context, payableID string, cap domain.Capability) (*domain.Payable, error)) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	payableID := c.Param("id")

	cap, ok := middleware.GetCapabilityFromContext(c.Request.Context())
	if !ok {
		logger.Error("Capability not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	payable, err := run(c, payableID, cap)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Payable not found"})
		case errors.Is(err, apperrors.ErrForbidden):
			logger.Warn("Actor lacks approval capability", slog.String("action", action))
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrInvalidStateTransition), errors.Is(err, apperrors.ErrConflict):
			logger.Warn("Invalid payable transition", slog.String("action", action), slog.String("error", err.Error()))
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to transition payable", slog.String("action", action), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to " + action + " payable"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToPayableResponse(payable))
}

// approvePayable godoc
// @Summary Approve a payable
// @Description Moves a PENDING payable to APPROVED, making it eligible for settlement
// @Tags payables
// @Produce  json
// @Param   id path string true "Payable ID"
// @Success 200 {object} dto.PayableResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Actor may not approve"
// @Failure 404 {object} map[string]string "Payable not found"
// @Failure 409 {object} map[string]string "Payable is not PENDING"
// @Failure 500 {object} map[string]string "Failed to approve payable"
// @Security BearerAuth
// @Router /payables/{id}/approve [post]
func (h *payableHandler) approvePayable(c *gin.Context) {
	h.transition(c, "approve", func(ctx *gin.Context, payableID string, cap domain.Capability) (*domain.Payable, error) {
		return h.payableService.ApprovePayable(ctx.Request.Context(), payableID, cap)
	})
}

// rejectPayable godoc
// @Summary Reject a payable
// @Description Moves a PENDING payable to REJECTED
// @Tags payables
// @Produce  json
// @Param   id path string true "Payable ID"
// @Success 200 {object} dto.PayableResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Actor may not approve"
// @Failure 404 {object} map[string]string "Payable not found"
// @Failure 409 {object} map[string]string "Payable is not PENDING"
// @Failure 500 {object} map[string]string "Failed to reject payable"
// @Security BearerAuth
// @Router /payables/{id}/reject [post]
func (h *payableHandler) rejectPayable(c *gin.Context) {
	h.transition(c, "reject", func(ctx *gin.Context, payableID string, cap domain.Capability) (*domain.Payable, error) {
		return h.payableService.RejectPayable(ctx.Request.Context(), payableID, cap)
	})
}

// revertToPending godoc
// @Summary Revert an approval
// @Description Moves an APPROVED payable back to PENDING before it is settled
// @Tags payables
// @Produce  json
// @Param   id path string true "Payable ID"
// @Success 200 {object} dto.PayableResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Actor may not approve"
// @Failure 404 {object} map[string]string "Payable not found"
// @Failure 409 {object} map[string]string "Payable is not APPROVED"
// @Failure 500 {object} map[string]string "Failed to revert payable"
// @Security BearerAuth
// @Router /payables/{id}/revert-approval [post]
func (h *payableHandler) revertToPending(c *gin.Context) {
	h.transition(c, "revert", func(ctx *gin.Context, payableID string, cap domain.Capability) (*domain.Payable, error) {
		return h.payableService.RevertToPending(ctx.Request.Context(), payableID, cap)
	})
}
