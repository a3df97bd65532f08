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

// budgetHandler handles HTTP requests for certification budget ceilings.
type budgetHandler struct {
	budgetService portssvc.BudgetSvcFacade
}

// newBudgetHandler creates a new budgetHandler.
func newBudgetHandler(bs portssvc.BudgetSvcFacade) *budgetHandler {
	return &budgetHandler{
		budgetService: bs,
	}
}

// registerBudgetRoutes registers routes related to budgets.
func registerBudgetRoutes(rg *gin.RouterGroup, budgetService portssvc.BudgetSvcFacade) {
	h := newBudgetHandler(budgetService)

	budgets := rg.Group("/budgets")
	{
		budgets.PUT("", h.setBudget)
		budgets.GET("", h.getRemainingBudget)
	}
}

// setBudget godoc
// @Summary Configure a certification budget
// @Description Creates or replaces the budget ceiling for a (contractor, project) pair
// @Tags budgets
// @Accept  json
// @Produce  json
// @Param   budget body dto.SetBudgetRequest true "Budget details"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to set budget"
// @Security BearerAuth
// @Router /budgets [put]
func (h *budgetHandler) setBudget(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.SetBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SetBudget", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	cap, ok := middleware.GetCapabilityFromContext(c.Request.Context())
	if !ok {
		logger.Error("Capability not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.budgetService.SetBudget(c.Request.Context(), req, cap.ActorID); err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error setting budget", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to set budget", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to set budget"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// getRemainingBudget godoc
// @Summary Get the remaining certification budget
// @Description Returns configured budget minus paid certifications for a (contractor, project) pair; negative when over budget
// @Tags budgets
// @Produce  json
// @Param   contractorID query string true "Contractor ID"
// @Param   projectID query string true "Project ID"
// @Success 200 {object} dto.BudgetStatusResponse
// @Failure 400 {object} map[string]string "Missing contractorID or projectID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to read budget"
// @Security BearerAuth
// @Router /budgets [get]
func (h *budgetHandler) getRemainingBudget(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	contractorID := c.Query("contractorID")
	projectID := c.Query("projectID")

	resp, err := h.budgetService.RemainingBudget(c.Request.Context(), contractorID, projectID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to read remaining budget", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read budget"})
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}
