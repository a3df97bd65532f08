package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/obrasoft/obra-backoffice/internal/apperrors"
	portsrepo "github.com/obrasoft/obra-backoffice/internal/core/ports/repositories"
	portssvc "github.com/obrasoft/obra-backoffice/internal/core/ports/services"
	"github.com/obrasoft/obra-backoffice/internal/dto"
	"github.com/obrasoft/obra-backoffice/internal/middleware"
)

// budgetService derives the certification budget position per
// (contractor, project) pair. Remaining budget is computed on every read from
// the paid certifications; nothing here blocks an over-budget settlement.
type budgetService struct {
	budgetRepo  portsrepo.BudgetRepositoryFacade
	payableRepo portsrepo.PayableReader
}

// NewBudgetService creates a new BudgetService.
func NewBudgetService(budgetRepo portsrepo.BudgetRepositoryFacade, payableRepo portsrepo.PayableReader) portssvc.BudgetSvcFacade {
	return &budgetService{budgetRepo: budgetRepo, payableRepo: payableRepo}
}

var _ portssvc.BudgetSvcFacade = (*budgetService)(nil)

// RemainingBudget returns the configured ceiling minus paid certifications.
// A pair without a configured budget reads as a zero ceiling, so any payment
// shows up as over budget rather than as a missing row.
func (s *budgetService) RemainingBudget(ctx context.Context, contractorID, projectID string) (*dto.BudgetStatusResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if contractorID == "" || projectID == "" {
		return nil, fmt.Errorf("%w: contractorID and projectID are required", apperrors.ErrValidation)
	}

	budget, err := s.budgetRepo.GetBudget(ctx, contractorID, projectID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to read budget", slog.String("contractor_id", contractorID), slog.String("project_id", projectID), slog.String("error", err.Error()))
			return nil, err
		}
		budget = decimal.Zero
	}

	paid, err := s.payableRepo.SumPaidCertifications(ctx, contractorID, projectID)
	if err != nil {
		logger.Error("Failed to sum paid certifications", slog.String("contractor_id", contractorID), slog.String("project_id", projectID), slog.String("error", err.Error()))
		return nil, err
	}

	return &dto.BudgetStatusResponse{
		ContractorID: contractorID,
		ProjectID:    projectID,
		Budget:       budget,
		Paid:         paid,
		Remaining:    budget.Sub(paid),
	}, nil
}

// SetBudget configures the ceiling for a (contractor, project) pair.
func (s *budgetService) SetBudget(ctx context.Context, req dto.SetBudgetRequest, actorID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Amount.IsNegative() {
		return fmt.Errorf("%w: budget must not be negative", apperrors.ErrValidation)
	}

	if err := s.budgetRepo.SetBudget(ctx, req.ContractorID, req.ProjectID, req.Amount, actorID); err != nil {
		logger.Error("Failed to set budget", slog.String("contractor_id", req.ContractorID), slog.String("project_id", req.ProjectID), slog.String("error", err.Error()))
		return err
	}

	logger.Info("Budget configured", slog.String("contractor_id", req.ContractorID), slog.String("project_id", req.ProjectID), slog.String("amount", req.Amount.String()))
	return nil
}
