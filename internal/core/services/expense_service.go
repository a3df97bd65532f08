package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/obrasoft/obra-backoffice/internal/apperrors"
	"github.com/obrasoft/obra-backoffice/internal/core/domain"
	portsrepo "github.com/obrasoft/obra-backoffice/internal/core/ports/repositories"
	portssvc "github.com/obrasoft/obra-backoffice/internal/core/ports/services"
	"github.com/obrasoft/obra-backoffice/internal/middleware"
)

// expenseService is the read side of project cost accounting. Expense rows are
// written and deleted only by the settlement unit.
type expenseService struct {
	expenseRepo portsrepo.ExpenseRepositoryFacade
}

// NewExpenseService creates a new ExpenseService.
func NewExpenseService(expenseRepo portsrepo.ExpenseRepositoryFacade) portssvc.ExpenseSvcFacade {
	return &expenseService{expenseRepo: expenseRepo}
}

var _ portssvc.ExpenseSvcFacade = (*expenseService)(nil)

// GetExpenseByID retrieves one mirrored expense record.
func (s *expenseService) GetExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	expense, err := s.expenseRepo.FindExpenseByID(ctx, expenseID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find expense", slog.String("error", err.Error()), slog.String("expense_id", expenseID))
		}
		return nil, err
	}
	return expense, nil
}

// ListProjectExpenses retrieves the expenses charged to a project.
func (s *expenseService) ListProjectExpenses(ctx context.Context, projectID string) ([]domain.Expense, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if projectID == "" {
		return nil, fmt.Errorf("%w: projectID is required", apperrors.ErrValidation)
	}

	expenses, err := s.expenseRepo.ListExpensesByProject(ctx, projectID)
	if err != nil {
		logger.Error("Failed to list project expenses", slog.String("error", err.Error()), slog.String("project_id", projectID))
		return nil, err
	}
	if expenses == nil {
		return []domain.Expense{}, nil
	}
	return expenses, nil
}
