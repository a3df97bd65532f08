package services

import (
	"context"

	"github.com/obrasoft/obra-backoffice/internal/core/domain"
)

// ExpenseSvcFacade exposes the project cost view fed by settlement mirroring.
type ExpenseSvcFacade interface {
	// GetExpenseByID retrieves one mirrored expense record.
	GetExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error)

	// ListProjectExpenses retrieves the expenses charged to a project, newest
	// first.
	ListProjectExpenses(ctx context.Context, projectID string) ([]domain.Expense, error)
}
