package repositories

import (
	"context"

	"github.com/obrasoft/obra-backoffice/internal/core/domain"
)

// ExpenseReader defines read operations for mirrored project expenses.
// Expense writes happen only inside the settlement unit.
type ExpenseReader interface {
	// FindExpenseByID retrieves one expense record.
	FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error)

	// ListExpensesByProject retrieves the expenses charged to a project,
	// ordered by expense date descending.
	ListExpensesByProject(ctx context.Context, projectID string) ([]domain.Expense, error)
}

// ExpenseRepositoryFacade combines all expense repository interfaces.
type ExpenseRepositoryFacade interface {
	ExpenseReader
}
