package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/obrasoft/obra-backoffice/internal/apperrors"
	"github.com/obrasoft/obra-backoffice/internal/core/domain"
)

type ExpenseRepository struct {
	store *Store
}

// FindExpenseByID retrieves one expense record.
func (r *ExpenseRepository) FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	expense, exists := r.store.expenses[expenseID]
	if !exists {
		return nil, fmt.Errorf("%w: expense %s", apperrors.ErrNotFound, expenseID)
	}
	return &expense, nil
}

// ListExpensesByProject retrieves the expenses charged to a project, newest
// first.
func (r *ExpenseRepository) ListExpensesByProject(ctx context.Context, projectID string) ([]domain.Expense, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	matching := []domain.Expense{}
	for _, expense := range r.store.expenses {
		if expense.ProjectID == projectID {
			matching = append(matching, expense)
		}
	}

	sort.Slice(matching, func(i, j int) bool {
		if !matching[i].ExpenseDate.Equal(matching[j].ExpenseDate) {
			return matching[i].ExpenseDate.After(matching[j].ExpenseDate)
		}
		return matching[i].ExpenseID < matching[j].ExpenseID
	})
	return matching, nil
}
