package memory

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/obrasoft/obra-backoffice/internal/apperrors"
)

type BudgetRepository struct {
	store *Store
}

// GetBudget retrieves the configured ceiling for a (contractor, project) pair.
func (r *BudgetRepository) GetBudget(ctx context.Context, contractorID, projectID string) (decimal.Decimal, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	amount, exists := r.store.budgets[budgetKey{contractorID: contractorID, projectID: projectID}]
	if !exists {
		return decimal.Zero, fmt.Errorf("%w: budget for %s/%s", apperrors.ErrNotFound, contractorID, projectID)
	}
	return amount, nil
}

// SetBudget creates or replaces the ceiling for a (contractor, project) pair.
func (r *BudgetRepository) SetBudget(ctx context.Context, contractorID, projectID string, amount decimal.Decimal, userID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.budgets[budgetKey{contractorID: contractorID, projectID: projectID}] = amount
	return nil
}
