package repositories

import (
	"context"

	"github.com/shopspring/decimal"
)

// BudgetRepositoryFacade stores the configured budget ceiling per
// (contractor, project) pair. The remaining-budget figure itself is derived
// by the budget service, never stored.
type BudgetRepositoryFacade interface {
	// GetBudget retrieves the configured ceiling; ErrNotFound when the pair
	// has no budget configured.
	GetBudget(ctx context.Context, contractorID, projectID string) (decimal.Decimal, error)

	// SetBudget creates or replaces the ceiling for the pair.
	SetBudget(ctx context.Context, contractorID, projectID string, amount decimal.Decimal, userID string) error
}
