package services

import (
	"context"

	"github.com/obrasoft/obra-backoffice/internal/dto"
)

// BudgetSvcFacade exposes the derived budget-ceiling read for contractor
// certifications. The ledger never blocks over-budget payments; it only
// reports them.
type BudgetSvcFacade interface {
	// RemainingBudget returns configured budget minus the sum of PAID
	// certifications for the pair. Negative when over budget.
	RemainingBudget(ctx context.Context, contractorID, projectID string) (*dto.BudgetStatusResponse, error)

	// SetBudget configures the ceiling for a (contractor, project) pair.
	SetBudget(ctx context.Context, req dto.SetBudgetRequest, actorID string) error
}
