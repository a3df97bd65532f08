package dto

import (
	"github.com/shopspring/decimal"
)

// SetBudgetRequest configures the certification budget ceiling for a
// (contractor, project) pair.
type SetBudgetRequest struct {
	ContractorID string          `json:"contractorID" binding:"required"`
	ProjectID    string          `json:"projectID" binding:"required"`
	Amount       decimal.Decimal `json:"amount" binding:"required"`
}

// BudgetStatusResponse is the derived budget read: Remaining may be negative,
// the ledger records over-budget payments instead of blocking them.
type BudgetStatusResponse struct {
	ContractorID string          `json:"contractorID"`
	ProjectID    string          `json:"projectID"`
	Budget       decimal.Decimal `json:"budget"`
	Paid         decimal.Decimal `json:"paid"`
	Remaining    decimal.Decimal `json:"remaining"`
}
