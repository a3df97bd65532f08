package dto

import (
	"time"

	"github.com/obrasoft/obra-backoffice/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ExpenseResponse defines the data returned for a mirrored project expense.
type ExpenseResponse struct {
	ExpenseID     string          `json:"expenseID"`
	ProjectID     string          `json:"projectID"`
	PayableID     string          `json:"payableID"`
	TransactionID string          `json:"transactionID"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      domain.Currency `json:"currency"`
	Description   string          `json:"description"`
	ExpenseDate   time.Time       `json:"expenseDate"`
}

// ToExpenseResponse converts a domain.Expense to its DTO.
func ToExpenseResponse(e *domain.Expense) ExpenseResponse {
	return ExpenseResponse{
		ExpenseID:     e.ExpenseID,
		ProjectID:     e.ProjectID,
		PayableID:     e.PayableID,
		TransactionID: e.TransactionID,
		Amount:        e.Amount,
		Currency:      e.Currency,
		Description:   e.Description,
		ExpenseDate:   e.ExpenseDate,
	}
}

// ToExpenseResponses converts a slice of domain expenses.
func ToExpenseResponses(es []domain.Expense) []ExpenseResponse {
	res := make([]ExpenseResponse, len(es))
	for i := range es {
		res[i] = ToExpenseResponse(&es[i])
	}
	return res
}

// ListExpensesResponse wraps a project's expense list.
type ListExpensesResponse struct {
	Expenses []ExpenseResponse `json:"expenses"`
}
