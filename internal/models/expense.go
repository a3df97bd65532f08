package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense is the storage representation of a mirrored project cost record.
type Expense struct {
	ExpenseID     string          `json:"expenseID"`
	ProjectID     string          `json:"projectID"`
	PayableID     string          `json:"payableID"`
	TransactionID string          `json:"transactionID"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	Description   string          `json:"description"`
	ExpenseDate   time.Time       `json:"expenseDate"`
	AuditFields
}
