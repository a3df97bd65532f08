package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense mirrors a settled payable into project cost accounting. It
// cross-references the settling transaction so the reversal can find and
// delete it in the same atomic unit.
type Expense struct {
	ExpenseID     string          `json:"expenseID"` // Primary key (UUID)
	ProjectID     string          `json:"projectID"`
	PayableID     string          `json:"payableID"`
	TransactionID string          `json:"transactionID"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      Currency        `json:"currency"`
	Description   string          `json:"description"`
	ExpenseDate   time.Time       `json:"expenseDate"`
	AuditFields
}
