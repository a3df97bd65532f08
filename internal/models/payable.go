package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PayableKind mirrors domain.PayableKind at the storage boundary.
type PayableKind string

// PayableStatus mirrors domain.PayableStatus at the storage boundary.
type PayableStatus string

// Payable is the storage representation of a payable document. All four
// variants share one table; variant-only columns are nullable.
type Payable struct {
	PayableID     string          `json:"payableID"`
	Kind          PayableKind     `json:"kind"`
	Title         string          `json:"title"`
	BeneficiaryID string          `json:"beneficiaryID"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	Status        PayableStatus   `json:"status"`
	RequestDate   time.Time       `json:"requestDate"`
	// Settlement columns; all NULL until the document is paid.
	SettlementAccountID     *string `json:"settlementAccountID"`
	SettlementTransactionID *string `json:"settlementTransactionID"`
	SettlementExpenseID     *string `json:"settlementExpenseID"`
	// Variant columns.
	ProjectID    *string `json:"projectID"`
	ContractorID *string `json:"contractorID"`
	Period       *string `json:"period"`
	AuditFields
}
