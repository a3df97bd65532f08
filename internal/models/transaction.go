package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionDirection mirrors domain.TransactionDirection at the storage boundary.
type TransactionDirection string

// Transaction is the storage representation of one ledger movement.
type Transaction struct {
	TransactionID string               `json:"transactionID"`
	AccountID     string               `json:"accountID"`
	Direction     TransactionDirection `json:"direction"`
	Amount        decimal.Decimal      `json:"amount"`
	Currency      string               `json:"currency"`
	Description   string               `json:"description"`
	Timestamp     time.Time            `json:"timestamp"`
	// Nullable back-reference to the payable this movement settled.
	RelatedDocumentKind *string `json:"relatedDocumentKind"`
	RelatedDocumentID   *string `json:"relatedDocumentID"`
	AuditFields
	RunningBalance decimal.Decimal `json:"runningBalance"` // Balance after this transaction
}
