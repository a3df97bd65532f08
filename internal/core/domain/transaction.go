package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionDirection indicates whether a movement takes money out of an
// account (debit) or puts money into it (credit).
type TransactionDirection string

const (
	Debit  TransactionDirection = "DEBIT"
	Credit TransactionDirection = "CREDIT"
)

// Transaction is a single immutable monetary movement against one account.
// Transactions are created only inside the atomic settlement unit and deleted
// only by the compensating reversal of that same unit.
type Transaction struct {
	TransactionID string               `json:"transactionID"` // Primary key (UUID)
	AccountID     string               `json:"accountID"`     // FK -> Account.AccountID
	Direction     TransactionDirection `json:"direction"`     // DEBIT or CREDIT
	Amount        decimal.Decimal      `json:"amount"`        // Always positive
	Currency      Currency             `json:"currency"`      // Matches the account currency
	Description   string               `json:"description"`
	Timestamp     time.Time            `json:"timestamp"`
	// RelatedDocument links back to the payable that caused this movement,
	// when there is one.
	RelatedDocument *DocumentRef `json:"relatedDocument,omitempty"`
	// RunningBalance is the account balance immediately after this
	// transaction was applied.
	RunningBalance decimal.Decimal `json:"runningBalance"`
	AuditFields
}

// DocumentRef is a weak reference from a transaction to the payable document
// it settled.
type DocumentRef struct {
	Kind PayableKind `json:"kind"`
	ID   string      `json:"id"`
}

// SignedAmount returns the amount with the sign it contributes to the account
// balance: credits are positive, debits negative.
func (t Transaction) SignedAmount() decimal.Decimal {
	if t.Direction == Debit {
		return t.Amount.Neg()
	}
	return t.Amount
}
