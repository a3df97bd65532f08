package domain

import (
	"github.com/shopspring/decimal"
)

// AccountKind distinguishes personal cash boxes from treasury/bank accounts.
type AccountKind string

const (
	PersonalCash AccountKind = "PERSONAL_CASH"
	Treasury     AccountKind = "TREASURY"
)

// Account represents a balance-holding entity: either a person's cash box or
// a company treasury account. This is the primary representation used by
// services.
//
// Invariant: Balance always equals the signed sum of the transactions
// referencing this account. It is maintained by construction - the only
// mutation path is the atomic settlement unit - and never recomputed.
type Account struct {
	AccountID string      `json:"accountID"` // Primary key (UUID)
	Kind      AccountKind `json:"kind"`      // PERSONAL_CASH or TREASURY
	OwnerID   string      `json:"ownerID"`   // Set for PERSONAL_CASH; empty for TREASURY
	Name      string      `json:"name"`      // Display name
	Currency  Currency    `json:"currency"`  // ARS or USD
	IsActive  bool        `json:"isActive"`
	AuditFields
	Balance decimal.Decimal `json:"balance"` // Persisted current balance
}
