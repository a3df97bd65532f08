package models

import "github.com/shopspring/decimal"

// AccountKind mirrors domain.AccountKind at the storage boundary.
type AccountKind string

// Account is the storage representation of a cash box or treasury account.
type Account struct {
	AccountID string      `json:"accountID"`
	Kind      AccountKind `json:"kind"`
	OwnerID   string      `json:"ownerID"` // Empty for treasury accounts
	Name      string      `json:"name"`
	Currency  string      `json:"currency"`
	IsActive  bool        `json:"isActive"`
	AuditFields
	Balance decimal.Decimal `json:"balance"`
}
