package dto

import (
	"time"

	"github.com/obrasoft/obra-backoffice/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTreasuryAccountRequest defines the data needed to create a treasury account.
type CreateTreasuryAccountRequest struct {
	Name     string          `json:"name" binding:"required"`
	Currency domain.Currency `json:"currency" binding:"required,oneof=ARS USD"`
}

// EnsurePersonalAccountsRequest asks the store to create any missing personal
// cash accounts for an owner. Safe to repeat.
type EnsurePersonalAccountsRequest struct {
	OwnerID    string            `json:"ownerID" binding:"required"`
	Currencies []domain.Currency `json:"currencies" binding:"required,min=1,dive,oneof=ARS USD"`
}

// AccountResponse defines the data returned for an account.
// Mirrors domain.Account.
type AccountResponse struct {
	AccountID string             `json:"accountID"`
	Kind      domain.AccountKind `json:"kind"`
	OwnerID   string             `json:"ownerID,omitempty"`
	Name      string             `json:"name"`
	Currency  domain.Currency    `json:"currency"`
	Balance   decimal.Decimal    `json:"balance"`
	IsActive  bool               `json:"isActive"`
	CreatedAt time.Time          `json:"createdAt"`
	CreatedBy string             `json:"createdBy"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID: acc.AccountID,
		Kind:      acc.Kind,
		OwnerID:   acc.OwnerID,
		Name:      acc.Name,
		Currency:  acc.Currency,
		Balance:   acc.Balance,
		IsActive:  acc.IsActive,
		CreatedAt: acc.CreatedAt,
		CreatedBy: acc.CreatedBy,
	}
}

// ToAccountResponses converts a slice of domain accounts.
func ToAccountResponses(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i := range accounts {
		res[i] = ToAccountResponse(&accounts[i])
	}
	return res
}

// AccountBalanceResponse defines the data returned for a balance query.
type AccountBalanceResponse struct {
	AccountID string          `json:"accountID"`
	Balance   decimal.Decimal `json:"balance"`
	Currency  domain.Currency `json:"currency"`
}

// ListAccountsParams defines query parameters for listing accounts.
type ListAccountsParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}

// ListAccountsResponse wraps the list of accounts.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}
