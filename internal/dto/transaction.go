package dto

import (
	"time"

	"github.com/obrasoft/obra-backoffice/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ListTransactionsParams defines query parameters for an account statement.
type ListTransactionsParams struct {
	Limit     int        `form:"limit,default=20"`
	NextToken *string    `form:"nextToken"`
	From      *time.Time `form:"from" time_format:"2006-01-02"`
	To        *time.Time `form:"to" time_format:"2006-01-02"`
}

// TransactionResponse defines the data returned for one ledger movement.
type TransactionResponse struct {
	TransactionID   string                      `json:"transactionID"`
	AccountID       string                      `json:"accountID"`
	Direction       domain.TransactionDirection `json:"direction"`
	Amount          decimal.Decimal             `json:"amount"`
	Currency        domain.Currency             `json:"currency"`
	Description     string                      `json:"description"`
	Timestamp       time.Time                   `json:"timestamp"`
	RelatedDocument *domain.DocumentRef         `json:"relatedDocument,omitempty"`
	RunningBalance  decimal.Decimal             `json:"runningBalance"`
}

// ToTransactionResponse converts a domain.Transaction to its DTO.
func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:   t.TransactionID,
		AccountID:       t.AccountID,
		Direction:       t.Direction,
		Amount:          t.Amount,
		Currency:        t.Currency,
		Description:     t.Description,
		Timestamp:       t.Timestamp,
		RelatedDocument: t.RelatedDocument,
		RunningBalance:  t.RunningBalance,
	}
}

// ToTransactionResponses converts a slice of domain transactions.
func ToTransactionResponses(ts []domain.Transaction) []TransactionResponse {
	res := make([]TransactionResponse, len(ts))
	for i := range ts {
		res[i] = ToTransactionResponse(&ts[i])
	}
	return res
}

// ListTransactionsResponse wraps a statement page.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}
