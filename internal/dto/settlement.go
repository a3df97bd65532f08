package dto

import (
	"github.com/shopspring/decimal"
)

// SettleRequest defines the data needed to pay an approved payable from an
// account. ExchangeRate is only consulted when the account and payable
// currencies differ; when nil, the latest stored rate applies.
type SettleRequest struct {
	PayableID    string           `json:"payableID" binding:"required"`
	AccountID    string           `json:"accountID" binding:"required"`
	Description  string           `json:"description" binding:"required"`
	ExchangeRate *decimal.Decimal `json:"exchangeRate"`
}

// SettlementResponse reports the outcome of a settlement: the paid document
// and the ledger effect on the funding account.
type SettlementResponse struct {
	Payable        PayableResponse `json:"payable"`
	TransactionID  string          `json:"transactionID"`
	AccountID      string          `json:"accountID"`
	DebitedAmount  decimal.Decimal `json:"debitedAmount"` // In the account currency
	AccountBalance decimal.Decimal `json:"accountBalance"`
	ExpenseID      *string         `json:"expenseID,omitempty"`
}
