package services

import (
	"context"

	"github.com/obrasoft/obra-backoffice/internal/dto"
)

// LedgerSvcFacade defines read operations over the transaction ledger.
type LedgerSvcFacade interface {
	// ListTransactionsByAccount retrieves a page of an account's statement,
	// newest first.
	ListTransactionsByAccount(ctx context.Context, accountID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error)
}
