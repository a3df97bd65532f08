package repositories

import (
	"context"
	"time"

	"github.com/obrasoft/obra-backoffice/internal/core/domain"
)

// LedgerReader defines read operations over the append-only transaction ledger.
// Appends happen exclusively inside the settlement unit (SettlementRepository),
// so no standalone append is exposed here.
type LedgerReader interface {
	// FindTransactionByID retrieves one transaction.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactionsByAccountID retrieves a page of transactions for an
	// account, optionally bounded by [from, to). Ordered by timestamp
	// descending with ties broken by transaction id ascending, so statement
	// reads are restartable and deterministic.
	ListTransactionsByAccountID(ctx context.Context, accountID string, from, to *time.Time, limit int, nextToken *string) ([]domain.Transaction, *string, error)
}

// LedgerRepositoryFacade combines all ledger repository interfaces.
type LedgerRepositoryFacade interface {
	LedgerReader
}
