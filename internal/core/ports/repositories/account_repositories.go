package repositories

import (
	"context"
	"time"

	"github.com/obrasoft/obra-backoffice/internal/core/domain"
)

// AccountReader defines read operations for account data
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountByOwnerAndCurrency retrieves the personal cash account for an
	// (owner, currency) pair. The store assumes at most one such account.
	FindAccountByOwnerAndCurrency(ctx context.Context, ownerID string, currency domain.Currency) (*domain.Account, error)

	// ListAccounts retrieves a paginated list of active accounts.
	ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error)
}

// AccountWriter defines write operations for account data.
// There is deliberately no SetBalance: balances only move through the
// settlement repository so the ledger invariant holds by construction.
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.Account) error

	// DeactivateAccount marks an account as inactive.
	DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
