package services

import (
	"context"

	"github.com/obrasoft/obra-backoffice/internal/core/domain"
	"github.com/obrasoft/obra-backoffice/internal/dto"
	"github.com/shopspring/decimal"
)

// AccountSvcFacade defines the account store operations.
type AccountSvcFacade interface {
	// CreateTreasuryAccount creates a company treasury/bank account.
	CreateTreasuryAccount(ctx context.Context, req dto.CreateTreasuryAccountRequest, actorID string) (*domain.Account, error)

	// EnsurePersonalAccounts idempotently creates one zero-balance personal
	// cash account per (owner, currency) pair that does not yet exist and
	// returns the full set for the owner.
	EnsurePersonalAccounts(ctx context.Context, ownerID string, currencies []domain.Currency, actorID string) ([]domain.Account, error)

	// GetAccountByID retrieves an account.
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// GetBalance returns the current balance of an account.
	GetBalance(ctx context.Context, accountID string) (decimal.Decimal, domain.Currency, error)

	// ListAccounts retrieves a paginated list of active accounts.
	ListAccounts(ctx context.Context, limit, offset int) ([]domain.Account, error)

	// DeactivateAccount marks an account inactive. Fails with ErrValidation
	// while the balance is non-zero.
	DeactivateAccount(ctx context.Context, accountID string, actorID string) error
}
