package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/obrasoft/obra-backoffice/internal/apperrors"
	"github.com/obrasoft/obra-backoffice/internal/core/domain"
	portsrepo "github.com/obrasoft/obra-backoffice/internal/core/ports/repositories"
	portssvc "github.com/obrasoft/obra-backoffice/internal/core/ports/services"
	"github.com/obrasoft/obra-backoffice/internal/dto"
	"github.com/obrasoft/obra-backoffice/internal/middleware"
)

// accountService provides the account store operations. Balances are never
// written here; the settlement repository is the only balance mutation path.
type accountService struct {
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewAccountService creates a new AccountService.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade) portssvc.AccountSvcFacade {
	return &accountService{accountRepo: accountRepo}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateTreasuryAccount creates a company treasury/bank account.
func (s *accountService) CreateTreasuryAccount(ctx context.Context, req dto.CreateTreasuryAccountRequest, actorID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.Currency.IsValid() {
		return nil, fmt.Errorf("%w: unsupported currency %s", apperrors.ErrValidation, req.Currency)
	}

	now := time.Now().UTC()
	account := domain.Account{
		AccountID: uuid.NewString(),
		Kind:      domain.Treasury,
		Name:      req.Name,
		Currency:  req.Currency,
		IsActive:  true,
		Balance:   decimal.Zero,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		logger.Error("Failed to save treasury account", slog.String("error", err.Error()), slog.String("account_id", account.AccountID))
		return nil, err
	}

	logger.Info("Treasury account created", slog.String("account_id", account.AccountID), slog.String("currency", string(account.Currency)))
	return &account, nil
}

// EnsurePersonalAccounts idempotently creates one zero-balance personal cash
// account per (owner, currency) pair that does not yet exist. Existence is a
// deterministic lookup, so repeated calls never create duplicates.
func (s *accountService) EnsurePersonalAccounts(ctx context.Context, ownerID string, currencies []domain.Currency, actorID string) ([]domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if ownerID == "" {
		return nil, fmt.Errorf("%w: owner ID is required", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	accounts := make([]domain.Account, 0, len(currencies))
	for _, currency := range currencies {
		if !currency.IsValid() {
			return nil, fmt.Errorf("%w: unsupported currency %s", apperrors.ErrValidation, currency)
		}

		existing, err := s.accountRepo.FindAccountByOwnerAndCurrency(ctx, ownerID, currency)
		if err == nil {
			accounts = append(accounts, *existing)
			continue
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to look up personal account", slog.String("error", err.Error()), slog.String("owner_id", ownerID))
			return nil, fmt.Errorf("failed to look up personal account: %w", err)
		}

		account := domain.Account{
			AccountID: uuid.NewString(),
			Kind:      domain.PersonalCash,
			OwnerID:   ownerID,
			Name:      fmt.Sprintf("Cash box %s (%s)", ownerID, currency),
			Currency:  currency,
			IsActive:  true,
			Balance:   decimal.Zero,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     actorID,
				LastUpdatedAt: now,
				LastUpdatedBy: actorID,
			},
		}
		if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
			if errors.Is(err, apperrors.ErrDuplicate) {
				// Someone else created it between our check and our write;
				// the account exists, which is all this operation promises.
				existing, findErr := s.accountRepo.FindAccountByOwnerAndCurrency(ctx, ownerID, currency)
				if findErr != nil {
					return nil, fmt.Errorf("failed to re-fetch personal account after duplicate: %w", findErr)
				}
				accounts = append(accounts, *existing)
				continue
			}
			logger.Error("Failed to create personal account", slog.String("error", err.Error()), slog.String("owner_id", ownerID))
			return nil, err
		}
		logger.Info("Personal cash account created", slog.String("account_id", account.AccountID), slog.String("owner_id", ownerID), slog.String("currency", string(currency)))
		accounts = append(accounts, account)
	}

	return accounts, nil
}

// GetAccountByID retrieves an account.
func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find account by ID", slog.String("error", err.Error()), slog.String("account_id", accountID))
		}
		return nil, err
	}
	return account, nil
}

// GetBalance returns the current balance of an account.
func (s *accountService) GetBalance(ctx context.Context, accountID string) (decimal.Decimal, domain.Currency, error) {
	account, err := s.GetAccountByID(ctx, accountID)
	if err != nil {
		return decimal.Zero, "", err
	}
	return account.Balance, account.Currency, nil
}

// ListAccounts retrieves a paginated list of active accounts.
func (s *accountService) ListAccounts(ctx context.Context, limit, offset int) ([]domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	accounts, err := s.accountRepo.ListAccounts(ctx, limit, offset)
	if err != nil {
		logger.Error("Failed to list accounts", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	if accounts == nil {
		return []domain.Account{}, nil
	}
	return accounts, nil
}

// DeactivateAccount marks an account inactive. An account holding money stays
// active: deactivating it would strand a balance the ledger can no longer
// reconcile.
func (s *accountService) DeactivateAccount(ctx context.Context, accountID string, actorID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return err
	}
	if !account.Balance.IsZero() {
		return fmt.Errorf("%w: account %s holds a non-zero balance", apperrors.ErrValidation, accountID)
	}

	if err := s.accountRepo.DeactivateAccount(ctx, accountID, actorID, time.Now().UTC()); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrValidation) {
			logger.Error("Failed to deactivate account", slog.String("error", err.Error()), slog.String("account_id", accountID))
		}
		return err
	}

	logger.Info("Account deactivated", slog.String("account_id", accountID))
	return nil
}
