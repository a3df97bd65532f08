package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/obrasoft/obra-backoffice/internal/apperrors"
	"github.com/obrasoft/obra-backoffice/internal/core/domain"
)

type AccountRepository struct {
	store *Store
}

// SaveAccount persists a new account. Duplicate ids and duplicate active
// personal (owner, currency) pairs are both refused, matching the database
// constraints.
func (r *AccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, exists := r.store.accounts[account.AccountID]; exists {
		return fmt.Errorf("%w: account %s", apperrors.ErrDuplicate, account.AccountID)
	}
	if account.Kind == domain.PersonalCash {
		for _, existing := range r.store.accounts {
			if existing.Kind == domain.PersonalCash && existing.IsActive &&
				existing.OwnerID == account.OwnerID && existing.Currency == account.Currency {
				return fmt.Errorf("%w: personal account for %s/%s", apperrors.ErrDuplicate, account.OwnerID, account.Currency)
			}
		}
	}

	r.store.accounts[account.AccountID] = account
	return nil
}

// FindAccountByID retrieves an account by its ID.
func (r *AccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	account, exists := r.store.accounts[accountID]
	if !exists {
		return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
	}
	return &account, nil
}

// FindAccountByOwnerAndCurrency retrieves the active personal cash account for
// an (owner, currency) pair.
func (r *AccountRepository) FindAccountByOwnerAndCurrency(ctx context.Context, ownerID string, currency domain.Currency) (*domain.Account, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, account := range r.store.accounts {
		if account.Kind == domain.PersonalCash && account.IsActive &&
			account.OwnerID == ownerID && account.Currency == currency {
			result := account
			return &result, nil
		}
	}
	return nil, fmt.Errorf("%w: personal account for %s/%s", apperrors.ErrNotFound, ownerID, currency)
}

// ListAccounts retrieves a paginated list of active accounts in creation order.
func (r *AccountRepository) ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	active := make([]domain.Account, 0, len(r.store.accounts))
	for _, account := range r.store.accounts {
		if account.IsActive {
			active = append(active, account)
		}
	}
	sort.Slice(active, func(i, j int) bool {
		if !active[i].CreatedAt.Equal(active[j].CreatedAt) {
			return active[i].CreatedAt.Before(active[j].CreatedAt)
		}
		return active[i].AccountID < active[j].AccountID
	})

	if offset >= len(active) {
		return []domain.Account{}, nil
	}
	end := offset + limit
	if end > len(active) {
		end = len(active)
	}
	return active[offset:end], nil
}

// DeactivateAccount marks an account as inactive, refusing when it still holds
// money.
func (r *AccountRepository) DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	account, exists := r.store.accounts[accountID]
	if !exists {
		return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
	}
	if !account.Balance.IsZero() {
		return fmt.Errorf("%w: account %s holds a non-zero balance", apperrors.ErrValidation, accountID)
	}

	account.IsActive = false
	account.LastUpdatedAt = now
	account.LastUpdatedBy = userID
	r.store.accounts[accountID] = account
	return nil
}
