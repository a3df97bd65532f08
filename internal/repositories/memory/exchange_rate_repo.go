package memory

import (
	"context"
	"fmt"

	"github.com/obrasoft/obra-backoffice/internal/apperrors"
	"github.com/obrasoft/obra-backoffice/internal/core/domain"
)

type ExchangeRateRepository struct {
	store *Store
}

// SaveRate persists a new operator-entered rate. Rates are append-only.
func (r *ExchangeRateRepository) SaveRate(ctx context.Context, rate domain.ExchangeRate) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.rates = append(r.store.rates, rate)
	return nil
}

// FindLatestRate retrieves the most recent effective rate from -> to. Ties on
// effective date resolve to the most recently entered rate.
func (r *ExchangeRateRepository) FindLatestRate(ctx context.Context, from, to domain.Currency) (*domain.ExchangeRate, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var latest *domain.ExchangeRate
	for i := range r.store.rates {
		rate := r.store.rates[i]
		if rate.FromCurrency != from || rate.ToCurrency != to {
			continue
		}
		if latest == nil || rate.EffectiveDate.After(latest.EffectiveDate) || rate.EffectiveDate.Equal(latest.EffectiveDate) {
			result := rate
			latest = &result
		}
	}
	if latest == nil {
		return nil, fmt.Errorf("%w: no rate %s/%s", apperrors.ErrNotFound, from, to)
	}
	return latest, nil
}
