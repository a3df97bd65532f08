package repositories

import (
	"context"

	"github.com/obrasoft/obra-backoffice/internal/core/domain"
)

// ExchangeRateReader defines read operations for exchange rates.
type ExchangeRateReader interface {
	// FindLatestRate retrieves the most recent effective rate converting
	// `from` into `to`.
	FindLatestRate(ctx context.Context, from, to domain.Currency) (*domain.ExchangeRate, error)
}

// ExchangeRateWriter defines write operations for exchange rates.
type ExchangeRateWriter interface {
	// SaveRate persists a new operator-entered rate.
	SaveRate(ctx context.Context, rate domain.ExchangeRate) error
}

// ExchangeRateRepositoryFacade combines all exchange-rate repository interfaces.
type ExchangeRateRepositoryFacade interface {
	ExchangeRateReader
	ExchangeRateWriter
}
