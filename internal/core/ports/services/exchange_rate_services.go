package services

import (
	"context"

	"github.com/obrasoft/obra-backoffice/internal/core/domain"
	"github.com/obrasoft/obra-backoffice/internal/dto"
)

// ExchangeRateSvcFacade manages operator-entered conversion rates consulted
// by cross-currency settlements.
type ExchangeRateSvcFacade interface {
	// PutRate records a new rate.
	PutRate(ctx context.Context, req dto.PutRateRequest, actorID string) (*domain.ExchangeRate, error)

	// LatestRate returns the most recent effective rate from -> to.
	LatestRate(ctx context.Context, from, to domain.Currency) (*domain.ExchangeRate, error)
}
