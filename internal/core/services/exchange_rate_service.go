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

// exchangeRateService manages operator-entered conversion rates. Rates are
// append-only; a correction is a newer rate, never an edit.
type exchangeRateService struct {
	rateRepo portsrepo.ExchangeRateRepositoryFacade
}

// NewExchangeRateService creates a new ExchangeRateService.
func NewExchangeRateService(rateRepo portsrepo.ExchangeRateRepositoryFacade) portssvc.ExchangeRateSvcFacade {
	return &exchangeRateService{rateRepo: rateRepo}
}

var _ portssvc.ExchangeRateSvcFacade = (*exchangeRateService)(nil)

// PutRate records a new rate.
func (s *exchangeRateService) PutRate(ctx context.Context, req dto.PutRateRequest, actorID string) (*domain.ExchangeRate, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.FromCurrency == req.ToCurrency {
		return nil, fmt.Errorf("%w: rate currencies must differ", apperrors.ErrValidation)
	}
	if !req.FromCurrency.IsValid() || !req.ToCurrency.IsValid() {
		return nil, fmt.Errorf("%w: unsupported currency pair %s/%s", apperrors.ErrValidation, req.FromCurrency, req.ToCurrency)
	}
	if req.Rate.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: rate must be positive", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	rate := domain.ExchangeRate{
		RateID:        uuid.NewString(),
		FromCurrency:  req.FromCurrency,
		ToCurrency:    req.ToCurrency,
		Rate:          req.Rate,
		EffectiveDate: req.EffectiveDate,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}

	if err := s.rateRepo.SaveRate(ctx, rate); err != nil {
		logger.Error("Failed to save exchange rate", slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Exchange rate recorded",
		slog.String("from", string(rate.FromCurrency)),
		slog.String("to", string(rate.ToCurrency)),
		slog.String("rate", rate.Rate.String()))
	return &rate, nil
}

// LatestRate returns the most recent effective rate from -> to.
func (s *exchangeRateService) LatestRate(ctx context.Context, from, to domain.Currency) (*domain.ExchangeRate, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !from.IsValid() || !to.IsValid() {
		return nil, fmt.Errorf("%w: unsupported currency pair %s/%s", apperrors.ErrValidation, from, to)
	}

	rate, err := s.rateRepo.FindLatestRate(ctx, from, to)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find latest exchange rate", slog.String("error", err.Error()))
		}
		return nil, err
	}
	return rate, nil
}
