package services

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obrasoft/obra-backoffice/internal/apperrors"
	"github.com/obrasoft/obra-backoffice/internal/core/domain"
	"github.com/obrasoft/obra-backoffice/internal/dto"
)

func TestPutRateValidation(t *testing.T) {
	ctx := context.Background()
	_, svcs := newTestServices(t)
	now := time.Now().UTC()

	_, err := svcs.ExchangeRate.PutRate(ctx, dto.PutRateRequest{
		FromCurrency: domain.USD, ToCurrency: domain.USD,
		Rate: decimal.NewFromInt(1), EffectiveDate: now,
	}, treasurerCap.ActorID)
	require.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = svcs.ExchangeRate.PutRate(ctx, dto.PutRateRequest{
		FromCurrency: domain.USD, ToCurrency: domain.ARS,
		Rate: decimal.Zero, EffectiveDate: now,
	}, treasurerCap.ActorID)
	require.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestLatestRatePicksMostRecentEffectiveDate(t *testing.T) {
	ctx := context.Background()
	_, svcs := newTestServices(t)

	older := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)

	_, err := svcs.ExchangeRate.PutRate(ctx, dto.PutRateRequest{
		FromCurrency: domain.USD, ToCurrency: domain.ARS,
		Rate: decimal.RequireFromString("950"), EffectiveDate: older,
	}, treasurerCap.ActorID)
	require.NoError(t, err)

	_, err = svcs.ExchangeRate.PutRate(ctx, dto.PutRateRequest{
		FromCurrency: domain.USD, ToCurrency: domain.ARS,
		Rate: decimal.RequireFromString("1050"), EffectiveDate: newer,
	}, treasurerCap.ActorID)
	require.NoError(t, err)

	latest, err := svcs.ExchangeRate.LatestRate(ctx, domain.USD, domain.ARS)
	require.NoError(t, err)
	assert.Equal(t, "1050", latest.Rate.String())
	assert.True(t, latest.EffectiveDate.Equal(newer))

	// Rates are directional; the inverse pair has none.
	_, err = svcs.ExchangeRate.LatestRate(ctx, domain.ARS, domain.USD)
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}
