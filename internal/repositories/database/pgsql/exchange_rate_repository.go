package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/obrasoft/obra-backoffice/internal/apperrors"
	"github.com/obrasoft/obra-backoffice/internal/core/domain"
	portsrepo "github.com/obrasoft/obra-backoffice/internal/core/ports/repositories"
	"github.com/obrasoft/obra-backoffice/internal/models"
)

type PgxExchangeRateRepository struct {
	BaseRepository
}

// newPgxExchangeRateRepository creates a new repository for exchange rate data.
func newPgxExchangeRateRepository(pool *pgxpool.Pool) *PgxExchangeRateRepository {
	return &PgxExchangeRateRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxExchangeRateRepository implements portsrepo.ExchangeRateRepositoryFacade
var _ portsrepo.ExchangeRateRepositoryFacade = (*PgxExchangeRateRepository)(nil)

// SaveRate persists a new operator-entered rate. Rates are append-only.
func (r *PgxExchangeRateRepository) SaveRate(ctx context.Context, rate domain.ExchangeRate) error {
	query := `
		INSERT INTO exchange_rates (rate_id, from_currency, to_currency, rate, effective_date,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		rate.RateID,
		string(rate.FromCurrency),
		string(rate.ToCurrency),
		rate.Rate,
		rate.EffectiveDate,
		rate.CreatedAt,
		rate.CreatedBy,
		rate.LastUpdatedAt,
		rate.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewStorageError("failed to insert exchange rate "+rate.RateID, err)
	}
	return nil
}

// FindLatestRate retrieves the most recent effective rate from -> to. Ties on
// effective date resolve to the most recently entered rate.
func (r *PgxExchangeRateRepository) FindLatestRate(ctx context.Context, from, to domain.Currency) (*domain.ExchangeRate, error) {
	query := `
		SELECT rate_id, from_currency, to_currency, rate, effective_date,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM exchange_rates
		WHERE from_currency = $1 AND to_currency = $2
		ORDER BY effective_date DESC, created_at DESC
		LIMIT 1;
	`
	var m models.ExchangeRate
	err := r.Pool.QueryRow(ctx, query, string(from), string(to)).Scan(
		&m.RateID,
		&m.FromCurrency,
		&m.ToCurrency,
		&m.Rate,
		&m.EffectiveDate,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewStorageError("failed to find latest rate "+string(from)+"/"+string(to), err)
	}

	domainRate := domain.ExchangeRate{
		RateID:        m.RateID,
		FromCurrency:  domain.Currency(m.FromCurrency),
		ToCurrency:    domain.Currency(m.ToCurrency),
		Rate:          m.Rate,
		EffectiveDate: m.EffectiveDate,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
	return &domainRate, nil
}
