package dto

import (
	"time"

	"github.com/obrasoft/obra-backoffice/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PutRateRequest records an operator-entered exchange rate.
type PutRateRequest struct {
	FromCurrency  domain.Currency `json:"fromCurrency" binding:"required,oneof=ARS USD"`
	ToCurrency    domain.Currency `json:"toCurrency" binding:"required,oneof=ARS USD"`
	Rate          decimal.Decimal `json:"rate" binding:"required"`
	EffectiveDate time.Time       `json:"effectiveDate" binding:"required"`
}

// ExchangeRateResponse defines the data returned for a rate.
type ExchangeRateResponse struct {
	RateID        string          `json:"rateID"`
	FromCurrency  domain.Currency `json:"fromCurrency"`
	ToCurrency    domain.Currency `json:"toCurrency"`
	Rate          decimal.Decimal `json:"rate"`
	EffectiveDate time.Time       `json:"effectiveDate"`
}

// ToExchangeRateResponse converts a domain.ExchangeRate to its DTO.
func ToExchangeRateResponse(r *domain.ExchangeRate) ExchangeRateResponse {
	return ExchangeRateResponse{
		RateID:        r.RateID,
		FromCurrency:  r.FromCurrency,
		ToCurrency:    r.ToCurrency,
		Rate:          r.Rate,
		EffectiveDate: r.EffectiveDate,
	}
}
