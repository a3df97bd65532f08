package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate is the storage representation of an operator-entered rate.
type ExchangeRate struct {
	RateID        string          `json:"rateID"`
	FromCurrency  string          `json:"fromCurrency"`
	ToCurrency    string          `json:"toCurrency"`
	Rate          decimal.Decimal `json:"rate"`
	EffectiveDate time.Time       `json:"effectiveDate"`
	AuditFields
}
