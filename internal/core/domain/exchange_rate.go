package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate is an operator-entered conversion rate between two currencies.
// Settlement consults the latest effective rate when the funding account and
// the payable disagree on currency and the caller supplied none.
type ExchangeRate struct {
	RateID        string          `json:"rateID"` // Primary key (UUID)
	FromCurrency  Currency        `json:"fromCurrency"`
	ToCurrency    Currency        `json:"toCurrency"`
	Rate          decimal.Decimal `json:"rate"` // Positive: 1 From = Rate To
	EffectiveDate time.Time       `json:"effectiveDate"`
	AuditFields
}
