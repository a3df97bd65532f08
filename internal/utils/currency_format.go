package utils

import (
	"github.com/shopspring/decimal"

	"github.com/obrasoft/obra-backoffice/internal/core/domain"
)

// Both supported currencies carry two decimal places. Kept as a lookup so a
// zero-decimal currency can be added without touching call sites.
var currencyPrecision = map[domain.Currency]int32{
	domain.ARS: 2,
	domain.USD: 2,
}

// FormatAmount renders an amount at its currency's precision, prefixed with
// the currency code. Example: 1234.5 ARS renders as "ARS 1234.50".
func FormatAmount(amount decimal.Decimal, currency domain.Currency) string {
	precision, ok := currencyPrecision[currency]
	if !ok {
		precision = 2
	}
	return string(currency) + " " + amount.StringFixed(precision)
}
