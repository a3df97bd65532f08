package domain

import "time"

// AuditFields holds standard audit information for domain entities.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"` // UserID reference
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"` // UserID reference
}

// Currency is an ISO-4217 style currency code. The back office only moves
// money in pesos and dollars.
type Currency string

const (
	ARS Currency = "ARS"
	USD Currency = "USD"
)

// IsValid reports whether c is one of the supported currencies.
func (c Currency) IsValid() bool {
	return c == ARS || c == USD
}
