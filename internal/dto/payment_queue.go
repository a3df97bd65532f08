package dto

import (
	"time"

	"github.com/obrasoft/obra-backoffice/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PaymentQueueItem is the common projection of an approved payable inside the
// unified payment queue, irrespective of which variant it came from.
type PaymentQueueItem struct {
	ID            string             `json:"id"`
	Kind          domain.PayableKind `json:"kind"`
	Title         string             `json:"title"`
	BeneficiaryID string             `json:"beneficiaryID"`
	Amount        decimal.Decimal    `json:"amount"`
	Currency      domain.Currency    `json:"currency"`
	Date          time.Time          `json:"date"`
}

// PaymentQueueResponse wraps the merged, prioritized queue.
type PaymentQueueResponse struct {
	Items []PaymentQueueItem `json:"items"`
}
