package services

import (
	"context"

	"github.com/obrasoft/obra-backoffice/internal/dto"
)

// PaymentQueueSvcFacade merges the APPROVED payables of all four kinds into
// one prioritized queue for the treasury operator. Read-only and idempotent:
// settling an item is what removes it from the next read.
type PaymentQueueSvcFacade interface {
	ListQueue(ctx context.Context) (*dto.PaymentQueueResponse, error)
}
