package services

import (
	"context"

	"github.com/obrasoft/obra-backoffice/internal/core/domain"
	"github.com/obrasoft/obra-backoffice/internal/dto"
)

// SettlementSvcFacade is the correctness-critical payment primitive: it owns
// the APPROVED -> PAID edge and its exact inverse.
type SettlementSvcFacade interface {
	// Settle pays an APPROVED payable from an account: debits the balance,
	// appends the ledger transaction, stamps the payable PAID and mirrors a
	// project expense where the variant requires it - all atomically.
	// Requires cap.CanSettle.
	Settle(ctx context.Context, req dto.SettleRequest, cap domain.Capability) (*dto.SettlementResponse, error)

	// Revert undoes a settlement while the payable is PAID: re-credits the
	// account, deletes the settling transaction and mirrored expense, and
	// returns the payable to APPROVED - all atomically. Requires
	// cap.CanSettle.
	Revert(ctx context.Context, payableID string, cap domain.Capability) (*domain.Payable, error)
}
