package services

import (
	"context"

	"github.com/obrasoft/obra-backoffice/internal/core/domain"
	"github.com/obrasoft/obra-backoffice/internal/dto"
)

// PayableSvcFacade drives the payable document life cycle:
// PENDING -> APPROVED -> PAID, with PENDING -> REJECTED and
// APPROVED -> PENDING as the only other edges it walks itself. The
// APPROVED -> PAID edge (and its reversal) belongs to SettlementSvcFacade.
type PayableSvcFacade interface {
	// SubmitPayable creates a new payable in PENDING.
	SubmitPayable(ctx context.Context, req dto.SubmitPayableRequest, actorID string) (*domain.Payable, error)

	// GetPayableByID retrieves one payable document.
	GetPayableByID(ctx context.Context, payableID string) (*domain.Payable, error)

	// ApprovePayable moves PENDING -> APPROVED. Requires cap.CanApprove.
	ApprovePayable(ctx context.Context, payableID string, cap domain.Capability) (*domain.Payable, error)

	// RejectPayable moves PENDING -> REJECTED. Requires cap.CanApprove.
	RejectPayable(ctx context.Context, payableID string, cap domain.Capability) (*domain.Payable, error)

	// RevertToPending moves APPROVED -> PENDING. Requires cap.CanApprove.
	RevertToPending(ctx context.Context, payableID string, cap domain.Capability) (*domain.Payable, error)
}
