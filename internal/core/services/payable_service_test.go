package services

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obrasoft/obra-backoffice/internal/apperrors"
	"github.com/obrasoft/obra-backoffice/internal/core/domain"
	"github.com/obrasoft/obra-backoffice/internal/dto"
)

func TestSubmitPayableStartsPending(t *testing.T) {
	ctx := context.Background()
	_, svcs := newTestServices(t)

	payable, err := svcs.Payable.SubmitPayable(ctx, fundRequest("500", time.Now().UTC()), clerkCap.ActorID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, payable.Status)
	assert.NotEmpty(t, payable.PayableID)
	assert.Equal(t, clerkCap.ActorID, payable.CreatedBy)
}

func TestSubmitPayableVariantValidation(t *testing.T) {
	ctx := context.Background()
	_, svcs := newTestServices(t)
	now := time.Now().UTC()

	tests := []struct {
		name string
		req  dto.SubmitPayableRequest
	}{
		{
			name: "non-positive amount",
			req: dto.SubmitPayableRequest{
				Kind: domain.CashAdvance, Title: "t", BeneficiaryID: "b",
				Amount: decimal.Zero, Currency: domain.ARS, RequestDate: now,
			},
		},
		{
			name: "certification without project",
			req: dto.SubmitPayableRequest{
				Kind: domain.ContractorCertification, Title: "t", BeneficiaryID: "b",
				Amount: decimal.NewFromInt(10), Currency: domain.ARS, RequestDate: now,
				ContractorID: "contractor-1",
			},
		},
		{
			name: "certification without contractor",
			req: dto.SubmitPayableRequest{
				Kind: domain.ContractorCertification, Title: "t", BeneficiaryID: "b",
				Amount: decimal.NewFromInt(10), Currency: domain.ARS, RequestDate: now,
				ProjectID: "project-1",
			},
		},
		{
			name: "salary without period",
			req: dto.SubmitPayableRequest{
				Kind: domain.MonthlySalary, Title: "t", BeneficiaryID: "b",
				Amount: decimal.NewFromInt(10), Currency: domain.ARS, RequestDate: now,
			},
		},
		{
			name: "salary with malformed period",
			req: dto.SubmitPayableRequest{
				Kind: domain.MonthlySalary, Title: "t", BeneficiaryID: "b",
				Amount: decimal.NewFromInt(10), Currency: domain.ARS, RequestDate: now,
				Period: "2026-13",
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svcs.Payable.SubmitPayable(ctx, tc.req, clerkCap.ActorID)
			require.ErrorIs(t, err, apperrors.ErrValidation)
		})
	}
}

func TestPayableLifecycleEdges(t *testing.T) {
	ctx := context.Background()
	_, svcs := newTestServices(t)

	// PENDING -> APPROVED -> PENDING -> REJECTED
	payable, err := svcs.Payable.SubmitPayable(ctx, fundRequest("500", time.Now().UTC()), clerkCap.ActorID)
	require.NoError(t, err)

	approved, err := svcs.Payable.ApprovePayable(ctx, payable.PayableID, approverCap)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusApproved, approved.Status)

	pendingAgain, err := svcs.Payable.RevertToPending(ctx, payable.PayableID, approverCap)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, pendingAgain.Status)

	rejected, err := svcs.Payable.RejectPayable(ctx, payable.PayableID, approverCap)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusRejected, rejected.Status)

	// REJECTED is terminal.
	_, err = svcs.Payable.ApprovePayable(ctx, payable.PayableID, approverCap)
	require.ErrorIs(t, err, apperrors.ErrInvalidStateTransition)
	_, err = svcs.Payable.RevertToPending(ctx, payable.PayableID, approverCap)
	require.ErrorIs(t, err, apperrors.ErrInvalidStateTransition)
}

func TestPayableTransitionsRequireApproveCapability(t *testing.T) {
	ctx := context.Background()
	_, svcs := newTestServices(t)

	payable, err := svcs.Payable.SubmitPayable(ctx, fundRequest("500", time.Now().UTC()), clerkCap.ActorID)
	require.NoError(t, err)

	_, err = svcs.Payable.ApprovePayable(ctx, payable.PayableID, clerkCap)
	require.ErrorIs(t, err, apperrors.ErrForbidden)
	_, err = svcs.Payable.RejectPayable(ctx, payable.PayableID, treasurerCap)
	require.ErrorIs(t, err, apperrors.ErrForbidden)

	unchanged, err := svcs.Payable.GetPayableByID(ctx, payable.PayableID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, unchanged.Status)
}

func TestPaidPayableIsImmutableOutsideSettlement(t *testing.T) {
	ctx := context.Background()
	repos, svcs := newTestServices(t)

	account := seedAccount(t, repos, domain.ARS, "1000")
	payable := submitApproved(t, svcs, fundRequest("300", time.Now().UTC()))

	_, err := svcs.Settlement.Settle(ctx, dto.SettleRequest{
		PayableID:   payable.PayableID,
		AccountID:   account.AccountID,
		Description: "payout",
	}, treasurerCap)
	require.NoError(t, err)

	_, err = svcs.Payable.RevertToPending(ctx, payable.PayableID, approverCap)
	require.ErrorIs(t, err, apperrors.ErrInvalidStateTransition)
	_, err = svcs.Payable.RejectPayable(ctx, payable.PayableID, approverCap)
	require.ErrorIs(t, err, apperrors.ErrInvalidStateTransition)
}
