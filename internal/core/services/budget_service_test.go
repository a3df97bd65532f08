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
	portsrepo "github.com/obrasoft/obra-backoffice/internal/core/ports/repositories"
	portssvc "github.com/obrasoft/obra-backoffice/internal/core/ports/services"
)

// payCertification settles one certification for the pair so it counts as PAID.
func payCertification(t *testing.T, repos portsrepo.RepositoryProvider, svcs *portssvc.ServiceContainer, amount, projectID, contractorID string) {
	t.Helper()
	ctx := context.Background()

	account := seedAccount(t, repos, domain.ARS, amount)
	payable := submitApproved(t, svcs, certification(amount, projectID, contractorID, time.Now().UTC()))
	_, err := svcs.Settlement.Settle(ctx, dto.SettleRequest{
		PayableID:   payable.PayableID,
		AccountID:   account.AccountID,
		Description: "Certification payout",
	}, treasurerCap)
	require.NoError(t, err)
}

func TestRemainingBudgetSubtractsPaidCertifications(t *testing.T) {
	ctx := context.Background()
	repos, svcs := newTestServices(t)

	require.NoError(t, svcs.Budget.SetBudget(ctx, dto.SetBudgetRequest{
		ContractorID: "contractor-3",
		ProjectID:    "project-9",
		Amount:       decimal.RequireFromString("1000"),
	}, approverCap.ActorID))

	payCertification(t, repos, svcs, "300", "project-9", "contractor-3")

	status, err := svcs.Budget.RemainingBudget(ctx, "contractor-3", "project-9")
	require.NoError(t, err)
	assert.Equal(t, "1000", status.Budget.String())
	assert.Equal(t, "300", status.Paid.String())
	assert.Equal(t, "700", status.Remaining.String())
}

func TestRemainingBudgetGoesNegativeWhenOverspent(t *testing.T) {
	ctx := context.Background()
	repos, svcs := newTestServices(t)

	require.NoError(t, svcs.Budget.SetBudget(ctx, dto.SetBudgetRequest{
		ContractorID: "contractor-3",
		ProjectID:    "project-9",
		Amount:       decimal.RequireFromString("200"),
	}, approverCap.ActorID))

	payCertification(t, repos, svcs, "300", "project-9", "contractor-3")

	status, err := svcs.Budget.RemainingBudget(ctx, "contractor-3", "project-9")
	require.NoError(t, err)
	assert.Equal(t, "-100", status.Remaining.String(), "over-budget reads report, they never block")
}

func TestRemainingBudgetWithoutConfiguredCeiling(t *testing.T) {
	ctx := context.Background()
	repos, svcs := newTestServices(t)

	payCertification(t, repos, svcs, "300", "project-9", "contractor-3")

	status, err := svcs.Budget.RemainingBudget(ctx, "contractor-3", "project-9")
	require.NoError(t, err)
	assert.Equal(t, "0", status.Budget.String())
	assert.Equal(t, "-300", status.Remaining.String())
}

func TestRemainingBudgetIgnoresOtherPairsAndUnpaidDocs(t *testing.T) {
	ctx := context.Background()
	repos, svcs := newTestServices(t)

	require.NoError(t, svcs.Budget.SetBudget(ctx, dto.SetBudgetRequest{
		ContractorID: "contractor-3",
		ProjectID:    "project-9",
		Amount:       decimal.RequireFromString("1000"),
	}, approverCap.ActorID))

	// Approved but unpaid: no budget consumption yet.
	submitApproved(t, svcs, certification("400", "project-9", "contractor-3", time.Now().UTC()))
	// Paid, but a different project.
	payCertification(t, repos, svcs, "250", "project-2", "contractor-3")

	status, err := svcs.Budget.RemainingBudget(ctx, "contractor-3", "project-9")
	require.NoError(t, err)
	assert.Equal(t, "0", status.Paid.String())
	assert.Equal(t, "1000", status.Remaining.String())
}

func TestSetBudgetRejectsNegativeAmount(t *testing.T) {
	ctx := context.Background()
	_, svcs := newTestServices(t)

	err := svcs.Budget.SetBudget(ctx, dto.SetBudgetRequest{
		ContractorID: "contractor-3",
		ProjectID:    "project-9",
		Amount:       decimal.RequireFromString("-1"),
	}, approverCap.ActorID)
	require.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestRemainingBudgetRequiresBothIdentifiers(t *testing.T) {
	ctx := context.Background()
	_, svcs := newTestServices(t)

	_, err := svcs.Budget.RemainingBudget(ctx, "", "project-9")
	require.ErrorIs(t, err, apperrors.ErrValidation)
	_, err = svcs.Budget.RemainingBudget(ctx, "contractor-3", "")
	require.ErrorIs(t, err, apperrors.ErrValidation)
}
