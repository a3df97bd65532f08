package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obrasoft/obra-backoffice/internal/apperrors"
	"github.com/obrasoft/obra-backoffice/internal/core/domain"
	"github.com/obrasoft/obra-backoffice/internal/dto"
)

func TestCreateTreasuryAccount(t *testing.T) {
	ctx := context.Background()
	_, svcs := newTestServices(t)

	account, err := svcs.Account.CreateTreasuryAccount(ctx, dto.CreateTreasuryAccountRequest{
		Name:     "Banco Nación ARS",
		Currency: domain.ARS,
	}, approverCap.ActorID)
	require.NoError(t, err)

	assert.Equal(t, domain.Treasury, account.Kind)
	assert.True(t, account.IsActive)
	assert.True(t, account.Balance.IsZero())
	assert.Empty(t, account.OwnerID)
}

func TestEnsurePersonalAccountsIsIdempotent(t *testing.T) {
	ctx := context.Background()
	_, svcs := newTestServices(t)

	currencies := []domain.Currency{domain.ARS, domain.USD}

	first, err := svcs.Account.EnsurePersonalAccounts(ctx, "employee-12", currencies, approverCap.ActorID)
	require.NoError(t, err)
	require.Len(t, first, 2)
	for _, acc := range first {
		assert.Equal(t, domain.PersonalCash, acc.Kind)
		assert.Equal(t, "employee-12", acc.OwnerID)
		assert.True(t, acc.Balance.IsZero())
	}

	second, err := svcs.Account.EnsurePersonalAccounts(ctx, "employee-12", currencies, approverCap.ActorID)
	require.NoError(t, err)
	require.Len(t, second, 2)
	assert.Equal(t, first[0].AccountID, second[0].AccountID, "repeat calls return the same accounts")
	assert.Equal(t, first[1].AccountID, second[1].AccountID)

	// A partial overlap only creates what is missing.
	third, err := svcs.Account.EnsurePersonalAccounts(ctx, "employee-12", []domain.Currency{domain.ARS}, approverCap.ActorID)
	require.NoError(t, err)
	require.Len(t, third, 1)
	assert.Equal(t, first[0].AccountID, third[0].AccountID)
}

func TestDeactivateAccountRefusesNonZeroBalance(t *testing.T) {
	ctx := context.Background()
	repos, svcs := newTestServices(t)

	funded := seedAccount(t, repos, domain.ARS, "1000")
	err := svcs.Account.DeactivateAccount(ctx, funded.AccountID, approverCap.ActorID)
	require.ErrorIs(t, err, apperrors.ErrValidation)

	account, err := svcs.Account.GetAccountByID(ctx, funded.AccountID)
	require.NoError(t, err)
	assert.True(t, account.IsActive)
}

func TestDeactivateEmptyAccount(t *testing.T) {
	ctx := context.Background()
	repos, svcs := newTestServices(t)

	empty := seedAccount(t, repos, domain.ARS, "0")
	require.NoError(t, svcs.Account.DeactivateAccount(ctx, empty.AccountID, approverCap.ActorID))

	account, err := svcs.Account.GetAccountByID(ctx, empty.AccountID)
	require.NoError(t, err)
	assert.False(t, account.IsActive)
}

func TestSettleRefusesInactiveAccount(t *testing.T) {
	ctx := context.Background()
	repos, svcs := newTestServices(t)

	account := seedAccount(t, repos, domain.ARS, "0")
	require.NoError(t, svcs.Account.DeactivateAccount(ctx, account.AccountID, approverCap.ActorID))

	payable := submitApproved(t, svcs, fundRequest("100", time.Now().UTC()))
	_, err := svcs.Settlement.Settle(ctx, dto.SettleRequest{
		PayableID:   payable.PayableID,
		AccountID:   account.AccountID,
		Description: "Into a closed account",
	}, treasurerCap)
	require.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestGetBalanceUnknownAccount(t *testing.T) {
	ctx := context.Background()
	_, svcs := newTestServices(t)

	_, _, err := svcs.Account.GetBalance(ctx, "no-such-account")
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}
