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
	portsrepo "github.com/obrasoft/obra-backoffice/internal/core/ports/repositories"
	portssvc "github.com/obrasoft/obra-backoffice/internal/core/ports/services"
)

// settleN runs n fund-request settlements of 10 against the account.
func settleN(t *testing.T, repos portsrepo.RepositoryProvider, svcs *portssvc.ServiceContainer, account domain.Account, n int) {
	t.Helper()
	ctx := context.Background()
	for i := 0; i < n; i++ {
		payable := submitApproved(t, svcs, fundRequest("10", time.Now().UTC()))
		_, err := svcs.Settlement.Settle(ctx, dto.SettleRequest{
			PayableID:   payable.PayableID,
			AccountID:   account.AccountID,
			Description: "payout",
		}, treasurerCap)
		require.NoError(t, err)
	}
	_ = repos
}

func TestStatementPagesNewestFirstWithoutGapsOrDuplicates(t *testing.T) {
	ctx := context.Background()
	repos, svcs := newTestServices(t)

	account := seedAccount(t, repos, domain.ARS, "1000")
	settleN(t, repos, svcs, account, 5)

	seen := make(map[string]bool)
	var pages int
	var token *string
	last := time.Now().UTC().Add(time.Hour)

	for {
		page, err := svcs.Ledger.ListTransactionsByAccount(ctx, account.AccountID, dto.ListTransactionsParams{
			Limit:     2,
			NextToken: token,
		})
		require.NoError(t, err)
		pages++

		for _, txn := range page.Transactions {
			assert.False(t, seen[txn.TransactionID], "transaction repeated across pages")
			seen[txn.TransactionID] = true
			assert.False(t, txn.Timestamp.After(last), "statement must be newest first")
			last = txn.Timestamp
		}

		if page.NextToken == nil {
			break
		}
		require.NotEmpty(t, page.Transactions)
		token = page.NextToken
	}

	assert.Len(t, seen, 5)
	assert.Equal(t, 3, pages)
}

func TestStatementDateRange(t *testing.T) {
	ctx := context.Background()
	repos, svcs := newTestServices(t)

	account := seedAccount(t, repos, domain.ARS, "1000")
	settleN(t, repos, svcs, account, 3)

	yesterday := time.Now().UTC().Add(-24 * time.Hour)
	tomorrow := time.Now().UTC().Add(24 * time.Hour)

	all, err := svcs.Ledger.ListTransactionsByAccount(ctx, account.AccountID, dto.ListTransactionsParams{
		From: &yesterday,
		To:   &tomorrow,
	})
	require.NoError(t, err)
	assert.Len(t, all.Transactions, 3)

	// The range end is exclusive; a window ending before the settlements is empty.
	hourAgo := time.Now().UTC().Add(-time.Hour)
	none, err := svcs.Ledger.ListTransactionsByAccount(ctx, account.AccountID, dto.ListTransactionsParams{
		From: &yesterday,
		To:   &hourAgo,
	})
	require.NoError(t, err)
	assert.Empty(t, none.Transactions)

	_, err = svcs.Ledger.ListTransactionsByAccount(ctx, account.AccountID, dto.ListTransactionsParams{
		From: &tomorrow,
		To:   &yesterday,
	})
	require.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestStatementForUnknownAccountIsNotFound(t *testing.T) {
	ctx := context.Background()
	_, svcs := newTestServices(t)

	_, err := svcs.Ledger.ListTransactionsByAccount(ctx, "no-such-account", dto.ListTransactionsParams{})
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestBalanceEqualsSignedSumOfStatement(t *testing.T) {
	ctx := context.Background()
	repos, svcs := newTestServices(t)

	account := seedAccount(t, repos, domain.ARS, "1000")
	settleN(t, repos, svcs, account, 4)

	statement, err := svcs.Ledger.ListTransactionsByAccount(ctx, account.AccountID, dto.ListTransactionsParams{Limit: 100})
	require.NoError(t, err)

	net := account.Balance
	for _, txn := range statement.Transactions {
		signed := txn.Amount
		if txn.Direction == domain.Debit {
			signed = signed.Neg()
		}
		net = net.Add(signed)
	}

	balance, _, err := svcs.Account.GetBalance(ctx, account.AccountID)
	require.NoError(t, err)
	assert.True(t, balance.Equal(net), "balance %s must equal opening balance plus signed movements %s", balance, net)
}
