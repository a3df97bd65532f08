package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obrasoft/obra-backoffice/internal/apperrors"
	"github.com/obrasoft/obra-backoffice/internal/core/domain"
	"github.com/obrasoft/obra-backoffice/internal/dto"
)

func TestSettleDebitsAccountAndMarksPaid(t *testing.T) {
	ctx := context.Background()
	repos, svcs := newTestServices(t)

	account := seedAccount(t, repos, domain.ARS, "1000")
	payable := submitApproved(t, svcs, fundRequest("300", time.Now().UTC()))

	resp, err := svcs.Settlement.Settle(ctx, dto.SettleRequest{
		PayableID:   payable.PayableID,
		AccountID:   account.AccountID,
		Description: "Fund request payout",
	}, treasurerCap)
	require.NoError(t, err)

	assert.Equal(t, "700", resp.AccountBalance.String())
	assert.Equal(t, "300", resp.DebitedAmount.String())
	assert.Nil(t, resp.ExpenseID, "fund request without a project mirrors no expense")

	paid, err := svcs.Payable.GetPayableByID(ctx, payable.PayableID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPaid, paid.Status)
	require.NotNil(t, paid.SettlementRef)
	assert.Equal(t, account.AccountID, paid.SettlementRef.AccountID)
	assert.Equal(t, resp.TransactionID, paid.SettlementRef.TransactionID)

	balance, _, err := svcs.Account.GetBalance(ctx, account.AccountID)
	require.NoError(t, err)
	assert.Equal(t, "700", balance.String())

	statement, err := svcs.Ledger.ListTransactionsByAccount(ctx, account.AccountID, dto.ListTransactionsParams{})
	require.NoError(t, err)
	require.Len(t, statement.Transactions, 1)
	txn := statement.Transactions[0]
	assert.Equal(t, domain.Debit, txn.Direction)
	assert.Equal(t, "300", txn.Amount.String())
	assert.Equal(t, "700", txn.RunningBalance.String())
	require.NotNil(t, txn.RelatedDocument)
	assert.Equal(t, payable.PayableID, txn.RelatedDocument.ID)
	assert.Equal(t, domain.FundRequest, txn.RelatedDocument.Kind)

	queue, err := svcs.PaymentQueue.ListQueue(ctx)
	require.NoError(t, err)
	assert.Empty(t, queue.Items, "settled payables leave the queue")
}

func TestSettleInsufficientFundsIsANoOp(t *testing.T) {
	ctx := context.Background()
	repos, svcs := newTestServices(t)

	account := seedAccount(t, repos, domain.ARS, "200")
	payable := submitApproved(t, svcs, fundRequest("300", time.Now().UTC()))

	_, err := svcs.Settlement.Settle(ctx, dto.SettleRequest{
		PayableID:   payable.PayableID,
		AccountID:   account.AccountID,
		Description: "Should not go through",
	}, treasurerCap)
	require.ErrorIs(t, err, apperrors.ErrInsufficientFunds)

	balance, _, err := svcs.Account.GetBalance(ctx, account.AccountID)
	require.NoError(t, err)
	assert.Equal(t, "200", balance.String())

	unchanged, err := svcs.Payable.GetPayableByID(ctx, payable.PayableID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusApproved, unchanged.Status)
	assert.Nil(t, unchanged.SettlementRef)

	statement, err := svcs.Ledger.ListTransactionsByAccount(ctx, account.AccountID, dto.ListTransactionsParams{})
	require.NoError(t, err)
	assert.Empty(t, statement.Transactions)
}

func TestSettleRequiresSettleCapability(t *testing.T) {
	ctx := context.Background()
	repos, svcs := newTestServices(t)

	account := seedAccount(t, repos, domain.ARS, "1000")
	payable := submitApproved(t, svcs, fundRequest("300", time.Now().UTC()))

	_, err := svcs.Settlement.Settle(ctx, dto.SettleRequest{
		PayableID:   payable.PayableID,
		AccountID:   account.AccountID,
		Description: "No capability",
	}, approverCap)
	require.ErrorIs(t, err, apperrors.ErrForbidden)
}

func TestSettleRejectsNonApprovedPayable(t *testing.T) {
	ctx := context.Background()
	repos, svcs := newTestServices(t)

	account := seedAccount(t, repos, domain.ARS, "1000")
	pending, err := svcs.Payable.SubmitPayable(ctx, fundRequest("300", time.Now().UTC()), clerkCap.ActorID)
	require.NoError(t, err)

	_, err = svcs.Settlement.Settle(ctx, dto.SettleRequest{
		PayableID:   pending.PayableID,
		AccountID:   account.AccountID,
		Description: "Still pending",
	}, treasurerCap)
	require.ErrorIs(t, err, apperrors.ErrInvalidStateTransition)
}

func TestDoubleSettleHasExactlyOneWinner(t *testing.T) {
	ctx := context.Background()
	repos, svcs := newTestServices(t)

	first := seedAccount(t, repos, domain.ARS, "1000")
	second := seedAccount(t, repos, domain.ARS, "1000")
	payable := submitApproved(t, svcs, fundRequest("300", time.Now().UTC()))

	_, err := svcs.Settlement.Settle(ctx, dto.SettleRequest{
		PayableID:   payable.PayableID,
		AccountID:   first.AccountID,
		Description: "First attempt",
	}, treasurerCap)
	require.NoError(t, err)

	_, err = svcs.Settlement.Settle(ctx, dto.SettleRequest{
		PayableID:   payable.PayableID,
		AccountID:   second.AccountID,
		Description: "Second attempt",
	}, treasurerCap)
	require.Error(t, err)
	assert.True(t,
		errors.Is(err, apperrors.ErrInvalidStateTransition) || errors.Is(err, apperrors.ErrConflict),
		"second settlement must lose: %v", err)

	untouched, _, err := svcs.Account.GetBalance(ctx, second.AccountID)
	require.NoError(t, err)
	assert.Equal(t, "1000", untouched.String())

	debited, _, err := svcs.Account.GetBalance(ctx, first.AccountID)
	require.NoError(t, err)
	assert.Equal(t, "700", debited.String())
}

func TestSettleMirrorsCertificationExpense(t *testing.T) {
	ctx := context.Background()
	repos, svcs := newTestServices(t)

	account := seedAccount(t, repos, domain.ARS, "1000")
	payable := submitApproved(t, svcs, certification("400", "project-9", "contractor-3", time.Now().UTC()))

	resp, err := svcs.Settlement.Settle(ctx, dto.SettleRequest{
		PayableID:   payable.PayableID,
		AccountID:   account.AccountID,
		Description: "Certification payout",
	}, treasurerCap)
	require.NoError(t, err)
	require.NotNil(t, resp.ExpenseID)

	expenses, err := svcs.Expense.ListProjectExpenses(ctx, "project-9")
	require.NoError(t, err)
	require.Len(t, expenses, 1)
	assert.Equal(t, *resp.ExpenseID, expenses[0].ExpenseID)
	assert.Equal(t, "400", expenses[0].Amount.String())
	assert.Equal(t, payable.PayableID, expenses[0].PayableID)
	assert.Equal(t, resp.TransactionID, expenses[0].TransactionID)

	paid, err := svcs.Payable.GetPayableByID(ctx, payable.PayableID)
	require.NoError(t, err)
	require.NotNil(t, paid.SettlementRef)
	require.NotNil(t, paid.SettlementRef.ExpenseID)
	assert.Equal(t, *resp.ExpenseID, *paid.SettlementRef.ExpenseID)
}

func TestRevertRestoresPreSettlementState(t *testing.T) {
	ctx := context.Background()
	repos, svcs := newTestServices(t)

	account := seedAccount(t, repos, domain.ARS, "1000")
	payable := submitApproved(t, svcs, certification("400", "project-9", "contractor-3", time.Now().UTC()))

	resp, err := svcs.Settlement.Settle(ctx, dto.SettleRequest{
		PayableID:   payable.PayableID,
		AccountID:   account.AccountID,
		Description: "Certification payout",
	}, treasurerCap)
	require.NoError(t, err)

	reverted, err := svcs.Settlement.Revert(ctx, payable.PayableID, treasurerCap)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusApproved, reverted.Status)
	assert.Nil(t, reverted.SettlementRef)

	balance, _, err := svcs.Account.GetBalance(ctx, account.AccountID)
	require.NoError(t, err)
	assert.Equal(t, "1000", balance.String())

	statement, err := svcs.Ledger.ListTransactionsByAccount(ctx, account.AccountID, dto.ListTransactionsParams{})
	require.NoError(t, err)
	assert.Empty(t, statement.Transactions, "the settling transaction is deleted, not compensated")

	expenses, err := svcs.Expense.ListProjectExpenses(ctx, "project-9")
	require.NoError(t, err)
	assert.Empty(t, expenses, "the mirrored expense is deleted with the reversal")

	require.NotNil(t, resp.ExpenseID)
	_, err = svcs.Expense.GetExpenseByID(ctx, *resp.ExpenseID)
	require.ErrorIs(t, err, apperrors.ErrNotFound)

	// A reverted payable is settleable again.
	again, err := svcs.Settlement.Settle(ctx, dto.SettleRequest{
		PayableID:   payable.PayableID,
		AccountID:   account.AccountID,
		Description: "Second attempt after revert",
	}, treasurerCap)
	require.NoError(t, err)
	assert.Equal(t, "600", again.AccountBalance.String())
}

func TestRevertRequiresPaidStatus(t *testing.T) {
	ctx := context.Background()
	_, svcs := newTestServices(t)

	payable := submitApproved(t, svcs, fundRequest("300", time.Now().UTC()))

	_, err := svcs.Settlement.Revert(ctx, payable.PayableID, treasurerCap)
	require.ErrorIs(t, err, apperrors.ErrInvalidStateTransition)
}

func TestSettleCrossCurrencyUsesStoredRate(t *testing.T) {
	ctx := context.Background()
	repos, svcs := newTestServices(t)

	account := seedAccount(t, repos, domain.ARS, "150000")

	req := fundRequest("100", time.Now().UTC())
	req.Currency = domain.USD
	payable := submitApproved(t, svcs, req)

	_, err := svcs.ExchangeRate.PutRate(ctx, dto.PutRateRequest{
		FromCurrency:  domain.USD,
		ToCurrency:    domain.ARS,
		Rate:          decimal.RequireFromString("1000"),
		EffectiveDate: time.Now().UTC(),
	}, treasurerCap.ActorID)
	require.NoError(t, err)

	resp, err := svcs.Settlement.Settle(ctx, dto.SettleRequest{
		PayableID:   payable.PayableID,
		AccountID:   account.AccountID,
		Description: "USD payable from ARS treasury",
	}, treasurerCap)
	require.NoError(t, err)
	assert.Equal(t, "100000", resp.DebitedAmount.String())
	assert.Equal(t, "50000", resp.AccountBalance.String())
}

func TestSettleCrossCurrencyCallerRateWins(t *testing.T) {
	ctx := context.Background()
	repos, svcs := newTestServices(t)

	account := seedAccount(t, repos, domain.ARS, "150000")

	req := fundRequest("100", time.Now().UTC())
	req.Currency = domain.USD
	payable := submitApproved(t, svcs, req)

	_, err := svcs.ExchangeRate.PutRate(ctx, dto.PutRateRequest{
		FromCurrency:  domain.USD,
		ToCurrency:    domain.ARS,
		Rate:          decimal.RequireFromString("1000"),
		EffectiveDate: time.Now().UTC(),
	}, treasurerCap.ActorID)
	require.NoError(t, err)

	override := decimal.RequireFromString("900")
	resp, err := svcs.Settlement.Settle(ctx, dto.SettleRequest{
		PayableID:    payable.PayableID,
		AccountID:    account.AccountID,
		Description:  "Negotiated rate",
		ExchangeRate: &override,
	}, treasurerCap)
	require.NoError(t, err)
	assert.Equal(t, "90000", resp.DebitedAmount.String())
}

func TestSettleCrossCurrencyWithoutAnyRateFails(t *testing.T) {
	ctx := context.Background()
	repos, svcs := newTestServices(t)

	account := seedAccount(t, repos, domain.ARS, "150000")

	req := fundRequest("100", time.Now().UTC())
	req.Currency = domain.USD
	payable := submitApproved(t, svcs, req)

	_, err := svcs.Settlement.Settle(ctx, dto.SettleRequest{
		PayableID:   payable.PayableID,
		AccountID:   account.AccountID,
		Description: "No rate anywhere",
	}, treasurerCap)
	require.ErrorIs(t, err, apperrors.ErrCurrencyMismatch)

	balance, _, err := svcs.Account.GetBalance(ctx, account.AccountID)
	require.NoError(t, err)
	assert.Equal(t, "150000", balance.String())
}
