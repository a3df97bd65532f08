package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obrasoft/obra-backoffice/internal/core/domain"
	portsrepo "github.com/obrasoft/obra-backoffice/internal/core/ports/repositories"
)

func seedApprovedPayable(t *testing.T, repos portsrepo.RepositoryProvider, amount string) domain.Payable {
	t.Helper()
	ctx := context.Background()
	now := time.Now().UTC()

	payable := domain.Payable{
		PayableID:     uuid.NewString(),
		Kind:          domain.FundRequest,
		Title:         "Materials",
		BeneficiaryID: "foreman-7",
		Amount:        decimal.RequireFromString(amount),
		Currency:      domain.ARS,
		Status:        domain.StatusPending,
		RequestDate:   now,
		AuditFields:   domain.AuditFields{CreatedAt: now, CreatedBy: "seed", LastUpdatedAt: now, LastUpdatedBy: "seed"},
	}
	require.NoError(t, repos.PayableRepo.SavePayable(ctx, payable))
	require.NoError(t, repos.PayableRepo.UpdatePayableStatus(ctx, payable.PayableID, domain.StatusPending, domain.StatusApproved, "seed", now))
	payable.Status = domain.StatusApproved
	return payable
}

func seedFundedAccount(t *testing.T, repos portsrepo.RepositoryProvider, balance string) domain.Account {
	t.Helper()
	now := time.Now().UTC()
	account := domain.Account{
		AccountID:   uuid.NewString(),
		Kind:        domain.Treasury,
		Name:        "Treasury",
		Currency:    domain.ARS,
		IsActive:    true,
		Balance:     decimal.RequireFromString(balance),
		AuditFields: domain.AuditFields{CreatedAt: now, CreatedBy: "seed", LastUpdatedAt: now, LastUpdatedBy: "seed"},
	}
	require.NoError(t, repos.AccountRepo.SaveAccount(context.Background(), account))
	return account
}

func settleCommand(payable domain.Payable, accountID string) portsrepo.SettleCommand {
	now := time.Now().UTC()
	return portsrepo.SettleCommand{
		PayableID: payable.PayableID,
		AccountID: accountID,
		Transaction: domain.Transaction{
			TransactionID: uuid.NewString(),
			AccountID:     accountID,
			Direction:     domain.Debit,
			Amount:        payable.Amount,
			Currency:      payable.Currency,
			Description:   "payout",
			Timestamp:     now,
			RelatedDocument: &domain.DocumentRef{
				Kind: payable.Kind,
				ID:   payable.PayableID,
			},
			AuditFields: domain.AuditFields{CreatedAt: now, CreatedBy: "treasurer-1", LastUpdatedAt: now, LastUpdatedBy: "treasurer-1"},
		},
		ActorID: "treasurer-1",
	}
}

func TestConcurrentSettlementsHaveOneWinner(t *testing.T) {
	ctx := context.Background()
	repos := NewRepositoryProvider()

	account := seedFundedAccount(t, repos, "300")
	payable := seedApprovedPayable(t, repos, "300")

	const attempts = 8
	errs := make([]error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = repos.SettlementRepo.SettlePayable(ctx, settleCommand(payable, account.AccountID))
		}(i)
	}
	wg.Wait()

	var wins int
	for _, err := range errs {
		if err == nil {
			wins++
		}
	}
	assert.Equal(t, 1, wins, "exactly one settlement may win")

	settled, err := repos.PayableRepo.FindPayableByID(ctx, payable.PayableID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPaid, settled.Status)
	require.NotNil(t, settled.SettlementRef)

	funded, err := repos.AccountRepo.FindAccountByID(ctx, account.AccountID)
	require.NoError(t, err)
	assert.True(t, funded.Balance.IsZero(), "the balance is debited exactly once")

	// Only the winner's transaction exists.
	txn, err := repos.LedgerRepo.FindTransactionByID(ctx, settled.SettlementRef.TransactionID)
	require.NoError(t, err)
	assert.Equal(t, funded.Balance.String(), txn.RunningBalance.String())

	txns, _, err := repos.LedgerRepo.ListTransactionsByAccountID(ctx, account.AccountID, nil, nil, 100, nil)
	require.NoError(t, err)
	assert.Len(t, txns, 1)
}

func TestRevertLosesAgainstAForeignSettlementRef(t *testing.T) {
	ctx := context.Background()
	repos := NewRepositoryProvider()

	account := seedFundedAccount(t, repos, "300")
	payable := seedApprovedPayable(t, repos, "300")

	require.NoError(t, repos.SettlementRepo.SettlePayable(ctx, settleCommand(payable, account.AccountID)))

	// A reversal carrying a stale settlement reference must not fire.
	stale := payable
	stale.Status = domain.StatusPaid
	stale.SettlementRef = &domain.SettlementRef{
		AccountID:     account.AccountID,
		TransactionID: uuid.NewString(),
	}
	err := repos.SettlementRepo.RevertSettlement(ctx, stale, "treasurer-1")
	require.Error(t, err)

	funded, err := repos.AccountRepo.FindAccountByID(ctx, account.AccountID)
	require.NoError(t, err)
	assert.True(t, funded.Balance.IsZero(), "the stale reversal must not re-credit")
}
