package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/obrasoft/obra-backoffice/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	accountRepo := newPgxAccountRepository(dbPool)
	ledgerRepo := newPgxLedgerRepository(dbPool)
	payableRepo := newPgxPayableRepository(dbPool)
	expenseRepo := newPgxExpenseRepository(dbPool)
	exchangeRateRepo := newPgxExchangeRateRepository(dbPool)
	budgetRepo := newPgxBudgetRepository(dbPool)
	settlementRepo := newPgxSettlementRepository(dbPool, accountRepo)

	return portsrepo.RepositoryProvider{
		AccountRepo:      accountRepo,
		LedgerRepo:       ledgerRepo,
		PayableRepo:      payableRepo,
		ExpenseRepo:      expenseRepo,
		ExchangeRateRepo: exchangeRateRepo,
		BudgetRepo:       budgetRepo,
		SettlementRepo:   settlementRepo,
	}
}
