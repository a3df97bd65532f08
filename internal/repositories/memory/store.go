// Package memory provides a mutex-guarded in-memory implementation of the
// repository ports. It backs tests and local development; the settlement unit
// gets its atomicity from the single store-wide lock instead of database
// transactions.
package memory

import (
	"sync"

	"github.com/shopspring/decimal"

	"github.com/obrasoft/obra-backoffice/internal/core/domain"
	portsrepo "github.com/obrasoft/obra-backoffice/internal/core/ports/repositories"
)

type budgetKey struct {
	contractorID string
	projectID    string
}

// Store holds every document map behind one lock. The settlement repository
// mutates accounts, payables, transactions and expenses together, so they must
// share a mutex or the multi-document invariants fall apart.
type Store struct {
	mu           sync.RWMutex
	accounts     map[string]domain.Account
	payables     map[string]domain.Payable
	transactions map[string]domain.Transaction
	expenses     map[string]domain.Expense
	rates        []domain.ExchangeRate
	budgets      map[budgetKey]decimal.Decimal
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		accounts:     make(map[string]domain.Account),
		payables:     make(map[string]domain.Payable),
		transactions: make(map[string]domain.Transaction),
		expenses:     make(map[string]domain.Expense),
		budgets:      make(map[budgetKey]decimal.Decimal),
	}
}

// NewRepositoryProvider wires every repository facade over one shared store.
func NewRepositoryProvider() portsrepo.RepositoryProvider {
	store := NewStore()
	return portsrepo.RepositoryProvider{
		AccountRepo:      &AccountRepository{store: store},
		LedgerRepo:       &LedgerRepository{store: store},
		PayableRepo:      &PayableRepository{store: store},
		ExpenseRepo:      &ExpenseRepository{store: store},
		ExchangeRateRepo: &ExchangeRateRepository{store: store},
		BudgetRepo:       &BudgetRepository{store: store},
		SettlementRepo:   &SettlementRepository{store: store},
	}
}

var (
	_ portsrepo.AccountRepositoryFacade      = (*AccountRepository)(nil)
	_ portsrepo.LedgerRepositoryFacade       = (*LedgerRepository)(nil)
	_ portsrepo.PayableRepositoryFacade      = (*PayableRepository)(nil)
	_ portsrepo.ExpenseRepositoryFacade      = (*ExpenseRepository)(nil)
	_ portsrepo.ExchangeRateRepositoryFacade = (*ExchangeRateRepository)(nil)
	_ portsrepo.BudgetRepositoryFacade       = (*BudgetRepository)(nil)
	_ portsrepo.SettlementRepository         = (*SettlementRepository)(nil)
)
