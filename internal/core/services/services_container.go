package services

import (
	"time"

	"github.com/obrasoft/obra-backoffice/internal/core/domain"
	portsrepo "github.com/obrasoft/obra-backoffice/internal/core/ports/repositories"
	portssvc "github.com/obrasoft/obra-backoffice/internal/core/ports/services"
	"github.com/obrasoft/obra-backoffice/pkg/metrics"
)

// NewServiceContainer wires every application service from the repository
// provider. cutoffs bounds the payment queue per kind (empty map means no
// cutoffs); collector may be nil when metrics are disabled.
func NewServiceContainer(repos portsrepo.RepositoryProvider, cutoffs map[domain.PayableKind]time.Time, collector *metrics.Collector) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Account:      NewAccountService(repos.AccountRepo),
		Ledger:       NewLedgerService(repos.LedgerRepo, repos.AccountRepo),
		Payable:      NewPayableService(repos.PayableRepo),
		Settlement:   NewSettlementService(repos.SettlementRepo, repos.PayableRepo, repos.AccountRepo, repos.ExchangeRateRepo, collector),
		PaymentQueue: NewPaymentQueueService(repos.PayableRepo, cutoffs, collector),
		Budget:       NewBudgetService(repos.BudgetRepo, repos.PayableRepo),
		ExchangeRate: NewExchangeRateService(repos.ExchangeRateRepo),
		Expense:      NewExpenseService(repos.ExpenseRepo),
	}
}
