package repositories

import (
	"context"

	"github.com/obrasoft/obra-backoffice/internal/core/domain"
)

// SettleCommand carries everything the settlement unit writes. The service
// prepares the transaction (and expense, when the variant mirrors into
// project accounting) up front; the repository applies all of it atomically.
type SettleCommand struct {
	// PayableID of the document being settled; its status must still be
	// APPROVED at commit time.
	PayableID string
	// AccountID of the funding account; its balance must still cover
	// Transaction.Amount at commit time.
	AccountID string
	// Transaction is the prepared DEBIT movement. Amount is expressed in the
	// account currency (already converted when an exchange rate applied).
	// RunningBalance is filled in by the repository from the locked balance.
	Transaction domain.Transaction
	// Expense is the mirrored project cost record, nil when the variant does
	// not mirror.
	Expense *domain.Expense
	// Actor performing the settlement, for audit columns.
	ActorID string
}

// SettlementRepository is the atomic multi-document write primitive. Every
// method either applies all of its writes or none of them; concurrent
// settlements of the same payable resolve to exactly one winner.
//
// Commit-time guards (re-checked against latest committed state, not the
// service's earlier reads):
//   - payable status flip APPROVED -> PAID is a guarded update; zero rows
//     affected surfaces ErrConflict (or ErrInvalidStateTransition when the
//     document already left APPROVED).
//   - account balance must cover the debit under the row lock; otherwise
//     ErrInsufficientFunds with no partial effect.
type SettlementRepository interface {
	// SettlePayable debits the account, appends the transaction, stamps the
	// payable PAID with its settlement reference, and creates the mirrored
	// expense - as one unit.
	SettlePayable(ctx context.Context, cmd SettleCommand) error

	// RevertSettlement undoes a settlement while the payable is still PAID:
	// re-credits the account by the settling transaction's amount, deletes
	// that transaction and any mirrored expense, and resets the payable to
	// APPROVED - as one unit.
	RevertSettlement(ctx context.Context, payable domain.Payable, actorID string) error
}
