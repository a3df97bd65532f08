package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/obrasoft/obra-backoffice/internal/apperrors"
	"github.com/obrasoft/obra-backoffice/internal/core/domain"
	portsrepo "github.com/obrasoft/obra-backoffice/internal/core/ports/repositories"
)

type SettlementRepository struct {
	store *Store
}

// SettlePayable applies the full settlement write set under the store lock.
// Preconditions are re-checked against current state here, exactly like the
// database implementation re-checks them under row locks; earlier service
// reads may be stale by the time this runs.
func (r *SettlementRepository) SettlePayable(ctx context.Context, cmd portsrepo.SettleCommand) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	payable, exists := r.store.payables[cmd.PayableID]
	if !exists {
		return fmt.Errorf("%w: payable %s", apperrors.ErrNotFound, cmd.PayableID)
	}
	if payable.Status != domain.StatusApproved {
		if payable.Status == domain.StatusPaid {
			return fmt.Errorf("%w: payable %s was settled concurrently", apperrors.ErrConflict, cmd.PayableID)
		}
		return fmt.Errorf("%w: payable %s is %s, not APPROVED", apperrors.ErrInvalidStateTransition, cmd.PayableID, payable.Status)
	}

	account, exists := r.store.accounts[cmd.AccountID]
	if !exists {
		return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, cmd.AccountID)
	}
	if !account.IsActive {
		return fmt.Errorf("%w: account %s is inactive", apperrors.ErrValidation, cmd.AccountID)
	}
	if account.Currency != cmd.Transaction.Currency {
		return fmt.Errorf("%w: transaction currency does not match account %s", apperrors.ErrCurrencyMismatch, cmd.AccountID)
	}
	if account.Balance.LessThan(cmd.Transaction.Amount) {
		return fmt.Errorf("%w: account %s cannot cover %s", apperrors.ErrInsufficientFunds, cmd.AccountID, cmd.Transaction.Amount)
	}

	now := cmd.Transaction.CreatedAt

	// All checks passed; apply every write before releasing the lock.
	newBalance := account.Balance.Sub(cmd.Transaction.Amount)
	txn := cmd.Transaction
	txn.RunningBalance = newBalance
	r.store.transactions[txn.TransactionID] = txn

	var expenseID *string
	if cmd.Expense != nil {
		r.store.expenses[cmd.Expense.ExpenseID] = *cmd.Expense
		expenseID = &cmd.Expense.ExpenseID
	}

	payable.Status = domain.StatusPaid
	payable.SettlementRef = &domain.SettlementRef{
		AccountID:     cmd.AccountID,
		TransactionID: txn.TransactionID,
		ExpenseID:     expenseID,
	}
	payable.LastUpdatedAt = now
	payable.LastUpdatedBy = cmd.ActorID
	r.store.payables[cmd.PayableID] = payable

	account.Balance = newBalance
	account.LastUpdatedAt = now
	account.LastUpdatedBy = cmd.ActorID
	r.store.accounts[cmd.AccountID] = account

	return nil
}

// RevertSettlement undoes a settlement while the payable is still PAID, as
// one unit under the store lock.
func (r *SettlementRepository) RevertSettlement(ctx context.Context, payable domain.Payable, actorID string) error {
	if payable.SettlementRef == nil {
		return fmt.Errorf("%w: payable %s has no settlement to revert", apperrors.ErrInvalidStateTransition, payable.PayableID)
	}
	ref := *payable.SettlementRef

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	current, exists := r.store.payables[payable.PayableID]
	if !exists {
		return fmt.Errorf("%w: payable %s", apperrors.ErrNotFound, payable.PayableID)
	}
	if current.Status != domain.StatusPaid || current.SettlementRef == nil ||
		current.SettlementRef.TransactionID != ref.TransactionID {
		return fmt.Errorf("%w: payable %s is no longer paid by transaction %s", apperrors.ErrConflict, payable.PayableID, ref.TransactionID)
	}

	txn, exists := r.store.transactions[ref.TransactionID]
	if !exists {
		return fmt.Errorf("%w: settling transaction %s missing for paid payable %s", apperrors.ErrInternal, ref.TransactionID, payable.PayableID)
	}

	account, exists := r.store.accounts[ref.AccountID]
	if !exists {
		return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, ref.AccountID)
	}

	now := time.Now().UTC()

	delete(r.store.transactions, ref.TransactionID)
	if ref.ExpenseID != nil {
		delete(r.store.expenses, *ref.ExpenseID)
	}

	current.Status = domain.StatusApproved
	current.SettlementRef = nil
	current.LastUpdatedAt = now
	current.LastUpdatedBy = actorID
	r.store.payables[payable.PayableID] = current

	account.Balance = account.Balance.Add(txn.Amount)
	account.LastUpdatedAt = now
	account.LastUpdatedBy = actorID
	r.store.accounts[ref.AccountID] = account

	return nil
}
