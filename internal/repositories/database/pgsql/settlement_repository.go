package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/obrasoft/obra-backoffice/internal/apperrors"
	"github.com/obrasoft/obra-backoffice/internal/core/domain"
	portsrepo "github.com/obrasoft/obra-backoffice/internal/core/ports/repositories"
	"github.com/obrasoft/obra-backoffice/internal/utils/mapping"
)

type PgxSettlementRepository struct {
	BaseRepository
	accountRepo *PgxAccountRepository
}

// newPgxSettlementRepository creates the atomic settlement unit. It shares the
// account repository so balance writes go through one code path.
func newPgxSettlementRepository(pool *pgxpool.Pool, accountRepo *PgxAccountRepository) portsrepo.SettlementRepository {
	return &PgxSettlementRepository{
		BaseRepository: BaseRepository{Pool: pool},
		accountRepo:    accountRepo,
	}
}

// Ensure PgxSettlementRepository implements portsrepo.SettlementRepository
var _ portsrepo.SettlementRepository = (*PgxSettlementRepository)(nil)

// payableStatusInTx reads the committed status of a payable inside tx, used to
// tell a vanished document from a lost race after a guarded flip affected zero
// rows.
func (r *PgxSettlementRepository) payableStatusInTx(ctx context.Context, tx pgx.Tx, payableID string) (domain.PayableStatus, error) {
	var status string
	err := tx.QueryRow(ctx, `SELECT status FROM payables WHERE payable_id = $1;`, payableID).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperrors.ErrNotFound
		}
		return "", apperrors.NewStorageError("failed to read status of payable "+payableID, err)
	}
	return domain.PayableStatus(status), nil
}

// SettlePayable debits the account, appends the ledger transaction, stamps the
// payable PAID and mirrors the project expense, all in one database
// transaction. Preconditions are re-checked here against latest committed
// state: the account row is locked before the balance check, and the status
// flip is guarded on APPROVED so concurrent settlements of the same document
// leave exactly one winner.
func (r *PgxSettlementRepository) SettlePayable(ctx context.Context, cmd portsrepo.SettleCommand) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) // Ignored once the transaction commits

	now := cmd.Transaction.CreatedAt
	userID := cmd.ActorID

	// 1. Lock the funding account and re-check the money under the lock.
	account, err := r.accountRepo.findAccountByIDForUpdate(ctx, tx, cmd.AccountID)
	if err != nil {
		return err
	}
	if !account.IsActive {
		return apperrors.NewAppError(400, "account "+account.AccountID+" is inactive", apperrors.ErrValidation)
	}
	if account.Currency != cmd.Transaction.Currency {
		return apperrors.NewAppError(400, "transaction currency does not match account "+account.AccountID, apperrors.ErrCurrencyMismatch)
	}
	if account.Balance.LessThan(cmd.Transaction.Amount) {
		return apperrors.NewAppError(422, "account "+account.AccountID+" cannot cover "+cmd.Transaction.Amount.String(), apperrors.ErrInsufficientFunds)
	}
	newBalance := account.Balance.Sub(cmd.Transaction.Amount)

	// 2. Append the ledger transaction with its running balance.
	modelTxn := mapping.ToModelTransaction(cmd.Transaction)
	modelTxn.RunningBalance = newBalance
	txnQuery := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err = tx.Exec(ctx, txnQuery,
		modelTxn.TransactionID,
		modelTxn.AccountID,
		modelTxn.Direction,
		modelTxn.Amount,
		modelTxn.Currency,
		modelTxn.Description,
		modelTxn.Timestamp,
		modelTxn.RelatedDocumentKind,
		modelTxn.RelatedDocumentID,
		modelTxn.RunningBalance,
		modelTxn.CreatedAt,
		modelTxn.CreatedBy,
		modelTxn.LastUpdatedAt,
		modelTxn.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewStorageError("failed to insert settlement transaction "+modelTxn.TransactionID, err)
	}

	// 3. Mirror the project expense when the variant requires it.
	var expenseID *string
	if cmd.Expense != nil {
		modelExpense := mapping.ToModelExpense(*cmd.Expense)
		expenseQuery := `
			INSERT INTO expenses (expense_id, project_id, payable_id, transaction_id, amount, currency, description, expense_date,
				created_at, created_by, last_updated_at, last_updated_by)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
		`
		_, err = tx.Exec(ctx, expenseQuery,
			modelExpense.ExpenseID,
			modelExpense.ProjectID,
			modelExpense.PayableID,
			modelExpense.TransactionID,
			modelExpense.Amount,
			modelExpense.Currency,
			modelExpense.Description,
			modelExpense.ExpenseDate,
			modelExpense.CreatedAt,
			modelExpense.CreatedBy,
			modelExpense.LastUpdatedAt,
			modelExpense.LastUpdatedBy,
		)
		if err != nil {
			return apperrors.NewStorageError("failed to insert mirrored expense for payable "+cmd.PayableID, err)
		}
		expenseID = &modelExpense.ExpenseID
	}

	// 4. Guarded status flip APPROVED -> PAID with the settlement reference.
	flipQuery := `
		UPDATE payables
		SET status = $2,
		    settlement_account_id = $3,
		    settlement_transaction_id = $4,
		    settlement_expense_id = $5,
		    last_updated_at = $6,
		    last_updated_by = $7
		WHERE payable_id = $1 AND status = $8;
	`
	cmdTag, err := tx.Exec(ctx, flipQuery,
		cmd.PayableID,
		string(domain.StatusPaid),
		cmd.AccountID,
		modelTxn.TransactionID,
		expenseID,
		now,
		userID,
		string(domain.StatusApproved),
	)
	if err != nil {
		return apperrors.NewStorageError("failed to stamp payable "+cmd.PayableID+" paid", err)
	}
	if cmdTag.RowsAffected() == 0 {
		status, statusErr := r.payableStatusInTx(ctx, tx, cmd.PayableID)
		if statusErr != nil {
			return statusErr
		}
		if status == domain.StatusPaid {
			return apperrors.NewAppError(409, "payable "+cmd.PayableID+" was settled concurrently", apperrors.ErrConflict)
		}
		return apperrors.NewAppError(409, "payable "+cmd.PayableID+" is "+string(status)+", not APPROVED", apperrors.ErrInvalidStateTransition)
	}

	// 5. Write the debited balance.
	if err := r.accountRepo.updateAccountBalanceInTx(ctx, tx, cmd.AccountID, newBalance, userID, now); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// RevertSettlement undoes a settlement while the payable is still PAID:
// re-credits the account, deletes the settling transaction and mirrored
// expense, and resets the payable to APPROVED, all in one database
// transaction. The flip is guarded on the exact settling transaction so a
// reversal that races with anything else touching the document loses cleanly.
func (r *PgxSettlementRepository) RevertSettlement(ctx context.Context, payable domain.Payable, actorID string) error {
	if payable.SettlementRef == nil {
		return apperrors.NewAppError(409, "payable "+payable.PayableID+" has no settlement to revert", apperrors.ErrInvalidStateTransition)
	}
	ref := *payable.SettlementRef

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	now := time.Now().UTC()

	// 1. Lock the funded account.
	account, err := r.accountRepo.findAccountByIDForUpdate(ctx, tx, ref.AccountID)
	if err != nil {
		return err
	}

	// 2. Read the settling transaction's amount under the lock; the payable
	// amount may be in another currency entirely.
	var debited decimal.Decimal
	err = tx.QueryRow(ctx, `SELECT amount FROM transactions WHERE transaction_id = $1;`, ref.TransactionID).Scan(&debited)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewAppError(500, "settling transaction "+ref.TransactionID+" missing for paid payable "+payable.PayableID, apperrors.ErrInternal)
		}
		return apperrors.NewStorageError("failed to read settling transaction "+ref.TransactionID, err)
	}

	// 3. Guarded flip PAID -> APPROVED, clearing the settlement reference.
	flipQuery := `
		UPDATE payables
		SET status = $2,
		    settlement_account_id = NULL,
		    settlement_transaction_id = NULL,
		    settlement_expense_id = NULL,
		    last_updated_at = $3,
		    last_updated_by = $4
		WHERE payable_id = $1 AND status = $5 AND settlement_transaction_id = $6;
	`
	cmdTag, err := tx.Exec(ctx, flipQuery,
		payable.PayableID,
		string(domain.StatusApproved),
		now,
		actorID,
		string(domain.StatusPaid),
		ref.TransactionID,
	)
	if err != nil {
		return apperrors.NewStorageError("failed to reset payable "+payable.PayableID+" to approved", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewAppError(409, "payable "+payable.PayableID+" is no longer paid by transaction "+ref.TransactionID, apperrors.ErrConflict)
	}

	// 4. Delete the mirrored expense before the transaction it references.
	if ref.ExpenseID != nil {
		if _, err := tx.Exec(ctx, `DELETE FROM expenses WHERE expense_id = $1;`, *ref.ExpenseID); err != nil {
			return apperrors.NewStorageError("failed to delete mirrored expense "+*ref.ExpenseID, err)
		}
	}

	// 5. Delete the settling transaction.
	if _, err := tx.Exec(ctx, `DELETE FROM transactions WHERE transaction_id = $1;`, ref.TransactionID); err != nil {
		return apperrors.NewStorageError("failed to delete settling transaction "+ref.TransactionID, err)
	}

	// 6. Re-credit the account.
	newBalance := account.Balance.Add(debited)
	if err := r.accountRepo.updateAccountBalanceInTx(ctx, tx, ref.AccountID, newBalance, actorID, now); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}
