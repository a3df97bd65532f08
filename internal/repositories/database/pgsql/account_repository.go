package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/obrasoft/obra-backoffice/internal/apperrors"
	"github.com/obrasoft/obra-backoffice/internal/core/domain"
	portsrepo "github.com/obrasoft/obra-backoffice/internal/core/ports/repositories"
	"github.com/obrasoft/obra-backoffice/internal/models"
	"github.com/obrasoft/obra-backoffice/internal/utils/mapping"
)

const accountColumns = `account_id, kind, owner_id, name, currency, is_active, balance, created_at, created_by, last_updated_at, last_updated_by`

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(pool *pgxpool.Pool) *PgxAccountRepository {
	return &PgxAccountRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxAccountRepository implements portsrepo.AccountRepositoryFacade
var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

func scanAccount(row pgx.Row) (*models.Account, error) {
	var m models.Account
	err := row.Scan(
		&m.AccountID,
		&m.Kind,
		&m.OwnerID,
		&m.Name,
		&m.Currency,
		&m.IsActive,
		&m.Balance,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// SaveAccount persists a new account.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	modelAccount := mapping.ToModelAccount(account)
	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		modelAccount.AccountID,
		modelAccount.Kind,
		modelAccount.OwnerID,
		modelAccount.Name,
		modelAccount.Currency,
		modelAccount.IsActive,
		modelAccount.Balance,
		modelAccount.CreatedAt,
		modelAccount.CreatedBy,
		modelAccount.LastUpdatedAt,
		modelAccount.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewStorageError("failed to insert account "+modelAccount.AccountID, err)
	}
	return nil
}

// FindAccountByID retrieves an account by its ID.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1;`
	m, err := scanAccount(r.Pool.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewStorageError("failed to find account by ID "+accountID, err)
	}
	domainAccount := mapping.ToDomainAccount(*m)
	return &domainAccount, nil
}

// FindAccountByOwnerAndCurrency retrieves the active personal cash account for
// an (owner, currency) pair. The partial unique index on the table guarantees
// at most one row qualifies.
func (r *PgxAccountRepository) FindAccountByOwnerAndCurrency(ctx context.Context, ownerID string, currency domain.Currency) (*domain.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE owner_id = $1 AND currency = $2 AND kind = $3 AND is_active = TRUE;
	`
	m, err := scanAccount(r.Pool.QueryRow(ctx, query, ownerID, string(currency), string(domain.PersonalCash)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewStorageError("failed to find account for owner "+ownerID, err)
	}
	domainAccount := mapping.ToDomainAccount(*m)
	return &domainAccount, nil
}

// ListAccounts retrieves a paginated list of active accounts.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE is_active = TRUE
		ORDER BY created_at, account_id
		LIMIT $1 OFFSET $2;
	`
	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to query accounts", err)
	}
	defer rows.Close()

	modelAccounts := []models.Account{}
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, apperrors.NewStorageError("failed to scan account row", err)
		}
		modelAccounts = append(modelAccounts, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStorageError("error iterating account rows", err)
	}

	return mapping.ToDomainAccountSlice(modelAccounts), nil
}

// DeactivateAccount marks an account as inactive. The balance guard is part of
// the statement so a settlement that lands between the service's read and this
// write cannot strand money in a deactivated account.
func (r *PgxAccountRepository) DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error {
	query := `
		UPDATE accounts
		SET is_active = FALSE,
		    last_updated_at = $2,
		    last_updated_by = $3
		WHERE account_id = $1 AND balance = 0;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, accountID, now, userID)
	if err != nil {
		return apperrors.NewStorageError("failed to deactivate account "+accountID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		// Either the account does not exist or it still holds money.
		if _, findErr := r.FindAccountByID(ctx, accountID); findErr != nil {
			return findErr
		}
		return apperrors.NewAppError(400, "account "+accountID+" holds a non-zero balance", apperrors.ErrValidation)
	}
	return nil
}

// findAccountByIDForUpdate locks one account row inside tx and returns its
// current state. Used by the settlement unit.
func (r *PgxAccountRepository) findAccountByIDForUpdate(ctx context.Context, tx pgx.Tx, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1 FOR UPDATE;`
	m, err := scanAccount(tx.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewStorageError("failed to lock account "+accountID, err)
	}
	domainAccount := mapping.ToDomainAccount(*m)
	return &domainAccount, nil
}

// updateAccountBalanceInTx writes the new balance of a row already locked by
// findAccountByIDForUpdate.
func (r *PgxAccountRepository) updateAccountBalanceInTx(ctx context.Context, tx pgx.Tx, accountID string, newBalance decimal.Decimal, userID string, now time.Time) error {
	query := `
		UPDATE accounts
		SET balance = $2,
		    last_updated_at = $3,
		    last_updated_by = $4
		WHERE account_id = $1;
	`
	cmdTag, err := tx.Exec(ctx, query, accountID, newBalance, now, userID)
	if err != nil {
		return apperrors.NewStorageError("failed to update balance of account "+accountID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("account " + accountID + " not found for balance update")
	}
	return nil
}
