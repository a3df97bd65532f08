package pgsql

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/obrasoft/obra-backoffice/internal/apperrors"
	"github.com/obrasoft/obra-backoffice/internal/core/domain"
	portsrepo "github.com/obrasoft/obra-backoffice/internal/core/ports/repositories"
	"github.com/obrasoft/obra-backoffice/internal/models"
	"github.com/obrasoft/obra-backoffice/internal/utils/mapping"
	"github.com/obrasoft/obra-backoffice/internal/utils/pagination"
)

const transactionColumns = `transaction_id, account_id, direction, amount, currency, description, timestamp,
	related_document_kind, related_document_id, running_balance,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxLedgerRepository struct {
	BaseRepository
}

// newPgxLedgerRepository creates a new read-side repository over the ledger.
// Transactions are written only by the settlement repository.
func newPgxLedgerRepository(pool *pgxpool.Pool) *PgxLedgerRepository {
	return &PgxLedgerRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxLedgerRepository implements portsrepo.LedgerRepositoryFacade
var _ portsrepo.LedgerRepositoryFacade = (*PgxLedgerRepository)(nil)

func scanTransaction(row pgx.Row) (*models.Transaction, error) {
	var m models.Transaction
	err := row.Scan(
		&m.TransactionID,
		&m.AccountID,
		&m.Direction,
		&m.Amount,
		&m.Currency,
		&m.Description,
		&m.Timestamp,
		&m.RelatedDocumentKind,
		&m.RelatedDocumentID,
		&m.RunningBalance,
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

// FindTransactionByID retrieves one transaction.
func (r *PgxLedgerRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1;`
	m, err := scanTransaction(r.Pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewStorageError("failed to find transaction by ID "+transactionID, err)
	}
	domainTxn := mapping.ToDomainTransaction(*m)
	return &domainTxn, nil
}

// ListTransactionsByAccountID retrieves a paginated list of transactions for an
// account using token-based pagination. Ordering is timestamp DESC with ties
// broken by transaction_id ASC; the cursor encodes that exact pair so a resumed
// read continues precisely where the previous page stopped.
func (r *PgxLedgerRepository) ListTransactionsByAccountID(ctx context.Context, accountID string, from, to *time.Time, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// We fetch one extra item to determine if there's a next page.
	fetchLimit := limit + 1

	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE account_id = $1
	`
	args := []interface{}{accountID}

	if from != nil {
		args = append(args, *from)
		query += ` AND timestamp >= $` + strconv.Itoa(len(args))
	}
	if to != nil {
		args = append(args, *to)
		query += ` AND timestamp < $` + strconv.Itoa(len(args))
	}

	if nextToken != nil && *nextToken != "" {
		lastTimestamp, lastID, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		// Rows strictly after the cursor under (timestamp DESC, id ASC).
		args = append(args, lastTimestamp)
		tsArg := strconv.Itoa(len(args))
		args = append(args, lastID)
		idArg := strconv.Itoa(len(args))
		query += ` AND (timestamp < $` + tsArg + ` OR (timestamp = $` + tsArg + ` AND transaction_id > $` + idArg + `))`
	}

	args = append(args, fetchLimit)
	query += ` ORDER BY timestamp DESC, transaction_id ASC LIMIT $` + strconv.Itoa(len(args)) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewStorageError("failed to query transactions for account "+accountID, err)
	}
	defer rows.Close()

	modelTxns := make([]models.Transaction, 0, fetchLimit)
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			return nil, nil, apperrors.NewStorageError("failed to scan transaction row for account "+accountID, err)
		}
		modelTxns = append(modelTxns, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewStorageError("error iterating transaction rows for account "+accountID, err)
	}

	var nextTokenVal *string
	results := modelTxns
	if len(modelTxns) > limit {
		// The token points to the last item included in this response page.
		lastTxn := modelTxns[limit-1]
		token := pagination.EncodeToken(lastTxn.Timestamp, lastTxn.TransactionID)
		nextTokenVal = &token
		results = modelTxns[:limit]
	}

	return mapping.ToDomainTransactionSlice(results), nextTokenVal, nil
}
