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
	"github.com/obrasoft/obra-backoffice/internal/models"
	"github.com/obrasoft/obra-backoffice/internal/utils/mapping"
)

const payableColumns = `payable_id, kind, title, beneficiary_id, amount, currency, status, request_date,
	settlement_account_id, settlement_transaction_id, settlement_expense_id,
	project_id, contractor_id, period,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxPayableRepository struct {
	BaseRepository
}

// newPgxPayableRepository creates a new repository for payable documents.
func newPgxPayableRepository(pool *pgxpool.Pool) *PgxPayableRepository {
	return &PgxPayableRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxPayableRepository implements portsrepo.PayableRepositoryFacade
var _ portsrepo.PayableRepositoryFacade = (*PgxPayableRepository)(nil)

func scanPayable(row pgx.Row) (*models.Payable, error) {
	var m models.Payable
	err := row.Scan(
		&m.PayableID,
		&m.Kind,
		&m.Title,
		&m.BeneficiaryID,
		&m.Amount,
		&m.Currency,
		&m.Status,
		&m.RequestDate,
		&m.SettlementAccountID,
		&m.SettlementTransactionID,
		&m.SettlementExpenseID,
		&m.ProjectID,
		&m.ContractorID,
		&m.Period,
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

// SavePayable persists a new payable document.
func (r *PgxPayableRepository) SavePayable(ctx context.Context, payable domain.Payable) error {
	modelPayable := mapping.ToModelPayable(payable)
	query := `
		INSERT INTO payables (` + payableColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18);
	`
	_, err := r.Pool.Exec(ctx, query,
		modelPayable.PayableID,
		modelPayable.Kind,
		modelPayable.Title,
		modelPayable.BeneficiaryID,
		modelPayable.Amount,
		modelPayable.Currency,
		modelPayable.Status,
		modelPayable.RequestDate,
		modelPayable.SettlementAccountID,
		modelPayable.SettlementTransactionID,
		modelPayable.SettlementExpenseID,
		modelPayable.ProjectID,
		modelPayable.ContractorID,
		modelPayable.Period,
		modelPayable.CreatedAt,
		modelPayable.CreatedBy,
		modelPayable.LastUpdatedAt,
		modelPayable.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewStorageError("failed to insert payable "+modelPayable.PayableID, err)
	}
	return nil
}

// FindPayableByID retrieves a payable document by its ID.
func (r *PgxPayableRepository) FindPayableByID(ctx context.Context, payableID string) (*domain.Payable, error) {
	query := `SELECT ` + payableColumns + ` FROM payables WHERE payable_id = $1;`
	m, err := scanPayable(r.Pool.QueryRow(ctx, query, payableID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewStorageError("failed to find payable by ID "+payableID, err)
	}
	domainPayable := mapping.ToDomainPayable(*m)
	return &domainPayable, nil
}

// ListPayables retrieves payables of one kind in one status, ordered by
// request date ascending with ties broken by id so the order is total.
func (r *PgxPayableRepository) ListPayables(ctx context.Context, kind domain.PayableKind, status domain.PayableStatus, cutoff *time.Time) ([]domain.Payable, error) {
	query := `
		SELECT ` + payableColumns + `
		FROM payables
		WHERE kind = $1 AND status = $2
	`
	args := []interface{}{string(kind), string(status)}
	if cutoff != nil {
		query += ` AND request_date >= $3`
		args = append(args, *cutoff)
	}
	query += ` ORDER BY request_date ASC, payable_id ASC;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to query payables of kind "+string(kind), err)
	}
	defer rows.Close()

	modelPayables := []models.Payable{}
	for rows.Next() {
		m, err := scanPayable(rows)
		if err != nil {
			return nil, apperrors.NewStorageError("failed to scan payable row", err)
		}
		modelPayables = append(modelPayables, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStorageError("error iterating payable rows", err)
	}

	return mapping.ToDomainPayableSlice(modelPayables), nil
}

// SumPaidCertifications totals the PAID contractor certifications for a
// (contractor, project) pair.
func (r *PgxPayableRepository) SumPaidCertifications(ctx context.Context, contractorID, projectID string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM payables
		WHERE kind = $1 AND status = $2 AND contractor_id = $3 AND project_id = $4;
	`
	var total decimal.Decimal
	err := r.Pool.QueryRow(ctx, query,
		string(domain.ContractorCertification),
		string(domain.StatusPaid),
		contractorID,
		projectID,
	).Scan(&total)
	if err != nil {
		return decimal.Zero, apperrors.NewStorageError("failed to sum paid certifications for contractor "+contractorID, err)
	}
	return total, nil
}

// UpdatePayableStatus flips the status from `from` to `to` as a guarded write.
// Zero rows affected means the document either vanished or already left `from`;
// the latter surfaces as ErrConflict so callers can report the lost race.
func (r *PgxPayableRepository) UpdatePayableStatus(ctx context.Context, payableID string, from, to domain.PayableStatus, userID string, now time.Time) error {
	query := `
		UPDATE payables
		SET status = $3,
		    last_updated_at = $4,
		    last_updated_by = $5
		WHERE payable_id = $1 AND status = $2;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, payableID, string(from), string(to), now, userID)
	if err != nil {
		return apperrors.NewStorageError("failed to update status of payable "+payableID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		if _, findErr := r.FindPayableByID(ctx, payableID); findErr != nil {
			return findErr
		}
		return apperrors.NewAppError(409, "payable "+payableID+" is no longer "+string(from), apperrors.ErrConflict)
	}
	return nil
}
