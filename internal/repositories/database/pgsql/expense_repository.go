package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/obrasoft/obra-backoffice/internal/apperrors"
	"github.com/obrasoft/obra-backoffice/internal/core/domain"
	portsrepo "github.com/obrasoft/obra-backoffice/internal/core/ports/repositories"
	"github.com/obrasoft/obra-backoffice/internal/models"
	"github.com/obrasoft/obra-backoffice/internal/utils/mapping"
)

const expenseColumns = `expense_id, project_id, payable_id, transaction_id, amount, currency, description, expense_date,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxExpenseRepository struct {
	BaseRepository
}

// newPgxExpenseRepository creates a read-side repository over mirrored project
// expenses. Writes happen only inside the settlement unit.
func newPgxExpenseRepository(pool *pgxpool.Pool) *PgxExpenseRepository {
	return &PgxExpenseRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxExpenseRepository implements portsrepo.ExpenseRepositoryFacade
var _ portsrepo.ExpenseRepositoryFacade = (*PgxExpenseRepository)(nil)

func scanExpense(row pgx.Row) (*models.Expense, error) {
	var m models.Expense
	err := row.Scan(
		&m.ExpenseID,
		&m.ProjectID,
		&m.PayableID,
		&m.TransactionID,
		&m.Amount,
		&m.Currency,
		&m.Description,
		&m.ExpenseDate,
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

// FindExpenseByID retrieves one expense record.
func (r *PgxExpenseRepository) FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE expense_id = $1;`
	m, err := scanExpense(r.Pool.QueryRow(ctx, query, expenseID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewStorageError("failed to find expense by ID "+expenseID, err)
	}
	domainExpense := mapping.ToDomainExpense(*m)
	return &domainExpense, nil
}

// ListExpensesByProject retrieves the expenses charged to a project, newest
// first.
func (r *PgxExpenseRepository) ListExpensesByProject(ctx context.Context, projectID string) ([]domain.Expense, error) {
	query := `
		SELECT ` + expenseColumns + `
		FROM expenses
		WHERE project_id = $1
		ORDER BY expense_date DESC, expense_id ASC;
	`
	rows, err := r.Pool.Query(ctx, query, projectID)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to query expenses for project "+projectID, err)
	}
	defer rows.Close()

	expenses := []domain.Expense{}
	for rows.Next() {
		m, err := scanExpense(rows)
		if err != nil {
			return nil, apperrors.NewStorageError("failed to scan expense row for project "+projectID, err)
		}
		expenses = append(expenses, mapping.ToDomainExpense(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStorageError("error iterating expense rows for project "+projectID, err)
	}

	return expenses, nil
}
