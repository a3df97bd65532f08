package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/obrasoft/obra-backoffice/internal/apperrors"
	portsrepo "github.com/obrasoft/obra-backoffice/internal/core/ports/repositories"
)

type PgxBudgetRepository struct {
	BaseRepository
}

// newPgxBudgetRepository creates a new repository for certification budget
// ceilings.
func newPgxBudgetRepository(pool *pgxpool.Pool) *PgxBudgetRepository {
	return &PgxBudgetRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxBudgetRepository implements portsrepo.BudgetRepositoryFacade
var _ portsrepo.BudgetRepositoryFacade = (*PgxBudgetRepository)(nil)

// GetBudget retrieves the configured ceiling for a (contractor, project) pair.
func (r *PgxBudgetRepository) GetBudget(ctx context.Context, contractorID, projectID string) (decimal.Decimal, error) {
	query := `SELECT amount FROM project_budgets WHERE contractor_id = $1 AND project_id = $2;`
	var amount decimal.Decimal
	err := r.Pool.QueryRow(ctx, query, contractorID, projectID).Scan(&amount)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, apperrors.ErrNotFound
		}
		return decimal.Zero, apperrors.NewStorageError("failed to read budget for contractor "+contractorID, err)
	}
	return amount, nil
}

// SetBudget creates or replaces the ceiling for a (contractor, project) pair.
func (r *PgxBudgetRepository) SetBudget(ctx context.Context, contractorID, projectID string, amount decimal.Decimal, userID string) error {
	now := time.Now().UTC()
	query := `
		INSERT INTO project_budgets (contractor_id, project_id, amount, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $4, $5)
		ON CONFLICT (contractor_id, project_id)
		DO UPDATE SET amount = EXCLUDED.amount,
		              last_updated_at = EXCLUDED.last_updated_at,
		              last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err := r.Pool.Exec(ctx, query, contractorID, projectID, amount, now, userID)
	if err != nil {
		return apperrors.NewStorageError("failed to set budget for contractor "+contractorID, err)
	}
	return nil
}
