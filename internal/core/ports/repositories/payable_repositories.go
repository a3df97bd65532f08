package repositories

import (
	"context"
	"time"

	"github.com/obrasoft/obra-backoffice/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PayableReader defines read operations for payable documents.
type PayableReader interface {
	// FindPayableByID retrieves a payable document by its identifier.
	FindPayableByID(ctx context.Context, payableID string) (*domain.Payable, error)

	// ListPayables retrieves payables of one kind in one status, optionally
	// only those with RequestDate on or after cutoff. Ordered by request date
	// ascending, ties by id ascending.
	ListPayables(ctx context.Context, kind domain.PayableKind, status domain.PayableStatus, cutoff *time.Time) ([]domain.Payable, error)

	// SumPaidCertifications returns the total amount of PAID contractor
	// certifications for a (contractor, project) pair. Derived read backing
	// the budget-ceiling check; never stored.
	SumPaidCertifications(ctx context.Context, contractorID, projectID string) (decimal.Decimal, error)
}

// PayableWriter defines write operations for payable documents outside the
// settlement unit. Status flips to or from PAID are not expressible here;
// those belong to SettlementRepository.
type PayableWriter interface {
	// SavePayable persists a new payable document (status PENDING).
	SavePayable(ctx context.Context, payable domain.Payable) error

	// UpdatePayableStatus flips the status from expected `from` to `to` as a
	// guarded write. When the row no longer holds `from` the flip fails with
	// ErrConflict, which callers map to an InvalidStateTransition where
	// appropriate.
	UpdatePayableStatus(ctx context.Context, payableID string, from, to domain.PayableStatus, userID string, now time.Time) error
}

// PayableRepositoryFacade combines all payable repository interfaces.
type PayableRepositoryFacade interface {
	PayableReader
	PayableWriter
}
