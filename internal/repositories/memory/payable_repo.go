package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/obrasoft/obra-backoffice/internal/apperrors"
	"github.com/obrasoft/obra-backoffice/internal/core/domain"
)

type PayableRepository struct {
	store *Store
}

// SavePayable persists a new payable document.
func (r *PayableRepository) SavePayable(ctx context.Context, payable domain.Payable) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, exists := r.store.payables[payable.PayableID]; exists {
		return fmt.Errorf("%w: payable %s", apperrors.ErrDuplicate, payable.PayableID)
	}
	r.store.payables[payable.PayableID] = payable
	return nil
}

// FindPayableByID retrieves a payable document by its ID.
func (r *PayableRepository) FindPayableByID(ctx context.Context, payableID string) (*domain.Payable, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	payable, exists := r.store.payables[payableID]
	if !exists {
		return nil, fmt.Errorf("%w: payable %s", apperrors.ErrNotFound, payableID)
	}
	return &payable, nil
}

// ListPayables retrieves payables of one kind in one status, ordered by
// request date ascending with ties broken by id.
func (r *PayableRepository) ListPayables(ctx context.Context, kind domain.PayableKind, status domain.PayableStatus, cutoff *time.Time) ([]domain.Payable, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	matching := []domain.Payable{}
	for _, payable := range r.store.payables {
		if payable.Kind != kind || payable.Status != status {
			continue
		}
		if cutoff != nil && payable.RequestDate.Before(*cutoff) {
			continue
		}
		matching = append(matching, payable)
	}

	sort.Slice(matching, func(i, j int) bool {
		if !matching[i].RequestDate.Equal(matching[j].RequestDate) {
			return matching[i].RequestDate.Before(matching[j].RequestDate)
		}
		return matching[i].PayableID < matching[j].PayableID
	})
	return matching, nil
}

// SumPaidCertifications totals the PAID contractor certifications for a
// (contractor, project) pair.
func (r *PayableRepository) SumPaidCertifications(ctx context.Context, contractorID, projectID string) (decimal.Decimal, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	total := decimal.Zero
	for _, payable := range r.store.payables {
		if payable.Kind == domain.ContractorCertification &&
			payable.Status == domain.StatusPaid &&
			payable.ContractorID == contractorID &&
			payable.ProjectID == projectID {
			total = total.Add(payable.Amount)
		}
	}
	return total, nil
}

// UpdatePayableStatus flips the status from `from` to `to` as a guarded write.
func (r *PayableRepository) UpdatePayableStatus(ctx context.Context, payableID string, from, to domain.PayableStatus, userID string, now time.Time) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	payable, exists := r.store.payables[payableID]
	if !exists {
		return fmt.Errorf("%w: payable %s", apperrors.ErrNotFound, payableID)
	}
	if payable.Status != from {
		return fmt.Errorf("%w: payable %s is %s, not %s", apperrors.ErrConflict, payableID, payable.Status, from)
	}

	payable.Status = to
	payable.LastUpdatedAt = now
	payable.LastUpdatedBy = userID
	r.store.payables[payableID] = payable
	return nil
}
