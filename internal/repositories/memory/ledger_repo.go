package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/obrasoft/obra-backoffice/internal/apperrors"
	"github.com/obrasoft/obra-backoffice/internal/core/domain"
	"github.com/obrasoft/obra-backoffice/internal/utils/pagination"
)

type LedgerRepository struct {
	store *Store
}

// FindTransactionByID retrieves one transaction.
func (r *LedgerRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	txn, exists := r.store.transactions[transactionID]
	if !exists {
		return nil, fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, transactionID)
	}
	return &txn, nil
}

// ListTransactionsByAccountID retrieves a page of an account's statement under
// the same (timestamp DESC, id ASC) ordering and cursor as the database
// implementation.
func (r *LedgerRepository) ListTransactionsByAccountID(ctx context.Context, accountID string, from, to *time.Time, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	if limit <= 0 {
		limit = 20
	}

	matching := []domain.Transaction{}
	for _, txn := range r.store.transactions {
		if txn.AccountID != accountID {
			continue
		}
		if from != nil && txn.Timestamp.Before(*from) {
			continue
		}
		if to != nil && !txn.Timestamp.Before(*to) {
			continue
		}
		matching = append(matching, txn)
	}

	sort.Slice(matching, func(i, j int) bool {
		if !matching[i].Timestamp.Equal(matching[j].Timestamp) {
			return matching[i].Timestamp.After(matching[j].Timestamp)
		}
		return matching[i].TransactionID < matching[j].TransactionID
	})

	start := 0
	if nextToken != nil && *nextToken != "" {
		lastTimestamp, lastID, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: invalid nextToken", apperrors.ErrValidation)
		}
		for i, txn := range matching {
			afterCursor := txn.Timestamp.Before(lastTimestamp) ||
				(txn.Timestamp.Equal(lastTimestamp) && txn.TransactionID > lastID)
			if afterCursor {
				start = i
				break
			}
			start = len(matching)
		}
	}

	end := start + limit
	var nextTokenVal *string
	if end < len(matching) {
		last := matching[end-1]
		token := pagination.EncodeToken(last.Timestamp, last.TransactionID)
		nextTokenVal = &token
	} else {
		end = len(matching)
	}

	page := make([]domain.Transaction, end-start)
	copy(page, matching[start:end])
	return page, nextTokenVal, nil
}
