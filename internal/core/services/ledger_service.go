package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/obrasoft/obra-backoffice/internal/apperrors"
	portsrepo "github.com/obrasoft/obra-backoffice/internal/core/ports/repositories"
	portssvc "github.com/obrasoft/obra-backoffice/internal/core/ports/services"
	"github.com/obrasoft/obra-backoffice/internal/dto"
	"github.com/obrasoft/obra-backoffice/internal/middleware"
)

const (
	defaultStatementPageSize = 20
	maxStatementPageSize     = 100
)

// ledgerService is the read side of the append-only transaction ledger.
type ledgerService struct {
	ledgerRepo  portsrepo.LedgerRepositoryFacade
	accountRepo portsrepo.AccountReader
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(ledgerRepo portsrepo.LedgerRepositoryFacade, accountRepo portsrepo.AccountReader) portssvc.LedgerSvcFacade {
	return &ledgerService{ledgerRepo: ledgerRepo, accountRepo: accountRepo}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// ListTransactionsByAccount retrieves a page of an account's statement, newest
// first. The account must exist; statements for unknown accounts are a 404,
// not an empty page.
func (s *ledgerService) ListTransactionsByAccount(ctx context.Context, accountID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.accountRepo.FindAccountByID(ctx, accountID); err != nil {
		return nil, err
	}

	if params.From != nil && params.To != nil && params.To.Before(*params.From) {
		return nil, fmt.Errorf("%w: statement range end precedes start", apperrors.ErrValidation)
	}

	limit := params.Limit
	if limit <= 0 {
		limit = defaultStatementPageSize
	}
	if limit > maxStatementPageSize {
		limit = maxStatementPageSize
	}

	transactions, nextToken, err := s.ledgerRepo.ListTransactionsByAccountID(ctx, accountID, params.From, params.To, limit, params.NextToken)
	if err != nil {
		if !errors.Is(err, apperrors.ErrValidation) {
			logger.Error("Failed to list transactions", slog.String("account_id", accountID), slog.String("error", err.Error()))
		}
		return nil, err
	}

	return &dto.ListTransactionsResponse{
		Transactions: dto.ToTransactionResponses(transactions),
		NextToken:    nextToken,
	}, nil
}
