package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/obrasoft/obra-backoffice/internal/apperrors"
	"github.com/obrasoft/obra-backoffice/internal/core/domain"
	portsrepo "github.com/obrasoft/obra-backoffice/internal/core/ports/repositories"
	portssvc "github.com/obrasoft/obra-backoffice/internal/core/ports/services"
	"github.com/obrasoft/obra-backoffice/internal/dto"
	"github.com/obrasoft/obra-backoffice/internal/middleware"
	"github.com/obrasoft/obra-backoffice/internal/utils"
	"github.com/obrasoft/obra-backoffice/pkg/metrics"
)

// settlementService owns the APPROVED -> PAID edge and its exact inverse. It
// prepares the full write set (debit transaction, mirrored expense) up front
// and hands it to the settlement repository, which applies everything as one
// unit with the preconditions re-checked under row locks. The checks here are
// fail-fast; the ones that matter are the repository's.
type settlementService struct {
	settlementRepo portsrepo.SettlementRepository
	payableRepo    portsrepo.PayableRepositoryFacade
	accountRepo    portsrepo.AccountRepositoryFacade
	rateRepo       portsrepo.ExchangeRateReader
	collector      *metrics.Collector
}

// NewSettlementService creates a new SettlementService. collector may be nil
// when metrics are disabled.
func NewSettlementService(
	settlementRepo portsrepo.SettlementRepository,
	payableRepo portsrepo.PayableRepositoryFacade,
	accountRepo portsrepo.AccountRepositoryFacade,
	rateRepo portsrepo.ExchangeRateReader,
	collector *metrics.Collector,
) portssvc.SettlementSvcFacade {
	return &settlementService{
		settlementRepo: settlementRepo,
		payableRepo:    payableRepo,
		accountRepo:    accountRepo,
		rateRepo:       rateRepo,
		collector:      collector,
	}
}

var _ portssvc.SettlementSvcFacade = (*settlementService)(nil)

// resolveDebitAmount converts the payable amount into the account currency.
// Same currency passes through untouched. Otherwise the caller-supplied rate
// wins; failing that, the latest stored rate; failing that, the settlement is
// refused rather than guessed.
func (s *settlementService) resolveDebitAmount(ctx context.Context, payable *domain.Payable, account *domain.Account, override *decimal.Decimal) (decimal.Decimal, error) {
	if payable.Currency == account.Currency {
		return payable.Amount, nil
	}

	var rate decimal.Decimal
	switch {
	case override != nil:
		if override.LessThanOrEqual(decimal.Zero) {
			return decimal.Zero, fmt.Errorf("%w: exchange rate must be positive", apperrors.ErrValidation)
		}
		rate = *override
	default:
		stored, err := s.rateRepo.FindLatestRate(ctx, payable.Currency, account.Currency)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return decimal.Zero, fmt.Errorf("%w: no rate from %s to %s and none supplied", apperrors.ErrCurrencyMismatch, payable.Currency, account.Currency)
			}
			return decimal.Zero, err
		}
		rate = stored.Rate
	}

	return payable.Amount.Mul(rate).Round(2), nil
}

// Settle pays an APPROVED payable from an account.
func (s *settlementService) Settle(ctx context.Context, req dto.SettleRequest, cap domain.Capability) (*dto.SettlementResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	start := time.Now()
	success := false
	defer func() {
		if s.collector != nil {
			s.collector.RecordSettlement(time.Since(start), success)
		}
	}()

	if !cap.CanSettle {
		return nil, fmt.Errorf("%w: actor %s may not settle payables", apperrors.ErrForbidden, cap.ActorID)
	}

	payable, err := s.payableRepo.FindPayableByID(ctx, req.PayableID)
	if err != nil {
		return nil, err
	}
	if payable.Status != domain.StatusApproved {
		return nil, fmt.Errorf("%w: payable %s is %s, only APPROVED payables can be settled", apperrors.ErrInvalidStateTransition, payable.PayableID, payable.Status)
	}

	account, err := s.accountRepo.FindAccountByID(ctx, req.AccountID)
	if err != nil {
		return nil, err
	}
	if !account.IsActive {
		return nil, fmt.Errorf("%w: account %s is inactive", apperrors.ErrValidation, account.AccountID)
	}

	debit, err := s.resolveDebitAmount(ctx, payable, account, req.ExchangeRate)
	if err != nil {
		return nil, err
	}
	if account.Balance.LessThan(debit) {
		return nil, fmt.Errorf("%w: account %s balance %s does not cover %s", apperrors.ErrInsufficientFunds, account.AccountID, account.Balance, debit)
	}

	now := time.Now().UTC()
	txn := domain.Transaction{
		TransactionID: uuid.NewString(),
		AccountID:     account.AccountID,
		Direction:     domain.Debit,
		Amount:        debit,
		Currency:      account.Currency,
		Description:   req.Description,
		Timestamp:     now,
		RelatedDocument: &domain.DocumentRef{
			Kind: payable.Kind,
			ID:   payable.PayableID,
		},
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     cap.ActorID,
			LastUpdatedAt: now,
			LastUpdatedBy: cap.ActorID,
		},
	}

	var expense *domain.Expense
	if payable.MirrorsExpense() {
		expense = &domain.Expense{
			ExpenseID:     uuid.NewString(),
			ProjectID:     payable.ProjectID,
			PayableID:     payable.PayableID,
			TransactionID: txn.TransactionID,
			Amount:        payable.Amount,
			Currency:      payable.Currency,
			Description:   payable.Title,
			ExpenseDate:   now,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     cap.ActorID,
				LastUpdatedAt: now,
				LastUpdatedBy: cap.ActorID,
			},
		}
	}

	cmd := portsrepo.SettleCommand{
		PayableID:   payable.PayableID,
		AccountID:   account.AccountID,
		Transaction: txn,
		Expense:     expense,
		ActorID:     cap.ActorID,
	}
	if err := s.settlementRepo.SettlePayable(ctx, cmd); err != nil {
		if apperrors.IsRetryable(err) {
			logger.Warn("Settlement lost a race or hit storage trouble", slog.String("payable_id", payable.PayableID), slog.String("error", err.Error()))
		} else {
			logger.Error("Settlement failed", slog.String("payable_id", payable.PayableID), slog.String("error", err.Error()))
		}
		return nil, err
	}
	success = true

	// Re-read committed state for the response: the repository filled in the
	// settlement reference and running balance under its locks.
	paid, err := s.payableRepo.FindPayableByID(ctx, payable.PayableID)
	if err != nil {
		return nil, fmt.Errorf("settlement committed but re-read failed: %w", err)
	}
	funded, err := s.accountRepo.FindAccountByID(ctx, account.AccountID)
	if err != nil {
		return nil, fmt.Errorf("settlement committed but account re-read failed: %w", err)
	}

	if s.collector != nil {
		bal, _ := funded.Balance.Float64()
		s.collector.SetAccountBalance(funded.AccountID, string(funded.Currency), bal)
	}

	logger.Info("Payable settled",
		slog.String("payable_id", paid.PayableID),
		slog.String("account_id", funded.AccountID),
		slog.String("transaction_id", txn.TransactionID),
		slog.String("debited", utils.FormatAmount(debit, account.Currency)))

	resp := &dto.SettlementResponse{
		Payable:        dto.ToPayableResponse(paid),
		TransactionID:  txn.TransactionID,
		AccountID:      funded.AccountID,
		DebitedAmount:  debit,
		AccountBalance: funded.Balance,
	}
	if expense != nil {
		resp.ExpenseID = &expense.ExpenseID
	}
	return resp, nil
}

// Revert undoes a settlement while the payable is still PAID.
func (s *settlementService) Revert(ctx context.Context, payableID string, cap domain.Capability) (*domain.Payable, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !cap.CanSettle {
		return nil, fmt.Errorf("%w: actor %s may not revert settlements", apperrors.ErrForbidden, cap.ActorID)
	}

	payable, err := s.payableRepo.FindPayableByID(ctx, payableID)
	if err != nil {
		return nil, err
	}
	if payable.Status != domain.StatusPaid || payable.SettlementRef == nil {
		return nil, fmt.Errorf("%w: payable %s is %s, only PAID payables can be reverted", apperrors.ErrInvalidStateTransition, payableID, payable.Status)
	}

	if err := s.settlementRepo.RevertSettlement(ctx, *payable, cap.ActorID); err != nil {
		logger.Error("Settlement reversal failed", slog.String("payable_id", payableID), slog.String("error", err.Error()))
		return nil, err
	}

	if s.collector != nil {
		s.collector.RecordReversal()
	}

	reverted, err := s.payableRepo.FindPayableByID(ctx, payableID)
	if err != nil {
		return nil, fmt.Errorf("reversal committed but re-read failed: %w", err)
	}

	logger.Info("Settlement reverted", slog.String("payable_id", payableID), slog.String("account_id", payable.SettlementRef.AccountID))
	return reverted, nil
}
