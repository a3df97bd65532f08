package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/obrasoft/obra-backoffice/internal/apperrors"
	"github.com/obrasoft/obra-backoffice/internal/core/domain"
	portsrepo "github.com/obrasoft/obra-backoffice/internal/core/ports/repositories"
	portssvc "github.com/obrasoft/obra-backoffice/internal/core/ports/services"
	"github.com/obrasoft/obra-backoffice/internal/dto"
	"github.com/obrasoft/obra-backoffice/internal/middleware"
)

var periodPattern = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// payableService drives the payable document life cycle. The only edges it
// walks itself are PENDING -> APPROVED, PENDING -> REJECTED and
// APPROVED -> PENDING; PAID is reachable exclusively through the settlement
// service, which keeps the Paid <=> SettlementRef invariant out of reach of
// bare status writes.
type payableService struct {
	payableRepo portsrepo.PayableRepositoryFacade
}

// NewPayableService creates a new PayableService.
func NewPayableService(payableRepo portsrepo.PayableRepositoryFacade) portssvc.PayableSvcFacade {
	return &payableService{payableRepo: payableRepo}
}

var _ portssvc.PayableSvcFacade = (*payableService)(nil)

func validateVariantFields(req dto.SubmitPayableRequest) error {
	switch req.Kind {
	case domain.ContractorCertification:
		if req.ProjectID == "" || req.ContractorID == "" {
			return fmt.Errorf("%w: certification requires projectID and contractorID", apperrors.ErrValidation)
		}
	case domain.MonthlySalary:
		if !periodPattern.MatchString(req.Period) {
			return fmt.Errorf("%w: salary requires period in YYYY-MM form", apperrors.ErrValidation)
		}
	case domain.CashAdvance, domain.FundRequest:
		// No extra required fields; fund requests may carry a project for
		// expense mirroring.
	default:
		return fmt.Errorf("%w: unknown payable kind %s", apperrors.ErrValidation, req.Kind)
	}
	return nil
}

// SubmitPayable creates a new payable in PENDING.
func (s *payableService) SubmitPayable(ctx context.Context, req dto.SubmitPayableRequest, actorID string) (*domain.Payable, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}
	if !req.Currency.IsValid() {
		return nil, fmt.Errorf("%w: unsupported currency %s", apperrors.ErrValidation, req.Currency)
	}
	if err := validateVariantFields(req); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	payable := domain.Payable{
		PayableID:     uuid.NewString(),
		Kind:          req.Kind,
		Title:         req.Title,
		BeneficiaryID: req.BeneficiaryID,
		Amount:        req.Amount,
		Currency:      req.Currency,
		Status:        domain.StatusPending,
		RequestDate:   req.RequestDate,
		ProjectID:     req.ProjectID,
		ContractorID:  req.ContractorID,
		Period:        req.Period,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}

	if err := s.payableRepo.SavePayable(ctx, payable); err != nil {
		logger.Error("Failed to save payable", slog.String("error", err.Error()), slog.String("payable_id", payable.PayableID))
		return nil, err
	}

	logger.Info("Payable submitted", slog.String("payable_id", payable.PayableID), slog.String("kind", string(payable.Kind)))
	return &payable, nil
}

// GetPayableByID retrieves one payable document.
func (s *payableService) GetPayableByID(ctx context.Context, payableID string) (*domain.Payable, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	payable, err := s.payableRepo.FindPayableByID(ctx, payableID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find payable", slog.String("error", err.Error()), slog.String("payable_id", payableID))
		}
		return nil, err
	}
	return payable, nil
}

// transition walks one guarded status edge. The repository-level flip is
// conditional on the expected source status, so a concurrent transition on
// the same document leaves exactly one winner.
func (s *payableService) transition(ctx context.Context, payableID string, to domain.PayableStatus, cap domain.Capability) (*domain.Payable, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !cap.CanApprove {
		return nil, fmt.Errorf("%w: actor %s may not change payable approval state", apperrors.ErrForbidden, cap.ActorID)
	}

	payable, err := s.payableRepo.FindPayableByID(ctx, payableID)
	if err != nil {
		return nil, err
	}

	from := payable.Status
	if !domain.CanTransition(from, to) {
		return nil, fmt.Errorf("%w: %s -> %s", apperrors.ErrInvalidStateTransition, from, to)
	}
	// The PAID edges are never walked here, even though the life-cycle table
	// knows them: they belong to the settlement unit.
	if from == domain.StatusPaid || to == domain.StatusPaid {
		return nil, fmt.Errorf("%w: %s -> %s must go through settlement", apperrors.ErrInvalidStateTransition, from, to)
	}

	now := time.Now().UTC()
	if err := s.payableRepo.UpdatePayableStatus(ctx, payableID, from, to, cap.ActorID, now); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			logger.Warn("Payable transition lost a race", slog.String("payable_id", payableID), slog.String("from", string(from)), slog.String("to", string(to)))
		} else {
			logger.Error("Failed to update payable status", slog.String("error", err.Error()), slog.String("payable_id", payableID))
		}
		return nil, err
	}

	payable.Status = to
	payable.LastUpdatedAt = now
	payable.LastUpdatedBy = cap.ActorID

	logger.Info("Payable transitioned", slog.String("payable_id", payableID), slog.String("from", string(from)), slog.String("to", string(to)))
	return payable, nil
}

// ApprovePayable moves PENDING -> APPROVED.
func (s *payableService) ApprovePayable(ctx context.Context, payableID string, cap domain.Capability) (*domain.Payable, error) {
	return s.transition(ctx, payableID, domain.StatusApproved, cap)
}

// RejectPayable moves PENDING -> REJECTED.
func (s *payableService) RejectPayable(ctx context.Context, payableID string, cap domain.Capability) (*domain.Payable, error) {
	return s.transition(ctx, payableID, domain.StatusRejected, cap)
}

// RevertToPending moves APPROVED -> PENDING.
func (s *payableService) RevertToPending(ctx context.Context, payableID string, cap domain.Capability) (*domain.Payable, error) {
	return s.transition(ctx, payableID, domain.StatusPending, cap)
}
