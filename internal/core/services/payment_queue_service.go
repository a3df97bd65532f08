package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/obrasoft/obra-backoffice/internal/core/domain"
	portsrepo "github.com/obrasoft/obra-backoffice/internal/core/ports/repositories"
	portssvc "github.com/obrasoft/obra-backoffice/internal/core/ports/services"
	"github.com/obrasoft/obra-backoffice/internal/dto"
	"github.com/obrasoft/obra-backoffice/internal/middleware"
	"github.com/obrasoft/obra-backoffice/pkg/metrics"
)

var queueKinds = []domain.PayableKind{
	domain.MonthlySalary,
	domain.ContractorCertification,
	domain.FundRequest,
	domain.CashAdvance,
}

// paymentQueueService merges the APPROVED payables of all four kinds into one
// prioritized read-only queue. Settling an item is what removes it; the queue
// itself never mutates anything.
type paymentQueueService struct {
	payableRepo portsrepo.PayableReader
	// cutoffs optionally hides approved documents older than an operator
	// chosen horizon, per kind. A kind without an entry has no cutoff.
	cutoffs   map[domain.PayableKind]time.Time
	collector *metrics.Collector
}

// NewPaymentQueueService creates a new PaymentQueueService. collector may be
// nil when metrics are disabled.
func NewPaymentQueueService(payableRepo portsrepo.PayableReader, cutoffs map[domain.PayableKind]time.Time, collector *metrics.Collector) portssvc.PaymentQueueSvcFacade {
	return &paymentQueueService{payableRepo: payableRepo, cutoffs: cutoffs, collector: collector}
}

var _ portssvc.PaymentQueueSvcFacade = (*paymentQueueService)(nil)

// referenceDate is the date a queue item sorts by. Salaries sort by the first
// day of their accounting period, not by when someone typed them in; everything
// else sorts by its request date.
func referenceDate(p domain.Payable) time.Time {
	if p.Kind == domain.MonthlySalary && p.Period != "" {
		if t, err := time.Parse("2006-01", p.Period); err == nil {
			return t
		}
	}
	return p.RequestDate
}

// ListQueue returns every approved payable as one queue, oldest reference date
// first, ties broken by kind priority and then by id so the order is total.
func (s *paymentQueueService) ListQueue(ctx context.Context) (*dto.PaymentQueueResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	var merged []domain.Payable
	for _, kind := range queueKinds {
		var cutoff *time.Time
		if c, ok := s.cutoffs[kind]; ok {
			cutoff = &c
		}
		payables, err := s.payableRepo.ListPayables(ctx, kind, domain.StatusApproved, cutoff)
		if err != nil {
			logger.Error("Failed to list approved payables", slog.String("kind", string(kind)), slog.String("error", err.Error()))
			return nil, fmt.Errorf("failed to list approved %s payables: %w", kind, err)
		}
		merged = append(merged, payables...)
	}

	sort.SliceStable(merged, func(i, j int) bool {
		di, dj := referenceDate(merged[i]), referenceDate(merged[j])
		if !di.Equal(dj) {
			return di.Before(dj)
		}
		pi, pj := merged[i].Kind.QueuePriority(), merged[j].Kind.QueuePriority()
		if pi != pj {
			return pi < pj
		}
		return merged[i].PayableID < merged[j].PayableID
	})

	items := make([]dto.PaymentQueueItem, len(merged))
	for i, p := range merged {
		items[i] = dto.PaymentQueueItem{
			ID:            p.PayableID,
			Kind:          p.Kind,
			Title:         p.Title,
			BeneficiaryID: p.BeneficiaryID,
			Amount:        p.Amount,
			Currency:      p.Currency,
			Date:          referenceDate(p),
		}
	}

	if s.collector != nil {
		s.collector.SetQueueDepth(len(items))
	}

	return &dto.PaymentQueueResponse{Items: items}, nil
}
