package services

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obrasoft/obra-backoffice/internal/core/domain"
	"github.com/obrasoft/obra-backoffice/internal/dto"
)

func salaryRequest(amount, period string, requestDate time.Time) dto.SubmitPayableRequest {
	return dto.SubmitPayableRequest{
		Kind:          domain.MonthlySalary,
		Title:         "Salary " + period,
		BeneficiaryID: "employee-12",
		Amount:        decimal.RequireFromString(amount),
		Currency:      domain.ARS,
		RequestDate:   requestDate,
		Period:        period,
	}
}

func TestQueueOrdersSalariesByPeriodStart(t *testing.T) {
	ctx := context.Background()
	_, svcs := newTestServices(t)

	// The salary was typed in on the 25th but its period anchors it to
	// February 1st, ahead of both fund requests.
	frEarly := submitApproved(t, svcs, fundRequest("100", time.Date(2026, 2, 18, 10, 0, 0, 0, time.UTC)))
	frLate := submitApproved(t, svcs, fundRequest("200", time.Date(2026, 2, 20, 10, 0, 0, 0, time.UTC)))
	salary := submitApproved(t, svcs, salaryRequest("900", "2026-02", time.Date(2026, 2, 25, 9, 0, 0, 0, time.UTC)))

	queue, err := svcs.PaymentQueue.ListQueue(ctx)
	require.NoError(t, err)
	require.Len(t, queue.Items, 3)

	assert.Equal(t, salary.PayableID, queue.Items[0].ID)
	assert.Equal(t, frEarly.PayableID, queue.Items[1].ID)
	assert.Equal(t, frLate.PayableID, queue.Items[2].ID)
	assert.Equal(t, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), queue.Items[0].Date)
}

func TestQueueBreaksDateTiesByKindPriority(t *testing.T) {
	ctx := context.Background()
	_, svcs := newTestServices(t)

	sameDay := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	advance := submitApproved(t, svcs, dto.SubmitPayableRequest{
		Kind:          domain.CashAdvance,
		Title:         "Advance",
		BeneficiaryID: "employee-4",
		Amount:        decimal.RequireFromString("50"),
		Currency:      domain.ARS,
		RequestDate:   sameDay,
	})
	cert := submitApproved(t, svcs, certification("400", "project-1", "contractor-1", sameDay))
	fr := submitApproved(t, svcs, fundRequest("100", sameDay))

	queue, err := svcs.PaymentQueue.ListQueue(ctx)
	require.NoError(t, err)
	require.Len(t, queue.Items, 3)

	// Certifications outrank fund requests, fund requests outrank advances.
	assert.Equal(t, cert.PayableID, queue.Items[0].ID)
	assert.Equal(t, fr.PayableID, queue.Items[1].ID)
	assert.Equal(t, advance.PayableID, queue.Items[2].ID)
}

func TestQueueExcludesNonApprovedPayables(t *testing.T) {
	ctx := context.Background()
	_, svcs := newTestServices(t)

	pending, err := svcs.Payable.SubmitPayable(ctx, fundRequest("100", time.Now().UTC()), clerkCap.ActorID)
	require.NoError(t, err)

	rejected, err := svcs.Payable.SubmitPayable(ctx, fundRequest("200", time.Now().UTC()), clerkCap.ActorID)
	require.NoError(t, err)
	_, err = svcs.Payable.RejectPayable(ctx, rejected.PayableID, approverCap)
	require.NoError(t, err)

	approved := submitApproved(t, svcs, fundRequest("300", time.Now().UTC()))

	queue, err := svcs.PaymentQueue.ListQueue(ctx)
	require.NoError(t, err)
	require.Len(t, queue.Items, 1)
	assert.Equal(t, approved.PayableID, queue.Items[0].ID)
	_ = pending
}

func TestQueueCutoffHidesOldDocuments(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos(t)

	cutoffs := map[domain.PayableKind]time.Time{
		domain.FundRequest: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
	}
	svcs := NewServiceContainer(repos, cutoffs, nil)

	old := submitApproved(t, svcs, fundRequest("100", time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)))
	recent := submitApproved(t, svcs, fundRequest("200", time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC)))

	queue, err := svcs.PaymentQueue.ListQueue(ctx)
	require.NoError(t, err)
	require.Len(t, queue.Items, 1)
	assert.Equal(t, recent.PayableID, queue.Items[0].ID)
	_ = old
}
