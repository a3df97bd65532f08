package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/obrasoft/obra-backoffice/internal/core/domain"
	portsrepo "github.com/obrasoft/obra-backoffice/internal/core/ports/repositories"
	portssvc "github.com/obrasoft/obra-backoffice/internal/core/ports/services"
	"github.com/obrasoft/obra-backoffice/internal/dto"
	"github.com/obrasoft/obra-backoffice/internal/repositories/memory"
)

var (
	approverCap  = domain.Capability{ActorID: "approver-1", CanApprove: true}
	treasurerCap = domain.Capability{ActorID: "treasurer-1", CanSettle: true}
	clerkCap     = domain.Capability{ActorID: "clerk-1"}
)

// newTestServices wires the full service container over the in-memory store.
func newTestServices(t *testing.T) (portsrepo.RepositoryProvider, *portssvc.ServiceContainer) {
	t.Helper()
	repos := newTestRepos(t)
	return repos, NewServiceContainer(repos, nil, nil)
}

func newTestRepos(t *testing.T) portsrepo.RepositoryProvider {
	t.Helper()
	return memory.NewRepositoryProvider()
}

// seedAccount persists a treasury account holding the given balance. Balances
// normally only move through settlements; tests seed them at the repository
// level the way an opening-balance import would.
func seedAccount(t *testing.T, repos portsrepo.RepositoryProvider, currency domain.Currency, balance string) domain.Account {
	t.Helper()
	now := time.Now().UTC()
	account := domain.Account{
		AccountID: uuid.NewString(),
		Kind:      domain.Treasury,
		Name:      "Main treasury " + string(currency),
		Currency:  currency,
		IsActive:  true,
		Balance:   decimal.RequireFromString(balance),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     "seed",
			LastUpdatedAt: now,
			LastUpdatedBy: "seed",
		},
	}
	require.NoError(t, repos.AccountRepo.SaveAccount(context.Background(), account))
	return account
}

// submitApproved creates a payable and walks it to APPROVED.
func submitApproved(t *testing.T, svcs *portssvc.ServiceContainer, req dto.SubmitPayableRequest) *domain.Payable {
	t.Helper()
	ctx := context.Background()

	submitted, err := svcs.Payable.SubmitPayable(ctx, req, clerkCap.ActorID)
	require.NoError(t, err)

	approved, err := svcs.Payable.ApprovePayable(ctx, submitted.PayableID, approverCap)
	require.NoError(t, err)
	require.Equal(t, domain.StatusApproved, approved.Status)
	return approved
}

func fundRequest(amount string, requestDate time.Time) dto.SubmitPayableRequest {
	return dto.SubmitPayableRequest{
		Kind:          domain.FundRequest,
		Title:         "Site materials",
		BeneficiaryID: "foreman-7",
		Amount:        decimal.RequireFromString(amount),
		Currency:      domain.ARS,
		RequestDate:   requestDate,
	}
}

func certification(amount, projectID, contractorID string, requestDate time.Time) dto.SubmitPayableRequest {
	return dto.SubmitPayableRequest{
		Kind:          domain.ContractorCertification,
		Title:         "Work certification",
		BeneficiaryID: contractorID,
		Amount:        decimal.RequireFromString(amount),
		Currency:      domain.ARS,
		RequestDate:   requestDate,
		ProjectID:     projectID,
		ContractorID:  contractorID,
	}
}
