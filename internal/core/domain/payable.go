package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PayableKind tags the four variants of payable document handled by the
// treasury: salary advances, contractor work certifications, fund requests
// from site managers and monthly salaries.
type PayableKind string

const (
	CashAdvance             PayableKind = "CASH_ADVANCE"
	ContractorCertification PayableKind = "CONTRACTOR_CERTIFICATION"
	FundRequest             PayableKind = "FUND_REQUEST"
	MonthlySalary           PayableKind = "MONTHLY_SALARY"
)

// IsValid reports whether k is one of the four payable kinds.
func (k PayableKind) IsValid() bool {
	switch k {
	case CashAdvance, ContractorCertification, FundRequest, MonthlySalary:
		return true
	}
	return false
}

// QueuePriority orders kinds within the unified payment queue when reference
// dates tie. Salaries come first (payroll-law urgency), then certifications,
// then fund requests, then advances.
func (k PayableKind) QueuePriority() int {
	switch k {
	case MonthlySalary:
		return 0
	case ContractorCertification:
		return 1
	case FundRequest:
		return 2
	case CashAdvance:
		return 3
	}
	return 4
}

// PayableStatus is the life-cycle state of a payable document.
type PayableStatus string

const (
	StatusPending  PayableStatus = "PENDING"
	StatusApproved PayableStatus = "APPROVED"
	StatusPaid     PayableStatus = "PAID"
	StatusRejected PayableStatus = "REJECTED"
)

// SettlementRef records how a payable was paid: the funding account, the
// settling transaction, and the mirrored project expense when the variant
// feeds project cost accounting.
type SettlementRef struct {
	AccountID     string  `json:"accountID"`
	TransactionID string  `json:"transactionID"`
	ExpenseID     *string `json:"expenseID,omitempty"`
}

// Payable is a request for money to leave the organisation. It is a tagged
// union over the four kinds: the common fields are always set, the variant
// fields only for the kind they belong to.
//
// Invariant: Status == PAID exactly when SettlementRef is non-nil and resolves
// to one transaction. Status transitions are the only mutation path besides
// the settlement side effects.
type Payable struct {
	PayableID     string          `json:"payableID"` // Primary key (UUID)
	Kind          PayableKind     `json:"kind"`
	Title         string          `json:"title"`
	BeneficiaryID string          `json:"beneficiaryID"` // Worker, contractor or requester
	Amount        decimal.Decimal `json:"amount"`        // Positive
	Currency      Currency        `json:"currency"`
	Status        PayableStatus   `json:"status"`
	RequestDate   time.Time       `json:"requestDate"`
	SettlementRef *SettlementRef  `json:"settlementRef,omitempty"`

	// CONTRACTOR_CERTIFICATION: the (contractor, project) pair the
	// certification draws its budget from. FUND_REQUEST may also carry a
	// project for expense mirroring.
	ProjectID    string `json:"projectID,omitempty"`
	ContractorID string `json:"contractorID,omitempty"`
	// MONTHLY_SALARY: accounting period in YYYY-MM form.
	Period string `json:"period,omitempty"`

	AuditFields
}

// MirrorsExpense reports whether settling this payable must also create a
// project expense record in the same atomic unit.
func (p Payable) MirrorsExpense() bool {
	if p.Kind == ContractorCertification {
		return true
	}
	// Cash-funded fund requests tied to a project mirror into project costs.
	return p.Kind == FundRequest && p.ProjectID != ""
}

// CanTransition reports whether the status edge from -> to is part of the
// life-cycle. PAID edges are listed here for completeness but are only ever
// walked by the settlement unit, never by a bare status write.
func CanTransition(from, to PayableStatus) bool {
	switch from {
	case StatusPending:
		return to == StatusApproved || to == StatusRejected
	case StatusApproved:
		return to == StatusPaid || to == StatusPending
	case StatusPaid:
		return to == StatusApproved // reversal only
	}
	return false
}
