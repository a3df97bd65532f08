package dto

import (
	"time"

	"github.com/obrasoft/obra-backoffice/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SubmitPayableRequest defines the data needed to create a payable document.
// Variant fields are validated per kind by the service.
type SubmitPayableRequest struct {
	Kind          domain.PayableKind `json:"kind" binding:"required,oneof=CASH_ADVANCE CONTRACTOR_CERTIFICATION FUND_REQUEST MONTHLY_SALARY"`
	Title         string             `json:"title" binding:"required"`
	BeneficiaryID string             `json:"beneficiaryID" binding:"required"`
	Amount        decimal.Decimal    `json:"amount" binding:"required"`
	Currency      domain.Currency    `json:"currency" binding:"required,oneof=ARS USD"`
	RequestDate   time.Time          `json:"requestDate" binding:"required"`
	ProjectID     string             `json:"projectID"`    // CONTRACTOR_CERTIFICATION (required), FUND_REQUEST (optional)
	ContractorID  string             `json:"contractorID"` // CONTRACTOR_CERTIFICATION only
	Period        string             `json:"period" binding:"omitempty,payperiod"` // MONTHLY_SALARY, YYYY-MM
}

// SettlementRefResponse mirrors domain.SettlementRef.
type SettlementRefResponse struct {
	AccountID     string  `json:"accountID"`
	TransactionID string  `json:"transactionID"`
	ExpenseID     *string `json:"expenseID,omitempty"`
}

// PayableResponse defines the data returned for a payable document.
type PayableResponse struct {
	PayableID     string                 `json:"payableID"`
	Kind          domain.PayableKind     `json:"kind"`
	Title         string                 `json:"title"`
	BeneficiaryID string                 `json:"beneficiaryID"`
	Amount        decimal.Decimal        `json:"amount"`
	Currency      domain.Currency        `json:"currency"`
	Status        domain.PayableStatus   `json:"status"`
	RequestDate   time.Time              `json:"requestDate"`
	SettlementRef *SettlementRefResponse `json:"settlementRef,omitempty"`
	ProjectID     string                 `json:"projectID,omitempty"`
	ContractorID  string                 `json:"contractorID,omitempty"`
	Period        string                 `json:"period,omitempty"`
	CreatedAt     time.Time              `json:"createdAt"`
	CreatedBy     string                 `json:"createdBy"`
}

// ToPayableResponse converts a domain.Payable to its DTO.
func ToPayableResponse(p *domain.Payable) PayableResponse {
	resp := PayableResponse{
		PayableID:     p.PayableID,
		Kind:          p.Kind,
		Title:         p.Title,
		BeneficiaryID: p.BeneficiaryID,
		Amount:        p.Amount,
		Currency:      p.Currency,
		Status:        p.Status,
		RequestDate:   p.RequestDate,
		ProjectID:     p.ProjectID,
		ContractorID:  p.ContractorID,
		Period:        p.Period,
		CreatedAt:     p.CreatedAt,
		CreatedBy:     p.CreatedBy,
	}
	if p.SettlementRef != nil {
		resp.SettlementRef = &SettlementRefResponse{
			AccountID:     p.SettlementRef.AccountID,
			TransactionID: p.SettlementRef.TransactionID,
			ExpenseID:     p.SettlementRef.ExpenseID,
		}
	}
	return resp
}
