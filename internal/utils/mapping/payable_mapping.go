package mapping

import (
	"github.com/obrasoft/obra-backoffice/internal/core/domain"
	"github.com/obrasoft/obra-backoffice/internal/models"
)

// ToModelPayable converts a domain.Payable to its storage model. Variant and
// settlement fields flatten into nullable columns.
func ToModelPayable(d domain.Payable) models.Payable {
	m := models.Payable{
		PayableID:     d.PayableID,
		Kind:          models.PayableKind(d.Kind),
		Title:         d.Title,
		BeneficiaryID: d.BeneficiaryID,
		Amount:        d.Amount,
		Currency:      string(d.Currency),
		Status:        models.PayableStatus(d.Status),
		RequestDate:   d.RequestDate,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
	if d.SettlementRef != nil {
		m.SettlementAccountID = &d.SettlementRef.AccountID
		m.SettlementTransactionID = &d.SettlementRef.TransactionID
		m.SettlementExpenseID = d.SettlementRef.ExpenseID
	}
	if d.ProjectID != "" {
		m.ProjectID = &d.ProjectID
	}
	if d.ContractorID != "" {
		m.ContractorID = &d.ContractorID
	}
	if d.Period != "" {
		m.Period = &d.Period
	}
	return m
}

// ToDomainPayable converts a storage model payable back to the tagged domain type.
func ToDomainPayable(m models.Payable) domain.Payable {
	d := domain.Payable{
		PayableID:     m.PayableID,
		Kind:          domain.PayableKind(m.Kind),
		Title:         m.Title,
		BeneficiaryID: m.BeneficiaryID,
		Amount:        m.Amount,
		Currency:      domain.Currency(m.Currency),
		Status:        domain.PayableStatus(m.Status),
		RequestDate:   m.RequestDate,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
	if m.SettlementAccountID != nil && m.SettlementTransactionID != nil {
		d.SettlementRef = &domain.SettlementRef{
			AccountID:     *m.SettlementAccountID,
			TransactionID: *m.SettlementTransactionID,
			ExpenseID:     m.SettlementExpenseID,
		}
	}
	if m.ProjectID != nil {
		d.ProjectID = *m.ProjectID
	}
	if m.ContractorID != nil {
		d.ContractorID = *m.ContractorID
	}
	if m.Period != nil {
		d.Period = *m.Period
	}
	return d
}

// ToDomainPayableSlice converts a slice of model payables.
func ToDomainPayableSlice(ms []models.Payable) []domain.Payable {
	ds := make([]domain.Payable, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainPayable(m)
	}
	return ds
}

// ToModelExpense converts a domain.Expense to its storage model.
func ToModelExpense(d domain.Expense) models.Expense {
	return models.Expense{
		ExpenseID:     d.ExpenseID,
		ProjectID:     d.ProjectID,
		PayableID:     d.PayableID,
		TransactionID: d.TransactionID,
		Amount:        d.Amount,
		Currency:      string(d.Currency),
		Description:   d.Description,
		ExpenseDate:   d.ExpenseDate,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainExpense converts a storage model expense back to the domain type.
func ToDomainExpense(m models.Expense) domain.Expense {
	return domain.Expense{
		ExpenseID:     m.ExpenseID,
		ProjectID:     m.ProjectID,
		PayableID:     m.PayableID,
		TransactionID: m.TransactionID,
		Amount:        m.Amount,
		Currency:      domain.Currency(m.Currency),
		Description:   m.Description,
		ExpenseDate:   m.ExpenseDate,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}
