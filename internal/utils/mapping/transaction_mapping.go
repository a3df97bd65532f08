package mapping

import (
	"github.com/obrasoft/obra-backoffice/internal/core/domain"
	"github.com/obrasoft/obra-backoffice/internal/models"
)

// ToModelTransaction converts a domain.Transaction to its storage model.
func ToModelTransaction(d domain.Transaction) models.Transaction {
	m := models.Transaction{
		TransactionID:  d.TransactionID,
		AccountID:      d.AccountID,
		Direction:      models.TransactionDirection(d.Direction),
		Amount:         d.Amount,
		Currency:       string(d.Currency),
		Description:    d.Description,
		Timestamp:      d.Timestamp,
		AuditFields:    ToModelAuditFields(d.AuditFields),
		RunningBalance: d.RunningBalance,
	}
	if d.RelatedDocument != nil {
		kind := string(d.RelatedDocument.Kind)
		id := d.RelatedDocument.ID
		m.RelatedDocumentKind = &kind
		m.RelatedDocumentID = &id
	}
	return m
}

// ToDomainTransaction converts a storage model transaction back to the domain type.
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	d := domain.Transaction{
		TransactionID:  m.TransactionID,
		AccountID:      m.AccountID,
		Direction:      domain.TransactionDirection(m.Direction),
		Amount:         m.Amount,
		Currency:       domain.Currency(m.Currency),
		Description:    m.Description,
		Timestamp:      m.Timestamp,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
		RunningBalance: m.RunningBalance,
	}
	if m.RelatedDocumentKind != nil && m.RelatedDocumentID != nil {
		d.RelatedDocument = &domain.DocumentRef{
			Kind: domain.PayableKind(*m.RelatedDocumentKind),
			ID:   *m.RelatedDocumentID,
		}
	}
	return d
}

// ToDomainTransactionSlice converts a slice of model transactions.
func ToDomainTransactionSlice(ms []models.Transaction) []domain.Transaction {
	ds := make([]domain.Transaction, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTransaction(m)
	}
	return ds
}
