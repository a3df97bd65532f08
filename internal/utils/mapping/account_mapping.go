package mapping

import (
	"github.com/obrasoft/obra-backoffice/internal/core/domain"
	"github.com/obrasoft/obra-backoffice/internal/models"
)

// ToModelAccount converts a domain.Account to its storage model.
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:   d.AccountID,
		Kind:        models.AccountKind(d.Kind),
		OwnerID:     d.OwnerID,
		Name:        d.Name,
		Currency:    string(d.Currency),
		IsActive:    d.IsActive,
		AuditFields: ToModelAuditFields(d.AuditFields),
		Balance:     d.Balance,
	}
}

// ToDomainAccount converts a storage model account back to the domain type.
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:   m.AccountID,
		Kind:        domain.AccountKind(m.Kind),
		OwnerID:     m.OwnerID,
		Name:        m.Name,
		Currency:    domain.Currency(m.Currency),
		IsActive:    m.IsActive,
		AuditFields: ToDomainAuditFields(m.AuditFields),
		Balance:     m.Balance,
	}
}

// ToDomainAccountSlice converts a slice of model accounts.
func ToDomainAccountSlice(ms []models.Account) []domain.Account {
	ds := make([]domain.Account, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAccount(m)
	}
	return ds
}
