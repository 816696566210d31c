package mapping

import (
	"github.com/finbooks/finbooks_app/internal/core/domain"
	"github.com/finbooks/finbooks_app/internal/models"
)

// ToModelAccount converts a domain Account to a model Account.
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:      d.AccountID,
		CompanyID:      d.CompanyID,
		Name:           d.Name,
		AccountType:    models.AccountType(d.AccountType),
		CurrencyCode:   d.CurrencyCode,
		Description:    d.Description,
		IsActive:       d.IsActive,
		Balance:        d.Balance,
		LastActivityAt: d.LastActivityAt,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccount converts a model Account to a domain Account.
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:      m.AccountID,
		CompanyID:      m.CompanyID,
		Name:           m.Name,
		AccountType:    domain.AccountType(m.AccountType),
		CurrencyCode:   m.CurrencyCode,
		Description:    m.Description,
		IsActive:       m.IsActive,
		Balance:        m.Balance,
		LastActivityAt: m.LastActivityAt,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelAccountBalance converts domain ledger state to a model row.
func ToModelAccountBalance(d domain.AccountBalance) models.AccountBalance {
	return models.AccountBalance{
		AccountID:        d.AccountID,
		CompanyID:        d.CompanyID,
		AccountType:      models.AccountType(d.AccountType),
		CurrencyCode:     d.CurrencyCode,
		CurrentBalance:   d.Metrics.CurrentBalance,
		OpeningBalance:   d.Metrics.OpeningBalance,
		TotalDebits:      d.Metrics.TotalDebits,
		TotalCredits:     d.Metrics.TotalCredits,
		TransactionCount: d.Metrics.TransactionCount,
		LastActivityAt:   d.Metrics.LastActivityAt,
		Version:          d.Metrics.Version,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccountBalance converts a model balance row to domain state.
func ToDomainAccountBalance(m models.AccountBalance) domain.AccountBalance {
	return domain.AccountBalance{
		AccountID:    m.AccountID,
		CompanyID:    m.CompanyID,
		AccountType:  domain.AccountType(m.AccountType),
		CurrencyCode: m.CurrencyCode,
		Metrics: domain.BalanceMetrics{
			CurrentBalance:   m.CurrentBalance,
			OpeningBalance:   m.OpeningBalance,
			TotalDebits:      m.TotalDebits,
			TotalCredits:     m.TotalCredits,
			TransactionCount: m.TransactionCount,
			LastActivityAt:   m.LastActivityAt,
			Version:          m.Version,
		},
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelBalanceChange converts a domain change record to a model row.
func ToModelBalanceChange(d domain.BalanceChange) models.BalanceChange {
	return models.BalanceChange{
		ChangeID:        d.ChangeID,
		AccountID:       d.AccountID,
		CompanyID:       d.CompanyID,
		TransactionID:   d.TransactionID,
		LineType:        string(d.LineType),
		Amount:          d.Amount,
		Delta:           d.Delta,
		PreviousBalance: d.PreviousBalance,
		NewBalance:      d.NewBalance,
		IsReversal:      d.IsReversal,
		OccurredAt:      d.OccurredAt,
	}
}

// ToDomainBalanceChange converts a model change row to a domain record.
func ToDomainBalanceChange(m models.BalanceChange) domain.BalanceChange {
	return domain.BalanceChange{
		ChangeID:        m.ChangeID,
		AccountID:       m.AccountID,
		CompanyID:       m.CompanyID,
		TransactionID:   m.TransactionID,
		LineType:        domain.TransactionType(m.LineType),
		Amount:          m.Amount,
		Delta:           m.Delta,
		PreviousBalance: m.PreviousBalance,
		NewBalance:      m.NewBalance,
		IsReversal:      m.IsReversal,
		OccurredAt:      m.OccurredAt,
	}
}
