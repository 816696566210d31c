package mapping

import (
	"github.com/finbooks/finbooks_app/internal/core/domain"
	"github.com/finbooks/finbooks_app/internal/models"
)

// ToModelTransaction converts a domain Transaction header to a model row.
func ToModelTransaction(d domain.Transaction) models.Transaction {
	m := models.Transaction{
		TransactionID:     d.TransactionID,
		CompanyID:         d.CompanyID,
		TransactionNumber: d.TransactionNumber,
		TransactionDate:   d.TransactionDate,
		Description:       d.Description,
		ReferenceNumber:   d.ReferenceNumber,
		Status:            models.TransactionStatus(d.Status),
		PostedAt:          d.PostedAt,
		VoidedAt:          d.VoidedAt,
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
	if d.PostedBy != "" {
		m.PostedBy = &d.PostedBy
	}
	if d.VoidedBy != "" {
		m.VoidedBy = &d.VoidedBy
	}
	if d.VoidReason != "" {
		m.VoidReason = &d.VoidReason
	}
	return m
}

// ToDomainTransaction converts a model row and its line rows to a domain
// Transaction.
func ToDomainTransaction(m models.Transaction, lines []models.TransactionLine) *domain.Transaction {
	domainLines := make([]domain.TransactionLine, len(lines))
	for i, line := range lines {
		domainLines[i] = domain.TransactionLine{
			LineID:      line.LineID,
			AccountID:   line.AccountID,
			LineType:    domain.TransactionType(line.LineType),
			Amount:      line.Amount,
			Description: line.Description,
		}
	}
	txn := domain.ReconstructTransaction(
		m.TransactionID,
		m.CompanyID,
		m.TransactionNumber,
		m.TransactionDate,
		m.Description,
		m.ReferenceNumber,
		domain.TransactionStatus(m.Status),
		domainLines,
		ToDomainAuditFields(m.AuditFields),
	)
	if m.PostedBy != nil {
		txn.PostedBy = *m.PostedBy
	}
	txn.PostedAt = m.PostedAt
	if m.VoidedBy != nil {
		txn.VoidedBy = *m.VoidedBy
	}
	txn.VoidedAt = m.VoidedAt
	if m.VoidReason != nil {
		txn.VoidReason = *m.VoidReason
	}
	return txn
}

// ToModelTransactionLines converts domain lines to model rows.
func ToModelTransactionLines(transactionID string, lines []domain.TransactionLine) []models.TransactionLine {
	out := make([]models.TransactionLine, len(lines))
	for i, line := range lines {
		out[i] = models.TransactionLine{
			LineID:        line.LineID,
			TransactionID: transactionID,
			AccountID:     line.AccountID,
			LineType:      string(line.LineType),
			Amount:        line.Amount,
			Description:   line.Description,
		}
	}
	return out
}
