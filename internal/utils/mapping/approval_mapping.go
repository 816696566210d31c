package mapping

import (
	"github.com/finbooks/finbooks_app/internal/core/domain"
	"github.com/finbooks/finbooks_app/internal/core/edgecase"
	"github.com/finbooks/finbooks_app/internal/models"
)

// ToModelApproval converts a domain Approval to a model row.
func ToModelApproval(d domain.Approval) models.Approval {
	m := models.Approval{
		ApprovalID:   d.ApprovalID,
		CompanyID:    d.CompanyID,
		TargetType:   d.TargetType,
		TargetID:     d.TargetID,
		ContentHash:  d.ContentHash,
		ApprovalType: d.ApprovalType,
		Status:       string(d.Status),
		RequestedBy:  d.RequestedBy,
		RequestedAt:  d.RequestedAt,
		DecidedAt:    d.DecidedAt,
	}
	if d.DecidedBy != "" {
		m.DecidedBy = &d.DecidedBy
	}
	if d.Notes != "" {
		m.Notes = &d.Notes
	}
	return m
}

// ToDomainApproval converts a model row to a domain Approval.
func ToDomainApproval(m models.Approval) domain.Approval {
	d := domain.Approval{
		ApprovalID:   m.ApprovalID,
		CompanyID:    m.CompanyID,
		TargetType:   m.TargetType,
		TargetID:     m.TargetID,
		ContentHash:  m.ContentHash,
		ApprovalType: m.ApprovalType,
		Status:       domain.ApprovalStatus(m.Status),
		RequestedBy:  m.RequestedBy,
		RequestedAt:  m.RequestedAt,
		DecidedAt:    m.DecidedAt,
	}
	if m.DecidedBy != nil {
		d.DecidedBy = *m.DecidedBy
	}
	if m.Notes != nil {
		d.Notes = *m.Notes
	}
	return d
}

// ToModelThresholds converts edge-case configuration to a model row.
func ToModelThresholds(d edgecase.Thresholds) models.Thresholds {
	return models.Thresholds{
		CompanyID:                           d.CompanyID,
		LargeTransactionThreshold:           d.LargeTransactionThreshold,
		BackdatedDaysThreshold:              d.BackdatedDaysThreshold,
		DormantAccountDays:                  d.DormantAccountDays,
		RequireApprovalForContraEntries:     d.RequireApprovalForContraEntries,
		RequireApprovalForEquityAdjustments: d.RequireApprovalForEquityAdjustments,
		RequireApprovalForNegativeBalance:   d.RequireApprovalForNegativeBalance,
		FlagRoundNumbers:                    d.FlagRoundNumbers,
		FlagPeriodEndEntries:                d.FlagPeriodEndEntries,
		AuditFields:                         ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainThresholds converts a model row to edge-case configuration.
func ToDomainThresholds(m models.Thresholds) edgecase.Thresholds {
	return edgecase.Thresholds{
		CompanyID:                           m.CompanyID,
		LargeTransactionThreshold:           m.LargeTransactionThreshold,
		BackdatedDaysThreshold:              m.BackdatedDaysThreshold,
		DormantAccountDays:                  m.DormantAccountDays,
		RequireApprovalForContraEntries:     m.RequireApprovalForContraEntries,
		RequireApprovalForEquityAdjustments: m.RequireApprovalForEquityAdjustments,
		RequireApprovalForNegativeBalance:   m.RequireApprovalForNegativeBalance,
		FlagRoundNumbers:                    m.FlagRoundNumbers,
		FlagPeriodEndEntries:                m.FlagPeriodEndEntries,
		AuditFields:                         ToDomainAuditFields(m.AuditFields),
	}
}
