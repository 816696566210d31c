package dto

import (
	"time"

	"github.com/finbooks/finbooks_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateCompanyRequest creates a bookkeeping tenant.
type CreateCompanyRequest struct {
	Name                string `json:"name" binding:"required"`
	DefaultCurrencyCode string `json:"defaultCurrencyCode" binding:"required,len=3"`
}

// CompanyResponse is the presentation of one company.
type CompanyResponse struct {
	CompanyID           string    `json:"companyID"`
	Name                string    `json:"name"`
	DefaultCurrencyCode string    `json:"defaultCurrencyCode"`
	IsActive            bool      `json:"isActive"`
	CreatedAt           time.Time `json:"createdAt"`
}

// ToCompanyResponse converts a domain company for presentation.
func ToCompanyResponse(c *domain.Company) CompanyResponse {
	return CompanyResponse{
		CompanyID:           c.CompanyID,
		Name:                c.Name,
		DefaultCurrencyCode: c.DefaultCurrencyCode,
		IsActive:            c.IsActive,
		CreatedAt:           c.CreatedAt,
	}
}

// ClosePeriodRequest closes a date range against new transactions.
type ClosePeriodRequest struct {
	From time.Time `json:"from" binding:"required"`
	To   time.Time `json:"to" binding:"required"`
}

// UpdateThresholdsRequest updates per-company edge-case configuration.
// Pointer fields are optional; absent fields keep their current value.
type UpdateThresholdsRequest struct {
	LargeTransactionThreshold           *decimal.Decimal `json:"largeTransactionThreshold"`
	BackdatedDaysThreshold              *int             `json:"backdatedDaysThreshold"`
	DormantAccountDays                  *int             `json:"dormantAccountDays"`
	RequireApprovalForContraEntries     *bool            `json:"requireApprovalForContraEntries"`
	RequireApprovalForEquityAdjustments *bool            `json:"requireApprovalForEquityAdjustments"`
	RequireApprovalForNegativeBalance   *bool            `json:"requireApprovalForNegativeBalance"`
	FlagRoundNumbers                    *bool            `json:"flagRoundNumbers"`
	FlagPeriodEndEntries                *bool            `json:"flagPeriodEndEntries"`
}
