package edgecase

import (
	"github.com/finbooks/finbooks_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Thresholds is the per-company detection configuration.
type Thresholds struct {
	CompanyID string `json:"companyID"`

	// LargeTransactionThreshold is the total-debits amount above which a
	// transaction requires approval.
	LargeTransactionThreshold decimal.Decimal `json:"largeTransactionThreshold"`
	// BackdatedDaysThreshold is how many days in the past a transaction
	// date may lie before it requires approval.
	BackdatedDaysThreshold int `json:"backdatedDaysThreshold"`
	// DormantAccountDays is the inactivity window after which posting to
	// an account is flagged for review.
	DormantAccountDays int `json:"dormantAccountDays"`

	RequireApprovalForContraEntries     bool `json:"requireApprovalForContraEntries"`
	RequireApprovalForEquityAdjustments bool `json:"requireApprovalForEquityAdjustments"`
	RequireApprovalForNegativeBalance   bool `json:"requireApprovalForNegativeBalance"`
	FlagRoundNumbers                    bool `json:"flagRoundNumbers"`
	FlagPeriodEndEntries                bool `json:"flagPeriodEndEntries"`

	domain.AuditFields
}

// DefaultThresholds returns the configuration applied to companies that
// have not customized their detection rules.
func DefaultThresholds(companyID string) Thresholds {
	return Thresholds{
		CompanyID:                           companyID,
		LargeTransactionThreshold:           decimal.NewFromInt(10000),
		BackdatedDaysThreshold:              30,
		DormantAccountDays:                  365,
		RequireApprovalForContraEntries:     true,
		RequireApprovalForEquityAdjustments: true,
		RequireApprovalForNegativeBalance:   true,
		FlagRoundNumbers:                    true,
		FlagPeriodEndEntries:                true,
	}
}
