package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Approval is the db row for an approval request and its decision.
type Approval struct {
	ApprovalID   string     `json:"approvalID"`
	CompanyID    string     `json:"companyID"`
	TargetType   string     `json:"targetType"`
	TargetID     string     `json:"targetID"`
	ContentHash  string     `json:"contentHash"`
	ApprovalType string     `json:"approvalType"`
	Status       string     `json:"status"`
	RequestedBy  string     `json:"requestedBy"`
	RequestedAt  time.Time  `json:"requestedAt"`
	DecidedBy    *string    `json:"decidedBy"`
	DecidedAt    *time.Time `json:"decidedAt"`
	Notes        *string    `json:"notes"`
}

// Thresholds is the db row for per-company edge-case configuration.
type Thresholds struct {
	CompanyID                           string          `json:"companyID"`
	LargeTransactionThreshold           decimal.Decimal `json:"largeTransactionThreshold"`
	BackdatedDaysThreshold              int             `json:"backdatedDaysThreshold"`
	DormantAccountDays                  int             `json:"dormantAccountDays"`
	RequireApprovalForContraEntries     bool            `json:"requireApprovalForContraEntries"`
	RequireApprovalForEquityAdjustments bool            `json:"requireApprovalForEquityAdjustments"`
	RequireApprovalForNegativeBalance   bool            `json:"requireApprovalForNegativeBalance"`
	FlagRoundNumbers                    bool            `json:"flagRoundNumbers"`
	FlagPeriodEndEntries                bool            `json:"flagPeriodEndEntries"`
	AuditFields
}
