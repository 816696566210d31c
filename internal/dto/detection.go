package dto

import (
	"time"

	"github.com/finbooks/finbooks_app/internal/core/domain"
	"github.com/finbooks/finbooks_app/internal/core/edgecase"
	"github.com/shopspring/decimal"
)

// FlagResponse is one raised edge-case flag.
type FlagResponse struct {
	Type             string         `json:"type"`
	Description      string         `json:"description"`
	RequiresApproval bool           `json:"requiresApproval"`
	Context          map[string]any `json:"context,omitempty"`
}

// DetectionResponse is the outcome of an edge-case detection run.
type DetectionResponse struct {
	TransactionID         string         `json:"transactionID"`
	Flags                 []FlagResponse `json:"flags"`
	RequiresApproval      bool           `json:"requiresApproval"`
	SuggestedApprovalType string         `json:"suggestedApprovalType"`
}

// ToDetectionResponse converts an engine result for presentation.
func ToDetectionResponse(transactionID string, result edgecase.Result) DetectionResponse {
	flags := result.Flags()
	out := make([]FlagResponse, len(flags))
	for i, f := range flags {
		out[i] = FlagResponse{
			Type:             string(f.Type),
			Description:      f.Description,
			RequiresApproval: f.RequiresApproval,
			Context:          f.Context,
		}
	}
	return DetectionResponse{
		TransactionID:         transactionID,
		Flags:                 out,
		RequiresApproval:      result.RequiresApproval(),
		SuggestedApprovalType: result.SuggestedApprovalType(),
	}
}

// ThresholdsResponse is the presentation of company detection thresholds.
type ThresholdsResponse struct {
	CompanyID                           string          `json:"companyID"`
	LargeTransactionThreshold           decimal.Decimal `json:"largeTransactionThreshold"`
	BackdatedDaysThreshold              int             `json:"backdatedDaysThreshold"`
	DormantAccountDays                  int             `json:"dormantAccountDays"`
	RequireApprovalForContraEntries     bool            `json:"requireApprovalForContraEntries"`
	RequireApprovalForEquityAdjustments bool            `json:"requireApprovalForEquityAdjustments"`
	RequireApprovalForNegativeBalance   bool            `json:"requireApprovalForNegativeBalance"`
	FlagRoundNumbers                    bool            `json:"flagRoundNumbers"`
	FlagPeriodEndEntries                bool            `json:"flagPeriodEndEntries"`
}

// ToThresholdsResponse converts thresholds for presentation.
func ToThresholdsResponse(th edgecase.Thresholds) ThresholdsResponse {
	return ThresholdsResponse{
		CompanyID:                           th.CompanyID,
		LargeTransactionThreshold:           th.LargeTransactionThreshold,
		BackdatedDaysThreshold:              th.BackdatedDaysThreshold,
		DormantAccountDays:                  th.DormantAccountDays,
		RequireApprovalForContraEntries:     th.RequireApprovalForContraEntries,
		RequireApprovalForEquityAdjustments: th.RequireApprovalForEquityAdjustments,
		RequireApprovalForNegativeBalance:   th.RequireApprovalForNegativeBalance,
		FlagRoundNumbers:                    th.FlagRoundNumbers,
		FlagPeriodEndEntries:                th.FlagPeriodEndEntries,
	}
}

// ApprovalResponse is the presentation of one approval record.
type ApprovalResponse struct {
	ApprovalID   string     `json:"approvalID"`
	CompanyID    string     `json:"companyID"`
	TargetType   string     `json:"targetType"`
	TargetID     string     `json:"targetID"`
	ContentHash  string     `json:"contentHash"`
	ApprovalType string     `json:"approvalType"`
	Status       string     `json:"status"`
	RequestedBy  string     `json:"requestedBy"`
	RequestedAt  time.Time  `json:"requestedAt"`
	DecidedBy    string     `json:"decidedBy,omitempty"`
	DecidedAt    *time.Time `json:"decidedAt,omitempty"`
	Notes        string     `json:"notes,omitempty"`
}

// ApprovalDecisionRequest records an approve/reject decision.
type ApprovalDecisionRequest struct {
	Approve bool   `json:"approve"`
	Notes   string `json:"notes"`
}

// ToApprovalResponse converts a domain approval for presentation.
func ToApprovalResponse(a *domain.Approval) ApprovalResponse {
	return ApprovalResponse{
		ApprovalID:   a.ApprovalID,
		CompanyID:    a.CompanyID,
		TargetType:   a.TargetType,
		TargetID:     a.TargetID,
		ContentHash:  a.ContentHash,
		ApprovalType: a.ApprovalType,
		Status:       string(a.Status),
		RequestedBy:  a.RequestedBy,
		RequestedAt:  a.RequestedAt,
		DecidedBy:    a.DecidedBy,
		DecidedAt:    a.DecidedAt,
		Notes:        a.Notes,
	}
}

// ToApprovalResponses converts a slice of approvals.
func ToApprovalResponses(approvals []domain.Approval) []ApprovalResponse {
	responses := make([]ApprovalResponse, len(approvals))
	for i := range approvals {
		responses[i] = ToApprovalResponse(&approvals[i])
	}
	return responses
}
