package domain

import "time"

// ApprovalStatus is the decision state of an approval request.
type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "PENDING"
	ApprovalApproved ApprovalStatus = "APPROVED"
	ApprovalRejected ApprovalStatus = "REJECTED"
)

// Approval is a request-and-decision record. It binds the decision to the
// exact content hash of the entity it approves, so any later content
// change invalidates the proof.
type Approval struct {
	ApprovalID   string         `json:"approvalID"`
	CompanyID    string         `json:"companyID"`
	TargetType   string         `json:"targetType"` // e.g. "transaction"
	TargetID     string         `json:"targetID"`
	ContentHash  string         `json:"contentHash"`
	ApprovalType string         `json:"approvalType"` // e.g. "high_value", "backdated"
	Status       ApprovalStatus `json:"status"`
	RequestedBy  string         `json:"requestedBy"`
	RequestedAt  time.Time      `json:"requestedAt"`
	DecidedBy    string         `json:"decidedBy,omitempty"`
	DecidedAt    *time.Time     `json:"decidedAt,omitempty"`
	Notes        string         `json:"notes,omitempty"`
}

// NewApprovalRequest creates a pending approval bound to the given
// content hash.
func NewApprovalRequest(approvalID, companyID, targetType, targetID, contentHash, approvalType, requestedBy string, now time.Time) Approval {
	return Approval{
		ApprovalID:   approvalID,
		CompanyID:    companyID,
		TargetType:   targetType,
		TargetID:     targetID,
		ContentHash:  contentHash,
		ApprovalType: approvalType,
		Status:       ApprovalPending,
		RequestedBy:  requestedBy,
		RequestedAt:  now,
	}
}

// NewAutoApproval creates an already-approved proof for postings that
// raised no approval-requiring flags. The record still binds to the
// content hash so the posting is auditable.
func NewAutoApproval(approvalID, companyID, targetID, contentHash, userID string, now time.Time) Approval {
	approval := NewApprovalRequest(approvalID, companyID, "transaction", targetID, contentHash, "transaction", userID, now)
	approval.Status = ApprovalApproved
	approval.DecidedBy = userID
	approval.DecidedAt = &now
	approval.Notes = "auto-approved: no approval-requiring flags"
	return approval
}

// Approve records an approval decision.
func (a *Approval) Approve(userID, notes string, now time.Time) {
	a.Status = ApprovalApproved
	a.DecidedBy = userID
	a.DecidedAt = &now
	a.Notes = notes
}

// Reject records a rejection decision.
func (a *Approval) Reject(userID, notes string, now time.Time) {
	a.Status = ApprovalRejected
	a.DecidedBy = userID
	a.DecidedAt = &now
	a.Notes = notes
}

// Proves reports whether this approval is a valid proof for the entity
// with the given current content hash: it must be approved and the bound
// hash must still match.
func (a *Approval) Proves(contentHash string) bool {
	return a.Status == ApprovalApproved && a.ContentHash == contentHash
}
