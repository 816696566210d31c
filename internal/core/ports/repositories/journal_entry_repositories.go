package repositories

import (
	"context"

	"github.com/finbooks/finbooks_app/internal/core/domain"
)

// JournalEntryReader defines read operations over the immutable journal.
// Appends happen only through TransactionWriter.SavePosting/SaveVoid so
// the chain tip is always advanced under lock.
type JournalEntryReader interface {
	// ListEntriesByCompany returns a company's entries in chain order,
	// oldest first.
	ListEntriesByCompany(ctx context.Context, companyID string, limit, offset int) ([]domain.JournalEntry, error)

	// FindEntriesByTransaction returns the entries recorded for one
	// transaction (its POSTING and, after a void, its REVERSAL).
	FindEntriesByTransaction(ctx context.Context, transactionID string) ([]domain.JournalEntry, error)

	// GetLatestChainHash returns the company's current chain tip, or
	// domain.GenesisHash when the company has no entries yet.
	GetLatestChainHash(ctx context.Context, companyID string) (string, error)
}

// ApprovalRepositoryFacade stores approval request/decision records.
type ApprovalRepositoryFacade interface {
	// SaveApproval inserts a new approval record.
	SaveApproval(ctx context.Context, approval domain.Approval) error

	// UpdateApproval persists an approval decision.
	UpdateApproval(ctx context.Context, approval domain.Approval) error

	// FindApprovalByID retrieves one approval.
	FindApprovalByID(ctx context.Context, approvalID string) (*domain.Approval, error)

	// FindApprovalsByTarget returns all approvals bound to a target
	// entity, newest first.
	FindApprovalsByTarget(ctx context.Context, targetType, targetID string) ([]domain.Approval, error)
}
