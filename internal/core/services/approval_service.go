package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/finbooks/finbooks_app/internal/apperrors"
	"github.com/finbooks/finbooks_app/internal/core/domain"
	portsrepo "github.com/finbooks/finbooks_app/internal/core/ports/repositories"
	portssvc "github.com/finbooks/finbooks_app/internal/core/ports/services"
	"github.com/finbooks/finbooks_app/internal/middleware"
)

type approvalService struct {
	approvalRepo portsrepo.ApprovalRepositoryFacade
	txnRepo      portsrepo.TransactionReader
	detectionSvc portssvc.DetectionSvcFacade
	now          func() time.Time
}

// NewApprovalService creates the approval workflow service.
func NewApprovalService(approvalRepo portsrepo.ApprovalRepositoryFacade, txnRepo portsrepo.TransactionReader, detectionSvc portssvc.DetectionSvcFacade) portssvc.ApprovalSvcFacade {
	return &approvalService{
		approvalRepo: approvalRepo,
		txnRepo:      txnRepo,
		detectionSvc: detectionSvc,
		now:          time.Now,
	}
}

var _ portssvc.ApprovalSvcFacade = (*approvalService)(nil)

func (s *approvalService) ListApprovalsForTransaction(ctx context.Context, companyID, transactionID string) ([]domain.Approval, error) {
	if _, err := s.ownedTransaction(ctx, companyID, transactionID); err != nil {
		return nil, err
	}
	approvals, err := s.approvalRepo.FindApprovalsByTarget(ctx, "transaction", transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list approvals: %w", err)
	}
	return approvals, nil
}

// RequestApproval runs detection against the current draft content and,
// when any flag requires sign-off, records a pending approval bound to
// the draft's content hash. Editing the draft afterwards invalidates the
// binding.
func (s *approvalService) RequestApproval(ctx context.Context, companyID, transactionID, userID string) (*domain.Approval, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	txn, err := s.ownedTransaction(ctx, companyID, transactionID)
	if err != nil {
		return nil, err
	}
	if txn.Status != domain.StatusDraft {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrConflict, domain.ErrTransactionNotDraft)
	}
	if err := txn.ValidateForPosting(); err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrBusinessRule, err)
	}

	detection, err := s.detectionSvc.DetectForTransaction(ctx, txn)
	if err != nil {
		return nil, err
	}
	if !detection.RequiresApproval() {
		return nil, fmt.Errorf("%w: transaction %s", ErrNoFlagsToApprove, transactionID)
	}

	contentHash := txn.ContentHash()
	existing, err := s.approvalRepo.FindApprovalsByTarget(ctx, "transaction", transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list approvals: %w", err)
	}
	for i := range existing {
		if existing[i].ContentHash == contentHash && existing[i].Status == domain.ApprovalPending {
			return &existing[i], nil
		}
	}

	approval := domain.NewApprovalRequest(uuid.NewString(), companyID, "transaction", transactionID, contentHash, detection.SuggestedApprovalType(), userID, s.now())
	if err := s.approvalRepo.SaveApproval(ctx, approval); err != nil {
		return nil, fmt.Errorf("failed to save approval: %w", err)
	}

	logger.Info("Approval requested",
		slog.String("approval_id", approval.ApprovalID),
		slog.String("transaction_id", transactionID),
		slog.String("approval_type", approval.ApprovalType),
	)
	return &approval, nil
}

// Decide records an approve or reject decision on a pending approval.
func (s *approvalService) Decide(ctx context.Context, companyID, approvalID string, approve bool, notes, userID string) (*domain.Approval, error) {
	approval, err := s.approvalRepo.FindApprovalByID(ctx, approvalID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrApprovalNotFound, approvalID)
		}
		return nil, fmt.Errorf("failed to find approval: %w", err)
	}
	if approval.CompanyID != companyID {
		return nil, fmt.Errorf("%w: %s", ErrApprovalNotFound, approvalID)
	}
	if approval.Status != domain.ApprovalPending {
		return nil, fmt.Errorf("%w: %s", ErrApprovalNotPending, approvalID)
	}

	now := s.now()
	if approve {
		approval.Approve(userID, notes, now)
	} else {
		approval.Reject(userID, notes, now)
	}
	if err := s.approvalRepo.UpdateApproval(ctx, *approval); err != nil {
		return nil, fmt.Errorf("failed to update approval: %w", err)
	}
	return approval, nil
}

func (s *approvalService) ownedTransaction(ctx context.Context, companyID, transactionID string) (*domain.Transaction, error) {
	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: transaction %s", ErrTransactionNotFound, transactionID)
		}
		return nil, fmt.Errorf("failed to find transaction: %w", err)
	}
	if txn.CompanyID != companyID {
		return nil, fmt.Errorf("%w: transaction %s", ErrTransactionNotFound, transactionID)
	}
	return txn, nil
}
