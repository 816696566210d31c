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
	"github.com/finbooks/finbooks_app/internal/dto"
	"github.com/finbooks/finbooks_app/internal/middleware"
	"github.com/finbooks/finbooks_app/internal/platform/metrics"
	"github.com/finbooks/finbooks_app/internal/utils/accounting"
)

const defaultListLimit = 50

// transactionService is the posting orchestrator. It owns the full
// lifecycle of a transaction document: draft creation and editing,
// posting (detection, approval gating, journal append, balance updates)
// and voiding (reversal entry, balance unwinding).
type transactionService struct {
	txnRepo          portsrepo.TransactionRepositoryFacade
	accountRepo      portsrepo.AccountRepositoryFacade
	balanceRepo      portsrepo.BalanceReader
	companyRepo      portsrepo.CompanyRepositoryFacade
	closedPeriodRepo portsrepo.ClosedPeriodRepositoryFacade
	approvalRepo     portsrepo.ApprovalRepositoryFacade
	thresholdRepo    portsrepo.ThresholdRepositoryFacade
	sequenceRepo     portsrepo.SequenceRepositoryFacade
	detectionSvc     portssvc.DetectionSvcFacade
	events           portssvc.EventSink
	metrics          *metrics.Metrics
	now              func() time.Time
}

// NewTransactionService creates the transaction lifecycle service.
func NewTransactionService(
	txnRepo portsrepo.TransactionRepositoryFacade,
	accountRepo portsrepo.AccountRepositoryFacade,
	balanceRepo portsrepo.BalanceReader,
	companyRepo portsrepo.CompanyRepositoryFacade,
	closedPeriodRepo portsrepo.ClosedPeriodRepositoryFacade,
	approvalRepo portsrepo.ApprovalRepositoryFacade,
	thresholdRepo portsrepo.ThresholdRepositoryFacade,
	sequenceRepo portsrepo.SequenceRepositoryFacade,
	detectionSvc portssvc.DetectionSvcFacade,
	events portssvc.EventSink,
	m *metrics.Metrics,
) portssvc.TransactionSvcFacade {
	return &transactionService{
		txnRepo:          txnRepo,
		accountRepo:      accountRepo,
		balanceRepo:      balanceRepo,
		companyRepo:      companyRepo,
		closedPeriodRepo: closedPeriodRepo,
		approvalRepo:     approvalRepo,
		thresholdRepo:    thresholdRepo,
		sequenceRepo:     sequenceRepo,
		detectionSvc:     detectionSvc,
		events:           events,
		metrics:          m,
		now:              time.Now,
	}
}

var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

// CreateTransaction validates the company and every referenced account,
// assigns the next transaction number and persists a new draft.
func (s *transactionService) CreateTransaction(ctx context.Context, companyID string, req dto.CreateTransactionRequest, creatorUserID string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.ensureCompanyOperable(ctx, companyID); err != nil {
		return nil, err
	}
	if err := s.ensureDateNotClosed(ctx, companyID, req.TransactionDate); err != nil {
		return nil, err
	}
	if err := s.validateLineAccounts(ctx, companyID, lineAccountIDs(req.Lines)); err != nil {
		return nil, err
	}

	now := s.now()
	number, err := s.sequenceRepo.GenerateNextNumber(ctx, companyID, req.TransactionDate)
	if err != nil {
		return nil, fmt.Errorf("failed to generate transaction number: %w", err)
	}

	txn := domain.NewTransaction(uuid.NewString(), companyID, number, req.TransactionDate, req.Description, req.ReferenceNumber, creatorUserID, now)
	for _, line := range req.Lines {
		if err := txn.AddLine(uuid.NewString(), line.AccountID, line.LineType, line.Amount, line.Description); err != nil {
			return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, err)
		}
	}

	if err := s.txnRepo.SaveTransaction(ctx, *txn); err != nil {
		return nil, fmt.Errorf("failed to save transaction: %w", err)
	}

	s.metrics.TransactionsCreated.Inc()
	s.events.Dispatch(ctx, domain.TransactionCreatedEvent{
		TransactionID:     txn.TransactionID,
		CompanyID:         companyID,
		TransactionNumber: number,
		CreatedBy:         creatorUserID,
		At:                now,
	})
	logger.Info("Transaction draft created",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("transaction_number", number),
	)
	return txn, nil
}

// UpdateTransaction replaces the header and lines of a draft. Posted and
// voided transactions reject updates.
func (s *transactionService) UpdateTransaction(ctx context.Context, companyID, transactionID string, req dto.UpdateTransactionRequest, userID string) (*domain.Transaction, error) {
	txn, err := s.getOwnedTransaction(ctx, companyID, transactionID)
	if err != nil {
		return nil, err
	}
	if txn.Status != domain.StatusDraft {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrConflict, domain.ErrTransactionNotDraft)
	}
	if err := s.ensureDateNotClosed(ctx, companyID, req.TransactionDate); err != nil {
		return nil, err
	}
	if err := s.validateLineAccounts(ctx, companyID, lineAccountIDs(req.Lines)); err != nil {
		return nil, err
	}

	now := s.now()
	if err := txn.UpdateDetails(req.TransactionDate, req.Description, req.ReferenceNumber, userID, now); err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrConflict, err)
	}
	if err := txn.ClearLines(); err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrConflict, err)
	}
	for _, line := range req.Lines {
		if err := txn.AddLine(uuid.NewString(), line.AccountID, line.LineType, line.Amount, line.Description); err != nil {
			return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, err)
		}
	}

	if err := s.txnRepo.UpdateDraftTransaction(ctx, *txn); err != nil {
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}
	return txn, nil
}

func (s *transactionService) GetTransactionByID(ctx context.Context, companyID, transactionID string) (*domain.Transaction, error) {
	return s.getOwnedTransaction(ctx, companyID, transactionID)
}

func (s *transactionService) ListTransactions(ctx context.Context, companyID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	var (
		txns      []domain.Transaction
		nextToken *string
		err       error
	)
	if params.AccountID != "" {
		txns, nextToken, err = s.txnRepo.ListTransactionsByAccount(ctx, companyID, params.AccountID, limit, params.NextToken)
	} else {
		txns, nextToken, err = s.txnRepo.ListTransactionsByCompany(ctx, companyID, limit, params.NextToken)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return &dto.ListTransactionsResponse{
		Transactions: dto.ToTransactionResponses(txns),
		NextToken:    nextToken,
	}, nil
}

// PostTransaction takes a draft through the full posting flow: structural
// validation, edge-case detection, the approval gate, the lifecycle
// transition, balance application and the atomic commit of a POSTING
// journal entry. Events are dispatched only after the commit succeeds.
func (s *transactionService) PostTransaction(ctx context.Context, companyID, transactionID, userID string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	started := s.now()

	txn, err := s.getOwnedTransaction(ctx, companyID, transactionID)
	if err != nil {
		return nil, err
	}
	if txn.Status != domain.StatusDraft {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrConflict, domain.ErrTransactionNotDraft)
	}
	if err := txn.ValidateForPosting(); err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrBusinessRule, err)
	}
	if err := s.ensureCompanyOperable(ctx, companyID); err != nil {
		return nil, err
	}
	if err := s.ensureDateNotClosed(ctx, companyID, txn.TransactionDate); err != nil {
		return nil, err
	}

	detection, err := s.detectionSvc.DetectForTransaction(ctx, txn)
	if err != nil {
		return nil, err
	}
	for _, flag := range detection.Flags() {
		s.metrics.FlagsRaised.WithLabelValues(string(flag.Type)).Inc()
	}

	contentHash := txn.ContentHash()
	var approval domain.Approval
	if detection.RequiresApproval() {
		proof, err := s.findApprovalProof(ctx, transactionID, contentHash)
		if err != nil {
			return nil, err
		}
		if proof == nil {
			approvalType := detection.SuggestedApprovalType()
			s.metrics.PostingsBlocked.WithLabelValues(approvalType).Inc()
			logger.Warn("Posting blocked pending approval",
				slog.String("transaction_id", transactionID),
				slog.String("approval_type", approvalType),
				slog.Int("flag_count", len(detection.Flags())),
			)
			return nil, fmt.Errorf("%w: %s approval needed", ErrApprovalRequired, approvalType)
		}
		approval = *proof
	} else {
		approval = domain.NewAutoApproval(uuid.NewString(), companyID, transactionID, contentHash, userID, s.now())
	}

	balances, err := s.loadBalances(ctx, txn.Lines)
	if err != nil {
		return nil, err
	}
	thresholds, err := s.thresholdRepo.GetThresholdsForCompany(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to load thresholds: %w", err)
	}

	now := s.now()
	postedEvent, err := txn.Post(userID, now)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrBusinessRule, err)
	}

	events := []domain.Event{postedEvent}
	changes := make([]domain.BalanceChange, 0, len(txn.Lines))
	for _, line := range txn.Lines {
		balance := balances[line.AccountID]
		delta := accounting.CalculateChange(balance.AccountType.NormalBalance(), line.LineType, line.Amount)
		if balance.WouldBeNegativeAfterChange(delta) && !balance.CanHaveNegativeBalance() && !thresholds.RequireApprovalForNegativeBalance {
			// With the approval route switched off there is no way to
			// sign off on the projection, so the posting is refused
			// outright.
			return nil, fmt.Errorf("%w: account %s", ErrNegativeBalance, line.AccountID)
		}
		change, event := balance.Apply(uuid.NewString(), transactionID, line.LineType, line.Amount, false, now)
		changes = append(changes, change)
		events = append(events, event)
	}

	rec := portsrepo.PostingRecord{
		Transaction: txn,
		EntryID:     uuid.NewString(),
		Bookings:    domain.BookingsFromLines(txn.Lines),
		OccurredAt:  now,
		Approval:    approval,
		Balances:    balancesSlice(balances, txn.Lines),
		Changes:     changes,
	}
	entry, err := s.txnRepo.SavePosting(ctx, rec)
	if err != nil {
		return nil, fmt.Errorf("failed to commit posting: %w", err)
	}

	s.metrics.TransactionsPosted.Inc()
	s.metrics.PostingDuration.Observe(s.now().Sub(started).Seconds())
	s.events.Dispatch(ctx, events...)
	logger.Info("Transaction posted",
		slog.String("transaction_id", transactionID),
		slog.String("journal_entry_id", entry.EntryID),
		slog.String("chain_hash", entry.ChainHash),
		slog.String("approval_type", approval.ApprovalType),
	)
	return txn, nil
}

// VoidTransaction unwinds a posted transaction: the status flips to
// VOIDED, every original balance change is reversed and a REVERSAL entry
// is appended to the journal chain. The original POSTING entry is never
// touched.
func (s *transactionService) VoidTransaction(ctx context.Context, companyID, transactionID, reason, userID string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	txn, err := s.getOwnedTransaction(ctx, companyID, transactionID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	voidedEvent, err := txn.Void(reason, userID, now)
	if err != nil {
		if errors.Is(err, domain.ErrVoidReasonMissing) {
			return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, err)
		}
		return nil, fmt.Errorf("%w: %w", apperrors.ErrConflict, err)
	}

	originals, err := s.balanceRepo.ListChangesByTransaction(ctx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load balance changes: %w", err)
	}
	balances, err := s.loadBalances(ctx, txn.Lines)
	if err != nil {
		return nil, err
	}

	events := []domain.Event{voidedEvent}
	changes := make([]domain.BalanceChange, 0, len(originals))
	for _, original := range originals {
		if original.IsReversal {
			continue
		}
		balance, ok := balances[original.AccountID]
		if !ok {
			return nil, fmt.Errorf("%w: balance for account %s", apperrors.ErrInternal, original.AccountID)
		}
		change, event := balance.Reverse(uuid.NewString(), original, now)
		changes = append(changes, change)
		events = append(events, event)
	}

	rec := portsrepo.VoidRecord{
		Transaction: txn,
		EntryID:     uuid.NewString(),
		Bookings:    domain.ReversalBookings(domain.BookingsFromLines(txn.Lines)),
		OccurredAt:  now,
		Balances:    balancesSlice(balances, txn.Lines),
		Changes:     changes,
	}
	entry, err := s.txnRepo.SaveVoid(ctx, rec)
	if err != nil {
		return nil, fmt.Errorf("failed to commit void: %w", err)
	}

	s.metrics.TransactionsVoided.Inc()
	s.events.Dispatch(ctx, events...)
	logger.Info("Transaction voided",
		slog.String("transaction_id", transactionID),
		slog.String("journal_entry_id", entry.EntryID),
		slog.String("reason", reason),
	)
	return txn, nil
}

// DeleteTransaction hard-removes a draft. Posted and voided transactions
// are permanent records and cannot be deleted.
func (s *transactionService) DeleteTransaction(ctx context.Context, companyID, transactionID string) error {
	txn, err := s.getOwnedTransaction(ctx, companyID, transactionID)
	if err != nil {
		return err
	}
	if txn.Status != domain.StatusDraft {
		return fmt.Errorf("%w: %w", apperrors.ErrConflict, domain.ErrTransactionNotDraft)
	}
	if err := s.txnRepo.DeleteDraftTransaction(ctx, transactionID); err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	return nil
}

// getOwnedTransaction loads a transaction and hides it behind not-found
// when it belongs to another company.
func (s *transactionService) getOwnedTransaction(ctx context.Context, companyID, transactionID string) (*domain.Transaction, error) {
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

func (s *transactionService) ensureCompanyOperable(ctx context.Context, companyID string) error {
	company, err := s.companyRepo.FindCompanyByID(ctx, companyID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: %s", ErrCompanyNotFound, companyID)
		}
		return fmt.Errorf("failed to find company: %w", err)
	}
	if !company.CanOperate() {
		return fmt.Errorf("%w: %s", ErrCompanyCannotOperate, companyID)
	}
	return nil
}

func (s *transactionService) ensureDateNotClosed(ctx context.Context, companyID string, date time.Time) error {
	closed, err := s.closedPeriodRepo.IsDateInClosedPeriod(ctx, companyID, date)
	if err != nil {
		return fmt.Errorf("failed to check closed periods: %w", err)
	}
	if closed {
		return fmt.Errorf("%w: %s", ErrClosedPeriod, date.Format("2006-01-02"))
	}
	return nil
}

// validateLineAccounts checks that every referenced account exists,
// belongs to the company and is active.
func (s *transactionService) validateLineAccounts(ctx context.Context, companyID string, accountIDs []string) error {
	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, accountIDs)
	if err != nil {
		return fmt.Errorf("failed to find accounts: %w", err)
	}
	for _, id := range accountIDs {
		account, ok := accounts[id]
		if !ok {
			return fmt.Errorf("%w: %s", ErrAccountNotFound, id)
		}
		if account.CompanyID != companyID {
			return fmt.Errorf("%w: %s", ErrAccountForeign, id)
		}
		if !account.IsActive {
			return fmt.Errorf("%w: %s", ErrAccountInactive, id)
		}
	}
	return nil
}

// findApprovalProof returns the newest approval that proves the given
// content hash, or nil when no valid proof exists. Approvals bound to a
// stale hash do not count.
func (s *transactionService) findApprovalProof(ctx context.Context, transactionID, contentHash string) (*domain.Approval, error) {
	approvals, err := s.approvalRepo.FindApprovalsByTarget(ctx, "transaction", transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to find approvals: %w", err)
	}
	for i := range approvals {
		if approvals[i].Proves(contentHash) {
			return &approvals[i], nil
		}
	}
	return nil, nil
}

// loadBalances fetches mutable ledger state for every account touched by
// the lines.
func (s *transactionService) loadBalances(ctx context.Context, lines []domain.TransactionLine) (map[string]*domain.AccountBalance, error) {
	ids := make([]string, 0, len(lines))
	for _, line := range lines {
		ids = append(ids, line.AccountID)
	}
	ids = uniqueStrings(ids)

	found, err := s.balanceRepo.FindBalancesByAccountIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load balances: %w", err)
	}
	balances := make(map[string]*domain.AccountBalance, len(found))
	for _, id := range ids {
		balance, ok := found[id]
		if !ok {
			return nil, fmt.Errorf("%w: missing balance state for account %s", apperrors.ErrInternal, id)
		}
		balances[id] = &balance
	}
	return balances, nil
}

// balancesSlice flattens the touched balances in line order, deduplicated.
func balancesSlice(balances map[string]*domain.AccountBalance, lines []domain.TransactionLine) []*domain.AccountBalance {
	seen := make(map[string]struct{}, len(balances))
	out := make([]*domain.AccountBalance, 0, len(balances))
	for _, line := range lines {
		if _, ok := seen[line.AccountID]; ok {
			continue
		}
		seen[line.AccountID] = struct{}{}
		if b, ok := balances[line.AccountID]; ok {
			out = append(out, b)
		}
	}
	return out
}

func lineAccountIDs(lines []dto.CreateTransactionLineRequest) []string {
	ids := make([]string, 0, len(lines))
	for _, line := range lines {
		ids = append(ids, line.AccountID)
	}
	return uniqueStrings(ids)
}
