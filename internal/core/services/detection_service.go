package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/finbooks/finbooks_app/internal/core/domain"
	"github.com/finbooks/finbooks_app/internal/core/edgecase"
	portsrepo "github.com/finbooks/finbooks_app/internal/core/ports/repositories"
	portssvc "github.com/finbooks/finbooks_app/internal/core/ports/services"
	"github.com/finbooks/finbooks_app/internal/middleware"
)

// detectionService assembles detection input from current ledger state
// and runs the edge-case engine. The reads here are advisory snapshots:
// they are not race-free against concurrent posts to the same accounts.
type detectionService struct {
	engine        *edgecase.Engine
	accountRepo   portsrepo.AccountReader
	balanceRepo   portsrepo.BalanceReader
	thresholdRepo portsrepo.ThresholdRepositoryFacade
	txnRepo       portsrepo.TransactionReader
	now           func() time.Time
}

// NewDetectionService creates the detection facade over the standard
// engine rule set.
func NewDetectionService(accountRepo portsrepo.AccountReader, balanceRepo portsrepo.BalanceReader, thresholdRepo portsrepo.ThresholdRepositoryFacade, txnRepo portsrepo.TransactionReader) portssvc.DetectionSvcFacade {
	return &detectionService{
		engine:        edgecase.NewEngine(),
		accountRepo:   accountRepo,
		balanceRepo:   balanceRepo,
		thresholdRepo: thresholdRepo,
		txnRepo:       txnRepo,
		now:           time.Now,
	}
}

var _ portssvc.DetectionSvcFacade = (*detectionService)(nil)

// DetectForTransaction joins the transaction's lines with account and
// balance state, resolves duplicate candidates and runs every detector.
func (s *detectionService) DetectForTransaction(ctx context.Context, txn *domain.Transaction) (edgecase.Result, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	thresholds, err := s.thresholdRepo.GetThresholdsForCompany(ctx, txn.CompanyID)
	if err != nil {
		return edgecase.Result{}, fmt.Errorf("failed to load detection thresholds: %w", err)
	}

	accountIDs := make([]string, 0, len(txn.Lines))
	for _, line := range txn.Lines {
		accountIDs = append(accountIDs, line.AccountID)
	}
	accountIDs = uniqueStrings(accountIDs)

	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, accountIDs)
	if err != nil {
		return edgecase.Result{}, fmt.Errorf("failed to load accounts for detection: %w", err)
	}
	balances, err := s.balanceRepo.FindBalancesByAccountIDs(ctx, accountIDs)
	if err != nil {
		return edgecase.Result{}, fmt.Errorf("failed to load balances for detection: %w", err)
	}

	candidates, err := s.txnRepo.FindDuplicateCandidates(ctx, txn.CompanyID, txn.TotalDebits(), txn.Description, txn.TransactionDate, txn.TransactionID)
	if err != nil {
		return edgecase.Result{}, fmt.Errorf("failed to search duplicate candidates: %w", err)
	}

	input := edgecase.Input{
		CompanyID:       txn.CompanyID,
		TransactionID:   txn.TransactionID,
		TransactionDate: txn.TransactionDate,
		Description:     txn.Description,
		Now:             s.now(),
	}
	for _, line := range txn.Lines {
		account, ok := accounts[line.AccountID]
		if !ok {
			return edgecase.Result{}, fmt.Errorf("%w: account %s referenced by transaction %s", ErrAccountNotFound, line.AccountID, txn.TransactionID)
		}
		lineCtx := edgecase.LineContext{
			AccountID:   line.AccountID,
			AccountName: account.Name,
			AccountType: account.AccountType,
			LineType:    line.LineType,
			Amount:      line.Amount,
		}
		if balance, ok := balances[line.AccountID]; ok {
			lineCtx.CurrentBalance = balance.Metrics.CurrentBalance
			lineCtx.LastActivityAt = balance.Metrics.LastActivityAt
		}
		input.Lines = append(input.Lines, lineCtx)
	}
	for _, candidate := range candidates {
		input.DuplicateCandidates = append(input.DuplicateCandidates, edgecase.PriorTransaction{
			TransactionID:     candidate.TransactionID,
			TransactionNumber: candidate.TransactionNumber,
		})
	}

	result := s.engine.Detect(input, thresholds)
	logger.Debug("Edge-case detection completed",
		slog.String("transaction_id", txn.TransactionID),
		slog.Int("flag_count", len(result.Flags())),
		slog.Bool("requires_approval", result.RequiresApproval()),
	)
	return result, nil
}
