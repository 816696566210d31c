package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/finbooks/finbooks_app/internal/core/domain"
	portsrepo "github.com/finbooks/finbooks_app/internal/core/ports/repositories"
	portssvc "github.com/finbooks/finbooks_app/internal/core/ports/services"
	"github.com/finbooks/finbooks_app/internal/dto"
	"github.com/finbooks/finbooks_app/internal/middleware"
	"github.com/finbooks/finbooks_app/internal/platform/metrics"
)

// verifyBatchSize is how many entries a chain walk loads per page.
const verifyBatchSize = 500

type journalService struct {
	journalRepo portsrepo.JournalEntryReader
	txnRepo     portsrepo.TransactionReader
	metrics     *metrics.Metrics
}

// NewJournalService creates the journal read/verify service.
func NewJournalService(journalRepo portsrepo.JournalEntryReader, txnRepo portsrepo.TransactionReader, m *metrics.Metrics) portssvc.JournalSvcFacade {
	return &journalService{
		journalRepo: journalRepo,
		txnRepo:     txnRepo,
		metrics:     m,
	}
}

var _ portssvc.JournalSvcFacade = (*journalService)(nil)

func (s *journalService) ListEntries(ctx context.Context, companyID string, limit, offset int) ([]domain.JournalEntry, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	entries, err := s.journalRepo.ListEntriesByCompany(ctx, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list journal entries: %w", err)
	}
	return entries, nil
}

func (s *journalService) EntriesForTransaction(ctx context.Context, companyID, transactionID string) ([]domain.JournalEntry, error) {
	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to find transaction: %w", err)
	}
	if txn.CompanyID != companyID {
		return nil, fmt.Errorf("%w: transaction %s", ErrTransactionNotFound, transactionID)
	}
	entries, err := s.journalRepo.FindEntriesByTransaction(ctx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load journal entries: %w", err)
	}
	return entries, nil
}

// VerifyChain walks the company's journal from genesis, recomputing every
// content hash and chain link. A break is reported, never repaired; an
// intact walk ends with the stored chain tip matching the last entry.
func (s *journalService) VerifyChain(ctx context.Context, companyID string) (*dto.ChainVerificationResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	result := &dto.ChainVerificationResponse{
		CompanyID: companyID,
		Intact:    true,
	}
	expectedPrevious := domain.GenesisHash

	offset := 0
	for {
		entries, err := s.journalRepo.ListEntriesByCompany(ctx, companyID, verifyBatchSize, offset)
		if err != nil {
			return nil, fmt.Errorf("failed to walk journal chain: %w", err)
		}
		for i := range entries {
			entry := &entries[i]
			result.EntriesChecked++
			if !entry.VerifyContent() {
				return s.broken(ctx, result, entry.EntryID, "content hash mismatch"), nil
			}
			if !entry.VerifyChain(expectedPrevious) {
				return s.broken(ctx, result, entry.EntryID, "chain link mismatch"), nil
			}
			expectedPrevious = entry.ChainHash
		}
		if len(entries) < verifyBatchSize {
			break
		}
		offset += len(entries)
	}

	tip, err := s.journalRepo.GetLatestChainHash(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to read chain tip: %w", err)
	}
	if tip != expectedPrevious {
		return s.broken(ctx, result, "", "stored chain tip does not match last entry"), nil
	}

	logger.Info("Journal chain verified",
		slog.String("company_id", companyID),
		slog.Int("entries_checked", result.EntriesChecked),
	)
	return result, nil
}

func (s *journalService) broken(ctx context.Context, result *dto.ChainVerificationResponse, entryID, detail string) *dto.ChainVerificationResponse {
	result.Intact = false
	result.BrokenAtEntryID = entryID
	result.Detail = detail
	s.metrics.ChainVerifyFailures.Inc()
	middleware.GetLoggerFromCtx(ctx).Error("Journal chain verification failed",
		slog.String("company_id", result.CompanyID),
		slog.String("entry_id", entryID),
		slog.String("detail", detail),
	)
	return result
}
