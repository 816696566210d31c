package repositories

import (
	"context"
	"time"

	"github.com/finbooks/finbooks_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PostingRecord carries everything a posting commit persists as one unit:
// the status change, the journal append, the approval proof and every
// touched balance. The repository reads the company's chain tip under
// lock and finalizes the journal entry hashes inside the same storage
// transaction, so chain order stays globally consistent.
type PostingRecord struct {
	Transaction *domain.Transaction
	EntryID     string
	Bookings    []domain.Booking
	OccurredAt  time.Time
	Approval    domain.Approval
	Balances    []*domain.AccountBalance
	Changes     []domain.BalanceChange
}

// VoidRecord is the posting's mirror image for voids: a REVERSAL journal
// entry plus the reversed balance effects.
type VoidRecord struct {
	Transaction *domain.Transaction
	EntryID     string
	Bookings    []domain.Booking
	OccurredAt  time.Time
	Balances    []*domain.AccountBalance
	Changes     []domain.BalanceChange
}

// TransactionReader defines read operations for transaction documents.
type TransactionReader interface {
	// FindTransactionByID retrieves a transaction with its lines.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactionsByCompany retrieves a page of transactions using
	// token-based pagination.
	ListTransactionsByCompany(ctx context.Context, companyID string, limit int, nextToken *string) ([]domain.Transaction, *string, error)

	// ListTransactionsByAccount retrieves a page of transactions that
	// touch the given account.
	ListTransactionsByAccount(ctx context.Context, companyID, accountID string, limit int, nextToken *string) ([]domain.Transaction, *string, error)

	// FindDuplicateCandidates returns posted or draft transactions of the
	// same company matching total debit amount, description and date,
	// excluding the given transaction.
	FindDuplicateCandidates(ctx context.Context, companyID string, totalDebits decimal.Decimal, description string, date time.Time, excludeID string) ([]domain.Transaction, error)
}

// TransactionWriter defines write operations for transaction documents.
type TransactionWriter interface {
	// SaveTransaction inserts a new draft with its lines.
	SaveTransaction(ctx context.Context, txn domain.Transaction) error

	// UpdateDraftTransaction replaces a draft's header and lines.
	UpdateDraftTransaction(ctx context.Context, txn domain.Transaction) error

	// DeleteDraftTransaction hard-removes a draft and its lines.
	DeleteDraftTransaction(ctx context.Context, transactionID string) error

	// SavePosting atomically persists a posting: transaction status,
	// journal entry (chained under lock), approval proof, balances and
	// balance changes. It returns the finalized journal entry.
	SavePosting(ctx context.Context, rec PostingRecord) (domain.JournalEntry, error)

	// SaveVoid atomically persists a void: transaction status, REVERSAL
	// journal entry and reversed balances.
	SaveVoid(ctx context.Context, rec VoidRecord) (domain.JournalEntry, error)
}

// TransactionRepositoryFacade combines transaction reads and writes.
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
