package services

import (
	"context"

	"github.com/finbooks/finbooks_app/internal/core/domain"
	"github.com/finbooks/finbooks_app/internal/core/edgecase"
	"github.com/finbooks/finbooks_app/internal/dto"
)

// TransactionSvcFacade is the posting orchestrator: the full lifecycle of
// a transaction document from draft to posted to voided.
type TransactionSvcFacade interface {
	CreateTransaction(ctx context.Context, companyID string, req dto.CreateTransactionRequest, creatorUserID string) (*domain.Transaction, error)
	UpdateTransaction(ctx context.Context, companyID, transactionID string, req dto.UpdateTransactionRequest, userID string) (*domain.Transaction, error)
	GetTransactionByID(ctx context.Context, companyID, transactionID string) (*domain.Transaction, error)
	ListTransactions(ctx context.Context, companyID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error)
	PostTransaction(ctx context.Context, companyID, transactionID, userID string) (*domain.Transaction, error)
	VoidTransaction(ctx context.Context, companyID, transactionID, reason, userID string) (*domain.Transaction, error)
	DeleteTransaction(ctx context.Context, companyID, transactionID string) error
}

// DetectionSvcFacade assembles detection input from current ledger state
// and runs the edge-case engine. Results are advisory snapshots.
type DetectionSvcFacade interface {
	DetectForTransaction(ctx context.Context, txn *domain.Transaction) (edgecase.Result, error)
}

// AccountSvcFacade manages the chart of accounts.
type AccountSvcFacade interface {
	CreateAccount(ctx context.Context, companyID string, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error)
	GetAccountByID(ctx context.Context, companyID, accountID string) (*domain.Account, error)
	GetAccountsByIDs(ctx context.Context, companyID string, accountIDs []string) (map[string]domain.Account, error)
	ListAccounts(ctx context.Context, companyID string, limit, offset int) ([]domain.Account, error)
	DeactivateAccount(ctx context.Context, companyID, accountID, userID string) error
}

// CompanySvcFacade manages companies, closed periods and thresholds.
type CompanySvcFacade interface {
	CreateCompany(ctx context.Context, req dto.CreateCompanyRequest, creatorUserID string) (*domain.Company, error)
	GetCompanyByID(ctx context.Context, companyID string) (*domain.Company, error)
	ClosePeriod(ctx context.Context, companyID string, req dto.ClosePeriodRequest, userID string) error
	GetThresholds(ctx context.Context, companyID string) (edgecase.Thresholds, error)
	UpdateThresholds(ctx context.Context, companyID string, req dto.UpdateThresholdsRequest, userID string) (edgecase.Thresholds, error)
}

// JournalSvcFacade reads and verifies the immutable journal.
type JournalSvcFacade interface {
	ListEntries(ctx context.Context, companyID string, limit, offset int) ([]domain.JournalEntry, error)
	EntriesForTransaction(ctx context.Context, companyID, transactionID string) ([]domain.JournalEntry, error)
	VerifyChain(ctx context.Context, companyID string) (*dto.ChainVerificationResponse, error)
}

// ApprovalSvcFacade records approval decisions on flagged transactions.
type ApprovalSvcFacade interface {
	ListApprovalsForTransaction(ctx context.Context, companyID, transactionID string) ([]domain.Approval, error)
	RequestApproval(ctx context.Context, companyID, transactionID, userID string) (*domain.Approval, error)
	Decide(ctx context.Context, companyID, approvalID string, approve bool, notes, userID string) (*domain.Approval, error)
}

// EventSink receives domain events after the surrounding storage
// transaction has committed.
type EventSink interface {
	Dispatch(ctx context.Context, events ...domain.Event)
}

// ServiceContainer bundles the service facades handed to the HTTP layer.
type ServiceContainer struct {
	Transaction TransactionSvcFacade
	Detection   DetectionSvcFacade
	Account     AccountSvcFacade
	Company     CompanySvcFacade
	Journal     JournalSvcFacade
	Approval    ApprovalSvcFacade
}
