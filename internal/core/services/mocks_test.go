package services_test

import (
	"context"
	"time"

	"github.com/finbooks/finbooks_app/internal/core/domain"
	"github.com/finbooks/finbooks_app/internal/core/edgecase"
	portsrepo "github.com/finbooks/finbooks_app/internal/core/ports/repositories"
	portssvc "github.com/finbooks/finbooks_app/internal/core/ports/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock TransactionRepository ---
type MockTransactionRepository struct {
	mock.Mock
}

var _ portsrepo.TransactionRepositoryFacade = (*MockTransactionRepository)(nil)

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListTransactionsByCompany(ctx context.Context, companyID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	args := m.Called(ctx, companyID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedToken = &tokenVal
	}
	return args.Get(0).([]domain.Transaction), returnedToken, args.Error(2)
}

func (m *MockTransactionRepository) ListTransactionsByAccount(ctx context.Context, companyID, accountID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	args := m.Called(ctx, companyID, accountID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedToken = &tokenVal
	}
	return args.Get(0).([]domain.Transaction), returnedToken, args.Error(2)
}

func (m *MockTransactionRepository) FindDuplicateCandidates(ctx context.Context, companyID string, totalDebits decimal.Decimal, description string, date time.Time, excludeID string) ([]domain.Transaction, error) {
	args := m.Called(ctx, companyID, totalDebits, description, date, excludeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockTransactionRepository) UpdateDraftTransaction(ctx context.Context, txn domain.Transaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockTransactionRepository) DeleteDraftTransaction(ctx context.Context, transactionID string) error {
	args := m.Called(ctx, transactionID)
	return args.Error(0)
}

func (m *MockTransactionRepository) SavePosting(ctx context.Context, rec portsrepo.PostingRecord) (domain.JournalEntry, error) {
	args := m.Called(ctx, rec)
	return args.Get(0).(domain.JournalEntry), args.Error(1)
}

func (m *MockTransactionRepository) SaveVoid(ctx context.Context, rec portsrepo.VoidRecord) (domain.JournalEntry, error) {
	args := m.Called(ctx, rec)
	return args.Get(0).(domain.JournalEntry), args.Error(1)
}

// --- Mock AccountRepository ---
type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccountsByCompany(ctx context.Context, companyID string, limit, offset int) ([]domain.Account, error) {
	args := m.Called(ctx, companyID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account, balance domain.AccountBalance) error {
	args := m.Called(ctx, account, balance)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) DeactivateAccount(ctx context.Context, accountID, updatedBy string) error {
	args := m.Called(ctx, accountID, updatedBy)
	return args.Error(0)
}

// --- Mock BalanceReader ---
type MockBalanceReader struct {
	mock.Mock
}

var _ portsrepo.BalanceReader = (*MockBalanceReader)(nil)

func (m *MockBalanceReader) FindBalanceByAccountID(ctx context.Context, accountID string) (*domain.AccountBalance, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountBalance), args.Error(1)
}

func (m *MockBalanceReader) FindBalancesByAccountIDs(ctx context.Context, accountIDs []string) (map[string]domain.AccountBalance, error) {
	args := m.Called(ctx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.AccountBalance), args.Error(1)
}

func (m *MockBalanceReader) ListChangesByTransaction(ctx context.Context, transactionID string) ([]domain.BalanceChange, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BalanceChange), args.Error(1)
}

// --- Mock CompanyRepository ---
type MockCompanyRepository struct {
	mock.Mock
}

var _ portsrepo.CompanyRepositoryFacade = (*MockCompanyRepository)(nil)

func (m *MockCompanyRepository) FindCompanyByID(ctx context.Context, companyID string) (*domain.Company, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Company), args.Error(1)
}

func (m *MockCompanyRepository) SaveCompany(ctx context.Context, company domain.Company) error {
	args := m.Called(ctx, company)
	return args.Error(0)
}

func (m *MockCompanyRepository) ListCompanies(ctx context.Context, limit, offset int) ([]domain.Company, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Company), args.Error(1)
}

// --- Mock ClosedPeriodRepository ---
type MockClosedPeriodRepository struct {
	mock.Mock
}

var _ portsrepo.ClosedPeriodRepositoryFacade = (*MockClosedPeriodRepository)(nil)

func (m *MockClosedPeriodRepository) IsDateInClosedPeriod(ctx context.Context, companyID string, date time.Time) (bool, error) {
	args := m.Called(ctx, companyID, date)
	return args.Bool(0), args.Error(1)
}

func (m *MockClosedPeriodRepository) SaveClosedPeriod(ctx context.Context, companyID string, from, to time.Time, closedBy string) error {
	args := m.Called(ctx, companyID, from, to, closedBy)
	return args.Error(0)
}

// --- Mock ThresholdRepository ---
type MockThresholdRepository struct {
	mock.Mock
}

var _ portsrepo.ThresholdRepositoryFacade = (*MockThresholdRepository)(nil)

func (m *MockThresholdRepository) GetThresholdsForCompany(ctx context.Context, companyID string) (edgecase.Thresholds, error) {
	args := m.Called(ctx, companyID)
	return args.Get(0).(edgecase.Thresholds), args.Error(1)
}

func (m *MockThresholdRepository) SaveThresholds(ctx context.Context, th edgecase.Thresholds) error {
	args := m.Called(ctx, th)
	return args.Error(0)
}

// --- Mock SequenceRepository ---
type MockSequenceRepository struct {
	mock.Mock
}

var _ portsrepo.SequenceRepositoryFacade = (*MockSequenceRepository)(nil)

func (m *MockSequenceRepository) GenerateNextNumber(ctx context.Context, companyID string, date time.Time) (string, error) {
	args := m.Called(ctx, companyID, date)
	return args.String(0), args.Error(1)
}

// --- Mock JournalEntryReader ---
type MockJournalEntryReader struct {
	mock.Mock
}

var _ portsrepo.JournalEntryReader = (*MockJournalEntryReader)(nil)

func (m *MockJournalEntryReader) ListEntriesByCompany(ctx context.Context, companyID string, limit, offset int) ([]domain.JournalEntry, error) {
	args := m.Called(ctx, companyID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalEntry), args.Error(1)
}

func (m *MockJournalEntryReader) FindEntriesByTransaction(ctx context.Context, transactionID string) ([]domain.JournalEntry, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalEntry), args.Error(1)
}

func (m *MockJournalEntryReader) GetLatestChainHash(ctx context.Context, companyID string) (string, error) {
	args := m.Called(ctx, companyID)
	return args.String(0), args.Error(1)
}

// --- Mock ApprovalRepository ---
type MockApprovalRepository struct {
	mock.Mock
}

var _ portsrepo.ApprovalRepositoryFacade = (*MockApprovalRepository)(nil)

func (m *MockApprovalRepository) SaveApproval(ctx context.Context, approval domain.Approval) error {
	args := m.Called(ctx, approval)
	return args.Error(0)
}

func (m *MockApprovalRepository) UpdateApproval(ctx context.Context, approval domain.Approval) error {
	args := m.Called(ctx, approval)
	return args.Error(0)
}

func (m *MockApprovalRepository) FindApprovalByID(ctx context.Context, approvalID string) (*domain.Approval, error) {
	args := m.Called(ctx, approvalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Approval), args.Error(1)
}

func (m *MockApprovalRepository) FindApprovalsByTarget(ctx context.Context, targetType, targetID string) ([]domain.Approval, error) {
	args := m.Called(ctx, targetType, targetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Approval), args.Error(1)
}

// --- Mock DetectionService ---
type MockDetectionService struct {
	mock.Mock
}

var _ portssvc.DetectionSvcFacade = (*MockDetectionService)(nil)

func (m *MockDetectionService) DetectForTransaction(ctx context.Context, txn *domain.Transaction) (edgecase.Result, error) {
	args := m.Called(ctx, txn)
	return args.Get(0).(edgecase.Result), args.Error(1)
}

// --- Mock EventSink ---
type MockEventSink struct {
	mock.Mock
}

var _ portssvc.EventSink = (*MockEventSink)(nil)

func (m *MockEventSink) Dispatch(ctx context.Context, events ...domain.Event) {
	m.Called(ctx, events)
}
