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
)

type accountService struct {
	accountRepo portsrepo.AccountRepositoryFacade
	companyRepo portsrepo.CompanyRepositoryFacade
	now         func() time.Time
}

// NewAccountService creates the chart-of-accounts service.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade, companyRepo portsrepo.CompanyRepositoryFacade) portssvc.AccountSvcFacade {
	return &accountService{
		accountRepo: accountRepo,
		companyRepo: companyRepo,
		now:         time.Now,
	}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount creates an account and its ledger balance state in one
// write. The opening balance seeds the current balance.
func (s *accountService) CreateAccount(ctx context.Context, companyID string, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	company, err := s.companyRepo.FindCompanyByID(ctx, companyID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrCompanyNotFound, companyID)
		}
		return nil, fmt.Errorf("failed to find company: %w", err)
	}
	if !company.CanOperate() {
		return nil, fmt.Errorf("%w: %s", ErrCompanyCannotOperate, companyID)
	}
	if !req.AccountType.IsValid() {
		return nil, fmt.Errorf("%w: unknown account type '%s'", apperrors.ErrValidation, req.AccountType)
	}

	now := s.now()
	account := domain.Account{
		AccountID:    uuid.NewString(),
		CompanyID:    companyID,
		Name:         req.Name,
		AccountType:  req.AccountType,
		CurrencyCode: req.CurrencyCode,
		Description:  req.Description,
		IsActive:     true,
		Balance:      req.OpeningBalance,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	balance := domain.NewAccountBalance(account.AccountID, companyID, req.AccountType, req.CurrencyCode, req.OpeningBalance, creatorUserID, now)

	if err := s.accountRepo.SaveAccount(ctx, account, *balance); err != nil {
		return nil, fmt.Errorf("failed to save account: %w", err)
	}

	logger.Info("Account created",
		slog.String("account_id", account.AccountID),
		slog.String("account_type", string(account.AccountType)),
	)
	return &account, nil
}

func (s *accountService) GetAccountByID(ctx context.Context, companyID, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrAccountNotFound, accountID)
		}
		return nil, fmt.Errorf("failed to find account: %w", err)
	}
	if account.CompanyID != companyID {
		return nil, fmt.Errorf("%w: %s", ErrAccountNotFound, accountID)
	}
	return account, nil
}

// GetAccountsByIDs returns only the accounts that exist and belong to the
// company; other IDs are absent from the map.
func (s *accountService) GetAccountsByIDs(ctx context.Context, companyID string, accountIDs []string) (map[string]domain.Account, error) {
	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, uniqueStrings(accountIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to find accounts: %w", err)
	}
	owned := make(map[string]domain.Account, len(accounts))
	for id, account := range accounts {
		if account.CompanyID == companyID {
			owned[id] = account
		}
	}
	return owned, nil
}

func (s *accountService) ListAccounts(ctx context.Context, companyID string, limit, offset int) ([]domain.Account, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	accounts, err := s.accountRepo.ListAccountsByCompany(ctx, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

// DeactivateAccount marks an account inactive. History stays intact; the
// account simply rejects new lines.
func (s *accountService) DeactivateAccount(ctx context.Context, companyID, accountID, userID string) error {
	if _, err := s.GetAccountByID(ctx, companyID, accountID); err != nil {
		return err
	}
	if err := s.accountRepo.DeactivateAccount(ctx, accountID, userID); err != nil {
		return fmt.Errorf("failed to deactivate account: %w", err)
	}
	return nil
}
