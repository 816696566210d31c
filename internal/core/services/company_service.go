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
	"github.com/finbooks/finbooks_app/internal/core/edgecase"
	portsrepo "github.com/finbooks/finbooks_app/internal/core/ports/repositories"
	portssvc "github.com/finbooks/finbooks_app/internal/core/ports/services"
	"github.com/finbooks/finbooks_app/internal/dto"
	"github.com/finbooks/finbooks_app/internal/middleware"
)

type companyService struct {
	companyRepo      portsrepo.CompanyRepositoryFacade
	closedPeriodRepo portsrepo.ClosedPeriodRepositoryFacade
	thresholdRepo    portsrepo.ThresholdRepositoryFacade
	now              func() time.Time
}

// NewCompanyService creates the company/tenant service.
func NewCompanyService(companyRepo portsrepo.CompanyRepositoryFacade, closedPeriodRepo portsrepo.ClosedPeriodRepositoryFacade, thresholdRepo portsrepo.ThresholdRepositoryFacade) portssvc.CompanySvcFacade {
	return &companyService{
		companyRepo:      companyRepo,
		closedPeriodRepo: closedPeriodRepo,
		thresholdRepo:    thresholdRepo,
		now:              time.Now,
	}
}

var _ portssvc.CompanySvcFacade = (*companyService)(nil)

func (s *companyService) CreateCompany(ctx context.Context, req dto.CreateCompanyRequest, creatorUserID string) (*domain.Company, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := s.now()
	company := domain.Company{
		CompanyID:           uuid.NewString(),
		Name:                req.Name,
		DefaultCurrencyCode: req.DefaultCurrencyCode,
		IsActive:            true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	if err := s.companyRepo.SaveCompany(ctx, company); err != nil {
		return nil, fmt.Errorf("failed to save company: %w", err)
	}

	logger.Info("Company created", slog.String("company_id", company.CompanyID))
	return &company, nil
}

func (s *companyService) GetCompanyByID(ctx context.Context, companyID string) (*domain.Company, error) {
	company, err := s.companyRepo.FindCompanyByID(ctx, companyID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrCompanyNotFound, companyID)
		}
		return nil, fmt.Errorf("failed to find company: %w", err)
	}
	return company, nil
}

// ClosePeriod closes a date range against new or edited transactions.
// Closing is one-way; reopening a period is not supported.
func (s *companyService) ClosePeriod(ctx context.Context, companyID string, req dto.ClosePeriodRequest, userID string) error {
	if _, err := s.GetCompanyByID(ctx, companyID); err != nil {
		return err
	}
	if req.To.Before(req.From) {
		return fmt.Errorf("%w: period end precedes period start", apperrors.ErrValidation)
	}
	if err := s.closedPeriodRepo.SaveClosedPeriod(ctx, companyID, req.From, req.To, userID); err != nil {
		return fmt.Errorf("failed to save closed period: %w", err)
	}
	return nil
}

func (s *companyService) GetThresholds(ctx context.Context, companyID string) (edgecase.Thresholds, error) {
	if _, err := s.GetCompanyByID(ctx, companyID); err != nil {
		return edgecase.Thresholds{}, err
	}
	thresholds, err := s.thresholdRepo.GetThresholdsForCompany(ctx, companyID)
	if err != nil {
		return edgecase.Thresholds{}, fmt.Errorf("failed to load thresholds: %w", err)
	}
	return thresholds, nil
}

// UpdateThresholds applies the request's set fields onto the company's
// current configuration and stores the result.
func (s *companyService) UpdateThresholds(ctx context.Context, companyID string, req dto.UpdateThresholdsRequest, userID string) (edgecase.Thresholds, error) {
	thresholds, err := s.GetThresholds(ctx, companyID)
	if err != nil {
		return edgecase.Thresholds{}, err
	}

	if req.LargeTransactionThreshold != nil {
		if req.LargeTransactionThreshold.IsNegative() {
			return edgecase.Thresholds{}, fmt.Errorf("%w: large transaction threshold must not be negative", apperrors.ErrValidation)
		}
		thresholds.LargeTransactionThreshold = *req.LargeTransactionThreshold
	}
	if req.BackdatedDaysThreshold != nil {
		if *req.BackdatedDaysThreshold < 0 {
			return edgecase.Thresholds{}, fmt.Errorf("%w: backdated days threshold must not be negative", apperrors.ErrValidation)
		}
		thresholds.BackdatedDaysThreshold = *req.BackdatedDaysThreshold
	}
	if req.DormantAccountDays != nil {
		if *req.DormantAccountDays < 0 {
			return edgecase.Thresholds{}, fmt.Errorf("%w: dormant account days must not be negative", apperrors.ErrValidation)
		}
		thresholds.DormantAccountDays = *req.DormantAccountDays
	}
	if req.RequireApprovalForContraEntries != nil {
		thresholds.RequireApprovalForContraEntries = *req.RequireApprovalForContraEntries
	}
	if req.RequireApprovalForEquityAdjustments != nil {
		thresholds.RequireApprovalForEquityAdjustments = *req.RequireApprovalForEquityAdjustments
	}
	if req.RequireApprovalForNegativeBalance != nil {
		thresholds.RequireApprovalForNegativeBalance = *req.RequireApprovalForNegativeBalance
	}
	if req.FlagRoundNumbers != nil {
		thresholds.FlagRoundNumbers = *req.FlagRoundNumbers
	}
	if req.FlagPeriodEndEntries != nil {
		thresholds.FlagPeriodEndEntries = *req.FlagPeriodEndEntries
	}

	now := s.now()
	if thresholds.CreatedAt.IsZero() {
		thresholds.CreatedAt = now
		thresholds.CreatedBy = userID
	}
	thresholds.LastUpdatedAt = now
	thresholds.LastUpdatedBy = userID

	if err := s.thresholdRepo.SaveThresholds(ctx, thresholds); err != nil {
		return edgecase.Thresholds{}, fmt.Errorf("failed to save thresholds: %w", err)
	}
	return thresholds, nil
}
