package repositories

import (
	"context"
	"time"

	"github.com/finbooks/finbooks_app/internal/core/domain"
	"github.com/finbooks/finbooks_app/internal/core/edgecase"
)

// CompanyRepositoryFacade defines operations for company records.
type CompanyRepositoryFacade interface {
	// FindCompanyByID retrieves a single company.
	FindCompanyByID(ctx context.Context, companyID string) (*domain.Company, error)

	// SaveCompany inserts a new company.
	SaveCompany(ctx context.Context, company domain.Company) error

	// ListCompanies retrieves all companies.
	ListCompanies(ctx context.Context, limit, offset int) ([]domain.Company, error)
}

// ClosedPeriodRepositoryFacade answers whether a date falls inside a
// closed accounting period.
type ClosedPeriodRepositoryFacade interface {
	// IsDateInClosedPeriod reports whether the date lies in any closed
	// period of the company.
	IsDateInClosedPeriod(ctx context.Context, companyID string, date time.Time) (bool, error)

	// SaveClosedPeriod records a closed date range.
	SaveClosedPeriod(ctx context.Context, companyID string, from, to time.Time, closedBy string) error
}

// ThresholdRepositoryFacade stores per-company edge-case detection
// configuration.
type ThresholdRepositoryFacade interface {
	// GetThresholdsForCompany returns the company's thresholds, falling
	// back to defaults when none are stored.
	GetThresholdsForCompany(ctx context.Context, companyID string) (edgecase.Thresholds, error)

	// SaveThresholds inserts or replaces a company's thresholds.
	SaveThresholds(ctx context.Context, th edgecase.Thresholds) error
}

// SequenceRepositoryFacade hands out transaction numbers from a
// serialized per-company-per-period counter.
type SequenceRepositoryFacade interface {
	// GenerateNextNumber returns the next number for the company and the
	// period the date falls in, formatted as TXN-<YYYYMM>-<5-digit-seq>.
	// Generation is serialized per company-period.
	GenerateNextNumber(ctx context.Context, companyID string, date time.Time) (string, error)
}
