package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/finbooks/finbooks_app/internal/apperrors"
	"github.com/finbooks/finbooks_app/internal/core/domain"
	portsrepo "github.com/finbooks/finbooks_app/internal/core/ports/repositories"
	"github.com/finbooks/finbooks_app/internal/models"
	"github.com/finbooks/finbooks_app/internal/utils/mapping"
)

type PgxCompanyRepository struct {
	BaseRepository
}

func newPgxCompanyRepository(pool Pool) portsrepo.CompanyRepositoryFacade {
	return &PgxCompanyRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.CompanyRepositoryFacade = (*PgxCompanyRepository)(nil)

const companyColumns = `company_id, name, default_currency_code, is_active, created_at, created_by, last_updated_at, last_updated_by`

func scanCompany(row pgx.Row) (models.Company, error) {
	var m models.Company
	err := row.Scan(
		&m.CompanyID,
		&m.Name,
		&m.DefaultCurrencyCode,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// FindCompanyByID retrieves a single company.
func (r *PgxCompanyRepository) FindCompanyByID(ctx context.Context, companyID string) (*domain.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies WHERE company_id = $1;`
	m, err := scanCompany(r.Pool.QueryRow(ctx, query, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find company "+companyID, err)
	}
	company := mapping.ToDomainCompany(m)
	return &company, nil
}

// SaveCompany inserts a new company.
func (r *PgxCompanyRepository) SaveCompany(ctx context.Context, company domain.Company) error {
	m := mapping.ToModelCompany(company)
	query := `
		INSERT INTO companies (` + companyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.CompanyID,
		m.Name,
		m.DefaultCurrencyCode,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to insert company "+m.CompanyID, err)
	}
	return nil
}

// ListCompanies retrieves companies ordered by creation time.
func (r *PgxCompanyRepository) ListCompanies(ctx context.Context, limit, offset int) ([]domain.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies ORDER BY created_at LIMIT $1 OFFSET $2;`
	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query companies", err)
	}
	defer rows.Close()

	companies := []domain.Company{}
	for rows.Next() {
		m, err := scanCompany(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan company row", err)
		}
		companies = append(companies, mapping.ToDomainCompany(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating company rows", err)
	}
	return companies, nil
}

type PgxClosedPeriodRepository struct {
	BaseRepository
}

func newPgxClosedPeriodRepository(pool Pool) portsrepo.ClosedPeriodRepositoryFacade {
	return &PgxClosedPeriodRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ClosedPeriodRepositoryFacade = (*PgxClosedPeriodRepository)(nil)

// IsDateInClosedPeriod reports whether the date lies in any closed period
// of the company. Range bounds are inclusive and compared on the date
// level.
func (r *PgxClosedPeriodRepository) IsDateInClosedPeriod(ctx context.Context, companyID string, date time.Time) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM closed_periods
			WHERE company_id = $1 AND $2::date BETWEEN from_date AND to_date
		);
	`
	var closed bool
	if err := r.Pool.QueryRow(ctx, query, companyID, date).Scan(&closed); err != nil {
		return false, apperrors.NewAppError(500, "failed to check closed periods for company "+companyID, err)
	}
	return closed, nil
}

// SaveClosedPeriod records a closed date range.
func (r *PgxClosedPeriodRepository) SaveClosedPeriod(ctx context.Context, companyID string, from, to time.Time, closedBy string) error {
	query := `
		INSERT INTO closed_periods (period_id, company_id, from_date, to_date, closed_by, closed_at)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	_, err := r.Pool.Exec(ctx, query, uuid.NewString(), companyID, from, to, closedBy, time.Now())
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert closed period for company "+companyID, err)
	}
	return nil
}
