package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/finbooks/finbooks_app/internal/apperrors"
	"github.com/finbooks/finbooks_app/internal/core/edgecase"
	portsrepo "github.com/finbooks/finbooks_app/internal/core/ports/repositories"
	"github.com/finbooks/finbooks_app/internal/models"
	"github.com/finbooks/finbooks_app/internal/utils/mapping"
)

type PgxThresholdRepository struct {
	BaseRepository
}

func newPgxThresholdRepository(pool Pool) portsrepo.ThresholdRepositoryFacade {
	return &PgxThresholdRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ThresholdRepositoryFacade = (*PgxThresholdRepository)(nil)

// GetThresholdsForCompany returns the company's stored thresholds, or the
// defaults when the company has never customized detection.
func (r *PgxThresholdRepository) GetThresholdsForCompany(ctx context.Context, companyID string) (edgecase.Thresholds, error) {
	query := `
		SELECT company_id, large_transaction_threshold, backdated_days_threshold, dormant_account_days,
			require_approval_for_contra_entries, require_approval_for_equity_adjustments, require_approval_for_negative_balance,
			flag_round_numbers, flag_period_end_entries,
			created_at, created_by, last_updated_at, last_updated_by
		FROM edge_case_thresholds
		WHERE company_id = $1;
	`
	var m models.Thresholds
	err := r.Pool.QueryRow(ctx, query, companyID).Scan(
		&m.CompanyID,
		&m.LargeTransactionThreshold,
		&m.BackdatedDaysThreshold,
		&m.DormantAccountDays,
		&m.RequireApprovalForContraEntries,
		&m.RequireApprovalForEquityAdjustments,
		&m.RequireApprovalForNegativeBalance,
		&m.FlagRoundNumbers,
		&m.FlagPeriodEndEntries,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return edgecase.DefaultThresholds(companyID), nil
		}
		return edgecase.Thresholds{}, apperrors.NewAppError(500, "failed to find thresholds for company "+companyID, err)
	}
	return mapping.ToDomainThresholds(m), nil
}

// SaveThresholds inserts or replaces a company's thresholds.
func (r *PgxThresholdRepository) SaveThresholds(ctx context.Context, th edgecase.Thresholds) error {
	m := mapping.ToModelThresholds(th)
	query := `
		INSERT INTO edge_case_thresholds (company_id, large_transaction_threshold, backdated_days_threshold, dormant_account_days,
			require_approval_for_contra_entries, require_approval_for_equity_adjustments, require_approval_for_negative_balance,
			flag_round_numbers, flag_period_end_entries,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (company_id) DO UPDATE
		SET large_transaction_threshold = EXCLUDED.large_transaction_threshold,
			backdated_days_threshold = EXCLUDED.backdated_days_threshold,
			dormant_account_days = EXCLUDED.dormant_account_days,
			require_approval_for_contra_entries = EXCLUDED.require_approval_for_contra_entries,
			require_approval_for_equity_adjustments = EXCLUDED.require_approval_for_equity_adjustments,
			require_approval_for_negative_balance = EXCLUDED.require_approval_for_negative_balance,
			flag_round_numbers = EXCLUDED.flag_round_numbers,
			flag_period_end_entries = EXCLUDED.flag_period_end_entries,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err := r.Pool.Exec(ctx, query,
		m.CompanyID,
		m.LargeTransactionThreshold,
		m.BackdatedDaysThreshold,
		m.DormantAccountDays,
		m.RequireApprovalForContraEntries,
		m.RequireApprovalForEquityAdjustments,
		m.RequireApprovalForNegativeBalance,
		m.FlagRoundNumbers,
		m.FlagPeriodEndEntries,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to save thresholds for company "+m.CompanyID, err)
	}
	return nil
}
