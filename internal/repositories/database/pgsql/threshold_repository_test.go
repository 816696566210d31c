package pgsql

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finbooks/finbooks_app/internal/core/edgecase"
)

var thresholdColumns = []string{
	"company_id", "large_transaction_threshold", "backdated_days_threshold", "dormant_account_days",
	"require_approval_for_contra_entries", "require_approval_for_equity_adjustments", "require_approval_for_negative_balance",
	"flag_round_numbers", "flag_period_end_entries",
	"created_at", "created_by", "last_updated_at", "last_updated_by",
}

func TestThresholdRepository_GetThresholdsForCompany(t *testing.T) {
	ctx := context.Background()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := newPgxThresholdRepository(mock)
	companyID := "comp-1"
	createdAt := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)

	t.Run("returns stored configuration", func(t *testing.T) {
		rows := pgxmock.NewRows(thresholdColumns).AddRow(
			companyID, decimal.NewFromInt(25000), 45, 180,
			true, false, true,
			false, true,
			createdAt, "user-1", createdAt, "user-1",
		)
		mock.ExpectQuery("FROM edge_case_thresholds").
			WithArgs(companyID).
			WillReturnRows(rows)

		th, err := repo.GetThresholdsForCompany(ctx, companyID)
		require.NoError(t, err)
		assert.Equal(t, companyID, th.CompanyID)
		assert.True(t, th.LargeTransactionThreshold.Equal(decimal.NewFromInt(25000)))
		assert.Equal(t, 45, th.BackdatedDaysThreshold)
		assert.Equal(t, 180, th.DormantAccountDays)
		assert.False(t, th.RequireApprovalForEquityAdjustments)
		assert.False(t, th.FlagRoundNumbers)
		assert.Equal(t, "user-1", th.CreatedBy)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("falls back to defaults when the company never customized", func(t *testing.T) {
		mock.ExpectQuery("FROM edge_case_thresholds").
			WithArgs(companyID).
			WillReturnError(pgx.ErrNoRows)

		th, err := repo.GetThresholdsForCompany(ctx, companyID)
		require.NoError(t, err)
		assert.Equal(t, edgecase.DefaultThresholds(companyID), th)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("query failure", func(t *testing.T) {
		dbErr := errors.New("connection reset")
		mock.ExpectQuery("FROM edge_case_thresholds").
			WithArgs(companyID).
			WillReturnError(dbErr)

		_, err := repo.GetThresholdsForCompany(ctx, companyID)
		require.Error(t, err)
		assert.ErrorIs(t, err, dbErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestThresholdRepository_SaveThresholds(t *testing.T) {
	ctx := context.Background()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := newPgxThresholdRepository(mock)

	th := edgecase.DefaultThresholds("comp-1")
	th.LargeTransactionThreshold = decimal.NewFromInt(50000)
	th.CreatedAt = time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	th.CreatedBy = "user-1"
	th.LastUpdatedAt = time.Date(2026, 4, 2, 10, 0, 0, 0, time.UTC)
	th.LastUpdatedBy = "user-2"

	t.Run("success", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO edge_case_thresholds").
			WithArgs(
				th.CompanyID, th.LargeTransactionThreshold, th.BackdatedDaysThreshold, th.DormantAccountDays,
				th.RequireApprovalForContraEntries, th.RequireApprovalForEquityAdjustments, th.RequireApprovalForNegativeBalance,
				th.FlagRoundNumbers, th.FlagPeriodEndEntries,
				th.CreatedAt, th.CreatedBy, th.LastUpdatedAt, th.LastUpdatedBy,
			).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		err := repo.SaveThresholds(ctx, th)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("failure", func(t *testing.T) {
		dbErr := errors.New("disk full")
		mock.ExpectExec("INSERT INTO edge_case_thresholds").
			WithArgs(
				pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
				pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
				pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
				pgxmock.AnyArg(),
			).
			WillReturnError(dbErr)

		err := repo.SaveThresholds(ctx, th)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to save thresholds")
		assert.ErrorIs(t, err, dbErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
