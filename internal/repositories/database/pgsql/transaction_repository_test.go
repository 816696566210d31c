package pgsql

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finbooks/finbooks_app/internal/apperrors"
	"github.com/finbooks/finbooks_app/internal/core/domain"
	"github.com/finbooks/finbooks_app/internal/models"
)

var transactionTestColumns = []string{
	"transaction_id", "company_id", "transaction_number", "transaction_date", "description", "reference_number", "status",
	"posted_by", "posted_at", "voided_by", "voided_at", "void_reason",
	"created_at", "created_by", "last_updated_at", "last_updated_by",
}

var lineTestColumns = []string{"line_id", "transaction_id", "account_id", "line_type", "amount", "description"}

func strPtr(s string) *string { return &s }

func timePtr(t time.Time) *time.Time { return &t }

func TestTransactionRepository_FindTransactionByID(t *testing.T) {
	ctx := context.Background()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := newPgxTransactionRepository(mock)
	createdAt := time.Date(2026, 4, 10, 9, 0, 0, 0, time.UTC)
	txnDate := time.Date(2026, 4, 9, 0, 0, 0, 0, time.UTC)

	t.Run("draft with lines", func(t *testing.T) {
		header := pgxmock.NewRows(transactionTestColumns).AddRow(
			"txn-1", "comp-1", "TXN-202604-00001", txnDate, "April rent", "INV-99", models.TransactionStatus("DRAFT"),
			nil, nil, nil, nil, nil,
			createdAt, "user-1", createdAt, "user-1",
		)
		mock.ExpectQuery("FROM transactions WHERE transaction_id").
			WithArgs("txn-1").
			WillReturnRows(header)

		lines := pgxmock.NewRows(lineTestColumns).
			AddRow("line-1", "txn-1", "acc-exp", "DEBIT", decimal.NewFromInt(1200), "").
			AddRow("line-2", "txn-1", "acc-cash", "CREDIT", decimal.NewFromInt(1200), "")
		mock.ExpectQuery("FROM transaction_lines").
			WithArgs("txn-1").
			WillReturnRows(lines)

		txn, err := repo.FindTransactionByID(ctx, "txn-1")
		require.NoError(t, err)
		assert.Equal(t, "txn-1", txn.TransactionID)
		assert.Equal(t, "TXN-202604-00001", txn.TransactionNumber)
		assert.Equal(t, domain.StatusDraft, txn.Status)
		assert.Empty(t, txn.PostedBy)
		require.Len(t, txn.Lines, 2)
		assert.Equal(t, domain.Debit, txn.Lines[0].LineType)
		assert.True(t, txn.Lines[0].Amount.Equal(decimal.NewFromInt(1200)))
		assert.Equal(t, "acc-cash", txn.Lines[1].AccountID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("posted transaction carries posting metadata", func(t *testing.T) {
		postedAt := createdAt.Add(time.Hour)
		header := pgxmock.NewRows(transactionTestColumns).AddRow(
			"txn-2", "comp-1", "TXN-202604-00002", txnDate, "April rent", "", models.TransactionStatus("POSTED"),
			strPtr("user-2"), timePtr(postedAt), nil, nil, nil,
			createdAt, "user-1", postedAt, "user-2",
		)
		mock.ExpectQuery("FROM transactions WHERE transaction_id").
			WithArgs("txn-2").
			WillReturnRows(header)
		mock.ExpectQuery("FROM transaction_lines").
			WithArgs("txn-2").
			WillReturnRows(pgxmock.NewRows(lineTestColumns))

		txn, err := repo.FindTransactionByID(ctx, "txn-2")
		require.NoError(t, err)
		assert.Equal(t, domain.StatusPosted, txn.Status)
		assert.Equal(t, "user-2", txn.PostedBy)
		require.NotNil(t, txn.PostedAt)
		assert.True(t, txn.PostedAt.Equal(postedAt))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing transaction", func(t *testing.T) {
		mock.ExpectQuery("FROM transactions WHERE transaction_id").
			WithArgs("txn-missing").
			WillReturnError(pgx.ErrNoRows)

		_, err := repo.FindTransactionByID(ctx, "txn-missing")
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestTransactionRepository_SaveTransaction_DuplicateNumber(t *testing.T) {
	ctx := context.Background()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := newPgxTransactionRepository(mock)

	now := time.Date(2026, 4, 10, 9, 0, 0, 0, time.UTC)
	txn := domain.NewTransaction("txn-1", "comp-1", "TXN-202604-00001", now, "April rent", "", "user-1", now)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO transactions").
		WithArgs(
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
		).
		WillReturnError(&pgconn.PgError{Code: "23505"})
	mock.ExpectRollback()

	err = repo.SaveTransaction(ctx, *txn)
	assert.ErrorIs(t, err, apperrors.ErrDuplicate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionRepository_UpdateDraftTransaction_StatusGuard(t *testing.T) {
	ctx := context.Background()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := newPgxTransactionRepository(mock)

	now := time.Date(2026, 4, 10, 9, 0, 0, 0, time.UTC)
	txn := domain.NewTransaction("txn-1", "comp-1", "TXN-202604-00001", now, "April rent", "", "user-1", now)

	// A concurrent post flips the status, so the guarded update touches
	// zero rows.
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE transactions").
		WithArgs(
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
		).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	mock.ExpectRollback()

	err = repo.UpdateDraftTransaction(ctx, *txn)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateBalances_RepeatedAccountUsesLoadedVersion(t *testing.T) {
	ctx := context.Background()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	now := time.Date(2026, 4, 10, 9, 0, 0, 0, time.UTC)

	newAppliedTwice := func() (*domain.AccountBalance, []domain.BalanceChange) {
		balance := domain.NewAccountBalance("acc-exp", "comp-1", domain.Expense, "EUR", decimal.Zero, "user-1", now)
		ch1, _ := balance.Apply("chg-1", "txn-1", domain.Debit, decimal.NewFromInt(700), false, now)
		ch2, _ := balance.Apply("chg-2", "txn-1", domain.Debit, decimal.NewFromInt(500), false, now)
		return balance, []domain.BalanceChange{ch1, ch2}
	}

	t.Run("guards against the version the row was loaded at", func(t *testing.T) {
		balance, changes := newAppliedTwice()

		mock.ExpectBegin()
		tx, err := mock.Begin(ctx)
		require.NoError(t, err)

		// Two lines touch the account, so the in-memory version moved from
		// 1 to 3. The WHERE clause must still match the stored version 1.
		mock.ExpectExec("UPDATE account_balances").
			WithArgs(
				"acc-exp", pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
				pgxmock.AnyArg(), pgxmock.AnyArg(), int64(3), pgxmock.AnyArg(),
				pgxmock.AnyArg(), int64(1),
			).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))
		mock.ExpectExec("UPDATE accounts").
			WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		err = updateBalances(ctx, tx, []*domain.AccountBalance{balance}, changes)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("concurrent writer wins and the update conflicts", func(t *testing.T) {
		balance, changes := newAppliedTwice()

		mock.ExpectBegin()
		tx, err := mock.Begin(ctx)
		require.NoError(t, err)

		mock.ExpectExec("UPDATE account_balances").
			WithArgs(
				"acc-exp", pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
				pgxmock.AnyArg(), pgxmock.AnyArg(), int64(3), pgxmock.AnyArg(),
				pgxmock.AnyArg(), int64(1),
			).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		err = updateBalances(ctx, tx, []*domain.AccountBalance{balance}, changes)
		assert.ErrorIs(t, err, apperrors.ErrConflict)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
