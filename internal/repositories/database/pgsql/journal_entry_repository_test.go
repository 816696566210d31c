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

	"github.com/finbooks/finbooks_app/internal/core/domain"
)

var journalEntryTestColumns = []string{
	"entry_id", "company_id", "transaction_id", "entry_type", "bookings",
	"occurred_at", "content_hash", "previous_hash", "chain_hash",
}

const bookingsJSON = `[{"accountID":"acc-exp","lineType":"DEBIT","amount":"1200"},{"accountID":"acc-cash","lineType":"CREDIT","amount":"1200"}]`

func TestJournalEntryRepository_GetLatestChainHash(t *testing.T) {
	ctx := context.Background()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := newPgxJournalEntryRepository(mock)
	companyID := "comp-1"

	t.Run("returns the stored tip", func(t *testing.T) {
		mock.ExpectQuery("FROM journal_chain_tips").
			WithArgs(companyID).
			WillReturnRows(pgxmock.NewRows([]string{"chain_hash"}).AddRow("abc123"))

		tip, err := repo.GetLatestChainHash(ctx, companyID)
		require.NoError(t, err)
		assert.Equal(t, "abc123", tip)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty journal yields the genesis sentinel", func(t *testing.T) {
		mock.ExpectQuery("FROM journal_chain_tips").
			WithArgs(companyID).
			WillReturnError(pgx.ErrNoRows)

		tip, err := repo.GetLatestChainHash(ctx, companyID)
		require.NoError(t, err)
		assert.Equal(t, domain.GenesisHash, tip)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("query failure", func(t *testing.T) {
		dbErr := errors.New("connection reset")
		mock.ExpectQuery("FROM journal_chain_tips").
			WithArgs(companyID).
			WillReturnError(dbErr)

		_, err := repo.GetLatestChainHash(ctx, companyID)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read chain tip")
		assert.ErrorIs(t, err, dbErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestJournalEntryRepository_FindEntriesByTransaction(t *testing.T) {
	ctx := context.Background()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := newPgxJournalEntryRepository(mock)
	occurredAt := time.Date(2026, 4, 12, 14, 0, 0, 0, time.UTC)

	t.Run("decodes bookings from the row", func(t *testing.T) {
		rows := pgxmock.NewRows(journalEntryTestColumns).
			AddRow("entry-1", "comp-1", "txn-1", "POSTING", []byte(bookingsJSON),
				occurredAt, "content-1", domain.GenesisHash, "chain-1").
			AddRow("entry-2", "comp-1", "txn-1", "REVERSAL", []byte(bookingsJSON),
				occurredAt.Add(time.Hour), "content-2", "chain-1", "chain-2")
		mock.ExpectQuery("FROM journal_entries").
			WithArgs("txn-1").
			WillReturnRows(rows)

		entries, err := repo.FindEntriesByTransaction(ctx, "txn-1")
		require.NoError(t, err)
		require.Len(t, entries, 2)

		posting := entries[0]
		assert.Equal(t, "entry-1", posting.EntryID)
		assert.Equal(t, domain.EntryPosting, posting.EntryType)
		require.Len(t, posting.Bookings, 2)
		assert.Equal(t, "acc-exp", posting.Bookings[0].AccountID)
		assert.Equal(t, domain.Debit, posting.Bookings[0].LineType)
		assert.True(t, posting.Bookings[0].Amount.Equal(decimal.NewFromInt(1200)))
		assert.Equal(t, domain.GenesisHash, posting.PreviousHash)

		reversal := entries[1]
		assert.Equal(t, domain.EntryReversal, reversal.EntryType)
		assert.Equal(t, "chain-1", reversal.PreviousHash)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no entries yields an empty slice", func(t *testing.T) {
		mock.ExpectQuery("FROM journal_entries").
			WithArgs("txn-none").
			WillReturnRows(pgxmock.NewRows(journalEntryTestColumns))

		entries, err := repo.FindEntriesByTransaction(ctx, "txn-none")
		require.NoError(t, err)
		assert.Empty(t, entries)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("query failure", func(t *testing.T) {
		dbErr := errors.New("connection reset")
		mock.ExpectQuery("FROM journal_entries").
			WithArgs("txn-1").
			WillReturnError(dbErr)

		_, err := repo.FindEntriesByTransaction(ctx, "txn-1")
		require.Error(t, err)
		assert.ErrorIs(t, err, dbErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestJournalEntryRepository_ListEntriesByCompany(t *testing.T) {
	ctx := context.Background()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := newPgxJournalEntryRepository(mock)
	occurredAt := time.Date(2026, 4, 12, 14, 0, 0, 0, time.UTC)

	rows := pgxmock.NewRows(journalEntryTestColumns).
		AddRow("entry-1", "comp-1", "txn-1", "POSTING", []byte(bookingsJSON),
			occurredAt, "content-1", domain.GenesisHash, "chain-1")
	mock.ExpectQuery("FROM journal_entries").
		WithArgs("comp-1", 50, 0).
		WillReturnRows(rows)

	entries, err := repo.ListEntriesByCompany(ctx, "comp-1", 50, 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "chain-1", entries[0].ChainHash)
	assert.NoError(t, mock.ExpectationsWereMet())
}
