package pgsql

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/finbooks/finbooks_app/internal/apperrors"
	"github.com/finbooks/finbooks_app/internal/core/domain"
	portsrepo "github.com/finbooks/finbooks_app/internal/core/ports/repositories"
	"github.com/finbooks/finbooks_app/internal/models"
	"github.com/finbooks/finbooks_app/internal/utils/mapping"
)

// PgxJournalEntryRepository reads the immutable journal. There is no
// write method here: appends go through the posting/void commits so the
// chain tip always advances under lock.
type PgxJournalEntryRepository struct {
	BaseRepository
}

func newPgxJournalEntryRepository(pool Pool) portsrepo.JournalEntryReader {
	return &PgxJournalEntryRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.JournalEntryReader = (*PgxJournalEntryRepository)(nil)

const journalEntryColumns = `entry_id, company_id, transaction_id, entry_type, bookings, occurred_at, content_hash, previous_hash, chain_hash`

func scanJournalEntry(row pgx.Row) (models.JournalEntry, error) {
	var m models.JournalEntry
	var bookingsJSON []byte
	err := row.Scan(
		&m.EntryID,
		&m.CompanyID,
		&m.TransactionID,
		&m.EntryType,
		&bookingsJSON,
		&m.OccurredAt,
		&m.ContentHash,
		&m.PreviousHash,
		&m.ChainHash,
	)
	if err != nil {
		return m, err
	}
	if err := json.Unmarshal(bookingsJSON, &m.Bookings); err != nil {
		return m, err
	}
	return m, nil
}

// ListEntriesByCompany returns a company's entries in chain order, oldest
// first. The seq column preserves append order even when timestamps tie.
func (r *PgxJournalEntryRepository) ListEntriesByCompany(ctx context.Context, companyID string, limit, offset int) ([]domain.JournalEntry, error) {
	query := `
		SELECT ` + journalEntryColumns + `
		FROM journal_entries
		WHERE company_id = $1
		ORDER BY seq
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, companyID, limit, offset)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query journal entries for company "+companyID, err)
	}
	defer rows.Close()

	entries := []models.JournalEntry{}
	for rows.Next() {
		m, err := scanJournalEntry(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan journal entry row", err)
		}
		entries = append(entries, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating journal entry rows", err)
	}
	return mapping.ToDomainJournalEntrySlice(entries), nil
}

// FindEntriesByTransaction returns the entries recorded for one
// transaction in append order.
func (r *PgxJournalEntryRepository) FindEntriesByTransaction(ctx context.Context, transactionID string) ([]domain.JournalEntry, error) {
	query := `
		SELECT ` + journalEntryColumns + `
		FROM journal_entries
		WHERE transaction_id = $1
		ORDER BY seq;
	`
	rows, err := r.Pool.Query(ctx, query, transactionID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query journal entries for transaction "+transactionID, err)
	}
	defer rows.Close()

	entries := []models.JournalEntry{}
	for rows.Next() {
		m, err := scanJournalEntry(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan journal entry row", err)
		}
		entries = append(entries, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating journal entry rows", err)
	}
	return mapping.ToDomainJournalEntrySlice(entries), nil
}

// GetLatestChainHash returns the company's current chain tip, or the
// genesis sentinel when no entry has been appended yet.
func (r *PgxJournalEntryRepository) GetLatestChainHash(ctx context.Context, companyID string) (string, error) {
	var tip string
	err := r.Pool.QueryRow(ctx, `SELECT chain_hash FROM journal_chain_tips WHERE company_id = $1;`, companyID).Scan(&tip)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.GenesisHash, nil
		}
		return "", apperrors.NewAppError(500, "failed to read chain tip for company "+companyID, err)
	}
	return tip, nil
}
