package pgsql

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/finbooks/finbooks_app/internal/apperrors"
	"github.com/finbooks/finbooks_app/internal/core/domain"
	portsrepo "github.com/finbooks/finbooks_app/internal/core/ports/repositories"
	"github.com/finbooks/finbooks_app/internal/models"
	"github.com/finbooks/finbooks_app/internal/utils/mapping"
	"github.com/finbooks/finbooks_app/internal/utils/pagination"
)

type PgxTransactionRepository struct {
	BaseRepository
}

// newPgxTransactionRepository creates the repository for transaction
// documents and their atomic posting/void commits.
func newPgxTransactionRepository(pool Pool) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

const transactionColumns = `transaction_id, company_id, transaction_number, transaction_date, description, reference_number, status,
	posted_by, posted_at, voided_by, voided_at, void_reason,
	created_at, created_by, last_updated_at, last_updated_by`

func scanTransaction(row pgx.Row) (models.Transaction, error) {
	var m models.Transaction
	err := row.Scan(
		&m.TransactionID,
		&m.CompanyID,
		&m.TransactionNumber,
		&m.TransactionDate,
		&m.Description,
		&m.ReferenceNumber,
		&m.Status,
		&m.PostedBy,
		&m.PostedAt,
		&m.VoidedBy,
		&m.VoidedAt,
		&m.VoidReason,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// FindTransactionByID retrieves a transaction header with its lines.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1;`
	m, err := scanTransaction(r.Pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find transaction "+transactionID, err)
	}

	lines, err := r.findLines(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	return mapping.ToDomainTransaction(m, lines), nil
}

func (r *PgxTransactionRepository) findLines(ctx context.Context, transactionID string) ([]models.TransactionLine, error) {
	query := `
		SELECT line_id, transaction_id, account_id, line_type, amount, description
		FROM transaction_lines
		WHERE transaction_id = $1
		ORDER BY line_id;
	`
	rows, err := r.Pool.Query(ctx, query, transactionID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query lines for transaction "+transactionID, err)
	}
	defer rows.Close()

	lines := []models.TransactionLine{}
	for rows.Next() {
		var line models.TransactionLine
		if err := rows.Scan(&line.LineID, &line.TransactionID, &line.AccountID, &line.LineType, &line.Amount, &line.Description); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan line for transaction "+transactionID, err)
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating lines for transaction "+transactionID, err)
	}
	return lines, nil
}

// ListTransactionsByCompany retrieves a page of a company's transactions
// using token-based pagination, newest first.
func (r *PgxTransactionRepository) ListTransactionsByCompany(ctx context.Context, companyID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	baseQuery := `SELECT ` + transactionColumns + ` FROM transactions WHERE company_id = $1`
	return r.listPage(ctx, baseQuery, []interface{}{companyID}, limit, nextToken)
}

// ListTransactionsByAccount retrieves a page of transactions touching the
// given account.
func (r *PgxTransactionRepository) ListTransactionsByAccount(ctx context.Context, companyID, accountID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	baseQuery := `
		SELECT DISTINCT t.transaction_id, t.company_id, t.transaction_number, t.transaction_date, t.description, t.reference_number, t.status,
			t.posted_by, t.posted_at, t.voided_by, t.voided_at, t.void_reason,
			t.created_at, t.created_by, t.last_updated_at, t.last_updated_by
		FROM transactions t
		JOIN transaction_lines l ON l.transaction_id = t.transaction_id
		WHERE t.company_id = $1 AND l.account_id = $2`
	return r.listPage(ctx, baseQuery, []interface{}{companyID, accountID}, limit, nextToken)
}

// listPage runs a transaction list query with a stable cursor over
// (transaction_date, created_at) descending. One extra row is fetched to
// decide whether a next page exists.
func (r *PgxTransactionRepository) listPage(ctx context.Context, baseQuery string, args []interface{}, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	// Column references must work both with and without a table alias.
	orderByClause := `ORDER BY transaction_date DESC, created_at DESC`

	if nextToken != nil && *nextToken != "" {
		lastDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		cursorClause := `AND (transaction_date, created_at) < ($` + strconv.Itoa(len(args)+1) + `, $` + strconv.Itoa(len(args)+2) + `)`
		args = append(args, lastDate, lastCreatedAt)
		baseQuery = baseQuery + " " + cursorClause
	}

	query := baseQuery + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
	args = append(args, fetchLimit)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query transactions", err)
	}
	defer rows.Close()

	headers := []models.Transaction{}
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan transaction row", err)
		}
		headers = append(headers, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating transaction rows", err)
	}

	var token *string
	if len(headers) > limit {
		headers = headers[:limit]
		last := headers[len(headers)-1]
		encoded := pagination.EncodeToken(last.TransactionDate, last.CreatedAt)
		token = &encoded
	}

	txns := make([]domain.Transaction, 0, len(headers))
	for _, m := range headers {
		lines, err := r.findLines(ctx, m.TransactionID)
		if err != nil {
			return nil, nil, err
		}
		txns = append(txns, *mapping.ToDomainTransaction(m, lines))
	}
	return txns, token, nil
}

// FindDuplicateCandidates returns non-voided transactions of the company
// that share total debit amount, description and date with the given values.
func (r *PgxTransactionRepository) FindDuplicateCandidates(ctx context.Context, companyID string, totalDebits decimal.Decimal, description string, date time.Time, excludeID string) ([]domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions t
		WHERE t.company_id = $1
		  AND t.transaction_id <> $2
		  AND t.status <> 'VOIDED'
		  AND t.description = $3
		  AND t.transaction_date::date = $4::date
		  AND (SELECT COALESCE(SUM(l.amount), 0) FROM transaction_lines l
		       WHERE l.transaction_id = t.transaction_id AND l.line_type = 'DEBIT') = $5
		ORDER BY t.created_at;
	`
	rows, err := r.Pool.Query(ctx, query, companyID, excludeID, description, date, totalDebits)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query duplicate candidates", err)
	}
	defer rows.Close()

	candidates := []domain.Transaction{}
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan duplicate candidate", err)
		}
		candidates = append(candidates, *mapping.ToDomainTransaction(m, nil))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating duplicate candidates", err)
	}
	return candidates, nil
}

const insertTransactionQuery = `
	INSERT INTO transactions (
		transaction_id, company_id, transaction_number, transaction_date, description, reference_number, status,
		created_at, created_by, last_updated_at, last_updated_by
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
`

const insertLineQuery = `
	INSERT INTO transaction_lines (line_id, transaction_id, account_id, line_type, amount, description)
	VALUES ($1, $2, $3, $4, $5, $6);
`

// SaveTransaction inserts a new draft with its lines.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelTransaction(txn)
	_, err = tx.Exec(ctx, insertTransactionQuery,
		m.TransactionID,
		m.CompanyID,
		m.TransactionNumber,
		m.TransactionDate,
		m.Description,
		m.ReferenceNumber,
		m.Status,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to insert transaction "+m.TransactionID, err)
	}

	if err := insertLines(ctx, tx, txn.TransactionID, txn.Lines); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

func insertLines(ctx context.Context, tx pgx.Tx, transactionID string, lines []domain.TransactionLine) error {
	batch := &pgx.Batch{}
	for _, line := range mapping.ToModelTransactionLines(transactionID, lines) {
		batch.Queue(insertLineQuery,
			line.LineID,
			line.TransactionID,
			line.AccountID,
			line.LineType,
			line.Amount,
			line.Description,
		)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert lines for transaction "+transactionID, err)
	}
	return nil
}

// UpdateDraftTransaction replaces a draft's header and lines. The status
// guard in the WHERE clause keeps concurrent posts from being overwritten.
func (r *PgxTransactionRepository) UpdateDraftTransaction(ctx context.Context, txn domain.Transaction) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelTransaction(txn)
	query := `
		UPDATE transactions
		SET transaction_date = $2, description = $3, reference_number = $4, last_updated_at = $5, last_updated_by = $6
		WHERE transaction_id = $1 AND status = 'DRAFT';
	`
	tag, err := tx.Exec(ctx, query,
		m.TransactionID,
		m.TransactionDate,
		m.Description,
		m.ReferenceNumber,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update transaction "+m.TransactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrConflict
	}

	if _, err := tx.Exec(ctx, `DELETE FROM transaction_lines WHERE transaction_id = $1;`, txn.TransactionID); err != nil {
		return apperrors.NewAppError(500, "failed to clear lines for transaction "+txn.TransactionID, err)
	}
	if err := insertLines(ctx, tx, txn.TransactionID, txn.Lines); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// DeleteDraftTransaction hard-removes a draft and its lines.
func (r *PgxTransactionRepository) DeleteDraftTransaction(ctx context.Context, transactionID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if _, err := tx.Exec(ctx, `DELETE FROM transaction_lines WHERE transaction_id = $1;`, transactionID); err != nil {
		return apperrors.NewAppError(500, "failed to delete lines for transaction "+transactionID, err)
	}
	tag, err := tx.Exec(ctx, `DELETE FROM transactions WHERE transaction_id = $1 AND status = 'DRAFT';`, transactionID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete transaction "+transactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrConflict
	}
	return r.Commit(ctx, tx)
}

// SavePosting persists a posting as one storage transaction: the status
// flip, the POSTING journal entry chained onto the company's tip (read
// under lock), the approval proof, the touched balances and the change
// records. The finalized entry is returned for logging and events.
func (r *PgxTransactionRepository) SavePosting(ctx context.Context, rec portsrepo.PostingRecord) (domain.JournalEntry, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return domain.JournalEntry{}, err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelTransaction(*rec.Transaction)
	statusQuery := `
		UPDATE transactions
		SET status = $2, posted_by = $3, posted_at = $4, last_updated_at = $5, last_updated_by = $6
		WHERE transaction_id = $1 AND status = 'DRAFT';
	`
	tag, err := tx.Exec(ctx, statusQuery,
		m.TransactionID,
		m.Status,
		m.PostedBy,
		m.PostedAt,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return domain.JournalEntry{}, apperrors.NewAppError(500, "failed to mark transaction posted "+m.TransactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.JournalEntry{}, apperrors.ErrConflict
	}

	entry, err := appendJournalEntry(ctx, tx, rec.Transaction.CompanyID, rec.Transaction.TransactionID, domain.EntryPosting, rec.Bookings, rec.OccurredAt, rec.EntryID)
	if err != nil {
		return domain.JournalEntry{}, err
	}

	if err := upsertApproval(ctx, tx, rec.Approval); err != nil {
		return domain.JournalEntry{}, err
	}
	if err := updateBalances(ctx, tx, rec.Balances, rec.Changes); err != nil {
		return domain.JournalEntry{}, err
	}
	if err := insertBalanceChanges(ctx, tx, rec.Changes); err != nil {
		return domain.JournalEntry{}, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return domain.JournalEntry{}, err
	}
	return entry, nil
}

// SaveVoid persists a void as one storage transaction: the status flip, the
// REVERSAL journal entry and the reversed balances.
func (r *PgxTransactionRepository) SaveVoid(ctx context.Context, rec portsrepo.VoidRecord) (domain.JournalEntry, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return domain.JournalEntry{}, err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelTransaction(*rec.Transaction)
	statusQuery := `
		UPDATE transactions
		SET status = $2, voided_by = $3, voided_at = $4, void_reason = $5, last_updated_at = $6, last_updated_by = $7
		WHERE transaction_id = $1 AND status = 'POSTED';
	`
	tag, err := tx.Exec(ctx, statusQuery,
		m.TransactionID,
		m.Status,
		m.VoidedBy,
		m.VoidedAt,
		m.VoidReason,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return domain.JournalEntry{}, apperrors.NewAppError(500, "failed to mark transaction voided "+m.TransactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.JournalEntry{}, apperrors.ErrConflict
	}

	entry, err := appendJournalEntry(ctx, tx, rec.Transaction.CompanyID, rec.Transaction.TransactionID, domain.EntryReversal, rec.Bookings, rec.OccurredAt, rec.EntryID)
	if err != nil {
		return domain.JournalEntry{}, err
	}

	if err := updateBalances(ctx, tx, rec.Balances, rec.Changes); err != nil {
		return domain.JournalEntry{}, err
	}
	if err := insertBalanceChanges(ctx, tx, rec.Changes); err != nil {
		return domain.JournalEntry{}, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return domain.JournalEntry{}, err
	}
	return entry, nil
}

// appendJournalEntry locks the company's chain tip row, builds the entry
// onto the current tip and advances the tip to the new chain hash. Holding
// the row lock for the duration of the storage transaction serializes
// appends per company.
func appendJournalEntry(ctx context.Context, tx pgx.Tx, companyID, transactionID string, entryType domain.EntryType, bookings []domain.Booking, occurredAt time.Time, entryID string) (domain.JournalEntry, error) {
	_, err := tx.Exec(ctx, `
		INSERT INTO journal_chain_tips (company_id, chain_hash, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (company_id) DO NOTHING;
	`, companyID, domain.GenesisHash, occurredAt)
	if err != nil {
		return domain.JournalEntry{}, apperrors.NewAppError(500, "failed to seed chain tip for company "+companyID, err)
	}

	var tip string
	err = tx.QueryRow(ctx, `SELECT chain_hash FROM journal_chain_tips WHERE company_id = $1 FOR UPDATE;`, companyID).Scan(&tip)
	if err != nil {
		return domain.JournalEntry{}, apperrors.NewAppError(500, "failed to lock chain tip for company "+companyID, err)
	}

	entry := domain.NewJournalEntry(entryID, companyID, transactionID, entryType, bookings, occurredAt, tip)
	row := mapping.ToModelJournalEntry(entry)
	bookingsJSON, err := json.Marshal(row.Bookings)
	if err != nil {
		return domain.JournalEntry{}, apperrors.NewAppError(500, "failed to marshal bookings for entry "+entryID, err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO journal_entries (entry_id, company_id, transaction_id, entry_type, bookings, occurred_at, content_hash, previous_hash, chain_hash)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`,
		row.EntryID,
		row.CompanyID,
		row.TransactionID,
		row.EntryType,
		bookingsJSON,
		row.OccurredAt,
		row.ContentHash,
		row.PreviousHash,
		row.ChainHash,
	)
	if err != nil {
		return domain.JournalEntry{}, apperrors.NewAppError(500, "failed to insert journal entry "+entryID, err)
	}

	_, err = tx.Exec(ctx, `UPDATE journal_chain_tips SET chain_hash = $2, updated_at = $3 WHERE company_id = $1;`, companyID, entry.ChainHash, occurredAt)
	if err != nil {
		return domain.JournalEntry{}, apperrors.NewAppError(500, "failed to advance chain tip for company "+companyID, err)
	}
	return entry, nil
}

func upsertApproval(ctx context.Context, tx pgx.Tx, approval domain.Approval) error {
	m := mapping.ToModelApproval(approval)
	_, err := tx.Exec(ctx, `
		INSERT INTO approvals (approval_id, company_id, target_type, target_id, content_hash, approval_type, status, requested_by, requested_at, decided_by, decided_at, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (approval_id) DO UPDATE
		SET status = EXCLUDED.status, decided_by = EXCLUDED.decided_by, decided_at = EXCLUDED.decided_at, notes = EXCLUDED.notes;
	`,
		m.ApprovalID,
		m.CompanyID,
		m.TargetType,
		m.TargetID,
		m.ContentHash,
		m.ApprovalType,
		m.Status,
		m.RequestedBy,
		m.RequestedAt,
		m.DecidedBy,
		m.DecidedAt,
		m.Notes,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to upsert approval "+m.ApprovalID, err)
	}
	return nil
}

// updateBalances writes the applied ledger state back with an optimistic
// version check. A transaction may touch the same account on several
// lines, each advancing the in-memory version once, so the guard compares
// against the version the row was loaded at rather than version-1. A
// concurrent writer that advanced the version first makes the whole commit
// fail and roll back.
func updateBalances(ctx context.Context, tx pgx.Tx, balances []*domain.AccountBalance, changes []domain.BalanceChange) error {
	applied := make(map[string]int64, len(balances))
	for _, change := range changes {
		applied[change.AccountID]++
	}
	for _, balance := range balances {
		m := mapping.ToModelAccountBalance(*balance)
		loadedVersion := m.Version - applied[m.AccountID]
		tag, err := tx.Exec(ctx, `
			UPDATE account_balances
			SET current_balance = $2, total_debits = $3, total_credits = $4, transaction_count = $5,
			    last_activity_at = $6, version = $7, last_updated_at = $8, last_updated_by = $9
			WHERE account_id = $1 AND version = $10;
		`,
			m.AccountID,
			m.CurrentBalance,
			m.TotalDebits,
			m.TotalCredits,
			m.TransactionCount,
			m.LastActivityAt,
			m.Version,
			m.LastUpdatedAt,
			m.LastUpdatedBy,
			loadedVersion,
		)
		if err != nil {
			return apperrors.NewAppError(500, "failed to update balance for account "+m.AccountID, err)
		}
		if tag.RowsAffected() == 0 {
			return apperrors.ErrConflict
		}

		_, err = tx.Exec(ctx, `UPDATE accounts SET balance = $2, last_activity_at = $3, last_updated_at = $4 WHERE account_id = $1;`,
			m.AccountID, m.CurrentBalance, m.LastActivityAt, m.LastUpdatedAt)
		if err != nil {
			return apperrors.NewAppError(500, "failed to update account balance snapshot "+m.AccountID, err)
		}
	}
	return nil
}

func insertBalanceChanges(ctx context.Context, tx pgx.Tx, changes []domain.BalanceChange) error {
	batch := &pgx.Batch{}
	for _, change := range changes {
		m := mapping.ToModelBalanceChange(change)
		batch.Queue(`
			INSERT INTO balance_changes (change_id, account_id, company_id, transaction_id, line_type, amount, delta, previous_balance, new_balance, is_reversal, occurred_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
		`,
			m.ChangeID,
			m.AccountID,
			m.CompanyID,
			m.TransactionID,
			m.LineType,
			m.Amount,
			m.Delta,
			m.PreviousBalance,
			m.NewBalance,
			m.IsReversal,
			m.OccurredAt,
		)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert balance changes", err)
	}
	return nil
}
