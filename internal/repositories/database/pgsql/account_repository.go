package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/finbooks/finbooks_app/internal/apperrors"
	"github.com/finbooks/finbooks_app/internal/core/domain"
	portsrepo "github.com/finbooks/finbooks_app/internal/core/ports/repositories"
	"github.com/finbooks/finbooks_app/internal/models"
	"github.com/finbooks/finbooks_app/internal/utils/mapping"
)

type PgxAccountRepository struct {
	BaseRepository
}

func newPgxAccountRepository(pool Pool) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

const accountColumns = `account_id, company_id, name, account_type, currency_code, description, is_active, balance, last_activity_at,
	created_at, created_by, last_updated_at, last_updated_by`

func scanAccount(row pgx.Row) (models.Account, error) {
	var m models.Account
	err := row.Scan(
		&m.AccountID,
		&m.CompanyID,
		&m.Name,
		&m.AccountType,
		&m.CurrencyCode,
		&m.Description,
		&m.IsActive,
		&m.Balance,
		&m.LastActivityAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// FindAccountByID retrieves a single account.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1;`
	m, err := scanAccount(r.Pool.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find account "+accountID, err)
	}
	account := mapping.ToDomainAccount(m)
	return &account, nil
}

// FindAccountsByIDs retrieves several accounts keyed by ID. Missing IDs
// are simply absent from the result.
func (r *PgxAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.Account{}, nil
	}
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = ANY($1);`
	rows, err := r.Pool.Query(ctx, query, accountIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query accounts by IDs", err)
	}
	defer rows.Close()

	accounts := make(map[string]domain.Account, len(accountIDs))
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan account row", err)
		}
		accounts[m.AccountID] = mapping.ToDomainAccount(m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating account rows", err)
	}
	return accounts, nil
}

// ListAccountsByCompany retrieves a company's accounts ordered by name.
func (r *PgxAccountRepository) ListAccountsByCompany(ctx context.Context, companyID string, limit, offset int) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE company_id = $1 ORDER BY name LIMIT $2 OFFSET $3;`
	rows, err := r.Pool.Query(ctx, query, companyID, limit, offset)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query accounts for company "+companyID, err)
	}
	defer rows.Close()

	accounts := []domain.Account{}
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan account row", err)
		}
		accounts = append(accounts, mapping.ToDomainAccount(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating account rows", err)
	}
	return accounts, nil
}

// SaveAccount inserts an account together with its initial ledger balance
// state in one storage transaction.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account, balance domain.AccountBalance) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelAccount(account)
	accountQuery := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err = tx.Exec(ctx, accountQuery,
		m.AccountID,
		m.CompanyID,
		m.Name,
		m.AccountType,
		m.CurrencyCode,
		m.Description,
		m.IsActive,
		m.Balance,
		m.LastActivityAt,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to insert account "+m.AccountID, err)
	}

	b := mapping.ToModelAccountBalance(balance)
	balanceQuery := `
		INSERT INTO account_balances (account_id, company_id, account_type, currency_code, current_balance, opening_balance,
			total_debits, total_credits, transaction_count, last_activity_at, version,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err = tx.Exec(ctx, balanceQuery,
		b.AccountID,
		b.CompanyID,
		b.AccountType,
		b.CurrencyCode,
		b.CurrentBalance,
		b.OpeningBalance,
		b.TotalDebits,
		b.TotalCredits,
		b.TransactionCount,
		b.LastActivityAt,
		b.Version,
		b.CreatedAt,
		b.CreatedBy,
		b.LastUpdatedAt,
		b.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert balance state for account "+b.AccountID, err)
	}
	return r.Commit(ctx, tx)
}

// UpdateAccount updates mutable account fields.
func (r *PgxAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)
	query := `
		UPDATE accounts
		SET name = $2, description = $3, is_active = $4, last_updated_at = $5, last_updated_by = $6
		WHERE account_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, m.AccountID, m.Name, m.Description, m.IsActive, m.LastUpdatedAt, m.LastUpdatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update account "+m.AccountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeactivateAccount marks an account inactive.
func (r *PgxAccountRepository) DeactivateAccount(ctx context.Context, accountID, updatedBy string) error {
	query := `
		UPDATE accounts
		SET is_active = FALSE, last_updated_at = $2, last_updated_by = $3
		WHERE account_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, accountID, time.Now(), updatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to deactivate account "+accountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

type PgxBalanceRepository struct {
	BaseRepository
}

func newPgxBalanceRepository(pool Pool) portsrepo.BalanceReader {
	return &PgxBalanceRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.BalanceReader = (*PgxBalanceRepository)(nil)

const balanceColumns = `account_id, company_id, account_type, currency_code, current_balance, opening_balance,
	total_debits, total_credits, transaction_count, last_activity_at, version,
	created_at, created_by, last_updated_at, last_updated_by`

func scanBalance(row pgx.Row) (models.AccountBalance, error) {
	var m models.AccountBalance
	err := row.Scan(
		&m.AccountID,
		&m.CompanyID,
		&m.AccountType,
		&m.CurrencyCode,
		&m.CurrentBalance,
		&m.OpeningBalance,
		&m.TotalDebits,
		&m.TotalCredits,
		&m.TransactionCount,
		&m.LastActivityAt,
		&m.Version,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// FindBalanceByAccountID retrieves the ledger state of one account.
func (r *PgxBalanceRepository) FindBalanceByAccountID(ctx context.Context, accountID string) (*domain.AccountBalance, error) {
	query := `SELECT ` + balanceColumns + ` FROM account_balances WHERE account_id = $1;`
	m, err := scanBalance(r.Pool.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find balance for account "+accountID, err)
	}
	balance := mapping.ToDomainAccountBalance(m)
	return &balance, nil
}

// FindBalancesByAccountIDs retrieves ledger state for several accounts
// keyed by account ID.
func (r *PgxBalanceRepository) FindBalancesByAccountIDs(ctx context.Context, accountIDs []string) (map[string]domain.AccountBalance, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.AccountBalance{}, nil
	}
	query := `SELECT ` + balanceColumns + ` FROM account_balances WHERE account_id = ANY($1);`
	rows, err := r.Pool.Query(ctx, query, accountIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query balances by account IDs", err)
	}
	defer rows.Close()

	balances := make(map[string]domain.AccountBalance, len(accountIDs))
	for rows.Next() {
		m, err := scanBalance(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan balance row", err)
		}
		balances[m.AccountID] = mapping.ToDomainAccountBalance(m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating balance rows", err)
	}
	return balances, nil
}

// ListChangesByTransaction returns the balance changes recorded for one
// transaction, oldest first.
func (r *PgxBalanceRepository) ListChangesByTransaction(ctx context.Context, transactionID string) ([]domain.BalanceChange, error) {
	query := `
		SELECT change_id, account_id, company_id, transaction_id, line_type, amount, delta, previous_balance, new_balance, is_reversal, occurred_at
		FROM balance_changes
		WHERE transaction_id = $1
		ORDER BY occurred_at, change_id;
	`
	rows, err := r.Pool.Query(ctx, query, transactionID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query balance changes for transaction "+transactionID, err)
	}
	defer rows.Close()

	changes := []domain.BalanceChange{}
	for rows.Next() {
		var m models.BalanceChange
		err := rows.Scan(
			&m.ChangeID,
			&m.AccountID,
			&m.CompanyID,
			&m.TransactionID,
			&m.LineType,
			&m.Amount,
			&m.Delta,
			&m.PreviousBalance,
			&m.NewBalance,
			&m.IsReversal,
			&m.OccurredAt,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan balance change row", err)
		}
		changes = append(changes, mapping.ToDomainBalanceChange(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating balance change rows", err)
	}
	return changes, nil
}
