package repositories

import (
	"context"

	"github.com/finbooks/finbooks_app/internal/core/domain"
)

// AccountReader defines read operations for chart-of-accounts data.
type AccountReader interface {
	// FindAccountByID retrieves a single account.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountsByIDs retrieves several accounts keyed by ID. Missing
	// IDs are simply absent from the map.
	FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)

	// ListAccountsByCompany retrieves all accounts of a company.
	ListAccountsByCompany(ctx context.Context, companyID string, limit, offset int) ([]domain.Account, error)
}

// AccountWriter defines write operations for chart-of-accounts data.
type AccountWriter interface {
	// SaveAccount inserts a new account together with its initial ledger
	// balance state.
	SaveAccount(ctx context.Context, account domain.Account, balance domain.AccountBalance) error

	// UpdateAccount updates mutable account fields.
	UpdateAccount(ctx context.Context, account domain.Account) error

	// DeactivateAccount marks an account inactive.
	DeactivateAccount(ctx context.Context, accountID, updatedBy string) error
}

// AccountRepositoryFacade combines account reads and writes.
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}

// BalanceReader defines read operations for per-account ledger state.
type BalanceReader interface {
	// FindBalanceByAccountID retrieves the ledger state of one account.
	FindBalanceByAccountID(ctx context.Context, accountID string) (*domain.AccountBalance, error)

	// FindBalancesByAccountIDs retrieves ledger state for several
	// accounts keyed by account ID.
	FindBalancesByAccountIDs(ctx context.Context, accountIDs []string) (map[string]domain.AccountBalance, error)

	// ListChangesByTransaction returns the balance changes recorded for
	// one transaction, oldest first.
	ListChangesByTransaction(ctx context.Context, transactionID string) ([]domain.BalanceChange, error)
}
