package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/finbooks/finbooks_app/internal/core/services"
)

// NewRepositories wires every pgx-backed repository over one shared pool.
func NewRepositories(dbPool *pgxpool.Pool) services.Repositories {
	return services.Repositories{
		Transaction:  newPgxTransactionRepository(dbPool),
		Account:      newPgxAccountRepository(dbPool),
		Balance:      newPgxBalanceRepository(dbPool),
		Company:      newPgxCompanyRepository(dbPool),
		ClosedPeriod: newPgxClosedPeriodRepository(dbPool),
		Threshold:    newPgxThresholdRepository(dbPool),
		Sequence:     newPgxSequenceRepository(dbPool),
		Journal:      newPgxJournalEntryRepository(dbPool),
		Approval:     newPgxApprovalRepository(dbPool),
	}
}
