package services

import (
	portsrepo "github.com/finbooks/finbooks_app/internal/core/ports/repositories"
	portssvc "github.com/finbooks/finbooks_app/internal/core/ports/services"
	"github.com/finbooks/finbooks_app/internal/platform/metrics"
)

// Repositories bundles every persistence facade the services need.
type Repositories struct {
	Transaction  portsrepo.TransactionRepositoryFacade
	Account      portsrepo.AccountRepositoryFacade
	Balance      portsrepo.BalanceReader
	Company      portsrepo.CompanyRepositoryFacade
	ClosedPeriod portsrepo.ClosedPeriodRepositoryFacade
	Threshold    portsrepo.ThresholdRepositoryFacade
	Sequence     portsrepo.SequenceRepositoryFacade
	Journal      portsrepo.JournalEntryReader
	Approval     portsrepo.ApprovalRepositoryFacade
}

// NewServiceContainer wires the repositories, event sink and metrics into
// the full service graph handed to the HTTP layer.
func NewServiceContainer(repos Repositories, events portssvc.EventSink, m *metrics.Metrics) *portssvc.ServiceContainer {
	detectionSvc := NewDetectionService(repos.Account, repos.Balance, repos.Threshold, repos.Transaction)

	return &portssvc.ServiceContainer{
		Transaction: NewTransactionService(
			repos.Transaction,
			repos.Account,
			repos.Balance,
			repos.Company,
			repos.ClosedPeriod,
			repos.Approval,
			repos.Threshold,
			repos.Sequence,
			detectionSvc,
			events,
			m,
		),
		Detection: detectionSvc,
		Account:   NewAccountService(repos.Account, repos.Company),
		Company:   NewCompanyService(repos.Company, repos.ClosedPeriod, repos.Threshold),
		Journal:   NewJournalService(repos.Journal, repos.Transaction, m),
		Approval:  NewApprovalService(repos.Approval, repos.Transaction, detectionSvc),
	}
}
