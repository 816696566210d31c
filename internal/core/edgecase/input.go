package edgecase

import (
	"time"

	"github.com/finbooks/finbooks_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LineContext is one transaction line joined with the ledger state of its
// account, assembled before detection so the detectors stay pure.
type LineContext struct {
	AccountID      string
	AccountName    string
	AccountType    domain.AccountType
	LineType       domain.TransactionType
	Amount         decimal.Decimal
	CurrentBalance decimal.Decimal
	// LastActivityAt is nil for accounts with no prior activity; such
	// accounts are new, not dormant.
	LastActivityAt *time.Time
}

// PriorTransaction identifies an existing transaction that matches the
// candidate on company, total amount, description and date.
type PriorTransaction struct {
	TransactionID     string
	TransactionNumber string
}

// Input is the advisory snapshot a detection run works on. The reads
// behind it are not race-free against concurrent posts; detection may be
// stale by the time the real commit happens.
type Input struct {
	CompanyID       string
	TransactionID   string
	TransactionDate time.Time
	Description     string
	Lines           []LineContext
	// DuplicateCandidates are resolved by the caller from transaction
	// history before the run.
	DuplicateCandidates []PriorTransaction
	// Now anchors all date arithmetic so runs are reproducible in tests.
	Now time.Time
}

// TotalDebits sums the debit lines of the input.
func (in Input) TotalDebits() decimal.Decimal {
	total := decimal.Zero
	for _, line := range in.Lines {
		if line.LineType == domain.Debit {
			total = total.Add(line.Amount)
		}
	}
	return total
}
