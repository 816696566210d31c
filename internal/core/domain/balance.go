package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BalanceChange is an immutable record of one application of a transaction
// line to an account balance.
type BalanceChange struct {
	ChangeID        string          `json:"changeID"`
	AccountID       string          `json:"accountID"`
	CompanyID       string          `json:"companyID"`
	TransactionID   string          `json:"transactionID"`
	LineType        TransactionType `json:"lineType"`
	Amount          decimal.Decimal `json:"amount"`
	Delta           decimal.Decimal `json:"delta"` // Signed effect on the balance
	PreviousBalance decimal.Decimal `json:"previousBalance"`
	NewBalance      decimal.Decimal `json:"newBalance"`
	IsReversal      bool            `json:"isReversal"`
	OccurredAt      time.Time       `json:"occurredAt"`
}

// BalanceMetrics is the running metrics bundle of an account balance.
type BalanceMetrics struct {
	CurrentBalance   decimal.Decimal `json:"currentBalance"`
	OpeningBalance   decimal.Decimal `json:"openingBalance"`
	TotalDebits      decimal.Decimal `json:"totalDebits"`
	TotalCredits     decimal.Decimal `json:"totalCredits"`
	TransactionCount int64           `json:"transactionCount"`
	LastActivityAt   *time.Time      `json:"lastActivityAt,omitempty"`
	Version          int64           `json:"version"` // Monotonically increasing
}

// AccountBalance is the per-account running-balance ledger state.
type AccountBalance struct {
	AccountID    string          `json:"accountID"`
	CompanyID    string          `json:"companyID"`
	AccountType  AccountType     `json:"accountType"`
	CurrencyCode string          `json:"currencyCode"`
	Metrics      BalanceMetrics  `json:"metrics"`
	AuditFields
}

// NewAccountBalance initializes ledger state for an account with the given
// opening balance.
func NewAccountBalance(accountID, companyID string, accountType AccountType, currencyCode string, openingBalance decimal.Decimal, createdBy string, now time.Time) *AccountBalance {
	return &AccountBalance{
		AccountID:    accountID,
		CompanyID:    companyID,
		AccountType:  accountType,
		CurrencyCode: currencyCode,
		Metrics: BalanceMetrics{
			CurrentBalance: openingBalance,
			OpeningBalance: openingBalance,
			TotalDebits:    decimal.Zero,
			TotalCredits:   decimal.Zero,
			Version:        1,
		},
		AuditFields: AuditFields{
			CreatedAt:     now,
			CreatedBy:     createdBy,
			LastUpdatedAt: now,
			LastUpdatedBy: createdBy,
		},
	}
}

// signedDelta applies the normal-balance convention: a line on the
// account's normal side increases the balance, the opposite side
// decreases it.
func (b *AccountBalance) signedDelta(lineType TransactionType, amount decimal.Decimal) decimal.Decimal {
	if lineType == b.AccountType.NormalBalance() {
		return amount
	}
	return amount.Neg()
}

// Apply records one line's effect on the balance, updates the metrics
// bundle and returns the immutable change record alongside the
// balance-changed event.
func (b *AccountBalance) Apply(changeID, transactionID string, lineType TransactionType, amount decimal.Decimal, isReversal bool, now time.Time) (BalanceChange, Event) {
	previous := b.Metrics.CurrentBalance
	delta := b.signedDelta(lineType, amount)
	b.Metrics.CurrentBalance = previous.Add(delta)

	if lineType == Debit {
		b.Metrics.TotalDebits = b.Metrics.TotalDebits.Add(amount)
	} else {
		b.Metrics.TotalCredits = b.Metrics.TotalCredits.Add(amount)
	}
	b.Metrics.TransactionCount++
	b.Metrics.Version++
	b.Metrics.LastActivityAt = &now
	b.LastUpdatedAt = now

	change := BalanceChange{
		ChangeID:        changeID,
		AccountID:       b.AccountID,
		CompanyID:       b.CompanyID,
		TransactionID:   transactionID,
		LineType:        lineType,
		Amount:          amount,
		Delta:           delta,
		PreviousBalance: previous,
		NewBalance:      b.Metrics.CurrentBalance,
		IsReversal:      isReversal,
		OccurredAt:      now,
	}
	event := AccountBalanceChangedEvent{
		AccountID:       b.AccountID,
		CompanyID:       b.CompanyID,
		TransactionID:   transactionID,
		PreviousBalance: previous,
		NewBalance:      b.Metrics.CurrentBalance,
		Delta:           delta,
		IsReversal:      isReversal,
		At:              now,
	}
	return change, event
}

// Reverse applies the opposite of an original change: same amount, line
// type flipped. This is how voids unwind balances.
func (b *AccountBalance) Reverse(changeID string, original BalanceChange, now time.Time) (BalanceChange, Event) {
	return b.Apply(changeID, original.TransactionID, original.LineType.Opposite(), original.Amount, true, now)
}

// CanHaveNegativeBalance reports whether this account's type may go
// negative without escalation. By accounting convention only equity
// accounts qualify.
func (b *AccountBalance) CanHaveNegativeBalance() bool {
	return b.AccountType == Equity
}

// WouldBeNegativeAfterChange is a pre-commit guard for callers that must
// block a disallowed negative balance rather than merely flag it.
func (b *AccountBalance) WouldBeNegativeAfterChange(delta decimal.Decimal) bool {
	return b.Metrics.CurrentBalance.Add(delta).IsNegative()
}
