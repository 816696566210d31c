package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Event is a domain event produced by a mutating aggregate operation.
// Aggregates return events as values; the orchestrating service dispatches
// them only after the surrounding storage transaction commits.
type Event interface {
	EventName() string
	OccurredAt() time.Time
}

// TransactionCreatedEvent is emitted when a draft transaction is created.
type TransactionCreatedEvent struct {
	TransactionID     string
	CompanyID         string
	TransactionNumber string
	CreatedBy         string
	At                time.Time
}

func (e TransactionCreatedEvent) EventName() string     { return "transaction.created" }
func (e TransactionCreatedEvent) OccurredAt() time.Time { return e.At }

// TransactionPostedEvent is emitted when a draft transaction is posted.
type TransactionPostedEvent struct {
	TransactionID     string
	CompanyID         string
	TransactionNumber string
	TotalDebits       decimal.Decimal
	PostedBy          string
	At                time.Time
}

func (e TransactionPostedEvent) EventName() string     { return "transaction.posted" }
func (e TransactionPostedEvent) OccurredAt() time.Time { return e.At }

// TransactionVoidedEvent is emitted when a posted transaction is voided.
type TransactionVoidedEvent struct {
	TransactionID     string
	CompanyID         string
	TransactionNumber string
	Reason            string
	VoidedBy          string
	At                time.Time
}

func (e TransactionVoidedEvent) EventName() string     { return "transaction.voided" }
func (e TransactionVoidedEvent) OccurredAt() time.Time { return e.At }

// AccountBalanceChangedEvent is emitted for every applied balance change.
type AccountBalanceChangedEvent struct {
	AccountID       string
	CompanyID       string
	TransactionID   string
	PreviousBalance decimal.Decimal
	NewBalance      decimal.Decimal
	Delta           decimal.Decimal
	IsReversal      bool
	At              time.Time
}

func (e AccountBalanceChangedEvent) EventName() string     { return "account_balance.changed" }
func (e AccountBalanceChangedEvent) OccurredAt() time.Time { return e.At }
