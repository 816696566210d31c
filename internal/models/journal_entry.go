package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Booking is the JSONB shape of one line snapshot inside a journal entry
// row.
type Booking struct {
	AccountID string          `json:"accountID"`
	LineType  string          `json:"lineType"`
	Amount    decimal.Decimal `json:"amount"`
}

// JournalEntry is the db row for one immutable, hash-chained journal
// record. Rows are insert-only; there is no update path.
type JournalEntry struct {
	EntryID       string    `json:"entryID"`
	CompanyID     string    `json:"companyID"`
	TransactionID string    `json:"transactionID"`
	EntryType     string    `json:"entryType"`
	Bookings      []Booking `json:"bookings"`
	OccurredAt    time.Time `json:"occurredAt"`
	ContentHash   string    `json:"contentHash"`
	PreviousHash  string    `json:"previousHash"`
	ChainHash     string    `json:"chainHash"`
}
