package dto

import (
	"time"

	"github.com/finbooks/finbooks_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BookingResponse is one booking snapshot inside a journal entry.
type BookingResponse struct {
	AccountID string          `json:"accountID"`
	LineType  string          `json:"lineType"`
	Amount    decimal.Decimal `json:"amount"`
}

// JournalEntryResponse is the presentation of one immutable journal entry.
type JournalEntryResponse struct {
	EntryID       string            `json:"entryID"`
	CompanyID     string            `json:"companyID"`
	TransactionID string            `json:"transactionID"`
	EntryType     string            `json:"entryType"`
	Bookings      []BookingResponse `json:"bookings"`
	OccurredAt    time.Time         `json:"occurredAt"`
	ContentHash   string            `json:"contentHash"`
	PreviousHash  string            `json:"previousHash"`
	ChainHash     string            `json:"chainHash"`
}

// ToJournalEntryResponse converts a domain journal entry for presentation.
func ToJournalEntryResponse(e *domain.JournalEntry) JournalEntryResponse {
	bookings := make([]BookingResponse, len(e.Bookings))
	for i, b := range e.Bookings {
		bookings[i] = BookingResponse{
			AccountID: b.AccountID,
			LineType:  string(b.LineType),
			Amount:    b.Amount,
		}
	}
	return JournalEntryResponse{
		EntryID:       e.EntryID,
		CompanyID:     e.CompanyID,
		TransactionID: e.TransactionID,
		EntryType:     string(e.EntryType),
		Bookings:      bookings,
		OccurredAt:    e.OccurredAt,
		ContentHash:   e.ContentHash,
		PreviousHash:  e.PreviousHash,
		ChainHash:     e.ChainHash,
	}
}

// ToJournalEntryResponses converts a slice of journal entries.
func ToJournalEntryResponses(entries []domain.JournalEntry) []JournalEntryResponse {
	responses := make([]JournalEntryResponse, len(entries))
	for i := range entries {
		responses[i] = ToJournalEntryResponse(&entries[i])
	}
	return responses
}

// ChainVerificationResponse reports the outcome of walking a company's
// journal chain from genesis.
type ChainVerificationResponse struct {
	CompanyID      string  `json:"companyID"`
	EntriesChecked int     `json:"entriesChecked"`
	Intact         bool    `json:"intact"`
	// BrokenAtEntryID identifies the first entry whose link or content
	// failed verification; empty when the chain is intact.
	BrokenAtEntryID string `json:"brokenAtEntryID,omitempty"`
	Detail          string `json:"detail,omitempty"`
}
