package mapping

import (
	"github.com/finbooks/finbooks_app/internal/core/domain"
	"github.com/finbooks/finbooks_app/internal/models"
)

// ToModelJournalEntry converts a domain JournalEntry to a model row.
func ToModelJournalEntry(d domain.JournalEntry) models.JournalEntry {
	bookings := make([]models.Booking, len(d.Bookings))
	for i, b := range d.Bookings {
		bookings[i] = models.Booking{
			AccountID: b.AccountID,
			LineType:  string(b.LineType),
			Amount:    b.Amount,
		}
	}
	return models.JournalEntry{
		EntryID:       d.EntryID,
		CompanyID:     d.CompanyID,
		TransactionID: d.TransactionID,
		EntryType:     string(d.EntryType),
		Bookings:      bookings,
		OccurredAt:    d.OccurredAt,
		ContentHash:   d.ContentHash,
		PreviousHash:  d.PreviousHash,
		ChainHash:     d.ChainHash,
	}
}

// ToDomainJournalEntry converts a model row to a domain JournalEntry.
// Stored hashes are carried over untouched so verification can compare
// them against recomputed values.
func ToDomainJournalEntry(m models.JournalEntry) domain.JournalEntry {
	bookings := make([]domain.Booking, len(m.Bookings))
	for i, b := range m.Bookings {
		bookings[i] = domain.Booking{
			AccountID: b.AccountID,
			LineType:  domain.TransactionType(b.LineType),
			Amount:    b.Amount,
		}
	}
	return domain.JournalEntry{
		EntryID:       m.EntryID,
		CompanyID:     m.CompanyID,
		TransactionID: m.TransactionID,
		EntryType:     domain.EntryType(m.EntryType),
		Bookings:      bookings,
		OccurredAt:    m.OccurredAt,
		ContentHash:   m.ContentHash,
		PreviousHash:  m.PreviousHash,
		ChainHash:     m.ChainHash,
	}
}

// ToDomainJournalEntrySlice converts model journal rows in bulk.
func ToDomainJournalEntrySlice(rows []models.JournalEntry) []domain.JournalEntry {
	entries := make([]domain.JournalEntry, len(rows))
	for i, row := range rows {
		entries[i] = ToDomainJournalEntry(row)
	}
	return entries
}
