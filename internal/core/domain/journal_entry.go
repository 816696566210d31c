package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// EntryType distinguishes original postings from their reversals.
type EntryType string

const (
	EntryPosting  EntryType = "POSTING"
	EntryReversal EntryType = "REVERSAL"
)

// GenesisHash is the previous-hash sentinel for the first journal entry of
// a company.
const GenesisHash = "GENESIS"

// Booking is a snapshot of one transaction line taken at commit time. The
// journal stores bookings rather than referencing the mutable document so
// the financial impact stays readable even if the document changes later.
type Booking struct {
	AccountID string          `json:"accountID"`
	LineType  TransactionType `json:"lineType"`
	Amount    decimal.Decimal `json:"amount"`
}

// JournalEntry is one append-only, hash-chained record of financial
// impact. Entries are never mutated after creation; per company they form
// an unbroken chain from GenesisHash.
type JournalEntry struct {
	EntryID       string    `json:"entryID"`
	CompanyID     string    `json:"companyID"`
	TransactionID string    `json:"transactionID"`
	EntryType     EntryType `json:"entryType"`
	Bookings      []Booking `json:"bookings"`
	OccurredAt    time.Time `json:"occurredAt"`
	// ContentHash covers every business field above but not PreviousHash,
	// so content integrity and chain integrity are independently checkable.
	ContentHash  string `json:"contentHash"`
	PreviousHash string `json:"previousHash"`
	ChainHash    string `json:"chainHash"`
}

// NewJournalEntry builds an entry, computes its content hash and derives
// the chain link from the supplied previous hash (GenesisHash for the
// first entry of a company).
func NewJournalEntry(entryID, companyID, transactionID string, entryType EntryType, bookings []Booking, occurredAt time.Time, previousHash string) JournalEntry {
	if previousHash == "" {
		previousHash = GenesisHash
	}
	entry := JournalEntry{
		EntryID:       entryID,
		CompanyID:     companyID,
		TransactionID: transactionID,
		EntryType:     entryType,
		Bookings:      bookings,
		OccurredAt:    occurredAt,
		PreviousHash:  previousHash,
	}
	entry.ContentHash = entry.computeContentHash()
	entry.ChainHash = DeriveChainHash(previousHash, entry.ContentHash, occurredAt)
	return entry
}

// entryDigest is the canonical shape hashed by computeContentHash.
type entryDigest struct {
	EntryID       string          `json:"entryID"`
	CompanyID     string          `json:"companyID"`
	TransactionID string          `json:"transactionID"`
	EntryType     string          `json:"entryType"`
	Bookings      []bookingDigest `json:"bookings"`
	OccurredAt    int64           `json:"occurredAt"`
}

type bookingDigest struct {
	AccountID string `json:"accountID"`
	LineType  string `json:"lineType"`
	Amount    string `json:"amount"`
}

func (e *JournalEntry) computeContentHash() string {
	digest := entryDigest{
		EntryID:       e.EntryID,
		CompanyID:     e.CompanyID,
		TransactionID: e.TransactionID,
		EntryType:     string(e.EntryType),
		OccurredAt:    e.OccurredAt.UTC().UnixNano(),
	}
	for _, b := range e.Bookings {
		digest.Bookings = append(digest.Bookings, bookingDigest{
			AccountID: b.AccountID,
			LineType:  string(b.LineType),
			Amount:    b.Amount.String(),
		})
	}
	payload, _ := json.Marshal(digest)
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:])
}

// DeriveChainHash combines the previous entry's chain hash, the current
// content hash and the entry timestamp into the tamper-evident chain link.
func DeriveChainHash(previousHash, contentHash string, occurredAt time.Time) string {
	sum := sha256.Sum256(fmt.Appendf(nil, "%s|%s|%d", previousHash, contentHash, occurredAt.UTC().UnixNano()))
	return hex.EncodeToString(sum[:])
}

// VerifyContent recomputes the content hash and reports whether it still
// matches the stored one.
func (e *JournalEntry) VerifyContent() bool {
	return e.ContentHash == e.computeContentHash()
}

// VerifyChain reports whether this entry links onto the expected previous
// hash and its stored chain hash is consistent with its own fields.
func (e *JournalEntry) VerifyChain(expectedPreviousHash string) bool {
	if e.PreviousHash != expectedPreviousHash {
		return false
	}
	return e.ChainHash == DeriveChainHash(e.PreviousHash, e.ContentHash, e.OccurredAt)
}

// BookingsFromLines snapshots transaction lines into journal bookings.
func BookingsFromLines(lines []TransactionLine) []Booking {
	bookings := make([]Booking, len(lines))
	for i, line := range lines {
		bookings[i] = Booking{
			AccountID: line.AccountID,
			LineType:  line.LineType,
			Amount:    line.Amount,
		}
	}
	return bookings
}

// ReversalBookings returns the given bookings with every line type
// flipped and amounts unchanged. Used to build REVERSAL entries.
func ReversalBookings(bookings []Booking) []Booking {
	reversed := make([]Booking, len(bookings))
	for i, b := range bookings {
		reversed[i] = Booking{
			AccountID: b.AccountID,
			LineType:  b.LineType.Opposite(),
			Amount:    b.Amount,
		}
	}
	return reversed
}
