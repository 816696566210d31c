package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType indicates whether a transaction line is a Debit or a Credit.
type TransactionType string

const (
	Debit  TransactionType = "DEBIT"
	Credit TransactionType = "CREDIT"
)

// Opposite returns the other side of the ledger. Used when reversing.
func (t TransactionType) Opposite() TransactionType {
	if t == Debit {
		return Credit
	}
	return Debit
}

// TransactionStatus is the lifecycle state of a transaction document.
// The only legal transitions are DRAFT -> POSTED -> VOIDED, each taken
// at most once.
type TransactionStatus string

const (
	StatusDraft  TransactionStatus = "DRAFT"
	StatusPosted TransactionStatus = "POSTED"
	StatusVoided TransactionStatus = "VOIDED"
)

// Lifecycle and structural invariant violations. Services wrap these so
// handlers can report which rule broke.
var (
	ErrTransactionNotDraft   = errors.New("transaction is not in draft status")
	ErrTransactionNotPosted  = errors.New("transaction is not in posted status")
	ErrTransactionUnbalanced = errors.New("transaction debits do not equal credits")
	ErrInsufficientLines     = errors.New("transaction must have at least two lines")
	ErrMissingDebitLine      = errors.New("transaction must have at least one debit line")
	ErrMissingCreditLine     = errors.New("transaction must have at least one credit line")
	ErrNonPositiveAmount     = errors.New("transaction line amount must be positive")
	ErrVoidReasonMissing     = errors.New("void reason is required")
)

// TransactionLine is a single debit or credit against one account.
type TransactionLine struct {
	LineID      string          `json:"lineID"`
	AccountID   string          `json:"accountID"`
	LineType    TransactionType `json:"lineType"`
	Amount      decimal.Decimal `json:"amount"` // Always positive
	Description string          `json:"description,omitempty"`
}

// Transaction is the mutable bookkeeping document. Lines may only be
// changed while the transaction is a draft; once posted the document is
// immutable except for the single posted -> voided transition.
type Transaction struct {
	TransactionID     string            `json:"transactionID"`
	CompanyID         string            `json:"companyID"`
	TransactionNumber string            `json:"transactionNumber"`
	TransactionDate   time.Time         `json:"transactionDate"`
	Description       string            `json:"description"`
	ReferenceNumber   string            `json:"referenceNumber,omitempty"`
	Status            TransactionStatus `json:"status"`
	Lines             []TransactionLine `json:"lines"`

	PostedBy   string     `json:"postedBy,omitempty"`
	PostedAt   *time.Time `json:"postedAt,omitempty"`
	VoidedBy   string     `json:"voidedBy,omitempty"`
	VoidedAt   *time.Time `json:"voidedAt,omitempty"`
	VoidReason string     `json:"voidReason,omitempty"`

	AuditFields
}

// NewTransaction creates a draft transaction with no lines. This is the
// only constructor for new documents; rows loaded from storage go through
// ReconstructTransaction instead.
func NewTransaction(id, companyID, number string, date time.Time, description, referenceNumber, createdBy string, now time.Time) *Transaction {
	return &Transaction{
		TransactionID:     id,
		CompanyID:         companyID,
		TransactionNumber: number,
		TransactionDate:   date,
		Description:       description,
		ReferenceNumber:   referenceNumber,
		Status:            StatusDraft,
		AuditFields: AuditFields{
			CreatedAt:     now,
			CreatedBy:     createdBy,
			LastUpdatedAt: now,
			LastUpdatedBy: createdBy,
		},
	}
}

// ReconstructTransaction rehydrates a transaction from persisted state
// without re-running creation validation.
func ReconstructTransaction(id, companyID, number string, date time.Time, description, referenceNumber string, status TransactionStatus, lines []TransactionLine, audit AuditFields) *Transaction {
	return &Transaction{
		TransactionID:     id,
		CompanyID:         companyID,
		TransactionNumber: number,
		TransactionDate:   date,
		Description:       description,
		ReferenceNumber:   referenceNumber,
		Status:            status,
		Lines:             lines,
		AuditFields:       audit,
	}
}

// AddLine appends a debit or credit line. Only drafts accept line mutation.
func (t *Transaction) AddLine(lineID, accountID string, lineType TransactionType, amount decimal.Decimal, description string) error {
	if t.Status != StatusDraft {
		return ErrTransactionNotDraft
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrNonPositiveAmount
	}
	t.Lines = append(t.Lines, TransactionLine{
		LineID:      lineID,
		AccountID:   accountID,
		LineType:    lineType,
		Amount:      amount,
		Description: description,
	})
	return nil
}

// ClearLines removes all lines from a draft transaction.
func (t *Transaction) ClearLines() error {
	if t.Status != StatusDraft {
		return ErrTransactionNotDraft
	}
	t.Lines = nil
	return nil
}

// UpdateDetails changes the header fields of a draft transaction.
func (t *Transaction) UpdateDetails(date time.Time, description, referenceNumber, updatedBy string, now time.Time) error {
	if t.Status != StatusDraft {
		return ErrTransactionNotDraft
	}
	t.TransactionDate = date
	t.Description = description
	t.ReferenceNumber = referenceNumber
	t.LastUpdatedAt = now
	t.LastUpdatedBy = updatedBy
	return nil
}

// TotalDebits returns the sum of all debit line amounts.
func (t *Transaction) TotalDebits() decimal.Decimal {
	total := decimal.Zero
	for _, line := range t.Lines {
		if line.LineType == Debit {
			total = total.Add(line.Amount)
		}
	}
	return total
}

// TotalCredits returns the sum of all credit line amounts.
func (t *Transaction) TotalCredits() decimal.Decimal {
	total := decimal.Zero
	for _, line := range t.Lines {
		if line.LineType == Credit {
			total = total.Add(line.Amount)
		}
	}
	return total
}

// ValidateForPosting checks the structural invariants that must hold
// before a draft may be posted: at least two lines, at least one debit and
// one credit, and equal debit and credit totals.
func (t *Transaction) ValidateForPosting() error {
	if len(t.Lines) < 2 {
		return ErrInsufficientLines
	}
	hasDebit, hasCredit := false, false
	for _, line := range t.Lines {
		if line.Amount.LessThanOrEqual(decimal.Zero) {
			return ErrNonPositiveAmount
		}
		switch line.LineType {
		case Debit:
			hasDebit = true
		case Credit:
			hasCredit = true
		}
	}
	if !hasDebit {
		return ErrMissingDebitLine
	}
	if !hasCredit {
		return ErrMissingCreditLine
	}
	if !t.TotalDebits().Equal(t.TotalCredits()) {
		return ErrTransactionUnbalanced
	}
	return nil
}

// Post transitions the draft to POSTED. The transition happens at most
// once and returns the posted event for dispatch after commit.
func (t *Transaction) Post(userID string, now time.Time) (Event, error) {
	if t.Status != StatusDraft {
		return nil, ErrTransactionNotDraft
	}
	if err := t.ValidateForPosting(); err != nil {
		return nil, err
	}
	t.Status = StatusPosted
	t.PostedBy = userID
	t.PostedAt = &now
	t.LastUpdatedAt = now
	t.LastUpdatedBy = userID
	return TransactionPostedEvent{
		TransactionID:     t.TransactionID,
		CompanyID:         t.CompanyID,
		TransactionNumber: t.TransactionNumber,
		TotalDebits:       t.TotalDebits(),
		PostedBy:          userID,
		At:                now,
	}, nil
}

// Void transitions a posted transaction to VOIDED. Voiding is terminal.
func (t *Transaction) Void(reason, userID string, now time.Time) (Event, error) {
	if t.Status != StatusPosted {
		return nil, ErrTransactionNotPosted
	}
	if reason == "" {
		return nil, ErrVoidReasonMissing
	}
	t.Status = StatusVoided
	t.VoidReason = reason
	t.VoidedBy = userID
	t.VoidedAt = &now
	t.LastUpdatedAt = now
	t.LastUpdatedBy = userID
	return TransactionVoidedEvent{
		TransactionID:     t.TransactionID,
		CompanyID:         t.CompanyID,
		TransactionNumber: t.TransactionNumber,
		Reason:            reason,
		VoidedBy:          userID,
		At:                now,
	}, nil
}

// transactionDigest is the canonical shape hashed by ContentHash. Field
// order matters: encoding/json emits struct fields in declaration order,
// which keeps the digest deterministic.
type transactionDigest struct {
	TransactionID   string       `json:"transactionID"`
	CompanyID       string       `json:"companyID"`
	TransactionDate string       `json:"transactionDate"`
	Description     string       `json:"description"`
	ReferenceNumber string       `json:"referenceNumber"`
	Lines           []lineDigest `json:"lines"`
}

type lineDigest struct {
	AccountID string `json:"accountID"`
	LineType  string `json:"lineType"`
	Amount    string `json:"amount"`
}

// ContentHash returns a SHA-256 digest of the transaction's business
// content. Approval proofs bind to this hash, so any later content change
// invalidates the binding.
func (t *Transaction) ContentHash() string {
	digest := transactionDigest{
		TransactionID:   t.TransactionID,
		CompanyID:       t.CompanyID,
		TransactionDate: t.TransactionDate.UTC().Format(time.RFC3339),
		Description:     t.Description,
		ReferenceNumber: t.ReferenceNumber,
	}
	for _, line := range t.Lines {
		digest.Lines = append(digest.Lines, lineDigest{
			AccountID: line.AccountID,
			LineType:  string(line.LineType),
			Amount:    line.Amount.String(),
		})
	}
	payload, _ := json.Marshal(digest)
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:])
}
