package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionStatus mirrors the domain lifecycle enum in the db layer.
type TransactionStatus string

// Transaction is the db row for a transaction document header.
type Transaction struct {
	TransactionID     string            `json:"transactionID"`
	CompanyID         string            `json:"companyID"`
	TransactionNumber string            `json:"transactionNumber"`
	TransactionDate   time.Time         `json:"transactionDate"`
	Description       string            `json:"description"`
	ReferenceNumber   string            `json:"referenceNumber"`
	Status            TransactionStatus `json:"status"`

	PostedBy   *string    `json:"postedBy"`
	PostedAt   *time.Time `json:"postedAt"`
	VoidedBy   *string    `json:"voidedBy"`
	VoidedAt   *time.Time `json:"voidedAt"`
	VoidReason *string    `json:"voidReason"`

	AuditFields
}

// TransactionLine is the db row for one debit or credit line.
type TransactionLine struct {
	LineID        string          `json:"lineID"`
	TransactionID string          `json:"transactionID"`
	AccountID     string          `json:"accountID"`
	LineType      string          `json:"lineType"`
	Amount        decimal.Decimal `json:"amount"`
	Description   string          `json:"description"`
}
