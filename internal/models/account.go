package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountType mirrors the domain account type enum in the db layer.
type AccountType string

// Account is the db row for one chart-of-accounts entry.
type Account struct {
	AccountID      string          `json:"accountID"`
	CompanyID      string          `json:"companyID"`
	Name           string          `json:"name"`
	AccountType    AccountType     `json:"accountType"`
	CurrencyCode   string          `json:"currencyCode"`
	Description    string          `json:"description"`
	IsActive       bool            `json:"isActive"`
	Balance        decimal.Decimal `json:"balance"`
	LastActivityAt *time.Time      `json:"lastActivityAt"`
	AuditFields
}

// AccountBalance is the db row for per-account running ledger state.
type AccountBalance struct {
	AccountID        string          `json:"accountID"`
	CompanyID        string          `json:"companyID"`
	AccountType      AccountType     `json:"accountType"`
	CurrencyCode     string          `json:"currencyCode"`
	CurrentBalance   decimal.Decimal `json:"currentBalance"`
	OpeningBalance   decimal.Decimal `json:"openingBalance"`
	TotalDebits      decimal.Decimal `json:"totalDebits"`
	TotalCredits     decimal.Decimal `json:"totalCredits"`
	TransactionCount int64           `json:"transactionCount"`
	LastActivityAt   *time.Time      `json:"lastActivityAt"`
	Version          int64           `json:"version"`
	AuditFields
}

// BalanceChange is the immutable db row recording one balance application.
type BalanceChange struct {
	ChangeID        string          `json:"changeID"`
	AccountID       string          `json:"accountID"`
	CompanyID       string          `json:"companyID"`
	TransactionID   string          `json:"transactionID"`
	LineType        string          `json:"lineType"`
	Amount          decimal.Decimal `json:"amount"`
	Delta           decimal.Decimal `json:"delta"`
	PreviousBalance decimal.Decimal `json:"previousBalance"`
	NewBalance      decimal.Decimal `json:"newBalance"`
	IsReversal      bool            `json:"isReversal"`
	OccurredAt      time.Time       `json:"occurredAt"`
}
