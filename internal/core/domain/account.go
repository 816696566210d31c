package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// NormalBalance returns the side (debit or credit) on which this account
// type naturally increases. Assets and expenses grow on the debit side;
// liabilities, equity and revenue grow on the credit side.
func (t AccountType) NormalBalance() TransactionType {
	switch t {
	case Asset, Expense:
		return Debit
	default:
		return Credit
	}
}

// IsValid reports whether t is one of the five known account types.
func (t AccountType) IsValid() bool {
	switch t {
	case Asset, Liability, Equity, Revenue, Expense:
		return true
	}
	return false
}

// Account represents one account in a company's chart of accounts.
type Account struct {
	AccountID    string          `json:"accountID"`
	CompanyID    string          `json:"companyID"`
	Name         string          `json:"name"`
	AccountType  AccountType     `json:"accountType"`
	CurrencyCode string          `json:"currencyCode"`
	Description  string          `json:"description"`
	IsActive     bool            `json:"isActive"`
	Balance      decimal.Decimal `json:"balance"` // Persisted current balance
	// LastActivityAt is nil for accounts that have never been posted to.
	LastActivityAt *time.Time `json:"lastActivityAt,omitempty"`
	AuditFields
}
